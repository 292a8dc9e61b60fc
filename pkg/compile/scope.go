package compile

import (
	"github.com/pkg/errors"

	"tapec/pkg/emit"
)

type binding struct {
	name string
	cell *emit.Cell
}

// scope is one lexical frame. Bindings are ordered: a later binding of
// the same name shadows an earlier one within the frame, and resolution
// walks frames innermost-out.
type scope struct {
	bindings []binding
	outer    *scope
}

func (s *scope) bind(name string, cell *emit.Cell) {
	s.bindings = append(s.bindings, binding{name: name, cell: cell})
}

func (s *scope) resolve(name string) (*emit.Cell, error) {
	for f := s; f != nil; f = f.outer {
		for i := len(f.bindings) - 1; i >= 0; i-- {
			if f.bindings[i].name == name {
				return f.bindings[i].cell, nil
			}
		}
	}
	return nil, errors.Errorf("variable '%s' does not exist in the current scope", name)
}

// release frees the frame's cells in reverse order of binding.
func (s *scope) release(ctx *emit.Context) {
	for i := len(s.bindings) - 1; i >= 0; i-- {
		ctx.Release(s.bindings[i].cell)
	}
}
