// Package compile lowers source programs to tape-machine code. It walks
// the AST with a stack of lexical scopes binding variable names to
// allocated cells, and drives the emit primitives to realize each
// statement's semantics.
package compile

import (
	"github.com/pkg/errors"

	"tapec/pkg/emit"
	"tapec/pkg/lang"
)

// Compile translates a source program into a tape-machine byte stream.
// On any error the partial emission is discarded.
func Compile(source string) ([]byte, error) {
	prog, err := lang.Parse(source)
	if err != nil {
		return nil, errors.Wrap(err, "parse")
	}

	ctx := emit.New()
	if err := newTranslator(ctx).run(prog); err != nil {
		return nil, err
	}
	return ctx.Bytes(), nil
}
