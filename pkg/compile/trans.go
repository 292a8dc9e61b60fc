package compile

import (
	"github.com/golang/glog"
	"github.com/pkg/errors"

	"tapec/pkg/emit"
	"tapec/pkg/lang"
)

// translator lowers statements into primitive emissions. Expressions are
// lowered target-first: every expression is handed the cell its value
// must end up in, which keeps temporaries to the operand cells of each
// binary node.
type translator struct {
	ctx   *emit.Context
	scope *scope
}

func newTranslator(ctx *emit.Context) *translator {
	return &translator{ctx: ctx}
}

func (t *translator) run(prog *lang.Program) error {
	t.pushScope()
	defer t.popScope()

	return t.stmts(prog.Stmts)
}

func (t *translator) pushScope() {
	t.scope = &scope{outer: t.scope}
}

func (t *translator) popScope() {
	t.scope.release(t.ctx)
	t.scope = t.scope.outer
}

func (t *translator) stmts(stmts []lang.Stmt) error {
	for _, stmt := range stmts {
		if err := t.stmt(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (t *translator) stmt(stmt lang.Stmt) error {
	switch s := stmt.(type) {
	case *lang.Decl:
		cell := t.ctx.Alloc()
		t.scope.bind(s.Name, cell)
		glog.V(1).Infof("let %s -> %v", s.Name, cell)

		if s.Value != nil {
			return t.expr(s.Value, cell)
		}
		return nil

	case *lang.Assign:
		cell, err := t.resolve(s.Name, s.Line)
		if err != nil {
			return err
		}
		glog.V(1).Infof("%s = ... -> %v", s.Name, cell)
		return t.expr(s.Value, cell)

	case *lang.AddAssign:
		cell, err := t.resolve(s.Name, s.Line)
		if err != nil {
			return err
		}
		glog.V(1).Infof("%s += ... -> %v", s.Name, cell)

		tmp := t.ctx.Alloc()
		defer t.ctx.Release(tmp)

		if err := t.expr(s.Value, tmp); err != nil {
			return err
		}
		t.ctx.Add(cell, tmp)
		return nil

	case *lang.While:
		return t.stmtWhile(s)

	case *lang.If:
		return t.stmtIf(s)
	}
	return errors.Errorf("unhandled statement %T", stmt)
}

// stmtWhile evaluates the condition into a temporary, loops on it, and
// re-evaluates at the end of each iteration so the loop cell always
// holds the condition's current value when `]` tests it.
func (t *translator) stmtWhile(s *lang.While) error {
	tmp := t.ctx.Alloc()
	defer t.ctx.Release(tmp)

	if err := t.expr(s.Cond, tmp); err != nil {
		return err
	}

	var err error
	t.ctx.WhileNotZero(tmp, func() {
		if err = t.body(s.Body); err != nil {
			return
		}
		// Re-lowered in the enclosing scope: names declared by the body
		// are gone by the time the condition is re-evaluated.
		err = t.expr(s.Cond, tmp)
	})
	return err
}

// stmtIf evaluates the condition into a temporary, reduces it to 0 or 1,
// and runs the body in a one-shot loop: the body executes when the cell is
// non-zero, and the final decrement zeroes the cell so `]` does not loop
// back.
func (t *translator) stmtIf(s *lang.If) error {
	tmp := t.ctx.Alloc()
	defer t.ctx.Release(tmp)

	if err := t.expr(s.Cond, tmp); err != nil {
		return err
	}
	t.ctx.IsNotZeroDestructive(tmp)

	var err error
	t.ctx.IfDestructive(tmp, func() {
		err = t.body(s.Body)
	})
	return err
}

// body lowers a statement block in a fresh scope frame, released when
// the block ends.
func (t *translator) body(stmts []lang.Stmt) error {
	t.pushScope()
	defer t.popScope()
	return t.stmts(stmts)
}

func (t *translator) expr(expr lang.Expr, target *emit.Cell) error {
	switch e := expr.(type) {
	case *lang.ConstExpr:
		t.ctx.Set(target, e.Value)
		return nil

	case *lang.CharExpr:
		t.ctx.Set(target, e.Value)
		return nil

	case *lang.VarExpr:
		cell, err := t.resolve(e.Name, e.Line)
		if err != nil {
			return err
		}
		t.ctx.Copy(cell, target)
		return nil

	case *lang.BinaryExpr:
		return t.binaryExpr(e, target)
	}
	return errors.Errorf("unhandled expression %T", expr)
}

func (t *translator) binaryExpr(e *lang.BinaryExpr, target *emit.Cell) error {
	aTmp := t.ctx.Alloc()
	defer t.ctx.Release(aTmp)
	bTmp := t.ctx.Alloc()
	defer t.ctx.Release(bTmp)

	if err := t.expr(e.Left, aTmp); err != nil {
		return err
	}
	if err := t.expr(e.Right, bTmp); err != nil {
		return err
	}

	switch e.Op {
	case lang.OpAdd:
		t.ctx.Add(aTmp, bTmp)
		t.ctx.Move(aTmp, target)
	case lang.OpSub:
		t.ctx.Sub(aTmp, bTmp)
		t.ctx.Move(aTmp, target)
	case lang.OpGt:
		t.ctx.GreaterThan(aTmp, bTmp, target)
	default:
		return errors.Errorf("unhandled operator %q", e.Op)
	}
	return nil
}

func (t *translator) resolve(name string, line int) (*emit.Cell, error) {
	cell, err := t.scope.resolve(name)
	if err != nil {
		return nil, errors.Wrapf(err, "line %d", line)
	}
	return cell, nil
}
