package emit

import "fmt"

// Control-flow primitives. In the tape language `[` skips to its matching
// `]` when the current cell is zero, and `]` jumps back when it is not;
// every higher-level construct here is built from that one loop form.

// WhileNotZero emits a loop that runs body as long as the cell is
// non-zero. Values proven before the loop are forgotten on entry: the
// body may run zero or many times, so nothing established on the way in
// survives it. For the same reason nothing proven inside the body survives
// the exit; afterwards the only proven fact is that the cell is zero.
func (ctx *Context) WhileNotZero(c *Cell, body func()) {
	ctx.seek(c)
	ctx.Emit("[")
	ctx.ForgetAll()
	body()
	ctx.seek(c)
	ctx.Emit("]")
	ctx.ForgetAll()
	ctx.Assume(c, 0)
}

// WhileTrue is WhileNotZero under the name callers use for boolean
// conditions.
func (ctx *Context) WhileTrue(cond *Cell, body func()) {
	ctx.WhileNotZero(cond, body)
}

// RepeatReverseDestructive runs body counter-many times by counting the
// cell down to zero. This is the only way to iterate N times on the tape
// machine: the loop terminates exactly when its decrementing counter
// hits zero. Post-condition: counter == 0.
func (ctx *Context) RepeatReverseDestructive(counter *Cell, body func(counter *Cell)) {
	ctx.WhileNotZero(counter, func() {
		body(counter)
		ctx.Decrement(counter)
	})
}

// RepeatReverse runs body cell-many times, preserving the cell by
// counting down a temporary copy instead.
func (ctx *Context) RepeatReverse(c *Cell, body func(counter *Cell)) {
	ctx.WithTemp(func(counter *Cell) {
		ctx.Copy(c, counter)
		ctx.RepeatReverseDestructive(counter, body)
	})
}

// If runs body once when cond is 1 and not at all when it is 0. cond
// must be boolean: the underlying loop runs body once per unit of cond,
// so a larger value repeats it.
func (ctx *Context) If(cond *Cell, body func()) {
	ctx.assertBool(cond)
	ctx.RepeatReverse(cond, func(*Cell) { body() })
}

// IfDestructive is If without preserving cond. Post-condition: cond == 0.
func (ctx *Context) IfDestructive(cond *Cell, body func()) {
	ctx.RepeatReverseDestructive(cond, func(*Cell) { body() })
}

// IfNot runs body once when the boolean cond is 0.
func (ctx *Context) IfNot(cond *Cell, body func()) {
	ctx.assertBool(cond)
	ctx.WithTemp(func(notCond *Cell) {
		ctx.Copy(cond, notCond)
		ctx.Not(notCond)
		ctx.IfDestructive(notCond, body)
	})
}

// IfNotDestructive is IfNot without preserving cond.
func (ctx *Context) IfNotDestructive(cond *Cell, body func()) {
	ctx.Not(cond)
	ctx.IfDestructive(cond, body)
}

// IfElse runs onTrue when the boolean cond is 1 and onFalse when it is 0.
func (ctx *Context) IfElse(cond *Cell, onTrue, onFalse func()) {
	ctx.assertBool(cond)
	ctx.WithTemp(func(tmpCond *Cell) {
		ctx.Copy(cond, tmpCond)
		ctx.If(cond, onTrue)
		ctx.IfNotDestructive(tmpCond, onFalse)
	})
}

// assertBool panics when the cell is proven to hold a non-boolean value.
// The boolean-only constructs silently misbehave on larger values, so a
// provable violation is treated as a bug in the calling code.
func (ctx *Context) assertBool(c *Cell) {
	if v, ok := ctx.Value(c); ok && v > 1 {
		panic(fmt.Sprintf("boolean construct on %v with proven value %d", c, v))
	}
}
