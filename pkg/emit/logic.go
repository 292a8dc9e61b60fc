package emit

// Comparison and boolean primitives. The boolean operations expect their
// operands in {0,1}; anything else produces undefined results, as is
// usual for tape-language idioms. The Assume calls inside loop bodies
// re-establish facts that the loop entry wiped but that hold on every
// path reaching them, keeping the single-byte SetBool forms available.

// Not inverts the boolean cell in place: c = 1 - c. A non-boolean cell
// underflows; callers must restrict the domain.
func (ctx *Context) Not(c *Cell) {
	ctx.WithTemp(func(isFalse *Cell) {
		ctx.Set(isFalse, 1)

		ctx.RepeatReverseDestructive(c, func(*Cell) {
			ctx.Decrement(isFalse)
		})

		ctx.RepeatReverseDestructive(isFalse, func(*Cell) {
			ctx.Increment(c)
		})
	})
}

// IsZeroDestructive replaces the cell with the boolean (cell == 0).
func (ctx *Context) IsZeroDestructive(value *Cell) {
	ctx.WithTemp(func(isZero *Cell) {
		ctx.SetBool(isZero, true)

		ctx.WhileNotZero(value, func() {
			ctx.AssumeBool(isZero, true)
			ctx.SetBool(isZero, false)
			ctx.SetBool(value, false)
		})

		ctx.IfDestructive(isZero, func() {
			ctx.AssumeBool(value, false)
			ctx.SetBool(value, true)
		})
	})
}

// IsZero stores the boolean (source == 0) into target.
func (ctx *Context) IsZero(source, target *Cell) {
	ctx.Copy(source, target)
	ctx.IsZeroDestructive(target)
}

// IsNotZeroDestructive replaces the cell with the boolean (cell != 0).
func (ctx *Context) IsNotZeroDestructive(value *Cell) {
	ctx.IsZeroDestructive(value)
	ctx.Not(value)
}

// IsNotZero stores the boolean (source != 0) into target.
func (ctx *Context) IsNotZero(source, target *Cell) {
	ctx.IsZero(source, target)
	ctx.Not(target)
}

// EqualsAssign replaces target with the boolean (source == target).
// Subtracting the operands wraps, so the difference is zero exactly when
// they were equal.
func (ctx *Context) EqualsAssign(source, target *Cell) {
	ctx.WithTemp(func(tmp *Cell) {
		ctx.Copy(source, tmp)

		ctx.RepeatReverseDestructive(tmp, func(*Cell) {
			ctx.Decrement(target)
		})

		ctx.IsZeroDestructive(target)
	})
}

// Equals stores the boolean (a == b) into target.
func (ctx *Context) Equals(a, b, target *Cell) {
	ctx.Copy(b, target)
	ctx.EqualsAssign(a, target)
}

// NotEqualsAssign replaces target with the boolean (source != target).
func (ctx *Context) NotEqualsAssign(source, target *Cell) {
	ctx.EqualsAssign(source, target)
	ctx.Not(target)
}

// GreaterThanAssign replaces target with the boolean (source > target).
// Folded to a constant when both operand values are proven. Otherwise
// both values count down in lockstep until one hits zero; source was
// strictly greater exactly when target bottomed out first.
func (ctx *Context) GreaterThanAssign(source, target *Cell) {
	sv, sok := ctx.Value(source)
	tv, tok := ctx.Value(target)
	if sok && tok {
		ctx.SetBool(target, sv > tv)
		return
	}

	ctx.WithTemps(4, func(cells []*Cell) {
		tmp, tmpIsZero, targetIsZero, neitherIsZero := cells[0], cells[1], cells[2], cells[3]

		ctx.Copy(source, tmp)

		ctx.IsZero(tmp, tmpIsZero)
		ctx.IsZero(target, targetIsZero)
		ctx.Nor(tmpIsZero, targetIsZero, neitherIsZero)

		ctx.WhileTrue(neitherIsZero, func() {
			ctx.Decrement(tmp)
			ctx.Decrement(target)

			ctx.IsZero(tmp, tmpIsZero)
			ctx.IsZero(target, targetIsZero)
			ctx.Nor(tmpIsZero, targetIsZero, neitherIsZero)
		})

		ctx.AndNot(targetIsZero, tmpIsZero, target)
	})
}

// GreaterThan stores the boolean (a > b) into target. Folded to a
// constant when both operand values are proven.
func (ctx *Context) GreaterThan(a, b, target *Cell) {
	av, aok := ctx.Value(a)
	bv, bok := ctx.Value(b)
	if aok && bok {
		ctx.SetBool(target, av > bv)
		return
	}
	ctx.Copy(b, target)
	ctx.GreaterThanAssign(a, target)
}

// AndAssign replaces target with the boolean (source AND target).
func (ctx *Context) AndAssign(source, target *Cell) {
	ctx.WithTemp(func(tmp *Cell) {
		ctx.Move(target, tmp)

		ctx.If(source, func() {
			ctx.IfDestructive(tmp, func() {
				ctx.IncrementBy(target, 1)
			})
		})
	})
}

// And stores the boolean (a AND b) into target.
func (ctx *Context) And(a, b, target *Cell) {
	assertDistinct(a, target)
	assertDistinct(b, target)
	ctx.Copy(b, target)
	ctx.AndAssign(a, target)
}

// AndNot stores the boolean (a AND NOT b) into target.
func (ctx *Context) AndNot(a, b, target *Cell) {
	ctx.Copy(b, target)
	ctx.Not(target)
	ctx.AndAssign(a, target)
}

// OrAssign replaces target with the boolean (source OR target).
func (ctx *Context) OrAssign(source, target *Cell) {
	ctx.WithTemp(func(tmp *Cell) {
		ctx.Move(target, tmp)

		ctx.If(source, func() {
			ctx.AssumeBool(target, false)
			ctx.SetBool(target, true)
		})

		ctx.IfDestructive(tmp, func() {
			ctx.SetBool(target, true)
		})
	})
}

// Or stores the boolean (a OR b) into target.
func (ctx *Context) Or(a, b, target *Cell) {
	assertDistinct(a, target)
	assertDistinct(b, target)
	ctx.Copy(b, target)
	ctx.OrAssign(a, target)
}

// NorAssign replaces target with the boolean (source NOR target).
func (ctx *Context) NorAssign(source, target *Cell) {
	ctx.OrAssign(source, target)
	ctx.Not(target)
}

// Nor stores the boolean (a NOR b) into target.
func (ctx *Context) Nor(a, b, target *Cell) {
	assertDistinct(a, target)
	assertDistinct(b, target)
	ctx.Copy(b, target)
	ctx.NorAssign(a, target)
}

// XorAssign replaces target with the boolean (source XOR target). On
// booleans this coincides with inequality, so it shares the equality
// construction; the name states the intent.
func (ctx *Context) XorAssign(source, target *Cell) {
	ctx.NotEqualsAssign(source, target)
}

// Xor stores the boolean (a XOR b) into target.
func (ctx *Context) Xor(a, b, target *Cell) {
	assertDistinct(a, target)
	assertDistinct(b, target)
	ctx.Copy(b, target)
	ctx.XorAssign(a, target)
}
