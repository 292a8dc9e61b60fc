package emit

// Single-cell primitives. Each one seeks to its cell, emits a constant
// byte sequence, and updates the known-value shadow to match what the
// machine will hold after executing those bytes.

// Clear zeroes the cell. Skipped entirely when the cell is proven zero.
func (ctx *Context) Clear(c *Cell) {
	if v, ok := ctx.Value(c); ok && v == 0 {
		return
	}
	ctx.seek(c)
	ctx.Emit("[-]")
	ctx.Assume(c, 0)
}

// Set stores value into the cell. Skipped when the cell is proven to
// already hold it.
func (ctx *Context) Set(c *Cell, value byte) {
	if v, ok := ctx.Value(c); ok && v == value {
		return
	}
	ctx.seek(c)
	ctx.Clear(c)
	ctx.IncrementBy(c, value)
}

// SetBool stores 0 or 1 into the cell. Flipping between the two proven
// booleans costs a single + or - instead of the four-byte [-]+ form.
func (ctx *Context) SetBool(c *Cell, value bool) {
	switch v, ok := ctx.Value(c); {
	case ok && v == 0 && value:
		ctx.Increment(c)
	case ok && v == 1 && !value:
		ctx.Decrement(c)
	default:
		if value {
			ctx.Set(c, 1)
		} else {
			ctx.Set(c, 0)
		}
	}
}

// Print emits the cell as one output byte.
func (ctx *Context) Print(c *Cell) {
	ctx.seek(c)
	ctx.Emit(".")
}

// Read stores one input byte into the cell. The cell's value is no
// longer provable afterwards.
func (ctx *Context) Read(c *Cell) {
	ctx.seek(c)
	ctx.Forget(c)
	ctx.Emit(",")
}

// Increment adds one to the cell, wrapping.
func (ctx *Context) Increment(c *Cell) {
	ctx.seek(c)
	ctx.Emit("+")
	ctx.mapKnown(c, func(v byte) byte { return v + 1 })
}

// IncrementBy adds amount to the cell, wrapping.
func (ctx *Context) IncrementBy(c *Cell, amount byte) {
	ctx.seek(c)
	ctx.emitRepeat('+', int(amount))
	ctx.mapKnown(c, func(v byte) byte { return v + amount })
}

// Decrement subtracts one from the cell, wrapping.
func (ctx *Context) Decrement(c *Cell) {
	ctx.seek(c)
	ctx.Emit("-")
	ctx.mapKnown(c, func(v byte) byte { return v - 1 })
}

// DecrementBy subtracts amount from the cell, wrapping.
func (ctx *Context) DecrementBy(c *Cell, amount byte) {
	ctx.seek(c)
	ctx.emitRepeat('-', int(amount))
	ctx.mapKnown(c, func(v byte) byte { return v - amount })
}
