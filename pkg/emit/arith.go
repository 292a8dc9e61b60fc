package emit

import "fmt"

// Multi-cell arithmetic. Source and target must be distinct cells;
// passing the same address is a bug in the calling code.

func assertDistinct(a, b *Cell) {
	if a.Is(b) {
		panic(fmt.Sprintf("distinct operands required, got %v twice", a))
	}
}

// Add performs target += source, counting source down to zero.
// Post-condition: source == 0.
func (ctx *Context) Add(target, source *Cell) {
	assertDistinct(source, target)

	ctx.RepeatReverseDestructive(source, func(*Cell) {
		ctx.Increment(target)
	})
}

// Sub performs target -= source, counting source down to zero.
// Post-condition: source == 0.
func (ctx *Context) Sub(target, source *Cell) {
	assertDistinct(source, target)

	ctx.RepeatReverseDestructive(source, func(*Cell) {
		ctx.Decrement(target)
	})
}

// Mul performs target *= source by repeated addition: target-many rounds
// of adding a copy of source into an accumulator.
func (ctx *Context) Mul(target, source *Cell) {
	assertDistinct(source, target)

	ctx.WithTemps(2, func(cells []*Cell) {
		product, tmp := cells[0], cells[1]
		ctx.Clear(product)

		ctx.RepeatReverseDestructive(target, func(*Cell) {
			ctx.Copy(source, tmp)
			ctx.Add(product, tmp)
		})

		ctx.Move(product, target)
	})
}

// Move transfers source into target, leaving source zero. A no-op when
// both refer to the same address.
func (ctx *Context) Move(source, target *Cell) {
	if source.Is(target) {
		return
	}

	ctx.Clear(target)

	ctx.WhileNotZero(source, func() {
		ctx.Increment(target)
		ctx.Decrement(source)
	})
}

// Copy duplicates source into target, preserving source. The value is
// moved out to a temporary and dealt back one unit at a time into both
// cells. A no-op when both refer to the same address.
func (ctx *Context) Copy(source, target *Cell) {
	if source.Is(target) {
		return
	}

	ctx.WithTemp(func(tmp *Cell) {
		ctx.Clear(target)
		ctx.Move(source, tmp)
		ctx.RepeatReverseDestructive(tmp, func(*Cell) {
			ctx.Increment(source)
			ctx.Increment(target)
		})
	})
}
