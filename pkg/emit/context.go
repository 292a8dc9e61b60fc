// Package emit builds tape-machine programs from cell-level primitives.
//
// A Context wraps three cooperating pieces of state: the append-only code
// buffer, the cursor tracking where the machine's data pointer will be at
// this point of the emitted program, and a shadow tape of known cell
// values used to skip emission that would be a no-op. Cells are reserved
// through a stack-discipline allocator so that the deeply nested
// temporaries of the compound primitives keep reusing the same low
// addresses.
//
// The cursor and the shadow tape are never read back from a running
// machine. They are maintained purely by bookkeeping at emission time,
// and their one invariant is that executing the emitted prefix on the
// reference interpreter reproduces them exactly.
package emit

import "bytes"

// cellValue is one entry of the known-value shadow tape. ok false means
// the cell's runtime value cannot be proven at this point of the program.
type cellValue struct {
	ok bool
	v  byte
}

// Context accumulates an emitted program.
type Context struct {
	buf   bytes.Buffer
	addr  int
	known []cellValue
	cells allocator
}

// New returns a context whose cursor starts at address 0, matching a
// machine about to execute the program from cell 0.
func New() *Context {
	return NewAt(0)
}

// NewAt returns a context whose cursor starts at the given address. Used
// when the emitted fragment will be appended to code that leaves the data
// pointer elsewhere.
func NewAt(addr int) *Context {
	return &Context{addr: addr}
}

// Bytes returns the emitted program.
func (ctx *Context) Bytes() []byte { return ctx.buf.Bytes() }

// Code returns the emitted program as a string.
func (ctx *Context) Code() string { return ctx.buf.String() }

// Addr returns the cursor: the data-pointer position the machine will be
// at after executing everything emitted so far.
func (ctx *Context) Addr() int { return ctx.addr }

// Emit appends raw code to the program buffer.
func (ctx *Context) Emit(code string) {
	ctx.buf.WriteString(code)
}

func (ctx *Context) emitRepeat(op byte, n int) {
	for i := 0; i < n; i++ {
		ctx.buf.WriteByte(op)
	}
}

// seek emits pointer moves from the cursor to the cell's address. Seeking
// to the current address emits nothing.
func (ctx *Context) seek(c *Cell) {
	checkLive(c)
	offset := c.addr - ctx.addr
	if offset > 0 {
		ctx.emitRepeat('>', offset)
	} else {
		ctx.emitRepeat('<', -offset)
	}
	ctx.addr = c.addr
}

// Value returns the proven value of the cell, if any.
func (ctx *Context) Value(c *Cell) (byte, bool) {
	if c.addr < 0 || c.addr >= len(ctx.known) {
		return 0, false
	}
	kv := ctx.known[c.addr]
	return kv.v, kv.ok
}

// Assume records that the cell provably holds v at this point of the
// emitted program. Tracking is suppressed for negative addresses.
func (ctx *Context) Assume(c *Cell, v byte) {
	if c.addr < 0 {
		return
	}
	for c.addr >= len(ctx.known) {
		ctx.known = append(ctx.known, cellValue{})
	}
	ctx.known[c.addr] = cellValue{ok: true, v: v}
}

// AssumeBool records a proven boolean value.
func (ctx *Context) AssumeBool(c *Cell, v bool) {
	if v {
		ctx.Assume(c, 1)
	} else {
		ctx.Assume(c, 0)
	}
}

// Forget discards the proven value of the cell.
func (ctx *Context) Forget(c *Cell) {
	if c.addr < 0 || c.addr >= len(ctx.known) {
		return
	}
	ctx.known[c.addr] = cellValue{}
}

// ForgetAll discards every proven value. Invoked when emission enters
// code whose execution depends on runtime data: anything proven on the
// way into a loop may hold on some iterations and not others.
func (ctx *Context) ForgetAll() {
	for i := range ctx.known {
		ctx.known[i] = cellValue{}
	}
}

// mapKnown applies f to the proven value of the cell, if there is one.
func (ctx *Context) mapKnown(c *Cell, f func(byte) byte) {
	if c.addr < 0 || c.addr >= len(ctx.known) {
		return
	}
	if kv := &ctx.known[c.addr]; kv.ok {
		kv.v = f(kv.v)
	}
}

// Alloc reserves the lowest free tape address. The caller owns the
// returned cell until it passes it to Release.
func (ctx *Context) Alloc() *Cell {
	return ctx.cells.alloc()
}

// Release returns a cell's address to the free pool. The address may be
// handed out again by a later Alloc; emitting through the released cell
// afterwards panics.
func (ctx *Context) Release(c *Cell) {
	ctx.cells.release(c)
}

// Live returns the number of live reservations, for invariant checks.
func (ctx *Context) Live() int {
	return ctx.cells.liveCount()
}

// WithTemp runs f with one freshly allocated cell, released on every
// exit path.
func (ctx *Context) WithTemp(f func(*Cell)) {
	c := ctx.Alloc()
	defer ctx.Release(c)
	f(c)
}

// WithTemps runs f with n freshly allocated cells, released on every
// exit path in reverse allocation order.
func (ctx *Context) WithTemps(n int, f func([]*Cell)) {
	cells := make([]*Cell, n)
	for i := range cells {
		c := ctx.Alloc()
		cells[i] = c
		defer ctx.Release(c)
	}
	f(cells)
}
