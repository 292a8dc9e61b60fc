package emit

import "fmt"

// Cell is an owned reservation of one tape address. Primitives take cells
// rather than raw addresses so that the allocator can police lifetimes:
// once a cell is released, any further emission through it panics.
//
// Cells obtained from Alloc carry a slot record; cells pinned to a fixed
// address via CellAt do not participate in allocation and are never
// checked for liveness.
type Cell struct {
	addr int
	slot *slot
}

// Addr returns the tape address this cell reserves.
func (c *Cell) Addr() int { return c.addr }

func (c *Cell) String() string {
	if c.slot == nil {
		return fmt.Sprintf("cell@%d(pinned)", c.addr)
	}
	return fmt.Sprintf("cell@%d", c.addr)
}

// Is reports whether two cells refer to the same tape address.
func (c *Cell) Is(other *Cell) bool { return c.addr == other.addr }

// CellAt returns a cell pinned to a fixed address, outside the allocator.
// Negative addresses are allowed; value tracking is suppressed for them.
func CellAt(addr int) *Cell { return &Cell{addr: addr} }

type slot struct {
	live bool
}

// allocator hands out tape addresses with stack discipline: the lowest
// free address is always reused first, so temporaries released in one
// primitive are recycled by the next.
type allocator struct {
	slots []*slot
}

func (a *allocator) alloc() *Cell {
	for addr, s := range a.slots {
		if !s.live {
			s.live = true
			return &Cell{addr: addr, slot: s}
		}
	}
	s := &slot{live: true}
	a.slots = append(a.slots, s)
	return &Cell{addr: len(a.slots) - 1, slot: s}
}

func (a *allocator) release(c *Cell) {
	if c.slot == nil {
		panic(fmt.Sprintf("release of pinned %v", c))
	}
	if !c.slot.live {
		panic(fmt.Sprintf("double release of %v", c))
	}
	c.slot.live = false
}

// liveCount returns the number of live reservations.
func (a *allocator) liveCount() int {
	n := 0
	for _, s := range a.slots {
		if s.live {
			n++
		}
	}
	return n
}

// checkLive panics if c has been released. Emission through a dead cell
// is a compiler bug, not a user error.
func checkLive(c *Cell) {
	if c.slot != nil && !c.slot.live {
		panic(fmt.Sprintf("emission through released %v", c))
	}
}
