// Package tape implements the reference interpreter for the eight-op tape
// machine targeted by the compiler. It exists for two callers: the test
// suites, which execute emitted programs and inspect cells, and the CLI
// `run` command.
package tape

import (
	"fmt"
	"io"
)

// MemSize is the number of cells on the tape.
const MemSize = 30_000

// DefaultStepLimit bounds runaway programs. Every executed operation,
// including skipped loop bodies, counts as one step.
const DefaultStepLimit = 1_000_000

// Machine executes a tape-machine program against a fixed tape of
// unsigned 8-bit cells. Cell arithmetic and data-pointer motion both
// wrap around: decrementing the pointer at cell 0 moves it to the last
// cell. Bytes outside the eight operations are ignored.
type Machine struct {
	code      []byte
	mem       []byte
	loopStack []int
	ip        int
	dp        int
	steps     int
	stepLimit int
	in        io.Reader
	out       io.Writer
}

// Option configures a Machine.
type Option func(*Machine)

// WithInput sets the reader backing the `,` operation. With no input
// configured, or once the reader is exhausted, `,` writes 0.
func WithInput(r io.Reader) Option { return func(m *Machine) { m.in = r } }

// WithOutput sets the writer backing the `.` operation.
func WithOutput(w io.Writer) Option { return func(m *Machine) { m.out = w } }

// WithStepLimit overrides DefaultStepLimit.
func WithStepLimit(n int) Option { return func(m *Machine) { m.stepLimit = n } }

// New creates a machine for the given program with all cells zeroed and
// the data pointer at cell 0.
func New(code []byte, opts ...Option) *Machine {
	m := &Machine{
		code:      code,
		mem:       make([]byte, MemSize),
		stepLimit: DefaultStepLimit,
		out:       io.Discard,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Mem exposes the entire tape for inspection.
func (m *Machine) Mem() []byte { return m.mem }

// Cell returns the value of cell i.
func (m *Machine) Cell(i int) byte { return m.mem[i] }

// Pointer returns the current data-pointer position.
func (m *Machine) Pointer() int { return m.dp }

// Steps returns the number of operations executed so far.
func (m *Machine) Steps() int { return m.steps }

// Run executes the program to completion. It fails on an unmatched
// bracket or when the step limit is exceeded.
func (m *Machine) Run() error {
	m.ip = 0
	m.steps = 0
	m.loopStack = m.loopStack[:0]

	for m.ip < len(m.code) {
		switch m.code[m.ip] {
		case OpLeft:
			m.dp = (m.dp + MemSize - 1) % MemSize
			m.ip++
		case OpRight:
			m.dp = (m.dp + 1) % MemSize
			m.ip++
		case OpIncrement:
			m.mem[m.dp]++
			m.ip++
		case OpDecrement:
			m.mem[m.dp]--
			m.ip++
		case OpLoopStart:
			if err := m.loopStart(); err != nil {
				return err
			}
		case OpLoopEnd:
			if len(m.loopStack) == 0 {
				return fmt.Errorf("unmatched ']' at offset %d", m.ip)
			}
			m.ip = m.loopStack[len(m.loopStack)-1]
			m.loopStack = m.loopStack[:len(m.loopStack)-1]
		case OpPrint:
			if _, err := m.out.Write([]byte{m.mem[m.dp]}); err != nil {
				return err
			}
			m.ip++
		case OpRead:
			m.mem[m.dp] = m.readByte()
			m.ip++
		default:
			m.ip++
		}

		m.steps++
		if m.steps > m.stepLimit {
			return fmt.Errorf("step limit of %d exceeded", m.stepLimit)
		}
	}
	if len(m.loopStack) > 0 {
		return fmt.Errorf("unmatched '[' in program")
	}
	return nil
}

// loopStart either enters the loop body, remembering the position of the
// `[` so the matching `]` can jump back, or skips to just past the
// matching `]` when the current cell is zero.
func (m *Machine) loopStart() error {
	if m.mem[m.dp] != 0 {
		m.loopStack = append(m.loopStack, m.ip)
		m.ip++
		return nil
	}

	depth := 1
	for depth > 0 {
		m.ip++
		if m.ip >= len(m.code) {
			return fmt.Errorf("unmatched '[' in program")
		}
		switch m.code[m.ip] {
		case OpLoopStart:
			depth++
		case OpLoopEnd:
			depth--
		}
	}
	m.ip++
	return nil
}

func (m *Machine) readByte() byte {
	if m.in == nil {
		return 0
	}
	var buf [1]byte
	for {
		n, err := m.in.Read(buf[:])
		if n > 0 {
			return buf[0]
		}
		if err != nil {
			return 0
		}
	}
}
