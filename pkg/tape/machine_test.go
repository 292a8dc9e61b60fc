package tape

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, code string, opts ...Option) *Machine {
	t.Helper()
	m := New([]byte(code), opts...)
	require.NoError(t, m.Run())
	return m
}

func TestPointerWrapsLeft(t *testing.T) {
	m := run(t, "<")
	assert.Equal(t, MemSize-1, m.Pointer())

	m = run(t, "<<")
	assert.Equal(t, MemSize-2, m.Pointer())
}

func TestPointerWrapsRight(t *testing.T) {
	m := run(t, ">")
	assert.Equal(t, 1, m.Pointer())

	m = run(t, strings.Repeat(">", MemSize+1))
	assert.Equal(t, 1, m.Pointer())
}

func TestIncrement(t *testing.T) {
	m := run(t, "+>++>+++")
	assert.Equal(t, []byte{1, 2, 3}, m.Mem()[:3])
}

func TestDecrementWraps(t *testing.T) {
	m := run(t, "->-->---")
	assert.Equal(t, []byte{255, 254, 253}, m.Mem()[:3])
}

func TestLoop(t *testing.T) {
	m := run(t, ">++++++[<+++++++>-]")
	assert.Equal(t, []byte{42, 0}, m.Mem()[:2])
}

func TestNestedLoopsSkipped(t *testing.T) {
	run(t, "[[[]]]")
}

func TestCommentBytesIgnored(t *testing.T) {
	m := run(t, "+ one more + and a loop [-]")
	assert.Equal(t, byte(0), m.Cell(0))
}

func TestUnmatchedLoopEnd(t *testing.T) {
	err := New([]byte("]")).Run()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unmatched ']'")
}

func TestUnmatchedLoopStart(t *testing.T) {
	err := New([]byte("[+")).Run()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unmatched '['")
}

func TestStepLimit(t *testing.T) {
	err := New([]byte("+[]"), WithStepLimit(100)).Run()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "step limit")
}

func TestPrint(t *testing.T) {
	var out bytes.Buffer
	code := strings.Repeat("+", 'h') + "." + "+++" + "."
	run(t, code, WithOutput(&out))
	assert.Equal(t, "hk", out.String())
}

func TestRead(t *testing.T) {
	m := run(t, ",>,>,", WithInput(strings.NewReader("ab")))
	assert.Equal(t, []byte{'a', 'b', 0}, m.Mem()[:3])
}

func TestRerunKeepsTape(t *testing.T) {
	m := New([]byte("+"))
	require.NoError(t, m.Run())
	require.NoError(t, m.Run())
	assert.Equal(t, byte(2), m.Cell(0))
}
