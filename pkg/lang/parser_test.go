package lang

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanTokens(t *testing.T) {
	tokens, err := NewScanner("let x = 10 // trailing comment\nx += 'a'").ScanTokens()
	require.NoError(t, err)

	types := make([]TokenType, len(tokens))
	for i, tok := range tokens {
		types[i] = tok.Type
	}
	assert.Equal(t, []TokenType{
		TokenLet, TokenIdent, TokenEqual, TokenNumber,
		TokenIdent, TokenPlusEqual, TokenChar,
		TokenEOF,
	}, types)

	assert.Equal(t, "x", tokens[1].Lexeme)
	assert.Equal(t, "10", tokens[3].Lexeme)
	assert.Equal(t, "a", tokens[6].Lexeme)
	assert.Equal(t, 2, tokens[6].Line)
}

func TestScanCharEscapes(t *testing.T) {
	tokens, err := NewScanner(`'\n' '\t' '\\' '\'' '\0'`).ScanTokens()
	require.NoError(t, err)
	require.Len(t, tokens, 6)
	assert.Equal(t, "\n", tokens[0].Lexeme)
	assert.Equal(t, "\t", tokens[1].Lexeme)
	assert.Equal(t, `\`, tokens[2].Lexeme)
	assert.Equal(t, "'", tokens[3].Lexeme)
	assert.Equal(t, "\x00", tokens[4].Lexeme)
}

func TestScanRejectsStrayCharacter(t *testing.T) {
	_, err := NewScanner("let x = 1 ?").ScanTokens()
	require.Error(t, err)

	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 10, perr.Offset)
}

func TestParseProgram(t *testing.T) {
	prog, err := Parse(`
		while x {
			let y = 1 + 2
		}
	`)
	require.NoError(t, err)
	require.Len(t, prog.Stmts, 1)

	while, ok := prog.Stmts[0].(*While)
	require.True(t, ok)
	assert.Equal(t, &VarExpr{Name: "x", Line: 2}, while.Cond)

	require.Len(t, while.Body, 1)
	decl, ok := while.Body[0].(*Decl)
	require.True(t, ok)
	assert.Equal(t, "y", decl.Name)
	assert.Equal(t, &BinaryExpr{
		Op:    OpAdd,
		Left:  &ConstExpr{Value: 1},
		Right: &ConstExpr{Value: 2},
	}, decl.Value)
}

func TestParseDeclWithoutInitializer(t *testing.T) {
	prog, err := Parse("let x")
	require.NoError(t, err)
	require.Len(t, prog.Stmts, 1)
	assert.Equal(t, &Decl{Name: "x", Line: 1}, prog.Stmts[0])
}

func TestParsePrecedence(t *testing.T) {
	prog, err := Parse("let r = a + b > c - d")
	require.NoError(t, err)

	decl := prog.Stmts[0].(*Decl)
	gt, ok := decl.Value.(*BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, OpGt, gt.Op, "> should bind loosest")
	assert.Equal(t, OpAdd, gt.Left.(*BinaryExpr).Op)
	assert.Equal(t, OpSub, gt.Right.(*BinaryExpr).Op)
}

func TestParseLeftAssociativity(t *testing.T) {
	prog, err := Parse("let r = a - b + c")
	require.NoError(t, err)

	outer := prog.Stmts[0].(*Decl).Value.(*BinaryExpr)
	assert.Equal(t, OpAdd, outer.Op)

	inner, ok := outer.Left.(*BinaryExpr)
	require.True(t, ok, "a - b should group first")
	assert.Equal(t, OpSub, inner.Op)
	assert.Equal(t, &VarExpr{Name: "c", Line: 1}, outer.Right)
}

func TestParseParens(t *testing.T) {
	prog, err := Parse("let r = a - (b + c)")
	require.NoError(t, err)

	outer := prog.Stmts[0].(*Decl).Value.(*BinaryExpr)
	assert.Equal(t, OpSub, outer.Op)
	assert.Equal(t, OpAdd, outer.Right.(*BinaryExpr).Op)
}

func TestParseAddAssign(t *testing.T) {
	prog, err := Parse("x += y > 3")
	require.NoError(t, err)

	add, ok := prog.Stmts[0].(*AddAssign)
	require.True(t, ok)
	assert.Equal(t, "x", add.Name)
	assert.Equal(t, OpGt, add.Value.(*BinaryExpr).Op)
}

func TestParseNestedBlocks(t *testing.T) {
	prog, err := Parse(`
		let n = 3
		while n {
			if n > 1 {
				n = n - 1
			}
			n = n - 1
		}
	`)
	require.NoError(t, err)
	require.Len(t, prog.Stmts, 2)

	while := prog.Stmts[1].(*While)
	require.Len(t, while.Body, 2)
	_, ok := while.Body[0].(*If)
	assert.True(t, ok)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   string
	}{
		{"missing brace", "while x { let y = 1", "expected '}'"},
		{"bare identifier", "x", "expected '=' or '+='"},
		{"missing expression", "let x = ", "expected expression"},
		{"constant too large", "let x = 256", "does not fit in a cell"},
		{"statement keyword", "= 3", "expected statement"},
		{"unclosed paren", "let x = (1 + 2", "expected ')'"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(tc.source)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestParseDeterministic(t *testing.T) {
	const source = "let a = 1\nwhile a { a = a - 1 }"

	first, err := Parse(source)
	require.NoError(t, err)
	second, err := Parse(source)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
