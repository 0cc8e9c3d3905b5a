package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/giorgioyu125/wisp/internal/arena"
	"github.com/giorgioyu125/wisp/internal/ast"
	"github.com/giorgioyu125/wisp/internal/lexer"
)

func parseAll(t *testing.T, src string) *Program {
	t.Helper()
	toks := lexer.New([]byte(src), nil).Tokenize()
	a := arena.New()
	p := New([]byte(src), toks, a)
	prog, err := p.Parse()
	require.NoError(t, err)
	return prog
}

func TestParseAtoms(t *testing.T) {
	prog := parseAll(t, `42 3.5 "hi" #t #f foo #:g1`)
	require.Len(t, prog.Forms, 7)
	assert.Equal(t, ast.KindInt, prog.Forms[0].Kind)
	assert.Equal(t, ast.KindFloat, prog.Forms[1].Kind)
	assert.Equal(t, ast.KindString, prog.Forms[2].Kind)
	assert.Equal(t, "hi", string(prog.Forms[2].Str))
	assert.Equal(t, ast.KindBool, prog.Forms[3].Kind)
	assert.True(t, prog.Forms[3].Bool)
	assert.Equal(t, ast.KindBool, prog.Forms[4].Kind)
	assert.False(t, prog.Forms[4].Bool)
	assert.Equal(t, ast.KindSymbol, prog.Forms[5].Kind)
	assert.Equal(t, ast.KindUninternedSymbol, prog.Forms[6].Kind)
	assert.Equal(t, "g1", string(prog.Forms[6].Str))
}

func TestParseNestedList(t *testing.T) {
	prog := parseAll(t, `(+ 1 (* 2 3))`)
	require.Len(t, prog.Forms, 1)
	elems := prog.Forms[0].Elements()
	require.Len(t, elems, 3)
	assert.Equal(t, "+", string(elems[0].Str))
	inner := elems[2].Elements()
	require.Len(t, inner, 3)
	assert.Equal(t, "*", string(inner[0].Str))
}

func TestParseEmptyList(t *testing.T) {
	prog := parseAll(t, `()`)
	require.Len(t, prog.Forms, 1)
	assert.Equal(t, ast.KindNil, prog.Forms[0].Kind)
}

func TestParseQuoteFamily(t *testing.T) {
	prog := parseAll(t, "'x `(a ,b)")
	require.Len(t, prog.Forms, 2)
	assert.Equal(t, ast.KindQuoted, prog.Forms[0].Kind)
	assert.Equal(t, "x", string(prog.Forms[0].Inner.Str))

	assert.Equal(t, ast.KindQuasiquoted, prog.Forms[1].Kind)
	inner := prog.Forms[1].Inner.Elements()
	require.Len(t, inner, 2)
	assert.Equal(t, ast.KindUnquoted, inner[1].Kind)
	assert.Equal(t, "b", string(inner[1].Inner.Str))
}

func TestParseNestedQuotes(t *testing.T) {
	prog := parseAll(t, "'''x")
	require.Len(t, prog.Forms, 1)
	outer := prog.Forms[0]
	assert.Equal(t, ast.KindQuoted, outer.Kind)
	assert.Equal(t, ast.KindQuoted, outer.Inner.Kind)
	assert.Equal(t, ast.KindQuoted, outer.Inner.Inner.Kind)
	assert.Equal(t, "x", string(outer.Inner.Inner.Inner.Str))
}

func TestParseIntegerOverflowDemotesToSymbol(t *testing.T) {
	prog := parseAll(t, `99999999999999999999999999999`)
	require.Len(t, prog.Forms, 1)
	assert.Equal(t, ast.KindSymbol, prog.Forms[0].Kind)
}

func TestParseUnmatchedCloseParenIsError(t *testing.T) {
	toks := lexer.New([]byte(")"), nil).Tokenize()
	a := arena.New()
	p := New([]byte(")"), toks, a)
	_, err := p.Parse()
	require.Error(t, err)
}

func TestParseUnterminatedListIsError(t *testing.T) {
	toks := lexer.New([]byte("(+ 1 2"), nil).Tokenize()
	a := arena.New()
	p := New([]byte("(+ 1 2"), toks, a)
	_, err := p.Parse()
	require.Error(t, err)
}

func TestParseQuoteWithNoFollowingExprIsError(t *testing.T) {
	toks := lexer.New([]byte("'"), nil).Tokenize()
	a := arena.New()
	p := New([]byte("'"), toks, a)
	_, err := p.Parse()
	require.Error(t, err)
}

func TestParseStringEscapes(t *testing.T) {
	prog := parseAll(t, `"a\nb\tc"`)
	require.Len(t, prog.Forms, 1)
	assert.Equal(t, "a\nb\tc", string(prog.Forms[0].Str))
}
