package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func types(toks []Token) []TokenType {
	out := make([]TokenType, len(toks))
	for i, t := range toks {
		out[i] = t.Type
	}
	return out
}

func nonIgnore(toks []Token) []Token {
	var out []Token
	for _, t := range toks {
		if t.Type != IGNORE {
			out = append(out, t)
		}
	}
	return out
}

func TestTokenizeBasicList(t *testing.T) {
	src := []byte("(+ 1 2.5 \"hi\")")
	toks := nonIgnore(New(src, nil).Tokenize())
	got := types(toks)
	want := []TokenType{LPAREN, IDENTIFIER, INTEGER, FLOAT, STRING, RPAREN, EOF}
	assert.Equal(t, want, got)
}

func TestTokenizeQuoteFamily(t *testing.T) {
	src := []byte("'x `(a ,b)")
	toks := nonIgnore(New(src, nil).Tokenize())
	got := types(toks)
	want := []TokenType{QUOTE, IDENTIFIER, BACKQUOTE, LPAREN, IDENTIFIER, COMMA, IDENTIFIER, RPAREN, EOF}
	assert.Equal(t, want, got)
}

func TestTokenizeBooleanLiterals(t *testing.T) {
	src := []byte("#t #f")
	toks := nonIgnore(New(src, nil).Tokenize())
	require.Len(t, toks, 3)
	assert.Equal(t, IDENTIFIER, toks[0].Type)
	assert.Equal(t, "#t", string(toks[0].Text(src)))
	assert.Equal(t, IDENTIFIER, toks[1].Type)
	assert.Equal(t, "#f", string(toks[1].Text(src)))
}

func TestTokenizeUninternedSymbol(t *testing.T) {
	src := []byte("#:gensym1")
	toks := nonIgnore(New(src, nil).Tokenize())
	require.Len(t, toks, 2)
	assert.Equal(t, UNINTERNED_SYMBOL, toks[0].Type)
	assert.Equal(t, "#:gensym1", string(toks[0].Text(src)))
}

func TestTokenizeSignedNumbers(t *testing.T) {
	src := []byte("-5 +3.5 -")
	toks := nonIgnore(New(src, nil).Tokenize())
	require.Len(t, toks, 4)
	assert.Equal(t, INTEGER, toks[0].Type)
	assert.Equal(t, FLOAT, toks[1].Type)
	assert.Equal(t, IDENTIFIER, toks[2].Type) // bare "-" is a symbol, not a number
}

func TestTokenizeExponentNotation(t *testing.T) {
	src := []byte("1e10 2.5e-3 1e")
	toks := nonIgnore(New(src, nil).Tokenize())
	require.Len(t, toks, 4)
	assert.Equal(t, FLOAT, toks[0].Type)
	assert.Equal(t, FLOAT, toks[1].Type)
	// "1e" has a malformed exponent: rewinds and re-lexes the whole token as IDENTIFIER "1e".
	assert.Equal(t, IDENTIFIER, toks[2].Type)
	assert.Equal(t, "1e", string(toks[2].Text(src)))
}

func TestTokenizeUnterminatedStringIsError(t *testing.T) {
	src := []byte(`"abc`)
	toks := nonIgnore(New(src, nil).Tokenize())
	require.Len(t, toks, 2)
	assert.Equal(t, ERROR, toks[0].Type)
}

func TestTokenizeCommentIsIgnored(t *testing.T) {
	src := []byte("1 ; a comment\n2")
	toks := nonIgnore(New(src, nil).Tokenize())
	require.Len(t, toks, 3)
	assert.Equal(t, INTEGER, toks[0].Type)
	assert.Equal(t, INTEGER, toks[1].Type)
}

func TestTokenPositionsAdvanceAcrossLines(t *testing.T) {
	src := []byte("1\n2")
	toks := nonIgnore(New(src, nil).Tokenize())
	require.Len(t, toks, 3)
	assert.Equal(t, 1, toks[0].Line)
	assert.Equal(t, 2, toks[1].Line)
}
