package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestElementsRoundTripsWithFromElements(t *testing.T) {
	elems := []*Expr{
		{Kind: KindInt, I64: 1},
		{Kind: KindInt, I64: 2},
		{Kind: KindSymbol, Str: []byte("x")},
	}
	list := FromElements(elems, 0)
	got := list.Elements()

	assert.Len(t, got, 3)
	assert.Equal(t, int64(1), got[0].I64)
	assert.Equal(t, int64(2), got[1].I64)
	assert.Equal(t, "x", string(got[2].Str))
}

func TestFromElementsEmptyProducesNil(t *testing.T) {
	e := FromElements(nil, 0)
	assert.Equal(t, KindNil, e.Kind)
	assert.Nil(t, e.Elements())
}

func TestElementsOnNonListReturnsNil(t *testing.T) {
	e := &Expr{Kind: KindInt, I64: 5}
	assert.Nil(t, e.Elements())
}

func TestIsAtom(t *testing.T) {
	assert.True(t, (&Expr{Kind: KindInt}).IsAtom())
	assert.True(t, (&Expr{Kind: KindSymbol}).IsAtom())
	assert.False(t, (&Expr{Kind: KindList}).IsAtom())
	assert.False(t, (&Expr{Kind: KindQuoted}).IsAtom())
}

func TestStringRendersWispSyntax(t *testing.T) {
	cases := []struct {
		e    *Expr
		want string
	}{
		{&Expr{Kind: KindInt, I64: 42}, "42"},
		{&Expr{Kind: KindFloat, F64: 1.0}, "1.0"},
		{&Expr{Kind: KindBool, Bool: true}, "#t"},
		{&Expr{Kind: KindBool, Bool: false}, "#f"},
		{&Expr{Kind: KindNil}, "()"},
		{&Expr{Kind: KindString, Str: []byte("hi")}, `"hi"`},
		{&Expr{Kind: KindSymbol, Str: []byte("foo")}, "foo"},
		{&Expr{Kind: KindUninternedSymbol, Str: []byte("g1")}, "#:g1"},
		{&Expr{Kind: KindQuoted, Inner: &Expr{Kind: KindSymbol, Str: []byte("x")}}, "'x"},
		{&Expr{Kind: KindQuasiquoted, Inner: &Expr{Kind: KindSymbol, Str: []byte("x")}}, "`x"},
		{&Expr{Kind: KindUnquoted, Inner: &Expr{Kind: KindSymbol, Str: []byte("x")}}, ",x"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, c.e.String())
	}
}

func TestStringRendersNestedList(t *testing.T) {
	list := FromElements([]*Expr{
		{Kind: KindSymbol, Str: []byte("+")},
		{Kind: KindInt, I64: 1},
		{Kind: KindInt, I64: 2},
	}, 0)
	assert.Equal(t, "(+ 1 2)", list.String())
}
