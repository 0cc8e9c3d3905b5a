// Package ast defines the parse-time expression tree produced by package
// parser: a tagged union of atoms and cons cells, allocated in an arena.
// Runtime values (package gc) are a distinct representation; the evaluator
// copies an Expr into the GC heap the first time it must be treated as a
// first-class value (e.g. the payload of a quote).
package ast

import (
	"strconv"
	"strings"
)

// Kind tags an Expr node.
type Kind uint8

const (
	KindInt Kind = iota
	KindFloat
	KindBool
	KindNil // the empty list, ()
	KindString
	KindSymbol
	KindUninternedSymbol
	KindList // a non-empty cons cell: Car is this cell's element, Cdr the next cell (nil at the tail)
	KindQuoted
	KindQuasiquoted
	KindUnquoted
)

// Expr is a single parse-time node. Only the fields relevant to Kind are
// populated; atoms are leaves (Car/Cdr/Inner are nil for every atom kind).
type Expr struct {
	Kind Kind

	I64  int64
	F64  float64
	Bool bool
	Str  []byte // STRING payload, or the name for SYMBOL / UNINTERNED_SYMBOL

	Car *Expr // KindList: this cell's element
	Cdr *Expr // KindList: the next cell, or nil at the tail

	Inner *Expr // KindQuoted / KindQuasiquoted / KindUnquoted: the wrapped expression

	Pos int // starting byte offset in source, for diagnostics
}

// IsAtom reports whether e is a leaf with no cons-cell children of its own
// beyond its payload, per the parser-output invariant.
func (e *Expr) IsAtom() bool {
	switch e.Kind {
	case KindList, KindQuoted, KindQuasiquoted, KindUnquoted:
		return false
	default:
		return true
	}
}

// Elements walks a non-empty LIST's cons spine into a slice. Calling
// Elements on anything but a KindList node returns nil.
func (e *Expr) Elements() []*Expr {
	if e == nil || e.Kind != KindList {
		return nil
	}
	var out []*Expr
	for cell := e; cell != nil; cell = cell.Cdr {
		out = append(out, cell.Car)
	}
	return out
}

// FromElements builds a (possibly empty) list Expr from elems, the
// complement of Elements.
func FromElements(elems []*Expr, pos int) *Expr {
	if len(elems) == 0 {
		return &Expr{Kind: KindNil, Pos: pos}
	}
	head := &Expr{Kind: KindList, Car: elems[0], Pos: pos}
	cur := head
	for _, el := range elems[1:] {
		next := &Expr{Kind: KindList, Car: el, Pos: pos}
		cur.Cdr = next
		cur = next
	}
	return head
}

// String renders e using Wisp's input syntax.
func (e *Expr) String() string {
	if e == nil {
		return "()"
	}
	switch e.Kind {
	case KindInt:
		return strconv.FormatInt(e.I64, 10)
	case KindFloat:
		return formatFloat(e.F64)
	case KindBool:
		if e.Bool {
			return "#t"
		}
		return "#f"
	case KindNil:
		return "()"
	case KindString:
		return strconv.Quote(string(e.Str))
	case KindSymbol:
		return string(e.Str)
	case KindUninternedSymbol:
		return "#:" + string(e.Str)
	case KindList:
		var parts []string
		for cell := e; cell != nil; cell = cell.Cdr {
			parts = append(parts, cell.Car.String())
		}
		return "(" + strings.Join(parts, " ") + ")"
	case KindQuoted:
		return "'" + e.Inner.String()
	case KindQuasiquoted:
		return "`" + e.Inner.String()
	case KindUnquoted:
		return "," + e.Inner.String()
	default:
		return "<unknown expr>"
	}
}

func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}
