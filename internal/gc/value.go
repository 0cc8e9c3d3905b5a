// Package gc implements Wisp's runtime value representation and its
// generational copying garbage collector: Eden, two survivor semi-spaces,
// and an old generation, with forwarding pointers and a reference
// extraction callback the collector uses to trace live values.
package gc

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// ValueKind tags a runtime Value.
type ValueKind uint8

const (
	VNil ValueKind = iota
	VBool
	VInt
	VFloat
	VString
	VSymbol
	VUninterned
	VCons
	VClosure
	VBuiltin
	VEnv // internal: a reference to a GC-managed environment (not user-visible)
)

// Symbol is an interned name: comparisons between Symbols of the same
// name are pointer-equal via the shared *symbolEntry, with a precomputed
// hash for fast table lookups.
type Symbol struct {
	entry *symbolEntry
}

type symbolEntry struct {
	name string
	hash uint32
}

// Name returns the symbol's textual name.
func (s Symbol) Name() string {
	if s.entry == nil {
		return ""
	}
	return s.entry.name
}

// Hash returns the symbol's precomputed FNV-1a hash.
func (s Symbol) Hash() uint32 {
	if s.entry == nil {
		return 0
	}
	return s.entry.hash
}

// Equal reports pointer equality between two interned symbols.
func (s Symbol) Equal(o Symbol) bool { return s.entry == o.entry }

func (s Symbol) IsZero() bool { return s.entry == nil }

// Value is the evaluator-visible tagged union: small enough to pass and
// copy by value everywhere (cons car/cdr, environment bindings, argument
// lists), with heap-kind variants referencing an object through Ref.
type Value struct {
	Kind ValueKind
	I64  int64
	F64  float64
	Bool bool
	Sym  Symbol
	Ref  Ref
}

// Nil is the canonical empty-list / unit value.
var Nil = Value{Kind: VNil}

func Bool(b bool) Value  { return Value{Kind: VBool, Bool: b} }
func Int(i int64) Value  { return Value{Kind: VInt, I64: i} }
func Float(f float64) Value { return Value{Kind: VFloat, F64: f} }
func SymbolValue(s Symbol) Value { return Value{Kind: VSymbol, Sym: s} }

// Truthy implements the language's single falsy-value rule: everything
// other than #f and () is truthy.
func (v Value) Truthy() bool {
	if v.Kind == VNil {
		return false
	}
	if v.Kind == VBool {
		return v.Bool
	}
	return true
}

// IsNil reports whether v is the empty list.
func (v Value) IsNil() bool { return v.Kind == VNil }

// String renders a Value using Wisp's printed representation; for heap
// values it asks the Heap that owns Ref for the payload.
func (v Value) String(h *Heap) string {
	switch v.Kind {
	case VNil:
		return "()"
	case VBool:
		if v.Bool {
			return "#t"
		}
		return "#f"
	case VInt:
		return strconv.FormatInt(v.I64, 10)
	case VFloat:
		return formatFloat(v.F64)
	case VSymbol:
		return v.Sym.Name()
	case VString:
		return strconv.Quote(string(h.stringBytes(v.Ref)))
	case VUninterned:
		return "#:" + h.uninternedName(v.Ref)
	case VCons:
		return h.consString(v)
	case VClosure:
		return "#<closure>"
	case VBuiltin:
		return "#<builtin:" + strconv.FormatInt(v.I64, 10) + ">"
	case VEnv:
		return "#<environment>"
	default:
		return "#<unknown>"
	}
}

func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

// NewUUID mints the identity carried by a fresh uninterned symbol; two
// #:name literals parsed separately never share one, even with the same
// textual name, so they are never eq?.
func NewUUID() [16]byte {
	id := uuid.New()
	return id
}
