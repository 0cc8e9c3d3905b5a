package gc

// Eq implements eq?: identity comparison for heap-allocated values (same
// Ref), value equality for immediate atoms (ints, floats, bools, nil,
// interned symbols).
func Eq(a, b Value) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case VNil:
		return true
	case VBool:
		return a.Bool == b.Bool
	case VInt:
		return a.I64 == b.I64
	case VFloat:
		return a.F64 == b.F64
	case VSymbol:
		return a.Sym.Equal(b.Sym)
	case VBuiltin:
		return a.I64 == b.I64
	case VString, VUninterned, VCons, VClosure, VEnv:
		return a.Ref == b.Ref
	default:
		return false
	}
}

// Equal implements equal?: eq? for atoms, plus structural recursion over
// cons chains and byte-for-byte comparison of strings.
func (h *Heap) Equal(a, b Value) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case VString:
		return string(h.stringBytes(a.Ref)) == string(h.stringBytes(b.Ref))
	case VCons:
		return h.Equal(h.Car(a), h.Car(b)) && h.Equal(h.Cdr(a), h.Cdr(b))
	default:
		return Eq(a, b)
	}
}
