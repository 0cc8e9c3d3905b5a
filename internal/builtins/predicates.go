package builtins

import (
	"github.com/giorgioyu125/wisp/internal/gc"
	"github.com/giorgioyu125/wisp/internal/wisperr"
)

// unary wraps a single-argument predicate, checking arity once for all of
// them.
func unary(name string, pred func(v gc.Value, heap *gc.Heap) bool) Func {
	return func(args []gc.Value, heap *gc.Heap, caller Caller) (gc.Value, error) {
		if len(args) != 1 {
			return gc.Value{}, wisperr.New(wisperr.KindArity, name+" requires exactly 1 argument")
		}
		return gc.Bool(pred(args[0], heap)), nil
	}
}

func isProperList(v gc.Value, heap *gc.Heap) bool {
	cur := v
	for cur.Kind == gc.VCons {
		cur = heap.Cdr(cur)
	}
	return cur.Kind == gc.VNil
}

func registerPredicates() {
	register(AtomP, "atom?", unary("atom?", func(v gc.Value, heap *gc.Heap) bool { return v.Kind != gc.VCons }))
	register(PairP, "pair?", unary("pair?", func(v gc.Value, heap *gc.Heap) bool { return v.Kind == gc.VCons }))
	register(ListP, "list?", unary("list?", isProperList))
	register(NullP, "null?", unary("null?", func(v gc.Value, heap *gc.Heap) bool { return v.Kind == gc.VNil }))
	register(NumberP, "number?", unary("number?", func(v gc.Value, heap *gc.Heap) bool {
		return v.Kind == gc.VInt || v.Kind == gc.VFloat
	}))
	register(StringP, "string?", unary("string?", func(v gc.Value, heap *gc.Heap) bool { return v.Kind == gc.VString }))
	register(SymbolP, "symbol?", unary("symbol?", func(v gc.Value, heap *gc.Heap) bool {
		return v.Kind == gc.VSymbol || v.Kind == gc.VUninterned
	}))
	register(ProcedureP, "procedure?", unary("procedure?", func(v gc.Value, heap *gc.Heap) bool {
		return v.Kind == gc.VClosure || v.Kind == gc.VBuiltin
	}))
}
