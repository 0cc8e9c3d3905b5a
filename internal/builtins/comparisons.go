package builtins

import (
	"github.com/giorgioyu125/wisp/internal/gc"
	"github.com/giorgioyu125/wisp/internal/wisperr"
)

func registerComparisons() {
	register(NumEq, "=", chain(func(a, b float64) bool { return a == b }))
	register(Lt, "<", chain(func(a, b float64) bool { return a < b }))
	register(Gt, ">", chain(func(a, b float64) bool { return a > b }))
	register(Le, "<=", chain(func(a, b float64) bool { return a <= b }))
	register(Ge, ">=", chain(func(a, b float64) bool { return a >= b }))
}

// chain builds a variadic comparison builtin: every adjacent pair must
// satisfy cmp, promoting integers to float when the pair is mixed.
func chain(cmp func(a, b float64) bool) Func {
	return func(args []gc.Value, heap *gc.Heap, caller Caller) (gc.Value, error) {
		if len(args) < 2 {
			return gc.Value{}, wisperr.New(wisperr.KindArity, "comparison requires at least 2 arguments")
		}
		prev, _, err := numeric(args[0])
		if err != nil {
			return gc.Value{}, err
		}
		for _, a := range args[1:] {
			cur, _, err := numeric(a)
			if err != nil {
				return gc.Value{}, err
			}
			if !cmp(prev, cur) {
				return gc.Bool(false), nil
			}
			prev = cur
		}
		return gc.Bool(true), nil
	}
}
