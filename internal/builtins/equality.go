package builtins

import (
	"github.com/giorgioyu125/wisp/internal/gc"
	"github.com/giorgioyu125/wisp/internal/wisperr"
)

func registerEquality() {
	register(EqP, "eq?", func(args []gc.Value, heap *gc.Heap, caller Caller) (gc.Value, error) {
		if len(args) != 2 {
			return gc.Value{}, wisperr.New(wisperr.KindArity, "eq? requires exactly 2 arguments")
		}
		return gc.Bool(gc.Eq(args[0], args[1])), nil
	})
	register(EqualP, "equal?", func(args []gc.Value, heap *gc.Heap, caller Caller) (gc.Value, error) {
		if len(args) != 2 {
			return gc.Value{}, wisperr.New(wisperr.KindArity, "equal? requires exactly 2 arguments")
		}
		return gc.Bool(heap.Equal(args[0], args[1])), nil
	})
}
