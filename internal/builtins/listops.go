package builtins

import (
	"github.com/giorgioyu125/wisp/internal/gc"
	"github.com/giorgioyu125/wisp/internal/wisperr"
)

func registerListOps() {
	register(Cons, "cons", func(args []gc.Value, heap *gc.Heap, caller Caller) (gc.Value, error) {
		if len(args) != 2 {
			return gc.Value{}, wisperr.New(wisperr.KindArity, "cons requires exactly 2 arguments")
		}
		return heap.NewCons(args[0], args[1])
	})
	register(Car, "car", func(args []gc.Value, heap *gc.Heap, caller Caller) (gc.Value, error) {
		if len(args) != 1 {
			return gc.Value{}, wisperr.New(wisperr.KindArity, "car requires exactly 1 argument")
		}
		if args[0].Kind != gc.VCons {
			return gc.Value{}, wisperr.New(wisperr.KindType, "car requires a pair")
		}
		return heap.Car(args[0]), nil
	})
	register(Cdr, "cdr", func(args []gc.Value, heap *gc.Heap, caller Caller) (gc.Value, error) {
		if len(args) != 1 {
			return gc.Value{}, wisperr.New(wisperr.KindArity, "cdr requires exactly 1 argument")
		}
		if args[0].Kind != gc.VCons {
			return gc.Value{}, wisperr.New(wisperr.KindType, "cdr requires a pair")
		}
		return heap.Cdr(args[0]), nil
	})
	register(List, "list", func(args []gc.Value, heap *gc.Heap, caller Caller) (gc.Value, error) {
		result := gc.Nil
		for i := len(args) - 1; i >= 0; i-- {
			var err error
			result, err = heap.NewCons(args[i], result)
			if err != nil {
				return gc.Value{}, err
			}
		}
		return result, nil
	})
}
