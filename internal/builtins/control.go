package builtins

import (
	"github.com/giorgioyu125/wisp/internal/gc"
	"github.com/giorgioyu125/wisp/internal/wisperr"
)

func registerControl() {
	register(Apply, "apply", func(args []gc.Value, heap *gc.Heap, caller Caller) (gc.Value, error) {
		if len(args) != 2 {
			return gc.Value{}, wisperr.New(wisperr.KindArity, "apply requires exactly 2 arguments")
		}
		if !isProperList(args[1], heap) {
			return gc.Value{}, wisperr.New(wisperr.KindType, "apply requires a proper list of arguments")
		}
		var flat []gc.Value
		for cur := args[1]; cur.Kind == gc.VCons; cur = heap.Cdr(cur) {
			flat = append(flat, heap.Car(cur))
		}
		return caller.Apply(args[0], flat)
	})
	register(Eval, "eval", func(args []gc.Value, heap *gc.Heap, caller Caller) (gc.Value, error) {
		if len(args) != 1 && len(args) != 2 {
			return gc.Value{}, wisperr.New(wisperr.KindArity, "eval requires 1 or 2 arguments")
		}
		env := gc.Nil
		if len(args) == 2 {
			env = args[1]
		}
		return caller.EvalValue(args[0], env)
	})
	register(Exit, "exit", func(args []gc.Value, heap *gc.Heap, caller Caller) (gc.Value, error) {
		code := 0
		if len(args) == 1 {
			if args[0].Kind != gc.VInt {
				return gc.Value{}, wisperr.New(wisperr.KindType, "exit requires an integer argument")
			}
			code = int(args[0].I64)
		} else if len(args) != 0 {
			return gc.Value{}, wisperr.New(wisperr.KindArity, "exit requires 0 or 1 arguments")
		}
		return gc.Value{}, &ExitError{Code: code}
	})
}
