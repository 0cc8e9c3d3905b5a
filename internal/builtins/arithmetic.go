package builtins

import (
	"github.com/giorgioyu125/wisp/internal/gc"
	"github.com/giorgioyu125/wisp/internal/wisperr"
)

func numeric(v gc.Value) (float64, bool, error) {
	switch v.Kind {
	case gc.VInt:
		return float64(v.I64), false, nil
	case gc.VFloat:
		return v.F64, true, nil
	default:
		return 0, false, wisperr.New(wisperr.KindType, "expected a number")
	}
}

func registerArithmetic() {
	register(Add, "+", func(args []gc.Value, heap *gc.Heap, caller Caller) (gc.Value, error) {
		return foldNumeric(args, 0, func(a, b float64) float64 { return a + b }, func(a, b int64) int64 { return a + b })
	})
	register(Sub, "-", func(args []gc.Value, heap *gc.Heap, caller Caller) (gc.Value, error) {
		if len(args) == 0 {
			return gc.Value{}, wisperr.New(wisperr.KindArity, "- requires at least 1 argument")
		}
		if len(args) == 1 {
			f, isFloat, err := numeric(args[0])
			if err != nil {
				return gc.Value{}, err
			}
			if isFloat {
				return gc.Float(-f), nil
			}
			return gc.Int(-args[0].I64), nil
		}
		return reduceNumeric(args, func(a, b float64) float64 { return a - b }, func(a, b int64) int64 { return a - b })
	})
	register(Mul, "*", func(args []gc.Value, heap *gc.Heap, caller Caller) (gc.Value, error) {
		return foldNumeric(args, 1, func(a, b float64) float64 { return a * b }, func(a, b int64) int64 { return a * b })
	})
	register(Div, "/", divide)
	register(Mod, "mod", modulo)
}

// foldNumeric folds args left-to-right starting from identity, staying
// integer as long as every argument is an integer, promoting to float the
// moment any argument is float.
func foldNumeric(args []gc.Value, identity int64, ff func(a, b float64) float64, fi func(a, b int64) int64) (gc.Value, error) {
	if len(args) == 0 {
		return gc.Int(identity), nil
	}
	allInt := true
	for _, a := range args {
		if a.Kind == gc.VFloat {
			allInt = false
		} else if a.Kind != gc.VInt {
			return gc.Value{}, wisperr.New(wisperr.KindType, "expected a number")
		}
	}
	if allInt {
		acc := args[0].I64
		for _, a := range args[1:] {
			acc = fi(acc, a.I64)
		}
		return gc.Int(acc), nil
	}
	acc, _, err := numeric(args[0])
	if err != nil {
		return gc.Value{}, err
	}
	for _, a := range args[1:] {
		f, _, err := numeric(a)
		if err != nil {
			return gc.Value{}, err
		}
		acc = ff(acc, f)
	}
	return gc.Float(acc), nil
}

// reduceNumeric is foldNumeric without a synthetic identity, for - which
// is not associative with one.
func reduceNumeric(args []gc.Value, ff func(a, b float64) float64, fi func(a, b int64) int64) (gc.Value, error) {
	allInt := true
	for _, a := range args {
		if a.Kind == gc.VFloat {
			allInt = false
		} else if a.Kind != gc.VInt {
			return gc.Value{}, wisperr.New(wisperr.KindType, "expected a number")
		}
	}
	if allInt {
		acc := args[0].I64
		for _, a := range args[1:] {
			acc = fi(acc, a.I64)
		}
		return gc.Int(acc), nil
	}
	acc, _, _ := numeric(args[0])
	for _, a := range args[1:] {
		f, _, _ := numeric(a)
		acc = ff(acc, f)
	}
	return gc.Float(acc), nil
}

// divide implements spec's "/" semantics: integer by nonzero integer
// yields a float reciprocal with one argument, float division otherwise;
// division by zero is always an error.
func divide(args []gc.Value, heap *gc.Heap, caller Caller) (gc.Value, error) {
	if len(args) == 0 {
		return gc.Value{}, wisperr.New(wisperr.KindArity, "/ requires at least 1 argument")
	}
	if len(args) == 1 {
		f, _, err := numeric(args[0])
		if err != nil {
			return gc.Value{}, err
		}
		if f == 0 {
			return gc.Value{}, wisperr.New(wisperr.KindDivisionByZero, "division by zero")
		}
		return gc.Float(1 / f), nil
	}
	acc, _, err := numeric(args[0])
	if err != nil {
		return gc.Value{}, err
	}
	for _, a := range args[1:] {
		f, _, err := numeric(a)
		if err != nil {
			return gc.Value{}, err
		}
		if f == 0 {
			return gc.Value{}, wisperr.New(wisperr.KindDivisionByZero, "division by zero")
		}
		acc /= f
	}
	return gc.Float(acc), nil
}

func modulo(args []gc.Value, heap *gc.Heap, caller Caller) (gc.Value, error) {
	if len(args) != 2 {
		return gc.Value{}, wisperr.New(wisperr.KindArity, "mod requires exactly 2 arguments")
	}
	if args[0].Kind != gc.VInt || args[1].Kind != gc.VInt {
		return gc.Value{}, wisperr.New(wisperr.KindType, "mod requires integer arguments")
	}
	if args[1].I64 == 0 {
		return gc.Value{}, wisperr.New(wisperr.KindDivisionByZero, "mod by zero")
	}
	return gc.Int(args[0].I64 % args[1].I64), nil
}
