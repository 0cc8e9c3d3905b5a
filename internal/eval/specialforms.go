package eval

import (
	"github.com/giorgioyu125/wisp/internal/ast"
	"github.com/giorgioyu125/wisp/internal/gc"
	"github.com/giorgioyu125/wisp/internal/wisperr"
	"github.com/giorgioyu125/wisp/internal/wispenv"
)

type specialForm func(in *Interp, args []*ast.Expr, env *wispenv.Env) (gc.Value, error)

// specialForms are recognized by name before the head of a list is ever
// evaluated as a value — a user binding of the same name elsewhere cannot
// shadow one of these.
var specialForms = map[string]specialForm{
	"quote":  evalQuote,
	"if":     evalIf,
	"define": evalDefine,
	"set!":   evalSet,
	"lambda": evalLambda,
	"let":    evalLet,
	"begin":  evalBegin,
	"and":    evalAnd,
	"or":     evalOr,
	"cond":   evalCond,
}

func evalQuote(in *Interp, args []*ast.Expr, env *wispenv.Env) (gc.Value, error) {
	if len(args) != 1 {
		return gc.Value{}, wisperr.New(wisperr.KindArity, "quote requires exactly 1 argument")
	}
	return exprToValue(in.Heap, args[0])
}

func evalIf(in *Interp, args []*ast.Expr, env *wispenv.Env) (gc.Value, error) {
	if len(args) != 2 && len(args) != 3 {
		return gc.Value{}, wisperr.New(wisperr.KindArity, "if requires 2 or 3 arguments")
	}
	cond, err := in.Eval(args[0], env)
	if err != nil {
		return gc.Value{}, err
	}
	if cond.Truthy() {
		return in.Eval(args[1], env)
	}
	if len(args) == 3 {
		return in.Eval(args[2], env)
	}
	return gc.Nil, nil
}

func evalDefine(in *Interp, args []*ast.Expr, env *wispenv.Env) (gc.Value, error) {
	if len(args) != 2 {
		return gc.Value{}, wisperr.New(wisperr.KindArity, "define requires exactly 2 arguments")
	}
	if args[0].Kind != ast.KindSymbol {
		return gc.Value{}, wisperr.New(wisperr.KindType, "define requires a symbol name")
	}
	val, err := in.Eval(args[1], env)
	if err != nil {
		return gc.Value{}, err
	}
	if err := env.Define(string(args[0].Str), val, false); err != nil {
		return gc.Value{}, err
	}
	return val, nil
}

func evalSet(in *Interp, args []*ast.Expr, env *wispenv.Env) (gc.Value, error) {
	if len(args) != 2 {
		return gc.Value{}, wisperr.New(wisperr.KindArity, "set! requires exactly 2 arguments")
	}
	if args[0].Kind != ast.KindSymbol {
		return gc.Value{}, wisperr.New(wisperr.KindType, "set! requires a symbol name")
	}
	val, err := in.Eval(args[1], env)
	if err != nil {
		return gc.Value{}, err
	}
	if err := env.Set(string(args[0].Str), val); err != nil {
		return gc.Value{}, err
	}
	return val, nil
}

func evalLambda(in *Interp, args []*ast.Expr, env *wispenv.Env) (gc.Value, error) {
	if len(args) < 1 {
		return gc.Value{}, wisperr.New(wisperr.KindArity, "lambda requires a parameter list")
	}
	params, err := symbolNames(args[0], "lambda parameter list")
	if err != nil {
		return gc.Value{}, err
	}
	body := make([]interface{}, len(args[1:]))
	for i, b := range args[1:] {
		body[i] = b
	}
	return in.Heap.NewClosure(params, body, env.Value)
}

func evalLet(in *Interp, args []*ast.Expr, env *wispenv.Env) (gc.Value, error) {
	if len(args) < 1 {
		return gc.Value{}, wisperr.New(wisperr.KindArity, "let requires a binding list")
	}
	bindings := args[0].Elements()
	names := make([]string, 0, len(bindings))
	values := make([]gc.Value, len(bindings))
	// Each binding value is live only in this Go slice until Define
	// attaches it to the new scope's buckets; root it as soon as it's
	// computed so evaluating a later binding expression (which may
	// allocate) can't leave an earlier one stale.
	pushed := 0
	defer func() {
		for ; pushed > 0; pushed-- {
			in.Heap.PopRoot()
		}
	}()
	for i, b := range bindings {
		pair := b.Elements()
		if len(pair) != 2 || pair[0].Kind != ast.KindSymbol {
			return gc.Value{}, wisperr.New(wisperr.KindType, "let binding must be (name expr)")
		}
		v, err := in.Eval(pair[1], env)
		if err != nil {
			return gc.Value{}, err
		}
		values[i] = v
		in.Heap.PushRoot(&values[i])
		pushed++
		names = append(names, string(pair[0].Str))
	}

	scope, err := env.PushScope()
	if err != nil {
		return gc.Value{}, err
	}
	// scope is unreachable from any existing root until it's returned as
	// evalBody's env argument; root it for the body evaluation the same
	// way applyClosure roots a lambda call's fresh scope.
	in.Heap.PushRoot(&scope.Value)
	defer in.Heap.PopRoot()

	for i, n := range names {
		if err := scope.Define(n, values[i], false); err != nil {
			return gc.Value{}, err
		}
	}
	return evalBody(in, args[1:], scope)
}

func evalBegin(in *Interp, args []*ast.Expr, env *wispenv.Env) (gc.Value, error) {
	return evalBody(in, args, env)
}

func evalAnd(in *Interp, args []*ast.Expr, env *wispenv.Env) (gc.Value, error) {
	result := gc.Bool(true)
	for _, a := range args {
		v, err := in.Eval(a, env)
		if err != nil {
			return gc.Value{}, err
		}
		if !v.Truthy() {
			return v, nil
		}
		result = v
	}
	return result, nil
}

func evalOr(in *Interp, args []*ast.Expr, env *wispenv.Env) (gc.Value, error) {
	result := gc.Bool(false)
	for _, a := range args {
		v, err := in.Eval(a, env)
		if err != nil {
			return gc.Value{}, err
		}
		if v.Truthy() {
			return v, nil
		}
		result = v
	}
	return result, nil
}

func evalCond(in *Interp, args []*ast.Expr, env *wispenv.Env) (gc.Value, error) {
	for _, clause := range args {
		parts := clause.Elements()
		if len(parts) == 0 {
			return gc.Value{}, wisperr.New(wisperr.KindType, "cond clause must have a test")
		}
		test := parts[0]
		matched := test.Kind == ast.KindSymbol && string(test.Str) == "else"
		if !matched {
			v, err := in.Eval(test, env)
			if err != nil {
				return gc.Value{}, err
			}
			matched = v.Truthy()
		}
		if matched {
			return evalBody(in, parts[1:], env)
		}
	}
	return gc.Nil, nil
}

func evalBody(in *Interp, body []*ast.Expr, env *wispenv.Env) (gc.Value, error) {
	result := gc.Nil
	for _, form := range body {
		var err error
		result, err = in.Eval(form, env)
		if err != nil {
			return gc.Value{}, err
		}
	}
	return result, nil
}

func symbolNames(list *ast.Expr, what string) ([]string, error) {
	elems := list.Elements()
	if list.Kind == ast.KindNil {
		return nil, nil
	}
	if elems == nil {
		return nil, wisperr.New(wisperr.KindType, what+" must be a list")
	}
	names := make([]string, len(elems))
	for i, e := range elems {
		if e.Kind != ast.KindSymbol {
			return nil, wisperr.New(wisperr.KindType, what+" entries must be symbols")
		}
		names[i] = string(e.Str)
	}
	return names, nil
}
