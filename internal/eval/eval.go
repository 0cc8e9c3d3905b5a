// Package eval implements Wisp's tree-walking evaluator: direct-style
// recursion over the parser's expression tree, driving package wispenv for
// scoping, package gc for value allocation, and package builtins for
// primitive procedures.
package eval

import (
	"github.com/giorgioyu125/wisp/internal/ast"
	"github.com/giorgioyu125/wisp/internal/builtins"
	"github.com/giorgioyu125/wisp/internal/gc"
	"github.com/giorgioyu125/wisp/internal/wisperr"
	"github.com/giorgioyu125/wisp/internal/wispenv"
)

// Tracer is invoked before each special form (quote, if, define, ...) is
// evaluated, at any nesting depth; --debug wires this to a slog line,
// grounded in the teacher's interpreter debug branch.
type Tracer func(form *ast.Expr)

// Interp owns the heap, the global scope, and the optional tracer. It is
// the evaluator's single piece of mutable state; nothing else is global.
type Interp struct {
	Heap   *gc.Heap
	Global *wispenv.Env
	Tracer Tracer
}

// New builds an Interp with a fresh global scope and every built-in
// procedure bound as a (non-const, shadowable) global.
func New(heap *gc.Heap) (*Interp, error) {
	global, err := wispenv.NewScope(heap, nil)
	if err != nil {
		return nil, err
	}
	// The global scope is the root of every lookup chain and the bindings
	// holding every built-in and top-level define; nothing else anchors
	// it, so it is registered as a permanent GC root for the Interp's
	// lifetime rather than pushed/popped around a single call.
	heap.PushRoot(&global.Value)

	in := &Interp{Heap: heap, Global: global}
	if err := in.installBuiltins(); err != nil {
		return nil, err
	}
	return in, nil
}

func (in *Interp) installBuiltins() error {
	for i := 0; i < builtins.Count(); i++ {
		id := builtins.BuiltinType(i)
		name := builtins.Name(id)
		if err := in.Global.Define(name, gc.Value{Kind: gc.VBuiltin, I64: int64(id)}, false); err != nil {
			return err
		}
	}
	return nil
}

// Eval evaluates e in env.
func (in *Interp) Eval(e *ast.Expr, env *wispenv.Env) (gc.Value, error) {
	switch e.Kind {
	case ast.KindInt:
		return gc.Int(e.I64), nil
	case ast.KindFloat:
		return gc.Float(e.F64), nil
	case ast.KindBool:
		return gc.Bool(e.Bool), nil
	case ast.KindNil:
		return gc.Nil, nil
	case ast.KindString:
		return in.Heap.NewString(e.Str)
	case ast.KindSymbol:
		name := string(e.Str)
		v, ok := env.Lookup(name)
		if !ok {
			return gc.Value{}, wisperr.New(wisperr.KindUnboundSymbol, "unbound symbol: "+name)
		}
		return v, nil
	case ast.KindUninternedSymbol:
		return in.Heap.NewUninterned(string(e.Str))
	case ast.KindQuoted:
		return exprToValue(in.Heap, e.Inner)
	case ast.KindQuasiquoted:
		return in.quasiquoteToValue(env, e.Inner)
	case ast.KindUnquoted:
		return gc.Value{}, wisperr.New(wisperr.KindType, "unquote used outside quasiquote")
	case ast.KindList:
		return in.evalList(e, env)
	default:
		return gc.Value{}, wisperr.New(wisperr.KindInternalInvariant, "eval: unknown expression kind")
	}
}

func (in *Interp) evalList(e *ast.Expr, env *wispenv.Env) (gc.Value, error) {
	elems := e.Elements()
	head := elems[0]

	if head.Kind == ast.KindSymbol {
		if form, ok := specialForms[string(head.Str)]; ok {
			if in.Tracer != nil {
				in.Tracer(e)
			}
			return form(in, elems[1:], env)
		}
	}

	callee, err := in.Eval(head, env)
	if err != nil {
		return gc.Value{}, err
	}
	// callee and each evaluated argument are live only in this Go frame
	// until Apply stores or discards them; root them so a collection
	// triggered by evaluating a later argument (or by Apply itself) finds
	// and forwards them instead of leaving these slots stale.
	in.Heap.PushRoot(&callee)
	pushed := 1
	defer func() {
		for ; pushed > 0; pushed-- {
			in.Heap.PopRoot()
		}
	}()

	args := make([]gc.Value, len(elems)-1)
	for i, a := range elems[1:] {
		args[i], err = in.Eval(a, env)
		if err != nil {
			return gc.Value{}, err
		}
		in.Heap.PushRoot(&args[i])
		pushed++
	}
	return in.Apply(callee, args)
}

// Apply invokes callee (a closure or built-in) on args.
func (in *Interp) Apply(callee gc.Value, args []gc.Value) (gc.Value, error) {
	switch callee.Kind {
	case gc.VClosure:
		return in.applyClosure(callee, args)
	case gc.VBuiltin:
		return builtins.Call(builtins.BuiltinType(callee.I64), args, in.Heap, in)
	default:
		return gc.Value{}, wisperr.New(wisperr.KindType, "value is not callable")
	}
}

func (in *Interp) applyClosure(callee gc.Value, args []gc.Value) (gc.Value, error) {
	params, body, capturedEnv := in.Heap.ClosureParts(callee)
	if len(params) != len(args) {
		return gc.Value{}, wisperr.New(wisperr.KindArity, "closure arity mismatch")
	}
	scope, err := wispenv.FromValue(in.Heap, capturedEnv).PushScope()
	if err != nil {
		return gc.Value{}, err
	}
	// scope is a freshly allocated environment reachable only through this
	// Go-local handle until it is returned up the call chain as the next
	// env argument; root it for the call so evaluating the body (which may
	// allocate, including nested calls that trigger collection) doesn't
	// leave it pointing at moved/overwritten memory.
	in.Heap.PushRoot(&scope.Value)
	defer in.Heap.PopRoot()

	for i, p := range params {
		if err := scope.Define(p, args[i], false); err != nil {
			return gc.Value{}, err
		}
	}
	result := gc.Nil
	for _, bf := range body {
		form, ok := bf.(*ast.Expr)
		if !ok {
			return gc.Value{}, wisperr.New(wisperr.KindInternalInvariant, "closure body holds a non-expression form")
		}
		result, err = in.Eval(form, scope)
		if err != nil {
			return gc.Value{}, err
		}
	}
	return result, nil
}

// EvalValue implements builtins.Caller for the `eval` built-in: expr is a
// runtime value representing code as data (built by quote/cons/list), env
// is either a VEnv value or Nil for the global scope.
func (in *Interp) EvalValue(expr gc.Value, env gc.Value) (gc.Value, error) {
	form, err := valueToExpr(in.Heap, expr)
	if err != nil {
		return gc.Value{}, err
	}
	scope := in.Global
	if env.Kind == gc.VEnv {
		scope = wispenv.FromValue(in.Heap, env)
	}
	return in.Eval(form, scope)
}
