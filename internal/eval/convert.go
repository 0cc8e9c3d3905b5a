package eval

import (
	"github.com/giorgioyu125/wisp/internal/ast"
	"github.com/giorgioyu125/wisp/internal/gc"
	"github.com/giorgioyu125/wisp/internal/wisperr"
	"github.com/giorgioyu125/wisp/internal/wispenv"
)

// exprToValue converts a parse-time expression into its runtime data
// representation, the bridge quote and the eval built-in both need: a
// quoted form like 'x or `(a ,b) is first-class data, not syntax. Quote
// family wrappers become the classic two-element list (quote x) /
// (quasiquote x) / (unquote x), so a later (eval ...) of that data sees
// exactly the same shape re-parsing the source text would have produced.
func exprToValue(heap *gc.Heap, e *ast.Expr) (gc.Value, error) {
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
		return heap.NewString(e.Str)
	case ast.KindSymbol:
		return heap.InternValue(string(e.Str)), nil
	case ast.KindUninternedSymbol:
		return heap.NewUninterned(string(e.Str))
	case ast.KindList:
		return buildExprList(heap, e.Elements(), exprToValue)
	case ast.KindQuoted:
		return wrapSymbolForm(heap, "quote", e.Inner)
	case ast.KindQuasiquoted:
		return wrapSymbolForm(heap, "quasiquote", e.Inner)
	case ast.KindUnquoted:
		return wrapSymbolForm(heap, "unquote", e.Inner)
	default:
		return gc.Value{}, wisperr.New(wisperr.KindInternalInvariant, "exprToValue: unknown expression kind")
	}
}

func wrapSymbolForm(heap *gc.Heap, name string, inner *ast.Expr) (gc.Value, error) {
	innerVal, err := exprToValue(heap, inner)
	if err != nil {
		return gc.Value{}, err
	}
	tail, err := heap.NewCons(innerVal, gc.Nil)
	if err != nil {
		return gc.Value{}, err
	}
	return heap.NewCons(heap.InternValue(name), tail)
}

func buildExprList(heap *gc.Heap, elems []*ast.Expr, conv func(*gc.Heap, *ast.Expr) (gc.Value, error)) (gc.Value, error) {
	result := gc.Nil
	for i := len(elems) - 1; i >= 0; i-- {
		v, err := conv(heap, elems[i])
		if err != nil {
			return gc.Value{}, err
		}
		var cerr error
		result, cerr = heap.NewCons(v, result)
		if cerr != nil {
			return gc.Value{}, cerr
		}
	}
	return result, nil
}

// quasiquoteToValue is exprToValue's variant for backquote templates: a
// KindUnquoted node evaluates its inner expression in env and splices the
// result in; everything else (including a nested, un-evaluated quote or
// quasiquote) is carried over as literal data, matching the "one level of
// quasiquote nesting" limitation.
func (in *Interp) quasiquoteToValue(env *wispenv.Env, e *ast.Expr) (gc.Value, error) {
	switch e.Kind {
	case ast.KindUnquoted:
		return in.Eval(e.Inner, env)
	case ast.KindList:
		elems := e.Elements()
		result := gc.Nil
		for i := len(elems) - 1; i >= 0; i-- {
			v, err := in.quasiquoteToValue(env, elems[i])
			if err != nil {
				return gc.Value{}, err
			}
			var cerr error
			result, cerr = in.Heap.NewCons(v, result)
			if cerr != nil {
				return gc.Value{}, cerr
			}
		}
		return result, nil
	default:
		return exprToValue(in.Heap, e)
	}
}

// valueToExpr is exprToValue's inverse: it turns a runtime data value
// (built at any point via cons/list/quote) back into an expression tree
// the evaluator can walk, for the `eval` built-in. Quote-family forms are
// not reconstructed specially here — (quote x) arrives as a plain list
// headed by the symbol "quote", which Eval's special-form dispatch
// already recognizes by name.
func valueToExpr(heap *gc.Heap, v gc.Value) (*ast.Expr, error) {
	switch v.Kind {
	case gc.VInt:
		return &ast.Expr{Kind: ast.KindInt, I64: v.I64}, nil
	case gc.VFloat:
		return &ast.Expr{Kind: ast.KindFloat, F64: v.F64}, nil
	case gc.VBool:
		return &ast.Expr{Kind: ast.KindBool, Bool: v.Bool}, nil
	case gc.VNil:
		return &ast.Expr{Kind: ast.KindNil}, nil
	case gc.VString:
		return &ast.Expr{Kind: ast.KindString, Str: heap.StringBytes(v)}, nil
	case gc.VSymbol:
		return &ast.Expr{Kind: ast.KindSymbol, Str: []byte(v.Sym.Name())}, nil
	case gc.VUninterned:
		return &ast.Expr{Kind: ast.KindUninternedSymbol, Str: []byte(heap.UninternedName(v))}, nil
	case gc.VCons:
		return valueListToExpr(heap, v)
	default:
		return nil, wisperr.New(wisperr.KindType, "value cannot be evaluated as an expression")
	}
}

func valueListToExpr(heap *gc.Heap, v gc.Value) (*ast.Expr, error) {
	var cells []*ast.Expr
	for cur := v; cur.Kind == gc.VCons; cur = heap.Cdr(cur) {
		el, err := valueToExpr(heap, heap.Car(cur))
		if err != nil {
			return nil, err
		}
		cells = append(cells, el)
	}
	if len(cells) == 0 {
		return &ast.Expr{Kind: ast.KindNil}, nil
	}
	head := &ast.Expr{Kind: ast.KindList, Car: cells[0]}
	cur := head
	for _, el := range cells[1:] {
		next := &ast.Expr{Kind: ast.KindList, Car: el}
		cur.Cdr = next
		cur = next
	}
	return head, nil
}
