package eval

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/giorgioyu125/wisp/internal/arena"
	"github.com/giorgioyu125/wisp/internal/builtins"
	"github.com/giorgioyu125/wisp/internal/gc"
	"github.com/giorgioyu125/wisp/internal/lexer"
	"github.com/giorgioyu125/wisp/internal/parser"
)

func runAll(t *testing.T, in *Interp, src string) (gc.Value, error) {
	t.Helper()
	toks := lexer.New([]byte(src), nil).Tokenize()
	a := arena.New()
	p := parser.New([]byte(src), toks, a)
	program, err := p.Parse()
	require.NoError(t, err)

	result := gc.Nil
	for _, form := range program.Forms {
		result, err = in.Eval(form, in.Global)
		if err != nil {
			return gc.Value{}, err
		}
	}
	return result, nil
}

func newInterp(t *testing.T) *Interp {
	t.Helper()
	heap := gc.New()
	in, err := New(heap)
	require.NoError(t, err)
	return in
}

func TestArithmetic(t *testing.T) {
	in := newInterp(t)
	v, err := runAll(t, in, "(+ 1 2 3)")
	require.NoError(t, err)
	assert.Equal(t, int64(6), v.I64)

	v, err = runAll(t, in, "(+ 1 2.5)")
	require.NoError(t, err)
	assert.Equal(t, 3.5, v.F64)

	v, err = runAll(t, in, "(/ 4)")
	require.NoError(t, err)
	assert.Equal(t, 0.25, v.F64)

	_, err = runAll(t, in, "(/ 1 0)")
	require.Error(t, err)
}

func TestDefineAndLookup(t *testing.T) {
	in := newInterp(t)
	v, err := runAll(t, in, "(define x 10) (+ x 5)")
	require.NoError(t, err)
	assert.Equal(t, int64(15), v.I64)
}

func TestLambdaClosureAndRecursion(t *testing.T) {
	in := newInterp(t)
	v, err := runAll(t, in, `
		(define fact (lambda (n) (if (= n 0) 1 (* n (fact (- n 1))))))
		(fact 5)
	`)
	require.NoError(t, err)
	assert.Equal(t, int64(120), v.I64)
}

func TestLetShadowsAndRestoresOuterScope(t *testing.T) {
	in := newInterp(t)
	v, err := runAll(t, in, `
		(define x 1)
		(let ((x 2)) (set! x 99))
		x
	`)
	require.NoError(t, err)
	assert.Equal(t, int64(1), v.I64)
}

func TestCondAndElse(t *testing.T) {
	in := newInterp(t)
	v, err := runAll(t, in, `(cond (#f 1) (#f 2) (else 3))`)
	require.NoError(t, err)
	assert.Equal(t, int64(3), v.I64)
}

func TestAndOrShortCircuit(t *testing.T) {
	in := newInterp(t)
	v, err := runAll(t, in, `(and 1 2 #f (/ 1 0))`)
	require.NoError(t, err)
	assert.Equal(t, gc.VBool, v.Kind)
	assert.False(t, v.Bool)

	v, err = runAll(t, in, `(or #f #f 5 (/ 1 0))`)
	require.NoError(t, err)
	assert.Equal(t, int64(5), v.I64)
}

func TestQuoteProducesData(t *testing.T) {
	in := newInterp(t)
	v, err := runAll(t, in, `(car (quote (a b c)))`)
	require.NoError(t, err)
	assert.Equal(t, "a", v.Sym.Name())
}

func TestQuasiquoteSplicesUnquote(t *testing.T) {
	in := newInterp(t)
	v, err := runAll(t, in, `(define y 5) (car (cdr `+"`"+`(x ,y z)))`)
	require.NoError(t, err)
	assert.Equal(t, int64(5), v.I64)
}

func TestEqAndEqual(t *testing.T) {
	in := newInterp(t)
	v, err := runAll(t, in, `(equal? (list 1 2 3) (list 1 2 3))`)
	require.NoError(t, err)
	assert.True(t, v.Bool)

	v, err = runAll(t, in, `(eq? (list 1 2 3) (list 1 2 3))`)
	require.NoError(t, err)
	assert.False(t, v.Bool)
}

func TestApplyAndEval(t *testing.T) {
	in := newInterp(t)
	v, err := runAll(t, in, `(apply + (list 1 2 3))`)
	require.NoError(t, err)
	assert.Equal(t, int64(6), v.I64)

	v, err = runAll(t, in, `(eval (quote (+ 1 2)))`)
	require.NoError(t, err)
	assert.Equal(t, int64(3), v.I64)
}

func TestDisplayWritesUnquotedString(t *testing.T) {
	in := newInterp(t)
	var buf bytes.Buffer
	prev := builtins.Stdout
	builtins.Stdout = &buf
	defer func() { builtins.Stdout = prev }()

	_, err := runAll(t, in, `(display "hi")`)
	require.NoError(t, err)
	assert.Equal(t, "hi", buf.String())
}

func TestExitUnwindsAsExitError(t *testing.T) {
	in := newInterp(t)
	_, err := runAll(t, in, `(exit 7)`)
	require.Error(t, err)
	var exitErr *builtins.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 7, exitErr.Code)
}

func TestUnboundSymbolError(t *testing.T) {
	in := newInterp(t)
	_, err := runAll(t, in, `nope`)
	require.Error(t, err)
}

func TestArityMismatchOnClosureCall(t *testing.T) {
	in := newInterp(t)
	_, err := runAll(t, in, `((lambda (a b) a) 1)`)
	require.Error(t, err)
}

// TestListSurvivesManyMinorCollections builds a list many times longer
// than a single Eden's worth of cons cells, almost entirely through
// un-rooted Go-local values threaded across recursive calls (the
// recursion's own argument slots, not any explicit root the test takes
// itself), then walks the whole thing back afterward. A tiny Eden/old
// generation forces dozens of minor collections and at least one
// promotion cycle while the list is still being built; if any
// intermediate cons cell, argument, or call-frame scope were left
// unrooted, collection would silently corrupt or truncate the list
// instead of forwarding it.
func TestListSurvivesManyMinorCollections(t *testing.T) {
	heap := gc.New(
		gc.WithEdenSize(256),
		gc.WithSurvivorSize(256),
		gc.WithOldSize(256*200),
		gc.WithPromotionAge(2),
	)
	in, err := New(heap)
	require.NoError(t, err)

	const n = 500
	_, err = runAll(t, in, `
		(define build (lambda (k) (if (= k 0) (list) (cons k (build (- k 1))))))
		(define biglist (build 500))
		(define len (lambda (lst) (if (null? lst) 0 (+ 1 (len (cdr lst))))))
	`)
	require.NoError(t, err)

	minor, _ := heap.Counters()
	assert.Greater(t, minor, 1, "test should force multiple minor collections")

	v, err := runAll(t, in, `(len biglist)`)
	require.NoError(t, err)
	assert.Equal(t, int64(n), v.I64)

	v, err = runAll(t, in, `(car biglist)`)
	require.NoError(t, err)
	assert.Equal(t, int64(n), v.I64)
}
