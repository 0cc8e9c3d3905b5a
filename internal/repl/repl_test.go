package repl

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/giorgioyu125/wisp/internal/eval"
	"github.com/giorgioyu125/wisp/internal/gc"
)

func TestSessionStatePersistsAcrossLines(t *testing.T) {
	in, err := eval.New(gc.New())
	require.NoError(t, err)

	var out bytes.Buffer
	r := New(in, strings.NewReader("(define x 10)\n(+ x 5)\n"), &out)
	code := r.Run()

	assert.Equal(t, 0, code)
	assert.Contains(t, out.String(), "10")
	assert.Contains(t, out.String(), "15")
}

func TestRuntimeErrorDiscardsExpressionAndContinues(t *testing.T) {
	in, err := eval.New(gc.New())
	require.NoError(t, err)

	var out bytes.Buffer
	r := New(in, strings.NewReader("(define x 1)\n(+ x nope)\n(+ x 1)\n"), &out)
	code := r.Run()

	assert.Equal(t, 0, code)
	assert.Contains(t, out.String(), "2")
}

func TestExitFromREPLReturnsItsCode(t *testing.T) {
	in, err := eval.New(gc.New())
	require.NoError(t, err)

	var out bytes.Buffer
	r := New(in, strings.NewReader("(exit 9)\n"), &out)
	code := r.Run()

	assert.Equal(t, 9, code)
}
