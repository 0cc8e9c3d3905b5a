// Package repl implements Wisp's interactive read-eval-print loop: a
// carry-forward of a feature the distillation's file-driven CLI surface
// dropped, built the same way the rest of the interpreter is (lex, parse
// against a fresh arena, evaluate against a persistent top-level scope).
package repl

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/giorgioyu125/wisp/internal/arena"
	"github.com/giorgioyu125/wisp/internal/builtins"
	"github.com/giorgioyu125/wisp/internal/eval"
	"github.com/giorgioyu125/wisp/internal/gc"
	"github.com/giorgioyu125/wisp/internal/lexer"
	"github.com/giorgioyu125/wisp/internal/parser"
)

const prompt = "wisp> "

// REPL reads one line at a time from in, evaluates it against a
// persistent environment, and writes results/diagnostics to out.
type REPL struct {
	Interp *eval.Interp
	in     *bufio.Scanner
	out    io.Writer
}

// New builds a REPL sharing heap's already-initialized interpreter.
func New(in *eval.Interp, stdin io.Reader, stdout io.Writer) *REPL {
	return &REPL{Interp: in, in: bufio.NewScanner(stdin), out: stdout}
}

// Run loops until EOF, returning the exit code to use: always 0 unless
// (exit n) was evaluated, per spec — a runtime error during one iteration
// discards that expression and returns to the prompt with the environment
// otherwise unchanged.
func (r *REPL) Run() int {
	for {
		fmt.Fprint(r.out, prompt)
		if !r.in.Scan() {
			return 0
		}
		line := r.in.Text()
		if line == "" {
			continue
		}

		result, err := r.evalLine(line)
		if err != nil {
			var exitErr *builtins.ExitError
			if errors.As(err, &exitErr) {
				return exitErr.Code
			}
			fmt.Fprintln(r.out, err.Error())
			continue
		}
		fmt.Fprintln(r.out, result.String(r.Interp.Heap))
	}
}

func (r *REPL) evalLine(line string) (gc.Value, error) {
	toks := lexer.New([]byte(line), nil).Tokenize()
	a := arena.New()
	defer a.Destroy()

	p := parser.New([]byte(line), toks, a)
	program, err := p.Parse()
	if err != nil {
		return gc.Value{}, err
	}

	result := gc.Nil
	for _, form := range program.Forms {
		result, err = r.Interp.Eval(form, r.Interp.Global)
		if err != nil {
			return gc.Value{}, err
		}
	}
	return result, nil
}
