// Command wisp is the interpreter's entry point: a cobra root command that
// runs a source file, plus a `repl` subcommand for interactive sessions.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/cobra"

	"github.com/giorgioyu125/wisp/internal/arena"
	"github.com/giorgioyu125/wisp/internal/ast"
	"github.com/giorgioyu125/wisp/internal/builtins"
	"github.com/giorgioyu125/wisp/internal/eval"
	"github.com/giorgioyu125/wisp/internal/gc"
	"github.com/giorgioyu125/wisp/internal/lexer"
	"github.com/giorgioyu125/wisp/internal/parser"
	"github.com/giorgioyu125/wisp/internal/repl"
	"github.com/giorgioyu125/wisp/internal/wisperr"
)

// Global flags, bound via pflag through cobra's Flags() accessor.
var (
	debug        bool
	gcStats      bool
	edenSize     int
	survivorSize int
	oldSize      int
	promotionAge int
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(exitCodeFor(err))
	}
}

var rootCmd = &cobra.Command{
	Use:           "wisp <path>",
	Short:         "Run a Wisp source file",
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runFile,
}

var replCmd = &cobra.Command{
	Use:           "repl",
	Short:         "Start an interactive Wisp session",
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runRepl,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug-level tracing of special-form dispatch")
	rootCmd.PersistentFlags().BoolVar(&gcStats, "gc-stats", false, "print heap occupancy before/after each top-level form")
	rootCmd.PersistentFlags().IntVar(&edenSize, "eden-size", gc.DefaultEdenSize, "Eden region capacity in bytes")
	rootCmd.PersistentFlags().IntVar(&survivorSize, "survivor-size", gc.DefaultSurvivorSize, "each survivor semi-space's capacity in bytes")
	rootCmd.PersistentFlags().IntVar(&oldSize, "old-size", gc.DefaultOldSize, "old generation capacity in bytes")
	rootCmd.PersistentFlags().IntVar(&promotionAge, "promotion-age", gc.DefaultPromotionAge, "minor collections survived before promotion")

	rootCmd.AddCommand(replCmd)
}

func debugLogger() *slog.Logger {
	if !debug {
		return nil
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func newHeap(logger *slog.Logger) *gc.Heap {
	heap := gc.New(
		gc.WithEdenSize(edenSize),
		gc.WithSurvivorSize(survivorSize),
		gc.WithOldSize(oldSize),
		gc.WithPromotionAge(promotionAge),
	)
	if logger != nil {
		heap.SetLogger(logger)
	}
	return heap
}

func newInterp(heap *gc.Heap, logger *slog.Logger) (*eval.Interp, error) {
	in, err := eval.New(heap)
	if err != nil {
		return nil, err
	}
	if logger != nil {
		in.Tracer = func(form *ast.Expr) {
			logger.Debug("eval special form", "form", form.String())
		}
	}
	return in, nil
}

func runFile(cmd *cobra.Command, args []string) error {
	path := args[0]
	src, err := os.ReadFile(path)
	if err != nil {
		return wisperr.Wrap(wisperr.KindIO, "cannot read "+path, err)
	}

	logger := debugLogger()
	heap := newHeap(logger)
	in, err := newInterp(heap, logger)
	if err != nil {
		return err
	}

	toks := lexer.New(src, logger).Tokenize()
	a := arena.New()
	defer a.Destroy()
	p := parser.New(src, toks, a)
	program, err := p.Parse()
	if err != nil {
		return err
	}

	for _, form := range program.Forms {
		before := heap.Snapshot()
		_, err := in.Eval(form, in.Global)
		if err != nil {
			var exitErr *builtins.ExitError
			if errors.As(err, &exitErr) {
				os.Exit(exitErr.Code)
			}
			return err
		}
		if gcStats {
			reportGCStats(before, heap.Snapshot())
		}
	}
	return nil
}

func runRepl(cmd *cobra.Command, args []string) error {
	logger := debugLogger()
	heap := newHeap(logger)
	in, err := newInterp(heap, logger)
	if err != nil {
		return err
	}
	r := repl.New(in, os.Stdin, os.Stdout)
	os.Exit(r.Run())
	return nil
}

func reportGCStats(before, after gc.Snapshot) {
	if diff := cmp.Diff(before, after); diff != "" {
		fmt.Fprintf(os.Stderr, "gc: occupancy changed:\n%s", diff)
	}
}

func exitCodeFor(err error) int {
	var we *wisperr.Error
	if errors.As(err, &we) {
		return we.Kind.ExitCode()
	}
	return 5
}
