package builtins

import (
	"fmt"
	"io"
	"os"

	"github.com/giorgioyu125/wisp/internal/gc"
	"github.com/giorgioyu125/wisp/internal/wisperr"
)

// Stdout is display/newline's output sink. Tests swap it for a buffer;
// cmd/wisp leaves it at the default.
var Stdout io.Writer = os.Stdout

func registerIO() {
	register(Display, "display", func(args []gc.Value, heap *gc.Heap, caller Caller) (gc.Value, error) {
		if len(args) != 1 {
			return gc.Value{}, wisperr.New(wisperr.KindArity, "display requires exactly 1 argument")
		}
		if _, err := fmt.Fprint(Stdout, displayString(args[0], heap)); err != nil {
			return gc.Value{}, wisperr.Wrap(wisperr.KindIO, "display write failed", err)
		}
		return args[0], nil
	})
	register(Newline, "newline", func(args []gc.Value, heap *gc.Heap, caller Caller) (gc.Value, error) {
		if len(args) != 0 {
			return gc.Value{}, wisperr.New(wisperr.KindArity, "newline takes no arguments")
		}
		if _, err := fmt.Fprintln(Stdout); err != nil {
			return gc.Value{}, wisperr.Wrap(wisperr.KindIO, "newline write failed", err)
		}
		return gc.Nil, nil
	})
}

// displayString is display's printed form: like Value.String but with
// string payloads unquoted, matching the convention that display shows a
// value's content rather than its re-readable syntax.
func displayString(v gc.Value, heap *gc.Heap) string {
	if v.Kind == gc.VString {
		return string(heap.StringBytes(v))
	}
	if v.Kind == gc.VCons {
		var parts []string
		for cur := v; cur.Kind == gc.VCons; cur = heap.Cdr(cur) {
			parts = append(parts, displayString(heap.Car(cur), heap))
		}
		out := "("
		for i, p := range parts {
			if i > 0 {
				out += " "
			}
			out += p
		}
		return out + ")"
	}
	return v.String(heap)
}
