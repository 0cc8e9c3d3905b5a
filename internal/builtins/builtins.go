// Package builtins implements Wisp's primitive procedures: a dense table
// keyed by a numeric BuiltinType, the runtime counterpart of the special
// forms the evaluator handles directly.
package builtins

import (
	"fmt"

	"github.com/giorgioyu125/wisp/internal/gc"
)

// BuiltinType numbers every primitive procedure; Value{Kind: VBuiltin}
// carries one of these in its I64 field instead of a heap Ref, since
// built-ins are stateless and need no allocation to represent.
type BuiltinType int

const (
	Add BuiltinType = iota
	Sub
	Mul
	Div
	Mod
	NumEq
	Lt
	Gt
	Le
	Ge
	Cons
	Car
	Cdr
	List
	AtomP
	PairP
	ListP
	NullP
	NumberP
	StringP
	SymbolP
	ProcedureP
	EqP
	EqualP
	Display
	Newline
	Apply
	Eval
	Exit
	numBuiltins
)

// Caller is the subset of the evaluator that apply/eval need: both are
// expressed purely in terms of gc.Value so this package never imports the
// evaluator and stays free of the import cycle that would otherwise
// result.
type Caller interface {
	Apply(fn gc.Value, args []gc.Value) (gc.Value, error)
	EvalValue(expr gc.Value, env gc.Value) (gc.Value, error)
}

// Func is one built-in's implementation: the already-evaluated argument
// sequence, the allocator, and the caller hook for apply/eval.
type Func func(args []gc.Value, heap *gc.Heap, caller Caller) (gc.Value, error)

type entry struct {
	name string
	fn   Func
}

var table [numBuiltins]entry

func register(id BuiltinType, name string, fn Func) {
	table[id] = entry{name: name, fn: fn}
}

// byName is the source-name lookup table behind Lookup, turning an
// identifier into a BuiltinType; built at init() time, the nearest this
// codebase gets to the spec's offline perfect-hash table. The evaluator
// installs built-ins by iterating ids and Name, not through Lookup.
var byName map[string]BuiltinType

func init() {
	registerArithmetic()
	registerComparisons()
	registerListOps()
	registerPredicates()
	registerEquality()
	registerIO()
	registerControl()

	byName = make(map[string]BuiltinType, numBuiltins)
	for id := BuiltinType(0); id < numBuiltins; id++ {
		byName[table[id].name] = id
	}
}

// Lookup resolves a source identifier to a BuiltinType.
func Lookup(name string) (BuiltinType, bool) {
	id, ok := byName[name]
	return id, ok
}

// Count returns how many built-ins are registered, for callers that need
// to iterate the full table (installing them as globals, for instance).
func Count() int { return int(numBuiltins) }

// Name returns a built-in's source name, for diagnostics and printing.
func Name(id BuiltinType) string {
	if id < 0 || id >= numBuiltins {
		return "?"
	}
	return table[id].name
}

// Call dispatches to id's implementation.
func Call(id BuiltinType, args []gc.Value, heap *gc.Heap, caller Caller) (gc.Value, error) {
	if id < 0 || id >= numBuiltins || table[id].fn == nil {
		return gc.Value{}, fmt.Errorf("builtins: no such builtin %d", id)
	}
	return table[id].fn(args, heap, caller)
}

// ExitError is the one continuation that unwinds the whole evaluator: the
// (exit n) built-in returns this instead of a normal error, and callers at
// the top (cmd/wisp, the REPL) recognize it with errors.As and terminate
// the process with Code.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit %d", e.Code)
}
