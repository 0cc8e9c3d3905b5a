// Package wispenv implements Wisp's lexically-scoped environment: a chain
// of GC-managed hash tables mapping symbol names to values, with the
// define/set/lookup/remove/push_scope/pop_scope operations the evaluator
// drives directly.
package wispenv

import (
	"github.com/giorgioyu125/wisp/internal/gc"
)

// Env is a thin handle onto a GC-managed scope. Its identity lives in the
// heap (as a gc.VEnv value) so closures can capture it by value and the
// collector can trace it like any other reachable object; Env itself adds
// no state beyond that handle.
type Env struct {
	heap  *gc.Heap
	Value gc.Value
}

// NewScope allocates a fresh scope chained to parent. A nil parent starts
// the global scope, which gets a larger initial bucket table.
func NewScope(heap *gc.Heap, parent *Env) (*Env, error) {
	parentVal := gc.Nil
	if parent != nil {
		parentVal = parent.Value
	}
	v, err := heap.NewEnv(parentVal, parent == nil)
	if err != nil {
		return nil, err
	}
	return &Env{heap: heap, Value: v}, nil
}

// Define binds name in this scope. Defining over an existing const
// binding in the same scope fails with KindConstRebind.
func (e *Env) Define(name string, v gc.Value, isConst bool) error {
	return e.heap.EnvDefine(e.Value, name, v, isConst)
}

// Set rebinds an existing binding, searching this scope then its
// ancestors. Fails with KindUnboundSymbol if name is bound nowhere in the
// chain, or KindConstRebind if the binding found is const.
func (e *Env) Set(name string, v gc.Value) error {
	return e.heap.EnvSet(e.Value, name, v)
}

// Lookup searches this scope and its ancestors.
func (e *Env) Lookup(name string) (gc.Value, bool) {
	return e.heap.EnvLookup(e.Value, name)
}

// LookupLocal searches only this scope.
func (e *Env) LookupLocal(name string) (gc.Value, bool) {
	return e.heap.EnvLookupLocal(e.Value, name)
}

// Remove deletes a binding from this scope only; const bindings cannot be
// removed.
func (e *Env) Remove(name string) (bool, error) {
	return e.heap.EnvRemove(e.Value, name)
}

// IsConst reports whether name, wherever it resolves in the chain, is
// bound const.
func (e *Env) IsConst(name string) bool {
	return e.heap.EnvIsConst(e.Value, name)
}

// PushScope allocates and returns a child scope of e, for entering a new
// lexical block (lambda call, let).
func (e *Env) PushScope() (*Env, error) {
	return NewScope(e.heap, e)
}

// PopScope returns e's parent scope, or false if e is the global scope
// with no parent to pop to.
func (e *Env) PopScope() (*Env, bool) {
	parentVal := e.heap.EnvParentValue(e.Value)
	if parentVal.Kind != gc.VEnv {
		return nil, false
	}
	return &Env{heap: e.heap, Value: parentVal}, true
}

// FromValue wraps an existing gc.VEnv value as an Env handle, for the
// evaluator to recover a scope captured inside a closure.
func FromValue(heap *gc.Heap, v gc.Value) *Env {
	return &Env{heap: heap, Value: v}
}
