package gc

// PushRoot registers a pointer to a Go-resident Value as a GC root. The
// mutator (the evaluator or a built-in) pushes a root before any call
// that might allocate and protect a Value it hasn't anchored anywhere
// else yet; PopRoot removes it afterward. Roots may be pushed and popped
// in any order, per spec.
func (h *Heap) PushRoot(slot *Value) {
	h.roots = append(h.roots, slot)
}

// PopRoot removes the most recently pushed root. Calling it more times
// than PushRoot was called is a contract violation and panics, matching
// the "internal invariant" class of bug the GC itself cannot recover
// from.
func (h *Heap) PopRoot() {
	if len(h.roots) == 0 {
		panic("gc: PopRoot with empty root set")
	}
	h.roots = h.roots[:len(h.roots)-1]
}

// RemoveRoot drops a specific root slot wherever it sits in the set,
// letting callers release roots out of push order (spec: "roots may be
// registered or removed in any order").
func (h *Heap) RemoveRoot(slot *Value) {
	for i, r := range h.roots {
		if r == slot {
			h.roots = append(h.roots[:i], h.roots[i+1:]...)
			return
		}
	}
}

// RootCount reports the number of currently registered roots, for tests.
func (h *Heap) RootCount() int { return len(h.roots) }
