package gc

// extractRefs returns the sequence of pointer-to-pointer slots an object
// exposes as outgoing references, dispatched by kind rather than by
// reflection (spec's "reference extraction without reflection" design
// note): one small switch replaces a per-object callback pointer.
func extractRefs(o *object) []*Value {
	switch o.kind {
	case okCons:
		return []*Value{&o.car, &o.cdr}
	case okClosure:
		return []*Value{&o.envVal}
	case okEnv:
		slots := make([]*Value, 0, o.count+1)
		slots = append(slots, &o.parentVal)
		for bi := range o.buckets {
			for ei := range o.buckets[bi] {
				slots = append(slots, &o.buckets[bi][ei].value)
			}
		}
		return slots
	case okString, okUninterned:
		return nil
	default:
		return nil
	}
}
