package gc

func isHeapKind(k ValueKind) bool {
	switch k {
	case VString, VUninterned, VCons, VClosure, VEnv:
		return true
	default:
		return false
	}
}

func regionTag(rg *region, h *Heap) Ref {
	switch rg {
	case h.eden:
		return regionEden
	case h.survivors[0]:
		return regionS0
	case h.survivors[1]:
		return regionS1
	case h.old:
		return regionOld
	default:
		return regionNone
	}
}

// MinorCollect runs a Cheney-style copying collection of the nursery:
// every root and every old-generation reference pointing into from-space
// is traced with a worklist of slots (rather than the classic two-pointer
// scan, which this is equivalent to), copying live objects into the
// current to-space and promoting objects that have survived
// promotion_age_threshold minor collections.
func (h *Heap) MinorCollect() {
	h.collecting = true
	defer func() { h.collecting = false }()

	from := h.fromSpace()
	to := h.toRegion()
	fromTag := regionTag(from, h)

	inFromSpace := func(v Value) bool {
		return isHeapKind(v.Kind) && (v.Ref.region() == regionEden || v.Ref.region() == fromTag)
	}

	var queue []*Value
	for _, root := range h.roots {
		if inFromSpace(*root) {
			queue = append(queue, root)
		}
	}
	for i := range h.old.objects {
		for _, slot := range extractRefs(&h.old.objects[i]) {
			if inFromSpace(*slot) {
				queue = append(queue, slot)
			}
		}
	}

	for qi := 0; qi < len(queue); qi++ {
		slot := queue[qi]
		v := *slot
		if !inFromSpace(v) {
			continue
		}
		srcRegion := h.eden
		if v.Ref.region() != regionEden {
			srcRegion = from
		}
		srcObj := &srcRegion.objects[v.Ref.index()]
		if !srcObj.forward.isNil() {
			slot.Ref = srcObj.forward
			continue
		}

		newRef := h.promoteOrCopy(srcObj, to)
		srcObj.forward = newRef
		slot.Ref = newRef

		movedObj := h.obj(newRef)
		queue = append(queue, extractRefs(movedObj)...)
	}

	// Invariant: Eden and the scanned from-survivor are empty afterward.
	h.eden.objects = h.eden.objects[:0]
	from.objects = from.objects[:0]
	h.toSpace ^= 1
	h.minorCollections++
	h.logger.Debug("gc: minor collection", "promoted_to", "old", "eden_reset", true)
}

// promoteOrCopy copies srcObj into the nursery's to-space, or directly
// into old generation if its age has reached the promotion threshold, or
// as an overflow fallback when the to-space copy doesn't fit.
func (h *Heap) promoteOrCopy(srcObj *object, to *region) Ref {
	cp := *srcObj
	cp.forward = 0

	if cp.age+1 >= h.promoAge {
		cp.age = 0
		cp.generation = Old
		if idx, ok := h.old.bumpAlloc(cp); ok {
			return makeRef(regionOld, idx)
		}
		// Old is also full: nothing left to fall back to inside a minor
		// collection: the caller's retry of the original allocation will
		// observe eden still full and hit the major-collection path.
		return 0
	}

	cp.age++
	if idx, ok := to.bumpAlloc(cp); ok {
		return makeRef(regionTag(to, h), idx)
	}
	// To-space overflow: fall back to promoting directly to old.
	cp.age = 0
	cp.generation = Old
	if idx, ok := h.old.bumpAlloc(cp); ok {
		return makeRef(regionOld, idx)
	}
	return 0
}

// MajorCollect runs mark-compact over the old generation: mark reachable
// from the union of roots and nursery-resident objects whose references
// point into old, then compact live objects toward the region start,
// updating every pointer to its relocated address.
func (h *Heap) MajorCollect() {
	h.collecting = true
	defer func() { h.collecting = false }()

	n := len(h.old.objects)
	live := make([]bool, n)
	var queue []int

	seed := func(v Value) {
		if isHeapKind(v.Kind) && v.Ref.region() == regionOld {
			idx := v.Ref.index()
			if idx < n && !live[idx] {
				live[idx] = true
				queue = append(queue, idx)
			}
		}
	}

	for _, root := range h.roots {
		seed(*root)
	}
	for _, rg := range []*region{h.eden, h.survivors[0], h.survivors[1]} {
		for i := range rg.objects {
			for _, slot := range extractRefs(&rg.objects[i]) {
				seed(*slot)
			}
		}
	}
	for qi := 0; qi < len(queue); qi++ {
		idx := queue[qi]
		for _, slot := range extractRefs(&h.old.objects[idx]) {
			seed(*slot)
		}
	}

	mapping := make([]int, n)
	compacted := make([]object, 0, cap(h.old.objects))
	for i, obj := range h.old.objects {
		if !live[i] {
			mapping[i] = -1
			continue
		}
		mapping[i] = len(compacted)
		compacted = append(compacted, obj)
	}

	fix := func(v *Value) {
		if isHeapKind(v.Kind) && v.Ref.region() == regionOld {
			ni := mapping[v.Ref.index()]
			if ni < 0 {
				*v = Nil // unreachable from roots; dropped by compaction
				return
			}
			v.Ref = makeRef(regionOld, ni)
		}
	}

	for _, root := range h.roots {
		fix(root)
	}
	for _, rg := range []*region{h.eden, h.survivors[0], h.survivors[1]} {
		for i := range rg.objects {
			for _, slot := range extractRefs(&rg.objects[i]) {
				fix(slot)
			}
		}
	}
	for i := range compacted {
		for _, slot := range extractRefs(&compacted[i]) {
			fix(slot)
		}
	}

	h.old.objects = compacted
	h.majorCollections++
	h.logger.Debug("gc: major collection", "old_live", len(compacted), "old_total", n)
}
