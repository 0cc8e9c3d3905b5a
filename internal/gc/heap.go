package gc

import (
	"io"
	"log/slog"

	"github.com/giorgioyu125/wisp/internal/wisperr"
)

// Ref addresses a heap object: the high nibble names the region, the low
// bits the object's index within that region's slice. Ref zero means "no
// object" (the GC-level analogue of a null pointer); whether a zero Ref is
// even meaningful depends on the owning Value's Kind.
type Ref uint32

const (
	regionNone Ref = 0
	regionEden Ref = 1
	regionS0   Ref = 2
	regionS1   Ref = 3
	regionOld  Ref = 4

	regionShift = 28
	indexMask   = 0x0FFFFFFF
)

func makeRef(region Ref, idx int) Ref { return region<<regionShift | Ref(idx)&indexMask }

func (r Ref) region() Ref { return r >> regionShift }
func (r Ref) index() int  { return int(r & indexMask) }

func (r Ref) isNil() bool { return r == regionNone }

// region is one contiguous, fixed-capacity slice of objects with a bump
// index. Capacity is fixed at construction so that element addresses
// never move out from under an in-progress collection scan.
type region struct {
	objects []object
	bump    int
}

func newRegion(capacity int) *region {
	return &region{objects: make([]object, 0, capacity)}
}

func (rg *region) cap() int { return cap(rg.objects) }
func (rg *region) len() int { return len(rg.objects) }

// bumpAlloc appends obj if capacity allows and returns its index, or
// (-1, false) on overflow.
func (rg *region) bumpAlloc(obj object) (int, bool) {
	if len(rg.objects) >= cap(rg.objects) {
		return -1, false
	}
	rg.objects = append(rg.objects, obj)
	return len(rg.objects) - 1, true
}

// Heap owns Eden, the two survivor semi-spaces, and the old generation,
// plus the root set and the reference-extraction dispatch used to trace
// live values during collection.
type Heap struct {
	eden       *region
	survivors  [2]*region // indices 0 and 1; toSpace names the live one
	old        *region
	toSpace    int // 0 or 1: which survivors[] entry is the current to-space
	promoAge   int
	roots      []*Value
	collecting bool
	logger     *slog.Logger
	symbols    map[string]*symbolEntry

	minorCollections int
	majorCollections int
}

// New constructs a Heap with the given options applied over the spec's
// defaults.
func New(opts ...Option) *Heap {
	cfg := defaultConfig()
	for _, o := range opts {
		o(&cfg)
	}
	return &Heap{
		eden:      newRegion(objectCapacity(cfg.edenSize)),
		survivors: [2]*region{newRegion(objectCapacity(cfg.survivorSize)), newRegion(objectCapacity(cfg.survivorSize))},
		old:       newRegion(objectCapacity(cfg.oldSize)),
		promoAge:  cfg.promotionAge,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		symbols:   make(map[string]*symbolEntry),
	}
}

// SetLogger installs a debug logger; a nil logger restores the discard
// default.
func (h *Heap) SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	h.logger = l
}

func (h *Heap) fromSpace() *region { return h.survivors[h.toSpace^1] }
func (h *Heap) toRegion() *region  { return h.survivors[h.toSpace] }

// alloc is the single entry point for every heap allocation: bump in
// Eden; on failure trigger a minor collection and retry Eden; on still
// failure attempt Old directly; on still-failure trigger a major
// collection and retry Old; final failure is OutOfMemory.
//
// build is called again after every collection attempt rather than being
// materialized once up front: a collection run before this object exists
// may move objects the caller has already pushed onto the root set (e.g.
// a cons cell's car/cdr), and re-invoking build picks up the fixed-up
// values instead of baking in stale Refs.
func (h *Heap) alloc(kind objectKind, build func() object) (Ref, error) {
	if h.collecting {
		return 0, wisperr.New(wisperr.KindInternalInvariant, "gc: allocation attempted during collection")
	}

	mk := func(gen Generation) object {
		obj := build()
		obj.kind = kind
		obj.generation = gen
		obj.size = payloadSize(&obj)
		return obj
	}

	if idx, ok := h.eden.bumpAlloc(mk(Young)); ok {
		return makeRef(regionEden, idx), nil
	}
	h.MinorCollect()
	if idx, ok := h.eden.bumpAlloc(mk(Young)); ok {
		return makeRef(regionEden, idx), nil
	}

	if idx, ok := h.old.bumpAlloc(mk(Old)); ok {
		return makeRef(regionOld, idx), nil
	}
	h.MajorCollect()
	if idx, ok := h.old.bumpAlloc(mk(Old)); ok {
		return makeRef(regionOld, idx), nil
	}
	return 0, wisperr.New(wisperr.KindOutOfMemory, "gc: heap exhausted")
}

func (h *Heap) regionFor(r Ref) *region {
	switch r.region() {
	case regionEden:
		return h.eden
	case regionS0:
		return h.survivors[0]
	case regionS1:
		return h.survivors[1]
	case regionOld:
		return h.old
	default:
		return nil
	}
}

func (h *Heap) obj(r Ref) *object {
	rg := h.regionFor(r)
	if rg == nil || r.index() >= len(rg.objects) {
		return nil
	}
	return &rg.objects[r.index()]
}

// RegionStats reports one region's occupancy.
type RegionStats struct {
	Used     int
	Capacity int
}

// Snapshot captures per-region occupancy, for the CLI's --gc-stats
// before/after diff.
type Snapshot struct {
	Eden      RegionStats
	ToSpace   RegionStats
	FromSpace RegionStats
	Old       RegionStats
}

func (h *Heap) Snapshot() Snapshot {
	stat := func(rg *region) RegionStats { return RegionStats{Used: rg.len(), Capacity: rg.cap()} }
	return Snapshot{
		Eden:      stat(h.eden),
		ToSpace:   stat(h.toRegion()),
		FromSpace: stat(h.fromSpace()),
		Old:       stat(h.old),
	}
}

// Counters reports how many minor and major collections have run, for
// tests and diagnostics.
func (h *Heap) Counters() (minor, major int) { return h.minorCollections, h.majorCollections }
