package gc

// NewString allocates an immutable byte string on the heap.
func (h *Heap) NewString(b []byte) (Value, error) {
	cp := make([]byte, len(b))
	copy(cp, b)
	r, err := h.alloc(okString, func() object { return object{bytes: cp} })
	if err != nil {
		return Value{}, err
	}
	return Value{Kind: VString, Ref: r}, nil
}

func (h *Heap) stringBytes(r Ref) []byte {
	o := h.obj(r)
	if o == nil {
		return nil
	}
	return o.bytes
}

// StringBytes exposes a VString value's raw bytes to other packages
// (display's unquoted printed form, the evaluator's quote/eval bridge).
func (h *Heap) StringBytes(v Value) []byte {
	return h.stringBytes(v.Ref)
}

// UninternedName exposes a VUninterned value's textual name.
func (h *Heap) UninternedName(v Value) string {
	return h.uninternedName(v.Ref)
}

// NewUninterned allocates a fresh #:name value; its identity (the uuid) is
// distinct from any other uninterned symbol with the same textual name.
func (h *Heap) NewUninterned(name string) (Value, error) {
	id := NewUUID()
	r, err := h.alloc(okUninterned, func() object { return object{name: name, uuid: id} })
	if err != nil {
		return Value{}, err
	}
	return Value{Kind: VUninterned, Ref: r}, nil
}

func (h *Heap) uninternedName(r Ref) string {
	o := h.obj(r)
	if o == nil {
		return ""
	}
	return o.name
}

func (h *Heap) uninternedUUID(r Ref) [16]byte {
	o := h.obj(r)
	if o == nil {
		return [16]byte{}
	}
	return o.uuid
}

// NewCons allocates a single cons cell. car and cdr are pushed onto the
// root set for the duration of the call, so that if building this very
// cell triggers a collection, their Refs are fixed up before the cell's
// fields are finally read.
func (h *Heap) NewCons(car, cdr Value) (Value, error) {
	h.PushRoot(&car)
	h.PushRoot(&cdr)
	defer h.PopRoot()
	defer h.PopRoot()

	r, err := h.alloc(okCons, func() object { return object{car: car, cdr: cdr} })
	if err != nil {
		return Value{}, err
	}
	return Value{Kind: VCons, Ref: r}, nil
}

// Car / Cdr read a cons cell's fields. Calling them on a non-cons Value is
// a caller bug; the evaluator's type-checking built-ins guard this.
func (h *Heap) Car(v Value) Value {
	o := h.obj(v.Ref)
	if o == nil {
		return Nil
	}
	return o.car
}

func (h *Heap) Cdr(v Value) Value {
	o := h.obj(v.Ref)
	if o == nil {
		return Nil
	}
	return o.cdr
}

func (h *Heap) consString(v Value) string {
	var parts []string
	for cur := v; cur.Kind == VCons; {
		o := h.obj(cur.Ref)
		if o == nil {
			break
		}
		parts = append(parts, o.car.String(h))
		cur = o.cdr
	}
	return "(" + join(parts, " ") + ")"
}

func join(parts []string, sep string) string {
	out := ""
	for i, p := range parts {
		if i > 0 {
			out += sep
		}
		out += p
	}
	return out
}

// NewClosure allocates a closure object. body holds opaque *ast.Expr
// values (see object.bodyForm); the evaluator is the only package that
// type-asserts them back. env is pushed as a root for the duration of the
// call for the same reason as NewCons's car/cdr.
func (h *Heap) NewClosure(params []string, body []bodyForm, env Value) (Value, error) {
	h.PushRoot(&env)
	defer h.PopRoot()

	r, err := h.alloc(okClosure, func() object { return object{params: params, body: body, envVal: env} })
	if err != nil {
		return Value{}, err
	}
	return Value{Kind: VClosure, Ref: r}, nil
}

// ClosureParts returns a closure's parameter names, body forms, and
// captured environment value.
func (h *Heap) ClosureParts(v Value) ([]string, []bodyForm, Value) {
	o := h.obj(v.Ref)
	if o == nil {
		return nil, nil, Nil
	}
	return o.params, o.body, o.envVal
}

const initialBuckets = 8
const globalInitialBuckets = 64
const loadFactor = 0.75

// NewEnv allocates a new GC-managed scope. parent is a VEnv value, or Nil
// for the global scope. isGlobal selects the larger initial bucket count
// spec.md mandates for the scope with no parent.
func (h *Heap) NewEnv(parent Value, isGlobal bool) (Value, error) {
	h.PushRoot(&parent)
	defer h.PopRoot()

	n := initialBuckets
	if isGlobal {
		n = globalInitialBuckets
	}
	r, err := h.alloc(okEnv, func() object {
		return object{parentVal: parent, buckets: make([][]bucketEntry, n)}
	})
	if err != nil {
		return Value{}, err
	}
	return Value{Kind: VEnv, Ref: r}, nil
}

func (h *Heap) envParent(v Value) Value {
	o := h.obj(v.Ref)
	if o == nil {
		return Nil
	}
	return o.parentVal
}

// EnvParentValue exposes a scope's parent value to other packages (the
// environment package uses it to implement pop_scope).
func (h *Heap) EnvParentValue(v Value) Value {
	return h.envParent(v)
}
