package gc

// Intern returns the canonical Symbol for name, minting a new
// *symbolEntry the first time a name is seen so that later interns of the
// same name compare pointer-equal (and therefore eq?).
func (h *Heap) Intern(name string) Symbol {
	if e, ok := h.symbols[name]; ok {
		return Symbol{entry: e}
	}
	e := &symbolEntry{name: name, hash: envHash(name)}
	h.symbols[name] = e
	return Symbol{entry: e}
}

// InternValue is a convenience wrapping Intern in a VSymbol Value.
func (h *Heap) InternValue(name string) Value {
	return SymbolValue(h.Intern(name))
}
