package lang

// SymbolTable holds the scalar bindings established by define statements.
// It is scoped to a single compilation and threaded explicitly through the
// parser and evaluator, so compilations stay reentrant.
type SymbolTable struct {
	syms  map[string]Value
	names []string // insertion order, for suggestions and completion
}

// NewSymbolTable creates an empty symbol table.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{syms: make(map[string]Value)}
}

// Define binds name to a scalar value. Redefining an existing name
// overwrites the previous binding; this is legal, not an error.
func (t *SymbolTable) Define(name string, v Value) {
	if _, ok := t.syms[name]; !ok {
		t.names = append(t.names, name)
	}

	t.syms[name] = v
}

// Resolve returns the value bound to name.
func (t *SymbolTable) Resolve(name string) (Value, bool) {
	v, ok := t.syms[name]

	return v, ok
}

// Names returns all bound names in definition order.
func (t *SymbolTable) Names() []string {
	names := make([]string, len(t.names))
	copy(names, t.names)

	return names
}

// Len returns the number of bound names.
func (t *SymbolTable) Len() int { return len(t.names) }
