package object

// Module is the value a successful `use "path"` binds: a fixed snapshot of
// the top-level bindings a source file produced, exposed as a direct handle
// rather than a live link into the defining scope's frame chain (spec.md
// §3.4 "module-scope binding bypasses the scope chain").
type Module struct {
	Name     string
	Path     string
	Bindings map[string]Object
}

func NewModule(name, path string) *Module {
	return &Module{Name: name, Path: path, Bindings: make(map[string]Object)}
}

func (m *Module) Kind() Kind      { return MODULE }
func (m *Module) Display() string { return "<module " + m.Name + ">" }
func (m *Module) Inspect() string { return m.Display() }
func (m *Module) IsTruthy() bool  { return true }

// Get looks up a top-level member by name.
func (m *Module) Get(name string) (Object, bool) {
	v, ok := m.Bindings[name]
	return v, ok
}
