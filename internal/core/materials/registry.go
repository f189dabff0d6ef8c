package materials

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// Names of the materials every registry starts with.
const (
	Default = "_default"
	Metal   = "metal"
)

var (
	ErrAlreadyRegistered = errors.New("material already registered")
	ErrNotRegistered     = errors.New("material not registered")
	ErrRegistrySealed    = errors.New("material registry is sealed")
	ErrInvalidMaterial   = errors.New("invalid material")
)

// Material is an immutable set of physical parameters used when a shape is
// built. Density feeds mass estimates; friction and elasticity go to the
// physics engine.
type Material struct {
	Name       string  `yaml:"name"`
	Density    float64 `yaml:"density"`
	Friction   float64 `yaml:"friction"`
	Elasticity float64 `yaml:"elasticity"`
}

func (m Material) Validate() error {
	if m.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidMaterial)
	}
	if m.Density < 0 || m.Friction < 0 || m.Elasticity < 0 {
		return fmt.Errorf("%w: %s has negative parameters", ErrInvalidMaterial, m.Name)
	}
	return nil
}

// Registry is a named lookup of materials. It is written during world
// setup and sealed before the first tick.
type Registry struct {
	mu        sync.RWMutex
	materials map[string]Material
	sealed    bool
}

// NewRegistry returns a registry holding the built-in materials.
func NewRegistry() *Registry {
	r := &Registry{materials: make(map[string]Material)}
	for _, m := range builtin() {
		r.materials[m.Name] = m
	}
	return r
}

func builtin() []Material {
	return []Material{
		{Name: Default, Density: 1, Friction: 0.3, Elasticity: 0.1},
		{Name: Metal, Density: 7.8, Friction: 0.4, Elasticity: 0.05},
	}
}

// Register adds a material. Built-in names may be overridden once before
// sealing; any other duplicate is rejected.
func (r *Registry) Register(m Material) error {
	if err := m.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.sealed {
		return fmt.Errorf("%w: %s", ErrRegistrySealed, m.Name)
	}
	if existing, ok := r.materials[m.Name]; ok && !isBuiltin(existing) {
		return fmt.Errorf("%w: %s", ErrAlreadyRegistered, m.Name)
	}
	r.materials[m.Name] = m
	return nil
}

// Get looks a material up by name.
func (r *Registry) Get(name string) (Material, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.materials[name]
	return m, ok
}

// Lookup is Get with an error for unknown names.
func (r *Registry) Lookup(name string) (Material, error) {
	m, ok := r.Get(name)
	if !ok {
		return Material{}, fmt.Errorf("%w: %s", ErrNotRegistered, name)
	}
	return m, nil
}

// MustGet panics on unknown names; use for built-in materials only.
func (r *Registry) MustGet(name string) Material {
	m, err := r.Lookup(name)
	if err != nil {
		panic(err)
	}
	return m
}

// Seal makes the registry read-only.
func (r *Registry) Seal() {
	r.mu.Lock()
	r.sealed = true
	r.mu.Unlock()
}

func (r *Registry) Sealed() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sealed
}

// Names returns registered names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.materials))
	for name := range r.materials {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func isBuiltin(m Material) bool {
	for _, b := range builtin() {
		if b == m {
			return true
		}
	}
	return false
}
