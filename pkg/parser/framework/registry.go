package framework

import (
	"sort"
	"sync"
)

var defaultRegistry = NewRegistry()

// Registry holds framework definitions ordered by priority.
type Registry struct {
	mu          sync.RWMutex
	definitions []*Definition
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// DefaultRegistry returns the registry populated by strategy init functions.
func DefaultRegistry() *Registry {
	return defaultRegistry
}

// Register adds a definition to the default registry.
func Register(def *Definition) {
	defaultRegistry.Register(def)
}

// Register adds a definition, replacing any previous one with the same name.
func (r *Registry) Register(def *Definition) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, existing := range r.definitions {
		if existing.Name == def.Name {
			r.definitions[i] = def
			r.sort()
			return
		}
	}
	r.definitions = append(r.definitions, def)
	r.sort()
}

func (r *Registry) sort() {
	sort.SliceStable(r.definitions, func(i, j int) bool {
		if r.definitions[i].Priority != r.definitions[j].Priority {
			return r.definitions[i].Priority > r.definitions[j].Priority
		}
		return r.definitions[i].Name < r.definitions[j].Name
	})
}

// Find returns the definition with the given name, or nil.
func (r *Registry) Find(name string) *Definition {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, def := range r.definitions {
		if def.Name == name {
			return def
		}
	}
	return nil
}

// All returns a copy of all definitions, highest priority first.
func (r *Registry) All() []*Definition {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*Definition, len(r.definitions))
	copy(result, r.definitions)
	return result
}

// Names returns the registered framework names in alphabetical order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.definitions))
	for _, def := range r.definitions {
		names = append(names, def.Name)
	}
	sort.Strings(names)
	return names
}

// Clear removes all definitions.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.definitions = nil
}
