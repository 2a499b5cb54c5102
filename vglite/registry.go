package vglite

import (
	"fmt"
	"sort"
	"sync"
)

// Factory creates a new backend instance.
// Factories are registered via Register and called by NewBackend.
type Factory func() Backend

var (
	registryMu sync.RWMutex
	factories  = make(map[string]Factory)
)

// Register makes a backend available by name.
// It is typically called from init in the backend package:
//
//	func init() {
//	    vglite.Register("soft", func() vglite.Backend { return New() })
//	}
//
// Register panics if factory is nil or if name is already registered.
func Register(name string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if factory == nil {
		panic("vglite: Register factory is nil")
	}
	if _, dup := factories[name]; dup {
		panic("vglite: Register called twice for " + name)
	}
	factories[name] = factory
}

// Unregister removes a backend from the registry.
// If the backend is not registered, this is a no-op.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(factories, name)
}

// NewBackend creates a new backend instance by name.
//
//	import _ "github.com/gogpu/svglite/vglite/soft"
//
//	b, err := vglite.NewBackend("soft")
func NewBackend(name string) (Backend, error) {
	registryMu.RLock()
	factory, ok := factories[name]
	registryMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("vglite: unknown backend %q (forgotten import?)", name)
	}
	return factory(), nil
}

// MustBackend is like NewBackend but panics on error.
func MustBackend(name string) Backend {
	b, err := NewBackend(name)
	if err != nil {
		panic(err)
	}
	return b
}

// Backends returns the sorted names of all registered backends.
func Backends() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsRegistered reports whether a backend with the given name exists.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := factories[name]
	return ok
}

// Count returns the number of registered backends.
func Count() int {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return len(factories)
}
