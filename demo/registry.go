package demo

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrUnknownDemo is returned by New for a name nobody registered.
var ErrUnknownDemo = errors.New("demo: unknown demo")

// Factory creates a new, uninitialized demo.
type Factory func() Demo

var (
	registryMu sync.RWMutex
	factories  = make(map[string]Factory)
)

// Register registers a demo factory under name. It is typically called from
// the init function of a demo package. Registering a name again replaces
// the previous factory.
func Register(name string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	factories[name] = factory
}

// Unregister removes a demo from the registry.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(factories, name)
}

// Names returns the registered demo names in sorted order.
func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsRegistered reports whether a demo with the given name is registered.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := factories[name]
	return ok
}

// New returns a fresh instance of the named demo.
func New(name string) (Demo, error) {
	f, err := lookup(name)
	if err != nil {
		return nil, err
	}
	return f(), nil
}

func lookup(name string) (Factory, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	f, ok := factories[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDemo, name)
	}
	return f, nil
}
