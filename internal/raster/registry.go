package raster

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

type Factory func() Backend

var (
	mu       sync.RWMutex
	backends = make(map[string]Factory)

	// known lists every capability name this service understands, linked or not.
	known = map[string]bool{
		"draw":    true,
		"gd":      true,
		"imaging": true,
		"imagick": true,
		"bild":    true,
		"vips":    true,
	}
)

// Register makes a backend available under name and its aliases. Adapters
// call it from init.
func Register(factory Factory, names ...string) {
	mu.Lock()
	defer mu.Unlock()

	for _, name := range names {
		name = strings.ToLower(name)
		if _, dup := backends[name]; dup {
			panic("raster: backend registered twice: " + name)
		}
		backends[name] = factory
		known[name] = true
	}
}

// New returns the backend registered under name.
func New(name string) (Backend, error) {
	key := strings.ToLower(strings.TrimSpace(name))

	mu.RLock()
	factory, ok := backends[key]
	isKnown := known[key]
	mu.RUnlock()

	switch {
	case ok:
		return factory(), nil
	case isKnown:
		return nil, fmt.Errorf("%w: %s", ErrBackendUnavailable, name)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedBackend, name)
	}
}

// Available lists the registered backend names.
func Available() []string {
	mu.RLock()
	defer mu.RUnlock()

	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
