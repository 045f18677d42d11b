package ufunc

import (
	"fmt"
	"sort"
	"sync"
)

// Registry holds named kernels. It is safe for concurrent use; duplicate
// registration is an error, never a silent replacement.
type Registry struct {
	mu      sync.RWMutex
	kernels map[string]*Kernel
}

// NewRegistry creates an empty kernel registry.
func NewRegistry() *Registry {
	return &Registry{kernels: make(map[string]*Kernel)}
}

// Register adds a kernel under its name.
func (r *Registry) Register(k *Kernel) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.kernels[k.name]; exists {
		return fmt.Errorf("kernel %q already registered", k.name)
	}
	r.kernels[k.name] = k
	return nil
}

// Lookup returns the kernel registered under name.
func (r *Registry) Lookup(name string) (*Kernel, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	k, ok := r.kernels[name]
	return k, ok
}

// Names returns the registered kernel names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.kernels))
	for name := range r.kernels {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// defaultRegistry backs the package-level registration functions.
var defaultRegistry = NewRegistry()

// Register adds a kernel to the default registry.
func Register(k *Kernel) error {
	return defaultRegistry.Register(k)
}

// Lookup returns a kernel from the default registry.
func Lookup(name string) (*Kernel, bool) {
	return defaultRegistry.Lookup(name)
}

// Names lists the default registry's kernel names in sorted order.
func Names() []string {
	return defaultRegistry.Names()
}
