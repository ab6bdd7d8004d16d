package fibonacci

import (
	"fmt"
	"sort"
	"sync"
)

// Factory is a registry of builtin variants indexed by name.
type Factory struct {
	mu    sync.RWMutex
	algos map[string]Algorithm
}

// NewFactory returns an empty factory.
func NewFactory() *Factory {
	return &Factory{algos: make(map[string]Algorithm)}
}

// NewDefaultFactory returns a factory holding every builtin variant.
func NewDefaultFactory() *Factory {
	f := NewFactory()
	for _, alg := range []Algorithm{Naive{}, Recursive{}, Iterative{}, Table{}, Matrix{}, Binet{}} {
		// Names are distinct, Register cannot fail here.
		_ = f.Register(alg)
	}
	return f
}

var (
	globalFactory     *Factory
	globalFactoryOnce sync.Once
)

// GlobalFactory returns the process-wide default factory.
func GlobalFactory() *Factory {
	globalFactoryOnce.Do(func() { globalFactory = NewDefaultFactory() })
	return globalFactory
}

// Register adds alg under its name. Registering a name twice is an error.
func (f *Factory) Register(alg Algorithm) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, exists := f.algos[alg.Name()]; exists {
		return fmt.Errorf("variant %q already registered", alg.Name())
	}
	f.algos[alg.Name()] = alg
	return nil
}

// Get returns the variant registered under name.
func (f *Factory) Get(name string) (Algorithm, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	alg, ok := f.algos[name]
	if !ok {
		return nil, fmt.Errorf("unknown variant %q (available: %v)", name, f.listLocked())
	}
	return alg, nil
}

// MustGet is like Get but panics on unknown names.
func (f *Factory) MustGet(name string) Algorithm {
	alg, err := f.Get(name)
	if err != nil {
		panic(err)
	}
	return alg
}

// List returns the registered names in sorted order.
func (f *Factory) List() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.listLocked()
}

func (f *Factory) listLocked() []string {
	names := make([]string, 0, len(f.algos))
	for name := range f.algos {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetAll returns every registered variant, ordered by version.
func (f *Factory) GetAll() []Algorithm {
	f.mu.RLock()
	defer f.mu.RUnlock()
	all := make([]Algorithm, 0, len(f.algos))
	for _, alg := range f.algos {
		all = append(all, alg)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Version() < all[j].Version() })
	return all
}
