// Package effects - image effects verified by golden image tests.
package effects

import (
	"sort"
	"sync"

	"github.com/pkg/errors"
	"github.com/samber/lo"

	"github.com/nvr-ai/go-imagetest/images"
)

// Effect transforms an image in place.
type Effect interface {
	// Name is the registry key and the name of the effect's results directory.
	Name() string
	// Apply mutates img.
	Apply(img *images.Image) error
}

// Factory creates an effect configured with its defaults.
type Factory func() Effect

var (
	mu       sync.RWMutex
	registry = map[string]Factory{}
)

func init() {
	MustRegister(GradientName, func() Effect { return NewGradient() })
}

// Register adds a factory under name.
//
// Arguments:
// - name: The effect name, also used as its fixture results directory.
// - factory: Creates an effect with default settings.
//
// Returns:
// - error: Error if the name is empty, the factory is nil or the name is taken.
//
// @example
//
//	err := effects.Register("invert", func() effects.Effect { return &Invert{} })
func Register(name string, factory Factory) error {
	if name == "" {
		return errors.New("effect name cannot be empty")
	}
	if factory == nil {
		return errors.Errorf("effect %q has no factory", name)
	}

	mu.Lock()
	defer mu.Unlock()
	if _, ok := registry[name]; ok {
		return errors.Errorf("effect %q is already registered", name)
	}
	registry[name] = factory
	return nil
}

// MustRegister is Register that panics on error.
func MustRegister(name string, factory Factory) {
	if err := Register(name, factory); err != nil {
		panic(err)
	}
}

// Lookup creates a new instance of the effect registered under name.
//
// Arguments:
// - name: The registered effect name.
//
// Returns:
// - Effect: A fresh effect with default settings.
// - error: Error if no effect is registered under name.
//
// @example
//
//	effect, err := effects.Lookup("gradient")
//	if err != nil {
//	    return err
//	}
//	err = effect.Apply(img)
func Lookup(name string) (Effect, error) {
	mu.RLock()
	factory, ok := registry[name]
	mu.RUnlock()
	if !ok {
		return nil, errors.Errorf("unsupported effect name: %s", name)
	}
	return factory(), nil
}

// Names returns the registered effect names in sorted order.
func Names() []string {
	mu.RLock()
	names := lo.Keys(registry)
	mu.RUnlock()
	sort.Strings(names)
	return names
}
