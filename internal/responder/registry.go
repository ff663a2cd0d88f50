package responder

import (
	"fmt"
	"slices"
	"sync"

	"zoesolar/zoe/internal/services/auth"
	"zoesolar/zoe/internal/util"

	"go.uber.org/zap"
)

// Settings carries what a factory may need to build a Responder.
type Settings struct {
	URL    string
	Store  auth.Store
	Logger *zap.Logger
}

// Factory builds a Responder from settings.
type Factory func(settings Settings) (Responder, error)

var (
	mu       sync.RWMutex
	registry = map[string]Factory{}
)

// Register adds a responder factory under name.
// It panics on empty name, nil factory, or duplicate registration
// (programmer errors detected at startup).
func Register(name string, factory Factory) {
	normalizedName := util.NormalizeKey(name)
	if normalizedName == "" {
		panic("responder: empty responder name")
	}
	if factory == nil {
		panic("responder: nil factory")
	}

	mu.Lock()
	defer mu.Unlock()
	if _, exists := registry[normalizedName]; exists {
		panic(fmt.Sprintf("responder: responder %q already registered", name))
	}

	registry[normalizedName] = factory
}

// Get constructs the Responder registered under name.
func Get(name string, settings Settings) (Responder, error) {
	normalizedName := util.NormalizeKey(name)
	mu.RLock()
	factory, ok := registry[normalizedName]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("responder: unknown responder %q", name)
	}
	if settings.Logger == nil {
		settings.Logger = zap.NewNop()
	}

	return factory(settings)
}

// List returns the names of all registered responders, sorted.
func List() []string {
	mu.RLock()
	defer mu.RUnlock()

	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Reset clears the registry. Intended for use in tests only.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	registry = map[string]Factory{}
}

var builtinsOnce sync.Once

// RegisterBuiltins registers the faq and http responders once per process.
func RegisterBuiltins() {
	builtinsOnce.Do(func() {
		RegisterFAQ()
		RegisterHTTP()
	})
}
