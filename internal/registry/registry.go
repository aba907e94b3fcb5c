// Package registry provides a global registry for autopilot policies.
// Policies register themselves in init() functions, allowing the session
// and CLI to discover and instantiate them by name.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/flapduel/internal/config"
	"github.com/vovakirdan/flapduel/internal/core"
)

// Pilot decides, once per frame, whether an autopilot-driven lane flaps.
// Pilots see only the read-only view; they never touch lane state.
type Pilot interface {
	// Name returns the policy identifier (e.g., "tracker", "reflex").
	Name() string

	// Reset clears per-round bookkeeping such as pending reactions.
	Reset()

	// Decide returns true when the avatar should flap this frame.
	Decide(v core.PilotView) bool
}

// PilotInfo contains metadata about a registered policy.
type PilotInfo struct {
	Name        string
	Description string
}

// Factory creates a new pilot drawing randomness from rng.
type Factory func(rng core.Rand, cfg config.AutopilotConfig) Pilot

type entry struct {
	factory     Factory
	description string
}

var (
	pilots = make(map[string]entry)
	mu     sync.RWMutex
)

// Register adds a pilot factory to the registry.
// Panics if a policy with the same name is already registered.
func Register(name, description string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := pilots[name]; exists {
		panic(fmt.Sprintf("registry: pilot %q already registered", name))
	}
	pilots[name] = entry{factory: f, description: description}
}

// List returns all registered policies, sorted by name.
func List() []PilotInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]PilotInfo, 0, len(pilots))
	for name, e := range pilots {
		result = append(result, PilotInfo{Name: name, Description: e.description})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})

	return result
}

// Create instantiates a pilot by name.
// Returns an error if the name is not registered.
func Create(name string, rng core.Rand, cfg config.AutopilotConfig) (Pilot, error) {
	mu.RLock()
	defer mu.RUnlock()

	e, ok := pilots[name]
	if !ok {
		return nil, fmt.Errorf("registry: unknown pilot %q", name)
	}
	return e.factory(rng, cfg), nil
}

// Exists checks if a pilot with the given name is registered.
func Exists(name string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := pilots[name]
	return ok
}
