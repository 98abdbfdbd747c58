package validation

import (
	"sync"

	"github.com/gfxlayers/chassis/report"
	"github.com/gfxlayers/chassis/settings"
)

// Factory constructs one component for one scope. Registered factories are
// consulted at scope construction for every enabled component type.
type Factory func(scope ScopeKind, cfg *settings.Settings, rep *report.Reporter) Component

// Registry maps component types to factories. The zero value is unusable;
// use NewRegistry.
type Registry struct {
	mu        sync.RWMutex
	factories [TypeCount]Factory
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// DefaultRegistry is the process-wide registry components register into,
// typically from their package init.
var DefaultRegistry = NewRegistry()

// Register installs the factory for component type t, replacing any
// previous registration.
func (r *Registry) Register(t Type, f Factory) {
	r.mu.Lock()
	r.factories[t] = f
	r.mu.Unlock()
}

// Factory returns the factory for t, or nil if none is registered.
func (r *Registry) Factory(t Type) Factory {
	r.mu.RLock()
	f := r.factories[t]
	r.mu.RUnlock()
	return f
}

// Register installs a factory into the default registry.
func Register(t Type, f Factory) {
	DefaultRegistry.Register(t, f)
}

// Enabled reports whether component type t is switched on in cfg.
func Enabled(cfg *settings.Settings, t Type) bool {
	switch t {
	case TypeThreading:
		return cfg.Threading
	case TypeParameterValidation:
		return cfg.ParameterValidation
	case TypeObjectTracker:
		return cfg.ObjectTracker
	case TypeCoreValidation:
		return cfg.CoreValidation
	case TypeBestPractices:
		return cfg.BestPractices
	case TypeGPUAssisted:
		return cfg.GPUAssisted
	case TypeSyncValidation:
		return cfg.SyncValidation
	}
	return false
}
