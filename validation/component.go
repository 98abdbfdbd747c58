// Package validation defines the interface between the chassis and its
// pluggable validation components.
//
// A component exposes up to three callback phases per entry point:
// pre-call-validate (which may veto the call), pre-call-record, and
// post-call-record. The chassis knows nothing else about a component; what
// each one checks lives entirely behind this interface.
//
// Components register a constructor per component type; scope objects
// instantiate the enabled ones in fixed priority order at construction and
// never mutate the chain afterwards.
package validation

import (
	"strconv"

	"github.com/gfxlayers/chassis/api"
	"github.com/gfxlayers/chassis/container"
	"github.com/gfxlayers/chassis/report"
)

// Type identifies a component class. The declaration order here is the
// chain priority order, independent of the order anything was enabled in
// configuration.
type Type int

const (
	TypeThreading Type = iota
	TypeParameterValidation
	TypeObjectTracker
	TypeCoreValidation
	TypeBestPractices
	TypeGPUAssisted
	TypeSyncValidation

	// TypeCount bounds iteration over component types.
	TypeCount
)

var typeNames = [TypeCount]string{
	TypeThreading:           "threading",
	TypeParameterValidation: "parameter_validation",
	TypeObjectTracker:       "object_tracker",
	TypeCoreValidation:      "core_validation",
	TypeBestPractices:       "best_practices",
	TypeGPUAssisted:         "gpu_assisted",
	TypeSyncValidation:      "sync_validation",
}

func (t Type) String() string {
	if t >= 0 && t < TypeCount {
		return typeNames[t]
	}
	return "Type(" + strconv.Itoa(int(t)) + ")"
}

// ScopeKind distinguishes instance-scope from device-scope chains.
type ScopeKind int

const (
	ScopeInstance ScopeKind = iota
	ScopeDevice
)

func (k ScopeKind) String() string {
	if k == ScopeInstance {
		return "instance"
	}
	return "device"
}

// Call is the context threaded through one intercepted call's phases. It
// lives on the calling goroutine's stack and is never shared across calls.
type Call struct {
	Entry    api.EntryPoint
	Args     any
	Reporter *report.Reporter

	// Scratch carries component state from the validate phase into the
	// record phases of the same call when explicitly persisted.
	Scratch container.Scratch
}

// Hook is one component's callbacks for one entry point. Any field may be
// nil. A non-nil error from PreValidate vetoes the call.
type Hook struct {
	PreValidate func(call *Call) error
	PreRecord   func(call *Call)
	PostRecord  func(call *Call, result api.Result)
}

// Empty reports whether the hook has no callbacks at all.
func (h Hook) Empty() bool {
	return h.PreValidate == nil && h.PreRecord == nil && h.PostRecord == nil
}

// HookTable collects a component's hooks, indexed by entry point.
type HookTable struct {
	hooks [api.EntryPointCount]Hook
}

// Set installs the hook for one entry point.
func (t *HookTable) Set(e api.EntryPoint, h Hook) {
	t.hooks[e] = h
}

// Get returns the hook for one entry point.
func (t *HookTable) Get(e api.EntryPoint) Hook {
	return t.hooks[e]
}

// Component is one pluggable validation unit. The chassis constructs it,
// initializes it once, consults its hooks on every call, and tears it down
// at scope destruction.
type Component interface {
	Name() string
	Type() Type

	// Init completes construction. An error moves the component to the
	// scope's aborted chain: it will not see calls, but Teardown still
	// runs at scope destruction.
	Init(rep *report.Reporter) error

	// Teardown releases component state. It must be safe to call on a
	// component whose Init failed or never ran.
	Teardown() error

	// RegisterHooks fills in the entry points this component intercepts.
	// Called once at scope construction; the table is read-only afterward.
	RegisterHooks(tbl *HookTable)
}
