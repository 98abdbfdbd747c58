package dispatch

import (
	"go.uber.org/multierr"

	"github.com/gfxlayers/chassis/api"
	chassiserr "github.com/gfxlayers/chassis/errors"
	"github.com/gfxlayers/chassis/report"
	"github.com/gfxlayers/chassis/settings"
	"github.com/gfxlayers/chassis/validation"
)

// scopeState is the lifecycle of a per-scope object.
type scopeState int32

const (
	stateConstructing scopeState = iota
	stateActive
	stateDestroying
	stateGone
)

// boundHook pairs a component with its hook for one entry point.
type boundHook struct {
	comp validation.Component
	hook validation.Hook
}

// interceptTable holds, per entry point, the ordered sub-list of chain
// components that hook it. Built once at construction, read-only after.
type interceptTable [api.EntryPointCount][]boundHook

// buildChain instantiates the enabled components in fixed priority order.
// Components whose Init fails land on the aborted chain: they never see
// calls, but their teardown still runs at scope destruction.
func buildChain(kind validation.ScopeKind, cfg *settings.Settings, reg *validation.Registry, rep *report.Reporter) (active, aborted []validation.Component) {
	for t := validation.Type(0); t < validation.TypeCount; t++ {
		if !validation.Enabled(cfg, t) {
			continue
		}
		f := reg.Factory(t)
		if f == nil {
			continue
		}
		c := f(kind, cfg, rep)
		if c == nil {
			continue
		}
		if err := c.Init(rep); err != nil {
			rep.Errorf(c.Name(), chassiserr.InitFailure(c.Name(), err))
			aborted = append(aborted, c)
			continue
		}
		active = append(active, c)
	}
	return active, aborted
}

// buildIntercepts precomputes the per-entry-point sub-lists. The result is
// required to match filtering the full chain by "hooks this entry point",
// element for element, in chain order.
func buildIntercepts(chain []validation.Component) *interceptTable {
	var t interceptTable
	for _, c := range chain {
		var hooks validation.HookTable
		c.RegisterHooks(&hooks)
		for e := api.EntryPoint(0); e < api.EntryPointCount; e++ {
			if h := hooks.Get(e); !h.Empty() {
				t[e] = append(t[e], boundHook{comp: c, hook: h})
			}
		}
	}
	return &t
}

// preValidate runs every intercepting component's validate phase. All of
// them run even after a veto so independent diagnostics accumulate; the
// combined veto error is returned. The call's scratch is released at the
// end of the phase, surviving only if a component persisted it.
func (t *interceptTable) preValidate(call *validation.Call) error {
	var veto error
	for _, b := range t[call.Entry] {
		if b.hook.PreValidate == nil {
			continue
		}
		if err := b.hook.PreValidate(call); err != nil {
			call.Reporter.Errorf(b.comp.Name(), err)
			veto = multierr.Append(veto, err)
		}
	}
	call.Scratch.Release()
	return veto
}

func (t *interceptTable) preRecord(call *validation.Call) {
	for _, b := range t[call.Entry] {
		if b.hook.PreRecord != nil {
			b.hook.PreRecord(call)
		}
	}
}

func (t *interceptTable) postRecord(call *validation.Call, result api.Result) {
	for _, b := range t[call.Entry] {
		if b.hook.PostRecord != nil {
			b.hook.PostRecord(call, result)
		}
	}
	call.Scratch.Release()
}

// teardownChains tears down active then aborted components in reverse
// priority order, aggregating failures. Aborted components are included so
// global state they touched before failing still gets cleaned up.
func teardownChains(active, aborted []validation.Component) error {
	var err error
	for i := len(active) - 1; i >= 0; i-- {
		if e := active[i].Teardown(); e != nil {
			err = multierr.Append(err, chassiserr.TeardownFailed(active[i].Name(), e))
		}
	}
	for i := len(aborted) - 1; i >= 0; i-- {
		if e := aborted[i].Teardown(); e != nil {
			err = multierr.Append(err, chassiserr.TeardownFailed(aborted[i].Name(), e))
		}
	}
	return err
}
