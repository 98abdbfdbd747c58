package dispatch

import (
	"github.com/gfxlayers/chassis/api"
	"github.com/gfxlayers/chassis/handle"
	"github.com/gfxlayers/chassis/report"
)

// Deferred host operations let the implementation run expensive work
// (pipeline compilation, mostly) on client threads that join in later.
// The chassis keeps per-operation callback lists so wrap bookkeeping and
// component checks that depend on the operation's output run exactly once,
// when the operation first reports success.

func (d *Device) CreateDeferredOperation() (api.DeferredOperation, api.Result) {
	var out api.DeferredOperation
	res := d.call(api.EntryCreateDeferredOperation, nil, func() api.Result {
		if d.inst.version.LessThan(*deferredOpsMinVersion) {
			d.rep.Message(report.SeverityWarning, "chassis",
				"deferred operations require API version 1.2 or newer")
		}
		op, r := d.down.CreateDeferredOperation(d.real)
		if r.IsError() {
			return r
		}
		out = wrapOwned(d, op)
		return r
	})
	return out, res
}

// DestroyDeferredOperation drops the operation and any callbacks still
// registered against it. Pending callbacks are discarded, not invoked.
func (d *Device) DestroyDeferredOperation(op api.DeferredOperation) {
	d.call(api.EntryDestroyDeferredOperation, op, func() api.Result {
		d.deferredCompletion.Pop(op)
		d.deferredChecks.Pop(op)
		d.deferredPipelines.Pop(op)
		d.down.DestroyDeferredOperation(d.real, eraseOwned(d, op))
		return api.Success
	})
}

func (d *Device) DeferredOperationJoin(op api.DeferredOperation) api.Result {
	return d.call(api.EntryDeferredOperationJoin, op, func() api.Result {
		r := d.down.DeferredOperationJoin(d.real, handle.Unwrap(d.ids, op))
		if r == api.Success {
			d.drainDeferred(op)
		}
		return r
	})
}

func (d *Device) GetDeferredOperationResult(op api.DeferredOperation) api.Result {
	return d.call(api.EntryGetDeferredOperationResult, op, func() api.Result {
		r := d.down.GetDeferredOperationResult(d.real, handle.Unwrap(d.ids, op))
		if r == api.Success {
			d.drainDeferred(op)
		}
		return r
	})
}

// RegisterDeferredCompletion queues fn to run once when op completes
// successfully. Components use this to delay state transitions until the
// operation's output exists.
func (d *Device) RegisterDeferredCompletion(op api.DeferredOperation, fn func()) {
	d.deferredCompletion.Update(op, func(cur []func(), _ bool) []func() {
		return append(cur, fn)
	})
}

// RegisterDeferredCheck queues fn to run once against the pipelines the
// operation produced.
func (d *Device) RegisterDeferredCheck(op api.DeferredOperation, fn func([]api.Pipeline)) {
	d.deferredChecks.Update(op, func(cur []func([]api.Pipeline), _ bool) []func([]api.Pipeline) {
		return append(cur, fn)
	})
}

// drainDeferred fires and clears everything registered against op. Pop
// makes each list run at most once even when several threads observe the
// completion concurrently.
func (d *Device) drainDeferred(op api.DeferredOperation) {
	if fns, ok := d.deferredCompletion.Pop(op); ok {
		for _, fn := range fns {
			fn()
		}
	}
	pipelines, _ := d.deferredPipelines.Pop(op)
	if checks, ok := d.deferredChecks.Pop(op); ok {
		for _, fn := range checks {
			fn(pipelines)
		}
	}
}

// CreateRayTracingPipelines builds len(infos) pipelines, optionally
// deferred through op. Returned handles are virtual even when the build is
// deferred; the wrapped list is remembered so deferred checks can see it.
func (d *Device) CreateRayTracingPipelines(op api.DeferredOperation, infos []api.RayTracingPipelineCreateInfo) ([]api.Pipeline, api.Result) {
	var out []api.Pipeline
	res := d.call(api.EntryCreateRayTracingPipelines, infos, func() api.Result {
		fwd := make([]api.RayTracingPipelineCreateInfo, len(infos))
		restores := make([]func(), len(infos))
		for n, info := range infos {
			fwd[n] = info
			fwd[n].BasePipeline = handle.Unwrap(d.ids, info.BasePipeline)
			restores[n] = unwrapExtensions(d.ids, fwd[n].Next)
		}
		pipelines, r := d.down.CreateRayTracingPipelines(d.real, handle.Unwrap(d.ids, op), fwd)
		for _, restore := range restores {
			restore()
		}
		if r.IsError() {
			return r
		}
		out = make([]api.Pipeline, len(pipelines))
		for n, p := range pipelines {
			out[n] = wrapOwned(d, p)
		}
		if op != api.NullHandle && r == api.OperationDeferred {
			d.deferredPipelines.Store(op, append([]api.Pipeline(nil), out...))
		}
		return r
	})
	if res.IsError() {
		return nil, res
	}
	return out, res
}
