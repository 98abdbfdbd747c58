package dispatch

import (
	"sync"
	"sync/atomic"

	"github.com/coreos/go-semver/semver"

	"github.com/gfxlayers/chassis/api"
	"github.com/gfxlayers/chassis/container"
	chassiserr "github.com/gfxlayers/chassis/errors"
	"github.com/gfxlayers/chassis/handle"
	"github.com/gfxlayers/chassis/report"
	"github.com/gfxlayers/chassis/validation"
)

// deferredOpsMinVersion is the first API version carrying deferred host
// operations.
var deferredOpsMinVersion = semver.New("1.2.0")

// TemplateState caches the creation-time description of a descriptor
// update template. Later template-driven updates carry opaque payloads
// whose interpretation depends on this recorded shape.
type TemplateState struct {
	Template api.DescriptorUpdateTemplate // virtual
	Layout   api.DescriptorSetLayout      // virtual
	Entries  []api.DescriptorUpdateEntry
}

// Device is the device-scope dispatch object. The owning Instance outlives
// it; the back-reference is non-owning.
type Device struct {
	inst *Instance
	rep  *report.Reporter
	ids  *handle.Map
	down *api.DeviceDispatchTable

	handle api.Device // virtual
	real   api.Device

	chain      []validation.Component
	aborted    []validation.Component
	intercepts *interceptTable

	state atomic.Int32

	// Queues are implementation-created; the reverse map keeps their
	// virtual IDs stable across repeated GetQueue calls.
	queues *handle.Reverse

	templates  *container.ConcurrentMap[api.DescriptorUpdateTemplate, *TemplateState]
	swapImages *container.ConcurrentMap[api.Swapchain, []api.Image]

	// Descriptor pool membership. Mutated only on allocate/free/reset,
	// all infrequent next to lookups, so one lock is enough.
	poolMu   sync.Mutex
	poolSets map[api.DescriptorPool]*container.SmallSet[api.DescriptorSet]

	// Deferred-operation bookkeeping. Registration happens on the thread
	// that issued the operation, draining on whichever thread polls
	// completion; the concurrent maps make both safe without external
	// locking.
	deferredCompletion *container.ConcurrentMap[api.DeferredOperation, []func()]
	deferredChecks     *container.ConcurrentMap[api.DeferredOperation, []func([]api.Pipeline)]
	deferredPipelines  *container.ConcurrentMap[api.DeferredOperation, []api.Pipeline]

	// Secondary command buffer to owning pool. "Is this secondary?"
	// queries vastly outnumber creation and destruction, hence the
	// reader/writer lock.
	secondaryMu sync.RWMutex
	secondary   map[api.CommandBuffer]api.CommandPool

	// Every virtual ID this scope issued and still owns, swept from the
	// identity map at teardown so no dangling entries survive the scope.
	owned *container.ConcurrentMap[uint64, struct{}]
}

func newDevice(i *Instance, real api.Device) *Device {
	d := &Device{
		inst:               i,
		rep:                report.NewReporter("device"),
		ids:                i.ids,
		down:               i.dev,
		real:               real,
		queues:             handle.NewReverse(i.ids),
		templates:          container.NewConcurrentMap[api.DescriptorUpdateTemplate, *TemplateState](0),
		swapImages:         container.NewConcurrentMap[api.Swapchain, []api.Image](0),
		poolSets:           make(map[api.DescriptorPool]*container.SmallSet[api.DescriptorSet]),
		deferredCompletion: container.NewConcurrentMap[api.DeferredOperation, []func()](0),
		deferredChecks:     container.NewConcurrentMap[api.DeferredOperation, []func([]api.Pipeline)](0),
		deferredPipelines:  container.NewConcurrentMap[api.DeferredOperation, []api.Pipeline](0),
		secondary:          make(map[api.CommandBuffer]api.CommandPool),
		owned:              container.NewConcurrentMap[uint64, struct{}](0),
	}
	d.state.Store(int32(stateConstructing))
	d.chain, d.aborted = buildChain(validation.ScopeDevice, i.cfg, i.reg, d.rep)
	d.intercepts = buildIntercepts(d.chain)
	d.handle = wrapOwned(d, real)
	d.state.Store(int32(stateActive))
	return d
}

// Handle returns the virtual device handle presented to the client.
func (d *Device) Handle() api.Device { return d.handle }

// Instance returns the owning instance scope.
func (d *Device) Instance() *Instance { return d.inst }

// wrapOwned issues a virtual ID for real and records it as owned by this
// scope so teardown can sweep it.
func wrapOwned[T ~uint64](d *Device, real T) T {
	id := handle.Wrap(d.ids, real)
	d.owned.Store(uint64(id), struct{}{})
	return id
}

// eraseOwned removes a virtual ID from both the identity map and the
// ownership set, returning the real value it held.
func eraseOwned[T ~uint64](d *Device, id T) T {
	d.owned.Delete(uint64(id))
	return handle.Erase(d.ids, id)
}

// call runs the three-phase protocol against this device's chain. A
// destroyed scope rejects every entry point without forwarding.
func (d *Device) call(e api.EntryPoint, args any, forward func() api.Result) api.Result {
	if scopeState(d.state.Load()) == stateGone {
		d.rep.Errorf("chassis", chassiserr.InvalidHandle(chassiserr.PhaseDispatch, e.String(), uint64(d.handle)))
		return api.ErrorInvalidHandle
	}
	call := &validation.Call{Entry: e, Args: args, Reporter: d.rep}
	if err := d.intercepts.preValidate(call); err != nil {
		return api.ErrorValidationFailed
	}
	d.intercepts.preRecord(call)
	res := forward()
	d.intercepts.postRecord(call, res)
	return res
}

// Destroy tears the device down. All scope-local tables are released and
// every virtual ID the device still owns is erased from the identity map.
// Destroy is not reentrant; a second call reports and returns an error
// without dispatching anything.
func (d *Device) Destroy() error {
	if !d.state.CompareAndSwap(int32(stateActive), int32(stateDestroying)) {
		err := chassiserr.InvalidHandle(chassiserr.PhaseTeardown, api.EntryDestroyDevice.String(), uint64(d.handle))
		d.rep.Errorf("chassis", err)
		return err
	}

	d.call(api.EntryDestroyDevice, d.handle, func() api.Result {
		d.down.DestroyDevice(d.real)
		return api.Success
	})

	err := teardownChains(d.chain, d.aborted)

	d.queues.Clear()
	d.templates.Clear()
	d.swapImages.Clear()
	d.deferredCompletion.Clear()
	d.deferredChecks.Clear()
	d.deferredPipelines.Clear()

	d.poolMu.Lock()
	d.poolSets = nil
	d.poolMu.Unlock()

	d.secondaryMu.Lock()
	d.secondary = nil
	d.secondaryMu.Unlock()

	d.owned.Range(func(id uint64, _ struct{}) bool {
		d.ids.Erase(id)
		return true
	})
	d.owned.Clear()

	d.state.Store(int32(stateGone))
	return err
}

// Buffers and images.

func (d *Device) CreateBuffer(info *api.BufferCreateInfo) (api.Buffer, api.Result) {
	var out api.Buffer
	res := d.call(api.EntryCreateBuffer, info, func() api.Result {
		restore := unwrapExtensions(d.ids, info.Next)
		buf, r := d.down.CreateBuffer(d.real, info)
		restore()
		if r.IsError() {
			return r
		}
		out = wrapOwned(d, buf)
		return r
	})
	return out, res
}

func (d *Device) DestroyBuffer(buf api.Buffer) {
	d.call(api.EntryDestroyBuffer, buf, func() api.Result {
		d.down.DestroyBuffer(d.real, eraseOwned(d, buf))
		return api.Success
	})
}

func (d *Device) CreateImage(info *api.ImageCreateInfo) (api.Image, api.Result) {
	var out api.Image
	res := d.call(api.EntryCreateImage, info, func() api.Result {
		restore := unwrapExtensions(d.ids, info.Next)
		img, r := d.down.CreateImage(d.real, info)
		restore()
		if r.IsError() {
			return r
		}
		out = wrapOwned(d, img)
		return r
	})
	return out, res
}

func (d *Device) DestroyImage(img api.Image) {
	d.call(api.EntryDestroyImage, img, func() api.Result {
		d.down.DestroyImage(d.real, eraseOwned(d, img))
		return api.Success
	})
}

// Swapchains.

func (d *Device) CreateSwapchain(info *api.SwapchainCreateInfo) (api.Swapchain, api.Result) {
	var out api.Swapchain
	res := d.call(api.EntryCreateSwapchain, info, func() api.Result {
		fwd := *info
		fwd.OldSwapchain = handle.Unwrap(d.ids, info.OldSwapchain)
		restore := unwrapExtensions(d.ids, fwd.Next)
		sc, r := d.down.CreateSwapchain(d.real, &fwd)
		restore()
		if r.IsError() {
			return r
		}
		out = wrapOwned(d, sc)
		return r
	})
	return out, res
}

func (d *Device) DestroySwapchain(sc api.Swapchain) {
	d.call(api.EntryDestroySwapchain, sc, func() api.Result {
		if images, ok := d.swapImages.Pop(sc); ok {
			for _, img := range images {
				eraseOwned(d, img)
			}
		}
		d.down.DestroySwapchain(d.real, eraseOwned(d, sc))
		return api.Success
	})
}

// GetSwapchainImages returns the swapchain's image handles. Each swapchain
// has an immutable set of images, so the wrapped IDs are cached on first
// query and the same IDs are returned on every later one.
func (d *Device) GetSwapchainImages(sc api.Swapchain) ([]api.Image, api.Result) {
	var out []api.Image
	res := d.call(api.EntryGetSwapchainImages, sc, func() api.Result {
		if cached, ok := d.swapImages.Load(sc); ok {
			out = append([]api.Image(nil), cached...)
			return api.Success
		}
		images, r := d.down.GetSwapchainImages(d.real, handle.Unwrap(d.ids, sc))
		if r.IsError() {
			return r
		}
		wrapped := make([]api.Image, len(images))
		for n, img := range images {
			wrapped[n] = wrapOwned(d, img)
		}
		if prior, loaded := d.swapImages.LoadOrStore(sc, wrapped); loaded {
			// Another goroutine cached first; drop our speculative IDs.
			for _, img := range wrapped {
				eraseOwned(d, img)
			}
			wrapped = prior
		}
		out = append([]api.Image(nil), wrapped...)
		return r
	})
	if res.IsError() {
		return nil, res
	}
	return out, res
}

// Command pools and buffers.

func (d *Device) CreateCommandPool(info *api.CommandPoolCreateInfo) (api.CommandPool, api.Result) {
	var out api.CommandPool
	res := d.call(api.EntryCreateCommandPool, info, func() api.Result {
		pool, r := d.down.CreateCommandPool(d.real, info)
		if r.IsError() {
			return r
		}
		out = wrapOwned(d, pool)
		return r
	})
	return out, res
}

func (d *Device) DestroyCommandPool(pool api.CommandPool) {
	d.call(api.EntryDestroyCommandPool, pool, func() api.Result {
		// Destroying a pool frees its buffers implicitly.
		d.secondaryMu.Lock()
		for cb, p := range d.secondary {
			if p == pool {
				delete(d.secondary, cb)
				eraseOwned(d, cb)
			}
		}
		d.secondaryMu.Unlock()
		d.down.DestroyCommandPool(d.real, eraseOwned(d, pool))
		return api.Success
	})
}

func (d *Device) AllocateCommandBuffers(info *api.CommandBufferAllocateInfo) ([]api.CommandBuffer, api.Result) {
	var out []api.CommandBuffer
	res := d.call(api.EntryAllocateCommandBuffers, info, func() api.Result {
		fwd := *info
		fwd.Pool = handle.Unwrap(d.ids, info.Pool)
		cbs, r := d.down.AllocateCommandBuffers(d.real, &fwd)
		if r.IsError() {
			return r
		}
		out = make([]api.CommandBuffer, len(cbs))
		for n, cb := range cbs {
			out[n] = wrapOwned(d, cb)
		}
		if info.Level == api.CommandBufferLevelSecondary {
			d.secondaryMu.Lock()
			for _, cb := range out {
				d.secondary[cb] = info.Pool
			}
			d.secondaryMu.Unlock()
		}
		return r
	})
	if res.IsError() {
		return nil, res
	}
	return out, res
}

func (d *Device) FreeCommandBuffers(pool api.CommandPool, cbs []api.CommandBuffer) {
	d.call(api.EntryFreeCommandBuffers, cbs, func() api.Result {
		d.secondaryMu.Lock()
		for _, cb := range cbs {
			delete(d.secondary, cb)
		}
		d.secondaryMu.Unlock()

		reals := make([]api.CommandBuffer, len(cbs))
		for n, cb := range cbs {
			reals[n] = eraseOwned(d, cb)
		}
		d.down.FreeCommandBuffers(d.real, handle.Unwrap(d.ids, pool), reals)
		return api.Success
	})
}

// IsSecondary reports whether cb was allocated at the secondary level.
func (d *Device) IsSecondary(cb api.CommandBuffer) bool {
	d.secondaryMu.RLock()
	_, ok := d.secondary[cb]
	d.secondaryMu.RUnlock()
	return ok
}

// Descriptor pools and sets.

func (d *Device) CreateDescriptorPool(info *api.DescriptorPoolCreateInfo) (api.DescriptorPool, api.Result) {
	var out api.DescriptorPool
	res := d.call(api.EntryCreateDescriptorPool, info, func() api.Result {
		pool, r := d.down.CreateDescriptorPool(d.real, info)
		if r.IsError() {
			return r
		}
		out = wrapOwned(d, pool)
		d.poolMu.Lock()
		d.poolSets[out] = &container.SmallSet[api.DescriptorSet]{}
		d.poolMu.Unlock()
		return r
	})
	return out, res
}

func (d *Device) DestroyDescriptorPool(pool api.DescriptorPool) {
	d.call(api.EntryDestroyDescriptorPool, pool, func() api.Result {
		d.releasePoolSets(pool, true)
		d.down.DestroyDescriptorPool(d.real, eraseOwned(d, pool))
		return api.Success
	})
}

func (d *Device) ResetDescriptorPool(pool api.DescriptorPool) api.Result {
	return d.call(api.EntryResetDescriptorPool, pool, func() api.Result {
		d.releasePoolSets(pool, false)
		return d.down.ResetDescriptorPool(d.real, handle.Unwrap(d.ids, pool))
	})
}

// releasePoolSets erases every set allocated from pool. Reset keeps the
// pool's (now empty) membership entry; destroy drops it.
func (d *Device) releasePoolSets(pool api.DescriptorPool, drop bool) {
	d.poolMu.Lock()
	defer d.poolMu.Unlock()
	sets := d.poolSets[pool]
	if sets == nil {
		return
	}
	sets.Range(func(set api.DescriptorSet) bool {
		eraseOwned(d, set)
		return true
	})
	if drop {
		delete(d.poolSets, pool)
	} else {
		sets.Clear()
	}
}

func (d *Device) AllocateDescriptorSets(info *api.DescriptorSetAllocateInfo) ([]api.DescriptorSet, api.Result) {
	var out []api.DescriptorSet
	res := d.call(api.EntryAllocateDescriptorSets, info, func() api.Result {
		fwd := *info
		fwd.Pool = handle.Unwrap(d.ids, info.Pool)
		fwd.Layouts = handle.UnwrapSlice(d.ids, info.Layouts)
		sets, r := d.down.AllocateDescriptorSets(d.real, &fwd)
		if r.IsError() {
			return r
		}
		out = make([]api.DescriptorSet, len(sets))
		for n, set := range sets {
			out[n] = wrapOwned(d, set)
		}
		d.poolMu.Lock()
		if members := d.poolSets[info.Pool]; members != nil {
			for _, set := range out {
				members.Add(set)
			}
		}
		d.poolMu.Unlock()
		return r
	})
	if res.IsError() {
		return nil, res
	}
	return out, res
}

func (d *Device) FreeDescriptorSets(pool api.DescriptorPool, sets []api.DescriptorSet) api.Result {
	return d.call(api.EntryFreeDescriptorSets, sets, func() api.Result {
		d.poolMu.Lock()
		if members := d.poolSets[pool]; members != nil {
			for _, set := range sets {
				members.Delete(set)
			}
		}
		d.poolMu.Unlock()

		reals := make([]api.DescriptorSet, len(sets))
		for n, set := range sets {
			reals[n] = eraseOwned(d, set)
		}
		return d.down.FreeDescriptorSets(d.real, handle.Unwrap(d.ids, pool), reals)
	})
}

// PoolSetCount returns how many live sets are allocated from pool.
func (d *Device) PoolSetCount(pool api.DescriptorPool) int {
	d.poolMu.Lock()
	defer d.poolMu.Unlock()
	if members := d.poolSets[pool]; members != nil {
		return members.Len()
	}
	return 0
}

// Descriptor update templates.

func (d *Device) CreateDescriptorUpdateTemplate(info *api.DescriptorUpdateTemplateCreateInfo) (api.DescriptorUpdateTemplate, api.Result) {
	var out api.DescriptorUpdateTemplate
	res := d.call(api.EntryCreateDescriptorUpdateTemplate, info, func() api.Result {
		fwd := *info
		fwd.Layout = handle.Unwrap(d.ids, info.Layout)
		tmpl, r := d.down.CreateDescriptorUpdateTemplate(d.real, &fwd)
		if r.IsError() {
			return r
		}
		out = wrapOwned(d, tmpl)
		d.templates.Store(out, &TemplateState{
			Template: out,
			Layout:   info.Layout,
			Entries:  append([]api.DescriptorUpdateEntry(nil), info.Entries...),
		})
		return r
	})
	return out, res
}

func (d *Device) DestroyDescriptorUpdateTemplate(tmpl api.DescriptorUpdateTemplate) {
	d.call(api.EntryDestroyDescriptorUpdateTemplate, tmpl, func() api.Result {
		d.templates.Delete(tmpl)
		d.down.DestroyDescriptorUpdateTemplate(d.real, eraseOwned(d, tmpl))
		return api.Success
	})
}

// TemplateStateFor returns the cached creation-time shape for tmpl.
func (d *Device) TemplateStateFor(tmpl api.DescriptorUpdateTemplate) (*TemplateState, bool) {
	return d.templates.Load(tmpl)
}

// UpdateDescriptorSetWithTemplate re-interprets data according to the
// shape recorded when tmpl was created and forwards it with every handle
// field unwrapped. The client's payload is not modified.
func (d *Device) UpdateDescriptorSetWithTemplate(set api.DescriptorSet, tmpl api.DescriptorUpdateTemplate, data []api.DescriptorData) {
	d.call(api.EntryUpdateDescriptorSetWithTemplate, data, func() api.Result {
		state, ok := d.templates.Load(tmpl)
		if !ok {
			d.rep.Message(report.SeverityError, "chassis",
				"descriptor update uses an unknown or destroyed template")
			return api.ErrorInvalidHandle
		}

		fwd := append([]api.DescriptorData(nil), data...)
		idx := 0
		for _, entry := range state.Entries {
			for c := uint32(0); c < entry.Count && idx < len(fwd); c, idx = c+1, idx+1 {
				if entry.Type.HasBuffer() {
					fwd[idx].Buffer = handle.Unwrap(d.ids, fwd[idx].Buffer)
				}
				if entry.Type.HasImage() {
					fwd[idx].Image = handle.Unwrap(d.ids, fwd[idx].Image)
				}
				if entry.Type.HasSampler() {
					fwd[idx].Sampler = handle.Unwrap(d.ids, fwd[idx].Sampler)
				}
			}
		}

		d.down.UpdateDescriptorSetWithTemplate(d.real,
			handle.Unwrap(d.ids, set), handle.Unwrap(d.ids, tmpl), fwd)
		return api.Success
	})
}

// Queues and submission.

// GetQueue returns the virtual handle for a device queue. Queues are
// implementation-created; the same queue always presents the same ID.
func (d *Device) GetQueue(family, index uint32) api.Queue {
	var out api.Queue
	d.call(api.EntryGetDeviceQueue, nil, func() api.Result {
		q := d.down.GetDeviceQueue(d.real, family, index)
		out = api.Queue(d.queues.MaybeWrap(uint64(q)))
		return api.Success
	})
	return out
}

func (d *Device) QueueSubmit(queue api.Queue, submits []api.SubmitInfo, fence api.Fence) api.Result {
	return d.call(api.EntryQueueSubmit, submits, func() api.Result {
		fwd := make([]api.SubmitInfo, len(submits))
		restores := make([]func(), len(submits))
		for n, sub := range submits {
			fwd[n] = sub
			fwd[n].CommandBuffers = handle.UnwrapSlice(d.ids, sub.CommandBuffers)
			restores[n] = unwrapExtensions(d.ids, sub.Next)
		}
		r := d.down.QueueSubmit(handle.Unwrap(d.ids, queue), fwd, handle.Unwrap(d.ids, fence))
		for _, restore := range restores {
			restore()
		}
		return r
	})
}

// Fences.

func (d *Device) CreateFence(info *api.FenceCreateInfo) (api.Fence, api.Result) {
	var out api.Fence
	res := d.call(api.EntryCreateFence, info, func() api.Result {
		fence, r := d.down.CreateFence(d.real, info)
		if r.IsError() {
			return r
		}
		out = wrapOwned(d, fence)
		return r
	})
	return out, res
}

func (d *Device) DestroyFence(fence api.Fence) {
	d.call(api.EntryDestroyFence, fence, func() api.Result {
		d.down.DestroyFence(d.real, eraseOwned(d, fence))
		return api.Success
	})
}

// Pipelines.

func (d *Device) DestroyPipeline(p api.Pipeline) {
	d.call(api.EntryDestroyPipeline, p, func() api.Result {
		d.down.DestroyPipeline(d.real, eraseOwned(d, p))
		return api.Success
	})
}
