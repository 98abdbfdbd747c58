package dispatch

import (
	"errors"
	"sync"
	"sync/atomic"

	"github.com/gfxlayers/chassis/api"
	"github.com/gfxlayers/chassis/report"
	"github.com/gfxlayers/chassis/settings"
	"github.com/gfxlayers/chassis/validation"
)

// fakeImpl stands in for the real implementation below the chassis. Every
// entry point logs its name and the handle values it was passed, so tests
// can assert that only real (unwrapped) values cross the boundary.
type fakeImpl struct {
	mu    sync.Mutex
	next  uint64
	calls []string

	gpus     []api.PhysicalDevice
	displays []api.Display

	swapImageCount     int
	swapImageQueries   atomic.Int32
	deferredResult     api.Result
	templateData       []api.DescriptorData
	submittedCBs       []api.CommandBuffer
	rayTracingDeferred bool
}

func newFakeImpl() *fakeImpl {
	return &fakeImpl{
		next:           0x1000,
		swapImageCount: 3,
		deferredResult: api.Success,
	}
}

func (f *fakeImpl) newHandle() uint64 {
	f.next++
	return f.next
}

func (f *fakeImpl) log(name string) {
	f.calls = append(f.calls, name)
}

func (f *fakeImpl) called(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c == name {
			n++
		}
	}
	return n
}

func (f *fakeImpl) downstream() Downstream {
	inst := &api.InstanceDispatchTable{
		CreateInstance: func(info *api.InstanceCreateInfo) (api.Instance, api.Result) {
			f.mu.Lock()
			defer f.mu.Unlock()
			f.log("CreateInstance")
			return api.Instance(f.newHandle()), api.Success
		},
		DestroyInstance: func(instance api.Instance) {
			f.mu.Lock()
			defer f.mu.Unlock()
			f.log("DestroyInstance")
		},
		EnumeratePhysicalDevices: func(instance api.Instance) ([]api.PhysicalDevice, api.Result) {
			f.mu.Lock()
			defer f.mu.Unlock()
			f.log("EnumeratePhysicalDevices")
			if f.gpus == nil {
				f.gpus = []api.PhysicalDevice{
					api.PhysicalDevice(f.newHandle()),
					api.PhysicalDevice(f.newHandle()),
				}
			}
			return append([]api.PhysicalDevice(nil), f.gpus...), api.Success
		},
		GetDisplayProperties: func(gpu api.PhysicalDevice) ([]api.Display, api.Result) {
			f.mu.Lock()
			defer f.mu.Unlock()
			f.log("GetDisplayProperties")
			if f.displays == nil {
				f.displays = []api.Display{api.Display(f.newHandle())}
			}
			return append([]api.Display(nil), f.displays...), api.Success
		},
		CreateDevice: func(gpu api.PhysicalDevice, info *api.DeviceCreateInfo) (api.Device, api.Result) {
			f.mu.Lock()
			defer f.mu.Unlock()
			f.log("CreateDevice")
			return api.Device(f.newHandle()), api.Success
		},
	}

	dev := &api.DeviceDispatchTable{
		DestroyDevice: func(d api.Device) {
			f.mu.Lock()
			defer f.mu.Unlock()
			f.log("DestroyDevice")
		},
		CreateBuffer: func(d api.Device, info *api.BufferCreateInfo) (api.Buffer, api.Result) {
			f.mu.Lock()
			defer f.mu.Unlock()
			f.log("CreateBuffer")
			return api.Buffer(f.newHandle()), api.Success
		},
		DestroyBuffer: func(d api.Device, buf api.Buffer) {
			f.mu.Lock()
			defer f.mu.Unlock()
			f.log("DestroyBuffer")
		},
		CreateImage: func(d api.Device, info *api.ImageCreateInfo) (api.Image, api.Result) {
			f.mu.Lock()
			defer f.mu.Unlock()
			f.log("CreateImage")
			return api.Image(f.newHandle()), api.Success
		},
		DestroyImage: func(d api.Device, img api.Image) {
			f.mu.Lock()
			defer f.mu.Unlock()
			f.log("DestroyImage")
		},
		CreateSwapchain: func(d api.Device, info *api.SwapchainCreateInfo) (api.Swapchain, api.Result) {
			f.mu.Lock()
			defer f.mu.Unlock()
			f.log("CreateSwapchain")
			return api.Swapchain(f.newHandle()), api.Success
		},
		DestroySwapchain: func(d api.Device, sc api.Swapchain) {
			f.mu.Lock()
			defer f.mu.Unlock()
			f.log("DestroySwapchain")
		},
		GetSwapchainImages: func(d api.Device, sc api.Swapchain) ([]api.Image, api.Result) {
			f.swapImageQueries.Add(1)
			f.mu.Lock()
			defer f.mu.Unlock()
			f.log("GetSwapchainImages")
			images := make([]api.Image, f.swapImageCount)
			for n := range images {
				images[n] = api.Image(f.newHandle())
			}
			return images, api.Success
		},
		CreateCommandPool: func(d api.Device, info *api.CommandPoolCreateInfo) (api.CommandPool, api.Result) {
			f.mu.Lock()
			defer f.mu.Unlock()
			f.log("CreateCommandPool")
			return api.CommandPool(f.newHandle()), api.Success
		},
		DestroyCommandPool: func(d api.Device, pool api.CommandPool) {
			f.mu.Lock()
			defer f.mu.Unlock()
			f.log("DestroyCommandPool")
		},
		AllocateCommandBuffers: func(d api.Device, info *api.CommandBufferAllocateInfo) ([]api.CommandBuffer, api.Result) {
			f.mu.Lock()
			defer f.mu.Unlock()
			f.log("AllocateCommandBuffers")
			cbs := make([]api.CommandBuffer, info.Count)
			for n := range cbs {
				cbs[n] = api.CommandBuffer(f.newHandle())
			}
			return cbs, api.Success
		},
		FreeCommandBuffers: func(d api.Device, pool api.CommandPool, cbs []api.CommandBuffer) {
			f.mu.Lock()
			defer f.mu.Unlock()
			f.log("FreeCommandBuffers")
		},
		CreateDescriptorPool: func(d api.Device, info *api.DescriptorPoolCreateInfo) (api.DescriptorPool, api.Result) {
			f.mu.Lock()
			defer f.mu.Unlock()
			f.log("CreateDescriptorPool")
			return api.DescriptorPool(f.newHandle()), api.Success
		},
		DestroyDescriptorPool: func(d api.Device, pool api.DescriptorPool) {
			f.mu.Lock()
			defer f.mu.Unlock()
			f.log("DestroyDescriptorPool")
		},
		ResetDescriptorPool: func(d api.Device, pool api.DescriptorPool) api.Result {
			f.mu.Lock()
			defer f.mu.Unlock()
			f.log("ResetDescriptorPool")
			return api.Success
		},
		AllocateDescriptorSets: func(d api.Device, info *api.DescriptorSetAllocateInfo) ([]api.DescriptorSet, api.Result) {
			f.mu.Lock()
			defer f.mu.Unlock()
			f.log("AllocateDescriptorSets")
			sets := make([]api.DescriptorSet, len(info.Layouts))
			for n := range sets {
				sets[n] = api.DescriptorSet(f.newHandle())
			}
			return sets, api.Success
		},
		FreeDescriptorSets: func(d api.Device, pool api.DescriptorPool, sets []api.DescriptorSet) api.Result {
			f.mu.Lock()
			defer f.mu.Unlock()
			f.log("FreeDescriptorSets")
			return api.Success
		},
		CreateDescriptorUpdateTemplate: func(d api.Device, info *api.DescriptorUpdateTemplateCreateInfo) (api.DescriptorUpdateTemplate, api.Result) {
			f.mu.Lock()
			defer f.mu.Unlock()
			f.log("CreateDescriptorUpdateTemplate")
			return api.DescriptorUpdateTemplate(f.newHandle()), api.Success
		},
		DestroyDescriptorUpdateTemplate: func(d api.Device, tmpl api.DescriptorUpdateTemplate) {
			f.mu.Lock()
			defer f.mu.Unlock()
			f.log("DestroyDescriptorUpdateTemplate")
		},
		UpdateDescriptorSetWithTemplate: func(d api.Device, set api.DescriptorSet, tmpl api.DescriptorUpdateTemplate, data []api.DescriptorData) {
			f.mu.Lock()
			defer f.mu.Unlock()
			f.log("UpdateDescriptorSetWithTemplate")
			f.templateData = append([]api.DescriptorData(nil), data...)
		},
		GetDeviceQueue: func(d api.Device, family, index uint32) api.Queue {
			f.mu.Lock()
			defer f.mu.Unlock()
			f.log("GetDeviceQueue")
			// The same (family, index) pair always names the same queue.
			return api.Queue(0xA0000 + uint64(family)<<8 + uint64(index))
		},
		CreateFence: func(d api.Device, info *api.FenceCreateInfo) (api.Fence, api.Result) {
			f.mu.Lock()
			defer f.mu.Unlock()
			f.log("CreateFence")
			return api.Fence(f.newHandle()), api.Success
		},
		DestroyFence: func(d api.Device, fence api.Fence) {
			f.mu.Lock()
			defer f.mu.Unlock()
			f.log("DestroyFence")
		},
		QueueSubmit: func(queue api.Queue, submits []api.SubmitInfo, fence api.Fence) api.Result {
			f.mu.Lock()
			defer f.mu.Unlock()
			f.log("QueueSubmit")
			f.submittedCBs = nil
			for _, sub := range submits {
				f.submittedCBs = append(f.submittedCBs, sub.CommandBuffers...)
			}
			return api.Success
		},
		CreateDeferredOperation: func(d api.Device) (api.DeferredOperation, api.Result) {
			f.mu.Lock()
			defer f.mu.Unlock()
			f.log("CreateDeferredOperation")
			return api.DeferredOperation(f.newHandle()), api.Success
		},
		DestroyDeferredOperation: func(d api.Device, op api.DeferredOperation) {
			f.mu.Lock()
			defer f.mu.Unlock()
			f.log("DestroyDeferredOperation")
		},
		DeferredOperationJoin: func(d api.Device, op api.DeferredOperation) api.Result {
			f.mu.Lock()
			defer f.mu.Unlock()
			f.log("DeferredOperationJoin")
			return f.deferredResult
		},
		GetDeferredOperationResult: func(d api.Device, op api.DeferredOperation) api.Result {
			f.mu.Lock()
			defer f.mu.Unlock()
			f.log("GetDeferredOperationResult")
			return f.deferredResult
		},
		CreateRayTracingPipelines: func(d api.Device, op api.DeferredOperation, infos []api.RayTracingPipelineCreateInfo) ([]api.Pipeline, api.Result) {
			f.mu.Lock()
			defer f.mu.Unlock()
			f.log("CreateRayTracingPipelines")
			pipelines := make([]api.Pipeline, len(infos))
			for n := range pipelines {
				pipelines[n] = api.Pipeline(f.newHandle())
			}
			if op != api.NullHandle && f.rayTracingDeferred {
				return pipelines, api.OperationDeferred
			}
			return pipelines, api.Success
		},
		DestroyPipeline: func(d api.Device, pipeline api.Pipeline) {
			f.mu.Lock()
			defer f.mu.Unlock()
			f.log("DestroyPipeline")
		},
	}

	return Downstream{Instance: inst, Device: dev}
}

// recorder is a test component that logs every phase it sees.
type recorder struct {
	name string
	typ  validation.Type

	initErr error
	tornErr error

	quiet bool // drop events, for benchmarks

	mu       sync.Mutex
	events   []string
	inited   bool
	torn     bool
	vetoOn   map[api.EntryPoint]error
	onlyOn   []api.EntryPoint // nil means hook everything
}

func (r *recorder) Name() string          { return r.name }
func (r *recorder) Type() validation.Type { return r.typ }

func (r *recorder) Init(rep *report.Reporter) error {
	r.mu.Lock()
	r.inited = r.initErr == nil
	r.mu.Unlock()
	return r.initErr
}

func (r *recorder) Teardown() error {
	r.mu.Lock()
	r.torn = true
	r.mu.Unlock()
	return r.tornErr
}

func (r *recorder) record(event string) {
	if r.quiet {
		return
	}
	r.mu.Lock()
	r.events = append(r.events, event)
	r.mu.Unlock()
}

func (r *recorder) seen(event string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, e := range r.events {
		if e == event {
			n++
		}
	}
	return n
}

func (r *recorder) RegisterHooks(tbl *validation.HookTable) {
	entries := r.onlyOn
	if entries == nil {
		for e := api.EntryPoint(0); e < api.EntryPointCount; e++ {
			entries = append(entries, e)
		}
	}
	for _, e := range entries {
		entry := e
		tbl.Set(entry, validation.Hook{
			PreValidate: func(call *validation.Call) error {
				r.record("validate:" + entry.String())
				if err, ok := r.vetoOn[entry]; ok {
					return err
				}
				return nil
			},
			PreRecord: func(call *validation.Call) {
				r.record("pre:" + entry.String())
			},
			PostRecord: func(call *validation.Call, result api.Result) {
				r.record("post:" + entry.String() + ":" + result.String())
			},
		})
	}
}

func registryWith(comps ...*recorder) *validation.Registry {
	reg := validation.NewRegistry()
	for _, c := range comps {
		comp := c
		reg.Register(comp.typ, func(scope validation.ScopeKind, cfg *settings.Settings, rep *report.Reporter) validation.Component {
			return comp
		})
	}
	return reg
}

// settingsFor enables exactly the named component types.
func settingsFor(types ...validation.Type) *settings.Settings {
	cfg := settings.Default()
	cfg.Threading = false
	cfg.ParameterValidation = false
	cfg.ObjectTracker = false
	cfg.CoreValidation = false
	cfg.BestPractices = false
	cfg.GPUAssisted = false
	cfg.SyncValidation = false
	for _, t := range types {
		switch t {
		case validation.TypeThreading:
			cfg.Threading = true
		case validation.TypeParameterValidation:
			cfg.ParameterValidation = true
		case validation.TypeObjectTracker:
			cfg.ObjectTracker = true
		case validation.TypeCoreValidation:
			cfg.CoreValidation = true
		case validation.TypeBestPractices:
			cfg.BestPractices = true
		case validation.TypeGPUAssisted:
			cfg.GPUAssisted = true
		case validation.TypeSyncValidation:
			cfg.SyncValidation = true
		}
	}
	return cfg
}

var errVeto = errors.New("call rejected")
