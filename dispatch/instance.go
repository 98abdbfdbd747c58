package dispatch

import (
	"sync/atomic"

	"github.com/coreos/go-semver/semver"

	"github.com/gfxlayers/chassis/api"
	chassiserr "github.com/gfxlayers/chassis/errors"
	"github.com/gfxlayers/chassis/handle"
	"github.com/gfxlayers/chassis/report"
	"github.com/gfxlayers/chassis/settings"
	"github.com/gfxlayers/chassis/validation"
)

// Downstream carries the real implementation's dispatch tables, obtained
// by whoever loads the layer.
type Downstream struct {
	Instance *api.InstanceDispatchTable
	Device   *api.DeviceDispatchTable
}

type options struct {
	cfg *settings.Settings
	reg *validation.Registry
	ids *handle.Map
}

// Option customizes scope construction.
type Option func(*options)

// WithSettings supplies a pre-loaded settings snapshot instead of reading
// the environment.
func WithSettings(cfg *settings.Settings) Option {
	return func(o *options) { o.cfg = cfg }
}

// WithRegistry supplies a component registry other than the default.
func WithRegistry(reg *validation.Registry) Option {
	return func(o *options) { o.reg = reg }
}

// WithIdentityMap supplies an identity map other than the process-wide
// default. Used by tests to isolate ID issuance.
func WithIdentityMap(m *handle.Map) Option {
	return func(o *options) { o.ids = m }
}

// Instance is the instance-scope dispatch object. It owns the instance
// component chain and the bookkeeping for implementation-created handles.
type Instance struct {
	cfg     *settings.Settings
	reg     *validation.Registry
	rep     *report.Reporter
	ids     *handle.Map
	version *semver.Version

	down *api.InstanceDispatchTable
	dev  *api.DeviceDispatchTable

	handle api.Instance // virtual
	real   api.Instance

	// Displays and physical devices are created by the implementation,
	// not the client; reverse maps keep their virtual IDs stable across
	// repeated queries.
	displays *handle.Reverse
	gpus     *handle.Reverse

	chain      []validation.Component
	aborted    []validation.Component
	intercepts *interceptTable

	state atomic.Int32
}

// CreateInstance builds the instance scope object and forwards creation to
// the implementation. A veto from any component's validate phase returns
// ErrorValidationFailed without the implementation ever seeing the call.
func CreateInstance(info *api.InstanceCreateInfo, down Downstream, opts ...Option) (*Instance, api.Result) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.cfg == nil {
		cfg, err := settings.Load()
		if err != nil {
			report.Logger().Error(err.Error())
			return nil, api.ErrorInitializationFailed
		}
		o.cfg = cfg
	}
	if o.reg == nil {
		o.reg = validation.DefaultRegistry
	}
	if o.ids == nil {
		o.ids = handle.Default
	}

	versionStr := info.APIVersion
	if versionStr == "" {
		versionStr = "1.0.0"
	}
	version, err := semver.NewVersion(versionStr)
	if err != nil {
		report.Logger().Error("invalid API version " + info.APIVersion)
		return nil, api.ErrorInitializationFailed
	}

	i := &Instance{
		cfg:      o.cfg,
		reg:      o.reg,
		rep:      report.NewReporter("instance"),
		ids:      o.ids,
		version:  version,
		down:     down.Instance,
		dev:      down.Device,
		displays: handle.NewReverse(o.ids),
		gpus:     handle.NewReverse(o.ids),
	}
	i.state.Store(int32(stateConstructing))
	i.chain, i.aborted = buildChain(validation.ScopeInstance, i.cfg, i.reg, i.rep)
	i.intercepts = buildIntercepts(i.chain)

	res := i.call(api.EntryCreateInstance, info, func() api.Result {
		restore := unwrapExtensions(i.ids, info.Next)
		real, r := i.down.CreateInstance(info)
		restore()
		if r.IsError() {
			return r
		}
		i.real = real
		i.handle = handle.Wrap(i.ids, real)
		return r
	})
	if res.IsError() {
		if err := teardownChains(i.chain, i.aborted); err != nil {
			i.rep.Errorf("chassis", err)
		}
		return nil, res
	}

	i.state.Store(int32(stateActive))
	return i, res
}

// Handle returns the virtual instance handle presented to the client.
func (i *Instance) Handle() api.Instance { return i.handle }

// Version returns the API version the instance was created for.
func (i *Instance) Version() *semver.Version { return i.version }

// Settings returns the immutable settings snapshot.
func (i *Instance) Settings() *settings.Settings { return i.cfg }

// MaybeWrapDisplay returns the stable virtual ID for an
// implementation-created display handle.
func (i *Instance) MaybeWrapDisplay(real api.Display) api.Display {
	return api.Display(i.displays.MaybeWrap(uint64(real)))
}

// EnumeratePhysicalDevices lists the physical devices under this instance.
// Repeated calls present the same virtual IDs for the same devices.
func (i *Instance) EnumeratePhysicalDevices() ([]api.PhysicalDevice, api.Result) {
	var out []api.PhysicalDevice
	res := i.call(api.EntryEnumeratePhysicalDevices, nil, func() api.Result {
		gpus, r := i.down.EnumeratePhysicalDevices(i.real)
		if r.IsError() {
			return r
		}
		out = make([]api.PhysicalDevice, len(gpus))
		for n, g := range gpus {
			out[n] = api.PhysicalDevice(i.gpus.MaybeWrap(uint64(g)))
		}
		return r
	})
	if res.IsError() {
		return nil, res
	}
	return out, res
}

// GetDisplayProperties lists the displays attached to a physical device.
// Display handles are implementation-created; the same display always
// presents the same virtual ID.
func (i *Instance) GetDisplayProperties(gpu api.PhysicalDevice) ([]api.Display, api.Result) {
	var out []api.Display
	res := i.call(api.EntryGetDisplayProperties, gpu, func() api.Result {
		displays, r := i.down.GetDisplayProperties(handle.Unwrap(i.ids, gpu))
		if r.IsError() {
			return r
		}
		out = make([]api.Display, len(displays))
		for n, d := range displays {
			out[n] = i.MaybeWrapDisplay(d)
		}
		return r
	})
	if res.IsError() {
		return nil, res
	}
	return out, res
}

// CreateDevice creates a device scope object under this instance. The
// instance outlives every device created from it; the device keeps a
// non-owning back-reference.
func (i *Instance) CreateDevice(gpu api.PhysicalDevice, info *api.DeviceCreateInfo) (*Device, api.Result) {
	var dev *Device
	res := i.call(api.EntryCreateDevice, info, func() api.Result {
		restore := unwrapExtensions(i.ids, info.Next)
		real, r := i.down.CreateDevice(handle.Unwrap(i.ids, gpu), info)
		restore()
		if r.IsError() {
			return r
		}
		dev = newDevice(i, real)
		return r
	})
	if res.IsError() {
		return nil, res
	}
	return dev, res
}

// Destroy tears the instance down: the destroy call is dispatched through
// the chain, components are torn down in reverse priority order (aborted
// chain included), and every virtual ID this scope owns is erased.
// Destroy is not reentrant; a second call reports and returns an error
// without dispatching anything.
func (i *Instance) Destroy() error {
	if !i.state.CompareAndSwap(int32(stateActive), int32(stateDestroying)) {
		err := chassiserr.InvalidHandle(chassiserr.PhaseTeardown, api.EntryDestroyInstance.String(), uint64(i.handle))
		i.rep.Errorf("chassis", err)
		return err
	}

	i.call(api.EntryDestroyInstance, i.handle, func() api.Result {
		i.down.DestroyInstance(i.real)
		return api.Success
	})

	err := teardownChains(i.chain, i.aborted)
	i.displays.Clear()
	i.gpus.Clear()
	handle.Erase(i.ids, i.handle)

	i.state.Store(int32(stateGone))
	return err
}

// call runs the three-phase protocol for one entry point. On veto the
// forward closure never runs and the client sees ErrorValidationFailed.
// A destroyed scope rejects every entry point without forwarding.
func (i *Instance) call(e api.EntryPoint, args any, forward func() api.Result) api.Result {
	if scopeState(i.state.Load()) == stateGone {
		i.rep.Errorf("chassis", chassiserr.InvalidHandle(chassiserr.PhaseDispatch, e.String(), uint64(i.handle)))
		return api.ErrorInvalidHandle
	}
	call := &validation.Call{Entry: e, Args: args, Reporter: i.rep}
	if err := i.intercepts.preValidate(call); err != nil {
		return api.ErrorValidationFailed
	}
	i.intercepts.preRecord(call)
	res := forward()
	i.intercepts.postRecord(call, res)
	return res
}
