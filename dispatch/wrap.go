package dispatch

import (
	"github.com/gfxlayers/chassis/api"
	"github.com/gfxlayers/chassis/handle"
)

// unwrapExtensions walks an extension chain and rewrites, in place, every
// handle-typed field of every known block type from its virtual ID to the
// real value, for the duration of one forwarded call. The returned restore
// function puts the saved virtual IDs back; callers run it as soon as the
// downstream call returns so client-owned extension blocks never hold real
// handle values after the entry point returns, and the same chain can be
// submitted again.
//
// Unrecognized block types are passed through unmodified, which keeps the
// chassis forward-compatible with extension blocks added after it was
// built; their chain links still get followed so known blocks past them
// are rewritten.
func unwrapExtensions(m *handle.Map, head api.Extension) (restore func()) {
	unwrap := func(id uint64) uint64 {
		if id == 0 {
			return 0
		}
		return m.Unwrap(id)
	}

	var undo []func()
	for e := head; e != nil; e = e.NextBlock() {
		switch b := e.(type) {
		case *api.MemoryDedicatedAllocateInfo:
			img, buf := b.Image, b.Buffer
			b.Image = api.Image(unwrap(uint64(img)))
			b.Buffer = api.Buffer(unwrap(uint64(buf)))
			undo = append(undo, func() {
				b.Image, b.Buffer = img, buf
			})
		case *api.ImageSwapchainCreateInfo:
			sc := b.Swapchain
			b.Swapchain = api.Swapchain(unwrap(uint64(sc)))
			undo = append(undo, func() {
				b.Swapchain = sc
			})
		case *api.SamplerYcbcrConversionInfo:
			conv := b.Conversion
			b.Conversion = api.Sampler(unwrap(uint64(conv)))
			undo = append(undo, func() {
				b.Conversion = conv
			})
		case *api.DeviceGroupDeviceCreateInfo:
			saved := append([]api.PhysicalDevice(nil), b.PhysicalDevices...)
			for i := range b.PhysicalDevices {
				b.PhysicalDevices[i] = api.PhysicalDevice(unwrap(uint64(b.PhysicalDevices[i])))
			}
			undo = append(undo, func() {
				copy(b.PhysicalDevices, saved)
			})
		default:
			// Unknown block type: pass through.
		}
	}

	if undo == nil {
		return func() {}
	}
	return func() {
		for i := len(undo) - 1; i >= 0; i-- {
			undo[i]()
		}
	}
}
