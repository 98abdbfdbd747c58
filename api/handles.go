package api

// NullHandle is the zero value shared by every handle type. The identity
// map never issues it as a virtual ID.
const NullHandle = 0

// Opaque handle types. Each is a distinct uint64-backed type so the
// compiler rejects cross-class mixups even though all of them travel
// through the identity map as plain 64-bit values.
type (
	Instance                 uint64
	PhysicalDevice           uint64
	Device                   uint64
	Queue                    uint64
	CommandBuffer            uint64
	CommandPool              uint64
	Buffer                   uint64
	Image                    uint64
	Sampler                  uint64
	Fence                    uint64
	Pipeline                 uint64
	Swapchain                uint64
	Display                  uint64
	DeviceMemory             uint64
	DescriptorPool           uint64
	DescriptorSet            uint64
	DescriptorSetLayout      uint64
	DescriptorUpdateTemplate uint64
	DeferredOperation        uint64
)

// AnyHandle is the constraint satisfied by every opaque handle type.
type AnyHandle interface {
	~uint64
}
