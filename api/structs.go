package api

// StructureType discriminates extension blocks on a create-info chain.
type StructureType int32

const (
	StructureTypeMemoryDedicatedAllocateInfo StructureType = 1000127000 + iota
	StructureTypeImageSwapchainCreateInfo
	StructureTypeSamplerYcbcrConversionInfo
	StructureTypeDeviceGroupDeviceCreateInfo
	StructureTypeValidationFeatures
)

// Extension is one typed block on a create-info chain. Blocks form a singly
// linked list through their Next fields; the chassis walks the list when
// rewriting handle-typed fields and passes unrecognized block types through
// unmodified.
type Extension interface {
	SType() StructureType
	NextBlock() Extension
}

// MemoryDedicatedAllocateInfo dedicates an allocation to one image or buffer.
type MemoryDedicatedAllocateInfo struct {
	Next   Extension
	Image  Image
	Buffer Buffer
}

func (*MemoryDedicatedAllocateInfo) SType() StructureType {
	return StructureTypeMemoryDedicatedAllocateInfo
}
func (e *MemoryDedicatedAllocateInfo) NextBlock() Extension { return e.Next }

// ImageSwapchainCreateInfo binds an image to an existing swapchain.
type ImageSwapchainCreateInfo struct {
	Next      Extension
	Swapchain Swapchain
}

func (*ImageSwapchainCreateInfo) SType() StructureType {
	return StructureTypeImageSwapchainCreateInfo
}
func (e *ImageSwapchainCreateInfo) NextBlock() Extension { return e.Next }

// SamplerYcbcrConversionInfo attaches a conversion object to a sampler.
type SamplerYcbcrConversionInfo struct {
	Next       Extension
	Conversion Sampler
}

func (*SamplerYcbcrConversionInfo) SType() StructureType {
	return StructureTypeSamplerYcbcrConversionInfo
}
func (e *SamplerYcbcrConversionInfo) NextBlock() Extension { return e.Next }

// DeviceGroupDeviceCreateInfo lists the physical devices backing a logical
// device group.
type DeviceGroupDeviceCreateInfo struct {
	Next            Extension
	PhysicalDevices []PhysicalDevice
}

func (*DeviceGroupDeviceCreateInfo) SType() StructureType {
	return StructureTypeDeviceGroupDeviceCreateInfo
}
func (e *DeviceGroupDeviceCreateInfo) NextBlock() Extension { return e.Next }

// ValidationFeatures toggles fine-grained checks at instance creation.
// Carries no handles.
type ValidationFeatures struct {
	Next     Extension
	Enabled  []int32
	Disabled []int32
}

func (*ValidationFeatures) SType() StructureType { return StructureTypeValidationFeatures }
func (e *ValidationFeatures) NextBlock() Extension { return e.Next }

// Create-info structs. Handle-typed fields hold virtual IDs on the client
// side of the chassis and real values below it.

type InstanceCreateInfo struct {
	Next              Extension
	ApplicationName   string
	APIVersion        string // "major.minor.patch"
	EnabledExtensions []string
}

type DeviceCreateInfo struct {
	Next              Extension
	QueueCount        uint32
	EnabledExtensions []string
}

type BufferCreateInfo struct {
	Next  Extension
	Size  uint64
	Usage uint32
}

type ImageCreateInfo struct {
	Next   Extension
	Width  uint32
	Height uint32
	Format uint32
}

type SwapchainCreateInfo struct {
	Next          Extension
	MinImageCount uint32
	Width         uint32
	Height        uint32
	OldSwapchain  Swapchain
}

type CommandPoolCreateInfo struct {
	Next        Extension
	QueueFamily uint32
}

// CommandBufferLevel distinguishes primary from secondary command buffers.
type CommandBufferLevel int32

const (
	CommandBufferLevelPrimary   CommandBufferLevel = 0
	CommandBufferLevelSecondary CommandBufferLevel = 1
)

type CommandBufferAllocateInfo struct {
	Next  Extension
	Pool  CommandPool
	Level CommandBufferLevel
	Count uint32
}

type DescriptorPoolCreateInfo struct {
	Next    Extension
	MaxSets uint32
}

type DescriptorSetAllocateInfo struct {
	Next    Extension
	Pool    DescriptorPool
	Layouts []DescriptorSetLayout
}

type FenceCreateInfo struct {
	Next     Extension
	Signaled bool
}

type SubmitInfo struct {
	Next           Extension
	CommandBuffers []CommandBuffer
}

type RayTracingPipelineCreateInfo struct {
	Next         Extension
	BasePipeline Pipeline
	StageCount   uint32
}
