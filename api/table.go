package api

// InstanceDispatchTable is the downstream surface for instance-scope entry
// points, obtained at instance construction. All handle values passing
// through it are real (unwrapped) values.
type InstanceDispatchTable struct {
	CreateInstance           func(info *InstanceCreateInfo) (Instance, Result)
	DestroyInstance          func(instance Instance)
	EnumeratePhysicalDevices func(instance Instance) ([]PhysicalDevice, Result)
	GetDisplayProperties     func(gpu PhysicalDevice) ([]Display, Result)
	CreateDevice             func(gpu PhysicalDevice, info *DeviceCreateInfo) (Device, Result)
}

// DeviceDispatchTable is the downstream surface for device-scope entry
// points.
type DeviceDispatchTable struct {
	DestroyDevice func(dev Device)

	CreateBuffer  func(dev Device, info *BufferCreateInfo) (Buffer, Result)
	DestroyBuffer func(dev Device, buf Buffer)
	CreateImage   func(dev Device, info *ImageCreateInfo) (Image, Result)
	DestroyImage  func(dev Device, img Image)

	CreateSwapchain    func(dev Device, info *SwapchainCreateInfo) (Swapchain, Result)
	DestroySwapchain   func(dev Device, sc Swapchain)
	GetSwapchainImages func(dev Device, sc Swapchain) ([]Image, Result)

	CreateCommandPool      func(dev Device, info *CommandPoolCreateInfo) (CommandPool, Result)
	DestroyCommandPool     func(dev Device, pool CommandPool)
	AllocateCommandBuffers func(dev Device, info *CommandBufferAllocateInfo) ([]CommandBuffer, Result)
	FreeCommandBuffers     func(dev Device, pool CommandPool, cbs []CommandBuffer)

	CreateDescriptorPool   func(dev Device, info *DescriptorPoolCreateInfo) (DescriptorPool, Result)
	DestroyDescriptorPool  func(dev Device, pool DescriptorPool)
	ResetDescriptorPool    func(dev Device, pool DescriptorPool) Result
	AllocateDescriptorSets func(dev Device, info *DescriptorSetAllocateInfo) ([]DescriptorSet, Result)
	FreeDescriptorSets     func(dev Device, pool DescriptorPool, sets []DescriptorSet) Result

	CreateDescriptorUpdateTemplate  func(dev Device, info *DescriptorUpdateTemplateCreateInfo) (DescriptorUpdateTemplate, Result)
	DestroyDescriptorUpdateTemplate func(dev Device, tmpl DescriptorUpdateTemplate)
	UpdateDescriptorSetWithTemplate func(dev Device, set DescriptorSet, tmpl DescriptorUpdateTemplate, data []DescriptorData)

	GetDeviceQueue func(dev Device, family, index uint32) Queue

	CreateFence  func(dev Device, info *FenceCreateInfo) (Fence, Result)
	DestroyFence func(dev Device, fence Fence)
	QueueSubmit  func(queue Queue, submits []SubmitInfo, fence Fence) Result

	CreateDeferredOperation    func(dev Device) (DeferredOperation, Result)
	DestroyDeferredOperation   func(dev Device, op DeferredOperation)
	DeferredOperationJoin      func(dev Device, op DeferredOperation) Result
	GetDeferredOperationResult func(dev Device, op DeferredOperation) Result

	CreateRayTracingPipelines func(dev Device, op DeferredOperation, infos []RayTracingPipelineCreateInfo) ([]Pipeline, Result)
	DestroyPipeline           func(dev Device, pipeline Pipeline)
}
