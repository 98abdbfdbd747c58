package api

import "strconv"

// EntryPoint identifies one intercepted API operation. Values are dense so
// per-entry-point dispatch tables can be plain arrays indexed by EntryPoint.
type EntryPoint int

const (
	EntryCreateInstance EntryPoint = iota
	EntryDestroyInstance
	EntryEnumeratePhysicalDevices
	EntryGetDisplayProperties
	EntryCreateDevice

	EntryDestroyDevice
	EntryCreateBuffer
	EntryDestroyBuffer
	EntryCreateImage
	EntryDestroyImage
	EntryCreateSwapchain
	EntryDestroySwapchain
	EntryGetSwapchainImages
	EntryCreateCommandPool
	EntryDestroyCommandPool
	EntryAllocateCommandBuffers
	EntryFreeCommandBuffers
	EntryCreateDescriptorPool
	EntryDestroyDescriptorPool
	EntryResetDescriptorPool
	EntryAllocateDescriptorSets
	EntryFreeDescriptorSets
	EntryCreateDescriptorUpdateTemplate
	EntryDestroyDescriptorUpdateTemplate
	EntryUpdateDescriptorSetWithTemplate
	EntryGetDeviceQueue
	EntryCreateFence
	EntryDestroyFence
	EntryQueueSubmit
	EntryCreateDeferredOperation
	EntryDestroyDeferredOperation
	EntryDeferredOperationJoin
	EntryGetDeferredOperationResult
	EntryCreateRayTracingPipelines
	EntryDestroyPipeline

	// EntryPointCount is the size of per-entry-point dispatch arrays.
	EntryPointCount
)

var entryPointNames = [EntryPointCount]string{
	EntryCreateInstance:                  "CreateInstance",
	EntryDestroyInstance:                 "DestroyInstance",
	EntryEnumeratePhysicalDevices:        "EnumeratePhysicalDevices",
	EntryGetDisplayProperties:            "GetDisplayProperties",
	EntryCreateDevice:                    "CreateDevice",
	EntryDestroyDevice:                   "DestroyDevice",
	EntryCreateBuffer:                    "CreateBuffer",
	EntryDestroyBuffer:                   "DestroyBuffer",
	EntryCreateImage:                     "CreateImage",
	EntryDestroyImage:                    "DestroyImage",
	EntryCreateSwapchain:                 "CreateSwapchain",
	EntryDestroySwapchain:                "DestroySwapchain",
	EntryGetSwapchainImages:              "GetSwapchainImages",
	EntryCreateCommandPool:               "CreateCommandPool",
	EntryDestroyCommandPool:              "DestroyCommandPool",
	EntryAllocateCommandBuffers:          "AllocateCommandBuffers",
	EntryFreeCommandBuffers:              "FreeCommandBuffers",
	EntryCreateDescriptorPool:            "CreateDescriptorPool",
	EntryDestroyDescriptorPool:           "DestroyDescriptorPool",
	EntryResetDescriptorPool:             "ResetDescriptorPool",
	EntryAllocateDescriptorSets:          "AllocateDescriptorSets",
	EntryFreeDescriptorSets:              "FreeDescriptorSets",
	EntryCreateDescriptorUpdateTemplate:  "CreateDescriptorUpdateTemplate",
	EntryDestroyDescriptorUpdateTemplate: "DestroyDescriptorUpdateTemplate",
	EntryUpdateDescriptorSetWithTemplate: "UpdateDescriptorSetWithTemplate",
	EntryGetDeviceQueue:                  "GetDeviceQueue",
	EntryCreateFence:                     "CreateFence",
	EntryDestroyFence:                    "DestroyFence",
	EntryQueueSubmit:                     "QueueSubmit",
	EntryCreateDeferredOperation:         "CreateDeferredOperation",
	EntryDestroyDeferredOperation:        "DestroyDeferredOperation",
	EntryDeferredOperationJoin:           "DeferredOperationJoin",
	EntryGetDeferredOperationResult:      "GetDeferredOperationResult",
	EntryCreateRayTracingPipelines:       "CreateRayTracingPipelines",
	EntryDestroyPipeline:                 "DestroyPipeline",
}

func (e EntryPoint) String() string {
	if e >= 0 && e < EntryPointCount {
		return entryPointNames[e]
	}
	return "EntryPoint(" + strconv.Itoa(int(e)) + ")"
}
