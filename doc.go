// Package chassis is the root of an interception layer framework for
// explicit graphics APIs.
//
// The chassis sits between a client and the real implementation. It gives
// every object the implementation creates a stable virtual identity, routes
// every intercepted call through an ordered chain of validation components,
// and keeps the bookkeeping those components need (secondary command buffer
// classification, descriptor template shapes, deferred operation results).
//
// # Architecture Overview
//
// The module is organized into packages with distinct responsibilities:
//
//	chassis/             Root package, documentation only
//	├── api/             Handle types, entry points, call payloads, dispatch tables
//	├── dispatch/        Per-scope Instance and Device objects and call routing
//	├── validation/      Component interface, hook tables, registry
//	├── handle/          Virtual handle identity map and reverse maps
//	├── container/       Small-size-optimized and sharded concurrent containers
//	├── settings/        Environment-driven configuration snapshot
//	├── report/          Severity-tagged diagnostics sink
//	├── errors/          Structured error types for debugging
//	└── cmd/layerinfo/   CLI for inspecting the resolved component chain
//
// # Quick Start
//
// Create an instance scope over a downstream implementation:
//
//	inst, res := dispatch.CreateInstance(&api.InstanceCreateInfo{
//	    APIVersion: "1.3.0",
//	}, down)
//	if res.IsError() {
//	    log.Fatal(res)
//	}
//	defer inst.Destroy()
//
//	gpus, _ := inst.EnumeratePhysicalDevices()
//	dev, res := inst.CreateDevice(gpus[0], &api.DeviceCreateInfo{})
//	if res.IsError() {
//	    log.Fatal(res)
//	}
//	defer dev.Destroy()
//
// Every handle returned above is a virtual ID. The client never sees a
// real implementation value, and the implementation never sees a virtual
// one.
//
// Validation components register factories with the validation package;
// which ones actually join a scope's chain is decided by the settings
// snapshot at scope construction and never changes afterwards.
package chassis
