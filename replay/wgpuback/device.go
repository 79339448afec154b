package wgpuback

import "github.com/gogpu/gpucontext"

// DeviceHandle provides GPU device access from the host application.
//
// The host owns the device: it creates (or receives) the WebGPU device
// and queue and hands them to the backend through this interface. The
// backend never creates a device of its own, so GPU resources are shared
// with whatever else the host renders.
//
// DeviceHandle is an alias for gpucontext.DeviceProvider, providing a
// backend-local name for the interface while maintaining full
// compatibility with the gpucontext ecosystem.
type DeviceHandle = gpucontext.DeviceProvider
