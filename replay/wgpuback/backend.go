// Package wgpuback replays command streams onto a WebGPU HAL device.
//
// It keeps per-geometry GPU buffers alive across frames: static buffers
// are created once per upload, dynamic buffers are created on first
// upload and rewritten in place afterwards. Uniforms share one small
// buffer per name. Compiled material expressions become shader modules.
package wgpuback

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/meshsync"
	"github.com/gogpu/meshsync/command"
	"github.com/gogpu/meshsync/geometry"
	"github.com/gogpu/meshsync/material"
	"github.com/gogpu/meshsync/replay"
)

func init() {
	replay.Register("wgpu", func() replay.Backend { return &Backend{} })
}

type bufferKey struct {
	geom geometry.ID
	name string
}

type gpuBuffer struct {
	buf  hal.Buffer
	size uint64
}

type geometryState struct {
	topology gputypes.PrimitiveTopology
	dynamic  bool
}

// Backend replays command streams against a hal.Device and hal.Queue.
// An unbound Backend (as produced by the registry) must be bound with
// Bind before the first frame.
//
// Backend is not safe for concurrent use; replay is frame-synchronous
// like the rest of the synchronization layer.
type Backend struct {
	device hal.Device
	queue  hal.Queue

	path       command.PathID
	geometries map[geometry.ID]geometryState
	buffers    map[bufferKey]gpuBuffer
	uniforms   map[string]gpuBuffer
	shaders    map[string]hal.ShaderModule
	options    map[string]any
}

// New creates a backend bound to the device and queue.
func New(device hal.Device, queue hal.Queue) *Backend {
	b := &Backend{}
	b.Bind(device, queue)
	return b
}

// Bind attaches the backend to a device and queue. It must be called
// before Begin on registry-created backends.
func (b *Backend) Bind(device hal.Device, queue hal.Queue) {
	b.device = device
	b.queue = queue
}

// BindHandle attaches the backend using a host-provided device handle.
// The handle's device and queue must be HAL objects; gogpu hosts satisfy
// this directly.
func (b *Backend) BindHandle(h DeviceHandle) error {
	device, ok := h.Device().(hal.Device)
	if !ok {
		return fmt.Errorf("wgpuback: device handle does not carry a HAL device")
	}
	queue, ok := h.Queue().(hal.Queue)
	if !ok {
		return fmt.Errorf("wgpuback: device handle does not carry a HAL queue")
	}
	b.Bind(device, queue)
	return nil
}

// Begin implements replay.Backend.
func (b *Backend) Begin() error {
	if b.device == nil || b.queue == nil {
		return fmt.Errorf("wgpuback: backend not bound to a device")
	}
	if b.geometries == nil {
		b.geometries = make(map[geometry.ID]geometryState)
		b.buffers = make(map[bufferKey]gpuBuffer)
		b.uniforms = make(map[string]gpuBuffer)
		b.shaders = make(map[string]hal.ShaderModule)
	}
	return nil
}

// SelectPath implements replay.Backend.
func (b *Backend) SelectPath(path command.PathID) error {
	b.path = path
	return nil
}

// CreateMesh implements replay.Backend. Mesh-level GPU state (pipelines,
// bind groups) is created lazily when geometry and materials arrive, so
// creation itself only needs the announcement.
func (b *Backend) CreateMesh() error {
	meshsync.Logger().Debug("wgpuback: mesh created", "path", string(b.path))
	return nil
}

// SetGeometry implements replay.Backend.
func (b *Backend) SetGeometry(id geometry.ID, topology gputypes.PrimitiveTopology, dynamic bool) error {
	b.geometries[id] = geometryState{topology: topology, dynamic: dynamic}
	return nil
}

// UploadBuffer implements replay.Backend. Index buffers get the index
// usage bit, everything else the vertex bit. For dynamic geometries an
// existing buffer of sufficient size is rewritten in place; otherwise a
// fresh buffer is created.
func (b *Backend) UploadBuffer(id geometry.ID, name string, values []float32, spacing int) error {
	if len(values) == 0 {
		return fmt.Errorf("wgpuback: empty upload for %d/%s", id, name)
	}

	data := floatBytes(values)
	size := uint64(len(data))
	key := bufferKey{geom: id, name: name}

	if existing, ok := b.buffers[key]; ok {
		if b.geometries[id].dynamic && existing.size >= size {
			b.queue.WriteBuffer(existing.buf, 0, data)
			return nil
		}
		b.device.DestroyBuffer(existing.buf)
		delete(b.buffers, key)
	}

	usage := gputypes.BufferUsageVertex | gputypes.BufferUsageCopyDst
	if name == geometry.IndexBufferName {
		usage = gputypes.BufferUsageIndex | gputypes.BufferUsageCopyDst
	}

	buf, err := b.device.CreateBuffer(&hal.BufferDescriptor{
		Label: fmt.Sprintf("geometry-%d-%s", id, name),
		Size:  size,
		Usage: usage,
	})
	if err != nil {
		return fmt.Errorf("wgpuback: create buffer %d/%s: %w", id, name, err)
	}
	b.queue.WriteBuffer(buf, 0, data)
	b.buffers[key] = gpuBuffer{buf: buf, size: size}
	return nil
}

// SetUniform implements replay.Backend. Values are serialized little-endian
// and written to a per-name uniform buffer, recreated only on growth.
func (b *Backend) SetUniform(name string, value any) error {
	data, err := uniformBytes(value)
	if err != nil {
		return fmt.Errorf("wgpuback: uniform %s: %w", name, err)
	}
	return b.writeUniform(name, data)
}

// UniformInput implements replay.Backend.
func (b *Backend) UniformInput(name string, value float32) error {
	return b.writeUniform(name, floatBytes([]float32{value}))
}

// MaterialInput implements replay.Backend. Compiled expressions become
// shader modules keyed by slot name; other payloads are not representable
// on the HAL and are skipped with a warning.
func (b *Backend) MaterialInput(name string, value any) error {
	compiled, ok := value.(material.Compiled)
	if !ok {
		meshsync.Logger().Warn("wgpuback: unsupported material input skipped",
			"slot", name, "type", fmt.Sprintf("%T", value))
		return nil
	}

	if old, exists := b.shaders[name]; exists {
		b.device.DestroyShaderModule(old)
	}
	module, err := b.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label: "material-" + name,
		Source: hal.ShaderSource{
			SPIRV: compiled.SPIRVWords(),
		},
	})
	if err != nil {
		return fmt.Errorf("wgpuback: shader module for %s: %w", name, err)
	}
	b.shaders[name] = module
	return nil
}

// SetDrawOptions implements replay.DrawOptionSetter. Options are stored
// for pipeline creation; unknown keys are kept uninterpreted.
func (b *Backend) SetDrawOptions(options map[string]any) error {
	if b.options == nil {
		b.options = make(map[string]any, len(options))
	}
	for k, v := range options {
		b.options[k] = v
	}
	return nil
}

// End implements replay.Backend.
func (b *Backend) End() error {
	return nil
}

// Release destroys all GPU resources the backend created. The backend
// can be reused after a Release; resources are recreated on demand.
func (b *Backend) Release() {
	for key, buf := range b.buffers {
		b.device.DestroyBuffer(buf.buf)
		delete(b.buffers, key)
	}
	for name, buf := range b.uniforms {
		b.device.DestroyBuffer(buf.buf)
		delete(b.uniforms, name)
	}
	for name, module := range b.shaders {
		b.device.DestroyShaderModule(module)
		delete(b.shaders, name)
	}
}

func (b *Backend) writeUniform(name string, data []byte) error {
	size := uint64(len(data))
	if existing, ok := b.uniforms[name]; ok {
		if existing.size >= size {
			b.queue.WriteBuffer(existing.buf, 0, data)
			return nil
		}
		b.device.DestroyBuffer(existing.buf)
		delete(b.uniforms, name)
	}

	buf, err := b.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "uniform-" + name,
		Size:  size,
		Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("wgpuback: create uniform buffer %s: %w", name, err)
	}
	b.queue.WriteBuffer(buf, 0, data)
	b.uniforms[name] = gpuBuffer{buf: buf, size: size}
	return nil
}
