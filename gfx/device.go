package gfx

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"
	_ "github.com/gogpu/wgpu/hal/vulkan" // register the Vulkan backend

	"github.com/gogpu/fundamentals"
)

// Backend names accepted by Open.
const (
	BackendVulkan = "vulkan"
	BackendNoop   = "noop"
)

// submitTimeout bounds how long End waits for the GPU.
const submitTimeout = 5 * time.Second

// Backends returns the backend names accepted by Open.
func Backends() []string {
	return []string{BackendVulkan, BackendNoop}
}

// OpenOptions configures Open.
type OpenOptions struct {
	// Backend selects the HAL backend. Empty means BackendVulkan.
	Backend string

	// Limits are the device limits requested from the adapter. The zero
	// value means gputypes.DefaultLimits().
	Limits *gputypes.Limits
}

// Device is a graphics context: one HAL device and its queue.
//
// Device is safe for concurrent use of Stats; resource creation and frames
// are expected to happen on a single goroutine, like a browser's main
// thread.
type Device struct {
	device   hal.Device
	queue    hal.Queue
	instance hal.Instance
	owned    bool

	backend     string
	adapterName string

	closeOnce sync.Once
	closed    atomic.Bool

	stats stats
}

// Open creates a new instance on the named backend, picks an adapter and
// opens a device on it. Discrete and integrated GPUs are preferred over
// other adapter types.
func Open(opts OpenOptions) (*Device, error) {
	name := strings.ToLower(strings.TrimSpace(opts.Backend))
	if name == "" {
		name = BackendVulkan
	}
	backend, err := lookupBackend(name)
	if err != nil {
		return nil, err
	}

	instance, err := backend.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return nil, fmt.Errorf("gfx: create %s instance: %w", name, err)
	}

	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		instance.Destroy()
		return nil, fmt.Errorf("%w (backend %s)", ErrNoAdapter, name)
	}
	selected := selectAdapter(adapters)

	limits := gputypes.DefaultLimits()
	if opts.Limits != nil {
		limits = *opts.Limits
	}
	openDev, err := selected.Adapter.Open(gputypes.Features(0), limits)
	if err != nil {
		instance.Destroy()
		return nil, fmt.Errorf("gfx: open device: %w", err)
	}

	d := &Device{
		device:      openDev.Device,
		queue:       openDev.Queue,
		instance:    instance,
		owned:       true,
		backend:     name,
		adapterName: selected.Info.Name,
	}
	logger().Info("gfx: device opened", "backend", name, "adapter", selected.Info.Name)
	return d, nil
}

func lookupBackend(name string) (hal.Backend, error) {
	switch name {
	case BackendVulkan:
		b, ok := hal.GetBackend(gputypes.BackendVulkan)
		if !ok {
			return nil, fmt.Errorf("%w: %s is not registered on this platform", ErrUnknownBackend, name)
		}
		return b, nil
	case BackendNoop:
		return noop.API{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, name)
	}
}

func selectAdapter(adapters []hal.ExposedAdapter) *hal.ExposedAdapter {
	for i := range adapters {
		if adapters[i].Info.DeviceType == gputypes.DeviceTypeDiscreteGPU ||
			adapters[i].Info.DeviceType == gputypes.DeviceTypeIntegratedGPU {
			return &adapters[i]
		}
	}
	return &adapters[0]
}

// halProvider is implemented by hosts that share their HAL device, such as
// the gogpu window.
type halProvider interface {
	HalDevice() any
	HalQueue() any
}

// Wrap shares the HAL device of an external provider. The returned Device
// does not own the device: Close releases nothing on the provider.
func Wrap(provider any) (*Device, error) {
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, ErrNotHALProvider
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok {
		return nil, fmt.Errorf("%w: HalDevice is %T", ErrNotHALProvider, hp.HalDevice())
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok {
		return nil, fmt.Errorf("%w: HalQueue is %T", ErrNotHALProvider, hp.HalQueue())
	}
	logger().Info("gfx: sharing provider device")
	return &Device{
		device:  device,
		queue:   queue,
		backend: "shared",
	}, nil
}

// Backend returns the backend name the device was opened on, or "shared"
// for a wrapped device.
func (d *Device) Backend() string { return d.backend }

// AdapterName returns the adapter name reported by the driver.
func (d *Device) AdapterName() string { return d.adapterName }

// Close destroys the device if this Device opened it. Close is idempotent.
func (d *Device) Close() {
	d.closeOnce.Do(func() {
		d.closed.Store(true)
		if !d.owned {
			return
		}
		if err := d.device.WaitIdle(); err != nil {
			logger().Warn("gfx: wait idle on close", "err", err)
		}
		d.device.Destroy()
		if d.instance != nil {
			d.instance.Destroy()
		}
		logger().Info("gfx: device closed", "backend", d.backend)
	})
}

func (d *Device) checkOpen() error {
	if d.closed.Load() {
		return ErrDeviceClosed
	}
	return nil
}

// submit submits one command buffer and blocks until the queue reports it
// complete.
func (d *Device) submit(cmdBuf hal.CommandBuffer) error {
	idx, err := d.queue.Submit([]hal.CommandBuffer{cmdBuf})
	if err != nil {
		return fmt.Errorf("gfx: submit: %w", err)
	}
	deadline := time.Now().Add(submitTimeout)
	for d.queue.PollCompleted() < idx {
		if time.Now().After(deadline) {
			return ErrTimeout
		}
		time.Sleep(50 * time.Microsecond)
	}
	return nil
}

func logger() *slog.Logger {
	return fundamentals.Logger()
}
