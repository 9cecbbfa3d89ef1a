// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu

package pipeline

import (
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	// Import Vulkan backend so it registers via init().
	_ "github.com/gogpu/wgpu/hal/vulkan"
)

// GPU bundles the HAL device and queue the pipelines run on.
type GPU struct {
	instance hal.Instance
	device   hal.Device
	queue    hal.Queue

	external bool // true when using a shared device (don't destroy on Destroy)
}

// NewGPU opens a standalone Vulkan device, preferring discrete and
// integrated adapters. The returned GPU owns the device and releases
// it on Destroy.
func NewGPU() (*GPU, error) {
	backend, ok := hal.GetBackend(gputypes.BackendVulkan)
	if !ok {
		return nil, fmt.Errorf("vulkan backend not available")
	}
	instance, err := backend.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return nil, fmt.Errorf("create instance: %w", err)
	}

	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		instance.Destroy()
		return nil, fmt.Errorf("no GPU adapters found")
	}

	var selected *hal.ExposedAdapter
	for i := range adapters {
		if adapters[i].Info.DeviceType == gputypes.DeviceTypeDiscreteGPU ||
			adapters[i].Info.DeviceType == gputypes.DeviceTypeIntegratedGPU {
			selected = &adapters[i]
			break
		}
	}
	if selected == nil {
		selected = &adapters[0]
	}

	openDev, err := selected.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		return nil, fmt.Errorf("open device: %w", err)
	}

	slogger().Info("gpu initialized (standalone)", "adapter", selected.Info.Name)
	return &GPU{
		instance: instance,
		device:   openDev.Device,
		queue:    openDev.Queue,
	}, nil
}

// FromProvider wraps a shared GPU device from an external provider.
// The provider must expose HalDevice() any and HalQueue() any
// returning hal.Device and hal.Queue. Ownership stays with the
// provider; Destroy only drops the references.
func FromProvider(provider gpucontext.DeviceProvider) (*GPU, error) {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, fmt.Errorf("provider does not expose HAL types")
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, fmt.Errorf("provider HalDevice is not hal.Device")
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, fmt.Errorf("provider HalQueue is not hal.Queue")
	}

	slogger().Debug("gpu initialized (shared device)")
	return &GPU{
		device:   device,
		queue:    queue,
		external: true,
	}, nil
}

// ProviderConfig returns the default configuration targeting the
// provider's surface format.
func ProviderConfig(provider gpucontext.DeviceProvider) Config {
	cfg := DefaultConfig()
	cfg.Format = provider.SurfaceFormat()
	return cfg
}

// Device returns the HAL device.
func (g *GPU) Device() hal.Device { return g.device }

// Queue returns the HAL queue.
func (g *GPU) Queue() hal.Queue { return g.queue }

// Destroy releases the device and instance when they are owned. Safe
// to call multiple times.
func (g *GPU) Destroy() {
	if !g.external {
		if g.device != nil {
			g.device.Destroy()
		}
		if g.instance != nil {
			g.instance.Destroy()
		}
	}
	g.device = nil
	g.queue = nil
	g.instance = nil
	g.external = false
}
