// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu

package pipeline

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/visual"
)

// Textures owns the texture bind group layout shared by all pipelines,
// the default sampler and the 1x1 white fallback bound for untextured
// draws.
type Textures struct {
	device hal.Device
	queue  hal.Queue

	layout  hal.BindGroupLayout
	sampler hal.Sampler
	white   *Texture
}

// NewTextures creates the shared texture binding layout, a linear
// clamping default sampler and the white fallback texture.
//
// The layout matches the shader texture groups:
//
//	Binding 0: texture_2d<f32> (fragment)
//	Binding 1: filtering sampler (fragment)
func NewTextures(device hal.Device, queue hal.Queue) (*Textures, error) {
	layout, err := device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "visual_texture_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageFragment,
				Texture: &gputypes.TextureBindingLayout{
					SampleType:    gputypes.TextureSampleTypeFloat,
					ViewDimension: gputypes.TextureViewDimension2D,
				},
			},
			{
				Binding:    1,
				Visibility: gputypes.ShaderStageFragment,
				Sampler:    &gputypes.SamplerBindingLayout{Type: gputypes.SamplerBindingTypeFiltering},
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create texture bind group layout: %w", err)
	}

	sampler, err := device.CreateSampler(&hal.SamplerDescriptor{
		Label:        "visual_default_sampler",
		AddressModeU: gputypes.AddressModeClampToEdge,
		AddressModeV: gputypes.AddressModeClampToEdge,
		AddressModeW: gputypes.AddressModeClampToEdge,
		MagFilter:    gputypes.FilterModeLinear,
		MinFilter:    gputypes.FilterModeLinear,
		MipmapFilter: gputypes.FilterModeLinear,
	})
	if err != nil {
		device.DestroyBindGroupLayout(layout)
		return nil, fmt.Errorf("create default sampler: %w", err)
	}

	t := &Textures{
		device:  device,
		queue:   queue,
		layout:  layout,
		sampler: sampler,
	}

	white, err := t.CreateTexture("visual_white", 1, 1, gputypes.TextureFormatRGBA8Unorm, nil)
	if err != nil {
		t.Destroy()
		return nil, fmt.Errorf("create white texture: %w", err)
	}
	white.Upload([]byte{255, 255, 255, 255})
	t.white = white

	return t, nil
}

// Layout returns the shared texture bind group layout.
func (t *Textures) Layout() hal.BindGroupLayout { return t.layout }

// DefaultSampler returns the linear clamping sampler.
func (t *Textures) DefaultSampler() hal.Sampler { return t.sampler }

// White returns the 1x1 opaque white texture. Binding it makes the
// shader's texture multiply a no-op.
func (t *Textures) White() *Texture { return t.white }

// addressMode maps a wrap mode to the sampler address mode. WrapNone
// clamps at the sampler: the shader does its own out-of-bounds
// handling before sampling.
func addressMode(w visual.WrapMode) gputypes.AddressMode {
	if w == visual.WrapRepeat {
		return gputypes.AddressModeRepeat
	}
	return gputypes.AddressModeClampToEdge
}

// CreateSampler creates a linear sampler with per-axis wrap modes. The
// caller owns it and destroys it via hal.Device.DestroySampler.
func (t *Textures) CreateSampler(label string, wrapU, wrapV visual.WrapMode) (hal.Sampler, error) {
	sampler, err := t.device.CreateSampler(&hal.SamplerDescriptor{
		Label:        label,
		AddressModeU: addressMode(wrapU),
		AddressModeV: addressMode(wrapV),
		AddressModeW: gputypes.AddressModeClampToEdge,
		MagFilter:    gputypes.FilterModeLinear,
		MinFilter:    gputypes.FilterModeLinear,
		MipmapFilter: gputypes.FilterModeLinear,
	})
	if err != nil {
		return nil, fmt.Errorf("create sampler %s: %w", label, err)
	}
	return sampler, nil
}

// CreateTexture creates a sampled 2D texture with its view and bind
// group. A nil sampler binds the default sampler. The texture does not
// own the sampler.
func (t *Textures) CreateTexture(label string, width, height uint32, format gputypes.TextureFormat, sampler hal.Sampler) (*Texture, error) {
	if sampler == nil {
		sampler = t.sampler
	}

	tex, err := t.device.CreateTexture(&hal.TextureDescriptor{
		Label:         label,
		Size:          hal.Extent3D{Width: width, Height: height, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        format,
		Usage:         gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("create texture %s: %w", label, err)
	}

	view, err := t.device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label:         label + "_view",
		Format:        format,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	})
	if err != nil {
		t.device.DestroyTexture(tex)
		return nil, fmt.Errorf("create texture view %s: %w", label, err)
	}

	bindGroup, err := t.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  label + "_bind",
		Layout: t.layout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.TextureViewBinding{
				TextureView: view.NativeHandle(),
			}},
			{Binding: 1, Resource: gputypes.SamplerBinding{
				Sampler: sampler.NativeHandle(),
			}},
		},
	})
	if err != nil {
		t.device.DestroyTextureView(view)
		t.device.DestroyTexture(tex)
		return nil, fmt.Errorf("create bind group %s: %w", label, err)
	}

	return &Texture{
		device:    t.device,
		queue:     t.queue,
		texture:   tex,
		view:      view,
		bindGroup: bindGroup,
		width:     width,
		height:    height,
		format:    format,
	}, nil
}

// Destroy releases the white texture, sampler and layout. Safe to call
// multiple times.
func (t *Textures) Destroy() {
	if t.white != nil {
		t.white.Destroy()
		t.white = nil
	}
	if t.sampler != nil {
		t.device.DestroySampler(t.sampler)
		t.sampler = nil
	}
	if t.layout != nil {
		t.device.DestroyBindGroupLayout(t.layout)
		t.layout = nil
	}
}

// Texture is a sampled 2D texture with its view and bind group ready
// to record into a render pass.
type Texture struct {
	device hal.Device
	queue  hal.Queue

	texture   hal.Texture
	view      hal.TextureView
	bindGroup hal.BindGroup

	width  uint32
	height uint32
	format gputypes.TextureFormat
}

// formatBlockSize returns the bytes per pixel of the formats textures
// are created with here.
func formatBlockSize(format gputypes.TextureFormat) uint32 {
	if format == gputypes.TextureFormatR8Unorm {
		return 1
	}
	return 4
}

// Upload copies pixel data covering the whole texture. data must hold
// width*height tightly packed pixels of the texture's format.
func (t *Texture) Upload(data []byte) {
	t.queue.WriteTexture(
		&hal.ImageCopyTexture{
			Texture:  t.texture,
			MipLevel: 0,
		},
		data,
		&hal.ImageDataLayout{
			Offset:       0,
			BytesPerRow:  t.width * formatBlockSize(t.format),
			RowsPerImage: t.height,
		},
		&hal.Extent3D{Width: t.width, Height: t.height, DepthOrArrayLayers: 1},
	)
}

// BindGroup returns the texture's bind group.
func (t *Texture) BindGroup() hal.BindGroup { return t.bindGroup }

// View returns the texture's view.
func (t *Texture) View() hal.TextureView { return t.view }

// Width returns the texture width in pixels.
func (t *Texture) Width() uint32 { return t.width }

// Height returns the texture height in pixels.
func (t *Texture) Height() uint32 { return t.height }

// Destroy releases the bind group, view and texture. Safe to call
// multiple times.
func (t *Texture) Destroy() {
	if t.bindGroup != nil {
		t.device.DestroyBindGroup(t.bindGroup)
		t.bindGroup = nil
	}
	if t.view != nil {
		t.device.DestroyTextureView(t.view)
		t.view = nil
	}
	if t.texture != nil {
		t.device.DestroyTexture(t.texture)
		t.texture = nil
	}
}
