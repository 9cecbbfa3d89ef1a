// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu

package pipeline

import (
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// Config is the fixed render state shared by the pipelines: the color
// target format, MSAA sample count and the optional depth/stencil
// attachment of the render pass the pipelines record into.
type Config struct {
	// Format is the color target pixel format.
	Format gputypes.TextureFormat

	// SampleCount is the MSAA sample count of the target. Zero means 1.
	SampleCount uint32

	// DepthStencil declares that the render pass carries a
	// depth/stencil attachment, so every pipeline must include a
	// matching state.
	DepthStencil bool

	// DepthFormat is the depth/stencil attachment format when
	// DepthStencil is set.
	DepthFormat gputypes.TextureFormat
}

// DefaultConfig returns the configuration for a single-sampled
// BGRA8Unorm target without a depth attachment.
func DefaultConfig() Config {
	return Config{
		Format:      gputypes.TextureFormatBGRA8Unorm,
		SampleCount: 1,
		DepthFormat: gputypes.TextureFormatDepth24PlusStencil8,
	}
}

func (c Config) multisample() gputypes.MultisampleState {
	count := c.SampleCount
	if count == 0 {
		count = 1
	}
	return gputypes.MultisampleState{
		Count: count,
		Mask:  0xFFFFFFFF,
	}
}

func (c Config) primitiveState() gputypes.PrimitiveState {
	return gputypes.PrimitiveState{
		Topology: gputypes.PrimitiveTopologyTriangleList,
		CullMode: gputypes.CullModeNone,
	}
}

// colorTargets returns the premultiplied alpha blend target. Colors
// travel straight-alpha and every fragment shader premultiplies its
// output, so the source factor is One.
func (c Config) colorTargets() []gputypes.ColorTargetState {
	premulBlend := gputypes.BlendStatePremultiplied()
	return []gputypes.ColorTargetState{
		{
			Format:    c.Format,
			Blend:     &premulBlend,
			WriteMask: gputypes.ColorWriteMaskAll,
		},
	}
}

// opaqueColorTargets returns an unblended target for draws that
// overwrite the destination.
func (c Config) opaqueColorTargets() []gputypes.ColorTargetState {
	return []gputypes.ColorTargetState{
		{
			Format:    c.Format,
			WriteMask: gputypes.ColorWriteMaskAll,
		},
	}
}

func keepStencil() hal.StencilFaceState {
	return hal.StencilFaceState{
		Compare:     gputypes.CompareFunctionAlways,
		FailOp:      hal.StencilOperationKeep,
		DepthFailOp: hal.StencilOperationKeep,
		PassOp:      hal.StencilOperationKeep,
	}
}

// depthStencil returns the state for blended draws: the attachment is
// bound but neither tested nor written, so draw order decides.
func (c Config) depthStencil() *hal.DepthStencilState {
	if !c.DepthStencil {
		return nil
	}
	return &hal.DepthStencilState{
		Format:            c.DepthFormat,
		DepthWriteEnabled: false,
		DepthCompare:      gputypes.CompareFunctionAlways,
		StencilFront:      keepStencil(),
		StencilBack:       keepStencil(),
		StencilReadMask:   0x00,
		StencilWriteMask:  0x00,
	}
}

// opaqueDepthStencil returns the state for opaque draws, which write
// depth and test greater-or-equal so nearer content wins regardless of
// draw order.
func (c Config) opaqueDepthStencil() *hal.DepthStencilState {
	if !c.DepthStencil {
		return nil
	}
	return &hal.DepthStencilState{
		Format:            c.DepthFormat,
		DepthWriteEnabled: true,
		DepthCompare:      gputypes.CompareFunctionGreaterEqual,
		StencilFront:      keepStencil(),
		StencilBack:       keepStencil(),
		StencilReadMask:   0x00,
		StencilWriteMask:  0x00,
	}
}
