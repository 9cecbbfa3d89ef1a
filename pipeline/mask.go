// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu

package pipeline

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// maskVertexLayout returns the vertex buffer layout for the mask
// pipeline. Matches VertexInput in mask.wgsl.
func maskVertexLayout() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: MaskVertexStride,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},  // position
				{Format: gputypes.VertexFormatFloat32x4, Offset: 12, ShaderLocation: 1}, // color
				{Format: gputypes.VertexFormatFloat32x2, Offset: 28, ShaderLocation: 2}, // texture_coord
				{Format: gputypes.VertexFormatFloat32x2, Offset: 36, ShaderLocation: 3}, // mask_coord
			},
		},
	}
}

// MaskPipeline draws quads whose color texture alpha is scaled by the
// red channel of a second mask texture, each sampled at its own
// coordinate.
type MaskPipeline struct {
	device hal.Device

	shader     hal.ShaderModule
	pipeLayout hal.PipelineLayout
	pipeline   hal.RenderPipeline
}

// NewMaskPipeline compiles the mask shader and creates the render
// pipeline. Both bind groups use the shared texture layout: group 0
// holds the color texture, group 1 the mask.
func NewMaskPipeline(device hal.Device, textures *Textures, cfg Config) (*MaskPipeline, error) {
	p := &MaskPipeline{device: device}
	if err := p.createPipeline(textures, cfg); err != nil {
		p.Destroy()
		return nil, err
	}
	return p, nil
}

func (p *MaskPipeline) createPipeline(textures *Textures, cfg Config) error {
	if maskShaderSource == "" {
		return fmt.Errorf("mask shader source is empty")
	}

	shader, err := p.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "visual_mask_shader",
		Source: hal.ShaderSource{WGSL: maskShaderSource},
	})
	if err != nil {
		return fmt.Errorf("compile mask shader: %w", err)
	}
	p.shader = shader

	pipeLayout, err := p.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "visual_mask_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{textures.Layout(), textures.Layout()},
	})
	if err != nil {
		return fmt.Errorf("create mask pipeline layout: %w", err)
	}
	p.pipeLayout = pipeLayout

	pipeline, err := p.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  "visual_mask_pipeline",
		Layout: p.pipeLayout,
		Vertex: hal.VertexState{
			Module:     p.shader,
			EntryPoint: "vs_main",
			Buffers:    maskVertexLayout(),
		},
		Fragment: &hal.FragmentState{
			Module:     p.shader,
			EntryPoint: "fs_main",
			Targets:    cfg.colorTargets(),
		},
		DepthStencil: cfg.depthStencil(),
		Primitive:    cfg.primitiveState(),
		Multisample:  cfg.multisample(),
	})
	if err != nil {
		return fmt.Errorf("create mask pipeline: %w", err)
	}
	p.pipeline = pipeline

	return nil
}

// MaskDraw holds the per-draw resources for one masked quad batch.
type MaskDraw struct {
	// ColorBindGroup binds the color texture at group 0.
	ColorBindGroup hal.BindGroup

	// MaskBindGroup binds the mask texture at group 1. Its red channel
	// scales the output alpha.
	MaskBindGroup hal.BindGroup

	VertexBuf  hal.Buffer
	IndexBuf   hal.Buffer
	IndexCount uint32
}

// RecordDraws records the draws into an existing render pass. The
// render pass is owned by the caller.
func (p *MaskPipeline) RecordDraws(rp hal.RenderPassEncoder, draws []MaskDraw) {
	if len(draws) == 0 {
		return
	}
	rp.SetPipeline(p.pipeline)
	for i := range draws {
		d := &draws[i]
		if d.IndexCount == 0 {
			continue
		}
		rp.SetBindGroup(0, d.ColorBindGroup, nil)
		rp.SetBindGroup(1, d.MaskBindGroup, nil)
		rp.SetVertexBuffer(0, d.VertexBuf, 0)
		rp.SetIndexBuffer(d.IndexBuf, gputypes.IndexFormatUint16, 0)
		rp.DrawIndexed(d.IndexCount, 1, 0, 0, 0)
	}
}

// Destroy releases all pipeline resources in reverse creation order.
// Safe to call multiple times.
func (p *MaskPipeline) Destroy() {
	if p.device == nil {
		return
	}
	if p.pipeline != nil {
		p.device.DestroyRenderPipeline(p.pipeline)
		p.pipeline = nil
	}
	if p.pipeLayout != nil {
		p.device.DestroyPipelineLayout(p.pipeLayout)
		p.pipeLayout = nil
	}
	if p.shader != nil {
		p.device.DestroyShaderModule(p.shader)
		p.shader = nil
	}
}
