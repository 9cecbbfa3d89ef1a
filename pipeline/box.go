// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu

package pipeline

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// boxVertexLayout returns the two-buffer layout for the box pipeline:
// per-corner vertex data plus the per-draw instance block. Matches
// VertexInput and InstanceInput in box.wgsl.
func boxVertexLayout() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: BoxVertexStride,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},  // position
				{Format: gputypes.VertexFormatFloat32x4, Offset: 12, ShaderLocation: 1}, // fill_color
				{Format: gputypes.VertexFormatFloat32x4, Offset: 28, ShaderLocation: 2}, // border_color
				{Format: gputypes.VertexFormatFloat32x2, Offset: 44, ShaderLocation: 3}, // rect_coord
				{Format: gputypes.VertexFormatFloat32x2, Offset: 52, ShaderLocation: 4}, // texture_coord
			},
		},
		{
			ArrayStride: BoxInstanceStride,
			StepMode:    gputypes.VertexStepModeInstance,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x4, Offset: 0, ShaderLocation: 5},   // rect
				{Format: gputypes.VertexFormatFloat32x4, Offset: 16, ShaderLocation: 6},  // texture_rect
				{Format: gputypes.VertexFormatUint32x2, Offset: 32, ShaderLocation: 7},   // texture_wrap_mode
				{Format: gputypes.VertexFormatFloat32x4, Offset: 40, ShaderLocation: 8},  // border_radius
				{Format: gputypes.VertexFormatFloat32, Offset: 56, ShaderLocation: 9},    // border_thickness
				{Format: gputypes.VertexFormatFloat32, Offset: 60, ShaderLocation: 10},   // glow_radius
				{Format: gputypes.VertexFormatFloat32x4, Offset: 64, ShaderLocation: 11}, // glow_color
				{Format: gputypes.VertexFormatFloat32x2, Offset: 80, ShaderLocation: 12}, // shadow_offset
				{Format: gputypes.VertexFormatFloat32, Offset: 88, ShaderLocation: 13},   // shadow_radius
				{Format: gputypes.VertexFormatFloat32x4, Offset: 92, ShaderLocation: 14}, // shadow_color
			},
		},
	}
}

// BoxPipeline draws rounded boxes with shadow, glow, border and fill
// layers evaluated from a signed distance field in the fragment stage.
type BoxPipeline struct {
	device hal.Device

	shader     hal.ShaderModule
	pipeLayout hal.PipelineLayout
	pipeline   hal.RenderPipeline
}

// NewBoxPipeline compiles the box shader and creates the render
// pipeline with alpha blending.
func NewBoxPipeline(device hal.Device, textures *Textures, cfg Config) (*BoxPipeline, error) {
	p := &BoxPipeline{device: device}
	if err := p.createPipeline(textures, cfg); err != nil {
		p.Destroy()
		return nil, err
	}
	return p, nil
}

func (p *BoxPipeline) createPipeline(textures *Textures, cfg Config) error {
	if boxShaderSource == "" {
		return fmt.Errorf("box shader source is empty")
	}

	shader, err := p.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "visual_box_shader",
		Source: hal.ShaderSource{WGSL: boxShaderSource},
	})
	if err != nil {
		return fmt.Errorf("compile box shader: %w", err)
	}
	p.shader = shader

	pipeLayout, err := p.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "visual_box_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{textures.Layout()},
	})
	if err != nil {
		return fmt.Errorf("create box pipeline layout: %w", err)
	}
	p.pipeLayout = pipeLayout

	pipeline, err := p.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  "visual_box_pipeline",
		Layout: p.pipeLayout,
		Vertex: hal.VertexState{
			Module:     p.shader,
			EntryPoint: "vs_main",
			Buffers:    boxVertexLayout(),
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
		return fmt.Errorf("create box pipeline: %w", err)
	}
	p.pipeline = pipeline

	return nil
}

// BoxDraw holds the per-draw resources for one box.
type BoxDraw struct {
	// BindGroup binds the fill texture and sampler. Bind the white
	// fallback for untextured boxes.
	BindGroup hal.BindGroup

	VertexBuf   hal.Buffer
	InstanceBuf hal.Buffer
	IndexBuf    hal.Buffer

	// IndexCount is 6 for a single quad or 12 when the shadow quad is
	// separate; see BoxQuadIndices.
	IndexCount uint32
}

// RecordDraws records the draws into an existing render pass. The
// render pass is owned by the caller.
func (p *BoxPipeline) RecordDraws(rp hal.RenderPassEncoder, draws []BoxDraw) {
	if len(draws) == 0 {
		return
	}
	rp.SetPipeline(p.pipeline)
	for i := range draws {
		d := &draws[i]
		if d.IndexCount == 0 {
			continue
		}
		rp.SetBindGroup(0, d.BindGroup, nil)
		rp.SetVertexBuffer(0, d.VertexBuf, 0)
		rp.SetVertexBuffer(1, d.InstanceBuf, 0)
		rp.SetIndexBuffer(d.IndexBuf, gputypes.IndexFormatUint16, 0)
		rp.DrawIndexed(d.IndexCount, 1, 0, 0, 0)
	}
}

// Destroy releases all pipeline resources in reverse creation order.
// Safe to call multiple times.
func (p *BoxPipeline) Destroy() {
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
