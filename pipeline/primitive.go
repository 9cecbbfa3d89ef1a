// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu

package pipeline

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// PrimitiveVariant selects how the primitive fragment stage maps and
// bounds texture coordinates.
type PrimitiveVariant int

const (
	// PrimitiveDirect samples the texture at the interpolated
	// coordinate unchanged.
	PrimitiveDirect PrimitiveVariant = iota

	// PrimitiveBounded substitutes opaque white outside the unit
	// texture rectangle, so quads can over-extend their texture.
	PrimitiveBounded

	// PrimitiveSubRect remaps coordinates into the instance's atlas
	// sub-rectangle. No bounds handling: coordinates outside the unit
	// rectangle read neighboring atlas content.
	PrimitiveSubRect

	// PrimitiveWrap wraps the coordinate per axis, remaps it into the
	// sub-rectangle and substitutes opaque white outside it.
	PrimitiveWrap
)

func (v PrimitiveVariant) String() string {
	switch v {
	case PrimitiveDirect:
		return "direct"
	case PrimitiveBounded:
		return "bounded"
	case PrimitiveSubRect:
		return "subrect"
	case PrimitiveWrap:
		return "wrap"
	}
	return fmt.Sprintf("PrimitiveVariant(%d)", int(v))
}

// instanced reports whether the variant reads the per-call instance
// attributes.
func (v PrimitiveVariant) instanced() bool {
	return v == PrimitiveSubRect || v == PrimitiveWrap
}

func (v PrimitiveVariant) vertexEntry() string {
	if v.instanced() {
		return "vs_rect_main"
	}
	return "vs_main"
}

func (v PrimitiveVariant) fragmentEntry() string {
	switch v {
	case PrimitiveBounded:
		return "fs_bounds_main"
	case PrimitiveSubRect:
		return "fs_rect_main"
	case PrimitiveWrap:
		return "fs_wrap_main"
	default:
		return "fs_main"
	}
}

// primitiveVertexLayout returns the vertex buffer layout for one
// primitive variant. Matches VertexInput (and InstanceInput for the
// instanced variants) in primitive.wgsl.
func primitiveVertexLayout(instanced bool) []gputypes.VertexBufferLayout {
	layout := []gputypes.VertexBufferLayout{
		{
			ArrayStride: PrimitiveVertexStride,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},  // position
				{Format: gputypes.VertexFormatFloat32x4, Offset: 12, ShaderLocation: 1}, // color
				{Format: gputypes.VertexFormatFloat32x2, Offset: 28, ShaderLocation: 2}, // texture_coord
			},
		},
	}
	if instanced {
		layout = append(layout, gputypes.VertexBufferLayout{
			ArrayStride: PrimitiveInstanceStride,
			StepMode:    gputypes.VertexStepModeInstance,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x4, Offset: 0, ShaderLocation: 3}, // texture_rect
				{Format: gputypes.VertexFormatUint32x2, Offset: 16, ShaderLocation: 4}, // wrap_mode
			},
		})
	}
	return layout
}

// PrimitivePipeline draws textured quads. Each variant compiles into
// two render pipelines sharing the shader module and layout: a blended
// one for translucent content and an unblended depth-writing one for
// content known to be opaque.
type PrimitivePipeline struct {
	device hal.Device

	variant PrimitiveVariant

	shader      hal.ShaderModule
	pipeLayout  hal.PipelineLayout
	transparent hal.RenderPipeline
	opaque      hal.RenderPipeline
}

// NewPrimitivePipeline compiles the primitive shader and creates both
// render pipelines for the variant.
func NewPrimitivePipeline(device hal.Device, textures *Textures, variant PrimitiveVariant, cfg Config) (*PrimitivePipeline, error) {
	p := &PrimitivePipeline{device: device, variant: variant}
	if err := p.createPipeline(textures, cfg); err != nil {
		p.Destroy()
		return nil, err
	}
	return p, nil
}

func (p *PrimitivePipeline) createPipeline(textures *Textures, cfg Config) error {
	if primitiveShaderSource == "" {
		return fmt.Errorf("primitive shader source is empty")
	}

	shader, err := p.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "visual_primitive_shader",
		Source: hal.ShaderSource{WGSL: primitiveShaderSource},
	})
	if err != nil {
		return fmt.Errorf("compile primitive shader: %w", err)
	}
	p.shader = shader

	pipeLayout, err := p.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "visual_primitive_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{textures.Layout()},
	})
	if err != nil {
		return fmt.Errorf("create primitive pipeline layout: %w", err)
	}
	p.pipeLayout = pipeLayout

	buffers := primitiveVertexLayout(p.variant.instanced())

	transparent, err := p.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  fmt.Sprintf("visual_primitive_%s_pipeline", p.variant),
		Layout: p.pipeLayout,
		Vertex: hal.VertexState{
			Module:     p.shader,
			EntryPoint: p.variant.vertexEntry(),
			Buffers:    buffers,
		},
		Fragment: &hal.FragmentState{
			Module:     p.shader,
			EntryPoint: p.variant.fragmentEntry(),
			Targets:    cfg.colorTargets(),
		},
		DepthStencil: cfg.depthStencil(),
		Primitive:    cfg.primitiveState(),
		Multisample:  cfg.multisample(),
	})
	if err != nil {
		return fmt.Errorf("create primitive pipeline: %w", err)
	}
	p.transparent = transparent

	opaque, err := p.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  fmt.Sprintf("visual_primitive_%s_opaque_pipeline", p.variant),
		Layout: p.pipeLayout,
		Vertex: hal.VertexState{
			Module:     p.shader,
			EntryPoint: p.variant.vertexEntry(),
			Buffers:    buffers,
		},
		Fragment: &hal.FragmentState{
			Module:     p.shader,
			EntryPoint: p.variant.fragmentEntry(),
			Targets:    cfg.opaqueColorTargets(),
		},
		DepthStencil: cfg.opaqueDepthStencil(),
		Primitive:    cfg.primitiveState(),
		Multisample:  cfg.multisample(),
	})
	if err != nil {
		return fmt.Errorf("create opaque primitive pipeline: %w", err)
	}
	p.opaque = opaque

	return nil
}

// Variant returns the texture mapping variant the pipeline compiles.
func (p *PrimitivePipeline) Variant() PrimitiveVariant { return p.variant }

// PrimitiveDraw holds the per-draw resources for one quad batch.
type PrimitiveDraw struct {
	// BindGroup binds the texture and sampler. Bind the white fallback
	// for untextured quads.
	BindGroup hal.BindGroup

	VertexBuf hal.Buffer

	// InstanceBuf carries the instance attributes. Required by the
	// instanced variants, ignored otherwise.
	InstanceBuf hal.Buffer

	IndexBuf   hal.Buffer
	IndexCount uint32

	// Opaque selects the unblended depth-writing pipeline.
	Opaque bool
}

// RecordDraws records the draws into an existing render pass. The
// render pass is owned by the caller.
func (p *PrimitivePipeline) RecordDraws(rp hal.RenderPassEncoder, draws []PrimitiveDraw) {
	for i := range draws {
		d := &draws[i]
		if d.IndexCount == 0 {
			continue
		}
		pipe := p.transparent
		if d.Opaque {
			pipe = p.opaque
		}
		rp.SetPipeline(pipe)
		rp.SetBindGroup(0, d.BindGroup, nil)
		rp.SetVertexBuffer(0, d.VertexBuf, 0)
		if p.variant.instanced() {
			rp.SetVertexBuffer(1, d.InstanceBuf, 0)
		}
		rp.SetIndexBuffer(d.IndexBuf, gputypes.IndexFormatUint16, 0)
		rp.DrawIndexed(d.IndexCount, 1, 0, 0, 0)
	}
}

// Destroy releases all pipeline resources in reverse creation order.
// Safe to call multiple times.
func (p *PrimitivePipeline) Destroy() {
	if p.device == nil {
		return
	}
	if p.opaque != nil {
		p.device.DestroyRenderPipeline(p.opaque)
		p.opaque = nil
	}
	if p.transparent != nil {
		p.device.DestroyRenderPipeline(p.transparent)
		p.transparent = nil
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
