// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu

package pipeline

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// pathVertexLayout returns the two-buffer layout for the path
// pipeline: triangulated vertices plus the per-instance placement
// matrix as four column attributes. Matches path.wgsl.
func pathVertexLayout() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: PathVertexStride,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},  // position
				{Format: gputypes.VertexFormatFloat32x4, Offset: 12, ShaderLocation: 1}, // color
			},
		},
		{
			ArrayStride: PathInstanceStride,
			StepMode:    gputypes.VertexStepModeInstance,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x4, Offset: 0, ShaderLocation: 2},  // matrix_0
				{Format: gputypes.VertexFormatFloat32x4, Offset: 16, ShaderLocation: 3}, // matrix_1
				{Format: gputypes.VertexFormatFloat32x4, Offset: 32, ShaderLocation: 4}, // matrix_2
				{Format: gputypes.VertexFormatFloat32x4, Offset: 48, ShaderLocation: 5}, // matrix_3
			},
		},
	}
}

// PathPipeline draws pre-triangulated path fills placed by a
// per-instance transform. No textures are bound; the color comes from
// the vertices alone.
type PathPipeline struct {
	device hal.Device

	shader     hal.ShaderModule
	pipeLayout hal.PipelineLayout
	pipeline   hal.RenderPipeline
}

// NewPathPipeline compiles the path shader and creates the render
// pipeline.
func NewPathPipeline(device hal.Device, cfg Config) (*PathPipeline, error) {
	p := &PathPipeline{device: device}
	if err := p.createPipeline(cfg); err != nil {
		p.Destroy()
		return nil, err
	}
	return p, nil
}

func (p *PathPipeline) createPipeline(cfg Config) error {
	if pathShaderSource == "" {
		return fmt.Errorf("path shader source is empty")
	}

	shader, err := p.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "visual_path_shader",
		Source: hal.ShaderSource{WGSL: pathShaderSource},
	})
	if err != nil {
		return fmt.Errorf("compile path shader: %w", err)
	}
	p.shader = shader

	pipeLayout, err := p.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "visual_path_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{},
	})
	if err != nil {
		return fmt.Errorf("create path pipeline layout: %w", err)
	}
	p.pipeLayout = pipeLayout

	pipeline, err := p.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  "visual_path_pipeline",
		Layout: p.pipeLayout,
		Vertex: hal.VertexState{
			Module:     p.shader,
			EntryPoint: "vs_main",
			Buffers:    pathVertexLayout(),
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
		return fmt.Errorf("create path pipeline: %w", err)
	}
	p.pipeline = pipeline

	return nil
}

// PathDraw holds the per-draw resources for one path fill.
type PathDraw struct {
	VertexBuf   hal.Buffer
	InstanceBuf hal.Buffer
	IndexBuf    hal.Buffer
	IndexCount  uint32
}

// RecordDraws records the draws into an existing render pass. The
// render pass is owned by the caller.
func (p *PathPipeline) RecordDraws(rp hal.RenderPassEncoder, draws []PathDraw) {
	if len(draws) == 0 {
		return
	}
	rp.SetPipeline(p.pipeline)
	for i := range draws {
		d := &draws[i]
		if d.IndexCount == 0 {
			continue
		}
		rp.SetVertexBuffer(0, d.VertexBuf, 0)
		rp.SetVertexBuffer(1, d.InstanceBuf, 0)
		rp.SetIndexBuffer(d.IndexBuf, gputypes.IndexFormatUint16, 0)
		rp.DrawIndexed(d.IndexCount, 1, 0, 0, 0)
	}
}

// Destroy releases all pipeline resources in reverse creation order.
// Safe to call multiple times.
func (p *PathPipeline) Destroy() {
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
