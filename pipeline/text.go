// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu

package pipeline

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// TextConfig holds configuration for the text pipeline.
type TextConfig struct {
	// InitialGlyphCapacity is the initial vertex buffer capacity in
	// glyphs. Default: 256.
	InitialGlyphCapacity int

	// MaxGlyphCapacity is the maximum number of glyphs per draw call.
	// Longer batches are truncated. Default: 16384.
	MaxGlyphCapacity int
}

// DefaultTextConfig returns default configuration.
func DefaultTextConfig() TextConfig {
	return TextConfig{
		InitialGlyphCapacity: 256,
		MaxGlyphCapacity:     16384,
	}
}

// textVertexLayout returns the vertex buffer layout for the text
// pipeline. Matches VertexInput in text.wgsl.
func textVertexLayout() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: TextVertexStride,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},  // position
				{Format: gputypes.VertexFormatFloat32x4, Offset: 12, ShaderLocation: 1}, // color
				{Format: gputypes.VertexFormatFloat32x2, Offset: 28, ShaderLocation: 2}, // texture_coord
			},
		},
	}
}

// TextPipeline draws glyph runs as non-indexed triangles, scaling the
// vertex color alpha by the coverage stored in the atlas texture's red
// channel. It owns a reusable vertex buffer that grows with batch size
// up to MaxGlyphCapacity.
type TextPipeline struct {
	device hal.Device
	queue  hal.Queue
	config TextConfig

	shader     hal.ShaderModule
	pipeLayout hal.PipelineLayout
	pipeline   hal.RenderPipeline

	vertBuf  hal.Buffer
	capacity int // glyphs the vertex buffer can hold
}

// NewTextPipeline compiles the text shader and creates the render
// pipeline. Zero config fields fall back to DefaultTextConfig values.
// The vertex buffer is allocated on first upload.
func NewTextPipeline(device hal.Device, queue hal.Queue, textures *Textures, config TextConfig, cfg Config) (*TextPipeline, error) {
	if config.InitialGlyphCapacity <= 0 {
		config.InitialGlyphCapacity = DefaultTextConfig().InitialGlyphCapacity
	}
	if config.MaxGlyphCapacity <= 0 {
		config.MaxGlyphCapacity = DefaultTextConfig().MaxGlyphCapacity
	}

	p := &TextPipeline{device: device, queue: queue, config: config}
	if err := p.createPipeline(textures, cfg); err != nil {
		p.Destroy()
		return nil, err
	}
	return p, nil
}

func (p *TextPipeline) createPipeline(textures *Textures, cfg Config) error {
	if textShaderSource == "" {
		return fmt.Errorf("text shader source is empty")
	}

	shader, err := p.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "visual_text_shader",
		Source: hal.ShaderSource{WGSL: textShaderSource},
	})
	if err != nil {
		return fmt.Errorf("compile text shader: %w", err)
	}
	p.shader = shader

	pipeLayout, err := p.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "visual_text_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{textures.Layout()},
	})
	if err != nil {
		return fmt.Errorf("create text pipeline layout: %w", err)
	}
	p.pipeLayout = pipeLayout

	pipeline, err := p.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  "visual_text_pipeline",
		Layout: p.pipeLayout,
		Vertex: hal.VertexState{
			Module:     p.shader,
			EntryPoint: "vs_main",
			Buffers:    textVertexLayout(),
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
		return fmt.Errorf("create text pipeline: %w", err)
	}
	p.pipeline = pipeline

	return nil
}

// ensureCapacity grows the vertex buffer geometrically until it holds
// glyphs, clamped to MaxGlyphCapacity.
func (p *TextPipeline) ensureCapacity(glyphs int) error {
	if p.vertBuf != nil && glyphs <= p.capacity {
		return nil
	}
	capacity := p.capacity
	if capacity == 0 {
		capacity = p.config.InitialGlyphCapacity
	}
	for capacity < glyphs {
		capacity *= 2
	}
	if capacity > p.config.MaxGlyphCapacity {
		capacity = p.config.MaxGlyphCapacity
	}

	if p.vertBuf != nil {
		p.device.DestroyBuffer(p.vertBuf)
		p.vertBuf = nil
		p.capacity = 0
	}
	buf, err := p.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "visual_text_verts",
		Size:  uint64(capacity * 6 * TextVertexStride),
		Usage: gputypes.BufferUsageVertex | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("create text vertex buffer: %w", err)
	}
	p.vertBuf = buf
	p.capacity = capacity

	slogger().Debug("text vertex buffer resized", "glyphs", capacity)
	return nil
}

// TextDraw holds the per-draw resources for one glyph batch.
type TextDraw struct {
	// BindGroup binds the coverage atlas and its sampler.
	BindGroup hal.BindGroup

	VertexBuf   hal.Buffer
	VertexCount uint32
}

// UploadGlyphs packs glyph vertices into the pipeline's reusable
// vertex buffer and returns the draw with the buffer and count filled
// in. The caller sets the atlas BindGroup. Batches beyond
// MaxGlyphCapacity glyphs are truncated. The buffer is reused across
// calls, so record and submit each batch before uploading the next.
func (p *TextPipeline) UploadGlyphs(verts []TextVertex) (TextDraw, error) {
	glyphs := len(verts) / 6
	if glyphs > p.config.MaxGlyphCapacity {
		slogger().Warn("glyph batch truncated", "glyphs", glyphs, "max", p.config.MaxGlyphCapacity)
		glyphs = p.config.MaxGlyphCapacity
	}
	if glyphs == 0 {
		return TextDraw{}, nil
	}
	verts = verts[:glyphs*6]
	if err := p.ensureCapacity(glyphs); err != nil {
		return TextDraw{}, err
	}

	p.queue.WriteBuffer(p.vertBuf, 0, BuildTextVertexData(verts))
	return TextDraw{
		VertexBuf:   p.vertBuf,
		VertexCount: uint32(len(verts)),
	}, nil
}

// RecordDraws records the draws into an existing render pass. The
// render pass is owned by the caller.
func (p *TextPipeline) RecordDraws(rp hal.RenderPassEncoder, draws []TextDraw) {
	if len(draws) == 0 {
		return
	}
	rp.SetPipeline(p.pipeline)
	for i := range draws {
		d := &draws[i]
		if d.VertexCount == 0 {
			continue
		}
		rp.SetBindGroup(0, d.BindGroup, nil)
		rp.SetVertexBuffer(0, d.VertexBuf, 0)
		rp.Draw(d.VertexCount, 1, 0, 0)
	}
}

// Destroy releases all pipeline resources in reverse creation order.
// Safe to call multiple times.
func (p *TextPipeline) Destroy() {
	if p.device == nil {
		return
	}
	if p.vertBuf != nil {
		p.device.DestroyBuffer(p.vertBuf)
		p.vertBuf = nil
		p.capacity = 0
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
