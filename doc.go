// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package visual provides stateless GPU render pipelines for 2D visual
// primitives: textured quads, anti-aliased rounded boxes with border, glow
// and shadow layers, alpha-masked composites, transformed path fills, and
// glyph-coverage text.
//
// # Overview
//
// The package is split in two layers:
//
//   - The root package holds the data model (colors, rectangles, wrap
//     modes, box styles) and a pure-Go reference implementation of every
//     fragment shader's per-pixel math. Nothing here touches the GPU, so
//     the exact numeric behavior is unit-testable anywhere.
//   - Package pipeline builds the five render pipelines on
//     github.com/gogpu/wgpu/hal: shader modules from embedded WGSL,
//     bind group and pipeline layouts, vertex/instance buffer packing,
//     and render pass recording.
//
// # Quick Start
//
//	import (
//		"github.com/gogpu/visual"
//		"github.com/gogpu/visual/pipeline"
//	)
//
//	// Acquire a device (or share one via pipeline.FromProvider).
//	gpu, err := pipeline.NewGPU()
//	if err != nil { ... }
//	defer gpu.Destroy()
//
//	// Shared texture plumbing: bind group layout, default sampler,
//	// white fallback texture.
//	textures, err := pipeline.NewTextures(gpu.Device(), gpu.Queue())
//	if err != nil { ... }
//	defer textures.Destroy()
//
//	// Build the box pipeline once.
//	boxes, err := pipeline.NewBoxPipeline(gpu.Device(), textures, pipeline.DefaultConfig())
//	if err != nil { ... }
//	defer boxes.Destroy()
//
//	// Per frame: pack vertices and instances with the pipeline package
//	// helpers, then record draws into a render pass.
//
// # Coordinate Spaces
//
// Vertex positions arrive already projected into clip space. Rectangles,
// rect coordinates and shadow offsets share one local pixel space per draw
// call; texture rectangles and texture coordinates are normalized to the
// bound texture. The pipelines never apply a camera transform.
//
// # Per-Pixel Model
//
// Every pipeline is a pure function from interpolated vertex/instance
// attributes and immutable texture bindings to an output color. There is
// no state between invocations and no error channel; defensive arithmetic
// (guarded divisions, opaque-white fallback samples) stands in for runtime
// validation.
package visual
