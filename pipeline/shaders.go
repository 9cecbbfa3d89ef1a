// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package pipeline provides the GPU render pipelines for 2D visual
// primitives: textured quads, rounded boxes with layered effects,
// alpha-masked composites, transformed path fills and glyph text.
//
// Each pipeline wraps one embedded WGSL shader and the hal objects
// built from it. Pipelines hold no per-frame state: the host packs
// vertex and instance data with the builders in this package, uploads
// buffers, and records draws into its own render pass.
package pipeline

import _ "embed"

// Embedded WGSL shader sources, compiled at build time via go:embed.

//go:embed shaders/primitive.wgsl
var primitiveShaderSource string

//go:embed shaders/box.wgsl
var boxShaderSource string

//go:embed shaders/mask.wgsl
var maskShaderSource string

//go:embed shaders/path.wgsl
var pathShaderSource string

//go:embed shaders/text.wgsl
var textShaderSource string

// GetPrimitiveShaderSource returns the WGSL source for the textured
// quad shader.
func GetPrimitiveShaderSource() string {
	return primitiveShaderSource
}

// GetBoxShaderSource returns the WGSL source for the rounded box
// shader.
func GetBoxShaderSource() string {
	return boxShaderSource
}

// GetMaskShaderSource returns the WGSL source for the alpha mask
// shader.
func GetMaskShaderSource() string {
	return maskShaderSource
}

// GetPathShaderSource returns the WGSL source for the path fill
// shader.
func GetPathShaderSource() string {
	return pathShaderSource
}

// GetTextShaderSource returns the WGSL source for the glyph text
// shader.
func GetTextShaderSource() string {
	return textShaderSource
}
