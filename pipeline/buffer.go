// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu

package pipeline

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// createAndUploadBuffer creates a GPU buffer and uploads data.
func createAndUploadBuffer(device hal.Device, queue hal.Queue, label string, data []byte, usage gputypes.BufferUsage) (hal.Buffer, error) {
	buf, err := device.CreateBuffer(&hal.BufferDescriptor{
		Label: label,
		Size:  uint64(len(data)),
		Usage: usage,
	})
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", label, err)
	}
	queue.WriteBuffer(buf, 0, data)
	return buf, nil
}

// NewVertexBuffer uploads packed vertex or instance data into a vertex
// buffer. The caller owns the buffer.
func NewVertexBuffer(device hal.Device, queue hal.Queue, label string, data []byte) (hal.Buffer, error) {
	return createAndUploadBuffer(device, queue, label, data,
		gputypes.BufferUsageVertex|gputypes.BufferUsageCopyDst)
}

// NewIndexBuffer uploads uint16 indices into an index buffer. The
// caller owns the buffer.
func NewIndexBuffer(device hal.Device, queue hal.Queue, label string, indices []uint16) (hal.Buffer, error) {
	return createAndUploadBuffer(device, queue, label, BuildIndexData(indices),
		gputypes.BufferUsageIndex|gputypes.BufferUsageCopyDst)
}
