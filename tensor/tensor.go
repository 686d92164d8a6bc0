// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the public API for graph-bound tensors.
//
// The package defines:
//   - Tensor[T]: value and gradient buffers bound to one Graph
//   - Graph: append-only log of recorded operations, compared by identity
//   - Operation, Node: the capabilities a Graph records and tracks
//
// Example:
//
//	g := tensor.NewGraph()
//	a, _ := tensor.FromSlice(g, []float32{1, 2, 3})
//	b, _ := tensor.Zeros[float32](g, 3)
package tensor

import (
	"github.com/born-ml/gradgraph/internal/parallel"
	"github.com/born-ml/gradgraph/internal/tensor"
)

// Numeric is a constraint for tensor element types: any Go integer or float.
type Numeric = tensor.Numeric

// Tensor holds a value buffer and a gradient buffer of equal length, bound to a Graph.
type Tensor[T Numeric] = tensor.Tensor[T]

// Graph is the append-only log of operations for one computation session.
type Graph = tensor.Graph

// GraphConfig configures a Graph.
type GraphConfig = tensor.GraphConfig

// ParallelConfig controls how operation kernels are split across goroutines.
type ParallelConfig = parallel.Config

// Operation is a differentiable computation recorded in a Graph.
type Operation = tensor.Operation

// Node is the type-erased view of a Tensor used by Graph.
type Node = tensor.Node

// Errors returned when building tensors and operations.
var (
	ErrGraphMismatch = tensor.ErrGraphMismatch
	ErrShapeMismatch = tensor.ErrShapeMismatch
	ErrNilGraph      = tensor.ErrNilGraph
	ErrNilTensor     = tensor.ErrNilTensor
)

// NewGraph creates an empty graph with sequential kernels.
func NewGraph() *Graph {
	return tensor.NewGraph()
}

// NewGraphWithConfig creates an empty graph with the given config.
func NewGraphWithConfig(cfg GraphConfig) *Graph {
	return tensor.NewGraphWithConfig(cfg)
}

// DefaultGraphConfig returns an unnamed config with sequential kernels.
func DefaultGraphConfig() GraphConfig {
	return tensor.DefaultGraphConfig()
}

// ParallelKernels returns a ParallelConfig using one worker per CPU.
func ParallelKernels() ParallelConfig {
	return parallel.DefaultConfig()
}

// FromSlice creates a tensor on g seeded with a copy of data.
func FromSlice[T Numeric](g *Graph, data []T) (*Tensor[T], error) {
	return tensor.FromSlice(g, data)
}

// Zeros creates a tensor on g with n zeros.
func Zeros[T Numeric](g *Graph, n int) (*Tensor[T], error) {
	return tensor.Zeros[T](g, n)
}

// Full creates a tensor on g with n copies of v.
func Full[T Numeric](g *Graph, n int, v T) (*Tensor[T], error) {
	return tensor.Full(g, n, v)
}
