// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package autodiff provides operations and reverse-mode automatic differentiation
// over a tensor.Graph.
//
// Operations record themselves into the graph of their inputs. Forward replays
// the graph in insertion order; Backward propagates gradients from an output to
// everything it depends on.
//
// Example:
//
//	import (
//	    "github.com/born-ml/gradgraph/autodiff"
//	    "github.com/born-ml/gradgraph/tensor"
//	)
//
//	func main() {
//	    g := tensor.NewGraph()
//	    a, _ := tensor.FromSlice(g, []float32{1, 2, 3})
//	    b, _ := tensor.FromSlice(g, []float32{10, 20, 30})
//	    d := autodiff.MustAdd(autodiff.MustAdd(a, b), a)
//
//	    _ = autodiff.Forward(g)  // d = [12 24 36]
//	    _ = autodiff.Backward(d) // a.Grad() = [2 2 2], b.Grad() = [1 1 1]
//	}
package autodiff

import (
	"github.com/born-ml/gradgraph/internal/autodiff"
	"github.com/born-ml/gradgraph/internal/autodiff/ops"
	"github.com/born-ml/gradgraph/internal/tensor"
)

// AddOp is the recorded element-wise addition a + b.
type AddOp[T tensor.Numeric] = ops.AddOp[T]

// NewAddOp records a + b on the inputs' graph.
// Fails with ErrGraphMismatch or ErrShapeMismatch without registering anything.
func NewAddOp[T tensor.Numeric](a, b *tensor.Tensor[T]) (*AddOp[T], error) {
	return ops.NewAddOp(a, b)
}

// Add records a + b and returns its output tensor.
func Add[T tensor.Numeric](a, b *tensor.Tensor[T]) (*tensor.Tensor[T], error) {
	return ops.Add(a, b)
}

// MustAdd is like Add but panics on error.
func MustAdd[T tensor.Numeric](a, b *tensor.Tensor[T]) *tensor.Tensor[T] {
	return ops.MustAdd(a, b)
}

// Forward runs every recorded operation in insertion order.
func Forward(g *tensor.Graph) error {
	return autodiff.Forward(g)
}

// BackwardAll runs every recorded operation's Backward in reverse insertion order.
// The caller seeds the output gradient first.
func BackwardAll(g *tensor.Graph) error {
	return autodiff.BackwardAll(g)
}

// BackwardFrom propagates root's current gradient to everything root depends on.
func BackwardFrom(g *tensor.Graph, root tensor.Node) error {
	return autodiff.BackwardFrom(g, root)
}

// Backward seeds out's gradient with ones and propagates it.
func Backward[T tensor.Numeric](out *tensor.Tensor[T]) error {
	return autodiff.Backward(out)
}

// TopologicalOrder returns the operations root depends on, producers first.
func TopologicalOrder(g *tensor.Graph, root tensor.Node) ([]tensor.Operation, error) {
	return autodiff.TopologicalOrder(g, root)
}

// ZeroGrad resets the gradient of every tensor in g.
func ZeroGrad(g *tensor.Graph) error {
	return autodiff.ZeroGrad(g)
}
