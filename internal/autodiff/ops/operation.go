// Package ops implements the differentiable operations recorded in a tensor.Graph.
//
// Each operation satisfies tensor.Operation:
//   - Constructor: checks its inputs, allocates a zero output on the same graph
//     and registers itself. Nothing is registered when a check fails.
//   - Forward: recomputes the output value from the input values.
//   - Backward: accumulates the output gradient into the input gradients.
//
// Supported operations:
//   - AddOp: element-wise addition (d(a+b)/da = 1, d(a+b)/db = 1)
package ops

import (
	"github.com/pkg/errors"

	"github.com/born-ml/gradgraph/internal/tensor"
)

// checkBinary validates the inputs of an element-wise binary operation.
func checkBinary[T tensor.Numeric](name string, a, b *tensor.Tensor[T]) error {
	if a == nil || b == nil {
		return errors.Wrapf(tensor.ErrNilTensor, "%s", name)
	}
	if a.Graph() == nil {
		return errors.Wrapf(tensor.ErrNilGraph, "%s", name)
	}
	if !a.Graph().Same(b.Graph()) {
		return errors.Wrapf(tensor.ErrGraphMismatch, "%s: %s and %s", name, a.Graph(), b.Graph())
	}
	if a.Len() != b.Len() {
		return errors.Wrapf(tensor.ErrShapeMismatch, "%s: lengths %d and %d", name, a.Len(), b.Len())
	}
	return nil
}
