package ops

import (
	"github.com/janpfeifer/must"

	"github.com/born-ml/gradgraph/internal/parallel"
	"github.com/born-ml/gradgraph/internal/tensor"
)

// AddOp represents an element-wise addition operation: output = a + b.
//
// Backward pass:
//   - d(a+b)/da = 1, so grad_a += outputGrad
//   - d(a+b)/db = 1, so grad_b += outputGrad
type AddOp[T tensor.Numeric] struct {
	a, b   *tensor.Tensor[T]
	output *tensor.Tensor[T]
	cfg    parallel.Config
}

// NewAddOp checks a and b, allocates a zero output on their graph and
// registers the operation. a and b must share a graph and have equal length.
func NewAddOp[T tensor.Numeric](a, b *tensor.Tensor[T]) (*AddOp[T], error) {
	if err := checkBinary("Add", a, b); err != nil {
		return nil, err
	}
	g := a.Graph()
	output, err := tensor.Zeros[T](g, a.Len())
	if err != nil {
		return nil, err
	}
	op := &AddOp[T]{
		a:      a,
		b:      b,
		output: output,
		cfg:    g.Config().Parallel,
	}
	g.Register(op)
	return op, nil
}

// Forward computes output[i] = a[i] + b[i].
func (op *AddOp[T]) Forward() {
	a, b, out := op.a.Data(), op.b.Data(), op.output.Data()
	parallel.For(len(out), func(start, end int) {
		for i := start; i < end; i++ {
			out[i] = a[i] + b[i]
		}
	}, op.cfg)
}

// Backward adds the output gradient into both input gradients.
// When a and b are the same tensor it receives the gradient twice.
func (op *AddOp[T]) Backward() {
	gradA, gradB, gradOut := op.a.GradData(), op.b.GradData(), op.output.GradData()
	parallel.For(len(gradOut), func(start, end int) {
		for i := start; i < end; i++ {
			gradA[i] += gradOut[i]
			gradB[i] += gradOut[i]
		}
	}, op.cfg)
}

// Name returns "Add".
func (op *AddOp[T]) Name() string {
	return "Add"
}

// Inputs returns the input tensors [a, b].
func (op *AddOp[T]) Inputs() []tensor.Node {
	return []tensor.Node{op.a, op.b}
}

// Output returns the output tensor a + b.
func (op *AddOp[T]) Output() tensor.Node {
	return op.output
}

// A returns the first input.
func (op *AddOp[T]) A() *tensor.Tensor[T] { return op.a }

// B returns the second input.
func (op *AddOp[T]) B() *tensor.Tensor[T] { return op.b }

// Out returns the typed output tensor.
func (op *AddOp[T]) Out() *tensor.Tensor[T] { return op.output }

// Add records a + b and returns the output tensor.
// The output is zero until the graph's forward pass runs.
func Add[T tensor.Numeric](a, b *tensor.Tensor[T]) (*tensor.Tensor[T], error) {
	op, err := NewAddOp(a, b)
	if err != nil {
		return nil, err
	}
	return op.Out(), nil
}

// MustAdd is like Add but panics on error.
func MustAdd[T tensor.Numeric](a, b *tensor.Tensor[T]) *tensor.Tensor[T] {
	return must.M1(Add(a, b))
}
