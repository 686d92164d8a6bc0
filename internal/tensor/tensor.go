package tensor

import (
	"fmt"

	"github.com/pkg/errors"
)

// Tensor is a graph node holding a value buffer and a gradient buffer of equal length.
//
// Passing a tensor into an operation constructor hands it to that operation:
// afterwards only operations write its buffers (Forward writes output values,
// Backward accumulates input gradients). A tensor may feed several operations,
// in which case its gradient sums the contributions of all of them.
//
// Example:
//
//	g := tensor.NewGraph()
//	a, _ := tensor.FromSlice(g, []float32{1, 2, 3})
//	b, _ := tensor.FromSlice(g, []float32{10, 20, 30})
type Tensor[T Numeric] struct {
	value []T
	grad  []T
	graph *Graph
	name  string
}

// FromSlice creates a tensor on g seeded with a copy of data and a zero gradient.
func FromSlice[T Numeric](g *Graph, data []T) (*Tensor[T], error) {
	if g == nil {
		return nil, errors.Wrap(ErrNilGraph, "tensor.FromSlice")
	}
	value := make([]T, len(data))
	copy(value, data)
	return &Tensor[T]{
		value: value,
		grad:  make([]T, len(data)),
		graph: g,
	}, nil
}

// Zeros creates a tensor on g with n zero values and a zero gradient.
func Zeros[T Numeric](g *Graph, n int) (*Tensor[T], error) {
	if g == nil {
		return nil, errors.Wrap(ErrNilGraph, "tensor.Zeros")
	}
	if n < 0 {
		return nil, errors.Wrapf(ErrShapeMismatch, "tensor.Zeros: negative length %d", n)
	}
	return &Tensor[T]{
		value: make([]T, n),
		grad:  make([]T, n),
		graph: g,
	}, nil
}

// Full creates a tensor on g with n copies of v and a zero gradient.
func Full[T Numeric](g *Graph, n int, v T) (*Tensor[T], error) {
	t, err := Zeros[T](g, n)
	if err != nil {
		return nil, err
	}
	for i := range t.value {
		t.value[i] = v
	}
	return t, nil
}

// Graph returns the graph the tensor is bound to.
func (t *Tensor[T]) Graph() *Graph {
	return t.graph
}

// Len returns the number of elements.
func (t *Tensor[T]) Len() int {
	return len(t.value)
}

// Bytes returns the memory held by the value and grad buffers.
func (t *Tensor[T]) Bytes() uint64 {
	return uint64(2 * len(t.value) * elemSize[T]())
}

// Name returns the debug name, possibly empty.
func (t *Tensor[T]) Name() string {
	return t.name
}

// WithName sets a debug name and returns t.
func (t *Tensor[T]) WithName(name string) *Tensor[T] {
	t.name = name
	return t
}

// Value returns a copy of the value buffer.
func (t *Tensor[T]) Value() []T {
	out := make([]T, len(t.value))
	copy(out, t.value)
	return out
}

// Grad returns a copy of the gradient buffer.
func (t *Tensor[T]) Grad() []T {
	out := make([]T, len(t.grad))
	copy(out, t.grad)
	return out
}

// At returns value[i].
func (t *Tensor[T]) At(i int) T {
	return t.value[i]
}

// GradAt returns grad[i].
func (t *Tensor[T]) GradAt(i int) T {
	return t.grad[i]
}

// Data returns the live value buffer.
// Reserved for operation kernels; other code should use Value.
func (t *Tensor[T]) Data() []T {
	return t.value
}

// GradData returns the live gradient buffer.
// Reserved for operation kernels; other code should use Grad.
func (t *Tensor[T]) GradData() []T {
	return t.grad
}

// SeedGrad overwrites the gradient with values, typically before a backward pass.
func (t *Tensor[T]) SeedGrad(values []T) error {
	if len(values) != len(t.grad) {
		return errors.Wrapf(ErrShapeMismatch, "SeedGrad: got %d values for tensor of length %d", len(values), len(t.grad))
	}
	copy(t.grad, values)
	return nil
}

// FillGrad sets every gradient element to v. FillGrad(1) seeds a sum-like loss.
func (t *Tensor[T]) FillGrad(v T) {
	for i := range t.grad {
		t.grad[i] = v
	}
}

// ZeroGrad resets the gradient to zeros.
func (t *Tensor[T]) ZeroGrad() {
	clear(t.grad)
}

// String implements fmt.Stringer.
func (t *Tensor[T]) String() string {
	name := t.name
	if name == "" {
		name = "tensor"
	}
	return fmt.Sprintf("%s[%s, len=%d](value=%v, grad=%v)", name, dtypeName[T](), len(t.value), t.value, t.grad)
}
