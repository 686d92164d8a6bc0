package ops_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/gradgraph/internal/autodiff/ops"
	"github.com/born-ml/gradgraph/internal/parallel"
	"github.com/born-ml/gradgraph/internal/tensor"
)

func newPair(t *testing.T, g *tensor.Graph) (*tensor.Tensor[float32], *tensor.Tensor[float32]) {
	t.Helper()
	a, err := tensor.FromSlice(g, []float32{1, 2, 3})
	require.NoError(t, err)
	b, err := tensor.FromSlice(g, []float32{10, 20, 30})
	require.NoError(t, err)
	return a, b
}

func TestNewAddOp_Registers(t *testing.T) {
	g := tensor.NewGraph()
	a, b := newPair(t, g)

	op, err := ops.NewAddOp(a, b)
	require.NoError(t, err)

	require.Equal(t, 1, g.NumOps())
	assert.Same(t, op, g.Op(0))
	assert.Same(t, a, op.A())
	assert.Same(t, b, op.B())
	assert.True(t, op.Out().Graph().Same(g))
	assert.Equal(t, []float32{0, 0, 0}, op.Out().Value(), "output is zero until Forward")
	assert.Equal(t, []float32{0, 0, 0}, op.Out().Grad())
	assert.Equal(t, "Add", op.Name())
	assert.Equal(t, []tensor.Node{a, b}, op.Inputs())
	assert.Equal(t, tensor.Node(op.Out()), op.Output())
}

func TestAddOp_Forward(t *testing.T) {
	g := tensor.NewGraph()
	a, b := newPair(t, g)
	op, err := ops.NewAddOp(a, b)
	require.NoError(t, err)

	op.Forward()
	assert.Equal(t, []float32{11, 22, 33}, op.Out().Value())

	// Idempotent with unchanged inputs.
	first := op.Out().Value()
	op.Forward()
	assert.Equal(t, first, op.Out().Value())
}

func TestAddOp_Backward_Accumulates(t *testing.T) {
	g := tensor.NewGraph()
	a, b := newPair(t, g)
	op, err := ops.NewAddOp(a, b)
	require.NoError(t, err)

	op.Forward()
	require.NoError(t, op.Out().SeedGrad([]float32{1, 1, 1}))

	op.Backward()
	assert.Equal(t, []float32{1, 1, 1}, a.Grad())
	assert.Equal(t, []float32{1, 1, 1}, b.Grad())

	// Second call without reset accumulates.
	op.Backward()
	assert.Equal(t, []float32{2, 2, 2}, a.Grad())
	assert.Equal(t, []float32{2, 2, 2}, b.Grad())
	assert.Equal(t, []float32{1, 1, 1}, op.Out().Grad(), "output grad is not consumed")
}

func TestAddOp_SameInputTwice(t *testing.T) {
	g := tensor.NewGraph()
	x, err := tensor.FromSlice(g, []float64{1, 2})
	require.NoError(t, err)

	op, err := ops.NewAddOp(x, x)
	require.NoError(t, err)
	op.Forward()
	assert.Equal(t, []float64{2, 4}, op.Out().Value())

	op.Out().FillGrad(1)
	op.Backward()
	assert.Equal(t, []float64{2, 2}, x.Grad(), "d(x+x)/dx = 2")
}

func TestNewAddOp_GraphMismatch(t *testing.T) {
	g1, g2 := tensor.NewGraph(), tensor.NewGraph()
	a, _ := newPair(t, g1)
	_, b := newPair(t, g2)

	op, err := ops.NewAddOp(a, b)
	assert.Nil(t, op)
	assert.ErrorIs(t, err, tensor.ErrGraphMismatch)
	assert.Equal(t, 0, g1.NumOps(), "nothing registered on failure")
	assert.Equal(t, 0, g2.NumOps())
}

func TestNewAddOp_ShapeMismatch(t *testing.T) {
	g := tensor.NewGraph()
	a, err := tensor.FromSlice(g, []int32{1, 2, 3})
	require.NoError(t, err)
	b, err := tensor.FromSlice(g, []int32{1, 2})
	require.NoError(t, err)

	_, err = ops.NewAddOp(a, b)
	assert.ErrorIs(t, err, tensor.ErrShapeMismatch)
	assert.Contains(t, err.Error(), "lengths 3 and 2")
	assert.Equal(t, 0, g.NumOps())
}

func TestNewAddOp_NilInput(t *testing.T) {
	g := tensor.NewGraph()
	a, _ := newPair(t, g)

	_, err := ops.NewAddOp(a, nil)
	assert.ErrorIs(t, err, tensor.ErrNilTensor)
	assert.Equal(t, 0, g.NumOps())
}

func TestAdd_Sugar(t *testing.T) {
	g := tensor.NewGraph()
	a, b := newPair(t, g)

	c, err := ops.Add(a, b)
	require.NoError(t, err)
	require.Equal(t, 1, g.NumOps())
	assert.Equal(t, tensor.Node(c), g.Op(0).Output())

	g.Op(0).Forward()
	assert.Equal(t, []float32{11, 22, 33}, c.Value())
}

func TestMustAdd_Panics(t *testing.T) {
	a, _ := newPair(t, tensor.NewGraph())
	_, b := newPair(t, tensor.NewGraph())

	assert.Panics(t, func() { ops.MustAdd(a, b) })
	assert.NotPanics(t, func() { ops.MustAdd(a, a) })
}

func TestAddOp_ParallelMatchesSequential(t *testing.T) {
	const n = 10_000
	data := make([]float64, n)
	for i := range data {
		data[i] = float64(i) * 0.5
	}

	run := func(cfg parallel.Config) (value, grad []float64) {
		g := tensor.NewGraphWithConfig(tensor.GraphConfig{Parallel: cfg})
		a, err := tensor.FromSlice(g, data)
		require.NoError(t, err)
		b, err := tensor.Full(g, n, 1.0)
		require.NoError(t, err)
		op, err := ops.NewAddOp(a, b)
		require.NoError(t, err)
		op.Forward()
		op.Out().FillGrad(2)
		op.Backward()
		return op.Out().Value(), a.Grad()
	}

	seqValue, seqGrad := run(parallel.Sequential())
	parValue, parGrad := run(parallel.Config{Enabled: true, NumWorkers: 4, MinChunkSize: 256})

	assert.Equal(t, seqValue, parValue)
	assert.Equal(t, seqGrad, parGrad)
	assert.Equal(t, 0.5*float64(n-1)+1, parValue[n-1])
}
