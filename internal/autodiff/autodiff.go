// Package autodiff drives forward and reverse-mode passes over a tensor.Graph.
//
// Operations record themselves into the graph as they are constructed, so the
// graph log is already in evaluation order:
//
//	g := tensor.NewGraph()
//	a, _ := tensor.FromSlice(g, []float32{1, 2, 3})
//	b, _ := tensor.FromSlice(g, []float32{10, 20, 30})
//	c := ops.MustAdd(a, b)
//	d := ops.MustAdd(c, a)
//
//	autodiff.Forward(g)  // d = (a + b) + a
//	autodiff.Backward(d) // a.Grad() = [2 2 2], b.Grad() = [1 1 1]
//
// Passes are synchronous and not safe to run concurrently on one graph.
package autodiff

import (
	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"github.com/born-ml/gradgraph/internal/tensor"
)

// Forward runs every recorded operation's Forward in insertion order.
func Forward(g *tensor.Graph) error {
	if g == nil {
		return errors.Wrap(tensor.ErrNilGraph, "autodiff.Forward")
	}
	klog.V(1).Infof("forward pass over %s", g)
	for i := 0; i < g.NumOps(); i++ {
		g.Op(i).Forward()
	}
	return nil
}

// BackwardAll runs every recorded operation's Backward in reverse insertion order.
//
// The caller seeds the gradient of the final output first. Every operation in
// the log runs exactly once, including ones that do not lead to that output.
func BackwardAll(g *tensor.Graph) error {
	if g == nil {
		return errors.Wrap(tensor.ErrNilGraph, "autodiff.BackwardAll")
	}
	klog.V(1).Infof("backward pass over all %d ops of %s", g.NumOps(), g)
	for i := g.NumOps() - 1; i >= 0; i-- {
		g.Op(i).Backward()
	}
	return nil
}

// ZeroGrad resets the gradient of every tensor referenced by the graph log.
// Call it between iterations; Backward only ever accumulates.
func ZeroGrad(g *tensor.Graph) error {
	if g == nil {
		return errors.Wrap(tensor.ErrNilGraph, "autodiff.ZeroGrad")
	}
	for _, n := range g.Nodes() {
		n.ZeroGrad()
	}
	return nil
}
