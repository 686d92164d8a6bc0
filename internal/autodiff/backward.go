package autodiff

import (
	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"github.com/born-ml/gradgraph/internal/tensor"
)

// TopologicalOrder returns the operations root depends on, each listed after
// every operation that produces one of its inputs.
//
// Only operations reachable from root are included, and each appears once even
// when its output feeds several consumers. A root with no producer (a seeded
// tensor) yields an empty order.
func TopologicalOrder(g *tensor.Graph, root tensor.Node) ([]tensor.Operation, error) {
	if g == nil {
		return nil, errors.Wrap(tensor.ErrNilGraph, "autodiff.TopologicalOrder")
	}
	if root == nil {
		return nil, errors.Wrap(tensor.ErrNilTensor, "autodiff.TopologicalOrder")
	}
	if !g.Same(root.Graph()) {
		return nil, errors.Wrapf(tensor.ErrGraphMismatch, "autodiff.TopologicalOrder: root belongs to %s, not %s", root.Graph(), g)
	}

	visited := make(map[tensor.Operation]bool)
	order := make([]tensor.Operation, 0, g.NumOps())

	// Iterative post-order DFS; chains can be deeper than is comfortable to recurse.
	type frame struct {
		op   tensor.Operation
		next int // next input to visit
	}
	rootOp, ok := g.Producer(root)
	if !ok {
		return order, nil
	}
	stack := []frame{{op: rootOp}}
	visited[rootOp] = true
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		inputs := top.op.Inputs()
		if top.next < len(inputs) {
			in := inputs[top.next]
			top.next++
			if producer, ok := g.Producer(in); ok && !visited[producer] {
				visited[producer] = true
				stack = append(stack, frame{op: producer})
			}
			continue
		}
		order = append(order, top.op)
		stack = stack[:len(stack)-1]
	}
	return order, nil
}

// BackwardFrom runs Backward on every operation root depends on, consumers
// before producers. The caller seeds root's gradient first.
//
// Unlike BackwardAll, operations that do not lead to root are skipped, and an
// operation only runs once all operations consuming its output have run, which
// keeps the result correct for graphs that reuse a tensor across branches.
func BackwardFrom(g *tensor.Graph, root tensor.Node) error {
	order, err := TopologicalOrder(g, root)
	if err != nil {
		return err
	}
	if len(order) == 0 {
		klog.Warningf("backward: root has no producer in %s, no gradients to propagate", g)
		return nil
	}
	klog.V(1).Infof("backward pass over %d of %d ops of %s", len(order), g.NumOps(), g)
	for i := len(order) - 1; i >= 0; i-- {
		order[i].Backward()
	}
	return nil
}

// Backward seeds out's gradient with ones and propagates it through the
// operations out depends on.
//
// Gradients accumulate: call ZeroGrad between iterations.
func Backward[T tensor.Numeric](out *tensor.Tensor[T]) error {
	if out == nil {
		return errors.Wrap(tensor.ErrNilTensor, "autodiff.Backward")
	}
	out.FillGrad(1)
	return BackwardFrom(out.Graph(), out)
}
