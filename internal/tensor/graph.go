package tensor

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"k8s.io/klog/v2"
)

// Node is the type-erased view of a tensor that the Graph works with.
// *Tensor[T] implements it for every element type.
type Node interface {
	// Graph returns the graph the node is bound to.
	Graph() *Graph

	// Len returns the number of elements in the value (and grad) buffer.
	Len() int

	// Bytes returns the memory held by the value and grad buffers.
	Bytes() uint64

	// ZeroGrad resets the gradient buffer to zeros.
	ZeroGrad()
}

// Operation is a differentiable computation recorded in a Graph.
//
// Operations register themselves at construction time, after their
// preconditions are checked. The driver calls Forward in the graph's
// insertion order and Backward in reverse order.
type Operation interface {
	// Forward recomputes the output value from the current input values.
	Forward()

	// Backward adds the local gradient contribution of the output grad into
	// each input grad. It never overwrites input gradients.
	Backward()

	// Name returns a short operation name, e.g. "Add".
	Name() string

	// Inputs returns the input nodes, in argument order.
	Inputs() []Node

	// Output returns the node produced by this operation.
	Output() Node
}

// Graph is the append-only log of operations for one computation session.
//
// Graphs are compared by identity: two tensors belong to the same computation
// only if their Graph pointers are equal. Operations are never removed, so the
// log order is a valid evaluation order and its reverse a valid gradient order.
//
// A Graph is not safe for concurrent use.
type Graph struct {
	id        uuid.UUID
	config    GraphConfig
	ops       []Operation
	producers map[Node]int // output node -> index in ops
}

// NewGraph creates an empty graph with DefaultGraphConfig.
func NewGraph() *Graph {
	return NewGraphWithConfig(DefaultGraphConfig())
}

// NewGraphWithConfig creates an empty graph with the given config.
func NewGraphWithConfig(cfg GraphConfig) *Graph {
	return &Graph{
		id:        uuid.New(),
		config:    cfg,
		ops:       make([]Operation, 0, 16),
		producers: make(map[Node]int),
	}
}

// ID returns the graph's unique id.
func (g *Graph) ID() uuid.UUID {
	return g.id
}

// Name returns the configured name, possibly empty.
func (g *Graph) Name() string {
	return g.config.Name
}

// Config returns the graph configuration.
func (g *Graph) Config() GraphConfig {
	return g.config
}

// Same reports whether g and other are the same graph instance.
func (g *Graph) Same(other *Graph) bool {
	return g == other
}

// Register appends op to the log and indexes its output.
// Operation constructors call it once their preconditions hold.
func (g *Graph) Register(op Operation) {
	g.ops = append(g.ops, op)
	g.producers[op.Output()] = len(g.ops) - 1
	if klog.V(2).Enabled() {
		klog.Infof("graph %s: registered op #%d %s (len=%d)", g, len(g.ops)-1, op.Name(), op.Output().Len())
	}
}

// Ops returns a copy of the log in insertion order.
func (g *Graph) Ops() []Operation {
	out := make([]Operation, len(g.ops))
	copy(out, g.ops)
	return out
}

// Op returns the i-th recorded operation.
func (g *Graph) Op(i int) Operation {
	return g.ops[i]
}

// NumOps returns the number of recorded operations.
func (g *Graph) NumOps() int {
	return len(g.ops)
}

// Producer returns the operation whose output is n.
// Tensors seeded from external data have no producer.
func (g *Graph) Producer(n Node) (Operation, bool) {
	idx, ok := g.producers[n]
	if !ok {
		return nil, false
	}
	return g.ops[idx], true
}

// Nodes returns every distinct node referenced by the log, in first-seen order.
func (g *Graph) Nodes() []Node {
	seen := make(map[Node]struct{})
	var nodes []Node
	add := func(n Node) {
		if _, ok := seen[n]; ok {
			return
		}
		seen[n] = struct{}{}
		nodes = append(nodes, n)
	}
	for _, op := range g.ops {
		for _, in := range op.Inputs() {
			add(in)
		}
		add(op.Output())
	}
	return nodes
}

// MemoryUsage returns the bytes held by the value and grad buffers of every node in the log.
func (g *Graph) MemoryUsage() uint64 {
	var total uint64
	for _, n := range g.Nodes() {
		total += n.Bytes()
	}
	return total
}

// String implements fmt.Stringer.
func (g *Graph) String() string {
	if g == nil {
		return "Graph(nil)"
	}
	name := g.config.Name
	if name == "" {
		name = g.id.String()[:8]
	}
	return fmt.Sprintf("Graph(%s, ops=%d)", name, len(g.ops))
}

// Summary returns a multi-line description of the log and its memory usage.
func (g *Graph) Summary() string {
	s := fmt.Sprintf("%s, %s in buffers\n", g, humanize.Bytes(g.MemoryUsage()))
	for i, op := range g.ops {
		s += fmt.Sprintf("  #%d %s -> len %d\n", i, op.Name(), op.Output().Len())
	}
	return s
}
