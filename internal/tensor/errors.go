package tensor

import "github.com/pkg/errors"

// Construction errors. Call sites wrap them with context; match with errors.Is.
var (
	// ErrGraphMismatch is returned when tensors from different graphs are combined.
	ErrGraphMismatch = errors.New("tensors belong to different graphs")

	// ErrShapeMismatch is returned when buffer lengths break an operation's shape contract.
	ErrShapeMismatch = errors.New("tensor shapes are incompatible")

	// ErrNilGraph is returned when a tensor or pass is given no graph.
	ErrNilGraph = errors.New("graph is nil")

	// ErrNilTensor is returned when an operation is given a nil input.
	ErrNilTensor = errors.New("tensor is nil")
)
