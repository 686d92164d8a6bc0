// Package tensor provides the graph-bound tensors and the Graph that records
// operations over them.
package tensor

import (
	"fmt"
	"unsafe"

	"golang.org/x/exp/constraints"
)

// Numeric is a constraint for supported tensor element types.
type Numeric interface {
	constraints.Integer | constraints.Float
}

// dtypeName returns a human-readable name for T, e.g. "float32".
func dtypeName[T Numeric]() string {
	var zero T
	return fmt.Sprintf("%T", zero)
}

// elemSize returns the byte size of one element of T.
func elemSize[T Numeric]() int {
	var zero T
	return int(unsafe.Sizeof(zero))
}
