package tensor

import "github.com/born-ml/gradgraph/internal/parallel"

// GraphConfig configures a Graph.
type GraphConfig struct {
	Name     string          // Used in logs and String(); optional.
	Parallel parallel.Config // Chunking for operation kernels.
}

// DefaultGraphConfig returns an unnamed config with sequential kernels.
func DefaultGraphConfig() GraphConfig {
	return GraphConfig{
		Parallel: parallel.Sequential(),
	}
}
