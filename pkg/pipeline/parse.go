package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/flowgrid/pkg/flowchart"
	"github.com/matzehuels/flowgrid/pkg/observability"
)

// Parse runs the parser stage with hooks. It never fails.
func Parse(ctx context.Context, name, src string) *flowchart.Graph {
	hooks := observability.Pipeline()
	hooks.OnParseStart(ctx, name, len(src))

	start := time.Now()
	g := flowchart.Parse(src)
	hooks.OnParseComplete(ctx, name, g.NodeCount(), g.EdgeCount(), time.Since(start))
	return g
}
