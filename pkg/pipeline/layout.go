package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/flowgrid/pkg/flowchart"
	"github.com/matzehuels/flowgrid/pkg/layout"
	"github.com/matzehuels/flowgrid/pkg/observability"
)

// Layout runs the layout stage on g in place.
func Layout(ctx context.Context, name string, g *flowchart.Graph, cfg layout.Config) error {
	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, name, g.NodeCount())

	start := time.Now()
	err := layout.Apply(g, cfg)
	hooks.OnLayoutComplete(ctx, name, time.Since(start), err)
	return err
}
