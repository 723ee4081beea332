package pipeline

import (
	"bytes"
	"context"
	"time"

	"github.com/matzehuels/flowgrid/pkg/dot"
	"github.com/matzehuels/flowgrid/pkg/flowchart"
	flowio "github.com/matzehuels/flowgrid/pkg/io"
	"github.com/matzehuels/flowgrid/pkg/observability"
)

// Render encodes a laid-out graph in the given format.
func Render(ctx context.Context, name string, g *flowchart.Graph, format string, pinned bool) ([]byte, error) {
	if err := ValidateFormat(format); err != nil {
		return nil, err
	}
	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, name, format)

	start := time.Now()
	var (
		out []byte
		err error
	)
	switch format {
	case FormatDOT:
		out, err = dot.Marshal(ctx, g, dot.Options{Pinned: pinned})
	default:
		var buf bytes.Buffer
		err = flowio.WriteJSON(g, &buf)
		out = buf.Bytes()
	}
	hooks.OnRenderComplete(ctx, name, format, len(out), time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return out, nil
}
