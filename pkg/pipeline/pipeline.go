// Package pipeline provides the parse → layout → render pipeline shared by
// the CLI and the HTTP API.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Parse: turn flowchart source into a typed graph ([flowchart.Parse])
//  2. Layout: assign coordinates and subgraph boxes ([layout.Apply])
//  3. Render: encode the record as JSON or Graphviz DOT
//
// The laid-out record is cached by the hash of the source text and the
// layout options, so repeated runs over unchanged documents skip the first
// two stages.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Name:   "flow.mmd",
//	    Source: src,
//	    Format: pipeline.FormatJSON,
//	})
//	os.Stdout.Write(result.Output)
//
// Many documents can be processed in parallel with [Runner.RunBatch].
//
// [flowchart.Parse]: github.com/matzehuels/flowgrid/pkg/flowchart.Parse
// [layout.Apply]: github.com/matzehuels/flowgrid/pkg/layout.Apply
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/flowgrid/pkg/cache"
	"github.com/matzehuels/flowgrid/pkg/flowchart"
	"github.com/matzehuels/flowgrid/pkg/layout"
)

// Format constants for output formats.
const (
	FormatJSON = "json"
	FormatDOT  = "dot"
)

// DefaultFormat is used when Options.Format is empty.
const DefaultFormat = FormatJSON

// StdinName names a document read from standard input.
const StdinName = "-"

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatJSON: true,
	FormatDOT:  true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options configures one pipeline run.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Name identifies the document in logs and batch results.
	Name string `json:"name,omitempty"`

	// Source is the flowchart text.
	Source string `json:"source"`

	// Format selects the rendered output: "json" (default) or "dot".
	Format string `json:"format,omitempty"`

	// Pinned adds computed positions to DOT output.
	Pinned bool `json:"pinned,omitempty"`

	// Layout overrides the grid geometry. The zero value means defaults.
	Layout layout.Config `json:"layout,omitzero"`

	// Refresh bypasses the cache lookup; the result is still stored.
	Refresh bool `json:"refresh,omitempty"`

	// Logger receives debug output. Defaults to the runner's logger.
	Logger *log.Logger `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Name echoes Options.Name.
	Name string

	// Graph is the laid-out diagram.
	Graph *flowchart.Graph

	// SourceHash is the SHA-256 of the source text.
	SourceHash string

	// Output is the rendered record in the requested format.
	Output []byte

	// Format is the format of Output.
	Format string

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount     int
	EdgeCount     int
	SubgraphCount int
	LayerCount    int
	Cyclic        bool          // the edges contain a directed cycle
	LayoutTime    time.Duration // parse and layout, or the cache lookup on a hit
	RenderTime    time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the laid-out record came from cache
}

// =============================================================================
// Validation
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format: %q (must be one of: json, dot)", format)
	}
	return nil
}

// ValidateAndSetDefaults fills in the default format, layout and logger
// and validates the result.
func (o *Options) ValidateAndSetDefaults() error {
	if o.Format == "" {
		o.Format = DefaultFormat
	}
	if err := ValidateFormat(o.Format); err != nil {
		return err
	}
	if o.Layout == (layout.Config{}) {
		o.Layout = layout.DefaultConfig()
	}
	if err := o.Layout.Validate(); err != nil {
		return err
	}
	if o.Name == "" {
		o.Name = StdinName
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		NodeWidth:     o.Layout.NodeWidth,
		NodeHeight:    o.Layout.NodeHeight,
		HorizontalGap: o.Layout.HorizontalGap,
		VerticalGap:   o.Layout.VerticalGap,
		Padding:       o.Layout.Padding,
	}
}
