package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/flowgrid/pkg/cache"
	"github.com/matzehuels/flowgrid/pkg/flowchart"
	flowio "github.com/matzehuels/flowgrid/pkg/io"
	"github.com/matzehuels/flowgrid/pkg/layout"
	"github.com/matzehuels/flowgrid/pkg/observability"
)

const keyTypeLayout = "layout"

// Runner executes documents through parse, layout and render, reusing laid
// out graphs from Cache. The CLI and the HTTP server each hold one.
//
// A Runner keeps no per-document state; concurrent Execute calls are safe
// as long as Cache is.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
	TTL    time.Duration
}

// NewRunner fills in a DefaultKeyer, a NullCache and log.Default() for nil
// arguments. Entries are stored with cache.DefaultTTL.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
		TTL:    cache.DefaultTTL,
	}
}

// Execute validates opts, lays the document out (or loads the layout from
// the cache) and renders it in opts.Format.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{
		Name:   opts.Name,
		Format: opts.Format,
	}

	start := time.Now()
	g, hit, err := r.LayoutWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Graph = g
	result.SourceHash = cache.Hash([]byte(opts.Source))
	result.CacheInfo.LayoutHit = hit
	result.Stats.LayoutTime = time.Since(start)
	result.Stats.NodeCount = g.NodeCount()
	result.Stats.EdgeCount = g.EdgeCount()
	result.Stats.SubgraphCount = len(g.Subgraphs)
	layering := layout.Layering(g)
	result.Stats.LayerCount = layering.RowCount()
	result.Stats.Cyclic = layering.HasCycle()

	opts.Logger.Debug("computed layout",
		"name", opts.Name,
		"nodes", g.NodeCount(),
		"edges", g.EdgeCount(),
		"layers", result.Stats.LayerCount,
		"cyclic", result.Stats.Cyclic,
		"cached", hit,
		"duration", result.Stats.LayoutTime)

	renderStart := time.Now()
	out, err := Render(ctx, opts.Name, g, opts.Format, opts.Pinned)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Output = out
	result.Stats.RenderTime = time.Since(renderStart)

	opts.Logger.Debug("rendered output",
		"name", opts.Name,
		"format", opts.Format,
		"bytes", len(out),
		"duration", result.Stats.RenderTime)

	return result, nil
}

// LayoutWithCacheInfo parses and lays out opts.Source, consulting the cache
// first, and reports whether the record came from the cache. opts must
// have been validated.
//
// Cache failures never fail the run; they are logged and treated as misses.
func (r *Runner) LayoutWithCacheInfo(ctx context.Context, opts Options) (*flowchart.Graph, bool, error) {
	key := r.Keyer.LayoutKey(cache.Hash([]byte(opts.Source)), opts.LayoutKeyOpts())
	hooks := observability.Cache()

	if !opts.Refresh {
		data, hit, err := r.Cache.Get(ctx, key)
		switch {
		case err != nil:
			hooks.OnCacheError(ctx, keyTypeLayout, err)
			opts.Logger.Warn("cache read failed", "name", opts.Name, "error", err)
		case hit:
			if g, err := flowio.UnmarshalGraph(data); err == nil {
				hooks.OnCacheHit(ctx, keyTypeLayout)
				return g, true, nil
			}
			opts.Logger.Debug("discarding unreadable cache entry", "name", opts.Name)
		}
	}
	hooks.OnCacheMiss(ctx, keyTypeLayout)

	g := Parse(ctx, opts.Name, opts.Source)
	if err := Layout(ctx, opts.Name, g, opts.Layout); err != nil {
		return nil, false, err
	}

	if data, err := flowio.MarshalGraph(g); err == nil {
		if err := r.Cache.Set(ctx, key, data, r.TTL); err != nil {
			hooks.OnCacheError(ctx, keyTypeLayout, err)
			opts.Logger.Warn("cache write failed", "name", opts.Name, "error", err)
		} else {
			hooks.OnCacheSet(ctx, keyTypeLayout, len(data))
		}
	}
	return g, false, nil
}

// Close closes the cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
