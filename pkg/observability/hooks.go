// Package observability exposes instrumentation points for flowgrid.
//
// Three hook sets exist: one for the parse/layout/render stages, one for the
// layout cache and one for the HTTP API. Each starts out as a no-op value, so
// instrumentation costs nothing until a binary installs its own
// implementation:
//
//	observability.SetPipelineHooks(promPipeline{})
//	observability.SetHTTPHooks(otelHTTP{})
//
// Only main installs hooks. Library code fetches the current set at the
// start of an operation and reports through it:
//
//	observability.Pipeline().OnParseStart(ctx, name, len(src))
//	// ... do parsing ...
//	observability.Pipeline().OnParseComplete(ctx, name, nodes, edges, duration)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Pipeline Hooks
// =============================================================================

// PipelineHooks receives events from the parse, layout and render stages.
// name identifies the document (a file path, or "-" for stdin).
type PipelineHooks interface {
	// Parse events. Parsing cannot fail, so there is no error.
	OnParseStart(ctx context.Context, name string, size int)
	OnParseComplete(ctx context.Context, name string, nodeCount, edgeCount int, duration time.Duration)

	// Layout events
	OnLayoutStart(ctx context.Context, name string, nodeCount int)
	OnLayoutComplete(ctx context.Context, name string, duration time.Duration, err error)

	// Render events
	OnRenderStart(ctx context.Context, name, format string)
	OnRenderComplete(ctx context.Context, name, format string, size int, duration time.Duration, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives layout cache events. keyType names the cached artifact
// ("layout").
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)

	// OnCacheError reports a backend failure. The lookup that hit it is
	// treated as a miss.
	OnCacheError(ctx context.Context, keyType string, err error)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives one OnRequest and one OnResponse per served request.
type HTTPHooks interface {
	OnRequest(ctx context.Context, method, path string)

	// OnResponse fires once the handler returned, with the final status.
	OnResponse(ctx context.Context, method, path string, statusCode int, duration time.Duration)
}

// =============================================================================
// Defaults
// =============================================================================

// NoopPipelineHooks discards every pipeline event. Embed it to implement a
// subset of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnParseStart(context.Context, string, int)                        {}
func (NoopPipelineHooks) OnParseComplete(context.Context, string, int, int, time.Duration) {}
func (NoopPipelineHooks) OnLayoutStart(context.Context, string, int)                       {}
func (NoopPipelineHooks) OnLayoutComplete(context.Context, string, time.Duration, error)   {}
func (NoopPipelineHooks) OnRenderStart(context.Context, string, string)                    {}
func (NoopPipelineHooks) OnRenderComplete(context.Context, string, string, int, time.Duration, error) {
}

// NoopCacheHooks discards every cache event.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)          {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)         {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int)     {}
func (NoopCacheHooks) OnCacheError(context.Context, string, error) {}

// NoopHTTPHooks discards every HTTP event.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}

// =============================================================================
// Registry
// =============================================================================

// registry holds the process-wide hook set. Readers take a snapshot under the
// read lock; writers replace a single field.
type registry struct {
	mu       sync.RWMutex
	pipeline PipelineHooks
	cache    CacheHooks
	http     HTTPHooks
}

var hooks = newRegistry()

func newRegistry() *registry {
	return &registry{
		pipeline: NoopPipelineHooks{},
		cache:    NoopCacheHooks{},
		http:     NoopHTTPHooks{},
	}
}

// replace swaps *slot for h under the write lock. A nil h leaves the slot as is.
func replace[T any](r *registry, slot *T, h T) {
	if any(h) == nil {
		return
	}
	r.mu.Lock()
	*slot = h
	r.mu.Unlock()
}

func load[T any](r *registry, slot *T) T {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return *slot
}

// SetPipelineHooks installs h for every later parse, layout and render.
// Call it from main before documents are processed; nil is ignored.
func SetPipelineHooks(h PipelineHooks) { replace(hooks, &hooks.pipeline, h) }

// SetCacheHooks installs h for layout cache lookups and writes. nil is ignored.
func SetCacheHooks(h CacheHooks) { replace(hooks, &hooks.cache, h) }

// SetHTTPHooks installs h for the API server. Call it before Run; nil is ignored.
func SetHTTPHooks(h HTTPHooks) { replace(hooks, &hooks.http, h) }

// Pipeline returns the installed pipeline hooks.
func Pipeline() PipelineHooks { return load(hooks, &hooks.pipeline) }

// Cache returns the installed cache hooks.
func Cache() CacheHooks { return load(hooks, &hooks.cache) }

// HTTP returns the installed HTTP hooks.
func HTTP() HTTPHooks { return load(hooks, &hooks.http) }

// Reset puts the no-op hooks back. Tests use it to undo SetXxxHooks.
func Reset() {
	fresh := newRegistry()
	hooks.mu.Lock()
	hooks.pipeline, hooks.cache, hooks.http = fresh.pipeline, fresh.cache, fresh.http
	hooks.mu.Unlock()
}
