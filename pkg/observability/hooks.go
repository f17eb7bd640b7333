// Package observability provides hooks for metrics and tracing.
//
// Instrumentation is optional: libraries emit events through the hooks
// registered here, and the defaults do nothing. The binary decides at
// startup which backend receives them. [PrometheusHooks] is the backend
// shipped with morphgraph.
//
// # Usage
//
// Register hooks at application startup:
//
//	hooks := observability.NewPrometheusHooks(prometheus.DefaultRegisterer)
//	observability.SetPipelineHooks(hooks)
//	observability.SetCacheHooks(hooks)
//	observability.SetHTTPHooks(hooks)
//
// Libraries call hooks to emit events:
//
//	observability.Pipeline().OnStageStart(ctx, observability.StageRepair)
//	// ... repair ...
//	observability.Pipeline().OnStageComplete(ctx, observability.StageRepair, time.Since(start), err)
package observability

import (
	"context"
	"sync"
	"time"
)

// Pipeline stages reported through [PipelineHooks].
const (
	StageLoad      = "load"
	StageRepair    = "repair"
	StageReduce    = "reduce"
	StageProcesses = "processes"
	StageExport    = "export"
)

// =============================================================================
// Pipeline Hooks
// =============================================================================

// PipelineHooks receives events from the morphology pipeline.
type PipelineHooks interface {
	OnStageStart(ctx context.Context, stage string)
	OnStageComplete(ctx context.Context, stage string, duration time.Duration, err error)

	// OnRepair reports how many bridging edges a repair added.
	OnRepair(ctx context.Context, bridges int)
	// OnReduce reports how many process nodes a reduction removed.
	OnReduce(ctx context.Context, removed int)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from the HTTP server.
type HTTPHooks interface {
	OnRequest(ctx context.Context, method, route string)
	OnResponse(ctx context.Context, method, route string, status int, duration time.Duration)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnStageStart(context.Context, string)                          {}
func (NoopPipelineHooks) OnStageComplete(context.Context, string, time.Duration, error) {}
func (NoopPipelineHooks) OnRepair(context.Context, int)                                 {}
func (NoopPipelineHooks) OnReduce(context.Context, int)                                 {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}

// registry holds the hooks currently in effect.
type registry struct {
	mu       sync.RWMutex
	pipeline PipelineHooks
	cache    CacheHooks
	http     HTTPHooks
}

var hooks = &registry{
	pipeline: NoopPipelineHooks{},
	cache:    NoopCacheHooks{},
	http:     NoopHTTPHooks{},
}

func (r *registry) update(fn func(*registry)) {
	r.mu.Lock()
	fn(r)
	r.mu.Unlock()
}

func (r *registry) snapshot() (PipelineHooks, CacheHooks, HTTPHooks) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.pipeline, r.cache, r.http
}

// SetPipelineHooks installs h for pipeline events. A nil h is ignored.
func SetPipelineHooks(h PipelineHooks) {
	if h == nil {
		return
	}
	hooks.update(func(r *registry) { r.pipeline = h })
}

// SetCacheHooks installs h for cache events. A nil h is ignored.
func SetCacheHooks(h CacheHooks) {
	if h == nil {
		return
	}
	hooks.update(func(r *registry) { r.cache = h })
}

// SetHTTPHooks installs h for HTTP events. A nil h is ignored.
func SetHTTPHooks(h HTTPHooks) {
	if h == nil {
		return
	}
	hooks.update(func(r *registry) { r.http = h })
}

// Pipeline returns the pipeline hooks in effect.
func Pipeline() PipelineHooks {
	p, _, _ := hooks.snapshot()
	return p
}

// Cache returns the cache hooks in effect.
func Cache() CacheHooks {
	_, c, _ := hooks.snapshot()
	return c
}

// HTTP returns the HTTP hooks in effect.
func HTTP() HTTPHooks {
	_, _, h := hooks.snapshot()
	return h
}

// Reset puts the no-op hooks back.
func Reset() {
	hooks.update(func(r *registry) {
		r.pipeline = NoopPipelineHooks{}
		r.cache = NoopCacheHooks{}
		r.http = NoopHTTPHooks{}
	})
}
