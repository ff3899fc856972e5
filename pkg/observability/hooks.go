// Package observability provides hooks for metrics, tracing, and logging.
//
// Consumers register hooks at startup to receive events about analysis
// requests, cache operations, and outgoing article fetches. Nothing in this
// package depends on a specific backend; the defaults are no-ops.
//
//	func main() {
//	    observability.SetAnalysisHooks(&myAnalysisHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Analysis().OnAnalyzeStart(ctx, url)
//	// ... request keywords ...
//	observability.Analysis().OnAnalyzeComplete(ctx, url, len(words), time.Since(start), err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Analysis Hooks
// =============================================================================

// AnalysisHooks receives events for every URL analysis, on both the client
// (request to /analyze) and the server (fetch + extraction).
type AnalysisHooks interface {
	OnAnalyzeStart(ctx context.Context, url string)
	OnAnalyzeComplete(ctx context.Context, url string, wordCount int, duration time.Duration, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from outgoing HTTP requests.
type HTTPHooks interface {
	// OnRequest records an outgoing HTTP request.
	OnRequest(ctx context.Context, method, host, path string)

	// OnResponse records an HTTP response.
	OnResponse(ctx context.Context, method, host, path string, statusCode int, duration time.Duration)

	// OnError records an HTTP error (network failure, timeout).
	OnError(ctx context.Context, method, host, path string, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopAnalysisHooks is a no-op implementation of AnalysisHooks.
type NoopAnalysisHooks struct{}

func (NoopAnalysisHooks) OnAnalyzeStart(context.Context, string) {}
func (NoopAnalysisHooks) OnAnalyzeComplete(context.Context, string, int, time.Duration, error) {
}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, string, int, time.Duration) {}
func (NoopHTTPHooks) OnError(context.Context, string, string, string, error)                 {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	analysisHooks AnalysisHooks = NoopAnalysisHooks{}
	cacheHooks    CacheHooks    = NoopCacheHooks{}
	httpHooks     HTTPHooks     = NoopHTTPHooks{}
	hooksMu       sync.RWMutex
)

// SetAnalysisHooks registers custom analysis hooks.
// This should be called once at application startup.
func SetAnalysisHooks(h AnalysisHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		analysisHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
// This should be called once at application startup before any cache operations.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// SetHTTPHooks registers custom HTTP hooks.
// This should be called once at application startup before any HTTP operations.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// Analysis returns the registered analysis hooks.
func Analysis() AnalysisHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return analysisHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return httpHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	analysisHooks = NoopAnalysisHooks{}
	cacheHooks = NoopCacheHooks{}
	httpHooks = NoopHTTPHooks{}
}
