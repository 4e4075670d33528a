// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard
// dependencies on specific observability backends. Consumers can
// register hooks at startup to receive events about pipeline execution.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// This approach:
//   - Avoids import cycles (hooks are registered by main, not by libraries)
//   - Keeps the core library dependency-free from observability frameworks
//   - Allows different backends (OpenTelemetry, Prometheus, DataDog, etc.)
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetPipelineHooks(&myPipelineHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Pipeline().OnLoadStart(ctx, input)
//	// ... load the dataset ...
//	observability.Pipeline().OnLoadComplete(ctx, input, recordCount, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Pipeline Hooks
// =============================================================================

// PipelineHooks receives events from the diagram pipeline.
type PipelineHooks interface {
	// Load events
	OnLoadStart(ctx context.Context, input string)
	OnLoadComplete(ctx context.Context, input string, recordCount int, duration time.Duration, err error)

	// Layout events
	OnComputeStart(ctx context.Context, recordCount int)
	OnComputeComplete(ctx context.Context, stripCount int, duration time.Duration, err error)

	// Render events
	OnRenderStart(ctx context.Context, formats []string)
	OnRenderComplete(ctx context.Context, formats []string, duration time.Duration, err error)
}

// =============================================================================
// No-op Implementation
// =============================================================================

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnLoadStart(context.Context, string)                               {}
func (NoopPipelineHooks) OnLoadComplete(context.Context, string, int, time.Duration, error) {}
func (NoopPipelineHooks) OnComputeStart(context.Context, int)                               {}
func (NoopPipelineHooks) OnComputeComplete(context.Context, int, time.Duration, error)      {}
func (NoopPipelineHooks) OnRenderStart(context.Context, []string)                           {}
func (NoopPipelineHooks) OnRenderComplete(context.Context, []string, time.Duration, error)  {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	pipelineHooks PipelineHooks = NoopPipelineHooks{}
	hooksMu       sync.RWMutex
)

// SetPipelineHooks registers custom pipeline hooks.
// This should be called once at application startup before any pipeline operations.
func SetPipelineHooks(h PipelineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		pipelineHooks = h
	}
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return pipelineHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	pipelineHooks = NoopPipelineHooks{}
}
