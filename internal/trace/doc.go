// Package trace is the levelled event stream used as the structured log of
// glslu.
//
// # Usage
//
// Enable tracing via command-line flags:
//
//	glslu diag --trace=- --trace-level=detail shaders/
//
// # Architecture
//
//   - Nop: zero-overhead tracer used when tracing is disabled
//   - StreamTracer: writes every event immediately (text or NDJSON)
//
// # Levels
//
//   - LevelOff: no tracing
//   - LevelError: only error points
//   - LevelPhase: driver and pass boundaries
//   - LevelDetail: per-file work
//   - LevelDebug: everything, including every recorded diagnostic
//
// # Scopes
//
//   - ScopeDriver: top-level CLI operations
//   - ScopePass: scan, include resolution, rendering
//   - ScopeFile: per-file processing
//   - ScopeDiag: individual diagnostics mirrored by unit.TraceObserver
//
// # Context Propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	t := trace.FromContext(ctx)
//
//	span := trace.Begin(t, trace.ScopePass, "scan", 0)
//	defer span.End("")
package trace
