// Package trace records what a largenum command is doing while it runs.
//
// Long Fibonacci searches can take a while; tracing shows which batch or
// term the search is working on and how long each step took.
//
// # Usage
//
//	largenum search --digits 5000 --trace=- --trace-level=detail
//
// # Levels
//
//   - LevelOff: nothing is recorded
//   - LevelError: events are kept in memory and dumped only on failure
//   - LevelPhase: command and search boundaries
//   - LevelDetail: brute-force batches
//   - LevelDebug: every Fibonacci term
//
// # Scopes
//
// Scopes nest from coarse to fine: ScopeCommand, ScopeSearch, ScopeBatch,
// ScopeTerm.
//
// # Context Propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopeSearch, "search", 0)
//	defer span.End("")
package trace
