// Package reconcile keeps the max stack size of every live generator in line
// with the configured limits.
//
// The host world is large and keeps changing while the service runs, so the
// package never walks the whole population on the hot path. Instead it keeps
// its own view of the world and spreads the work over time:
//   - A TrackedSet of every generator observed through a scan or a spawn
//     notification, with identity/name/prefab indexes for targeted updates
//   - A BatchQueue of newly observed generators, drained a bounded slice per tick
//   - A Sweeper that evicts generators destroyed without a notification
//   - An Engine that ties those together with the Settings and the Applier
//
// # Architecture
//
// 1. Settings: immutable snapshot of the global default, the override tables
// (identity, short name, prefab), the access lists and the batch/cleanup knobs.
// Settings.Resolve implements the lookup precedence.
//
// 2. Applier: writes the resolved limit to one generator and clamps any stack
// above it. Failures come back as an ApplyResult, never as a panic.
//
// 3. Engine: owns the tracked set, queue and sweeper. The Engine is not safe
// for concurrent use; the Loop serializes every host notification, tick and
// operator command onto a single goroutine.
//
// # Usage Example
//
//	engine := reconcile.NewEngine(settings, logger)
//	loop := reconcile.NewLoop(engine, 100*time.Millisecond, logger)
//	go loop.Run(ctx)
//
//	// Startup scan, then feed host notifications
//	loop.Scan(ctx, host)
//	loop.Spawned(generator)
//	loop.Destroyed(generator)
//
//	// Operator command
//	var report reconcile.ReconcileReport
//	err := loop.Do(ctx, func(e *reconcile.Engine) {
//	    report = e.ReconcileAll()
//	})
package reconcile
