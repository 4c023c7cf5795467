// Package sim schedules device characterization jobs against a
// simulation engine and aggregates their results.
//
// The core types are:
//
//   - [Job]: one (W, L, Vbs) point plus the shared DC bias grid
//   - [Adapter]: the engine boundary, one DC sweep per call
//   - [Pool]: bounded worker pool, all-or-error semantics
//   - [Characterize]: the full sweep-and-aggregate pipeline
//
// # Concurrency
//
// At most Pool size jobs are in flight at once. Jobs are pure
// functions of their descriptor, so no ordering between them is
// required; each worker owns its job's simulation context for the
// job's lifetime. A single failing job cancels the run and surfaces
// the originating sweep point through [JobError].
package sim
