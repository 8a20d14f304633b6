// Package store provides SQLite-backed storage for decision surfaces.
//
// A code-generation backend reads the surface from here instead of
// re-running the resolver. The store keeps an append-only log of passes:
//   - Passes: one row per generation pass, with catalog and surface fingerprints
//   - Decisions: one row per cell of the pass, in table order
//
// # Ordering
//
// Passes are ordered by seq, a logical clock continued from the highest
// stored value. Decisions are ordered by ord, their position in the
// table. Wall-clock time is never stored.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
//
// The schema version lives in PRAGMA user_version. Open creates and stamps
// the schema on an unstamped file and refuses any other stamp.
//
// Flag-sets are stored as canonical JSON from internal/ir.
package store
