// Package history records the outcome of every sync run in SQLite.
//
// Each invocation of the CLI is a run, identified by a UUIDv7 so ids sort by
// creation time. Each processed pair becomes a result row, numbered by its
// position in the batch.
//
// # Database Configuration
//
//   - WAL mode: history can be read while a run is being recorded
//   - synchronous=NORMAL: balance durability/performance
//   - busy_timeout=5000: wait for locks up to 5 seconds
//   - foreign_keys=ON: results cascade with their run
//
// Queries order by started_at DESC, id DESC for runs and seq ASC for
// results, so listings are stable.
package history
