// Package store provides a SQLite-backed log of simulator runs.
//
// Each row records one evaluation: the content-addressed circuit ID, the
// operation performed, the program shape, the elapsed time and a canonical
// JSON result payload with its hash.
//
// # Ordering
//
// Rows are ordered by seq, an autoincrement column assigned on insert. Wall
// time never orders anything; elapsed_ns is informational only. Every list
// query ends in ORDER BY seq so repeated reads return identical results.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON
//
// Result payloads are serialized with ir.MarshalCanonical and fingerprinted
// with ir.ResultHash.
package store
