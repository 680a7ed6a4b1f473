// Package store provides SQLite-backed storage for steam reference table
// datasets.
//
// A dataset is one saturation table plus one superheated table, imported
// in a single transaction and identified by a UUIDv7. Datasets are listed
// in import order (seq), never by wall time.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Samples are deleted with their dataset
package store
