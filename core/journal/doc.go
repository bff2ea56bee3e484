// Package journal persists a history of schedule mutations. Every applied
// disruption and recovery pass becomes a Record that can be queried later
// and replayed through the scenario runner.
//
// Available stores:
//   - memory: bounded in-process ring, the default
//   - jsonl: one JSON object per line in a single file
//   - rotating: jsonl with size based rotation
//   - sqlite: embedded database file
//   - postgres: shared database reached through pgx
package journal
