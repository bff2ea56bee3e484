// Package events defines the scheduler events emitted on the event bus.
//
// Available event types:
//   - DisruptionEvent: a delay, curfew or maintenance window was applied
//   - RecoveryEvent: a recovery pass completed
//   - StatsEvent: a snapshot of schedule statistics
package events
