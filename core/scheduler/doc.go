// Package scheduler assigns aircraft to flights and repairs the assignment
// incrementally when delays, curfews or maintenance windows are injected.
//
// A Schedule is built once from a scenario with a deterministic greedy pass,
// then mutated by Delay, Curfew, Maintenance and Recover. Every mutation is
// validated before any state changes, so a rejected call leaves the schedule
// untouched. A Schedule is not safe for concurrent use; wrap it with a single
// writer lock when shared.
package scheduler
