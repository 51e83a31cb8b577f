// Package events defines the solver related events emitted on the event bus.
//
// Available event types:
//   - RunStarted: a solve pass begins
//   - Assigned: a day received an assignee
//   - Shortfall: a day could not be filled
//   - RunCompleted: the pass finished with its summary counts
package events
