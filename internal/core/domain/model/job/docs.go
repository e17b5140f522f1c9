// Package job contains the Job aggregate: a contractor's posted hauling work
// order together with its owned requirement slots (TruckCategory).
//
// The aggregate enforces the core lifecycle invariants:
//   - an active slot is always a scheduled slot
//   - a job with any unscheduled slot never reports all-scheduled
//   - status transitions are monotone except for explicit cancel and the
//     orthogonal on-hold flag
//
// Slots are owned records addressed by id. ScheduledJobs and Assignations in
// the schedule package reference slot ids, never slot objects, so no slot
// state is ever shared between aggregates.
package job
