// Package schedule contains the assignment ledger: the ScheduledJob
// aggregate (one owning company's share of a job's work), its owned
// Assignation records (one driver+truck bound to one requirement slot), and
// the SwitchRequest entity tracking pending relocations between jobs.
//
// Assignations reference requirement slots by id only. The Job aggregate in
// the job package is the single writer of slot flags; this package records
// who does what and when, plus the cancellation and dispute state.
package schedule
