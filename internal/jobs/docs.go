// Package jobs provides scheduled background sweeps for the hauling
// scheduler.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to run the time-triggered lifecycle transitions the core defines.
//
// # Available Jobs
//
// 1. ExpireUnscheduledJobsJob - Every 5 minutes, marks jobs whose window
// ended without any truck scheduled as Incomplete
// 2. NotifyUnstartedJobsJob - Every 10 minutes, reminds owners about
// scheduled jobs past their window start with no clock-in
// 3. NotifyEndingAssignmentsJob - Every 15 minutes, warns drivers and
// owners about assignations ending within the next quarter hour
// 4. ForceFinishStaleJobsJob - Hourly, clocks out drivers still open an
// hour past their job's window end and finalizes those jobs
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(expireHandler, unstartedHandler,
//		endingHandler, forceFinishHandler, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// The sweep handlers isolate faults per item: one broken job is logged and
// skipped while the rest of the batch proceeds. A handler-level error here
// means the sweep itself could not run, and is always logged. Failed job
// starts stop any already running jobs.
package jobs
