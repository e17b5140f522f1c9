package jobs

import (
	"fmt"
	"log/slog"

	"hauling/internal/core/application/usecases/commands"
)

// JobManager coordinates all scheduled sweeps in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	expireJob      *ExpireUnscheduledJobsJob
	unstartedJob   *NotifyUnstartedJobsJob
	endingJob      *NotifyEndingAssignmentsJob
	forceFinishJob *ForceFinishStaleJobsJob
}

// NewJobManager creates a job manager with all sweep jobs wired to their
// command handlers.
func NewJobManager(
	expireHandler commands.ExpireUnscheduledJobsCommandHandler,
	unstartedHandler commands.NotifyUnstartedJobsCommandHandler,
	endingHandler commands.NotifyEndingAssignmentsCommandHandler,
	forceFinishHandler commands.ForceFinishStaleJobsCommandHandler,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		expireJob:      NewExpireUnscheduledJobsJob(expireHandler, logger),
		unstartedJob:   NewNotifyUnstartedJobsJob(unstartedHandler, logger),
		endingJob:      NewNotifyEndingAssignmentsJob(endingHandler, logger),
		forceFinishJob: NewForceFinishStaleJobsJob(forceFinishHandler, logger),
	}
}

// StartAll starts all sweeps. If one fails to start, the already started
// ones are stopped before returning.
func (jm *JobManager) StartAll() error {
	starters := []struct {
		name string
		job  interface {
			Start() error
			Stop()
		}
	}{
		{"expire unscheduled jobs", jm.expireJob},
		{"notify unstarted jobs", jm.unstartedJob},
		{"notify ending assignments", jm.endingJob},
		{"force finish stale jobs", jm.forceFinishJob},
	}

	for i, s := range starters {
		if err := s.job.Start(); err != nil {
			for _, st := range starters[:i] {
				st.job.Stop()
			}
			return fmt.Errorf("failed to start %s job: %w", s.name, err)
		}
	}

	return nil
}

// StopAll stops all sweeps gracefully.
func (jm *JobManager) StopAll() {
	jm.forceFinishJob.Stop()
	jm.endingJob.Stop()
	jm.unstartedJob.Stop()
	jm.expireJob.Stop()
}
