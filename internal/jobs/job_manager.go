package jobs

import (
	"fmt"
	"log/slog"
	"time"
)

// JobManager starts and stops the background jobs together.
type JobManager struct {
	menuRefreshJob   *MenuRefreshJob
	sessionReaperJob *SessionReaperJob
}

// Schedules holds cron specs; both six-field expressions and descriptors such
// as "@every 5m" are accepted.
type Schedules struct {
	MenuRefresh      string
	MenuFetchTimeout time.Duration
	SessionReap      string
}

func NewJobManager(
	menus MenuRefresher,
	sessions SessionReaper,
	schedules Schedules,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		menuRefreshJob:   NewMenuRefreshJob(menus, schedules.MenuRefresh, schedules.MenuFetchTimeout, logger),
		sessionReaperJob: NewSessionReaperJob(sessions, schedules.SessionReap, logger),
	}
}

// StartAll starts every job. If one fails to start, the ones already started
// are stopped again.
func (jm *JobManager) StartAll() error {
	if err := jm.sessionReaperJob.Start(); err != nil {
		return fmt.Errorf("failed to start session reaper job: %w", err)
	}

	if err := jm.menuRefreshJob.Start(); err != nil {
		jm.sessionReaperJob.Stop()
		return fmt.Errorf("failed to start menu refresh job: %w", err)
	}

	return nil
}

// StopAll waits for running jobs to finish.
func (jm *JobManager) StopAll() {
	jm.menuRefreshJob.Stop()
	jm.sessionReaperJob.Stop()
}
