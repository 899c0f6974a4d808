package jobs

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"
)

// SessionReaper evicts idle call sessions and reports how many went.
type SessionReaper interface {
	Reap() int
}

// SessionReaperJob evicts sessions of calls that hung up without saying so.
type SessionReaperJob struct {
	sessions SessionReaper
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

func NewSessionReaperJob(sessions SessionReaper, schedule string, logger *slog.Logger) *SessionReaperJob {
	return &SessionReaperJob{
		sessions: sessions,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "session_reaper_job"),
	}
}

func (j *SessionReaperJob) Run(ctx context.Context) {
	if n := j.sessions.Reap(); n > 0 {
		j.logger.InfoContext(ctx, "Evicted idle sessions", "count", n)
	}
}

func (j *SessionReaperJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.Run(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Session reaper job started", "schedule", j.schedule)
	return nil
}

func (j *SessionReaperJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Session reaper job stopped")
}
