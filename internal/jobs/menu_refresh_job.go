package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// MenuRefresher refetches the menu into the cache.
type MenuRefresher interface {
	Refresh(ctx context.Context) error
}

// MenuRefreshJob keeps the menu cache warm so callers rarely wait on a fetch.
type MenuRefreshJob struct {
	menus    MenuRefresher
	schedule string
	timeout  time.Duration
	cron     *cron.Cron
	logger   *slog.Logger
}

func NewMenuRefreshJob(menus MenuRefresher, schedule string, timeout time.Duration, logger *slog.Logger) *MenuRefreshJob {
	return &MenuRefreshJob{
		menus:    menus,
		schedule: schedule,
		timeout:  timeout,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "menu_refresh_job"),
	}
}

// Run performs one refresh. A failed refresh leaves the cached menu in place.
func (j *MenuRefreshJob) Run(ctx context.Context) {
	if j.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, j.timeout)
		defer cancel()
	}

	if err := j.menus.Refresh(ctx); err != nil {
		j.logger.WarnContext(ctx, "Menu refresh failed", "error", err)
		return
	}
	j.logger.DebugContext(ctx, "Menu refreshed")
}

func (j *MenuRefreshJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.Run(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Menu refresh job started", "schedule", j.schedule)
	return nil
}

func (j *MenuRefreshJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Menu refresh job stopped")
}
