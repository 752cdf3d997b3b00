package cron

import (
	"context"
	"time"

	"github.com/vigilo-hq/vigilo-backend-go/internal/service/timeclock"
)

type TimeclockJobs struct {
	sweeper *timeclock.Sweeper
}

func NewTimeclockJobs(sweeper *timeclock.Sweeper) *TimeclockJobs {
	return &TimeclockJobs{sweeper: sweeper}
}

func (j *TimeclockJobs) RegisterJobs(scheduler *Scheduler, interval, timeout time.Duration) {
	scheduler.AddJob("force_close_stale_clock_sessions", interval, timeout, j.ForceCloseStaleClockSessions)
}

func (j *TimeclockJobs) ForceCloseStaleClockSessions(ctx context.Context) error {
	_, err := j.sweeper.Sweep(ctx, time.Now().UTC())
	return err
}
