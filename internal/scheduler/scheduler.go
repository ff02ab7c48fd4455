// Package scheduler triggers the outreach workflow once a day at a
// configured local time.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/nitishrudra3510/linkedin-automation-project/internal/logging"
)

// Run blocks until ctx is cancelled, invoking job every day at "HH:MM"
// local time. Job panics are contained by cron's recovery wrapper; job
// errors are logged and the schedule keeps going.
func Run(ctx context.Context, at string, log *logging.Logger, job func(context.Context) error) error {
	t, err := time.Parse("15:04", at)
	if err != nil {
		return fmt.Errorf("parse schedule time %q: %w", at, err)
	}
	spec := fmt.Sprintf("%d %d * * *", t.Minute(), t.Hour())

	log = log.With("module", "scheduler")
	c := cron.New(cron.WithChain(cron.Recover(cron.DefaultLogger)))
	_, err = c.AddFunc(spec, func() {
		log.Info("scheduled run triggered", "at", at)
		if err := job(ctx); err != nil {
			log.Error("scheduled run failed", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("schedule job: %w", err)
	}

	log.Info("scheduler started", "at", at)
	c.Start()
	<-ctx.Done()
	<-c.Stop().Done()
	return nil
}
