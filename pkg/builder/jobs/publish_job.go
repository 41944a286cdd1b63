package jobs

import (
	"context"
	"log"
	"time"

	"github.com/ribo916/postman-builder/pkg/builder/services"
	"github.com/robfig/cron/v3"
)

// SchedulePublish re-runs the build pipeline on the given cron expression.
// The chain skips a tick while the previous run is still going and recovers
// panics, so one bad run cannot take the scheduler down.
func SchedulePublish(ctx context.Context, runner *services.Runner, spec string) *cron.Cron {
	c := cron.New(cron.WithChain(
		cron.Recover(cron.DefaultLogger),
		cron.SkipIfStillRunning(cron.DefaultLogger),
	))

	_, err := c.AddFunc(spec, func() {
		jobCtx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		if _, err := runner.Run(jobCtx); err != nil {
			log.Printf("[schedule] publish failed: %v", err)
		}
	})
	if err != nil {
		log.Printf("[schedule] invalid schedule %q: %v", spec, err)
		return c
	}

	c.Start()
	go func() {
		<-ctx.Done()
		c.Stop()
	}()
	return c
}
