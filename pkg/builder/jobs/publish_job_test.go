package jobs

import (
	"context"
	"testing"

	"github.com/ribo916/postman-builder/pkg/builder/config"
	"github.com/ribo916/postman-builder/pkg/builder/services"
	"github.com/stretchr/testify/assert"
)

func TestSchedulePublishRejectsInvalidSpec(t *testing.T) {
	runner := services.NewRunner(config.Config{})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	c := SchedulePublish(ctx, runner, "not a cron spec")
	assert.NotNil(t, c)
	assert.Empty(t, c.Entries())
}

func TestSchedulePublishStopsOnContextCancel(t *testing.T) {
	runner := services.NewRunner(config.Config{})
	ctx, cancel := context.WithCancel(context.Background())

	c := SchedulePublish(ctx, runner, "@daily")
	assert.Len(t, c.Entries(), 1)
	cancel()
}
