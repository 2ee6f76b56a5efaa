package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/Amey8050/Dukaan-clone-sub000/pkg/logger"
	"github.com/Amey8050/Dukaan-clone-sub000/pkg/metrics"
)

const defaultCartRetentionDays = 30

// StaleCartSweeper deletes abandoned guest carts older than the cutoff.
type StaleCartSweeper interface {
	DeleteStaleGuestCarts(ctx context.Context, cutoff time.Time) (int64, error)
}

// StaleCartJobParams configure the stale guest cart sweep.
type StaleCartJobParams struct {
	Logger        *logger.Logger
	Carts         StaleCartSweeper
	Metrics       *metrics.CronJobMetrics
	RetentionDays int
}

type staleCartJob struct {
	logg      *logger.Logger
	carts     StaleCartSweeper
	metrics   *metrics.CronJobMetrics
	retention int
	now       func() time.Time
}

// NewStaleCartJob builds the sweep that clears guest carts untouched for the
// retention window. Signed-in carts are never swept.
func NewStaleCartJob(params StaleCartJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Carts == nil {
		return nil, fmt.Errorf("cart sweeper required")
	}
	retention := params.RetentionDays
	if retention <= 0 {
		retention = defaultCartRetentionDays
	}
	return &staleCartJob{
		logg:      params.Logger,
		carts:     params.Carts,
		metrics:   params.Metrics,
		retention: retention,
		now:       time.Now,
	}, nil
}

func (j *staleCartJob) Name() string { return "stale-cart-sweep" }

func (j *staleCartJob) Run(ctx context.Context) error {
	cutoff := j.now().UTC().Add(-time.Duration(j.retention) * 24 * time.Hour)
	swept, err := j.carts.DeleteStaleGuestCarts(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("stale cart sweep: %w", err)
	}
	if j.metrics != nil {
		j.metrics.AddSwept(j.Name(), int(swept))
	}
	logCtx := j.logg.WithFields(ctx, map[string]any{
		"cutoff":         cutoff,
		"retention_days": j.retention,
		"rows_deleted":   swept,
	})
	j.logg.Info(logCtx, "stale cart sweep complete")
	return nil
}
