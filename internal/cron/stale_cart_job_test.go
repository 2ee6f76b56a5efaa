package cron

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Amey8050/Dukaan-clone-sub000/pkg/logger"
)

type fakeSweeper struct {
	cutoff time.Time
	swept  int64
	err    error
}

func (f *fakeSweeper) DeleteStaleGuestCarts(_ context.Context, cutoff time.Time) (int64, error) {
	f.cutoff = cutoff
	return f.swept, f.err
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "cron-test", Output: io.Discard})
}

func TestStaleCartJobUsesRetentionCutoff(t *testing.T) {
	sweeper := &fakeSweeper{swept: 4}
	job, err := NewStaleCartJob(StaleCartJobParams{
		Logger:        testLogger(),
		Carts:         sweeper,
		RetentionDays: 7,
	})
	require.NoError(t, err)

	fixed := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	job.(*staleCartJob).now = func() time.Time { return fixed }

	require.NoError(t, job.Run(context.Background()))
	assert.Equal(t, fixed.Add(-7*24*time.Hour), sweeper.cutoff)
}

func TestStaleCartJobDefaultsRetention(t *testing.T) {
	sweeper := &fakeSweeper{}
	job, err := NewStaleCartJob(StaleCartJobParams{Logger: testLogger(), Carts: sweeper})
	require.NoError(t, err)
	assert.Equal(t, defaultCartRetentionDays, job.(*staleCartJob).retention)
}

func TestStaleCartJobPropagatesSweepError(t *testing.T) {
	sweeper := &fakeSweeper{err: errors.New("db down")}
	job, err := NewStaleCartJob(StaleCartJobParams{Logger: testLogger(), Carts: sweeper})
	require.NoError(t, err)
	assert.Error(t, job.Run(context.Background()))
}

func TestStaleCartJobRequiresDeps(t *testing.T) {
	_, err := NewStaleCartJob(StaleCartJobParams{Carts: &fakeSweeper{}})
	assert.Error(t, err)
	_, err = NewStaleCartJob(StaleCartJobParams{Logger: testLogger()})
	assert.Error(t, err)
}
