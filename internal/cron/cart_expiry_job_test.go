package cron

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lucasmedrano/tourmarket-backend/pkg/logger"
)

type fakeCartExpirer struct {
	lastCutoff time.Time
	deleted    int64
	err        error
	called     int
}

func (f *fakeCartExpirer) DeleteExpired(ctx context.Context, cutoff time.Time) (int64, error) {
	f.called++
	f.lastCutoff = cutoff
	if f.err != nil {
		return 0, f.err
	}
	return f.deleted, nil
}

func newCartExpiryJob(t *testing.T, carts *fakeCartExpirer) *cartExpiryJob {
	t.Helper()
	jobIface, err := NewCartExpiryJob(CartExpiryJobParams{
		Logger: logger.New(logger.Options{ServiceName: "test"}),
		Carts:  carts,
	})
	if err != nil {
		t.Fatalf("NewCartExpiryJob: %v", err)
	}
	job, ok := jobIface.(*cartExpiryJob)
	if !ok {
		t.Fatalf("expected cartExpiryJob, got %T", jobIface)
	}
	return job
}

func TestCartExpiryJobDeletesAtCurrentTime(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	carts := &fakeCartExpirer{deleted: 7}
	job := newCartExpiryJob(t, carts)
	job.now = func() time.Time { return now }

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !carts.lastCutoff.Equal(now) {
		t.Fatalf("expected cutoff %s, got %s", now, carts.lastCutoff)
	}
	if carts.called != 1 {
		t.Fatalf("expected one sweep, got %d", carts.called)
	}
}

func TestCartExpiryJobPropagatesErrors(t *testing.T) {
	carts := &fakeCartExpirer{err: errors.New("boom")}
	job := newCartExpiryJob(t, carts)

	if err := job.Run(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}

func TestNewCartExpiryJobRequiresService(t *testing.T) {
	_, err := NewCartExpiryJob(CartExpiryJobParams{
		Logger: logger.New(logger.Options{ServiceName: "test"}),
	})
	if err == nil {
		t.Fatal("expected error when carts service missing")
	}
}
