package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/lucasmedrano/tourmarket-backend/pkg/logger"
)

// CartExpiryJobParams configure the abandoned cart sweeper.
type CartExpiryJobParams struct {
	Logger *logger.Logger
	Carts  cartExpirer
}

type cartExpirer interface {
	DeleteExpired(ctx context.Context, cutoff time.Time) (int64, error)
}

// NewCartExpiryJob builds the cron job that drops carts past their expiry.
func NewCartExpiryJob(params CartExpiryJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Carts == nil {
		return nil, fmt.Errorf("carts service required")
	}
	return &cartExpiryJob{
		logg:  params.Logger,
		carts: params.Carts,
		now:   time.Now,
	}, nil
}

type cartExpiryJob struct {
	logg  *logger.Logger
	carts cartExpirer
	now   func() time.Time
}

func (j *cartExpiryJob) Name() string { return "cart-expiry" }

func (j *cartExpiryJob) Run(ctx context.Context) error {
	cutoff := j.now().UTC()
	deleted, err := j.carts.DeleteExpired(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("cart expiry: %w", err)
	}
	logCtx := j.logg.WithFields(ctx, map[string]any{
		"cutoff":       cutoff,
		"rows_deleted": deleted,
	})
	j.logg.Info(logCtx, "cart expiry sweep complete")
	return nil
}
