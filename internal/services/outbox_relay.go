package services

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/fgc/catalog/internal/infrastructure/outbox"
)

// ConnectionHealth abstracts the connection monitor functionality.
type ConnectionHealth interface {
	IsOnline() bool
}

// EventPublisher delivers a staged event to the message channel.
type EventPublisher interface {
	Publish(ctx context.Context, item outbox.Item) error
}

// RelayConfig controls how frequently the outbox is drained.
type RelayConfig struct {
	Interval   time.Duration
	BatchSize  int
	MaxRetries int
	Retention  time.Duration
}

// OutboxRelay drains staged domain events and publishes them. Items are
// removed only after a successful publish, so delivery is at-least-once.
type OutboxRelay struct {
	store     *outbox.Store
	monitor   ConnectionHealth
	publisher EventPublisher
	logger    *zap.Logger
	cron      *cron.Cron
	cfg       RelayConfig
}

func NewOutboxRelay(
	store *outbox.Store,
	monitor ConnectionHealth,
	publisher EventPublisher,
	logger *zap.Logger,
	cfg RelayConfig,
) *OutboxRelay {
	if cfg.Interval <= 0 {
		cfg.Interval = 10 * time.Second
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 50
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 3
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	relay := &OutboxRelay{
		store:     store,
		monitor:   monitor,
		publisher: publisher,
		logger:    logger,
		cfg:       cfg,
		cron:      cron.New(cron.WithSeconds()),
	}

	schedule := fmt.Sprintf("@every %ds", int(cfg.Interval.Seconds()))
	_, _ = relay.cron.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Interval)
		defer cancel()
		if err := relay.Drain(ctx); err != nil {
			relay.logger.Error("outbox drain failed", zap.Error(err))
		}
	})

	return relay
}

// Start launches the cron scheduler.
func (r *OutboxRelay) Start() {
	if r == nil || r.cron == nil {
		return
	}
	r.cron.Start()
	r.logger.Info("outbox relay started")
}

// Stop gracefully stops the scheduler, waiting for a running drain.
func (r *OutboxRelay) Stop(ctx context.Context) {
	if r == nil || r.cron == nil {
		return
	}
	stopCtx := r.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-ctx.Done():
	}
	r.logger.Info("outbox relay stopped")
}

// Drain publishes one batch of staged events. Failed items are requeued until
// the retry cap, then dropped with an error log.
func (r *OutboxRelay) Drain(ctx context.Context) error {
	if r.store == nil || r.publisher == nil {
		return nil
	}
	if r.monitor != nil && !r.monitor.IsOnline() {
		r.logger.Debug("skipping outbox drain, dependencies offline")
		return nil
	}

	items, err := r.store.GetBatch(r.cfg.BatchSize)
	if err != nil {
		return err
	}

	for _, item := range items {
		if err := r.publisher.Publish(ctx, item); err != nil {
			r.retry(item, err)
			continue
		}
		if err := r.store.Remove(item); err != nil {
			r.logger.Error("failed to remove published event",
				zap.String("event_id", item.ID), zap.Error(err))
		}
	}

	if r.cfg.Retention > 0 {
		if err := r.store.Cleanup(time.Now().Add(-r.cfg.Retention)); err != nil {
			r.logger.Warn("outbox cleanup failed", zap.Error(err))
		}
	}
	return nil
}

func (r *OutboxRelay) retry(item outbox.Item, cause error) {
	item.Retries++
	if item.Retries >= r.cfg.MaxRetries {
		r.logger.Error("dropping event after retry cap",
			zap.String("event_id", item.ID),
			zap.String("event", item.Name),
			zap.Int("retries", item.Retries),
			zap.Error(cause))
		if err := r.store.Remove(item); err != nil {
			r.logger.Error("failed to drop event", zap.String("event_id", item.ID), zap.Error(err))
		}
		return
	}

	r.logger.Warn("event publish failed, requeueing",
		zap.String("event_id", item.ID),
		zap.Int("retries", item.Retries),
		zap.Error(cause))
	if err := r.store.Remove(item); err != nil {
		r.logger.Error("failed to remove event before requeue", zap.String("event_id", item.ID), zap.Error(err))
	}
	if err := r.store.Requeue(item); err != nil {
		r.logger.Error("failed to requeue event", zap.String("event_id", item.ID), zap.Error(err))
	}
}
