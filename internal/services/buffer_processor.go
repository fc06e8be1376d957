package services

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/fastygo/trucar/domain"
	"github.com/fastygo/trucar/internal/infrastructure/buffer"
	"github.com/fastygo/trucar/usecase"
)

// ConnectionHealth abstracts the connection monitor functionality.
type ConnectionHealth interface {
	IsOnline() bool
}

// ProcessorConfig controls how frequently the outbox is drained.
type ProcessorConfig struct {
	Interval   time.Duration
	BatchSize  int
	MaxRetries int
	// MaxAge drops items queued longer ago than this; zero keeps them forever.
	MaxAge time.Duration
	// CurrentUser returns the logged-in user id, or 0 without a session.
	// When set, items are only replayed under the session that queued them.
	CurrentUser func() int
}

// DrainReport summarizes one pass over the outbox.
type DrainReport struct {
	Sent     int
	Requeued int
	Dropped  int
	Expired  int
	// Held counts items queued by another user, left for their next session.
	Held        int
	Skipped     bool
	Interrupted bool
}

// BufferProcessor replays deferred submissions through dispatcher commands.
type BufferProcessor struct {
	store      *buffer.Store
	monitor    ConnectionHealth
	dispatcher *usecase.Dispatcher
	logger     *zap.Logger
	cron       *cron.Cron
	cfg        ProcessorConfig
}

func NewBufferProcessor(
	store *buffer.Store,
	monitor ConnectionHealth,
	dispatcher *usecase.Dispatcher,
	logger *zap.Logger,
	cfg ProcessorConfig,
) *BufferProcessor {
	if cfg.Interval < time.Second {
		cfg.Interval = 30 * time.Second
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

	bp := &BufferProcessor{
		store:      store,
		monitor:    monitor,
		dispatcher: dispatcher,
		logger:     logger,
		cfg:        cfg,
		cron:       cron.New(cron.WithSeconds()),
	}

	schedule := fmt.Sprintf("@every %ds", int(cfg.Interval.Seconds()))
	_, _ = bp.cron.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Interval)
		defer cancel()
		if _, err := bp.Drain(ctx); err != nil {
			bp.logger.Error("outbox drain failed", zap.Error(err))
		}
	})

	return bp
}

// Start launches the cron scheduler.
func (bp *BufferProcessor) Start() {
	if bp == nil || bp.cron == nil {
		return
	}
	bp.cron.Start()
	bp.logger.Debug("outbox processor started")
}

// Stop gracefully stops the scheduler, waiting for a running drain.
func (bp *BufferProcessor) Stop(ctx context.Context) {
	if bp == nil || bp.cron == nil {
		return
	}
	stopCtx := bp.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-ctx.Done():
	}
	bp.logger.Debug("outbox processor stopped")
}

// Drain replays one batch synchronously. It is skipped while the monitor
// reports the API offline or nobody is logged in. Items belonging to another
// user are left untouched. A transport or authorization failure interrupts the
// pass without charging a retry.
func (bp *BufferProcessor) Drain(ctx context.Context) (DrainReport, error) {
	var report DrainReport
	if bp == nil || bp.store == nil {
		return report, nil
	}
	if bp.cfg.MaxAge > 0 {
		expired, err := bp.store.Cleanup(time.Now().Add(-bp.cfg.MaxAge))
		if err != nil {
			return report, err
		}
		if expired > 0 {
			bp.logger.Warn("expired outbox items removed", zap.Int("count", expired), zap.Duration("max_age", bp.cfg.MaxAge))
		}
		report.Expired = expired
	}
	if bp.monitor != nil && !bp.monitor.IsOnline() {
		bp.logger.Debug("skipping outbox drain (offline)")
		report.Skipped = true
		return report, nil
	}
	owner := 0
	if bp.cfg.CurrentUser != nil {
		if owner = bp.cfg.CurrentUser(); owner == 0 {
			bp.logger.Debug("skipping outbox drain (no session)")
			report.Skipped = true
			return report, nil
		}
	}

	items, err := bp.store.GetBatch(bp.cfg.BatchSize)
	if err != nil {
		return report, err
	}

	for _, item := range items {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		if owner != 0 && item.UserID != 0 && item.UserID != owner {
			report.Held++
			continue
		}

		err := bp.dispatcher.ExecuteCommand(ctx, item.Command(), item.Data)
		if err == nil {
			report.Sent++
			if err := bp.store.Remove(item); err != nil {
				bp.logger.Warn("failed to purge replayed outbox item", zap.Error(err))
			}
			continue
		}

		bp.logger.Warn("failed to replay outbox item",
			zap.String("item_id", item.ID),
			zap.String("command", item.Command()),
			zap.Int("user_id", item.UserID),
			zap.Error(err))

		if interrupts(err) {
			report.Interrupted = true
			break
		}

		item.Retries++
		item.LastError = err.Error()
		if item.Retries >= bp.cfg.MaxRetries {
			bp.logger.Warn("dropping outbox item (max retries reached)", zap.String("item_id", item.ID))
			report.Dropped++
			_ = bp.store.Remove(item)
			continue
		}
		report.Requeued++
		if err := bp.store.Requeue(item); err != nil {
			bp.logger.Error("failed to requeue outbox item", zap.Error(err))
		}
	}
	return report, nil
}

// interrupts reports failures that say nothing about the item itself.
func interrupts(err error) bool {
	switch domain.CodeOf(err) {
	case domain.ErrCodeTransport, domain.ErrCodeUnauthorized:
		return true
	default:
		return false
	}
}

// Enqueue persists an item for later replay.
func (bp *BufferProcessor) Enqueue(item buffer.Item) error {
	if bp == nil || bp.store == nil {
		return fmt.Errorf("outbox processor not configured")
	}
	return bp.store.Enqueue(item)
}

// Pending returns the queued items without removing them.
func (bp *BufferProcessor) Pending(limit int) ([]buffer.Item, error) {
	if bp == nil || bp.store == nil {
		return nil, nil
	}
	return bp.store.GetBatch(limit)
}

// Size returns the number of queued items.
func (bp *BufferProcessor) Size() int {
	if bp == nil || bp.store == nil {
		return 0
	}
	size, err := bp.store.Size()
	if err != nil {
		return 0
	}
	return size
}
