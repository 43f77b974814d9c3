package producer

import (
	"context"
	"time"

	"github.com/esnupy/lafa/internal/messaging/kafka"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const (
	defaultBatchSize    = 50
	defaultPollInterval = 2 * time.Second
)

// OutboxRelay drains pending outbox rows and publishes them to Kafka.
// Delivery is at-least-once; consumers dedupe on event id.
type OutboxRelay struct {
	repo   kafka.OutboxRepository
	writer *kafkago.Writer
	logger *zap.Logger

	BatchSize    int
	PollInterval time.Duration
}

func NewOutboxRelay(repo kafka.OutboxRepository, brokers []string, logger *zap.Logger) *OutboxRelay {
	writer := &kafkago.Writer{
		Addr:         kafkago.TCP(brokers...),
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireAll,
		BatchTimeout: 50 * time.Millisecond,
	}

	return &OutboxRelay{
		repo:         repo,
		writer:       writer,
		logger:       logger.Named("outbox_relay"),
		BatchSize:    defaultBatchSize,
		PollInterval: defaultPollInterval,
	}
}

func (w *OutboxRelay) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.PollInterval)
	defer ticker.Stop()

	w.logger.Info("outbox relay started",
		zap.Int("batch_size", w.BatchSize),
		zap.Duration("poll_interval", w.PollInterval),
	)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("outbox relay stopping")
			return w.writer.Close()
		case <-ticker.C:
			if err := w.drainOnce(ctx); err != nil {
				w.logger.Error("outbox drain failed", zap.Error(err))
			}
		}
	}
}

func (w *OutboxRelay) drainOnce(ctx context.Context) error {
	events, err := w.repo.ListPending(ctx, w.BatchSize)
	if err != nil {
		return err
	}

	for _, event := range events {
		if err := kafka.ValidateOutboxEvent(event); err != nil {
			w.logger.Warn("skipping malformed outbox event",
				zap.String("event_id", event.ID),
				zap.Error(err),
			)
			if markErr := w.repo.MarkFailed(ctx, event.ID, err.Error()); markErr != nil {
				return markErr
			}
			continue
		}

		if err := publishEvent(ctx, w.writer, event); err != nil {
			w.logger.Error("publish failed",
				zap.String("event_id", event.ID),
				zap.String("topic", event.Topic),
				zap.Error(err),
			)
			if markErr := w.repo.MarkFailed(ctx, event.ID, err.Error()); markErr != nil {
				return markErr
			}
			continue
		}

		if err := w.repo.MarkSent(ctx, event.ID); err != nil {
			return err
		}

		w.logger.Info("event published",
			zap.String("event_id", event.ID),
			zap.String("topic", event.Topic),
			zap.String("event_type", event.EventType),
		)
	}

	return nil
}
