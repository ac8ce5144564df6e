package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"teamup-board-api/internal/metrics"
	"teamup-board-api/internal/realtime"
)

// EventPublisher sends board change events to subscribers
type EventPublisher interface {
	Publish(ctx context.Context, event realtime.ChangeEvent) error
}

// changeNotifier publishes row changes. Failures are logged and never fail the write.
type changeNotifier struct {
	publisher EventPublisher
	metrics   *metrics.Metrics
	logger    *zap.Logger
}

func (n changeNotifier) notify(ctx context.Context, table realtime.Table, eventType realtime.EventType, boardID uuid.UUID, newRow, oldRow interface{}) {
	if n.publisher == nil {
		return
	}
	event, err := realtime.NewChangeEvent(table, eventType, boardID, newRow, oldRow)
	if err != nil {
		n.logger.Error("Failed to encode change event", zap.String("table", string(table)), zap.Error(err))
		return
	}
	if err := n.publisher.Publish(ctx, event); err != nil {
		n.logger.Warn("Failed to publish change event",
			zap.String("board_id", boardID.String()),
			zap.String("table", string(table)),
			zap.Error(err))
		return
	}
	n.metrics.IncrementRealtimeEvent(string(table) + ":" + string(eventType))
}
