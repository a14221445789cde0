package worker

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"openway/internal/queue"
	"openway/internal/repository"
)

// HistoryHandler persists analysed sentiment as history records.
type HistoryHandler struct {
	repo repository.SentimentHistoryRepository
	log  *zap.Logger
}

func NewHistoryHandler(repo repository.SentimentHistoryRepository, log *zap.Logger) *HistoryHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &HistoryHandler{repo: repo, log: log.Named("history")}
}

// HandleEvent routes an event by type. Unknown types are ignored.
func (h *HistoryHandler) HandleEvent(ctx context.Context, event queue.SentimentEvent) error {
	switch event.Type {
	case queue.EventSentimentAnalyzed:
		start := time.Now()
		if err := h.repo.Create(ctx, event.Record()); err != nil {
			return fmt.Errorf("store sentiment history: %w", err)
		}
		h.log.Debug("history stored",
			zap.String("device_id", event.DeviceID),
			zap.String("sentiment", event.Sentiment),
			zap.Duration("duration", time.Since(start)),
		)
		return nil
	default:
		h.log.Warn("unknown event type", zap.String("type", event.Type))
		return nil
	}
}
