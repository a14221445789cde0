package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"openway/internal/model"
)

type sentimentAttributes struct {
	DeviceID  string `json:"deviceId"`
	Text      string `json:"text"`
	Sentiment string `json:"sentiment"`
	CreatedAt string `json:"createdAt"`
}

type docstoreSentimentRepository struct {
	api          DocumentAPI
	databaseID   string
	collectionID string
}

func NewDocstoreSentimentRepository(api DocumentAPI, databaseID, collectionID string) SentimentHistoryRepository {
	return &docstoreSentimentRepository{
		api:          api,
		databaseID:   databaseID,
		collectionID: collectionID,
	}
}

// Create writes the record under its id, or a fresh unique one when unset.
// A record whose id already exists was written before and counts as stored.
func (r *docstoreSentimentRepository) Create(ctx context.Context, record *model.SentimentRecord) error {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}

	attrs := sentimentAttributes{
		DeviceID:  record.DeviceID.String(),
		Text:      record.Text,
		Sentiment: record.Sentiment,
		CreatedAt: record.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
	if _, err := r.api.CreateDocument(ctx, r.databaseID, r.collectionID, record.ID, attrs); err != nil {
		if errors.Is(err, model.ErrConflict) {
			return nil
		}
		return fmt.Errorf("create sentiment record: %w", err)
	}
	return nil
}
