package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"openway/internal/model"
)

type postgresSentimentRepository struct {
	db *sqlx.DB
}

func NewPostgresSentimentRepository(db *sqlx.DB) SentimentHistoryRepository {
	return &postgresSentimentRepository{db: db}
}

func (r *postgresSentimentRepository) Create(ctx context.Context, record *model.SentimentRecord) error {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO sentiment_history (id, device_id, text, sentiment, created_at)
		VALUES (:id, :device_id, :text, :sentiment, :created_at)
		ON CONFLICT (id) DO NOTHING
	`
	if _, err := r.db.NamedExecContext(ctx, query, record); err != nil {
		return fmt.Errorf("create sentiment record: %w", err)
	}
	return nil
}
