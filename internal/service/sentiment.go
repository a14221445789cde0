package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"openway/internal/model"
	"openway/internal/queue"
	"openway/internal/repository"
)

// SentimentService classifies text with a hosted inference model and keeps
// a write-only history of the results.
type SentimentService struct {
	url       string
	token     string
	client    *http.Client
	publisher queue.Publisher                       // optional
	history   repository.SentimentHistoryRepository // used when publisher is nil
	log       *zap.Logger
}

func NewSentimentService(
	url, token string,
	client *http.Client,
	publisher queue.Publisher,
	history repository.SentimentHistoryRepository,
	log *zap.Logger,
) *SentimentService {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &SentimentService{
		url:       url,
		token:     token,
		client:    client,
		publisher: publisher,
		history:   history,
		log:       log.Named("sentiment"),
	}
}

type inferenceRequest struct {
	Inputs string `json:"inputs"`
}

type inferenceLabel struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// Analyze returns the top label for text. History failures are logged and
// do not affect the result.
func (s *SentimentService) Analyze(ctx context.Context, deviceID model.DeviceID, text string) (string, error) {
	if text == "" {
		return "", model.ErrEmptyText
	}

	body, err := json.Marshal(inferenceRequest{Inputs: text})
	if err != nil {
		return "", fmt.Errorf("encode inference request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build inference request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}

	start := time.Now()
	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("inference request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		s.log.Warn("inference rejected", zap.Int("status", resp.StatusCode), zap.ByteString("body", msg))
		return "", fmt.Errorf("%w: status %d", model.ErrSentimentFailed, resp.StatusCode)
	}

	var out [][]inferenceLabel
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("%w: decode response: %v", model.ErrSentimentFailed, err)
	}
	if len(out) == 0 || len(out[0]) == 0 || out[0][0].Label == "" {
		return "", fmt.Errorf("%w: empty response", model.ErrSentimentFailed)
	}
	label := out[0][0].Label

	s.log.Debug("text classified",
		zap.String("label", label),
		zap.Float64("score", out[0][0].Score),
		zap.Duration("duration", time.Since(start)),
	)

	s.record(ctx, deviceID, text, label)
	return label, nil
}

func (s *SentimentService) record(ctx context.Context, deviceID model.DeviceID, text, label string) {
	if s.publisher != nil {
		event := queue.NewSentimentAnalyzedEvent(deviceID, text, label)
		if _, err := s.publisher.Publish(ctx, queue.StreamSentiment, event); err != nil {
			s.log.Error("publish sentiment event failed", zap.String("device_id", deviceID.String()), zap.Error(err))
		}
		return
	}
	if s.history == nil {
		return
	}

	rec := &model.SentimentRecord{DeviceID: deviceID, Text: text, Sentiment: label}
	if err := s.history.Create(ctx, rec); err != nil {
		s.log.Error("save sentiment history failed", zap.String("device_id", deviceID.String()), zap.Error(err))
	}
}
