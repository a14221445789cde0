package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"openway/internal/model"
	"openway/internal/queue"
	"openway/internal/repository"
)

type mockPublisher struct {
	events []queue.SentimentEvent
	err    error
}

func (m *mockPublisher) Publish(ctx context.Context, stream string, event queue.SentimentEvent) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	m.events = append(m.events, event)
	return "1-0", nil
}

type failingHistory struct{}

func (failingHistory) Create(ctx context.Context, r *model.SentimentRecord) error {
	return errors.New("db down")
}

func newInferenceServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer hf_test", r.Header.Get("Authorization"))

		var req struct {
			Inputs string `json:"inputs"`
		}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.NotEmpty(t, req.Inputs)

		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

const positiveBody = `[[{"label":"POSITIVE","score":0.9998},{"label":"NEGATIVE","score":0.0002}]]`

func TestSentimentService_Analyze_WritesHistory(t *testing.T) {
	srv := newInferenceServer(t, http.StatusOK, positiveBody)
	history := &repository.MemorySentimentRepository{}
	svc := NewSentimentService(srv.URL, "hf_test", srv.Client(), nil, history, nil)

	label, err := svc.Analyze(context.Background(), "abc123", "I love this app")
	require.NoError(t, err)
	assert.Equal(t, model.SentimentPositive, label)

	records := history.Records()
	require.Len(t, records, 1)
	assert.Equal(t, model.DeviceID("abc123"), records[0].DeviceID)
	assert.Equal(t, "I love this app", records[0].Text)
	assert.Equal(t, model.SentimentPositive, records[0].Sentiment)
}

func TestSentimentService_Analyze_PublishesWhenWired(t *testing.T) {
	srv := newInferenceServer(t, http.StatusOK, positiveBody)
	history := &repository.MemorySentimentRepository{}
	pub := &mockPublisher{}
	svc := NewSentimentService(srv.URL, "hf_test", srv.Client(), pub, history, nil)

	_, err := svc.Analyze(context.Background(), "abc123", "great")
	require.NoError(t, err)

	require.Len(t, pub.events, 1)
	assert.Equal(t, queue.EventSentimentAnalyzed, pub.events[0].Type)
	assert.Equal(t, "abc123", pub.events[0].DeviceID)
	assert.Empty(t, history.Records(), "the worker writes history, not the service")
}

func TestSentimentService_Analyze_HistoryFailureIgnored(t *testing.T) {
	srv := newInferenceServer(t, http.StatusOK, positiveBody)

	label, err := NewSentimentService(srv.URL, "hf_test", srv.Client(), nil, failingHistory{}, nil).
		Analyze(context.Background(), "abc123", "great")
	require.NoError(t, err)
	assert.Equal(t, model.SentimentPositive, label)

	label, err = NewSentimentService(srv.URL, "hf_test", srv.Client(), &mockPublisher{err: errors.New("redis down")}, nil, nil).
		Analyze(context.Background(), "abc123", "great")
	require.NoError(t, err)
	assert.Equal(t, model.SentimentPositive, label)
}

func TestSentimentService_Analyze_EmptyText(t *testing.T) {
	svc := NewSentimentService("http://unused", "", nil, nil, nil, nil)

	_, err := svc.Analyze(context.Background(), "abc123", "")
	assert.ErrorIs(t, err, model.ErrEmptyText)
}

func TestSentimentService_Analyze_WhitespaceIsSent(t *testing.T) {
	srv := newInferenceServer(t, http.StatusOK, positiveBody)
	svc := NewSentimentService(srv.URL, "hf_test", srv.Client(), nil, nil, nil)

	label, err := svc.Analyze(context.Background(), "abc123", "   ")
	require.NoError(t, err)
	assert.Equal(t, model.SentimentPositive, label)
}

func TestSentimentService_Analyze_Failures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"model loading", http.StatusServiceUnavailable, `{"error":"Model is currently loading"}`},
		{"unauthorized", http.StatusUnauthorized, `{"error":"Invalid token"}`},
		{"empty", http.StatusOK, `[]`},
		{"garbage", http.StatusOK, `not json`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newInferenceServer(t, tt.status, tt.body)
			history := &repository.MemorySentimentRepository{}

			_, err := NewSentimentService(srv.URL, "hf_test", srv.Client(), nil, history, nil).
				Analyze(context.Background(), "abc123", "text")
			assert.ErrorIs(t, err, model.ErrSentimentFailed)
			assert.Empty(t, history.Records())
		})
	}
}
