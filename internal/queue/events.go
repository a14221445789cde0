package queue

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"openway/internal/model"
)

// Event types for the sentiment stream
const (
	EventSentimentAnalyzed = "sentiment_analyzed"
)

// Stream names
const (
	StreamSentiment = "stream:sentiment"
)

// Consumer group name for history workers
const (
	ConsumerGroupSentiment = "sentiment_history_workers"
)

// SentimentEvent is published after a successful analysis. Workers turn it
// into a history record.
type SentimentEvent struct {
	Type      string `json:"type"`
	Timestamp int64  `json:"timestamp"` // Unix nanoseconds when analysis finished

	DeviceID  string `json:"device_id"`
	Text      string `json:"text"`
	Sentiment string `json:"sentiment"`

	// MessageID is the stream entry id, set on delivery. Not part of the payload.
	MessageID string `json:"-"`
}

// historyNamespace scopes record ids derived from stream entry ids.
var historyNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("openway:"+StreamSentiment))

func NewSentimentAnalyzedEvent(deviceID model.DeviceID, text, sentiment string) SentimentEvent {
	return SentimentEvent{
		Type:      EventSentimentAnalyzed,
		Timestamp: time.Now().UnixNano(),
		DeviceID:  deviceID.String(),
		Text:      text,
		Sentiment: sentiment,
	}
}

// Record converts the event to the history record it describes. A delivered
// event always maps to the same record id, so a redelivery overwrites nothing
// and adds nothing.
func (e SentimentEvent) Record() *model.SentimentRecord {
	var id string
	if e.MessageID != "" {
		id = uuid.NewSHA1(historyNamespace, []byte(e.MessageID)).String()
	}
	return &model.SentimentRecord{
		ID:        id,
		DeviceID:  model.DeviceID(e.DeviceID),
		Text:      e.Text,
		Sentiment: e.Sentiment,
		CreatedAt: time.Unix(0, e.Timestamp).UTC(),
	}
}

// ToMap converts the event to XADD field-value pairs. The payload is JSON
// in a "data" field.
func (e SentimentEvent) ToMap() (map[string]interface{}, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("marshal event: %w", err)
	}
	return map[string]interface{}{
		"type": e.Type,
		"data": string(data),
	}, nil
}

// ParseSentimentEvent parses a SentimentEvent from stream message values.
func ParseSentimentEvent(values map[string]interface{}) (SentimentEvent, error) {
	data, ok := values["data"].(string)
	if !ok {
		return SentimentEvent{}, fmt.Errorf("missing or invalid 'data' field")
	}

	var event SentimentEvent
	if err := json.Unmarshal([]byte(data), &event); err != nil {
		return SentimentEvent{}, fmt.Errorf("unmarshal event: %w", err)
	}
	return event, nil
}
