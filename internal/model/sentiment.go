package model

import "time"

// SentimentRecord is one analysis result kept as write-only history.
type SentimentRecord struct {
	ID        string    `db:"id" json:"-"`
	DeviceID  DeviceID  `db:"device_id" json:"deviceId"`
	Text      string    `db:"text" json:"text"`
	Sentiment string    `db:"sentiment" json:"sentiment"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// SentimentRequest is the request body for POST /v1/sentiment.
type SentimentRequest struct {
	Text string `json:"text"`
}

// SentimentResponse is returned by POST /v1/sentiment.
type SentimentResponse struct {
	Sentiment string `json:"sentiment"`
}

// Labels produced by the default sentiment model
const (
	SentimentPositive = "POSITIVE"
	SentimentNegative = "NEGATIVE"
)
