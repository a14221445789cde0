package docstore

import (
	"encoding/json"
	"fmt"
	"net/http"

	"openway/internal/model"
)

// Document is a stored record: system attributes plus the raw JSON body.
type Document struct {
	ID           string `json:"$id"`
	CollectionID string `json:"$collectionId"`
	DatabaseID   string `json:"$databaseId"`
	CreatedAt    string `json:"$createdAt"`
	UpdatedAt    string `json:"$updatedAt"`

	raw json.RawMessage
}

// Decode unmarshals the document's attributes into v.
func (d *Document) Decode(v any) error {
	return json.Unmarshal(d.raw, v)
}

func parseDocument(body []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, err
	}
	doc.raw = append(json.RawMessage(nil), body...)
	return &doc, nil
}

// APIError is a non-2xx response from the document API.
type APIError struct {
	StatusCode int    `json:"-"`
	Code       int    `json:"code"`
	Type       string `json:"type"`
	Message    string `json:"message"`
}

func (e *APIError) Error() string {
	if e.Type != "" {
		return fmt.Sprintf("docstore: %d %s: %s", e.StatusCode, e.Type, e.Message)
	}
	return fmt.Sprintf("docstore: %d: %s", e.StatusCode, e.Message)
}

// Unwrap maps 404 and 409 onto the shared sentinel errors.
func (e *APIError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusNotFound:
		return model.ErrNotFound
	case http.StatusConflict:
		return model.ErrConflict
	}
	return nil
}

func parseAPIError(status int, body []byte) error {
	apiErr := &APIError{StatusCode: status}
	if err := json.Unmarshal(body, apiErr); err != nil || apiErr.Message == "" {
		apiErr.Message = http.StatusText(status)
	}
	apiErr.StatusCode = status
	return apiErr
}
