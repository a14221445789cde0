package docstore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"openway/internal/logger"
)

// Config is what the client needs to reach one project.
type Config struct {
	Endpoint  string // e.g. https://cloud.appwrite.io/v1
	ProjectID string
	APIKey    string // optional server key

	// HTTPClient defaults to a client without a timeout; the caller's
	// context bounds every request.
	HTTPClient *http.Client
}

// Client talks to an Appwrite-compatible document database over REST.
// It is constructed explicitly and injected; there is no package-level client.
type Client struct {
	endpoint   string
	projectID  string
	apiKey     string
	httpClient *http.Client
	log        *zap.Logger
}

func NewClient(cfg Config, log *zap.Logger) (*Client, error) {
	if cfg.Endpoint == "" {
		return nil, errors.New("docstore: endpoint is required")
	}
	if cfg.ProjectID == "" {
		return nil, errors.New("docstore: project id is required")
	}
	if _, err := url.Parse(cfg.Endpoint); err != nil {
		return nil, fmt.Errorf("docstore: parse endpoint: %w", err)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	return &Client{
		endpoint:   strings.TrimSuffix(cfg.Endpoint, "/"),
		projectID:  cfg.ProjectID,
		apiKey:     cfg.APIKey,
		httpClient: httpClient,
		log:        logger.OrNop(log).Named("docstore"),
	}, nil
}

// GetDocument fetches one document. A missing document yields an *APIError
// matching model.ErrNotFound.
func (c *Client) GetDocument(ctx context.Context, databaseID, collectionID, documentID string) (*Document, error) {
	return c.do(ctx, http.MethodGet, documentPath(databaseID, collectionID, documentID), nil)
}

// CreateDocument creates a document with a caller-chosen id. An existing id
// yields an *APIError matching model.ErrConflict.
func (c *Client) CreateDocument(ctx context.Context, databaseID, collectionID, documentID string, data any) (*Document, error) {
	body := createRequest{DocumentID: documentID, Data: data}
	return c.do(ctx, http.MethodPost, collectionPath(databaseID, collectionID), body)
}

// UpdateDocument patches the attributes of an existing document.
func (c *Client) UpdateDocument(ctx context.Context, databaseID, collectionID, documentID string, data any) (*Document, error) {
	body := updateRequest{Data: data}
	return c.do(ctx, http.MethodPatch, documentPath(databaseID, collectionID, documentID), body)
}

type createRequest struct {
	DocumentID string `json:"documentId"`
	Data       any    `json:"data"`
}

type updateRequest struct {
	Data any `json:"data"`
}

func collectionPath(databaseID, collectionID string) string {
	return "/databases/" + url.PathEscape(databaseID) + "/collections/" + url.PathEscape(collectionID) + "/documents"
}

func documentPath(databaseID, collectionID, documentID string) string {
	return collectionPath(databaseID, collectionID) + "/" + url.PathEscape(documentID)
}

func (c *Client) do(ctx context.Context, method, path string, body any) (*Document, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("docstore: marshal body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint+path, reader)
	if err != nil {
		return nil, fmt.Errorf("docstore: create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Appwrite-Project", c.projectID)
	if c.apiKey != "" {
		req.Header.Set("X-Appwrite-Key", c.apiKey)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("docstore: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("docstore: read response: %w", err)
	}

	c.log.Debug("request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, parseAPIError(resp.StatusCode, respBody)
	}

	doc, err := parseDocument(respBody)
	if err != nil {
		return nil, fmt.Errorf("docstore: decode document: %w", err)
	}
	return doc, nil
}
