package repository

import (
	"context"
	"fmt"

	"openway/internal/docstore"
	"openway/internal/model"
)

// DocumentAPI is the part of *docstore.Client the repositories use.
type DocumentAPI interface {
	GetDocument(ctx context.Context, databaseID, collectionID, documentID string) (*docstore.Document, error)
	CreateDocument(ctx context.Context, databaseID, collectionID, documentID string, data any) (*docstore.Document, error)
	UpdateDocument(ctx context.Context, databaseID, collectionID, documentID string, data any) (*docstore.Document, error)
}

type themeAttributes struct {
	IsDarkMode bool `json:"isDarkMode"`
}

type docstoreThemeRepository struct {
	api          DocumentAPI
	databaseID   string
	collectionID string
}

// NewDocstoreThemeRepository keeps preferences in one collection, keyed by device id.
func NewDocstoreThemeRepository(api DocumentAPI, databaseID, collectionID string) ThemePreferenceRepository {
	return &docstoreThemeRepository{
		api:          api,
		databaseID:   databaseID,
		collectionID: collectionID,
	}
}

func (r *docstoreThemeRepository) Get(ctx context.Context, id model.DeviceID) (*model.ThemePreference, error) {
	doc, err := r.api.GetDocument(ctx, r.databaseID, r.collectionID, id.String())
	if err != nil {
		return nil, fmt.Errorf("get theme preference: %w", err)
	}

	var attrs themeAttributes
	if err := doc.Decode(&attrs); err != nil {
		return nil, fmt.Errorf("decode theme preference: %w", err)
	}
	return &model.ThemePreference{ID: id, IsDarkMode: attrs.IsDarkMode}, nil
}

func (r *docstoreThemeRepository) Create(ctx context.Context, id model.DeviceID, isDarkMode bool) error {
	_, err := r.api.CreateDocument(ctx, r.databaseID, r.collectionID, id.String(), themeAttributes{IsDarkMode: isDarkMode})
	if err != nil {
		return fmt.Errorf("create theme preference: %w", err)
	}
	return nil
}

func (r *docstoreThemeRepository) Update(ctx context.Context, id model.DeviceID, isDarkMode bool) error {
	_, err := r.api.UpdateDocument(ctx, r.databaseID, r.collectionID, id.String(), themeAttributes{IsDarkMode: isDarkMode})
	if err != nil {
		return fmt.Errorf("update theme preference: %w", err)
	}
	return nil
}
