// Package settings stores per-user client settings as an opaque
// property map.
package settings

import (
	"context"
	"fmt"

	"github.com/org/floodgate/internal/storage"
	"github.com/org/floodgate/pkg/models"
)

// Service reads and writes user settings.
type Service struct {
	store storage.Backend
}

// NewService creates a settings Service backed by the given storage.
func NewService(store storage.Backend) *Service {
	return &Service{store: store}
}

// Get returns the user's settings. When property is non-empty, the
// result is narrowed to that single property; an unknown property
// yields storage.ErrNotFound.
func (s *Service) Get(ctx context.Context, username, property string) (models.Settings, error) {
	all, err := s.store.GetSettings(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("loading settings: %w", err)
	}
	if property == "" {
		return all, nil
	}
	v, ok := all[property]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return models.Settings{property: v}, nil
}

// Set merges the patch into the user's settings and returns the saved
// subset.
func (s *Service) Set(ctx context.Context, username string, patch models.Settings) (models.Settings, error) {
	if len(patch) == 0 {
		return models.Settings{}, nil
	}
	if err := s.store.MergeSettings(ctx, username, patch); err != nil {
		return nil, fmt.Errorf("saving settings: %w", err)
	}
	return patch, nil
}
