// Package notify stores and serves per-user notifications.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/org/floodgate/internal/storage"
	"github.com/org/floodgate/pkg/models"
)

const defaultPageSize = 10

// Service manages a user's notification feed.
type Service struct {
	store storage.Backend
}

// NewService creates a notification Service backed by the given storage.
func NewService(store storage.Backend) *Service {
	return &Service{store: store}
}

// Post records a new notification for the user.
func (s *Service) Post(ctx context.Context, username, typ string, data json.RawMessage) error {
	n := &models.Notification{
		Username:  username,
		Type:      typ,
		Data:      data,
		Timestamp: time.Now().UTC(),
	}
	if err := s.store.AddNotification(ctx, n); err != nil {
		return fmt.Errorf("adding notification: %w", err)
	}
	return nil
}

// List returns one page of the user's notifications, newest first.
func (s *Service) List(ctx context.Context, username string, limit, start int) (*models.NotificationPage, error) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	if start < 0 {
		start = 0
	}
	return s.store.ListNotifications(ctx, username, limit, start)
}

// Clear removes all of the user's notifications.
func (s *Service) Clear(ctx context.Context, username string) error {
	return s.store.ClearNotifications(ctx, username)
}
