package storage

import (
	"context"
	"errors"
	"time"

	"github.com/org/floodgate/pkg/models"
)

// ErrNotFound is returned when a requested resource does not exist.
var ErrNotFound = errors.New("not found")

// ErrAlreadyExists is returned when trying to create a resource that already exists.
var ErrAlreadyExists = errors.New("already exists")

// Backend defines the persistence interface for Floodgate.
type Backend interface {
	// Users
	CreateUser(ctx context.Context, user *models.User) error
	GetUser(ctx context.Context, username string) (*models.User, error)
	CountUsers(ctx context.Context) (int64, error)

	// Settings
	GetSettings(ctx context.Context, username string) (models.Settings, error)
	MergeSettings(ctx context.Context, username string, patch models.Settings) error

	// Notifications
	AddNotification(ctx context.Context, n *models.Notification) error
	ListNotifications(ctx context.Context, username string, limit, start int) (*models.NotificationPage, error)
	ClearNotifications(ctx context.Context, username string) error

	// Transfer history
	WriteSnapshot(ctx context.Context, s *models.TransferSnapshot) error
	QuerySnapshots(ctx context.Context, since time.Time, limit int) ([]*models.TransferSnapshot, error)

	// Lifecycle
	Close()
}
