// Package history records and serves aggregate transfer-rate snapshots.
package history

import (
	"context"
	"fmt"
	"time"

	"github.com/org/floodgate/internal/storage"
	"github.com/org/floodgate/pkg/models"
)

const defaultLimit = 500

// Service records transfer snapshots and answers history queries.
type Service struct {
	store storage.Backend
}

// NewService creates a history Service backed by the given storage.
func NewService(store storage.Backend) *Service {
	return &Service{store: store}
}

// Record persists one transfer-rate sample.
func (s *Service) Record(ctx context.Context, upload, download int64) error {
	snap := &models.TransferSnapshot{
		Timestamp: time.Now().UTC(),
		Upload:    upload,
		Download:  download,
	}
	if err := s.store.WriteSnapshot(ctx, snap); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}
	return nil
}

// Query returns the snapshots within the period's lookback window,
// oldest first, flattened into the chartable series shape.
func (s *Service) Query(ctx context.Context, period models.HistoryPeriod, limit int) (*models.TransferHistory, error) {
	span, ok := period.Span()
	if !ok {
		return nil, fmt.Errorf("unknown history period %q", period)
	}
	if limit <= 0 || limit > defaultLimit {
		limit = defaultLimit
	}

	snaps, err := s.store.QuerySnapshots(ctx, time.Now().UTC().Add(-span), limit)
	if err != nil {
		return nil, fmt.Errorf("querying snapshots: %w", err)
	}

	h := &models.TransferHistory{
		Timestamps: make([]int64, 0, len(snaps)),
		Upload:     make([]int64, 0, len(snaps)),
		Download:   make([]int64, 0, len(snaps)),
	}
	for _, snap := range snaps {
		h.Timestamps = append(h.Timestamps, snap.Timestamp.Unix())
		h.Upload = append(h.Upload, snap.Upload)
		h.Download = append(h.Download, snap.Download)
	}
	return h, nil
}
