package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/org/floodgate/pkg/models"
)

// PostgresBackend is a Backend backed by PostgreSQL.
type PostgresBackend struct {
	pool *pgxpool.Pool
}

// NewPostgresBackend opens a pgxpool connection and returns a ready backend.
func NewPostgresBackend(ctx context.Context, connStr string) (*PostgresBackend, error) {
	cfg, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		return nil, fmt.Errorf("parsing postgres config: %w", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("pinging postgres: %w", err)
	}
	return &PostgresBackend{pool: pool}, nil
}

func (p *PostgresBackend) Close() {
	p.pool.Close()
}

// --- Users ---

func (p *PostgresBackend) CreateUser(ctx context.Context, user *models.User) error {
	err := p.pool.QueryRow(ctx,
		`INSERT INTO users (username, password_hash, created_at) VALUES ($1, $2, $3) RETURNING id`,
		user.Username, user.PasswordHash, user.CreatedAt,
	).Scan(&user.ID)
	if err != nil && strings.Contains(err.Error(), "duplicate key") {
		return ErrAlreadyExists
	}
	return err
}

func (p *PostgresBackend) GetUser(ctx context.Context, username string) (*models.User, error) {
	row := p.pool.QueryRow(ctx,
		`SELECT id, username, password_hash, created_at FROM users WHERE username = $1`,
		username,
	)
	var u models.User
	if err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (p *PostgresBackend) CountUsers(ctx context.Context) (int64, error) {
	var n int64
	err := p.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&n)
	return n, err
}

// --- Settings ---

func (p *PostgresBackend) GetSettings(ctx context.Context, username string) (models.Settings, error) {
	row := p.pool.QueryRow(ctx,
		`SELECT properties FROM user_settings WHERE username = $1`,
		username,
	)
	var raw []byte
	if err := row.Scan(&raw); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Settings{}, nil
		}
		return nil, err
	}
	var s models.Settings
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("decoding settings: %w", err)
	}
	return s, nil
}

func (p *PostgresBackend) MergeSettings(ctx context.Context, username string, patch models.Settings) error {
	current, err := p.GetSettings(ctx, username)
	if err != nil {
		return err
	}
	for k, v := range patch {
		current[k] = v
	}
	raw, err := json.Marshal(current)
	if err != nil {
		return fmt.Errorf("encoding settings: %w", err)
	}
	_, err = p.pool.Exec(ctx,
		`INSERT INTO user_settings (username, properties, updated_at) VALUES ($1, $2, NOW())
		 ON CONFLICT (username) DO UPDATE SET properties = $2, updated_at = NOW()`,
		username, raw,
	)
	return err
}

// --- Notifications ---

func (p *PostgresBackend) AddNotification(ctx context.Context, n *models.Notification) error {
	return p.pool.QueryRow(ctx,
		`INSERT INTO notifications (username, type, data, read, ts) VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		n.Username, n.Type, []byte(n.Data), n.Read, n.Timestamp,
	).Scan(&n.ID)
}

func (p *PostgresBackend) ListNotifications(ctx context.Context, username string, limit, start int) (*models.NotificationPage, error) {
	page := &models.NotificationPage{Notifications: []*models.Notification{}}

	err := p.pool.QueryRow(ctx,
		`SELECT COUNT(*), COUNT(*) FILTER (WHERE NOT read) FROM notifications WHERE username = $1`,
		username,
	).Scan(&page.Total, &page.Unread)
	if err != nil {
		return nil, err
	}

	rows, err := p.pool.Query(ctx,
		`SELECT id, username, type, data, read, ts
		 FROM notifications
		 WHERE username = $1
		 ORDER BY ts DESC, id DESC
		 LIMIT $2 OFFSET $3`,
		username, limit, start,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var n models.Notification
		var data []byte
		if err := rows.Scan(&n.ID, &n.Username, &n.Type, &data, &n.Read, &n.Timestamp); err != nil {
			return nil, err
		}
		n.Data = json.RawMessage(data)
		page.Notifications = append(page.Notifications, &n)
	}
	return page, rows.Err()
}

func (p *PostgresBackend) ClearNotifications(ctx context.Context, username string) error {
	_, err := p.pool.Exec(ctx, `DELETE FROM notifications WHERE username = $1`, username)
	return err
}

// --- Transfer history ---

func (p *PostgresBackend) WriteSnapshot(ctx context.Context, s *models.TransferSnapshot) error {
	_, err := p.pool.Exec(ctx,
		`INSERT INTO transfer_history (ts, upload, download) VALUES ($1, $2, $3)`,
		s.Timestamp, s.Upload, s.Download,
	)
	return err
}

func (p *PostgresBackend) QuerySnapshots(ctx context.Context, since time.Time, limit int) ([]*models.TransferSnapshot, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT ts, upload, download
		 FROM transfer_history
		 WHERE ts >= $1
		 ORDER BY ts ASC
		 LIMIT $2`,
		since, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.TransferSnapshot
	for rows.Next() {
		var s models.TransferSnapshot
		if err := rows.Scan(&s.Timestamp, &s.Upload, &s.Download); err != nil {
			return nil, err
		}
		out = append(out, &s)
	}
	return out, rows.Err()
}
