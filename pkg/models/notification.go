package models

import (
	"encoding/json"
	"time"
)

// Notification is a single event surfaced to a user (torrent finished,
// error, etc). Data is an opaque payload owned by the producer.
type Notification struct {
	ID        int64           `json:"id"`
	Username  string          `json:"-"`
	Type      string          `json:"type"`
	Data      json.RawMessage `json:"data"`
	Read      bool            `json:"read"`
	Timestamp time.Time       `json:"ts"`
}

// NotificationPage is one page of notifications plus counts.
type NotificationPage struct {
	Notifications []*Notification `json:"notifications"`
	Total         int             `json:"total"`
	Unread        int             `json:"unread"`
}
