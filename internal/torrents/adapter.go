// Package torrents defines the boundary to the torrent-client protocol
// adapters. The client itself is an external collaborator; handlers
// consume it through the ClientAdapter interface only.
package torrents

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a hash or content index does not resolve
// to any known file.
var ErrNotFound = errors.New("content not found")

// ContentFile is one file within a torrent's content set.
type ContentFile struct {
	Index int    `json:"index"`
	Path  string `json:"path"` // absolute path on the host filesystem
	Name  string `json:"name"`
	Size  int64  `json:"size"`
}

// ClientAdapter resolves torrent content for already-authorized
// requests. Implementations wrap a concrete torrent client's protocol.
type ClientAdapter interface {
	// ContentFiles returns the files selected by the indices expression
	// for the torrent identified by hash, in index order.
	ContentFiles(ctx context.Context, hash, indices string) ([]ContentFile, error)
}
