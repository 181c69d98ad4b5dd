// Package fsguard confines request-supplied filesystem paths to a
// configured allow-list of roots. Every handler that touches the host
// filesystem on behalf of a request goes through a Guard first.
package fsguard

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var (
	// ErrEmptyPath is returned for a missing or empty input path,
	// before any filesystem access.
	ErrEmptyPath = errors.New("path is missing or empty")

	// ErrDenied is returned when a resolved path falls outside every
	// allow-list root, also before any filesystem access.
	ErrDenied = errors.New("path is outside allowed directories")
)

// Guard holds the allow-list of root directories, normalized once at
// construction and immutable afterwards.
type Guard struct {
	roots []string
}

// New creates a Guard. The root set must be non-empty in any deployment
// that exposes filesystem browsing; each root is sanitized up front.
func New(roots []string) (*Guard, error) {
	if len(roots) == 0 {
		return nil, errors.New("fsguard: at least one allowed root is required")
	}
	normalized := make([]string, len(roots))
	for i, r := range roots {
		if strings.TrimSpace(r) == "" {
			return nil, fmt.Errorf("fsguard: empty root at index %d", i)
		}
		normalized[i] = Sanitize(r)
	}
	return &Guard{roots: normalized}, nil
}

// Roots returns the normalized allow-list roots.
func (g *Guard) Roots() []string {
	out := make([]string, len(g.roots))
	copy(out, g.roots)
	return out
}

// Sanitize resolves relative segments and separator variants into one
// absolute, normalized form. It is idempotent:
// Sanitize(Sanitize(p)) == Sanitize(p).
func Sanitize(raw string) string {
	p := strings.ReplaceAll(raw, "\\", string(filepath.Separator))
	p = filepath.Clean(p)
	abs, err := filepath.Abs(p)
	if err != nil {
		// filepath.Abs only fails when the working directory is gone;
		// the cleaned path is still the best available form.
		return p
	}
	return abs
}

// IsAllowed reports whether resolved equals or descends from at least
// one allow-list root. resolved must already be in sanitized form.
func (g *Guard) IsAllowed(resolved string) bool {
	for _, root := range g.roots {
		if resolved == root {
			return true
		}
		prefix := root
		if !strings.HasSuffix(prefix, string(filepath.Separator)) {
			prefix += string(filepath.Separator)
		}
		if strings.HasPrefix(resolved, prefix) {
			return true
		}
	}
	return false
}

// Listing is the immediate contents of one allowed directory.
type Listing struct {
	Directories []string `json:"directories"`
	Files       []string `json:"files"`
	HasParent   bool     `json:"hasParent"`
	Path        string   `json:"path"`
	Separator   string   `json:"separator"`
}

// List enumerates the immediate children of raw, classified by a
// filesystem stat. Input validation and containment run before any
// filesystem access.
func (g *Guard) List(raw string) (*Listing, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, ErrEmptyPath
	}
	resolved := Sanitize(raw)
	if !g.IsAllowed(resolved) {
		return nil, ErrDenied
	}

	entries, err := os.ReadDir(resolved)
	if err != nil {
		return nil, fmt.Errorf("reading directory: %w", err)
	}

	listing := &Listing{
		Directories: []string{},
		Files:       []string{},
		HasParent:   hasParent(resolved),
		Path:        resolved,
		Separator:   string(filepath.Separator),
	}
	for _, entry := range entries {
		// Symlinks are classified by their target.
		info, err := os.Stat(filepath.Join(resolved, entry.Name()))
		if err != nil {
			continue
		}
		if info.IsDir() {
			listing.Directories = append(listing.Directories, entry.Name())
		} else {
			listing.Files = append(listing.Files, entry.Name())
		}
	}
	sort.Strings(listing.Directories)
	sort.Strings(listing.Files)
	return listing, nil
}

// hasParent is a display hint derived from the path's shape: true when
// the path has a root-anchored prefix plus at least one more segment.
// It is not a security check and says nothing about readability of the
// parent.
func hasParent(resolved string) bool {
	return filepath.Dir(resolved) != resolved
}
