package torrents

import (
	"context"
	"os"
	"path/filepath"
	"sort"
)

// DirAdapter is a ClientAdapter that maps each torrent hash to a
// directory under a base download path. It stands in for a full
// protocol adapter in deployments where the client downloads into
// per-hash directories.
type DirAdapter struct {
	base string
}

// NewDirAdapter creates a DirAdapter rooted at base.
func NewDirAdapter(base string) *DirAdapter {
	return &DirAdapter{base: base}
}

// ContentFiles lists the files of base/<hash> in name order and selects
// the ones named by the indices expression.
func (a *DirAdapter) ContentFiles(ctx context.Context, hash, indices string) ([]ContentFile, error) {
	dir := filepath.Join(a.base, hash)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, ErrNotFound
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	selected, err := ParseIndices(indices, len(names))
	if err != nil {
		return nil, ErrNotFound
	}

	files := make([]ContentFile, 0, len(selected))
	for _, i := range selected {
		path := filepath.Join(dir, names[i])
		info, err := os.Stat(path)
		if err != nil {
			return nil, ErrNotFound
		}
		files = append(files, ContentFile{
			Index: i,
			Path:  path,
			Name:  names[i],
			Size:  info.Size(),
		})
	}
	if len(files) == 0 {
		return nil, ErrNotFound
	}
	return files, nil
}
