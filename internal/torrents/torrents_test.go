package torrents

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIndices(t *testing.T) {
	tests := []struct {
		expr    string
		max     int
		want    []int
		wantErr bool
	}{
		{"0", 3, []int{0}, false},
		{"2", 3, []int{2}, false},
		{"0-2", 3, []int{0, 1, 2}, false},
		{"0,2-4", 5, []int{0, 2, 3, 4}, false},
		{"2,0,2", 3, []int{0, 2}, false},
		{"", 3, nil, true},
		{"3", 3, nil, true},
		{"-1", 3, nil, true},
		{"2-0", 3, nil, true},
		{"a", 3, nil, true},
		{"0-b", 3, nil, true},
	}
	for _, tt := range tests {
		got, err := ParseIndices(tt.expr, tt.max)
		if tt.wantErr {
			assert.Error(t, err, "expr %q", tt.expr)
			continue
		}
		require.NoError(t, err, "expr %q", tt.expr)
		assert.Equal(t, tt.want, got, "expr %q", tt.expr)
	}
}

func TestDirAdapterContentFiles(t *testing.T) {
	base := t.TempDir()
	dir := filepath.Join(base, "abc")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "episode1.mkv"), []byte("video"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "episode2.mkv"), []byte("video2"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "subs.vtt"), []byte("subs"), 0o644))

	a := NewDirAdapter(base)

	files, err := a.ContentFiles(context.Background(), "abc", "0-1")
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "episode1.mkv", files[0].Name)
	assert.Equal(t, "episode2.mkv", files[1].Name)
	assert.Equal(t, int64(5), files[0].Size)

	_, err = a.ContentFiles(context.Background(), "missing", "0")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = a.ContentFiles(context.Background(), "abc", "9")
	assert.ErrorIs(t, err, ErrNotFound)
}
