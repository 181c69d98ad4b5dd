package fsguard

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeIdempotent(t *testing.T) {
	for _, raw := range []string{
		"/data/downloads",
		"/data/downloads/",
		"/data/./downloads/../downloads",
		"../../etc",
		"relative/path",
		`\data\downloads`,
		"//data//downloads",
	} {
		once := Sanitize(raw)
		assert.Equal(t, once, Sanitize(once), "input %q", raw)
		assert.True(t, filepath.IsAbs(once), "input %q resolved to %q", raw, once)
	}
}

func TestSanitizeResolvesTraversal(t *testing.T) {
	assert.Equal(t, "/etc", Sanitize("/data/downloads/../../etc"))
	assert.Equal(t, "/data/downloads", Sanitize("/data//downloads/."))
}

func TestNewRequiresRoots(t *testing.T) {
	_, err := New(nil)
	assert.Error(t, err)

	_, err = New([]string{"  "})
	assert.Error(t, err)
}

func TestIsAllowed(t *testing.T) {
	g, err := New([]string{"/data/downloads", "/srv/media"})
	require.NoError(t, err)

	tests := []struct {
		path string
		want bool
	}{
		{"/data/downloads", true},
		{"/data/downloads/movies", true},
		{"/srv/media/a/b/c", true},
		{"/data", false},
		{"/data/downloads-other", false},
		{"/etc", false},
		{"/", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, g.IsAllowed(Sanitize(tt.path)), "path %q", tt.path)
	}

	// Traversal sequences resolve to a path outside the roots.
	assert.False(t, g.IsAllowed(Sanitize("/data/downloads/../../etc")))
}

func TestListEmptyPath(t *testing.T) {
	g, err := New([]string{t.TempDir()})
	require.NoError(t, err)

	_, err = g.List("")
	assert.ErrorIs(t, err, ErrEmptyPath)

	_, err = g.List("   ")
	assert.ErrorIs(t, err, ErrEmptyPath)
}

func TestListOutsideRoots(t *testing.T) {
	g, err := New([]string{t.TempDir()})
	require.NoError(t, err)

	_, err = g.List("/etc")
	assert.ErrorIs(t, err, ErrDenied)

	_, err = g.List(g.Roots()[0] + "/../..")
	assert.ErrorIs(t, err, ErrDenied)
}

func TestListContents(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "sub", "nested"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "b.mkv"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.srt"), []byte("x"), 0o644))

	g, err := New([]string{root})
	require.NoError(t, err)

	listing, err := g.List(root)
	require.NoError(t, err)

	assert.Equal(t, []string{"sub"}, listing.Directories)
	assert.Equal(t, []string{"a.srt", "b.mkv"}, listing.Files)
	assert.Equal(t, Sanitize(root), listing.Path)
	assert.Equal(t, string(filepath.Separator), listing.Separator)
	assert.True(t, listing.HasParent)
}
