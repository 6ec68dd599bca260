package assets

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedNow keeps generated date prefixes deterministic.
func fixedNow() time.Time {
	return time.Date(2025, time.March, 9, 12, 0, 0, 0, time.UTC)
}

func writeSource(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}
	return path
}

func TestToKebabCase(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"My Image.png", "my-image.png"},
		{"some_file_name.jpg", "some-file-name.jpg"},
		{"UPPERCASE.PDF", "uppercase.pdf"},
		{"Mixed Case File Name.txt", "mixed-case-file-name.txt"},
		{"already-kebab-case.md", "already-kebab-case.md"},
		{"file with   spaces.png", "file-with-spaces.png"},
		{"file___with___underscores.js", "file-with-underscores.js"},
		{"file@with#special!chars.png", "filewithspecialchars.png"},
		{"No Extension Here", "no-extension-here"},
		{"Résumé draft", "résumé-draft"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, toKebabCase(tt.in), "toKebabCase(%q)", tt.in)
	}
}

func TestDirProcessor_CopiesIntoDatedKebabName(t *testing.T) {
	source := writeSource(t, "Test Image.png", "fake image data")
	project := t.TempDir()
	p := DirProcessor{Now: fixedNow}

	res, err := p.Process(context.Background(), source, project, "blog", Settings{})
	require.NoError(t, err)

	assert.Equal(t, "src/assets/blog/2025-03-09-test-image.png", res.RelativePath)
	assert.Equal(t, "2025-03-09-test-image.png", res.Filename)
	assert.True(t, res.WasCopied)

	copied, err := os.ReadFile(filepath.Join(project, filepath.FromSlash(res.RelativePath)))
	require.NoError(t, err)
	assert.Equal(t, "fake image data", string(copied))
}

func TestDirProcessor_NamingTable(t *testing.T) {
	tests := []struct {
		source string
		want   string
	}{
		{"Test Image.png", "2025-03-09-test-image.png"},
		// The extension keeps its original case; only the stem kebabs.
		{"Scan Copy.PDF", "2025-03-09-scan-copy.PDF"},
		{"notes", "2025-03-09-notes"},
		{"archive.tar.gz", "2025-03-09-archive.tar.gz"},
	}
	p := DirProcessor{Now: fixedNow}
	for _, tt := range tests {
		source := writeSource(t, tt.source, "data")
		res, err := p.Process(context.Background(), source, t.TempDir(), "blog", Settings{})
		require.NoError(t, err, "Process(%q)", tt.source)
		assert.Equal(t, tt.want, res.Filename, "Process(%q)", tt.source)
	}
}

func TestDirProcessor_ConflictAppendsCounter(t *testing.T) {
	project := t.TempDir()
	assetsDir := filepath.Join(project, "src", "assets", "posts")
	require.NoError(t, os.MkdirAll(assetsDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(assetsDir, "2025-03-09-test-file.md"), []byte("existing"), 0o644))

	source := writeSource(t, "Test File.md", "new content")
	p := DirProcessor{Now: fixedNow}

	res, err := p.Process(context.Background(), source, project, "posts", Settings{})
	require.NoError(t, err)
	assert.Equal(t, "2025-03-09-test-file-1.md", res.Filename)
	assert.Equal(t, "src/assets/posts/2025-03-09-test-file-1.md", res.RelativePath)

	// The original stays put alongside the new copy.
	assert.FileExists(t, filepath.Join(assetsDir, "2025-03-09-test-file.md"))
	assert.FileExists(t, filepath.Join(assetsDir, "2025-03-09-test-file-1.md"))

	// A further drop of the same name takes the next counter.
	res, err = p.Process(context.Background(), source, project, "posts", Settings{})
	require.NoError(t, err)
	assert.Equal(t, "2025-03-09-test-file-2.md", res.Filename)
}

func TestDirProcessor_CreatesCollectionDirectory(t *testing.T) {
	source := writeSource(t, "document.pdf", "pdf content")
	project := t.TempDir()
	assetsDir := filepath.Join(project, "src", "assets", "newsletters")
	require.NoDirExists(t, assetsDir)

	p := DirProcessor{Now: fixedNow}
	res, err := p.Process(context.Background(), source, project, "newsletters", Settings{})
	require.NoError(t, err)

	assert.DirExists(t, assetsDir)
	assert.FileExists(t, filepath.Join(project, filepath.FromSlash(res.RelativePath)))
}

func TestDirProcessor_AssetsDirOverride(t *testing.T) {
	source := writeSource(t, "pic.png", "img")
	project := t.TempDir()
	p := DirProcessor{Now: fixedNow}

	res, err := p.Process(context.Background(), source, project, "blog", Settings{AssetsDir: "public/media"})
	require.NoError(t, err)

	assert.Equal(t, "public/media/blog/2025-03-09-pic.png", res.RelativePath)
	assert.FileExists(t, filepath.Join(project, "public", "media", "blog", "2025-03-09-pic.png"))
}

func TestDirProcessor_ReusesFileAlreadyInAssets(t *testing.T) {
	project := t.TempDir()
	assetsDir := filepath.Join(project, "src", "assets", "blog")
	require.NoError(t, os.MkdirAll(assetsDir, 0o755))
	source := filepath.Join(assetsDir, "existing-pic.png")
	require.NoError(t, os.WriteFile(source, []byte("img"), 0o644))

	p := DirProcessor{Now: fixedNow}
	res, err := p.Process(context.Background(), source, project, "blog", Settings{})
	require.NoError(t, err)

	assert.False(t, res.WasCopied)
	assert.Equal(t, "src/assets/blog/existing-pic.png", res.RelativePath)
	assert.Equal(t, "existing-pic.png", res.Filename)

	// No duplicate appears next to the original.
	entries, err := os.ReadDir(assetsDir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestDirProcessor_CancelledContext(t *testing.T) {
	source := writeSource(t, "pic.png", "img")
	project := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := DirProcessor{Now: fixedNow}
	_, err := p.Process(ctx, source, project, "blog", Settings{})
	require.ErrorIs(t, err, context.Canceled)

	require.NoDirExists(t, filepath.Join(project, "src", "assets"))
}

func TestDirProcessor_MissingSourceFails(t *testing.T) {
	project := t.TempDir()
	p := DirProcessor{Now: fixedNow}

	_, err := p.Process(context.Background(), filepath.Join(t.TempDir(), "gone.png"), project, "blog", Settings{})
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
