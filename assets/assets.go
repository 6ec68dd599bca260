// Package assets copies dropped files into a project's assets tree and
// reports the markdown-ready relative path of the result.
//
// Files land in <assets dir>/<collection>/ under a date-prefixed kebab-case
// name; name conflicts gain -1, -2, ... suffixes. A source that already
// lives inside the assets tree is reused in place instead of copied again.
package assets

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"
)

// DefaultDir is the project-relative assets directory used when Settings
// carries no override.
const DefaultDir = "src/assets"

// Settings selects where assets land inside a project.
type Settings struct {
	// AssetsDir overrides the project-relative assets directory. Empty
	// means DefaultDir. Forward slashes are accepted on every platform.
	AssetsDir string
}

// Result describes one processed file.
type Result struct {
	// RelativePath locates the asset relative to the project root, always
	// with forward slashes so it can be pasted into markdown directly.
	RelativePath string

	// Filename is the final name inside the collection directory.
	Filename string

	// WasCopied is false when the source already lived under the assets
	// tree and was reused without copying.
	WasCopied bool
}

// Processor turns a dropped file into a project asset.
//
// Implementations may touch the filesystem or the network; callers treat a
// failure as non-fatal and fall back to plain path insertion.
type Processor interface {
	Process(ctx context.Context, sourcePath, projectPath, collection string, settings Settings) (Result, error)
}

// DirProcessor implements Processor on the local filesystem.
type DirProcessor struct {
	// Now supplies the date prefix for generated filenames. Nil means
	// time.Now.
	Now func() time.Time
}

// Process copies the file at sourcePath into the project's assets directory
// for collection and returns where it ended up. The destination directory is
// created if missing. Cancellation is honored between file operations; a
// file already written stays written.
func (p DirProcessor) Process(ctx context.Context, sourcePath, projectPath, collection string, settings Settings) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	name := filepath.Base(sourcePath)
	if name == "" || name == "." || name == ".." || name == string(filepath.Separator) {
		return Result{}, fmt.Errorf("invalid source path %q", sourcePath)
	}

	dir := settings.AssetsDir
	if dir == "" {
		dir = DefaultDir
	}
	assetsBase := filepath.Join(projectPath, filepath.FromSlash(dir))

	if rel, err := filepath.Rel(assetsBase, sourcePath); err == nil && insideBase(rel) {
		projRel, err := filepath.Rel(projectPath, sourcePath)
		if err != nil {
			return Result{}, fmt.Errorf("relativize %s: %w", sourcePath, err)
		}
		return Result{
			RelativePath: filepath.ToSlash(projRel),
			Filename:     name,
			WasCopied:    false,
		}, nil
	}

	destDir := filepath.Join(assetsBase, collection)
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return Result{}, fmt.Errorf("create assets directory: %w", err)
	}

	now := p.Now
	if now == nil {
		now = time.Now
	}
	date := now().Format("2006-01-02")

	ext := extensionOf(name)
	stem := name
	// With no extension the suffix is a bare dot, so trailing dots strip
	// too. Repeated extensions collapse: a.png.png reduces to a.
	suffix := "." + ext
	for strings.HasSuffix(stem, suffix) {
		stem = strings.TrimSuffix(stem, suffix)
	}

	base := date + "-" + toKebabCase(stem)
	filename := joinExt(base, ext)
	for n := 1; pathExists(filepath.Join(destDir, filename)); n++ {
		filename = joinExt(fmt.Sprintf("%s-%d", base, n), ext)
	}

	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	destPath := filepath.Join(destDir, filename)
	if err := copyFile(sourcePath, destPath); err != nil {
		return Result{}, fmt.Errorf("copy %s: %w", name, err)
	}

	rel, err := filepath.Rel(projectPath, destPath)
	if err != nil {
		return Result{}, fmt.Errorf("relativize %s: %w", destPath, err)
	}
	return Result{
		RelativePath: filepath.ToSlash(rel),
		Filename:     filename,
		WasCopied:    true,
	}, nil
}

// toKebabCase rewrites a filename: lowercase, spaces and underscores become
// dashes, every other non-alphanumeric rune is dropped, and dash runs
// collapse. Anything after a final dot is kept as a lowercased extension.
func toKebabCase(s string) string {
	parts := strings.Split(s, ".")
	ext := ""
	name := s
	if len(parts) > 1 {
		ext = strings.ToLower(parts[len(parts)-1])
		name = strings.Join(parts[:len(parts)-1], ".")
	}

	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case r == ' ' || r == '_':
			b.WriteByte('-')
		case r == '-' || unicode.IsLetter(r) || unicode.IsNumber(r):
			b.WriteRune(r)
		}
	}
	words := strings.FieldsFunc(b.String(), func(r rune) bool { return r == '-' })
	kebab := strings.Join(words, "-")

	if len(parts) > 1 {
		return kebab + "." + ext
	}
	return kebab
}

// extensionOf returns name's extension without the dot. Dotfiles such as
// .gitignore carry no extension.
func extensionOf(name string) string {
	ext := filepath.Ext(name)
	if ext == "" || ext == name {
		return ""
	}
	return strings.TrimPrefix(ext, ".")
}

func joinExt(name, ext string) string {
	if ext == "" {
		return name
	}
	return name + "." + ext
}

// insideBase reports whether a filepath.Rel result stays inside the base
// directory.
func insideBase(rel string) bool {
	if rel == "." || rel == ".." {
		return false
	}
	return !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func pathExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
