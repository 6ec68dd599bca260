// Package drop orchestrates platform file drops into markdown insertions.
//
// A drop payload arrives in whatever shape the platform produced: a bare
// path list, a single path string, or an object carrying paths plus the
// drop-point coordinate. The handler parses it, rejects drops that landed
// outside the editor surface, and converts the files into a markdown
// snippet, preferring the asset processor when project context is available
// and degrading to plain path formatting when it is not. A drop never
// surfaces an error dialog and never silently vanishes: every outcome is a
// Result whose Err field is a telemetry tag, not a failure to act on.
//
// The snippet is handed back to the caller rather than inserted here; the
// editing view inserts it at whatever the caret is when the result arrives,
// so a slow asset copy never writes at a stale offset.
package drop

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/dannysmith/draftsmith/assets"
	"github.com/dannysmith/draftsmith/urls"
)

// Telemetry tags carried on Result.Err. None of them is fatal.
var (
	// ErrNoFiles reports a payload with nothing usable in it.
	ErrNoFiles = errors.New("no files in payload")

	// ErrOutsideEditor reports a drop point outside the editor surface,
	// left for whichever UI region it was aimed at.
	ErrOutsideEditor = errors.New("drop outside editor bounds")

	// ErrNoProject, ErrNoFile, and ErrNoCollection tag fallback
	// insertions with the context piece that was missing.
	ErrNoProject    = errors.New("no project")
	ErrNoFile       = errors.New("no current file")
	ErrNoCollection = errors.New("no collection")
)

// Position is a drop point in the host's coordinate space.
type Position struct {
	X, Y float64
}

// Payload is the normalized form of a platform drop event.
type Payload struct {
	Paths []string

	// Position is nil when the platform did not report a drop point; such
	// drops skip the bounds check.
	Position *Position
}

// Bounds is the editor surface rectangle in the same coordinate space as
// Payload positions. Points on the edge count as inside.
type Bounds struct {
	X, Y          float64
	Width, Height float64
}

// Contains reports whether p falls inside the rectangle.
func (b Bounds) Contains(p Position) bool {
	return p.X >= b.X && p.X <= b.X+b.Width &&
		p.Y >= b.Y && p.Y <= b.Y+b.Height
}

// ProjectContext locates a drop inside the host's project. Empty fields
// mean that piece of context is currently missing.
type ProjectContext struct {
	ProjectPath string
	CurrentFile string
	Collection  string
}

// missingTag returns the telemetry tag for the first missing context piece,
// or nil when the context is complete.
func (c ProjectContext) missingTag() error {
	switch {
	case c.ProjectPath == "":
		return ErrNoProject
	case c.CurrentFile == "":
		return ErrNoFile
	case c.Collection == "":
		return ErrNoCollection
	}
	return nil
}

// Result is the outcome of one drop.
type Result struct {
	// OK reports that Snippet should be inserted at the caret.
	OK bool

	// Snippet is the markdown to insert, one line per dropped file.
	Snippet string

	// Err tags the outcome for telemetry: a sentinel from this package or
	// the processing error that forced fallback formatting. It is set on
	// successful fallback insertions too and must not be treated as a
	// reason to skip the insert.
	Err error
}

// Handler converts drop payloads into markdown snippets.
type Handler struct {
	// Processor copies dropped files into the project. Nil disables
	// asset processing; every drop falls back to plain path formatting.
	Processor assets.Processor

	// Settings is passed through to the processor.
	Settings assets.Settings

	// Context reports the active project context at drop time. Nil means
	// no context.
	Context func() ProjectContext

	// Log receives developer diagnostics. Nil means slog.Default.
	Log *slog.Logger
}

// Process turns one platform drop payload into a Result. bounds is the
// editor surface at drop time; payloads without a position skip the check.
// Asset processing may block on I/O, so callers run Process off the update
// loop and insert the snippet when the result message arrives.
func (h *Handler) Process(ctx context.Context, payload any, bounds Bounds) Result {
	p, err := ParsePayload(payload)
	if err != nil {
		h.logger().Warn("malformed drop payload", "error", err)
		return Result{Err: ErrNoFiles}
	}
	if len(p.Paths) == 0 {
		return Result{Err: ErrNoFiles}
	}
	if p.Position != nil && !bounds.Contains(*p.Position) {
		return Result{Err: ErrOutsideEditor}
	}

	pc := h.projectContext()
	if tag := pc.missingTag(); tag != nil {
		return Result{OK: true, Snippet: FallbackSnippet(p.Paths), Err: tag}
	}
	if h.Processor == nil {
		return Result{OK: true, Snippet: FallbackSnippet(p.Paths)}
	}

	snippets := make([]string, 0, len(p.Paths))
	for _, path := range p.Paths {
		res, err := h.Processor.Process(ctx, path, pc.ProjectPath, pc.Collection, h.Settings)
		if err != nil {
			h.logger().Warn("asset processing failed, falling back to plain paths",
				"path", path, "error", err)
			return Result{OK: true, Snippet: FallbackSnippet(p.Paths), Err: err}
		}
		snippets = append(snippets, assetSnippet(res))
	}
	return Result{OK: true, Snippet: strings.Join(snippets, "\n")}
}

func (h *Handler) logger() *slog.Logger {
	if h.Log != nil {
		return h.Log
	}
	return slog.Default()
}

func (h *Handler) projectContext() ProjectContext {
	if h.Context == nil {
		return ProjectContext{}
	}
	return h.Context()
}

// FallbackSnippet formats paths without any project context, one line per
// file: image syntax for image extensions, link syntax otherwise, with the
// literal dropped path as the target and its base name as the label.
func FallbackSnippet(paths []string) string {
	lines := make([]string, len(paths))
	for i, p := range paths {
		lines[i] = formatFile(filepath.Base(p), p)
	}
	return strings.Join(lines, "\n")
}

// assetSnippet formats one processed asset. The target is site-absolute so
// the snippet works from any document in the project.
func assetSnippet(res assets.Result) string {
	return formatFile(res.Filename, "/"+res.RelativePath)
}

func formatFile(label, target string) string {
	if urls.IsImageURL(target) {
		return fmt.Sprintf("![%s](%s)", label, target)
	}
	return fmt.Sprintf("[%s](%s)", label, target)
}

// ParsePayload normalizes a platform drop payload. Accepted shapes: a
// Payload (returned as is), a []string or []any of paths, a single path
// string, or a map with a "paths" entry and an optional "position" entry
// holding numeric "x"/"y". Anything else is an error; callers treat it as
// an empty drop.
func ParsePayload(v any) (Payload, error) {
	switch t := v.(type) {
	case Payload:
		return t, nil
	case *Payload:
		if t == nil {
			return Payload{}, errors.New("nil payload")
		}
		return *t, nil
	case string:
		return Payload{Paths: nonEmpty([]string{t})}, nil
	case []string:
		return Payload{Paths: nonEmpty(t)}, nil
	case []any:
		paths, err := stringPaths(t)
		if err != nil {
			return Payload{}, err
		}
		return Payload{Paths: paths}, nil
	case map[string]any:
		return parsePayloadObject(t)
	case nil:
		return Payload{}, errors.New("nil payload")
	default:
		return Payload{}, fmt.Errorf("unsupported payload type %T", v)
	}
}

func parsePayloadObject(obj map[string]any) (Payload, error) {
	var p Payload
	switch paths := obj["paths"].(type) {
	case []string:
		p.Paths = nonEmpty(paths)
	case []any:
		ps, err := stringPaths(paths)
		if err != nil {
			return Payload{}, err
		}
		p.Paths = ps
	case string:
		p.Paths = nonEmpty([]string{paths})
	case nil:
		return Payload{}, errors.New("payload object has no paths")
	default:
		return Payload{}, fmt.Errorf("unsupported paths type %T", paths)
	}

	if raw, ok := obj["position"]; ok && raw != nil {
		pos, err := parsePosition(raw)
		if err != nil {
			return Payload{}, err
		}
		p.Position = &pos
	}
	return p, nil
}

func parsePosition(v any) (Position, error) {
	switch t := v.(type) {
	case Position:
		return t, nil
	case map[string]any:
		x, okX := toFloat(t["x"])
		y, okY := toFloat(t["y"])
		if !okX || !okY {
			return Position{}, errors.New("position needs numeric x and y")
		}
		return Position{X: x, Y: y}, nil
	default:
		return Position{}, fmt.Errorf("unsupported position type %T", v)
	}
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

func stringPaths(items []any) ([]string, error) {
	out := make([]string, 0, len(items))
	for _, it := range items {
		s, ok := it.(string)
		if !ok {
			return nil, fmt.Errorf("path entry is %T, not a string", it)
		}
		if s != "" {
			out = append(out, s)
		}
	}
	return out, nil
}

func nonEmpty(paths []string) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
