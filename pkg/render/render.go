package render

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/c4render/pkg/c4"
	"github.com/matzehuels/c4render/pkg/errors"
	"github.com/matzehuels/c4render/pkg/observability"
)

// Format is an output artifact format.
type Format string

const (
	FormatPNG Format = "png"
	FormatJPG Format = "jpg"
	FormatSVG Format = "svg"
	FormatPDF Format = "pdf"
	FormatDOT Format = "dot"
)

// Formats lists the supported formats in documentation order.
var Formats = []Format{FormatPNG, FormatJPG, FormatSVG, FormatPDF, FormatDOT}

// ParseFormat validates a format string. Matching is case-insensitive and
// "jpeg" is accepted as an alias of "jpg".
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if f == "jpeg" {
		f = FormatJPG
	}
	if !slices.Contains(Formats, f) {
		return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported output format: %q (must be one of: png, jpg, svg, pdf, dot)", s)
	}
	return f, nil
}

// ContentType returns the MIME type of the format.
func (f Format) ContentType() string {
	switch f {
	case FormatPNG:
		return "image/png"
	case FormatJPG:
		return "image/jpeg"
	case FormatSVG:
		return "image/svg+xml"
	case FormatPDF:
		return "application/pdf"
	default:
		return "text/vnd.graphviz"
	}
}

// Renderer draws diagrams into files under an explicit output directory.
// A Renderer holds no per-render state and may be shared between goroutines;
// the diagrams passed to it must not be mutated while a render is running.
type Renderer struct {
	outputDir string
	dot       DOTOptions
	logger    *log.Logger
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithDPI sets the raster resolution.
func WithDPI(dpi int) Option { return func(r *Renderer) { r.dot.DPI = dpi } }

// WithScale sets how many inches one layout unit spans.
func WithScale(scale float64) Option { return func(r *Renderer) { r.dot.Scale = scale } }

// WithFont sets the font family used for all text.
func WithFont(font string) Option { return func(r *Renderer) { r.dot.Font = font } }

// WithLogger sets the logger. Dangling references are logged at debug level.
func WithLogger(l *log.Logger) Option { return func(r *Renderer) { r.logger = l } }

// NewRenderer creates a renderer writing into outputDir.
func NewRenderer(outputDir string, opts ...Option) *Renderer {
	r := &Renderer{outputDir: outputDir}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = log.New(os.Stderr)
		r.logger.SetLevel(log.WarnLevel)
	}
	r.dot = r.dot.withDefaults()
	return r
}

// OutputDir returns the directory artifacts are written to.
func (r *Renderer) OutputDir() string { return r.outputDir }

// Options returns the effective DOT options.
func (r *Renderer) Options() DOTOptions { return r.dot }

// Result describes a rendered artifact.
type Result struct {
	Format Format
	Data   []byte
	Scene  *Scene
}

// Validate runs every check Render performs before drawing: the format, the
// output filename, and the entity requirement of the level.
func Validate(d c4.Diagram, format, filename string) (Format, error) {
	f, err := ParseFormat(format)
	if err != nil {
		return "", err
	}
	if err := errors.ValidateOutputFilename(filename); err != nil {
		return "", err
	}
	if d.Level() != c4.LevelContext && d.EntityCount() == 0 {
		return "", errors.New(errors.ErrCodeEmptyDiagram, "no %s added to diagram", entityPlural(d.Level()))
	}
	return f, nil
}

func entityPlural(l c4.Level) string {
	switch l {
	case c4.LevelContainer:
		return "containers"
	case c4.LevelComponent:
		return "components"
	case c4.LevelCode:
		return "classes"
	}
	return "entities"
}

// Draw produces the artifact bytes for d without touching the filesystem.
// Validation errors are returned before any drawing work starts.
func (r *Renderer) Draw(ctx context.Context, d c4.Diagram, format string) (*Result, error) {
	f, err := Validate(d, format, d.Level().DefaultFilename())
	if err != nil {
		return nil, err
	}
	return r.draw(ctx, d, f)
}

func (r *Renderer) draw(ctx context.Context, d c4.Diagram, f Format) (*Result, error) {
	hooks := observability.Render()
	hooks.OnRenderStart(ctx, observability.RenderEvent{Level: d.Level().String(), Format: string(f)})
	start := time.Now()

	res, err := r.drawScene(ctx, d, f)

	ev := observability.RenderEvent{Level: d.Level().String(), Format: string(f), Duration: time.Since(start)}
	if res != nil {
		ev.Bytes = len(res.Data)
		ev.Connectors = len(res.Scene.Connectors)
		ev.Skipped = len(res.Scene.Skipped)
	}
	hooks.OnRenderComplete(ctx, ev, err)
	return res, err
}

func (r *Renderer) drawScene(ctx context.Context, d c4.Diagram, f Format) (*Result, error) {
	scene, err := BuildScene(d)
	if err != nil {
		return nil, err
	}
	for _, w := range scene.Skipped {
		r.logger.Debug("dangling reference", "level", w.Level, "edge", w.Edge, "endpoint", w.Endpoint, "name", w.Name)
	}

	dot := ToDOT(scene, r.dot)
	var data []byte
	switch f {
	case FormatDOT:
		data = []byte(dot)
	case FormatSVG:
		data, err = rasterize(ctx, dot, graphviz.SVG)
	case FormatPNG:
		data, err = rasterize(ctx, dot, graphviz.PNG)
	case FormatJPG:
		data, err = rasterize(ctx, dot, graphviz.JPG)
	case FormatPDF:
		var svg []byte
		if svg, err = rasterize(ctx, dot, graphviz.SVG); err == nil {
			data, err = ToPDF(ctx, svg)
		}
	}
	if err != nil {
		return nil, err
	}
	return &Result{Format: f, Data: data, Scene: scene}, nil
}

// Render draws d and writes it to <outputDir>/<filename>.<format>, returning
// the written path. An empty filename selects the level's default.
//
// Validation happens first: an unsupported format, an invalid filename, or a
// container, component, or code diagram without entities fails with a
// validation error and nothing is written. The artifact is written to a
// temporary file and renamed into place, so a failed render never leaves a
// partial file behind.
func (r *Renderer) Render(ctx context.Context, d c4.Diagram, format, filename string) (string, error) {
	if filename == "" {
		filename = d.Level().DefaultFilename()
	}
	f, err := Validate(d, format, filename)
	if err != nil {
		return "", err
	}

	res, err := r.draw(ctx, d, f)
	if err != nil {
		return "", err
	}

	path := filepath.Join(r.outputDir, filename+"."+string(f))
	if err := WriteFile(path, res.Data); err != nil {
		return "", err
	}
	r.logger.Info("diagram generated", "path", path, "level", d.Level(), "connectors", len(res.Scene.Connectors))
	return path, nil
}

// WriteFile writes data to path atomically, creating the parent directory.
func WriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return fmt.Errorf("chmod %s: %w", path, err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename %s: %w", path, err)
	}
	return nil
}
