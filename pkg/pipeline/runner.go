package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/c4render/pkg/c4"
	"github.com/matzehuels/c4render/pkg/cache"
	"github.com/matzehuels/c4render/pkg/observability"
	"github.com/matzehuels/c4render/pkg/render"
)

// Runner renders diagrams through an artifact cache.
// Both CLI and API use it so caching behaves the same everywhere.
//
// The Runner keeps no per-run state; multiple goroutines may share one
// Runner as long as each passes its own diagram.
type Runner struct {
	Cache    cache.Cache
	Keyer    cache.Keyer
	Renderer *render.Renderer
	Logger   *log.Logger
	TTL      time.Duration
}

// NewRunner creates a runner.
// A nil cache disables caching, a nil keyer selects the DefaultKeyer, and a
// nil renderer writes into the current directory.
func NewRunner(c cache.Cache, keyer cache.Keyer, renderer *render.Renderer, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if logger == nil {
		logger = log.Default()
	}
	if renderer == nil {
		renderer = render.NewRenderer(".", render.WithLogger(logger))
	}
	return &Runner{
		Cache:    c,
		Keyer:    keyer,
		Renderer: renderer,
		Logger:   logger,
		TTL:      DefaultTTL,
	}
}

// Execute validates, draws (or fetches) and writes one artifact.
func (r *Runner) Execute(ctx context.Context, d c4.Diagram, opts Options) (*Result, error) {
	start := time.Now()
	opts.SetDefaults(d.Level())

	format, err := render.Validate(d, opts.Format, opts.Filename)
	if err != nil {
		return nil, err
	}

	// The scene is cheap to build and carries the dangling-reference report,
	// which callers want on cache hits too.
	scene, err := render.BuildScene(d)
	if err != nil {
		return nil, err
	}
	for _, w := range scene.Skipped {
		r.Logger.Debug("dangling reference", "edge", w.Edge, "endpoint", w.Endpoint, "name", w.Name)
	}

	docKey, err := r.DocumentKey(d)
	if err != nil {
		return nil, err
	}
	key := r.Keyer.ArtifactKey(docKey, r.artifactKeyOpts(d.Level(), format))

	data, hit := r.lookup(ctx, key, opts.Refresh)
	if !hit {
		res, err := r.Renderer.Draw(ctx, d, string(format))
		if err != nil {
			return nil, fmt.Errorf("render: %w", err)
		}
		data = res.Data
		if err := r.Cache.Set(ctx, key, data, r.TTL); err != nil {
			r.Logger.Warn("cache write failed", "error", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		}
	}

	result := &Result{
		Format:      format,
		Data:        data,
		DocumentKey: docKey,
		CacheHit:    hit,
		Connectors:  len(scene.Connectors),
		Skipped:     scene.Skipped,
	}

	if !opts.DryRun {
		path := filepath.Join(r.Renderer.OutputDir(), opts.Filename+"."+string(format))
		if err := render.WriteFile(path, data); err != nil {
			return nil, err
		}
		result.Path = path
	}
	result.Duration = time.Since(start)

	r.Logger.Info("diagram generated",
		"level", d.Level(),
		"format", format,
		"path", result.Path,
		"cached", hit,
		"connectors", result.Connectors,
		"skipped", len(result.Skipped),
		"duration", result.Duration)
	return result, nil
}

// lookup reads the cache unless refresh is set. Read errors count as misses.
func (r *Runner) lookup(ctx context.Context, key string, refresh bool) ([]byte, bool) {
	if refresh {
		return nil, false
	}
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "error", err)
		return nil, false
	}
	if !hit {
		observability.Cache().OnCacheMiss(ctx, "artifact")
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, "artifact")
	return data, true
}

// DocumentKey returns the cache identity of d's canonical document.
func (r *Runner) DocumentKey(d c4.Diagram) (string, error) {
	doc, err := json.Marshal(d.Document())
	if err != nil {
		return "", fmt.Errorf("serialize document for cache key: %w", err)
	}
	return r.Keyer.DocumentKey(d.Level().String(), doc), nil
}

func (r *Runner) artifactKeyOpts(level c4.Level, format render.Format) cache.ArtifactKeyOpts {
	o := r.Renderer.Options()
	return cache.ArtifactKeyOpts{
		Level:  level.String(),
		Format: string(format),
		DPI:    o.DPI,
		Scale:  o.Scale,
		Font:   o.Font,
	}
}

// Close releases the cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
