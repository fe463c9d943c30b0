// Package pipeline runs the document → diagram → artifact pipeline shared by
// the CLI and the HTTP server.
//
// # Architecture
//
// One run has three steps:
//
//  1. Validate: the output format, the filename and the entity requirement of
//     the level are checked before anything else; a failure writes nothing.
//  2. Draw: the artifact is taken from the cache or drawn by the renderer.
//     The cache key covers the level, the canonical document and every
//     render option, so a hit is byte-identical to a fresh render.
//  3. Write: the artifact is written atomically under the renderer's output
//     directory, unless the run is a dry run.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, render.NewRenderer("out"), logger)
//	res, err := runner.Execute(ctx, diagram, pipeline.Options{Format: "svg"})
//	if err != nil {
//	    return err
//	}
//	fmt.Println(res.Path, res.CacheHit)
package pipeline

import (
	"time"

	"github.com/matzehuels/c4render/pkg/c4"
	"github.com/matzehuels/c4render/pkg/errors"
	"github.com/matzehuels/c4render/pkg/render"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultFormat is the output format when none is given.
	DefaultFormat = string(render.FormatPNG)

	// DefaultTTL is how long rendered artifacts stay cached.
	DefaultTTL = 7 * 24 * time.Hour
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options configures one pipeline run. It is JSON-encodable so the HTTP
// server can accept it as query or body input.
type Options struct {
	// Format is the artifact format (png, jpg, svg, pdf, dot).
	Format string `json:"format"`

	// Filename is the output base name without extension. Empty selects the
	// level default, e.g. "c4_level2_container".
	Filename string `json:"filename,omitempty"`

	// Refresh bypasses cache reads; the fresh artifact is still cached.
	Refresh bool `json:"refresh,omitempty"`

	// DryRun draws (or fetches) the artifact without writing a file.
	DryRun bool `json:"dry_run,omitempty"`
}

// SetDefaults fills empty fields. The filename default depends on the level.
func (o *Options) SetDefaults(level c4.Level) {
	if o.Format == "" {
		o.Format = DefaultFormat
	}
	if o.Filename == "" {
		o.Filename = level.DefaultFilename()
	}
}

// =============================================================================
// Result
// =============================================================================

// Result describes the artifact produced by a run.
type Result struct {
	// Path is the written file, empty on a dry run.
	Path string

	// Format is the normalized output format.
	Format render.Format

	// Data holds the artifact bytes.
	Data []byte

	// DocumentKey identifies the canonical document that was drawn.
	DocumentKey string

	// CacheHit reports whether the artifact came from the cache.
	CacheHit bool

	// Connectors is the number of edges drawn.
	Connectors int

	// Skipped lists the edges dropped for naming an unknown entity.
	Skipped []errors.DanglingReferenceWarning

	// Duration is the wall time of the run.
	Duration time.Duration
}
