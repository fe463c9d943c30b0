// Package pkg provides the libraries behind c4render, a builder and renderer
// for C4 architecture diagrams.
//
// # Overview
//
// A diagram is built at one of the four C4 levels, either in code or from a
// JSON/YAML document, then laid out deterministically and drawn with
// Graphviz. The pkg directory is organized by stage:
//
//  1. [c4] - Entity registry for the four levels, document conversion
//  2. [io] - Reading and writing documents, level detection
//  3. [layout] - Fixed positions: axes, radial and grid placement
//  4. [render] - Scene building, styles, DOT emission, rasterisation
//  5. [pipeline] - Orchestration with artifact caching
//
// Supporting packages: [cache] (file, Redis and null backends), [errors]
// (coded errors and dangling-reference warnings), [observability] (hooks),
// and [buildinfo] (version data).
//
// # Architecture
//
//	JSON / YAML document
//	         ↓
//	    [io] package (decode, detect level)
//	         ↓
//	    [c4] package (validated diagram)
//	         ↓
//	    [render] package (scene: layout + styles → DOT → Graphviz)
//	         ↓
//	PNG / JPG / SVG / PDF / DOT output
//
// # Quick Start
//
//	import (
//	    "context"
//
//	    "github.com/matzehuels/c4render/pkg/c4"
//	    "github.com/matzehuels/c4render/pkg/render"
//	)
//
//	d := c4.NewContainer("Online Banking")
//	_ = d.Add(
//	    c4.Container{Name: "Web App", Technology: "React"},
//	    c4.Container{Name: "Database", Technology: "PostgreSQL", Type: "Database"},
//	    c4.Relationship{Source: "Web App", Target: "Database", Label: "reads"},
//	)
//
//	r := render.NewRenderer("diagrams_output")
//	path, err := r.Render(context.Background(), d, "svg", "")
//	// path == "diagrams_output/c4_level2_container.svg"
//
// Edges that name an unknown entity are not an error: they stay in the
// document, are skipped when drawing, and are reported as
// [errors.DanglingReferenceWarning] values on the scene.
package pkg
