// Package render draws C4 diagrams.
//
// # Overview
//
// Rendering happens in three steps:
//
//  1. [BuildScene] positions every entity with the [layout] package, resolves
//     colors and edge styles through [styles], and turns entity fields into
//     text lines. Edges that name an unknown entity are collected as
//     [errors.DanglingReferenceWarning] values in [Scene.Skipped] and are not
//     drawn.
//  2. [ToDOT] writes the scene as Graphviz DOT. Every node is pinned, so
//     Graphviz never moves anything; it only draws.
//  3. The DOT source is rasterized in-process with go-graphviz (SVG, PNG,
//     JPG). PDF output converts the SVG with rsvg-convert.
//
// # Rendering to a file
//
// A [Renderer] carries the output directory and drawing options. The output
// directory is always passed in explicitly:
//
//	r := render.NewRenderer("out", render.WithDPI(200))
//	path, err := r.Render(ctx, diagram, "png", "")
//	// path == "out/c4_level1_context.png"
//
// [Renderer.Render] validates the format, the filename and the entity
// requirement of the level before any drawing happens; on a validation error
// nothing is written. Files are written atomically.
//
// # Shapes
//
// Text blocks are the entity name, an optional bracketed annotation
// (technology, protocol or role), the description wrapped at 28 characters,
// and level-specific detail lines. A shape's height grows linearly with its
// line count. Database containers are cylinders, component diagrams are
// enclosed in a dashed boundary, and classes are drawn as UML boxes with
// attribute and method compartments.
//
// [layout]: github.com/matzehuels/c4render/pkg/layout
// [styles]: github.com/matzehuels/c4render/pkg/render/styles
package render
