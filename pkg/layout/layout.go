// Package layout assigns diagram coordinates to entity names.
//
// Every function here is pure and deterministic: the same ordered input
// always yields the same positions. Coordinates are abstract layout units
// centered on the origin with y growing upwards; the renderer decides how
// many inches a unit spans.
//
// Three schemes cover the four C4 levels:
//
//   - [Context]: users on a vertical line at x = -5, external systems at
//     x = +5, and the subject system at the origin.
//   - [Radial]: container and component diagrams place entities on a circle.
//   - [Grid]: code diagrams place classes on a centered grid.
//
// Positions are keyed by entity name. Edges are resolved by looking their
// endpoints up in the returned map; a missing name is a dangling reference
// and the edge is skipped by the caller.
package layout

import (
	"math"

	"github.com/matzehuels/c4render/pkg/c4"
)

// Point is a position in layout units.
type Point struct {
	X, Y float64
}

// Positions maps entity names to their layout position.
type Positions map[string]Point

// Lookup returns the positions of both endpoints and whether both exist.
func (p Positions) Lookup(source, target string) (from, to Point, ok bool) {
	from, okFrom := p[source]
	to, okTo := p[target]
	return from, to, okFrom && okTo
}

// Midpoint returns the geometric midpoint between a and b.
func Midpoint(a, b Point) Point {
	return Point{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
}

const (
	// UserX is the x coordinate of the user column in context diagrams.
	UserX = -5.0
	// ExternalX is the x coordinate of the external-system column.
	ExternalX = 5.0
	// MaxSpacing is the vertical distance between column entries for small groups.
	MaxSpacing = 2.0
	// ColumnSpan bounds the total height of a column; larger groups are packed tighter.
	ColumnSpan = 12.0

	// ContainerRadius is the circle radius for container diagrams.
	ContainerRadius = 6.0
	// ComponentRadius is the circle radius for component diagrams.
	ComponentRadius = 5.0

	// GridCellWidth and GridCellHeight are the code-level cell sizes.
	GridCellWidth  = 6.0
	GridCellHeight = 5.0
)

// ColumnSpacing returns the vertical spacing for a column of n entries.
// Spacing shrinks as n grows so a column never exceeds [ColumnSpan].
func ColumnSpacing(n int) float64 {
	if n <= 0 {
		return MaxSpacing
	}
	return math.Min(MaxSpacing, ColumnSpan/float64(n))
}

// Column places names on a vertical line at x. The i-th of n entries sits at
// y = (i - n/2) * spacing, with n/2 rounded down.
func Column(names []string, x float64) Positions {
	n := len(names)
	spacing := ColumnSpacing(n)
	pos := make(Positions, n)
	for i, name := range names {
		pos[name] = Point{X: x, Y: float64(i-n/2) * spacing}
	}
	return pos
}

// Context lays out a level-1 diagram. The subject system, when named, sits at
// the origin so relationships may target it. A name appearing in several
// groups takes the position of the last group (externals, then system).
func Context(system string, users, externals []string) Positions {
	pos := Column(users, UserX)
	for name, p := range Column(externals, ExternalX) {
		pos[name] = p
	}
	if system != "" {
		pos[system] = Point{}
	}
	return pos
}

// AngularStep returns the angle in degrees between neighbours on a circle of
// n entities. n = 0 is treated as 1.
func AngularStep(n int) float64 {
	return 360.0 / float64(max(n, 1))
}

// Radial places names on a circle of the given radius centered on the origin.
// The i-th entity sits at angle i * [AngularStep] degrees, counter-clockwise
// from the positive x axis.
func Radial(names []string, radius float64) Positions {
	step := AngularStep(len(names))
	pos := make(Positions, len(names))
	for i, name := range names {
		rad := float64(i) * step * math.Pi / 180
		pos[name] = Point{X: radius * math.Cos(rad), Y: radius * math.Sin(rad)}
	}
	return pos
}

// GridShape returns the column and row count for n cells:
// columns = ceil(sqrt(n)), rows = ceil(n / columns).
func GridShape(n int) (cols, rows int) {
	if n <= 0 {
		return 0, 0
	}
	cols = int(math.Ceil(math.Sqrt(float64(n))))
	rows = (n + cols - 1) / cols
	return cols, rows
}

// Grid places names row by row on a grid centered on the origin. The i-th
// entity occupies cell (i mod columns, i div columns); row 0 is the top row.
func Grid(names []string) Positions {
	cols, rows := GridShape(len(names))
	startX := -float64(cols-1) * GridCellWidth / 2
	startY := float64(rows-1) * GridCellHeight / 2
	pos := make(Positions, len(names))
	for i, name := range names {
		col, row := i%cols, i/cols
		pos[name] = Point{
			X: startX + float64(col)*GridCellWidth,
			Y: startY - float64(row)*GridCellHeight,
		}
	}
	return pos
}

// Compute lays out any diagram with its level's scheme. The result is a fresh
// map and is never stored on the diagram.
func Compute(d c4.Diagram) Positions {
	switch v := d.(type) {
	case *c4.ContextDiagram:
		return Context(v.Title(),
			namesOf(v.Users(), func(u c4.User) string { return u.Name }),
			namesOf(v.ExternalSystems(), func(e c4.ExternalSystem) string { return e.Name }))
	case *c4.ContainerDiagram:
		return Radial(namesOf(v.Containers(), func(c c4.Container) string { return c.Name }), ContainerRadius)
	case *c4.ComponentDiagram:
		return Radial(namesOf(v.Components(), func(c c4.Component) string { return c.Name }), ComponentRadius)
	case *c4.CodeDiagram:
		return Grid(namesOf(v.Classes(), func(c c4.Class) string { return c.Name }))
	}
	return Positions{}
}

func namesOf[T any](items []T, name func(T) string) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = name(it)
	}
	return out
}
