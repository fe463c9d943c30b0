package render

import (
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/matzehuels/c4render/pkg/c4"
)

// Shape sizes in layout units (one unit is drawn as one inch at scale 1).
const (
	contextWidth  = 2.4
	boxWidth      = 2.6
	systemWidth   = 3.0
	classWidth    = 3.5
	boundaryWidth = 16.0

	boundaryHeight = 12.0

	// boxBaseHeight is the padding of a box with no text.
	boxBaseHeight = 0.3
	// classBaseHeight covers the compartment separators of a class box.
	classBaseHeight = 0.6
	// lineHeight is the height added per text line.
	lineHeight = 0.22

	// wrapWidth is the description column width in characters.
	wrapWidth = 28
)

// shapeHeight grows linearly with the number of text lines so text never
// overflows the drawn box.
func shapeHeight(s Shape) float64 {
	switch s.Kind {
	case ShapeBoundary:
		return boundaryHeight
	case ShapeClass:
		return classBaseHeight + lineHeight*float64(s.LineCount())
	default:
		return boxBaseHeight + lineHeight*float64(s.LineCount())
	}
}

// entityLines builds the text block of a box: name, annotation, then the
// wrapped description. Empty parts add no line.
func entityLines(name, annotation, description string) []Line {
	lines := []Line{{Text: name, Role: LineName}}
	if annotation != "" && annotation != "[]" {
		lines = append(lines, Line{Text: annotation, Role: LineAnnotation})
	}
	for _, w := range wrap(description) {
		lines = append(lines, Line{Text: w, Role: LineDescription})
	}
	return lines
}

// annotation renders "[kind]" or "[kind: detail]".
func annotation(kind, detail string) string {
	if detail == "" {
		return "[" + kind + "]"
	}
	return "[" + kind + ": " + detail + "]"
}

// wrap splits a description into lines of at most wrapWidth characters,
// breaking on spaces. Words longer than the width stay on their own line.
func wrap(s string) []string {
	s = strings.Join(strings.Fields(s), " ")
	if s == "" {
		return nil
	}
	lines := strings.Split(ansi.Wordwrap(s, wrapWidth, ""), "\n")
	out := lines[:0]
	for _, l := range lines {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return out
}

// relationshipLabel is the label with the protocol in parentheses, if any.
func relationshipLabel(r c4.Relationship) string {
	if r.Protocol == "" {
		return r.Label
	}
	return r.Label + " (" + r.Protocol + ")"
}

// associationLabel stacks the label above the multiplicity.
func associationLabel(a c4.Association) string {
	var parts []string
	if a.Label != "" {
		parts = append(parts, a.Label)
	}
	if a.Multiplicity != "" {
		parts = append(parts, a.Multiplicity)
	}
	return strings.Join(parts, "\n")
}
