package render

import (
	"bytes"
	"fmt"
	"html"
	"strconv"
	"strings"

	"github.com/matzehuels/c4render/pkg/render/styles"
)

// DOTOptions configures DOT emission.
type DOTOptions struct {
	// Scale is the number of inches one layout unit spans. Zero means 1.
	Scale float64
	// DPI is the raster resolution. Zero means DefaultDPI.
	DPI int
	// Font is the font family for all text. Empty means DefaultFont.
	Font string
}

const (
	DefaultDPI  = 150
	DefaultFont = "Helvetica"
)

func (o DOTOptions) withDefaults() DOTOptions {
	if o.Scale <= 0 {
		o.Scale = 1
	}
	if o.DPI <= 0 {
		o.DPI = DefaultDPI
	}
	if o.Font == "" {
		o.Font = DefaultFont
	}
	return o
}

// ToDOT converts a scene to Graphviz DOT for the neato engine.
//
// Every node is pinned with pos="x,y!" so Graphviz only draws; it never
// moves anything. Connector labels are separate plaintext nodes pinned at the
// geometric midpoint of their endpoints. Edges are emitted before nodes so
// boxes and labels sit on top of the lines.
func ToDOT(s *Scene, opts DOTOptions) string {
	opts = opts.withDefaults()

	var buf bytes.Buffer
	buf.WriteString("digraph C4 {\n")
	fmt.Fprintf(&buf, "  graph [label=<<B>%s</B>>, labelloc=t, fontsize=20, fontname=%q, bgcolor=white, pad=0.4, dpi=%d];\n",
		esc(s.Heading()), opts.Font, opts.DPI)
	buf.WriteString("  graph [splines=line, overlap=true, outputorder=edgesfirst];\n")
	fmt.Fprintf(&buf, "  node [fontname=%q, fontsize=10, penwidth=1.5, fixedsize=false, margin=\"0.12,0.06\"];\n", opts.Font)
	fmt.Fprintf(&buf, "  edge [fontname=%q, fontsize=9, penwidth=1.5];\n", opts.Font)
	buf.WriteString("\n")

	for _, sh := range s.Shapes {
		fmt.Fprintf(&buf, "  %q [%s];\n", sh.ID, strings.Join(shapeAttrs(sh, opts.Scale), ", "))
	}

	if len(s.Connectors) > 0 {
		buf.WriteString("\n")
	}
	for i, c := range s.Connectors {
		fmt.Fprintf(&buf, "  %q -> %q [%s];\n", c.From, c.To, strings.Join(edgeAttrs(c.Style), ", "))
		if c.Label != "" {
			fmt.Fprintf(&buf, "  %q [shape=plaintext, style=filled, fillcolor=\"#ffffffcc\", fontsize=9, width=0, height=0, margin=\"0.04,0.02\", pos=%q, label=<%s>];\n",
				"l"+strconv.Itoa(i), pinned(c.Mid.X, c.Mid.Y, opts.Scale), htmlLines(strings.Split(c.Label, "\n")))
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func pinned(x, y, scale float64) string {
	return fmt.Sprintf("%.3f,%.3f!", x*scale, y*scale)
}

func shapeAttrs(sh Shape, scale float64) []string {
	attrs := []string{
		fmt.Sprintf("pos=%q", pinned(sh.Center.X, sh.Center.Y, scale)),
		fmt.Sprintf("width=%.2f", sh.Width*scale),
		fmt.Sprintf("height=%.2f", sh.Height*scale),
	}

	switch sh.Kind {
	case ShapeClass:
		return append(attrs, "shape=none", "margin=0", "label=<"+classTable(sh, scale)+">")
	case ShapeCylinder:
		attrs = append(attrs, "shape=cylinder", `style="filled"`)
	case ShapeBoundary:
		attrs = append(attrs, "shape=box", `style="dashed,filled"`, "penwidth=2", "labelloc=b")
	default:
		attrs = append(attrs, "shape=box", `style="rounded,filled"`)
	}

	fill := sh.Colors.Fill
	if sh.Kind == ShapeBoundary {
		fill += "4d"
	}
	return append(attrs,
		fmt.Sprintf("fillcolor=%q", fill),
		fmt.Sprintf("color=%q", sh.Colors.Border),
		"label=<"+boxLabel(sh)+">",
	)
}

func boxLabel(sh Shape) string {
	parts := make([]string, len(sh.Lines))
	for i, l := range sh.Lines {
		parts[i] = styledLine(l, sh.Italic)
	}
	return strings.Join(parts, "<BR/>")
}

func styledLine(l Line, italic bool) string {
	text := esc(l.Text)
	switch l.Role {
	case LineName:
		if italic {
			text = "<I>" + text + "</I>"
		}
		return "<B>" + text + "</B>"
	case LineStereotype:
		return `<FONT POINT-SIZE="9">` + text + "</FONT>"
	case LineAnnotation:
		return `<FONT POINT-SIZE="9">` + text + "</FONT>"
	case LineDescription:
		return `<FONT POINT-SIZE="8">` + text + "</FONT>"
	default:
		return `<FONT POINT-SIZE="8"><I>` + text + "</I></FONT>"
	}
}

// classTable renders a UML-style class box: a tinted header compartment with
// the stereotype, name and description, then attributes, then methods.
func classTable(sh Shape, scale float64) string {
	var b strings.Builder
	fmt.Fprintf(&b, `<TABLE BORDER="1" CELLBORDER="0" CELLSPACING="0" CELLPADDING="4" BGCOLOR="%s" COLOR="%s">`,
		sh.Colors.Fill, sh.Colors.Border)

	header := make([]string, len(sh.Lines))
	for i, l := range sh.Lines {
		header[i] = styledLine(l, sh.Italic)
	}
	fmt.Fprintf(&b, `<TR><TD WIDTH="%d" BGCOLOR="%s33">%s</TD></TR>`,
		int(sh.Width*scale*72), sh.Colors.Border, strings.Join(header, "<BR/>"))

	b.WriteString("<HR/>")
	b.WriteString(compartment(sh.Attributes))
	b.WriteString("<HR/>")
	b.WriteString(compartment(sh.Methods))
	b.WriteString("</TABLE>")
	return b.String()
}

func compartment(items []string) string {
	if len(items) == 0 {
		return "<TR><TD> </TD></TR>"
	}
	escaped := make([]string, len(items))
	for i, it := range items {
		escaped[i] = esc(it)
	}
	return `<TR><TD ALIGN="LEFT" BALIGN="LEFT"><FONT FACE="Courier" POINT-SIZE="9">` +
		strings.Join(escaped, `<BR ALIGN="LEFT"/>`) + "</FONT></TD></TR>"
}

func edgeAttrs(st styles.EdgeStyle) []string {
	dir := "forward"
	if st.Tail != styles.ArrowNone {
		dir = "both"
	}
	attrs := []string{
		fmt.Sprintf("color=%q", st.Color),
		"style=" + string(st.Line),
		"dir=" + dir,
		"arrowhead=" + string(st.Head),
	}
	if dir == "both" {
		attrs = append(attrs, "arrowtail="+string(st.Tail))
	}
	return attrs
}

func htmlLines(lines []string) string {
	escaped := make([]string, len(lines))
	for i, l := range lines {
		escaped[i] = esc(l)
	}
	return strings.Join(escaped, "<BR/>")
}

// esc escapes text for a Graphviz HTML-like label.
func esc(s string) string {
	return html.EscapeString(s)
}
