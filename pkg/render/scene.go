package render

import (
	"fmt"
	"strconv"

	"github.com/matzehuels/c4render/pkg/c4"
	"github.com/matzehuels/c4render/pkg/errors"
	"github.com/matzehuels/c4render/pkg/layout"
	"github.com/matzehuels/c4render/pkg/render/styles"
)

// ShapeKind selects how an entity box is drawn.
type ShapeKind int

const (
	ShapeBox      ShapeKind = iota // rounded rectangle
	ShapeCylinder                  // database containers
	ShapeClass                     // compartmented class box
	ShapeBoundary                  // dashed enclosing boundary
)

// LineRole tags a text line so the DOT writer can format it.
type LineRole int

const (
	LineName LineRole = iota
	LineStereotype
	LineAnnotation
	LineDescription
	LineDetail
)

// Line is one line of a shape's text block.
type Line struct {
	Text string
	Role LineRole
}

// Shape is a positioned, styled entity ready to draw.
type Shape struct {
	ID     string
	Name   string
	Kind   ShapeKind
	Lines  []Line
	Center layout.Point
	Width  float64
	Height float64
	Colors styles.Colors
	Italic bool

	// Class compartments; empty for non-class shapes.
	Attributes []string
	Methods    []string
}

// LineCount returns the number of text lines drawn inside the shape.
func (s Shape) LineCount() int {
	return len(s.Lines) + len(s.Attributes) + len(s.Methods)
}

// Connector is an edge whose endpoints both resolved to shapes.
type Connector struct {
	From, To       string // shape IDs
	Source, Target string // entity names
	Kind           styles.EdgeKind
	Style          styles.EdgeStyle
	Label          string
	Mid            layout.Point
}

// Scene is everything the DOT writer needs to draw one diagram. It is built
// fresh for every render and never stored on the diagram.
type Scene struct {
	Level      c4.Level
	Title      string
	Shapes     []Shape
	Connectors []Connector

	// Skipped lists the edges dropped for naming an unknown entity.
	Skipped []errors.DanglingReferenceWarning
}

// Heading returns the full diagram title, e.g.
// "C4 Level 2: Container Diagram - Online Banking".
func (s *Scene) Heading() string {
	if s.Title == "" {
		return s.Level.Heading()
	}
	return s.Level.Heading() + " - " + s.Title
}

// BuildScene lays out d and resolves styles for every entity and edge.
// Edges naming an unknown entity are recorded in Skipped and not drawn.
func BuildScene(d c4.Diagram) (*Scene, error) {
	b := &sceneBuilder{
		scene: &Scene{Level: d.Level(), Title: d.Title()},
		ids:   make(map[string]string),
		pos:   layout.Compute(d),
	}
	switch v := d.(type) {
	case *c4.ContextDiagram:
		b.context(v)
	case *c4.ContainerDiagram:
		b.container(v)
	case *c4.ComponentDiagram:
		b.component(v)
	case *c4.CodeDiagram:
		b.code(v)
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "unsupported diagram type %T", d)
	}
	return b.scene, nil
}

type sceneBuilder struct {
	scene *Scene
	// ids maps entity names to shape IDs for edge resolution. Later
	// registrations of the same name win, matching layout.Context.
	ids map[string]string
	pos layout.Positions
}

func (b *sceneBuilder) add(s Shape, register bool) {
	if s.ID == "" {
		s.ID = "n" + strconv.Itoa(len(b.scene.Shapes))
	}
	s.Height = shapeHeight(s)
	b.scene.Shapes = append(b.scene.Shapes, s)
	if register {
		b.ids[s.Name] = s.ID
	}
}

// connect adds a connector when both endpoints resolve, otherwise records a
// dangling reference warning.
func (b *sceneBuilder) connect(edge fmt.Stringer, source, target, label string, kind styles.EdgeKind) {
	from, to, ok := b.pos.Lookup(source, target)
	if !ok {
		w := errors.DanglingReferenceWarning{
			Level:    b.scene.Level.String(),
			Edge:     edge.String(),
			Endpoint: "source",
			Name:     source,
		}
		if _, found := b.pos[source]; found {
			w.Endpoint, w.Name = "target", target
		}
		b.scene.Skipped = append(b.scene.Skipped, w)
		return
	}
	b.scene.Connectors = append(b.scene.Connectors, Connector{
		From:   b.ids[source],
		To:     b.ids[target],
		Source: source,
		Target: target,
		Kind:   kind,
		Style:  styles.Edge(b.scene.Level, kind),
		Label:  label,
		Mid:    layout.Midpoint(from, to),
	})
}

func (b *sceneBuilder) relationships(rels []c4.Relationship) {
	for _, r := range rels {
		b.connect(r, r.Source, r.Target, relationshipLabel(r), styles.RelationshipKind(b.scene.Level, r))
	}
}

func (b *sceneBuilder) context(d *c4.ContextDiagram) {
	users, externals := d.Users(), d.ExternalSystems()
	userNames := make([]string, len(users))
	for i, u := range users {
		userNames[i] = u.Name
	}
	externalNames := make([]string, len(externals))
	for i, e := range externals {
		externalNames[i] = e.Name
	}

	userPos := layout.Column(userNames, layout.UserX)
	for _, u := range users {
		b.add(Shape{
			Name:   u.Name,
			Kind:   ShapeBox,
			Lines:  entityLines(u.Name, annotation("Person", u.Role), u.Description),
			Center: userPos[u.Name],
			Width:  contextWidth,
			Colors: styles.ContextColors(styles.RoleUser),
		}, true)
	}
	externalPos := layout.Column(externalNames, layout.ExternalX)
	for _, e := range externals {
		b.add(Shape{
			Name:   e.Name,
			Kind:   ShapeBox,
			Lines:  entityLines(e.Name, annotation("External System", e.Protocol), e.Description),
			Center: externalPos[e.Name],
			Width:  contextWidth,
			Colors: styles.ContextColors(styles.RoleExternal),
		}, true)
	}
	if d.Title() != "" {
		b.add(Shape{
			ID:     "system",
			Name:   d.Title(),
			Kind:   ShapeBox,
			Lines:  []Line{{Text: d.Title(), Role: LineName}, {Text: "[Software System]", Role: LineAnnotation}},
			Width:  contextWidth,
			Colors: styles.ContextColors(styles.RoleSystem),
		}, true)
	}
	b.relationships(d.Relationships())
}

func (b *sceneBuilder) container(d *c4.ContainerDiagram) {
	containers := d.Containers()
	if d.Title() != "" {
		b.add(Shape{
			ID:     "system",
			Name:   d.Title(),
			Kind:   ShapeBox,
			Lines:  []Line{{Text: d.Title(), Role: LineName}},
			Width:  systemWidth,
			Colors: styles.SystemColors,
		}, false)
	}
	for _, c := range containers {
		kind := styles.ParseContainerKind(c.Type)
		shape := ShapeBox
		if kind == styles.ContainerDatabase {
			shape = ShapeCylinder
		}
		lines := entityLines(c.Name, "["+c.Technology+"]", c.Description)
		if c.DBSchema != "" {
			lines = append(lines, Line{Text: "Schema: " + c.DBSchema, Role: LineDetail})
		}
		b.add(Shape{
			Name:   c.Name,
			Kind:   shape,
			Lines:  lines,
			Center: b.pos[c.Name],
			Width:  boxWidth,
			Colors: styles.ContainerColors(kind),
		}, true)
	}
	b.relationships(d.Relationships())
}

func (b *sceneBuilder) component(d *c4.ComponentDiagram) {
	components := d.Components()

	b.add(Shape{
		ID:     "boundary",
		Name:   d.Title(),
		Kind:   ShapeBoundary,
		Lines:  []Line{{Text: d.Title(), Role: LineName}},
		Width:  boundaryWidth,
		Colors: styles.BoundaryColors,
	}, false)
	for _, c := range components {
		lines := entityLines(c.Name, "["+c.Technology+"]", c.Description)
		if c.Interface != "" {
			lines = append(lines, Line{Text: "Interface: " + c.Interface, Role: LineDetail})
		}
		b.add(Shape{
			Name:   c.Name,
			Kind:   ShapeBox,
			Lines:  lines,
			Center: b.pos[c.Name],
			Width:  boxWidth,
			Colors: styles.ComponentColors(styles.ParseComponentKind(c.Type)),
		}, true)
	}
	b.relationships(d.Relationships())
}

func (b *sceneBuilder) code(d *c4.CodeDiagram) {
	classes := d.Classes()
	for _, c := range classes {
		kind := styles.ClassKindOf(c.Type, c.IsAbstract, c.IsInterface)
		var lines []Line
		if c.IsInterface {
			lines = append(lines, Line{Text: "«interface»", Role: LineStereotype})
		}
		lines = append(lines, Line{Text: c.Name, Role: LineName})
		for _, w := range wrap(c.Description) {
			lines = append(lines, Line{Text: w, Role: LineDescription})
		}
		b.add(Shape{
			Name:       c.Name,
			Kind:       ShapeClass,
			Lines:      lines,
			Center:     b.pos[c.Name],
			Width:      classWidth,
			Colors:     styles.ClassColors(kind),
			Italic:     kind.Italic(),
			Attributes: c.Attributes,
			Methods:    c.Methods,
		}, true)
	}

	for _, a := range d.Associations() {
		b.connect(a, a.Class1, a.Class2, associationLabel(a), styles.AssociationKind(a))
	}
	for _, i := range d.Inheritances() {
		b.connect(i, i.Subclass, i.Superclass, "", styles.EdgeInheritance)
	}
	for _, i := range d.Implementations() {
		b.connect(i, i.Implementor, i.Interface, "", styles.EdgeRealization)
	}
}
