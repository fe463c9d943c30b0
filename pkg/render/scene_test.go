package render

import (
	"strings"
	"testing"

	"github.com/matzehuels/c4render/pkg/c4"
	"github.com/matzehuels/c4render/pkg/layout"
	"github.com/matzehuels/c4render/pkg/render/styles"
)

func paymentsContext(t *testing.T) *c4.ContextDiagram {
	t.Helper()
	d := c4.NewContext("Payments")
	err := d.Add(
		c4.User{Name: "User A", Role: "Customer"},
		c4.ExternalSystem{Name: "Payments API", Protocol: "HTTPS"},
		c4.Relationship{Source: "User A", Target: "Payments API", Label: "calls"},
	)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	return d
}

func shapeByName(t *testing.T, s *Scene, name string) Shape {
	t.Helper()
	for _, sh := range s.Shapes {
		if sh.Name == name {
			return sh
		}
	}
	t.Fatalf("no shape named %q", name)
	return Shape{}
}

func TestBuildSceneContext(t *testing.T) {
	s, err := BuildScene(paymentsContext(t))
	if err != nil {
		t.Fatalf("BuildScene: %v", err)
	}

	if len(s.Shapes) != 3 {
		t.Fatalf("shapes = %d, want 3 (user, external, system)", len(s.Shapes))
	}
	user := shapeByName(t, s, "User A")
	if user.Center != (layout.Point{X: layout.UserX, Y: 0}) {
		t.Errorf("user center = %+v", user.Center)
	}
	if user.Lines[1].Text != "[Person: Customer]" {
		t.Errorf("user annotation = %q", user.Lines[1].Text)
	}
	if user.Colors != styles.ContextColors(styles.RoleUser) {
		t.Errorf("user colors = %+v", user.Colors)
	}
	ext := shapeByName(t, s, "Payments API")
	if ext.Lines[1].Text != "[External System: HTTPS]" {
		t.Errorf("external annotation = %q", ext.Lines[1].Text)
	}
	sys := shapeByName(t, s, "Payments")
	if sys.ID != "system" || sys.Center != (layout.Point{}) {
		t.Errorf("system shape = %+v", sys)
	}

	if len(s.Connectors) != 1 {
		t.Fatalf("connectors = %d, want 1", len(s.Connectors))
	}
	c := s.Connectors[0]
	if c.Label != "calls" {
		t.Errorf("label = %q", c.Label)
	}
	if c.Mid != (layout.Point{X: 0, Y: 0}) {
		t.Errorf("midpoint = %+v, want origin", c.Mid)
	}
	if c.From != user.ID || c.To != ext.ID {
		t.Errorf("connector %s -> %s, want %s -> %s", c.From, c.To, user.ID, ext.ID)
	}
	if got := s.Heading(); got != "C4 Level 1: Context Diagram - Payments" {
		t.Errorf("Heading() = %q", got)
	}
}

func TestBuildSceneContextTargetsSystem(t *testing.T) {
	d := c4.NewContext("Shop")
	if err := d.Add(
		c4.User{Name: "Buyer"},
		c4.Relationship{Source: "Buyer", Target: "Shop", Label: "orders from", Protocol: "HTTPS"},
	); err != nil {
		t.Fatal(err)
	}
	s, err := BuildScene(d)
	if err != nil {
		t.Fatal(err)
	}
	if len(s.Connectors) != 1 || len(s.Skipped) != 0 {
		t.Fatalf("connectors = %d, skipped = %d", len(s.Connectors), len(s.Skipped))
	}
	if got := s.Connectors[0].Label; got != "orders from (HTTPS)" {
		t.Errorf("label = %q", got)
	}
	if s.Connectors[0].To != "system" {
		t.Errorf("target id = %q, want system", s.Connectors[0].To)
	}
}

func TestBuildSceneDanglingComponent(t *testing.T) {
	d := c4.NewComponent("API")
	err := d.Add(
		c4.Component{Name: "Router", Technology: "chi"},
		c4.Component{Name: "Handler", Technology: "Go"},
		c4.Component{Name: "Store", Technology: "Go", Type: "Repository"},
		c4.Relationship{Source: "Router", Target: "Handler", Label: "dispatches"},
		c4.Relationship{Source: "Handler", Target: "Cache", Label: "reads"},
	)
	if err != nil {
		t.Fatal(err)
	}

	s, err := BuildScene(d)
	if err != nil {
		t.Fatal(err)
	}
	if len(s.Connectors) != 1 {
		t.Errorf("connectors = %d, want 1", len(s.Connectors))
	}
	if len(s.Skipped) != 1 {
		t.Fatalf("skipped = %d, want 1", len(s.Skipped))
	}
	w := s.Skipped[0]
	if w.Endpoint != "target" || w.Name != "Cache" || w.Level != "component" {
		t.Errorf("warning = %+v", w)
	}
	if w.Edge != "Handler -> Cache" {
		t.Errorf("edge = %q", w.Edge)
	}

	// Serialized form is untouched by rendering.
	doc := d.ToDocument()
	if len(doc.Components) != 3 || len(doc.Relationships) != 2 {
		t.Errorf("document has %d components, %d relationships", len(doc.Components), len(doc.Relationships))
	}

	if s.Shapes[0].Kind != ShapeBoundary || s.Shapes[0].ID != "boundary" {
		t.Errorf("first shape = %+v, want boundary", s.Shapes[0])
	}
}

func TestBuildSceneDanglingSource(t *testing.T) {
	d := c4.NewContainer("Bank")
	if err := d.Add(
		c4.Container{Name: "Web", Technology: "React"},
		c4.Relationship{Source: "Mobile", Target: "Web", Label: "links"},
	); err != nil {
		t.Fatal(err)
	}
	s, err := BuildScene(d)
	if err != nil {
		t.Fatal(err)
	}
	if len(s.Skipped) != 1 || s.Skipped[0].Endpoint != "source" || s.Skipped[0].Name != "Mobile" {
		t.Errorf("skipped = %+v", s.Skipped)
	}
}

func TestBuildSceneContainer(t *testing.T) {
	d := c4.NewContainer("Bank")
	if err := d.Add(
		c4.Container{Name: "Web", Technology: "React", Type: "WebApp"},
		c4.Container{Name: "DB", Technology: "PostgreSQL", Type: "Database", DBSchema: "accounts"},
		c4.Relationship{Source: "Web", Target: "DB", Label: "reads", Bidirectional: true},
	); err != nil {
		t.Fatal(err)
	}
	s, err := BuildScene(d)
	if err != nil {
		t.Fatal(err)
	}

	sys := shapeByName(t, s, "Bank")
	if sys.ID != "system" || sys.Colors != styles.SystemColors {
		t.Errorf("system = %+v", sys)
	}
	db := shapeByName(t, s, "DB")
	if db.Kind != ShapeCylinder {
		t.Errorf("database kind = %v, want cylinder", db.Kind)
	}
	last := db.Lines[len(db.Lines)-1]
	if last.Text != "Schema: accounts" || last.Role != LineDetail {
		t.Errorf("schema line = %+v", last)
	}
	if len(s.Connectors) != 1 || s.Connectors[0].Kind != styles.EdgeBidirectional {
		t.Errorf("connectors = %+v", s.Connectors)
	}
}

func TestBuildSceneContainerSystemIsNotEndpoint(t *testing.T) {
	d := c4.NewContainer("Bank")
	if err := d.Add(
		c4.Container{Name: "Web", Technology: "React"},
		c4.Relationship{Source: "Web", Target: "Bank", Label: "part of"},
	); err != nil {
		t.Fatal(err)
	}
	s, err := BuildScene(d)
	if err != nil {
		t.Fatal(err)
	}
	if len(s.Connectors) != 0 || len(s.Skipped) != 1 {
		t.Errorf("connectors = %d, skipped = %d", len(s.Connectors), len(s.Skipped))
	}
}

func TestBuildSceneCode(t *testing.T) {
	d := c4.NewCode("Auth")
	err := d.Add(
		c4.Class{Name: "Store", IsInterface: true, Methods: []string{"Get(id)"}},
		c4.Class{Name: "Base", IsAbstract: true},
		c4.Class{Name: "RedisStore", Attributes: []string{"client"}, Methods: []string{"Get(id)", "Put(id)"}},
		c4.Association{Class1: "RedisStore", Class2: "Base", Label: "uses", Multiplicity: "1..*", Composition: true},
		c4.Inheritance{Subclass: "RedisStore", Superclass: "Base"},
		c4.Implementation{Implementor: "RedisStore", Interface: "Store"},
	)
	if err != nil {
		t.Fatal(err)
	}
	s, err := BuildScene(d)
	if err != nil {
		t.Fatal(err)
	}

	store := shapeByName(t, s, "Store")
	if store.Lines[0].Text != "«interface»" || !store.Italic {
		t.Errorf("interface shape = %+v", store)
	}
	base := shapeByName(t, s, "Base")
	if !base.Italic {
		t.Error("abstract class should be italic")
	}

	kinds := make([]styles.EdgeKind, len(s.Connectors))
	for i, c := range s.Connectors {
		kinds[i] = c.Kind
	}
	want := []styles.EdgeKind{styles.EdgeComposition, styles.EdgeInheritance, styles.EdgeRealization}
	if len(kinds) != len(want) {
		t.Fatalf("kinds = %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("connector %d kind = %v, want %v", i, kinds[i], want[i])
		}
	}
	if s.Connectors[0].Label != "uses\n1..*" {
		t.Errorf("association label = %q", s.Connectors[0].Label)
	}
}

func TestShapeHeightGrowsWithLines(t *testing.T) {
	short := Shape{Kind: ShapeBox, Lines: entityLines("A", "[Go]", "")}
	long := Shape{Kind: ShapeBox, Lines: entityLines("A", "[Go]", strings.Repeat("word ", 30))}
	if shapeHeight(long) <= shapeHeight(short) {
		t.Errorf("height(long) = %v, height(short) = %v", shapeHeight(long), shapeHeight(short))
	}

	for _, n := range []int{1, 2, 5} {
		lines := make([]Line, n)
		got := shapeHeight(Shape{Kind: ShapeBox, Lines: lines})
		want := boxBaseHeight + lineHeight*float64(n)
		if got != want {
			t.Errorf("n=%d height = %v, want %v", n, got, want)
		}
	}

	class := Shape{Kind: ShapeClass, Lines: make([]Line, 1), Attributes: []string{"a", "b"}, Methods: []string{"m"}}
	lines := class.LineCount()
	if got, want := shapeHeight(class), classBaseHeight+lineHeight*float64(lines); lines != 4 || got != want {
		t.Errorf("class height = %v, want %v", got, want)
	}
	if got := shapeHeight(Shape{Kind: ShapeBoundary}); got != boundaryHeight {
		t.Errorf("boundary height = %v", got)
	}
}

func TestWrap(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"empty", "", nil},
		{"blank", "   ", nil},
		{"short", "Handles logins", []string{"Handles logins"}},
		{"collapses spaces", "a   b\n c", []string{"a b c"}},
		{
			"breaks on spaces",
			"Keeps customer data and the ledger in sync",
			[]string{"Keeps customer data and the", "ledger in sync"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := wrap(tt.in)
			if len(got) != len(tt.want) {
				t.Fatalf("wrap(%q) = %q, want %q", tt.in, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("line %d = %q, want %q", i, got[i], tt.want[i])
				}
				if len(got[i]) > wrapWidth {
					t.Errorf("line %d longer than %d: %q", i, wrapWidth, got[i])
				}
			}
		})
	}
}

func TestEntityLinesSkipsEmptyAnnotation(t *testing.T) {
	lines := entityLines("Worker", "[]", "")
	if len(lines) != 1 || lines[0].Role != LineName {
		t.Errorf("lines = %+v", lines)
	}
}

type fakeDiagram struct{ c4.Diagram }

func (fakeDiagram) Level() c4.Level { return c4.LevelContext }
func (fakeDiagram) Title() string   { return "fake" }

func TestBuildSceneUnsupported(t *testing.T) {
	if _, err := BuildScene(fakeDiagram{}); err == nil {
		t.Error("expected error for unsupported diagram type")
	}
}

func TestBuildSceneUsesComputedLayout(t *testing.T) {
	container := c4.NewContainer("Bank")
	component := c4.NewComponent("API")
	code := c4.NewCode("Accounts")
	for _, err := range []error{
		container.Add(c4.Container{Name: "Web", Technology: "React"}, c4.Container{Name: "DB", Technology: "Postgres"}, c4.Container{Name: "Queue", Technology: "Kafka"}),
		component.Add(c4.Component{Name: "Router", Technology: "chi"}, c4.Component{Name: "Handler", Technology: "Go"}),
		code.AddClass(c4.Class{Name: "Account"}),
		code.AddClass(c4.Class{Name: "Ledger"}),
		code.AddClass(c4.Class{Name: "Entry"}),
	} {
		if err != nil {
			t.Fatalf("Add: %v", err)
		}
	}

	tests := []struct {
		name  string
		d     c4.Diagram
		names []string
	}{
		{"container", container, []string{"Web", "DB", "Queue"}},
		{"component", component, []string{"Router", "Handler"}},
		{"code", code, []string{"Account", "Ledger", "Entry"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := BuildScene(tt.d)
			if err != nil {
				t.Fatalf("BuildScene: %v", err)
			}
			want := layout.Compute(tt.d)
			for _, n := range tt.names {
				if got := shapeByName(t, s, n).Center; got != want[n] {
					t.Errorf("%s center = %+v, want %+v", n, got, want[n])
				}
			}
		})
	}
}
