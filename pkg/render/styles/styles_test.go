package styles

import (
	"testing"

	"github.com/matzehuels/c4render/pkg/c4"
)

func TestContainerColors(t *testing.T) {
	tests := []struct {
		typ  string
		want Colors
	}{
		{"Application", Colors{"#e3f2fd", "#1565c0"}},
		{"Database", Colors{"#e8f5e9", "#2e7d32"}},
		{"Queue", Colors{"#fff3e0", "#ef6c00"}},
		{"Browser", Colors{"#f3e5f5", "#7b1fa2"}},
		{"Mobile", Colors{"#e0f7fa", "#00838f"}},
		{"API", Colors{"#ffebee", "#c62828"}},
		{"Mainframe", DefaultColors},
		{"database", DefaultColors},
		{"", DefaultColors},
	}
	for _, tt := range tests {
		t.Run(tt.typ, func(t *testing.T) {
			if got := ContainerColors(ParseContainerKind(tt.typ)); got != tt.want {
				t.Errorf("ContainerColors(%q) = %v, want %v", tt.typ, got, tt.want)
			}
		})
	}
}

func TestComponentColors(t *testing.T) {
	tests := []struct {
		typ  string
		want Colors
	}{
		{"Service", Colors{"#e3f2fd", "#1565c0"}},
		{"Controller", Colors{"#e8f5e9", "#2e7d32"}},
		{"Repository", Colors{"#fff3e0", "#ef6c00"}},
		{"Client", Colors{"#f3e5f5", "#7b1fa2"}},
		{"Utility", Colors{"#e0f7fa", "#00838f"}},
		{"Gateway", Colors{"#ffebee", "#c62828"}},
		{"Widget", DefaultColors},
	}
	for _, tt := range tests {
		t.Run(tt.typ, func(t *testing.T) {
			if got := ComponentColors(ParseComponentKind(tt.typ)); got != tt.want {
				t.Errorf("ComponentColors(%q) = %v, want %v", tt.typ, got, tt.want)
			}
		})
	}
}

func TestClassKindOf(t *testing.T) {
	tests := []struct {
		name       string
		typ        string
		abstract   bool
		iface      bool
		want       ClassKind
		wantColors Colors
		italic     bool
	}{
		{"InterfaceWins", "Entity", true, true, ClassInterface, Colors{"#f5f5f5", "#7b1fa2"}, true},
		{"Abstract", "Service", true, false, ClassAbstract, Colors{"#e3f2fd", "#0d47a1"}, true},
		{"Entity", "Entity", false, false, ClassEntity, Colors{"#e8f5e9", "#2e7d32"}, false},
		{"Service", "Service", false, false, ClassService, Colors{"#fff3e0", "#ef6c00"}, false},
		{"Repository", "Repository", false, false, ClassRepository, Colors{"#fce4ec", "#c2185b"}, false},
		{"Plain", "Class", false, false, ClassPlain, DefaultClassColors, false},
		{"Unknown", "ValueObject", false, false, ClassPlain, DefaultClassColors, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			k := ClassKindOf(tt.typ, tt.abstract, tt.iface)
			if k != tt.want {
				t.Fatalf("ClassKindOf() = %v, want %v", k, tt.want)
			}
			if got := ClassColors(k); got != tt.wantColors {
				t.Errorf("ClassColors() = %v, want %v", got, tt.wantColors)
			}
			if k.Italic() != tt.italic {
				t.Errorf("Italic() = %v, want %v", k.Italic(), tt.italic)
			}
		})
	}
}

func TestRelationshipKind(t *testing.T) {
	both := c4.Relationship{Source: "a", Target: "b", Label: "x", Async: true, Bidirectional: true}
	tests := []struct {
		name  string
		level c4.Level
		rel   c4.Relationship
		want  EdgeKind
	}{
		{"ComponentAsyncWins", c4.LevelComponent, both, EdgeAsync},
		{"ContainerIgnoresAsync", c4.LevelContainer, both, EdgeBidirectional},
		{"ContextPlain", c4.LevelContext, c4.Relationship{}, EdgePlain},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RelationshipKind(tt.level, tt.rel); got != tt.want {
				t.Errorf("RelationshipKind() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEdgeStyles(t *testing.T) {
	tests := []struct {
		name  string
		level c4.Level
		kind  EdgeKind
		want  EdgeStyle
	}{
		{"AsyncDashedOpen", c4.LevelComponent, EdgeAsync, EdgeStyle{LineDashed, ArrowVee, ArrowNone, "#555555"}},
		{"Bidirectional", c4.LevelContainer, EdgeBidirectional, EdgeStyle{LineSolid, ArrowNormal, ArrowNormal, "#555555"}},
		{"Inheritance", c4.LevelCode, EdgeInheritance, EdgeStyle{LineSolid, ArrowEmpty, ArrowNone, "#0d47a1"}},
		{"Realization", c4.LevelCode, EdgeRealization, EdgeStyle{LineDashed, ArrowEmpty, ArrowNone, "#7b1fa2"}},
		{"Aggregation", c4.LevelCode, EdgeAggregation, EdgeStyle{LineSolid, ArrowNone, ArrowODiamond, "#ef6c00"}},
		{"Composition", c4.LevelCode, EdgeComposition, EdgeStyle{LineSolid, ArrowNone, ArrowDiamond, "#c62828"}},
		{"ContainerAsyncFallsBack", c4.LevelContainer, EdgeAsync, EdgeStyle{LineSolid, ArrowNormal, ArrowNone, "#555555"}},
		{"CodePlainFallsBack", c4.LevelCode, EdgePlain, EdgeStyle{LineSolid, ArrowVee, ArrowNone, "#333333"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Edge(tt.level, tt.kind); got != tt.want {
				t.Errorf("Edge(%v, %v) = %+v, want %+v", tt.level, tt.kind, got, tt.want)
			}
		})
	}
}

func TestAssociationKind(t *testing.T) {
	if got := AssociationKind(c4.Association{Aggregation: true, Composition: true}); got != EdgeComposition {
		t.Errorf("AssociationKind(both) = %v, want composition", got)
	}
	if got := AssociationKind(c4.Association{Aggregation: true}); got != EdgeAggregation {
		t.Errorf("AssociationKind(aggregation) = %v, want aggregation", got)
	}
	if got := AssociationKind(c4.Association{}); got != EdgeAssociation {
		t.Errorf("AssociationKind(plain) = %v, want association", got)
	}
}
