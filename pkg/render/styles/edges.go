package styles

import "github.com/matzehuels/c4render/pkg/c4"

// EdgeKind enumerates the connector variants.
type EdgeKind int

const (
	EdgePlain EdgeKind = iota
	EdgeBidirectional
	EdgeAsync
	EdgeAssociation
	EdgeInheritance
	EdgeRealization
	EdgeAggregation
	EdgeComposition
)

var edgeKindNames = map[EdgeKind]string{
	EdgePlain:         "plain",
	EdgeBidirectional: "bidirectional",
	EdgeAsync:         "async",
	EdgeAssociation:   "association",
	EdgeInheritance:   "inheritance",
	EdgeRealization:   "realization",
	EdgeAggregation:   "aggregation",
	EdgeComposition:   "composition",
}

func (k EdgeKind) String() string {
	if s, ok := edgeKindNames[k]; ok {
		return s
	}
	return "plain"
}

// LineStyle is the stroke pattern of a connector.
type LineStyle string

const (
	LineSolid  LineStyle = "solid"
	LineDashed LineStyle = "dashed"
)

// Arrow is a Graphviz arrow shape name.
type Arrow string

const (
	ArrowNone     Arrow = "none"
	ArrowNormal   Arrow = "normal"   // filled triangle
	ArrowVee      Arrow = "vee"      // open arrow
	ArrowEmpty    Arrow = "empty"    // hollow triangle
	ArrowDiamond  Arrow = "diamond"  // filled diamond
	ArrowODiamond Arrow = "odiamond" // hollow diamond
)

// EdgeStyle is the (line style, arrow heads, color) triple of a connector.
// Head decorates the target end and Tail the source end.
type EdgeStyle struct {
	Line  LineStyle
	Head  Arrow
	Tail  Arrow
	Color string
}

const (
	relationColor = "#555555"
	contextColor  = "#333333"
	codeColor     = "#333333"
)

var edgeStyles = map[c4.Level]map[EdgeKind]EdgeStyle{
	c4.LevelContext: {
		EdgePlain:         {Line: LineSolid, Head: ArrowNormal, Tail: ArrowNone, Color: contextColor},
		EdgeBidirectional: {Line: LineSolid, Head: ArrowNormal, Tail: ArrowNormal, Color: contextColor},
	},
	c4.LevelContainer: {
		EdgePlain:         {Line: LineSolid, Head: ArrowNormal, Tail: ArrowNone, Color: relationColor},
		EdgeBidirectional: {Line: LineSolid, Head: ArrowNormal, Tail: ArrowNormal, Color: relationColor},
	},
	c4.LevelComponent: {
		EdgePlain:         {Line: LineSolid, Head: ArrowNormal, Tail: ArrowNone, Color: relationColor},
		EdgeBidirectional: {Line: LineSolid, Head: ArrowNormal, Tail: ArrowNormal, Color: relationColor},
		EdgeAsync:         {Line: LineDashed, Head: ArrowVee, Tail: ArrowNone, Color: relationColor},
	},
	c4.LevelCode: {
		EdgeAssociation: {Line: LineSolid, Head: ArrowVee, Tail: ArrowNone, Color: codeColor},
		EdgeInheritance: {Line: LineSolid, Head: ArrowEmpty, Tail: ArrowNone, Color: "#0d47a1"},
		EdgeRealization: {Line: LineDashed, Head: ArrowEmpty, Tail: ArrowNone, Color: "#7b1fa2"},
		EdgeAggregation: {Line: LineSolid, Head: ArrowNone, Tail: ArrowODiamond, Color: "#ef6c00"},
		EdgeComposition: {Line: LineSolid, Head: ArrowNone, Tail: ArrowDiamond, Color: "#c62828"},
	},
}

// defaultEdgeKind is the fallback per level for kinds the level does not draw.
var defaultEdgeKind = map[c4.Level]EdgeKind{
	c4.LevelContext:   EdgePlain,
	c4.LevelContainer: EdgePlain,
	c4.LevelComponent: EdgePlain,
	c4.LevelCode:      EdgeAssociation,
}

// Edge returns the connector style for kind at level. Kinds a level does not
// define fall back to that level's plain connector.
func Edge(level c4.Level, kind EdgeKind) EdgeStyle {
	table, ok := edgeStyles[level]
	if !ok {
		return EdgeStyle{Line: LineSolid, Head: ArrowNormal, Tail: ArrowNone, Color: relationColor}
	}
	if s, ok := table[kind]; ok {
		return s
	}
	return table[defaultEdgeKind[level]]
}

// RelationshipKind classifies a relationship at the given level. Only the
// component level draws async edges; there async wins over bidirectional.
func RelationshipKind(level c4.Level, r c4.Relationship) EdgeKind {
	if level == c4.LevelComponent && r.Async {
		return EdgeAsync
	}
	if r.Bidirectional {
		return EdgeBidirectional
	}
	return EdgePlain
}

// AssociationKind classifies a code-level association. Composition wins over
// aggregation when both flags are set.
func AssociationKind(a c4.Association) EdgeKind {
	switch {
	case a.Composition:
		return EdgeComposition
	case a.Aggregation:
		return EdgeAggregation
	}
	return EdgeAssociation
}
