package c4

import (
	"strconv"
	"strings"

	"github.com/matzehuels/c4render/pkg/errors"
)

// Level identifies one of the four C4 diagram scopes.
type Level int

const (
	LevelContext Level = iota + 1
	LevelContainer
	LevelComponent
	LevelCode
)

// Levels lists every level in C4 order.
var Levels = []Level{LevelContext, LevelContainer, LevelComponent, LevelCode}

var levelNames = map[Level]string{
	LevelContext:   "context",
	LevelContainer: "container",
	LevelComponent: "component",
	LevelCode:      "code",
}

var levelHeadings = map[Level]string{
	LevelContext:   "System Context Diagram",
	LevelContainer: "Container Diagram",
	LevelComponent: "Component Diagram",
	LevelCode:      "Code Diagram",
}

// String returns the lower-case level name ("context", "container", ...).
func (l Level) String() string {
	if s, ok := levelNames[l]; ok {
		return s
	}
	return "unknown"
}

// Number returns the C4 level number (1-4), or 0 for an invalid level.
func (l Level) Number() int {
	if _, ok := levelNames[l]; !ok {
		return 0
	}
	return int(l)
}

// Tag returns the short level tag ("c1" ... "c4").
func (l Level) Tag() string {
	if l.Number() == 0 {
		return ""
	}
	return "c" + strconv.Itoa(l.Number())
}

// Heading returns the diagram title prefix, e.g. "C4 Level 2: Container Diagram".
func (l Level) Heading() string {
	return "C4 Level " + strconv.Itoa(l.Number()) + ": " + levelHeadings[l]
}

// DefaultFilename returns the default output file base name for the level.
func (l Level) DefaultFilename() string {
	return "c4_level" + strconv.Itoa(l.Number()) + "_" + l.String()
}

// TitleKey returns the document field that holds the diagram title.
func (l Level) TitleKey() string {
	switch l {
	case LevelComponent:
		return "container_name"
	case LevelCode:
		return "component_name"
	default:
		return "system_name"
	}
}

// ParseLevel parses a level from its name, tag, or number.
// Accepted forms are "context", "c1", "1" and the equivalents for the other
// levels, case-insensitively.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "context", "c1", "1":
		return LevelContext, nil
	case "container", "c2", "2":
		return LevelContainer, nil
	case "component", "c3", "3":
		return LevelComponent, nil
	case "code", "c4", "4":
		return LevelCode, nil
	}
	return 0, errors.New(errors.ErrCodeInvalidLevel, "invalid level: %q (must be one of: context, container, component, code)", s)
}
