package c4

import (
	"encoding/json"
	"fmt"

	"github.com/matzehuels/c4render/pkg/errors"
)

// Diagram is the read-only view shared by the four level aggregates.
// Renderers and serializers only borrow a Diagram; they never mutate it.
type Diagram interface {
	// Level reports which C4 level the diagram models.
	Level() Level
	// Title is the system, container, or component name the diagram is about.
	Title() string
	// EntityCount returns the number of registered entities across all collections.
	EntityCount() int
	// EdgeCount returns the number of registered edges, dangling ones included.
	EdgeCount() int
	// Document returns the plain serializable document for the diagram.
	Document() any
}

// New returns an empty diagram for the given level.
func New(level Level, title string) (Diagram, error) {
	switch level {
	case LevelContext:
		return NewContext(title), nil
	case LevelContainer:
		return NewContainer(title), nil
	case LevelComponent:
		return NewComponent(title), nil
	case LevelCode:
		return NewCode(title), nil
	}
	return nil, errors.New(errors.ErrCodeInvalidLevel, "invalid level: %d", int(level))
}

// Relationship is a labeled edge between two entities, referenced by name.
// Context, container, and component diagrams share this type; the code level
// uses [Association].
type Relationship struct {
	Source        string `json:"source" yaml:"source"`
	Target        string `json:"target" yaml:"target"`
	Label         string `json:"label" yaml:"label"`
	Protocol      string `json:"protocol,omitempty" yaml:"protocol,omitempty"`
	Bidirectional bool   `json:"bidirectional" yaml:"bidirectional"`
	Async         bool   `json:"async,omitempty" yaml:"async,omitempty"`
}

// String renders the edge as "source -> target".
func (r Relationship) String() string {
	arrow := "->"
	if r.Bidirectional {
		arrow = "<->"
	}
	return fmt.Sprintf("%s %s %s", r.Source, arrow, r.Target)
}

func (r Relationship) validate() error {
	if err := errors.RequireField("relationship", "source", r.Source); err != nil {
		return err
	}
	if err := errors.RequireField("relationship", "target", r.Target); err != nil {
		return err
	}
	return errors.RequireField("relationship", "label", r.Label)
}

// names tracks the entity names of one collection to enforce uniqueness.
type names map[string]struct{}

func (n *names) claim(collection, name string) error {
	if *n == nil {
		*n = make(names)
	}
	if _, dup := (*n)[name]; dup {
		return errors.New(errors.ErrCodeDuplicateName, "duplicate %s name: %q", collection, name)
	}
	(*n)[name] = struct{}{}
	return nil
}

// unmarshalDocument decodes raw JSON into doc, mapping syntax errors to
// INVALID_DOCUMENT validation errors.
func unmarshalDocument(data []byte, doc any) error {
	if err := json.Unmarshal(data, doc); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidDocument, err, "decode document")
	}
	return nil
}

// orEmpty normalizes a nil slice to an empty one so documents always carry
// a list and round-trips compare equal.
func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
