package c4

import (
	"encoding/json"
	"fmt"
	"slices"

	"github.com/matzehuels/c4render/pkg/errors"
)

// DefaultComponentType is applied to components registered without a type.
const DefaultComponentType = "Service"

// Component is a grouping of related functionality inside a container.
type Component struct {
	Name        string `json:"name" yaml:"name"`
	Technology  string `json:"technology" yaml:"technology"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Type        string `json:"type" yaml:"type"`
	Interface   string `json:"interface,omitempty" yaml:"interface,omitempty"`
}

// ComponentElement is a [Component] or a [Relationship].
type ComponentElement interface{ componentElement() }

func (Component) componentElement()    {}
func (Relationship) componentElement() {}

// ComponentDocument is the serialized form of a [ComponentDiagram].
type ComponentDocument struct {
	ContainerName string         `json:"container_name" yaml:"container_name"`
	Components    []Component    `json:"components" yaml:"components"`
	Relationships []Relationship `json:"relationships" yaml:"relationships"`
}

// ComponentDiagram is the level-3 aggregate: the components inside one container.
type ComponentDiagram struct {
	containerName string
	components    []Component
	relationships []Relationship

	componentNames names
}

// NewComponent creates an empty component diagram for the named container.
func NewComponent(containerName string) *ComponentDiagram {
	return &ComponentDiagram{containerName: containerName}
}

func (d *ComponentDiagram) Level() Level     { return LevelComponent }
func (d *ComponentDiagram) Title() string    { return d.containerName }
func (d *ComponentDiagram) EntityCount() int { return len(d.components) }
func (d *ComponentDiagram) EdgeCount() int   { return len(d.relationships) }
func (d *ComponentDiagram) Document() any    { return d.ToDocument() }

// Components returns the registered components in insertion order.
func (d *ComponentDiagram) Components() []Component { return slices.Clone(d.components) }

// Relationships returns the registered relationships in insertion order.
func (d *ComponentDiagram) Relationships() []Relationship {
	return slices.Clone(d.relationships)
}

// AddComponent registers a component. Name and technology are required; an
// empty type defaults to [DefaultComponentType].
func (d *ComponentDiagram) AddComponent(c Component) error {
	if err := errors.RequireField("component", "name", c.Name); err != nil {
		return err
	}
	if err := errors.RequireField("component", "technology", c.Technology); err != nil {
		return err
	}
	if c.Type == "" {
		c.Type = DefaultComponentType
	}
	if err := d.componentNames.claim("component", c.Name); err != nil {
		return err
	}
	d.components = append(d.components, c)
	return nil
}

// AddRelationship registers a relationship. Source, target, and label are
// required. Async marks asynchronous communication.
func (d *ComponentDiagram) AddRelationship(r Relationship) error {
	if err := r.validate(); err != nil {
		return err
	}
	d.relationships = append(d.relationships, r)
	return nil
}

// Add registers several elements in order and stops at the first invalid one.
func (d *ComponentDiagram) Add(elems ...ComponentElement) error {
	for i, e := range elems {
		var err error
		switch v := e.(type) {
		case Component:
			err = d.AddComponent(v)
		case Relationship:
			err = d.AddRelationship(v)
		default:
			err = errors.New(errors.ErrCodeInvalidInput, "unsupported component element %T", e)
		}
		if err != nil {
			return fmt.Errorf("element %d: %w", i, err)
		}
	}
	return nil
}

// ToDocument exports the diagram.
func (d *ComponentDiagram) ToDocument() ComponentDocument {
	return ComponentDocument{
		ContainerName: d.containerName,
		Components:    append([]Component{}, d.components...),
		Relationships: append([]Relationship{}, d.relationships...),
	}
}

// FromDocument appends the document's components and relationships in
// document order. A non-empty container_name replaces the current title.
func (d *ComponentDiagram) FromDocument(doc ComponentDocument) error {
	if doc.ContainerName != "" {
		d.containerName = doc.ContainerName
	}
	for i, c := range doc.Components {
		if err := d.AddComponent(c); err != nil {
			return fmt.Errorf("components[%d]: %w", i, err)
		}
	}
	for i, r := range doc.Relationships {
		if err := d.AddRelationship(r); err != nil {
			return fmt.Errorf("relationships[%d]: %w", i, err)
		}
	}
	return nil
}

// FromJSON decodes raw JSON and loads it with [ComponentDiagram.FromDocument].
func (d *ComponentDiagram) FromJSON(data []byte) error {
	var doc ComponentDocument
	if err := unmarshalDocument(data, &doc); err != nil {
		return err
	}
	return d.FromDocument(doc)
}

// MarshalJSON encodes the diagram as its document.
func (d *ComponentDiagram) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.ToDocument())
}
