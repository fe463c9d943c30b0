package c4

import (
	"encoding/json"
	"fmt"
	"slices"

	"github.com/matzehuels/c4render/pkg/errors"
)

// DefaultContainerType is applied to containers registered without a type.
const DefaultContainerType = "Application"

// Container is a deployable unit (application, database, queue, ...) inside the system.
type Container struct {
	Name        string `json:"name" yaml:"name"`
	Technology  string `json:"technology" yaml:"technology"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Type        string `json:"type" yaml:"type"`
	DBSchema    string `json:"db_schema,omitempty" yaml:"db_schema,omitempty"`
}

// ContainerElement is a [Container] or a [Relationship].
type ContainerElement interface{ containerElement() }

func (Container) containerElement()    {}
func (Relationship) containerElement() {}

// ContainerDocument is the serialized form of a [ContainerDiagram].
type ContainerDocument struct {
	SystemName    string         `json:"system_name" yaml:"system_name"`
	Containers    []Container    `json:"containers" yaml:"containers"`
	Relationships []Relationship `json:"relationships" yaml:"relationships"`
}

// ContainerDiagram is the level-2 aggregate: the containers making up one system.
type ContainerDiagram struct {
	systemName    string
	containers    []Container
	relationships []Relationship

	containerNames names
}

// NewContainer creates an empty container diagram for the named system.
func NewContainer(systemName string) *ContainerDiagram {
	return &ContainerDiagram{systemName: systemName}
}

func (d *ContainerDiagram) Level() Level     { return LevelContainer }
func (d *ContainerDiagram) Title() string    { return d.systemName }
func (d *ContainerDiagram) EntityCount() int { return len(d.containers) }
func (d *ContainerDiagram) EdgeCount() int   { return len(d.relationships) }
func (d *ContainerDiagram) Document() any    { return d.ToDocument() }

// Containers returns the registered containers in insertion order.
func (d *ContainerDiagram) Containers() []Container { return slices.Clone(d.containers) }

// Relationships returns the registered relationships in insertion order.
func (d *ContainerDiagram) Relationships() []Relationship {
	return slices.Clone(d.relationships)
}

// AddContainer registers a container. Name and technology are required; an
// empty type defaults to [DefaultContainerType].
func (d *ContainerDiagram) AddContainer(c Container) error {
	if err := errors.RequireField("container", "name", c.Name); err != nil {
		return err
	}
	if err := errors.RequireField("container", "technology", c.Technology); err != nil {
		return err
	}
	if c.Type == "" {
		c.Type = DefaultContainerType
	}
	if err := d.containerNames.claim("container", c.Name); err != nil {
		return err
	}
	d.containers = append(d.containers, c)
	return nil
}

// AddRelationship registers a relationship. Source, target, and label are required.
func (d *ContainerDiagram) AddRelationship(r Relationship) error {
	if err := r.validate(); err != nil {
		return err
	}
	d.relationships = append(d.relationships, r)
	return nil
}

// Add registers several elements in order and stops at the first invalid one.
func (d *ContainerDiagram) Add(elems ...ContainerElement) error {
	for i, e := range elems {
		var err error
		switch v := e.(type) {
		case Container:
			err = d.AddContainer(v)
		case Relationship:
			err = d.AddRelationship(v)
		default:
			err = errors.New(errors.ErrCodeInvalidInput, "unsupported container element %T", e)
		}
		if err != nil {
			return fmt.Errorf("element %d: %w", i, err)
		}
	}
	return nil
}

// ToDocument exports the diagram.
func (d *ContainerDiagram) ToDocument() ContainerDocument {
	return ContainerDocument{
		SystemName:    d.systemName,
		Containers:    append([]Container{}, d.containers...),
		Relationships: append([]Relationship{}, d.relationships...),
	}
}

// FromDocument appends the document's containers and relationships in
// document order. A non-empty system_name replaces the current title.
func (d *ContainerDiagram) FromDocument(doc ContainerDocument) error {
	if doc.SystemName != "" {
		d.systemName = doc.SystemName
	}
	for i, c := range doc.Containers {
		if err := d.AddContainer(c); err != nil {
			return fmt.Errorf("containers[%d]: %w", i, err)
		}
	}
	for i, r := range doc.Relationships {
		if err := d.AddRelationship(r); err != nil {
			return fmt.Errorf("relationships[%d]: %w", i, err)
		}
	}
	return nil
}

// FromJSON decodes raw JSON and loads it with [ContainerDiagram.FromDocument].
func (d *ContainerDiagram) FromJSON(data []byte) error {
	var doc ContainerDocument
	if err := unmarshalDocument(data, &doc); err != nil {
		return err
	}
	return d.FromDocument(doc)
}

// MarshalJSON encodes the diagram as its document.
func (d *ContainerDiagram) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.ToDocument())
}
