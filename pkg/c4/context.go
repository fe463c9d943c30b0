package c4

import (
	"encoding/json"
	"fmt"
	"slices"

	"github.com/matzehuels/c4render/pkg/errors"
)

// User is a person interacting with the system.
type User struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Role        string `json:"role,omitempty" yaml:"role,omitempty"`
}

// ExternalSystem is a software system outside the one being modeled.
type ExternalSystem struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Protocol    string `json:"protocol,omitempty" yaml:"protocol,omitempty"`
}

// ContextElement is anything that can be registered on a [ContextDiagram]:
// a [User], an [ExternalSystem], or a [Relationship].
type ContextElement interface{ contextElement() }

func (User) contextElement()           {}
func (ExternalSystem) contextElement() {}
func (Relationship) contextElement()   {}

// ContextDocument is the serialized form of a [ContextDiagram].
type ContextDocument struct {
	SystemName      string           `json:"system_name" yaml:"system_name"`
	Users           []User           `json:"users" yaml:"users"`
	ExternalSystems []ExternalSystem `json:"external_systems" yaml:"external_systems"`
	Relationships   []Relationship   `json:"relationships" yaml:"relationships"`
}

// ContextDiagram is the level-1 aggregate: the subject system surrounded by
// its users and the external systems it talks to.
type ContextDiagram struct {
	systemName      string
	users           []User
	externalSystems []ExternalSystem
	relationships   []Relationship

	userNames     names
	externalNames names
}

// NewContext creates an empty context diagram for the named system.
func NewContext(systemName string) *ContextDiagram {
	return &ContextDiagram{systemName: systemName}
}

func (d *ContextDiagram) Level() Level  { return LevelContext }
func (d *ContextDiagram) Title() string { return d.systemName }
func (d *ContextDiagram) EntityCount() int {
	return len(d.users) + len(d.externalSystems)
}
func (d *ContextDiagram) EdgeCount() int { return len(d.relationships) }
func (d *ContextDiagram) Document() any  { return d.ToDocument() }

// Users returns the registered users in insertion order.
func (d *ContextDiagram) Users() []User { return slices.Clone(d.users) }

// ExternalSystems returns the registered external systems in insertion order.
func (d *ContextDiagram) ExternalSystems() []ExternalSystem {
	return slices.Clone(d.externalSystems)
}

// Relationships returns the registered relationships in insertion order.
func (d *ContextDiagram) Relationships() []Relationship {
	return slices.Clone(d.relationships)
}

// AddUser registers a user. The name is required and must be unique among users.
func (d *ContextDiagram) AddUser(u User) error {
	if err := errors.RequireField("user", "name", u.Name); err != nil {
		return err
	}
	if err := d.userNames.claim("user", u.Name); err != nil {
		return err
	}
	d.users = append(d.users, u)
	return nil
}

// AddExternalSystem registers an external system. The name is required and
// must be unique among external systems.
func (d *ContextDiagram) AddExternalSystem(s ExternalSystem) error {
	if err := errors.RequireField("external system", "name", s.Name); err != nil {
		return err
	}
	if err := d.externalNames.claim("external system", s.Name); err != nil {
		return err
	}
	d.externalSystems = append(d.externalSystems, s)
	return nil
}

// AddRelationship registers a relationship. Source, target, and label are required.
func (d *ContextDiagram) AddRelationship(r Relationship) error {
	if err := r.validate(); err != nil {
		return err
	}
	d.relationships = append(d.relationships, r)
	return nil
}

// Add registers several elements in order and stops at the first invalid one.
// Elements before the failing one stay registered.
func (d *ContextDiagram) Add(elems ...ContextElement) error {
	for i, e := range elems {
		var err error
		switch v := e.(type) {
		case User:
			err = d.AddUser(v)
		case ExternalSystem:
			err = d.AddExternalSystem(v)
		case Relationship:
			err = d.AddRelationship(v)
		default:
			err = errors.New(errors.ErrCodeInvalidInput, "unsupported context element %T", e)
		}
		if err != nil {
			return fmt.Errorf("element %d: %w", i, err)
		}
	}
	return nil
}

// ToDocument exports the diagram. Slices are copied, so later changes to the
// diagram do not affect the returned document.
func (d *ContextDiagram) ToDocument() ContextDocument {
	return ContextDocument{
		SystemName:      d.systemName,
		Users:           append([]User{}, d.users...),
		ExternalSystems: append([]ExternalSystem{}, d.externalSystems...),
		Relationships:   append([]Relationship{}, d.relationships...),
	}
}

// FromDocument appends the document's entities and relationships in document
// order. A non-empty system_name replaces the current title.
func (d *ContextDiagram) FromDocument(doc ContextDocument) error {
	if doc.SystemName != "" {
		d.systemName = doc.SystemName
	}
	for i, u := range doc.Users {
		if err := d.AddUser(u); err != nil {
			return fmt.Errorf("users[%d]: %w", i, err)
		}
	}
	for i, s := range doc.ExternalSystems {
		if err := d.AddExternalSystem(s); err != nil {
			return fmt.Errorf("external_systems[%d]: %w", i, err)
		}
	}
	for i, r := range doc.Relationships {
		if err := d.AddRelationship(r); err != nil {
			return fmt.Errorf("relationships[%d]: %w", i, err)
		}
	}
	return nil
}

// FromJSON decodes raw JSON and loads it with [ContextDiagram.FromDocument].
func (d *ContextDiagram) FromJSON(data []byte) error {
	var doc ContextDocument
	if err := unmarshalDocument(data, &doc); err != nil {
		return err
	}
	return d.FromDocument(doc)
}

// MarshalJSON encodes the diagram as its document.
func (d *ContextDiagram) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.ToDocument())
}
