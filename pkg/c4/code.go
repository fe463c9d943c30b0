package c4

import (
	"encoding/json"
	"fmt"
	"slices"

	"github.com/matzehuels/c4render/pkg/errors"
)

// DefaultClassType is applied to classes registered without a type.
const DefaultClassType = "Class"

// Class is a code element with optional attribute and method listings.
type Class struct {
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Attributes  []string `json:"attributes" yaml:"attributes"`
	Methods     []string `json:"methods" yaml:"methods"`
	Type        string   `json:"type" yaml:"type"`
	IsAbstract  bool     `json:"is_abstract" yaml:"is_abstract"`
	IsInterface bool     `json:"is_interface" yaml:"is_interface"`
}

// Association links two classes. Aggregation and Composition refine the same
// association; when both are set, composition wins for styling.
type Association struct {
	Class1       string `json:"class1" yaml:"class1"`
	Class2       string `json:"class2" yaml:"class2"`
	Label        string `json:"label,omitempty" yaml:"label,omitempty"`
	Multiplicity string `json:"multiplicity,omitempty" yaml:"multiplicity,omitempty"`
	Aggregation  bool   `json:"aggregation" yaml:"aggregation"`
	Composition  bool   `json:"composition" yaml:"composition"`
}

// String renders the association as "class1 -- class2".
func (a Association) String() string { return a.Class1 + " -- " + a.Class2 }

// Inheritance is an ordered (subclass, superclass) pair.
type Inheritance struct {
	Subclass   string `json:"subclass" yaml:"subclass"`
	Superclass string `json:"superclass" yaml:"superclass"`
}

// String renders the pair as "subclass extends superclass".
func (i Inheritance) String() string { return i.Subclass + " extends " + i.Superclass }

// Implementation is an ordered (implementor, interface) pair.
type Implementation struct {
	Implementor string `json:"implementor" yaml:"implementor"`
	Interface   string `json:"interface" yaml:"interface"`
}

// String renders the pair as "implementor implements interface".
func (i Implementation) String() string { return i.Implementor + " implements " + i.Interface }

// CodeElement is a [Class], [Association], [Inheritance], or [Implementation].
type CodeElement interface{ codeElement() }

func (Class) codeElement()          {}
func (Association) codeElement()    {}
func (Inheritance) codeElement()    {}
func (Implementation) codeElement() {}

// CodeDocument is the serialized form of a [CodeDiagram].
type CodeDocument struct {
	ComponentName string           `json:"component_name" yaml:"component_name"`
	Classes       []Class          `json:"classes" yaml:"classes"`
	Associations  []Association    `json:"associations" yaml:"associations"`
	Inheritances  []Inheritance    `json:"inheritances" yaml:"inheritances"`
	Interfaces    []Implementation `json:"interfaces" yaml:"interfaces"`
}

// CodeDiagram is the level-4 aggregate: the classes implementing one component.
type CodeDiagram struct {
	componentName   string
	classes         []Class
	associations    []Association
	inheritances    []Inheritance
	implementations []Implementation

	classNames names
}

// NewCode creates an empty code diagram for the named component.
func NewCode(componentName string) *CodeDiagram {
	return &CodeDiagram{componentName: componentName}
}

func (d *CodeDiagram) Level() Level     { return LevelCode }
func (d *CodeDiagram) Title() string    { return d.componentName }
func (d *CodeDiagram) EntityCount() int { return len(d.classes) }
func (d *CodeDiagram) EdgeCount() int {
	return len(d.associations) + len(d.inheritances) + len(d.implementations)
}
func (d *CodeDiagram) Document() any { return d.ToDocument() }

// Classes returns the registered classes in insertion order.
func (d *CodeDiagram) Classes() []Class { return slices.Clone(d.classes) }

// Associations returns the registered associations in insertion order.
func (d *CodeDiagram) Associations() []Association { return slices.Clone(d.associations) }

// Inheritances returns the registered inheritances in insertion order.
func (d *CodeDiagram) Inheritances() []Inheritance { return slices.Clone(d.inheritances) }

// Implementations returns the registered interface implementations in insertion order.
func (d *CodeDiagram) Implementations() []Implementation {
	return slices.Clone(d.implementations)
}

// AddClass registers a class. The name is required; an empty type defaults to
// [DefaultClassType] and nil attribute or method lists become empty lists.
func (d *CodeDiagram) AddClass(c Class) error {
	if err := errors.RequireField("class", "name", c.Name); err != nil {
		return err
	}
	if c.Type == "" {
		c.Type = DefaultClassType
	}
	c.Attributes = slices.Clone(orEmpty(c.Attributes))
	c.Methods = slices.Clone(orEmpty(c.Methods))
	if err := d.classNames.claim("class", c.Name); err != nil {
		return err
	}
	d.classes = append(d.classes, c)
	return nil
}

// AddAssociation registers an association. Both class names are required;
// label and multiplicity are optional.
func (d *CodeDiagram) AddAssociation(a Association) error {
	if err := errors.RequireField("association", "class1", a.Class1); err != nil {
		return err
	}
	if err := errors.RequireField("association", "class2", a.Class2); err != nil {
		return err
	}
	d.associations = append(d.associations, a)
	return nil
}

// AddInheritance registers a (subclass, superclass) pair.
func (d *CodeDiagram) AddInheritance(i Inheritance) error {
	if err := errors.RequireField("inheritance", "subclass", i.Subclass); err != nil {
		return err
	}
	if err := errors.RequireField("inheritance", "superclass", i.Superclass); err != nil {
		return err
	}
	d.inheritances = append(d.inheritances, i)
	return nil
}

// AddInterfaceImpl registers an (implementor, interface) pair.
func (d *CodeDiagram) AddInterfaceImpl(i Implementation) error {
	if err := errors.RequireField("implementation", "implementor", i.Implementor); err != nil {
		return err
	}
	if err := errors.RequireField("implementation", "interface", i.Interface); err != nil {
		return err
	}
	d.implementations = append(d.implementations, i)
	return nil
}

// Add registers several elements in order and stops at the first invalid one.
func (d *CodeDiagram) Add(elems ...CodeElement) error {
	for i, e := range elems {
		var err error
		switch v := e.(type) {
		case Class:
			err = d.AddClass(v)
		case Association:
			err = d.AddAssociation(v)
		case Inheritance:
			err = d.AddInheritance(v)
		case Implementation:
			err = d.AddInterfaceImpl(v)
		default:
			err = errors.New(errors.ErrCodeInvalidInput, "unsupported code element %T", e)
		}
		if err != nil {
			return fmt.Errorf("element %d: %w", i, err)
		}
	}
	return nil
}

// ToDocument exports the diagram. Class attribute and method lists are copied.
func (d *CodeDiagram) ToDocument() CodeDocument {
	classes := make([]Class, len(d.classes))
	for i, c := range d.classes {
		c.Attributes = slices.Clone(c.Attributes)
		c.Methods = slices.Clone(c.Methods)
		classes[i] = c
	}
	return CodeDocument{
		ComponentName: d.componentName,
		Classes:       classes,
		Associations:  append([]Association{}, d.associations...),
		Inheritances:  append([]Inheritance{}, d.inheritances...),
		Interfaces:    append([]Implementation{}, d.implementations...),
	}
}

// FromDocument appends the document's classes and edges in document order.
// A non-empty component_name replaces the current title.
func (d *CodeDiagram) FromDocument(doc CodeDocument) error {
	if doc.ComponentName != "" {
		d.componentName = doc.ComponentName
	}
	for i, c := range doc.Classes {
		if err := d.AddClass(c); err != nil {
			return fmt.Errorf("classes[%d]: %w", i, err)
		}
	}
	for i, a := range doc.Associations {
		if err := d.AddAssociation(a); err != nil {
			return fmt.Errorf("associations[%d]: %w", i, err)
		}
	}
	for i, inh := range doc.Inheritances {
		if err := d.AddInheritance(inh); err != nil {
			return fmt.Errorf("inheritances[%d]: %w", i, err)
		}
	}
	for i, impl := range doc.Interfaces {
		if err := d.AddInterfaceImpl(impl); err != nil {
			return fmt.Errorf("interfaces[%d]: %w", i, err)
		}
	}
	return nil
}

// FromJSON decodes raw JSON and loads it with [CodeDiagram.FromDocument].
func (d *CodeDiagram) FromJSON(data []byte) error {
	var doc CodeDocument
	if err := unmarshalDocument(data, &doc); err != nil {
		return err
	}
	return d.FromDocument(doc)
}

// MarshalJSON encodes the diagram as its document.
func (d *CodeDiagram) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.ToDocument())
}
