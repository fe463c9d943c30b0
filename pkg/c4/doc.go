// Package c4 models the four C4 diagram levels: system context, container,
// component, and code.
//
// # Overview
//
// Each level has its own aggregate root ([ContextDiagram], [ContainerDiagram],
// [ComponentDiagram], [CodeDiagram]) that owns ordered collections of entities
// and the edges between them. Edges reference entities by name only: an edge
// naming an unknown entity is kept in the diagram and in its document, and is
// skipped later by layout and rendering.
//
// # Registration
//
// Entities and edges are registered with the Add* methods, which validate the
// required fields and append in order. Insertion order is significant: it is
// the order the layout engine places entities in.
//
//	d := c4.NewContainer("Online Banking")
//	err := d.Add(
//	    c4.Container{Name: "Web App", Technology: "React"},
//	    c4.Container{Name: "DB", Technology: "PostgreSQL", Type: "Database"},
//	    c4.Relationship{Source: "Web App", Target: "DB", Label: "Reads", Protocol: "JDBC"},
//	)
//
// Names are unique within one collection. The same name may appear in two
// different collections (a user and an external system, say); the registry
// is a namespace per collection, not a global symbol table.
//
// # Documents
//
// Every diagram converts to and from a plain document struct whose JSON (and
// YAML) field names match the published schema:
//
//	doc := d.ToDocument()           // ContainerDocument
//	d2 := c4.NewContainer("")
//	err := d2.FromDocument(doc)     // same collections, same order
//	err = d2.FromJSON(rawJSON)      // raw JSON text is accepted too
//
// Unknown fields are ignored and optional fields take their defaults.
//
// # Concurrency
//
// A diagram is not safe for concurrent mutation. Build it, then serialize or
// render it, then discard it.
package c4
