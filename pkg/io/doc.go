// Package io reads and writes C4 diagram documents.
//
// # Formats
//
// Documents are accepted as JSON or YAML. Both encodings share the same
// schema: a title field (system_name, container_name or component_name), one
// array per entity collection, and the edge arrays of the level:
//
//	{
//	  "system_name": "Shop",
//	  "users": [{"name": "Customer"}],
//	  "external_systems": [{"name": "Payments API", "protocol": "HTTPS"}],
//	  "relationships": [
//	    {"source": "Customer", "target": "Payments API", "label": "pays"}
//	  ]
//	}
//
// The encoding is chosen from the file extension by [EncodingFromPath]:
// ".yaml" and ".yml" are YAML, everything else is JSON.
//
// # Level Detection
//
// When the caller does not name a level, [DetectLevel] infers it from the
// top-level keys: classes or component_name mean code, components or
// container_name mean component, containers mean container, and users or
// external_systems mean context. A document carrying only system_name is
// treated as a context diagram.
//
// # Import
//
// Use [Import] to read a diagram from a file path, or [Read] to read from any
// io.Reader:
//
//	d, err := io.Import("shop.json", 0)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Decoding failures carry the INVALID_DOCUMENT code; missing required fields
// carry MISSING_FIELD with the offending array index in the message.
//
// # Export
//
// Use [Export] or [Write] to serialize a diagram. JSON output is indented
// with two spaces; YAML output uses two-space indentation as well.
package io
