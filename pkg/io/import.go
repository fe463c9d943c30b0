package io

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/c4render/pkg/c4"
	"github.com/matzehuels/c4render/pkg/errors"
)

// Encoding is a document serialization format.
type Encoding string

const (
	EncodingJSON Encoding = "json"
	EncodingYAML Encoding = "yaml"
)

// EncodingFromPath picks the encoding from a file extension.
func EncodingFromPath(path string) Encoding {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return EncodingYAML
	default:
		return EncodingJSON
	}
}

// levelKeys lists, from most to least specific, the top-level keys that
// identify each level.
var levelKeys = []struct {
	level c4.Level
	keys  []string
}{
	{c4.LevelCode, []string{"classes", "component_name", "associations", "inheritances", "interfaces"}},
	{c4.LevelComponent, []string{"components", "container_name"}},
	{c4.LevelContainer, []string{"containers"}},
	{c4.LevelContext, []string{"users", "external_systems", "system_name"}},
}

// DetectLevel infers the diagram level from a document's top-level keys.
func DetectLevel(data []byte, enc Encoding) (c4.Level, error) {
	keys, err := topLevelKeys(data, enc)
	if err != nil {
		return 0, err
	}
	for _, lk := range levelKeys {
		for _, k := range lk.keys {
			if _, ok := keys[k]; ok {
				return lk.level, nil
			}
		}
	}
	return 0, errors.New(errors.ErrCodeInvalidLevel, "cannot detect diagram level: no known top-level keys")
}

func topLevelKeys(data []byte, enc Encoding) (map[string]struct{}, error) {
	keys := make(map[string]struct{})
	switch enc {
	case EncodingYAML:
		var m map[string]yaml.Node
		if err := yaml.Unmarshal(data, &m); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "decode yaml")
		}
		for k := range m {
			keys[k] = struct{}{}
		}
	default:
		var m map[string]json.RawMessage
		if err := json.Unmarshal(data, &m); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "decode json")
		}
		for k := range m {
			keys[k] = struct{}{}
		}
	}
	return keys, nil
}

// Read decodes a diagram document from r.
//
// A zero level asks Read to detect it with [DetectLevel]. Entities and edges
// are registered in document order through the diagram's add operations, so
// the returned diagram satisfies the same invariants as one built in code.
// Read does not close r.
func Read(r io.Reader, enc Encoding, level c4.Level) (c4.Diagram, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	return Decode(data, enc, level)
}

// Decode is [Read] for an in-memory document.
func Decode(data []byte, enc Encoding, level c4.Level) (c4.Diagram, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidDocument, "empty document")
	}
	if level == 0 {
		var err error
		if level, err = DetectLevel(data, enc); err != nil {
			return nil, err
		}
	}

	decode := func(v any) error {
		var err error
		if enc == EncodingYAML {
			err = yaml.Unmarshal(data, v)
		} else {
			err = json.Unmarshal(data, v)
		}
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidDocument, err, "decode %s", enc)
		}
		return nil
	}

	d, err := c4.New(level, "")
	if err != nil {
		return nil, err
	}
	switch v := d.(type) {
	case *c4.ContextDiagram:
		return load(decode, v, v.FromDocument)
	case *c4.ContainerDiagram:
		return load(decode, v, v.FromDocument)
	case *c4.ComponentDiagram:
		return load(decode, v, v.FromDocument)
	case *c4.CodeDiagram:
		return load(decode, v, v.FromDocument)
	}
	return nil, errors.New(errors.ErrCodeUnsupported, "unsupported diagram type %T", d)
}

func load[T any](decode func(any) error, d c4.Diagram, fill func(T) error) (c4.Diagram, error) {
	var doc T
	if err := decode(&doc); err != nil {
		return nil, err
	}
	if err := fill(doc); err != nil {
		return nil, err
	}
	return d, nil
}

// Import reads the document at path, choosing the encoding from its extension.
func Import(path string, level c4.Level) (c4.Diagram, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	d, err := Read(f, EncodingFromPath(path), level)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}
