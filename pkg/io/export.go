package io

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/c4render/pkg/c4"
	"github.com/matzehuels/c4render/pkg/render"
)

// Write encodes the diagram's document to w.
func Write(d c4.Diagram, w io.Writer, enc Encoding) error {
	if enc == EncodingYAML {
		ye := yaml.NewEncoder(w)
		ye.SetIndent(2)
		if err := ye.Encode(d.Document()); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
		return ye.Close()
	}

	je := json.NewEncoder(w)
	je.SetIndent("", "  ")
	if err := je.Encode(d.Document()); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// Export writes the diagram to path, choosing the encoding from its extension.
// The file is replaced atomically; on error any existing file is left as is.
func Export(d c4.Diagram, path string) error {
	var buf bytes.Buffer
	if err := Write(d, &buf, EncodingFromPath(path)); err != nil {
		return err
	}
	return render.WriteFile(path, buf.Bytes())
}
