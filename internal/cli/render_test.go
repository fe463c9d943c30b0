package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/c4render/internal/config"
	"github.com/matzehuels/c4render/pkg/cache"
	"github.com/matzehuels/c4render/pkg/errors"
)

func TestRenderCommandWritesDefaultName(t *testing.T) {
	isolate(t)
	doc := writeDoc(t, "payments.json", contextDoc)
	out := t.TempDir()

	logs, err := execute(t, "render", doc, "--format", "dot", "-o", out)
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(out, "c4_level1_context.dot"))
	if err != nil {
		t.Fatalf("output not written: %v", err)
	}
	if !strings.HasPrefix(string(data), "digraph C4 {") {
		t.Errorf("unexpected output: %.40q", data)
	}
	if !strings.Contains(logs, "diagram generated") {
		t.Errorf("logs missing completion line: %q", logs)
	}
}

func TestRenderCommandLevelAndName(t *testing.T) {
	isolate(t)
	doc := writeDoc(t, "api.json", componentDoc)
	out := t.TempDir()

	if _, err := execute(t, "render", doc, "-l", "c3", "-f", "dot", "-n", "api_parts", "-o", out); err != nil {
		t.Fatalf("render: %v", err)
	}
	if _, err := os.Stat(filepath.Join(out, "api_parts.dot")); err != nil {
		t.Errorf("api_parts.dot not written: %v", err)
	}
}

func TestRenderCommandCachesArtifact(t *testing.T) {
	isolate(t)
	doc := writeDoc(t, "api.yaml", "container_name: API\ncomponents:\n  - name: Router\n    technology: chi\n")
	out := t.TempDir()

	if _, err := execute(t, "render", doc, "-f", "dot", "-o", out); err != nil {
		t.Fatalf("render: %v", err)
	}

	cfg := config.Default()
	fc, err := cache.NewFileCache(cfg.Cache.Dir)
	if err != nil {
		t.Fatal(err)
	}
	stats, err := fc.Stats()
	if err != nil {
		t.Fatal(err)
	}
	if stats.Entries != 1 {
		t.Errorf("cache entries = %d, want 1", stats.Entries)
	}

	// --no-cache leaves the cache untouched.
	if _, err := execute(t, "render", doc, "-f", "svg", "--no-cache", "--dry-run", "-o", out); err != nil {
		t.Fatalf("render --no-cache: %v", err)
	}
	stats, _ = fc.Stats()
	if stats.Entries != 1 {
		t.Errorf("cache entries after --no-cache = %d, want 1", stats.Entries)
	}
}

func TestRenderCommandDryRun(t *testing.T) {
	isolate(t)
	doc := writeDoc(t, "payments.json", contextDoc)
	out := filepath.Join(t.TempDir(), "never")

	if _, err := execute(t, "render", doc, "-f", "dot", "--dry-run", "-o", out); err != nil {
		t.Fatalf("render: %v", err)
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Errorf("dry run created %s", out)
	}
}

func TestRenderCommandErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		args []string
		code errors.Code
	}{
		{"unknown level", contextDoc, []string{"--level", "c9"}, errors.ErrCodeInvalidLevel},
		{"unsupported format", contextDoc, []string{"-f", "gif"}, errors.ErrCodeInvalidFormat},
		{"bad name", contextDoc, []string{"-f", "dot", "-n", "9lives"}, errors.ErrCodeInvalidFilename},
		{"empty components", `{"container_name":"API","components":[]}`, []string{"-f", "dot"}, errors.ErrCodeEmptyDiagram},
		{"malformed", `{"system_name":`, []string{"-f", "dot", "-l", "context"}, errors.ErrCodeInvalidDocument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			doc := writeDoc(t, "doc.json", tt.doc)
			out := t.TempDir()

			args := append([]string{"render", doc, "-o", out}, tt.args...)
			_, err := execute(t, args...)
			if !errors.Is(err, tt.code) {
				t.Fatalf("err = %v, want code %s", err, tt.code)
			}
			entries, _ := os.ReadDir(out)
			if len(entries) != 0 {
				t.Errorf("output dir has %d entries, want none", len(entries))
			}
		})
	}
}

func TestRenderCommandMissingFile(t *testing.T) {
	isolate(t)
	_, err := execute(t, "render", filepath.Join(t.TempDir(), "missing.json"), "-f", "dot")
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}
