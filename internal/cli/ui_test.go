package cli

import (
	"strings"
	"testing"
)

func TestStatsLine(t *testing.T) {
	tests := []struct {
		name     string
		entities int
		edges    int
		skipped  int
		status   string
		want     []string
		absent   []string
	}{
		{"fresh", 3, 2, 0, iconFresh, []string{"3 entities", "2 edges", "fresh"}, []string{"skipped"}},
		{"cached singular", 1, 1, 0, iconCached, []string{"1 entity", "1 edge", "cached"}, nil},
		{"skipped no status", 2, 4, 1, "", []string{"1 skipped"}, []string{"fresh", "cached"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := statsLine(tt.entities, tt.edges, tt.skipped, tt.status)
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Errorf("statsLine() = %q, missing %q", got, w)
				}
			}
			for _, a := range tt.absent {
				if strings.Contains(got, a) {
					t.Errorf("statsLine() = %q, should not contain %q", got, a)
				}
			}
		})
	}
}

func TestPlural(t *testing.T) {
	if got := plural(1, "edge", "edges"); got != "1 edge" {
		t.Errorf("plural(1) = %q", got)
	}
	if got := plural(0, "edge", "edges"); got != "0 edges" {
		t.Errorf("plural(0) = %q", got)
	}
}
