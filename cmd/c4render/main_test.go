package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"

	c4errors "github.com/matzehuels/c4render/pkg/errors"
)

func TestReport(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantOut  string
	}{
		{
			name:     "validation error keeps context without code",
			err:      fmt.Errorf("doc.json: %w", c4errors.New(c4errors.ErrCodeEmptyDiagram, "no containers")),
			wantCode: 2,
			wantOut:  "Error: doc.json: no containers\n",
		},
		{
			name:     "other error",
			err:      errors.New("disk full"),
			wantCode: 1,
			wantOut:  "Error: disk full\n",
		},
		{
			name:     "interrupted",
			err:      fmt.Errorf("render: %w", context.Canceled),
			wantCode: 130,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if got := report(&buf, tt.err); got != tt.wantCode {
				t.Errorf("report() = %d, want %d", got, tt.wantCode)
			}
			if buf.String() != tt.wantOut {
				t.Errorf("output = %q, want %q", buf.String(), tt.wantOut)
			}
		})
	}
}
