package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidInput, "test message: %s", "value")

	if err.Code != ErrCodeInvalidInput {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidInput)
	}

	if err.Message != "test message: value" {
		t.Errorf("Message = %v, want %v", err.Message, "test message: value")
	}

	expected := "INVALID_INPUT: test message: value"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeInvalidDocument, cause, "failed to decode")

	if err.Code != ErrCodeInvalidDocument {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidDocument)
	}

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}

	if unwrapped := errors.Unwrap(err); unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     Code
		expected bool
	}{
		{"matching code", New(ErrCodeMissingField, "test"), ErrCodeMissingField, true},
		{"non-matching code", New(ErrCodeMissingField, "test"), ErrCodeInvalidFormat, false},
		{"wrapped error", Wrap(ErrCodeInternal, New(ErrCodeInvalidInput, "inner"), "outer"), ErrCodeInternal, true},
		{"fmt wrapped", fmt.Errorf("render: %w", New(ErrCodeInvalidFormat, "bmp")), ErrCodeInvalidFormat, true},
		{"non-Error type", errors.New("plain error"), ErrCodeInvalidInput, false},
		{"nil error", nil, ErrCodeInvalidInput, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.expected {
				t.Errorf("Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestIsValidation(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"missing field", New(ErrCodeMissingField, "x"), true},
		{"invalid format", New(ErrCodeInvalidFormat, "x"), true},
		{"empty diagram", New(ErrCodeEmptyDiagram, "x"), true},
		{"invalid filename", New(ErrCodeInvalidFilename, "x"), true},
		{"duplicate name", New(ErrCodeDuplicateName, "x"), true},
		{"wrapped validation", fmt.Errorf("outer: %w", New(ErrCodeInvalidLevel, "x")), true},
		{"internal", New(ErrCodeInternal, "x"), false},
		{"plain", errors.New("x"), false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValidation(tt.err); got != tt.want {
				t.Errorf("IsValidation(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeEmptyDiagram, "x")); got != ErrCodeEmptyDiagram {
		t.Errorf("GetCode = %q, want %q", got, ErrCodeEmptyDiagram)
	}
	if got := GetCode(errors.New("plain")); got != "" {
		t.Errorf("GetCode(plain) = %q, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	if got := UserMessage(New(ErrCodeMissingField, "name cannot be empty")); got != "name cannot be empty" {
		t.Errorf("UserMessage = %q", got)
	}
	if got := UserMessage(errors.New("boom")); got != "boom" {
		t.Errorf("UserMessage(plain) = %q", got)
	}

	wrapped := fmt.Errorf("doc.json: %w", Wrap(ErrCodeInvalidDocument, errors.New("unexpected EOF"), "decode json"))
	if got, want := UserMessage(wrapped), "doc.json: decode json: unexpected EOF"; got != want {
		t.Errorf("UserMessage(wrapped) = %q, want %q", got, want)
	}
}

func TestDanglingReferenceWarning(t *testing.T) {
	w := DanglingReferenceWarning{Level: "component", Edge: "A -> Z", Endpoint: "target", Name: "Z"}
	msg := w.Error()
	for _, part := range []string{"component", "A -> Z", "target", `"Z"`} {
		if !strings.Contains(msg, part) {
			t.Errorf("warning message %q missing %q", msg, part)
		}
	}
	if IsValidation(w) {
		t.Error("dangling reference must not classify as a validation error")
	}
}

func TestErrorCodesAreUnique(t *testing.T) {
	codes := []Code{
		ErrCodeInvalidInput, ErrCodeMissingField, ErrCodeDuplicateName,
		ErrCodeInvalidFormat, ErrCodeEmptyDiagram, ErrCodeInvalidFilename,
		ErrCodeInvalidLevel, ErrCodeInvalidDocument, ErrCodeNotFound,
		ErrCodeFileNotFound, ErrCodeInternal, ErrCodeUnsupported,
	}
	seen := make(map[Code]bool)
	for _, c := range codes {
		if seen[c] {
			t.Errorf("duplicate error code %q", c)
		}
		seen[c] = true
	}
}
