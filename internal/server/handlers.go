package server

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/matzehuels/c4render/pkg/buildinfo"
	"github.com/matzehuels/c4render/pkg/c4"
	"github.com/matzehuels/c4render/pkg/errors"
	c4io "github.com/matzehuels/c4render/pkg/io"
	"github.com/matzehuels/c4render/pkg/pipeline"
	"github.com/matzehuels/c4render/pkg/render"
)

// Response headers set by the render endpoint.
const (
	HeaderDiagramPath  = "X-Diagram-Path"
	HeaderCache        = "X-Cache"
	HeaderSkippedEdges = "X-Skipped-Edges"
)

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string         `json:"status"`
	Build  buildinfo.Info `json:"build"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code  string `json:"code"`
	Error string `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Build: buildinfo.Get()})
}

// handleDocument decodes, validates and re-encodes a document, returning
// its normalized form (defaults filled, empty lists present).
func (s *Server) handleDocument(w http.ResponseWriter, r *http.Request) {
	d, ok := s.readDiagram(w, r)
	if !ok {
		return
	}
	enc := c4io.EncodingJSON
	if wantsYAML(r.Header.Get("Accept")) {
		enc = c4io.EncodingYAML
		w.Header().Set("Content-Type", "application/yaml")
	} else {
		w.Header().Set("Content-Type", "application/json")
	}
	w.WriteHeader(http.StatusOK)
	if err := c4io.Write(d, w, enc); err != nil {
		s.logger.Error("write document", "error", err)
	}
}

// handleRender renders the posted document. The artifact is written under a
// fresh identifier unless ?filename= is given.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	d, ok := s.readDiagram(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	opts := pipeline.Options{
		Format:   q.Get("format"),
		Filename: q.Get("filename"),
		Refresh:  q.Get("refresh") == "true",
	}
	if opts.Filename == "" {
		opts.Filename = newArtifactName()
	}

	res, err := s.runner.Execute(r.Context(), d, opts)
	if err != nil {
		s.writeError(w, err)
		return
	}

	cacheStatus := "MISS"
	if res.CacheHit {
		cacheStatus = "HIT"
	}
	w.Header().Set("Content-Type", res.Format.ContentType())
	w.Header().Set(HeaderDiagramPath, "/diagrams/"+filepath.Base(res.Path))
	w.Header().Set(HeaderCache, cacheStatus)
	w.Header().Set(HeaderSkippedEdges, strconv.Itoa(len(res.Skipped)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Data)
}

// handleDiagram serves a file from the output directory. Only plain
// "<identifier>.<format>" names are accepted.
func (s *Server) handleDiagram(w http.ResponseWriter, r *http.Request) {
	file := chi.URLParam(r, "file")
	base, ext, found := strings.Cut(file, ".")
	if !found {
		s.writeError(w, errors.New(errors.ErrCodeInvalidFilename, "missing extension: %q", file))
		return
	}
	format, err := render.ParseFormat(ext)
	if err != nil || string(format) != ext {
		s.writeError(w, errors.New(errors.ErrCodeInvalidFormat, "unsupported extension: %q", ext))
		return
	}
	if err := errors.ValidateOutputFilename(base); err != nil {
		s.writeError(w, err)
		return
	}

	data, err := os.ReadFile(filepath.Join(s.runner.Renderer.OutputDir(), file))
	if err != nil {
		if stderrors.Is(err, os.ErrNotExist) {
			s.writeError(w, errors.New(errors.ErrCodeNotFound, "diagram not found: %s", file))
			return
		}
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", format.ContentType())
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// readDiagram reads and decodes the request body for the {level} route.
// On failure it writes the error response and returns false.
func (s *Server) readDiagram(w http.ResponseWriter, r *http.Request) (c4.Diagram, bool) {
	var level c4.Level
	if p := chi.URLParam(r, "level"); p != "auto" {
		l, err := c4.ParseLevel(p)
		if err != nil {
			s.writeError(w, err)
			return nil, false
		}
		level = l
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.maxBody))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, ErrorResponse{
				Code:  string(errors.ErrCodeInvalidInput),
				Error: "request body exceeds " + strconv.FormatInt(tooLarge.Limit, 10) + " bytes",
			})
			return nil, false
		}
		s.writeError(w, err)
		return nil, false
	}

	enc := c4io.EncodingJSON
	if wantsYAML(r.Header.Get("Content-Type")) {
		enc = c4io.EncodingYAML
	}
	d, err := c4io.Decode(body, enc, level)
	if err != nil {
		s.writeError(w, err)
		return nil, false
	}
	return d, true
}

// writeError maps error codes to HTTP statuses: validation errors are 400,
// missing resources 404, everything else 500.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.IsValidation(err):
		status = http.StatusBadRequest
	case errors.Is(err, errors.ErrCodeNotFound), errors.Is(err, errors.ErrCodeFileNotFound):
		status = http.StatusNotFound
	}

	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	msg := err.Error()
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "error", err)
		msg = "internal error"
	}
	writeJSON(w, status, ErrorResponse{Code: string(code), Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func wantsYAML(mediaType string) bool {
	return strings.Contains(strings.ToLower(mediaType), "yaml")
}

// newArtifactName returns a fresh identifier usable as an output filename.
func newArtifactName() string {
	return "c4_" + strings.ReplaceAll(uuid.NewString(), "-", "")
}
