package web

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"

	"csvtable/internal/column"
	"csvtable/internal/ingest"
	"csvtable/internal/logging"
	"csvtable/internal/table"
)

// ColumnSchema describes one detected column in an inspection response.
type ColumnSchema struct {
	Name   string `json:"name"`
	Type   string `json:"type"`
	Format string `json:"format,omitempty"` // temporal columns only
}

// InspectResponse is the body of a successful /api/inspect call.
type InspectResponse struct {
	Table   string         `json:"table"`
	Rows    int            `json:"rows"`
	Columns []ColumnSchema `json:"columns"`
}

// PreviewResponse extends the schema with the first parsed rows.
type PreviewResponse struct {
	InspectResponse
	Preview [][]string `json:"preview"`
}

// handleHealth reports liveness and the current parse load.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(r.Context(), w, map[string]any{
		"status":  "ok",
		"parsing": s.limiter.Status(),
	})
}

// handleInspect parses an uploaded delimited file and returns its detected
// schema.
//
// The file arrives as the multipart field "file". Optional form fields:
// "delimiter" (single character, default ","), "header" ("true"/"false",
// default "true") and "name" (table name, defaults to the uploaded file
// name).
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	t, err := s.parseUpload(r)
	if err != nil {
		writeError(r.Context(), w, statusFor(err), err)
		return
	}
	logging.FromContext(r.Context()).Info("inspected upload",
		"table", t.Name(), "rows", t.RowCount(), "columns", t.ColumnCount())
	writeJSON(r.Context(), w, schemaOf(t))
}

// handlePreview behaves like inspect but additionally returns the first
// parsed rows rendered as text.
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	t, err := s.parseUpload(r)
	if err != nil {
		writeError(r.Context(), w, statusFor(err), err)
		return
	}

	n := s.cfg.Limits.PreviewRows
	if t.RowCount() < n {
		n = t.RowCount()
	}
	preview := make([][]string, n)
	for i := 0; i < n; i++ {
		preview[i] = t.Row(i)
	}
	writeJSON(r.Context(), w, PreviewResponse{
		InspectResponse: schemaOf(t),
		Preview:         preview,
	})
}

// statusFor maps a parse failure to its HTTP status.
func statusFor(err error) int {
	if errors.Is(err, ErrBusy) {
		return http.StatusServiceUnavailable
	}
	return http.StatusBadRequest
}

// parseUpload extracts the uploaded file and its parse settings from the
// request and runs ingestion, holding a parse slot for the duration.
func (s *Server) parseUpload(r *http.Request) (*table.Table, error) {
	if err := s.limiter.Acquire(r.Context()); err != nil {
		return nil, err
	}
	defer s.limiter.Release()

	r.Body = http.MaxBytesReader(nil, r.Body, s.cfg.Limits.MaxUploadSize)

	if err := r.ParseMultipartForm(s.cfg.Limits.MaxUploadSize); err != nil {
		return nil, fmt.Errorf("parse upload: %w", err)
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		return nil, fmt.Errorf("missing file field: %w", err)
	}
	defer file.Close()

	opts, err := optionsFromForm(r, file, header)
	if err != nil {
		return nil, err
	}
	t, err := ingest.Read(r.Context(), opts)
	if err != nil {
		return nil, err
	}
	return t, nil
}

// optionsFromForm builds parse options from the request's form fields.
func optionsFromForm(r *http.Request, file multipart.File, header *multipart.FileHeader) (ingest.Options, error) {
	name := r.FormValue("name")
	if name == "" {
		name = header.Filename
	}

	b := ingest.NewBuilder().
		Named(name).
		FromFile(header.Filename).
		FromReader(file)

	if d := r.FormValue("delimiter"); d != "" {
		runes := []rune(d)
		if len(runes) != 1 {
			return ingest.Options{}, fmt.Errorf("delimiter must be a single character, got %q", d)
		}
		b.WithDelimiter(runes[0])
	}

	switch strings.ToLower(r.FormValue("header")) {
	case "", "true", "1", "yes":
		b.WithHeader()
	case "false", "0", "no":
		b.WithoutHeader()
	default:
		return ingest.Options{}, fmt.Errorf("header must be true or false, got %q", r.FormValue("header"))
	}

	return b.Build(), nil
}

// schemaOf renders a parsed table's schema for JSON responses.
func schemaOf(t *table.Table) InspectResponse {
	resp := InspectResponse{
		Table:   t.Name(),
		Rows:    t.RowCount(),
		Columns: make([]ColumnSchema, 0, t.ColumnCount()),
	}
	for _, c := range t.Columns() {
		cs := ColumnSchema{Name: c.Name(), Type: c.Type().String()}
		switch tc := c.(type) {
		case *column.DateColumn:
			cs.Format = tc.Format().Layout()
		case *column.TimeColumn:
			cs.Format = tc.Format().Layout()
		case *column.DateTimeColumn:
			cs.Format = tc.Format().Layout()
		}
		resp.Columns = append(resp.Columns, cs)
	}
	return resp
}
