package web

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"csvtable/internal/config"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	return NewServer(&config.Config{
		Server: config.ServerConfig{
			Host:         "127.0.0.1",
			Port:         0,
			ReadTimeout:  time.Second,
			WriteTimeout: 5 * time.Second,
			IdleTimeout:  time.Second,
		},
		Limits: config.LimitsConfig{
			MaxUploadSize:       1 << 20,
			PreviewRows:         2,
			MaxConcurrentParses: 2,
			ParseWaitTime:       time.Second,
		},
	})
}

// multipartBody builds an upload request body with a file part and optional
// extra form fields.
func multipartBody(t *testing.T, filename, content string, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("CreateFormFile: %v", err)
	}
	if _, err := io.WriteString(part, content); err != nil {
		t.Fatalf("write part: %v", err)
	}
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			t.Fatalf("WriteField(%s): %v", k, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return &buf, w.FormDataContentType()
}

func postUpload(t *testing.T, s *Server, path, filename, content string, fields map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	body, contentType := multipartBody(t, filename, content, fields)
	req := httptest.NewRequest(http.MethodPost, path, body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	s := testServer(t)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := rec.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("X-Content-Type-Options = %q", got)
	}
}

func TestInspect(t *testing.T) {
	s := testServer(t)
	csv := "name,age,joined\nada,36,2016-07-22\ngrace,85,2016-01-02\n"

	rec := postUpload(t, s, "/api/inspect", "people.csv", csv, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}

	var resp InspectResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Table != "people.csv" {
		t.Errorf("table = %q", resp.Table)
	}
	if resp.Rows != 2 {
		t.Errorf("rows = %d", resp.Rows)
	}
	want := []ColumnSchema{
		{Name: "name", Type: "category"},
		{Name: "age", Type: "short"},
		{Name: "joined", Type: "date", Format: "2006-01-02"},
	}
	if len(resp.Columns) != len(want) {
		t.Fatalf("columns = %+v", resp.Columns)
	}
	for i, w := range want {
		if resp.Columns[i] != w {
			t.Errorf("column %d = %+v, want %+v", i, resp.Columns[i], w)
		}
	}
}

func TestInspectFormOptions(t *testing.T) {
	s := testServer(t)
	rec := postUpload(t, s, "/api/inspect", "raw.txt", "1;red\n2;blue\n", map[string]string{
		"delimiter": ";",
		"header":    "false",
		"name":      "colors",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}

	var resp InspectResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Table != "colors" {
		t.Errorf("table = %q", resp.Table)
	}
	if resp.Columns[0].Name != "C0" {
		t.Errorf("first column = %+v", resp.Columns[0])
	}
}

func TestPreview(t *testing.T) {
	s := testServer(t)
	csv := "n\n1\n2\n3\n4\n"

	rec := postUpload(t, s, "/api/preview", "nums.csv", csv, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}

	var resp PreviewResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Rows != 4 {
		t.Errorf("rows = %d", resp.Rows)
	}
	// Preview is capped by the configured limit.
	if len(resp.Preview) != 2 {
		t.Fatalf("preview rows = %d, want 2", len(resp.Preview))
	}
	if resp.Preview[0][0] != "1" || resp.Preview[1][0] != "2" {
		t.Errorf("preview = %v", resp.Preview)
	}
}

func TestInspectRejectsBadRequests(t *testing.T) {
	s := testServer(t)

	t.Run("missing file", func(t *testing.T) {
		var buf bytes.Buffer
		w := multipart.NewWriter(&buf)
		if err := w.WriteField("name", "x"); err != nil {
			t.Fatalf("WriteField: %v", err)
		}
		w.Close()
		req := httptest.NewRequest(http.MethodPost, "/api/inspect", &buf)
		req.Header.Set("Content-Type", w.FormDataContentType())
		rec := httptest.NewRecorder()
		s.Router().ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d", rec.Code)
		}
	})

	t.Run("bad delimiter", func(t *testing.T) {
		rec := postUpload(t, s, "/api/inspect", "a.csv", "a\n1\n", map[string]string{"delimiter": "ab"})
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d", rec.Code)
		}
	})

	t.Run("bad header flag", func(t *testing.T) {
		rec := postUpload(t, s, "/api/inspect", "a.csv", "a\n1\n", map[string]string{"header": "sometimes"})
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d", rec.Code)
		}
	})

	t.Run("empty file", func(t *testing.T) {
		rec := postUpload(t, s, "/api/inspect", "a.csv", "", nil)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d", rec.Code)
		}
	})
}
