package cli

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "flows.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func testHandler(t *testing.T, input string) http.Handler {
	t.Helper()
	var buf bytes.Buffer
	logger := newLogger(&buf, log.ErrorLevel)
	return newPreviewHandler(logger, input, &serveOpts{delimiter: ","})
}

func TestServeIndex(t *testing.T) {
	input := writeTempCSV(t, "left,right,lw,rw\na,x,1,1\n")
	h := testHandler(t, input)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("GET / status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type = %q, want text/html", ct)
	}
	if !strings.Contains(rec.Body.String(), "/diagram.svg") {
		t.Error("index page should embed the SVG endpoint")
	}
}

func TestServeDiagramSVG(t *testing.T) {
	input := writeTempCSV(t, "left,right,lw,rw\na,x,1,1\nb,x,2,2\n")
	h := testHandler(t, input)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/diagram.svg", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("GET /diagram.svg status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("Content-Type = %q, want image/svg+xml", ct)
	}
	if !strings.Contains(rec.Body.String(), "<svg") {
		t.Error("response should contain an SVG document")
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("response should carry an X-Request-ID header")
	}
}

func TestServeRequestIDHonored(t *testing.T) {
	input := writeTempCSV(t, "left,right,lw,rw\na,x,1,1\n")
	h := testHandler(t, input)

	req := httptest.NewRequest(http.MethodGet, "/diagram.json", nil)
	req.Header.Set("X-Request-ID", "client-id-1")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if got := rec.Header().Get("X-Request-ID"); got != "client-id-1" {
		t.Errorf("X-Request-ID = %q, want client supplied id", got)
	}
}

func TestServeBrokenDataset(t *testing.T) {
	input := writeTempCSV(t, "left,right,lw,rw\na,x,not-a-number,1\n")
	h := testHandler(t, input)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/diagram.svg", nil))

	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("broken CSV status = %d, want 422", rec.Code)
	}
}

func TestServeMissingFile(t *testing.T) {
	h := testHandler(t, filepath.Join(t.TempDir(), "missing.csv"))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/diagram.svg", nil))

	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("missing file status = %d, want 422", rec.Code)
	}
}
