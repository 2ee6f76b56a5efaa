package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Amey8050/Dukaan-clone-sub000/pkg/logger"
)

func TestLoggingRecordsResponseStatus(t *testing.T) {
	var buf bytes.Buffer
	logg := logger.New(logger.Options{Output: &buf})

	handler := Logging(logg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	req := httptest.NewRequest(http.MethodGet, "/missing", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
	out := buf.String()
	if !strings.Contains(out, "request.complete") {
		t.Fatalf("expected completion log, got: %s", out)
	}
	if !strings.Contains(out, `"status":404`) {
		t.Fatalf("expected recorded status 404, got: %s", out)
	}
}

func TestLoggingDefaultsStatusToOK(t *testing.T) {
	var buf bytes.Buffer
	logg := logger.New(logger.Options{Output: &buf})

	handler := Logging(logg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok")) // no explicit WriteHeader
	}))

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/", nil))

	if !strings.Contains(buf.String(), `"status":200`) {
		t.Fatalf("expected implicit 200, got: %s", buf.String())
	}
}
