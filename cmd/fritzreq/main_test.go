package main

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/samvad-hq/fritzbox-request/internal/config"
)

func TestRunWritesBodyOnSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.RawQuery != "page=overview&sid=abc" {
			t.Errorf("query = %q", r.URL.RawQuery)
		}
		_, _ = w.Write([]byte(`{"data":{}}`))
	}))
	defer srv.Close()

	var stdout, stderr bytes.Buffer
	cfg := &config.Config{LogLevel: "error", Server: strings.TrimPrefix(srv.URL, "http://"), SID: "abc"}
	if err := run(context.Background(), cfg, "/data.lua?page=overview", "", &stdout, &stderr); err != nil {
		t.Fatalf("run: %v", err)
	}
	if stdout.String() != `{"data":{}}` {
		t.Fatalf("stdout = %q", stdout.String())
	}
	if stderr.Len() != 0 {
		t.Fatalf("unexpected stderr %q", stderr.String())
	}
}

func TestRunReportsClassifiedFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	var stdout, stderr bytes.Buffer
	cfg := &config.Config{LogLevel: "error", Server: strings.TrimPrefix(srv.URL, "http://")}
	err := run(context.Background(), cfg, "/data.lua?x=1", "GET", &stdout, &stderr)
	if !errors.Is(err, errRequestFailed) {
		t.Fatalf("expected errRequestFailed, got %v", err)
	}
	if got := stderr.String(); got != "500: The Fritz!Box encountered an internal server error.\n" {
		t.Fatalf("stderr = %q", got)
	}
}

func TestRunMissingServer(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), &config.Config{LogLevel: "error"}, "/x?a=1", "", &stdout, &stderr)
	if err == nil || err.Error() != "missing login config" {
		t.Fatalf("expected missing login config, got %v", err)
	}
}
