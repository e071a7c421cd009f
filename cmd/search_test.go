package cmd

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestRunSearch(t *testing.T) {
	backendSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("q"); got != "invoice march" {
			t.Errorf("q = %q, want %q", got, "invoice march")
		}
		if got := r.URL.Query().Get("max"); got != "5" {
			t.Errorf("max = %q, want %q", got, "5")
		}
		fmt.Fprint(w, `{"messages":[{"id":"m9","subject":"Invoice 2025-03","from":"billing@example.com","date":"2025-03-05T09:00:00Z"}]}`)
	}))
	defer backendSrv.Close()

	ws := newTestWorkspace(t, backendSrv.URL)

	var buf bytes.Buffer
	if err := runSearch(context.Background(), ws, "invoice march", 5, &buf); err != nil {
		t.Fatalf("runSearch() error = %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, `Search "invoice march":`) {
		t.Errorf("output missing query header: %q", out)
	}
	if !strings.Contains(out, "Invoice 2025-03") {
		t.Errorf("output missing result: %q", out)
	}

	// Search results are transient and never persisted
	cached, err := ws.store.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cached != nil {
		t.Errorf("search persisted results: %+v", cached)
	}
}

func TestRunSearch_OfflineDegrades(t *testing.T) {
	ws := newTestWorkspace(t, offlineBackendURL(t))

	var buf bytes.Buffer
	if err := runSearch(context.Background(), ws, "anything", 0, &buf); err != nil {
		t.Fatalf("runSearch() error = %v", err)
	}

	if !strings.Contains(buf.String(), "[offline] Backend unreachable, no search results.") {
		t.Errorf("output missing offline marker: %q", buf.String())
	}
}

func TestRunSearch_BackendStatusError(t *testing.T) {
	backendSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer backendSrv.Close()

	ws := newTestWorkspace(t, backendSrv.URL)

	var buf bytes.Buffer
	if err := runSearch(context.Background(), ws, "anything", 0, &buf); err == nil {
		t.Error("runSearch() expected error for backend failure")
	}
}
