package cmd

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/teemow/inboxtriage/internal/triage"
)

func TestRunSync(t *testing.T) {
	backendSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/sync" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if got := r.URL.Query().Get("max"); got != "10" {
			t.Errorf("max = %q, want %q", got, "10")
		}
		fmt.Fprint(w, `{"messages":[
			{"id":"m1","threadId":"t1","subject":"Budget review","from":"dana@example.com","date":"2025-03-01T10:00:00Z"},
			{"id":"m2","subject":"New thread","from":"b@example.com","date":"2025-03-02T10:00:00Z"}
		]}`)
	}))
	defer backendSrv.Close()

	ws := newTestWorkspace(t, backendSrv.URL)

	// m1 was analyzed before the sync; m-stale is gone from the backend.
	seed := []triage.Email{
		{
			ID: "m1", ThreadID: "t1", Subject: "Budget review", Sender: "dana@example.com", ReceivedAt: "2025-03-01T10:00:00Z",
			Analysis: &triage.Analysis{Summary: "Sign-off needed", Priority: triage.PriorityHigh, UrgencyScore: 80, Category: triage.CategoryWork, Sentiment: triage.SentimentNeutral},
		},
		{ID: "m-stale", Subject: "Old", Sender: "c@example.com", ReceivedAt: "2025-01-01T00:00:00Z"},
	}
	if err := ws.store.Save(seed); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	var buf bytes.Buffer
	if err := runSync(context.Background(), ws, 10, &buf); err != nil {
		t.Fatalf("runSync() error = %v", err)
	}

	if !strings.Contains(buf.String(), "Synced 2 message(s) into 2 thread(s).") {
		t.Errorf("output missing summary: %q", buf.String())
	}

	cached, err := ws.store.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(cached) != 2 {
		t.Fatalf("cached %d message(s), want 2", len(cached))
	}
	for _, email := range cached {
		if email.ID == "m-stale" {
			t.Error("stale message survived the sync")
		}
		if email.ID == "m1" && (email.Analysis == nil || email.Analysis.Summary != "Sign-off needed") {
			t.Errorf("m1 lost its analysis: %+v", email.Analysis)
		}
	}
}

func TestRunSync_BackendErrorLeavesCache(t *testing.T) {
	backendSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer backendSrv.Close()

	ws := newTestWorkspace(t, backendSrv.URL)

	seed := []triage.Email{{ID: "m1", Subject: "Keep me", Sender: "a@example.com", ReceivedAt: "2025-03-01T10:00:00Z"}}
	if err := ws.store.Save(seed); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	if err := runSync(context.Background(), ws, 0, io.Discard); err == nil {
		t.Fatal("runSync() expected error for backend failure")
	}

	cached, err := ws.store.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(cached) != 1 || cached[0].ID != "m1" {
		t.Errorf("cache changed on failed sync: %+v", cached)
	}
}
