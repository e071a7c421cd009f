package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/teemow/inboxtriage/internal/analysis"
	"github.com/teemow/inboxtriage/internal/backend"
	"github.com/teemow/inboxtriage/internal/config"
	"github.com/teemow/inboxtriage/internal/logging"
	"github.com/teemow/inboxtriage/internal/store"
	"github.com/teemow/inboxtriage/internal/triage"
)

// newAnalysisWorkspace builds a workspace whose AI service talks to a
// fake completion endpoint answering with the given message content.
func newAnalysisWorkspace(t *testing.T, content string) *workspace {
	t.Helper()

	aiSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"id":"cmpl-1","object":"chat.completion","model":"test-model","choices":[{"index":0,"finish_reason":"stop","message":{"role":"assistant","content":%s}}]}`,
			strconv.Quote(content))
	}))
	t.Cleanup(aiSrv.Close)

	conf := &config.Config{
		BackendURL:    config.DefaultBackendURL,
		OpenAIAPIKey:  "test-key",
		OpenAIBaseURL: aiSrv.URL,
		OpenAIModel:   "test-model",
		CachePath:     filepath.Join(t.TempDir(), "emails.json"),
	}

	return &workspace{
		conf:   conf,
		store:  store.New(conf.CachePath, logging.DefaultLogger()),
		client: backend.NewClient(conf.BackendURL, nil),
	}
}

func seedWorkingSet(t *testing.T, ws *workspace) {
	t.Helper()

	seed := []triage.Email{
		{ID: "m1", ThreadID: "t1", Subject: "Budget review", Sender: "dana@example.com", Body: "First", ReceivedAt: "2025-03-01T10:00:00Z"},
		{ID: "m2", ThreadID: "t1", Subject: "Re: Budget review", Sender: "dana@example.com", Body: "Latest", ReceivedAt: "2025-03-02T10:00:00Z"},
		{ID: "m3", Subject: "Weekly digest", Sender: "news@example.com", Body: "News", ReceivedAt: "2025-03-01T08:00:00Z"},
	}
	if err := ws.store.Save(seed); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
}

func TestRunAnalyze_EmptyWorkingSet(t *testing.T) {
	ws := newAnalysisWorkspace(t, `{"analyses":[]}`)

	err := runAnalyze(context.Background(), ws, nil, io.Discard)
	if err == nil || !strings.Contains(err.Error(), "working set is empty") {
		t.Errorf("runAnalyze() error = %v, want empty working set error", err)
	}
}

func TestRunAnalyze_ExplicitIds(t *testing.T) {
	ws := newAnalysisWorkspace(t, `{"analyses":[{"id":"m1","summary":"Needs sign-off","priority":"HIGH","urgencyScore":85,"category":"WORK","actionItems":["Reply to Dana"],"sentiment":"NEUTRAL"}]}`)
	seedWorkingSet(t, ws)

	var buf bytes.Buffer
	if err := runAnalyze(context.Background(), ws, []string{"m1"}, &buf); err != nil {
		t.Fatalf("runAnalyze() error = %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "Analyzed 1 of 1 message(s):") {
		t.Errorf("output missing summary: %q", out)
	}
	if !strings.Contains(out, "Needs sign-off") || !strings.Contains(out, "HIGH") {
		t.Errorf("output missing analysis row: %q", out)
	}

	cached, err := ws.store.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	for _, email := range cached {
		switch email.ID {
		case "m1":
			if email.Analysis == nil || email.Analysis.UrgencyScore != 85 {
				t.Errorf("m1 analysis = %+v, want urgency 85", email.Analysis)
			}
		default:
			if email.Analysis != nil {
				t.Errorf("%s unexpectedly analyzed: %+v", email.ID, email.Analysis)
			}
		}
	}
}

func TestRunAnalyze_DefaultsToLatestPerThread(t *testing.T) {
	// m2 and m3 are the latest of their threads; a result for each
	ws := newAnalysisWorkspace(t, `{"analyses":[
		{"id":"m2","summary":"Latest in t1","priority":"HIGH","urgencyScore":70,"category":"WORK","actionItems":[],"sentiment":"NEUTRAL"},
		{"id":"m3","summary":"Digest","priority":"LOW","urgencyScore":10,"category":"NEWSLETTER","actionItems":[],"sentiment":"NEUTRAL"}
	]}`)
	seedWorkingSet(t, ws)

	var buf bytes.Buffer
	if err := runAnalyze(context.Background(), ws, nil, &buf); err != nil {
		t.Fatalf("runAnalyze() error = %v", err)
	}

	if !strings.Contains(buf.String(), "Analyzed 2 of 2 message(s):") {
		t.Errorf("output missing summary: %q", buf.String())
	}

	cached, err := ws.store.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	for _, email := range cached {
		if email.ID == "m1" && email.Analysis != nil {
			t.Error("older thread message m1 was analyzed")
		}
		if email.ID == "m2" && (email.Analysis == nil || email.Analysis.Summary != "Latest in t1") {
			t.Errorf("m2 analysis = %+v", email.Analysis)
		}
	}
}

func TestRunAnalyze_UnknownID(t *testing.T) {
	ws := newAnalysisWorkspace(t, `{"analyses":[]}`)
	seedWorkingSet(t, ws)

	err := runAnalyze(context.Background(), ws, []string{"missing"}, io.Discard)
	if err == nil || !strings.Contains(err.Error(), "unknown email id: missing") {
		t.Errorf("runAnalyze() error = %v, want unknown id error", err)
	}
}

func TestRunAnalyze_MissingAPIKey(t *testing.T) {
	ws := newTestWorkspace(t, config.DefaultBackendURL)
	seedWorkingSet(t, ws)

	err := runAnalyze(context.Background(), ws, []string{"m1"}, io.Discard)
	if !errors.Is(err, analysis.ErrMissingAPIKey) {
		t.Errorf("runAnalyze() error = %v, want ErrMissingAPIKey", err)
	}
}

func TestRunDraft(t *testing.T) {
	ws := newAnalysisWorkspace(t, "Hi Dana,\n\nThe numbers look good to me.\n")
	seedWorkingSet(t, ws)

	var buf bytes.Buffer
	if err := runDraft(context.Background(), ws, "m1", &buf); err != nil {
		t.Fatalf("runDraft() error = %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "re: Budget review") {
		t.Errorf("output missing subject: %q", out)
	}
	if !strings.Contains(out, "The numbers look good to me.") {
		t.Errorf("output missing draft body: %q", out)
	}
}

func TestRunDraft_UnknownID(t *testing.T) {
	ws := newAnalysisWorkspace(t, "unused")

	err := runDraft(context.Background(), ws, "missing", io.Discard)
	if err == nil || !strings.Contains(err.Error(), "unknown email id: missing") {
		t.Errorf("runDraft() error = %v, want unknown id error", err)
	}
}
