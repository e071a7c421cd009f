package cmd

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/teemow/inboxtriage/internal/analysis"
	"github.com/teemow/inboxtriage/internal/backend"
	"github.com/teemow/inboxtriage/internal/config"
	"github.com/teemow/inboxtriage/internal/logging"
	"github.com/teemow/inboxtriage/internal/store"
	"github.com/teemow/inboxtriage/internal/triage"
)

func newTestWorkspace(t *testing.T, backendURL string) *workspace {
	t.Helper()

	conf := &config.Config{
		BackendURL:    backendURL,
		OpenAIBaseURL: analysis.DefaultBaseURL,
		OpenAIModel:   "test-model",
		CachePath:     filepath.Join(t.TempDir(), "emails.json"),
	}

	return &workspace{
		conf:   conf,
		store:  store.New(conf.CachePath, logging.DefaultLogger()),
		client: backend.NewClient(backendURL, nil),
	}
}

// offlineBackendURL returns a URL that refuses connections.
func offlineBackendURL(t *testing.T) string {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()
	return url
}

func TestPrintThreads(t *testing.T) {
	threads := []triage.Thread{
		{
			ID: "t1",
			Messages: []triage.Email{
				{ID: "m1", ThreadID: "t1", Subject: "Budget review", Sender: "dana@example.com", SenderName: "Dana Scully", ReceivedAt: "2025-03-01T10:00:00Z"},
				{
					ID: "m2", ThreadID: "t1", Subject: "Re: Budget review", Sender: "dana@example.com", SenderName: "Dana Scully", ReceivedAt: "2025-03-02T10:00:00Z",
					Analysis: &triage.Analysis{Summary: "Needs sign-off", Priority: triage.PriorityHigh, UrgencyScore: 90, Category: triage.CategoryWork, Sentiment: triage.SentimentNeutral},
				},
			},
		},
		{
			ID: "t2",
			Messages: []triage.Email{
				{ID: "m3", Subject: "Weekly digest", Sender: "news@example.com", SenderName: "Newsletter", ReceivedAt: "2025-03-01T08:00:00Z"},
			},
		},
	}

	var buf bytes.Buffer
	printThreads(&buf, threads, false)
	out := buf.String()

	if !strings.Contains(out, "2 thread(s), 3 message(s)") {
		t.Errorf("output missing summary line: %q", out)
	}
	if !strings.Contains(out, "URG") || !strings.Contains(out, "SUBJECT") {
		t.Errorf("output missing table header: %q", out)
	}
	if !strings.Contains(out, "90") || !strings.Contains(out, "HIGH") {
		t.Errorf("output missing analysis columns: %q", out)
	}
	if !strings.Contains(out, "Budget review") || !strings.Contains(out, "Weekly digest") {
		t.Errorf("output missing subjects: %q", out)
	}
	if strings.Contains(out, "[offline]") {
		t.Errorf("unexpected offline marker: %q", out)
	}
}

func TestPrintThreads_Offline(t *testing.T) {
	var buf bytes.Buffer
	printThreads(&buf, nil, true)
	out := buf.String()

	if !strings.Contains(out, "[offline] Backend unreachable, showing cached data.") {
		t.Errorf("output missing offline marker: %q", out)
	}
	if !strings.Contains(out, "0 thread(s), 0 message(s)") {
		t.Errorf("output missing empty summary: %q", out)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		max   int
		want  string
	}{
		{name: "short string unchanged", input: "hello", max: 10, want: "hello"},
		{name: "exact length unchanged", input: "hello", max: 5, want: "hello"},
		{name: "long string truncated", input: "a very long subject line", max: 10, want: "a very ..."},
		{name: "multibyte runes", input: "über lange Betreffzeile", max: 10, want: "über la..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := truncate(tt.input, tt.max); got != tt.want {
				t.Errorf("truncate(%q, %d) = %q, want %q", tt.input, tt.max, got, tt.want)
			}
		})
	}
}

func TestFormatWhen(t *testing.T) {
	if got := formatWhen("2025-03-02T15:04:05Z"); got != "2025-03-02 15:04" {
		t.Errorf("formatWhen() = %q, want %q", got, "2025-03-02 15:04")
	}

	// Unparseable timestamps pass through
	if got := formatWhen("yesterday"); got != "yesterday" {
		t.Errorf("formatWhen() = %q, want passthrough", got)
	}
}
