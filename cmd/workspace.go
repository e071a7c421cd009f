package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/samber/lo"

	"github.com/teemow/inboxtriage/internal/analysis"
	"github.com/teemow/inboxtriage/internal/backend"
	"github.com/teemow/inboxtriage/internal/config"
	"github.com/teemow/inboxtriage/internal/logging"
	"github.com/teemow/inboxtriage/internal/store"
	"github.com/teemow/inboxtriage/internal/triage"
)

// workspace bundles the collaborators every data command needs: the
// configuration, the cached working set and the backend client.
type workspace struct {
	conf   *config.Config
	store  *store.Store
	client *backend.Client
}

func openWorkspace() (*workspace, error) {
	conf, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	return &workspace{
		conf:   conf,
		store:  store.New(conf.CachePath, logging.DefaultLogger()),
		client: backend.NewClient(conf.BackendURL, slog.Default()),
	}, nil
}

// analysisService builds the AI client on demand so commands that never
// analyze work without an API key.
func (w *workspace) analysisService() (*analysis.Service, error) {
	return analysis.NewService(slog.Default(), w.conf.OpenAIAPIKey, w.conf.OpenAIBaseURL, w.conf.OpenAIModel)
}

// printThreads writes the triaged thread view: a summary line followed
// by one table row per thread, most urgent first.
func printThreads(out io.Writer, threads []triage.Thread, offline bool) {
	if offline {
		fmt.Fprintln(out, "[offline] Backend unreachable, showing cached data.")
	}

	total := lo.SumBy(threads, func(t triage.Thread) int { return len(t.Messages) })
	fmt.Fprintf(out, "%d thread(s), %d message(s)\n", len(threads), total)
	if len(threads) == 0 {
		return
	}

	fmt.Fprintln(out)
	renderThreadTable(out, threads)
}

func renderThreadTable(out io.Writer, threads []triage.Thread) {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "URG\tPRI\tSUBJECT\tFROM\tLAST\tMSGS")

	for _, thread := range threads {
		latest := thread.Latest()

		urgency, priority := "-", "-"
		if latest.Analysis != nil {
			urgency = strconv.Itoa(latest.Analysis.UrgencyScore)
			priority = string(latest.Analysis.Priority)
		}

		from := latest.SenderName
		if from == "" {
			from = latest.Sender
		}

		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%d\n",
			urgency, priority,
			truncate(thread.Subject(), 48), truncate(from, 24),
			formatWhen(latest.ReceivedAt), len(thread.Messages))
	}

	_ = tw.Flush()
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}

// formatWhen shortens an RFC 3339 timestamp for the table; anything
// that does not parse is shown as-is.
func formatWhen(ts string) string {
	t, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		return ts
	}
	return t.Format("2006-01-02 15:04")
}
