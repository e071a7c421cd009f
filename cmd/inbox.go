package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/teemow/inboxtriage/internal/backend"
	"github.com/teemow/inboxtriage/internal/logging"
	"github.com/teemow/inboxtriage/internal/triage"
)

func newInboxCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inbox",
		Short: "Fetch the inbox and print the triaged thread view",
		Long: `Fetch messages from the mail backend, merge them into the cached working
set and print the thread view, most urgent first. Threads analyzed with
'inboxtriage analyze' carry their urgency score and priority.

When the backend is unreachable the cached working set is shown with an
offline marker instead.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := openWorkspace()
			if err != nil {
				return err
			}
			return runInbox(context.Background(), ws, cmd.OutOrStdout())
		},
	}

	return cmd
}

func runInbox(ctx context.Context, ws *workspace, out io.Writer) error {
	current, err := ws.store.Load()
	if err != nil {
		// The fetch below rebuilds the working set, at the cost of any
		// analysis results stored in the unreadable file.
		slog.Warn("cached working set unreadable, starting fresh", logging.Err(err))
		current = nil
	}

	offline := false
	raw, err := ws.client.ListEmails(ctx)
	switch {
	case err == nil:
		current = triage.Merge(current, triage.NormalizeAll(raw))
		if err := ws.store.Save(current); err != nil {
			slog.Warn("failed to update cache", logging.Err(err))
		}
	case backend.IsOffline(err):
		offline = true
	default:
		return fmt.Errorf("failed to fetch emails: %w", err)
	}

	printThreads(out, triage.AssembleThreads(current), offline)
	return nil
}
