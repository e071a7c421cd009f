package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/teemow/inboxtriage/internal/backend"
	"github.com/teemow/inboxtriage/internal/triage"
)

func newSyncCmd() *cobra.Command {
	var max int

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Trigger a mailbox sync on the backend",
		Long: `Ask the mail backend to refresh its mailbox snapshot and merge the
result into the cached working set. Messages no longer present on the
backend are dropped; analysis results for surviving messages are kept.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := openWorkspace()
			if err != nil {
				return err
			}
			return runSync(context.Background(), ws, max, cmd.OutOrStdout())
		},
	}

	cmd.Flags().IntVar(&max, "max", backend.DefaultMaxResults, "Maximum number of messages to sync")
	return cmd
}

func runSync(ctx context.Context, ws *workspace, max int, out io.Writer) error {
	raw, err := ws.client.Sync(ctx, max)
	if err != nil {
		return fmt.Errorf("failed to sync: %w", err)
	}

	// A sync merges into the prior working set; if that cannot be read
	// the merge would silently discard analyses, so fail instead.
	current, err := ws.store.Load()
	if err != nil {
		return fmt.Errorf("failed to read cached working set: %w", err)
	}

	merged := triage.Merge(current, triage.NormalizeAll(raw))
	if err := ws.store.Save(merged); err != nil {
		return fmt.Errorf("failed to update cache: %w", err)
	}

	fmt.Fprintf(out, "Synced %d message(s) into %d thread(s).\n", len(merged), len(triage.AssembleThreads(merged)))
	return nil
}
