package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/teemow/inboxtriage/internal/backend"
	"github.com/teemow/inboxtriage/internal/triage"
)

func newSearchCmd() *cobra.Command {
	var max int

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search the mailbox through the backend",
		Long: `Run a query against the mail backend and print the matching threads.
Search results are a transient view; the cached working set is not
touched.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := openWorkspace()
			if err != nil {
				return err
			}
			return runSearch(context.Background(), ws, strings.Join(args, " "), max, cmd.OutOrStdout())
		},
	}

	cmd.Flags().IntVar(&max, "max", backend.DefaultMaxResults, "Maximum number of results")
	return cmd
}

func runSearch(ctx context.Context, ws *workspace, query string, max int, out io.Writer) error {
	raw, err := ws.client.Search(ctx, query, max)
	if err != nil {
		if backend.IsOffline(err) {
			fmt.Fprintln(out, "[offline] Backend unreachable, no search results.")
			return nil
		}
		return fmt.Errorf("failed to search: %w", err)
	}

	fmt.Fprintf(out, "Search %q:\n", query)
	printThreads(out, triage.AssembleThreads(triage.NormalizeAll(raw)), false)
	return nil
}
