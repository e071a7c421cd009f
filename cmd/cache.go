package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

func newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the cached working set",
		Long: `The working set of normalized messages, including analysis results, is
cached in a JSON file between runs. These commands show where it lives
and reset it.`,
	}

	cmd.AddCommand(newCacheClearCmd())
	cmd.AddCommand(newCachePathCmd())
	return cmd
}

func newCacheClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove the cached working set",
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := openWorkspace()
			if err != nil {
				return err
			}
			return runCacheClear(ws, cmd.OutOrStdout())
		},
	}
}

func newCachePathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache file location",
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := openWorkspace()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ws.store.Path())
			return nil
		},
	}
}

func runCacheClear(ws *workspace, out io.Writer) error {
	if err := ws.store.Clear(); err != nil {
		return fmt.Errorf("failed to clear cache: %w", err)
	}

	fmt.Fprintf(out, "Cached working set cleared (%s).\n", ws.store.Path())
	return nil
}
