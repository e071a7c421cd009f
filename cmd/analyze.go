package cmd

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/teemow/inboxtriage/internal/triage"
)

func newAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [id...]",
		Short: "Run AI analysis over the cached working set",
		Long: `Send the latest message of every cached thread, or just the given
message ids, to the AI service for summarization and prioritization.
Results are written back to the cached working set and show up in the
inbox view. Requires OPENAI_API_KEY.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := openWorkspace()
			if err != nil {
				return err
			}
			return runAnalyze(context.Background(), ws, args, cmd.OutOrStdout())
		},
	}

	return cmd
}

func runAnalyze(ctx context.Context, ws *workspace, ids []string, out io.Writer) error {
	current, err := ws.store.Load()
	if err != nil {
		return fmt.Errorf("failed to read cached working set: %w", err)
	}
	if len(current) == 0 {
		return fmt.Errorf("working set is empty; run 'inboxtriage inbox' or 'inboxtriage sync' first")
	}

	var candidates []triage.Email
	if len(ids) > 0 {
		byID := lo.KeyBy(current, func(e triage.Email) string { return e.ID })
		for _, id := range ids {
			email, ok := byID[id]
			if !ok {
				return fmt.Errorf("unknown email id: %s", id)
			}
			candidates = append(candidates, email)
		}
	} else {
		candidates = triage.LatestPerThread(current)
	}

	svc, err := ws.analysisService()
	if err != nil {
		return err
	}

	results, err := svc.AnalyzeBatch(ctx, candidates)
	if err != nil {
		return fmt.Errorf("failed to analyze: %w", err)
	}

	updated := triage.ApplyAnalysis(current, results)
	if err := ws.store.Save(updated); err != nil {
		return fmt.Errorf("failed to update cache: %w", err)
	}

	fmt.Fprintf(out, "Analyzed %d of %d message(s):\n\n", len(results), len(candidates))

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tURG\tPRI\tCATEGORY\tSENTIMENT\tSUMMARY")
	for _, email := range candidates {
		a, ok := results[email.ID]
		if !ok {
			continue
		}
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\t%s\n",
			email.ID, a.UrgencyScore, a.Priority, a.Category, a.Sentiment, truncate(a.Summary, 60))
	}
	_ = tw.Flush()

	if omitted := len(candidates) - len(results); omitted > 0 {
		fmt.Fprintf(out, "\n%d message(s) were omitted by the model; their prior analysis is unchanged.\n", omitted)
	}
	return nil
}
