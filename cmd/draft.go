package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/teemow/inboxtriage/internal/triage"
)

func newDraftCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "draft <id>",
		Short: "Generate a reply draft for a message",
		Long: `Generate a reply draft for the given message id using the AI service and
print it. Nothing is sent anywhere; the draft is for review only.
Requires OPENAI_API_KEY.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := openWorkspace()
			if err != nil {
				return err
			}
			return runDraft(context.Background(), ws, args[0], cmd.OutOrStdout())
		},
	}

	return cmd
}

func runDraft(ctx context.Context, ws *workspace, id string, out io.Writer) error {
	current, err := ws.store.Load()
	if err != nil {
		return fmt.Errorf("failed to read cached working set: %w", err)
	}

	email, found := lo.Find(current, func(e triage.Email) bool { return e.ID == id })
	if !found {
		return fmt.Errorf("unknown email id: %s", id)
	}

	svc, err := ws.analysisService()
	if err != nil {
		return err
	}

	draft, err := svc.DraftReply(ctx, email)
	if err != nil {
		return fmt.Errorf("failed to draft reply: %w", err)
	}

	fmt.Fprintf(out, "Draft reply to %s <%s> re: %s\n\n%s\n", email.SenderName, email.Sender, email.Subject, draft)
	return nil
}
