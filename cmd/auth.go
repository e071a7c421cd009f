package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/teemow/inboxtriage/internal/backend"
)

func newAuthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Inspect and control the backend mail session",
		Long: `The backend proxy owns the mailbox credentials and the OAuth flow; this
client only holds a session against it. These commands check that
session, print the sign-in URL and end the session.`,
	}

	cmd.AddCommand(newAuthStatusCmd())
	cmd.AddCommand(newAuthLoginCmd())
	cmd.AddCommand(newAuthLogoutCmd())
	return cmd
}

func newAuthStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the backend authentication state",
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := openWorkspace()
			if err != nil {
				return err
			}
			return runAuthStatus(context.Background(), ws, cmd.OutOrStdout())
		},
	}
}

func newAuthLoginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Print the URL that starts the backend sign-in flow",
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := openWorkspace()
			if err != nil {
				return err
			}
			return runAuthLogin(ws, cmd.OutOrStdout())
		},
	}
}

func newAuthLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the backend mail session",
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := openWorkspace()
			if err != nil {
				return err
			}
			return runAuthLogout(context.Background(), ws, cmd.OutOrStdout())
		},
	}
}

func runAuthStatus(ctx context.Context, ws *workspace, out io.Writer) error {
	status, err := ws.client.AuthStatus(ctx)
	switch {
	case err == nil:
	case backend.IsOffline(err):
		fmt.Fprintln(out, "[offline] Backend unreachable, authentication state unknown.")
		return nil
	default:
		// A reachable backend answering outside 2xx is configured but
		// broken, not signed out.
		fmt.Fprintf(out, "Backend reachable but failing: %v\n", err)
		fmt.Fprintln(out, "Mail credentials may be misconfigured on the backend.")
		return nil
	}

	switch {
	case !status.IsConfigured:
		fmt.Fprintln(out, "Backend has no mail credentials configured.")
	case !status.IsAuthenticated:
		fmt.Fprintln(out, "Not signed in. Run 'inboxtriage auth login' to start the sign-in flow.")
	default:
		fmt.Fprintf(out, "Signed in as %s.\n", status.UserEmail)
	}
	return nil
}

func runAuthLogin(ws *workspace, out io.Writer) error {
	fmt.Fprintf(out, `Open the following URL in a browser to sign in:

  %s

The backend completes the OAuth flow and keeps the session; run
'inboxtriage auth status' afterwards to confirm.
`, ws.client.LoginURL())
	return nil
}

func runAuthLogout(ctx context.Context, ws *workspace, out io.Writer) error {
	if err := ws.client.Logout(ctx); err != nil {
		return fmt.Errorf("failed to log out: %w", err)
	}

	fmt.Fprintln(out, "Logged out.")
	return nil
}
