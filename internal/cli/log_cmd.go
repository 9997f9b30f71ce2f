package cli

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/courseadvisor/internal/cli/formatter"
	"github.com/alexanderramin/courseadvisor/internal/repository"
	"github.com/spf13/cobra"
)

func newLogCmd(app *App) *cobra.Command {
	var sessionID string
	var limit int

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Show the dialogue log of a session (the latest by default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)
			out := cmd.OutOrStdout()

			if sessionID == "" {
				saved, err := app.Schedules.Resume(ctx, "")
				if errors.Is(err, repository.ErrNotFound) {
					fmt.Fprintln(out, formatter.Dim("No sessions yet."))
					return nil
				}
				if err != nil {
					return err
				}
				sessionID = saved.SessionID
			}

			counts, err := app.Logs.Counts(ctx, sessionID)
			if err != nil {
				return err
			}
			entries, err := app.Logs.ListBySession(ctx, sessionID, limit)
			if err != nil {
				return err
			}
			fmt.Fprint(out, formatter.FormatDialogueLog(sessionID, counts, entries))
			return nil
		},
	}

	addSessionFlag(cmd.Flags(), &sessionID, "Session to show")
	cmd.Flags().IntVar(&limit, "limit", 20, "Number of most recent entries to show (0 for all)")

	return cmd
}
