package cli

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/courseadvisor/internal/cli/formatter"
	"github.com/alexanderramin/courseadvisor/internal/repository"
	"github.com/spf13/cobra"
)

func newCartCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cart",
		Short: "Inspect saved schedules",
	}

	cmd.AddCommand(
		newCartShowCmd(app),
		newCartListCmd(app),
		newCartResetCmd(app),
	)

	return cmd
}

func newCartShowCmd(app *App) *cobra.Command {
	var sessionID string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show a saved schedule (the latest by default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			saved, err := app.Schedules.Resume(commandContext(cmd), sessionID)
			if errors.Is(err, repository.ErrNotFound) {
				fmt.Fprintln(out, formatter.Dim("No saved schedule."))
				return nil
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(out, "%s\n%s %s  %s %s\n\n",
				formatter.Header("Schedule"),
				formatter.Dim("Session:"), saved.SessionID,
				formatter.Dim("Saved:"), formatter.HumanTimestamp(saved.SavedAt))
			fmt.Fprint(out, formatter.FormatSchedule(saved.Items, app.Config.OverloadThreshold))
			if !saved.Filters.IsZero() {
				fmt.Fprintf(out, "%s period=%s credits=%s programme=%s\n",
					formatter.Dim("Filters:"),
					orAny(saved.Filters.Period), orAny(saved.Filters.Credits), orAny(saved.Filters.Programme))
			}
			return nil
		},
	}

	addSessionFlag(cmd.Flags(), &sessionID, "Session to show")

	return cmd
}

func orAny(s string) string {
	if s == "" {
		return "any"
	}
	return s
}

func newCartListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved schedules, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := app.Schedules.List(commandContext(cmd))
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSessions(list))
			return nil
		},
	}
}

func newCartResetCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete every saved schedule",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if !yes {
				if !app.interactive() {
					return fmt.Errorf("refusing to delete saved schedules without --yes")
				}
				if err := confirmForm("Delete all saved schedules?", "This cannot be undone.", &yes).Run(); err != nil {
					return err
				}
				if !yes {
					fmt.Fprintln(out, formatter.Dim("Cancelled."))
					return nil
				}
			}

			n, err := app.Schedules.Reset(commandContext(cmd))
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Deleted %d saved schedules.\n", n)
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Skip the confirmation")

	return cmd
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}
