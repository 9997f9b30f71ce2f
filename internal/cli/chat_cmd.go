package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/alexanderramin/courseadvisor/internal/cli/formatter"
	"github.com/alexanderramin/courseadvisor/internal/dialogue"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newChatCmd(app *App) *cobra.Command {
	var resume, lineMode bool
	var sessionID string

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Plan your schedule in a conversation with the advisor",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)
			out := cmd.OutOrStdout()

			sess, err := app.openSession(ctx, sessionID, resume)
			if err != nil {
				return err
			}
			if sess.note != "" {
				fmt.Fprintln(out, formatter.Dim(sess.note))
			}

			var rt *dialogue.Runtime
			if !lineMode && app.interactive() {
				conv := &transcriptConversation{}
				if rt, err = app.newRuntime(sess, conv); err != nil {
					return err
				}
				model := newChatModel(ctx, rt, conv, app.Config.OverloadThreshold)
				if _, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run(); err != nil {
					return err
				}
				for _, line := range conv.lines {
					fmt.Fprintln(out, line)
				}
			} else {
				if rt, err = app.newRuntime(sess, printConversation{w: out}); err != nil {
					return err
				}
				if err := runLineChat(ctx, rt, cmd.InOrStdin()); err != nil {
					return err
				}
				fmt.Fprintln(out)
			}

			fmt.Fprintf(out, "\n%s\n", formatter.Header("Your schedule"))
			fmt.Fprint(out, formatter.FormatSchedule(rt.Machine().Cart().Items(), app.Config.OverloadThreshold))
			fmt.Fprintln(out, formatter.Dim("Session "+sess.id))
			return nil
		},
	}

	cmd.Flags().BoolVar(&resume, "resume", false, "Continue the most recently saved schedule")
	cmd.Flags().BoolVar(&lineMode, "line", false, "Read plain lines from stdin even on a terminal")
	addSessionFlag(cmd.Flags(), &sessionID, "Continue (or start) the session with this ID")

	return cmd
}

// runLineChat feeds lines from in to rt until the session ends or in is
// exhausted. A blank line is silence.
func runLineChat(ctx context.Context, rt *dialogue.Runtime, in io.Reader) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan string)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	if err := rt.Run(ctx, lines); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
