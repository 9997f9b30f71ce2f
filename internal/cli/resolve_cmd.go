package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/courseadvisor/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newResolveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve QUERY...",
		Short: "Show which course a spoken mention resolves to",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res := app.Resolver.Explain(strings.Join(args, " "))
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatResolution(res))
			return nil
		},
	}
}
