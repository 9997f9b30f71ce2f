package cli

import (
	"fmt"

	"github.com/alexanderramin/courseadvisor/internal/catalog"
	"github.com/alexanderramin/courseadvisor/internal/cli/formatter"
	"github.com/alexanderramin/courseadvisor/internal/domain"
	"github.com/spf13/cobra"
)

func newCatalogCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect the course catalog",
	}

	cmd.AddCommand(
		newCatalogListCmd(app),
		newCatalogExportCmd(app),
	)

	return cmd
}

func newCatalogListCmd(app *App) *cobra.Command {
	var periodFlag string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List courses, optionally only those running in one period",
		RunE: func(cmd *cobra.Command, args []string) error {
			records := app.Catalog.All()
			if periodFlag != "" {
				p, ok := domain.ParsePeriod(periodFlag)
				if !ok {
					return fmt.Errorf("unknown period %q (use P1..P4)", periodFlag)
				}
				filtered := records[:0]
				for _, r := range records {
					if r.OffersIn(p) {
						filtered = append(filtered, r)
					}
				}
				records = filtered
			}

			out := cmd.OutOrStdout()
			fmt.Fprint(out, formatter.FormatCatalog(records))
			if skipped := app.Catalog.Skipped(); len(skipped) > 0 {
				fmt.Fprintln(out, formatter.Dim(fmt.Sprintf("%d catalog entries skipped", len(skipped))))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&periodFlag, "period", "", "Only courses running in this period (P1..P4)")

	return cmd
}

func newCatalogExportCmd(app *App) *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write one [CODE] Name line per course",
		RunE: func(cmd *cobra.Command, args []string) error {
			if outPath == "" {
				return catalog.Export(cmd.OutOrStdout(), app.Catalog)
			}
			if err := catalog.ExportFile(outPath, app.Catalog); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d courses to %s\n", app.Catalog.Len(), outPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&outPath, "out", "", "Write to this file instead of stdout")

	return cmd
}
