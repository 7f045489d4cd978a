package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/firstmap/internal/cli/formatter"
	"github.com/alexanderramin/firstmap/internal/domain"
	"github.com/alexanderramin/firstmap/internal/report"
)

func newReportCmd(app *App) *cobra.Command {
	var (
		out    string
		export bool
		raw    bool
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Preview the printable report or export it as Markdown",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := currentWithBand(ctx, app)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()

			if out != "" || export {
				e, err := exportReport(cmd, app, a, out)
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "%s %s\n", formatter.StyleGreen.Render("✔ Uloženo"), e.Path)
				if !e.Confirmed {
					fmt.Fprintln(w, formatter.StyleYellow.Render(report.DraftLabel))
				}
				return nil
			}

			md := app.Reports.Build(ctx, a)
			if raw {
				fmt.Fprint(w, md)
				return nil
			}
			rendered, err := report.Render(md, app.reportWidth())
			if err != nil {
				return err
			}
			fmt.Fprint(w, rendered)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "Write the Markdown report to this file")
	cmd.Flags().BoolVar(&export, "export", false, "Write the report into the configured report directory")
	cmd.Flags().BoolVar(&raw, "raw", false, "Print Markdown without terminal rendering")
	return cmd
}

func exportReport(cmd *cobra.Command, app *App, a *domain.Assessment, path string) (*domain.ReportExport, error) {
	if path != "" {
		return app.Reports.ExportFile(cmd.Context(), a, path)
	}
	return app.Reports.Export(cmd.Context(), a, app.ReportDir)
}

func (app *App) reportWidth() int {
	if app.ReportWidth > 0 {
		return app.ReportWidth
	}
	return 80
}
