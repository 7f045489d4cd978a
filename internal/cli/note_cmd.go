package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/firstmap/internal/cli/formatter"
	"github.com/alexanderramin/firstmap/internal/domain"
)

func newNoteCmd(app *App) *cobra.Command {
	var (
		section string
		final   bool
		general bool
	)

	cmd := &cobra.Command{
		Use:   "note (--section <id> | --final | --general) [text]",
		Short: "Set a section, final or general note; empty text clears it",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			text := strings.TrimSpace(strings.Join(args, " "))

			var (
				action domain.Action
				label  string
			)
			switch {
			case section != "" && !final && !general:
				action, label = domain.SetSectionNote{SectionID: section, Note: text}, "Poznámka k oblasti "+section
			case final && section == "" && !general:
				action, label = domain.SetFinalNote{Note: text}, "Závěrečná poznámka"
			case general && section == "" && !final:
				action, label = domain.SetGeneralNote{Note: text}, "Kontextová poznámka"
			default:
				return errors.New("choose exactly one of --section, --final or --general")
			}

			if _, ok := action.(domain.SetSectionNote); ok {
				if _, err := currentWithBand(ctx, app); err != nil {
					return err
				}
			}
			if _, err := app.Assessments.Dispatch(ctx, action); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if text == "" {
				fmt.Fprintln(out, formatter.Dim(label+": vymazána"))
				return nil
			}
			fmt.Fprintf(out, "%s: %s\n", formatter.Bold(label), text)
			return nil
		},
	}
	cmd.Flags().StringVar(&section, "section", "", "Section ID")
	cmd.Flags().BoolVar(&final, "final", false, "Final note of the plan")
	cmd.Flags().BoolVar(&general, "general", false, "General context note")
	return cmd
}
