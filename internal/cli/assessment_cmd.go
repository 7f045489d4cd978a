package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/firstmap/internal/cli/formatter"
	"github.com/alexanderramin/firstmap/internal/domain"
	"github.com/alexanderramin/firstmap/internal/service"
)

func newListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored assessments",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			list, err := app.Assessments.List(ctx)
			if err != nil {
				return err
			}
			currentID := ""
			if cur, err := app.Assessments.Current(ctx); err == nil {
				currentID = cur.ID
			} else if !errors.Is(err, service.ErrNoAssessment) {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatAssessmentList(list, currentID))
			return nil
		},
	}
}

// resolveAssessmentID expands a unique ID prefix, as shown by `list`.
func resolveAssessmentID(cmd *cobra.Command, app *App, prefix string) (string, error) {
	list, err := app.Assessments.List(cmd.Context())
	if err != nil {
		return "", err
	}
	var matches []domain.AssessmentSummary
	for _, s := range list {
		if s.ID == prefix {
			return s.ID, nil
		}
		if strings.HasPrefix(s.ID, prefix) {
			matches = append(matches, s)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("no assessment matches %q", prefix)
	case 1:
		return matches[0].ID, nil
	default:
		return "", fmt.Errorf("%q matches %d assessments; use a longer prefix", prefix, len(matches))
	}
}

func newUseCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "use <id>",
		Short: "Make a stored assessment current",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveAssessmentID(cmd, app, args[0])
			if err != nil {
				return err
			}
			a, err := app.Assessments.Use(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatSetup(a))
			return nil
		},
	}
}

func newDeleteCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a stored assessment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveAssessmentID(cmd, app, args[0])
			if err != nil {
				return err
			}
			a, err := app.Assessments.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			ok, err := confirmAction(app, yes, fmt.Sprintf("Smazat hodnocení %s (%s)?", a.DisplayName(), a.ShortID()))
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Zrušeno."))
				return nil
			}
			if err := app.Assessments.Delete(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", formatter.StyleRed.Render("✖ Smazáno"), formatter.TruncID(id))
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation")
	return cmd
}

func newImportLegacyCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import-legacy <file>",
		Short: "Import an assessment exported from the browser checklist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("opening legacy export: %w", err)
			}
			defer f.Close()

			res, err := app.Assessments.ImportLegacy(cmd.Context(), f)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, formatter.FormatSetup(res.Assessment))
			fmt.Fprintf(out, "%s %d\n", formatter.StyleGreen.Render("✔ Importováno odpovědí:"), res.Imported)
			if len(res.Skipped) > 0 {
				fmt.Fprintf(out, "%s %s\n",
					formatter.StyleYellow.Render(fmt.Sprintf("! Přeskočeno %d:", len(res.Skipped))),
					strings.Join(res.Skipped, ", "))
			}
			return nil
		},
	}
}
