package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/firstmap/internal/cli/formatter"
	"github.com/alexanderramin/firstmap/internal/domain"
)

func newDraftCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "draft",
		Short: "Show the plan draft: summary, strengths, priorities and activities",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := currentWithBand(ctx, app)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatDraft(a, app.Results.Compute(ctx, a)))
			return nil
		},
	}
}

func newConfirmCmd(app *App) *cobra.Command {
	var undo bool

	cmd := &cobra.Command{
		Use:   "confirm",
		Short: "Confirm the plan, or reopen it with --undo",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if _, err := currentWithBand(ctx, app); err != nil {
				return err
			}
			a, err := app.Assessments.Dispatch(ctx, domain.SetConfirmed{Value: !undo})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.ConfirmedPill(a.Confirmed))
			return nil
		},
	}
	cmd.Flags().BoolVar(&undo, "undo", false, "Reopen a confirmed plan")
	return cmd
}
