package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/firstmap/internal/cli/formatter"
	"github.com/alexanderramin/firstmap/internal/domain"
	"github.com/alexanderramin/firstmap/internal/scoring"
)

func newChecklistCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "checklist",
		Aliases: []string{"ls"},
		Short:   "Show checklist sections with answers and mastery",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := currentWithBand(ctx, app)
			if err != nil {
				return err
			}
			res := app.Results.Compute(ctx, a)
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatChecklist(a, res))
			return nil
		},
	}
}

func newMarkCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "mark <item> <status>",
		Short: "Record an answer (CAN_DO, WITH_HELP, CANNOT, NOT_TESTED, NOT_INTERESTED or 1-5)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := domain.ParseStatus(args[1])
			if err != nil {
				return err
			}
			return dispatchItem(cmd, app, args[0], domain.SetStatus{ItemID: args[0], Status: status})
		},
	}
}

func newClearCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "clear <item>",
		Short: "Remove the answer for an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return dispatchItem(cmd, app, args[0], domain.ClearStatus{ItemID: args[0]})
		},
	}
}

// dispatchItem applies an item action and prints the item with its
// section's updated mastery.
func dispatchItem(cmd *cobra.Command, app *App, itemID string, action domain.Action) error {
	ctx := cmd.Context()
	if _, err := currentWithBand(ctx, app); err != nil {
		return err
	}
	a, err := app.Assessments.Dispatch(ctx, action)
	if err != nil {
		return err
	}

	item, sec, _ := app.dataset().Item(a.AgeBandID, itemID)
	status, ok := a.Statuses[itemID]
	out := cmd.OutOrStdout()
	fmt.Fprint(out, formatter.FormatItemUpdate(item, status, ok))

	res := app.Results.Compute(ctx, a)
	if ss, found := sectionScore(res, sec.ID); found {
		fmt.Fprintln(out, formatter.FormatSectionHeading(ss))
	}
	return nil
}

func sectionScore(res *scoring.Result, sectionID string) (scoring.SectionScore, bool) {
	for _, ss := range res.SectionScores {
		if ss.Section.ID == sectionID {
			return ss, true
		}
	}
	return scoring.SectionScore{}, false
}

func newResetSectionCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset-section <section>",
		Short: "Clear all answers and the note of one section",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := currentWithBand(ctx, app)
			if err != nil {
				return err
			}
			sec, found := app.dataset().Section(a.AgeBandID, args[0])
			title := args[0]
			if found {
				title = sec.Title
			}

			ok, err := confirmAction(app, yes, fmt.Sprintf("Vymazat odpovědi v oblasti %s?", title))
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Zrušeno."))
				return nil
			}

			a, err = app.Assessments.ResetSection(ctx, args[0])
			if err != nil {
				return err
			}
			res := app.Results.Compute(ctx, a)
			if ss, found := sectionScore(res, args[0]); found {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatSectionHeading(ss))
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation")
	return cmd
}
