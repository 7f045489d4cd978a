package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/alexanderramin/firstmap/internal/cli/formatter"
	"github.com/alexanderramin/firstmap/internal/domain"
)

// audienceFlag is a --for flag accepting worker or parent.
type audienceFlag struct {
	value domain.Audience
}

var _ pflag.Value = (*audienceFlag)(nil)

func (f *audienceFlag) String() string { return string(f.value) }

func (f *audienceFlag) Set(s string) error {
	a, err := domain.ParseAudience(s)
	if err != nil {
		return err
	}
	f.value = a
	return nil
}

func (f *audienceFlag) Type() string { return "worker|parent" }

func registerAudience(cmd *cobra.Command, f *audienceFlag) {
	f.value = domain.AudienceWorker
	cmd.Flags().Var(f, "for", "Audience: worker or parent")
}

func newActivityCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "activity",
		Short: "Select suggested activities or manage custom ones",
	}
	cmd.AddCommand(
		newActivityToggleCmd(app),
		newActivityAddCmd(app),
		newActivityRemoveCmd(app),
	)
	return cmd
}

func newActivityToggleCmd(app *App) *cobra.Command {
	var aud audienceFlag

	cmd := &cobra.Command{
		Use:   "toggle <n|text>",
		Short: "Select or deselect a suggested activity by its number in `draft` or its text",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := currentWithBand(ctx, app)
			if err != nil {
				return err
			}

			suggested := app.Results.Compute(ctx, a).Suggested(aud.value)
			activity := strings.Join(args, " ")
			if n, err := strconv.Atoi(activity); err == nil {
				if n < 1 || n > len(suggested) {
					return fmt.Errorf("activity %d out of range (1-%d)", n, len(suggested))
				}
				activity = suggested[n-1]
			}

			a, err = app.Assessments.Dispatch(ctx, domain.ToggleActivity{Audience: aud.value, Activity: activity})
			if err != nil {
				return err
			}
			mark := formatter.Dim("[ ]")
			if a.IsSelected(aud.value, activity) {
				mark = formatter.StyleGreen.Render("[x]")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", mark, activity)
			return nil
		},
	}
	registerAudience(cmd, &aud)
	return cmd
}

func newActivityAddCmd(app *App) *cobra.Command {
	var aud audienceFlag

	cmd := &cobra.Command{
		Use:   "add <text>",
		Short: "Add a custom activity",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := app.Assessments.Dispatch(cmd.Context(), domain.AddCustomActivity{
				Audience: aud.value,
				Text:     strings.Join(args, " "),
			})
			if err != nil {
				return err
			}
			custom := a.Custom(aud.value)
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n",
				formatter.Dim(fmt.Sprintf("c%d", len(custom))),
				formatter.StylePurple.Render("[+]"),
				custom[len(custom)-1])
			return nil
		},
	}
	registerAudience(cmd, &aud)
	return cmd
}

func newActivityRemoveCmd(app *App) *cobra.Command {
	var aud audienceFlag

	cmd := &cobra.Command{
		Use:   "remove <n>",
		Short: "Remove a custom activity by its number (c1, c2, ... in `draft`)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(strings.TrimPrefix(args[0], "c"))
			if err != nil {
				return fmt.Errorf("invalid activity number %q", args[0])
			}
			_, err = app.Assessments.Dispatch(cmd.Context(), domain.RemoveCustomActivity{Audience: aud.value, Index: n - 1})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim(fmt.Sprintf("Odebráno: c%d", n)))
			return nil
		},
	}
	registerAudience(cmd, &aud)
	return cmd
}
