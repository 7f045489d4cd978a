package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/firstmap/internal/cli/formatter"
	"github.com/alexanderramin/firstmap/internal/domain"
	"github.com/alexanderramin/firstmap/internal/service"
)

// setupFlags are shared by `setup` and `new`.
type setupFlags struct {
	nickname string
	band     string
	context  string
	note     string
}

func (f *setupFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.nickname, "nickname", "", "Child nickname (no full names)")
	cmd.Flags().StringVar(&f.band, "band", "", "Age band, e.g. 3-4")
	cmd.Flags().StringVar(&f.context, "context", "", "Context: doma, venku, klub, jine")
	cmd.Flags().StringVar(&f.note, "note", "", "General context note")
}

// apply overlays the flags the user actually set on base.
func (f *setupFlags) apply(cmd *cobra.Command, base domain.Setup) (domain.Setup, error) {
	if cmd.Flags().Changed("nickname") {
		base.ChildNickname = f.nickname
	}
	if cmd.Flags().Changed("band") {
		base.AgeBandID = f.band
	}
	if cmd.Flags().Changed("context") {
		if f.context == "" {
			base.Context = domain.ContextNone
		} else {
			c, err := domain.ParseContext(f.context)
			if err != nil {
				return base, err
			}
			base.Context = c
		}
	}
	if cmd.Flags().Changed("note") {
		base.GeneralNote = f.note
	}
	return base, nil
}

// collect builds the setup from flags, falling back to the interactive
// form when no band was given on a terminal.
func (f *setupFlags) collect(cmd *cobra.Command, app *App, base domain.Setup) (domain.Setup, error) {
	setup, err := f.apply(cmd, base)
	if err != nil {
		return setup, err
	}
	if cmd.Flags().Changed("band") || !app.interactive() {
		return setup, nil
	}

	values := newSetupFormValues(setup)
	if err := setupForm(app.dataset(), values).Run(); err != nil {
		return setup, err
	}
	return values.setup(), nil
}

func currentSetup(ctx context.Context, app *App) (domain.Setup, error) {
	a, err := app.Assessments.Current(ctx)
	if errors.Is(err, service.ErrNoAssessment) {
		return domain.Setup{}, nil
	}
	if err != nil {
		return domain.Setup{}, err
	}
	return domain.Setup{
		ChildNickname: a.ChildNickname,
		AgeBandID:     a.AgeBandID,
		Context:       a.Context,
		GeneralNote:   a.GeneralNote,
	}, nil
}

func newSetupCmd(app *App) *cobra.Command {
	var flags setupFlags

	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Set the child's nickname, age band and context",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			base, err := currentSetup(ctx, app)
			if err != nil {
				return err
			}
			setup, err := flags.collect(cmd, app, base)
			if err != nil {
				return err
			}
			a, err := app.Assessments.Setup(ctx, setup)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatSetup(a))
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

func newNewCmd(app *App) *cobra.Command {
	var (
		flags setupFlags
		yes   bool
	)

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Start a new assessment; the previous one stays in the list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ok, err := confirmAction(app, yes, "Začít nové hodnocení?")
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Zrušeno."))
				return nil
			}

			setup, err := flags.collect(cmd, app, domain.Setup{})
			if err != nil {
				return err
			}

			var a *domain.Assessment
			if setup.AgeBandID == "" {
				a, err = app.Assessments.Reset(ctx)
			} else {
				a, err = app.Assessments.Start(ctx, setup)
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatSetup(a))
			if !a.HasSetup() {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Pokračujte příkazem `firstmap setup --band <skupina>`."))
			}
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation")
	return cmd
}
