package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/firstmap/internal/checklist"
	"github.com/alexanderramin/firstmap/internal/domain"
	"github.com/alexanderramin/firstmap/internal/service"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Assessments service.AssessmentService
	Results     service.ResultService
	Reports     service.ReportService

	// DatasetDir is the override directory the dataset was loaded from,
	// empty for the embedded dataset.
	DatasetDir  string
	ReportDir   string
	ReportWidth int

	Logger *slog.Logger

	// IsInteractive reports whether stdin is a terminal. Nil means never.
	IsInteractive func() bool
}

func (app *App) interactive() bool {
	return app.IsInteractive != nil && app.IsInteractive()
}

func (app *App) dataset() *checklist.Dataset {
	return app.Results.Dataset()
}

func (app *App) logger() *slog.Logger {
	if app.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return app.Logger
}

// NewRootCmd creates the top-level "firstmap" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "firstmap",
		Short:         "Developmental screening checklist and support plan",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newSetupCmd(app),
		newNewCmd(app),
		newChecklistCmd(app),
		newMarkCmd(app),
		newClearCmd(app),
		newResetSectionCmd(app),
		newNoteCmd(app),
		newDraftCmd(app),
		newActivityCmd(app),
		newConfirmCmd(app),
		newReportCmd(app),
		newListCmd(app),
		newUseCmd(app),
		newDeleteCmd(app),
		newImportLegacyCmd(app),
		newDatasetCmd(app),
		newMapCmd(app),
	)

	return root
}

// errNeedSetup is returned by commands that cannot work without an age band.
var errNeedSetup = fmt.Errorf("%w: run `firstmap setup --band <band>`", service.ErrSetupRequired)

// currentWithBand loads the current assessment and refuses to continue when
// it has no age band yet.
func currentWithBand(ctx context.Context, app *App) (*domain.Assessment, error) {
	a, err := app.Assessments.Current(ctx)
	if errors.Is(err, service.ErrNoAssessment) {
		return nil, errNeedSetup
	}
	if err != nil {
		return nil, err
	}
	if !a.HasSetup() {
		return nil, errNeedSetup
	}
	return a, nil
}

// confirmAction asks title unless yes is set. Without a terminal the
// caller must pass --yes.
func confirmAction(app *App, yes bool, title string) (bool, error) {
	if yes {
		return true, nil
	}
	if !app.interactive() {
		return false, errors.New("confirmation required: pass --yes")
	}
	var ok bool
	if err := confirmForm(title, &ok).Run(); err != nil {
		return false, err
	}
	return ok, nil
}
