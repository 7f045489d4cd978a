package service

import (
	"context"
	"errors"
	"io"

	"github.com/alexanderramin/firstmap/internal/checklist"
	"github.com/alexanderramin/firstmap/internal/domain"
	"github.com/alexanderramin/firstmap/internal/scoring"
)

var (
	ErrNoAssessment   = errors.New("no current assessment")
	ErrSetupRequired  = errors.New("assessment has no age band; run setup first")
	ErrUnknownItem    = errors.New("unknown checklist item")
	ErrUnknownSection = errors.New("unknown checklist section")
	ErrUnknownBand    = errors.New("unknown age band")
)

type AssessmentService interface {
	// Current returns the assessment commands operate on, or ErrNoAssessment.
	Current(ctx context.Context) (*domain.Assessment, error)
	Get(ctx context.Context, id string) (*domain.Assessment, error)
	List(ctx context.Context) ([]domain.AssessmentSummary, error)
	// Setup edits the current assessment's setup, starting one if needed.
	Setup(ctx context.Context, setup domain.Setup) (*domain.Assessment, error)
	// Start always creates a new current assessment.
	Start(ctx context.Context, setup domain.Setup) (*domain.Assessment, error)
	// Dispatch applies one action to the current assessment and saves it.
	Dispatch(ctx context.Context, action domain.Action) (*domain.Assessment, error)
	ResetSection(ctx context.Context, sectionID string) (*domain.Assessment, error)
	// Reset replaces the current assessment with an empty one.
	Reset(ctx context.Context) (*domain.Assessment, error)
	Use(ctx context.Context, id string) (*domain.Assessment, error)
	Delete(ctx context.Context, id string) error
	ImportLegacy(ctx context.Context, r io.Reader) (*LegacyImportResult, error)
}

type ResultService interface {
	Compute(ctx context.Context, a *domain.Assessment) *scoring.Result
	Dataset() *checklist.Dataset
}

type ReportService interface {
	Build(ctx context.Context, a *domain.Assessment) string
	// Export writes firstmap-<date>-<id>.md into dir and records the export.
	Export(ctx context.Context, a *domain.Assessment, dir string) (*domain.ReportExport, error)
	// ExportFile is Export with a caller-chosen file path.
	ExportFile(ctx context.Context, a *domain.Assessment, path string) (*domain.ReportExport, error)
	Exports(ctx context.Context, assessmentID string) ([]*domain.ReportExport, error)
}
