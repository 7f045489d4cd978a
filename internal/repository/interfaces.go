package repository

import (
	"context"

	"github.com/alexanderramin/firstmap/internal/domain"
)

type AssessmentRepo interface {
	Create(ctx context.Context, a *domain.Assessment) error
	GetByID(ctx context.Context, id string) (*domain.Assessment, error)
	List(ctx context.Context) ([]domain.AssessmentSummary, error)
	// Save overwrites the assessment row and replaces all of its children.
	// Run it inside a transaction.
	Save(ctx context.Context, a *domain.Assessment) error
	Delete(ctx context.Context, id string) error
}

// StateRepo is a small key/value store for application state such as the
// current assessment pointer.
type StateRepo interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

type ExportRepo interface {
	Create(ctx context.Context, e *domain.ReportExport) error
	ListByAssessment(ctx context.Context, assessmentID string) ([]*domain.ReportExport, error)
}
