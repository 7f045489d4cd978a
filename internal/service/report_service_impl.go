package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/alexanderramin/firstmap/internal/domain"
	"github.com/alexanderramin/firstmap/internal/report"
	"github.com/alexanderramin/firstmap/internal/repository"
)

type reportService struct {
	results  ResultService
	exports  repository.ExportRepo
	observer UseCaseObserver
	now      func() time.Time
}

func NewReportService(results ResultService, exports repository.ExportRepo, observers ...UseCaseObserver) ReportService {
	return &reportService{
		results:  results,
		exports:  exports,
		observer: useCaseObserverOrNoop(observers),
		now:      time.Now,
	}
}

func (s *reportService) Build(ctx context.Context, a *domain.Assessment) string {
	return report.Build(a, s.results.Compute(ctx, a))
}

// ExportFileName names the markdown file written for one export of a.
func ExportFileName(a *domain.Assessment, id string) string {
	date := a.Date
	if date == "" {
		date = "undated"
	}
	return fmt.Sprintf("firstmap-%s-%s.md", date, id)
}

func (s *reportService) Export(ctx context.Context, a *domain.Assessment, dir string) (*domain.ReportExport, error) {
	if dir == "" {
		dir = "."
	}
	id := ulid.Make().String()
	return s.export(ctx, a, id, filepath.Join(dir, ExportFileName(a, id)))
}

func (s *reportService) ExportFile(ctx context.Context, a *domain.Assessment, path string) (*domain.ReportExport, error) {
	return s.export(ctx, a, ulid.Make().String(), path)
}

func (s *reportService) export(ctx context.Context, a *domain.Assessment, id, path string) (e *domain.ReportExport, err error) {
	fields := map[string]any{"assessment_id": a.ID, "confirmed": a.Confirmed}
	done := track(ctx, s.observer, "export_report", fields)
	defer func() { done(err) }()

	if err = os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating report directory: %w", err)
	}
	if err = os.WriteFile(path, []byte(s.Build(ctx, a)), 0o644); err != nil {
		return nil, fmt.Errorf("writing report: %w", err)
	}

	e = &domain.ReportExport{
		ID:           id,
		AssessmentID: a.ID,
		Path:         path,
		Confirmed:    a.Confirmed,
		CreatedAt:    s.now().UTC(),
	}
	if err = s.exports.Create(ctx, e); err != nil {
		return nil, err
	}
	fields["path"] = path
	return e, nil
}

func (s *reportService) Exports(ctx context.Context, assessmentID string) ([]*domain.ReportExport, error) {
	return s.exports.ListByAssessment(ctx, assessmentID)
}
