package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/firstmap/internal/db"
	"github.com/alexanderramin/firstmap/internal/domain"
)

// SQLiteExportRepo implements ExportRepo using a SQLite database.
type SQLiteExportRepo struct {
	db db.DBTX
}

func NewSQLiteExportRepo(db db.DBTX) *SQLiteExportRepo {
	return &SQLiteExportRepo{db: db}
}

func (r *SQLiteExportRepo) Create(ctx context.Context, e *domain.ReportExport) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO report_exports (id, assessment_id, path, confirmed, created_at) VALUES (?, ?, ?, ?, ?)`,
		e.ID, e.AssessmentID, e.Path, boolToInt(e.Confirmed), formatTime(e.CreatedAt))
	if err != nil {
		return fmt.Errorf("inserting report export: %w", err)
	}
	return nil
}

func (r *SQLiteExportRepo) ListByAssessment(ctx context.Context, assessmentID string) ([]*domain.ReportExport, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, assessment_id, path, confirmed, created_at FROM report_exports
		WHERE assessment_id = ? ORDER BY id`, assessmentID)
	if err != nil {
		return nil, fmt.Errorf("listing report exports: %w", err)
	}
	defer rows.Close()

	var out []*domain.ReportExport
	for rows.Next() {
		var (
			e         domain.ReportExport
			confirmed int
			createdAt string
		)
		if err := rows.Scan(&e.ID, &e.AssessmentID, &e.Path, &confirmed, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning report export: %w", err)
		}
		e.Confirmed = intToBool(confirmed)
		if e.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}
		out = append(out, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating report exports: %w", err)
	}
	return out, nil
}
