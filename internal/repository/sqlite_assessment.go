package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/alexanderramin/firstmap/internal/db"
	"github.com/alexanderramin/firstmap/internal/domain"
)

const (
	activitySelected = "selected"
	activityCustom   = "custom"
)

// SQLiteAssessmentRepo implements AssessmentRepo using a SQLite database.
type SQLiteAssessmentRepo struct {
	db db.DBTX
}

// NewSQLiteAssessmentRepo creates a new SQLiteAssessmentRepo. Pass a
// transaction to make its writes part of a unit of work.
func NewSQLiteAssessmentRepo(db db.DBTX) *SQLiteAssessmentRepo {
	return &SQLiteAssessmentRepo{db: db}
}

func (r *SQLiteAssessmentRepo) Create(ctx context.Context, a *domain.Assessment) error {
	query := `INSERT INTO assessments (id, child_nickname, age_band_id, context, general_note, date,
		final_note, confirmed, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		a.ID,
		a.ChildNickname,
		a.AgeBandID,
		string(a.Context),
		a.GeneralNote,
		a.Date,
		a.FinalNote,
		boolToInt(a.Confirmed),
		formatTime(a.CreatedAt),
		formatTime(a.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting assessment: %w", err)
	}
	return r.insertChildren(ctx, a)
}

func (r *SQLiteAssessmentRepo) GetByID(ctx context.Context, id string) (*domain.Assessment, error) {
	query := `SELECT id, child_nickname, age_band_id, context, general_note, date,
		final_note, confirmed, created_at, updated_at
		FROM assessments WHERE id = ?`
	a, err := r.scanAssessment(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, err
	}
	if err := r.loadStatuses(ctx, a); err != nil {
		return nil, err
	}
	if err := r.loadNotes(ctx, a); err != nil {
		return nil, err
	}
	if err := r.loadActivities(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (r *SQLiteAssessmentRepo) List(ctx context.Context) ([]domain.AssessmentSummary, error) {
	query := `SELECT a.id, a.child_nickname, a.age_band_id, a.date, a.confirmed, a.updated_at,
		(SELECT COUNT(*) FROM assessment_statuses s WHERE s.assessment_id = a.id)
		FROM assessments a ORDER BY a.updated_at DESC, a.id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing assessments: %w", err)
	}
	defer rows.Close()

	var out []domain.AssessmentSummary
	for rows.Next() {
		var (
			s         domain.AssessmentSummary
			confirmed int
			updatedAt string
		)
		if err := rows.Scan(&s.ID, &s.ChildNickname, &s.AgeBandID, &s.Date, &confirmed, &updatedAt, &s.Answered); err != nil {
			return nil, fmt.Errorf("scanning assessment summary: %w", err)
		}
		s.Confirmed = intToBool(confirmed)
		if s.UpdatedAt, err = parseTime(updatedAt); err != nil {
			return nil, fmt.Errorf("parsing updated_at: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating assessments: %w", err)
	}
	return out, nil
}

func (r *SQLiteAssessmentRepo) Save(ctx context.Context, a *domain.Assessment) error {
	query := `UPDATE assessments SET child_nickname = ?, age_band_id = ?, context = ?, general_note = ?,
		date = ?, final_note = ?, confirmed = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		a.ChildNickname,
		a.AgeBandID,
		string(a.Context),
		a.GeneralNote,
		a.Date,
		a.FinalNote,
		boolToInt(a.Confirmed),
		formatTime(a.UpdatedAt),
		a.ID,
	)
	if err != nil {
		return fmt.Errorf("updating assessment: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("assessment %s: %w", a.ID, ErrNotFound)
	}

	for _, table := range []string{"assessment_statuses", "section_notes", "assessment_activities"} {
		if _, err := r.db.ExecContext(ctx, `DELETE FROM `+table+` WHERE assessment_id = ?`, a.ID); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}
	return r.insertChildren(ctx, a)
}

func (r *SQLiteAssessmentRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM assessments WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting assessment: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("assessment %s: %w", id, ErrNotFound)
	}
	return nil
}

func (r *SQLiteAssessmentRepo) insertChildren(ctx context.Context, a *domain.Assessment) error {
	for itemID, status := range a.Statuses {
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO assessment_statuses (assessment_id, item_id, status) VALUES (?, ?, ?)`,
			a.ID, itemID, string(status))
		if err != nil {
			return fmt.Errorf("inserting status for %s: %w", itemID, err)
		}
	}
	for sectionID, note := range a.SectionNotes {
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO section_notes (assessment_id, section_id, note) VALUES (?, ?, ?)`,
			a.ID, sectionID, note)
		if err != nil {
			return fmt.Errorf("inserting note for %s: %w", sectionID, err)
		}
	}

	lists := []struct {
		audience domain.Audience
		kind     string
		items    []string
	}{
		{domain.AudienceWorker, activitySelected, a.SelectedWorkerActivities},
		{domain.AudienceParent, activitySelected, a.SelectedParentActivities},
		{domain.AudienceWorker, activityCustom, a.CustomWorkerActivities},
		{domain.AudienceParent, activityCustom, a.CustomParentActivities},
	}
	for _, l := range lists {
		for pos, text := range l.items {
			_, err := r.db.ExecContext(ctx,
				`INSERT INTO assessment_activities (assessment_id, audience, kind, position, text) VALUES (?, ?, ?, ?, ?)`,
				a.ID, string(l.audience), l.kind, pos, text)
			if err != nil {
				return fmt.Errorf("inserting %s %s activity: %w", l.kind, l.audience, err)
			}
		}
	}
	return nil
}

func (r *SQLiteAssessmentRepo) scanAssessment(row *sql.Row) (*domain.Assessment, error) {
	var (
		a                    domain.Assessment
		ctxID                string
		confirmed            int
		createdAt, updatedAt string
	)
	err := row.Scan(
		&a.ID, &a.ChildNickname, &a.AgeBandID, &ctxID, &a.GeneralNote, &a.Date,
		&a.FinalNote, &confirmed, &createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("assessment: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning assessment: %w", err)
	}

	a.Context = domain.ContextID(ctxID)
	a.Confirmed = intToBool(confirmed)
	if a.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if a.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	a.Statuses = domain.AnswerMap{}
	a.SectionNotes = map[string]string{}
	return &a, nil
}

func (r *SQLiteAssessmentRepo) loadStatuses(ctx context.Context, a *domain.Assessment) error {
	rows, err := r.db.QueryContext(ctx,
		`SELECT item_id, status FROM assessment_statuses WHERE assessment_id = ?`, a.ID)
	if err != nil {
		return fmt.Errorf("loading statuses: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var itemID, raw string
		if err := rows.Scan(&itemID, &raw); err != nil {
			return fmt.Errorf("scanning status: %w", err)
		}
		status, err := domain.ParseStatus(raw)
		if err != nil {
			slog.Warn("skipping stored status", "assessment_id", a.ID, "item_id", itemID, "error", err)
			continue
		}
		a.Statuses[itemID] = status
	}
	return rows.Err()
}

func (r *SQLiteAssessmentRepo) loadNotes(ctx context.Context, a *domain.Assessment) error {
	rows, err := r.db.QueryContext(ctx,
		`SELECT section_id, note FROM section_notes WHERE assessment_id = ?`, a.ID)
	if err != nil {
		return fmt.Errorf("loading section notes: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var sectionID, note string
		if err := rows.Scan(&sectionID, &note); err != nil {
			return fmt.Errorf("scanning section note: %w", err)
		}
		a.SectionNotes[sectionID] = note
	}
	return rows.Err()
}

func (r *SQLiteAssessmentRepo) loadActivities(ctx context.Context, a *domain.Assessment) error {
	rows, err := r.db.QueryContext(ctx,
		`SELECT audience, kind, text FROM assessment_activities
		WHERE assessment_id = ? ORDER BY audience, kind, position`, a.ID)
	if err != nil {
		return fmt.Errorf("loading activities: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var audience, kind, text string
		if err := rows.Scan(&audience, &kind, &text); err != nil {
			return fmt.Errorf("scanning activity: %w", err)
		}
		switch {
		case audience == string(domain.AudienceWorker) && kind == activitySelected:
			a.SelectedWorkerActivities = append(a.SelectedWorkerActivities, text)
		case audience == string(domain.AudienceParent) && kind == activitySelected:
			a.SelectedParentActivities = append(a.SelectedParentActivities, text)
		case audience == string(domain.AudienceWorker) && kind == activityCustom:
			a.CustomWorkerActivities = append(a.CustomWorkerActivities, text)
		case audience == string(domain.AudienceParent) && kind == activityCustom:
			a.CustomParentActivities = append(a.CustomParentActivities, text)
		}
	}
	return rows.Err()
}
