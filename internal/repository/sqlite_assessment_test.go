package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/firstmap/internal/db"
	"github.com/alexanderramin/firstmap/internal/domain"
	"github.com/alexanderramin/firstmap/internal/testutil"
)

func fullAssessment() *domain.Assessment {
	a := testutil.NewTestAssessment(
		testutil.WithNickname("Bára"),
		testutil.WithContext(domain.ContextOther),
		testutil.WithStatus("a1", domain.StatusCanDo),
		testutil.WithStatus("b1", domain.StatusNotInterested),
		testutil.WithSectionNote("A", "venku hodně běhala"),
		testutil.WithConfirmed(),
	)
	a.GeneralNote = "první setkání"
	a.FinalNote = "příště znovu"
	a.SelectedWorkerActivities = []string{"w2", "w1"}
	a.SelectedParentActivities = []string{"p1"}
	a.CustomWorkerActivities = []string{"vlastní práce"}
	a.CustomParentActivities = []string{"c1", "c2", "c3"}
	return a
}

func TestAssessmentRepo_CreateAndGet(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteAssessmentRepo(database)
	ctx := context.Background()

	a := fullAssessment()
	require.NoError(t, repo.Create(ctx, a))

	got, err := repo.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, a.ID, got.ID)
	assert.Equal(t, "Bára", got.ChildNickname)
	assert.Equal(t, "3-4", got.AgeBandID)
	assert.Equal(t, domain.ContextOther, got.Context)
	assert.Equal(t, "první setkání", got.GeneralNote)
	assert.Equal(t, a.Date, got.Date)
	assert.Equal(t, a.Statuses, got.Statuses)
	assert.Equal(t, a.SectionNotes, got.SectionNotes)
	assert.Equal(t, []string{"w2", "w1"}, got.SelectedWorkerActivities, "selection order is preserved")
	assert.Equal(t, a.SelectedParentActivities, got.SelectedParentActivities)
	assert.Equal(t, a.CustomWorkerActivities, got.CustomWorkerActivities)
	assert.Equal(t, a.CustomParentActivities, got.CustomParentActivities)
	assert.Equal(t, "příště znovu", got.FinalNote)
	assert.True(t, got.Confirmed)
	assert.True(t, a.CreatedAt.Equal(got.CreatedAt))
}

func TestAssessmentRepo_GetByID_NotFound(t *testing.T) {
	repo := NewSQLiteAssessmentRepo(testutil.NewTestDB(t))
	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAssessmentRepo_SaveReplacesChildren(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteAssessmentRepo(database)
	ctx := context.Background()

	a := fullAssessment()
	require.NoError(t, repo.Create(ctx, a))

	next, err := domain.Reduce(a, domain.ClearStatus{ItemID: "a1"})
	require.NoError(t, err)
	next, err = domain.Reduce(next, domain.SetStatus{ItemID: "c1", Status: domain.StatusCannot})
	require.NoError(t, err)
	next, err = domain.Reduce(next, domain.ToggleActivity{Audience: domain.AudienceWorker, Activity: "w2"})
	require.NoError(t, err)
	next, err = domain.Reduce(next, domain.SetSectionNote{SectionID: "A"})
	require.NoError(t, err)
	next, err = domain.Reduce(next, domain.SetConfirmed{Value: false})
	require.NoError(t, err)
	next.UpdatedAt = next.UpdatedAt.Add(time.Minute)

	uow := testutil.NewTestUoW(t, database)
	require.NoError(t, uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return NewSQLiteAssessmentRepo(tx).Save(ctx, next)
	}))

	got, err := repo.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.AnswerMap{"b1": domain.StatusNotInterested, "c1": domain.StatusCannot}, got.Statuses)
	assert.Empty(t, got.SectionNotes)
	assert.Equal(t, []string{"w1"}, got.SelectedWorkerActivities)
	assert.False(t, got.Confirmed)
	assert.True(t, next.UpdatedAt.Equal(got.UpdatedAt))
}

func TestAssessmentRepo_SaveMissing(t *testing.T) {
	repo := NewSQLiteAssessmentRepo(testutil.NewTestDB(t))
	err := repo.Save(context.Background(), testutil.NewTestAssessment())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAssessmentRepo_SaveRollsBackOnFailure(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteAssessmentRepo(database)
	ctx := context.Background()

	a := fullAssessment()
	require.NoError(t, repo.Create(ctx, a))

	changed := a.Clone()
	changed.FinalNote = "should not persist"
	uow := &testutil.FailingUoW{DB: database, FailOn: 1, Table: "section_notes", Logger: testutil.NewTestLogger(t)}
	err := uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return NewSQLiteAssessmentRepo(tx).Save(ctx, changed)
	})
	require.ErrorIs(t, err, testutil.ErrInjectedWrite)
	assert.Equal(t, []string{"DELETE FROM section_notes WHERE assessment_id = ?"}, uow.Failed())

	got, err := repo.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "příště znovu", got.FinalNote)
	assert.Equal(t, a.SectionNotes, got.SectionNotes)
}

func TestAssessmentRepo_ListAndDelete(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteAssessmentRepo(database)
	ctx := context.Background()

	older := testutil.NewTestAssessment(testutil.WithNickname("Older"))
	older.UpdatedAt = older.UpdatedAt.Add(-time.Hour)
	newer := fullAssessment()
	require.NoError(t, repo.Create(ctx, older))
	require.NoError(t, repo.Create(ctx, newer))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, newer.ID, list[0].ID, "most recently updated first")
	assert.Equal(t, 2, list[0].Answered)
	assert.True(t, list[0].Confirmed)
	assert.Equal(t, "Older", list[1].ChildNickname)

	require.NoError(t, repo.Delete(ctx, newer.ID))
	_, err = repo.GetByID(ctx, newer.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, newer.ID), ErrNotFound)

	var n int
	require.NoError(t, database.QueryRow(`SELECT COUNT(*) FROM assessment_activities`).Scan(&n))
	assert.Equal(t, 0, n, "children cascade on delete")
}

func TestAssessmentRepo_SkipsUnparseableStatus(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteAssessmentRepo(database)
	ctx := context.Background()

	a := testutil.NewTestAssessment(testutil.WithStatus("a1", domain.StatusCanDo))
	require.NoError(t, repo.Create(ctx, a))

	// Simulate a row written before the CHECK constraint existed.
	_, err := database.Exec(`PRAGMA ignore_check_constraints = ON`)
	require.NoError(t, err)
	_, err = database.Exec(`INSERT INTO assessment_statuses (assessment_id, item_id, status) VALUES (?, 'a2', 'MAYBE')`, a.ID)
	require.NoError(t, err)
	_, err = database.Exec(`PRAGMA ignore_check_constraints = OFF`)
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.AnswerMap{"a1": domain.StatusCanDo}, got.Statuses)
}
