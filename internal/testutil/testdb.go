package testutil

import (
	"database/sql"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/firstmap/internal/db"
)

// CurrentAssessmentKey is the app_state key that points at the assessment
// the tool resumes.
const CurrentAssessmentKey = "current_assessment"

// NewTestDB opens an in-memory assessment store migrated to the latest
// schema. It is closed when the test ends.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(":memory:")
	require.NoError(t, err, "opening test store")
	t.Cleanup(func() { _ = database.Close() })

	v, err := db.SchemaVersion(database)
	require.NoError(t, err)
	require.Positive(t, v, "schema migrations were not applied")
	return database
}

// NewTestUoW returns a unit of work on database whose rollback log lines go
// to the test output.
func NewTestUoW(t *testing.T, database *sql.DB) db.UnitOfWork {
	return db.NewSQLiteUnitOfWork(database, db.WithLogger(NewTestLogger(t)))
}

// NewTestLogger writes debug-level text logs through t.Log.
func NewTestLogger(t *testing.T) *slog.Logger {
	return slog.New(slog.NewTextHandler(testWriter{t}, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

type testWriter struct{ t *testing.T }

func (w testWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(strings.TrimRight(string(p), "\n"))
	return len(p), nil
}

// SetCurrent points the current-assessment slot at id without checking
// that the assessment exists.
func SetCurrent(t *testing.T, database *sql.DB, id string) {
	t.Helper()
	_, err := database.Exec(`INSERT INTO app_state (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`, CurrentAssessmentKey, id)
	require.NoError(t, err)
}
