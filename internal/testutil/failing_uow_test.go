package testutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/firstmap/internal/db"
)

func TestFailingUoW_CountsWritesPerTransaction(t *testing.T) {
	database := NewTestDB(t)
	uow := &FailingUoW{DB: database, FailOn: 2, Logger: NewTestLogger(t)}
	ctx := context.Background()

	write := func(ctx context.Context, tx db.DBTX) error {
		if _, err := tx.ExecContext(ctx, `INSERT INTO app_state (key, value) VALUES ('k1', 'v')`); err != nil {
			return err
		}
		var n int
		if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM app_state`).Scan(&n); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, `INSERT INTO app_state (key, value) VALUES ('k2', 'v')`)
		return err
	}

	require.ErrorIs(t, uow.WithinTx(ctx, write), ErrInjectedWrite)
	require.ErrorIs(t, uow.WithinTx(ctx, write), ErrInjectedWrite, "the count restarts with each transaction")
	assert.Len(t, uow.Failed(), 2)

	var n int
	require.NoError(t, database.QueryRow(`SELECT COUNT(*) FROM app_state`).Scan(&n))
	assert.Zero(t, n, "both transactions rolled back")
}

func TestFailingUoW_TableFilter(t *testing.T) {
	database := NewTestDB(t)
	SetCurrent(t, database, "a1")
	uow := &FailingUoW{DB: database, FailOn: 1, Table: "report_exports", Logger: NewTestLogger(t)}

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		_, err := tx.ExecContext(ctx, `UPDATE app_state SET value = 'a2' WHERE key = ?`, CurrentAssessmentKey)
		return err
	})
	require.NoError(t, err)
	assert.Empty(t, uow.Failed())

	var id string
	require.NoError(t, database.QueryRow(`SELECT value FROM app_state WHERE key = ?`, CurrentAssessmentKey).Scan(&id))
	assert.Equal(t, "a2", id)
}
