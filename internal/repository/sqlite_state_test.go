package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/firstmap/internal/testutil"
)

func TestStateRepo_SetGetDelete(t *testing.T) {
	repo := NewSQLiteStateRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	_, err := repo.Get(ctx, "current_assessment")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, repo.Set(ctx, "current_assessment", "a1"))
	require.NoError(t, repo.Set(ctx, "current_assessment", "a2"))
	v, err := repo.Get(ctx, "current_assessment")
	require.NoError(t, err)
	assert.Equal(t, "a2", v)

	require.NoError(t, repo.Delete(ctx, "current_assessment"))
	_, err = repo.Get(ctx, "current_assessment")
	assert.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, repo.Delete(ctx, "current_assessment"), "deleting a missing key is a no-op")
}
