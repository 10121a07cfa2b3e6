package sqlite_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/prodtracker/internal/domain/models"
	"github.com/mamadbah2/prodtracker/internal/repository/sqlite"
	"github.com/mamadbah2/prodtracker/internal/testutil"
)

func TestUserRepositoryFindByCredentials(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := sqlite.NewUserRepository(db)
	testutil.SeedUser(t, db, "admin", "secret", models.RoleAdmin)

	user, err := repo.FindByCredentials(context.Background(), "admin", "secret")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, user.Role)

	_, err = repo.FindByCredentials(context.Background(), "admin", "wrong")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestUserRepositoryDelete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := sqlite.NewUserRepository(db)
	user := testutil.SeedUser(t, db, "op", "pw", models.RoleOperator)

	require.NoError(t, repo.Delete(context.Background(), user.ID))
	assert.ErrorIs(t, repo.Delete(context.Background(), user.ID), models.ErrNotFound)
}

func TestUserRepositoryUpsertReplacesPassword(t *testing.T) {
	repo := sqlite.NewUserRepository(testutil.SetupTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, &models.User{Username: "op", Password: "one", Role: models.RoleOperator}))
	require.NoError(t, repo.Upsert(ctx, &models.User{Username: "op", Password: "two", Role: models.RoleAdmin}))

	users, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, models.RoleAdmin, users[0].Role)

	_, err = repo.FindByCredentials(ctx, "op", "two")
	assert.NoError(t, err)
}

func TestUserRepositoryRoleCountsDefaultsEmptyRole(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := sqlite.NewUserRepository(db)
	testutil.SeedUser(t, db, "a", "pw", models.RoleAdmin)
	testutil.SeedUser(t, db, "b", "pw", models.RoleOperator)
	testutil.SeedUser(t, db, "c", "pw", "")

	counts, err := repo.RoleCounts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []models.RoleCount{
		{Role: models.RoleAdmin, Count: 1},
		{Role: models.RoleOperator, Count: 2},
	}, counts)
}
