package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/prodtracker/internal/domain/models"
	"github.com/mamadbah2/prodtracker/internal/repository/sqlite"
	"github.com/mamadbah2/prodtracker/internal/testutil"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	db := testutil.SetupTestDB(t)
	testutil.SeedUser(t, db, "admin", "admin123", models.RoleAdmin)
	testutil.SeedUser(t, db, "legacy", "pw", "")
	return NewService(sqlite.NewUserRepository(db), "test-secret", time.Hour, nil)
}

func TestLoginIssuesVerifiableToken(t *testing.T) {
	svc := newTestService(t)

	user, token, err := svc.Login(context.Background(), "admin", "admin123")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, user.Role)

	claims, err := svc.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Username)
	assert.Equal(t, models.RoleAdmin, claims.Role)
}

func TestLoginDefaultsRoleToOperator(t *testing.T) {
	svc := newTestService(t)

	user, token, err := svc.Login(context.Background(), "legacy", "pw")
	require.NoError(t, err)
	assert.Equal(t, models.RoleOperator, user.Role)

	claims, err := svc.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, models.RoleOperator, claims.Role)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc := newTestService(t)

	for _, creds := range [][2]string{{"admin", "nope"}, {"ghost", "admin123"}, {"", ""}} {
		_, _, err := svc.Login(context.Background(), creds[0], creds[1])
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	}
}

func TestParseRejectsExpiredAndForeignTokens(t *testing.T) {
	svc := newTestService(t)
	issuedAt := time.Date(2024, 3, 15, 8, 0, 0, 0, time.UTC)
	svc.now = testutil.FixedClock(issuedAt)

	token, err := svc.Issue(models.User{Username: "admin", Role: models.RoleAdmin})
	require.NoError(t, err)

	svc.now = testutil.FixedClock(issuedAt.Add(2 * time.Hour))
	_, err = svc.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	other := NewService(nil, "other-secret", time.Hour, nil)
	other.now = testutil.FixedClock(issuedAt)
	_, err = other.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
