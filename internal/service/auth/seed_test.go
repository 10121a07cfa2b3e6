package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/prodtracker/internal/domain/models"
)

func TestParseSeedUsers(t *testing.T) {
	users, err := ParseSeedUsers(strings.NewReader("username,password,role\nboss,s3cret,Admin\nop1,pw,\n"))
	require.NoError(t, err)
	assert.Equal(t, []models.User{
		{Username: "boss", Password: "s3cret", Role: models.RoleAdmin},
		{Username: "op1", Password: "pw", Role: models.RoleOperator},
	}, users)
}

func TestParseSeedUsersRejectsBadRows(t *testing.T) {
	_, err := ParseSeedUsers(strings.NewReader("username,password,role\nboss,,admin\n"))
	assert.ErrorContains(t, err, "row 2")

	_, err = ParseSeedUsers(strings.NewReader("username,password,role\nboss,pw,root\n"))
	assert.ErrorContains(t, err, `unknown role "root"`)
}
