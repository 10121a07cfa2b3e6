package auth

import (
	"fmt"
	"io"
	"strings"

	"github.com/mamadbah2/prodtracker/internal/domain/models"
	"github.com/mamadbah2/prodtracker/internal/service/csvio"
)

// ParseSeedUsers reads a username,password,role CSV. An empty role means operator.
func ParseSeedUsers(r io.Reader) ([]models.User, error) {
	records, err := csvio.ReadRecords(r)
	if err != nil {
		return nil, err
	}

	users := make([]models.User, 0, len(records))
	for i, rec := range records {
		row := i + 2
		username := strings.TrimSpace(rec["username"])
		password := rec["password"]
		if username == "" || password == "" {
			return nil, fmt.Errorf("seed row %d: username and password are required", row)
		}

		role := models.Role(strings.ToLower(strings.TrimSpace(rec["role"])))
		switch role {
		case "":
			role = models.RoleOperator
		case models.RoleAdmin, models.RoleOperator:
		default:
			return nil, fmt.Errorf("seed row %d: unknown role %q", row, role)
		}

		users = append(users, models.User{Username: username, Password: password, Role: role})
	}
	return users, nil
}
