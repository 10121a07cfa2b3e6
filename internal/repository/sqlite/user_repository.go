package sqlite

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mamadbah2/prodtracker/internal/domain/models"
)

// UserRepository manages dashboard accounts.
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository wraps an open database handle.
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// FindByCredentials looks up the account matching username and password.
func (r *UserRepository) FindByCredentials(ctx context.Context, username, password string) (models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Where("username = ? AND password = ?", username, password).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.User{}, models.ErrNotFound
	}
	if err != nil {
		return models.User{}, fmt.Errorf("%w: find user %s: %w", models.ErrQuery, username, err)
	}
	return user, nil
}

// List returns all accounts ordered by username.
func (r *UserRepository) List(ctx context.Context) ([]models.User, error) {
	users := make([]models.User, 0)
	if err := r.db.WithContext(ctx).Order("username ASC").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("%w: list users: %w", models.ErrQuery, err)
	}
	for i := range users {
		users[i].Role = users[i].EffectiveRole()
	}
	return users, nil
}

// Delete removes the account with the given id.
func (r *UserRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.User{}, id)
	if result.Error != nil {
		return fmt.Errorf("%w: delete user %d: %w", models.ErrPersistence, id, result.Error)
	}
	if result.RowsAffected == 0 {
		return models.ErrNotFound
	}
	return nil
}

// Upsert inserts the account or replaces the password and role of an
// existing account with the same username.
func (r *UserRepository) Upsert(ctx context.Context, user *models.User) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "username"}},
		DoUpdates: clause.AssignmentColumns([]string{"password", "role"}),
	}).Create(user).Error
	if err != nil {
		return fmt.Errorf("%w: upsert user %s: %w", models.ErrPersistence, user.Username, err)
	}
	return nil
}

// roleExpr reads an empty role as operator.
var roleExpr = fmt.Sprintf("COALESCE(NULLIF(role, ''), '%s')", models.RoleOperator)

// RoleCounts returns how many accounts hold each role.
func (r *UserRepository) RoleCounts(ctx context.Context) ([]models.RoleCount, error) {
	counts := make([]models.RoleCount, 0)
	err := r.db.WithContext(ctx).Model(&models.User{}).
		Select(roleExpr + " AS role, COUNT(*) AS count").
		Group(roleExpr).
		Order("role").
		Scan(&counts).Error
	if err != nil {
		return nil, fmt.Errorf("%w: count roles: %w", models.ErrQuery, err)
	}
	return counts, nil
}
