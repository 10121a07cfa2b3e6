package models

// Role enumerates account roles.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleOperator Role = "operator"
)

// User is a dashboard account. Passwords are stored and compared verbatim.
type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Username string `gorm:"size:64;uniqueIndex;not null" json:"username"`
	Password string `gorm:"size:255;not null" json:"-"`
	Role     Role   `gorm:"size:16" json:"role"`
}

// EffectiveRole returns the account role, defaulting to RoleOperator.
func (u User) EffectiveRole() Role {
	if u.Role == "" {
		return RoleOperator
	}
	return u.Role
}

// RoleCount is one row of the user-roles breakdown.
type RoleCount struct {
	Role  Role  `json:"role"`
	Count int64 `json:"count"`
}
