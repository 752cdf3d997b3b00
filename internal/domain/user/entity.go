package user

import "time"

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleOperator Role = "operator"
)

type User struct {
	ID           string
	Email        string
	PasswordHash *string
	FullName     string
	Role         Role
	GoogleID     *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
