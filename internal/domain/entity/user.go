package entity

import "time"

// Roles de usuario del panel AIS.
const (
	RoleAdmin    = "admin"
	RoleOperator = "operator"
)

// User usuario del panel de administración.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	Role         string
	Status       string // active, disabled
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
