package model

// User role constants
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents a system user holding the identity credential.
// The password hash never leaves the persistence boundary in responses.
type User struct {
	Base
	Username     string `json:"username" db:"username"`
	Email        string `json:"email" db:"email"`
	FullName     string `json:"full_name" db:"full_name"`
	PasswordHash string `json:"-" db:"password_hash"`
	Role         string `json:"role" db:"role"`
	Active       bool   `json:"is_active" db:"active"`
}
