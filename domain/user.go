package domain

import (
	"strings"
	"time"
	"unicode/utf8"
)

// Roles assignable to an account. New registrations always start as RoleUser.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

const (
	UserNameMin = 2
	UserNameMax = 50
	PasswordMin = 6
	PasswordMax = 72 // bcrypt input ceiling
)

// User represents a registered account. The password hash never
// serializes; only repositories and the credential flow touch it.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	Avatar       string    `json:"avatar,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// ValidUserName reports whether name fits the allowed length once trimmed.
func ValidUserName(name string) bool {
	n := utf8.RuneCountInString(strings.TrimSpace(name))
	return n >= UserNameMin && n <= UserNameMax
}

// ValidPassword checks the raw password before hashing.
func ValidPassword(password string) bool {
	return len(password) >= PasswordMin && len(password) <= PasswordMax
}
