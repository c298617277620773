package model

import (
	"time"

	"github.com/salonhub/salonhub-api/internal/domain/auth"
)

// User is an identity record. CompanyID is nil for accounts without a
// tenant binding (platform operators, revoked employees).
type User struct {
	ID                  string     `json:"id"                    db:"id"`
	Name                string     `json:"name"                  db:"name"`
	Email               string     `json:"email"                 db:"email"`
	Role                auth.Role  `json:"role"                  db:"role"`
	CompanyID           *string    `json:"company_id,omitempty"  db:"company_id"`
	EmailVerified       bool       `json:"email_verified"        db:"email_verified"`
	IsTemporaryPassword bool       `json:"is_temporary_password" db:"is_temporary_password"`
	CreatedAt           time.Time  `json:"created_at"            db:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"            db:"updated_at"`
}

// UserSummary is the trimmed user shape embedded in employee responses.
type UserSummary struct {
	ID            string    `json:"id"             db:"id"`
	Name          string    `json:"name"           db:"name"`
	Email         string    `json:"email"          db:"email"`
	Role          auth.Role `json:"role"           db:"role"`
	EmailVerified bool      `json:"email_verified" db:"email_verified"`
}

// Summary returns the trimmed shape of the user.
func (u *User) Summary() *UserSummary {
	return &UserSummary{
		ID:            u.ID,
		Name:          u.Name,
		Email:         u.Email,
		Role:          u.Role,
		EmailVerified: u.EmailVerified,
	}
}
