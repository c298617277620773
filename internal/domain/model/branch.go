package model

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

const maxBranchNameLen = 255

// Branch is a physical location of a company.
type Branch struct {
	ID        string    `json:"id"                db:"id"`
	CompanyID string    `json:"company_id"        db:"company_id"`
	Name      string    `json:"name"              db:"name"`
	Address   *string   `json:"address,omitempty" db:"address"`
	Phone     *string   `json:"phone,omitempty"   db:"phone"`
	Active    bool      `json:"active"            db:"active"`
	CreatedAt time.Time `json:"created_at"        db:"created_at"`
	UpdatedAt time.Time `json:"updated_at"        db:"updated_at"`
}

// CreateBranchRequest represents parameters to create a Branch. The company
// id is resolved from the caller's session, never from the request body.
type CreateBranchRequest struct {
	Name    string  `json:"name"`
	Address *string `json:"address,omitempty"`
	Phone   *string `json:"phone,omitempty"`
}

// UpdateBranchRequest represents parameters to update a Branch.
type UpdateBranchRequest struct {
	Name    *string `json:"name,omitempty"`
	Address *string `json:"address,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Active  *bool   `json:"active,omitempty"`
}

// Validate validates CreateBranchRequest.
func (r *CreateBranchRequest) Validate() error {
	name := strings.TrimSpace(r.Name)
	if name == "" {
		return errors.New("name is required and cannot be empty")
	}
	if utf8.RuneCountInString(name) > maxBranchNameLen {
		return errors.New("name cannot exceed 255 characters")
	}
	return nil
}

// Validate validates UpdateBranchRequest.
func (r *UpdateBranchRequest) Validate() error {
	if r.Name == nil && r.Address == nil && r.Phone == nil && r.Active == nil {
		return errors.New("at least one field must be updated")
	}
	if r.Name != nil && strings.TrimSpace(*r.Name) == "" {
		return errors.New("name cannot be empty")
	}
	return nil
}
