package model

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	maxEmployeeNameLen    = 255
	defaultCommissionRate = 50.0
)

// EmployeeStatus is the lifecycle status of an employee. Deletion is a
// soft delete (status → INACTIVE) so historical references stay valid.
type EmployeeStatus string

const (
	EmployeeStatusActive   EmployeeStatus = "ACTIVE"
	EmployeeStatusInactive EmployeeStatus = "INACTIVE"
	EmployeeStatusOnLeave  EmployeeStatus = "ON_LEAVE"
)

// Valid reports whether the status is supported.
func (s EmployeeStatus) Valid() bool {
	switch s {
	case EmployeeStatusActive, EmployeeStatusInactive, EmployeeStatusOnLeave:
		return true
	default:
		return false
	}
}

// Employee belongs to exactly one company and is optionally linked to one
// login-capable user. Invariant: HasSystemAccess is true iff UserID is set.
type Employee struct {
	ID              string         `json:"id"                     db:"id"`
	CompanyID       string         `json:"company_id"             db:"company_id"`
	UserID          *string        `json:"user_id,omitempty"      db:"user_id"`
	BranchID        *string        `json:"branch_id,omitempty"    db:"branch_id"`
	Name            string         `json:"name"                   db:"name"`
	Email           string         `json:"email"                  db:"email"`
	PhoneNumber     *string        `json:"phone_number,omitempty" db:"phone_number"`
	Bio             *string        `json:"bio,omitempty"          db:"bio"`
	CommissionRate  float64        `json:"commission_rate"        db:"commission_rate"`
	Specialties     []string       `json:"specialties"            db:"specialties"`
	Status          EmployeeStatus `json:"status"                 db:"status"`
	StartDate       time.Time      `json:"start_date"             db:"start_date"`
	HasSystemAccess bool           `json:"has_system_access"      db:"has_system_access"`
	CreatedAt       time.Time      `json:"created_at"             db:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"             db:"updated_at"`
}

// EmployeeWithUser is an employee plus the linked user summary, when one
// exists.
type EmployeeWithUser struct {
	Employee
	User *UserSummary `json:"user,omitempty"`
}

// CreateEmployeeRequest represents parameters to create an Employee without
// system access. Tenant id comes from the caller's session.
type CreateEmployeeRequest struct {
	Name           string          `json:"name"`
	Email          string          `json:"email"`
	PhoneNumber    *string         `json:"phone_number,omitempty"`
	BranchID       *string         `json:"branch_id,omitempty"`
	Bio            *string         `json:"bio,omitempty"`
	CommissionRate *float64        `json:"commission_rate,omitempty"`
	Specialties    []string        `json:"specialties,omitempty"`
	Status         *EmployeeStatus `json:"status,omitempty"`
	StartDate      *time.Time      `json:"start_date,omitempty"`
}

// InviteEmployeeRequest creates an employee and, when SendInvite is set,
// provisions a linked login with a temporary credential.
type InviteEmployeeRequest struct {
	CreateEmployeeRequest
	SendInvite bool `json:"send_invite"`
}

// UpdateEmployeeRequest represents parameters to update an Employee.
// System-access changes go through the dedicated toggle operation.
type UpdateEmployeeRequest struct {
	Name           *string         `json:"name,omitempty"`
	PhoneNumber    *string         `json:"phone_number,omitempty"`
	BranchID       *string         `json:"branch_id,omitempty"`
	Bio            *string         `json:"bio,omitempty"`
	CommissionRate *float64        `json:"commission_rate,omitempty"`
	Specialties    []string        `json:"specialties,omitempty"`
	Status         *EmployeeStatus `json:"status,omitempty"`
}

// Validate validates CreateEmployeeRequest and applies defaults.
func (r *CreateEmployeeRequest) Validate() error {
	name := strings.TrimSpace(r.Name)
	if name == "" {
		return errors.New("name is required and cannot be empty")
	}
	if utf8.RuneCountInString(name) > maxEmployeeNameLen {
		return errors.New("name cannot exceed 255 characters")
	}
	if err := validateEmail(r.Email); err != nil {
		return err
	}
	if r.CommissionRate != nil && (*r.CommissionRate < 0 || *r.CommissionRate > 100) {
		return errors.New("commission_rate must be between 0 and 100")
	}
	if r.Status != nil && !r.Status.Valid() {
		return errors.New("status must be one of: ACTIVE, INACTIVE, ON_LEAVE")
	}
	for _, s := range r.Specialties {
		if strings.TrimSpace(s) == "" {
			return errors.New("specialties cannot contain empty entries")
		}
	}
	return nil
}

// Validate validates UpdateEmployeeRequest.
func (r *UpdateEmployeeRequest) Validate() error {
	if r.Name == nil && r.PhoneNumber == nil && r.BranchID == nil && r.Bio == nil &&
		r.CommissionRate == nil && r.Specialties == nil && r.Status == nil {
		return errors.New("at least one field must be updated")
	}
	if r.Name != nil && strings.TrimSpace(*r.Name) == "" {
		return errors.New("name cannot be empty")
	}
	if r.CommissionRate != nil && (*r.CommissionRate < 0 || *r.CommissionRate > 100) {
		return errors.New("commission_rate must be between 0 and 100")
	}
	if r.Status != nil && !r.Status.Valid() {
		return errors.New("status must be one of: ACTIVE, INACTIVE, ON_LEAVE")
	}
	return nil
}

// ApplyDefaults fills zero-valued optional fields on creation.
func (r *CreateEmployeeRequest) ApplyDefaults(now time.Time) {
	if r.CommissionRate == nil {
		rate := defaultCommissionRate
		r.CommissionRate = &rate
	}
	if r.Status == nil {
		status := EmployeeStatusActive
		r.Status = &status
	}
	if r.StartDate == nil {
		r.StartDate = &now
	}
}
