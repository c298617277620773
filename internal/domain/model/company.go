//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

const maxCompanyNameLen = 255

// UnlimitedCapacity is the sentinel for "no plan limit" on capacity fields.
const UnlimitedCapacity = -1

// Company is the tenant: every branch, employee, and service belongs to
// exactly one company. Capacity fields follow the plan; -1 means unlimited.
type Company struct {
	ID               string    `json:"id"                db:"id"`
	Name             string    `json:"name"              db:"name"`
	CNPJ             *string   `json:"cnpj,omitempty"    db:"cnpj"`
	Email            string    `json:"email"             db:"email"`
	Phone            *string   `json:"phone,omitempty"   db:"phone"`
	Address          *string   `json:"address,omitempty" db:"address"`
	City             *string   `json:"city,omitempty"    db:"city"`
	State            *string   `json:"state,omitempty"   db:"state"`
	ZipCode          *string   `json:"zip_code,omitempty" db:"zip_code"`
	Active           bool      `json:"active"            db:"active"`
	MaxBranches      int       `json:"max_branches"      db:"max_branches"`
	MaxEmployees     int       `json:"max_employees"     db:"max_employees"`
	CurrentBranches  int       `json:"current_branches"  db:"current_branches"`
	CurrentEmployees int       `json:"current_employees" db:"current_employees"`
	CreatedAt        time.Time `json:"created_at"        db:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"        db:"updated_at"`
}

// CanAddEmployee reports whether the tenant has employee capacity left,
// along with the current count and plan limit for error detail.
func (c *Company) CanAddEmployee() (ok bool, current, limit int) {
	if c.MaxEmployees == UnlimitedCapacity {
		return true, c.CurrentEmployees, c.MaxEmployees
	}
	return c.CurrentEmployees < c.MaxEmployees, c.CurrentEmployees, c.MaxEmployees
}

// CanAddBranch reports whether the tenant has branch capacity left.
func (c *Company) CanAddBranch() (ok bool, current, limit int) {
	if c.MaxBranches == UnlimitedCapacity {
		return true, c.CurrentBranches, c.MaxBranches
	}
	return c.CurrentBranches < c.MaxBranches, c.CurrentBranches, c.MaxBranches
}

// CompanyWithBranches is a company plus its branch list, as returned by the
// tenant settings endpoint.
type CompanyWithBranches struct {
	Company
	Branches []*Branch `json:"branches"`
}

// CreateCompanyRequest represents parameters to create a Company.
type CreateCompanyRequest struct {
	Name         string  `json:"name"`
	CNPJ         *string `json:"cnpj,omitempty"`
	Email        string  `json:"email"`
	Phone        *string `json:"phone,omitempty"`
	Address      *string `json:"address,omitempty"`
	City         *string `json:"city,omitempty"`
	State        *string `json:"state,omitempty"`
	ZipCode      *string `json:"zip_code,omitempty"`
	MaxBranches  *int    `json:"max_branches,omitempty"`
	MaxEmployees *int    `json:"max_employees,omitempty"`
}

// UpdateCompanyRequest represents parameters to update a Company.
type UpdateCompanyRequest struct {
	Name    *string `json:"name,omitempty"`
	CNPJ    *string `json:"cnpj,omitempty"`
	Email   *string `json:"email,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Address *string `json:"address,omitempty"`
	City    *string `json:"city,omitempty"`
	State   *string `json:"state,omitempty"`
	ZipCode *string `json:"zip_code,omitempty"`
	Active  *bool   `json:"active,omitempty"`
}

// Validate validates CreateCompanyRequest.
func (r *CreateCompanyRequest) Validate() error {
	name := strings.TrimSpace(r.Name)
	if name == "" {
		return errors.New("name is required and cannot be empty")
	}
	if utf8.RuneCountInString(name) > maxCompanyNameLen {
		return errors.New("name cannot exceed 255 characters")
	}
	if err := validateEmail(r.Email); err != nil {
		return err
	}
	if r.MaxBranches != nil && *r.MaxBranches < UnlimitedCapacity {
		return errors.New("max_branches must be -1 (unlimited) or non-negative")
	}
	if r.MaxEmployees != nil && *r.MaxEmployees < UnlimitedCapacity {
		return errors.New("max_employees must be -1 (unlimited) or non-negative")
	}
	return nil
}

// Validate validates UpdateCompanyRequest.
func (r *UpdateCompanyRequest) Validate() error {
	if r.Name == nil && r.CNPJ == nil && r.Email == nil && r.Phone == nil &&
		r.Address == nil && r.City == nil && r.State == nil && r.ZipCode == nil && r.Active == nil {
		return errors.New("at least one field must be updated")
	}
	if r.Name != nil {
		name := strings.TrimSpace(*r.Name)
		if name == "" {
			return errors.New("name cannot be empty")
		}
		if utf8.RuneCountInString(name) > maxCompanyNameLen {
			return errors.New("name cannot exceed 255 characters")
		}
	}
	if r.Email != nil {
		if err := validateEmail(*r.Email); err != nil {
			return err
		}
	}
	return nil
}
