package model

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

const maxServiceNameLen = 255

// Service is a catalog item offered by a company (haircut, beard trim...).
type Service struct {
	ID              string    `json:"id"                    db:"id"`
	CompanyID       string    `json:"company_id"            db:"company_id"`
	Name            string    `json:"name"                  db:"name"`
	Description     *string   `json:"description,omitempty" db:"description"`
	Price           float64   `json:"price"                 db:"price"`
	DurationMinutes int       `json:"duration_minutes"      db:"duration_minutes"`
	Active          bool      `json:"active"                db:"active"`
	CreatedAt       time.Time `json:"created_at"            db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"            db:"updated_at"`
}

// CreateServiceRequest represents parameters to create a Service.
type CreateServiceRequest struct {
	Name            string  `json:"name"`
	Description     *string `json:"description,omitempty"`
	Price           float64 `json:"price"`
	DurationMinutes int     `json:"duration_minutes"`
}

// UpdateServiceRequest represents parameters to update a Service.
type UpdateServiceRequest struct {
	Name            *string  `json:"name,omitempty"`
	Description     *string  `json:"description,omitempty"`
	Price           *float64 `json:"price,omitempty"`
	DurationMinutes *int     `json:"duration_minutes,omitempty"`
	Active          *bool    `json:"active,omitempty"`
}

// Validate validates CreateServiceRequest.
func (r *CreateServiceRequest) Validate() error {
	name := strings.TrimSpace(r.Name)
	if name == "" {
		return errors.New("name is required and cannot be empty")
	}
	if utf8.RuneCountInString(name) > maxServiceNameLen {
		return errors.New("name cannot exceed 255 characters")
	}
	if r.Price < 0 {
		return errors.New("price must be non-negative")
	}
	if r.DurationMinutes <= 0 {
		return errors.New("duration_minutes must be at least 1")
	}
	return nil
}

// Validate validates UpdateServiceRequest.
func (r *UpdateServiceRequest) Validate() error {
	if r.Name == nil && r.Description == nil && r.Price == nil &&
		r.DurationMinutes == nil && r.Active == nil {
		return errors.New("at least one field must be updated")
	}
	if r.Name != nil && strings.TrimSpace(*r.Name) == "" {
		return errors.New("name cannot be empty")
	}
	if r.Price != nil && *r.Price < 0 {
		return errors.New("price must be non-negative")
	}
	if r.DurationMinutes != nil && *r.DurationMinutes <= 0 {
		return errors.New("duration_minutes must be at least 1")
	}
	return nil
}
