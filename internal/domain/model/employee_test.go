package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateEmployeeRequestValidate(t *testing.T) {
	rate := 30.0
	badRate := 120.0
	badStatus := EmployeeStatus("FIRED")

	tests := []struct {
		name    string
		req     CreateEmployeeRequest
		wantErr string
	}{
		{
			name: "valid",
			req:  CreateEmployeeRequest{Name: "Ana Souza", Email: "ana@example.com", CommissionRate: &rate},
		},
		{
			name:    "missing name",
			req:     CreateEmployeeRequest{Email: "ana@example.com"},
			wantErr: "name is required",
		},
		{
			name:    "missing email",
			req:     CreateEmployeeRequest{Name: "Ana"},
			wantErr: "email is required",
		},
		{
			name:    "malformed email",
			req:     CreateEmployeeRequest{Name: "Ana", Email: "not-an-email"},
			wantErr: "valid address",
		},
		{
			name:    "commission out of range",
			req:     CreateEmployeeRequest{Name: "Ana", Email: "ana@example.com", CommissionRate: &badRate},
			wantErr: "between 0 and 100",
		},
		{
			name:    "unknown status",
			req:     CreateEmployeeRequest{Name: "Ana", Email: "ana@example.com", Status: &badStatus},
			wantErr: "must be one of",
		},
		{
			name:    "empty specialty entry",
			req:     CreateEmployeeRequest{Name: "Ana", Email: "ana@example.com", Specialties: []string{"cortes", " "}},
			wantErr: "cannot contain empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestCreateEmployeeRequestApplyDefaults(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	req := CreateEmployeeRequest{Name: "Ana", Email: "ana@example.com"}
	req.ApplyDefaults(now)

	require.NotNil(t, req.CommissionRate)
	assert.InDelta(t, defaultCommissionRate, *req.CommissionRate, 0.001)
	require.NotNil(t, req.Status)
	assert.Equal(t, EmployeeStatusActive, *req.Status)
	require.NotNil(t, req.StartDate)
	assert.Equal(t, now, *req.StartDate)
}

func TestCreateEmployeeRequestApplyDefaultsKeepsExplicitValues(t *testing.T) {
	rate := 70.0
	status := EmployeeStatusOnLeave
	start := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	req := CreateEmployeeRequest{
		Name: "Ana", Email: "ana@example.com",
		CommissionRate: &rate, Status: &status, StartDate: &start,
	}
	req.ApplyDefaults(time.Now())

	assert.InDelta(t, 70.0, *req.CommissionRate, 0.001)
	assert.Equal(t, EmployeeStatusOnLeave, *req.Status)
	assert.Equal(t, start, *req.StartDate)
}

func TestUpdateEmployeeRequestValidate(t *testing.T) {
	empty := ""
	name := "Novo Nome"

	assert.ErrorContains(t, (&UpdateEmployeeRequest{}).Validate(), "at least one field")
	assert.ErrorContains(t, (&UpdateEmployeeRequest{Name: &empty}).Validate(), "cannot be empty")
	assert.NoError(t, (&UpdateEmployeeRequest{Name: &name}).Validate())
}

func TestEmployeeStatusValid(t *testing.T) {
	assert.True(t, EmployeeStatusActive.Valid())
	assert.True(t, EmployeeStatusInactive.Valid())
	assert.True(t, EmployeeStatusOnLeave.Valid())
	assert.False(t, EmployeeStatus("RETIRED").Valid())
}
