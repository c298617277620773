package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompanyCanAddEmployee(t *testing.T) {
	tests := []struct {
		name    string
		company Company
		wantOK  bool
	}{
		{
			name:    "below limit",
			company: Company{MaxEmployees: 5, CurrentEmployees: 4},
			wantOK:  true,
		},
		{
			name:    "at limit",
			company: Company{MaxEmployees: 5, CurrentEmployees: 5},
			wantOK:  false,
		},
		{
			name:    "over limit after plan downgrade",
			company: Company{MaxEmployees: 3, CurrentEmployees: 5},
			wantOK:  false,
		},
		{
			name:    "unlimited plan never rejects",
			company: Company{MaxEmployees: UnlimitedCapacity, CurrentEmployees: 9000},
			wantOK:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, current, limit := tt.company.CanAddEmployee()
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.company.CurrentEmployees, current)
			assert.Equal(t, tt.company.MaxEmployees, limit)
		})
	}
}

func TestCompanyCanAddBranch(t *testing.T) {
	c := Company{MaxBranches: 1, CurrentBranches: 1}
	ok, current, limit := c.CanAddBranch()
	assert.False(t, ok)
	assert.Equal(t, 1, current)
	assert.Equal(t, 1, limit)

	c.MaxBranches = UnlimitedCapacity
	ok, _, _ = c.CanAddBranch()
	assert.True(t, ok)
}

func TestCreateCompanyRequestValidate(t *testing.T) {
	bad := -2

	assert.NoError(t, (&CreateCompanyRequest{Name: "Barbearia Central", Email: "contato@central.com"}).Validate())
	assert.ErrorContains(t, (&CreateCompanyRequest{Email: "a@b.com"}).Validate(), "name is required")
	assert.ErrorContains(t, (&CreateCompanyRequest{Name: "X", Email: "nope"}).Validate(), "valid address")
	assert.ErrorContains(t,
		(&CreateCompanyRequest{Name: "X", Email: "a@b.com", MaxEmployees: &bad}).Validate(),
		"max_employees")
}

func TestUpdateCompanyRequestValidate(t *testing.T) {
	name := "Renamed"
	assert.ErrorContains(t, (&UpdateCompanyRequest{}).Validate(), "at least one field")
	assert.NoError(t, (&UpdateCompanyRequest{Name: &name}).Validate())
}
