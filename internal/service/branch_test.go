package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/salonhub/salonhub-api/internal/domain/auth"
	"github.com/salonhub/salonhub-api/internal/domain/model"
	apperrors "github.com/salonhub/salonhub-api/internal/errors"
)

func newBranchService(branches *fakeBranchRepo, companies *fakeCompanyRepo) *BranchService {
	return NewBranchService(BranchServiceOptions{
		Branches:  branches,
		Companies: companies,
	})
}

func TestBranchService_Create(t *testing.T) {
	branches := &fakeBranchRepo{}
	companies := &fakeCompanyRepo{}
	svc := newBranchService(branches, companies)

	branch, err := svc.Create(context.Background(), tenantScope(), &model.CreateBranchRequest{Name: "Downtown"})

	require.NoError(t, err)
	assert.Equal(t, "company-1", branch.CompanyID)
	assert.Equal(t, 1, companies.recountBranchCalls)
}

func TestBranchService_Create_NoTenant(t *testing.T) {
	svc := newBranchService(&fakeBranchRepo{}, &fakeCompanyRepo{})

	_, err := svc.Create(context.Background(), domainauth.Scope{Role: domainauth.RoleAdmin}, &model.CreateBranchRequest{Name: "Downtown"})

	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeForbidden, apperrors.GetCode(err))
}

func TestBranchService_Create_CapacityReached(t *testing.T) {
	companies := &fakeCompanyRepo{
		GetByIDFunc: func(_ context.Context, _ domainauth.Scope, id string) (*model.Company, error) {
			return &model.Company{ID: id, MaxBranches: 2, CurrentBranches: 2}, nil
		},
	}
	svc := newBranchService(&fakeBranchRepo{}, companies)

	_, err := svc.Create(context.Background(), tenantScope(), &model.CreateBranchRequest{Name: "Downtown"})

	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeValidation, apperrors.GetCode(err))
	details := apperrors.GetDetails(err)
	require.NotNil(t, details)
	assert.Equal(t, 2, details["current"])
	assert.Equal(t, 2, details["limit"])
}

func TestBranchService_Update_ActiveChangeRecounts(t *testing.T) {
	companies := &fakeCompanyRepo{}
	svc := newBranchService(&fakeBranchRepo{}, companies)

	active := false
	_, err := svc.Update(context.Background(), tenantScope(), "branch-1", model.UpdateBranchRequest{Active: &active})
	require.NoError(t, err)
	assert.Equal(t, 1, companies.recountBranchCalls)

	name := "Uptown"
	_, err = svc.Update(context.Background(), tenantScope(), "branch-1", model.UpdateBranchRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, 1, companies.recountBranchCalls)
}

func TestBranchService_Deactivate_NotFound(t *testing.T) {
	branches := &fakeBranchRepo{
		DeactivateFunc: func(context.Context, domainauth.Scope, string) (bool, error) {
			return false, nil
		},
	}
	svc := newBranchService(branches, &fakeCompanyRepo{})

	err := svc.Deactivate(context.Background(), tenantScope(), "missing")

	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeNotFound, apperrors.GetCode(err))
}

func TestBranchService_Deactivate(t *testing.T) {
	companies := &fakeCompanyRepo{}
	svc := newBranchService(&fakeBranchRepo{}, companies)

	require.NoError(t, svc.Deactivate(context.Background(), tenantScope(), "branch-1"))
	assert.Equal(t, 1, companies.recountBranchCalls)
}
