package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salonhub/salonhub-api/internal/core"
	domainauth "github.com/salonhub/salonhub-api/internal/domain/auth"
	"github.com/salonhub/salonhub-api/internal/domain/model"
	apperrors "github.com/salonhub/salonhub-api/internal/errors"
	mocks "github.com/salonhub/salonhub-api/internal/mocks/auth"
)

type employeeFixture struct {
	employees *fakeEmployeeRepo
	companies *fakeCompanyRepo
	users     *fakeUserRepo
	identity  *mocks.MockIdentityProvider
	mailer    *mocks.MockMailer
}

func newEmployeeFixture() *employeeFixture {
	return &employeeFixture{
		employees: &fakeEmployeeRepo{},
		companies: &fakeCompanyRepo{},
		users:     &fakeUserRepo{},
		identity:  mocks.NewMockIdentityProvider(),
		mailer:    mocks.NewMockMailer(),
	}
}

func (f *employeeFixture) service() *EmployeeService {
	return NewEmployeeService(EmployeeServiceOptions{
		Repos: EmployeeServiceRepos{
			Employees: f.employees,
			Companies: f.companies,
			Users:     f.users,
		},
		Providers: EmployeeServiceProviders{
			Identity: f.identity,
			Mailer:   f.mailer,
			LoginURL: "http://localhost:8080/login",
		},
	})
}

func tenantScope() domainauth.Scope {
	return domainauth.Scope{Role: domainauth.RoleAdmin, CompanyID: "company-1"}
}

func inviteReq(sendInvite bool) *model.InviteEmployeeRequest {
	return &model.InviteEmployeeRequest{
		CreateEmployeeRequest: model.CreateEmployeeRequest{
			Name:  "Jo Stylist",
			Email: "jo@example.com",
		},
		SendInvite: sendInvite,
	}
}

func TestEmployeeService_Invite_WithoutLogin(t *testing.T) {
	f := newEmployeeFixture()
	svc := f.service()

	result, err := svc.Invite(context.Background(), tenantScope(), inviteReq(false))

	require.NoError(t, err)
	assert.Equal(t, "Jo Stylist", result.Employee.Name)
	assert.False(t, result.Employee.HasSystemAccess)
	assert.Nil(t, result.Employee.UserID)
	assert.False(t, result.EmailSent)
	assert.Empty(t, f.mailer.Sent)
	assert.Equal(t, 1, f.companies.recountEmployeeCalls)
}

func TestEmployeeService_Invite_WithLogin(t *testing.T) {
	f := newEmployeeFixture()
	var createdUser core.CreateUserParams
	f.users.CreateFunc = func(_ context.Context, params core.CreateUserParams) (*model.User, error) {
		createdUser = params
		return &model.User{ID: "user-9", Name: params.Name, Email: params.Email, Role: params.Role, CompanyID: params.CompanyID}, nil
	}
	svc := f.service()

	result, err := svc.Invite(context.Background(), tenantScope(), inviteReq(true))

	require.NoError(t, err)
	assert.True(t, result.EmailSent)
	assert.Empty(t, result.Warning)

	assert.Equal(t, domainauth.RoleEmployee, createdUser.Role)
	require.NotNil(t, createdUser.CompanyID)
	assert.Equal(t, "company-1", *createdUser.CompanyID)
	assert.True(t, createdUser.IsTemporaryPassword)

	// Credential provisioned with the password that went into the email.
	password, ok := f.identity.Password("user-9")
	require.True(t, ok)
	sent, ok := f.mailer.LastSent()
	require.True(t, ok)
	assert.Equal(t, "jo@example.com", sent.To)
	assert.Contains(t, sent.Text, password)
}

func TestEmployeeService_Invite_CapacityReached(t *testing.T) {
	f := newEmployeeFixture()
	f.companies.GetByIDFunc = func(_ context.Context, _ domainauth.Scope, id string) (*model.Company, error) {
		return &model.Company{ID: id, MaxEmployees: 5, CurrentEmployees: 5}, nil
	}
	svc := f.service()

	_, err := svc.Invite(context.Background(), tenantScope(), inviteReq(false))

	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeValidation, apperrors.GetCode(err))
	details := apperrors.GetDetails(err)
	require.NotNil(t, details)
	assert.Equal(t, 5, details["current"])
	assert.Equal(t, 5, details["limit"])
}

func TestEmployeeService_Invite_UnlimitedCapacity(t *testing.T) {
	f := newEmployeeFixture()
	f.companies.GetByIDFunc = func(_ context.Context, _ domainauth.Scope, id string) (*model.Company, error) {
		return &model.Company{ID: id, MaxEmployees: model.UnlimitedCapacity, CurrentEmployees: 9000}, nil
	}
	svc := f.service()

	_, err := svc.Invite(context.Background(), tenantScope(), inviteReq(false))

	require.NoError(t, err)
}

func TestEmployeeService_Invite_DuplicateEmployeeEmail(t *testing.T) {
	f := newEmployeeFixture()
	f.employees.ExistsByEmailInCompanyFunc = func(_ context.Context, _, _, _ string) (bool, error) {
		return true, nil
	}
	svc := f.service()

	_, err := svc.Invite(context.Background(), tenantScope(), inviteReq(false))

	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeDuplicateEmployeeEmail, apperrors.GetCode(err))
	assert.Contains(t, err.Error(), "already exists in this company")
}

func TestEmployeeService_Invite_UserEmailTaken(t *testing.T) {
	f := newEmployeeFixture()
	f.users.ExistsByEmailFunc = func(_ context.Context, _ string) (bool, error) {
		return true, nil
	}
	svc := f.service()

	_, err := svc.Invite(context.Background(), tenantScope(), inviteReq(true))

	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeUserEmailExists, apperrors.GetCode(err))
	assert.Contains(t, err.Error(), "user account with this email")
}

func TestEmployeeService_Invite_DuplicateCodesDistinct(t *testing.T) {
	f := newEmployeeFixture()
	f.employees.ExistsByEmailInCompanyFunc = func(_ context.Context, _, _, _ string) (bool, error) {
		return true, nil
	}
	svc := f.service()
	_, tenantDup := svc.Invite(context.Background(), tenantScope(), inviteReq(false))

	f = newEmployeeFixture()
	f.users.ExistsByEmailFunc = func(_ context.Context, _ string) (bool, error) {
		return true, nil
	}
	svc = f.service()
	_, globalDup := svc.Invite(context.Background(), tenantScope(), inviteReq(true))

	require.Error(t, tenantDup)
	require.Error(t, globalDup)
	require.NotEqual(t, apperrors.GetCode(tenantDup), apperrors.GetCode(globalDup))
}

func TestEmployeeService_Invite_NoTenant(t *testing.T) {
	f := newEmployeeFixture()
	svc := f.service()

	_, err := svc.Invite(context.Background(), domainauth.Scope{Role: domainauth.RoleAdmin}, inviteReq(false))

	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeForbidden, apperrors.GetCode(err))
}

func TestEmployeeService_Invite_MailFailureIsWarning(t *testing.T) {
	f := newEmployeeFixture()
	f.mailer.SendErr = errors.New("smtp down")
	svc := f.service()

	result, err := svc.Invite(context.Background(), tenantScope(), inviteReq(true))

	require.NoError(t, err)
	assert.False(t, result.EmailSent)
	assert.NotEmpty(t, result.Warning)
	assert.NotNil(t, result.Employee)
}

func TestEmployeeService_Invite_NoMailerConfigured(t *testing.T) {
	f := newEmployeeFixture()
	svc := NewEmployeeService(EmployeeServiceOptions{
		Repos: EmployeeServiceRepos{
			Employees: f.employees,
			Companies: f.companies,
			Users:     f.users,
		},
		Providers: EmployeeServiceProviders{Identity: f.identity},
	})

	result, err := svc.Invite(context.Background(), tenantScope(), inviteReq(true))

	require.NoError(t, err)
	assert.False(t, result.EmailSent)
	assert.Contains(t, result.Warning, "not configured")
}

func TestEmployeeService_ToggleSystemAccess_GrantIdempotent(t *testing.T) {
	f := newEmployeeFixture()
	f.employees.GetByIDFunc = func(_ context.Context, _ domainauth.Scope, id string) (*model.EmployeeWithUser, error) {
		return &model.EmployeeWithUser{Employee: model.Employee{
			ID: id, CompanyID: "company-1", UserID: strPtr("user-7"), HasSystemAccess: true,
		}}, nil
	}
	svc := f.service()

	result, err := svc.ToggleSystemAccess(context.Background(), tenantScope(), "employee-1", true)

	require.NoError(t, err)
	assert.True(t, result.Employee.HasSystemAccess)
	assert.False(t, result.EmailSent)
	assert.Empty(t, f.mailer.Sent)
}

func TestEmployeeService_ToggleSystemAccess_Grant(t *testing.T) {
	f := newEmployeeFixture()
	f.employees.GetByIDFunc = func(_ context.Context, _ domainauth.Scope, id string) (*model.EmployeeWithUser, error) {
		return &model.EmployeeWithUser{Employee: model.Employee{
			ID: id, CompanyID: "company-1", Name: "Jo Stylist", Email: "jo@example.com",
		}}, nil
	}
	var accessParams core.SetSystemAccessParams
	f.employees.SetSystemAccessFunc = func(_ context.Context, params core.SetSystemAccessParams) (*model.Employee, error) {
		accessParams = params
		return &model.Employee{
			ID: params.ID, CompanyID: "company-1", Name: "Jo Stylist", Email: "jo@example.com",
			UserID: params.UserID, HasSystemAccess: params.HasAccess,
		}, nil
	}
	svc := f.service()

	result, err := svc.ToggleSystemAccess(context.Background(), tenantScope(), "employee-1", true)

	require.NoError(t, err)
	assert.True(t, accessParams.HasAccess)
	require.NotNil(t, accessParams.UserID)
	assert.True(t, result.EmailSent)

	sent, ok := f.mailer.LastSent()
	require.True(t, ok)
	password, _ := f.identity.Password(*accessParams.UserID)
	assert.Contains(t, sent.Text, password)
}

func TestEmployeeService_ToggleSystemAccess_Revoke(t *testing.T) {
	f := newEmployeeFixture()
	f.employees.GetByIDFunc = func(_ context.Context, _ domainauth.Scope, id string) (*model.EmployeeWithUser, error) {
		return &model.EmployeeWithUser{Employee: model.Employee{
			ID: id, CompanyID: "company-1", Name: "Jo Stylist", Email: "jo@example.com",
			UserID: strPtr("user-7"), HasSystemAccess: true,
		}}, nil
	}
	var accessParams core.SetSystemAccessParams
	f.employees.SetSystemAccessFunc = func(_ context.Context, params core.SetSystemAccessParams) (*model.Employee, error) {
		accessParams = params
		return &model.Employee{ID: params.ID, CompanyID: "company-1", Name: "Jo Stylist", Email: "jo@example.com"}, nil
	}
	svc := f.service()

	result, err := svc.ToggleSystemAccess(context.Background(), tenantScope(), "employee-1", false)

	require.NoError(t, err)
	assert.Nil(t, accessParams.UserID)
	assert.False(t, accessParams.HasAccess)
	assert.Equal(t, []string{"user-7"}, f.users.demoteCalls)
	assert.True(t, result.EmailSent)
}

func TestEmployeeService_ToggleSystemAccess_RevokeIdempotent(t *testing.T) {
	f := newEmployeeFixture()
	f.employees.GetByIDFunc = func(_ context.Context, _ domainauth.Scope, id string) (*model.EmployeeWithUser, error) {
		return &model.EmployeeWithUser{Employee: model.Employee{ID: id, CompanyID: "company-1"}}, nil
	}
	svc := f.service()

	result, err := svc.ToggleSystemAccess(context.Background(), tenantScope(), "employee-1", false)

	require.NoError(t, err)
	assert.False(t, result.Employee.HasSystemAccess)
	assert.Empty(t, f.users.demoteCalls)
	assert.Empty(t, f.mailer.Sent)
}

func TestEmployeeService_ResendInvite(t *testing.T) {
	f := newEmployeeFixture()
	require.NoError(t, f.identity.CreateCredential(context.Background(), "user-7", "OldPass123!"))
	f.employees.GetByIDFunc = func(_ context.Context, _ domainauth.Scope, id string) (*model.EmployeeWithUser, error) {
		return &model.EmployeeWithUser{Employee: model.Employee{
			ID: id, CompanyID: "company-1", Name: "Jo Stylist", Email: "jo@example.com",
			UserID: strPtr("user-7"), HasSystemAccess: true,
		}}, nil
	}
	var tempFlag bool
	f.users.SetTemporaryPasswordFunc = func(_ context.Context, _ string, temporary bool) error {
		tempFlag = temporary
		return nil
	}
	svc := f.service()

	_, err := svc.ResendInvite(context.Background(), tenantScope(), "employee-1")

	require.NoError(t, err)
	assert.True(t, tempFlag)

	password, ok := f.identity.Password("user-7")
	require.True(t, ok)
	assert.NotEqual(t, "OldPass123!", password)
	sent, mailed := f.mailer.LastSent()
	require.True(t, mailed)
	assert.Contains(t, sent.Text, password)
}

func TestEmployeeService_ResendInvite_NoAccess(t *testing.T) {
	f := newEmployeeFixture()
	f.employees.GetByIDFunc = func(_ context.Context, _ domainauth.Scope, id string) (*model.EmployeeWithUser, error) {
		return &model.EmployeeWithUser{Employee: model.Employee{ID: id, CompanyID: "company-1"}}, nil
	}
	svc := f.service()

	_, err := svc.ResendInvite(context.Background(), tenantScope(), "employee-1")

	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeValidation, apperrors.GetCode(err))
}

func TestEmployeeService_ResendInvite_MailFailureIsHardError(t *testing.T) {
	f := newEmployeeFixture()
	require.NoError(t, f.identity.CreateCredential(context.Background(), "user-7", "OldPass123!"))
	f.employees.GetByIDFunc = func(_ context.Context, _ domainauth.Scope, id string) (*model.EmployeeWithUser, error) {
		return &model.EmployeeWithUser{Employee: model.Employee{
			ID: id, CompanyID: "company-1", UserID: strPtr("user-7"), HasSystemAccess: true,
		}}, nil
	}
	f.mailer.SendErr = errors.New("smtp down")
	svc := f.service()

	_, err := svc.ResendInvite(context.Background(), tenantScope(), "employee-1")

	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeUpstream, apperrors.GetCode(err))
}

func TestEmployeeService_Delete_RevokesAccess(t *testing.T) {
	f := newEmployeeFixture()
	f.employees.SoftDeleteFunc = func(_ context.Context, _ domainauth.Scope, id string) (*model.Employee, error) {
		return &model.Employee{
			ID: id, CompanyID: "company-1", UserID: strPtr("user-7"), HasSystemAccess: true,
		}, nil
	}
	var accessParams core.SetSystemAccessParams
	f.employees.SetSystemAccessFunc = func(_ context.Context, params core.SetSystemAccessParams) (*model.Employee, error) {
		accessParams = params
		return &model.Employee{ID: params.ID, CompanyID: "company-1"}, nil
	}
	svc := f.service()

	err := svc.Delete(context.Background(), tenantScope(), "employee-1")

	require.NoError(t, err)
	assert.Nil(t, accessParams.UserID)
	assert.False(t, accessParams.HasAccess)
	assert.Equal(t, []string{"user-7"}, f.users.demoteCalls)
	assert.Equal(t, 1, f.companies.recountEmployeeCalls)
}

func TestEmployeeService_Delete_WithoutAccess(t *testing.T) {
	f := newEmployeeFixture()
	f.employees.SoftDeleteFunc = func(_ context.Context, _ domainauth.Scope, id string) (*model.Employee, error) {
		return &model.Employee{ID: id, CompanyID: "company-1"}, nil
	}
	svc := f.service()

	err := svc.Delete(context.Background(), tenantScope(), "employee-1")

	require.NoError(t, err)
	assert.Empty(t, f.users.demoteCalls)
	assert.Equal(t, 1, f.companies.recountEmployeeCalls)
}

func TestEmployeeService_Update_StatusChangeRecounts(t *testing.T) {
	f := newEmployeeFixture()
	svc := f.service()

	status := model.EmployeeStatusOnLeave
	_, err := svc.Update(context.Background(), tenantScope(), "employee-1", model.UpdateEmployeeRequest{Status: &status})

	require.NoError(t, err)
	assert.Equal(t, 1, f.companies.recountEmployeeCalls)

	name := "New Name"
	_, err = svc.Update(context.Background(), tenantScope(), "employee-1", model.UpdateEmployeeRequest{Name: &name})

	require.NoError(t, err)
	assert.Equal(t, 1, f.companies.recountEmployeeCalls)
}
