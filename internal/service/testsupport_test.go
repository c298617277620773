package service

// Function-style repository doubles for unit tests. Each method delegates to
// the corresponding Func field when set and otherwise returns a zero value,
// so tests only wire the calls they care about.

import (
	"context"

	"github.com/salonhub/salonhub-api/internal/core"
	domainauth "github.com/salonhub/salonhub-api/internal/domain/auth"
	"github.com/salonhub/salonhub-api/internal/domain/model"
	apperrors "github.com/salonhub/salonhub-api/internal/errors"
)

type fakeCompanyRepo struct {
	CreateFunc           func(context.Context, *model.CreateCompanyRequest) (*model.Company, error)
	GetByIDFunc          func(context.Context, domainauth.Scope, string) (*model.Company, error)
	GetWithBranchesFunc  func(context.Context, domainauth.Scope, string) (*model.CompanyWithBranches, error)
	UpdateFunc           func(context.Context, domainauth.Scope, string, model.UpdateCompanyRequest) (*model.Company, error)
	ListFunc             func(context.Context, int, int) ([]*model.Company, error)
	RecountEmployeesFunc func(context.Context, string) (int, error)
	RecountBranchesFunc  func(context.Context, string) (int, error)

	recountEmployeeCalls int
	recountBranchCalls   int
}

var _ core.CompanyRepository = (*fakeCompanyRepo)(nil)

func (f *fakeCompanyRepo) Create(ctx context.Context, req *model.CreateCompanyRequest) (*model.Company, error) {
	if f.CreateFunc != nil {
		return f.CreateFunc(ctx, req)
	}
	return &model.Company{ID: "company-1", Name: req.Name}, nil
}

func (f *fakeCompanyRepo) GetByID(ctx context.Context, scope domainauth.Scope, id string) (*model.Company, error) {
	if f.GetByIDFunc != nil {
		return f.GetByIDFunc(ctx, scope, id)
	}
	return &model.Company{ID: id, Name: "Acme Salon", MaxBranches: 3, MaxEmployees: 10}, nil
}

func (f *fakeCompanyRepo) GetWithBranches(ctx context.Context, scope domainauth.Scope, id string) (*model.CompanyWithBranches, error) {
	if f.GetWithBranchesFunc != nil {
		return f.GetWithBranchesFunc(ctx, scope, id)
	}
	return &model.CompanyWithBranches{Company: model.Company{ID: id}}, nil
}

func (f *fakeCompanyRepo) Update(ctx context.Context, scope domainauth.Scope, id string, req model.UpdateCompanyRequest) (*model.Company, error) {
	if f.UpdateFunc != nil {
		return f.UpdateFunc(ctx, scope, id, req)
	}
	return &model.Company{ID: id}, nil
}

func (f *fakeCompanyRepo) List(ctx context.Context, limit, offset int) ([]*model.Company, error) {
	if f.ListFunc != nil {
		return f.ListFunc(ctx, limit, offset)
	}
	return nil, nil
}

func (f *fakeCompanyRepo) RecountEmployees(ctx context.Context, companyID string) (int, error) {
	f.recountEmployeeCalls++
	if f.RecountEmployeesFunc != nil {
		return f.RecountEmployeesFunc(ctx, companyID)
	}
	return 0, nil
}

func (f *fakeCompanyRepo) RecountBranches(ctx context.Context, companyID string) (int, error) {
	f.recountBranchCalls++
	if f.RecountBranchesFunc != nil {
		return f.RecountBranchesFunc(ctx, companyID)
	}
	return 0, nil
}

type fakeEmployeeRepo struct {
	CreateFunc                 func(context.Context, core.CreateEmployeeParams) (*model.Employee, error)
	GetByIDFunc                func(context.Context, domainauth.Scope, string) (*model.EmployeeWithUser, error)
	ListFunc                   func(context.Context, domainauth.Scope, core.EmployeeListOptions) ([]*model.EmployeeWithUser, error)
	UpdateFunc                 func(context.Context, domainauth.Scope, string, model.UpdateEmployeeRequest) (*model.Employee, error)
	SetSystemAccessFunc        func(context.Context, core.SetSystemAccessParams) (*model.Employee, error)
	SoftDeleteFunc             func(context.Context, domainauth.Scope, string) (*model.Employee, error)
	ExistsByEmailInCompanyFunc func(context.Context, string, string, string) (bool, error)
}

var _ core.EmployeeRepository = (*fakeEmployeeRepo)(nil)

func (f *fakeEmployeeRepo) Create(ctx context.Context, params core.CreateEmployeeParams) (*model.Employee, error) {
	if f.CreateFunc != nil {
		return f.CreateFunc(ctx, params)
	}
	return &model.Employee{
		ID:              "employee-1",
		CompanyID:       params.CompanyID,
		UserID:          params.UserID,
		Name:            params.Req.Name,
		Email:           model.NormalizeEmail(params.Req.Email),
		Status:          model.EmployeeStatusActive,
		HasSystemAccess: params.UserID != nil,
	}, nil
}

func (f *fakeEmployeeRepo) GetByID(ctx context.Context, scope domainauth.Scope, id string) (*model.EmployeeWithUser, error) {
	if f.GetByIDFunc != nil {
		return f.GetByIDFunc(ctx, scope, id)
	}
	return nil, apperrors.NotFound("employee not found")
}

func (f *fakeEmployeeRepo) List(ctx context.Context, scope domainauth.Scope, opts core.EmployeeListOptions) ([]*model.EmployeeWithUser, error) {
	if f.ListFunc != nil {
		return f.ListFunc(ctx, scope, opts)
	}
	return nil, nil
}

func (f *fakeEmployeeRepo) Update(ctx context.Context, scope domainauth.Scope, id string, req model.UpdateEmployeeRequest) (*model.Employee, error) {
	if f.UpdateFunc != nil {
		return f.UpdateFunc(ctx, scope, id, req)
	}
	return &model.Employee{ID: id, CompanyID: scope.CompanyID}, nil
}

func (f *fakeEmployeeRepo) SetSystemAccess(ctx context.Context, params core.SetSystemAccessParams) (*model.Employee, error) {
	if f.SetSystemAccessFunc != nil {
		return f.SetSystemAccessFunc(ctx, params)
	}
	return &model.Employee{
		ID:              params.ID,
		CompanyID:       params.Scope.CompanyID,
		UserID:          params.UserID,
		HasSystemAccess: params.HasAccess,
	}, nil
}

func (f *fakeEmployeeRepo) SoftDelete(ctx context.Context, scope domainauth.Scope, id string) (*model.Employee, error) {
	if f.SoftDeleteFunc != nil {
		return f.SoftDeleteFunc(ctx, scope, id)
	}
	return nil, apperrors.NotFound("employee not found")
}

func (f *fakeEmployeeRepo) ExistsByEmailInCompany(ctx context.Context, companyID, email, excludeID string) (bool, error) {
	if f.ExistsByEmailInCompanyFunc != nil {
		return f.ExistsByEmailInCompanyFunc(ctx, companyID, email, excludeID)
	}
	return false, nil
}

type fakeUserRepo struct {
	CreateFunc               func(context.Context, core.CreateUserParams) (*model.User, error)
	GetByIDFunc              func(context.Context, string) (*model.User, error)
	GetByEmailFunc           func(context.Context, string) (*model.User, error)
	ExistsByEmailFunc        func(context.Context, string) (bool, error)
	DemoteFunc               func(context.Context, string) (*model.User, error)
	SetTemporaryPasswordFunc func(context.Context, string, bool) error

	demoteCalls []string
}

var _ core.UserRepository = (*fakeUserRepo)(nil)

func (f *fakeUserRepo) Create(ctx context.Context, params core.CreateUserParams) (*model.User, error) {
	if f.CreateFunc != nil {
		return f.CreateFunc(ctx, params)
	}
	return &model.User{
		ID:                  "user-1",
		Name:                params.Name,
		Email:               model.NormalizeEmail(params.Email),
		Role:                params.Role,
		CompanyID:           params.CompanyID,
		IsTemporaryPassword: params.IsTemporaryPassword,
	}, nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	if f.GetByIDFunc != nil {
		return f.GetByIDFunc(ctx, id)
	}
	return nil, apperrors.NotFound("user not found")
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	if f.GetByEmailFunc != nil {
		return f.GetByEmailFunc(ctx, email)
	}
	return nil, apperrors.NotFound("user not found")
}

func (f *fakeUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if f.ExistsByEmailFunc != nil {
		return f.ExistsByEmailFunc(ctx, email)
	}
	return false, nil
}

func (f *fakeUserRepo) Demote(ctx context.Context, id string) (*model.User, error) {
	f.demoteCalls = append(f.demoteCalls, id)
	if f.DemoteFunc != nil {
		return f.DemoteFunc(ctx, id)
	}
	return &model.User{ID: id, Role: domainauth.RoleUser}, nil
}

func (f *fakeUserRepo) SetTemporaryPassword(ctx context.Context, id string, temporary bool) error {
	if f.SetTemporaryPasswordFunc != nil {
		return f.SetTemporaryPasswordFunc(ctx, id, temporary)
	}
	return nil
}

type fakeBranchRepo struct {
	CreateFunc     func(context.Context, string, *model.CreateBranchRequest) (*model.Branch, error)
	GetByIDFunc    func(context.Context, domainauth.Scope, string) (*model.Branch, error)
	ListFunc       func(context.Context, domainauth.Scope, int, int) ([]*model.Branch, error)
	UpdateFunc     func(context.Context, domainauth.Scope, string, model.UpdateBranchRequest) (*model.Branch, error)
	DeactivateFunc func(context.Context, domainauth.Scope, string) (bool, error)
}

var _ core.BranchRepository = (*fakeBranchRepo)(nil)

func (f *fakeBranchRepo) Create(ctx context.Context, companyID string, req *model.CreateBranchRequest) (*model.Branch, error) {
	if f.CreateFunc != nil {
		return f.CreateFunc(ctx, companyID, req)
	}
	return &model.Branch{ID: "branch-1", CompanyID: companyID, Name: req.Name, Active: true}, nil
}

func (f *fakeBranchRepo) GetByID(ctx context.Context, scope domainauth.Scope, id string) (*model.Branch, error) {
	if f.GetByIDFunc != nil {
		return f.GetByIDFunc(ctx, scope, id)
	}
	return &model.Branch{ID: id, CompanyID: scope.CompanyID, Active: true}, nil
}

func (f *fakeBranchRepo) List(ctx context.Context, scope domainauth.Scope, limit, offset int) ([]*model.Branch, error) {
	if f.ListFunc != nil {
		return f.ListFunc(ctx, scope, limit, offset)
	}
	return nil, nil
}

func (f *fakeBranchRepo) Update(ctx context.Context, scope domainauth.Scope, id string, req model.UpdateBranchRequest) (*model.Branch, error) {
	if f.UpdateFunc != nil {
		return f.UpdateFunc(ctx, scope, id, req)
	}
	return &model.Branch{ID: id, CompanyID: scope.CompanyID}, nil
}

func (f *fakeBranchRepo) Deactivate(ctx context.Context, scope domainauth.Scope, id string) (bool, error) {
	if f.DeactivateFunc != nil {
		return f.DeactivateFunc(ctx, scope, id)
	}
	return true, nil
}

func strPtr(s string) *string { return &s }
