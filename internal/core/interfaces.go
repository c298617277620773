package core

import (
	"context"

	"github.com/salonhub/salonhub-api/internal/domain/auth"
	"github.com/salonhub/salonhub-api/internal/domain/model"
)

// This file contains repository interface definitions (ports in hexagonal
// architecture). Service implementations depend on these interfaces, not on
// concrete repositories.
//
// Tenant scoping convention: methods taking an auth.Scope apply
// "company_id = scope.CompanyID" to both lookups and mutations in the same
// statement, unless the scope is elevated (SUPER_ADMIN). A row outside the
// caller's tenant is reported as not found, never as forbidden, so
// existence does not leak across tenants.

// CompanyRepository defines data operations for companies (tenants).
type CompanyRepository interface {
	Create(ctx context.Context, req *model.CreateCompanyRequest) (*model.Company, error)
	GetByID(ctx context.Context, scope auth.Scope, id string) (*model.Company, error)
	GetWithBranches(ctx context.Context, scope auth.Scope, id string) (*model.CompanyWithBranches, error)
	Update(ctx context.Context, scope auth.Scope, id string, req model.UpdateCompanyRequest) (*model.Company, error)
	List(ctx context.Context, limit, offset int) ([]*model.Company, error)

	// RecountEmployees recomputes current_employees as the count of
	// non-INACTIVE employees and persists it. A full recount, not an
	// increment, so the counter self-heals from drift.
	RecountEmployees(ctx context.Context, companyID string) (int, error)
	// RecountBranches recomputes current_branches as the count of active
	// branches and persists it.
	RecountBranches(ctx context.Context, companyID string) (int, error)
}

// EmployeeListOptions controls paging and filtering for listing employees.
type EmployeeListOptions struct {
	Limit    int
	Offset   int
	BranchID *string
}

// CreateEmployeeParams groups parameters for EmployeeRepository.Create.
type CreateEmployeeParams struct {
	CompanyID string
	UserID    *string
	Req       *model.CreateEmployeeRequest
}

// SetSystemAccessParams groups parameters for EmployeeRepository.SetSystemAccess.
type SetSystemAccessParams struct {
	Scope     auth.Scope
	ID        string
	UserID    *string
	HasAccess bool
}

// EmployeeRepository defines data operations for employees.
type EmployeeRepository interface {
	Create(ctx context.Context, params CreateEmployeeParams) (*model.Employee, error)
	GetByID(ctx context.Context, scope auth.Scope, id string) (*model.EmployeeWithUser, error)
	List(ctx context.Context, scope auth.Scope, opts EmployeeListOptions) ([]*model.EmployeeWithUser, error)
	Update(ctx context.Context, scope auth.Scope, id string, req model.UpdateEmployeeRequest) (*model.Employee, error)
	SetSystemAccess(ctx context.Context, params SetSystemAccessParams) (*model.Employee, error)
	// SoftDelete marks the employee INACTIVE and returns the prior record.
	// Employees are never physically removed.
	SoftDelete(ctx context.Context, scope auth.Scope, id string) (*model.Employee, error)
	// ExistsByEmailInCompany reports whether another employee in the tenant
	// already uses the email. excludeID may be empty.
	ExistsByEmailInCompany(ctx context.Context, companyID, email, excludeID string) (bool, error)
}

// CreateUserParams groups parameters for UserRepository.Create.
type CreateUserParams struct {
	Name                string
	Email               string
	Role                auth.Role
	CompanyID           *string
	IsTemporaryPassword bool
}

// UserRepository defines data operations for identity records.
type UserRepository interface {
	Create(ctx context.Context, params CreateUserParams) (*model.User, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	// Demote downgrades the user to the lowest role tier and clears the
	// tenant binding. The record is retained for audit history.
	Demote(ctx context.Context, id string) (*model.User, error)
	SetTemporaryPassword(ctx context.Context, id string, temporary bool) error
}

// BranchRepository defines data operations for branches.
type BranchRepository interface {
	Create(ctx context.Context, companyID string, req *model.CreateBranchRequest) (*model.Branch, error)
	GetByID(ctx context.Context, scope auth.Scope, id string) (*model.Branch, error)
	List(ctx context.Context, scope auth.Scope, limit, offset int) ([]*model.Branch, error)
	Update(ctx context.Context, scope auth.Scope, id string, req model.UpdateBranchRequest) (*model.Branch, error)
	// Deactivate soft-disables the branch (active=false).
	Deactivate(ctx context.Context, scope auth.Scope, id string) (bool, error)
}

// ServiceRepository defines data operations for catalog services.
type ServiceRepository interface {
	Create(ctx context.Context, companyID string, req *model.CreateServiceRequest) (*model.Service, error)
	GetByID(ctx context.Context, scope auth.Scope, id string) (*model.Service, error)
	List(ctx context.Context, scope auth.Scope, limit, offset int) ([]*model.Service, error)
	Update(ctx context.Context, scope auth.Scope, id string, req model.UpdateServiceRequest) (*model.Service, error)
	Delete(ctx context.Context, scope auth.Scope, id string) (bool, error)
}
