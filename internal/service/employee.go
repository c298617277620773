package service

import (
	"context"
	"log/slog"

	"github.com/salonhub/salonhub-api/internal/core"
	domainauth "github.com/salonhub/salonhub-api/internal/domain/auth"
	"github.com/salonhub/salonhub-api/internal/domain/model"
	apperrors "github.com/salonhub/salonhub-api/internal/errors"
	"github.com/salonhub/salonhub-api/internal/ports"
)

// EmployeeServiceRepos groups the repositories EmployeeService coordinates.
type EmployeeServiceRepos struct {
	Employees core.EmployeeRepository
	Companies core.CompanyRepository
	Users     core.UserRepository
}

// EmployeeServiceProviders groups the external collaborators used for
// provisioning logins and notifying employees.
type EmployeeServiceProviders struct {
	Identity ports.IdentityProvider
	Mailer   ports.Mailer
	LoginURL string
}

// EmployeeServiceOptions groups dependencies for EmployeeService.
type EmployeeServiceOptions struct {
	Repos     EmployeeServiceRepos
	Providers EmployeeServiceProviders
	Logger    *slog.Logger
}

// EmployeeService orchestrates employee lifecycle: creation, invite
// provisioning, system-access toggling, and soft deletion. Email dispatch on
// provisioning paths is best-effort; a created record is never rolled back
// because a notification failed.
type EmployeeService struct {
	employees core.EmployeeRepository
	companies core.CompanyRepository
	users     core.UserRepository
	identity  ports.IdentityProvider
	mailer    ports.Mailer
	loginURL  string
	logger    *slog.Logger
}

// NewEmployeeService constructs a new EmployeeService.
func NewEmployeeService(opts EmployeeServiceOptions) *EmployeeService {
	if opts.Repos.Employees == nil {
		panic("EmployeeRepository is required")
	}
	if opts.Repos.Companies == nil {
		panic("CompanyRepository is required")
	}
	if opts.Repos.Users == nil {
		panic("UserRepository is required")
	}
	if opts.Providers.Identity == nil {
		panic("IdentityProvider is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &EmployeeService{
		employees: opts.Repos.Employees,
		companies: opts.Repos.Companies,
		users:     opts.Repos.Users,
		identity:  opts.Providers.Identity,
		mailer:    opts.Providers.Mailer,
		loginURL:  opts.Providers.LoginURL,
		logger:    logger,
	}
}

// InviteResult reports the outcome of an invite. Warning is set when the
// employee was created but the notification email could not be delivered.
type InviteResult struct {
	Employee  *model.EmployeeWithUser `json:"employee"`
	EmailSent bool                    `json:"email_sent"`
	Warning   string                  `json:"warning,omitempty"`
}

// Invite creates an employee and, when requested, provisions a linked login
// with a temporary credential and sends the invite email.
//
// Preconditions are checked in a fixed order so the caller always sees the
// most actionable failure first: tenant capacity, then duplicate employee
// email inside the tenant, then a platform-wide user email collision.
func (s *EmployeeService) Invite(
	ctx context.Context,
	scope domainauth.Scope,
	req *model.InviteEmployeeRequest,
) (*InviteResult, error) {
	if req == nil {
		return nil, apperrors.Validation("invite request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}
	if scope.CompanyID == "" {
		return nil, apperrors.Forbidden("no company associated with this account")
	}

	company, err := s.companies.GetByID(ctx, scope, scope.CompanyID)
	if err != nil {
		return nil, err
	}
	if ok, current, limit := company.CanAddEmployee(); !ok {
		return nil, apperrors.Validation("employee limit reached for the current plan").
			WithDetails(map[string]any{"current": current, "limit": limit})
	}

	email := model.NormalizeEmail(req.Email)
	dup, err := s.employees.ExistsByEmailInCompany(ctx, scope.CompanyID, email, "")
	if err != nil {
		return nil, err
	}
	if dup {
		return nil, apperrors.DuplicateEmployeeEmail("an employee with this email already exists in this company")
	}

	var userID *string
	var tempPassword string
	if req.SendInvite {
		taken, existsErr := s.users.ExistsByEmail(ctx, email)
		if existsErr != nil {
			return nil, existsErr
		}
		if taken {
			return nil, apperrors.UserEmailExists("a user account with this email already exists")
		}

		user, provisionErr := s.provisionLogin(ctx, provisionParams{
			Name:      req.Name,
			Email:     email,
			CompanyID: scope.CompanyID,
		})
		if provisionErr != nil {
			return nil, provisionErr
		}
		userID = &user.ID
		tempPassword = user.tempPassword
	}

	employee, err := s.employees.Create(ctx, core.CreateEmployeeParams{
		CompanyID: scope.CompanyID,
		UserID:    userID,
		Req:       &req.CreateEmployeeRequest,
	})
	if err != nil {
		return nil, err
	}
	s.recount(ctx, scope.CompanyID)

	result := &InviteResult{Employee: &model.EmployeeWithUser{Employee: *employee}}
	if req.SendInvite {
		result.EmailSent, result.Warning = s.sendMail(ctx, inviteEmail(MailTemplateParams{
			Name:        employee.Name,
			Email:       employee.Email,
			CompanyName: company.Name,
			LoginURL:    s.loginURL,
			TempPass:    tempPassword,
		}))
	}
	if userID != nil {
		if full, getErr := s.employees.GetByID(ctx, scope, employee.ID); getErr == nil {
			result.Employee = full
		}
	}
	return result, nil
}

// Create creates an employee without a linked login.
func (s *EmployeeService) Create(
	ctx context.Context,
	scope domainauth.Scope,
	req *model.CreateEmployeeRequest,
) (*model.Employee, error) {
	invited, err := s.Invite(ctx, scope, &model.InviteEmployeeRequest{CreateEmployeeRequest: *req})
	if err != nil {
		return nil, err
	}
	emp := invited.Employee.Employee
	return &emp, nil
}

// GetByID retrieves an employee within the caller's tenant scope.
func (s *EmployeeService) GetByID(
	ctx context.Context,
	scope domainauth.Scope,
	id string,
) (*model.EmployeeWithUser, error) {
	return s.employees.GetByID(ctx, scope, id)
}

// List returns a page of employees within the caller's tenant scope.
func (s *EmployeeService) List(
	ctx context.Context,
	scope domainauth.Scope,
	opts core.EmployeeListOptions,
) ([]*model.EmployeeWithUser, error) {
	return s.employees.List(ctx, scope, opts)
}

// Update updates employee fields within the caller's tenant scope. Status
// changes flow through the counter recount.
func (s *EmployeeService) Update(
	ctx context.Context,
	scope domainauth.Scope,
	id string,
	req model.UpdateEmployeeRequest,
) (*model.Employee, error) {
	employee, err := s.employees.Update(ctx, scope, id, req)
	if err != nil {
		return nil, err
	}
	if req.Status != nil {
		s.recount(ctx, employee.CompanyID)
	}
	return employee, nil
}

// ToggleResult reports the outcome of a system-access change.
type ToggleResult struct {
	Employee  *model.EmployeeWithUser `json:"employee"`
	EmailSent bool                    `json:"email_sent"`
	Warning   string                  `json:"warning,omitempty"`
}

// ToggleSystemAccess grants or revokes the employee's login. Both directions
// are idempotent: granting an existing link or revoking an absent one
// returns the current record unchanged.
//
// Revocation soft-disables the account instead of deleting it. The user is
// downgraded to the lowest role tier and unbound from the tenant, so the
// record survives for audit history but no longer opens any tenant door.
func (s *EmployeeService) ToggleSystemAccess(
	ctx context.Context,
	scope domainauth.Scope,
	id string,
	enable bool,
) (*ToggleResult, error) {
	employee, err := s.employees.GetByID(ctx, scope, id)
	if err != nil {
		return nil, err
	}

	if enable {
		return s.grantAccess(ctx, scope, employee)
	}
	return s.revokeAccess(ctx, scope, employee)
}

// ResendInvite rotates a fresh temporary password for an already-provisioned
// employee and re-sends the invite email. Unlike the initial invite, a mail
// failure here is a hard error: nothing visible to the admin changed, so
// they must know the employee never got the new credential.
func (s *EmployeeService) ResendInvite(
	ctx context.Context,
	scope domainauth.Scope,
	id string,
) (*model.EmployeeWithUser, error) {
	employee, err := s.employees.GetByID(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	if employee.UserID == nil || !employee.HasSystemAccess {
		return nil, apperrors.Validation("employee has no system access to resend an invite for")
	}

	tempPassword, err := domainauth.GenerateTemporaryPassword()
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "generate temporary password")
	}
	if err := s.identity.RotateCredential(ctx, *employee.UserID, tempPassword); err != nil {
		return nil, err
	}
	if err := s.users.SetTemporaryPassword(ctx, *employee.UserID, true); err != nil {
		return nil, err
	}

	companyName := s.companyName(ctx, scope, employee.CompanyID)
	if s.mailer == nil {
		return nil, apperrors.Upstream("no mailer configured", nil)
	}
	if _, sendErr := s.mailer.Send(ctx, inviteResentEmail(MailTemplateParams{
		Name:        employee.Name,
		Email:       employee.Email,
		CompanyName: companyName,
		LoginURL:    s.loginURL,
		TempPass:    tempPassword,
	})); sendErr != nil {
		return nil, apperrors.Upstream("send invite email", sendErr)
	}
	return employee, nil
}

// Delete soft-deletes an employee (status INACTIVE), revokes system access
// when present, and recounts the tenant's employee counter.
func (s *EmployeeService) Delete(ctx context.Context, scope domainauth.Scope, id string) error {
	prior, err := s.employees.SoftDelete(ctx, scope, id)
	if err != nil {
		return err
	}
	if prior.UserID != nil {
		if _, unlinkErr := s.employees.SetSystemAccess(ctx, core.SetSystemAccessParams{
			Scope: scope,
			ID:    id,
		}); unlinkErr != nil {
			return unlinkErr
		}
		if _, demoteErr := s.users.Demote(ctx, *prior.UserID); demoteErr != nil {
			return demoteErr
		}
	}
	s.recount(ctx, prior.CompanyID)
	return nil
}

// --- helpers ---

type provisionParams struct {
	Name      string
	Email     string
	CompanyID string
}

type provisionedUser struct {
	ID           string
	tempPassword string
}

// provisionLogin creates the user record and its temporary credential. The
// unique constraint on users.email is the last line of defense when two
// admins race past the ExistsByEmail precheck.
func (s *EmployeeService) provisionLogin(
	ctx context.Context,
	params provisionParams,
) (*provisionedUser, error) {
	tempPassword, err := domainauth.GenerateTemporaryPassword()
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "generate temporary password")
	}

	user, err := s.users.Create(ctx, core.CreateUserParams{
		Name:                params.Name,
		Email:               params.Email,
		Role:                domainauth.RoleEmployee,
		CompanyID:           &params.CompanyID,
		IsTemporaryPassword: true,
	})
	if err != nil {
		return nil, err
	}
	if err := s.identity.CreateCredential(ctx, user.ID, tempPassword); err != nil {
		return nil, err
	}
	return &provisionedUser{ID: user.ID, tempPassword: tempPassword}, nil
}

func (s *EmployeeService) grantAccess(
	ctx context.Context,
	scope domainauth.Scope,
	employee *model.EmployeeWithUser,
) (*ToggleResult, error) {
	if employee.HasSystemAccess && employee.UserID != nil {
		return &ToggleResult{Employee: employee}, nil
	}

	taken, err := s.users.ExistsByEmail(ctx, employee.Email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperrors.UserEmailExists("a user account with this email already exists")
	}

	user, err := s.provisionLogin(ctx, provisionParams{
		Name:      employee.Name,
		Email:     employee.Email,
		CompanyID: employee.CompanyID,
	})
	if err != nil {
		return nil, err
	}

	updated, err := s.employees.SetSystemAccess(ctx, core.SetSystemAccessParams{
		Scope:     scope,
		ID:        employee.ID,
		UserID:    &user.ID,
		HasAccess: true,
	})
	if err != nil {
		return nil, err
	}

	result := &ToggleResult{Employee: &model.EmployeeWithUser{Employee: *updated}}
	result.EmailSent, result.Warning = s.sendMail(ctx, accessGrantedEmail(MailTemplateParams{
		Name:        updated.Name,
		Email:       updated.Email,
		CompanyName: s.companyName(ctx, scope, updated.CompanyID),
		LoginURL:    s.loginURL,
		TempPass:    user.tempPassword,
	}))
	if full, getErr := s.employees.GetByID(ctx, scope, updated.ID); getErr == nil {
		result.Employee = full
	}
	return result, nil
}

func (s *EmployeeService) revokeAccess(
	ctx context.Context,
	scope domainauth.Scope,
	employee *model.EmployeeWithUser,
) (*ToggleResult, error) {
	if !employee.HasSystemAccess && employee.UserID == nil {
		return &ToggleResult{Employee: employee}, nil
	}

	userID := employee.UserID
	updated, err := s.employees.SetSystemAccess(ctx, core.SetSystemAccessParams{
		Scope: scope,
		ID:    employee.ID,
	})
	if err != nil {
		return nil, err
	}
	if userID != nil {
		if _, demoteErr := s.users.Demote(ctx, *userID); demoteErr != nil {
			return nil, demoteErr
		}
	}

	result := &ToggleResult{Employee: &model.EmployeeWithUser{Employee: *updated}}
	result.EmailSent, result.Warning = s.sendMail(ctx, accessRevokedEmail(MailTemplateParams{
		Name:        updated.Name,
		Email:       updated.Email,
		CompanyName: s.companyName(ctx, scope, updated.CompanyID),
	}))
	return result, nil
}

// sendMail dispatches best-effort notification email. Failures are logged
// and reported as a warning string, never as an error.
func (s *EmployeeService) sendMail(ctx context.Context, email ports.Email) (sent bool, warning string) {
	if s.mailer == nil {
		return false, "email delivery is not configured"
	}
	if _, err := s.mailer.Send(ctx, email); err != nil {
		s.logger.WarnContext(ctx, "failed to send notification email",
			"to", email.To, "subject", email.Subject, "err", err)
		return false, "the operation succeeded but the notification email could not be delivered"
	}
	return true, ""
}

func (s *EmployeeService) recount(ctx context.Context, companyID string) {
	if _, err := s.companies.RecountEmployees(ctx, companyID); err != nil {
		s.logger.WarnContext(ctx, "failed to recount employees", "company_id", companyID, "err", err)
	}
}

func (s *EmployeeService) companyName(ctx context.Context, scope domainauth.Scope, companyID string) string {
	company, err := s.companies.GetByID(ctx, scope, companyID)
	if err != nil {
		return "your company"
	}
	return company.Name
}
