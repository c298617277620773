// Package mocks provides mock implementations for testing the salonhub services.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for our repository interfaces.
// The mocks are generated using go:generate directives and provide a fluent API for setting up test expectations.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	defer ctrl.Finish()
//	mockRepo := mocks.NewMockCompanyRepository(ctrl)
//	mockRepo.EXPECT().GetByID(gomock.Any(), gomock.Any(), gomock.Any()).Return(company, nil)
package mocks

// Generate mock for CompanyRepository interface from internal/core package.
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=company_repository_mock.go github.com/salonhub/salonhub-api/internal/core CompanyRepository

// Generate mock for BranchRepository interface from internal/core package.
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=branch_repository_mock.go github.com/salonhub/salonhub-api/internal/core BranchRepository

// Generate mock for EmployeeRepository interface from internal/core package.
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=employee_repository_mock.go github.com/salonhub/salonhub-api/internal/core EmployeeRepository

// Generate mock for UserRepository interface from internal/core package.
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=user_repository_mock.go github.com/salonhub/salonhub-api/internal/core UserRepository

// Generate mock for ServiceRepository interface from internal/core package.
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=service_repository_mock.go github.com/salonhub/salonhub-api/internal/core ServiceRepository
