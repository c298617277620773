package data

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salonhub/salonhub-api/internal/core"
	"github.com/salonhub/salonhub-api/internal/domain/auth"
	"github.com/salonhub/salonhub-api/internal/domain/model"
	apperrors "github.com/salonhub/salonhub-api/internal/errors"
	"github.com/salonhub/salonhub-api/internal/testutil"
)

func adminScope(companyID string) auth.Scope {
	return auth.Scope{Role: auth.RoleAdmin, CompanyID: companyID}
}

func superScope() auth.Scope {
	return auth.Scope{Role: auth.RoleSuperAdmin}
}

func createTestCompany(t *testing.T, db *sql.DB, name string) *model.Company {
	t.Helper()
	repo := NewCompanyRepo(db)
	c, err := repo.Create(context.Background(), &model.CreateCompanyRequest{
		Name:         name,
		Email:        fmt.Sprintf("%s-%d@example.com", name, time.Now().UnixNano()),
		MaxBranches:  testutil.IntPtr(3),
		MaxEmployees: testutil.IntPtr(10),
	})
	require.NoError(t, err)
	return c
}

func TestCompanyRepo_Create_Get_Update(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithTestDB(t, func(db *sql.DB) {
		ctx := context.Background()
		repo := NewCompanyRepo(db)

		c := createTestCompany(t, db, "acme-salon")
		require.NotEmpty(t, c.ID)
		assert.True(t, c.Active)
		assert.Equal(t, 3, c.MaxBranches)
		assert.Equal(t, 0, c.CurrentBranches)

		got, err := repo.GetByID(ctx, adminScope(c.ID), c.ID)
		require.NoError(t, err)
		assert.Equal(t, c.Name, got.Name)

		newName := "acme-salon-renamed"
		updated, err := repo.Update(ctx, adminScope(c.ID), c.ID, model.UpdateCompanyRequest{
			Name: &newName,
		})
		require.NoError(t, err)
		assert.Equal(t, newName, updated.Name)
	})
}

func TestCompanyRepo_TenantIsolation(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithTestDB(t, func(db *sql.DB) {
		ctx := context.Background()
		repo := NewCompanyRepo(db)

		a := createTestCompany(t, db, "tenant-a")
		b := createTestCompany(t, db, "tenant-b")

		// a tenant admin cannot read or update another tenant
		_, err := repo.GetByID(ctx, adminScope(b.ID), a.ID)
		require.Error(t, err)
		assert.True(t, apperrors.IsNotFound(err))

		name := "hijacked"
		_, err = repo.Update(ctx, adminScope(b.ID), a.ID, model.UpdateCompanyRequest{Name: &name})
		require.Error(t, err)
		assert.True(t, apperrors.IsNotFound(err))

		// the row is untouched
		got, err := repo.GetByID(ctx, adminScope(a.ID), a.ID)
		require.NoError(t, err)
		assert.Equal(t, "tenant-a", got.Name)

		// platform operators see every tenant
		got, err = repo.GetByID(ctx, superScope(), a.ID)
		require.NoError(t, err)
		assert.Equal(t, a.ID, got.ID)
	})
}

func TestCompanyRepo_RecountEmployees(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithTestDB(t, func(db *sql.DB) {
		ctx := context.Background()
		companies := NewCompanyRepo(db)
		employees := NewEmployeeRepo(db)

		c := createTestCompany(t, db, "recount-co")
		createTestEmployee(t, db, c.ID, "one@example.com")
		createTestEmployee(t, db, c.ID, "two@example.com")
		inactive := createTestEmployee(t, db, c.ID, "gone@example.com")
		_, err := employees.SoftDelete(ctx, adminScope(c.ID), inactive.ID)
		require.NoError(t, err)

		count, err := companies.RecountEmployees(ctx, c.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, count)

		got, err := companies.GetByID(ctx, adminScope(c.ID), c.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, got.CurrentEmployees)
	})
}

func TestCompanyRepo_RecountBranches(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithTestDB(t, func(db *sql.DB) {
		ctx := context.Background()
		companies := NewCompanyRepo(db)
		branches := NewBranchRepo(db)

		c := createTestCompany(t, db, "branch-co")
		_, err := branches.Create(ctx, c.ID, &model.CreateBranchRequest{Name: "Downtown"})
		require.NoError(t, err)
		closed, err := branches.Create(ctx, c.ID, &model.CreateBranchRequest{Name: "Uptown"})
		require.NoError(t, err)

		ok, err := branches.Deactivate(ctx, adminScope(c.ID), closed.ID)
		require.NoError(t, err)
		require.True(t, ok)

		count, err := companies.RecountBranches(ctx, c.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})
}

func createTestEmployee(t *testing.T, db *sql.DB, companyID, email string) *model.Employee {
	t.Helper()
	repo := NewEmployeeRepo(db)
	e, err := repo.Create(context.Background(), core.CreateEmployeeParams{
		CompanyID: companyID,
		Req: &model.CreateEmployeeRequest{
			Name:  "Test Stylist",
			Email: email,
		},
	})
	require.NoError(t, err)
	return e
}
