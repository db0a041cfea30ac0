package postgresql_test

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/faranhr/payroll-backend-go/internal/domain/employee"
	"github.com/faranhr/payroll-backend-go/internal/domain/loan"
	"github.com/faranhr/payroll-backend-go/internal/domain/payroll"
	"github.com/faranhr/payroll-backend-go/internal/pkg/database"
	"github.com/faranhr/payroll-backend-go/internal/repository/postgresql"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testDB     *database.DB
	testDBOnce sync.Once
	testDBErr  error
)

// testDatabase connects once per test binary and skips the suite when no
// TEST_DATABASE_URL is configured, so the package tests stay runnable
// without a PostgreSQL instance.
func testDatabase(t *testing.T) *database.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	testDBOnce.Do(func() {
		testDB, testDBErr = database.NewPostgreSQLDB(dsn)
		if testDBErr != nil {
			return
		}
		testDBErr = postgresql.CreateTables(context.Background(), testDB)
	})
	require.NoError(t, testDBErr)
	return testDB
}

func truncateTables(t *testing.T, db *database.DB) {
	t.Helper()
	ctx := context.Background()

	for _, table := range []string{"payroll", "attendance", "loans", "advances", "personnel", "payroll_settings"} {
		_, err := db.Exec(ctx, "TRUNCATE TABLE "+table+" CASCADE")
		require.NoError(t, err)
	}
}

func createTestEmployee(t *testing.T, db *database.DB, code string) employee.Employee {
	t.Helper()

	repo := postgresql.NewEmployeeRepository(db)
	created, err := repo.Create(context.Background(), employee.Employee{
		EmployeeCode:         code,
		FirstName:            "Test",
		LastName:             code,
		NationalID:           code + "000000",
		HireDate:             time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
		BaseSalary:           decimal.NewFromInt(56000000),
		HousingAllowanceRate: decimal.NewFromFloat(0.25),
		FamilyAllowanceRate:  decimal.NewFromFloat(0.10),
		ChildrenCount:        2,
		IsActive:             true,
	})
	require.NoError(t, err)
	return created
}

func testRecord(employeeID string) payroll.PayrollRecord {
	return payroll.PayrollRecord{
		EmployeeID:        employeeID,
		Year:              2024,
		Month:             3,
		BaseSalary:        decimal.NewFromInt(56000000),
		HousingAllowance:  decimal.NewFromInt(14000000),
		FamilyAllowance:   decimal.NewFromInt(5600000),
		ChildAllowance:    decimal.NewFromInt(1000000),
		GrossSalary:       decimal.NewFromInt(76600000),
		InsuranceEmployee: decimal.NewFromInt(5362000),
		InsuranceEmployer: decimal.NewFromInt(17618000),
		TaxAmount:         decimal.NewFromInt(1523800),
		NetSalary:         decimal.NewFromInt(69714200),
	}
}

func TestEmployeeRepository_Create(t *testing.T) {
	db := testDatabase(t)
	truncateTables(t, db)
	ctx := context.Background()
	repo := postgresql.NewEmployeeRepository(db)

	created := createTestEmployee(t, db, "1001")
	assert.NotEmpty(t, created.ID)
	assert.True(t, created.BaseSalary.Equal(decimal.NewFromInt(56000000)))

	dup := employee.Employee{
		EmployeeCode:         "1001",
		FirstName:            "Other",
		LastName:             "Person",
		NationalID:           "9999999999",
		HireDate:             time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
		BaseSalary:           decimal.NewFromInt(40000000),
		HousingAllowanceRate: decimal.NewFromFloat(0.25),
		FamilyAllowanceRate:  decimal.NewFromFloat(0.10),
		IsActive:             true,
	}
	_, err := repo.Create(ctx, dup)
	assert.ErrorIs(t, err, employee.ErrEmployeeCodeExists)
}

func TestPayrollRepository_Upsert(t *testing.T) {
	db := testDatabase(t)
	truncateTables(t, db)
	ctx := context.Background()
	repo := postgresql.NewPayrollRepository(db)

	emp := createTestEmployee(t, db, "1001")

	created, inserted, err := repo.Upsert(ctx, testRecord(emp.ID))
	require.NoError(t, err)
	assert.True(t, inserted)
	assert.False(t, created.IsPaid)

	paid, err := repo.MarkPaid(ctx, created.ID, time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.True(t, paid)

	// Recompute with different figures keeps the settlement state.
	update := testRecord(emp.ID)
	update.NetSalary = decimal.NewFromInt(70000000)
	updated, inserted, err := repo.Upsert(ctx, update)
	require.NoError(t, err)
	assert.False(t, inserted)
	assert.Equal(t, created.ID, updated.ID)
	assert.True(t, updated.IsPaid)
	assert.NotNil(t, updated.PaymentDate)
	assert.True(t, updated.NetSalary.Equal(decimal.NewFromInt(70000000)))
}

func TestPayrollRepository_MarkPaid(t *testing.T) {
	db := testDatabase(t)
	truncateTables(t, db)
	ctx := context.Background()
	repo := postgresql.NewPayrollRepository(db)

	emp := createTestEmployee(t, db, "1001")
	created, _, err := repo.Upsert(ctx, testRecord(emp.ID))
	require.NoError(t, err)

	paid, err := repo.MarkPaid(ctx, created.ID, time.Now())
	require.NoError(t, err)
	assert.True(t, paid)

	// Second call reports no transition.
	paid, err = repo.MarkPaid(ctx, created.ID, time.Now())
	require.NoError(t, err)
	assert.False(t, paid)

	_, err = repo.MarkPaid(ctx, "00000000-0000-0000-0000-000000000000", time.Now())
	assert.ErrorIs(t, err, payroll.ErrPayrollRecordNotFound)
}

func TestPayrollRepository_Settings(t *testing.T) {
	db := testDatabase(t)
	truncateTables(t, db)
	ctx := context.Background()
	repo := postgresql.NewPayrollRepository(db)

	_, err := repo.GetSettings(ctx)
	assert.ErrorIs(t, err, payroll.ErrSettingsNotFound)

	saved, err := repo.UpsertSettings(ctx, payroll.Settings{
		ReferenceBaseSalary:   decimal.NewFromInt(56000000),
		HousingAllowanceRate:  decimal.NewFromFloat(0.25),
		FamilyAllowanceRate:   decimal.NewFromFloat(0.10),
		ChildAllowanceAmount:  decimal.NewFromInt(500000),
		InsuranceEmployeeRate: decimal.NewFromFloat(0.07),
		InsuranceEmployerRate: decimal.NewFromFloat(0.23),
		TaxThreshold:          decimal.NewFromInt(56000000),
	})
	require.NoError(t, err)
	assert.True(t, saved.ReferenceBaseSalary.Equal(decimal.NewFromInt(56000000)))

	loaded, err := repo.GetSettings(ctx)
	require.NoError(t, err)
	assert.True(t, loaded.TaxThreshold.Equal(decimal.NewFromInt(56000000)))
}

func TestLoanRepository_ApplyInstallment(t *testing.T) {
	db := testDatabase(t)
	truncateTables(t, db)
	ctx := context.Background()
	repo := postgresql.NewLoanRepository(db)

	emp := createTestEmployee(t, db, "1001")
	created, err := repo.Create(ctx, loan.Loan{
		EmployeeID:            emp.ID,
		LoanAmount:            decimal.NewFromInt(1000000),
		InstallmentAmount:     decimal.NewFromInt(500000),
		RemainingInstallments: 1,
		TotalInstallments:     2,
		StartDate:             time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		IsActive:              true,
	})
	require.NoError(t, err)

	require.NoError(t, repo.ApplyInstallment(ctx, created.ID))

	after, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, after.RemainingInstallments)
	assert.False(t, after.IsActive)

	_, err = repo.GetOpenByEmployee(ctx, emp.ID)
	assert.ErrorIs(t, err, loan.ErrNoOpenLoan)
}
