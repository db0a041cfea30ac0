package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/faranhr/payroll-backend-go/internal/domain/employee"
	"github.com/faranhr/payroll-backend-go/internal/domain/loan"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEmployee(code string) employee.Employee {
	return employee.Employee{
		EmployeeCode:         code,
		FirstName:            "Test",
		LastName:             code,
		NationalID:           code + "000000",
		HireDate:             time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
		BaseSalary:           decimal.NewFromInt(50000000),
		HousingAllowanceRate: decimal.NewFromFloat(0.25),
		FamilyAllowanceRate:  decimal.NewFromFloat(0.10),
		IsActive:             true,
	}
}

func TestWithinTransaction(t *testing.T) {
	ctx := context.Background()

	t.Run("commits on success", func(t *testing.T) {
		store := NewStore()
		repo := NewEmployeeRepository(store)

		err := store.WithinTransaction(ctx, func(txCtx context.Context) error {
			_, err := repo.Create(txCtx, newTestEmployee("1001"))
			return err
		})
		require.NoError(t, err)

		employees, err := repo.List(ctx, false)
		require.NoError(t, err)
		assert.Len(t, employees, 1)
	})

	t.Run("rolls back on error", func(t *testing.T) {
		store := NewStore()
		repo := NewEmployeeRepository(store)

		boom := errors.New("boom")
		err := store.WithinTransaction(ctx, func(txCtx context.Context) error {
			if _, err := repo.Create(txCtx, newTestEmployee("1001")); err != nil {
				return err
			}
			return boom
		})
		require.ErrorIs(t, err, boom)

		employees, err := repo.List(ctx, false)
		require.NoError(t, err)
		assert.Empty(t, employees)
	})

	t.Run("rollback undoes writes across repositories", func(t *testing.T) {
		store := NewStore()
		employeeRepo := NewEmployeeRepository(store)
		loanRepo := NewLoanRepository(store)

		emp, err := employeeRepo.Create(ctx, newTestEmployee("1001"))
		require.NoError(t, err)

		openLoan, err := loanRepo.Create(ctx, loan.Loan{
			EmployeeID:            emp.ID,
			LoanAmount:            decimal.NewFromInt(10000000),
			InstallmentAmount:     decimal.NewFromInt(500000),
			RemainingInstallments: 18,
			TotalInstallments:     20,
			StartDate:             time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			IsActive:              true,
		})
		require.NoError(t, err)

		boom := errors.New("boom")
		err = store.WithinTransaction(ctx, func(txCtx context.Context) error {
			if err := loanRepo.ApplyInstallment(txCtx, openLoan.ID); err != nil {
				return err
			}
			return boom
		})
		require.ErrorIs(t, err, boom)

		after, err := loanRepo.GetByID(ctx, openLoan.ID)
		require.NoError(t, err)
		assert.Equal(t, 18, after.RemainingInstallments)
	})

	t.Run("rolls back on panic", func(t *testing.T) {
		store := NewStore()
		repo := NewEmployeeRepository(store)

		func() {
			defer func() {
				require.NotNil(t, recover())
			}()
			_ = store.WithinTransaction(ctx, func(txCtx context.Context) error {
				if _, err := repo.Create(txCtx, newTestEmployee("1001")); err != nil {
					return err
				}
				panic("boom")
			})
		}()

		employees, err := repo.List(ctx, false)
		require.NoError(t, err)
		assert.Empty(t, employees)
	})

	t.Run("nested call joins the outer transaction", func(t *testing.T) {
		store := NewStore()
		repo := NewEmployeeRepository(store)

		err := store.WithinTransaction(ctx, func(txCtx context.Context) error {
			return store.WithinTransaction(txCtx, func(innerCtx context.Context) error {
				_, err := repo.Create(innerCtx, newTestEmployee("1001"))
				return err
			})
		})
		require.NoError(t, err)

		employees, err := repo.List(ctx, false)
		require.NoError(t, err)
		assert.Len(t, employees, 1)
	})
}

func TestEmployeeRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects a duplicate employee code", func(t *testing.T) {
		store := NewStore()
		repo := NewEmployeeRepository(store)

		_, err := repo.Create(ctx, newTestEmployee("1001"))
		require.NoError(t, err)

		dup := newTestEmployee("1001")
		dup.NationalID = "9999999999"
		_, err = repo.Create(ctx, dup)
		assert.ErrorIs(t, err, employee.ErrEmployeeCodeExists)
	})

	t.Run("rejects a duplicate national id", func(t *testing.T) {
		store := NewStore()
		repo := NewEmployeeRepository(store)

		first := newTestEmployee("1001")
		first.NationalID = "1234567890"
		_, err := repo.Create(ctx, first)
		require.NoError(t, err)

		second := newTestEmployee("1002")
		second.NationalID = "1234567890"
		_, err = repo.Create(ctx, second)
		assert.ErrorIs(t, err, employee.ErrNationalIDExists)
	})

	t.Run("lists sorted by employee code", func(t *testing.T) {
		store := NewStore()
		repo := NewEmployeeRepository(store)

		for _, code := range []string{"1003", "1001", "1002"} {
			_, err := repo.Create(ctx, newTestEmployee(code))
			require.NoError(t, err)
		}

		employees, err := repo.List(ctx, false)
		require.NoError(t, err)
		require.Len(t, employees, 3)
		assert.Equal(t, "1001", employees[0].EmployeeCode)
		assert.Equal(t, "1002", employees[1].EmployeeCode)
		assert.Equal(t, "1003", employees[2].EmployeeCode)
	})
}
