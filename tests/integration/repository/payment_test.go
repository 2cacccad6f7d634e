package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/witjaksana/loan-pricing/internal/domain"
	"github.com/witjaksana/loan-pricing/internal/repository"
)

func insertPayment(t *testing.T, db *sqlx.DB, payment *domain.PaymentRecord) {
	t.Helper()
	_, err := db.Exec(`
		INSERT INTO payments (id, loan_id, installment_number, due_date, due_amount,
			status_code, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		payment.ID, payment.LoanID, payment.InstallmentNumber, payment.DueDate,
		payment.DueAmount, payment.StatusCode, payment.CreatedAt, payment.UpdatedAt,
	)
	require.NoError(t, err)
}

func testPayment(loanID string, installment int, dueDate time.Time, statusCode int) *domain.PaymentRecord {
	return &domain.PaymentRecord{
		ID:                uuid.New(),
		LoanID:            loanID,
		InstallmentNumber: installment,
		DueDate:           dueDate,
		DueAmount:         decimal.NewFromInt(150000),
		StatusCode:        statusCode,
		CreatedAt:         time.Now(),
		UpdatedAt:         time.Now(),
	}
}

func TestPaymentRepository_GetByLoanID(t *testing.T) {
	db := setupTestDB(t)

	repo := repository.NewPaymentRepository(db)
	ctx := context.Background()

	insertLoan(t, db, testLoan("LOAN-010"))
	now := time.Now()

	// Inserted out of order; reads must come back by installment number.
	insertPayment(t, db, testPayment("LOAN-010", 2, now.AddDate(0, 0, -30), domain.PaymentStatus30DPD))
	insertPayment(t, db, testPayment("LOAN-010", 1, now.AddDate(0, 0, -60), domain.PaymentStatus60DPD))

	payments, err := repo.GetByLoanID(ctx, "LOAN-010")
	require.NoError(t, err)
	require.Len(t, payments, 2)
	assert.Equal(t, 1, payments[0].InstallmentNumber)
	assert.Equal(t, 2, payments[1].InstallmentNumber)
}

func TestPaymentRepository_GetPaybacksByLoanID(t *testing.T) {
	db := setupTestDB(t)

	repo := repository.NewPaymentRepository(db)
	ctx := context.Background()

	insertLoan(t, db, testLoan("LOAN-011"))
	now := time.Now()
	payment := testPayment("LOAN-011", 1, now.AddDate(0, 0, -30), domain.PaymentStatus30DPD)
	insertPayment(t, db, payment)

	amounts := []int64{20000, 15000, 15000}
	for i, amount := range amounts {
		_, err := db.Exec(`
			INSERT INTO payback_transactions (id, payment_id, loan_id, amount, created_at)
			VALUES ($1, $2, $3, $4, $5)`,
			uuid.New(), payment.ID, "LOAN-011", decimal.NewFromInt(amount), now.Add(time.Duration(i)*time.Minute),
		)
		require.NoError(t, err)
	}

	paybacks, err := repo.GetPaybacksByLoanID(ctx, "LOAN-011")
	require.NoError(t, err)
	require.Len(t, paybacks, 3)

	// Recorded order is preserved.
	for i, amount := range amounts {
		assert.True(t, paybacks[i].Amount.Equal(decimal.NewFromInt(amount)),
			"payback %d: expected %d, got %v", i, amount, paybacks[i].Amount)
	}
}

func TestPaymentRepository_GetUnpaidDueBefore(t *testing.T) {
	db := setupTestDB(t)

	repo := repository.NewPaymentRepository(db)
	ctx := context.Background()

	insertLoan(t, db, testLoan("LOAN-012"))
	now := time.Now()

	insertPayment(t, db, testPayment("LOAN-012", 1, now.AddDate(0, 0, -30), domain.PaymentStatus5DPD))
	insertPayment(t, db, testPayment("LOAN-012", 2, now.AddDate(0, 0, -10), domain.PaymentStatusPaidOnTime))
	insertPayment(t, db, testPayment("LOAN-012", 3, now.AddDate(0, 0, 10), domain.PaymentStatusNotDue))

	payments, err := repo.GetUnpaidDueBefore(ctx, now)
	require.NoError(t, err)

	// Only the unpaid installment already past its due date qualifies.
	require.Len(t, payments, 1)
	assert.Equal(t, 1, payments[0].InstallmentNumber)
}

func TestPaymentRepository_UpdateStatus(t *testing.T) {
	db := setupTestDB(t)

	repo := repository.NewPaymentRepository(db)
	ctx := context.Background()

	insertLoan(t, db, testLoan("LOAN-013"))
	payment := testPayment("LOAN-013", 1, time.Now().AddDate(0, 0, -35), domain.PaymentStatus5DPD)
	insertPayment(t, db, payment)

	err := repo.UpdateStatus(ctx, payment.ID, domain.PaymentStatus30DPD)
	require.NoError(t, err)

	payments, err := repo.GetByLoanID(ctx, "LOAN-013")
	require.NoError(t, err)
	require.Len(t, payments, 1)
	assert.Equal(t, domain.PaymentStatus30DPD, payments[0].StatusCode)
}
