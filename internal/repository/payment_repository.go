package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/witjaksana/loan-pricing/internal/domain"

	"github.com/jmoiron/sqlx"
)

type paymentRepository struct {
	db *sqlx.DB
}

func NewPaymentRepository(db *sqlx.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) GetByLoanID(ctx context.Context, loanID string) ([]*domain.PaymentRecord, error) {
	query := `
		SELECT id, loan_id, installment_number, due_date, due_amount,
			status_code, created_at, updated_at
		FROM payments
		WHERE loan_id = $1
		ORDER BY installment_number
	`

	var payments []*domain.PaymentRecord
	err := r.db.SelectContext(ctx, &payments, query, loanID)
	if err != nil {
		return nil, err
	}

	return payments, nil
}

func (r *paymentRepository) GetPaybacksByLoanID(ctx context.Context, loanID string) ([]*domain.PaybackTransaction, error) {
	query := `
		SELECT id, payment_id, loan_id, amount, created_at
		FROM payback_transactions
		WHERE loan_id = $1
		ORDER BY created_at
	`

	var paybacks []*domain.PaybackTransaction
	err := r.db.SelectContext(ctx, &paybacks, query, loanID)
	if err != nil {
		return nil, err
	}

	return paybacks, nil
}

func (r *paymentRepository) GetUnpaidDueBefore(ctx context.Context, cutoff time.Time) ([]*domain.PaymentRecord, error) {
	query := `
		SELECT id, loan_id, installment_number, due_date, due_amount,
			status_code, created_at, updated_at
		FROM payments
		WHERE due_date < $1 AND status_code < $2
		ORDER BY loan_id, installment_number
	`

	var payments []*domain.PaymentRecord
	err := r.db.SelectContext(ctx, &payments, query, cutoff, domain.PaymentStatusPaidOnTime)
	if err != nil {
		return nil, err
	}

	return payments, nil
}

func (r *paymentRepository) UpdateStatus(ctx context.Context, paymentID uuid.UUID, statusCode int) error {
	query := `
		UPDATE payments
		SET status_code = $2, updated_at = $3
		WHERE id = $1
	`

	_, err := r.db.ExecContext(ctx, query, paymentID, statusCode, time.Now())
	return err
}
