package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/witjaksana/loan-pricing/internal/domain"
)

// OfferRepository defines the interface for loan offer data operations
type OfferRepository interface {
	// Upsert stores a new offer, superseding any previous offer of the same
	// (customer, program): fields are replaced, identity is kept.
	Upsert(ctx context.Context, offer *domain.LoanOffer) error

	// GetLatest retrieves the governing offer for a (customer, program)
	// key: latest created_at wins.
	GetLatest(ctx context.Context, customerID, programID string) (*domain.LoanOffer, error)
}

// LoanRepository defines the interface for loan data operations
type LoanRepository interface {
	// GetByLoanID retrieves a loan by its loan ID
	GetByLoanID(ctx context.Context, loanID string) (*domain.Loan, error)

	// GetByCustomerID retrieves all loans under a customer account
	GetByCustomerID(ctx context.Context, customerID string) ([]*domain.Loan, error)

	// UpsertSelectedTerms writes the chosen payment plan onto the loan,
	// exactly once effective per loan id: resubmission overwrites.
	UpsertSelectedTerms(ctx context.Context, terms *domain.SelectedLoanTerms) error

	// GetSelectedTerms reads back the committed terms for a loan
	GetSelectedTerms(ctx context.Context, loanID string) (*domain.SelectedLoanTerms, error)
}

// PaymentRepository defines the interface for installment data operations
type PaymentRepository interface {
	// GetByLoanID retrieves all installments for a loan ordered by
	// installment number
	GetByLoanID(ctx context.Context, loanID string) ([]*domain.PaymentRecord, error)

	// GetPaybacksByLoanID retrieves all payback transactions for a loan in
	// recorded order
	GetPaybacksByLoanID(ctx context.Context, loanID string) ([]*domain.PaybackTransaction, error)

	// GetUnpaidDueBefore retrieves unpaid installments due before the cutoff,
	// across all loans. Used by the daily DPD roll job.
	GetUnpaidDueBefore(ctx context.Context, cutoff time.Time) ([]*domain.PaymentRecord, error)

	// UpdateStatus moves an installment to a new payment status code
	UpdateStatus(ctx context.Context, paymentID uuid.UUID, statusCode int) error
}

// PlanCacheRepository persists computed payment-plan options per
// (customer, program) key for idempotent replay. Writes overwrite the key;
// last write wins.
type PlanCacheRepository interface {
	Get(ctx context.Context, customerID, programID string) (*domain.PlanCacheEntry, error)
	Set(ctx context.Context, entry *domain.PlanCacheEntry) error
}
