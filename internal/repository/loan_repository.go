package repository

import (
	"context"
	"time"

	"github.com/witjaksana/loan-pricing/internal/domain"

	"github.com/jmoiron/sqlx"
)

type loanRepository struct {
	db *sqlx.DB
}

func NewLoanRepository(db *sqlx.DB) LoanRepository {
	return &loanRepository{db: db}
}

func (r *loanRepository) GetByLoanID(ctx context.Context, loanID string) (*domain.Loan, error) {
	query := `
		SELECT id, loan_id, customer_id, program_id, amount, status_code,
			is_early_write_off, is_repayment_capped, created_at, updated_at
		FROM loans
		WHERE loan_id = $1
	`

	var loan domain.Loan
	err := r.db.GetContext(ctx, &loan, query, loanID)
	if err != nil {
		return nil, err
	}

	return &loan, nil
}

func (r *loanRepository) GetByCustomerID(ctx context.Context, customerID string) ([]*domain.Loan, error) {
	query := `
		SELECT id, loan_id, customer_id, program_id, amount, status_code,
			is_early_write_off, is_repayment_capped, created_at, updated_at
		FROM loans
		WHERE customer_id = $1
		ORDER BY created_at
	`

	var loans []*domain.Loan
	err := r.db.SelectContext(ctx, &loans, query, customerID)
	if err != nil {
		return nil, err
	}

	return loans, nil
}

// UpsertSelectedTerms is keyed on loan_id so a double-submit of the same
// selection stays at-most-once-effective: the second write overwrites the
// first instead of creating a conflicting row.
func (r *loanRepository) UpsertSelectedTerms(ctx context.Context, terms *domain.SelectedLoanTerms) error {
	query := `
		INSERT INTO selected_loan_terms (loan_id, amount, tenure, interest_value, instalment_amount, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (loan_id) DO UPDATE SET
			amount = EXCLUDED.amount,
			tenure = EXCLUDED.tenure,
			interest_value = EXCLUDED.interest_value,
			instalment_amount = EXCLUDED.instalment_amount,
			updated_at = EXCLUDED.updated_at
	`

	_, err := r.db.ExecContext(ctx, query,
		terms.LoanID,
		terms.Amount,
		terms.Tenure,
		terms.InterestValue,
		terms.InstalmentAmount,
		time.Now(),
	)

	return err
}

func (r *loanRepository) GetSelectedTerms(ctx context.Context, loanID string) (*domain.SelectedLoanTerms, error) {
	query := `
		SELECT loan_id, amount, tenure, interest_value, instalment_amount, updated_at
		FROM selected_loan_terms
		WHERE loan_id = $1
	`

	var terms domain.SelectedLoanTerms
	err := r.db.GetContext(ctx, &terms, query, loanID)
	if err != nil {
		return nil, err
	}

	return &terms, nil
}
