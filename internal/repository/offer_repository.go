package repository

import (
	"context"
	"time"

	"github.com/witjaksana/loan-pricing/internal/domain"

	"github.com/jmoiron/sqlx"
)

type offerRepository struct {
	db *sqlx.DB
}

func NewOfferRepository(db *sqlx.DB) OfferRepository {
	return &offerRepository{db: db}
}

func (r *offerRepository) Upsert(ctx context.Context, offer *domain.LoanOffer) error {
	query := `
		INSERT INTO loan_offers (id, customer_id, program_id, min_loan_amount, max_loan_amount,
			min_tenure, tenure_interval, max_tenure, interest_rate, fee_type, fee_value,
			penalty_type, penalty_value, frequency, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		ON CONFLICT (customer_id, program_id) DO UPDATE SET
			min_loan_amount = EXCLUDED.min_loan_amount,
			max_loan_amount = EXCLUDED.max_loan_amount,
			min_tenure = EXCLUDED.min_tenure,
			tenure_interval = EXCLUDED.tenure_interval,
			max_tenure = EXCLUDED.max_tenure,
			interest_rate = EXCLUDED.interest_rate,
			fee_type = EXCLUDED.fee_type,
			fee_value = EXCLUDED.fee_value,
			penalty_type = EXCLUDED.penalty_type,
			penalty_value = EXCLUDED.penalty_value,
			frequency = EXCLUDED.frequency,
			created_at = EXCLUDED.created_at,
			updated_at = EXCLUDED.updated_at
	`

	_, err := r.db.ExecContext(ctx, query,
		offer.ID,
		offer.CustomerID,
		offer.ProgramID,
		offer.MinLoanAmount,
		offer.MaxLoanAmount,
		offer.MinTenure,
		offer.TenureInterval,
		offer.MaxTenure,
		offer.InterestRate,
		offer.FeeType,
		offer.FeeValue,
		offer.PenaltyType,
		offer.PenaltyValue,
		offer.Frequency,
		offer.CreatedAt,
		time.Now(),
	)

	return err
}

func (r *offerRepository) GetLatest(ctx context.Context, customerID, programID string) (*domain.LoanOffer, error) {
	query := `
		SELECT id, customer_id, program_id, min_loan_amount, max_loan_amount,
			min_tenure, tenure_interval, max_tenure, interest_rate, fee_type, fee_value,
			penalty_type, penalty_value, frequency, created_at, updated_at
		FROM loan_offers
		WHERE customer_id = $1 AND program_id = $2
		ORDER BY created_at DESC
		LIMIT 1
	`

	var offer domain.LoanOffer
	err := r.db.GetContext(ctx, &offer, query, customerID, programID)
	if err != nil {
		return nil, err
	}

	return &offer, nil
}
