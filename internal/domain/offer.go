package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Fee and penalty value interpretation
const (
	FeeTypeFlat       = "FLAT"
	FeeTypePercentage = "PERCENTAGE"
)

// Repayment frequency
const (
	FrequencyDaily  = "DAILY"
	FrequencyWeekly = "WEEKLY"
)

// LoanOffer is one priced quotation from the lender program. Offers are
// immutable per quotation: a newer offer for the same (customer, program)
// supersedes this one instead of mutating it.
type LoanOffer struct {
	ID             uuid.UUID       `json:"id" db:"id"`
	CustomerID     string          `json:"customer_id" db:"customer_id"`
	ProgramID      string          `json:"program_id" db:"program_id"`
	MinLoanAmount  decimal.Decimal `json:"min_loan_amount" db:"min_loan_amount"`
	MaxLoanAmount  decimal.Decimal `json:"max_loan_amount" db:"max_loan_amount"`
	MinTenure      int             `json:"min_tenure" db:"min_tenure"`
	TenureInterval int             `json:"tenure_interval" db:"tenure_interval"`
	MaxTenure      int             `json:"max_tenure" db:"max_tenure"`
	InterestRate   decimal.Decimal `json:"interest_rate" db:"interest_rate"`
	FeeType        string          `json:"fee_type" db:"fee_type"`
	FeeValue       decimal.Decimal `json:"fee_value" db:"fee_value"`
	PenaltyType    string          `json:"penalty_type" db:"penalty_type"`
	PenaltyValue   decimal.Decimal `json:"penalty_value" db:"penalty_value"`
	Frequency      string          `json:"frequency" db:"frequency"`
	CreatedAt      time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at" db:"updated_at"`
}

// PeriodLengthDays returns the number of days in one repayment period.
func (o *LoanOffer) PeriodLengthDays() int {
	if o.Frequency == FrequencyWeekly {
		return 7
	}
	return 1
}

// UpsertOfferRequest is a lender quotation submitted for ingestion. Storing
// it supersedes any previous offer of the same (customer, program) key.
type UpsertOfferRequest struct {
	CustomerID     string          `json:"customer_id" validate:"required"`
	ProgramID      string          `json:"program_id" validate:"required"`
	MinLoanAmount  decimal.Decimal `json:"min_loan_amount" validate:"required"`
	MaxLoanAmount  decimal.Decimal `json:"max_loan_amount" validate:"required"`
	MinTenure      int             `json:"min_tenure" validate:"required,gt=0"`
	TenureInterval int             `json:"tenure_interval" validate:"required,gt=0"`
	MaxTenure      int             `json:"max_tenure" validate:"required,gt=0"`
	InterestRate   decimal.Decimal `json:"interest_rate" validate:"required"`
	FeeType        string          `json:"fee_type" validate:"required,oneof=FLAT PERCENTAGE"`
	FeeValue       decimal.Decimal `json:"fee_value"`
	PenaltyType    string          `json:"penalty_type" validate:"omitempty,oneof=FLAT PERCENTAGE"`
	PenaltyValue   decimal.Decimal `json:"penalty_value"`
	Frequency      string          `json:"frequency" validate:"required,oneof=DAILY WEEKLY"`
}

// Offer builds the quotation to persist. The generated id only survives when
// no offer exists for the key yet; a supersede keeps the stored row's id.
func (r *UpsertOfferRequest) Offer() *LoanOffer {
	now := time.Now()
	return &LoanOffer{
		ID:             uuid.New(),
		CustomerID:     r.CustomerID,
		ProgramID:      r.ProgramID,
		MinLoanAmount:  r.MinLoanAmount,
		MaxLoanAmount:  r.MaxLoanAmount,
		MinTenure:      r.MinTenure,
		TenureInterval: r.TenureInterval,
		MaxTenure:      r.MaxTenure,
		InterestRate:   r.InterestRate,
		FeeType:        r.FeeType,
		FeeValue:       r.FeeValue,
		PenaltyType:    r.PenaltyType,
		PenaltyValue:   r.PenaltyValue,
		Frequency:      r.Frequency,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}
