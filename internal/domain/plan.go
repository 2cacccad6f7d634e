package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Pricing presentation modes
const (
	PricingModeStandard  = "standard"
	PricingModeVariation = "variation"
)

// User types accepted on the pricing endpoints; "control" users get the
// standard single-amount presentation, "variation" users get amount bands.
const (
	UserTypeControl   = "control"
	UserTypeVariation = "variation"
)

// PaymentPlanOption is one (tenure, loan amount) combination offered to the
// customer, with its full cashflow decomposition.
type PaymentPlanOption struct {
	Tenure                 int             `json:"tenure"`
	DailyRepayment         decimal.Decimal `json:"daily_repayment"`
	RepaymentAmount        decimal.Decimal `json:"repayment_amount"`
	LoanDisbursementAmount decimal.Decimal `json:"loan_disbursement_amount"`
	WeeklyInstalmentAmount decimal.Decimal `json:"weekly_instalment_amount"`
	LoanAmount             decimal.Decimal `json:"loan_amount"`
	SmallerLoanOptionFlag  bool            `json:"smaller_loan_option_flag"`
	UpfrontFee             decimal.Decimal `json:"upfront_fee"`
}

// PlanCacheEntry is what gets persisted per (customer, program) for idempotent
// replay of a pricing request: the options plus the identity and revision of
// the offer they were computed from. A superseding offer keeps the row id, so
// the offer's updated_at is the discriminator that invalidates the entry.
type PlanCacheEntry struct {
	OfferID        uuid.UUID            `json:"offer_id"`
	OfferUpdatedAt time.Time            `json:"offer_updated_at"`
	CustomerID     string               `json:"customer_id"`
	ProgramID      string               `json:"program_id"`
	Mode           string               `json:"mode"`
	LoanAmount     decimal.Decimal      `json:"loan_amount"`
	Options        []*PaymentPlanOption `json:"options"`
	GeneratedAt    time.Time            `json:"generated_at"`
}

// SelectedLoanTerms is the single option a customer committed to. Written
// exactly once per loan id (upsert, last submission wins), immutable after
// disbursement.
type SelectedLoanTerms struct {
	LoanID           string          `json:"loan_id" db:"loan_id"`
	Amount           decimal.Decimal `json:"amount" db:"amount"`
	Tenure           int             `json:"tenure" db:"tenure"`
	InterestValue    decimal.Decimal `json:"interest_value" db:"interest_value"`
	InstalmentAmount decimal.Decimal `json:"instalment_amount" db:"instalment_amount"`
	UpdatedAt        time.Time       `json:"updated_at" db:"updated_at"`
}

// DTOs for requests and responses

type PaymentPlanRequest struct {
	PhoneNumber string          `json:"phone_number" validate:"required"`
	ProgramID   string          `json:"program_id" validate:"required"`
	LoanAmount  decimal.Decimal `json:"loan_amount" validate:"required"`
	UserType    string          `json:"user_type" validate:"omitempty,oneof=control variation"`
}

type PaymentPlanResponse struct {
	ProgramID    string               `json:"program_id"`
	PaymentPlans []*PaymentPlanOption `json:"payment_plans"`
}

// ChoosePaymentPlanRequest carries either the standard-selection pair
// (tenure_plan, total_repayment_amount_plan) or, for variation users, the
// explicit override values. The two shapes are resolved by user_type.
type ChoosePaymentPlanRequest struct {
	PhoneNumber              string          `json:"phone_number" validate:"required"`
	ProgramID                string          `json:"program_id" validate:"required"`
	LoanID                   string          `json:"loan_id" validate:"required"`
	UserType                 string          `json:"user_type" validate:"omitempty,oneof=control variation"`
	TenurePlan               int             `json:"tenure_plan"`
	TotalRepaymentAmountPlan decimal.Decimal `json:"total_repayment_amount_plan"`
	AmountPlan               decimal.Decimal `json:"amount_plan"`
	InterestValuePlan        decimal.Decimal `json:"interest_value_plan"`
	InstalmentAmountPlan     decimal.Decimal `json:"instalment_amount_plan"`
}

type ChoosePaymentPlanResponse struct {
	LoanID        string             `json:"loan_id"`
	SelectedTerms *SelectedLoanTerms `json:"selected_terms"`
}
