package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/witjaksana/loan-pricing/pkg/utils"
)

// Payment status codes, 32x range. A payment is considered overdue once it
// reaches the 5DPD bucket; 330/331 mark settled installments.
const (
	PaymentStatusNotDue     = 310
	PaymentStatus1DPD       = 320
	PaymentStatus5DPD       = 321
	PaymentStatus30DPD      = 322
	PaymentStatus60DPD      = 323
	PaymentStatus90DPD      = 324
	PaymentStatus120DPD     = 325
	PaymentStatus150DPD     = 326
	PaymentStatus180DPD     = 327
	PaymentStatusPaidOnTime = 330
	PaymentStatusPaidLate   = 331
)

// PaymentRecord is one installment of a loan, ordered by installment number.
type PaymentRecord struct {
	ID                uuid.UUID       `json:"id" db:"id"`
	LoanID            string          `json:"loan_id" db:"loan_id"`
	InstallmentNumber int             `json:"installment_number" db:"installment_number"`
	DueDate           time.Time       `json:"due_date" db:"due_date"`
	DueAmount         decimal.Decimal `json:"due_amount" db:"due_amount"`
	StatusCode        int             `json:"status_code" db:"status_code"`
	CreatedAt         time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at" db:"updated_at"`
}

// IsOverdue reports whether the installment sits in an overdue bucket.
func (p *PaymentRecord) IsOverdue() bool {
	return p.StatusCode >= PaymentStatus5DPD && p.StatusCode <= PaymentStatus180DPD
}

// IsPaid reports whether the installment has been settled.
func (p *PaymentRecord) IsPaid() bool {
	return p.StatusCode == PaymentStatusPaidOnTime || p.StatusCode == PaymentStatusPaidLate
}

// DaysPastDue is the whole number of days the installment is overdue at the
// reference date, zero when not yet due or already paid.
func (p *PaymentRecord) DaysPastDue(reference time.Time) int {
	if p.IsPaid() {
		return 0
	}
	days := utils.DaysBetween(p.DueDate, reference)
	if days < 0 {
		return 0
	}
	return days
}

// PaybackTransaction is one repayment applied against an installment.
// Partial paybacks accumulate in recorded order.
type PaybackTransaction struct {
	ID        uuid.UUID       `json:"id" db:"id"`
	PaymentID uuid.UUID       `json:"payment_id" db:"payment_id"`
	LoanID    string          `json:"loan_id" db:"loan_id"`
	Amount    decimal.Decimal `json:"amount" db:"amount"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
}

// PaymentStatusForDPD returns the payment status code an unpaid installment
// should carry given its days past due. Used by the daily status roll job.
func PaymentStatusForDPD(dpd int) int {
	switch {
	case dpd >= 180:
		return PaymentStatus180DPD
	case dpd >= 150:
		return PaymentStatus150DPD
	case dpd >= 120:
		return PaymentStatus120DPD
	case dpd >= 90:
		return PaymentStatus90DPD
	case dpd >= 60:
		return PaymentStatus60DPD
	case dpd >= 30:
		return PaymentStatus30DPD
	case dpd >= 5:
		return PaymentStatus5DPD
	case dpd >= 1:
		return PaymentStatus1DPD
	default:
		return PaymentStatusNotDue
	}
}
