package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Loan status codes. The numeric codes follow the lending status-code
// convention where the 23x range tracks how deep in arrears a loan is.
const (
	LoanStatusInactive     = 210
	LoanStatusCurrent      = 230
	LoanStatus1DPD         = 231
	LoanStatus5DPD         = 232
	LoanStatus30DPD        = 233
	LoanStatus60DPD        = 234
	LoanStatus90DPD        = 235
	LoanStatus120DPD       = 236
	LoanStatus150DPD       = 237
	LoanStatus180DPD       = 238
	LoanStatusRenegotiated = 240
	LoanStatusPaidOff      = 250
	LoanStatusWriteOff     = 260
	LoanStatusInvalidated  = 266
)

// Loan is the funded loan a customer committed to. The collections flags are
// written by servicing workflows; the classifier only reads them.
type Loan struct {
	ID                uuid.UUID       `json:"id" db:"id"`
	LoanID            string          `json:"loan_id" db:"loan_id"`
	CustomerID        string          `json:"customer_id" db:"customer_id"`
	ProgramID         string          `json:"program_id" db:"program_id"`
	Amount            decimal.Decimal `json:"amount" db:"amount"`
	StatusCode        int             `json:"status_code" db:"status_code"`
	IsEarlyWriteOff   bool            `json:"is_early_write_off" db:"is_early_write_off"`
	IsRepaymentCapped bool            `json:"is_repayment_capped" db:"is_repayment_capped"`
	CreatedAt         time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at" db:"updated_at"`
}

// DPDBucketLabel maps a loan status code to the bucket string reported on
// account summaries ("30dpd", "90dpd", ...). Unknown codes report as "unknown"
// rather than guessing a bucket.
func DPDBucketLabel(statusCode int) string {
	switch statusCode {
	case LoanStatusInactive:
		return "inactive"
	case LoanStatusCurrent:
		return "current"
	case LoanStatus1DPD:
		return "1dpd"
	case LoanStatus5DPD:
		return "5dpd"
	case LoanStatus30DPD:
		return "30dpd"
	case LoanStatus60DPD:
		return "60dpd"
	case LoanStatus90DPD:
		return "90dpd"
	case LoanStatus120DPD:
		return "120dpd"
	case LoanStatus150DPD:
		return "150dpd"
	case LoanStatus180DPD:
		return "180dpd"
	case LoanStatusRenegotiated:
		return "renegotiated"
	case LoanStatusPaidOff:
		return "paid_off"
	case LoanStatusWriteOff:
		return "write_off"
	default:
		return "unknown"
	}
}
