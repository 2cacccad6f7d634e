package domain

import "github.com/shopspring/decimal"

// Special loan status labels surfaced by the collections classifier. When no
// special case applies the label is the plain DPD bucket string.
const (
	LabelInvalid        = "Invalid"
	LabelEarlyWriteOff  = "early_write_off"
	LabelWriteOff180DPD = "180_dpd_write_off"
)

// FeatureToggle is one collections feature switch with its parameters.
type FeatureToggle struct {
	Enabled      bool `json:"enabled"`
	ThresholdDPD int  `json:"threshold_dpd,omitempty"`
}

// CollectionsFeatureConfig gates which status label the classifier may
// produce. It is owned by the feature-flag store and passed in explicitly so
// the classifier stays a pure function of its inputs.
type CollectionsFeatureConfig struct {
	EarlyWriteOff  FeatureToggle `json:"early_write_off"`
	WriteOff180DPD FeatureToggle `json:"write_off_180_dpd"`
	RepaymentCap   FeatureToggle `json:"repayment_cap"`
}

// LoanCollectionsStatus is the classifier output for one loan, as presented
// on account-summary reports.
type LoanCollectionsStatus struct {
	LoanID         string          `json:"loan_id"`
	LoanStatusID   string          `json:"loan_status_id"`
	TotalDueAmount decimal.Decimal `json:"total_due_amount"`
}

// AccountSummaryResponse lists the collections status of every loan under a
// customer account.
type AccountSummaryResponse struct {
	CustomerID string                   `json:"customer_id"`
	Loans      []*LoanCollectionsStatus `json:"loans"`
}
