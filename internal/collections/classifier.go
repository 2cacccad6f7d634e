package collections

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/witjaksana/loan-pricing/internal/domain"
)

// DefaultWriteOffDPD is the days-past-due threshold for the 180dpd
// administrative write-off.
const DefaultWriteOffDPD = 180

// Classifier derives the presented collections status of a loan from its
// payment history and the feature configuration. It is read-only: no input
// is mutated and no I/O happens here.
type Classifier struct {
	writeOffDPD int
}

func NewClassifier(writeOffDPD int) *Classifier {
	if writeOffDPD <= 0 {
		writeOffDPD = DefaultWriteOffDPD
	}
	return &Classifier{writeOffDPD: writeOffDPD}
}

// Classify applies the ordered rule list, first match wins:
//
//  1. invalidated loans report "Invalid";
//  2. early write-off (feature on, loan flagged);
//  3. 180dpd write-off (feature on, any unpaid installment at or past the
//     threshold);
//  4. otherwise the DPD bucket of the loan's status code, with the due
//     amount either summed over every overdue installment or, for
//     repayment-capped loans, capped to the single oldest unpaid one.
//
// Reordering these rules changes presented statuses and needs product
// sign-off.
func (c *Classifier) Classify(loan *domain.Loan, payments []*domain.PaymentRecord, paybacks []*domain.PaybackTransaction, config domain.CollectionsFeatureConfig, referenceDate time.Time) *domain.LoanCollectionsStatus {
	status := &domain.LoanCollectionsStatus{
		LoanID:         loan.LoanID,
		TotalDueAmount: decimal.Zero,
	}

	if loan.StatusCode == domain.LoanStatusInvalidated {
		status.LoanStatusID = domain.LabelInvalid
		return status
	}

	if config.EarlyWriteOff.Enabled && loan.IsEarlyWriteOff {
		status.LoanStatusID = domain.LabelEarlyWriteOff
		return status
	}

	if config.WriteOff180DPD.Enabled && maxDaysPastDue(payments, referenceDate) >= c.threshold(config) {
		status.LoanStatusID = domain.LabelWriteOff180DPD
		return status
	}

	outstanding := outstandingByPayment(payments, paybacks)

	if config.RepaymentCap.Enabled && loan.IsRepaymentCapped {
		if oldest := oldestUnpaid(payments); oldest != nil {
			status.TotalDueAmount = outstanding[oldest.ID]
		}
	} else {
		for _, payment := range payments {
			if payment.IsOverdue() {
				status.TotalDueAmount = status.TotalDueAmount.Add(outstanding[payment.ID])
			}
		}
	}

	status.LoanStatusID = domain.DPDBucketLabel(loan.StatusCode)
	return status
}

func (c *Classifier) threshold(config domain.CollectionsFeatureConfig) int {
	if config.WriteOff180DPD.ThresholdDPD > 0 {
		return config.WriteOff180DPD.ThresholdDPD
	}
	return c.writeOffDPD
}

// outstandingByPayment nets each installment's due amount against its payback
// transactions in recorded order, clamping at zero per installment.
func outstandingByPayment(payments []*domain.PaymentRecord, paybacks []*domain.PaybackTransaction) map[uuid.UUID]decimal.Decimal {
	ordered := make([]*domain.PaybackTransaction, len(paybacks))
	copy(ordered, paybacks)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].CreatedAt.Before(ordered[j].CreatedAt)
	})

	outstanding := make(map[uuid.UUID]decimal.Decimal, len(payments))
	for _, payment := range payments {
		outstanding[payment.ID] = payment.DueAmount
	}
	for _, payback := range ordered {
		remaining, ok := outstanding[payback.PaymentID]
		if !ok {
			continue
		}
		remaining = remaining.Sub(payback.Amount)
		if remaining.IsNegative() {
			remaining = decimal.Zero
		}
		outstanding[payback.PaymentID] = remaining
	}
	return outstanding
}

// oldestUnpaid returns the unpaid installment with the lowest installment
// number, or nil when everything is settled.
func oldestUnpaid(payments []*domain.PaymentRecord) *domain.PaymentRecord {
	var oldest *domain.PaymentRecord
	for _, payment := range payments {
		if payment.IsPaid() {
			continue
		}
		if oldest == nil || payment.InstallmentNumber < oldest.InstallmentNumber {
			oldest = payment
		}
	}
	return oldest
}

func maxDaysPastDue(payments []*domain.PaymentRecord, referenceDate time.Time) int {
	maxDPD := 0
	for _, payment := range payments {
		if dpd := payment.DaysPastDue(referenceDate); dpd > maxDPD {
			maxDPD = dpd
		}
	}
	return maxDPD
}
