package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/witjaksana/loan-pricing/internal/collections"
	"github.com/witjaksana/loan-pricing/internal/config"
	"github.com/witjaksana/loan-pricing/internal/domain"
	"github.com/witjaksana/loan-pricing/internal/repository"
	customError "github.com/witjaksana/loan-pricing/pkg/errors"
)

type CollectionsService struct {
	loanRepo    repository.LoanRepository
	paymentRepo repository.PaymentRepository
	classifier  *collections.Classifier
	config      *config.Config
}

func NewCollectionsService(
	loanRepo repository.LoanRepository,
	paymentRepo repository.PaymentRepository,
	classifier *collections.Classifier,
	config *config.Config,
) *CollectionsService {
	return &CollectionsService{
		loanRepo:    loanRepo,
		paymentRepo: paymentRepo,
		classifier:  classifier,
		config:      config,
	}
}

// AccountSummary classifies every loan under a customer account. The
// computation is read-only and recomputed per request from the current
// payment rows and feature configuration; nothing is persisted.
func (s *CollectionsService) AccountSummary(ctx context.Context, customerID string, referenceDate time.Time) (*domain.AccountSummaryResponse, error) {
	loans, err := s.loanRepo.GetByCustomerID(ctx, customerID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, customError.WrapDatabaseError(err)
	}
	if len(loans) == 0 {
		return nil, customError.WrapNoLoansForCustomer(customerID)
	}

	featureConfig := s.featureConfig()

	summary := &domain.AccountSummaryResponse{
		CustomerID: customerID,
		Loans:      make([]*domain.LoanCollectionsStatus, 0, len(loans)),
	}
	for _, loan := range loans {
		payments, err := s.paymentRepo.GetByLoanID(ctx, loan.LoanID)
		if err != nil {
			return nil, customError.WrapDatabaseError(err)
		}
		paybacks, err := s.paymentRepo.GetPaybacksByLoanID(ctx, loan.LoanID)
		if err != nil {
			return nil, customError.WrapDatabaseError(err)
		}

		summary.Loans = append(summary.Loans, s.classifier.Classify(loan, payments, paybacks, featureConfig, referenceDate))
	}

	return summary, nil
}

// RollPaymentStatuses moves every unpaid installment to the payment status
// code matching its days past due. Run daily by the scheduler so that
// classifier inputs stay aligned with the calendar.
func (s *CollectionsService) RollPaymentStatuses(ctx context.Context, referenceDate time.Time) (int, error) {
	payments, err := s.paymentRepo.GetUnpaidDueBefore(ctx, referenceDate)
	if err != nil {
		return 0, customError.WrapDatabaseError(err)
	}

	updated := 0
	for _, payment := range payments {
		status := domain.PaymentStatusForDPD(payment.DaysPastDue(referenceDate))
		if status == payment.StatusCode {
			continue
		}
		if err := s.paymentRepo.UpdateStatus(ctx, payment.ID, status); err != nil {
			return updated, customError.WrapDatabaseError(err)
		}
		updated++
	}

	return updated, nil
}

// featureConfig assembles the classifier toggles from service configuration.
// The feature-flag store is this system's collaborator, not its property;
// defaults here stand in for it and stay explicit inputs to the classifier.
func (s *CollectionsService) featureConfig() domain.CollectionsFeatureConfig {
	return domain.CollectionsFeatureConfig{
		EarlyWriteOff: domain.FeatureToggle{
			Enabled: s.config.Collections.EarlyWriteOffEnabled,
		},
		WriteOff180DPD: domain.FeatureToggle{
			Enabled:      s.config.Collections.WriteOff180DPDEnabled,
			ThresholdDPD: s.config.Collections.WriteOffDPD,
		},
		RepaymentCap: domain.FeatureToggle{
			Enabled: s.config.Collections.RepaymentCapEnabled,
		},
	}
}
