package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/witjaksana/loan-pricing/internal/config"
	"github.com/witjaksana/loan-pricing/internal/domain"
	"github.com/witjaksana/loan-pricing/internal/pricing"
	"github.com/witjaksana/loan-pricing/internal/repository"
	customError "github.com/witjaksana/loan-pricing/pkg/errors"
)

type PricingService struct {
	offerRepo repository.OfferRepository
	loanRepo  repository.LoanRepository
	planCache repository.PlanCacheRepository
	engine    *pricing.Engine
	config    *config.Config
}

func NewPricingService(
	offerRepo repository.OfferRepository,
	loanRepo repository.LoanRepository,
	planCache repository.PlanCacheRepository,
	engine *pricing.Engine,
	config *config.Config,
) *PricingService {
	return &PricingService{
		offerRepo: offerRepo,
		loanRepo:  loanRepo,
		planCache: planCache,
		engine:    engine,
		config:    config,
	}
}

// IngestOffer validates and stores a lender quotation. Storing supersedes any
// previous offer of the same (customer, program) key in place: fields are
// replaced, row identity is kept, and the bumped updated_at invalidates any
// payment plans cached against the old revision.
func (s *PricingService) IngestOffer(ctx context.Context, request *domain.UpsertOfferRequest) (*domain.LoanOffer, error) {
	offer := request.Offer()
	if err := pricing.ValidateOffer(offer); err != nil {
		return nil, err
	}

	if err := s.offerRepo.Upsert(ctx, offer); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	stored, err := s.offerRepo.GetLatest(ctx, offer.CustomerID, offer.ProgramID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	return stored, nil
}

// GeneratePaymentPlans prices the customer's current offer and persists the
// option list for idempotent replay. A repeat request against the same offer
// returns the previously persisted options; a superseding offer forces a
// recompute and overwrites the cache key (last write wins).
func (s *PricingService) GeneratePaymentPlans(ctx context.Context, request *domain.PaymentPlanRequest) (*domain.PaymentPlanResponse, error) {
	offer, err := s.offerRepo.GetLatest(ctx, request.PhoneNumber, request.ProgramID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapOfferNotFound(request.PhoneNumber, request.ProgramID)
		}
		return nil, customError.WrapDatabaseError(err)
	}

	mode := domain.PricingModeStandard
	if request.UserType == domain.UserTypeVariation {
		mode = domain.PricingModeVariation
	}

	if cached, cacheErr := s.planCache.Get(ctx, request.PhoneNumber, request.ProgramID); cacheErr == nil {
		if s.cacheStillValid(cached, offer, mode, request) {
			return &domain.PaymentPlanResponse{
				ProgramID:    request.ProgramID,
				PaymentPlans: cached.Options,
			}, nil
		}
	}

	options, err := s.engine.GeneratePlans(offer, request.LoanAmount, mode)
	if err != nil {
		return nil, err
	}

	entry := &domain.PlanCacheEntry{
		OfferID:        offer.ID,
		OfferUpdatedAt: offer.UpdatedAt,
		CustomerID:     request.PhoneNumber,
		ProgramID:      request.ProgramID,
		Mode:           mode,
		LoanAmount:     request.LoanAmount,
		Options:        options,
		GeneratedAt:    time.Now(),
	}
	if err := s.planCache.Set(ctx, entry); err != nil {
		return nil, customError.WrapCacheError(err)
	}

	return &domain.PaymentPlanResponse{
		ProgramID:    request.ProgramID,
		PaymentPlans: options,
	}, nil
}

// cacheStillValid accepts a cached plan set only when it was computed from
// the offer revision that currently governs the key, in the same mode, for
// the same requested amount. A superseding offer overwrites the row in place
// and keeps its id, so the id alone cannot detect the change; the offer's
// updated_at must match too.
func (s *PricingService) cacheStillValid(cached *domain.PlanCacheEntry, offer *domain.LoanOffer, mode string, request *domain.PaymentPlanRequest) bool {
	if cached.OfferID != offer.ID || !cached.OfferUpdatedAt.Equal(offer.UpdatedAt) || cached.Mode != mode {
		return false
	}
	if mode == domain.PricingModeStandard && !cached.LoanAmount.Equal(request.LoanAmount) {
		return false
	}
	return true
}

// ChoosePaymentPlan commits the customer's selection onto the loan. Two
// explicit paths exist because standard and variation callers submit
// different payload shapes: standard selections are matched against the
// persisted options by (tenure, repayment amount); variation selections carry
// the chosen values themselves.
func (s *PricingService) ChoosePaymentPlan(ctx context.Context, request *domain.ChoosePaymentPlanRequest) (*domain.ChoosePaymentPlanResponse, error) {
	if _, err := s.loanRepo.GetByLoanID(ctx, request.LoanID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapLoanNotFound(request.LoanID)
		}
		return nil, customError.WrapDatabaseError(err)
	}

	var terms *domain.SelectedLoanTerms
	var err error
	if request.UserType == domain.UserTypeVariation {
		terms, err = s.chooseVariationPlan(request)
	} else {
		terms, err = s.chooseStandardPlan(ctx, request)
	}
	if err != nil {
		return nil, err
	}

	if err := s.loanRepo.UpsertSelectedTerms(ctx, terms); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	return &domain.ChoosePaymentPlanResponse{
		LoanID:        request.LoanID,
		SelectedTerms: terms,
	}, nil
}

// chooseStandardPlan resolves the selection against the most recently
// persisted option set for the (customer, program) key.
func (s *PricingService) chooseStandardPlan(ctx context.Context, request *domain.ChoosePaymentPlanRequest) (*domain.SelectedLoanTerms, error) {
	cached, err := s.planCache.Get(ctx, request.PhoneNumber, request.ProgramID)
	if err != nil {
		if errors.Is(err, repository.ErrPlanCacheMiss) {
			return nil, customError.WrapPlanNotFound(request.TenurePlan, request.TotalRepaymentAmountPlan)
		}
		return nil, customError.WrapCacheError(err)
	}

	option := matchOption(cached.Options, request.TenurePlan, request.TotalRepaymentAmountPlan)
	if option == nil {
		return nil, customError.WrapPlanNotFound(request.TenurePlan, request.TotalRepaymentAmountPlan)
	}

	return &domain.SelectedLoanTerms{
		LoanID:           request.LoanID,
		Amount:           option.LoanAmount,
		Tenure:           option.Tenure,
		InterestValue:    option.RepaymentAmount.Sub(option.LoanAmount),
		InstalmentAmount: option.DailyRepayment,
	}, nil
}

// chooseVariationPlan trusts the caller-supplied override values. The shape
// is only accepted when every override field is present, never as a silent
// fallback for a failed standard match.
func (s *PricingService) chooseVariationPlan(request *domain.ChoosePaymentPlanRequest) (*domain.SelectedLoanTerms, error) {
	if request.AmountPlan.IsZero() || request.InstalmentAmountPlan.IsZero() || request.TenurePlan <= 0 {
		return nil, customError.WrapPlanNotFound(request.TenurePlan, request.TotalRepaymentAmountPlan)
	}

	return &domain.SelectedLoanTerms{
		LoanID:           request.LoanID,
		Amount:           request.AmountPlan,
		Tenure:           request.TenurePlan,
		InterestValue:    request.InterestValuePlan,
		InstalmentAmount: request.InstalmentAmountPlan,
	}, nil
}

// matchOption finds the option identified by (tenure, total repayment
// amount). Selections are matched by value, never by array index, because
// option lists are recomputed and re-served between requests.
func matchOption(options []*domain.PaymentPlanOption, tenure int, repaymentAmount decimal.Decimal) *domain.PaymentPlanOption {
	for _, option := range options {
		if option.Tenure == tenure && option.RepaymentAmount.Equal(repaymentAmount) {
			return option
		}
	}
	return nil
}
