package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/witjaksana/loan-pricing/internal/domain"
)

type MockOfferRepository struct {
	mock.Mock
}

func (m *MockOfferRepository) Upsert(ctx context.Context, offer *domain.LoanOffer) error {
	args := m.Called(ctx, offer)
	return args.Error(0)
}

func (m *MockOfferRepository) GetLatest(ctx context.Context, customerID, programID string) (*domain.LoanOffer, error) {
	args := m.Called(ctx, customerID, programID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LoanOffer), args.Error(1)
}

type MockLoanRepository struct {
	mock.Mock
}

func (m *MockLoanRepository) GetByLoanID(ctx context.Context, loanID string) (*domain.Loan, error) {
	args := m.Called(ctx, loanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Loan), args.Error(1)
}

func (m *MockLoanRepository) GetByCustomerID(ctx context.Context, customerID string) ([]*domain.Loan, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Loan), args.Error(1)
}

func (m *MockLoanRepository) UpsertSelectedTerms(ctx context.Context, terms *domain.SelectedLoanTerms) error {
	args := m.Called(ctx, terms)
	return args.Error(0)
}

func (m *MockLoanRepository) GetSelectedTerms(ctx context.Context, loanID string) (*domain.SelectedLoanTerms, error) {
	args := m.Called(ctx, loanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SelectedLoanTerms), args.Error(1)
}

type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) GetByLoanID(ctx context.Context, loanID string) ([]*domain.PaymentRecord, error) {
	args := m.Called(ctx, loanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.PaymentRecord), args.Error(1)
}

func (m *MockPaymentRepository) GetPaybacksByLoanID(ctx context.Context, loanID string) ([]*domain.PaybackTransaction, error) {
	args := m.Called(ctx, loanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.PaybackTransaction), args.Error(1)
}

func (m *MockPaymentRepository) GetUnpaidDueBefore(ctx context.Context, cutoff time.Time) ([]*domain.PaymentRecord, error) {
	args := m.Called(ctx, cutoff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.PaymentRecord), args.Error(1)
}

func (m *MockPaymentRepository) UpdateStatus(ctx context.Context, paymentID uuid.UUID, statusCode int) error {
	args := m.Called(ctx, paymentID, statusCode)
	return args.Error(0)
}

type MockPlanCacheRepository struct {
	mock.Mock
}

func (m *MockPlanCacheRepository) Get(ctx context.Context, customerID, programID string) (*domain.PlanCacheEntry, error) {
	args := m.Called(ctx, customerID, programID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PlanCacheEntry), args.Error(1)
}

func (m *MockPlanCacheRepository) Set(ctx context.Context, entry *domain.PlanCacheEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}
