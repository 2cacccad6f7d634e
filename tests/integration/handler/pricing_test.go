package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/witjaksana/loan-pricing/internal/collections"
	"github.com/witjaksana/loan-pricing/internal/config"
	"github.com/witjaksana/loan-pricing/internal/domain"
	"github.com/witjaksana/loan-pricing/internal/handler"
	"github.com/witjaksana/loan-pricing/internal/pricing"
	"github.com/witjaksana/loan-pricing/internal/repository"
	"github.com/witjaksana/loan-pricing/internal/service"
	"github.com/witjaksana/loan-pricing/tests/mocks"
)

const (
	testCustomer = "628111222333"
	testProgram  = "DANA-TUNAI"
)

type testEnv struct {
	router      *mux.Router
	offerRepo   *mocks.MockOfferRepository
	loanRepo    *mocks.MockLoanRepository
	paymentRepo *mocks.MockPaymentRepository
	planCache   *mocks.MockPlanCacheRepository
}

func setupRouter() *testEnv {
	env := &testEnv{
		offerRepo:   &mocks.MockOfferRepository{},
		loanRepo:    &mocks.MockLoanRepository{},
		paymentRepo: &mocks.MockPaymentRepository{},
		planCache:   &mocks.MockPlanCacheRepository{},
	}

	cfg := &config.Config{
		Collections: config.CollectionsConfig{
			WriteOffDPD:           180,
			WriteOff180DPDEnabled: true,
			RepaymentCapEnabled:   true,
		},
	}

	engine := pricing.NewEngine(pricing.DefaultConfig())
	classifier := collections.NewClassifier(cfg.Collections.WriteOffDPD)

	pricingService := service.NewPricingService(env.offerRepo, env.loanRepo, env.planCache, engine, cfg)
	collectionsService := service.NewCollectionsService(env.loanRepo, env.paymentRepo, classifier, cfg)

	pricingHandler := handler.NewPricingHandler(pricingService)
	collectionsHandler := handler.NewCollectionsHandler(collectionsService)

	router := mux.NewRouter()
	api := router.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/offers", pricingHandler.UpsertOffer).Methods("POST")
	api.HandleFunc("/payment_plans", pricingHandler.PaymentPlans).Methods("POST")
	api.HandleFunc("/choose_payment_plan", pricingHandler.ChoosePaymentPlan).Methods("POST")
	api.HandleFunc("/accounts/{customerId}/summary", collectionsHandler.AccountSummary).Methods("GET")

	env.router = router
	return env
}

func liveOffer() *domain.LoanOffer {
	return &domain.LoanOffer{
		ID:             uuid.New(),
		CustomerID:     testCustomer,
		ProgramID:      testProgram,
		MinLoanAmount:  decimal.NewFromInt(500000),
		MaxLoanAmount:  decimal.NewFromInt(6600000),
		MinTenure:      30,
		TenureInterval: 30,
		MaxTenure:      120,
		InterestRate:   decimal.NewFromFloat(0.04),
		FeeType:        domain.FeeTypeFlat,
		FeeValue:       decimal.NewFromInt(25000),
		Frequency:      domain.FrequencyDaily,
		CreatedAt:      time.Now(),
	}
}

func postJSON(t *testing.T, router *mux.Router, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func TestUpsertOfferEndpoint(t *testing.T) {
	env := setupRouter()

	stored := liveOffer()
	env.offerRepo.On("Upsert", mock.Anything, mock.AnythingOfType("*domain.LoanOffer")).Return(nil)
	env.offerRepo.On("GetLatest", mock.Anything, testCustomer, testProgram).Return(stored, nil)

	recorder := postJSON(t, env.router, "/api/v1/offers", map[string]interface{}{
		"customer_id":     testCustomer,
		"program_id":      testProgram,
		"min_loan_amount": "500000",
		"max_loan_amount": "6600000",
		"min_tenure":      30,
		"tenure_interval": 30,
		"max_tenure":      120,
		"interest_rate":   "0.04",
		"fee_type":        "FLAT",
		"fee_value":       "25000",
		"frequency":       "DAILY",
	})

	require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())

	var envelope struct {
		Data struct {
			ID        string `json:"id"`
			ProgramID string `json:"program_id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	assert.Equal(t, stored.ID.String(), envelope.Data.ID)
	env.offerRepo.AssertExpectations(t)
}

func TestUpsertOfferEndpoint_ValidationFailure(t *testing.T) {
	env := setupRouter()

	recorder := postJSON(t, env.router, "/api/v1/offers", map[string]interface{}{
		"customer_id": testCustomer,
		"program_id":  testProgram,
		"fee_type":    "NEGOTIABLE",
	})

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	env.offerRepo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestPaymentPlansEndpoint(t *testing.T) {
	env := setupRouter()

	env.offerRepo.On("GetLatest", mock.Anything, testCustomer, testProgram).Return(liveOffer(), nil)
	env.planCache.On("Get", mock.Anything, testCustomer, testProgram).Return(nil, repository.ErrPlanCacheMiss)
	env.planCache.On("Set", mock.Anything, mock.AnythingOfType("*domain.PlanCacheEntry")).Return(nil)

	recorder := postJSON(t, env.router, "/api/v1/payment_plans", map[string]interface{}{
		"phone_number": testCustomer,
		"program_id":   testProgram,
		"loan_amount":  "6575000",
		"user_type":    "control",
	})

	require.Equal(t, http.StatusOK, recorder.Code)

	var envelope struct {
		Success bool `json:"success"`
		Data    struct {
			ProgramID    string `json:"program_id"`
			PaymentPlans []struct {
				Tenure                 int    `json:"tenure"`
				LoanDisbursementAmount string `json:"loan_disbursement_amount"`
				UpfrontFee             string `json:"upfront_fee"`
			} `json:"payment_plans"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))

	assert.True(t, envelope.Success)
	assert.Equal(t, testProgram, envelope.Data.ProgramID)
	require.Len(t, envelope.Data.PaymentPlans, 4)
	assert.Equal(t, 120, envelope.Data.PaymentPlans[0].Tenure)
	assert.Equal(t, "6550000", envelope.Data.PaymentPlans[0].LoanDisbursementAmount)
	assert.Equal(t, "25000", envelope.Data.PaymentPlans[0].UpfrontFee)
}

func TestPaymentPlansEndpoint_ValidationFailure(t *testing.T) {
	env := setupRouter()

	recorder := postJSON(t, env.router, "/api/v1/payment_plans", map[string]interface{}{
		"program_id":  testProgram,
		"loan_amount": "6575000",
	})

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestPaymentPlansEndpoint_AmountOutOfRange(t *testing.T) {
	env := setupRouter()

	env.offerRepo.On("GetLatest", mock.Anything, testCustomer, testProgram).Return(liveOffer(), nil)
	env.planCache.On("Get", mock.Anything, testCustomer, testProgram).Return(nil, repository.ErrPlanCacheMiss)

	recorder := postJSON(t, env.router, "/api/v1/payment_plans", map[string]interface{}{
		"phone_number": testCustomer,
		"program_id":   testProgram,
		"loan_amount":  "99000000",
	})

	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	var envelope struct {
		Code string `json:"code"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	assert.Equal(t, "INVALID_AMOUNT_RANGE", envelope.Code)
}

func TestChoosePaymentPlanEndpoint(t *testing.T) {
	env := setupRouter()

	offer := liveOffer()
	engine := pricing.NewEngine(pricing.DefaultConfig())
	options, err := engine.GeneratePlans(offer, decimal.NewFromInt(6575000), domain.PricingModeStandard)
	require.NoError(t, err)
	chosen := options[0]

	env.loanRepo.On("GetByLoanID", mock.Anything, "LOAN-777").Return(&domain.Loan{LoanID: "LOAN-777"}, nil)
	env.planCache.On("Get", mock.Anything, testCustomer, testProgram).Return(&domain.PlanCacheEntry{
		OfferID:    offer.ID,
		CustomerID: testCustomer,
		ProgramID:  testProgram,
		Mode:       domain.PricingModeStandard,
		LoanAmount: decimal.NewFromInt(6575000),
		Options:    options,
	}, nil)
	env.loanRepo.On("UpsertSelectedTerms", mock.Anything, mock.AnythingOfType("*domain.SelectedLoanTerms")).Return(nil)

	recorder := postJSON(t, env.router, "/api/v1/choose_payment_plan", map[string]interface{}{
		"phone_number":                testCustomer,
		"program_id":                  testProgram,
		"loan_id":                     "LOAN-777",
		"user_type":                   "control",
		"tenure_plan":                 chosen.Tenure,
		"total_repayment_amount_plan": chosen.RepaymentAmount.String(),
	})

	require.Equal(t, http.StatusCreated, recorder.Code)
	env.loanRepo.AssertExpectations(t)
}

func TestChoosePaymentPlanEndpoint_PlanNotFound(t *testing.T) {
	env := setupRouter()

	env.loanRepo.On("GetByLoanID", mock.Anything, "LOAN-777").Return(&domain.Loan{LoanID: "LOAN-777"}, nil)
	env.planCache.On("Get", mock.Anything, testCustomer, testProgram).Return(nil, repository.ErrPlanCacheMiss)

	recorder := postJSON(t, env.router, "/api/v1/choose_payment_plan", map[string]interface{}{
		"phone_number":                testCustomer,
		"program_id":                  testProgram,
		"loan_id":                     "LOAN-777",
		"user_type":                   "control",
		"tenure_plan":                 90,
		"total_repayment_amount_plan": "123456",
	})

	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestAccountSummaryEndpoint(t *testing.T) {
	env := setupRouter()

	loan := &domain.Loan{
		ID:         uuid.New(),
		LoanID:     "LOAN-001",
		CustomerID: testCustomer,
		StatusCode: domain.LoanStatus30DPD,
	}
	payment := &domain.PaymentRecord{
		ID:                uuid.New(),
		LoanID:            "LOAN-001",
		InstallmentNumber: 1,
		DueDate:           time.Now().AddDate(0, 0, -30),
		DueAmount:         decimal.NewFromInt(150000),
		StatusCode:        domain.PaymentStatus30DPD,
	}

	env.loanRepo.On("GetByCustomerID", mock.Anything, testCustomer).Return([]*domain.Loan{loan}, nil)
	env.paymentRepo.On("GetByLoanID", mock.Anything, "LOAN-001").Return([]*domain.PaymentRecord{payment}, nil)
	env.paymentRepo.On("GetPaybacksByLoanID", mock.Anything, "LOAN-001").Return([]*domain.PaybackTransaction{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/accounts/"+testCustomer+"/summary", nil)
	recorder := httptest.NewRecorder()
	env.router.ServeHTTP(recorder, req)

	require.Equal(t, http.StatusOK, recorder.Code)

	var envelope struct {
		Data struct {
			CustomerID string `json:"customer_id"`
			Loans      []struct {
				LoanStatusID   string `json:"loan_status_id"`
				TotalDueAmount string `json:"total_due_amount"`
			} `json:"loans"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))

	require.Len(t, envelope.Data.Loans, 1)
	assert.Equal(t, "30dpd", envelope.Data.Loans[0].LoanStatusID)
	assert.Equal(t, "150000", envelope.Data.Loans[0].TotalDueAmount)
}

func TestAccountSummaryEndpoint_NotFound(t *testing.T) {
	env := setupRouter()

	env.loanRepo.On("GetByCustomerID", mock.Anything, "999").Return([]*domain.Loan{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/accounts/999/summary", nil)
	recorder := httptest.NewRecorder()
	env.router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusNotFound, recorder.Code)
}
