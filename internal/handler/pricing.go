package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/witjaksana/loan-pricing/internal/domain"
	"github.com/witjaksana/loan-pricing/internal/service"
	"github.com/witjaksana/loan-pricing/pkg/response"
)

type PricingHandler struct {
	service   *service.PricingService
	validator *validator.Validate
}

func NewPricingHandler(service *service.PricingService) *PricingHandler {
	return &PricingHandler{
		service:   service,
		validator: validator.New(),
	}
}

// UpsertOffer handles POST /api/v1/offers
func (h *PricingHandler) UpsertOffer(w http.ResponseWriter, r *http.Request) {
	var request domain.UpsertOfferRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		response.BadRequest(w, "invalid request body", err)
		return
	}

	if err := h.validator.Struct(&request); err != nil {
		response.BadRequest(w, "request validation failed", err)
		return
	}

	offer, err := h.service.IngestOffer(r.Context(), &request)
	if err != nil {
		response.BusinessError(w, err)
		return
	}

	response.Created(w, offer)
}

// PaymentPlans handles POST /api/v1/payment_plans
func (h *PricingHandler) PaymentPlans(w http.ResponseWriter, r *http.Request) {
	var request domain.PaymentPlanRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		response.BadRequest(w, "invalid request body", err)
		return
	}

	if err := h.validator.Struct(&request); err != nil {
		response.BadRequest(w, "request validation failed", err)
		return
	}

	result, err := h.service.GeneratePaymentPlans(r.Context(), &request)
	if err != nil {
		response.BusinessError(w, err)
		return
	}

	response.Success(w, result)
}

// ChoosePaymentPlan handles POST /api/v1/choose_payment_plan
func (h *PricingHandler) ChoosePaymentPlan(w http.ResponseWriter, r *http.Request) {
	var request domain.ChoosePaymentPlanRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		response.BadRequest(w, "invalid request body", err)
		return
	}

	if err := h.validator.Struct(&request); err != nil {
		response.BadRequest(w, "request validation failed", err)
		return
	}

	result, err := h.service.ChoosePaymentPlan(r.Context(), &request)
	if err != nil {
		response.BusinessError(w, err)
		return
	}

	response.Created(w, result)
}
