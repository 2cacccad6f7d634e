package handler

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/witjaksana/loan-pricing/internal/service"
	"github.com/witjaksana/loan-pricing/pkg/response"
)

type CollectionsHandler struct {
	service *service.CollectionsService
}

func NewCollectionsHandler(service *service.CollectionsService) *CollectionsHandler {
	return &CollectionsHandler{service: service}
}

// AccountSummary handles GET /api/v1/accounts/{customerId}/summary
func (h *CollectionsHandler) AccountSummary(w http.ResponseWriter, r *http.Request) {
	customerID := mux.Vars(r)["customerId"]
	if customerID == "" {
		response.BadRequest(w, "customerId is required", nil)
		return
	}

	summary, err := h.service.AccountSummary(r.Context(), customerID, time.Now())
	if err != nil {
		response.BusinessError(w, err)
		return
	}

	response.Success(w, summary)
}
