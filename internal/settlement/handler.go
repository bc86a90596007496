package settlement

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/alvarosanz/flatshare/internal/flat"
	"github.com/alvarosanz/flatshare/pkg/middleware"
	"github.com/alvarosanz/flatshare/pkg/response"
)

// Handler handles HTTP requests for settlement operations
type Handler struct {
	service *Service
}

// NewHandler creates a new settlement handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for settlement endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.GetSummary)
	r.Post("/payments", h.SetPaid)

	return r
}

// GetSummary handles GET /settlements?flat_id=&month=
// @Summary      Get settlement summary
// @Description  Compute who paid what, who owes what, and the transfers that settle the period
// @Tags         settlements
// @Produce      json
// @Param        flat_id query string true "Flat ID"
// @Param        month query string false "Month key (YYYY-MM); omit for all time"
// @Success      200 {object} response.APIResponse{data=SummaryResponse}
// @Failure      400 {object} response.APIResponse
// @Failure      403 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /settlements [get]
func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	flatID := r.URL.Query().Get("flat_id")
	if flatID == "" {
		response.BadRequest(w, "flat_id is required")
		return
	}
	month := r.URL.Query().Get("month")

	summary, err := h.service.Summary(r.Context(), userID, flatID, month)
	if err != nil {
		writeError(w, err, "Failed to compute settlement")
		return
	}

	response.JSON(w, http.StatusOK, summary)
}

// SetPaid handles POST /settlements/payments
// @Summary      Mark or unmark a transfer as paid
// @Description  Idempotently toggle a transfer's paid record; balances are recomputed on the next read
// @Tags         settlements
// @Accept       json
// @Produce      json
// @Param        request body SetPaidRequest true "Payment toggle request"
// @Success      200 {object} response.APIResponse
// @Failure      400 {object} response.APIResponse
// @Failure      403 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /settlements/payments [post]
func (h *Handler) SetPaid(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	var req SetPaidRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.service.SetPaid(r.Context(), userID, &req); err != nil {
		writeError(w, err, "Failed to update payment")
		return
	}

	response.JSON(w, http.StatusOK, map[string]bool{"success": true})
}

// writeError maps service errors onto HTTP statuses
func writeError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, ErrInvalidPayload), errors.Is(err, ErrInvalidMonth):
		response.BadRequest(w, err.Error())
	case errors.Is(err, flat.ErrNotFlatMember):
		response.Forbidden(w, err.Error())
	case errors.Is(err, flat.ErrFlatNotFound):
		response.NotFound(w, err.Error())
	default:
		response.InternalError(w, fallback)
	}
}
