package expense

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/alvarosanz/flatshare/internal/flat"
	"github.com/alvarosanz/flatshare/pkg/middleware"
	"github.com/alvarosanz/flatshare/pkg/response"
)

// Handler handles HTTP requests for expense operations
type Handler struct {
	service *Service
}

// NewHandler creates a new expense handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for expense endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.List)
	r.Post("/", h.Create)

	return r
}

// List handles GET /expenses?flat_id=&month=&include_members=
// @Summary      List flat expenses
// @Description  List a flat's expenses, optionally filtered to a month and with the member roster attached
// @Tags         expenses
// @Produce      json
// @Param        flat_id query string true "Flat ID"
// @Param        month query string false "Month key (YYYY-MM)"
// @Param        include_members query bool false "Include flat members"
// @Success      200 {object} response.APIResponse{data=ListExpensesResponse}
// @Failure      400 {object} response.APIResponse
// @Failure      403 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /expenses [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
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
	includeMembers := r.URL.Query().Get("include_members") == "true"

	expenses, members, err := h.service.ListByFlat(r.Context(), userID, flatID, month, includeMembers)
	if err != nil {
		writeError(w, err, "Failed to list expenses")
		return
	}

	resp := &ListExpensesResponse{Expenses: make([]*ExpenseResponse, len(expenses))}
	for i, e := range expenses {
		resp.Expenses[i] = e.ToResponse()
	}
	if includeMembers {
		resp.Members = make([]*flat.MemberResponse, len(members))
		for i, m := range members {
			resp.Members[i] = m.ToResponse()
		}
	}

	response.JSON(w, http.StatusOK, resp)
}

// Create handles POST /expenses
// @Summary      Record a new expense
// @Tags         expenses
// @Accept       json
// @Produce      json
// @Param        request body CreateExpenseRequest true "Expense creation request"
// @Success      201 {object} response.APIResponse{data=ExpenseResponse}
// @Failure      400 {object} response.APIResponse
// @Failure      403 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /expenses [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	var req CreateExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	created, err := h.service.Create(r.Context(), userID, &req)
	if err != nil {
		writeError(w, err, "Failed to create expense")
		return
	}

	response.JSON(w, http.StatusCreated, created.ToResponse())
}

// writeError maps service errors onto HTTP statuses
func writeError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, ErrInvalidPayload),
		errors.Is(err, ErrInvalidDate),
		errors.Is(err, ErrInvalidMonth),
		errors.Is(err, ErrInvalidParticipant):
		response.BadRequest(w, err.Error())
	case errors.Is(err, flat.ErrNotFlatMember):
		response.Forbidden(w, err.Error())
	case errors.Is(err, flat.ErrFlatNotFound):
		response.NotFound(w, err.Error())
	default:
		response.InternalError(w, fallback)
	}
}
