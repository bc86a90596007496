package flat

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/alvarosanz/flatshare/pkg/middleware"
	"github.com/alvarosanz/flatshare/pkg/response"
)

// Handler handles HTTP requests for flat operations
type Handler struct {
	service *Service
}

// NewHandler creates a new flat handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for flat endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Create)
	r.Get("/{id}", h.GetByID)
	r.Get("/{id}/members", h.GetMembers)

	return r
}

// Create handles POST /flats
// @Summary      Create a new flat
// @Tags         flats
// @Accept       json
// @Produce      json
// @Param        request body CreateFlatRequest true "Flat creation request"
// @Success      201 {object} response.APIResponse{data=Flat}
// @Failure      400 {object} response.APIResponse
// @Router       /flats [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	var req CreateFlatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if req.Address == "" || req.City == "" {
		response.BadRequest(w, "address and city are required")
		return
	}

	f, err := h.service.Create(r.Context(), userID, &req)
	if err != nil {
		response.InternalError(w, "Failed to create flat")
		return
	}

	response.JSON(w, http.StatusCreated, f)
}

// GetByID handles GET /flats/{id}
// @Summary      Get flat by ID
// @Tags         flats
// @Produce      json
// @Param        id path string true "Flat ID"
// @Success      200 {object} response.APIResponse{data=Flat}
// @Failure      403 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /flats/{id} [get]
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	id := chi.URLParam(r, "id")

	allowed, err := h.service.CanAccess(r.Context(), id, userID)
	if err != nil {
		if errors.Is(err, ErrFlatNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to get flat")
		return
	}
	if !allowed {
		response.Forbidden(w, ErrNotFlatMember.Error())
		return
	}

	f, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		response.InternalError(w, "Failed to get flat")
		return
	}

	response.JSON(w, http.StatusOK, f)
}

// GetMembers handles GET /flats/{id}/members
// @Summary      List flat members
// @Tags         flats
// @Produce      json
// @Param        id path string true "Flat ID"
// @Success      200 {object} response.APIResponse{data=[]MemberResponse}
// @Failure      403 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /flats/{id}/members [get]
func (h *Handler) GetMembers(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	id := chi.URLParam(r, "id")

	allowed, err := h.service.CanAccess(r.Context(), id, userID)
	if err != nil {
		if errors.Is(err, ErrFlatNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to list members")
		return
	}
	if !allowed {
		response.Forbidden(w, ErrNotFlatMember.Error())
		return
	}

	members, err := h.service.Members(r.Context(), id)
	if err != nil {
		response.InternalError(w, "Failed to list members")
		return
	}

	resp := make([]*MemberResponse, len(members))
	for i, m := range members {
		resp[i] = m.ToResponse()
	}

	response.JSON(w, http.StatusOK, resp)
}
