package profile

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/alvarosanz/flatshare/pkg/response"
)

// Handler handles HTTP requests for profile operations
type Handler struct {
	service *Service
}

// NewHandler creates a new profile handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for profile endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/{id}", h.GetByID)

	return r
}

// GetByID handles GET /profiles/{id}
// @Summary      Get profile by ID
// @Tags         profiles
// @Produce      json
// @Param        id path string true "Profile ID"
// @Success      200 {object} response.APIResponse{data=Profile}
// @Failure      404 {object} response.APIResponse
// @Router       /profiles/{id} [get]
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	p, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrProfileNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to get profile")
		return
	}

	response.JSON(w, http.StatusOK, p)
}
