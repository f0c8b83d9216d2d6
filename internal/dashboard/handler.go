package dashboard

import (
	"net/http"

	"github.com/clientdesk/portal/internal/middleware"
	"github.com/clientdesk/portal/internal/response"
)

// Handler holds HTTP handlers for dashboard endpoints.
type Handler struct {
	svc *Service
}

// NewHandler creates a new dashboard Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// GetStats godoc
//
//	@Summary		Get dashboard stats
//	@Description	Return photo, document, member, and storage counters for the caller's scope.
//	@Tags			dashboard
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	Stats
//	@Failure		401	{object}	map[string]string
//	@Router			/dashboard/stats [get]
func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	stats, err := h.svc.Stats(r.Context(), caller)
	if err != nil {
		response.Internal(w, "dashboard stats", err)
		return
	}

	response.OK(w, stats)
}
