package handlers

import (
	"encoding/json"
	"net/http"

	"grounds-backend/internal/middleware"
	"grounds-backend/internal/models"
	"grounds-backend/internal/services"
	"grounds-backend/pkg/utils"
)

// PortalHandler serves the read-only client portal. Every data endpoint
// scopes its queries to the authenticated client, never trusting ids from
// the request.
type PortalHandler struct {
	Clients *services.ClientService
	Portal  *services.PortalService
}

func NewPortalHandler(clients *services.ClientService, portal *services.PortalService) *PortalHandler {
	return &PortalHandler{Clients: clients, Portal: portal}
}

// Login authenticates a client with email + access code
func (h *PortalHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.PortalLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.BadRequest(w, "Invalid request body")
		return
	}

	token, client, err := h.Clients.PortalLogin(r.Context(), &req)
	if err != nil {
		utils.Error(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"token":  token,
		"client": client,
	})
}

func clientID(r *http.Request) (int, bool) {
	return middleware.GetClientIDFromContext(r.Context())
}

// Dashboard returns the client's sites with progress, upcoming visits and
// recent work logs
func (h *PortalHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	id, ok := clientID(r)
	if !ok {
		utils.JSON(w, http.StatusUnauthorized, map[string]string{"error": "Authentication required"})
		return
	}

	data, err := h.Portal.GetDashboardData(r.Context(), id)
	if err != nil {
		utils.Error(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, data)
}

// Schedule returns the month plan restricted to the client's own sites
func (h *PortalHandler) Schedule(w http.ResponseWriter, r *http.Request) {
	id, ok := clientID(r)
	if !ok {
		utils.JSON(w, http.StatusUnauthorized, map[string]string{"error": "Authentication required"})
		return
	}

	month, year, err := monthYearParams(r)
	if err != nil {
		utils.BadRequest(w, "Invalid month or year")
		return
	}

	view, err := h.Portal.MonthSchedule(r.Context(), id, month, year)
	if err != nil {
		utils.Error(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, view)
}

// WorkLogs returns the work history across the client's sites
func (h *PortalHandler) WorkLogs(w http.ResponseWriter, r *http.Request) {
	id, ok := clientID(r)
	if !ok {
		utils.JSON(w, http.StatusUnauthorized, map[string]string{"error": "Authentication required"})
		return
	}

	logs, err := h.Portal.WorkLogs(r.Context(), id)
	if err != nil {
		utils.Error(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, logs)
}
