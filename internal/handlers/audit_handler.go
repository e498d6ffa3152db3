package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"grounds-backend/internal/services"
	"grounds-backend/pkg/utils"

	"github.com/gorilla/mux"
)

const defaultHistoryLimit = 50

type AuditHandler struct {
	Service *services.AuditService
}

func NewAuditHandler(s *services.AuditService) *AuditHandler {
	return &AuditHandler{Service: s}
}

func historyLimit(r *http.Request) int {
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 500 {
			return n
		}
	}
	return defaultHistoryLimit
}

// GlobalHistory returns the most recent tracked changes across all entities
func (h *AuditHandler) GlobalHistory(w http.ResponseWriter, r *http.Request) {
	entries, err := h.Service.GlobalHistory(r.Context(), historyLimit(r))
	if err != nil {
		utils.Error(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, entries)
}

// EntityHistory returns the change feed of one entity, newest first
func (h *AuditHandler) EntityHistory(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	entries, err := h.Service.EntityHistory(r.Context(), vars["type"], vars["id"], historyLimit(r))
	if err != nil {
		utils.Error(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, entries)
}

type restoreRequest struct {
	EntityType string `json:"entity_type"`
	EntityID   string `json:"entity_id"`
	EntryID    string `json:"entry_id"`
}

// Restore reconstructs an entity's state as of a past audit entry and
// returns it for review. Applying the state is a normal update so the
// restore itself shows up in the history.
func (h *AuditHandler) Restore(w http.ResponseWriter, r *http.Request) {
	var req restoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.BadRequest(w, "Invalid request body")
		return
	}
	if req.EntityType == "" || req.EntityID == "" || req.EntryID == "" {
		utils.BadRequest(w, "entity_type, entity_id and entry_id are required")
		return
	}

	state, err := h.Service.RestoreToEntry(r.Context(), req.EntityType, req.EntityID, req.EntryID)
	if err != nil {
		utils.Error(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"entity_type": req.EntityType,
		"entity_id":   req.EntityID,
		"entry_id":    req.EntryID,
		"state":       state,
	})
}
