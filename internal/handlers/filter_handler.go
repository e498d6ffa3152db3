package handlers

import (
	"encoding/json"
	"net/http"

	"grounds-backend/internal/filtering"
	"grounds-backend/internal/middleware"
	"grounds-backend/internal/models"
	"grounds-backend/internal/repositories"
	"grounds-backend/pkg/utils"
)

// FilterHandler persists named filter/sort presets per user. Presets are
// validated as filtering.State before they are stored so a saved preset
// can always be applied later.
type FilterHandler struct {
	Repo *repositories.SavedFilterRepository
}

func NewFilterHandler(repo *repositories.SavedFilterRepository) *FilterHandler {
	return &FilterHandler{Repo: repo}
}

func validScope(scope string) bool {
	return scope == "projects" || scope == "worklogs"
}

// SavePreset creates or overwrites a preset with the same owner, scope and
// name
func (h *FilterHandler) SavePreset(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		utils.JSON(w, http.StatusUnauthorized, map[string]string{"error": "Authentication required"})
		return
	}

	var req models.SaveFilterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.BadRequest(w, "Invalid request body")
		return
	}
	if req.Name == "" {
		utils.BadRequest(w, "Preset name is required")
		return
	}
	if !validScope(req.Scope) {
		utils.BadRequest(w, "Scope must be 'projects' or 'worklogs'")
		return
	}

	var state filtering.State
	if err := json.Unmarshal(req.Config, &state); err != nil {
		utils.BadRequest(w, "Invalid filter config")
		return
	}
	if err := state.Validate(); err != nil {
		utils.BadRequest(w, err.Error())
		return
	}

	preset := &models.SavedFilter{
		Name:    req.Name,
		Scope:   req.Scope,
		Config:  req.Config,
		OwnerID: userID,
	}

	if err := h.Repo.Save(r.Context(), preset); err != nil {
		utils.Error(w, err)
		return
	}

	utils.JSON(w, http.StatusCreated, preset)
}

// ListPresets returns the caller's presets, optionally narrowed with
// ?scope=
func (h *FilterHandler) ListPresets(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		utils.JSON(w, http.StatusUnauthorized, map[string]string{"error": "Authentication required"})
		return
	}

	scope := r.URL.Query().Get("scope")
	if scope != "" && !validScope(scope) {
		utils.BadRequest(w, "Scope must be 'projects' or 'worklogs'")
		return
	}

	presets, err := h.Repo.ListByOwner(r.Context(), userID, scope)
	if err != nil {
		utils.Error(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, presets)
}

// DeletePreset removes one of the caller's presets. Deleting someone
// else's preset is a silent no-op at the SQL level and reported as not
// found.
func (h *FilterHandler) DeletePreset(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		utils.JSON(w, http.StatusUnauthorized, map[string]string{"error": "Authentication required"})
		return
	}

	id, err := pathID(r)
	if err != nil {
		utils.BadRequest(w, "Invalid preset id")
		return
	}

	if err := h.Repo.Delete(r.Context(), id, userID); err != nil {
		utils.JSON(w, http.StatusNotFound, map[string]string{"error": "Preset not found"})
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
