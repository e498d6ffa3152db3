package handlers

import (
	"encoding/json"
	"net/http"

	"grounds-backend/internal/filtering"
	"grounds-backend/internal/models"
	"grounds-backend/internal/services"
	"grounds-backend/pkg/utils"
)

type WorkLogHandler struct {
	Service *services.WorkLogService
}

func NewWorkLogHandler(s *services.WorkLogService) *WorkLogHandler {
	return &WorkLogHandler{Service: s}
}

// CreateWorkLog records a completed work day. A body without project_id
// creates a blank worksheet.
func (h *WorkLogHandler) CreateWorkLog(w http.ResponseWriter, r *http.Request) {
	var req models.CreateWorkLogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.BadRequest(w, "Invalid request body")
		return
	}

	wl := &models.WorkLog{
		ProjectID:     req.ProjectID,
		SiteAddress:   req.SiteAddress,
		Date:          req.Date,
		Personnel:     req.Personnel,
		Departure:     req.Departure,
		Arrival:       req.Arrival,
		End:           req.End,
		BreakTime:     req.BreakTime,
		TotalHours:    req.TotalHours,
		WaterConsumed: req.WaterConsumed,
		Tasks:         req.Tasks,
		Notes:         req.Notes,
		HourlyRate:    req.HourlyRate,
		Invoiced:      req.Invoiced,
		SignedByName:  req.SignedByName,
		Consumables:   req.Consumables,
	}

	if err := h.Service.CreateWorkLog(r.Context(), wl, actorFrom(r)); err != nil {
		utils.Error(w, err)
		return
	}

	utils.JSON(w, http.StatusCreated, wl)
}

func (h *WorkLogHandler) GetWorkLog(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.BadRequest(w, "Invalid work log id")
		return
	}

	wl, err := h.Service.GetWorkLog(r.Context(), id)
	if err != nil {
		utils.JSON(w, http.StatusNotFound, map[string]string{"error": "Work log not found"})
		return
	}

	utils.JSON(w, http.StatusOK, wl)
}

func (h *WorkLogHandler) ListWorkLogs(w http.ResponseWriter, r *http.Request) {
	logs, err := h.Service.ListWorkLogs(r.Context(), queryFlag(r, "include_archived"))
	if err != nil {
		utils.Error(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, logs)
}

// FilterWorkLogs runs a filter/sort state posted in the body
func (h *WorkLogHandler) FilterWorkLogs(w http.ResponseWriter, r *http.Request) {
	var state filtering.State
	if err := json.NewDecoder(r.Body).Decode(&state); err != nil {
		utils.BadRequest(w, "Invalid filter state")
		return
	}

	logs, err := h.Service.FilterWorkLogs(r.Context(), state, queryFlag(r, "include_archived"))
	if err != nil {
		utils.Error(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, logs)
}

// ListByProject returns a project's work logs oldest first, the order they
// appear on the printed follow-up sheet
func (h *WorkLogHandler) ListByProject(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.BadRequest(w, "Invalid project id")
		return
	}

	logs, err := h.Service.ListByProject(r.Context(), id)
	if err != nil {
		utils.Error(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, logs)
}

func (h *WorkLogHandler) UpdateWorkLog(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.BadRequest(w, "Invalid work log id")
		return
	}

	var req models.UpdateWorkLogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.BadRequest(w, "Invalid request body")
		return
	}

	wl := &models.WorkLog{
		ID:            id,
		SiteAddress:   req.SiteAddress,
		Date:          req.Date,
		Personnel:     req.Personnel,
		Departure:     req.Departure,
		Arrival:       req.Arrival,
		End:           req.End,
		BreakTime:     req.BreakTime,
		TotalHours:    req.TotalHours,
		WaterConsumed: req.WaterConsumed,
		Tasks:         req.Tasks,
		Notes:         req.Notes,
		HourlyRate:    req.HourlyRate,
		Invoiced:      req.Invoiced,
		SignedByName:  req.SignedByName,
		Consumables:   req.Consumables,
	}

	if err := h.Service.UpdateWorkLog(r.Context(), wl, actorFrom(r)); err != nil {
		utils.Error(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, wl)
}

func (h *WorkLogHandler) ArchiveWorkLog(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.BadRequest(w, "Invalid work log id")
		return
	}

	if err := h.Service.ArchiveWorkLog(r.Context(), id, actorFrom(r)); err != nil {
		utils.Error(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, map[string]string{"status": "archived"})
}

func (h *WorkLogHandler) RestoreWorkLog(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.BadRequest(w, "Invalid work log id")
		return
	}

	if err := h.Service.RestoreWorkLog(r.Context(), id, actorFrom(r)); err != nil {
		utils.Error(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, map[string]string{"status": "restored"})
}

func (h *WorkLogHandler) DeleteWorkLog(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.BadRequest(w, "Invalid work log id")
		return
	}

	if err := h.Service.DeleteWorkLog(r.Context(), id, actorFrom(r)); err != nil {
		utils.Error(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
