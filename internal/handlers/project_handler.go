package handlers

import (
	"encoding/json"
	"net/http"

	"grounds-backend/internal/filtering"
	"grounds-backend/internal/models"
	"grounds-backend/internal/services"
	"grounds-backend/pkg/utils"
)

type ProjectHandler struct {
	Service *services.ProjectService
}

func NewProjectHandler(s *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{Service: s}
}

func (h *ProjectHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	var req models.CreateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.BadRequest(w, "Invalid request body")
		return
	}

	project := &models.Project{
		Name:          req.Name,
		Address:       req.Address,
		ClientID:      req.ClientID,
		TeamID:        req.TeamID,
		AnnualVisits:  req.AnnualVisits,
		VisitDuration: req.VisitDuration,
		ContractStart: req.ContractStart,
		ContractEnd:   req.ContractEnd,
		IrrigationOn:  req.IrrigationOn,
		Notes:         req.Notes,
	}

	if err := h.Service.CreateProject(r.Context(), project, actorFrom(r)); err != nil {
		utils.Error(w, err)
		return
	}

	utils.JSON(w, http.StatusCreated, project)
}

func (h *ProjectHandler) GetProject(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.BadRequest(w, "Invalid project id")
		return
	}

	project, err := h.Service.GetProject(r.Context(), id)
	if err != nil {
		utils.JSON(w, http.StatusNotFound, map[string]string{"error": "Project not found"})
		return
	}

	utils.JSON(w, http.StatusOK, project)
}

// ListProjects returns all projects. Archived ones are included only with
// ?include_archived=true.
func (h *ProjectHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.Service.ListProjects(r.Context(), queryFlag(r, "include_archived"))
	if err != nil {
		utils.Error(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, projects)
}

// FilterProjects runs a filter/sort state posted in the body, the same
// shape a saved preset stores
func (h *ProjectHandler) FilterProjects(w http.ResponseWriter, r *http.Request) {
	var state filtering.State
	if err := json.NewDecoder(r.Body).Decode(&state); err != nil {
		utils.BadRequest(w, "Invalid filter state")
		return
	}

	projects, err := h.Service.FilterProjects(r.Context(), state, queryFlag(r, "include_archived"))
	if err != nil {
		utils.Error(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, projects)
}

func (h *ProjectHandler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.BadRequest(w, "Invalid project id")
		return
	}

	var req models.UpdateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.BadRequest(w, "Invalid request body")
		return
	}

	project := &models.Project{
		ID:            id,
		Name:          req.Name,
		Address:       req.Address,
		ClientID:      req.ClientID,
		TeamID:        req.TeamID,
		AnnualVisits:  req.AnnualVisits,
		VisitDuration: req.VisitDuration,
		ContractStart: req.ContractStart,
		ContractEnd:   req.ContractEnd,
		IrrigationOn:  req.IrrigationOn,
		Notes:         req.Notes,
	}

	if err := h.Service.UpdateProject(r.Context(), project, actorFrom(r)); err != nil {
		utils.Error(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, project)
}

func (h *ProjectHandler) ArchiveProject(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.BadRequest(w, "Invalid project id")
		return
	}

	if err := h.Service.ArchiveProject(r.Context(), id, actorFrom(r)); err != nil {
		utils.Error(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, map[string]string{"status": "archived"})
}

func (h *ProjectHandler) RestoreProject(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.BadRequest(w, "Invalid project id")
		return
	}

	if err := h.Service.RestoreProject(r.Context(), id, actorFrom(r)); err != nil {
		utils.Error(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, map[string]string{"status": "restored"})
}

func (h *ProjectHandler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.BadRequest(w, "Invalid project id")
		return
	}

	if err := h.Service.DeleteProject(r.Context(), id, actorFrom(r)); err != nil {
		utils.Error(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
