package handlers

import (
	"encoding/json"
	"net/http"

	"grounds-backend/internal/models"
	"grounds-backend/internal/services"
	"grounds-backend/pkg/utils"
)

// PersonnelHandler serves both personnel and team endpoints; the two are
// managed together on the staff screen.
type PersonnelHandler struct {
	Service *services.PersonnelService
}

func NewPersonnelHandler(s *services.PersonnelService) *PersonnelHandler {
	return &PersonnelHandler{Service: s}
}

func (h *PersonnelHandler) CreatePersonnel(w http.ResponseWriter, r *http.Request) {
	var req models.CreatePersonnelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.BadRequest(w, "Invalid request body")
		return
	}

	p := &models.Personnel{
		Name:     req.Name,
		Phone:    req.Phone,
		Position: req.Position,
		TeamID:   req.TeamID,
		IsActive: true,
	}

	if err := h.Service.CreatePersonnel(r.Context(), p, actorFrom(r)); err != nil {
		utils.Error(w, err)
		return
	}

	utils.JSON(w, http.StatusCreated, p)
}

func (h *PersonnelHandler) GetPersonnel(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.BadRequest(w, "Invalid personnel id")
		return
	}

	p, err := h.Service.GetPersonnel(r.Context(), id)
	if err != nil {
		utils.JSON(w, http.StatusNotFound, map[string]string{"error": "Personnel not found"})
		return
	}

	utils.JSON(w, http.StatusOK, p)
}

func (h *PersonnelHandler) ListPersonnel(w http.ResponseWriter, r *http.Request) {
	list, err := h.Service.ListPersonnel(r.Context(), queryFlag(r, "include_archived"))
	if err != nil {
		utils.Error(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, list)
}

func (h *PersonnelHandler) UpdatePersonnel(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.BadRequest(w, "Invalid personnel id")
		return
	}

	var req models.UpdatePersonnelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.BadRequest(w, "Invalid request body")
		return
	}

	p := &models.Personnel{
		ID:       id,
		Name:     req.Name,
		Phone:    req.Phone,
		Position: req.Position,
		TeamID:   req.TeamID,
		IsActive: req.IsActive,
	}

	if err := h.Service.UpdatePersonnel(r.Context(), p, actorFrom(r)); err != nil {
		utils.Error(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, p)
}

func (h *PersonnelHandler) ArchivePersonnel(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.BadRequest(w, "Invalid personnel id")
		return
	}

	if err := h.Service.ArchivePersonnel(r.Context(), id, actorFrom(r)); err != nil {
		utils.Error(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, map[string]string{"status": "archived"})
}

func (h *PersonnelHandler) RestorePersonnel(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.BadRequest(w, "Invalid personnel id")
		return
	}

	if err := h.Service.RestorePersonnel(r.Context(), id, actorFrom(r)); err != nil {
		utils.Error(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, map[string]string{"status": "restored"})
}

func (h *PersonnelHandler) DeletePersonnel(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.BadRequest(w, "Invalid personnel id")
		return
	}

	if err := h.Service.DeletePersonnel(r.Context(), id, actorFrom(r)); err != nil {
		utils.Error(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *PersonnelHandler) CreateTeam(w http.ResponseWriter, r *http.Request) {
	var req models.CreateTeamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.BadRequest(w, "Invalid request body")
		return
	}

	team := &models.Team{
		Name:  req.Name,
		Color: req.Color,
	}

	if err := h.Service.CreateTeam(r.Context(), team, actorFrom(r)); err != nil {
		utils.Error(w, err)
		return
	}

	utils.JSON(w, http.StatusCreated, team)
}

func (h *PersonnelHandler) GetTeam(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.BadRequest(w, "Invalid team id")
		return
	}

	team, err := h.Service.GetTeam(r.Context(), id)
	if err != nil {
		utils.JSON(w, http.StatusNotFound, map[string]string{"error": "Team not found"})
		return
	}

	utils.JSON(w, http.StatusOK, team)
}

func (h *PersonnelHandler) ListTeams(w http.ResponseWriter, r *http.Request) {
	teams, err := h.Service.ListTeams(r.Context())
	if err != nil {
		utils.Error(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, teams)
}

// TeamMembers returns the active roster of a team
func (h *PersonnelHandler) TeamMembers(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.BadRequest(w, "Invalid team id")
		return
	}

	members, err := h.Service.TeamMembers(r.Context(), id)
	if err != nil {
		utils.Error(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, members)
}

func (h *PersonnelHandler) UpdateTeam(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.BadRequest(w, "Invalid team id")
		return
	}

	var req models.CreateTeamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.BadRequest(w, "Invalid request body")
		return
	}

	team := &models.Team{
		ID:    id,
		Name:  req.Name,
		Color: req.Color,
	}

	if err := h.Service.UpdateTeam(r.Context(), team, actorFrom(r)); err != nil {
		utils.Error(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, team)
}

func (h *PersonnelHandler) DeleteTeam(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.BadRequest(w, "Invalid team id")
		return
	}

	if err := h.Service.DeleteTeam(r.Context(), id, actorFrom(r)); err != nil {
		utils.Error(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
