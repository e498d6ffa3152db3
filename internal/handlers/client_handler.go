package handlers

import (
	"encoding/json"
	"net/http"

	"grounds-backend/internal/models"
	"grounds-backend/internal/services"
	"grounds-backend/pkg/utils"
)

type ClientHandler struct {
	Service *services.ClientService
}

func NewClientHandler(s *services.ClientService) *ClientHandler {
	return &ClientHandler{Service: s}
}

// CreateClient registers a portal client. The response carries the plaintext
// access code exactly once; afterwards only the hash exists.
func (h *ClientHandler) CreateClient(w http.ResponseWriter, r *http.Request) {
	var client models.ClientAccount
	if err := json.NewDecoder(r.Body).Decode(&client); err != nil {
		utils.BadRequest(w, "Invalid request body")
		return
	}

	code, err := h.Service.CreateClient(r.Context(), &client, actorFrom(r))
	if err != nil {
		utils.Error(w, err)
		return
	}

	utils.JSON(w, http.StatusCreated, map[string]interface{}{
		"client":      client,
		"access_code": code,
	})
}

func (h *ClientHandler) GetClient(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.BadRequest(w, "Invalid client id")
		return
	}

	client, err := h.Service.GetClient(r.Context(), id)
	if err != nil {
		utils.JSON(w, http.StatusNotFound, map[string]string{"error": "Client not found"})
		return
	}

	utils.JSON(w, http.StatusOK, client)
}

func (h *ClientHandler) ListClients(w http.ResponseWriter, r *http.Request) {
	clients, err := h.Service.ListClients(r.Context())
	if err != nil {
		utils.Error(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, clients)
}

func (h *ClientHandler) UpdateClient(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.BadRequest(w, "Invalid client id")
		return
	}

	var client models.ClientAccount
	if err := json.NewDecoder(r.Body).Decode(&client); err != nil {
		utils.BadRequest(w, "Invalid request body")
		return
	}
	client.ID = id

	if err := h.Service.UpdateClient(r.Context(), &client, actorFrom(r)); err != nil {
		utils.Error(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, client)
}

// RotateAccessCode invalidates the current code and returns a fresh one,
// again shown only in this response
func (h *ClientHandler) RotateAccessCode(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.BadRequest(w, "Invalid client id")
		return
	}

	code, err := h.Service.RotateAccessCode(r.Context(), id, actorFrom(r))
	if err != nil {
		utils.Error(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, map[string]string{"access_code": code})
}

func (h *ClientHandler) DeleteClient(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.BadRequest(w, "Invalid client id")
		return
	}

	if err := h.Service.DeleteClient(r.Context(), id, actorFrom(r)); err != nil {
		utils.Error(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
