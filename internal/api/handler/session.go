package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/stakemesh/wagerd/internal/api/middleware"
	"github.com/stakemesh/wagerd/internal/api/request"
	"github.com/stakemesh/wagerd/internal/api/response"
	"github.com/stakemesh/wagerd/internal/model"
	"github.com/stakemesh/wagerd/internal/services/admission"
	"github.com/stakemesh/wagerd/internal/services/session"
)

// SessionHandler handles session lifecycle and in-match endpoints
type SessionHandler struct {
	sessionController   *session.Controller
	admissionController *admission.Controller
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(sessionController *session.Controller, admissionController *admission.Controller) *SessionHandler {
	return &SessionHandler{
		sessionController:   sessionController,
		admissionController: admissionController,
	}
}

// Create handles POST /api/v1/sessions
// The authenticated caller becomes the session's authority.
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	authority := middleware.MustGetAccount(r.Context())

	var req request.CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	created, err := h.sessionController.CreateSession(
		r.Context(),
		authority,
		model.SessionID(req.SessionID),
		model.Amount(req.BetAmount),
		model.GameMode(req.Mode),
	)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.SessionFromModel(created))
}

// Get handles GET /api/v1/sessions/{id}
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := model.SessionID(mux.Vars(r)["id"])

	found, err := h.sessionController.GetSession(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SessionFromModel(found))
}

// List handles GET /api/v1/sessions
func (h *SessionHandler) List(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.sessionController.ListSessions(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SessionListFromModel(sessions))
}

// Close handles DELETE /api/v1/sessions/{id}
func (h *SessionHandler) Close(w http.ResponseWriter, r *http.Request) {
	caller := middleware.MustGetAccount(r.Context())
	id := model.SessionID(mux.Vars(r)["id"])

	if err := h.sessionController.CloseSession(r.Context(), caller, id); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// Join handles POST /api/v1/sessions/{id}/join
// The authenticated caller is the player being bound; nobody can stake
// another account's funds.
func (h *SessionHandler) Join(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetAccount(r.Context())
	id := model.SessionID(mux.Vars(r)["id"])

	var req request.JoinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if err := h.admissionController.Join(r.Context(), player, id, req.Team); err != nil {
		WriteError(w, err)
		return
	}

	joined, err := h.sessionController.GetSession(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SessionFromModel(joined))
}

// PayToSpawn handles POST /api/v1/sessions/{id}/spawns
func (h *SessionHandler) PayToSpawn(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetAccount(r.Context())
	id := model.SessionID(mux.Vars(r)["id"])

	if err := h.admissionController.PayToSpawn(r.Context(), player, id); err != nil {
		WriteError(w, err)
		return
	}

	updated, err := h.sessionController.GetSession(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SessionFromModel(updated))
}

// RecordKill handles POST /api/v1/sessions/{id}/kills
func (h *SessionHandler) RecordKill(w http.ResponseWriter, r *http.Request) {
	caller := middleware.MustGetAccount(r.Context())
	id := model.SessionID(mux.Vars(r)["id"])

	var req request.KillRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	err := h.admissionController.RecordKill(
		r.Context(),
		caller,
		id,
		req.KillerTeam, model.AccountID(req.Killer),
		req.VictimTeam, model.AccountID(req.Victim),
	)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}
