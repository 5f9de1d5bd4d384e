package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/stakemesh/wagerd/internal/api/middleware"
	"github.com/stakemesh/wagerd/internal/api/request"
	"github.com/stakemesh/wagerd/internal/api/response"
	"github.com/stakemesh/wagerd/internal/model"
	"github.com/stakemesh/wagerd/internal/services/session"
	"github.com/stakemesh/wagerd/internal/services/settlement"
)

// SettlementHandler handles settlement and refund endpoints
type SettlementHandler struct {
	sessionController *session.Controller
	engine            *settlement.Engine
}

// NewSettlementHandler creates a new settlement handler
func NewSettlementHandler(sessionController *session.Controller, engine *settlement.Engine) *SettlementHandler {
	return &SettlementHandler{
		sessionController: sessionController,
		engine:            engine,
	}
}

// Settle handles POST /api/v1/sessions/{id}/settle
func (h *SettlementHandler) Settle(w http.ResponseWriter, r *http.Request) {
	caller := middleware.MustGetAccount(r.Context())
	id := model.SessionID(mux.Vars(r)["id"])

	var req request.SettleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	recipients := make([]model.AccountID, len(req.Recipients))
	for i, recipient := range req.Recipients {
		recipients[i] = model.AccountID(recipient)
	}

	if err := h.engine.Settle(r.Context(), caller, id, req.WinningTeam, recipients); err != nil {
		WriteError(w, err)
		return
	}

	settled, err := h.sessionController.GetSession(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SessionFromModel(settled))
}

// SettleBySpawns handles POST /api/v1/sessions/{id}/settle-by-spawns
func (h *SettlementHandler) SettleBySpawns(w http.ResponseWriter, r *http.Request) {
	caller := middleware.MustGetAccount(r.Context())
	id := model.SessionID(mux.Vars(r)["id"])

	var req request.SettleBySpawnsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	recipients := make([]model.AccountID, len(req.Recipients))
	for i, recipient := range req.Recipients {
		recipients[i] = model.AccountID(recipient)
	}

	if err := h.engine.SettleBySpawns(r.Context(), caller, id, recipients); err != nil {
		WriteError(w, err)
		return
	}

	settled, err := h.sessionController.GetSession(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SessionFromModel(settled))
}

// Refund handles POST /api/v1/sessions/{id}/refund
func (h *SettlementHandler) Refund(w http.ResponseWriter, r *http.Request) {
	caller := middleware.MustGetAccount(r.Context())
	id := model.SessionID(mux.Vars(r)["id"])

	if err := h.engine.Refund(r.Context(), caller, id); err != nil {
		WriteError(w, err)
		return
	}

	refunded, err := h.sessionController.GetSession(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SessionFromModel(refunded))
}
