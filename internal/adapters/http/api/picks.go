package api

import (
	"context"
	"net/http"

	"github.com/okian/medaltips/internal/domain/medal"
	"github.com/okian/medaltips/internal/domain/types"
)

// PicksDependencies defines the interface for prediction operations.
type PicksDependencies interface {
	PicksFor(ctx context.Context, player string) ([]types.MedalRow, error)
	UpsertPick(ctx context.Context, player, athleteID string, m medal.Medal) error
	RemovePick(ctx context.Context, player, athleteID string) error
}

// PicksHandler handles prediction requests.
type PicksHandler struct {
	deps PicksDependencies
}

// NewPicksHandler creates a new picks handler.
func NewPicksHandler(deps PicksDependencies) *PicksHandler {
	return &PicksHandler{deps: deps}
}

// HandleGetPicks handles GET /picks/{player} requests.
func (h *PicksHandler) HandleGetPicks(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_picks"
	rows, err := h.deps.PicksFor(r.Context(), r.PathValue("player"))
	if err != nil {
		writeFailure(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

// HandlePutPick handles PUT /picks/{player}/{athlete_id} requests.
func (h *PicksHandler) HandlePutPick(w http.ResponseWriter, r *http.Request) {
	const op = "api.put_pick"
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	var req medalRequest
	if err := decodeJSON(r, &req); err != nil {
		writeFailure(w, WrapKind(op, ErrBadRequest, err))
		return
	}
	m, err := req.parse()
	if err != nil {
		writeFailure(w, WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := h.deps.UpsertPick(r.Context(), r.PathValue("player"), r.PathValue("athlete_id"), m); err != nil {
		writeFailure(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, ackResponse{Status: "saved"})
}

// HandleDeletePick handles DELETE /picks/{player}/{athlete_id} requests.
func (h *PicksHandler) HandleDeletePick(w http.ResponseWriter, r *http.Request) {
	const op = "api.delete_pick"
	if err := h.deps.RemovePick(r.Context(), r.PathValue("player"), r.PathValue("athlete_id")); err != nil {
		writeFailure(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, ackResponse{Status: "removed"})
}
