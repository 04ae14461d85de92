package api

import (
	"context"
	"net/http"

	"github.com/okian/medaltips/internal/domain/types"
)

// RosterDependencies defines the interface for player and athlete listings.
type RosterDependencies interface {
	Players() []string
	Athletes(ctx context.Context, sport string) ([]types.AthleteRow, error)
	Sports(ctx context.Context) ([]string, error)
}

// RosterHandler handles player, athlete and sport listings.
type RosterHandler struct {
	deps RosterDependencies
}

// NewRosterHandler creates a new roster handler.
func NewRosterHandler(deps RosterDependencies) *RosterHandler {
	return &RosterHandler{deps: deps}
}

// HandleGetPlayers handles GET /players requests.
func (h *RosterHandler) HandleGetPlayers(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.deps.Players())
}

// HandleGetAthletes handles GET /athletes?sport=S requests. Without sport
// the whole registry is returned.
func (h *RosterHandler) HandleGetAthletes(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_athletes"
	rows, err := h.deps.Athletes(r.Context(), r.URL.Query().Get("sport"))
	if err != nil {
		writeFailure(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

// HandleGetSports handles GET /sports requests.
func (h *RosterHandler) HandleGetSports(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_sports"
	sports, err := h.deps.Sports(r.Context())
	if err != nil {
		writeFailure(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, sports)
}
