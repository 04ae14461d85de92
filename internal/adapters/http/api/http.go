// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/okian/medaltips/internal/domain/medal"
	"github.com/okian/medaltips/internal/domain/types"
)

// maxBodyBytes caps request bodies, including uploaded backups.
const maxBodyBytes = 4 << 20

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	StatsProvider
	ScoreboardDependencies
	RosterDependencies
	ResultsDependencies
	PicksDependencies
	BackupDependencies
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler     *HealthHandler
	statsHandler      *StatsHandler
	scoreboardHandler *ScoreboardHandler
	rosterHandler     *RosterHandler
	resultsHandler    *ResultsHandler
	picksHandler      *PicksHandler
	backupHandler     *BackupHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies) *Server {
	return &Server{
		healthHandler:     NewHealthHandler(),
		statsHandler:      NewStatsHandler(deps),
		scoreboardHandler: NewScoreboardHandler(deps),
		rosterHandler:     NewRosterHandler(deps),
		resultsHandler:    NewResultsHandler(deps),
		picksHandler:      NewPicksHandler(deps),
		backupHandler:     NewBackupHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("GET /stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("GET /scoreboard", MetricsMiddleware(s.scoreboardHandler.HandleGetScoreboard, "scoreboard"))

	mux.HandleFunc("GET /players", MetricsMiddleware(s.rosterHandler.HandleGetPlayers, "players"))
	mux.HandleFunc("GET /athletes", MetricsMiddleware(s.rosterHandler.HandleGetAthletes, "athletes"))
	mux.HandleFunc("GET /sports", MetricsMiddleware(s.rosterHandler.HandleGetSports, "sports"))

	mux.HandleFunc("GET /results", MetricsMiddleware(s.resultsHandler.HandleGetResults, "results"))
	mux.HandleFunc("PUT /results", MetricsMiddleware(s.resultsHandler.HandlePutResults, "results"))

	mux.HandleFunc("GET /picks/{player}", MetricsMiddleware(s.picksHandler.HandleGetPicks, "picks"))
	mux.HandleFunc("PUT /picks/{player}/{athlete_id}", MetricsMiddleware(s.picksHandler.HandlePutPick, "picks"))
	mux.HandleFunc("DELETE /picks/{player}/{athlete_id}", MetricsMiddleware(s.picksHandler.HandleDeletePick, "picks"))

	mux.HandleFunc("GET /backup/results", MetricsMiddleware(s.backupHandler.HandleExportResults, "backup"))
	mux.HandleFunc("POST /backup/results", MetricsMiddleware(s.backupHandler.HandleImportResults, "backup"))
	mux.HandleFunc("GET /backup/picks", MetricsMiddleware(s.backupHandler.HandleExportPicks, "backup"))
	mux.HandleFunc("POST /backup/picks", MetricsMiddleware(s.backupHandler.HandleImportPicks, "backup"))
}

// medalRequest mirrors the OpenAPI schema for PUT /picks/{player}/{athlete_id}.
type medalRequest struct {
	Medal string `json:"medal"`
}

func (m medalRequest) parse() (medal.Medal, error) {
	md, ok := medal.Parse(m.Medal)
	if !ok {
		return medal.None, fmt.Errorf("unknown medal %q", m.Medal)
	}
	return md, nil
}

// resultsRequest mirrors the OpenAPI schema for PUT /results.
type resultsRequest struct {
	Medals map[string]string `json:"medals"`
}

func (r resultsRequest) parse() (map[string]medal.Medal, error) {
	if r.Medals == nil {
		return nil, errors.New("missing medals")
	}
	out := make(map[string]medal.Medal, len(r.Medals))
	for id, s := range r.Medals {
		m, ok := medal.Parse(s)
		if !ok {
			return nil, fmt.Errorf("unknown medal %q for %s", s, id)
		}
		out[id] = m
	}
	return out, nil
}

type ackResponse struct {
	Status string `json:"status"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ScoreboardEntry mirrors the read shape returned by scoreboard queries.
type ScoreboardEntry = types.ScoreboardEntry

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeFailure picks the status from the error kind.
func writeFailure(w http.ResponseWriter, err error) {
	status, code := classify(err)
	writeError(w, status, code, err)
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	return io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
}
