package api

import (
	"context"
	"net/http"

	"github.com/okian/medaltips/internal/domain/medal"
	"github.com/okian/medaltips/internal/domain/types"
)

// AdminPasswordHeader carries the admin secret for result updates.
const AdminPasswordHeader = "X-Admin-Password"

// ResultsDependencies defines the interface for official result operations.
type ResultsDependencies interface {
	Results(ctx context.Context) ([]types.MedalRow, error)
	SetResults(ctx context.Context, secret string, medals map[string]medal.Medal) error
}

// ResultsHandler handles result requests.
type ResultsHandler struct {
	deps ResultsDependencies
}

// NewResultsHandler creates a new results handler.
func NewResultsHandler(deps ResultsDependencies) *ResultsHandler {
	return &ResultsHandler{deps: deps}
}

// HandleGetResults handles GET /results requests.
func (h *ResultsHandler) HandleGetResults(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_results"
	rows, err := h.deps.Results(r.Context())
	if err != nil {
		writeFailure(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

// HandlePutResults handles PUT /results requests. The body replaces all
// results; athletes not listed are reset to None.
func (h *ResultsHandler) HandlePutResults(w http.ResponseWriter, r *http.Request) {
	const op = "api.put_results"
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	var req resultsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeFailure(w, WrapKind(op, ErrBadRequest, err))
		return
	}
	medals, err := req.parse()
	if err != nil {
		writeFailure(w, WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := h.deps.SetResults(r.Context(), r.Header.Get(AdminPasswordHeader), medals); err != nil {
		writeFailure(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, ackResponse{Status: "saved"})
}
