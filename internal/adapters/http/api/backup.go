package api

import (
	"context"
	"net/http"
)

// BackupDependencies defines the interface for export and restore.
type BackupDependencies interface {
	ExportResults(ctx context.Context) ([]byte, error)
	ImportResults(ctx context.Context, data []byte) error
	ExportPicks(ctx context.Context) ([]byte, error)
	ImportPicks(ctx context.Context, data []byte) error
}

// BackupHandler serves store documents for download and restores uploads.
type BackupHandler struct {
	deps BackupDependencies
}

// NewBackupHandler creates a new backup handler.
func NewBackupHandler(deps BackupDependencies) *BackupHandler {
	return &BackupHandler{deps: deps}
}

// HandleExportResults handles GET /backup/results requests.
func (h *BackupHandler) HandleExportResults(w http.ResponseWriter, r *http.Request) {
	h.export(w, r, "api.export_results", h.deps.ExportResults, "text/csv; charset=utf-8", "results.csv")
}

// HandleExportPicks handles GET /backup/picks requests.
func (h *BackupHandler) HandleExportPicks(w http.ResponseWriter, r *http.Request) {
	h.export(w, r, "api.export_picks", h.deps.ExportPicks, "application/json; charset=utf-8", "picks.json")
}

// HandleImportResults handles POST /backup/results requests.
func (h *BackupHandler) HandleImportResults(w http.ResponseWriter, r *http.Request) {
	h.restore(w, r, "api.import_results", h.deps.ImportResults)
}

// HandleImportPicks handles POST /backup/picks requests.
func (h *BackupHandler) HandleImportPicks(w http.ResponseWriter, r *http.Request) {
	h.restore(w, r, "api.import_picks", h.deps.ImportPicks)
}

func (h *BackupHandler) export(w http.ResponseWriter, r *http.Request, op string,
	fetch func(context.Context) ([]byte, error), contentType, filename string,
) {
	data, err := fetch(r.Context())
	if err != nil {
		writeFailure(w, Wrap(op, err))
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (h *BackupHandler) restore(w http.ResponseWriter, r *http.Request, op string,
	apply func(context.Context, []byte) error,
) {
	data, err := readBody(w, r)
	if err != nil {
		writeFailure(w, WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := apply(r.Context(), data); err != nil {
		writeFailure(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, ackResponse{Status: "restored"})
}
