package repository

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"sort"
	"strings"

	"github.com/okian/medaltips/internal/domain/medal"
	"github.com/okian/medaltips/internal/domain/model"
	"github.com/okian/medaltips/pkg/logger"
	"github.com/okian/medaltips/pkg/metrics"
)

// Result document columns.
const (
	colAthleteID = "athlete_id"
	colMedal     = "medal"
)

// emptyResults is the export of a store that was never written.
var emptyResults = []byte(colAthleteID + "," + colMedal + "\n")

// ResultStore keeps official outcomes in a CSV file (athlete_id,medal).
type ResultStore struct {
	fileStore
}

// NewResultStore creates a store backed by the CSV file at path.
func NewResultStore(path string, opts ...Option) *ResultStore {
	return &ResultStore{fileStore: newFileStore(path, opts)}
}

// Load implements Results.
func (s *ResultStore) Load(ctx context.Context, reg *model.Registry) (model.Result, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		seed := model.NewResult(reg)
		if err := s.Save(ctx, seed); err != nil {
			metrics.RecordStoreLoad(metrics.StoreResults, metrics.OutcomeFailed)
			return nil, fmt.Errorf("seed results: %w", err)
		}
		metrics.RecordStoreLoad(metrics.StoreResults, metrics.OutcomeSeeded)
		s.log.Info(ctx, "seeded empty results", logger.String("path", s.path), logger.Int("athletes", len(seed)))
		return seed, nil
	}
	if err != nil {
		metrics.RecordStoreLoad(metrics.StoreResults, metrics.OutcomeFailed)
		return nil, fmt.Errorf("read results: %w", err)
	}

	result, err := s.decode(ctx, reg, data)
	if err != nil {
		metrics.RecordStoreLoad(metrics.StoreResults, metrics.OutcomeFailed)
		return nil, fmt.Errorf("load results %s: %w", s.path, err)
	}
	metrics.RecordStoreLoad(metrics.StoreResults, metrics.OutcomeLoaded)
	return result, nil
}

// Save implements Results.
func (s *ResultStore) Save(ctx context.Context, result model.Result) error {
	data, err := encodeResults(result)
	if err != nil {
		return fmt.Errorf("encode results: %w", err)
	}
	if err := WriteDurable(s.path, data, s.perm); err != nil {
		metrics.RecordStoreSaveError(metrics.StoreResults)
		s.log.Error(ctx, "saving results failed", logger.String("path", s.path), logger.Error(err))
		return fmt.Errorf("save results: %w", err)
	}
	metrics.RecordStoreSave(metrics.StoreResults)
	s.log.Debug(ctx, "results saved", logger.Int("athletes", len(result)))
	return nil
}

// Export implements Results.
func (s *ResultStore) Export(_ context.Context) ([]byte, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return append([]byte(nil), emptyResults...), nil
	}
	if err != nil {
		return nil, fmt.Errorf("export results: %w", err)
	}
	return data, nil
}

// Import implements Results. On failure the store is untouched.
func (s *ResultStore) Import(ctx context.Context, reg *model.Registry, data []byte) (model.Result, error) {
	result, err := s.decode(ctx, reg, data)
	if err != nil {
		metrics.RecordImportRejected(metrics.StoreResults)
		s.log.Warn(ctx, "results import rejected", logger.Error(err))
		return nil, fmt.Errorf("import results: %w", err)
	}
	if err := s.Save(ctx, result); err != nil {
		return nil, err
	}
	s.log.Info(ctx, "results imported", logger.Int("awarded", result.Awarded()))
	return result, nil
}

// decode parses a result document and reconciles it with reg: every registry
// athlete gets its stored medal or None, unknown athletes are dropped.
func (s *ResultStore) decode(ctx context.Context, reg *model.Registry, data []byte) (model.Result, error) {
	stored, coerced, err := decodeResults(data)
	if err != nil {
		return nil, err
	}
	if coerced > 0 {
		metrics.RecordMedalsCoerced(metrics.StoreResults, coerced)
		s.log.Debug(ctx, "unknown medal values replaced by None", logger.Int("count", coerced))
	}

	result := model.NewResult(reg)
	dropped := 0
	for id, m := range stored {
		if _, ok := result[id]; !ok {
			dropped++
			continue
		}
		result[id] = m
	}
	if dropped > 0 {
		s.log.Debug(ctx, "dropped results for athletes outside the registry", logger.Int("count", dropped))
	}
	return result, nil
}

// decodeResults reads athlete_id,medal rows. The header must name both
// columns and every row must match the header width; anything else wraps
// ErrMalformedResults. Unknown medals become None and are counted.
func decodeResults(data []byte) (map[string]medal.Medal, int, error) {
	r := csv.NewReader(bytes.NewReader(data))
	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, 0, fmt.Errorf("%w: empty document", ErrMalformedResults)
	}
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrMalformedResults, err)
	}

	idCol, medalCol := -1, -1
	for i, h := range header {
		switch strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")) {
		case colAthleteID:
			if idCol < 0 {
				idCol = i
			}
		case colMedal:
			if medalCol < 0 {
				medalCol = i
			}
		}
	}
	if idCol < 0 || medalCol < 0 {
		return nil, 0, fmt.Errorf("%w: header must contain %s and %s", ErrMalformedResults, colAthleteID, colMedal)
	}

	out := make(map[string]medal.Medal)
	coerced := 0
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, 0, fmt.Errorf("%w: %w", ErrMalformedResults, err)
		}
		id := strings.TrimSpace(rec[idCol])
		if id == "" {
			continue
		}
		if _, seen := out[id]; seen {
			continue
		}
		m, ok := medal.Parse(strings.TrimSpace(rec[medalCol]))
		if !ok {
			coerced++
		}
		out[id] = m
	}
	return out, coerced, nil
}

// encodeResults writes the header and one row per athlete, sorted by id so
// equal results produce equal bytes.
func encodeResults(result model.Result) ([]byte, error) {
	ids := make([]string, 0, len(result))
	for id := range result {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{colAthleteID, colMedal}); err != nil {
		return nil, err
	}
	for _, id := range ids {
		if err := w.Write([]string{id, result[id].String()}); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
