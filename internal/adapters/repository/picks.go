package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/okian/medaltips/internal/domain/medal"
	"github.com/okian/medaltips/internal/domain/model"
	"github.com/okian/medaltips/pkg/logger"
	"github.com/okian/medaltips/pkg/metrics"
)

var emptyPicks = []byte("{}")

// PickStore keeps predictions in a JSON document {player: {athlete_id: medal}}.
//
// It is lenient on load: predictions are low-stakes user input, so a missing
// or broken document reads as "nobody has predicted yet".
type PickStore struct {
	fileStore
}

// NewPickStore creates a store backed by the JSON file at path.
func NewPickStore(path string, opts ...Option) *PickStore {
	return &PickStore{fileStore: newFileStore(path, opts)}
}

// Load implements Picks.
func (s *PickStore) Load(ctx context.Context) model.Picks {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		metrics.RecordStoreLoad(metrics.StorePicks, metrics.OutcomeEmpty)
		return model.Picks{}
	}
	if err != nil {
		metrics.RecordStoreLoad(metrics.StorePicks, metrics.OutcomeEmpty)
		s.log.Warn(ctx, "picks unreadable; starting empty", logger.String("path", s.path), logger.Error(err))
		return model.Picks{}
	}

	picks, coerced, err := decodePicks(data)
	if err != nil {
		metrics.RecordStoreLoad(metrics.StorePicks, metrics.OutcomeEmpty)
		s.log.Warn(ctx, "picks unparseable; starting empty", logger.String("path", s.path), logger.Error(err))
		return model.Picks{}
	}
	metrics.RecordMedalsCoerced(metrics.StorePicks, coerced)
	metrics.RecordStoreLoad(metrics.StorePicks, metrics.OutcomeLoaded)
	return picks
}

// Save implements Picks.
func (s *PickStore) Save(ctx context.Context, picks model.Picks) error {
	data, err := encodePicks(picks)
	if err != nil {
		return fmt.Errorf("encode picks: %w", err)
	}
	if err := WriteDurable(s.path, data, s.perm); err != nil {
		metrics.RecordStoreSaveError(metrics.StorePicks)
		s.log.Error(ctx, "saving picks failed", logger.String("path", s.path), logger.Error(err))
		return fmt.Errorf("save picks: %w", err)
	}
	metrics.RecordStoreSave(metrics.StorePicks)
	return nil
}

// Upsert sets one prediction and persists the whole document. If the write
// fails the in-memory change is undone.
func (s *PickStore) Upsert(ctx context.Context, picks model.Picks, player, athleteID string, m medal.Medal) error {
	prev, had := picks[player][athleteID]
	picks.Set(player, athleteID, m)
	if err := s.Save(ctx, picks); err != nil {
		if had {
			picks.Set(player, athleteID, prev)
		} else {
			picks.Delete(player, athleteID)
		}
		return err
	}
	s.log.Debug(ctx, "pick saved", logger.String("player", player), logger.String("athlete_id", athleteID), logger.String("medal", m.String()))
	return nil
}

// Remove deletes one prediction and persists the whole document. Removing a
// prediction that does not exist is a no-op and writes nothing.
func (s *PickStore) Remove(ctx context.Context, picks model.Picks, player, athleteID string) error {
	prev, had := picks[player][athleteID]
	if !had {
		return nil
	}
	picks.Delete(player, athleteID)
	if err := s.Save(ctx, picks); err != nil {
		picks.Set(player, athleteID, prev)
		return err
	}
	s.log.Debug(ctx, "pick removed", logger.String("player", player), logger.String("athlete_id", athleteID))
	return nil
}

// Export implements Picks.
func (s *PickStore) Export(_ context.Context) ([]byte, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return append([]byte(nil), emptyPicks...), nil
	}
	if err != nil {
		return nil, fmt.Errorf("export picks: %w", err)
	}
	return data, nil
}

// Import implements Picks. Unlike Load, an unparseable payload is an error
// and the store is left untouched.
func (s *PickStore) Import(ctx context.Context, data []byte) (model.Picks, error) {
	picks, coerced, err := decodePicks(data)
	if err != nil {
		metrics.RecordImportRejected(metrics.StorePicks)
		s.log.Warn(ctx, "picks import rejected", logger.Error(err))
		return nil, fmt.Errorf("import picks: %w", err)
	}
	metrics.RecordMedalsCoerced(metrics.StorePicks, coerced)
	if err := s.Save(ctx, picks); err != nil {
		return nil, err
	}
	s.log.Info(ctx, "picks imported", logger.Int("players", len(picks)), logger.Int("picks", picks.Count()))
	return picks, nil
}

// decodePicks parses a pick document. The structure must be an object of
// objects; any deviation fails the whole document. Individual medal values
// that are not known medal names become None and are counted.
func decodePicks(data []byte) (model.Picks, int, error) {
	var raw map[string]map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrMalformedPicks, err)
	}

	picks := make(model.Picks, len(raw))
	coerced := 0
	for player, byAthlete := range raw {
		for id, v := range byAthlete {
			var m medal.Medal
			_ = json.Unmarshal(v, &m)
			if m == medal.None && !bytes.Equal(bytes.TrimSpace(v), []byte(`"None"`)) {
				coerced++
			}
			picks.Set(player, id, m)
		}
		if _, ok := picks[player]; !ok {
			picks[player] = map[string]medal.Medal{}
		}
	}
	return picks, coerced, nil
}

// encodePicks writes indented JSON with sorted keys.
func encodePicks(picks model.Picks) ([]byte, error) {
	if picks == nil {
		picks = model.Picks{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(picks); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
