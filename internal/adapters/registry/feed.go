// Package registry loads the read-only athlete roster from its CSV feed.
package registry

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/okian/medaltips/internal/domain/model"
	"github.com/okian/medaltips/pkg/logger"
)

// Required feed columns.
const (
	colID    = "athlete_id"
	colName  = "name"
	colSport = "sport"
)

// Option configures feed loading.
type Option func(*loader)

// WithLogger sets the logger used for dropped and duplicate rows.
func WithLogger(l logger.Logger) Option {
	return func(ld *loader) {
		if l != nil {
			ld.log = l
		}
	}
}

type loader struct {
	log logger.Logger
}

// LoadFile reads the feed at path. A missing file wraps ErrRegistry.
func LoadFile(ctx context.Context, path string, opts ...Option) (*model.Registry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", ErrRegistry, path, err)
	}
	defer f.Close()
	return Parse(ctx, f, opts...)
}

// Parse reads a feed with an athlete_id,name,sport header (any column order,
// extra columns ignored). Rows with a blank required field are dropped;
// repeated ids keep their first occurrence.
func Parse(ctx context.Context, r io.Reader, opts ...Option) (*model.Registry, error) {
	ld := &loader{log: logger.Nop()}
	for _, opt := range opts {
		opt(ld)
	}

	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty feed", ErrRegistry)
		}
		return nil, fmt.Errorf("%w: read header: %w", ErrRegistry, err)
	}
	cols, err := columnIndex(header, colID, colName, colSport)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRegistry, err)
	}

	var athletes []model.Athlete
	dropped := 0
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrRegistry, err)
		}
		a := model.Athlete{
			ID:    strings.TrimSpace(rec[cols[colID]]),
			Name:  strings.TrimSpace(rec[cols[colName]]),
			Sport: strings.TrimSpace(rec[cols[colSport]]),
		}
		if a.ID == "" || a.Name == "" || a.Sport == "" {
			dropped++
			continue
		}
		athletes = append(athletes, a)
	}

	reg, dups := model.NewRegistry(athletes)
	if dropped > 0 {
		ld.log.Warn(ctx, "dropped athlete rows with blank fields", logger.Int("rows", dropped))
	}
	for _, id := range dups {
		ld.log.Warn(ctx, "duplicate athlete id in feed; keeping first", logger.String("athlete_id", id))
	}
	ld.log.Info(ctx, "athlete registry loaded", logger.Int("athletes", reg.Len()))
	return reg, nil
}

// columnIndex maps each required column name to its position in header.
func columnIndex(header []string, required ...string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if _, ok := idx[h]; !ok {
			idx[h] = i
		}
	}
	var missing []string
	for _, name := range required {
		if _, ok := idx[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing columns %s (need %s)", strings.Join(missing, ", "), strings.Join(required, ", "))
	}
	return idx, nil
}
