// Package repository persists official results and player picks as whole
// files, each replaced atomically on every write.
package repository

import (
	"context"

	"github.com/okian/medaltips/internal/domain/medal"
	"github.com/okian/medaltips/internal/domain/model"
)

// Results provides durable access to the official outcomes.
type Results interface {
	// Load returns one entry per registry athlete. A missing store is seeded
	// with None for everyone and persisted before returning. Malformed data
	// fails with ErrMalformedResults.
	Load(ctx context.Context, reg *model.Registry) (model.Result, error)
	// Save replaces the persisted outcomes with exactly result.
	Save(ctx context.Context, result model.Result) error
	// Export returns the persisted document, or an empty one.
	Export(ctx context.Context) ([]byte, error)
	// Import validates data like Load and, on success, replaces the store.
	Import(ctx context.Context, reg *model.Registry, data []byte) (model.Result, error)
}

// Picks provides durable access to player predictions.
type Picks interface {
	// Load never fails: a missing or unreadable store is empty.
	Load(ctx context.Context) model.Picks
	Save(ctx context.Context, picks model.Picks) error
	Upsert(ctx context.Context, picks model.Picks, player, athleteID string, m medal.Medal) error
	Remove(ctx context.Context, picks model.Picks, player, athleteID string) error
	Export(ctx context.Context) ([]byte, error)
	Import(ctx context.Context, data []byte) (model.Picks, error)
}

var (
	_ Results = (*ResultStore)(nil)
	_ Picks   = (*PickStore)(nil)
)
