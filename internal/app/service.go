// Package service ties the athlete registry, the result and pick stores and
// the scoring engine together behind the operations the HTTP API needs.
package service

import (
	"context"
	"crypto/subtle"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/text/language"

	"github.com/okian/medaltips/internal/adapters/registry"
	"github.com/okian/medaltips/internal/adapters/repository"
	"github.com/okian/medaltips/internal/domain/medal"
	"github.com/okian/medaltips/internal/domain/model"
	"github.com/okian/medaltips/internal/domain/scoring"
	"github.com/okian/medaltips/internal/domain/types"
	"github.com/okian/medaltips/pkg/logger"
	"github.com/okian/medaltips/pkg/metrics"
)

// State file names inside the state directory.
const (
	ResultsFile = "results.csv"
	PicksFile   = "picks.json"
)

// Service implements the API dependencies for the prediction pool.
//
// Every load-mutate-persist sequence runs under mu, so concurrent requests
// never interleave writes to the same store.
type Service struct {
	mu sync.RWMutex

	// Collaborators
	registry *model.Registry
	results  repository.Results
	picks    repository.Picks

	// Configuration
	athletesPath  string
	stateDir      string
	players       []string
	adminPassword string
	locale        language.Tag

	// State
	result  model.Result
	pickSet model.Picks
	started bool

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithAthletesPath sets the athlete feed loaded by Start.
func WithAthletesPath(path string) Option {
	return func(s *Service) {
		if path != "" {
			s.athletesPath = path
		}
	}
}

// WithStateDir sets the directory holding the result and pick files.
func WithStateDir(dir string) Option {
	return func(s *Service) {
		if dir != "" {
			s.stateDir = dir
		}
	}
}

// WithPlayers sets the ordered player roster.
func WithPlayers(players []string) Option {
	return func(s *Service) {
		if len(players) > 0 {
			s.players = append([]string(nil), players...)
		}
	}
}

// WithAdminPassword sets the secret required by SetResults. An empty
// password disables the check.
func WithAdminPassword(password string) Option {
	return func(s *Service) {
		s.adminPassword = password
	}
}

// WithLocale sets the collation used to order athletes and sports.
func WithLocale(tag language.Tag) Option {
	return func(s *Service) {
		s.locale = tag
	}
}

// WithRegistry uses reg instead of loading the athlete feed.
func WithRegistry(reg *model.Registry) Option {
	return func(s *Service) {
		s.registry = reg
	}
}

// WithResultStore overrides the file-backed result store.
func WithResultStore(store repository.Results) Option {
	return func(s *Service) {
		s.results = store
	}
}

// WithPickStore overrides the file-backed pick store.
func WithPickStore(store repository.Picks) Option {
	return func(s *Service) {
		s.picks = store
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		athletesPath:  "data/athletes.csv",
		stateDir:      "state",
		players:       []string{"Johan", "Göran", "Jesper", "Peter", "Magnus", "Tony"},
		adminPassword: "admin",
		locale:        language.Swedish,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start loads the registry and both stores. It fails if the registry or the
// results cannot be loaded; picks always load, falling back to empty.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting prediction pool service...")

	if s.registry == nil {
		reg, err := registry.LoadFile(ctx, s.athletesPath, registry.WithLogger(s.logger.Named("registry")))
		if err != nil {
			return fmt.Errorf("start: %w", err)
		}
		s.registry = reg
	}
	if s.results == nil {
		s.results = repository.NewResultStore(
			filepath.Join(s.stateDir, ResultsFile),
			repository.WithLogger(s.logger.Named("results")),
		)
	}
	if s.picks == nil {
		s.picks = repository.NewPickStore(
			filepath.Join(s.stateDir, PicksFile),
			repository.WithLogger(s.logger.Named("picks")),
		)
	}

	result, err := s.results.Load(ctx, s.registry)
	if err != nil {
		return fmt.Errorf("start: %w", err)
	}
	s.result = result
	s.pickSet = s.picks.Load(ctx)

	s.started = true
	s.updateGauges()
	s.logger.Info(ctx, "prediction pool service started",
		logger.Int("athletes", s.registry.Len()),
		logger.Int("players", len(s.players)),
		logger.Int("picks", s.pickSet.Count()),
		logger.Int("medalsAwarded", s.result.Awarded()),
	)
	return nil
}

// Stop marks the service stopped. State is always persisted, so there is
// nothing to flush.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.started = false
	s.logger.Info(context.Background(), "prediction pool service stopped")
}

// Players returns the roster in configured order.
func (s *Service) Players() []string {
	return append([]string(nil), s.players...)
}

// Scoreboard returns the ranked scoreboard for the current state.
func (s *Service) Scoreboard(_ context.Context) ([]types.ScoreboardEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.started {
		return nil, ErrNotStarted
	}
	start := time.Now()
	entries := scoring.BuildScoreboard(s.players, s.registry, s.result, s.pickSet)
	metrics.RecordScoreboardBuild(float64(time.Since(start).Microseconds()) / 1000)
	return types.FromScoreboard(entries), nil
}

// Athletes returns the registry in display order, optionally limited to one
// sport.
func (s *Service) Athletes(_ context.Context, sport string) ([]types.AthleteRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.started {
		return nil, ErrNotStarted
	}
	var athletes []model.Athlete
	if sport == "" {
		athletes = registry.SortAthletes(s.registry.Athletes(), s.locale)
	} else {
		athletes = registry.BySport(s.registry, sport, s.locale)
	}
	rows := make([]types.AthleteRow, len(athletes))
	for i, a := range athletes {
		rows[i] = athleteRow(a)
	}
	return rows, nil
}

// Sports returns the distinct sports in display order.
func (s *Service) Sports(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.started {
		return nil, ErrNotStarted
	}
	return registry.Sports(s.registry, s.locale), nil
}

// Results returns one row per athlete with its official medal.
func (s *Service) Results(_ context.Context) ([]types.MedalRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.started {
		return nil, ErrNotStarted
	}
	athletes := registry.SortAthletes(s.registry.Athletes(), s.locale)
	rows := make([]types.MedalRow, len(athletes))
	for i, a := range athletes {
		rows[i] = types.MedalRow{AthleteRow: athleteRow(a), Medal: s.result.Medal(a.ID)}
	}
	return rows, nil
}

// SetResults replaces the official results wholesale: athletes missing from
// medals become None. secret must match the admin password unless the
// password is empty.
func (s *Service) SetResults(ctx context.Context, secret string, medals map[string]medal.Medal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return ErrNotStarted
	}
	if s.adminPassword != "" && subtle.ConstantTimeCompare([]byte(secret), []byte(s.adminPassword)) != 1 {
		s.logger.Warn(ctx, "result update refused: bad admin secret")
		return ErrForbidden
	}

	next := model.NewResult(s.registry)
	for id, m := range medals {
		if !s.registry.Contains(id) {
			return fmt.Errorf("%w: %s", ErrUnknownAthlete, id)
		}
		next[id] = m
	}
	if err := s.results.Save(ctx, next); err != nil {
		return err
	}
	s.result = next
	s.updateGauges()
	s.logger.Info(ctx, "results updated", logger.Int("medalsAwarded", next.Awarded()))
	return nil
}

// PicksFor returns the player's predictions in athlete display order.
func (s *Service) PicksFor(_ context.Context, player string) ([]types.MedalRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.started {
		return nil, ErrNotStarted
	}
	if !s.isPlayer(player) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPlayer, player)
	}
	rows := []types.MedalRow{}
	for _, a := range registry.SortAthletes(s.registry.Athletes(), s.locale) {
		m, ok := s.pickSet[player][a.ID]
		if !ok {
			continue
		}
		rows = append(rows, types.MedalRow{AthleteRow: athleteRow(a), Medal: m})
	}
	return rows, nil
}

// UpsertPick sets one prediction and persists all picks.
func (s *Service) UpsertPick(ctx context.Context, player, athleteID string, m medal.Medal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkPick(player, athleteID); err != nil {
		return err
	}
	if err := s.picks.Upsert(ctx, s.pickSet, player, athleteID, m); err != nil {
		return err
	}
	s.updateGauges()
	return nil
}

// RemovePick deletes one prediction and persists all picks.
func (s *Service) RemovePick(ctx context.Context, player, athleteID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkPick(player, athleteID); err != nil {
		return err
	}
	if err := s.picks.Remove(ctx, s.pickSet, player, athleteID); err != nil {
		return err
	}
	s.updateGauges()
	return nil
}

// ExportResults returns the persisted result document.
func (s *Service) ExportResults(ctx context.Context) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.started {
		return nil, ErrNotStarted
	}
	return s.results.Export(ctx)
}

// ImportResults replaces the results with an uploaded document. A rejected
// document leaves both the file and the in-memory state unchanged.
func (s *Service) ImportResults(ctx context.Context, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return ErrNotStarted
	}
	result, err := s.results.Import(ctx, s.registry, data)
	if err != nil {
		return err
	}
	s.result = result
	s.updateGauges()
	return nil
}

// ExportPicks returns the persisted pick document.
func (s *Service) ExportPicks(ctx context.Context) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.started {
		return nil, ErrNotStarted
	}
	return s.picks.Export(ctx)
}

// ImportPicks replaces all picks with an uploaded document.
func (s *Service) ImportPicks(ctx context.Context, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return ErrNotStarted
	}
	picks, err := s.picks.Import(ctx, data)
	if err != nil {
		return err
	}
	s.pickSet = picks
	s.updateGauges()
	return nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started": s.started,
		"players": len(s.players),
		"locale":  s.locale.String(),
	}
	if s.started {
		stats["athletes"] = s.registry.Len()
		stats["picks"] = s.pickSet.Count()
		stats["medalsAwarded"] = s.result.Awarded()
		s.updateGauges()
	}
	return stats
}

func (s *Service) checkPick(player, athleteID string) error {
	if !s.started {
		return ErrNotStarted
	}
	if !s.isPlayer(player) {
		return fmt.Errorf("%w: %s", ErrUnknownPlayer, player)
	}
	if !s.registry.Contains(athleteID) {
		return fmt.Errorf("%w: %s", ErrUnknownAthlete, athleteID)
	}
	return nil
}

func (s *Service) isPlayer(name string) bool {
	for _, p := range s.players {
		if p == name {
			return true
		}
	}
	return false
}

func (s *Service) updateGauges() {
	metrics.UpdateAthletesTotal(s.registry.Len())
	metrics.UpdatePlayersTotal(len(s.players))
	metrics.UpdatePicksTotal(s.pickSet.Count())
	metrics.UpdateMedalsAwarded(s.result.Awarded())
}

func athleteRow(a model.Athlete) types.AthleteRow {
	return types.AthleteRow{AthleteID: a.ID, Name: a.Name, Sport: a.Sport}
}
