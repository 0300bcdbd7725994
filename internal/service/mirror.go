package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"challonge-client/challonge"
	"challonge-client/internal/config"
	"challonge-client/internal/constants"
	"challonge-client/internal/domain"
	"challonge-client/internal/repository"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// MirrorService copies tournaments from Challonge into the local database.
type MirrorService struct {
	client      *challonge.Client
	tournaments *repository.TournamentRepository
	runs        *repository.SyncRunRepository
	concurrency int
	logger      zerolog.Logger
	now         func() time.Time
}

func NewMirrorService(client *challonge.Client, tournaments *repository.TournamentRepository, runs *repository.SyncRunRepository, cfg *config.Config, logger zerolog.Logger) *MirrorService {
	concurrency := cfg.SyncConcurrency
	if concurrency < 1 {
		concurrency = constants.SyncConcurrency
	}
	return &MirrorService{
		client:      client,
		tournaments: tournaments,
		runs:        runs,
		concurrency: concurrency,
		logger:      logger,
		now:         time.Now,
	}
}

// Sync fetches one tournament (id or slug) with its matches and participants
// and replaces the mirrored copy. Every attempt is recorded as a sync run.
func (s *MirrorService) Sync(ctx context.Context, tournament string) (*domain.Snapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.SyncTimeout)
	defer cancel()

	run := &domain.SyncRun{Tournament: tournament, StartedAt: s.now()}
	snap, err := s.sync(ctx, tournament)
	run.FinishedAt = s.now()
	if err != nil {
		run.Error = err.Error()
	} else {
		run.TournamentID = &snap.Tournament.ID
		run.Participants = len(snap.Participants)
		run.Matches = len(snap.Matches)
	}

	dbCtx, dbCancel := context.WithTimeout(context.WithoutCancel(ctx), constants.DatabaseTimeout)
	defer dbCancel()
	if recErr := s.runs.Record(dbCtx, run); recErr != nil {
		s.logger.Warn().Err(recErr).Str("tournament", tournament).Msg("failed to record sync run")
	}

	if err != nil {
		s.logger.Error().Err(err).Str("tournament", tournament).Msg("sync failed")
		return nil, err
	}

	s.logger.Info().
		Str("tournament", tournament).
		Int("tournament_id", snap.Tournament.ID).
		Str("state", snap.Tournament.State).
		Int("participants", run.Participants).
		Int("matches", run.Matches).
		Dur("duration", run.FinishedAt.Sub(run.StartedAt)).
		Msg("tournament synced")
	return snap, nil
}

func (s *MirrorService) sync(ctx context.Context, tournament string) (*domain.Snapshot, error) {
	detail, err := s.client.Tournaments.Get(ctx, tournament, challonge.TournamentInclude{
		Matches:      true,
		Participants: true,
	})
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", tournament, err)
	}

	snap := toSnapshot(detail, s.now())
	if err := s.tournaments.ReplaceSnapshot(ctx, snap); err != nil {
		return nil, fmt.Errorf("store %s: %w", tournament, err)
	}
	return snap, nil
}

type SyncResult struct {
	Tournament string
	Snapshot   *domain.Snapshot
	Err        error
}

// SyncAll syncs each tournament with bounded concurrency. One failure does
// not stop the others; the returned error joins every failure. Results keep
// the input order.
func (s *MirrorService) SyncAll(ctx context.Context, tournaments []string) ([]SyncResult, error) {
	results := make([]SyncResult, len(tournaments))

	var g errgroup.Group
	g.SetLimit(s.concurrency)

	var mu sync.Mutex
	var errs []error

	for i, tournament := range tournaments {
		g.Go(func() error {
			snap, err := s.Sync(ctx, tournament)
			results[i] = SyncResult{Tournament: tournament, Snapshot: snap, Err: err}
			if err != nil {
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()

	s.logger.Info().
		Int("requested", len(tournaments)).
		Int("failed", len(errs)).
		Msg("sync batch finished")
	return results, errors.Join(errs...)
}

// SyncMatching lists tournaments on the account with the given filters and
// syncs every one of them.
func (s *MirrorService) SyncMatching(ctx context.Context, params challonge.TournamentListParams) ([]SyncResult, error) {
	listCtx, cancel := context.WithTimeout(ctx, constants.ExternalAPITimeout)
	defer cancel()

	list, err := s.client.Tournaments.List(listCtx, params)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list tournaments")
		return nil, fmt.Errorf("list tournaments: %w", err)
	}

	ids := make([]string, len(list))
	for i, t := range list {
		ids[i] = challonge.ID(t.ID)
	}
	return s.SyncAll(ctx, ids)
}

func (s *MirrorService) Snapshot(ctx context.Context, id int) (*domain.Snapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()
	return s.tournaments.GetSnapshot(ctx, id)
}

func (s *MirrorService) Tournaments(ctx context.Context) ([]domain.Tournament, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()
	return s.tournaments.List(ctx)
}

func (s *MirrorService) RecentRuns(ctx context.Context, limit int) ([]domain.SyncRun, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()
	return s.runs.Recent(ctx, limit)
}
