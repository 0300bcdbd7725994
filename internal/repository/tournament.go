package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"challonge-client/internal/constants"
	"challonge-client/internal/db"
	"challonge-client/internal/domain"

	"github.com/rs/zerolog"
)

var ErrNotMirrored = errors.New("tournament not mirrored")

type TournamentRepository struct {
	queries *db.Queries
	db      *sql.DB
	logger  zerolog.Logger
}

func NewTournamentRepository(sqlDB *sql.DB, queries *db.Queries, logger zerolog.Logger) *TournamentRepository {
	return &TournamentRepository{
		queries: queries,
		db:      sqlDB,
		logger:  logger,
	}
}

// ReplaceSnapshot stores a tournament and swaps its participants and matches
// for the given ones, all in one transaction. Rows missing from the snapshot
// are removed.
func (r *TournamentRepository) ReplaceSnapshot(ctx context.Context, snap *domain.Snapshot) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	qtx := r.queries.WithTx(tx)
	t := snap.Tournament
	tid := int64(t.ID)

	err = qtx.UpsertTournament(ctx, db.UpsertTournamentParams{
		ID:                tid,
		Url:               t.URL,
		Subdomain:         t.Subdomain,
		Name:              t.Name,
		TournamentType:    t.TournamentType,
		State:             t.State,
		GameName:          t.GameName,
		ParticipantsCount: int64(t.ParticipantsCount),
		StartedAt:         nullTime(t.StartedAt),
		CompletedAt:       nullTime(t.CompletedAt),
		UpdatedAt:         nullTime(t.UpdatedAt),
		SyncedAt:          t.SyncedAt,
	})
	if err != nil {
		return fmt.Errorf("failed to upsert tournament %d: %w", t.ID, err)
	}

	if err := qtx.DeleteParticipantsByTournament(ctx, tid); err != nil {
		return fmt.Errorf("failed to clear participants of %d: %w", t.ID, err)
	}
	if err := qtx.DeleteMatchesByTournament(ctx, tid); err != nil {
		return fmt.Errorf("failed to clear matches of %d: %w", t.ID, err)
	}

	for i := 0; i < len(snap.Participants); i += constants.DBBatchSize {
		end := min(i+constants.DBBatchSize, len(snap.Participants))
		for _, p := range snap.Participants[i:end] {
			err := qtx.InsertParticipant(ctx, db.InsertParticipantParams{
				ID:           int64(p.ID),
				TournamentID: tid,
				Name:         p.Name,
				Seed:         int64(p.Seed),
				Active:       p.Active,
				CheckedIn:    p.CheckedIn,
				FinalRank:    nullInt(p.FinalRank),
				Misc:         p.Misc,
			})
			if err != nil {
				return fmt.Errorf("failed to insert participant %d: %w", p.ID, err)
			}
		}
	}

	for i := 0; i < len(snap.Matches); i += constants.DBBatchSize {
		end := min(i+constants.DBBatchSize, len(snap.Matches))
		for _, m := range snap.Matches[i:end] {
			err := qtx.InsertMatch(ctx, db.InsertMatchParams{
				ID:           int64(m.ID),
				TournamentID: tid,
				Identifier:   m.Identifier,
				Round:        int64(m.Round),
				State:        m.State,
				Player1ID:    nullInt(m.Player1ID),
				Player2ID:    nullInt(m.Player2ID),
				WinnerID:     nullInt(m.WinnerID),
				LoserID:      nullInt(m.LoserID),
				ScoresCsv:    m.ScoresCSV,
				UnderwayAt:   nullTime(m.UnderwayAt),
				UpdatedAt:    nullTime(m.UpdatedAt),
			})
			if err != nil {
				return fmt.Errorf("failed to insert match %d: %w", m.ID, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit snapshot %d: %w", t.ID, err)
	}

	r.logger.Debug().
		Int("tournament_id", t.ID).
		Int("participants", len(snap.Participants)).
		Int("matches", len(snap.Matches)).
		Msg("snapshot stored")
	return nil
}

func (r *TournamentRepository) GetSnapshot(ctx context.Context, id int) (*domain.Snapshot, error) {
	row, err := r.queries.GetTournament(ctx, int64(id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotMirrored
	}
	if err != nil {
		return nil, err
	}

	participants, err := r.queries.ListParticipantsByTournament(ctx, int64(id))
	if err != nil {
		return nil, fmt.Errorf("failed to list participants: %w", err)
	}
	matches, err := r.queries.ListMatchesByTournament(ctx, int64(id))
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}

	snap := &domain.Snapshot{
		Tournament:   toTournament(row),
		Participants: make([]domain.Participant, len(participants)),
		Matches:      make([]domain.Match, len(matches)),
	}
	for i, p := range participants {
		snap.Participants[i] = domain.Participant{
			ID:           int(p.ID),
			TournamentID: int(p.TournamentID),
			Name:         p.Name,
			Seed:         int(p.Seed),
			Active:       p.Active,
			CheckedIn:    p.CheckedIn,
			FinalRank:    intPtr(p.FinalRank),
			Misc:         p.Misc,
		}
	}
	for i, m := range matches {
		snap.Matches[i] = domain.Match{
			ID:           int(m.ID),
			TournamentID: int(m.TournamentID),
			Identifier:   m.Identifier,
			Round:        int(m.Round),
			State:        m.State,
			Player1ID:    intPtr(m.Player1ID),
			Player2ID:    intPtr(m.Player2ID),
			WinnerID:     intPtr(m.WinnerID),
			LoserID:      intPtr(m.LoserID),
			ScoresCSV:    m.ScoresCsv,
			UnderwayAt:   timePtr(m.UnderwayAt),
			UpdatedAt:    timePtr(m.UpdatedAt),
		}
	}
	return snap, nil
}

func (r *TournamentRepository) List(ctx context.Context) ([]domain.Tournament, error) {
	rows, err := r.queries.ListTournaments(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]domain.Tournament, len(rows))
	for i, row := range rows {
		result[i] = toTournament(row)
	}
	return result, nil
}

func toTournament(row db.Tournament) domain.Tournament {
	return domain.Tournament{
		ID:                int(row.ID),
		URL:               row.Url,
		Subdomain:         row.Subdomain,
		Name:              row.Name,
		TournamentType:    row.TournamentType,
		State:             row.State,
		GameName:          row.GameName,
		ParticipantsCount: int(row.ParticipantsCount),
		StartedAt:         timePtr(row.StartedAt),
		CompletedAt:       timePtr(row.CompletedAt),
		UpdatedAt:         timePtr(row.UpdatedAt),
		SyncedAt:          row.SyncedAt,
	}
}
