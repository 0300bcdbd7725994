package repository

import (
	"context"
	"database/sql"
	"fmt"

	"challonge-client/internal/db"
	"challonge-client/internal/domain"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
)

type SyncRunRepository struct {
	queries *db.Queries
	db      *sql.DB
	logger  zerolog.Logger
}

func NewSyncRunRepository(sqlDB *sql.DB, queries *db.Queries, logger zerolog.Logger) *SyncRunRepository {
	return &SyncRunRepository{
		queries: queries,
		db:      sqlDB,
		logger:  logger,
	}
}

// Record stores a finished sync attempt, assigning an id when run has none.
func (r *SyncRunRepository) Record(ctx context.Context, run *domain.SyncRun) error {
	if run.ID == "" {
		id, err := gonanoid.New()
		if err != nil {
			return fmt.Errorf("failed to generate nanoid: %w", err)
		}
		run.ID = id
	}

	err := r.queries.InsertSyncRun(ctx, db.InsertSyncRunParams{
		ID:           run.ID,
		Tournament:   run.Tournament,
		TournamentID: nullInt(run.TournamentID),
		Participants: int64(run.Participants),
		Matches:      int64(run.Matches),
		Error:        run.Error,
		StartedAt:    run.StartedAt,
		FinishedAt:   run.FinishedAt,
	})
	if err != nil {
		return fmt.Errorf("failed to record sync run: %w", err)
	}
	return nil
}

func (r *SyncRunRepository) Recent(ctx context.Context, limit int) ([]domain.SyncRun, error) {
	rows, err := r.queries.ListSyncRuns(ctx, int64(limit))
	if err != nil {
		return nil, err
	}

	result := make([]domain.SyncRun, len(rows))
	for i, row := range rows {
		result[i] = domain.SyncRun{
			ID:           row.ID,
			Tournament:   row.Tournament,
			TournamentID: intPtr(row.TournamentID),
			Participants: int(row.Participants),
			Matches:      int(row.Matches),
			Error:        row.Error,
			StartedAt:    row.StartedAt,
			FinishedAt:   row.FinishedAt,
		}
	}
	return result, nil
}
