package db

import (
	"context"
	"database/sql"
	"time"
)

const insertSyncRun = `-- name: InsertSyncRun :exec
INSERT INTO sync_runs (id, tournament, tournament_id, participants, matches, error, started_at, finished_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
`

type InsertSyncRunParams struct {
	ID           string
	Tournament   string
	TournamentID sql.NullInt64
	Participants int64
	Matches      int64
	Error        string
	StartedAt    time.Time
	FinishedAt   time.Time
}

func (q *Queries) InsertSyncRun(ctx context.Context, arg InsertSyncRunParams) error {
	_, err := q.db.ExecContext(ctx, insertSyncRun,
		arg.ID,
		arg.Tournament,
		arg.TournamentID,
		arg.Participants,
		arg.Matches,
		arg.Error,
		arg.StartedAt,
		arg.FinishedAt,
	)
	return err
}

const listSyncRuns = `-- name: ListSyncRuns :many
SELECT id, tournament, tournament_id, participants, matches, error, started_at, finished_at
FROM sync_runs
ORDER BY started_at DESC
LIMIT ?
`

func (q *Queries) ListSyncRuns(ctx context.Context, limit int64) ([]SyncRun, error) {
	rows, err := q.db.QueryContext(ctx, listSyncRuns, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []SyncRun
	for rows.Next() {
		var i SyncRun
		if err := rows.Scan(
			&i.ID,
			&i.Tournament,
			&i.TournamentID,
			&i.Participants,
			&i.Matches,
			&i.Error,
			&i.StartedAt,
			&i.FinishedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
