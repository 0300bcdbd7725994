package db

import (
	"context"
	"database/sql"
	"time"
)

const upsertTournament = `-- name: UpsertTournament :exec
INSERT INTO tournaments (
    id, url, subdomain, name, tournament_type, state, game_name,
    participants_count, started_at, completed_at, updated_at, synced_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (id) DO UPDATE SET
    url = excluded.url,
    subdomain = excluded.subdomain,
    name = excluded.name,
    tournament_type = excluded.tournament_type,
    state = excluded.state,
    game_name = excluded.game_name,
    participants_count = excluded.participants_count,
    started_at = excluded.started_at,
    completed_at = excluded.completed_at,
    updated_at = excluded.updated_at,
    synced_at = excluded.synced_at
`

type UpsertTournamentParams struct {
	ID                int64
	Url               string
	Subdomain         string
	Name              string
	TournamentType    string
	State             string
	GameName          string
	ParticipantsCount int64
	StartedAt         sql.NullTime
	CompletedAt       sql.NullTime
	UpdatedAt         sql.NullTime
	SyncedAt          time.Time
}

func (q *Queries) UpsertTournament(ctx context.Context, arg UpsertTournamentParams) error {
	_, err := q.db.ExecContext(ctx, upsertTournament,
		arg.ID,
		arg.Url,
		arg.Subdomain,
		arg.Name,
		arg.TournamentType,
		arg.State,
		arg.GameName,
		arg.ParticipantsCount,
		arg.StartedAt,
		arg.CompletedAt,
		arg.UpdatedAt,
		arg.SyncedAt,
	)
	return err
}

const getTournament = `-- name: GetTournament :one
SELECT id, url, subdomain, name, tournament_type, state, game_name,
       participants_count, started_at, completed_at, updated_at, synced_at
FROM tournaments
WHERE id = ?
`

func (q *Queries) GetTournament(ctx context.Context, id int64) (Tournament, error) {
	row := q.db.QueryRowContext(ctx, getTournament, id)
	var i Tournament
	err := row.Scan(
		&i.ID,
		&i.Url,
		&i.Subdomain,
		&i.Name,
		&i.TournamentType,
		&i.State,
		&i.GameName,
		&i.ParticipantsCount,
		&i.StartedAt,
		&i.CompletedAt,
		&i.UpdatedAt,
		&i.SyncedAt,
	)
	return i, err
}

const listTournaments = `-- name: ListTournaments :many
SELECT id, url, subdomain, name, tournament_type, state, game_name,
       participants_count, started_at, completed_at, updated_at, synced_at
FROM tournaments
ORDER BY synced_at DESC, id
`

func (q *Queries) ListTournaments(ctx context.Context) ([]Tournament, error) {
	rows, err := q.db.QueryContext(ctx, listTournaments)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Tournament
	for rows.Next() {
		var i Tournament
		if err := rows.Scan(
			&i.ID,
			&i.Url,
			&i.Subdomain,
			&i.Name,
			&i.TournamentType,
			&i.State,
			&i.GameName,
			&i.ParticipantsCount,
			&i.StartedAt,
			&i.CompletedAt,
			&i.UpdatedAt,
			&i.SyncedAt,
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
