package db

import (
	"context"
	"database/sql"
)

const deleteMatchesByTournament = `-- name: DeleteMatchesByTournament :exec
DELETE FROM matches WHERE tournament_id = ?
`

func (q *Queries) DeleteMatchesByTournament(ctx context.Context, tournamentID int64) error {
	_, err := q.db.ExecContext(ctx, deleteMatchesByTournament, tournamentID)
	return err
}

const insertMatch = `-- name: InsertMatch :exec
INSERT INTO matches (
    id, tournament_id, identifier, round, state, player1_id, player2_id,
    winner_id, loser_id, scores_csv, underway_at, updated_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

type InsertMatchParams struct {
	ID           int64
	TournamentID int64
	Identifier   string
	Round        int64
	State        string
	Player1ID    sql.NullInt64
	Player2ID    sql.NullInt64
	WinnerID     sql.NullInt64
	LoserID      sql.NullInt64
	ScoresCsv    string
	UnderwayAt   sql.NullTime
	UpdatedAt    sql.NullTime
}

func (q *Queries) InsertMatch(ctx context.Context, arg InsertMatchParams) error {
	_, err := q.db.ExecContext(ctx, insertMatch,
		arg.ID,
		arg.TournamentID,
		arg.Identifier,
		arg.Round,
		arg.State,
		arg.Player1ID,
		arg.Player2ID,
		arg.WinnerID,
		arg.LoserID,
		arg.ScoresCsv,
		arg.UnderwayAt,
		arg.UpdatedAt,
	)
	return err
}

const listMatchesByTournament = `-- name: ListMatchesByTournament :many
SELECT id, tournament_id, identifier, round, state, player1_id, player2_id,
       winner_id, loser_id, scores_csv, underway_at, updated_at
FROM matches
WHERE tournament_id = ?
ORDER BY round > 0 DESC, abs(round), identifier, id
`

func (q *Queries) ListMatchesByTournament(ctx context.Context, tournamentID int64) ([]Match, error) {
	rows, err := q.db.QueryContext(ctx, listMatchesByTournament, tournamentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Match
	for rows.Next() {
		var i Match
		if err := rows.Scan(
			&i.ID,
			&i.TournamentID,
			&i.Identifier,
			&i.Round,
			&i.State,
			&i.Player1ID,
			&i.Player2ID,
			&i.WinnerID,
			&i.LoserID,
			&i.ScoresCsv,
			&i.UnderwayAt,
			&i.UpdatedAt,
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
