package db

import (
	"context"
	"database/sql"
)

const deleteParticipantsByTournament = `-- name: DeleteParticipantsByTournament :exec
DELETE FROM participants WHERE tournament_id = ?
`

func (q *Queries) DeleteParticipantsByTournament(ctx context.Context, tournamentID int64) error {
	_, err := q.db.ExecContext(ctx, deleteParticipantsByTournament, tournamentID)
	return err
}

const insertParticipant = `-- name: InsertParticipant :exec
INSERT INTO participants (id, tournament_id, name, seed, active, checked_in, final_rank, misc)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
`

type InsertParticipantParams struct {
	ID           int64
	TournamentID int64
	Name         string
	Seed         int64
	Active       bool
	CheckedIn    bool
	FinalRank    sql.NullInt64
	Misc         string
}

func (q *Queries) InsertParticipant(ctx context.Context, arg InsertParticipantParams) error {
	_, err := q.db.ExecContext(ctx, insertParticipant,
		arg.ID,
		arg.TournamentID,
		arg.Name,
		arg.Seed,
		arg.Active,
		arg.CheckedIn,
		arg.FinalRank,
		arg.Misc,
	)
	return err
}

const listParticipantsByTournament = `-- name: ListParticipantsByTournament :many
SELECT id, tournament_id, name, seed, active, checked_in, final_rank, misc
FROM participants
WHERE tournament_id = ?
ORDER BY seed, id
`

func (q *Queries) ListParticipantsByTournament(ctx context.Context, tournamentID int64) ([]Participant, error) {
	rows, err := q.db.QueryContext(ctx, listParticipantsByTournament, tournamentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Participant
	for rows.Next() {
		var i Participant
		if err := rows.Scan(
			&i.ID,
			&i.TournamentID,
			&i.Name,
			&i.Seed,
			&i.Active,
			&i.CheckedIn,
			&i.FinalRank,
			&i.Misc,
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
