package db

import (
	"database/sql"
	"time"
)

type Tournament struct {
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

type Participant struct {
	ID           int64
	TournamentID int64
	Name         string
	Seed         int64
	Active       bool
	CheckedIn    bool
	FinalRank    sql.NullInt64
	Misc         string
}

type Match struct {
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

type SyncRun struct {
	ID           string
	Tournament   string
	TournamentID sql.NullInt64
	Participants int64
	Matches      int64
	Error        string
	StartedAt    time.Time
	FinishedAt   time.Time
}
