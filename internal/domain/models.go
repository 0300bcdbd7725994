package domain

import (
	"time"
)

// Tournament is the mirrored subset of a Challonge tournament. Enum values
// are stored as their wire tokens.
type Tournament struct {
	ID                int        `json:"id"`
	URL               string     `json:"url"`
	Subdomain         string     `json:"subdomain,omitempty"`
	Name              string     `json:"name"`
	TournamentType    string     `json:"tournament_type"`
	State             string     `json:"state"`
	GameName          string     `json:"game_name,omitempty"`
	ParticipantsCount int        `json:"participants_count"`
	StartedAt         *time.Time `json:"started_at,omitempty"`
	CompletedAt       *time.Time `json:"completed_at,omitempty"`
	UpdatedAt         *time.Time `json:"updated_at,omitempty"`
	SyncedAt          time.Time  `json:"synced_at"`
}

type Participant struct {
	ID           int    `json:"id"`
	TournamentID int    `json:"tournament_id"`
	Name         string `json:"name"`
	Seed         int    `json:"seed"`
	Active       bool   `json:"active"`
	CheckedIn    bool   `json:"checked_in"`
	FinalRank    *int   `json:"final_rank,omitempty"`
	Misc         string `json:"misc,omitempty"`
}

type Match struct {
	ID           int        `json:"id"`
	TournamentID int        `json:"tournament_id"`
	Identifier   string     `json:"identifier"`
	Round        int        `json:"round"` // negative in the losers bracket
	State        string     `json:"state"`
	Player1ID    *int       `json:"player1_id,omitempty"`
	Player2ID    *int       `json:"player2_id,omitempty"`
	WinnerID     *int       `json:"winner_id,omitempty"`
	LoserID      *int       `json:"loser_id,omitempty"`
	ScoresCSV    string     `json:"scores_csv,omitempty"`
	UnderwayAt   *time.Time `json:"underway_at,omitempty"`
	UpdatedAt    *time.Time `json:"updated_at,omitempty"`
}

// Snapshot is one tournament as of its last sync.
type Snapshot struct {
	Tournament   Tournament    `json:"tournament"`
	Participants []Participant `json:"participants"`
	Matches      []Match       `json:"matches"`
}

type SyncRun struct {
	ID           string    // nanoid
	Tournament   string    // id or slug as requested
	TournamentID *int      // nil when the fetch failed
	Participants int
	Matches      int
	Error        string
	StartedAt    time.Time
	FinishedAt   time.Time
}
