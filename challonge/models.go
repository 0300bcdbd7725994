package challonge

// Entities are plain values. Relationships between them are identifier
// fields; nothing here holds a reference to another entity.

type Tournament struct {
	ID                  int                 `json:"id"`
	URL                 string              `json:"url"`
	Subdomain           string              `json:"subdomain"`
	FullChallongeURL    string              `json:"full_challonge_url"`
	LiveImageURL        string              `json:"live_image_url"`
	SignUpURL           string              `json:"sign_up_url"`
	Name                string              `json:"name"`
	Description         string              `json:"description"`
	DescriptionSource   string              `json:"description_source"`
	GameID              *int                `json:"game_id"`
	GameName            string              `json:"game_name"`
	Category            string              `json:"category"`
	TournamentType      TournamentType      `json:"tournament_type"`
	State               TournamentState     `json:"state"`
	RankedBy            RankingStat         `json:"ranked_by"`
	TieBreaks           TieBreaks           `json:"tie_breaks"`
	GrandFinalsModifier GrandFinalsModifier `json:"grand_finals_modifier"`
	PredictionMethod    PredictionMethod    `json:"prediction_method"`

	// Scoring for swiss and other non round robin formats.
	PointsForMatchWin Float `json:"pts_for_match_win"`
	PointsForMatchTie Float `json:"pts_for_match_tie"`
	PointsForGameWin  Float `json:"pts_for_game_win"`
	PointsForGameTie  Float `json:"pts_for_game_tie"`
	PointsForBye      Float `json:"pts_for_bye"`

	// Authoritative scoring when TournamentType is RoundRobin.
	RRPointsForMatchWin Float `json:"rr_pts_for_match_win"`
	RRPointsForMatchTie Float `json:"rr_pts_for_match_tie"`
	RRPointsForGameWin  Float `json:"rr_pts_for_game_win"`
	RRPointsForGameTie  Float `json:"rr_pts_for_game_tie"`

	// Only meaningful when TournamentType is Swiss.
	SwissRounds int `json:"swiss_rounds"`

	ParticipantsCount     int     `json:"participants_count"`
	ParticipantsPerMatch  NullInt `json:"participants_per_match"`
	SignupCap             *int    `json:"signup_cap"`
	CheckInDuration       *int    `json:"check_in_duration"`
	MaxPredictionsPerUser int     `json:"max_predictions_per_user"`
	ProgressMeter         int     `json:"progress_meter"`

	AcceptAttachments              bool  `json:"accept_attachments"`
	AllowParticipantMatchReporting bool  `json:"allow_participant_match_reporting"`
	AnonymousVoting                bool  `json:"anonymous_voting"`
	CreatedByAPI                   bool  `json:"created_by_api"`
	CreditCapped                   bool  `json:"credit_capped"`
	GroupStagesEnabled             bool  `json:"group_stages_enabled"`
	GroupStagesWereStarted         bool  `json:"group_stages_were_started"`
	HideForum                      bool  `json:"hide_forum"`
	HideSeeds                      bool  `json:"hide_seeds"`
	HoldThirdPlaceMatch            bool  `json:"hold_third_place_match"`
	NotifyUsersWhenMatchesOpen     bool  `json:"notify_users_when_matches_open"`
	NotifyUsersWhenTournamentEnds  bool  `json:"notify_users_when_the_tournament_ends"`
	OpenSignup                     bool  `json:"open_signup"`
	Private                        bool  `json:"private"`
	QuickAdvance                   bool  `json:"quick_advance"`
	RequireScoreAgreement          bool  `json:"require_score_agreement"`
	SequentialPairings             bool  `json:"sequential_pairings"`
	ShowRounds                     bool  `json:"show_rounds"`
	ReviewBeforeFinalizing         bool  `json:"review_before_finalizing"`
	AcceptingPredictions           bool  `json:"accepting_predictions"`
	ParticipantsLocked             bool  `json:"participants_locked"`
	ParticipantsSwappable          bool  `json:"participants_swappable"`
	TeamConvertable                bool  `json:"team_convertable"`
	Teams                          *bool `json:"teams"`

	CreatedAt           NullTime `json:"created_at"`
	UpdatedAt           NullTime `json:"updated_at"`
	StartAt             NullTime `json:"start_at"`
	StartedAt           NullTime `json:"started_at"`
	StartedCheckingInAt NullTime `json:"started_checking_in_at"`
	CompletedAt         NullTime `json:"completed_at"`
	PredictionsOpenedAt NullTime `json:"predictions_opened_at"`
}

// ScoringPoints returns the point weights that apply to the tournament's
// format: the rr_ set for round robin, the plain set otherwise.
func (t Tournament) ScoringPoints() (matchWin, matchTie, gameWin, gameTie Float) {
	if t.TournamentType == RoundRobin {
		return t.RRPointsForMatchWin, t.RRPointsForMatchTie, t.RRPointsForGameWin, t.RRPointsForGameTie
	}
	return t.PointsForMatchWin, t.PointsForMatchTie, t.PointsForGameWin, t.PointsForGameTie
}

// Participant seeds are renumbered by the server after inserts, deletes and
// randomization, so a held Seed goes stale after any of those.
type Participant struct {
	ID                                    int      `json:"id"`
	TournamentID                          int      `json:"tournament_id"`
	Name                                  string   `json:"name"`
	DisplayName                           string   `json:"display_name"`
	Seed                                  int      `json:"seed"`
	Active                                bool     `json:"active"`
	CheckedIn                             bool     `json:"checked_in"`
	CanCheckIn                            bool     `json:"can_check_in"`
	CheckedInAt                           NullTime `json:"checked_in_at"`
	OnWaitingList                         bool     `json:"on_waiting_list"`
	Misc                                  string   `json:"misc"`
	FinalRank                             *int     `json:"final_rank"`
	GroupID                               *int     `json:"group_id"`
	Icon                                  string   `json:"icon"`
	InvitationID                          *int     `json:"invitation_id"`
	InvitationPending                     bool     `json:"invitation_pending"`
	InviteEmail                           string   `json:"invite_email"`
	ChallongeUsername                     string   `json:"challonge_username"`
	Username                              string   `json:"username"`
	EmailHash                             string   `json:"email_hash"`
	Removable                             bool     `json:"removable"`
	Reactivatable                         bool     `json:"reactivatable"`
	ConfirmRemove                         bool     `json:"confirm_remove"`
	ParticipatableOrInvitationAttached    bool     `json:"participatable_or_invitation_attached"`
	DisplayNameWithInvitationEmailAddress string   `json:"display_name_with_invitation_email_address"`
	AttachedParticipatablePortraitURL     string   `json:"attached_participatable_portrait_url"`
	CreatedAt                             NullTime `json:"created_at"`
	UpdatedAt                             NullTime `json:"updated_at"`
}

// Label is the name shown in the bracket: DisplayName when the server set
// one, Name otherwise.
func (p Participant) Label() string {
	if p.DisplayName != "" {
		return p.DisplayName
	}
	return p.Name
}

// Match rounds are positive in the winners (or only) bracket and negative in
// the losers bracket.
type Match struct {
	ID                        int        `json:"id"`
	TournamentID              int        `json:"tournament_id"`
	Identifier                string     `json:"identifier"`
	Round                     int        `json:"round"`
	State                     MatchState `json:"state"`
	Player1ID                 *int       `json:"player1_id"`
	Player2ID                 *int       `json:"player2_id"`
	Player1PrereqMatchID      *int       `json:"player1_prereq_match_id"`
	Player2PrereqMatchID      *int       `json:"player2_prereq_match_id"`
	Player1IsPrereqMatchLoser bool       `json:"player1_is_prereq_match_loser"`
	Player2IsPrereqMatchLoser bool       `json:"player2_is_prereq_match_loser"`
	PrerequisiteMatchIDsCSV   string     `json:"prerequisite_match_ids_csv"`
	Player1Votes              *int       `json:"player1_votes"`
	Player2Votes              *int       `json:"player2_votes"`
	WinnerID                  *int       `json:"winner_id"`
	LoserID                   *int       `json:"loser_id"`
	ScoresCSV                 string     `json:"scores_csv"`
	GroupID                   *int       `json:"group_id"`
	Location                  string     `json:"location"`
	AttachmentCount           *int       `json:"attachment_count"`
	HasAttachment             bool       `json:"has_attachment"`
	ScheduledTime             NullTime   `json:"scheduled_time"`
	StartedAt                 NullTime   `json:"started_at"`
	UnderwayAt                NullTime   `json:"underway_at"`
	CreatedAt                 NullTime   `json:"created_at"`
	UpdatedAt                 NullTime   `json:"updated_at"`
}

// IsLosersBracket reports whether the match sits in the losers bracket of a
// double elimination tournament.
func (m Match) IsLosersBracket() bool {
	return m.Round < 0
}

type Attachment struct {
	ID               int      `json:"id"`
	MatchID          int      `json:"match_id"`
	UserID           int      `json:"user_id"`
	URL              string   `json:"url"`
	Description      string   `json:"description"`
	OriginalFileName string   `json:"original_file_name"`
	AssetFileName    string   `json:"asset_file_name"`
	AssetContentType string   `json:"asset_content_type"`
	AssetFileSize    *int     `json:"asset_file_size"`
	AssetURL         string   `json:"asset_url"`
	CreatedAt        NullTime `json:"created_at"`
	UpdatedAt        NullTime `json:"updated_at"`
}

// TournamentDetail is a tournament with the collections requested alongside
// it. Matches and Participants are nil unless requested.
type TournamentDetail struct {
	Tournament   Tournament
	Matches      []Match
	Participants []Participant
}

type ParticipantDetail struct {
	Participant Participant
	Matches     []Match
}

type MatchDetail struct {
	Match       Match
	Attachments []Attachment
}
