package challonge

import (
	"context"
	"net/http"
	"net/url"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Ptr returns a pointer to v, for filling optional numeric parameters.
func Ptr[T any](v T) *T {
	return &v
}

const (
	slugAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789_"
	slugLength   = 12
)

// NewTournamentURL returns a random slug made only of the characters
// Challonge accepts in a tournament URL.
func NewTournamentURL() (string, error) {
	return gonanoid.Generate(slugAlphabet, slugLength)
}

type TournamentListParams struct {
	// Zero values leave the filter off.
	State         TournamentState
	Type          TournamentType
	CreatedAfter  time.Time
	CreatedBefore time.Time
	Subdomain     string
}

// TournamentInclude asks for collections to be embedded in a tournament
// response.
type TournamentInclude struct {
	Matches      bool
	Participants bool
}

// TournamentParams configures a create or update. Empty strings, nil
// pointers, zero times and Invalid enums are left out of the request. The
// boolean flags are always sent; updating from TournamentParamsFrom keeps
// them as they were.
type TournamentParams struct {
	Name        string
	URL         string
	Subdomain   string
	Description string
	GameName    string

	TournamentType      TournamentType
	RankedBy            RankingStat
	PredictionMethod    *PredictionMethod
	GrandFinalsModifier GrandFinalsModifier

	PointsForMatchWin *float64
	PointsForMatchTie *float64
	PointsForGameWin  *float64
	PointsForGameTie  *float64
	PointsForBye      *float64

	RRPointsForMatchWin *float64
	RRPointsForMatchTie *float64
	RRPointsForGameWin  *float64
	RRPointsForGameTie  *float64

	SwissRounds     *int
	SignupCap       *int
	CheckInDuration *int
	StartAt         time.Time

	OpenSignup                    bool
	HoldThirdPlaceMatch           bool
	AcceptAttachments             bool
	HideForum                     bool
	ShowRounds                    bool
	Private                       bool
	NotifyUsersWhenMatchesOpen    bool
	NotifyUsersWhenTournamentEnds bool
	SequentialPairings            bool
}

// TournamentParamsFrom copies the settable fields of an existing tournament.
func TournamentParamsFrom(t Tournament) TournamentParams {
	p := TournamentParams{
		Name:                t.Name,
		URL:                 t.URL,
		Subdomain:           t.Subdomain,
		Description:         t.Description,
		GameName:            t.GameName,
		TournamentType:      t.TournamentType,
		RankedBy:            t.RankedBy,
		GrandFinalsModifier: t.GrandFinalsModifier,

		PointsForMatchWin: Ptr(float64(t.PointsForMatchWin)),
		PointsForMatchTie: Ptr(float64(t.PointsForMatchTie)),
		PointsForGameWin:  Ptr(float64(t.PointsForGameWin)),
		PointsForGameTie:  Ptr(float64(t.PointsForGameTie)),
		PointsForBye:      Ptr(float64(t.PointsForBye)),

		RRPointsForMatchWin: Ptr(float64(t.RRPointsForMatchWin)),
		RRPointsForMatchTie: Ptr(float64(t.RRPointsForMatchTie)),
		RRPointsForGameWin:  Ptr(float64(t.RRPointsForGameWin)),
		RRPointsForGameTie:  Ptr(float64(t.RRPointsForGameTie)),

		SignupCap:       t.SignupCap,
		CheckInDuration: t.CheckInDuration,

		OpenSignup:                    t.OpenSignup,
		HoldThirdPlaceMatch:           t.HoldThirdPlaceMatch,
		AcceptAttachments:             t.AcceptAttachments,
		HideForum:                     t.HideForum,
		ShowRounds:                    t.ShowRounds,
		Private:                       t.Private,
		NotifyUsersWhenMatchesOpen:    t.NotifyUsersWhenMatchesOpen,
		NotifyUsersWhenTournamentEnds: t.NotifyUsersWhenTournamentEnds,
		SequentialPairings:            t.SequentialPairings,
	}
	if t.TournamentType == Swiss {
		p.SwissRounds = Ptr(t.SwissRounds)
	}
	if t.PredictionMethod != PredictionInvalid {
		p.PredictionMethod = Ptr(t.PredictionMethod)
	}
	if t.StartAt.Valid {
		p.StartAt = t.StartAt.Time
	}
	return p
}

// hasOptional reports whether any non-flag field is set.
func (p TournamentParams) hasOptional() bool {
	return p.Name != "" || p.URL != "" || p.Subdomain != "" || p.Description != "" || p.GameName != "" ||
		p.TournamentType != TournamentTypeInvalid || p.RankedBy != RankingStatInvalid ||
		p.PredictionMethod != nil || p.GrandFinalsModifier != TwoChances ||
		p.PointsForMatchWin != nil || p.PointsForMatchTie != nil || p.PointsForGameWin != nil ||
		p.PointsForGameTie != nil || p.PointsForBye != nil ||
		p.RRPointsForMatchWin != nil || p.RRPointsForMatchTie != nil || p.RRPointsForGameWin != nil ||
		p.RRPointsForGameTie != nil ||
		p.SwissRounds != nil || p.SignupCap != nil || p.CheckInDuration != nil || !p.StartAt.IsZero()
}

func (p TournamentParams) form() Form {
	var f Form
	str := func(key, v string) {
		if v != "" {
			f.Add("tournament["+key+"]", v)
		}
	}
	points := func(key string, v *float64) {
		if v != nil {
			f.Add("tournament["+key+"]", formatPoints(*v))
		}
	}
	integer := func(key string, v *int) {
		if v != nil {
			f.AddInt("tournament["+key+"]", *v)
		}
	}
	flag := func(key string, v bool) {
		f.AddBool("tournament["+key+"]", v)
	}

	str("name", p.Name)
	str("url", p.URL)
	str("subdomain", p.Subdomain)
	str("description", p.Description)
	str("game_name", p.GameName)
	str("tournament_type", p.TournamentType.Token())
	str("ranked_by", p.RankedBy.Token())
	if p.PredictionMethod != nil && *p.PredictionMethod != PredictionInvalid {
		f.AddInt("tournament[prediction_method]", int(*p.PredictionMethod))
	}

	points("pts_for_match_win", p.PointsForMatchWin)
	points("pts_for_match_tie", p.PointsForMatchTie)
	points("pts_for_game_win", p.PointsForGameWin)
	points("pts_for_game_tie", p.PointsForGameTie)
	points("pts_for_bye", p.PointsForBye)
	points("rr_pts_for_match_win", p.RRPointsForMatchWin)
	points("rr_pts_for_match_tie", p.RRPointsForMatchTie)
	points("rr_pts_for_game_win", p.RRPointsForGameWin)
	points("rr_pts_for_game_tie", p.RRPointsForGameTie)

	integer("swiss_rounds", p.SwissRounds)
	integer("signup_cap", p.SignupCap)
	integer("check_in_duration", p.CheckInDuration)
	if !p.StartAt.IsZero() {
		f.Add("tournament[start_at]", FormatTimestamp(p.StartAt))
	}

	flag("open_signup", p.OpenSignup)
	flag("hold_third_place_match", p.HoldThirdPlaceMatch)
	flag("accept_attachments", p.AcceptAttachments)
	flag("hide_forum", p.HideForum)
	flag("show_rounds", p.ShowRounds)
	flag("private", p.Private)
	flag("notify_users_when_matches_open", p.NotifyUsersWhenMatchesOpen)
	flag("notify_users_when_the_tournament_ends", p.NotifyUsersWhenTournamentEnds)
	flag("sequential_pairings", p.SequentialPairings)

	// TwoChances goes out as an empty value, which the server reads as its default.
	f.Add("tournament[grand_finals_modifier]", p.GrandFinalsModifier.Token())

	return f
}

func buildListTournaments(p TournamentListParams) Request {
	q := url.Values{}
	if tok := p.State.Token(); tok != "" {
		q.Set("state", tok)
	}
	if tok := p.Type.filterToken(); tok != "" {
		q.Set("type", tok)
	}
	if !p.CreatedAfter.IsZero() {
		q.Set("created_after", p.CreatedAfter.Format(time.DateOnly))
	}
	if !p.CreatedBefore.IsZero() {
		q.Set("created_before", p.CreatedBefore.Format(time.DateOnly))
	}
	if p.Subdomain != "" {
		q.Set("subdomain", p.Subdomain)
	}
	return Request{Method: http.MethodGet, Path: "/tournaments.json", Query: q}
}

func buildCreateTournament(p TournamentParams) (Request, error) {
	if p.Name == "" {
		return Request{}, invalidArgument("tournament name is required")
	}
	return Request{Method: http.MethodPost, Path: "/tournaments.json", Form: p.form()}, nil
}

func buildGetTournament(tournament string, inc TournamentInclude) Request {
	q := url.Values{}
	if inc.Matches {
		q.Set("include_matches", "1")
	}
	if inc.Participants {
		q.Set("include_participants", "1")
	}
	return Request{Method: http.MethodGet, Path: tournamentPath(tournament) + ".json", Query: q}
}

func buildUpdateTournament(tournament string, p TournamentParams) (Request, error) {
	if !p.hasOptional() {
		return Request{}, invalidArgument("at least one tournament field must be set")
	}
	return Request{Method: http.MethodPut, Path: tournamentPath(tournament) + ".json", Form: p.form()}, nil
}

func buildDeleteTournament(tournament string) Request {
	return Request{Method: http.MethodDelete, Path: tournamentPath(tournament) + ".json"}
}

// buildTournamentAction covers the lifecycle endpoints, which all POST to
// /tournaments/{tournament}/{action}.json.
func buildTournamentAction(tournament, action string, inc TournamentInclude) Request {
	var f Form
	if inc.Matches {
		f.Add("include_matches", "1")
	}
	if inc.Participants {
		f.Add("include_participants", "1")
	}
	return Request{Method: http.MethodPost, Path: tournamentPath(tournament) + "/" + action + ".json", Form: f}
}

type TournamentsHandler struct {
	call *caller
}

func (h *TournamentsHandler) List(ctx context.Context, p TournamentListParams) ([]Tournament, error) {
	body, err := h.call.do(ctx, buildListTournaments(p))
	if err != nil {
		return nil, err
	}
	return DecodeTournaments(body)
}

func (h *TournamentsHandler) Create(ctx context.Context, p TournamentParams) (*Tournament, error) {
	req, err := buildCreateTournament(p)
	if err != nil {
		return nil, err
	}
	return h.one(ctx, req)
}

// Get fetches a tournament by numeric id or slug ("subdomain-url" for
// subdomain tournaments).
func (h *TournamentsHandler) Get(ctx context.Context, tournament string, inc TournamentInclude) (*TournamentDetail, error) {
	return h.detail(ctx, buildGetTournament(tournament, inc), inc)
}

func (h *TournamentsHandler) Update(ctx context.Context, tournament string, p TournamentParams) (*Tournament, error) {
	req, err := buildUpdateTournament(tournament, p)
	if err != nil {
		return nil, err
	}
	return h.one(ctx, req)
}

func (h *TournamentsHandler) Delete(ctx context.Context, tournament string) error {
	_, err := h.call.do(ctx, buildDeleteTournament(tournament))
	return err
}

// ProcessCheckIns closes check-in: participants who did not check in are
// marked inactive and seeds are renumbered with inactive participants moved
// to the bottom, relative order preserved.
func (h *TournamentsHandler) ProcessCheckIns(ctx context.Context, tournament string, inc TournamentInclude) (*TournamentDetail, error) {
	return h.detail(ctx, buildTournamentAction(tournament, "process_check_ins", inc), inc)
}

// AbortCheckIn returns a checking-in or checked-in tournament to pending.
func (h *TournamentsHandler) AbortCheckIn(ctx context.Context, tournament string, inc TournamentInclude) (*TournamentDetail, error) {
	return h.detail(ctx, buildTournamentAction(tournament, "abort_check_in", inc), inc)
}

func (h *TournamentsHandler) Start(ctx context.Context, tournament string, inc TournamentInclude) (*TournamentDetail, error) {
	return h.detail(ctx, buildTournamentAction(tournament, "start", inc), inc)
}

func (h *TournamentsHandler) Finalize(ctx context.Context, tournament string, inc TournamentInclude) (*TournamentDetail, error) {
	return h.detail(ctx, buildTournamentAction(tournament, "finalize", inc), inc)
}

// Reset returns an underway or completed tournament to pending, discarding
// all scores and attachments.
func (h *TournamentsHandler) Reset(ctx context.Context, tournament string, inc TournamentInclude) (*TournamentDetail, error) {
	return h.detail(ctx, buildTournamentAction(tournament, "reset", inc), inc)
}

// OpenForPredictions cannot be undone. The server refuses it unless the
// tournament's prediction method is Exponential or Linear.
func (h *TournamentsHandler) OpenForPredictions(ctx context.Context, tournament string, inc TournamentInclude) (*TournamentDetail, error) {
	return h.detail(ctx, buildTournamentAction(tournament, "open_for_predictions", inc), inc)
}

func (h *TournamentsHandler) one(ctx context.Context, req Request) (*Tournament, error) {
	body, err := h.call.do(ctx, req)
	if err != nil {
		return nil, err
	}
	t, err := DecodeTournament(body)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (h *TournamentsHandler) detail(ctx context.Context, req Request, inc TournamentInclude) (*TournamentDetail, error) {
	body, err := h.call.do(ctx, req)
	if err != nil {
		return nil, err
	}
	d, err := DecodeTournamentDetail(body, inc.Matches, inc.Participants)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
