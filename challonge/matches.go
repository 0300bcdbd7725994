package challonge

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

type MatchListParams struct {
	// MatchStateInvalid leaves the state filter off.
	State         MatchState
	ParticipantID *int
}

// MatchParams reports scores for a match. ScoresCSV holds comma separated
// per-game scores with player 1 first ("3-1,1-3,3-2"). WinnerID may be 0 for
// a tie in round robin and swiss. Setting a winner on a completed match
// resets every match that depends on it.
type MatchParams struct {
	ScoresCSV    string
	WinnerID     *int
	Player1Votes *int
	Player2Votes *int
}

func (p MatchParams) validate() error {
	if p.ScoresCSV == "" && p.WinnerID == nil && p.Player1Votes == nil && p.Player2Votes == nil {
		return invalidArgument("at least one match field must be set")
	}
	if p.WinnerID != nil && p.ScoresCSV == "" {
		return invalidArgument("a winner requires scores")
	}
	return nil
}

func (p MatchParams) form() Form {
	var f Form
	if p.ScoresCSV != "" {
		f.Add("match[scores_csv]", p.ScoresCSV)
	}
	if p.WinnerID != nil {
		f.AddInt("match[winner_id]", *p.WinnerID)
	}
	if p.Player1Votes != nil {
		f.AddInt("match[player1_votes]", *p.Player1Votes)
	}
	if p.Player2Votes != nil {
		f.AddInt("match[player2_votes]", *p.Player2Votes)
	}
	return f
}

func matchesPath(tournament string) string {
	return tournamentPath(tournament) + "/matches"
}

func matchPath(tournament string, id int) string {
	return matchesPath(tournament) + "/" + ID(id)
}

func buildListMatches(tournament string, p MatchListParams) Request {
	q := url.Values{}
	if tok := p.State.Token(); tok != "" {
		q.Set("state", tok)
	}
	if p.ParticipantID != nil {
		q.Set("participant_id", strconv.Itoa(*p.ParticipantID))
	}
	return Request{Method: http.MethodGet, Path: matchesPath(tournament) + ".json", Query: q}
}

func buildGetMatch(tournament string, id int, includeAttachments bool) Request {
	q := url.Values{}
	if includeAttachments {
		q.Set("include_attachments", "1")
	}
	return Request{Method: http.MethodGet, Path: matchPath(tournament, id) + ".json", Query: q}
}

func buildUpdateMatch(tournament string, id int, p MatchParams) (Request, error) {
	if err := p.validate(); err != nil {
		return Request{}, err
	}
	return Request{Method: http.MethodPut, Path: matchPath(tournament, id) + ".json", Form: p.form()}, nil
}

func buildMatchAction(tournament string, id int, action string) Request {
	return Request{Method: http.MethodPost, Path: matchPath(tournament, id) + "/" + action + ".json"}
}

type MatchesHandler struct {
	call *caller
}

func (h *MatchesHandler) List(ctx context.Context, tournament string, p MatchListParams) ([]Match, error) {
	body, err := h.call.do(ctx, buildListMatches(tournament, p))
	if err != nil {
		return nil, err
	}
	return DecodeMatches(body)
}

func (h *MatchesHandler) Get(ctx context.Context, tournament string, id int, includeAttachments bool) (*MatchDetail, error) {
	body, err := h.call.do(ctx, buildGetMatch(tournament, id, includeAttachments))
	if err != nil {
		return nil, err
	}
	d, err := DecodeMatchDetail(body, includeAttachments)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (h *MatchesHandler) Update(ctx context.Context, tournament string, id int, p MatchParams) (*Match, error) {
	req, err := buildUpdateMatch(tournament, id, p)
	if err != nil {
		return nil, err
	}
	return h.one(ctx, req)
}

// Reopen moves a complete match back to open. The server also resets every
// match reachable from it through prerequisites; re-fetch the match list to
// see which ones changed.
func (h *MatchesHandler) Reopen(ctx context.Context, tournament string, id int) (*Match, error) {
	return h.one(ctx, buildMatchAction(tournament, id, "reopen"))
}

// MarkAsUnderway sets UnderwayAt and highlights the match in the bracket.
func (h *MatchesHandler) MarkAsUnderway(ctx context.Context, tournament string, id int) (*Match, error) {
	return h.one(ctx, buildMatchAction(tournament, id, "mark_as_underway"))
}

func (h *MatchesHandler) UnmarkAsUnderway(ctx context.Context, tournament string, id int) (*Match, error) {
	return h.one(ctx, buildMatchAction(tournament, id, "unmark_as_underway"))
}

func (h *MatchesHandler) one(ctx context.Context, req Request) (*Match, error) {
	body, err := h.call.do(ctx, req)
	if err != nil {
		return nil, err
	}
	m, err := DecodeMatch(body)
	if err != nil {
		return nil, err
	}
	return &m, nil
}
