package challonge

import (
	"context"
	"net/http"
	"net/url"
	"unicode/utf8"
)

// MaxMiscLength is the longest misc value the API stores.
const MaxMiscLength = 255

// ParticipantParams configures a participant create or update. Empty strings
// and a nil Seed are left out of the request.
type ParticipantParams struct {
	Name              string
	ChallongeUsername string
	Email             string
	Seed              *int
	Misc              string
}

// ParticipantParamsFrom copies the settable fields of an existing
// participant.
func ParticipantParamsFrom(p Participant) ParticipantParams {
	params := ParticipantParams{
		Name:              p.Name,
		ChallongeUsername: p.ChallongeUsername,
		Email:             p.InviteEmail,
		Misc:              p.Misc,
	}
	if p.Seed > 0 {
		params.Seed = Ptr(p.Seed)
	}
	return params
}

func (p ParticipantParams) validate(update bool) error {
	if utf8.RuneCountInString(p.Misc) > MaxMiscLength {
		return invalidArgument("misc is longer than %d characters", MaxMiscLength)
	}
	identified := p.Name != "" || p.ChallongeUsername != "" || p.Email != ""
	if update {
		if !identified && p.Seed == nil && p.Misc == "" {
			return invalidArgument("at least one participant field must be set")
		}
		return nil
	}
	if !identified {
		return invalidArgument("one of name, challonge username or email is required")
	}
	return nil
}

func (p ParticipantParams) form() Form {
	var f Form
	if p.Name != "" {
		f.Add("participant[name]", p.Name)
	}
	if p.ChallongeUsername != "" {
		f.Add("participant[challonge_username]", p.ChallongeUsername)
	}
	if p.Email != "" {
		f.Add("participant[email]", p.Email)
	}
	if p.Seed != nil {
		f.AddInt("participant[seed]", *p.Seed)
	}
	if p.Misc != "" {
		f.Add("participant[misc]", p.Misc)
	}
	return f
}

// BulkParticipants holds parallel slices correlated by index. Every non-empty
// slice must have the same length; empty slices are left out.
type BulkParticipants struct {
	Names               []string
	InviteNamesOrEmails []string
	Seeds               []int
	Miscs               []string
}

func (b BulkParticipants) size() (int, error) {
	n := -1
	for _, l := range []int{len(b.Names), len(b.InviteNamesOrEmails), len(b.Seeds), len(b.Miscs)} {
		if l == 0 {
			continue
		}
		if n >= 0 && l != n {
			return 0, invalidArgument("bulk participant fields differ in length")
		}
		n = l
	}
	if n < 0 {
		return 0, invalidArgument("no participants to add")
	}
	return n, nil
}

func participantsPath(tournament string) string {
	return tournamentPath(tournament) + "/participants"
}

func participantPath(tournament string, id int) string {
	return participantsPath(tournament) + "/" + ID(id)
}

func buildListParticipants(tournament string) Request {
	return Request{Method: http.MethodGet, Path: participantsPath(tournament) + ".json"}
}

func buildCreateParticipant(tournament string, p ParticipantParams) (Request, error) {
	if err := p.validate(false); err != nil {
		return Request{}, err
	}
	return Request{Method: http.MethodPost, Path: participantsPath(tournament) + ".json", Form: p.form()}, nil
}

// buildBulkAddParticipants emits the fields of each participant together,
// in index order, under the shared participants[][...] keys.
func buildBulkAddParticipants(tournament string, b BulkParticipants) (Request, error) {
	n, err := b.size()
	if err != nil {
		return Request{}, err
	}
	for _, misc := range b.Miscs {
		if utf8.RuneCountInString(misc) > MaxMiscLength {
			return Request{}, invalidArgument("misc is longer than %d characters", MaxMiscLength)
		}
	}

	f := make(Form, 0, n*4)
	for i := 0; i < n; i++ {
		if len(b.Names) > 0 {
			f.Add("participants[][name]", b.Names[i])
		}
		if len(b.InviteNamesOrEmails) > 0 {
			f.Add("participants[][invite_name_or_email]", b.InviteNamesOrEmails[i])
		}
		if len(b.Seeds) > 0 {
			f.AddInt("participants[][seed]", b.Seeds[i])
		}
		if len(b.Miscs) > 0 {
			f.Add("participants[][misc]", b.Miscs[i])
		}
	}
	return Request{Method: http.MethodPost, Path: participantsPath(tournament) + "/bulk_add.json", Form: f}, nil
}

func buildGetParticipant(tournament string, id int, includeMatches bool) Request {
	q := url.Values{}
	if includeMatches {
		q.Set("include_matches", "1")
	}
	return Request{Method: http.MethodGet, Path: participantPath(tournament, id) + ".json", Query: q}
}

func buildUpdateParticipant(tournament string, id int, p ParticipantParams) (Request, error) {
	if err := p.validate(true); err != nil {
		return Request{}, err
	}
	return Request{Method: http.MethodPut, Path: participantPath(tournament, id) + ".json", Form: p.form()}, nil
}

func buildParticipantAction(tournament string, id int, action string) Request {
	return Request{Method: http.MethodPost, Path: participantPath(tournament, id) + "/" + action + ".json"}
}

func buildDeleteParticipant(tournament string, id int) Request {
	return Request{Method: http.MethodDelete, Path: participantPath(tournament, id) + ".json"}
}

func buildClearParticipants(tournament string) Request {
	return Request{Method: http.MethodDelete, Path: participantsPath(tournament) + "/clear.json"}
}

func buildRandomizeParticipants(tournament string) Request {
	return Request{Method: http.MethodPost, Path: participantsPath(tournament) + "/randomize.json"}
}

type ParticipantsHandler struct {
	call *caller
}

func (h *ParticipantsHandler) List(ctx context.Context, tournament string) ([]Participant, error) {
	return h.list(ctx, buildListParticipants(tournament))
}

func (h *ParticipantsHandler) Create(ctx context.Context, tournament string, p ParticipantParams) (*Participant, error) {
	req, err := buildCreateParticipant(tournament, p)
	if err != nil {
		return nil, err
	}
	return h.one(ctx, req)
}

// BulkAdd adds several participants in one request. Only allowed before the
// tournament starts.
func (h *ParticipantsHandler) BulkAdd(ctx context.Context, tournament string, b BulkParticipants) ([]Participant, error) {
	req, err := buildBulkAddParticipants(tournament, b)
	if err != nil {
		return nil, err
	}
	return h.list(ctx, req)
}

func (h *ParticipantsHandler) Get(ctx context.Context, tournament string, id int, includeMatches bool) (*ParticipantDetail, error) {
	body, err := h.call.do(ctx, buildGetParticipant(tournament, id, includeMatches))
	if err != nil {
		return nil, err
	}
	d, err := DecodeParticipantDetail(body, includeMatches)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (h *ParticipantsHandler) Update(ctx context.Context, tournament string, id int, p ParticipantParams) (*Participant, error) {
	req, err := buildUpdateParticipant(tournament, id, p)
	if err != nil {
		return nil, err
	}
	return h.one(ctx, req)
}

// CheckIn only succeeds while the tournament is checking in.
func (h *ParticipantsHandler) CheckIn(ctx context.Context, tournament string, id int) (*Participant, error) {
	return h.one(ctx, buildParticipantAction(tournament, id, "check_in"))
}

func (h *ParticipantsHandler) UndoCheckIn(ctx context.Context, tournament string, id int) (*Participant, error) {
	return h.one(ctx, buildParticipantAction(tournament, id, "undo_check_in"))
}

// Delete removes the participant before the tournament starts, or marks it
// inactive and forfeits its remaining matches afterwards.
func (h *ParticipantsHandler) Delete(ctx context.Context, tournament string, id int) error {
	_, err := h.call.do(ctx, buildDeleteParticipant(tournament, id))
	return err
}

// Clear removes every participant. Only allowed before the tournament starts.
func (h *ParticipantsHandler) Clear(ctx context.Context, tournament string) error {
	_, err := h.call.do(ctx, buildClearParticipants(tournament))
	return err
}

// Randomize reshuffles seeds and returns the participants in their new
// order.
func (h *ParticipantsHandler) Randomize(ctx context.Context, tournament string) ([]Participant, error) {
	return h.list(ctx, buildRandomizeParticipants(tournament))
}

func (h *ParticipantsHandler) one(ctx context.Context, req Request) (*Participant, error) {
	body, err := h.call.do(ctx, req)
	if err != nil {
		return nil, err
	}
	p, err := DecodeParticipant(body)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (h *ParticipantsHandler) list(ctx context.Context, req Request) ([]Participant, error) {
	body, err := h.call.do(ctx, req)
	if err != nil {
		return nil, err
	}
	return DecodeParticipants(body)
}
