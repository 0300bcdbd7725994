package challonge

import (
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRequestURLPlacesKeyInQuery(t *testing.T) {
	req := buildGetTournament("sub-my_cup", TournamentInclude{Matches: true})

	u, err := url.Parse(req.URL(DefaultBaseURL+"/", "secret"))
	require.NoError(t, err)
	require.Equal(t, "/v1/tournaments/sub-my_cup.json", u.Path)
	require.Equal(t, "secret", u.Query().Get("api_key"))
	require.Equal(t, "1", u.Query().Get("include_matches"))
	require.False(t, u.Query().Has("include_participants"))
	require.Nil(t, req.Body("secret"))
	require.False(t, req.Query.Has("api_key"))
}

func TestRequestBodyPlacesKeyFirst(t *testing.T) {
	req, err := buildCreateParticipant("cup", ParticipantParams{Name: "A & B"})
	require.NoError(t, err)

	require.Equal(t, "api_key=secret&participant%5Bname%5D=A+%26+B", string(req.Body("secret")))
	require.NotContains(t, req.URL(DefaultBaseURL, "secret"), "api_key")
}

func TestFormKeepsRepeatedKeys(t *testing.T) {
	var f Form
	f.Add("k", "1")
	f.Add("k", "2")
	f.AddBool("flag", false)

	require.Equal(t, "k=1&k=2&flag=false", f.Encode())
	v, ok := f.Get("k")
	require.True(t, ok)
	require.Equal(t, "1", v)
	require.False(t, f.Has("missing"))
}

func TestSubdomainSlug(t *testing.T) {
	require.Equal(t, "test-mytourney", SubdomainSlug("test", "mytourney"))
	require.Equal(t, "mytourney", SubdomainSlug("", "mytourney"))
	require.Equal(t, "/tournaments/10230", tournamentPath(ID(10230)))
}

func TestBuildBulkAddParticipants(t *testing.T) {
	req, err := buildBulkAddParticipants("cup", BulkParticipants{
		Names: []string{"A", "B"},
		Seeds: []int{1, 2},
	})
	require.NoError(t, err)
	require.Equal(t, http.MethodPost, req.Method)
	require.Equal(t, "/tournaments/cup/participants/bulk_add.json", req.Path)
	require.Equal(t, Form{
		{Key: "participants[][name]", Value: "A"},
		{Key: "participants[][seed]", Value: "1"},
		{Key: "participants[][name]", Value: "B"},
		{Key: "participants[][seed]", Value: "2"},
	}, req.Form)
}

func TestBuildBulkAddParticipantsRejects(t *testing.T) {
	tests := []struct {
		name string
		bulk BulkParticipants
	}{
		{"empty", BulkParticipants{}},
		{"length mismatch", BulkParticipants{Names: []string{"A", "B"}, Seeds: []int{1}}},
		{"misc too long", BulkParticipants{Names: []string{"A"}, Miscs: []string{string(make([]byte, 256))}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := buildBulkAddParticipants("cup", tt.bulk)
			require.ErrorIs(t, err, ErrInvalidArgument)
		})
	}
}

func TestBuildCreateTournament(t *testing.T) {
	start := time.Date(2024, 5, 4, 18, 0, 0, 0, time.FixedZone("", -4*60*60))
	req, err := buildCreateTournament(TournamentParams{
		Name:                "Spring Open",
		URL:                 "spring_open",
		TournamentType:      Swiss,
		SwissRounds:         Ptr(5),
		PointsForMatchWin:   Ptr(1.5),
		StartAt:             start,
		PredictionMethod:    Ptr(PredictionLinear),
		GrandFinalsModifier: Skip,
		OpenSignup:          true,
	})
	require.NoError(t, err)
	require.Equal(t, http.MethodPost, req.Method)
	require.Equal(t, "/tournaments.json", req.Path)

	want := map[string]string{
		"tournament[name]":                                  "Spring Open",
		"tournament[url]":                                   "spring_open",
		"tournament[tournament_type]":                       "swiss",
		"tournament[swiss_rounds]":                          "5",
		"tournament[pts_for_match_win]":                     "1.5",
		"tournament[start_at]":                              "2024-05-04T18:00:00.000-04:00",
		"tournament[prediction_method]":                     "2",
		"tournament[grand_finals_modifier]":                 "skip",
		"tournament[open_signup]":                           "true",
		"tournament[private]":                               "false",
		"tournament[notify_users_when_the_tournament_ends]": "false",
	}
	for key, value := range want {
		got, ok := req.Form.Get(key)
		require.True(t, ok, key)
		require.Equal(t, value, got, key)
	}

	for _, key := range []string{
		"tournament[description]",
		"tournament[subdomain]",
		"tournament[ranked_by]",
		"tournament[pts_for_bye]",
		"tournament[signup_cap]",
	} {
		require.False(t, req.Form.Has(key), key)
	}
}

func TestBuildCreateTournamentSendsTwoChancesEmpty(t *testing.T) {
	req, err := buildCreateTournament(TournamentParams{Name: "x"})
	require.NoError(t, err)

	v, ok := req.Form.Get("tournament[grand_finals_modifier]")
	require.True(t, ok)
	require.Equal(t, "", v)
	require.False(t, req.Form.Has("tournament[tournament_type]"))
}

func TestBuildTournamentRequiresFields(t *testing.T) {
	_, err := buildCreateTournament(TournamentParams{OpenSignup: true})
	require.ErrorIs(t, err, ErrInvalidArgument)

	_, err = buildUpdateTournament("cup", TournamentParams{Private: true, HideForum: true})
	require.ErrorIs(t, err, ErrInvalidArgument)

	req, err := buildUpdateTournament("cup", TournamentParams{Description: "now with prizes"})
	require.NoError(t, err)
	require.Equal(t, http.MethodPut, req.Method)
	require.Equal(t, "/tournaments/cup.json", req.Path)
}

func TestTournamentParamsFrom(t *testing.T) {
	tour := Tournament{
		Name:               "Cup",
		URL:                "cup",
		TournamentType:     RoundRobin,
		RankedBy:           RankByGameWins,
		PredictionMethod:   PredictionExponential,
		PointsForMatchWin:  1,
		RRPointsForGameTie: 0.5,
		SwissRounds:        3,
		Private:            true,
		StartAt:            NewNullTime(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)),
	}

	p := TournamentParamsFrom(tour)
	require.Equal(t, "Cup", p.Name)
	require.Equal(t, RoundRobin, p.TournamentType)
	require.Equal(t, 0.5, *p.RRPointsForGameTie)
	require.Nil(t, p.SwissRounds)
	require.Equal(t, PredictionExponential, *p.PredictionMethod)
	require.True(t, p.Private)
	require.True(t, p.StartAt.Equal(tour.StartAt.Time))

	req, err := buildUpdateTournament("cup", p)
	require.NoError(t, err)
	v, _ := req.Form.Get("tournament[private]")
	require.Equal(t, "true", v)
}

func TestBuildListTournaments(t *testing.T) {
	req := buildListTournaments(TournamentListParams{
		State:        Completed,
		Type:         DoubleElimination,
		CreatedAfter: time.Date(2023, 2, 1, 15, 0, 0, 0, time.UTC),
		Subdomain:    "club",
	})
	require.Equal(t, http.MethodGet, req.Method)
	require.Equal(t, "ended", req.Query.Get("state"))
	require.Equal(t, "double_elimination", req.Query.Get("type"))
	require.Equal(t, "2023-02-01", req.Query.Get("created_after"))
	require.False(t, req.Query.Has("created_before"))
	require.Equal(t, "club", req.Query.Get("subdomain"))

	require.Empty(t, buildListTournaments(TournamentListParams{}).Query)
}

func TestBuildTournamentAction(t *testing.T) {
	req := buildTournamentAction("cup", "process_check_ins", TournamentInclude{Participants: true})
	require.Equal(t, http.MethodPost, req.Method)
	require.Equal(t, "/tournaments/cup/process_check_ins.json", req.Path)
	require.Equal(t, Form{{Key: "include_participants", Value: "1"}}, req.Form)
}

func TestParticipantParamsValidation(t *testing.T) {
	long := make([]rune, MaxMiscLength+1)
	for i := range long {
		long[i] = 'é'
	}

	tests := []struct {
		name    string
		params  ParticipantParams
		update  bool
		wantErr bool
	}{
		{"create with name", ParticipantParams{Name: "A"}, false, false},
		{"create with email only", ParticipantParams{Email: "a@example.com"}, false, false},
		{"create with seed only", ParticipantParams{Seed: Ptr(1)}, false, true},
		{"update with seed only", ParticipantParams{Seed: Ptr(1)}, true, false},
		{"update with nothing", ParticipantParams{}, true, true},
		{"misc at limit", ParticipantParams{Name: "A", Misc: string(long[:MaxMiscLength])}, false, false},
		{"misc over limit", ParticipantParams{Name: "A", Misc: string(long)}, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.params.validate(tt.update)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidArgument)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestBuildUpdateMatch(t *testing.T) {
	req, err := buildUpdateMatch("cup", 42, MatchParams{ScoresCSV: "3-1,2-3,3-0", WinnerID: Ptr(7)})
	require.NoError(t, err)
	require.Equal(t, http.MethodPut, req.Method)
	require.Equal(t, "/tournaments/cup/matches/42.json", req.Path)
	require.Equal(t, Form{
		{Key: "match[scores_csv]", Value: "3-1,2-3,3-0"},
		{Key: "match[winner_id]", Value: "7"},
	}, req.Form)

	_, err = buildUpdateMatch("cup", 42, MatchParams{WinnerID: Ptr(7)})
	require.ErrorIs(t, err, ErrInvalidArgument)

	_, err = buildUpdateMatch("cup", 42, MatchParams{})
	require.ErrorIs(t, err, ErrInvalidArgument)

	req, err = buildUpdateMatch("cup", 42, MatchParams{Player1Votes: Ptr(3)})
	require.NoError(t, err)
	require.Len(t, req.Form, 1)
}

func TestBuildListMatches(t *testing.T) {
	req := buildListMatches("cup", MatchListParams{State: MatchOpen, ParticipantID: Ptr(5)})
	require.Equal(t, "open", req.Query.Get("state"))
	require.Equal(t, "5", req.Query.Get("participant_id"))

	req = buildListMatches("cup", MatchListParams{})
	require.Empty(t, req.Query)
}

func TestBuildMatchActions(t *testing.T) {
	for _, action := range []string{"reopen", "mark_as_underway", "unmark_as_underway"} {
		req := buildMatchAction("cup", 3, action)
		require.Equal(t, http.MethodPost, req.Method)
		require.Equal(t, "/tournaments/cup/matches/3/"+action+".json", req.Path)
	}
}

func TestBuildAttachmentRequests(t *testing.T) {
	_, err := buildCreateAttachment("cup", 3, AttachmentParams{})
	require.ErrorIs(t, err, ErrInvalidArgument)

	_, err = buildUpdateAttachment("cup", 3, 9, AttachmentParams{})
	require.ErrorIs(t, err, ErrInvalidArgument)

	req, err := buildCreateAttachment("cup", 3, AttachmentParams{Description: "vod"})
	require.NoError(t, err)
	require.Equal(t, "/tournaments/cup/matches/3/attachments.json", req.Path)
	require.Equal(t, Form{{Key: "match_attachment[description]", Value: "vod"}}, req.Form)

	del := buildDeleteAttachment("cup", 3, 9)
	require.Equal(t, http.MethodDelete, del.Method)
	require.Equal(t, "/tournaments/cup/matches/3/attachments/9.json", del.Path)
}

func TestNewTournamentURL(t *testing.T) {
	slug, err := NewTournamentURL()
	require.NoError(t, err)
	require.Len(t, slug, slugLength)
	require.Regexp(t, `^[a-z0-9_]+$`, slug)
}
