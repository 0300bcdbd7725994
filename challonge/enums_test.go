package challonge

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTournamentTypeRoundTrip(t *testing.T) {
	for _, tt := range []TournamentType{
		SingleElimination, DoubleElimination, RoundRobin, Swiss,
		TimeTrial, SingleRace, GrandPrix, FreeForAll,
	} {
		t.Run(tt.String(), func(t *testing.T) {
			require.NotEmpty(t, tt.Token())
			require.Equal(t, tt, ParseTournamentType(tt.Token()))

			data, err := json.Marshal(tt)
			require.NoError(t, err)
			var got TournamentType
			require.NoError(t, json.Unmarshal(data, &got))
			require.Equal(t, tt, got)
		})
	}
}

func TestTournamentTypeUnknown(t *testing.T) {
	require.Equal(t, TournamentTypeInvalid, ParseTournamentType("double elim"))
	require.Equal(t, "", TournamentTypeInvalid.Token())

	var got TournamentType
	require.NoError(t, json.Unmarshal([]byte(`"bracket royale"`), &got))
	require.Equal(t, TournamentTypeInvalid, got)
	require.NoError(t, json.Unmarshal([]byte(`null`), &got))
	require.Equal(t, TournamentTypeInvalid, got)
}

func TestTournamentTypeFilterToken(t *testing.T) {
	require.Equal(t, "single_elimination", SingleElimination.filterToken())
	require.Equal(t, "free_for_all", FreeForAll.filterToken())
	require.Equal(t, "swiss", Swiss.filterToken())
	require.Equal(t, "", TournamentTypeInvalid.filterToken())
}

func TestTournamentStateDecode(t *testing.T) {
	tests := map[string]TournamentState{
		"pending":            Pending,
		"checking_in":        CheckingIn,
		"checked_in":         CheckedIn,
		"in_progress":        Underway,
		"ended":              Completed,
		"underway":           TournamentStateInvalid,
		"awaiting_review":    TournamentStateInvalid,
		"":                   TournamentStateInvalid,
		"group_stages_final": TournamentStateInvalid,
	}
	for token, want := range tests {
		t.Run(token, func(t *testing.T) {
			require.Equal(t, want, ParseTournamentState(token))
		})
	}

	for _, st := range []TournamentState{Pending, CheckingIn, CheckedIn, Underway, Completed} {
		require.Equal(t, st, ParseTournamentState(st.Token()))
	}
}

func TestRankingStatRoundTrip(t *testing.T) {
	for _, r := range []RankingStat{
		RankByMatchWins, RankByGameWins, RankByGameWinPercentage,
		RankByPointsScored, RankByPointsDifference, RankByCustom,
	} {
		require.Equal(t, r, ParseRankingStat(r.Token()))
	}
	require.Equal(t, RankingStatInvalid, ParseRankingStat("elo"))
}

func TestTieBreaksKeepOrder(t *testing.T) {
	var got TieBreaks
	err := json.Unmarshal([]byte(`["median buchholz","match wins vs tied","coin flip","game wins"]`), &got)
	require.NoError(t, err)
	require.Equal(t, TieBreaks{
		TieBreakMedianBuchholz,
		TieBreakMatchWinsVsTied,
		TieBreakInvalid,
		TieBreakGameWins,
	}, got)

	data, err := json.Marshal(TieBreaks{TieBreakPointsScored, TieBreakMatchWins})
	require.NoError(t, err)
	require.JSONEq(t, `["points scored","match wins"]`, string(data))

	require.NoError(t, json.Unmarshal([]byte(`null`), &got))
	require.Nil(t, got)
}

func TestGrandFinalsModifier(t *testing.T) {
	require.Equal(t, "", TwoChances.Token())
	require.Equal(t, "single match", SingleMatch.Token())
	require.Equal(t, "skip", Skip.Token())

	tests := map[string]GrandFinalsModifier{
		"":             TwoChances,
		"single match": SingleMatch,
		"skip":         Skip,
		"garbage":      TwoChances,
	}
	for token, want := range tests {
		require.Equal(t, want, ParseGrandFinalsModifier(token), token)
	}

	var got GrandFinalsModifier = Skip
	require.NoError(t, json.Unmarshal([]byte(`null`), &got))
	require.Equal(t, TwoChances, got)
}

func TestMatchState(t *testing.T) {
	for _, s := range []MatchState{MatchPending, MatchOpen, MatchComplete} {
		require.Equal(t, s, ParseMatchState(s.Token()))
	}
	require.Equal(t, MatchStateInvalid, ParseMatchState("abandoned"))
}

func TestPredictionMethodJSON(t *testing.T) {
	tests := []struct {
		raw  string
		want PredictionMethod
	}{
		{`0`, PredictionNone},
		{`1`, PredictionExponential},
		{`2`, PredictionLinear},
		{`"2"`, PredictionLinear},
		{`null`, PredictionNone},
		{`7`, PredictionInvalid},
		{`"linear"`, PredictionInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			var got PredictionMethod
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &got))
			require.Equal(t, tt.want, got)
		})
	}

	data, err := json.Marshal(PredictionExponential)
	require.NoError(t, err)
	require.Equal(t, `1`, string(data))
}
