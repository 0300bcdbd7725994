package challonge

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Unknown tokens decode to the Invalid variant of each enum instead of failing,
// so values introduced server-side do not break older clients. Callers that
// care must check for Invalid.

type TournamentType int

const (
	TournamentTypeInvalid TournamentType = iota
	SingleElimination
	DoubleElimination
	RoundRobin
	Swiss
	TimeTrial
	SingleRace
	GrandPrix
	FreeForAll
)

var tournamentTypeTokens = map[TournamentType]string{
	SingleElimination: "single elimination",
	DoubleElimination: "double elimination",
	RoundRobin:        "round robin",
	Swiss:             "swiss",
	TimeTrial:         "time trial",
	SingleRace:        "single race",
	GrandPrix:         "grand prix",
	FreeForAll:        "free for all",
}

func ParseTournamentType(s string) TournamentType {
	for t, token := range tournamentTypeTokens {
		if token == s {
			return t
		}
	}
	return TournamentTypeInvalid
}

// Token returns the wire form, or "" for Invalid.
func (t TournamentType) Token() string {
	return tournamentTypeTokens[t]
}

// filterToken is the form the tournament index filter expects
// ("single_elimination").
func (t TournamentType) filterToken() string {
	return strings.ReplaceAll(t.Token(), " ", "_")
}

func (t TournamentType) String() string {
	if tok := t.Token(); tok != "" {
		return tok
	}
	return "invalid"
}

func (t TournamentType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Token())
}

func (t *TournamentType) UnmarshalJSON(data []byte) error {
	*t = ParseTournamentType(unquoteToken(data))
	return nil
}

type TournamentState int

const (
	TournamentStateInvalid TournamentState = iota
	Pending
	CheckingIn
	CheckedIn
	Underway
	Completed
)

var tournamentStateTokens = map[TournamentState]string{
	Pending:    "pending",
	CheckingIn: "checking_in",
	CheckedIn:  "checked_in",
	Underway:   "in_progress",
	Completed:  "ended",
}

func ParseTournamentState(s string) TournamentState {
	for st, token := range tournamentStateTokens {
		if token == s {
			return st
		}
	}
	return TournamentStateInvalid
}

func (s TournamentState) Token() string {
	return tournamentStateTokens[s]
}

func (s TournamentState) String() string {
	if tok := s.Token(); tok != "" {
		return tok
	}
	return "invalid"
}

func (s TournamentState) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Token())
}

func (s *TournamentState) UnmarshalJSON(data []byte) error {
	*s = ParseTournamentState(unquoteToken(data))
	return nil
}

// RankingStat is the primary statistic a round robin or swiss tournament
// ranks by.
type RankingStat int

const (
	RankingStatInvalid RankingStat = iota
	RankByMatchWins
	RankByGameWins
	RankByGameWinPercentage
	RankByPointsScored
	RankByPointsDifference
	RankByCustom
)

var rankingStatTokens = map[RankingStat]string{
	RankByMatchWins:         "match wins",
	RankByGameWins:          "game wins",
	RankByGameWinPercentage: "game win percentage",
	RankByPointsScored:      "points scored",
	RankByPointsDifference:  "points difference",
	RankByCustom:            "custom",
}

func ParseRankingStat(s string) RankingStat {
	for r, token := range rankingStatTokens {
		if token == s {
			return r
		}
	}
	return RankingStatInvalid
}

func (r RankingStat) Token() string {
	return rankingStatTokens[r]
}

func (r RankingStat) String() string {
	if tok := r.Token(); tok != "" {
		return tok
	}
	return "invalid"
}

func (r RankingStat) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Token())
}

func (r *RankingStat) UnmarshalJSON(data []byte) error {
	*r = ParseRankingStat(unquoteToken(data))
	return nil
}

type TieBreak int

const (
	TieBreakInvalid TieBreak = iota
	TieBreakMatchWins
	TieBreakGameWins
	TieBreakGameWinPercentage
	TieBreakPointsScored
	TieBreakPointsDifference
	TieBreakMatchWinsVsTied
	TieBreakMedianBuchholz
)

var tieBreakTokens = map[TieBreak]string{
	TieBreakMatchWins:         "match wins",
	TieBreakGameWins:          "game wins",
	TieBreakGameWinPercentage: "game win percentage",
	TieBreakPointsScored:      "points scored",
	TieBreakPointsDifference:  "points difference",
	TieBreakMatchWinsVsTied:   "match wins vs tied",
	TieBreakMedianBuchholz:    "median buchholz",
}

func ParseTieBreak(s string) TieBreak {
	for tb, token := range tieBreakTokens {
		if token == s {
			return tb
		}
	}
	return TieBreakInvalid
}

func (tb TieBreak) Token() string {
	return tieBreakTokens[tb]
}

func (tb TieBreak) String() string {
	if tok := tb.Token(); tok != "" {
		return tok
	}
	return "invalid"
}

// TieBreaks is ordered by priority, highest first.
type TieBreaks []TieBreak

func (tbs TieBreaks) MarshalJSON() ([]byte, error) {
	if tbs == nil {
		return []byte("null"), nil
	}
	tokens := make([]string, len(tbs))
	for i, tb := range tbs {
		tokens[i] = tb.Token()
	}
	return json.Marshal(tokens)
}

func (tbs *TieBreaks) UnmarshalJSON(data []byte) error {
	var tokens []string
	if err := json.Unmarshal(data, &tokens); err != nil {
		return err
	}
	if tokens == nil {
		*tbs = nil
		return nil
	}
	out := make(TieBreaks, len(tokens))
	for i, token := range tokens {
		out[i] = ParseTieBreak(token)
	}
	*tbs = out
	return nil
}

// GrandFinalsModifier applies to double elimination only. TwoChances is the
// server default and is sent as an empty value. Unlike the other enums,
// unknown tokens decode to TwoChances.
type GrandFinalsModifier int

const (
	TwoChances GrandFinalsModifier = iota
	SingleMatch
	Skip
)

func ParseGrandFinalsModifier(s string) GrandFinalsModifier {
	switch s {
	case "single match":
		return SingleMatch
	case "skip":
		return Skip
	default:
		return TwoChances
	}
}

func (g GrandFinalsModifier) Token() string {
	switch g {
	case SingleMatch:
		return "single match"
	case Skip:
		return "skip"
	default:
		return ""
	}
}

func (g GrandFinalsModifier) String() string {
	if g == TwoChances {
		return "two chances"
	}
	return g.Token()
}

func (g GrandFinalsModifier) MarshalJSON() ([]byte, error) {
	return json.Marshal(g.Token())
}

func (g *GrandFinalsModifier) UnmarshalJSON(data []byte) error {
	*g = ParseGrandFinalsModifier(unquoteToken(data))
	return nil
}

type MatchState int

const (
	MatchStateInvalid MatchState = iota
	MatchPending
	MatchOpen
	MatchComplete
)

var matchStateTokens = map[MatchState]string{
	MatchPending:  "pending",
	MatchOpen:     "open",
	MatchComplete: "complete",
}

func ParseMatchState(s string) MatchState {
	for st, token := range matchStateTokens {
		if token == s {
			return st
		}
	}
	return MatchStateInvalid
}

func (s MatchState) Token() string {
	return matchStateTokens[s]
}

func (s MatchState) String() string {
	if tok := s.Token(); tok != "" {
		return tok
	}
	return "invalid"
}

func (s MatchState) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Token())
}

func (s *MatchState) UnmarshalJSON(data []byte) error {
	*s = ParseMatchState(unquoteToken(data))
	return nil
}

// PredictionMethod travels as an integer. Opening a tournament for
// predictions requires Exponential or Linear.
type PredictionMethod int

const (
	PredictionNone        PredictionMethod = 0
	PredictionExponential PredictionMethod = 1
	PredictionLinear      PredictionMethod = 2
	PredictionInvalid     PredictionMethod = -1
)

func ParsePredictionMethod(n int) PredictionMethod {
	switch PredictionMethod(n) {
	case PredictionNone, PredictionExponential, PredictionLinear:
		return PredictionMethod(n)
	default:
		return PredictionInvalid
	}
}

func (p PredictionMethod) String() string {
	switch p {
	case PredictionNone:
		return "none"
	case PredictionExponential:
		return "exponential"
	case PredictionLinear:
		return "linear"
	default:
		return "invalid"
	}
}

func (p PredictionMethod) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Itoa(int(p))), nil
}

func (p *PredictionMethod) UnmarshalJSON(data []byte) error {
	s := unquoteToken(data)
	if s == "" {
		*p = PredictionNone
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		*p = PredictionInvalid
		return nil
	}
	*p = ParsePredictionMethod(n)
	return nil
}

// unquoteToken accepts a JSON string, null, or a bare literal and returns the
// raw token text. Non-string values fall through unchanged so the caller maps
// them to its Invalid variant.
func unquoteToken(data []byte) string {
	if string(data) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		return s
	}
	return string(data)
}
