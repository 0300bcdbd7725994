package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"challonge-client/challonge"

	"github.com/urfave/cli/v2"
)

func tournamentArg(c *cli.Context) (string, error) {
	t := c.Args().First()
	if t == "" {
		return "", fmt.Errorf("%s: tournament id or url is required", c.Command.Name)
	}
	return t, nil
}

// idArg reads the positional integer at index i.
func idArg(c *cli.Context, i int, name string) (int, error) {
	v := c.Args().Get(i)
	if v == "" {
		return 0, fmt.Errorf("%s: %s is required", c.Command.Name, name)
	}
	id, err := strconv.Atoi(v)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%s: %s must be a positive integer, got %q", c.Command.Name, name, v)
	}
	return id, nil
}

// parseTournamentType accepts the wire form or the underscore form used by
// the list filter.
func parseTournamentType(s string) (challonge.TournamentType, error) {
	if s == "" {
		return challonge.TournamentTypeInvalid, nil
	}
	t := challonge.ParseTournamentType(strings.ReplaceAll(s, "_", " "))
	if t == challonge.TournamentTypeInvalid {
		return t, fmt.Errorf("unknown tournament type %q", s)
	}
	return t, nil
}

func parseTournamentState(s string) (challonge.TournamentState, error) {
	if s == "" {
		return challonge.TournamentStateInvalid, nil
	}
	st := challonge.ParseTournamentState(s)
	if st == challonge.TournamentStateInvalid {
		return st, fmt.Errorf("unknown tournament state %q", s)
	}
	return st, nil
}

func parseMatchState(s string) (challonge.MatchState, error) {
	if s == "" {
		return challonge.MatchStateInvalid, nil
	}
	st := challonge.ParseMatchState(s)
	if st == challonge.MatchStateInvalid {
		return st, fmt.Errorf("unknown match state %q", s)
	}
	return st, nil
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.DateOnly, s)
}

func listParams(c *cli.Context) (challonge.TournamentListParams, error) {
	var p challonge.TournamentListParams
	var err error
	if p.State, err = parseTournamentState(c.String("state")); err != nil {
		return p, err
	}
	if p.Type, err = parseTournamentType(c.String("type")); err != nil {
		return p, err
	}
	if p.CreatedAfter, err = parseDate(c.String("created-after")); err != nil {
		return p, fmt.Errorf("created-after: %w", err)
	}
	if p.CreatedBefore, err = parseDate(c.String("created-before")); err != nil {
		return p, fmt.Errorf("created-before: %w", err)
	}
	p.Subdomain = c.String("subdomain")
	return p, nil
}

func listFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "state", Usage: "pending, in_progress or ended"},
		&cli.StringFlag{Name: "type", Usage: "e.g. single_elimination"},
		&cli.StringFlag{Name: "created-after", Usage: "yyyy-mm-dd"},
		&cli.StringFlag{Name: "created-before", Usage: "yyyy-mm-dd"},
		&cli.StringFlag{Name: "subdomain"},
	}
}

func includeFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{Name: "matches", Usage: "embed matches"},
		&cli.BoolFlag{Name: "participants", Usage: "embed participants"},
	}
}

func include(c *cli.Context) challonge.TournamentInclude {
	return challonge.TournamentInclude{
		Matches:      c.Bool("matches"),
		Participants: c.Bool("participants"),
	}
}

// optionalInt returns nil unless the flag was given.
func optionalInt(c *cli.Context, name string) *int {
	if !c.IsSet(name) {
		return nil
	}
	return challonge.Ptr(c.Int(name))
}
