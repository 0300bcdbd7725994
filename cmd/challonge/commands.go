package main

import (
	"context"
	"fmt"

	"challonge-client/challonge"
	"challonge-client/internal/service"

	"github.com/urfave/cli/v2"
)

type tournamentAction func(context.Context, string, challonge.TournamentInclude) (*challonge.TournamentDetail, error)

func tournamentsCommand() *cli.Command {
	action := func(name string, run func(*challonge.TournamentsHandler) tournamentAction) *cli.Command {
		return &cli.Command{
			Name:      name,
			ArgsUsage: "<tournament>",
			Flags:     includeFlags(),
			Action: func(c *cli.Context) error {
				t, err := tournamentArg(c)
				if err != nil {
					return err
				}
				return withClient(c, func(ctx context.Context, client *challonge.Client) (any, error) {
					return run(client.Tournaments)(ctx, t, include(c))
				})
			},
		}
	}

	return &cli.Command{
		Name:    "tournaments",
		Aliases: []string{"t"},
		Usage:   "tournaments on the account",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Flags: listFlags(),
				Action: func(c *cli.Context) error {
					p, err := listParams(c)
					if err != nil {
						return err
					}
					return withClient(c, func(ctx context.Context, client *challonge.Client) (any, error) {
						return client.Tournaments.List(ctx, p)
					})
				},
			},
			{
				Name:      "show",
				ArgsUsage: "<tournament>",
				Flags:     includeFlags(),
				Action: func(c *cli.Context) error {
					t, err := tournamentArg(c)
					if err != nil {
						return err
					}
					return withClient(c, func(ctx context.Context, client *challonge.Client) (any, error) {
						return client.Tournaments.Get(ctx, t, include(c))
					})
				},
			},
			{
				Name: "create",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Required: true},
					&cli.StringFlag{Name: "url", Usage: "slug; random when empty"},
					&cli.StringFlag{Name: "type", Value: "single_elimination"},
					&cli.StringFlag{Name: "description"},
					&cli.StringFlag{Name: "game"},
					&cli.IntFlag{Name: "signup-cap"},
					&cli.BoolFlag{Name: "third-place-match"},
					&cli.BoolFlag{Name: "private"},
				},
				Action: func(c *cli.Context) error {
					tt, err := parseTournamentType(c.String("type"))
					if err != nil {
						return err
					}
					slug := c.String("url")
					if slug == "" {
						if slug, err = challonge.NewTournamentURL(); err != nil {
							return fmt.Errorf("generate url: %w", err)
						}
					}
					p := challonge.TournamentParams{
						Name:                c.String("name"),
						URL:                 slug,
						Description:         c.String("description"),
						GameName:            c.String("game"),
						TournamentType:      tt,
						SignupCap:           optionalInt(c, "signup-cap"),
						HoldThirdPlaceMatch: c.Bool("third-place-match"),
						Private:             c.Bool("private"),
					}
					return withClient(c, func(ctx context.Context, client *challonge.Client) (any, error) {
						return client.Tournaments.Create(ctx, p)
					})
				},
			},
			action("start", func(h *challonge.TournamentsHandler) tournamentAction {
				return h.Start
			}),
			action("finalize", func(h *challonge.TournamentsHandler) tournamentAction {
				return h.Finalize
			}),
			action("reset", func(h *challonge.TournamentsHandler) tournamentAction {
				return h.Reset
			}),
			action("process-check-ins", func(h *challonge.TournamentsHandler) tournamentAction {
				return h.ProcessCheckIns
			}),
			{
				Name:      "delete",
				ArgsUsage: "<tournament>",
				Action: func(c *cli.Context) error {
					t, err := tournamentArg(c)
					if err != nil {
						return err
					}
					return withClient(c, func(ctx context.Context, client *challonge.Client) (any, error) {
						return nil, client.Tournaments.Delete(ctx, t)
					})
				},
			},
		},
	}
}

func participantsCommand() *cli.Command {
	return &cli.Command{
		Name:    "participants",
		Aliases: []string{"p"},
		Usage:   "participants of a tournament",
		Subcommands: []*cli.Command{
			{
				Name:      "list",
				ArgsUsage: "<tournament>",
				Action: func(c *cli.Context) error {
					t, err := tournamentArg(c)
					if err != nil {
						return err
					}
					return withClient(c, func(ctx context.Context, client *challonge.Client) (any, error) {
						return client.Participants.List(ctx, t)
					})
				},
			},
			{
				Name:      "add",
				ArgsUsage: "<tournament>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name"},
					&cli.StringFlag{Name: "username", Usage: "Challonge username to invite"},
					&cli.StringFlag{Name: "email"},
					&cli.IntFlag{Name: "seed"},
					&cli.StringFlag{Name: "misc"},
				},
				Action: func(c *cli.Context) error {
					t, err := tournamentArg(c)
					if err != nil {
						return err
					}
					p := challonge.ParticipantParams{
						Name:              c.String("name"),
						ChallongeUsername: c.String("username"),
						Email:             c.String("email"),
						Seed:              optionalInt(c, "seed"),
						Misc:              c.String("misc"),
					}
					return withClient(c, func(ctx context.Context, client *challonge.Client) (any, error) {
						return client.Participants.Create(ctx, t, p)
					})
				},
			},
			{
				Name:      "bulk-add",
				ArgsUsage: "<tournament>",
				Usage:     "add several participants; repeat --name",
				Flags: []cli.Flag{
					&cli.StringSliceFlag{Name: "name", Required: true},
					&cli.StringSliceFlag{Name: "misc", Usage: "one per --name when given"},
				},
				Action: func(c *cli.Context) error {
					t, err := tournamentArg(c)
					if err != nil {
						return err
					}
					b := challonge.BulkParticipants{
						Names: c.StringSlice("name"),
						Miscs: c.StringSlice("misc"),
					}
					return withClient(c, func(ctx context.Context, client *challonge.Client) (any, error) {
						return client.Participants.BulkAdd(ctx, t, b)
					})
				},
			},
			{
				Name:      "randomize",
				ArgsUsage: "<tournament>",
				Action: func(c *cli.Context) error {
					t, err := tournamentArg(c)
					if err != nil {
						return err
					}
					return withClient(c, func(ctx context.Context, client *challonge.Client) (any, error) {
						return client.Participants.Randomize(ctx, t)
					})
				},
			},
			{
				Name:      "check-in",
				ArgsUsage: "<tournament> <participant id>",
				Action: func(c *cli.Context) error {
					t, err := tournamentArg(c)
					if err != nil {
						return err
					}
					id, err := idArg(c, 1, "participant id")
					if err != nil {
						return err
					}
					return withClient(c, func(ctx context.Context, client *challonge.Client) (any, error) {
						return client.Participants.CheckIn(ctx, t, id)
					})
				},
			},
		},
	}
}

func matchesCommand() *cli.Command {
	return &cli.Command{
		Name:    "matches",
		Aliases: []string{"m"},
		Usage:   "matches of a tournament",
		Subcommands: []*cli.Command{
			{
				Name:      "list",
				ArgsUsage: "<tournament>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "state", Usage: "pending, open or complete"},
					&cli.IntFlag{Name: "participant", Usage: "only matches of this participant id"},
				},
				Action: func(c *cli.Context) error {
					t, err := tournamentArg(c)
					if err != nil {
						return err
					}
					state, err := parseMatchState(c.String("state"))
					if err != nil {
						return err
					}
					p := challonge.MatchListParams{State: state, ParticipantID: optionalInt(c, "participant")}
					return withClient(c, func(ctx context.Context, client *challonge.Client) (any, error) {
						return client.Matches.List(ctx, t, p)
					})
				},
			},
			{
				Name:      "report",
				ArgsUsage: "<tournament> <match id>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "scores", Usage: "e.g. 3-1,1-3,3-2", Required: true},
					&cli.IntFlag{Name: "winner", Usage: "winning participant id; 0 for a tie"},
				},
				Action: func(c *cli.Context) error {
					t, err := tournamentArg(c)
					if err != nil {
						return err
					}
					id, err := idArg(c, 1, "match id")
					if err != nil {
						return err
					}
					p := challonge.MatchParams{ScoresCSV: c.String("scores"), WinnerID: optionalInt(c, "winner")}
					return withClient(c, func(ctx context.Context, client *challonge.Client) (any, error) {
						return client.Matches.Update(ctx, t, id, p)
					})
				},
			},
			{
				Name:      "reopen",
				ArgsUsage: "<tournament> <match id>",
				Action: func(c *cli.Context) error {
					t, err := tournamentArg(c)
					if err != nil {
						return err
					}
					id, err := idArg(c, 1, "match id")
					if err != nil {
						return err
					}
					return withClient(c, func(ctx context.Context, client *challonge.Client) (any, error) {
						return client.Matches.Reopen(ctx, t, id)
					})
				},
			},
		},
	}
}

type syncOutput struct {
	Tournament   string `json:"tournament"`
	TournamentID int    `json:"tournament_id,omitempty"`
	Participants int    `json:"participants"`
	Matches      int    `json:"matches"`
	Error        string `json:"error,omitempty"`
}

func toSyncOutput(results []service.SyncResult) []syncOutput {
	out := make([]syncOutput, len(results))
	for i, r := range results {
		out[i] = syncOutput{Tournament: r.Tournament}
		if r.Err != nil {
			out[i].Error = r.Err.Error()
			continue
		}
		out[i].TournamentID = r.Snapshot.Tournament.ID
		out[i].Participants = len(r.Snapshot.Participants)
		out[i].Matches = len(r.Snapshot.Matches)
	}
	return out
}

func mirrorCommand() *cli.Command {
	return &cli.Command{
		Name:  "mirror",
		Usage: "local SQLite copy of tournaments",
		Subcommands: []*cli.Command{
			{
				Name:      "sync",
				ArgsUsage: "[tournament...]",
				Usage:     "sync the named tournaments, or every tournament matching the filters",
				Flags:     listFlags(),
				Action: func(c *cli.Context) error {
					names := c.Args().Slice()
					p, err := listParams(c)
					if err != nil {
						return err
					}
					return withMirror(c, func(ctx context.Context, mirror *service.MirrorService) (any, error) {
						var results []service.SyncResult
						if len(names) > 0 {
							results, err = mirror.SyncAll(ctx, names)
						} else {
							results, err = mirror.SyncMatching(ctx, p)
						}
						if perr := printJSON(c.App.Writer, toSyncOutput(results)); perr != nil {
							return nil, perr
						}
						return nil, err
					})
				},
			},
			{
				Name:      "show",
				ArgsUsage: "<tournament id>",
				Action: func(c *cli.Context) error {
					id, err := idArg(c, 0, "tournament id")
					if err != nil {
						return err
					}
					return withMirror(c, func(ctx context.Context, mirror *service.MirrorService) (any, error) {
						return mirror.Snapshot(ctx, id)
					})
				},
			},
			{
				Name: "list",
				Action: func(c *cli.Context) error {
					return withMirror(c, func(ctx context.Context, mirror *service.MirrorService) (any, error) {
						return mirror.Tournaments(ctx)
					})
				},
			},
		},
	}
}
