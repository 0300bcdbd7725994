package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"

	"challonge-client/challonge"
	"challonge-client/internal/config"
	"challonge-client/internal/constants"
	fxmodules "challonge-client/internal/fx"
	"challonge-client/internal/server"
	"challonge-client/internal/service"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"
	"go.uber.org/fx"
)

func main() {
	app := &cli.App{
		Name:  "challonge",
		Usage: "manage Challonge tournaments and a local mirror of them",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Usage: "path to the YAML config file", EnvVars: []string{"CHALLONGE_CONFIG"}},
			&cli.StringFlag{Name: "log-level", Usage: "debug, info, warn or error", EnvVars: []string{"LOG_LEVEL"}},
		},
		Before: func(c *cli.Context) error {
			if v := c.String("config"); v != "" {
				os.Setenv("CHALLONGE_CONFIG", v)
			}
			if v := c.String("log-level"); v != "" {
				os.Setenv("LOG_LEVEL", v)
			}
			return nil
		},
		Commands: []*cli.Command{
			tournamentsCommand(),
			participantsCommand(),
			matchesCommand(),
			mirrorCommand(),
			serveCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// withClient builds just the API client and prints whatever fn returns as
// JSON.
func withClient(c *cli.Context, fn func(ctx context.Context, client *challonge.Client) (any, error)) error {
	var client *challonge.Client
	app := fx.New(
		fx.NopLogger,
		fxmodules.ClientModule,
		fx.Populate(&client),
	)
	if err := app.Err(); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Context, constants.RequestTimeout)
	defer cancel()

	v, err := fn(ctx, client)
	if err != nil {
		return err
	}
	return printJSON(c.App.Writer, v)
}

// withMirror starts the full graph so the database is migrated on open and
// closed on the way out.
func withMirror(c *cli.Context, fn func(ctx context.Context, mirror *service.MirrorService) (any, error)) (err error) {
	var mirror *service.MirrorService
	app := fx.New(
		fx.NopLogger,
		fxmodules.Module,
		fx.Populate(&mirror),
	)
	if err := app.Err(); err != nil {
		return err
	}
	if err := app.Start(c.Context); err != nil {
		return err
	}
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
		defer cancel()
		err = errors.Join(err, app.Stop(stopCtx))
	}()

	v, err := fn(c.Context, mirror)
	if err != nil {
		return err
	}
	return printJSON(c.App.Writer, v)
}

func printJSON(w io.Writer, v any) error {
	if v == nil {
		return nil
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "serve the local mirror over HTTP",
		Action: func(c *cli.Context) error {
			app := fx.New(
				fxmodules.Module,
				fx.Invoke(runServer),
			)
			app.Run()
			return app.Err()
		},
	}
}

func runServer(
	lc fx.Lifecycle,
	mirrorServer *server.MirrorServer,
	cfg *config.Config,
	logger zerolog.Logger,
) {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.ServerPort),
		Handler:           mirrorServer.Handler(),
		ReadHeaderTimeout: constants.RequestTimeout,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				logger.Info().Str("addr", srv.Addr).Msg("server starting")
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Fatal().Err(err).Msg("server failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info().Msg("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
			defer cancel()

			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Error().Err(err).Msg("server shutdown failed")
				return err
			}
			logger.Info().Msg("server stopped gracefully")
			return nil
		},
	})
}
