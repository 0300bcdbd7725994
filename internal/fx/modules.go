package fx

import (
	"database/sql"

	"challonge-client/internal/api"
	"challonge-client/internal/config"
	"challonge-client/internal/database"
	"challonge-client/internal/db"
	"challonge-client/internal/logger"
	"challonge-client/internal/repository"
	"challonge-client/internal/server"
	"challonge-client/internal/service"

	"go.uber.org/fx"
)

func ProvideQueries(sqlDB *sql.DB) *db.Queries {
	return db.New(sqlDB)
}

func ProvideMirror(svc *service.MirrorService) server.Mirror {
	return svc
}

// ClientModule is enough for commands that only talk to Challonge.
var ClientModule = fx.Options(
	logger.Module,
	config.Module,
	// api client
	fx.Provide(api.NewMetrics),
	fx.Provide(api.NewChallongeClient),
)

var Module = fx.Options(
	ClientModule,
	fx.Provide(database.New),
	fx.Provide(ProvideQueries),
	// repos
	fx.Provide(repository.NewTournamentRepository),
	fx.Provide(repository.NewSyncRunRepository),
	// svc
	fx.Provide(service.NewMirrorService),
	// server
	fx.Provide(ProvideMirror),
	fx.Provide(server.NewMirrorServer),
)
