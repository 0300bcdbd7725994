package api

import (
	"challonge-client/challonge"
	"challonge-client/internal/config"
	"challonge-client/transport"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

func NewMetrics() (*transport.Metrics, error) {
	return transport.NewMetrics(prometheus.DefaultRegisterer)
}

// NewChallongeClient builds the library client over the fasthttp transport
// configured from cfg.
func NewChallongeClient(cfg *config.Config, metrics *transport.Metrics, logger zerolog.Logger) (*challonge.Client, error) {
	apiLogger := logger.With().Str("component", "challonge").Logger()

	tr := transport.New(transport.Options{
		Timeout:           cfg.Timeout,
		RequestsPerSecond: cfg.RequestsPerSecond,
		Logger:            apiLogger,
		Metrics:           metrics,
	})

	return challonge.NewClient(cfg.APIKey,
		challonge.WithTransport(tr),
		challonge.WithBaseURL(cfg.BaseURL),
		challonge.WithLogger(apiLogger),
	)
}
