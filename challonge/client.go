package challonge

import (
	"context"
	"fmt"
	"time"

	"challonge-client/transport"

	"github.com/rs/zerolog"
)

const DefaultBaseURL = "https://api.challonge.com/v1"

// Transport performs one HTTP round trip. body is nil for requests without a
// form body; otherwise it is application/x-www-form-urlencoded. Retries,
// timeouts and cancellation belong to the Transport. It must be safe for
// concurrent use.
type Transport interface {
	Send(ctx context.Context, method, url string, body []byte) (status int, respBody []byte, err error)
}

type TransportFunc func(ctx context.Context, method, url string, body []byte) (int, []byte, error)

func (f TransportFunc) Send(ctx context.Context, method, url string, body []byte) (int, []byte, error) {
	return f(ctx, method, url, body)
}

type Option func(*Client)

func WithTransport(t Transport) Option {
	return func(c *Client) { c.transport = t }
}

func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// Client owns one credential and one transport and hands both to the four
// resource handlers. Nothing in it changes after NewClient returns.
type Client struct {
	apiKey    string
	baseURL   string
	transport Transport
	logger    zerolog.Logger

	Tournaments  *TournamentsHandler
	Participants *ParticipantsHandler
	Matches      *MatchesHandler
	Attachments  *AttachmentsHandler
}

func NewClient(apiKey string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, invalidArgument("api key is required")
	}

	c := &Client{
		apiKey:  apiKey,
		baseURL: DefaultBaseURL,
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.transport == nil {
		c.transport = transport.New(transport.Options{Logger: c.logger})
	}

	call := &caller{
		apiKey:    c.apiKey,
		baseURL:   c.baseURL,
		transport: c.transport,
		logger:    c.logger,
	}
	c.Tournaments = &TournamentsHandler{call: call}
	c.Participants = &ParticipantsHandler{call: call}
	c.Matches = &MatchesHandler{call: call}
	c.Attachments = &AttachmentsHandler{call: call}
	return c, nil
}

type caller struct {
	apiKey    string
	baseURL   string
	transport Transport
	logger    zerolog.Logger
}

// do sends req and returns the raw body of a successful response.
func (c *caller) do(ctx context.Context, req Request) ([]byte, error) {
	start := time.Now()
	status, body, err := c.transport.Send(ctx, req.Method, req.URL(c.baseURL, c.apiKey), req.Body(c.apiKey))
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", req.Method, req.Path, err)
	}

	c.logger.Debug().
		Str("method", req.Method).
		Str("path", req.Path).
		Int("status", status).
		Dur("duration", time.Since(start)).
		Msg("challonge request")

	if _, known := statusKinds[status]; !known && (status < 200 || status >= 300) {
		c.logger.Warn().
			Str("method", req.Method).
			Str("path", req.Path).
			Int("status", status).
			Msg("undocumented status treated as success")
	}
	return CheckResponse(status, body)
}
