package transport

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"
	"golang.org/x/time/rate"
)

const (
	DefaultTimeout = 10 * time.Second

	maxConnsPerHost     = 100
	maxIdleConnDuration = time.Minute
	formContentType     = "application/x-www-form-urlencoded"
)

type Options struct {
	// Timeout bounds each round trip when ctx carries no deadline.
	Timeout time.Duration
	// RequestsPerSecond throttles outgoing requests. Zero disables it.
	RequestsPerSecond float64
	Logger            zerolog.Logger
	Metrics           *Metrics
	// Dial replaces the network dialer, mostly for tests.
	Dial fasthttp.DialFunc
}

// FastHTTP sends Challonge requests over a pooled fasthttp client. It is safe
// for concurrent use.
type FastHTTP struct {
	client  *fasthttp.Client
	timeout time.Duration
	limiter *rate.Limiter
	logger  zerolog.Logger
	metrics *Metrics
}

func New(opts Options) *FastHTTP {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}

	t := &FastHTTP{
		client: &fasthttp.Client{
			MaxConnsPerHost:     maxConnsPerHost,
			ReadTimeout:         opts.Timeout,
			WriteTimeout:        opts.Timeout,
			MaxIdleConnDuration: maxIdleConnDuration,
			Dial:                opts.Dial,
		},
		timeout: opts.Timeout,
		logger:  opts.Logger,
		metrics: opts.Metrics,
	}
	if opts.RequestsPerSecond > 0 {
		t.limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), 1)
	}
	return t
}

// Send performs one round trip and returns the status and a copy of the
// response body. Non-2xx statuses are not errors here.
func (t *FastHTTP) Send(ctx context.Context, method, url string, body []byte) (int, []byte, error) {
	if t.limiter != nil {
		if err := t.limiter.Wait(ctx); err != nil {
			return 0, nil, fmt.Errorf("rate limit wait: %w", err)
		}
	}
	if err := ctx.Err(); err != nil {
		return 0, nil, err
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	requestID := uuid.New().String()
	req.SetRequestURI(url)
	req.Header.SetMethod(method)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.SetContentType(formContentType)
		req.SetBody(body)
	}

	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Now().Add(t.timeout)
	}

	start := time.Now()
	err := t.client.DoDeadline(req, resp, deadline)
	elapsed := time.Since(start)

	if err != nil {
		t.metrics.observe(method, "error", elapsed)
		t.logger.Warn().
			Err(err).
			Str("request_id", requestID).
			Str("method", method).
			Msg("challonge request failed")
		return 0, nil, err
	}

	status := resp.StatusCode()
	t.metrics.observe(method, strconv.Itoa(status), elapsed)
	t.logger.Debug().
		Str("request_id", requestID).
		Str("method", method).
		Int("status", status).
		Dur("duration", elapsed).
		Msg("challonge response")

	return status, append([]byte(nil), resp.Body()...), nil
}

// CloseIdleConnections drops pooled connections.
func (t *FastHTTP) CloseIdleConnections() {
	t.client.CloseIdleConnections()
}
