package transport

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttputil"
)

type seen struct {
	method      string
	uri         string
	contentType string
	requestID   string
	body        string
}

func startServer(t *testing.T, handler fasthttp.RequestHandler) *fasthttputil.InmemoryListener {
	t.Helper()
	ln := fasthttputil.NewInmemoryListener()
	srv := &fasthttp.Server{Handler: handler}
	go func() {
		_ = srv.Serve(ln)
	}()
	t.Cleanup(func() {
		_ = srv.Shutdown()
	})
	return ln
}

func dialer(ln *fasthttputil.InmemoryListener) fasthttp.DialFunc {
	return func(string) (net.Conn, error) {
		return ln.Dial()
	}
}

func TestSendPostForm(t *testing.T) {
	got := make(chan seen, 1)
	ln := startServer(t, func(ctx *fasthttp.RequestCtx) {
		got <- seen{
			method:      string(ctx.Method()),
			uri:         string(ctx.RequestURI()),
			contentType: string(ctx.Request.Header.ContentType()),
			requestID:   string(ctx.Request.Header.Peek("X-Request-ID")),
			body:        string(ctx.PostBody()),
		}
		ctx.SetStatusCode(fasthttp.StatusUnprocessableEntity)
		ctx.SetBodyString(`{"errors":["Name can't be blank"]}`)
	})

	tr := New(Options{Dial: dialer(ln), Logger: zerolog.Nop()})
	status, body, err := tr.Send(context.Background(), fasthttp.MethodPost,
		"http://challonge.test/v1/tournaments.json", []byte("api_key=k&tournament%5Bname%5D="))
	require.NoError(t, err)
	require.Equal(t, fasthttp.StatusUnprocessableEntity, status)
	require.JSONEq(t, `{"errors":["Name can't be blank"]}`, string(body))

	req := <-got
	require.Equal(t, fasthttp.MethodPost, req.method)
	require.Equal(t, "/v1/tournaments.json", req.uri)
	require.Equal(t, formContentType, req.contentType)
	require.NotEmpty(t, req.requestID)
	require.Equal(t, "api_key=k&tournament%5Bname%5D=", req.body)
}

func TestSendGetWithoutBody(t *testing.T) {
	got := make(chan seen, 1)
	ln := startServer(t, func(ctx *fasthttp.RequestCtx) {
		got <- seen{
			method: string(ctx.Method()),
			uri:    string(ctx.RequestURI()),
			body:   string(ctx.PostBody()),
		}
		ctx.SetBodyString(`[]`)
	})

	tr := New(Options{Dial: dialer(ln)})
	status, body, err := tr.Send(context.Background(), fasthttp.MethodGet,
		"http://challonge.test/v1/tournaments.json?api_key=k", nil)
	require.NoError(t, err)
	require.Equal(t, fasthttp.StatusOK, status)
	require.Equal(t, "[]", string(body))

	req := <-got
	require.Equal(t, fasthttp.MethodGet, req.method)
	require.Equal(t, "/v1/tournaments.json?api_key=k", req.uri)
	require.Empty(t, req.body)
}

func TestSendHonorsCanceledContext(t *testing.T) {
	ln := startServer(t, func(ctx *fasthttp.RequestCtx) {
		ctx.SetBodyString(`{}`)
	})
	tr := New(Options{Dial: dialer(ln)})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := tr.Send(ctx, fasthttp.MethodGet, "http://challonge.test/v1/tournaments.json", nil)
	require.ErrorIs(t, err, context.Canceled)
}

func TestSendTimesOut(t *testing.T) {
	ln := startServer(t, func(ctx *fasthttp.RequestCtx) {
		time.Sleep(200 * time.Millisecond)
		ctx.SetBodyString(`{}`)
	})
	tr := New(Options{Dial: dialer(ln)})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, _, err := tr.Send(ctx, fasthttp.MethodGet, "http://challonge.test/v1/tournaments.json", nil)
	require.ErrorIs(t, err, fasthttp.ErrTimeout)
}

func TestSendRecordsMetrics(t *testing.T) {
	ln := startServer(t, func(ctx *fasthttp.RequestCtx) {
		ctx.SetStatusCode(fasthttp.StatusNotFound)
	})

	reg := prometheus.NewRegistry()
	m, err := NewMetrics(reg)
	require.NoError(t, err)

	again, err := NewMetrics(reg)
	require.NoError(t, err)
	require.Same(t, m.requests, again.requests)

	tr := New(Options{Dial: dialer(ln), Metrics: m, RequestsPerSecond: 100})
	for i := 0; i < 2; i++ {
		_, _, err := tr.Send(context.Background(), fasthttp.MethodDelete, "http://challonge.test/v1/tournaments/x.json", nil)
		require.NoError(t, err)
	}

	require.Equal(t, 2.0, testutil.ToFloat64(m.requests.WithLabelValues(fasthttp.MethodDelete, "404")))
}
