package httpserver_test

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/notify/pkg/httpserver"
	"github.com/dmitrymomot/notify/pkg/logger"
)

func startServer(t *testing.T, h http.Handler, opts ...httpserver.Option) (*httpserver.Server, context.CancelFunc, <-chan error) {
	t.Helper()

	opts = append([]httpserver.Option{httpserver.WithAddr("127.0.0.1:0")}, opts...)
	srv := httpserver.New(opts...)
	ctx, cancel := context.WithCancel(t.Context())

	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx, h) }()

	select {
	case <-srv.Ready():
	case err := <-done:
		cancel()
		require.FailNow(t, "server exited early", "%v", err)
	case <-time.After(2 * time.Second):
		cancel()
		require.FailNow(t, "server did not start")
	}
	return srv, cancel, done
}

func TestRunAndShutdown(t *testing.T) {
	t.Parallel()

	srv, cancel, done := startServer(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}), httpserver.WithShutdownTimeout(time.Second))
	defer cancel()

	resp, err := http.Get("http://" + srv.Addr().String())
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	assert.Equal(t, "ok", string(body))

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		require.Fail(t, "run did not finish")
	}
}

func TestRun_Twice(t *testing.T) {
	t.Parallel()

	srv, cancel, done := startServer(t, nil)
	defer cancel()

	assert.ErrorIs(t, srv.Run(t.Context(), nil), httpserver.ErrAlreadyRunning)
	cancel()
	require.NoError(t, <-done)
}

func TestRun_AddressInUseThenRetry(t *testing.T) {
	t.Parallel()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	srv := httpserver.New(httpserver.WithAddr(ln.Addr().String()))
	err = srv.Run(t.Context(), nil)
	require.ErrorIs(t, err, httpserver.ErrStart)
	assert.Nil(t, srv.Addr())

	select {
	case <-srv.Ready():
		require.Fail(t, "ready closed without a listener")
	default:
	}

	// A failed bind leaves the server reusable once the address frees up.
	require.NoError(t, ln.Close())
	ctx, cancel := context.WithCancel(t.Context())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx, nil) }()

	select {
	case <-srv.Ready():
	case err := <-done:
		cancel()
		require.FailNow(t, "retry failed", "%v", err)
	case <-time.After(2 * time.Second):
		cancel()
		require.FailNow(t, "retry did not start")
	}
	cancel()
	require.NoError(t, <-done)
}

func TestRun_ShutdownTimeout(t *testing.T) {
	t.Parallel()

	entered := make(chan struct{})
	release := make(chan struct{})
	defer close(release)

	srv, cancel, done := startServer(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		close(entered)
		<-release
	}), httpserver.WithShutdownTimeout(50*time.Millisecond), httpserver.WithLogger(logger.Discard()))
	defer cancel()

	go func() {
		resp, err := http.Get("http://" + srv.Addr().String())
		if err == nil {
			resp.Body.Close()
		}
	}()
	<-entered

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, httpserver.ErrShutdown)
	case <-time.After(2 * time.Second):
		require.Fail(t, "run did not finish")
	}
}

func TestNewFromConfig(t *testing.T) {
	t.Parallel()

	srv := httpserver.NewFromConfig(httpserver.Config{Addr: "127.0.0.1:0", ShutdownTimeout: time.Second})
	ctx, cancel := context.WithCancel(t.Context())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx, nil) }()

	<-srv.Ready()
	assert.NotNil(t, srv.Addr())
	cancel()
	require.NoError(t, <-done)
}

func TestOptionsPanicOnInvalid(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { httpserver.WithAddr("") })
	assert.Panics(t, func() { httpserver.WithReadTimeout(0) })
	assert.Panics(t, func() { httpserver.WithWriteTimeout(-1) })
	assert.Panics(t, func() { httpserver.WithIdleTimeout(0) })
	assert.Panics(t, func() { httpserver.WithShutdownTimeout(0) })
}

func TestHealthCheckHandler(t *testing.T) {
	t.Parallel()

	errDown := errors.New("down")
	tests := []struct {
		name   string
		checks []httpserver.Check
		code   int
		body   string
	}{
		{name: "liveness", code: http.StatusOK, body: "ALIVE"},
		{
			name:   "ready",
			checks: []httpserver.Check{func(context.Context) error { return nil }},
			code:   http.StatusOK,
			body:   "READY",
		},
		{
			name: "not ready",
			checks: []httpserver.Check{
				func(context.Context) error { return nil },
				func(context.Context) error { return errDown },
			},
			code: http.StatusServiceUnavailable,
			body: "NOT_READY",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := httptest.NewRecorder()
			h := httpserver.HealthCheckHandler(logger.Discard(), tt.checks...)
			h(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

			assert.Equal(t, tt.code, rec.Code)
			assert.Equal(t, tt.body, rec.Body.String())
		})
	}
}
