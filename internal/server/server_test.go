package server

import (
	"context"
	"io"
	"net"
	"net/http"
	"sync"
	"testing"
	"time"

	"fjacquet/complaint-classifier/internal/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServer_ServesUntilCancelled(t *testing.T) {
	logger := logging.NewMockLogger()
	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "ok")
	})
	srv := New(handler, Options{MaxConnections: 4, ShutdownTimeout: time.Second}, logger)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, ln) }()

	waitCtx, waitCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer waitCancel()
	addr, err := srv.Addr(waitCtx)
	require.NoError(t, err)

	resp, err := http.Get("http://" + addr.String() + "/")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, resp.Body.Close())
	require.NoError(t, err)
	assert.Equal(t, "ok", string(body))

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not shut down")
	}

	assert.True(t, logger.HasEntry("INFO", "Starting server"))
	assert.True(t, logger.HasEntry("INFO", "Server exited"))
}

func TestServer_RunFailsOnBadAddress(t *testing.T) {
	srv := New(http.NotFoundHandler(), Options{Addr: "256.0.0.1:-1"}, logging.NewMockLogger())

	err := srv.Run(context.Background())

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to listen")
}

func TestServer_ServeTwice(t *testing.T) {
	srv := New(http.NotFoundHandler(), Options{}, logging.NewMockLogger())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	require.NoError(t, srv.Serve(ctx, ln))

	ln2, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer func() { _ = ln2.Close() }()
	assert.Error(t, srv.Serve(ctx, ln2))
}

func TestServer_ConcurrentServeStartsOnce(t *testing.T) {
	srv := New(http.NotFoundHandler(), Options{ShutdownTimeout: time.Second}, logging.NewMockLogger())
	ctx, cancel := context.WithCancel(context.Background())

	const attempts = 4
	listeners := make([]net.Listener, attempts)
	for i := range listeners {
		ln, err := net.Listen("tcp", "127.0.0.1:0")
		require.NoError(t, err)
		listeners[i] = ln
	}

	errs := make(chan error, attempts)
	var wg sync.WaitGroup
	for _, ln := range listeners {
		wg.Add(1)
		go func(ln net.Listener) {
			defer wg.Done()
			errs <- srv.Serve(ctx, ln)
		}(ln)
	}

	// Every losing call returns at once; the winner returns after cancel.
	rejected := 0
	for rejected < attempts-1 {
		select {
		case err := <-errs:
			require.Error(t, err)
			assert.Contains(t, err.Error(), "already started")
			rejected++
		case <-time.After(3 * time.Second):
			t.Fatal("concurrent Serve calls did not return")
		}
	}

	cancel()
	wg.Wait()
	assert.NoError(t, <-errs)

	for _, ln := range listeners {
		_ = ln.Close()
	}
}
