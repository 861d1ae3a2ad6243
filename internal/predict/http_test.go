package predict

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/capitalize-ai/response-engine/pkg/logger"
)

func newTestPredictor(endpoint string) *HTTPPredictor {
	p := NewHTTPPredictor(endpoint, logger.NewNop())
	p.retry.Delay = time.Millisecond
	p.transport.Delay = time.Millisecond
	return p
}

func TestHTTPPredictor_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.Write([]byte(`{"answer":"42","confidence":0.9,"fallback":false}`))
	}))
	defer srv.Close()

	got := newTestPredictor(srv.URL).Predict(context.Background(), "what is the answer")
	require.True(t, got.Success)
	assert.Equal(t, "42", got.Answer)
	assert.InDelta(t, 0.9, got.Confidence, 1e-9)
	assert.False(t, got.Fallback)
}

func TestHTTPPredictor_RetriesThenSucceeds(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{"answer":"X","confidence":0.9}`))
	}))
	defer srv.Close()

	got := newTestPredictor(srv.URL).Predict(context.Background(), "q")
	require.True(t, got.Success)
	assert.Equal(t, "X", got.Answer)
	assert.Equal(t, int32(2), calls.Load())
}

func TestHTTPPredictor_NullAnswerExhaustsAttempts(t *testing.T) {
	// A 200 with a null answer counts as a failed attempt; both attempts
	// failing yields an unsuccessful prediction, never an error.
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Write([]byte(`{"answer":null,"confidence":0.99}`))
	}))
	defer srv.Close()

	got := newTestPredictor(srv.URL).Predict(context.Background(), "q")
	assert.False(t, got.Success)
	assert.Empty(t, got.Answer)
	assert.Zero(t, got.Confidence)
	assert.Equal(t, int32(DefaultAttempts), calls.Load())
}

func TestHTTPPredictor_BadStatusDoesNotTriggerTransportRetry(t *testing.T) {
	// Non-2xx is an application failure: the outer policy retries it, the
	// transport policy does not, so the server sees exactly two requests.
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	got := newTestPredictor(srv.URL).Predict(context.Background(), "q")
	assert.False(t, got.Success)
	assert.Equal(t, int32(DefaultAttempts), calls.Load())
}

func TestHTTPPredictor_ReusesConnectionAcrossAttempts(t *testing.T) {
	// Failed attempts must drain the response body before closing it,
	// otherwise every retry pays for a new TCP connection.
	var conns atomic.Int32
	srv := httptest.NewUnstartedServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`{"error":"upstream unavailable"}`))
	}))
	srv.Config.ConnState = func(c net.Conn, state http.ConnState) {
		if state == http.StateNew {
			conns.Add(1)
		}
	}
	srv.Start()
	defer srv.Close()

	got := newTestPredictor(srv.URL).Predict(context.Background(), "q")
	assert.False(t, got.Success)
	assert.Equal(t, int32(1), conns.Load())
}

func TestHTTPPredictor_UnreachableEndpoint(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	got := newTestPredictor(srv.URL).Predict(context.Background(), "q")
	assert.False(t, got.Success)
}

func TestRetryPolicy_Do(t *testing.T) {
	t.Run("stops on first success", func(t *testing.T) {
		calls := 0
		err := RetryPolicy{MaxAttempts: 3}.Do(context.Background(), func(context.Context) error {
			calls++
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("returns last error when exhausted", func(t *testing.T) {
		calls := 0
		boom := errors.New("boom")
		err := RetryPolicy{MaxAttempts: 3, Delay: time.Millisecond}.Do(context.Background(), func(context.Context) error {
			calls++
			return boom
		})
		assert.ErrorIs(t, err, boom)
		assert.Equal(t, 3, calls)
	})

	t.Run("zero attempts runs once", func(t *testing.T) {
		calls := 0
		err := RetryPolicy{}.Do(context.Background(), func(context.Context) error {
			calls++
			return errors.New("boom")
		})
		assert.Error(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("cancelled context aborts the wait", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		err := RetryPolicy{MaxAttempts: 2, Delay: time.Minute}.Do(ctx, func(context.Context) error {
			cancel()
			return errors.New("boom")
		})
		assert.ErrorIs(t, err, context.Canceled)
	})
}
