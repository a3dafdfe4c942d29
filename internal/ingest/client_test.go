package ingest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AngelCh415/bookings-analysis/internal/utils"
)

func fastBackoff() utils.Backoff {
	return utils.NewBackoff(time.Millisecond, 2).WithSleep(func(context.Context, time.Duration) error { return nil })
}

func TestFetch_RetriesOn500(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		w.Write([]byte(sampleCSV))
	}))
	defer srv.Close()

	body, err := fetch(context.Background(), NewHTTPClient(2*time.Second), fastBackoff(), srv.URL, 0)
	require.NoError(t, err)
	assert.Equal(t, sampleCSV, string(body))
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestFetch_DoesNotRetry404(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		http.NotFound(w, r)
	}))
	defer srv.Close()

	_, err := fetch(context.Background(), NewHTTPClient(2*time.Second), fastBackoff(), srv.URL, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestFetch_Timeout(t *testing.T) {
	// servidor fake que se tarda más del timeout
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
	}))
	defer srv.Close()

	b := utils.NewBackoff(time.Millisecond, 0)
	_, err := fetch(context.Background(), NewHTTPClient(100*time.Millisecond), b, srv.URL, 0)
	assert.Error(t, err)
}

func TestFetch_Limit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(sampleCSV))
	}))
	defer srv.Close()

	_, err := fetch(context.Background(), NewHTTPClient(time.Second), fastBackoff(), srv.URL, 10)
	assert.ErrorIs(t, err, ErrTooLarge)
}

func TestFetch_EmptyURL(t *testing.T) {
	_, err := fetch(context.Background(), NewHTTPClient(time.Second), fastBackoff(), "", 0)
	assert.Error(t, err)
}
