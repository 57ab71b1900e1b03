package harness

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPollSucceedsAfterRetries(t *testing.T) {
	calls := 0
	probe := func() bool {
		calls++
		return calls >= 3
	}

	ok := Poll(probe, time.Millisecond, time.Second)
	assert.True(t, ok)
	assert.Equal(t, 3, calls)
}

func TestPollGivesUpAtDeadline(t *testing.T) {
	calls := 0
	probe := func() bool {
		calls++
		return false
	}

	start := time.Now()
	ok := Poll(probe, time.Millisecond, 20*time.Millisecond)
	assert.False(t, ok)
	assert.Greater(t, calls, 1, "probe should have been retried")
	assert.Less(t, time.Since(start), time.Second, "poll should stop at the deadline")
}

func TestWaitReadyAcceptsNonServerError(t *testing.T) {
	// 404 still means the server is up.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	assert.NoError(t, WaitReady(srv.URL, 2*time.Second))
}

func TestWaitReadyRejectsServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	err := WaitReady(srv.URL, 300*time.Millisecond)
	require.Error(t, err)
	assert.Contains(t, err.Error(), srv.URL)
	assert.Contains(t, err.Error(), "300ms")
}

func TestWaitReadyConnectionRefused(t *testing.T) {
	// Grab an address nothing is listening on.
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	err := WaitReady(url, 300*time.Millisecond)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "did not become ready")
}
