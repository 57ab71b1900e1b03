// Package harness provides the E2E test infrastructure for the catalog app:
// a readiness poller, a server subprocess lifecycle manager, and a headless
// browser session with page interaction helpers.
package harness

import (
	"fmt"
	"net/http"
	"time"
)

// DefaultPollInterval is the fixed delay between readiness probes. The server
// is expected to come up within a few seconds, so no backoff is used.
const DefaultPollInterval = 200 * time.Millisecond

// probeRequestTimeout bounds each individual readiness probe.
const probeRequestTimeout = time.Second

// Poll invokes probe every interval until it reports success or timeout
// elapses. Returns whether probe ever succeeded.
func Poll(probe func() bool, interval, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if probe() {
			return true
		}
		time.Sleep(interval)
	}
	return false
}

// WaitReady polls url until the server responds with any status below 500,
// treating that as "up, even if the specific resource isn't". Connection
// errors count as not-ready and are retried until timeout.
func WaitReady(url string, timeout time.Duration) error {
	client := &http.Client{Timeout: probeRequestTimeout}
	ready := Poll(func() bool {
		resp, err := client.Get(url)
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode < http.StatusInternalServerError
	}, DefaultPollInterval, timeout)

	if !ready {
		return fmt.Errorf("server at %s did not become ready within %s", url, timeout)
	}
	return nil
}
