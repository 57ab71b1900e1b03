//go:build e2e

package e2e

import (
	"testing"

	"github.com/stretchr/testify/require"

	"libshelf/pkg/harness"
)

// newSession launches a fresh headless browser for one test and guarantees
// it is closed when the test finishes, pass or fail.
func newSession(t *testing.T) *harness.Browser {
	t.Helper()

	browser, err := harness.NewBrowser(harness.DefaultBrowserConfig())
	require.NoError(t, err, "failed to launch browser")
	t.Cleanup(browser.Close)
	return browser
}
