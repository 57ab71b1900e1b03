//go:build e2e

package e2e

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"libshelf/pkg/harness"
)

// TestBorrowBookShowsConfirmation borrows a seeded book from the catalog view
// and verifies the confirmation banner. It relies on seed data only, so it
// does not depend on the add-book scenario having run first.
func TestBorrowBookShowsConfirmation(t *testing.T) {
	browser := newSession(t)

	page, err := browser.Open(serverURL + "/catalog")
	require.NoError(t, err)

	const bookTitle = "The Great Gatsby"
	const patronID = "707070"

	row, err := page.CatalogRow(bookTitle)
	require.NoError(t, err)

	// Scope both the patron input and the borrow button to the matched row
	// so we never act on another book's form.
	require.NoError(t, page.RowFill(row, `input[name="patron_id"]`, patronID))
	require.NoError(t, page.RowClick(row, "button.btn-success"))

	banner, err := page.WaitVisibleText("div.flash-success")
	require.NoError(t, err)

	expectedPrefix := `Successfully borrowed "The Great Gatsby". Due date:`
	require.Contains(t, banner, expectedPrefix,
		"borrow confirmation did not have the expected text")

	// The due date itself is not pinned down, but there must be one.
	dueDate := strings.TrimSpace(banner[strings.Index(banner, expectedPrefix)+len(expectedPrefix):])
	assert.NotEmpty(t, dueDate, "banner should end with a due date")
}

// TestRowLookupFailsFastForMissingElement guards the bounded-wait guarantee
// for row-scoped interactions: a selector that matches nothing inside the
// row must produce an error within the wait timeout, never hang.
func TestRowLookupFailsFastForMissingElement(t *testing.T) {
	cfg := harness.DefaultBrowserConfig()
	cfg.Timeout = 2 * time.Second

	browser, err := harness.NewBrowser(cfg)
	require.NoError(t, err, "failed to launch browser")
	t.Cleanup(browser.Close)

	page, err := browser.Open(serverURL + "/catalog")
	require.NoError(t, err)

	row, err := page.CatalogRow("The Great Gatsby")
	require.NoError(t, err)

	start := time.Now()
	err = page.RowFill(row, `input[name="no_such_field"]`, "707070")
	elapsed := time.Since(start)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no_such_field")
	assert.Less(t, elapsed, 10*time.Second,
		"missing row elements must fail within the wait timeout")
}
