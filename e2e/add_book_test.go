//go:build e2e

package e2e

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestAddNewBookVisibleInCatalog walks the add-book flow like a user would:
// open the form, fill it in, submit, and verify both the success banner and
// the new catalog row.
func TestAddNewBookVisibleInCatalog(t *testing.T) {
	browser := newSession(t)

	page, err := browser.Open(serverURL + "/add_book")
	require.NoError(t, err)

	book := struct {
		title, author, isbn, copies string
	}{
		title:  "E2E Selenium Alt Flow Book",
		author: "E2E tester",
		isbn:   "9990000000002",
		copies: "3",
	}

	// Field selectors match the input IDs in the add-book form. FillForm
	// waits for each field, so this doubles as the form-readiness wait.
	err = page.FillForm(map[string]string{
		"#title":        book.title,
		"#author":       book.author,
		"#isbn":         book.isbn,
		"#total_copies": book.copies,
	})
	require.NoError(t, err)

	require.NoError(t, page.Click(`button[type="submit"]`))

	// A successful submission redirects back to the catalog view.
	require.NoError(t, page.WaitURLContains("/catalog"))

	banner, err := page.WaitVisibleText("div.flash-success")
	require.NoError(t, err)
	expected := `Book "E2E Selenium Alt Flow Book" has been successfully added to the catalog.`
	assert.Equal(t, expected, banner, "unexpected success banner")

	row, err := page.CatalogRow(book.title)
	require.NoError(t, err)
	rowText, err := row.Text()
	require.NoError(t, err)

	assert.Contains(t, rowText, book.title)
	assert.Contains(t, rowText, book.author)
	assert.Contains(t, rowText, book.isbn)
	assert.Contains(t, rowText, book.copies)
}
