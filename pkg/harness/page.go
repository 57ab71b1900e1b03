package harness

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
)

// Page wraps a rod page with bounded-wait interaction helpers. Every wait
// carries an explicit timeout; nothing here blocks indefinitely.
type Page struct {
	*rod.Page
	timeout time.Duration
}

// FillForm locates each field by CSS selector, clears any pre-existing
// content, and types the value.
func (p *Page) FillForm(fields map[string]string) error {
	for selector, value := range fields {
		el, err := p.Page.Timeout(p.timeout).Element(selector)
		if err != nil {
			return fmt.Errorf("find field %s: %w", selector, err)
		}
		if err := FillElement(el, value); err != nil {
			return fmt.Errorf("fill field %s: %w", selector, err)
		}
	}
	return nil
}

// Click finds the element matching selector and clicks it.
func (p *Page) Click(selector string) error {
	el, err := p.Page.Timeout(p.timeout).Element(selector)
	if err != nil {
		return fmt.Errorf("find %s: %w", selector, err)
	}
	if err := el.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return fmt.Errorf("click %s: %w", selector, err)
	}
	return nil
}

// WaitURLContains waits until the page URL contains substr, e.g. after a
// post-submit redirect.
func (p *Page) WaitURLContains(substr string) error {
	var lastURL string
	ok := Poll(func() bool {
		info, err := p.Page.Info()
		if err != nil {
			return false
		}
		lastURL = info.URL
		return strings.Contains(lastURL, substr)
	}, 100*time.Millisecond, p.timeout)

	if !ok {
		return fmt.Errorf("URL never contained %q within %s (still on %q)", substr, p.timeout, lastURL)
	}
	return nil
}

// WaitVisibleText waits for the element matching selector to appear and
// become visible, then returns its rendered text.
func (p *Page) WaitVisibleText(selector string) (string, error) {
	el, err := p.Page.Timeout(p.timeout).Element(selector)
	if err != nil {
		return "", fmt.Errorf("element %s never appeared within %s: %w", selector, p.timeout, err)
	}
	if err := el.WaitVisible(); err != nil {
		return "", fmt.Errorf("element %s never became visible within %s: %w", selector, p.timeout, err)
	}
	text, err := el.Text()
	if err != nil {
		return "", fmt.Errorf("read text of %s: %w", selector, err)
	}
	return text, nil
}

// CatalogRow waits for the catalog table to render, then returns the first
// row whose text contains want. On a miss the error lists every row text
// seen, so failures are debuggable without a rerun.
//
// Interact with the returned row via RowFill and RowClick so lookups inside
// it stay bounded.
func (p *Page) CatalogRow(want string) (*rod.Element, error) {
	// Wait for at least one row before scanning them all.
	if _, err := p.Page.Timeout(p.timeout).Element("table tbody tr"); err != nil {
		return nil, fmt.Errorf("catalog rows never appeared within %s: %w", p.timeout, err)
	}

	rows, err := p.Page.Elements("table tbody tr")
	if err != nil {
		return nil, fmt.Errorf("list catalog rows: %w", err)
	}

	texts := make([]string, 0, len(rows))
	for _, row := range rows {
		text, err := row.Text()
		if err != nil {
			return nil, fmt.Errorf("read catalog row text: %w", err)
		}
		texts = append(texts, text)
	}

	idx, ok := FirstRowMatching(texts, want)
	if !ok {
		return nil, fmt.Errorf("no catalog row contains %q; rows seen: %q", want, texts)
	}
	return rows[idx], nil
}

// RowFill locates the field matching selector inside row, clears it, and
// types value. The lookup is bounded by the page timeout.
func (p *Page) RowFill(row *rod.Element, selector, value string) error {
	el, err := row.Timeout(p.timeout).Element(selector)
	if err != nil {
		return fmt.Errorf("element %s never appeared in row within %s: %w", selector, p.timeout, err)
	}
	if err := FillElement(el, value); err != nil {
		return fmt.Errorf("fill %s in row: %w", selector, err)
	}
	return nil
}

// RowClick clicks the element matching selector inside row. The lookup and
// the click's wait-for-interactable are bounded by the page timeout.
func (p *Page) RowClick(row *rod.Element, selector string) error {
	el, err := row.Timeout(p.timeout).Element(selector)
	if err != nil {
		return fmt.Errorf("element %s never appeared in row within %s: %w", selector, p.timeout, err)
	}
	if err := el.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return fmt.Errorf("click %s in row: %w", selector, err)
	}
	return nil
}

// FillElement clears el and types value into it.
func FillElement(el *rod.Element, value string) error {
	if err := el.SelectAllText(); err != nil {
		return fmt.Errorf("select existing text: %w", err)
	}
	if err := el.Input(value); err != nil {
		return fmt.Errorf("type %q: %w", value, err)
	}
	return nil
}
