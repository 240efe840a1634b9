// Package extract turns a PDF on disk into page-tagged plain text.
package extract

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
)

var (
	ErrNotFound     = errors.New("file not found")
	ErrEmptyContent = errors.New("no text content could be extracted")
)

type Page struct {
	Number int
	Text   string
}

// DocumentText is the extracted text of a document, in page order.
type DocumentText struct {
	Pages []Page
}

// String renders the pages with 1-based page markers, matching the form the
// analysis prompts expect.
func (d DocumentText) String() string {
	var b strings.Builder
	for _, p := range d.Pages {
		fmt.Fprintf(&b, "--- Page %d ---\n%s\n", p.Number, p.Text)
	}
	return b.String()
}

// Extract reads the PDF at path and returns its text, one entry per page.
// Read-only, no retries; calling it twice on the same file yields identical
// output. Returns ErrNotFound when the path does not resolve to a readable
// file and ErrEmptyContent when no page yields any text (e.g. a scanned
// image PDF without an OCR layer).
func Extract(path string) (DocumentText, error) {
	if _, err := os.Stat(path); err != nil {
		return DocumentText{}, fmt.Errorf("%w: %s", ErrNotFound, path)
	}

	f, r, err := pdf.Open(path)
	if err != nil {
		return DocumentText{}, fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	doc := DocumentText{}
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			doc.Pages = append(doc.Pages, Page{Number: i})
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			// an unreadable page contributes no text but keeps its marker
			content = ""
		}
		doc.Pages = append(doc.Pages, Page{Number: i, Text: collapseBlankLines(content)})
	}

	if strings.TrimSpace(doc.String()) == "" || !hasText(doc) {
		return DocumentText{}, ErrEmptyContent
	}
	return doc, nil
}

func hasText(d DocumentText) bool {
	for _, p := range d.Pages {
		if strings.TrimSpace(p.Text) != "" {
			return true
		}
	}
	return false
}

// collapseBlankLines rewrites consecutive blank-line runs as a single line
// break, one left-to-right pass. Cosmetic only, but kept stable because the
// rendered text feeds both prompts and scorers.
func collapseBlankLines(s string) string {
	return strings.ReplaceAll(s, "\n\n", "\n")
}
