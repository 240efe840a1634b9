package extract

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeFixturePDF writes a minimal Helvetica PDF with one content stream per
// page and a correct cross-reference table. An empty page text produces a
// page with an empty content stream.
func writeFixturePDF(t *testing.T, path string, pageTexts []string) {
	t.Helper()

	var buf bytes.Buffer
	var offsets []int
	addObj := func(body string) {
		offsets = append(offsets, buf.Len())
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", len(offsets), body)
	}

	buf.WriteString("%PDF-1.4\n")

	kids := make([]string, len(pageTexts))
	for i := range pageTexts {
		kids[i] = fmt.Sprintf("%d 0 R", 4+2*i)
	}
	addObj("<< /Type /Catalog /Pages 2 0 R >>")
	addObj(fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), len(pageTexts)))
	addObj("<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>")
	for i, text := range pageTexts {
		content := ""
		if text != "" {
			content = fmt.Sprintf("BT /F1 12 Tf 72 720 Td (%s) Tj ET", text)
		}
		addObj(fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 3 0 R >> >> /Contents %d 0 R >>", 5+2*i))
		addObj(fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content))
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(offsets)+1)
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(offsets)+1, xref)

	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o600))
}

func TestExtract_RendersPagesInOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.pdf")
	writeFixturePDF(t, path, []string{"Revenue grew in 2025", "Cash flow stayed positive"})

	doc, err := Extract(path)

	require.NoError(t, err)
	require.Len(t, doc.Pages, 2)
	assert.Equal(t, 1, doc.Pages[0].Number)
	assert.Equal(t, 2, doc.Pages[1].Number)
	assert.Contains(t, doc.Pages[0].Text, "Revenue grew in 2025")
	assert.Contains(t, doc.Pages[1].Text, "Cash flow stayed positive")

	out := doc.String()
	assert.Contains(t, out, "--- Page 1 ---")
	assert.Contains(t, out, "--- Page 2 ---")
	assert.Less(t, strings.Index(out, "Revenue grew"), strings.Index(out, "Cash flow stayed"))
}

func TestExtract_SameFileTwiceYieldsIdenticalText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "statement.pdf")
	writeFixturePDF(t, path, []string{"Quarterly statement of operations"})

	first, err := Extract(path)
	require.NoError(t, err)
	second, err := Extract(path)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, first.String(), second.String())
}

func TestExtract_NoTextContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scanned.pdf")
	writeFixturePDF(t, path, []string{""})

	_, err := Extract(path)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEmptyContent)
}

func TestExtract_MissingFile(t *testing.T) {
	_, err := Extract("testdata/does-not-exist.pdf")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDocumentText_String(t *testing.T) {
	doc := DocumentText{Pages: []Page{
		{Number: 1, Text: "Revenue was up."},
		{Number: 2, Text: "Costs were flat."},
	}}

	want := "--- Page 1 ---\nRevenue was up.\n--- Page 2 ---\nCosts were flat.\n"
	assert.Equal(t, want, doc.String())
}

func TestCollapseBlankLines(t *testing.T) {
	assert.Equal(t, "Revenue\nProfit", collapseBlankLines("Revenue\n\nProfit"))
	// single left-to-right pass, matching the rendering the prompts expect
	assert.Equal(t, "a\n\nb", collapseBlankLines("a\n\n\n\nb"))
}

func TestHasText(t *testing.T) {
	assert.False(t, hasText(DocumentText{Pages: []Page{{Number: 1, Text: "  \n"}}}))
	assert.True(t, hasText(DocumentText{Pages: []Page{{Number: 1}, {Number: 2, Text: "x"}}}))
}
