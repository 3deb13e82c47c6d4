package document

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertGolden(t *testing.T, name string, actual []byte) {
	t.Helper()
	expected, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	if bytes.Equal(expected, actual) {
		return
	}
	diff, _ := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(expected)),
		B:        difflib.SplitLines(string(actual)),
		FromFile: name + " (expected)",
		ToFile:   name + " (actual)",
		Context:  3,
	})
	t.Errorf("golden mismatch:\n%s", diff)
}

func TestMarkdownRenderer(t *testing.T) {
	doc, err := Generate(sampleBid(), sampleDate, DefaultBranding())
	require.NoError(t, err)
	renderer := NewRenderer(FormatMarkdown, DefaultBranding())
	buf := &bytes.Buffer{}
	require.NoError(t, renderer.Render(buf, doc))
	assertGolden(t, FileName(doc.RFPID, renderer.Extension()), buf.Bytes())
}

func TestMarkdownRenderer_NoDiscount(t *testing.T) {
	bid := sampleBid()
	bid.Pricing.Discount = 0
	bid.Pricing.DiscountAmount = 0
	bid.Pricing.Total = 1000
	doc, err := Generate(bid, sampleDate, DefaultBranding())
	require.NoError(t, err)
	buf := &bytes.Buffer{}
	require.NoError(t, (&MarkdownRenderer{}).Render(buf, doc))
	assert.NotContains(t, buf.String(), "Volume Discount")
	assert.Contains(t, buf.String(), "| **Grand Total** |  |  | **$1000.00** |")
}

func TestPDFRenderer(t *testing.T) {
	doc, err := Generate(sampleBid(), sampleDate, DefaultBranding())
	require.NoError(t, err)
	renderer := NewPDFRenderer(DefaultBranding())
	assert.Equal(t, "application/pdf", renderer.ContentType())

	first := &bytes.Buffer{}
	require.NoError(t, renderer.Render(first, doc))
	assert.True(t, bytes.HasPrefix(first.Bytes(), []byte("%PDF-")))

	second := &bytes.Buffer{}
	require.NoError(t, renderer.Render(second, doc))
	assert.Equal(t, first.Bytes(), second.Bytes())

	pdf, err := renderer.layout(doc)
	require.NoError(t, err)
	assert.Equal(t, 1, pdf.PageCount())
}

func TestPDFRenderer_PageBreak(t *testing.T) {
	bid := sampleBid()
	bid.Product.Specs = strings.Repeat("chemical resistant, non-slip, heavy-traffic, ", 120)
	doc, err := Generate(bid, sampleDate, DefaultBranding())
	require.NoError(t, err)
	pdf, err := NewPDFRenderer(DefaultBranding()).layout(doc)
	require.NoError(t, err)
	assert.Greater(t, pdf.PageCount(), 1)
}
