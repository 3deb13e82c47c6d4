package document

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"
)

const (
	pageMargin   = 20.0
	bandHeight   = 40.0
	cellPadding  = 2.0
	lineHeight   = 5.0
	bottomMargin = 20.0
)

// PDFRenderer renders documents as A4 PDF.
type PDFRenderer struct {
	branding Branding
}

func (r *PDFRenderer) Extension() string   { return "pdf" }
func (r *PDFRenderer) ContentType() string { return "application/pdf" }

// Render writes the document to w. Creation and modification dates are set
// to the document date so identical documents produce identical bytes.
func (r *PDFRenderer) Render(w io.Writer, doc *Document) error {
	pdf, err := r.layout(doc)
	if err != nil {
		return err
	}
	return pdf.Output(w)
}

func (r *PDFRenderer) layout(doc *Document) (*fpdf.Fpdf, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCreationDate(doc.Date)
	pdf.SetModificationDate(doc.Date)
	pdf.SetCatalogSort(true)
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, bottomMargin)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	if header := doc.Header(); header != nil {
		pdf.SetTitle(tr(header.Title+" - "+header.Reference), false)
	}
	pdf.SetCreator("bidflow", false)

	if footer := doc.Footer(); footer != nil {
		text := tr(footer.Text)
		pdf.SetFooterFunc(func() {
			_, pageHeight := pdf.GetPageSize()
			pdf.SetY(pageHeight - 15)
			pdf.SetFont("Helvetica", "", 8)
			pdf.SetTextColor(150, 150, 150)
			pdf.CellFormat(0, 10, text, "", 0, "C", false, 0, "")
		})
	}
	pdf.AddPage()
	y := pageMargin
	for _, block := range doc.Blocks {
		switch actual := block.(type) {
		case *Header:
			y = r.header(pdf, tr, actual)
		case *Section:
			y = r.section(pdf, tr, actual, y)
		case *Footer:
		default:
			return nil, fmt.Errorf("unsupported block: %T", block)
		}
	}
	if err := pdf.Error(); err != nil {
		return nil, err
	}
	return pdf, nil
}

func (r *PDFRenderer) header(pdf *fpdf.Fpdf, tr func(string) string, header *Header) float64 {
	pageWidth, _ := pdf.GetPageSize()
	primary := r.branding.Primary
	pdf.SetFillColor(primary.R, primary.G, primary.B)
	pdf.Rect(0, 0, pageWidth, bandHeight, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 22)
	pdf.Text(pageMargin, 20, tr(header.Title))
	pdf.SetFont("Helvetica", "", 12)
	pdf.Text(pageMargin, 30, tr(header.Subtitle))
	pdf.Text(150, 20, tr(header.Date))
	pdf.Text(150, 30, tr(header.Reference))
	return bandHeight + 15
}

func (r *PDFRenderer) section(pdf *fpdf.Fpdf, tr func(string) string, section *Section, y float64) float64 {
	pdf.SetXY(pageMargin, y)
	r.ensureSpace(pdf, 10+3*lineHeight, nil)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, tr(section.Title), "", 1, "L", false, 0, "")
	if summary := section.Summary; summary != nil {
		pdf.SetFont("Helvetica", "", 10)
		pdf.SetTextColor(60, 60, 60)
		pdf.MultiCell(0, 6, tr(summary.PreparedFor), "", "L", false)
		pdf.Ln(2)
		pdf.MultiCell(0, 6, tr(summary.Text), "", "L", false)
	}
	if section.Table != nil {
		r.table(pdf, tr, section.Table)
	}
	return pdf.GetY() + 10
}

func (r *PDFRenderer) columnWidths(pdf *fpdf.Fpdf, table *Table) []float64 {
	pageWidth, _ := pdf.GetPageSize()
	available := pageWidth - 2*pageMargin
	widths := make([]float64, len(table.Head))
	total := 0.0
	for i := range widths {
		weight := 1.0
		if i < len(table.Widths) && table.Widths[i] > 0 {
			weight = table.Widths[i]
		}
		widths[i] = weight
		total += weight
	}
	for i := range widths {
		widths[i] = widths[i] / total * available
	}
	return widths
}

func (r *PDFRenderer) table(pdf *fpdf.Fpdf, tr func(string) string, table *Table) {
	widths := r.columnWidths(pdf, table)
	drawHead := func() {
		primary := r.branding.Primary
		pdf.SetFont("Helvetica", "B", 10)
		pdf.SetFillColor(primary.R, primary.G, primary.B)
		pdf.SetTextColor(255, 255, 255)
		r.row(pdf, tr, widths, table.Head, "1", true, -1)
	}
	r.ensureSpace(pdf, 2*(lineHeight+2*cellPadding), nil)
	drawHead()
	border := ""
	if table.Style == StyleGrid {
		border = "1"
	}
	for i, row := range table.Rows {
		height := r.rowHeight(pdf, tr, widths, row.Cells)
		r.ensureSpace(pdf, height, drawHead)
		pdf.SetTextColor(0, 0, 0)
		pdf.SetFont("Helvetica", "", 10)
		fill := false
		accentColumn := -1
		switch {
		case row.Emphasized:
			highlight := r.branding.Highlight
			pdf.SetFillColor(highlight.R, highlight.G, highlight.B)
			pdf.SetFont("Helvetica", "B", 10)
			fill = true
			accentColumn = len(row.Cells) - 1
		case table.Style == StyleStriped && i%2 == 1:
			stripe := r.branding.Stripe
			pdf.SetFillColor(stripe.R, stripe.G, stripe.B)
			fill = true
		}
		r.row(pdf, tr, widths, row.Cells, border, fill, accentColumn)
	}
}

// ensureSpace starts a new page when height does not fit; drawHead repeats
// the table head on the new page.
func (r *PDFRenderer) ensureSpace(pdf *fpdf.Fpdf, height float64, drawHead func()) {
	_, pageHeight := pdf.GetPageSize()
	if pdf.GetY()+height <= pageHeight-bottomMargin || pdf.GetY() <= pageMargin {
		return
	}
	pdf.AddPage()
	pdf.SetXY(pageMargin, pageMargin)
	if drawHead != nil {
		drawHead()
		pdf.SetFont("Helvetica", "", 10)
		pdf.SetTextColor(0, 0, 0)
	}
}

func (r *PDFRenderer) rowHeight(pdf *fpdf.Fpdf, tr func(string) string, widths []float64, cells []string) float64 {
	lines := 1
	for i, cell := range cells {
		if i >= len(widths) {
			break
		}
		if count := len(pdf.SplitText(tr(cell), widths[i]-2*cellPadding)); count > lines {
			lines = count
		}
	}
	return float64(lines)*lineHeight + 2*cellPadding
}

func (r *PDFRenderer) row(pdf *fpdf.Fpdf, tr func(string) string, widths []float64, cells []string, border string, fill bool, accentColumn int) {
	height := r.rowHeight(pdf, tr, widths, cells)
	x, y := pageMargin, pdf.GetY()
	style := ""
	if fill {
		style = "F"
	}
	if border != "" {
		style += "D"
	}
	for i, width := range widths {
		if style != "" {
			pdf.Rect(x, y, width, height, style)
		}
		text := ""
		if i < len(cells) {
			text = cells[i]
		}
		if i == accentColumn {
			accent := r.branding.Accent
			pdf.SetTextColor(accent.R, accent.G, accent.B)
		}
		for j, line := range pdf.SplitText(tr(text), width-2*cellPadding) {
			pdf.SetXY(x+cellPadding, y+cellPadding+float64(j)*lineHeight)
			pdf.CellFormat(width-2*cellPadding, lineHeight, line, "", 0, "L", false, 0, "")
		}
		x += width
	}
	pdf.SetXY(pageMargin, y+height)
}

// NewPDFRenderer creates a PDF renderer with the supplied palette.
func NewPDFRenderer(branding Branding) *PDFRenderer {
	return &PDFRenderer{branding: branding}
}
