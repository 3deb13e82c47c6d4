package document

import "time"

// Kind identifies a block type
type Kind string

const (
	KindHeader  Kind = "header"
	KindSection Kind = "section"
	KindFooter  Kind = "footer"
)

// Block is a single layout element of a document
type Block interface {
	Kind() Kind
}

// Header is rendered once, at the top of the first page
type Header struct {
	Title     string
	Subtitle  string
	Date      string
	Reference string
}

func (h *Header) Kind() Kind { return KindHeader }

// Section is a titled part of the document body holding either a summary
// or a table.
type Section struct {
	Title   string
	Summary *Summary
	Table   *Table
}

func (s *Section) Kind() Kind { return KindSection }

// Summary is free text addressed to the client
type Summary struct {
	PreparedFor string
	Text        string
}

// TableStyle controls row decoration
type TableStyle string

const (
	StyleGrid    TableStyle = "grid"
	StyleStriped TableStyle = "striped"
)

// Table is a headed grid of text cells
type Table struct {
	Style TableStyle
	Head  []string
	// Widths are relative column weights
	Widths []float64
	Rows   []*Row
}

// Row is a table row; emphasized rows carry totals
type Row struct {
	Cells      []string
	Emphasized bool
}

// Footer is repeated on every page
type Footer struct {
	Text string
}

func (f *Footer) Kind() Kind { return KindFooter }

// Document is an ordered list of blocks
type Document struct {
	RFPID  string
	Date   time.Time
	Blocks []Block
}

// Header returns the document header, if any
func (d *Document) Header() *Header {
	for _, block := range d.Blocks {
		if header, ok := block.(*Header); ok {
			return header
		}
	}
	return nil
}

// Footer returns the document footer, if any
func (d *Document) Footer() *Footer {
	for _, block := range d.Blocks {
		if footer, ok := block.(*Footer); ok {
			return footer
		}
	}
	return nil
}

// Sections returns body sections in order
func (d *Document) Sections() []*Section {
	var ret []*Section
	for _, block := range d.Blocks {
		if section, ok := block.(*Section); ok {
			ret = append(ret, section)
		}
	}
	return ret
}

// Section returns a section by title
func (d *Document) Section(title string) *Section {
	for _, section := range d.Sections() {
		if section.Title == title {
			return section
		}
	}
	return nil
}
