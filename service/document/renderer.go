package document

import "io"

// Renderer lays a document out in a concrete format
type Renderer interface {
	Render(w io.Writer, doc *Document) error
	// Extension returns the file extension without dot
	Extension() string
	ContentType() string
}

// Format names a rendering backend
type Format string

const (
	FormatPDF      Format = "pdf"
	FormatMarkdown Format = "md"
)

// NewRenderer returns the renderer for the format, or nil when unknown.
func NewRenderer(format Format, branding Branding) Renderer {
	switch format {
	case FormatPDF:
		return NewPDFRenderer(branding)
	case FormatMarkdown:
		return &MarkdownRenderer{}
	}
	return nil
}
