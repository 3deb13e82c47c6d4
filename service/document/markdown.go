package document

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// MarkdownRenderer renders documents as plain Markdown. The output is
// deterministic and does not pad table columns.
type MarkdownRenderer struct{}

func (r *MarkdownRenderer) Extension() string   { return "md" }
func (r *MarkdownRenderer) ContentType() string { return "text/markdown" }

// Render writes the document to w.
func (r *MarkdownRenderer) Render(w io.Writer, doc *Document) error {
	out := bufio.NewWriter(w)
	for i, block := range doc.Blocks {
		if i > 0 {
			out.WriteString("\n")
		}
		switch actual := block.(type) {
		case *Header:
			fmt.Fprintf(out, "# %s\n\n%s\n\n%s\n\n%s\n", actual.Title, actual.Subtitle, actual.Date, actual.Reference)
		case *Section:
			fmt.Fprintf(out, "## %s\n", actual.Title)
			if actual.Summary != nil {
				fmt.Fprintf(out, "\n%s\n\n%s\n", actual.Summary.PreparedFor, actual.Summary.Text)
			}
			if actual.Table != nil {
				out.WriteString("\n")
				writeMarkdownTable(out, actual.Table)
			}
		case *Footer:
			fmt.Fprintf(out, "---\n\n%s\n", actual.Text)
		default:
			return fmt.Errorf("unsupported block: %T", block)
		}
	}
	return out.Flush()
}

func writeMarkdownTable(out *bufio.Writer, table *Table) {
	writeMarkdownRow(out, table.Head)
	separator := make([]string, len(table.Head))
	for i := range separator {
		separator[i] = "---"
	}
	writeMarkdownRow(out, separator)
	for _, row := range table.Rows {
		cells := row.Cells
		if row.Emphasized {
			cells = make([]string, len(row.Cells))
			for i, cell := range row.Cells {
				if cell != "" {
					cell = "**" + cell + "**"
				}
				cells[i] = cell
			}
		}
		writeMarkdownRow(out, cells)
	}
}

var markdownCellEscaper = strings.NewReplacer("|", `\|`, "\n", " ")

func writeMarkdownRow(out *bufio.Writer, cells []string) {
	escaped := make([]string, len(cells))
	for i, cell := range cells {
		escaped[i] = markdownCellEscaper.Replace(cell)
	}
	out.WriteString("| " + strings.Join(escaped, " | ") + " |\n")
}
