package remote

import (
	"context"
	"fmt"
	"mime"
	"net/http"
	"path"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/afs/url"
)

// PDFMediaType is the only media type the backend accepts for uploads.
const PDFMediaType = "application/pdf"

// File represents an upload candidate.
type File struct {
	Name      string
	MediaType string
	Content   []byte
}

// IsPDF returns true if the file declares the PDF media type. Parameters
// such as charset are ignored.
func (f *File) IsPDF() bool {
	if f == nil {
		return false
	}
	mediaType, _, err := mime.ParseMediaType(f.MediaType)
	if err != nil {
		return false
	}
	return mediaType == PDFMediaType
}

// LoadFile reads an upload candidate from any afs supported URL.
func LoadFile(ctx context.Context, fs afs.Service, URL string) (*File, error) {
	if fs == nil {
		fs = afs.New()
	}
	data, err := fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to read %v: %w", URL, err)
	}
	name := path.Base(url.Path(URL))
	return &File{Name: name, MediaType: ContentType(name, data), Content: data}, nil
}

// ContentType determines the media type from the file extension, falling
// back to content sniffing for unknown extensions.
func ContentType(name string, data []byte) string {
	switch strings.ToLower(path.Ext(name)) {
	case ".pdf":
		return PDFMediaType
	case ".txt":
		return "text/plain"
	case ".json":
		return "application/json"
	case ".md":
		return "text/markdown"
	case ".html", ".htm":
		return "text/html"
	case ".doc":
		return "application/msword"
	case ".docx":
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	}
	if len(data) == 0 {
		return "application/octet-stream"
	}
	return http.DetectContentType(data)
}
