// Package export writes rendered proposal documents to storage. Any afs
// supported URL works as destination (file://, mem://, s3:// ...).
package export

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/url"
	"github.com/viant/bidflow/service/document"
)

// Result describes an exported artifact
type Result struct {
	URL         string    `json:"url"`
	Name        string    `json:"name"`
	Size        int64     `json:"size"`
	ContentType string    `json:"contentType"`
	ModTime     time.Time `json:"modTime,omitempty"`
}

// Service renders and stores documents
type Service struct {
	fs       afs.Service
	baseURL  string
	renderer document.Renderer
}

// BaseURL returns the destination location
func (s *Service) BaseURL() string { return s.baseURL }

// Renderer returns the configured renderer
func (s *Service) Renderer() document.Renderer { return s.renderer }

// Export renders doc and uploads it as <baseURL>/Bid_Proposal_<rfp_id>.<ext>,
// replacing an earlier export of the same RFP.
func (s *Service) Export(ctx context.Context, doc *document.Document) (*Result, error) {
	if doc == nil {
		return nil, fmt.Errorf("document was nil")
	}
	buf := &bytes.Buffer{}
	if err := s.renderer.Render(buf, doc); err != nil {
		return nil, fmt.Errorf("failed to render %v: %w", doc.RFPID, err)
	}
	name := document.FileName(doc.RFPID, s.renderer.Extension())
	URL := url.Join(s.baseURL, name)
	if err := s.fs.Upload(ctx, URL, file.DefaultFileOsMode, bytes.NewReader(buf.Bytes())); err != nil {
		return nil, fmt.Errorf("failed to upload %v: %w", URL, err)
	}
	object, err := s.fs.Object(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to get object for %s: %w", URL, err)
	}
	return &Result{
		URL:         URL,
		Name:        name,
		Size:        object.Size(),
		ContentType: s.renderer.ContentType(),
		ModTime:     object.ModTime(),
	}, nil
}

// List returns previously exported proposals found under the base URL.
func (s *Service) List(ctx context.Context) ([]*Result, error) {
	if ok, _ := s.fs.Exists(ctx, s.baseURL); !ok {
		return nil, nil
	}
	objects, err := s.fs.List(ctx, s.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to list %v: %w", s.baseURL, err)
	}
	var result []*Result
	for _, object := range objects {
		if object.IsDir() || !strings.HasPrefix(object.Name(), "Bid_Proposal_") {
			continue
		}
		result = append(result, &Result{
			URL:         object.URL(),
			Name:        object.Name(),
			Size:        object.Size(),
			ContentType: contentType(object.Name()),
			ModTime:     object.ModTime(),
		})
	}
	return result, nil
}

func contentType(name string) string {
	switch path.Ext(name) {
	case ".pdf":
		return "application/pdf"
	case ".md":
		return "text/markdown"
	}
	return "application/octet-stream"
}

// New creates an export service
func New(baseURL string, renderer document.Renderer, fs afs.Service) *Service {
	if fs == nil {
		fs = afs.New()
	}
	if renderer == nil {
		renderer = document.NewPDFRenderer(document.DefaultBranding())
	}
	return &Service{fs: fs, baseURL: strings.TrimRight(baseURL, "/"), renderer: renderer}
}
