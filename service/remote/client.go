package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"time"

	"github.com/viant/bidflow/model"
	"github.com/viant/bidflow/tracing"
)

// DefaultTimeout bounds a single backend call.
const DefaultTimeout = 60 * time.Second

// Backend is the remote contract consumed by the workflow machine.
type Backend interface {
	ListRfps(ctx context.Context) ([]*model.RFP, error)
	ListProducts(ctx context.Context) ([]*model.Product, error)
	GetAnalytics(ctx context.Context) (*model.Analytics, error)
	UploadRfp(ctx context.Context, file *File) (*model.RFP, error)
	StartProcessing(ctx context.Context, rfpID string) (*model.ProcessResult, error)
	SetStatus(ctx context.Context, rfpID string, status model.Status) (*model.RFP, error)
}

// Client talks to the bid backend over HTTP/JSON.
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	logger     *slog.Logger
}

// BaseURL returns the backend address.
func (c *Client) BaseURL() string { return c.baseURL }

// ListRfps returns all RFPs known to the backend.
func (c *Client) ListRfps(ctx context.Context) ([]*model.RFP, error) {
	var result []*model.RFP
	if err := c.call(ctx, "listRfps", http.MethodGet, "/rfps", nil, "", &result); err != nil {
		return nil, err
	}
	return result, nil
}

// ListProducts returns the product catalog.
func (c *Client) ListProducts(ctx context.Context) ([]*model.Product, error) {
	var result []*model.Product
	if err := c.call(ctx, "listProducts", http.MethodGet, "/products", nil, "", &result); err != nil {
		return nil, err
	}
	return result, nil
}

// GetAnalytics returns pipeline statistics.
func (c *Client) GetAnalytics(ctx context.Context) (*model.Analytics, error) {
	result := &model.Analytics{}
	if err := c.call(ctx, "getAnalytics", http.MethodGet, "/analytics", nil, "", result); err != nil {
		return nil, err
	}
	return result, nil
}

// UploadRfp sends a PDF document and returns the created RFP. Files that are
// not declared as PDF fail with ValidationError without contacting the
// backend.
func (c *Client) UploadRfp(ctx context.Context, file *File) (*model.RFP, error) {
	if file == nil {
		return nil, &ValidationError{Field: "file", Message: "no file selected"}
	}
	if !file.IsPDF() {
		return nil, &ValidationError{Field: "file", Message: fmt.Sprintf("only PDF files are supported, got %q", file.MediaType)}
	}
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, file.Name))
	header.Set("Content-Type", PDFMediaType)
	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, fmt.Errorf("failed to create upload part: %w", err)
	}
	if _, err = part.Write(file.Content); err != nil {
		return nil, fmt.Errorf("failed to write upload part: %w", err)
	}
	if err = writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to close upload body: %w", err)
	}
	result := &model.RFP{}
	if err = c.call(ctx, "uploadRfp", http.MethodPost, "/upload-rfp", body, writer.FormDataContentType(), result); err != nil {
		return nil, err
	}
	return result, nil
}

// StartProcessing runs the agent pipeline for an RFP and returns the
// complete log and, when one was compiled, the bid.
func (c *Client) StartProcessing(ctx context.Context, rfpID string) (*model.ProcessResult, error) {
	payload, err := json.Marshal(&model.ProcessRequest{RFPID: rfpID})
	if err != nil {
		return nil, err
	}
	result := &model.ProcessResult{}
	if err = c.call(ctx, "startProcessing", http.MethodPost, "/process-rfp", bytes.NewReader(payload), "application/json", result); err != nil {
		return nil, err
	}
	return result, nil
}

// SetStatus updates the RFP status. Any error means the backend status is
// unknown.
func (c *Client) SetStatus(ctx context.Context, rfpID string, status model.Status) (*model.RFP, error) {
	payload, err := json.Marshal(&model.StatusUpdate{Status: status})
	if err != nil {
		return nil, err
	}
	result := &model.RFP{}
	URI := "/rfps/" + url.PathEscape(rfpID) + "/status"
	if err = c.call(ctx, "setStatus", http.MethodPut, URI, bytes.NewReader(payload), "application/json", result); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *Client) call(ctx context.Context, op, method, URI string, body io.Reader, contentType string, output interface{}) (err error) {
	ctx, span := tracing.StartSpan(ctx, "remote."+op, tracing.KindClient)
	span.WithAttributes(map[string]string{"http.method": method, "http.path": URI})
	defer func() { tracing.EndSpan(span, err) }()

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	request, err := http.NewRequestWithContext(ctx, method, c.baseURL+URI, body)
	if err != nil {
		return &NetworkError{Op: op, Err: err}
	}
	request.Header.Set("Accept", "application/json")
	if contentType != "" {
		request.Header.Set("Content-Type", contentType)
	}
	started := time.Now()
	response, err := c.httpClient.Do(request)
	if err != nil {
		c.logger.Debug("backend call failed", "op", op, "error", err)
		return &NetworkError{Op: op, Err: err}
	}
	defer response.Body.Close()
	span.SetStatusFromHTTPCode(response.StatusCode)
	data, err := io.ReadAll(response.Body)
	if err != nil {
		return &NetworkError{Op: op, Err: err}
	}
	c.logger.Debug("backend call", "op", op, "status", response.StatusCode, "elapsed", time.Since(started))
	if response.StatusCode < 200 || response.StatusCode > 299 {
		return &ServerError{Op: op, StatusCode: response.StatusCode, Detail: errorDetail(data)}
	}
	if output == nil {
		return nil
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return &DecodeError{Op: op, Err: io.ErrUnexpectedEOF}
	}
	if err = json.Unmarshal(data, output); err != nil {
		return &DecodeError{Op: op, Err: err}
	}
	return nil
}

// errorDetail extracts the backend `detail` field, or the raw body when the
// response is not a JSON error envelope.
func errorDetail(data []byte) string {
	envelope := struct {
		Detail json.RawMessage `json:"detail"`
	}{}
	if err := json.Unmarshal(data, &envelope); err == nil && len(envelope.Detail) > 0 {
		var text string
		if err = json.Unmarshal(envelope.Detail, &text); err == nil {
			return text
		}
		return string(envelope.Detail)
	}
	const maxDetail = 256
	detail := strings.TrimSpace(string(data))
	if len(detail) > maxDetail {
		detail = detail[:maxDetail]
	}
	return detail
}

// New creates a backend client
func New(baseURL string, opts ...Option) *Client {
	ret := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: http.DefaultClient,
		timeout:    DefaultTimeout,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}
