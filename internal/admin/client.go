// Package admin implements the HTTP client for the cost master admin backend.
package admin

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"

	"github.com/Veraticus/costctl/internal/common"
	"github.com/Veraticus/costctl/internal/model"
	"github.com/Veraticus/costctl/internal/service"
	"github.com/google/uuid"
)

// Backend paths that are not tied to an upload mode.
const (
	templatePath            = "/admin/template"
	transactionTemplatePath = "/admin/template-transaction"
	statsPath               = "/admin/stats"
	dataPath                = "/admin/data"
	exportPath              = "/admin/export"
	clearPath               = "/admin/clear"
)

// RequestIDHeader carries the per-request correlation id.
const RequestIDHeader = "X-Request-ID"

var _ service.AdminBackend = (*Client)(nil)

// Client talks to the admin backend over HTTP.
type Client struct {
	httpClient   *http.Client
	wrapUpload   func(r io.Reader, size int64) io.Reader
	newRequestID func() string
	baseURL      string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithUploadProgress wraps the multipart body of every upload, e.g. to drive a progress bar.
func WithUploadProgress(wrap func(r io.Reader, size int64) io.Reader) Option {
	return func(c *Client) {
		c.wrapUpload = wrap
	}
}

// WithRequestIDs overrides the request id generator.
func WithRequestIDs(gen func() string) Option {
	return func(c *Client) {
		c.newRequestID = gen
	}
}

// errorPayload is the failure body shared by every JSON endpoint.
type errorPayload struct {
	Error string `json:"error"`
}

type costMasterPayload struct {
	Count int `json:"count"`
}

// NewClient creates a client for the backend rooted at baseURL.
// Requests have no timeout; only the caller's context can end them early.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		return nil, fmt.Errorf("%w: server URL must start with http:// or https://: %q", common.ErrInvalidConfig, baseURL)
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidConfig, err)
	}

	c := &Client{
		baseURL:      baseURL,
		httpClient:   &http.Client{},
		newRequestID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the backend root the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// UploadCostMaster posts a cost master CSV and returns the registered row count.
func (c *Client) UploadCostMaster(ctx context.Context, file model.SelectedFile) (int, error) {
	var payload costMasterPayload
	if err := c.upload(ctx, "upload cost master", model.CostMasterUploadPath, file, &payload); err != nil {
		return 0, err
	}
	return payload.Count, nil
}

// UploadTransactions posts a transaction CSV for extraction.
func (c *Client) UploadTransactions(ctx context.Context, file model.SelectedFile) (service.TransactionCounts, error) {
	var counts service.TransactionCounts
	if err := c.upload(ctx, "upload transactions", model.TransactionUploadPath, file, &counts); err != nil {
		return service.TransactionCounts{}, err
	}
	return counts, nil
}

// Template downloads the cost master CSV template of the given type.
func (c *Client) Template(ctx context.Context, templateType string) ([]byte, error) {
	q := url.Values{}
	q.Set("type", templateType)
	return c.download(ctx, "download template", templatePath+"?"+q.Encode())
}

// TransactionTemplate downloads the transaction CSV template.
func (c *Client) TransactionTemplate(ctx context.Context) ([]byte, error) {
	return c.download(ctx, "download transaction template", transactionTemplatePath)
}

// Stats fetches the summary counts.
func (c *Client) Stats(ctx context.Context) (model.Stats, error) {
	var stats model.Stats
	if err := c.doJSON(ctx, "fetch stats", http.MethodGet, statsPath, nil, "", &stats); err != nil {
		return model.Stats{}, err
	}
	return stats, nil
}

// Data fetches the stored cost master rows and recipes.
func (c *Client) Data(ctx context.Context) (model.Snapshot, error) {
	var snapshot model.Snapshot
	if err := c.doJSON(ctx, "fetch data", http.MethodGet, dataPath, nil, "", &snapshot); err != nil {
		return model.Snapshot{}, err
	}
	return snapshot, nil
}

// Export downloads the stored data as CSV.
func (c *Client) Export(ctx context.Context) ([]byte, error) {
	return c.download(ctx, "export data", exportPath)
}

// Clear wipes the selected categories on the backend.
func (c *Client) Clear(ctx context.Context, req model.ClearRequest) error {
	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("failed to encode clear request: %w", err)
	}
	return c.doJSON(ctx, "clear data", http.MethodPost, clearPath, bytes.NewReader(body), "application/json", nil)
}

func (c *Client) upload(ctx context.Context, op, path string, file model.SelectedFile, out any) error {
	if file.Handle == nil {
		return fmt.Errorf("%s: %w", op, common.ErrNoFileSelected)
	}

	rc, err := file.Handle.Open()
	if err != nil {
		return &common.TransportError{Operation: op, Err: fmt.Errorf("failed to open %s: %w", file.Name, err)}
	}
	defer rc.Close()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", file.Name)
	if err != nil {
		return &common.TransportError{Operation: op, Err: fmt.Errorf("failed to create form file: %w", err)}
	}
	if _, err := io.Copy(part, rc); err != nil {
		return &common.TransportError{Operation: op, Err: fmt.Errorf("failed to read %s: %w", file.Name, err)}
	}
	if err := mw.Close(); err != nil {
		return &common.TransportError{Operation: op, Err: fmt.Errorf("failed to finish form: %w", err)}
	}

	size := int64(buf.Len())
	var body io.Reader = bytes.NewReader(buf.Bytes())
	if c.wrapUpload != nil {
		body = c.wrapUpload(body, size)
	}

	slog.Debug("Uploading CSV",
		"operation", op,
		"file", file.Name,
		"file_size", file.Size,
		"body_size", size)

	return c.send(ctx, op, http.MethodPost, path, body, size, mw.FormDataContentType(), out)
}

func (c *Client) doJSON(ctx context.Context, op, method, path string, body io.Reader, contentType string, out any) error {
	return c.send(ctx, op, method, path, body, -1, contentType, out)
}

// send issues one request and decodes a 2xx body into out when out is non-nil.
func (c *Client) send(ctx context.Context, op, method, path string, body io.Reader, size int64, contentType string, out any) error {
	data, requestID, err := c.roundTrip(ctx, op, method, path, body, size, contentType)
	if err != nil {
		return err
	}
	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &common.TransportError{
			Operation: op,
			RequestID: requestID,
			Err:       fmt.Errorf("failed to decode response: %w", err),
		}
	}
	return nil
}

func (c *Client) download(ctx context.Context, op, pathAndQuery string) ([]byte, error) {
	data, _, err := c.roundTrip(ctx, op, http.MethodGet, pathAndQuery, nil, -1, "")
	return data, err
}

func (c *Client) roundTrip(ctx context.Context, op, method, path string, body io.Reader, size int64, contentType string) ([]byte, string, error) {
	requestID := c.newRequestID()

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, requestID, fmt.Errorf("failed to create request: %w", err)
	}
	if size >= 0 {
		req.ContentLength = size
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set(RequestIDHeader, requestID)

	slog.Debug("Admin request", "operation", op, "method", method, "path", path, "request_id", requestID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, requestID, &common.TransportError{Operation: op, RequestID: requestID, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, requestID, &common.TransportError{
			Operation: op,
			RequestID: requestID,
			Err:       fmt.Errorf("failed to read response: %w", err),
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var payload errorPayload
		// A non-JSON error body still counts as a rejection, just without a message.
		_ = json.Unmarshal(data, &payload)
		slog.Debug("Admin request rejected",
			"operation", op,
			"status", resp.StatusCode,
			"request_id", requestID,
			"error", payload.Error)
		return nil, requestID, &common.ApplicationError{
			Operation:  op,
			StatusCode: resp.StatusCode,
			Message:    payload.Error,
		}
	}

	return data, requestID, nil
}
