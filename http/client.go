package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/fwojciec/mdpdf"
	"github.com/tidwall/gjson"
)

// Interface compliance check.
var _ mdpdf.Service = (*Client)(nil)

// Client implements [mdpdf.Service] over HTTP.
type Client struct {
	baseURL    string
	field      DocumentField
	httpClient *http.Client
	logger     *slog.Logger
}

// Option configures a [Client].
type Option func(*Client)

// WithBaseURL sets the API base URL. Useful for testing with httptest.
func WithBaseURL(url string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(url, "/") }
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithDocumentField selects the request schema. The default is
// [FieldMarkdown].
func WithDocumentField(f DocumentField) Option {
	return func(c *Client) { c.field = f }
}

// WithLogger sets the logger for request tracing.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New creates a [Client] with the given options.
func New(opts ...Option) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		field:      FieldMarkdown,
		httpClient: http.DefaultClient,
		logger:     slog.New(slog.DiscardHandler),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// BaseURL returns the configured API base URL.
func (c *Client) BaseURL() string { return c.baseURL }

// Preview returns the HTML document the service would print for req.
func (c *Client) Preview(ctx context.Context, req mdpdf.Request) (string, error) {
	body, err := c.post(ctx, previewPath, "generate PDF preview", req)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// Generate returns the PDF for req.
func (c *Client) Generate(ctx context.Context, req mdpdf.Request) ([]byte, error) {
	return c.post(ctx, generatePath, "generate PDF", req)
}

// Fonts returns the font families the service accepts, in server order.
func (c *Client) Fonts(ctx context.Context) ([]string, error) {
	const op = "fetch fonts"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+fontsPath, nil)
	if err != nil {
		return nil, transportError(op, err)
	}
	httpReq.Header.Set("Accept", "application/json")

	body, err := c.do(httpReq, op)
	if err != nil {
		return nil, err
	}
	var fonts []string
	if err := json.Unmarshal(body, &fonts); err != nil {
		return nil, &mdpdf.Error{StatusCode: http.StatusOK, Message: fmt.Sprintf("Failed to %s: invalid response", op), Err: err}
	}
	return fonts, nil
}

func (c *Client) post(ctx context.Context, path, op string, req mdpdf.Request) ([]byte, error) {
	payload, err := json.Marshal(c.buildRequestBody(req))
	if err != nil {
		return nil, transportError(op, err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, transportError(op, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	return c.do(httpReq, op)
}

func (c *Client) do(httpReq *http.Request, op string) ([]byte, error) {
	ctx := httpReq.Context()
	start := time.Now()

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.logger.DebugContext(ctx, "request failed", "op", op, "url", httpReq.URL.String(), "err", err)
		return nil, transportError(op, err)
	}
	defer resp.Body.Close()

	c.logger.DebugContext(ctx, "request done",
		"op", op,
		"status", resp.StatusCode,
		"duration", time.Since(start),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, parseHTTPError(resp, op)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, transportError(op, err)
	}
	return body, nil
}

func (c *Client) buildRequestBody(req mdpdf.Request) apiRequest {
	opts := req.Options
	doc := req.Document
	body := apiRequest{
		FontFamily:      opts.FontFamily,
		SizeLevel:       mdpdf.ClampSizeLevel(opts.SizeLevel),
		Spacing:         string(opts.Spacing),
		AutoWidthTables: opts.AutoWidthTables,
		Filename:        mdpdf.SanitizeBase(opts.Filename),
	}
	if body.Spacing == "" {
		body.Spacing = string(mdpdf.SpacingDefault)
	}
	switch c.field {
	case FieldMarkup:
		body.Markup = &doc
	default:
		includeIndex := opts.IncludeIndex
		pageBreaks := opts.PageBreaks()
		body.Markdown = &doc
		body.IncludeIndex = &includeIndex
		body.AddPageBreaks = &pageBreaks
	}
	return body
}

func transportError(op string, err error) *mdpdf.Error {
	return &mdpdf.Error{Message: fmt.Sprintf("Failed to %s: %v", op, err), Err: err}
}

// parseHTTPError turns a non-2xx response into an *mdpdf.Error. The
// server's "detail" wins when present: either a string or a list of
// validation errors with "msg" fields.
func parseHTTPError(resp *http.Response, op string) error {
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return mdpdf.StatusError(op, resp.StatusCode)
	}
	if msg := detailMessage(body); msg != "" {
		return &mdpdf.Error{StatusCode: resp.StatusCode, Message: msg}
	}
	return mdpdf.StatusError(op, resp.StatusCode)
}

func detailMessage(body []byte) string {
	if !gjson.ValidBytes(body) {
		return ""
	}
	detail := gjson.GetBytes(body, "detail")
	switch {
	case detail.Type == gjson.String:
		return detail.String()
	case detail.IsArray():
		var msgs []string
		for _, m := range detail.Get("#.msg").Array() {
			if s := m.String(); s != "" {
				msgs = append(msgs, s)
			}
		}
		return strings.Join(msgs, "; ")
	}
	return ""
}
