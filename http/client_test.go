package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fwojciec/mdpdf"
	mdpdfhttp "github.com/fwojciec/mdpdf/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Preview_RequestFormat(t *testing.T) {
	t.Parallel()

	var captured []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured, _ = io.ReadAll(r.Body)

		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/generate-pdf-preview", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte("<html><body><h1>Hi</h1></body></html>"))
	}))
	defer srv.Close()

	client := mdpdfhttp.New(mdpdfhttp.WithBaseURL(srv.URL))
	html, err := client.Preview(context.Background(), mdpdf.NewRequest("# Hi", mdpdf.DefaultOptions()))
	require.NoError(t, err)
	assert.Equal(t, "<html><body><h1>Hi</h1></body></html>", html)

	var body map[string]any
	require.NoError(t, json.Unmarshal(captured, &body))

	assert.Equal(t, "# Hi", body["markdown"])
	assert.Equal(t, "Inter", body["font_family"])
	assert.Equal(t, float64(3), body["size_level"])
	assert.Equal(t, "default", body["spacing"])
	assert.Equal(t, true, body["auto_width_tables"])
	assert.Equal(t, false, body["include_index"])
	assert.Equal(t, false, body["add_page_breaks"])
	assert.NotContains(t, body, "markup")
	assert.NotContains(t, body, "filename", "empty filename is omitted")
}

func TestClient_Preview_ByteForByte(t *testing.T) {
	t.Parallel()

	const doc = "<!DOCTYPE html>\n<html><head><style>@font-face{font-family:Inter}</style></head>\r\n<body>é</body></html>\n"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(doc))
	}))
	defer srv.Close()

	client := mdpdfhttp.New(mdpdfhttp.WithBaseURL(srv.URL + "/"))
	html, err := client.Preview(context.Background(), mdpdf.NewRequest("x", mdpdf.DefaultOptions()))
	require.NoError(t, err)
	assert.Equal(t, doc, html)
}

func TestClient_MarkupSchema(t *testing.T) {
	t.Parallel()

	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(data, &body)
		_, _ = w.Write([]byte("<html></html>"))
	}))
	defer srv.Close()

	opts := mdpdf.DefaultOptions()
	opts.IncludeIndex = true
	client := mdpdfhttp.New(
		mdpdfhttp.WithBaseURL(srv.URL),
		mdpdfhttp.WithDocumentField(mdpdfhttp.FieldMarkup),
	)
	_, err := client.Preview(context.Background(), mdpdf.NewRequest("# Hi", opts))
	require.NoError(t, err)

	assert.Equal(t, "# Hi", body["markup"])
	assert.NotContains(t, body, "markdown")
	assert.NotContains(t, body, "include_index")
	assert.NotContains(t, body, "add_page_breaks")
}

func TestClient_Generate(t *testing.T) {
	t.Parallel()

	pdf := []byte("%PDF-1.7\n\x00\x01binary")
	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/generate-pdf", r.URL.Path)
		data, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(data, &body)
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write(pdf)
	}))
	defer srv.Close()

	opts := mdpdf.DefaultOptions()
	opts.Filename = "report"
	opts.SizeLevel = 5
	opts.Spacing = mdpdf.SpacingCompact
	opts.AutoWidthTables = false
	opts.IncludeIndex = true
	opts.AddPageBreaks = true

	client := mdpdfhttp.New(mdpdfhttp.WithBaseURL(srv.URL))
	got, err := client.Generate(context.Background(), mdpdf.NewRequest("# Report", opts))
	require.NoError(t, err)
	assert.Equal(t, pdf, got)

	assert.Equal(t, "report", body["filename"])
	assert.Equal(t, float64(5), body["size_level"])
	assert.Equal(t, "compact", body["spacing"])
	assert.Equal(t, false, body["auto_width_tables"])
	assert.Equal(t, true, body["include_index"])
	assert.Equal(t, true, body["add_page_breaks"])
}

func TestClient_PageBreaksInertWithoutIndex(t *testing.T) {
	t.Parallel()

	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(data, &body)
		_, _ = w.Write([]byte("%PDF"))
	}))
	defer srv.Close()

	opts := mdpdf.DefaultOptions()
	opts.AddPageBreaks = true

	client := mdpdfhttp.New(mdpdfhttp.WithBaseURL(srv.URL))
	_, err := client.Generate(context.Background(), mdpdf.NewRequest("x", opts))
	require.NoError(t, err)

	assert.Equal(t, false, body["add_page_breaks"])
}

func TestClient_Fonts(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/fonts", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`["Roboto","Inter","Lora"]`))
	}))
	defer srv.Close()

	client := mdpdfhttp.New(mdpdfhttp.WithBaseURL(srv.URL))
	fonts, err := client.Fonts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Roboto", "Inter", "Lora"}, fonts)
}

func TestClient_Fonts_InvalidBody(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"fonts":"nope"}`))
	}))
	defer srv.Close()

	client := mdpdfhttp.New(mdpdfhttp.WithBaseURL(srv.URL))
	_, err := client.Fonts(context.Background())

	var apiErr *mdpdf.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Failed to fetch fonts: invalid response", apiErr.Message)
}

func TestClient_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		status  int
		body    string
		call    func(*mdpdfhttp.Client) error
		wantMsg string
	}{
		{
			name:   "detail string",
			status: http.StatusInternalServerError,
			body:   `{"detail":"Failed to generate PDF preview"}`,
			call: func(c *mdpdfhttp.Client) error {
				_, err := c.Preview(context.Background(), mdpdf.NewRequest("x", mdpdf.DefaultOptions()))
				return err
			},
			wantMsg: "Failed to generate PDF preview",
		},
		{
			name:   "custom detail",
			status: http.StatusBadRequest,
			body:   `{"detail":"X"}`,
			call: func(c *mdpdfhttp.Client) error {
				_, err := c.Generate(context.Background(), mdpdf.NewRequest("x", mdpdf.DefaultOptions()))
				return err
			},
			wantMsg: "X",
		},
		{
			name:   "validation detail list",
			status: http.StatusUnprocessableEntity,
			body:   `{"detail":[{"loc":["body","markdown"],"msg":"Markdown cannot be empty"},{"loc":["body","font_family"],"msg":"Unsupported font family"}]}`,
			call: func(c *mdpdfhttp.Client) error {
				_, err := c.Generate(context.Background(), mdpdf.NewRequest("x", mdpdf.DefaultOptions()))
				return err
			},
			wantMsg: "Markdown cannot be empty; Unsupported font family",
		},
		{
			name:   "unparseable body on generate",
			status: http.StatusBadGateway,
			body:   `<html>bad gateway</html>`,
			call: func(c *mdpdfhttp.Client) error {
				_, err := c.Generate(context.Background(), mdpdf.NewRequest("x", mdpdf.DefaultOptions()))
				return err
			},
			wantMsg: "Failed to generate PDF: 502",
		},
		{
			name:   "empty body on preview",
			status: http.StatusServiceUnavailable,
			body:   ``,
			call: func(c *mdpdfhttp.Client) error {
				_, err := c.Preview(context.Background(), mdpdf.NewRequest("x", mdpdf.DefaultOptions()))
				return err
			},
			wantMsg: "Failed to generate PDF preview: 503",
		},
		{
			name:   "json without detail on fonts",
			status: http.StatusNotFound,
			body:   `{"error":"nope"}`,
			call: func(c *mdpdfhttp.Client) error {
				_, err := c.Fonts(context.Background())
				return err
			},
			wantMsg: "Failed to fetch fonts: 404",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			err := tt.call(mdpdfhttp.New(mdpdfhttp.WithBaseURL(srv.URL)))

			var apiErr *mdpdf.Error
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.wantMsg, apiErr.Error())
			assert.Equal(t, tt.status, apiErr.StatusCode)
		})
	}
}

func TestClient_TransportError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	client := mdpdfhttp.New(mdpdfhttp.WithBaseURL(url))
	_, err := client.Preview(context.Background(), mdpdf.NewRequest("x", mdpdf.DefaultOptions()))

	var apiErr *mdpdf.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Zero(t, apiErr.StatusCode)
	assert.Contains(t, apiErr.Error(), "Failed to generate PDF preview")
	assert.NotNil(t, errors.Unwrap(err))
}

func TestClient_ContextCancelled(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<html></html>"))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := mdpdfhttp.New(mdpdfhttp.WithBaseURL(srv.URL))
	_, err := client.Preview(ctx, mdpdf.NewRequest("x", mdpdf.DefaultOptions()))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNew_Defaults(t *testing.T) {
	t.Parallel()

	client := mdpdfhttp.New()
	assert.Equal(t, mdpdfhttp.DefaultBaseURL, client.BaseURL())
}
