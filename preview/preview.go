// Package preview turns server-rendered HTML into the document shown on a
// preview surface.
//
// Rendering is a pure function from HTML to a [Mutation]: the complete
// replacement content for the surface. Surfaces never merge or patch; each
// Apply overwrites what was there. The surface is a standalone document
// that shares neither scripts nor styles with the terminal UI.
package preview

import (
	"fmt"
	"strings"
)

// Mutation is the full content a surface must hold after an update.
type Mutation struct {
	Document string
}

// Renderer builds surface content from preview HTML.
type Renderer struct {
	fontCSS string
	isolate bool
}

// Option configures a [Renderer].
type Option func(*Renderer)

// WithFontFaces injects css (normally @font-face rules) before the body
// markup of documents that do not already declare their own fonts. Newer
// servers embed fonts themselves, so this is off by default.
func WithFontFaces(css string) Option {
	return func(r *Renderer) { r.fontCSS = css }
}

// WithIsolation adds a Content-Security-Policy that blocks scripts in the
// preview document.
func WithIsolation() Option {
	return func(r *Renderer) { r.isolate = true }
}

// NewRenderer creates a Renderer with the given options.
func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{}
	for _, o := range opts {
		o(r)
	}
	return r
}

// isolationMeta forbids scripts and plugins while allowing inline styles,
// embedded fonts and images.
const isolationMeta = `<meta http-equiv="Content-Security-Policy" content="default-src 'none'; style-src 'unsafe-inline' data: http: https:; font-src data: http: https:; img-src data: http: https:">`

// Render returns the mutation that displays html. With no options the
// document is returned byte for byte.
func (r *Renderer) Render(html string) Mutation {
	doc := html
	if r.fontCSS != "" && !strings.Contains(strings.ToLower(doc), "@font-face") {
		doc = injectHead(doc, "<style>"+sanitizeCSS(r.fontCSS)+"</style>")
	}
	if r.isolate {
		doc = injectPolicy(doc, isolationMeta)
	}
	return Mutation{Document: doc}
}

// FontFaceCSS builds @font-face rules that load each family from
// {base}/fonts/<Family>, e.g. {base}/fonts/Source%20Code%20Pro. The PDF
// backend does not serve that route; base must point at a host that does.
func FontFaceCSS(baseURL string, families []string) string {
	var b strings.Builder
	base := strings.TrimRight(baseURL, "/")
	for _, f := range families {
		fmt.Fprintf(&b, "@font-face{font-family:%q;src:url(%q);}\n", f, base+"/fonts/"+strings.ReplaceAll(f, " ", "%20"))
	}
	return b.String()
}

// injectHead inserts block before </head>, else right after <body ...>,
// else prepends it.
func injectHead(doc, block string) string {
	lower := strings.ToLower(doc)
	if idx := strings.Index(lower, "</head>"); idx != -1 {
		return doc[:idx] + block + doc[idx:]
	}
	if idx := strings.Index(lower, "<body"); idx != -1 {
		if end := strings.Index(doc[idx:], ">"); end != -1 {
			pos := idx + end + 1
			return doc[:pos] + block + doc[pos:]
		}
	}
	return block + doc
}

// injectPolicy inserts meta as the first child of <head> so it applies
// before any head script runs. Documents without a head get one before
// <body>; fragments get meta prepended.
func injectPolicy(doc, meta string) string {
	lower := strings.ToLower(doc)
	if pos := headStart(lower); pos != -1 {
		return doc[:pos] + meta + doc[pos:]
	}
	if idx := strings.Index(lower, "<body"); idx != -1 {
		return doc[:idx] + "<head>" + meta + "</head>" + doc[idx:]
	}
	return meta + doc
}

// headStart returns the offset just past the opening <head> tag, or -1.
// Tags such as <header> do not match.
func headStart(lower string) int {
	for from := 0; ; {
		i := strings.Index(lower[from:], "<head")
		if i == -1 {
			return -1
		}
		i += from + len("<head")
		if i < len(lower) && strings.IndexByte(">/ \t\r\n\f", lower[i]) != -1 {
			if end := strings.IndexByte(lower[i:], '>'); end != -1 {
				return i + end + 1
			}
			return -1
		}
		from = i
	}
}

// sanitizeCSS keeps css from closing its <style> element.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}
