package goldmark

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/mdpdf"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// minItemWidth keeps deeply nested list items readable in narrow panes.
const minItemWidth = 10

// draft renders one parsed document. Every block renders to a string on
// its own and siblings are joined with a blank line.
type draft struct {
	src []byte

	bold    lipgloss.Style
	italic  lipgloss.Style
	heading lipgloss.Style
	link    lipgloss.Style
	code    lipgloss.Style
	muted   lipgloss.Style
	strike  lipgloss.Style

	chromaStyle string
}

func newDraft(src []byte, theme mdpdf.Theme) *draft {
	chromaStyle := "github"
	if theme.Dark {
		chromaStyle = "monokai"
	}
	return &draft{
		src:         src,
		bold:        lipgloss.NewStyle().Bold(true),
		italic:      lipgloss.NewStyle().Italic(true),
		heading:     lipgloss.NewStyle().Foreground(ansiColor(theme.Heading)).Bold(true),
		link:        lipgloss.NewStyle().Foreground(ansiColor(theme.Accent)).Underline(true),
		code:        lipgloss.NewStyle().Foreground(ansiColor(theme.Accent)).Background(ansiColor(theme.CodeBg)),
		muted:       lipgloss.NewStyle().Foreground(ansiColor(theme.Muted)).Faint(true),
		strike:      lipgloss.NewStyle().Strikethrough(true),
		chromaStyle: chromaStyle,
	}
}

func ansiColor(index int) lipgloss.TerminalColor {
	if index < 0 {
		return lipgloss.NoColor{}
	}
	return lipgloss.Color(strconv.Itoa(index))
}

func (d *draft) render(width int) string {
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	doc := md.Parser().Parse(text.NewReader(d.src))
	return strings.Join(d.blocks(doc, width), "\n\n")
}

func (d *draft) blocks(parent ast.Node, width int) []string {
	var out []string
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		if s, ok := d.block(n, width); ok {
			out = append(out, s)
		}
	}
	return out
}

func (d *draft) block(node ast.Node, width int) (string, bool) {
	switch n := node.(type) {
	case *ast.Paragraph, *ast.TextBlock:
		return wrap(d.inline(n), width), true

	case *ast.Heading:
		marker := strings.Repeat("#", n.Level) + " "
		return wrap(d.heading.Render(marker+d.inline(n)), width), true

	case *ast.FencedCodeBlock:
		lang := string(n.Language(d.src))
		body := d.gutter(d.highlight(d.lines(n), lang))
		if lang != "" {
			body = d.muted.Render(lang) + "\n" + body
		}
		return body, true

	case *ast.CodeBlock:
		return d.gutter(d.lines(n)), true

	case *ast.List:
		return strings.Join(d.list(n, width), "\n"), true

	case *ast.ThematicBreak:
		return d.muted.Render(strings.Repeat("─", max(min(width, 40), 3))), true

	case *ast.Blockquote:
		inner := strings.Join(d.blocks(n, max(width-2, minItemWidth)), "\n\n")
		bar := d.muted.Render("▌") + " "
		lines := strings.Split(inner, "\n")
		for i, l := range lines {
			lines[i] = bar + l
		}
		return strings.Join(lines, "\n"), true

	case *extast.Table:
		return d.table(n), true

	case *ast.HTMLBlock:
		return strings.TrimRight(d.lines(n), "\n"), true
	}

	inner := d.blocks(node, width)
	if len(inner) == 0 {
		return "", false
	}
	return strings.Join(inner, "\n\n"), true
}

// lines returns the raw source lines of a leaf block.
func (d *draft) lines(n ast.Node) string {
	var b strings.Builder
	segs := n.Lines()
	for i := range segs.Len() {
		seg := segs.At(i)
		b.Write(seg.Value(d.src))
	}
	return b.String()
}

// list returns the lines of a list. Item bodies hang under their marker
// and nested lists indent by the marker width.
func (d *draft) list(l *ast.List, width int) []string {
	var out []string
	num := l.Start
	for c := l.FirstChild(); c != nil; c = c.NextSibling() {
		item, ok := c.(*ast.ListItem)
		if !ok {
			continue
		}
		marker := "- "
		if l.IsOrdered() {
			marker = strconv.Itoa(num) + ". "
			num++
		}
		out = append(out, d.item(item, marker, width)...)
	}
	return out
}

func (d *draft) item(item *ast.ListItem, marker string, width int) []string {
	hang := strings.Repeat(" ", len(marker))
	inner := max(width-len(marker), minItemWidth)

	var out []string
	prefix := marker
	for c := item.FirstChild(); c != nil; c = c.NextSibling() {
		var body []string
		if sub, ok := c.(*ast.List); ok {
			body = d.list(sub, inner)
		} else if s, ok := d.block(c, inner); ok {
			body = strings.Split(s, "\n")
		}
		for _, line := range body {
			out = append(out, prefix+line)
			prefix = hang
		}
	}
	if len(out) == 0 {
		out = append(out, strings.TrimRight(marker, " "))
	}
	return out
}

// inline renders the inline children of n as one styled string.
func (d *draft) inline(n ast.Node) string {
	var b strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		d.span(&b, c)
	}
	return b.String()
}

func (d *draft) span(b *strings.Builder, node ast.Node) {
	switch n := node.(type) {
	case *ast.Text:
		b.Write(n.Segment.Value(d.src))
		switch {
		case n.HardLineBreak():
			b.WriteByte('\n')
		case n.SoftLineBreak():
			b.WriteByte(' ')
		}

	case *ast.String:
		b.Write(n.Value)

	case *ast.Emphasis:
		// ***x*** parses as nested emphasis, so only levels 1 and 2 occur.
		style := d.italic
		if n.Level >= 2 {
			style = d.bold
		}
		b.WriteString(style.Render(d.inline(n)))

	case *ast.CodeSpan:
		b.WriteString(d.code.Render(d.inline(n)))

	case *extast.Strikethrough:
		b.WriteString(d.strike.Render(d.inline(n)))

	case *extast.TaskCheckBox:
		if n.IsChecked {
			b.WriteString("[x] ")
		} else {
			b.WriteString("[ ] ")
		}

	case *ast.Link:
		b.WriteString(d.link.Render(d.inline(n)))
		b.WriteString(" " + d.muted.Render("("+string(n.Destination)+")"))

	case *ast.AutoLink:
		b.WriteString(d.link.Render(string(n.URL(d.src))))

	case *ast.Image:
		b.WriteString(d.muted.Render("[image: " + d.inline(n) + "]"))
		b.WriteString(" " + d.muted.Render("("+string(n.Destination)+")"))

	case *ast.RawHTML:
		for i := range n.Segments.Len() {
			seg := n.Segments.At(i)
			b.Write(seg.Value(d.src))
		}

	default:
		b.WriteString(d.inline(n))
	}
}

// highlight returns code with ANSI syntax colors. Unknown languages and
// highlighter failures fall back to the plain text.
func (d *draft) highlight(code, lang string) string {
	if lang == "" {
		return code
	}
	var out bytes.Buffer
	if err := quick.Highlight(&out, code, lang, "terminal16", d.chromaStyle); err != nil {
		return code
	}
	return out.String()
}

// gutter prefixes every line of code with a muted bar. Code is never
// reflowed.
func (d *draft) gutter(code string) string {
	bar := d.muted.Render("│") + " "
	lines := strings.Split(strings.TrimRight(code, "\n"), "\n")
	for i, l := range lines {
		lines[i] = bar + l
	}
	return strings.Join(lines, "\n")
}

// table lays cells out in columns padded to the widest cell. Alignment
// markers are ignored.
func (d *draft) table(t *extast.Table) string {
	var rows [][]string
	var widths []int
	for row := t.FirstChild(); row != nil; row = row.NextSibling() {
		var cells []string
		for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
			c := d.inline(cell)
			if len(rows) == 0 {
				c = d.bold.Render(c)
			}
			i := len(cells)
			if i == len(widths) {
				widths = append(widths, 0)
			}
			widths[i] = max(widths[i], lipgloss.Width(c))
			cells = append(cells, c)
		}
		rows = append(rows, cells)
	}

	sep := d.muted.Render(" │ ")
	var out []string
	for ri, cells := range rows {
		padded := make([]string, len(cells))
		for i, c := range cells {
			padded[i] = c + strings.Repeat(" ", widths[i]-lipgloss.Width(c))
		}
		out = append(out, strings.TrimRight(strings.Join(padded, sep), " "))
		if ri == 0 {
			rule := make([]string, len(widths))
			for i, w := range widths {
				rule[i] = strings.Repeat("─", w)
			}
			out = append(out, d.muted.Render(strings.Join(rule, "─┼─")))
		}
	}
	return strings.Join(out, "\n")
}

func wrap(s string, width int) string {
	return lipgloss.NewStyle().Width(width).Render(s)
}
