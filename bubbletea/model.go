package bubbletea

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/mdpdf"
	"github.com/fwojciec/mdpdf/goldmark"
	"github.com/fwojciec/mdpdf/preview"
	"github.com/fwojciec/mdpdf/schedule"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

var _ tea.Model = Model{}

// Focus identifies the pane that receives keys not claimed by a global
// binding.
type Focus int

const (
	FocusEditor Focus = iota
	FocusDraft
	FocusOptions
	FocusFilename
	focusCount
)

// Layout constants. The options box holds one line per option plus the
// filename line; panes carry a title line inside their border.
const (
	borderSize   = 2
	optionsLines = int(rowCount) + 1
	footerLines  = 2
	paneTitle    = 1
)

// refreshMsg asks the model to rebuild the preview from current state.
type refreshMsg struct{}

// notice is a one-line message in the status bar.
type notice struct {
	text string
	err  bool
	ok   bool
}

// Model is the Bubble Tea model for the mdpdf editor.
type Model struct {
	// Editor holds the markdown document. Exported for test access.
	Editor textarea.Model
	// DraftView shows the document rendered for the terminal.
	DraftView viewport.Model
	// Spinner is the loading indicator shown while a preview is in flight.
	Spinner spinner.Model

	filename filenameField

	service   mdpdf.Service
	store     *mdpdf.Store
	surface   preview.Surface
	renderer  *preview.Renderer
	clock     schedule.Clock
	logger    *slog.Logger
	outDir    string
	open      func(path string) error
	saveDraft func(mdpdf.Draft) error

	previews    *schedule.Scheduler[mdpdf.Request]
	sent        mdpdf.Request
	hasSent     bool
	changed     *bool
	unsubscribe func()

	keys      keyMap
	panelKeys panelKeyMap
	focus     Focus
	row       optionRow

	dark   bool
	theme  mdpdf.Theme
	styles Styles

	state      mdpdf.PreviewState
	result     mdpdf.PreviewResult
	loading    bool
	generating bool
	notice     notice

	width, height int
	ready         bool
}

// New creates a Model from cfg.
func New(cfg Config) Model {
	if cfg.Renderer == nil {
		cfg.Renderer = preview.NewRenderer()
	}
	if cfg.Clock == nil {
		cfg.Clock = schedule.RealClock()
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}
	if cfg.OutDir == "" {
		cfg.OutDir = "."
	}

	ta := textarea.New()
	ta.Placeholder = "Enter some markdown content..."
	ta.ShowLineNumbers = false
	ta.Prompt = ""
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.SetValue(cfg.Document)
	ta.Focus()

	theme := mdpdf.ThemeFor(cfg.Dark)
	styles := NewStyles(theme)
	sp := spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(styles.Accent))

	changed := new(bool)
	unsubscribe := cfg.Store.Subscribe(func(mdpdf.FormattingOptions) { *changed = true })

	return Model{
		Editor:      ta,
		Spinner:     sp,
		filename:    newFilenameField(cfg.Clock, cfg.Store.Filename()),
		service:     cfg.Service,
		store:       cfg.Store,
		surface:     cfg.Surface,
		renderer:    cfg.Renderer,
		clock:       cfg.Clock,
		logger:      cfg.Logger,
		outDir:      cfg.OutDir,
		open:        cfg.Open,
		saveDraft:   cfg.SaveDraft,
		previews:    schedule.New[mdpdf.Request](cfg.Clock),
		changed:     changed,
		unsubscribe: unsubscribe,
		keys:        newKeyMap(),
		panelKeys:   newPanelKeyMap(),
		dark:        cfg.Dark,
		theme:       theme,
		styles:      styles,
	}
}

// State returns where the live preview is in its cycle.
func (m Model) State() mdpdf.PreviewState { return m.state }

// Result returns the last rendered preview.
func (m Model) Result() mdpdf.PreviewResult { return m.result }

// Loading reports whether the loading indicator is shown.
func (m Model) Loading() bool { return m.loading }

// Generating reports whether a PDF request is outstanding.
func (m Model) Generating() bool { return m.generating }

// Focused returns the pane with keyboard focus.
func (m Model) Focused() Focus { return m.focus }

// Dark reports whether dark mode is on.
func (m Model) Dark() bool { return m.dark }

// Notice returns the status bar message and whether it reports a failure.
func (m Model) Notice() (string, bool) { return m.notice.text, m.notice.err }

// FilenameValue returns what the filename field currently shows, which
// may not have reached the store yet.
func (m Model) FilenameValue() string { return m.filename.Input.Value() }

// Draft returns the state worth persisting between runs.
func (m Model) Draft() mdpdf.Draft {
	return mdpdf.Draft{
		Document:  m.Editor.Value(),
		Options:   m.store.Options(),
		Dark:      m.dark,
		UpdatedAt: m.clock.Now(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textarea.Blink,
		fetchFonts(m.service),
		func() tea.Msg { return refreshMsg{} },
	)
}

// Update implements tea.Model. Store changes made while handling msg are
// folded into a single preview reschedule.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m, cmd := m.update(msg)
	if *m.changed {
		*m.changed = false
		m.filename = m.filename.sync(m.store.Filename())
		var pcmd tea.Cmd
		m, pcmd = m.schedulePreview()
		cmd = tea.Batch(cmd, pcmd)
	}
	return m, cmd
}

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowSize(msg), nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case refreshMsg:
		return m.schedulePreview()

	case FontsLoadedMsg:
		if msg.Err != nil {
			m.logger.Warn("fetch fonts", "err", msg.Err)
			return m, nil
		}
		m.store.SetAvailableFonts(msg.Fonts)
		return m, nil

	case filenameDueMsg:
		if v, ok := m.filename.settle(msg, m.store.Filename()); ok {
			m.store.SetFilename(v)
		}
		return m, nil

	case previewDueMsg:
		return m.firePreview(msg)

	case PreviewDoneMsg:
		return m.applyPreview(msg), nil

	case GenerateDoneMsg:
		m.generating = false
		if msg.Err != nil {
			m.notice = notice{text: "Error: " + msg.Err.Error(), err: true}
			return m, nil
		}
		m.notice = notice{text: "Saved " + msg.Path, ok: true}
		return m, nil

	case DraftSavedMsg:
		if msg.Err != nil {
			m.notice = notice{text: "Error: " + msg.Err.Error(), err: true}
			return m, nil
		}
		m.notice = notice{text: "Draft saved", ok: true}
		return m, nil

	case OpenedMsg:
		if msg.Err != nil {
			m.notice = notice{text: "Error: " + msg.Err.Error(), err: true}
			return m, nil
		}
		m.notice = notice{text: "Opened " + msg.Path, ok: true}
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		return m, cmd
	}

	// Cursor blink and other component messages.
	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.Editor, cmd = m.Editor.Update(msg)
	cmds = append(cmds, cmd)
	m.filename.Input, cmd = m.filename.Input.Update(msg)
	cmds = append(cmds, cmd)
	m.DraftView, cmd = m.DraftView.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.filename.stop()
		m.previews.Cancel()
		m.unsubscribe()
		return m, tea.Quit
	case key.Matches(msg, m.keys.NextFocus):
		return m.setFocus((m.focus + 1) % focusCount)
	case key.Matches(msg, m.keys.PrevFocus):
		return m.setFocus((m.focus + focusCount - 1) % focusCount)
	case key.Matches(msg, m.keys.Generate):
		return m.generate()
	case key.Matches(msg, m.keys.Font):
		m.store.SetFontFamily(m.store.Options().NextFont())
		return m, nil
	case key.Matches(msg, m.keys.SizeUp):
		m.store.SetSizeLevel(m.store.Options().SizeLevel + 1)
		return m, nil
	case key.Matches(msg, m.keys.SizeDown):
		m.store.SetSizeLevel(m.store.Options().SizeLevel - 1)
		return m, nil
	case key.Matches(msg, m.keys.Reset):
		m.filename.stop()
		m.store.Reset()
		return m, nil
	case key.Matches(msg, m.keys.Dark):
		m.dark = !m.dark
		m.theme = mdpdf.ThemeFor(m.dark)
		m.styles = NewStyles(m.theme)
		m.Spinner.Style = m.styles.Accent
		return m.refreshDraft(), nil
	case key.Matches(msg, m.keys.Open):
		return m.openSurface()
	case key.Matches(msg, m.keys.Save):
		if m.saveDraft == nil {
			return m, nil
		}
		return m, saveDraft(m.saveDraft, m.Draft())
	}

	switch m.focus {
	case FocusEditor:
		before := m.Editor.Value()
		var cmd tea.Cmd
		m.Editor, cmd = m.Editor.Update(msg)
		if m.Editor.Value() == before {
			return m, cmd
		}
		m = m.refreshDraft()
		var pcmd tea.Cmd
		m, pcmd = m.schedulePreview()
		return m, tea.Batch(cmd, pcmd)
	case FocusDraft:
		var cmd tea.Cmd
		m.DraftView, cmd = m.DraftView.Update(msg)
		return m, cmd
	case FocusOptions:
		return m.handlePanelKey(msg)
	case FocusFilename:
		var cmd tea.Cmd
		m.filename, cmd = m.filename.update(msg)
		return m, cmd
	}
	return m, nil
}

// setFocus moves keyboard focus. The filename field keeps any pending
// value while blurred; only quitting drops it.
func (m Model) setFocus(f Focus) (Model, tea.Cmd) {
	m.focus = f
	m.Editor.Blur()
	m.filename.Input.Blur()
	switch f {
	case FocusEditor:
		return m, m.Editor.Focus()
	case FocusFilename:
		return m, m.filename.Input.Focus()
	}
	return m, nil
}

func (m Model) generate() (Model, tea.Cmd) {
	if m.generating {
		return m, nil
	}
	req := mdpdf.NewRequest(m.Editor.Value(), m.store.Options())
	if err := req.Validate(); errors.Is(err, mdpdf.ErrEmptyDocument) {
		m.notice = notice{text: "Enter some markdown to generate a PDF"}
		return m, nil
	} else if err != nil {
		m.notice = notice{text: "Error: " + err.Error(), err: true}
		return m, nil
	}
	m.generating = true
	m.notice = notice{text: "Generating PDF..."}
	return m, generatePDF(m.service, req, m.outDir, m.clock)
}

func (m Model) openSurface() (Model, tea.Cmd) {
	fs, ok := m.surface.(interface{ Path() string })
	if m.open == nil || !ok {
		m.notice = notice{text: "Preview cannot be opened from here"}
		return m, nil
	}
	path, open := fs.Path(), m.open
	return m, func() tea.Msg {
		return OpenedMsg{Path: path, Err: open(path)}
	}
}

// refreshDraft re-renders the terminal view of the document.
func (m Model) refreshDraft() Model {
	if !m.ready {
		return m
	}
	m.DraftView.SetContent(goldmark.Render(m.Editor.Value(), m.DraftView.Width, m.theme))
	return m
}

func (m Model) handleWindowSize(msg tea.WindowSizeMsg) Model {
	m.width, m.height = msg.Width, msg.Height

	paneH := msg.Height - footerLines - (optionsLines + borderSize) - borderSize - paneTitle
	paneH = max(paneH, 1)
	leftW := max(msg.Width/2-borderSize, 1)
	rightW := max(msg.Width-msg.Width/2-borderSize, 1)

	m.Editor.SetWidth(leftW)
	m.Editor.SetHeight(paneH)
	if !m.ready {
		m.DraftView = viewport.New(rightW, paneH)
		m.ready = true
	} else {
		m.DraftView.Width = rightW
		m.DraftView.Height = paneH
	}
	m.filename.Input.Width = max(msg.Width-borderSize-len("Filename")-4, 1)
	return m.refreshDraft()
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	left := m.pane("Editor", m.Editor.View(), FocusEditor, m.Editor.Width())
	right := m.pane("Draft", m.DraftView.View(), FocusDraft, m.DraftView.Width)
	body := lipgloss.JoinHorizontal(lipgloss.Top, left, right)

	fname := fmt.Sprintf("  %-18s %s", "Filename", m.filename.Input.View())
	if m.focus == FocusFilename {
		fname = m.styles.Selected.Render("›") + fname[1:]
	}
	opts := m.boxStyle(m.focus == FocusOptions || m.focus == FocusFilename).
		Width(max(m.width-borderSize, 1)).
		Render(m.renderPanel() + "\n" + fname)

	var b strings.Builder
	b.WriteString(body)
	b.WriteString("\n")
	b.WriteString(opts)
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	b.WriteString("\n")
	b.WriteString(m.helpLine())
	return b.String()
}

func (m Model) pane(title, content string, f Focus, width int) string {
	return m.boxStyle(m.focus == f).
		Width(width).
		Render(m.styles.Title.Render(title) + "\n" + content)
}

func (m Model) boxStyle(focused bool) lipgloss.Style {
	if focused {
		return m.styles.Focused
	}
	return m.styles.Blurred
}

// statusLine shows preview progress, the latest notice and the document
// length in characters.
func (m Model) statusLine() string {
	prefix := ""
	if m.loading {
		prefix = m.Spinner.View() + " "
	}
	parts := []string{"Preview: " + m.state.String()}
	if m.notice.text != "" {
		parts = append(parts, m.notice.text)
	}
	parts = append(parts, fmt.Sprintf("%d chars", uniseg.GraphemeClusterCount(m.Editor.Value())))

	line := runewidth.Truncate(strings.Join(parts, " · "), max(m.width-lipgloss.Width(prefix), 0), "…")
	return prefix + m.noticeStyle().Render(line)
}

func (m Model) noticeStyle() lipgloss.Style {
	switch {
	case m.notice.err:
		return m.styles.Error
	case m.notice.ok:
		return m.styles.Success
	}
	return m.styles.Muted
}

func (m Model) helpLine() string {
	var parts []string
	for _, b := range m.keys.help() {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return m.styles.Muted.Render(runewidth.Truncate(strings.Join(parts, "  "), m.width, "…"))
}

func fetchFonts(svc mdpdf.Service) tea.Cmd {
	return func() tea.Msg {
		fonts, err := svc.Fonts(context.Background())
		return FontsLoadedMsg{Fonts: fonts, Err: err}
	}
}

// generatePDF requests the PDF and writes it into dir under a timestamped
// name taken when the response arrives.
func generatePDF(svc mdpdf.Service, req mdpdf.Request, dir string, clock schedule.Clock) tea.Cmd {
	return func() tea.Msg {
		data, err := svc.Generate(context.Background(), req)
		if err != nil {
			return GenerateDoneMsg{Err: err}
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return GenerateDoneMsg{Err: fmt.Errorf("create output directory: %w", err)}
		}
		path := filepath.Join(dir, mdpdf.TimestampedFilename(req.Options.Filename, clock.Now()))
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return GenerateDoneMsg{Err: fmt.Errorf("save pdf: %w", err)}
		}
		return GenerateDoneMsg{Path: path}
	}
}

func saveDraft(save func(mdpdf.Draft) error, d mdpdf.Draft) tea.Cmd {
	return func() tea.Msg {
		return DraftSavedMsg{Err: save(d)}
	}
}
