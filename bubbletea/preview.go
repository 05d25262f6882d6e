package bubbletea

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/mdpdf"
	"github.com/fwojciec/mdpdf/schedule"
)

// PreviewDelay is the quiet window before a preview request is sent. Every
// change inside the window restarts it with the newest snapshot.
const PreviewDelay = 2000 * time.Millisecond

// previewDueMsg is delivered when a preview ticket's window ends.
type previewDueMsg struct {
	ticket *schedule.Ticket
}

// schedulePreview reacts to a document or option change. An empty
// document clears the surface at once and sends nothing.
func (m Model) schedulePreview() (Model, tea.Cmd) {
	req := mdpdf.NewRequest(m.Editor.Value(), m.store.Options())
	if req.Empty() {
		m.previews.Cancel()
		m.loading = false
		m.state = mdpdf.PreviewIdle
		m.result = mdpdf.PreviewResult{}
		m.hasSent = false
		if err := m.surface.Clear(); err != nil {
			m.logger.Error("clear preview", "err", err)
		}
		return m, nil
	}
	if m.inert(req) {
		return m, nil
	}
	t := m.previews.Schedule(req, PreviewDelay)
	m.state = mdpdf.PreviewScheduled
	return m, waitPreview(t)
}

// inert reports whether req would render the same preview as the pending
// snapshot or, with nothing pending, the last one sent.
func (m Model) inert(req mdpdf.Request) bool {
	if pending, ok := m.previews.Value(); ok {
		return pending.SamePreview(req)
	}
	return m.hasSent && m.sent.SamePreview(req)
}

// firePreview dispatches the snapshot held by a due ticket. Stale tickets
// are ignored. Requests already in flight are left alone.
func (m Model) firePreview(msg previewDueMsg) (Model, tea.Cmd) {
	req, ok := m.previews.Fire(msg.ticket)
	if !ok {
		return m, nil
	}
	m.state = mdpdf.PreviewInFlight
	m.sent, m.hasSent = req, true
	m.logger.Debug("preview dispatched", "bytes", len(req.Document))
	cmds := []tea.Cmd{fetchPreview(m.service, req)}
	if !m.loading {
		m.loading = true
		cmds = append(cmds, m.Spinner.Tick)
	}
	return m, tea.Batch(cmds...)
}

// applyPreview handles a response. Responses are applied in the order
// they arrive. Failures are logged and leave the previous preview up.
func (m Model) applyPreview(msg PreviewDoneMsg) Model {
	m.loading = false
	if msg.Err != nil {
		m.logger.Error("preview failed", "err", msg.Err)
		return m.settleState(mdpdf.PreviewFailed)
	}
	if err := m.surface.Apply(m.renderer.Render(msg.HTML)); err != nil {
		m.logger.Error("write preview", "err", err)
		return m.settleState(mdpdf.PreviewFailed)
	}
	m.result = mdpdf.PreviewResult{HTML: msg.HTML, OK: true}
	return m.settleState(mdpdf.PreviewRendered)
}

// settleState records the outcome of a response unless a newer snapshot
// is already scheduled.
func (m Model) settleState(s mdpdf.PreviewState) Model {
	if !m.previews.Pending() {
		m.state = s
	}
	return m
}

func waitPreview(t *schedule.Ticket) tea.Cmd {
	return func() tea.Msg {
		if !t.Wait() {
			return nil
		}
		return previewDueMsg{ticket: t}
	}
}

func fetchPreview(svc mdpdf.Service, req mdpdf.Request) tea.Cmd {
	return func() tea.Msg {
		html, err := svc.Preview(context.Background(), req)
		return PreviewDoneMsg{HTML: html, Err: err}
	}
}
