package bubbletea

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/mdpdf"
	"github.com/fwojciec/mdpdf/schedule"
)

// FilenameDelay is how long the filename must stay unchanged before it is
// committed to the store.
const FilenameDelay = 300 * time.Millisecond

// filenameDueMsg is delivered when a filename ticket's quiet period ends.
type filenameDueMsg struct {
	ticket *schedule.Ticket
}

// filenameField is a text input whose value reaches the store only after
// typing pauses. Intermediate values are dropped.
type filenameField struct {
	Input   textinput.Model
	pending *schedule.Scheduler[string]
}

func newFilenameField(clock schedule.Clock, initial string) filenameField {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = mdpdf.DefaultFilenameBase
	ti.CharLimit = 120
	ti.SetValue(initial)
	return filenameField{
		Input:   ti,
		pending: schedule.New[string](clock),
	}
}

// update forwards msg to the input and, if the value changed, restarts the
// quiet period with the new value.
func (f filenameField) update(msg tea.Msg) (filenameField, tea.Cmd) {
	before := f.Input.Value()
	var cmd tea.Cmd
	f.Input, cmd = f.Input.Update(msg)
	if f.Input.Value() == before {
		return f, cmd
	}
	t := f.pending.Schedule(f.Input.Value(), FilenameDelay)
	return f, tea.Batch(cmd, waitFilename(t))
}

// settle claims the value for a due ticket. It reports false when the
// ticket was superseded or the store already holds the value.
func (f filenameField) settle(msg filenameDueMsg, current string) (string, bool) {
	v, ok := f.pending.Fire(msg.ticket)
	if !ok || v == current {
		return "", false
	}
	return v, true
}

// sync shows an externally changed store value unless the user has an
// edit waiting to be committed.
func (f filenameField) sync(current string) filenameField {
	if f.pending.Pending() || f.Input.Value() == current {
		return f
	}
	f.Input.SetValue(current)
	return f
}

// stop drops any pending value. Used when the field goes away.
func (f filenameField) stop() {
	f.pending.Cancel()
}

func waitFilename(t *schedule.Ticket) tea.Cmd {
	return func() tea.Msg {
		if !t.Wait() {
			return nil
		}
		return filenameDueMsg{ticket: t}
	}
}
