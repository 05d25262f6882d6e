package bubbletea_test

import (
	"context"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/mdpdf"
	bt "github.com/fwojciec/mdpdf/bubbletea"
	"github.com/fwojciec/mdpdf/mock"
	"github.com/fwojciec/mdpdf/preview"
	"github.com/stretchr/testify/require"
)

var start = time.Date(2024, 5, 6, 7, 8, 0, 0, time.Local)

// harness wires a Model to in-memory collaborators and records every
// preview request the service receives.
type harness struct {
	svc     *mock.Service
	store   *mdpdf.Store
	clock   *mock.Clock
	surface *preview.MemorySurface

	mu       sync.Mutex
	previews []mdpdf.Request
}

func newHarness() *harness {
	h := &harness{
		store:   mdpdf.NewStore(mdpdf.DefaultOptions()),
		clock:   mock.NewClock(start),
		surface: &preview.MemorySurface{},
	}
	h.svc = &mock.Service{
		PreviewFn: func(_ context.Context, req mdpdf.Request) (string, error) {
			h.mu.Lock()
			defer h.mu.Unlock()
			h.previews = append(h.previews, req)
			return "<html><body>" + req.Document + "</body></html>", nil
		},
		GenerateFn: func(_ context.Context, _ mdpdf.Request) ([]byte, error) {
			return []byte("%PDF-1.7"), nil
		},
		FontsFn: func(_ context.Context) ([]string, error) {
			return mdpdf.DefaultOptions().AvailableFonts, nil
		},
	}
	return h
}

func (h *harness) config() bt.Config {
	return bt.Config{
		Service: h.svc,
		Store:   h.store,
		Surface: h.surface,
		Clock:   h.clock,
	}
}

func (h *harness) requests() []mdpdf.Request {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]mdpdf.Request(nil), h.previews...)
}

// initModel creates a model from cfg and sends a WindowSizeMsg to
// initialize the panes.
func initModel(t *testing.T, cfg bt.Config) bt.Model {
	t.Helper()
	m, _ := updateModel(t, bt.New(cfg), tea.WindowSizeMsg{Width: 100, Height: 40})
	return m
}

// updateModel sends a message and returns the updated Model.
func updateModel(t *testing.T, m bt.Model, msg tea.Msg) (bt.Model, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(msg)
	model, ok := updated.(bt.Model)
	require.True(t, ok)
	return model, cmd
}

// press sends a special key.
func press(t *testing.T, m bt.Model, k tea.KeyType) (bt.Model, tea.Cmd) {
	t.Helper()
	return updateModel(t, m, tea.KeyMsg{Type: k})
}

// typeText sends s one rune at a time and batches the resulting commands.
func typeText(t *testing.T, m bt.Model, s string) (bt.Model, tea.Cmd) {
	t.Helper()
	var cmds []tea.Cmd
	for _, r := range s {
		var cmd tea.Cmd
		m, cmd = updateModel(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

// runner executes commands in the background the way a tea.Program does
// and queues their messages for the test to feed back into the model.
type runner struct {
	t    *testing.T
	msgs chan tea.Msg
}

func newRunner(t *testing.T) *runner {
	return &runner{t: t, msgs: make(chan tea.Msg, 256)}
}

func (r *runner) run(cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	go func() {
		msg := cmd()
		if batch, ok := msg.(tea.BatchMsg); ok {
			for _, c := range batch {
				r.run(c)
			}
			return
		}
		if msg != nil {
			r.msgs <- msg
		}
	}()
}

// await feeds queued messages into m until cond holds.
func (r *runner) await(m bt.Model, cond func(bt.Model) bool) bt.Model {
	r.t.Helper()
	deadline := time.After(3 * time.Second)
	for !cond(m) {
		select {
		case msg := <-r.msgs:
			var cmd tea.Cmd
			m, cmd = updateModel(r.t, m, msg)
			r.run(cmd)
		case <-deadline:
			require.FailNow(r.t, "condition not met before deadline")
		}
	}
	return m
}

// idle feeds whatever messages arrive within d into m.
func (r *runner) idle(m bt.Model, d time.Duration) bt.Model {
	r.t.Helper()
	timeout := time.After(d)
	for {
		select {
		case msg := <-r.msgs:
			var cmd tea.Cmd
			m, cmd = updateModel(r.t, m, msg)
			r.run(cmd)
		case <-timeout:
			return m
		}
	}
}
