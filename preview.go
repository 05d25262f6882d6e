package mdpdf

// PreviewState is the position of the live preview in its cycle:
// Idle → Scheduled → InFlight → Rendered | Failed.
type PreviewState int

const (
	PreviewIdle      PreviewState = iota // Document empty; nothing pending.
	PreviewScheduled                     // Timer armed with the latest snapshot.
	PreviewInFlight                      // Request dispatched, awaiting response.
	PreviewRendered                      // Last response rendered.
	PreviewFailed                        // Last response failed; old preview kept.
)

func (s PreviewState) String() string {
	switch s {
	case PreviewIdle:
		return "idle"
	case PreviewScheduled:
		return "scheduled"
	case PreviewInFlight:
		return "in flight"
	case PreviewRendered:
		return "rendered"
	case PreviewFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// PreviewResult is the most recent rendered preview. It is replaced
// wholesale on every successful response and never patched.
type PreviewResult struct {
	HTML string
	OK   bool
}
