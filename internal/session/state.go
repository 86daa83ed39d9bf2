// Package session owns the single source of truth for the document viewing
// session: current page, page count, zoom, control lifecycle, and connection
// status. Every input source (push event, poll tick, local command) mutates
// it through the same equality-gated Propose call, so a no-op report from any
// channel never triggers a re-render or a network fetch.
package session

// ConnectionStatus reflects the health of the push channel.
type ConnectionStatus string

const (
	StatusDisconnected ConnectionStatus = "disconnected"
	StatusConnected    ConnectionStatus = "connected"
	StatusActive       ConnectionStatus = "active"
)

// ControlType identifies an external input method driving page navigation.
type ControlType string

const (
	ControlNone        ControlType = ""
	ControlEyeGaze     ControlType = "eye_gaze"
	ControlHandGesture ControlType = "hand_gesture"
	ControlVoice       ControlType = "voice"
)

// ControlPhase is the control lifecycle state machine. Starting and Stopping
// are pending sub-states that revert to the prior stable state if the server
// rejects the transition.
type ControlPhase int

const (
	PhaseIdle ControlPhase = iota
	PhaseSelected
	PhaseStarting
	PhaseActive
	PhaseStopping
)

// String returns the phase name for status display.
func (p ControlPhase) String() string {
	switch p {
	case PhaseSelected:
		return "selected"
	case PhaseStarting:
		return "starting"
	case PhaseActive:
		return "active"
	case PhaseStopping:
		return "stopping"
	default:
		return "idle"
	}
}

// Zoom bounds. Every stored zoom value is a multiple of ZoomStep inside
// [ZoomMin, ZoomMax].
const (
	ZoomMin     = 25
	ZoomMax     = 500
	ZoomStep    = 25
	ZoomDefault = 100
)

// State is the full session snapshot. CurrentPage is 0-based;
// TotalPages == 0 means no document is loaded.
type State struct {
	CurrentPage      int
	TotalPages       int
	ZoomPercent      int
	ControlType      ControlType
	ControlPhase     ControlPhase
	ConnectionStatus ConnectionStatus
	ControlMessage   string
}

// Loaded reports whether a document is loaded.
func (s State) Loaded() bool { return s.TotalPages > 0 }

// Store is the exclusive owner of State. All mutations go through Propose;
// callers read via Snapshot and never hold onto page fields beyond a single
// synchronous use. The cooperative event loop guarantees calls never
// interleave, so no locking is needed.
type Store struct {
	s State
}

// NewStore creates an empty session with default zoom.
func NewStore() *Store {
	return &Store{s: State{
		ZoomPercent:      ZoomDefault,
		ConnectionStatus: StatusDisconnected,
	}}
}

// Snapshot returns a copy of the current state.
func (st *Store) Snapshot() State { return st.s }

// Partial is a proposed change. Nil fields are left untouched.
type Partial struct {
	CurrentPage      *int
	TotalPages       *int
	ZoomPercent      *int
	ControlType      *ControlType
	ControlPhase     *ControlPhase
	ConnectionStatus *ConnectionStatus
	ControlMessage   *string
}

// Page proposes a new current page.
func Page(n int) Partial { return Partial{CurrentPage: &n} }

// PageInfo proposes a page position and total together, the shape both the
// push channel and the poll snapshot report.
func PageInfo(current, total int) Partial {
	return Partial{CurrentPage: &current, TotalPages: &total}
}

// Zoom proposes a zoom percentage (clamped on apply).
func Zoom(percent int) Partial { return Partial{ZoomPercent: &percent} }

// Connection proposes a connection status.
func Connection(status ConnectionStatus) Partial {
	return Partial{ConnectionStatus: &status}
}

// Control proposes a control type and phase together.
func Control(t ControlType, p ControlPhase) Partial {
	return Partial{ControlType: &t, ControlPhase: &p}
}

// Phase proposes only a control phase change.
func Phase(p ControlPhase) Partial { return Partial{ControlPhase: &p} }

// Message proposes a control status message.
func Message(msg string) Partial { return Partial{ControlMessage: &msg} }

// Merge combines two partials; fields set in other win.
func (p Partial) Merge(other Partial) Partial {
	if other.CurrentPage != nil {
		p.CurrentPage = other.CurrentPage
	}
	if other.TotalPages != nil {
		p.TotalPages = other.TotalPages
	}
	if other.ZoomPercent != nil {
		p.ZoomPercent = other.ZoomPercent
	}
	if other.ControlType != nil {
		p.ControlType = other.ControlType
	}
	if other.ControlPhase != nil {
		p.ControlPhase = other.ControlPhase
	}
	if other.ConnectionStatus != nil {
		p.ConnectionStatus = other.ConnectionStatus
	}
	if other.ControlMessage != nil {
		p.ControlMessage = other.ControlMessage
	}
	return p
}

// Changed reports which facets of the state a Propose call actually altered.
type Changed struct {
	Page       bool
	Pages      bool
	Zoom       bool
	Control    bool
	Connection bool
	Message    bool
}

// Any reports whether anything changed.
func (c Changed) Any() bool {
	return c.Page || c.Pages || c.Zoom || c.Control || c.Connection || c.Message
}

// View reports whether the visible page surface needs a re-render.
func (c Changed) View() bool { return c.Page || c.Zoom }

// Propose applies a partial change, field by field, only where the proposed
// value differs from the current one. Page values are re-bounded against the
// (possibly also updated) total, and zoom is clamped, before comparison, so
// an out-of-range proposal that clamps to the current value is a no-op.
func (st *Store) Propose(p Partial) Changed {
	var c Changed

	if p.TotalPages != nil {
		total := *p.TotalPages
		if total < 0 {
			total = 0
		}
		if total != st.s.TotalPages {
			st.s.TotalPages = total
			c.Pages = true
		}
	}

	page := st.s.CurrentPage
	if p.CurrentPage != nil {
		page = *p.CurrentPage
	}
	page = boundPage(page, st.s.TotalPages)
	if page != st.s.CurrentPage {
		st.s.CurrentPage = page
		c.Page = true
	}

	if p.ZoomPercent != nil {
		z := ClampZoom(*p.ZoomPercent)
		if z != st.s.ZoomPercent {
			st.s.ZoomPercent = z
			c.Zoom = true
		}
	}

	if p.ControlType != nil && *p.ControlType != st.s.ControlType {
		st.s.ControlType = *p.ControlType
		c.Control = true
	}
	if p.ControlPhase != nil && *p.ControlPhase != st.s.ControlPhase {
		st.s.ControlPhase = *p.ControlPhase
		c.Control = true
	}
	if p.ConnectionStatus != nil && *p.ConnectionStatus != st.s.ConnectionStatus {
		st.s.ConnectionStatus = *p.ConnectionStatus
		c.Connection = true
	}
	if p.ControlMessage != nil && *p.ControlMessage != st.s.ControlMessage {
		st.s.ControlMessage = *p.ControlMessage
		c.Message = true
	}

	return c
}

// Reset tears the session down to empty, keeping only the connection status.
// Called when a new document replaces the current one.
func (st *Store) Reset() {
	conn := st.s.ConnectionStatus
	st.s = State{
		ZoomPercent:      ZoomDefault,
		ConnectionStatus: conn,
	}
}

// ValidPage reports whether n is addressable in the current document.
func (st *Store) ValidPage(n int) bool {
	return st.s.TotalPages > 0 && n >= 0 && n < st.s.TotalPages
}

// ClampZoom forces a zoom percentage onto the step grid inside the bounds.
func ClampZoom(v int) int {
	if v < ZoomMin {
		return ZoomMin
	}
	if v > ZoomMax {
		return ZoomMax
	}
	return v - v%ZoomStep
}

func boundPage(page, total int) int {
	if total <= 0 {
		return 0
	}
	if page < 0 {
		return 0
	}
	if page >= total {
		return total - 1
	}
	return page
}
