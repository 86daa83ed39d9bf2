package session

import "testing"

func TestClampZoom(t *testing.T) {
	tests := []struct {
		name string
		in   int
		want int
	}{
		{"below minimum", 0, ZoomMin},
		{"negative", -100, ZoomMin},
		{"at minimum", 25, 25},
		{"at maximum", 500, 500},
		{"above maximum", 525, ZoomMax},
		{"on grid", 150, 150},
		{"off grid snaps down", 130, 125},
		{"just under max", 499, 475},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClampZoom(tt.in); got != tt.want {
				t.Errorf("ClampZoom(%d) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestZoomBoundaryDeltas(t *testing.T) {
	st := NewStore()

	// Walk down past the floor.
	st.Propose(Zoom(ZoomMin))
	for i := 0; i < 5; i++ {
		st.Propose(Zoom(st.Snapshot().ZoomPercent - ZoomStep))
	}
	if got := st.Snapshot().ZoomPercent; got != ZoomMin {
		t.Errorf("repeated -25 at floor: zoom = %d, want %d", got, ZoomMin)
	}

	// Walk up past the ceiling.
	st.Propose(Zoom(ZoomMax))
	for i := 0; i < 5; i++ {
		st.Propose(Zoom(st.Snapshot().ZoomPercent + ZoomStep))
	}
	if got := st.Snapshot().ZoomPercent; got != ZoomMax {
		t.Errorf("repeated +25 at ceiling: zoom = %d, want %d", got, ZoomMax)
	}
}

func TestProposeIdempotent(t *testing.T) {
	st := NewStore()
	st.Propose(PageInfo(2, 10))

	// Re-reporting identical facts must not register as a change.
	if c := st.Propose(PageInfo(2, 10)); c.Any() {
		t.Errorf("identical proposal reported change: %+v", c)
	}
	if c := st.Propose(Zoom(ZoomDefault)); c.Any() {
		t.Errorf("identical zoom reported change: %+v", c)
	}
	if c := st.Propose(Connection(StatusDisconnected)); c.Any() {
		t.Errorf("identical connection reported change: %+v", c)
	}
}

func TestProposeCommutative(t *testing.T) {
	// Push and poll reporting the same facts must converge to the same
	// state regardless of arrival order.
	push := PageInfo(3, 20)
	poll := PageInfo(3, 20)

	a := NewStore()
	a.Propose(push)
	a.Propose(poll)

	b := NewStore()
	b.Propose(poll)
	b.Propose(push)

	if a.Snapshot() != b.Snapshot() {
		t.Errorf("order-dependent result: %+v vs %+v", a.Snapshot(), b.Snapshot())
	}
}

func TestProposeBoundsPage(t *testing.T) {
	tests := []struct {
		name     string
		total    int
		page     int
		wantPage int
	}{
		{"no document", 0, 5, 0},
		{"in range", 10, 4, 4},
		{"past end", 10, 12, 9},
		{"negative", 10, -3, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := NewStore()
			st.Propose(PageInfo(tt.page, tt.total))
			if got := st.Snapshot().CurrentPage; got != tt.wantPage {
				t.Errorf("CurrentPage = %d, want %d", got, tt.wantPage)
			}
		})
	}
}

func TestShrinkingTotalReboundsPage(t *testing.T) {
	st := NewStore()
	st.Propose(PageInfo(9, 10))

	// A smaller document must pull the page back in range even when the
	// proposal carries no page field.
	c := st.Propose(Partial{TotalPages: intp(5)})
	s := st.Snapshot()
	if s.CurrentPage != 4 || !c.Page || !c.Pages {
		t.Errorf("after shrink: page=%d changed=%+v, want page=4 with Page and Pages set", s.CurrentPage, c)
	}
}

func TestFirstPushPopulatesEmptyState(t *testing.T) {
	st := NewStore()

	// Wire page_number 1 (1-based) converts to model page 0.
	c := st.Propose(PageInfo(0, 20))
	s := st.Snapshot()
	if s.CurrentPage != 0 || s.TotalPages != 20 {
		t.Errorf("state = (%d, %d), want (0, 20)", s.CurrentPage, s.TotalPages)
	}
	if !c.Pages {
		t.Error("total pages change not reported")
	}
	if c.Page {
		t.Error("page reported changed although it stayed 0")
	}
}

func TestPollDriftCorrection(t *testing.T) {
	st := NewStore()
	st.Propose(PageInfo(2, 10))

	c := st.Propose(PageInfo(4, 10))
	if st.Snapshot().CurrentPage != 4 {
		t.Errorf("CurrentPage = %d, want 4", st.Snapshot().CurrentPage)
	}
	if !c.View() {
		t.Error("drift correction should require a re-render")
	}
	if c.Pages {
		t.Error("unchanged total reported as changed")
	}
}

func TestReset(t *testing.T) {
	st := NewStore()
	st.Propose(PageInfo(4, 10))
	st.Propose(Zoom(200))
	st.Propose(Connection(StatusConnected))
	st.Propose(Control(ControlVoice, PhaseActive))

	st.Reset()
	s := st.Snapshot()
	if s.Loaded() || s.CurrentPage != 0 {
		t.Errorf("document state survived reset: %+v", s)
	}
	if s.ZoomPercent != ZoomDefault {
		t.Errorf("zoom = %d, want default %d", s.ZoomPercent, ZoomDefault)
	}
	if s.ControlPhase != PhaseIdle || s.ControlType != ControlNone {
		t.Errorf("control state survived reset: %+v", s)
	}
	if s.ConnectionStatus != StatusConnected {
		t.Error("reset must not drop channel status")
	}
}

func TestValidPage(t *testing.T) {
	st := NewStore()
	if st.ValidPage(0) {
		t.Error("no document: no page is valid")
	}
	st.Propose(PageInfo(0, 10))
	if !st.ValidPage(9) || st.ValidPage(10) || st.ValidPage(-1) {
		t.Error("ValidPage bounds wrong for 10-page document")
	}
}

func intp(v int) *int { return &v }
