// Package app is the root Bubble Tea model for pdfnav. Push events, poll
// ticks, HTTP confirmations, and key presses all arrive here as messages and
// are merged into the session store through its equality gate, so the three
// input channels never fight each other and a repeated report never costs a
// render or a fetch.
package app

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dj-ayush/Pdf-Navigation/internal/client"
	"github.com/dj-ayush/Pdf-Navigation/internal/config"
	"github.com/dj-ayush/Pdf-Navigation/internal/render"
	"github.com/dj-ayush/Pdf-Navigation/internal/session"
	"github.com/dj-ayush/Pdf-Navigation/internal/theme"
	"github.com/dj-ayush/Pdf-Navigation/internal/views/controlpanel"
	"github.com/dj-ayush/Pdf-Navigation/internal/views/help"
	pageview "github.com/dj-ayush/Pdf-Navigation/internal/views/page"
	"github.com/dj-ayush/Pdf-Navigation/internal/views/statusbar"
)

// noticeDuration is a var so tests can shorten the expiry timer.
var noticeDuration = 4 * time.Second

// API is the request/response surface of the page rendering server.
// *client.HTTPClient satisfies it.
type API interface {
	render.Fetcher
	PageCount() (int, error)
	CurrentPage() (*client.CurrentPageResponse, error)
	GotoPage(page int) (*client.GotoResponse, error)
	StartControl(controlType string) (*client.ControlResponse, error)
	StopControl() (*client.ControlResponse, error)
	Upload(path string) (*client.UploadResponse, error)
}

// Model is the root Bubble Tea model.
type Model struct {
	ws     *client.WSClient
	api    API
	ctx    context.Context
	cancel context.CancelFunc
	cfg    *config.Config

	keys   KeyMap
	width  int
	height int

	store    *session.Store
	renderer *render.Renderer

	// Poll chain state. pollGen invalidates orphaned timers after a
	// document replacement; pollBusy prevents overlapping snapshot fetches
	// without disturbing the fixed cadence.
	pollGen  int
	pollBusy bool

	// Goto-page entry.
	entering  bool
	pageInput textinput.Model

	// Upload flow.
	picking   bool
	picker    filepicker.Model
	uploading bool

	loading bool // a preload is outstanding
	spin    spinner.Model

	notice    string
	noticeSeq int

	statusBar statusbar.Model
	pageView  pageview.Model
	controls  controlpanel.Model
	helpView  help.Model
	showHelp  bool
}

// New creates the root model.
func New(ws *client.WSClient, api API, cfg *config.Config) Model {
	ctx, cancel := context.WithCancel(context.Background())

	input := textinput.New()
	input.Placeholder = "page"
	input.CharLimit = 6
	input.Width = 8

	store := session.NewStore()
	store.Propose(session.Zoom(cfg.Viewer.DefaultZoom))

	return Model{
		ws:        ws,
		api:       api,
		ctx:       ctx,
		cancel:    cancel,
		cfg:       cfg,
		keys:      DefaultKeyMap(),
		store:     store,
		renderer:  render.New(api),
		pageInput: input,
		spin:      spinner.New(spinner.WithSpinner(spinner.Dot)),
		statusBar: statusbar.New(),
		pageView:  pageview.New(),
		controls:  controlpanel.New(),
		helpView:  help.New(),
	}
}

// --- internal messages ---

type pollTickMsg struct{ gen int }

type pollResultMsg struct {
	gen  int
	resp *client.CurrentPageResponse
	err  error
}

type gotoResultMsg struct {
	page int
	resp *client.GotoResponse
	err  error
}

type controlStartedMsg struct {
	controlType session.ControlType
	resp        *client.ControlResponse
	err         error
}

type controlStoppedMsg struct {
	resp *client.ControlResponse
	err  error
}

type uploadDoneMsg struct {
	resp *client.UploadResponse
	err  error
}

type pageCountMsg struct {
	count int
	err   error
}

type clearNoticeMsg struct{ id int }

// Init connects the push channel and arms the poll timer.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.ws.Listen(m.ctx), m.pollTick())
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.showHelp {
			m.helpView.SetWidth(msg.Width)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case client.WSConnectedMsg:
		status := session.StatusConnected
		if m.store.Snapshot().ControlPhase == session.PhaseActive {
			status = session.StatusActive
		}
		m.store.Propose(session.Connection(status))
		cmds := []tea.Cmd{m.ws.ReadLoop(m.ctx)}
		if !m.store.Snapshot().Loaded() {
			// The server may already hold a document from before this
			// client connected; adopt it.
			api := m.api
			cmds = append(cmds, func() tea.Msg {
				n, err := api.PageCount()
				return pageCountMsg{count: n, err: err}
			})
		}
		return m, tea.Batch(cmds...)

	case pageCountMsg:
		if msg.err != nil || msg.count <= 0 {
			return m, nil
		}
		changed := m.store.Propose(session.Partial{TotalPages: &msg.count})
		return m, m.maybeRender(changed)

	case client.WSDisconnectedMsg:
		m.store.Propose(session.Connection(session.StatusDisconnected))
		return m, m.ws.Listen(m.ctx)

	case client.WSPageUpdateMsg:
		return m.handlePageUpdate(msg.Payload)

	case client.WSControlStatusMsg:
		return m.handleControlStatus(msg.Payload)

	case pollTickMsg:
		return m.handlePollTick(msg)

	case pollResultMsg:
		return m.handlePollResult(msg)

	case render.PreloadedMsg:
		if m.renderer.Superseded(msg) {
			// A newer intent was issued while this preload was in
			// flight; drop the result on arrival.
			return m, nil
		}
		m.loading = false
		if !m.renderer.Commit(msg) {
			return m, m.setNotice(fmt.Sprintf("page %d failed to load", msg.Page+1))
		}
		return m, nil

	case gotoResultMsg:
		return m.handleGotoResult(msg)

	case controlStartedMsg:
		return m.handleControlStarted(msg)

	case controlStoppedMsg:
		return m.handleControlStopped(msg)

	case uploadDoneMsg:
		return m.handleUploadDone(msg)

	case clearNoticeMsg:
		if msg.id == m.noticeSeq {
			m.notice = ""
		}
		return m, nil

	case spinner.TickMsg:
		if !m.loading && !m.uploading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}

	if m.picking {
		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(msg)
		return m, cmd
	}
	return m, nil
}

// --- push channel ---

func (m Model) handlePageUpdate(p client.PageUpdatePayload) (tea.Model, tea.Cmd) {
	cmds := []tea.Cmd{m.ws.ReadLoop(m.ctx)}

	var partial session.Partial
	if p.PageNumber > 0 {
		n := p.PageNumber - 1 // wire is 1-based
		partial.CurrentPage = &n
	}
	if p.TotalPages > 0 {
		t := p.TotalPages
		partial.TotalPages = &t
	}
	changed := m.store.Propose(partial)

	if p.ImageData != "" {
		// The push already carries the rendered page; skip the fetch but
		// keep the stamp discipline so this cannot override a later
		// local navigation.
		data, err := base64.StdEncoding.DecodeString(p.ImageData)
		if err == nil {
			snap := m.store.Snapshot()
			if m.renderer.CommitDirect(snap.CurrentPage, snap.ZoomPercent, data) == nil {
				m.loading = false
				return m, tea.Batch(cmds...)
			}
		}
		// Fall back to a normal preload when the payload is unusable.
		cmds = append(cmds, m.issueRender())
		return m, tea.Batch(cmds...)
	}

	if cmd := m.maybeRender(changed); cmd != nil {
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m Model) handleControlStatus(p client.ControlStatusPayload) (tea.Model, tea.Cmd) {
	partial := session.Message(p.Message)
	if p.Active {
		partial = partial.
			Merge(session.Control(session.ControlType(p.Type), session.PhaseActive)).
			Merge(session.Connection(session.StatusActive))
	} else {
		snap := m.store.Snapshot()
		phase := session.PhaseSelected
		if snap.ControlType == session.ControlNone {
			phase = session.PhaseIdle
		}
		partial = partial.Merge(session.Phase(phase))
		if snap.ConnectionStatus == session.StatusActive {
			partial = partial.Merge(session.Connection(session.StatusConnected))
		}
	}
	m.store.Propose(partial)
	return m, m.ws.ReadLoop(m.ctx)
}

// --- poll reconciler ---

func (m *Model) pollTick() tea.Cmd {
	gen := m.pollGen
	return tea.Tick(m.cfg.Viewer.PollInterval, func(time.Time) tea.Msg {
		return pollTickMsg{gen: gen}
	})
}

func (m Model) handlePollTick(msg pollTickMsg) (tea.Model, tea.Cmd) {
	if msg.gen != m.pollGen {
		// Orphaned timer from a replaced document; let it die.
		return m, nil
	}
	next := m.pollTick()

	snap := m.store.Snapshot()
	if !snap.Loaded() || m.pollBusy || m.viewHidden() {
		return m, next
	}

	m.pollBusy = true
	gen := m.pollGen
	api := m.api
	fetch := func() tea.Msg {
		resp, err := api.CurrentPage()
		return pollResultMsg{gen: gen, resp: resp, err: err}
	}
	return m, tea.Batch(fetch, next)
}

func (m Model) handlePollResult(msg pollResultMsg) (tea.Model, tea.Cmd) {
	m.pollBusy = false
	if msg.gen != m.pollGen {
		return m, nil
	}
	if msg.err != nil {
		// Swallowed by design: the next tick is already armed and the
		// fixed cadence is the backstop guarantee.
		return m, nil
	}
	changed := m.store.Propose(session.PageInfo(msg.resp.CurrentPage, msg.resp.TotalPages))
	return m, m.maybeRender(changed)
}

func (m Model) viewHidden() bool {
	return m.picking || m.showHelp
}

// --- command dispatcher ---

// navigate moves by delta pages. Out-of-range steps are dropped silently;
// the page only changes on server confirmation.
func (m *Model) navigate(delta int) tea.Cmd {
	target := m.store.Snapshot().CurrentPage + delta
	if !m.store.ValidPage(target) {
		return nil
	}
	return m.issueGoto(target)
}

// gotoPage jumps to an explicit 0-based page, rejecting invalid targets
// before any request is sent.
func (m *Model) gotoPage(target int) tea.Cmd {
	if !m.store.ValidPage(target) {
		return m.setNotice(fmt.Sprintf("page %d is out of range", target+1))
	}
	return m.issueGoto(target)
}

func (m *Model) issueGoto(target int) tea.Cmd {
	api := m.api
	return func() tea.Msg {
		resp, err := api.GotoPage(target)
		return gotoResultMsg{page: target, resp: resp, err: err}
	}
}

func (m Model) handleGotoResult(msg gotoResultMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		return m, m.setNotice("navigation failed, try again")
	}
	if !msg.resp.Success {
		return m, m.setNotice(fmt.Sprintf("server rejected page %d", msg.page+1))
	}
	changed := m.store.Propose(session.Page(msg.page))
	return m, m.maybeRender(changed)
}

// setZoom applies a local zoom delta. No server round-trip.
func (m *Model) setZoom(delta int) tea.Cmd {
	return m.setZoomTo(m.store.Snapshot().ZoomPercent + delta)
}

func (m *Model) setZoomTo(v int) tea.Cmd {
	changed := m.store.Propose(session.Zoom(v))
	return m.maybeRender(changed)
}

// fitToScreen derives the zoom that fills the page surface width, based on
// the committed frame's pixel size at its known zoom.
func (m *Model) fitToScreen() tea.Cmd {
	f := m.renderer.Frame()
	if f == nil || f.Img == nil {
		return nil
	}
	srcW := f.Img.Bounds().Dx()
	if srcW == 0 || f.Zoom == 0 {
		return nil
	}
	// One raster cell is one source pixel across.
	target := m.width - 4
	if target < 10 {
		target = 10
	}
	return m.setZoomTo(f.Zoom * target / srcW)
}

func (m *Model) selectControl(t session.ControlType) tea.Cmd {
	snap := m.store.Snapshot()
	switch snap.ControlPhase {
	case session.PhaseStarting, session.PhaseActive, session.PhaseStopping:
		return m.setNotice("stop the active control first")
	}
	m.store.Propose(session.Control(t, session.PhaseSelected))
	return nil
}

// startControl begins the selected control method. Both preconditions are
// checked locally; no request is sent when they fail.
func (m *Model) startControl() tea.Cmd {
	snap := m.store.Snapshot()
	if snap.ControlType == session.ControlNone {
		return m.setNotice("select a control method first")
	}
	if !snap.Loaded() {
		return m.setNotice("upload a document first")
	}
	m.store.Propose(session.Phase(session.PhaseStarting))
	api, ct := m.api, snap.ControlType
	return func() tea.Msg {
		resp, err := api.StartControl(string(ct))
		return controlStartedMsg{controlType: ct, resp: resp, err: err}
	}
}

func (m *Model) stopControl() tea.Cmd {
	m.store.Propose(session.Phase(session.PhaseStopping))
	api := m.api
	return func() tea.Msg {
		resp, err := api.StopControl()
		return controlStoppedMsg{resp: resp, err: err}
	}
}

func (m Model) handleControlStarted(msg controlStartedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil || !msg.resp.Success {
		// Revert the pending sub-state to the prior stable state.
		m.store.Propose(session.Phase(session.PhaseSelected))
		reason := "control failed to start"
		if msg.err == nil && msg.resp.Error != "" {
			reason = msg.resp.Error
		}
		return m, m.setNotice(reason)
	}
	m.store.Propose(session.Phase(session.PhaseActive).
		Merge(session.Connection(session.StatusActive)).
		Merge(session.Message(msg.resp.Message)))
	return m, nil
}

func (m Model) handleControlStopped(msg controlStoppedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil || !msg.resp.Success {
		m.store.Propose(session.Phase(session.PhaseActive))
		return m, m.setNotice("control failed to stop")
	}
	m.store.Propose(session.Phase(session.PhaseSelected).
		Merge(session.Connection(session.StatusConnected)).
		Merge(session.Message(msg.resp.Message)))
	return m, nil
}

// --- upload flow ---

func (m *Model) openPicker() tea.Cmd {
	m.picker = filepicker.New()
	m.picker.AllowedTypes = []string{".pdf"}
	if home, err := os.UserHomeDir(); err == nil {
		m.picker.CurrentDirectory = home
	}
	m.picking = true
	return m.picker.Init()
}

// startUpload validates the file size locally; oversized files never reach
// the network.
func (m *Model) startUpload(path string) tea.Cmd {
	info, err := os.Stat(path)
	if err != nil {
		return m.setNotice("cannot read selected file")
	}
	if info.Size() > m.cfg.Viewer.MaxUploadBytes {
		return m.setNotice(fmt.Sprintf("file exceeds the %d MiB limit",
			m.cfg.Viewer.MaxUploadBytes>>20))
	}
	m.uploading = true
	api := m.api
	return tea.Batch(m.spin.Tick, func() tea.Msg {
		resp, err := api.Upload(path)
		return uploadDoneMsg{resp: resp, err: err}
	})
}

func (m Model) handleUploadDone(msg uploadDoneMsg) (tea.Model, tea.Cmd) {
	m.uploading = false
	if msg.err != nil {
		return m, m.setNotice("upload failed, try again")
	}
	if !msg.resp.Success {
		reason := msg.resp.Error
		if reason == "" {
			reason = "upload rejected"
		}
		return m, m.setNotice(reason)
	}

	// The new document replaces the session: reset state, invalidate
	// in-flight preloads, and retire the old poll chain.
	m.store.Reset()
	m.renderer.Reset()
	m.pollGen++
	m.pollBusy = false
	m.store.Propose(session.PageInfo(0, msg.resp.TotalPages))

	return m, tea.Batch(m.pollTick(), m.issueRender())
}

// --- rendering helpers ---

// maybeRender issues a preload only when the store reported a page or zoom
// change. This is the anti-redundancy property: equal facts cost nothing.
// A document appearing on a blank surface renders once even though the page
// index itself did not move.
func (m *Model) maybeRender(c session.Changed) tea.Cmd {
	firstFrame := c.Pages && m.renderer.Frame() == nil
	if !c.View() && !firstFrame {
		return nil
	}
	return m.issueRender()
}

func (m *Model) issueRender() tea.Cmd {
	snap := m.store.Snapshot()
	if !snap.Loaded() {
		return nil
	}
	m.loading = true
	return tea.Batch(
		m.renderer.Issue(snap.CurrentPage, snap.ZoomPercent),
		m.spin.Tick,
	)
}

func (m *Model) setNotice(text string) tea.Cmd {
	m.notice = text
	m.noticeSeq++
	id := m.noticeSeq
	return tea.Tick(noticeDuration, func(time.Time) tea.Msg {
		return clearNoticeMsg{id: id}
	})
}

// --- key handling ---

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		if key.Matches(msg, m.keys.Escape) || key.Matches(msg, m.keys.Help) || key.Matches(msg, m.keys.Quit) {
			m.showHelp = false
		}
		return m, nil
	}

	if m.picking {
		if key.Matches(msg, m.keys.Escape) {
			m.picking = false
			return m, nil
		}
		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(msg)
		if ok, path := m.picker.DidSelectFile(msg); ok {
			m.picking = false
			return m, m.startUpload(path)
		}
		if ok, _ := m.picker.DidSelectDisabledFile(msg); ok {
			return m, tea.Batch(cmd, m.setNotice("only .pdf files can be uploaded"))
		}
		return m, cmd
	}

	if m.entering {
		switch {
		case key.Matches(msg, m.keys.Escape):
			m.entering = false
			m.pageInput.Blur()
			return m, nil
		case key.Matches(msg, m.keys.Enter):
			m.entering = false
			m.pageInput.Blur()
			n, err := strconv.Atoi(m.pageInput.Value())
			if err != nil {
				return m, m.setNotice("enter a page number")
			}
			return m, m.gotoPage(n - 1) // entry is 1-based
		}
		var cmd tea.Cmd
		m.pageInput, cmd = m.pageInput.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.cancel()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Prev):
		return m, m.navigate(-1)

	case key.Matches(msg, m.keys.Next):
		return m, m.navigate(1)

	case key.Matches(msg, m.keys.Goto):
		if !m.store.Snapshot().Loaded() {
			return m, m.setNotice("no document loaded")
		}
		m.entering = true
		m.pageInput.SetValue(strconv.Itoa(m.store.Snapshot().CurrentPage + 1))
		m.pageInput.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.ZoomIn):
		return m, m.setZoom(session.ZoomStep)

	case key.Matches(msg, m.keys.ZoomOut):
		return m, m.setZoom(-session.ZoomStep)

	case key.Matches(msg, m.keys.Fit):
		return m, m.fitToScreen()

	case key.Matches(msg, m.keys.Refresh):
		gen := m.pollGen
		api := m.api
		poll := func() tea.Msg {
			resp, err := api.CurrentPage()
			return pollResultMsg{gen: gen, resp: resp, err: err}
		}
		return m, tea.Batch(m.issueRender(), poll)

	case key.Matches(msg, m.keys.Upload):
		return m, m.openPicker()

	case key.Matches(msg, m.keys.Control1):
		return m, m.selectControl(session.ControlEyeGaze)

	case key.Matches(msg, m.keys.Control2):
		return m, m.selectControl(session.ControlHandGesture)

	case key.Matches(msg, m.keys.Control3):
		return m, m.selectControl(session.ControlVoice)

	case key.Matches(msg, m.keys.StartStop):
		switch m.store.Snapshot().ControlPhase {
		case session.PhaseActive:
			return m, m.stopControl()
		case session.PhaseStarting, session.PhaseStopping:
			return m, nil // confirmation pending
		default:
			return m, m.startControl()
		}

	case key.Matches(msg, m.keys.Help):
		m.helpView.SetWidth(m.width)
		m.showHelp = true
		return m, nil
	}

	return m, nil
}

// View renders the full TUI.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}
	snap := m.store.Snapshot()

	if m.showHelp {
		return m.helpView.View()
	}

	if m.picking {
		header := theme.StyleHeader.Render("Select a PDF to upload (esc to cancel)")
		return lipgloss.JoinVertical(lipgloss.Left, header, m.picker.View())
	}

	m.statusBar.Width = m.width
	m.statusBar.State = snap
	m.statusBar.Notice = m.notice

	m.pageView.Width = m.width
	m.pageView.Height = m.height - 7
	m.pageView.Frame = m.renderer.Frame()
	m.pageView.TotalPages = snap.TotalPages
	m.pageView.Loading = m.loading || m.uploading
	m.pageView.Spinner = m.spin.View()

	m.controls.Width = m.width
	m.controls.State = snap

	footer := theme.StyleDimmed.Render("  h/l:page  g:goto  +/-:zoom  f:fit  u:upload  s:control  ?:help  q:quit")
	if m.entering {
		footer = "  go to page: " + m.pageInput.View()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.statusBar.View(),
		m.pageView.View(),
		m.controls.View(),
		footer,
	)
}
