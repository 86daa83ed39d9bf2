// Package render resolves page images into the visible frame using a
// preload-then-swap protocol. Every render intent carries a monotonic stamp;
// only the result matching the latest issued stamp may commit, so a slow
// response for an old page can never clobber a newer navigation
// (last-issued-wins, not last-arrived-wins). Superseded results are discarded
// on arrival rather than cancelled in flight.
package render

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"

	tea "github.com/charmbracelet/bubbletea"
)

// Fetcher resolves a page image at a zoom factor (zoom percent / 100).
type Fetcher interface {
	PageImage(page int, zoom float64) ([]byte, error)
}

// Frame is a decoded page image committed to the visible surface.
type Frame struct {
	Page int
	Zoom int // percent
	Img  image.Image
}

// PreloadedMsg is delivered when an off-screen fetch+decode finishes.
type PreloadedMsg struct {
	Stamp uint64
	Page  int
	Zoom  int
	Frame *Frame
	Err   error
}

// Renderer owns the visible frame and the stamp counter. Issue and Commit run
// on the event loop; only the fetch inside the returned command suspends.
type Renderer struct {
	fetch fetchFunc
	stamp uint64
	frame *Frame
}

type fetchFunc func(page int, zoom float64) ([]byte, error)

// New creates a renderer that preloads through the given fetcher.
func New(f Fetcher) *Renderer {
	return &Renderer{fetch: f.PageImage}
}

// Frame returns the committed frame, or nil before the first commit.
func (r *Renderer) Frame() *Frame { return r.frame }

// Stamp returns the latest issued stamp.
func (r *Renderer) Stamp() uint64 { return r.stamp }

// Issue registers a new render intent and returns the preload command.
// Calling Issue again before the previous preload completes supersedes it.
func (r *Renderer) Issue(page, zoomPercent int) tea.Cmd {
	r.stamp++
	stamp := r.stamp
	fetch := r.fetch
	return func() tea.Msg {
		msg := PreloadedMsg{Stamp: stamp, Page: page, Zoom: zoomPercent}
		data, err := fetch(page, float64(zoomPercent)/100)
		if err != nil {
			msg.Err = fmt.Errorf("fetch page %d: %w", page, err)
			return msg
		}
		img, _, err := image.Decode(bytes.NewReader(data))
		if err != nil {
			msg.Err = fmt.Errorf("decode page %d: %w", page, err)
			return msg
		}
		msg.Frame = &Frame{Page: page, Zoom: zoomPercent, Img: img}
		return msg
	}
}

// Commit swaps the preloaded frame in, but only if it is the latest issued
// intent and the preload succeeded. On failure or supersession the previous
// frame stays visible and Commit reports false.
func (r *Renderer) Commit(msg PreloadedMsg) bool {
	if msg.Stamp != r.stamp {
		return false
	}
	if msg.Err != nil || msg.Frame == nil {
		return false
	}
	r.frame = msg.Frame
	return true
}

// Superseded reports whether a preload result belongs to an abandoned intent.
// Callers use it to tell a stale result (ignore silently) from a failed
// current one (surface the error).
func (r *Renderer) Superseded(msg PreloadedMsg) bool {
	return msg.Stamp != r.stamp
}

// CommitDirect swaps in an image the push channel already delivered, skipping
// the fetch. It takes the next stamp so any preload still in flight is
// superseded, keeping the surface on the most recent intent.
func (r *Renderer) CommitDirect(page, zoomPercent int, data []byte) error {
	r.stamp++
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("decode pushed page %d: %w", page, err)
	}
	r.frame = &Frame{Page: page, Zoom: zoomPercent, Img: img}
	return nil
}

// Reset drops the committed frame and invalidates any in-flight preloads.
// Called when a new document replaces the current one.
func (r *Renderer) Reset() {
	r.stamp++
	r.frame = nil
}
