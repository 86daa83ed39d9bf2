package render

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"strings"
	"testing"
)

// fakeFetcher serves tiny generated PNGs keyed by page, or an error.
type fakeFetcher struct {
	err   error
	calls int
}

func (f *fakeFetcher) PageImage(page int, zoom float64) ([]byte, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return testPNG(page+1, 2), nil
}

// testPNG encodes a w x h gray image.
func testPNG(w, h int) []byte {
	img := image.NewGray(image.Rect(0, 0, w, h))
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

func TestLastIssuedWins(t *testing.T) {
	r := New(&fakeFetcher{})

	// Issue page 3, then page 5 before the first preload completes.
	cmd3 := r.Issue(3, 100)
	cmd5 := r.Issue(5, 100)

	// Page 5 resolves first and commits.
	msg5 := cmd5().(PreloadedMsg)
	if !r.Commit(msg5) {
		t.Fatal("latest intent must commit")
	}

	// Page 3 resolves last; its stamp is stale, so it must be discarded.
	msg3 := cmd3().(PreloadedMsg)
	if !r.Superseded(msg3) {
		t.Error("older intent should be superseded")
	}
	if r.Commit(msg3) {
		t.Error("stale result must not commit")
	}
	if r.Frame().Page != 5 {
		t.Errorf("visible page = %d, want 5", r.Frame().Page)
	}
}

func TestFailedPreloadKeepsPreviousFrame(t *testing.T) {
	f := &fakeFetcher{}
	r := New(f)

	msg := r.Issue(0, 100)().(PreloadedMsg)
	if !r.Commit(msg) {
		t.Fatal("initial commit failed")
	}

	f.err = errors.New("boom")
	failed := r.Issue(1, 100)().(PreloadedMsg)
	if failed.Err == nil {
		t.Fatal("expected preload error")
	}
	if r.Superseded(failed) {
		t.Error("a failed current intent is not superseded")
	}
	if r.Commit(failed) {
		t.Error("failed preload must not commit")
	}
	if r.Frame() == nil || r.Frame().Page != 0 {
		t.Error("previous frame must stay visible after a failure")
	}
}

func TestDecodeFailure(t *testing.T) {
	r := &Renderer{fetch: func(page int, zoom float64) ([]byte, error) {
		return []byte("not an image"), nil
	}}
	msg := r.Issue(2, 100)().(PreloadedMsg)
	if msg.Err == nil || !strings.Contains(msg.Err.Error(), "decode") {
		t.Errorf("want decode error, got %v", msg.Err)
	}
}

func TestCommitDirectSupersedesInflight(t *testing.T) {
	r := New(&fakeFetcher{})

	pending := r.Issue(2, 100)
	if err := r.CommitDirect(7, 100, testPNG(4, 4)); err != nil {
		t.Fatalf("CommitDirect: %v", err)
	}
	if r.Frame().Page != 7 {
		t.Errorf("visible page = %d, want 7", r.Frame().Page)
	}

	// The preload issued before the direct commit arrives late.
	late := pending().(PreloadedMsg)
	if r.Commit(late) {
		t.Error("preload superseded by direct commit must not land")
	}
	if r.Frame().Page != 7 {
		t.Errorf("visible page = %d, want 7", r.Frame().Page)
	}
}

func TestCommitDirectDecodeFailure(t *testing.T) {
	r := New(&fakeFetcher{})
	msg := r.Issue(1, 100)().(PreloadedMsg)
	r.Commit(msg)

	if err := r.CommitDirect(3, 100, []byte("garbage")); err == nil {
		t.Fatal("expected decode error")
	}
	if r.Frame().Page != 1 {
		t.Error("frame must survive a bad pushed payload")
	}
}

func TestResetInvalidatesInflight(t *testing.T) {
	r := New(&fakeFetcher{})
	pending := r.Issue(4, 100)
	r.Reset()

	if r.Frame() != nil {
		t.Error("reset must drop the frame")
	}
	if r.Commit(pending().(PreloadedMsg)) {
		t.Error("preload from before reset must not commit")
	}
}

func TestRasterFitsBudget(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 80, 120))
	f := &Frame{Page: 0, Zoom: 100, Img: img}

	out := Raster(f, 20, 30)
	lines := strings.Split(out, "\n")
	if len(lines) > 30 {
		t.Errorf("raster rows = %d, want <= 30", len(lines))
	}
	for i, line := range lines {
		if n := strings.Count(line, "▀"); n > 20 {
			t.Errorf("row %d has %d cells, want <= 20", i, n)
		}
	}
	if Raster(nil, 20, 30) != "" {
		t.Error("nil frame should raster to empty")
	}
}

func TestStampMonotonic(t *testing.T) {
	r := New(&fakeFetcher{})
	var last uint64
	for i := 0; i < 5; i++ {
		r.Issue(i, 100)
		if r.Stamp() <= last {
			t.Fatalf("stamp not monotonic: %d after %d", r.Stamp(), last)
		}
		last = r.Stamp()
	}
}
