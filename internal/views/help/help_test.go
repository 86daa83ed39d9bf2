package help

import (
	"strings"
	"testing"
)

func TestSetWidthCachesRender(t *testing.T) {
	m := New()
	m.SetWidth(80)
	if m.rendered == "" {
		t.Fatal("SetWidth should render the reference")
	}

	m.rendered = "sentinel"
	m.SetWidth(80)
	if m.rendered != "sentinel" {
		t.Error("unchanged width must not re-render")
	}

	m.SetWidth(100)
	if m.rendered == "sentinel" {
		t.Error("width change must re-render")
	}
}

func TestViewShowsKeyReference(t *testing.T) {
	m := New()
	m.SetWidth(80)

	v := m.View()
	if !strings.Contains(v, "zoom in / out") {
		t.Error("overlay should contain the key reference")
	}
	// View runs on a copy; rendering must not depend on mutation.
	if m.View() != v {
		t.Error("repeated View calls should return the cached render")
	}
}

func TestViewBeforeSetWidthFallsBack(t *testing.T) {
	m := New()
	if !strings.Contains(m.View(), "pdfnav") {
		t.Error("unrendered overlay should fall back to the raw reference")
	}
}
