package client

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func TestCurrentPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/get_current_page" {
			t.Errorf("path = %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(CurrentPageResponse{CurrentPage: 4, TotalPages: 10})
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL)
	got, err := c.CurrentPage()
	if err != nil {
		t.Fatalf("CurrentPage: %v", err)
	}
	if got.CurrentPage != 4 || got.TotalPages != 10 {
		t.Errorf("got %+v, want (4, 10)", got)
	}
}

func TestGotoPage(t *testing.T) {
	var gotBody map[string]int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/goto_page" {
			t.Errorf("%s %s", r.Method, r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&gotBody)
		json.NewEncoder(w).Encode(GotoResponse{Success: true})
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL)
	resp, err := c.GotoPage(7)
	if err != nil {
		t.Fatalf("GotoPage: %v", err)
	}
	if !resp.Success {
		t.Error("expected success")
	}
	if gotBody["page_num"] != 7 {
		t.Errorf("page_num = %d, want 7", gotBody["page_num"])
	}
}

func TestPageImageURL(t *testing.T) {
	var gotPath, gotZoom string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotZoom = r.URL.Query().Get("zoom")
		w.Write([]byte("imagebytes"))
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL)
	data, err := c.PageImage(3, 1.5)
	if err != nil {
		t.Fatalf("PageImage: %v", err)
	}
	if string(data) != "imagebytes" {
		t.Errorf("body = %q", data)
	}
	if gotPath != "/get_page_image/3" || gotZoom != "1.5" {
		t.Errorf("request = %s?zoom=%s, want /get_page_image/3?zoom=1.5", gotPath, gotZoom)
	}
}

func TestUpload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "deck.pdf")
	if err := os.WriteFile(path, []byte("%PDF-1.4 fake"), 0o644); err != nil {
		t.Fatal(err)
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parse multipart: %v", err)
		}
		f, hdr, err := r.FormFile("pdf_file")
		if err != nil {
			t.Fatalf("form file: %v", err)
		}
		f.Close()
		if hdr.Filename != "deck.pdf" {
			t.Errorf("filename = %s", hdr.Filename)
		}
		json.NewEncoder(w).Encode(UploadResponse{Success: true, TotalPages: 12})
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL)
	resp, err := c.Upload(path)
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if !resp.Success || resp.TotalPages != 12 {
		t.Errorf("got %+v, want success with 12 pages", resp)
	}
}

func TestStartControlError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(ControlResponse{Success: false, Error: "Upload PDF first"})
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL)
	resp, err := c.StartControl("hand_gesture")
	if err != nil {
		t.Fatalf("StartControl: %v", err)
	}
	if resp.Success || resp.Error != "Upload PDF first" {
		t.Errorf("got %+v", resp)
	}
}
