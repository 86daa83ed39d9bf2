package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

// HTTPClient makes request/response calls to the page rendering server.
type HTTPClient struct {
	baseURL string
	client  *http.Client
}

// NewHTTPClient creates a client targeting the given base URL
// (e.g. "http://127.0.0.1:5000").
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// Upload sends the file at path as multipart form data to POST /upload.
// Size limits are enforced by the caller before any bytes move.
func (c *HTTPClient) Upload(path string) (*UploadResponse, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("pdf_file", filepath.Base(path))
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, f); err != nil {
		return nil, err
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequest(http.MethodPost, c.baseURL+"/upload", &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("upload failed (%d): %s", resp.StatusCode, string(body))
	}

	var out UploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	return &out, nil
}

// PageCount fetches GET /get_page_count.
func (c *HTTPClient) PageCount() (int, error) {
	var out PageCountResponse
	if err := c.get("/get_page_count", &out); err != nil {
		return 0, err
	}
	return out.PageCount, nil
}

// CurrentPage fetches the authoritative poll snapshot, GET /get_current_page.
func (c *HTTPClient) CurrentPage() (*CurrentPageResponse, error) {
	var out CurrentPageResponse
	if err := c.get("/get_current_page", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// PageImage fetches the rendered image for a 0-based page index at the given
// zoom factor (zoom percent / 100, range [0.25, 5.0]).
func (c *HTTPClient) PageImage(page int, zoom float64) ([]byte, error) {
	url := fmt.Sprintf("%s/get_page_image/%d?zoom=%g", c.baseURL, page, zoom)
	resp, err := c.client.Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("page image %d: %d %s", page, resp.StatusCode, string(body))
	}
	return io.ReadAll(resp.Body)
}

// GotoPage sends POST /goto_page with a 0-based page index.
func (c *HTTPClient) GotoPage(page int) (*GotoResponse, error) {
	var out GotoResponse
	if err := c.post("/goto_page", map[string]int{"page_num": page}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// StartControl sends POST /start_control for the given control method.
func (c *HTTPClient) StartControl(controlType string) (*ControlResponse, error) {
	var out ControlResponse
	if err := c.post("/start_control", map[string]string{"control_type": controlType}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// StopControl sends POST /stop_control.
func (c *HTTPClient) StopControl() (*ControlResponse, error) {
	var out ControlResponse
	if err := c.post("/stop_control", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) get(path string, out interface{}) error {
	resp, err := c.client.Get(c.baseURL + path)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("GET %s: %d %s", path, resp.StatusCode, string(body))
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *HTTPClient) post(path string, body interface{}, out interface{}) error {
	data, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequest(http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("POST %s: %d %s", path, resp.StatusCode, string(respBody))
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}
