// Package client provides the WebSocket and HTTP clients for the page
// rendering server. Types mirror the server wire protocol; the push channel
// uses 1-based page numbers, converted to the 0-based model at the point of
// application, never stored.
package client

import "encoding/json"

// MessageType identifies the kind of push message.
type MessageType string

const (
	MsgPageUpdate    MessageType = "page_update"
	MsgControlStatus MessageType = "control_status"
)

// WSMessage is the envelope for all push messages.
type WSMessage struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// PageUpdatePayload is pushed when control-driven navigation moves the page.
// ImageData, when present, carries the rendered page so the client can skip
// its own fetch.
type PageUpdatePayload struct {
	PageNumber int    `json:"page_number"` // 1-based
	TotalPages int    `json:"total_pages,omitempty"`
	ImageData  string `json:"image_data,omitempty"` // base64 JPEG or PNG
}

// ControlStatusPayload reports control lifecycle changes initiated server-side.
// Message is human-readable and displayed verbatim.
type ControlStatusPayload struct {
	Active  bool   `json:"active"`
	Type    string `json:"type"`
	Message string `json:"message"`
}

// --- HTTP response types ---

// UploadResponse is returned by POST /upload.
type UploadResponse struct {
	Success    bool   `json:"success"`
	TotalPages int    `json:"total_pages"`
	Error      string `json:"error,omitempty"`
}

// PageCountResponse is returned by GET /get_page_count.
type PageCountResponse struct {
	PageCount int `json:"page_count"`
}

// CurrentPageResponse is the poll target, GET /get_current_page.
type CurrentPageResponse struct {
	CurrentPage int `json:"current_page"` // 0-based, unlike the push channel
	TotalPages  int `json:"total_pages"`
}

// GotoResponse is returned by POST /goto_page.
type GotoResponse struct {
	Success bool `json:"success"`
}

// ControlResponse is returned by POST /start_control and /stop_control.
type ControlResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}
