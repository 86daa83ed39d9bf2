package client

import (
	"encoding/json"
	"testing"
)

func TestDispatch(t *testing.T) {
	tests := []struct {
		name    string
		msg     WSMessage
		want    interface{}
		dropped bool
	}{
		{
			name: "page update",
			msg: WSMessage{
				Type:    MsgPageUpdate,
				Payload: json.RawMessage(`{"page_number":5,"total_pages":20}`),
			},
			want: WSPageUpdateMsg{Payload: PageUpdatePayload{PageNumber: 5, TotalPages: 20}},
		},
		{
			name: "page update with image",
			msg: WSMessage{
				Type:    MsgPageUpdate,
				Payload: json.RawMessage(`{"page_number":1,"image_data":"aGVsbG8="}`),
			},
			want: WSPageUpdateMsg{Payload: PageUpdatePayload{PageNumber: 1, ImageData: "aGVsbG8="}},
		},
		{
			name: "control status",
			msg: WSMessage{
				Type:    MsgControlStatus,
				Payload: json.RawMessage(`{"active":true,"type":"voice","message":"voice started"}`),
			},
			want: WSControlStatusMsg{Payload: ControlStatusPayload{Active: true, Type: "voice", Message: "voice started"}},
		},
		{
			name:    "unknown type dropped",
			msg:     WSMessage{Type: "telemetry", Payload: json.RawMessage(`{}`)},
			dropped: true,
		},
		{
			name:    "malformed payload dropped",
			msg:     WSMessage{Type: MsgPageUpdate, Payload: json.RawMessage(`{"page_number":"one"}`)},
			dropped: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := dispatch(tt.msg)
			if tt.dropped {
				if got != nil {
					t.Errorf("dispatch() = %#v, want nil", got)
				}
				return
			}
			if got != tt.want {
				t.Errorf("dispatch() = %#v, want %#v", got, tt.want)
			}
		})
	}
}
