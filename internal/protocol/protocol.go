// Package protocol defines the JSON payloads exchanged with remote clients.
package protocol

// Response status values
const (
	StatusSuccess = "success"
	StatusError   = "error"
	StatusOK      = "ok"
)

// Response is the body of every HTTP reply
type Response struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// MouseRequest is the body of POST /mouse. Both deltas are required.
type MouseRequest struct {
	DX *float64 `json:"dx"`
	DY *float64 `json:"dy"`
}

// ClickRequest is the body of POST /click
type ClickRequest struct {
	Type *string `json:"type"`
}

// ScrollRequest is the body of POST /scroll
type ScrollRequest struct {
	Direction *string `json:"direction"`
	Amount    *int    `json:"amount,omitempty"`
}

// KeyRequest is the body of POST /key
type KeyRequest struct {
	Key       *string  `json:"key"`
	Modifiers []string `json:"modifiers,omitempty"`
}

// VoiceRequest is the body of POST /voice
type VoiceRequest struct {
	Command *string `json:"command"`
}

// MessageType defines the type of WebSocket message
type MessageType string

const (
	// TypeActivity is sent by the server for every handled command
	TypeActivity MessageType = "activity"

	// TypeSnapshotRequest is sent by a client to request the recent activity log
	TypeSnapshotRequest MessageType = "snapshot_req"

	// TypeSnapshotResponse is sent by the server with the recent activity log
	TypeSnapshotResponse MessageType = "snapshot_resp"

	// TypeMouse is sent by a client to move the pointer without an HTTP round trip
	TypeMouse MessageType = "mouse"

	// TypeError is sent by the server when a client message could not be handled
	TypeError MessageType = "error"
)

// Message is the generic container for all WebSocket messages
type Message struct {
	Type    MessageType `json:"type"`
	Payload any         `json:"payload,omitempty"`
}
