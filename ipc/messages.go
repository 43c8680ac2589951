package ipc

import "github.com/gdg-garage/uwapi-eve-david/model"

// Message types exchanged with the host adapter.
const (
	TypeHello    = "hello"
	TypeAck      = "ack"
	TypeSnapshot = "snapshot"
	TypeError    = "error"
)

// HelloMessage opens a match session. The catalog and map are static for
// the session and are not repeated in snapshots.
type HelloMessage struct {
	Player     string            `json:"player"`
	Prototypes []model.Prototype `json:"prototypes"`
	Map        *model.Map        `json:"map,omitempty"`
}

// AckMessage closes one snapshot. Step is the engine step the snapshot
// was processed as.
type AckMessage struct {
	Status string `json:"status"`
	Step   int    `json:"step,omitempty"`
}

// ErrorMessage replaces the ack when a message could not be handled.
type ErrorMessage struct {
	Type  string `json:"type"`
	Error string `json:"error"`
}
