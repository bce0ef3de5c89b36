package calc

import "time"

// SessionState is a snapshot of one calculator session.
type SessionState struct {
	ID     string    `json:"id"`
	Result float64   `json:"result"`
	Ops    int       `json:"ops"`
	TS     time.Time `json:"ts"`

	LastCommand string `json:"lastCommand,omitempty"`
}
