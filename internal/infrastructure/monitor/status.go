package monitor

import "time"

type Status struct {
	API        bool      `json:"api"`
	APIError   string    `json:"api_error,omitempty"`
	Outbox     bool      `json:"outbox"`
	OutboxSize int       `json:"outbox_size"`
	LastCheck  time.Time `json:"last_check"`
}
