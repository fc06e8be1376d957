package buffer

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Entities whose creation may be deferred while the API is unreachable.
const (
	EntityFuelLog     = "fuel_log"
	EntityMaintenance = "maintenance"

	OperationCreate = "create"
)

// Item is a submission waiting to be replayed against the API.
type Item struct {
	ID        string          `json:"id"`
	UserID    int             `json:"user_id,omitempty"`
	Entity    string          `json:"entity"`
	Operation string          `json:"operation"`
	Data      json.RawMessage `json:"data"`
	Priority  int             `json:"priority"`
	Retries   int             `json:"retries"`
	LastError string          `json:"last_error,omitempty"`
	Timestamp time.Time       `json:"timestamp"`

	bucketKey []byte
}

// Command is the dispatcher command that replays the item.
func (i Item) Command() string {
	return i.Entity + "." + i.Operation
}

func (i *Item) normalize() {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	if i.Priority <= 0 || i.Priority > 5 {
		i.Priority = 3
	}
	if i.Timestamp.IsZero() {
		i.Timestamp = time.Now()
	}
}
