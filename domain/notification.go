package domain

// Notification is an alert addressed to the logged-in user.
type Notification struct {
	ID                int       `json:"id"`
	Message           string    `json:"message"`
	IsRead            bool      `json:"is_read"`
	CreatedAt         Timestamp `json:"created_at"`
	NotificationType  string    `json:"notification_type"`
	RelatedVehicleID  *int      `json:"related_vehicle_id,omitempty"`
	RelatedEntityType *string   `json:"related_entity_type,omitempty"`
	RelatedEntityID   *int      `json:"related_entity_id,omitempty"`
}

// CountUnread returns how many of items are unread.
func CountUnread(items []Notification) int {
	n := 0
	for _, it := range items {
		if !it.IsRead {
			n++
		}
	}
	return n
}
