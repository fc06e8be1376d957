package domain

// ImplementAvailable is the status of an implement that can be attached to a
// new journey.
const ImplementAvailable = "available"

// Implement is a piece of towed or mounted equipment (a planter, a trailer)
// that agriculture and construction journeys may carry.
type Implement struct {
	ID         int     `json:"id"`
	Name       string  `json:"name"`
	Brand      string  `json:"brand"`
	Model      string  `json:"model"`
	Year       int     `json:"year"`
	Identifier *string `json:"identifier,omitempty"`
	Status     string  `json:"status,omitempty"`
}

func (i Implement) IsAvailable() bool {
	return i.Status == ImplementAvailable
}
