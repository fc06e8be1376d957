package domain

// FreightStatus is the lifecycle state of a freight order.
type FreightStatus string

const (
	FreightPending   FreightStatus = "Pendente"
	FreightInTransit FreightStatus = "Em Trânsito"
	FreightDelivered FreightStatus = "Entregue"
	FreightCanceled  FreightStatus = "Cancelado"
)

// CanTransitionTo reports whether an order may move from s to next.
// Delivered and canceled orders are terminal.
func (s FreightStatus) CanTransitionTo(next FreightStatus) bool {
	switch s {
	case FreightPending:
		return next == FreightInTransit || next == FreightCanceled
	case FreightInTransit:
		return next == FreightDelivered || next == FreightCanceled
	case FreightDelivered, FreightCanceled:
		return false
	default:
		return false
	}
}

func (s FreightStatus) Terminal() bool {
	return s == FreightDelivered || s == FreightCanceled
}

type StopPointType string

const (
	StopPickup   StopPointType = "Coleta"
	StopDelivery StopPointType = "Entrega"
)

type StopPointStatus string

const (
	StopPending   StopPointStatus = "Pendente"
	StopCompleted StopPointStatus = "Concluído"
)

type StopPoint struct {
	ID                int             `json:"id"`
	SequenceOrder     int             `json:"sequence_order"`
	Type              StopPointType   `json:"type"`
	Status            StopPointStatus `json:"status"`
	Address           string          `json:"address"`
	CargoDescription  *string         `json:"cargo_description,omitempty"`
	ScheduledTime     Timestamp       `json:"scheduled_time"`
	ActualArrivalTime *Timestamp      `json:"actual_arrival_time,omitempty"`
}

// FreightOrder is a transport job for a client with ordered stop points.
type FreightOrder struct {
	ID                 int           `json:"id"`
	Status             FreightStatus `json:"status"`
	Description        *string       `json:"description,omitempty"`
	ScheduledStartTime *Timestamp    `json:"scheduled_start_time,omitempty"`
	ScheduledEndTime   *Timestamp    `json:"scheduled_end_time,omitempty"`
	Client             *Client       `json:"client,omitempty"`
	Vehicle            *Vehicle      `json:"vehicle,omitempty"`
	Driver             *User         `json:"driver,omitempty"`
	StopPoints         []StopPoint   `json:"stop_points"`
}

// Claimable reports whether a driver may take the order.
func (f *FreightOrder) Claimable() bool {
	return f != nil && f.Status == FreightPending && f.Driver == nil
}

// NextStop returns the first pending stop in sequence order.
func (f *FreightOrder) NextStop() *StopPoint {
	if f == nil {
		return nil
	}
	var next *StopPoint
	for i := range f.StopPoints {
		stop := &f.StopPoints[i]
		if stop.Status == StopCompleted {
			continue
		}
		if next == nil || stop.SequenceOrder < next.SequenceOrder {
			next = stop
		}
	}
	return next
}

// Client is a customer of the fleet operator.
type Client struct {
	ID                  int     `json:"id"`
	Name                string  `json:"name"`
	ContactPerson       *string `json:"contact_person,omitempty"`
	Phone               *string `json:"phone,omitempty"`
	Email               *string `json:"email,omitempty"`
	CEP                 *string `json:"cep,omitempty"`
	AddressStreet       *string `json:"address_street,omitempty"`
	AddressNumber       *string `json:"address_number,omitempty"`
	AddressNeighborhood *string `json:"address_neighborhood,omitempty"`
	AddressCity         *string `json:"address_city,omitempty"`
	AddressState        *string `json:"address_state,omitempty"`
}

// Document is an uploaded file (license, insurance, inspection) with an expiry date.
type Document struct {
	ID           int       `json:"id"`
	DocumentType string    `json:"document_type"`
	ExpiryDate   Timestamp `json:"expiry_date"`
	Notes        *string   `json:"notes,omitempty"`
	FileURL      string    `json:"file_url"`
	VehicleID    *int      `json:"vehicle_id,omitempty"`
	DriverID     *int      `json:"driver_id,omitempty"`
	OwnerInfo    *string   `json:"owner_info,omitempty"`
}
