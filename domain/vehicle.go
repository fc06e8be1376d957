package domain

// VehicleStatus is the availability of a vehicle.
type VehicleStatus string

const (
	VehicleAvailable   VehicleStatus = "Disponível"
	VehicleInUse       VehicleStatus = "Em uso"
	VehicleMaintenance VehicleStatus = "Em manutenção"
)

// Vehicle is a fleet asset: a car, truck, tractor or piece of equipment.
type Vehicle struct {
	ID                  int           `json:"id"`
	Brand               string        `json:"brand"`
	Model               string        `json:"model"`
	Year                int           `json:"year"`
	Status              VehicleStatus `json:"status"`
	PhotoURL            *string       `json:"photo_url,omitempty"`
	LicensePlate        *string       `json:"license_plate,omitempty"`
	Identifier          *string       `json:"identifier,omitempty"`
	TelemetryDeviceID   *string       `json:"telemetry_device_id,omitempty"`
	CurrentKm           *float64      `json:"current_km,omitempty"`
	CurrentEngineHours  *float64      `json:"current_engine_hours,omitempty"`
	LastLatitude        *float64      `json:"last_latitude,omitempty"`
	LastLongitude       *float64      `json:"last_longitude,omitempty"`
	NextMaintenanceDate *Timestamp    `json:"next_maintenance_date,omitempty"`
	NextMaintenanceKm   *float64      `json:"next_maintenance_km,omitempty"`
	MaintenanceNotes    *string       `json:"maintenance_notes,omitempty"`
}

func (v *Vehicle) IsAvailable() bool {
	return v != nil && v.Status == VehicleAvailable
}

// DisplayName joins brand, model and the plate or identifier.
func (v *Vehicle) DisplayName() string {
	if v == nil {
		return ""
	}
	name := v.Brand + " " + v.Model
	switch {
	case v.LicensePlate != nil && *v.LicensePlate != "":
		name += " (" + *v.LicensePlate + ")"
	case v.Identifier != nil && *v.Identifier != "":
		name += " (" + *v.Identifier + ")"
	}
	return name
}

// JourneyType distinguishes routed trips from free roaming.
type JourneyType string

const (
	JourneySpecificDestination JourneyType = "specific_destination"
	JourneyFreeRoam            JourneyType = "free_roam"
)

// Journey is one use of a vehicle by a driver.
type Journey struct {
	ID                 int         `json:"id"`
	StartTime          Timestamp   `json:"start_time"`
	EndTime            *Timestamp  `json:"end_time,omitempty"`
	StartMileage       float64     `json:"start_mileage"`
	EndMileage         *float64    `json:"end_mileage,omitempty"`
	StartEngineHours   *float64    `json:"start_engine_hours,omitempty"`
	EndEngineHours     *float64    `json:"end_engine_hours,omitempty"`
	IsActive           bool        `json:"is_active"`
	TripType           JourneyType `json:"trip_type"`
	DestinationAddress *string     `json:"destination_address,omitempty"`
	TripDescription    *string     `json:"trip_description,omitempty"`
	Vehicle            *Vehicle    `json:"vehicle,omitempty"`
	Driver             *User       `json:"driver,omitempty"`
	OrganizationID     int         `json:"organization_id"`
}

// DriverID returns the id of the driver or zero.
func (j *Journey) DriverID() int {
	if j == nil || j.Driver == nil {
		return 0
	}
	return j.Driver.ID
}

// EndJourneyResult is returned when a journey is closed: the journey and the vehicle
// with its updated odometer.
type EndJourneyResult struct {
	Journey Journey `json:"journey"`
	Vehicle Vehicle `json:"vehicle"`
}
