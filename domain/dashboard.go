package domain

// FleetKPIs counts the organization's vehicles by status.
type FleetKPIs struct {
	TotalVehicles       int `json:"total_vehicles"`
	AvailableVehicles   int `json:"available_vehicles"`
	InUseVehicles       int `json:"in_use_vehicles"`
	MaintenanceVehicles int `json:"maintenance_vehicles"`
}

type KmPerDay struct {
	Date    Timestamp `json:"date"`
	TotalKm float64   `json:"total_km"`
}

type UpcomingMaintenance struct {
	VehicleInfo string     `json:"vehicle_info"`
	DueDate     *Timestamp `json:"due_date,omitempty"`
	DueKm       *float64   `json:"due_km,omitempty"`
}

// DashboardSummary is the manager's landing view. Demo accounts only receive
// the KPIs; the other sections arrive as null.
type DashboardSummary struct {
	KPIs                 FleetKPIs             `json:"kpis"`
	KmPerDayLast30Days   []KmPerDay            `json:"km_per_day_last_30_days"`
	ActiveJourneys       []Journey             `json:"active_journeys"`
	UpcomingMaintenances []UpcomingMaintenance `json:"upcoming_maintenances"`
}

// Limited reports whether the premium sections were withheld.
func (s *DashboardSummary) Limited() bool {
	return s != nil && s.KmPerDayLast30Days == nil && s.ActiveJourneys == nil && s.UpcomingMaintenances == nil
}
