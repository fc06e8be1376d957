package domain

import "strings"

// Sector is the business vertical of an organization.
type Sector string

// Wire tags used by the backend.
const (
	SectorUnset        Sector = ""
	SectorAgriculture  Sector = "agronegocio"
	SectorServices     Sector = "servicos"
	SectorFreight      Sector = "frete"
	SectorConstruction Sector = "construcao_civil"
)

// Sectors lists every known sector in display order.
var Sectors = []Sector{SectorAgriculture, SectorServices, SectorFreight, SectorConstruction}

// ParseSector accepts either a wire tag or its English name. Unknown input yields
// SectorUnset and false.
func ParseSector(raw string) (Sector, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case string(SectorAgriculture), "agriculture", "agro":
		return SectorAgriculture, true
	case string(SectorServices), "services":
		return SectorServices, true
	case string(SectorFreight), "freight":
		return SectorFreight, true
	case string(SectorConstruction), "construction":
		return SectorConstruction, true
	default:
		return SectorUnset, false
	}
}

// Known reports whether s is one of the four recognized sectors.
func (s Sector) Known() bool {
	switch s {
	case SectorAgriculture, SectorServices, SectorFreight, SectorConstruction:
		return true
	default:
		return false
	}
}

// Role is the access role of a user within an organization.
type Role string

const (
	RoleActiveCustomer Role = "active_customer"
	RoleDemoCustomer   Role = "demo_customer"
	RoleDriver         Role = "driver"
	// RoleManager is sent by older backends; it behaves as a customer role.
	RoleManager Role = "manager"
)

// PlanStatus is the subscription state of an organization.
type PlanStatus string

const (
	PlanDemo     PlanStatus = "demo"
	PlanActive   PlanStatus = "active"
	PlanInactive PlanStatus = "inactive"
)

// Organization is the tenant a user belongs to.
type Organization struct {
	ID         int        `json:"id"`
	Name       string     `json:"name"`
	Sector     Sector     `json:"sector"`
	PlanStatus PlanStatus `json:"plan_status,omitempty"`
}

// User represents an authenticated identity as returned by the backend.
type User struct {
	ID           int           `json:"id"`
	Email        string        `json:"email"`
	FullName     string        `json:"full_name"`
	Role         Role          `json:"role"`
	IsActive     bool          `json:"is_active"`
	IsSuperuser  bool          `json:"is_superuser,omitempty"`
	AvatarURL    *string       `json:"avatar_url,omitempty"`
	Organization *Organization `json:"organization,omitempty"`
}

func (u *User) IsManager() bool {
	if u == nil {
		return false
	}
	switch u.Role {
	case RoleActiveCustomer, RoleDemoCustomer, RoleManager:
		return true
	default:
		return false
	}
}

func (u *User) IsDriver() bool {
	return u != nil && u.Role == RoleDriver
}

func (u *User) IsDemo() bool {
	if u == nil {
		return false
	}
	if u.Role == RoleDemoCustomer {
		return true
	}
	return u.Organization != nil && u.Organization.PlanStatus == PlanDemo
}

// Sector returns the organization sector or SectorUnset.
func (u *User) Sector() Sector {
	if u == nil || u.Organization == nil {
		return SectorUnset
	}
	return u.Organization.Sector
}

// Clone returns a deep copy so cached users can be handed out safely.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	out := *u
	if u.AvatarURL != nil {
		avatar := *u.AvatarURL
		out.AvatarURL = &avatar
	}
	if u.Organization != nil {
		org := *u.Organization
		out.Organization = &org
	}
	return &out
}

// VehiclePerformance is one vehicle's share of a user's primary metric, in
// kilometres or engine hours depending on the sector.
type VehiclePerformance struct {
	VehicleInfo string  `json:"vehicle_info"`
	Value       float64 `json:"value"`
}

// UserStats is the activity summary of a single user. The fuel KPIs are only
// reported for the services sector.
type UserStats struct {
	TotalJourneys            int                  `json:"total_journeys"`
	MaintenanceRequestsCount int                  `json:"maintenance_requests_count"`
	PrimaryMetricLabel       string               `json:"primary_metric_label"`
	PrimaryMetricValue       float64              `json:"primary_metric_value"`
	PrimaryMetricUnit        string               `json:"primary_metric_unit"`
	PerformanceByVehicle     []VehiclePerformance `json:"performance_by_vehicle"`
	AvgKmPerLiter            *float64             `json:"avg_km_per_liter,omitempty"`
	AvgCostPerKm             *float64             `json:"avg_cost_per_km,omitempty"`
	FleetAvgKmPerLiter       *float64             `json:"fleet_avg_km_per_liter,omitempty"`
}
