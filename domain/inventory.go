package domain

// FuelVerification is the outcome of matching a fuel log against a provider feed.
type FuelVerification string

const (
	FuelPending    FuelVerification = "PENDING"
	FuelVerified   FuelVerification = "VERIFIED"
	FuelSuspicious FuelVerification = "SUSPICIOUS"
	FuelUnverified FuelVerification = "UNVERIFIED"
)

type FuelLog struct {
	ID                 int              `json:"id"`
	Odometer           float64          `json:"odometer"`
	Liters             float64          `json:"liters"`
	TotalCost          float64          `json:"total_cost"`
	VehicleID          int              `json:"vehicle_id"`
	UserID             int              `json:"user_id"`
	ReceiptPhotoURL    *string          `json:"receipt_photo_url,omitempty"`
	Timestamp          Timestamp        `json:"timestamp"`
	VerificationStatus FuelVerification `json:"verification_status,omitempty"`
	ProviderName       *string          `json:"provider_name,omitempty"`
	GasStationName     *string          `json:"gas_station_name,omitempty"`
	Source             string           `json:"source,omitempty"`
	User               *User            `json:"user,omitempty"`
	Vehicle            *Vehicle         `json:"vehicle,omitempty"`
}

// PricePerLiter returns zero when no liters were recorded.
func (f *FuelLog) PricePerLiter() float64 {
	if f == nil || f.Liters <= 0 {
		return 0
	}
	return f.TotalCost / f.Liters
}

type PartCategory string

const (
	PartPiece      PartCategory = "Peça"
	PartTire       PartCategory = "Pneu"
	PartFluid      PartCategory = "Fluído"
	PartConsumable PartCategory = "Consumível"
	PartOther      PartCategory = "Outro"
)

// Part is an inventory item type with its stock level.
type Part struct {
	ID           int          `json:"id"`
	Name         string       `json:"name"`
	Category     PartCategory `json:"category"`
	PartNumber   *string      `json:"part_number,omitempty"`
	SerialNumber *string      `json:"serial_number,omitempty"`
	Brand        *string      `json:"brand,omitempty"`
	Stock        int          `json:"stock"`
	MinimumStock int          `json:"minimum_stock"`
	Location     *string      `json:"location,omitempty"`
	Notes        *string      `json:"notes,omitempty"`
	PhotoURL     *string      `json:"photo_url,omitempty"`
	Value        *float64     `json:"value,omitempty"`
	InvoiceURL   *string      `json:"invoice_url,omitempty"`
	LifespanKm   *float64     `json:"lifespan_km,omitempty"`
}

func (p *Part) IsLowStock() bool {
	return p != nil && p.Stock <= p.MinimumStock
}

// VehicleTire is a tire installed (or once installed) on a vehicle position.
type VehicleTire struct {
	ID                 int        `json:"id"`
	PartID             int        `json:"part_id"`
	VehicleID          int        `json:"vehicle_id"`
	PositionCode       string     `json:"position_code"`
	InstallationDate   Timestamp  `json:"installation_date"`
	InstallKm          float64    `json:"install_km"`
	InstallEngineHours *float64   `json:"install_engine_hours,omitempty"`
	RemovalKm          *float64   `json:"removal_km,omitempty"`
	RemovalDate        *Timestamp `json:"removal_date,omitempty"`
	KmRun              float64    `json:"km_run,omitempty"`
	IsActive           bool       `json:"is_active"`
	Part               *Part      `json:"part,omitempty"`
}

// TireLayout is the current tire map of a vehicle.
type TireLayout struct {
	VehicleID         int           `json:"vehicle_id"`
	AxleConfiguration *string       `json:"axle_configuration,omitempty"`
	Tires             []VehicleTire `json:"tires"`
}

// TireWear classifies how much of a tire's lifespan has been used.
type TireWear string

const (
	TireOK       TireWear = "ok"
	TireWarning  TireWear = "warning"
	TireCritical TireWear = "critical"
)

// Wear computes the used share of the part lifespan given the vehicle's current km.
// Tires without a known lifespan are reported as ok with zero usage.
func (t *VehicleTire) Wear(currentKm float64) (TireWear, float64) {
	if t == nil || t.Part == nil || t.Part.LifespanKm == nil || *t.Part.LifespanKm <= 0 {
		return TireOK, 0
	}
	run := currentKm - t.InstallKm
	if run < 0 {
		run = 0
	}
	pct := run / *t.Part.LifespanKm * 100
	switch {
	case pct >= 90:
		return TireCritical, pct
	case pct >= 70:
		return TireWarning, pct
	default:
		return TireOK, pct
	}
}

type CostType string

const (
	CostMaintenance CostType = "Manutenção"
	CostFuel        CostType = "Combustível"
	CostToll        CostType = "Pedágio"
	CostInsurance   CostType = "Seguro"
	CostTire        CostType = "Pneu"
	CostParts       CostType = "Peças e Componentes"
	CostFine        CostType = "Multa"
	CostOther       CostType = "Outros"
)

type VehicleCost struct {
	ID        int       `json:"id"`
	VehicleID int       `json:"vehicle_id"`
	CostType  CostType  `json:"cost_type"`
	Amount    float64   `json:"amount"`
	Date      Timestamp `json:"date"`
	Notes     *string   `json:"notes,omitempty"`
}
