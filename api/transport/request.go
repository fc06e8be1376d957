package transport

import (
	"net/url"
	"strconv"

	"github.com/fastygo/trucar/domain"
)

type LoginRequest struct {
	Username string `validate:"required,email"`
	Password string `validate:"required"`
}

// Form encodes the OAuth2 password-grant body expected by /login/token.
func (r LoginRequest) Form() url.Values {
	form := url.Values{}
	form.Set("username", r.Username)
	form.Set("password", r.Password)
	return form
}

type VehicleFilter struct {
	Page        int
	RowsPerPage int
	Search      string
}

// Query applies the defaults the dashboard uses (page 1, 8 rows).
func (f VehicleFilter) Query() url.Values {
	page := f.Page
	if page <= 0 {
		page = 1
	}
	rows := f.RowsPerPage
	if rows <= 0 {
		rows = 8
	}
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("rowsPerPage", strconv.Itoa(rows))
	q.Set("search", f.Search)
	return q
}

type VehicleCreateRequest struct {
	Brand               string   `json:"brand" validate:"required"`
	Model               string   `json:"model" validate:"required"`
	Year                int      `json:"year" validate:"required,gte=1900,lte=2100"`
	LicensePlate        *string  `json:"license_plate,omitempty"`
	Identifier          *string  `json:"identifier,omitempty"`
	TelemetryDeviceID   *string  `json:"telemetry_device_id,omitempty"`
	PhotoURL            *string  `json:"photo_url,omitempty" validate:"omitempty,url"`
	CurrentKm           *float64 `json:"current_km,omitempty" validate:"omitempty,gte=0"`
	CurrentEngineHours  *float64 `json:"current_engine_hours,omitempty" validate:"omitempty,gte=0"`
	NextMaintenanceDate *string  `json:"next_maintenance_date,omitempty"`
	NextMaintenanceKm   *float64 `json:"next_maintenance_km,omitempty" validate:"omitempty,gte=0"`
	MaintenanceNotes    *string  `json:"maintenance_notes,omitempty"`
}

type VehicleUpdateRequest struct {
	Brand               *string               `json:"brand,omitempty"`
	Model               *string               `json:"model,omitempty"`
	Year                *int                  `json:"year,omitempty" validate:"omitempty,gte=1900,lte=2100"`
	Status              *domain.VehicleStatus `json:"status,omitempty" validate:"omitempty,oneof=Disponível 'Em uso' 'Em manutenção'"`
	LicensePlate        *string               `json:"license_plate,omitempty"`
	Identifier          *string               `json:"identifier,omitempty"`
	CurrentKm           *float64              `json:"current_km,omitempty" validate:"omitempty,gte=0"`
	CurrentEngineHours  *float64              `json:"current_engine_hours,omitempty" validate:"omitempty,gte=0"`
	NextMaintenanceDate *string               `json:"next_maintenance_date,omitempty"`
	NextMaintenanceKm   *float64              `json:"next_maintenance_km,omitempty" validate:"omitempty,gte=0"`
	MaintenanceNotes    *string               `json:"maintenance_notes,omitempty"`
}

type JourneyFilter struct {
	DriverID  int
	VehicleID int
	DateFrom  string
	DateTo    string
}

// Query drops unset filters.
func (f JourneyFilter) Query() url.Values {
	q := url.Values{}
	if f.DriverID > 0 {
		q.Set("driver_id", strconv.Itoa(f.DriverID))
	}
	if f.VehicleID > 0 {
		q.Set("vehicle_id", strconv.Itoa(f.VehicleID))
	}
	if f.DateFrom != "" {
		q.Set("date_from", f.DateFrom)
	}
	if f.DateTo != "" {
		q.Set("date_to", f.DateTo)
	}
	return q
}

type JourneyStartRequest struct {
	VehicleID          int                `json:"vehicle_id" validate:"required,gt=0"`
	StartMileage       float64            `json:"start_mileage" validate:"gte=0"`
	StartEngineHours   *float64           `json:"start_engine_hours,omitempty" validate:"omitempty,gte=0"`
	TripType           domain.JourneyType `json:"trip_type" validate:"required,oneof=specific_destination free_roam"`
	DestinationAddress string             `json:"destination_address,omitempty" validate:"required_if=TripType specific_destination"`
	TripDescription    string             `json:"trip_description,omitempty"`
	ImplementID        *int               `json:"implement_id,omitempty"`
}

type JourneyEndRequest struct {
	EndMileage     float64  `json:"end_mileage" validate:"gte=0"`
	EndEngineHours *float64 `json:"end_engine_hours,omitempty" validate:"omitempty,gte=0"`
}

type MaintenanceFilter struct {
	Search    string
	VehicleID int
	Limit     int
}

func (f MaintenanceFilter) Query() url.Values {
	q := url.Values{}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	if f.VehicleID > 0 {
		q.Set("vehicle_id", strconv.Itoa(f.VehicleID))
	}
	if f.Limit > 0 {
		q.Set("limit", strconv.Itoa(f.Limit))
	}
	return q
}

type MaintenanceCreateRequest struct {
	VehicleID          int                        `json:"vehicle_id" validate:"required,gt=0"`
	ProblemDescription string                     `json:"problem_description" validate:"required,min=5"`
	Category           domain.MaintenanceCategory `json:"category" validate:"required,oneof=Mecânica Elétrica Funilaria Outro"`
}

type MaintenanceStatusRequest struct {
	Status       domain.MaintenanceStatus `json:"status" validate:"required,oneof=Pendente Aprovado Rejeitado 'Em Progresso' Concluído"`
	ManagerNotes *string                  `json:"manager_notes,omitempty"`
}

type MaintenanceCommentRequest struct {
	CommentText string  `json:"comment_text" validate:"required"`
	FileURL     *string `json:"file_url,omitempty" validate:"omitempty,url"`
}

type FuelLogRequest struct {
	VehicleID       int     `json:"vehicle_id" validate:"required,gt=0"`
	Odometer        float64 `json:"odometer" validate:"gte=0"`
	Liters          float64 `json:"liters" validate:"gt=0"`
	TotalCost       float64 `json:"total_cost" validate:"gte=0"`
	ReceiptPhotoURL *string `json:"receipt_photo_url,omitempty" validate:"omitempty,url"`
}

type FuelLogUpdateRequest struct {
	VehicleID       *int     `json:"vehicle_id,omitempty" validate:"omitempty,gt=0"`
	Odometer        *float64 `json:"odometer,omitempty" validate:"omitempty,gte=0"`
	Liters          *float64 `json:"liters,omitempty" validate:"omitempty,gt=0"`
	TotalCost       *float64 `json:"total_cost,omitempty" validate:"omitempty,gte=0"`
	ReceiptPhotoURL *string  `json:"receipt_photo_url,omitempty" validate:"omitempty,url"`
}

type PartFilter struct {
	Category domain.PartCategory
	Search   string
}

func (f PartFilter) Query() url.Values {
	q := url.Values{}
	if f.Category != "" {
		q.Set("category", string(f.Category))
	}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	return q
}

type PartRequest struct {
	Name            string              `json:"name" validate:"required"`
	Category        domain.PartCategory `json:"category" validate:"required,oneof=Peça Pneu Fluído Consumível Outro"`
	PartNumber      *string             `json:"part_number,omitempty"`
	SerialNumber    *string             `json:"serial_number,omitempty"`
	Brand           *string             `json:"brand,omitempty"`
	MinimumStock    int                 `json:"minimum_stock" validate:"gte=0"`
	InitialQuantity *int                `json:"initial_quantity,omitempty" validate:"omitempty,gte=0"`
	Location        *string             `json:"location,omitempty"`
	Notes           *string             `json:"notes,omitempty"`
	Value           *float64            `json:"value,omitempty" validate:"omitempty,gte=0"`
	LifespanKm      *float64            `json:"lifespan_km,omitempty" validate:"omitempty,gt=0"`
}

type StopPointRequest struct {
	SequenceOrder    int                  `json:"sequence_order" validate:"gte=0"`
	Type             domain.StopPointType `json:"type" validate:"required,oneof=Coleta Entrega"`
	Address          string               `json:"address" validate:"required"`
	CargoDescription *string              `json:"cargo_description,omitempty"`
	ScheduledTime    string               `json:"scheduled_time" validate:"required"`
}

type FreightOrderCreateRequest struct {
	ClientID           int                `json:"client_id" validate:"required,gt=0"`
	Description        *string            `json:"description,omitempty"`
	ScheduledStartTime *string            `json:"scheduled_start_time,omitempty"`
	ScheduledEndTime   *string            `json:"scheduled_end_time,omitempty"`
	StopPoints         []StopPointRequest `json:"stop_points" validate:"required,min=1,dive"`
}

type FreightOrderUpdateRequest struct {
	Description *string               `json:"description,omitempty"`
	Status      *domain.FreightStatus `json:"status,omitempty" validate:"omitempty,oneof=Pendente 'Em Trânsito' Entregue Cancelado"`
	VehicleID   *int                  `json:"vehicle_id,omitempty" validate:"omitempty,gt=0"`
	DriverID    *int                  `json:"driver_id,omitempty" validate:"omitempty,gt=0"`
}

type FreightClaimRequest struct {
	VehicleID int `json:"vehicle_id" validate:"required,gt=0"`
}

type ClientRequest struct {
	Name                string  `json:"name" validate:"required"`
	ContactPerson       *string `json:"contact_person,omitempty"`
	Phone               *string `json:"phone,omitempty"`
	Email               *string `json:"email,omitempty" validate:"omitempty,email"`
	CEP                 *string `json:"cep,omitempty"`
	AddressStreet       *string `json:"address_street,omitempty"`
	AddressNumber       *string `json:"address_number,omitempty"`
	AddressNeighborhood *string `json:"address_neighborhood,omitempty"`
	AddressCity         *string `json:"address_city,omitempty"`
	AddressState        *string `json:"address_state,omitempty" validate:"omitempty,len=2"`
}

// DocumentUpload is sent as multipart/form-data.
type DocumentUpload struct {
	DocumentType string `validate:"required"`
	ExpiryDate   string `validate:"required,datetime=2006-01-02"`
	Notes        string
	VehicleID    int    `validate:"required_without=DriverID"`
	DriverID     int    `validate:"required_without=VehicleID"`
	FileName     string `validate:"required"`
	File         []byte `validate:"required"`
}

// Fields returns the non-file form fields, skipping unset ones.
func (d DocumentUpload) Fields() map[string]string {
	fields := map[string]string{
		"document_type": d.DocumentType,
		"expiry_date":   d.ExpiryDate,
	}
	if d.Notes != "" {
		fields["notes"] = d.Notes
	}
	if d.VehicleID > 0 {
		fields["vehicle_id"] = strconv.Itoa(d.VehicleID)
	}
	if d.DriverID > 0 {
		fields["driver_id"] = strconv.Itoa(d.DriverID)
	}
	return fields
}

type TireInstallRequest struct {
	PartID             int      `json:"part_id" validate:"required,gt=0"`
	PositionCode       string   `json:"position_code" validate:"required"`
	InstallKm          float64  `json:"install_km" validate:"gte=0"`
	InstallEngineHours *float64 `json:"install_engine_hours,omitempty" validate:"omitempty,gte=0"`
}

type TireRemoveRequest struct {
	RemovalKm          float64  `json:"removal_km" validate:"gte=0"`
	RemovalEngineHours *float64 `json:"removal_engine_hours,omitempty" validate:"omitempty,gte=0"`
}

type CostRequest struct {
	CostType domain.CostType `json:"cost_type" validate:"required,oneof=Manutenção Combustível Pedágio Seguro Pneu 'Peças e Componentes' Multa Outros"`
	Amount   float64         `json:"amount" validate:"gt=0"`
	Date     string          `json:"date" validate:"required,datetime=2006-01-02"`
	Notes    *string         `json:"notes,omitempty"`
}

type CostFilter struct {
	StartDate string
	EndDate   string
}

func (f CostFilter) Query() url.Values {
	q := url.Values{}
	if f.StartDate != "" {
		q.Set("start_date", f.StartDate)
	}
	if f.EndDate != "" {
		q.Set("end_date", f.EndDate)
	}
	return q
}

type UserCreateRequest struct {
	FullName  string      `json:"full_name" validate:"required"`
	Email     string      `json:"email" validate:"required,email"`
	Password  string      `json:"password" validate:"required,min=6"`
	Role      domain.Role `json:"role" validate:"required,oneof=active_customer demo_customer driver manager"`
	AvatarURL *string     `json:"avatar_url,omitempty" validate:"omitempty,url"`
}

type UserUpdateRequest struct {
	FullName  *string      `json:"full_name,omitempty" validate:"omitempty,min=1"`
	Email     *string      `json:"email,omitempty" validate:"omitempty,email"`
	Password  *string      `json:"password,omitempty" validate:"omitempty,min=6"`
	Role      *domain.Role `json:"role,omitempty" validate:"omitempty,oneof=active_customer demo_customer driver manager"`
	IsActive  *bool        `json:"is_active,omitempty"`
	AvatarURL *string      `json:"avatar_url,omitempty" validate:"omitempty,url"`
}

type ImplementRequest struct {
	Name       string  `json:"name" validate:"required"`
	Brand      string  `json:"brand" validate:"required"`
	Model      string  `json:"model" validate:"required"`
	Year       int     `json:"year" validate:"required,gte=1900,lte=2100"`
	Identifier *string `json:"identifier,omitempty"`
}

type ImplementUpdateRequest struct {
	Name       *string `json:"name,omitempty" validate:"omitempty,min=1"`
	Brand      *string `json:"brand,omitempty" validate:"omitempty,min=1"`
	Model      *string `json:"model,omitempty" validate:"omitempty,min=1"`
	Year       *int    `json:"year,omitempty" validate:"omitempty,gte=1900,lte=2100"`
	Identifier *string `json:"identifier,omitempty"`
}
