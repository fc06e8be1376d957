package domain

type MaintenanceStatus string

const (
	MaintenancePending    MaintenanceStatus = "Pendente"
	MaintenanceApproved   MaintenanceStatus = "Aprovado"
	MaintenanceRejected   MaintenanceStatus = "Rejeitado"
	MaintenanceInProgress MaintenanceStatus = "Em Progresso"
	MaintenanceCompleted  MaintenanceStatus = "Concluído"
)

type MaintenanceCategory string

const (
	MaintenanceMechanical MaintenanceCategory = "Mecânica"
	MaintenanceElectrical MaintenanceCategory = "Elétrica"
	MaintenanceBodywork   MaintenanceCategory = "Funilaria"
	MaintenanceOther      MaintenanceCategory = "Outro"
)

type MaintenanceComment struct {
	ID          int       `json:"id"`
	CommentText string    `json:"comment_text"`
	FileURL     *string   `json:"file_url,omitempty"`
	CreatedAt   Timestamp `json:"created_at"`
	User        *User     `json:"user,omitempty"`
}

// MaintenanceRequest is a problem report raised against a vehicle.
type MaintenanceRequest struct {
	ID                 int                  `json:"id"`
	ProblemDescription string               `json:"problem_description"`
	Status             MaintenanceStatus    `json:"status"`
	Category           MaintenanceCategory  `json:"category"`
	Reporter           *User                `json:"reporter,omitempty"`
	Vehicle            *Vehicle             `json:"vehicle,omitempty"`
	Approver           *User                `json:"approver,omitempty"`
	ManagerNotes       *string              `json:"manager_notes,omitempty"`
	CreatedAt          Timestamp            `json:"created_at"`
	UpdatedAt          *Timestamp           `json:"updated_at,omitempty"`
	Comments           []MaintenanceComment `json:"comments"`
}

func (m *MaintenanceRequest) IsOpen() bool {
	if m == nil {
		return false
	}
	switch m.Status {
	case MaintenanceRejected, MaintenanceCompleted:
		return false
	default:
		return true
	}
}
