package domain

import "strings"

// Strategy is the immutable set of display strings for one sector.
type Strategy struct {
	Sector                     Sector
	VehicleNoun                string
	VehicleNounPlural          string
	JourneyNoun                string
	JourneyNounPlural          string
	DistanceUnit               string
	PlateOrIdentifierLabel     string
	StartJourneyButtonLabel    string
	VehiclePageTitle           string
	AddVehicleButtonLabel      string
	EditButtonLabel            string
	NewButtonLabel             string
	JourneyPageTitle           string
	JourneyHistoryTitle        string
	JourneyStartSuccessMessage string
	JourneyEndSuccessMessage   string
	OdometerLabel              string
}

// FuelUnit reports km per liter for distance-measured sectors and liters per hour otherwise.
func (s Strategy) FuelUnit() string {
	if strings.Contains(strings.ToLower(s.DistanceUnit), "km") {
		return "km/l"
	}
	return "l/h"
}

var (
	AgroStrategy = Strategy{
		Sector:                     SectorAgriculture,
		VehicleNoun:                "Máquina",
		VehicleNounPlural:          "Máquinas",
		JourneyNoun:                "Operação",
		JourneyNounPlural:          "Operações",
		DistanceUnit:               "Horas",
		PlateOrIdentifierLabel:     "Identificador",
		StartJourneyButtonLabel:    "Iniciar Operação",
		VehiclePageTitle:           "Gerenciamento de Máquinas",
		AddVehicleButtonLabel:      "Adicionar Máquina",
		EditButtonLabel:            "Editar Máquina",
		NewButtonLabel:             "Nova Máquina",
		JourneyPageTitle:           "Operações em Campo",
		JourneyHistoryTitle:        "Histórico de Operações",
		JourneyStartSuccessMessage: "Operação iniciada com sucesso!",
		JourneyEndSuccessMessage:   "Operação finalizada com sucesso!",
		OdometerLabel:              "Horímetro",
	}

	ServicesStrategy = Strategy{
		Sector:                     SectorServices,
		VehicleNoun:                "Veículo",
		VehicleNounPlural:          "Veículos",
		JourneyNoun:                "Viagem",
		JourneyNounPlural:          "Viagens",
		DistanceUnit:               "km",
		PlateOrIdentifierLabel:     "Placa",
		StartJourneyButtonLabel:    "Iniciar Viagem",
		VehiclePageTitle:           "Gerenciamento de Veículos",
		AddVehicleButtonLabel:      "Adicionar Veículo",
		EditButtonLabel:            "Editar Veículo",
		NewButtonLabel:             "Novo Veículo",
		JourneyPageTitle:           "Viagens",
		JourneyHistoryTitle:        "Histórico de Viagens",
		JourneyStartSuccessMessage: "Viagem iniciada com sucesso!",
		JourneyEndSuccessMessage:   "Viagem finalizada com sucesso!",
		OdometerLabel:              "Odômetro",
	}

	FreightStrategy = Strategy{
		Sector:                     SectorFreight,
		VehicleNoun:                "Caminhão",
		VehicleNounPlural:          "Caminhões",
		JourneyNoun:                "Frete",
		JourneyNounPlural:          "Fretes",
		DistanceUnit:               "km",
		PlateOrIdentifierLabel:     "Placa",
		StartJourneyButtonLabel:    "Iniciar Frete",
		VehiclePageTitle:           "Gerenciamento de Frota",
		AddVehicleButtonLabel:      "Adicionar Caminhão",
		EditButtonLabel:            "Editar Caminhão",
		NewButtonLabel:             "Novo Caminhão",
		JourneyPageTitle:           "Fretes em Andamento",
		JourneyHistoryTitle:        "Histórico de Fretes",
		JourneyStartSuccessMessage: "Frete iniciado com sucesso!",
		JourneyEndSuccessMessage:   "Frete finalizado com sucesso!",
		OdometerLabel:              "Odômetro",
	}

	ConstructionStrategy = Strategy{
		Sector:                     SectorConstruction,
		VehicleNoun:                "Equipamento",
		VehicleNounPlural:          "Equipamentos",
		JourneyNoun:                "Obra",
		JourneyNounPlural:          "Obras",
		DistanceUnit:               "Horas de uso",
		PlateOrIdentifierLabel:     "Identificador",
		StartJourneyButtonLabel:    "Iniciar Uso",
		VehiclePageTitle:           "Gerenciamento de Equipamentos",
		AddVehicleButtonLabel:      "Adicionar Equipamento",
		EditButtonLabel:            "Editar Equipamento",
		NewButtonLabel:             "Novo Equipamento",
		JourneyPageTitle:           "Uso em Obras",
		JourneyHistoryTitle:        "Histórico de Uso",
		JourneyStartSuccessMessage: "Uso do equipamento iniciado!",
		JourneyEndSuccessMessage:   "Uso do equipamento finalizado!",
		OdometerLabel:              "Horímetro",
	}
)

// StrategyFor selects the strategy for a sector. Anything outside the four known
// sectors falls back to ServicesStrategy.
func StrategyFor(sector Sector) Strategy {
	switch sector {
	case SectorAgriculture:
		return AgroStrategy
	case SectorServices:
		return ServicesStrategy
	case SectorFreight:
		return FreightStrategy
	case SectorConstruction:
		return ConstructionStrategy
	default:
		return ServicesStrategy
	}
}
