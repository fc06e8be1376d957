// Package terminology resolves the display vocabulary for the active sector.
package terminology

import (
	"sync"

	"github.com/fastygo/trucar/domain"
)

// Resolver holds the active sector. Every accessor derives from it, so the
// strings always match the last SetSector call.
type Resolver struct {
	mu     sync.RWMutex
	sector domain.Sector
}

func New() *Resolver {
	return &Resolver{}
}

// SetSector stores sector as given. Unknown values are kept and resolve to the
// services vocabulary.
func (r *Resolver) SetSector(sector domain.Sector) {
	r.mu.Lock()
	r.sector = sector
	r.mu.Unlock()
}

func (r *Resolver) Sector() domain.Sector {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sector
}

// Strategy returns the full vocabulary for the active sector.
func (r *Resolver) Strategy() domain.Strategy {
	return domain.StrategyFor(r.Sector())
}

func (r *Resolver) VehicleNoun() string {
	return r.Strategy().VehicleNoun
}

func (r *Resolver) VehicleNounPlural() string {
	return r.Strategy().VehicleNounPlural
}

func (r *Resolver) JourneyNoun() string {
	return r.Strategy().JourneyNoun
}

func (r *Resolver) JourneyNounPlural() string {
	return r.Strategy().JourneyNounPlural
}

func (r *Resolver) DistanceUnit() string {
	return r.Strategy().DistanceUnit
}

// FuelUnit is km/l when the distance unit is measured in km, l/h otherwise.
func (r *Resolver) FuelUnit() string {
	return r.Strategy().FuelUnit()
}

func (r *Resolver) PlateOrIdentifierLabel() string {
	return r.Strategy().PlateOrIdentifierLabel
}

func (r *Resolver) StartJourneyButtonLabel() string {
	return r.Strategy().StartJourneyButtonLabel
}

func (r *Resolver) VehiclePageTitle() string {
	return r.Strategy().VehiclePageTitle
}

func (r *Resolver) AddVehicleButtonLabel() string {
	return r.Strategy().AddVehicleButtonLabel
}

func (r *Resolver) EditButtonLabel() string {
	return r.Strategy().EditButtonLabel
}

func (r *Resolver) NewButtonLabel() string {
	return r.Strategy().NewButtonLabel
}

func (r *Resolver) JourneyPageTitle() string {
	return r.Strategy().JourneyPageTitle
}

func (r *Resolver) JourneyHistoryTitle() string {
	return r.Strategy().JourneyHistoryTitle
}

func (r *Resolver) JourneyStartSuccessMessage() string {
	return r.Strategy().JourneyStartSuccessMessage
}

func (r *Resolver) JourneyEndSuccessMessage() string {
	return r.Strategy().JourneyEndSuccessMessage
}

func (r *Resolver) OdometerLabel() string {
	return r.Strategy().OdometerLabel
}
