package catalog

import (
	"context"

	"altoev/internal/domain"
)

// VehicleRepository defines the fleet reads the wizard needs.
type VehicleRepository interface {
	GetActive(ctx context.Context) ([]domain.Vehicle, error)
}

// ExtraRepository defines the add-on reads the wizard needs.
type ExtraRepository interface {
	GetAll(ctx context.Context) ([]domain.Extra, error)
}

// Service serves the reference data the booking wizard prices against.
type Service struct {
	vehicles VehicleRepository
	extras   ExtraRepository
}

func NewService(vehicles VehicleRepository, extras ExtraRepository) *Service {
	return &Service{vehicles: vehicles, extras: extras}
}

func (s *Service) ListVehicles(ctx context.Context) ([]domain.Vehicle, error) {
	return s.vehicles.GetActive(ctx)
}

func (s *Service) ListExtras(ctx context.Context) ([]domain.Extra, error) {
	return s.extras.GetAll(ctx)
}
