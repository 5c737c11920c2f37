package reservation

import (
	"context"

	"altoev/internal/domain"
)

// ReservationRepository defines the store operations the REST layer uses.
type ReservationRepository interface {
	GetAll(ctx context.Context) ([]domain.Reservation, error)
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	UpdateStatusByID(ctx context.Context, id int64, status domain.ReservationStatus) error
}

// WizardNumberRepository persists issued wizard reservation numbers so
// uniqueness holds across restarts.
type WizardNumberRepository interface {
	Exists(ctx context.Context, number string) (bool, error)
	Create(ctx context.Context, n *domain.WizardNumber) error
}

// FeedPublisher pushes reservation changes to connected dashboard clients.
type FeedPublisher interface {
	Publish(event string, r *domain.Reservation)
}
