package ingest

import (
	"context"
	"time"

	"altoev/internal/domain"
	"altoev/internal/mail"
)

// MailSource retrieves unseen messages; retrieval marks them seen, so a
// message is handed to the reconciler at most once.
type MailSource interface {
	FetchUnseen(ctx context.Context) ([]mail.Message, error)
}

// ReservationRepository is the persistence surface the reconciler needs.
type ReservationRepository interface {
	GetByReservationID(ctx context.Context, reservationID string) (*domain.Reservation, error)
	Create(ctx context.Context, r *domain.Reservation) error
	Update(ctx context.Context, r *domain.Reservation) error
	UpdateDates(ctx context.Context, reservationID string, start, end time.Time) error
	UpdateStatusByReservationID(ctx context.Context, reservationID string, status domain.ReservationStatus) error
}

// FeedPublisher pushes reservation changes to connected dashboard clients.
type FeedPublisher interface {
	Publish(event string, r *domain.Reservation)
}
