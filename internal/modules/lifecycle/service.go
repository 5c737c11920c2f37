package lifecycle

import (
	"context"
	"fmt"
	"log"
	"time"

	"altoev/internal/domain"
)

// ReservationRepository is the persistence surface the sweep needs.
type ReservationRepository interface {
	GetActiveForSweep(ctx context.Context) ([]domain.Reservation, error)
	UpdateStatusByReservationID(ctx context.Context, reservationID string, status domain.ReservationStatus) error
}

// Service advances reservation statuses by wall clock: Booked becomes
// Ongoing once the rental starts and Completed once it ends. Cancellation
// is never set here; that belongs to the ingestion path and the manual
// override. Re-running a sweep with no boundary crossed writes nothing.
type Service struct {
	reservations ReservationRepository

	// now is swappable for tests.
	now func() time.Time
}

func NewService(reservations ReservationRepository) *Service {
	return &Service{
		reservations: reservations,
		now:          time.Now,
	}
}

// Sweep evaluates every active record with both rental bounds against the
// current time. Per-record update failures are logged and the sweep moves
// on; only the initial fetch aborts the run.
func (s *Service) Sweep(ctx context.Context) error {
	records, err := s.reservations.GetActiveForSweep(ctx)
	if err != nil {
		return fmt.Errorf("fetching active reservations: %w", err)
	}

	now := s.now()
	for i := range records {
		rec := &records[i]
		next, ok := nextStatus(rec, now)
		if !ok {
			continue
		}

		if err := s.reservations.UpdateStatusByReservationID(ctx, rec.ReservationID, next); err != nil {
			log.Printf("lifecycle sweep: reservation %s: %v", rec.ReservationID, err)
			continue
		}
		log.Printf("lifecycle sweep: reservation %s %s -> %s", rec.ReservationID, rec.Status, next)
	}
	return nil
}

// nextStatus returns the status the record should move to at the given
// time, or ok=false when no transition is due.
func nextStatus(rec *domain.Reservation, now time.Time) (domain.ReservationStatus, bool) {
	if !rec.Status.IsActive() || !rec.HasDateRange() {
		return "", false
	}

	switch {
	case !rec.EndDateTime.After(now):
		return domain.StatusCompleted, true
	case !rec.StartDateTime.After(now) && rec.Status != domain.StatusOngoing:
		return domain.StatusOngoing, true
	}
	return "", false
}
