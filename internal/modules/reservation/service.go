package reservation

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"altoev/internal/domain"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type Service struct {
	reservations  ReservationRepository
	wizardNumbers WizardNumberRepository
	feed          FeedPublisher
}

func NewService(
	reservations ReservationRepository,
	wizardNumbers WizardNumberRepository,
	feed FeedPublisher,
) *Service {
	return &Service{
		reservations:  reservations,
		wizardNumbers: wizardNumbers,
		feed:          feed,
	}
}

// List returns every reservation record for the dashboard, newest first.
func (s *Service) List(ctx context.Context) ([]domain.Reservation, error) {
	return s.reservations.GetAll(ctx)
}

// Cancel is the manual override path, distinct from the email-driven one:
// it addresses the record by its store-assigned id. Cancellation is
// terminal and allowed from any prior status.
func (s *Service) Cancel(ctx context.Context, id int64) error {
	err := s.reservations.UpdateStatusByID(ctx, id, domain.StatusCancelled)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	if s.feed != nil {
		if rec, err := s.reservations.GetByID(ctx, id); err == nil && rec != nil {
			s.feed.Publish("cancelled", rec)
		}
	}
	return nil
}

// GenerateNumber issues a unique AJAX-prefixed reservation number for the
// booking wizard and records it so the number survives restarts.
func (s *Service) GenerateNumber(ctx context.Context) (string, error) {
	for {
		number := fmt.Sprintf("AJAX-%d", 100000000+rand.Intn(900000000))

		taken, err := s.wizardNumbers.Exists(ctx, number)
		if err != nil {
			return "", err
		}
		if taken {
			continue
		}

		if err := s.wizardNumbers.Create(ctx, &domain.WizardNumber{Number: number}); err != nil {
			// a concurrent request may win the same number between the
			// Exists check and the insert; draw again
			if isUniqueViolation(err) {
				continue
			}
			return "", err
		}
		return number, nil
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
