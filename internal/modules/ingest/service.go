package ingest

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"altoev/internal/domain"
	"altoev/internal/mail"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Service runs one mail-poll pass: retrieve unseen messages, classify,
// extract, and reconcile each against the reservation store. Failures are
// contained per message; only connectivity failures abort the run.
type Service struct {
	mail         MailSource
	reservations ReservationRepository
	extractor    *Extractor
	feed         FeedPublisher
}

func NewService(
	mailSource MailSource,
	reservations ReservationRepository,
	extractor *Extractor,
	feed FeedPublisher,
) *Service {
	return &Service{
		mail:         mailSource,
		reservations: reservations,
		extractor:    extractor,
		feed:         feed,
	}
}

// Run performs one full poll pass. Messages already processed before an
// error keep their persisted changes; the mail adapter has already marked
// everything retrieved as seen either way.
func (s *Service) Run(ctx context.Context) error {
	messages, err := s.mail.FetchUnseen(ctx)
	if err != nil {
		return fmt.Errorf("fetching mail: %w", err)
	}

	if len(messages) == 0 {
		log.Println("mail poll: no new messages")
		return nil
	}
	log.Printf("mail poll: %d new message(s)", len(messages))

	for _, m := range messages {
		if err := s.processMessage(ctx, m); err != nil {
			return err
		}
	}
	return nil
}

// processMessage handles one message. Classification misses and extraction
// failures are logged and swallowed; only store errors propagate.
func (s *Service) processMessage(ctx context.Context, m mail.Message) error {
	switch Classify(m.Subject) {
	case EventBooking:
		return s.processBooking(ctx, m)
	case EventChange:
		return s.processChange(ctx, m)
	case EventCancellation:
		return s.processCancellation(ctx, m)
	default:
		log.Printf("mail poll: ignoring message uid=%d subject=%q", m.UID, m.Subject)
		return nil
	}
}

func (s *Service) processBooking(ctx context.Context, m mail.Message) error {
	id, ok := s.extractor.ReservationID(m.Body)
	if !ok {
		log.Printf("mail poll: dropping booking uid=%d: no reservation id", m.UID)
		return nil
	}

	// The date range gates the whole event: the lifecycle sweep needs both
	// bounds, so a partial record is worse than no record.
	text, start, end, ok := s.extractor.BookingRange(m.Body)
	if !ok {
		log.Printf("mail poll: dropping booking reservation=%s: date range did not match template", id)
		return nil
	}

	model, number := s.extractor.Vehicle(m.Body)
	name := s.extractor.GuestName(m.Body)
	phone := s.extractor.Phone(m.Body)

	existing, err := s.reservations.GetByReservationID(ctx, id)
	if err != nil {
		return fmt.Errorf("looking up reservation %s: %w", id, err)
	}

	if existing == nil {
		rec := &domain.Reservation{
			ReservationID: id,
			RentalDates:   text,
			StartDateTime: &start,
			EndDateTime:   &end,
			VehicleModel:  model,
			VehicleNumber: number,
			CustomerName:  name,
			CustomerPhone: phone,
			ReceivedDate:  m.Date,
			RawContent:    m.Body,
			Status:        domain.StatusBooked,
		}
		if err := s.reservations.Create(ctx, rec); err != nil {
			if isUniqueViolation(err) {
				log.Printf("mail poll: reservation %s inserted concurrently, skipping", id)
				return nil
			}
			return fmt.Errorf("creating reservation %s: %w", id, err)
		}
		log.Printf("mail poll: reservation %s created, status=%s", id, rec.Status)
		s.publish("created", rec)
		return nil
	}

	updated := *existing
	updated.RentalDates = text
	updated.StartDateTime = &start
	updated.EndDateTime = &end
	updated.VehicleModel = model
	updated.VehicleNumber = number
	updated.CustomerName = name
	updated.CustomerPhone = phone

	if !bookingDiffers(existing, &updated) {
		log.Printf("mail poll: reservation %s unchanged, skipping write", id)
		return nil
	}

	updated.RawContent = m.Body
	if err := s.reservations.Update(ctx, &updated); err != nil {
		return fmt.Errorf("updating reservation %s: %w", id, err)
	}
	log.Printf("mail poll: reservation %s updated", id)
	s.publish("updated", &updated)
	return nil
}

func (s *Service) processChange(ctx context.Context, m mail.Message) error {
	id, ok := s.extractor.ReservationID(m.Body)
	if !ok {
		log.Printf("mail poll: dropping change uid=%d: no reservation id", m.UID)
		return nil
	}

	start, end, ok := s.extractor.ChangeRange(m.Body)
	if !ok {
		log.Printf("mail poll: dropping change reservation=%s: date range did not match template", id)
		return nil
	}

	err := s.reservations.UpdateDates(ctx, id, start, end)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// A change presupposes a prior booking we never saw.
		log.Printf("mail poll: change for unknown reservation %s, skipping", id)
		return nil
	}
	if err != nil {
		return fmt.Errorf("updating dates for reservation %s: %w", id, err)
	}
	log.Printf("mail poll: reservation %s dates changed", id)

	if s.feed != nil {
		if rec, err := s.reservations.GetByReservationID(ctx, id); err == nil && rec != nil {
			s.publish("updated", rec)
		}
	}
	return nil
}

func (s *Service) processCancellation(ctx context.Context, m mail.Message) error {
	id, ok := s.extractor.ReservationID(m.Body)
	if !ok {
		log.Printf("mail poll: dropping cancellation uid=%d: no reservation id", m.UID)
		return nil
	}

	err := s.reservations.UpdateStatusByReservationID(ctx, id, domain.StatusCancelled)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("mail poll: cancellation for unknown reservation %s, skipping", id)
		return nil
	}
	if err != nil {
		return fmt.Errorf("cancelling reservation %s: %w", id, err)
	}
	log.Printf("mail poll: reservation %s marked %s", id, domain.StatusCancelled)

	if s.feed != nil {
		if rec, err := s.reservations.GetByReservationID(ctx, id); err == nil && rec != nil {
			s.publish("cancelled", rec)
		}
	}
	return nil
}

func (s *Service) publish(event string, rec *domain.Reservation) {
	if s.feed != nil {
		s.feed.Publish(event, rec)
	}
}

// isUniqueViolation detects a duplicate reservation id insert, which can
// only happen when two runs race on the same message backlog.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

// bookingDiffers compares every field a booking email carries. Status and
// raw content are excluded: status belongs to the lifecycle, and raw
// content only changes when some tracked field does.
func bookingDiffers(a, b *domain.Reservation) bool {
	if a.RentalDates != b.RentalDates ||
		a.VehicleModel != b.VehicleModel ||
		a.VehicleNumber != b.VehicleNumber ||
		a.CustomerName != b.CustomerName ||
		a.CustomerPhone != b.CustomerPhone {
		return true
	}
	return !timesEqual(a.StartDateTime, b.StartDateTime) ||
		!timesEqual(a.EndDateTime, b.EndDateTime)
}

func timesEqual(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}
