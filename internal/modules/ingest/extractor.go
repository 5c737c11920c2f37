package ingest

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"altoev/internal/domain"
)

// sourceTimezone is the timezone every date in the vendor's emails is
// written in, regardless of where the server runs.
const sourceTimezone = "America/New_York"

// The vendor's email wording is an unversioned external contract; these
// patterns are the compatibility boundary. Each one is exercised
// independently by the extractor tests.
var (
	reservationIDRe = regexp.MustCompile(`(?i)Reservation ID #(\d+)`)

	// Booking template: "booked from Monday, June 2, 2025 3:00 pm to
	// Wednesday, June 4, 2025 3:00 pm"
	bookingRangeRe = regexp.MustCompile(`(?i)booked from\s+(.+?)\s+(\d{1,2}:\d{2}\s?[ap]m)\s+to\s+(.+?)\s+(\d{1,2}:\d{2}\s?[ap]m)`)

	// Change template: "Trip start: 6/2/25 3:00 pm Trip end: 6/4/25 3:00 pm"
	changeRangeRe = regexp.MustCompile(`(?i)Trip start:\s*(\d{1,2}/\d{1,2}/\d{2})\s+(\d{1,2}:\d{2}\s?[ap]m)\s*(?:\r?\n\s*)?Trip end:\s*(\d{1,2}/\d{1,2}/\d{2})\s+(\d{1,2}:\d{2}\s?[ap]m)`)

	vehicleURLRe = regexp.MustCompile(`(?i)tesla/(model-[3yxs])/(\d{7})`)
	guestNameRe  = regexp.MustCompile(`About the guest\s+([\w\s]+)\n`)
	phoneRe      = regexp.MustCompile(`(\+\d{1,3}\s?\d{1,3}[\s-]?\d{3}[\s-]?\d{4})`)
)

const (
	bookingDateLayout = "Monday, January 2, 2006 3:04 pm"
	changeDateLayout  = "1/2/06 3:04 pm"
)

// Extractor pulls structured reservation fields out of decoded email body
// text. Gating fields (reservation id, date range) report a miss via their
// ok result; cosmetic fields degrade to the "Not Found" sentinel.
type Extractor struct {
	loc *time.Location
}

func NewExtractor() (*Extractor, error) {
	loc, err := time.LoadLocation(sourceTimezone)
	if err != nil {
		return nil, fmt.Errorf("loading source timezone: %w", err)
	}
	return &Extractor{loc: loc}, nil
}

// ReservationID returns the first reservation id in the body.
func (e *Extractor) ReservationID(body string) (string, bool) {
	m := reservationIDRe.FindStringSubmatch(body)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// BookingRange parses the long textual date range of the booking template.
// The returned text preserves the original wording for audit display.
func (e *Extractor) BookingRange(body string) (text string, start, end time.Time, ok bool) {
	m := bookingRangeRe.FindStringSubmatch(body)
	if m == nil {
		return "", time.Time{}, time.Time{}, false
	}

	start, err := e.parseClock(bookingDateLayout, m[1], m[2])
	if err != nil {
		return "", time.Time{}, time.Time{}, false
	}
	end, err = e.parseClock(bookingDateLayout, m[3], m[4])
	if err != nil {
		return "", time.Time{}, time.Time{}, false
	}

	text = fmt.Sprintf("%s %s to %s %s", m[1], m[2], m[3], m[4])
	return text, start, end, true
}

// ChangeRange parses the short numeric date range of the change template.
func (e *Extractor) ChangeRange(body string) (start, end time.Time, ok bool) {
	m := changeRangeRe.FindStringSubmatch(body)
	if m == nil {
		return time.Time{}, time.Time{}, false
	}

	start, err := e.parseClock(changeDateLayout, m[1], m[2])
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	end, err = e.parseClock(changeDateLayout, m[3], m[4])
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}

// Vehicle extracts the model token and 7-digit vehicle number from the
// vendor URL path. Each falls back to the sentinel independently.
func (e *Extractor) Vehicle(body string) (model, number string) {
	m := vehicleURLRe.FindStringSubmatch(body)
	if m == nil {
		return domain.NotFound, domain.NotFound
	}
	return strings.ToLower(m[1]), m[2]
}

// GuestName extracts the text following the "About the guest" anchor.
func (e *Extractor) GuestName(body string) string {
	m := guestNameRe.FindStringSubmatch(body)
	if m == nil {
		return domain.NotFound
	}
	return strings.TrimSpace(m[1])
}

// Phone extracts the first international phone-shaped token.
func (e *Extractor) Phone(body string) string {
	m := phoneRe.FindString(body)
	if m == "" {
		return domain.NotFound
	}
	return strings.TrimSpace(m)
}

// parseClock joins a date phrase and a clock like "3:00 pm" (or "3:00pm")
// and parses them in the source timezone.
func (e *Extractor) parseClock(layout, datePhrase, clock string) (time.Time, error) {
	clock = strings.ToLower(strings.TrimSpace(clock))
	// "3:00pm" -> "3:00 pm"
	if i := strings.IndexAny(clock, "ap"); i > 0 && clock[i-1] != ' ' {
		clock = clock[:i] + " " + clock[i:]
	}
	return time.ParseInLocation(layout, strings.TrimSpace(datePhrase)+" "+clock, e.loc)
}
