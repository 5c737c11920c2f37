package ingest

import (
	"regexp"
	"strings"
)

// EventKind is what a notification email's subject line says happened.
type EventKind string

const (
	EventBooking      EventKind = "booking"
	EventChange       EventKind = "change"
	EventCancellation EventKind = "cancellation"
	EventIgnored      EventKind = "ignored"
)

var cancellationSubjectRe = regexp.MustCompile(`(?i)has cancelled.*trip with your`)

// Classify maps a subject line to exactly one event kind. Anything that is
// not a recognized booking, change or cancellation subject is ignored.
func Classify(subject string) EventKind {
	lower := strings.ToLower(subject)

	switch {
	case strings.Contains(lower, "is booked"):
		return EventBooking
	case strings.Contains(lower, "has changed"):
		return EventChange
	case cancellationSubjectRe.MatchString(subject):
		return EventCancellation
	}
	return EventIgnored
}
