package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name    string
		subject string
		want    EventKind
	}{
		{"booking", "Your Tesla Model 3 is booked!", EventBooking},
		{"booking mixed case", "Your Tesla Model Y IS BOOKED!", EventBooking},
		{"change", "Your trip has changed", EventChange},
		{"cancellation", "John Doe has cancelled their trip with your Tesla", EventCancellation},
		{"cancellation mixed case", "john HAS CANCELLED the upcoming trip WITH YOUR Model S", EventCancellation},
		{"cancelled without anchor", "John has cancelled", EventIgnored},
		{"unrelated", "Weekly newsletter", EventIgnored},
		{"empty", "", EventIgnored},
		{"receipt", "Your trip receipt is ready", EventIgnored},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Classify(tc.subject))
		})
	}
}
