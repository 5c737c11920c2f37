package domain

import "time"

// WizardNumber is a reservation number handed to the booking wizard before
// a platform reservation exists. Stored so uniqueness survives restarts.
type WizardNumber struct {
	ID        int64     `json:"id"`
	Number    string    `json:"number"`
	CreatedAt time.Time `json:"created_at"`
}
