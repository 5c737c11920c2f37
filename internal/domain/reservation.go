package domain

import "time"

type ReservationStatus string

const (
	StatusBooked    ReservationStatus = "Booked"
	StatusOngoing   ReservationStatus = "Ongoing"
	StatusCompleted ReservationStatus = "Completed"
	StatusCancelled ReservationStatus = "Cancelled"

	// StatusValid is the legacy default written by early revisions of the
	// ingestion job. Readers treat it the same as StatusBooked.
	StatusValid ReservationStatus = "Valid"
)

// NotFound is the sentinel stored for extracted fields that did not match
// any pattern in the source email.
const NotFound = "Not Found"

// Reservation is a rental booking parsed out of a platform notification
// email. ReservationID is the natural key assigned by the rental platform;
// ID is the store-assigned identifier used by the REST layer.
type Reservation struct {
	ID            int64             `json:"id"`
	ReservationID string            `json:"reservation_id"`
	RentalDates   string            `json:"rental_dates"`
	StartDateTime *time.Time        `json:"start_date_time,omitempty"`
	EndDateTime   *time.Time        `json:"end_date_time,omitempty"`
	VehicleModel  string            `json:"vehicle_model"`
	VehicleNumber string            `json:"vehicle_number"`
	CustomerName  string            `json:"customer_name"`
	CustomerPhone string            `json:"customer_phone"`
	ReceivedDate  time.Time         `json:"received_date"`
	RawContent    string            `json:"raw_content,omitempty"`
	Status        ReservationStatus `json:"status"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

// HasDateRange reports whether both rental bounds were parsed. Records
// without both bounds never take part in lifecycle sweeps.
func (r *Reservation) HasDateRange() bool {
	return r.StartDateTime != nil && r.EndDateTime != nil
}

// IsActive reports whether the lifecycle sweep should still consider this
// record. Cancelled and Completed are terminal.
func (s ReservationStatus) IsActive() bool {
	switch s {
	case StatusBooked, StatusOngoing, StatusValid:
		return true
	}
	return false
}
