package domain

import "time"

type ExtraPriceType string

const (
	PricePerDay         ExtraPriceType = "daily"
	PricePerReservation ExtraPriceType = "reservation"
)

// Extra is an add-on (insurance, mileage, recharge) priced either per day
// or per reservation, shown by the booking wizard.
type Extra struct {
	ID          int64          `json:"id"`
	Name        string         `json:"name"`
	Price       float64        `json:"price"`
	PriceType   ExtraPriceType `json:"price_type"`
	Description string         `json:"description"`
	CreatedAt   time.Time      `json:"created_at"`
}
