package domain

import "time"

type VehicleStatus string

const (
	VehicleActive   VehicleStatus = "Active"
	VehicleInactive VehicleStatus = "Inactive"
)

// Vehicle is fleet reference data shown by the booking wizard. It carries
// no lifecycle logic.
type Vehicle struct {
	ID         int64         `json:"id"`
	CarName    string        `json:"car_name"`
	Year       int           `json:"year"`
	Make       string        `json:"make"`
	Model      string        `json:"model"`
	VIN        string        `json:"vin"`
	DailyPrice float64       `json:"daily_price"`
	Status     VehicleStatus `json:"status"`
	CreatedAt  time.Time     `json:"created_at"`
}
