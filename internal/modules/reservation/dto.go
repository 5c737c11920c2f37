package reservation

// GenerateNumberResponse carries a freshly issued wizard reservation number.
type GenerateNumberResponse struct {
	ReservationNumber string `json:"reservationNumber"`
}
