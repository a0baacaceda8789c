package models

import "time"

// Bus describes a vehicle. TotalSeats is immutable once any booking
// exists against the bus; the service layer enforces that.
type Bus struct {
	ID           int64     `json:"id"`
	BusNumber    string    `json:"busNumber"`
	BusName      string    `json:"busName"`
	Type         string    `json:"type"`
	TotalSeats   int       `json:"totalSeats"`
	Amenities    []string  `json:"amenities"`
	OperatorName string    `json:"operatorName"`
	PricePerSeat int64     `json:"pricePerSeat"`
	CreatedAt    time.Time `json:"createdAt"`
}

// BusUpdate supports PATCH-style updates based on field presence.
type BusUpdate struct {
	BusName      *string   `json:"busName"`
	Type         *string   `json:"type"`
	TotalSeats   *int      `json:"totalSeats"`
	Amenities    *[]string `json:"amenities"`
	OperatorName *string   `json:"operatorName"`
	PricePerSeat *int64    `json:"pricePerSeat"`
}
