package models

import "time"

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
)

// Booking references seats but does not claim capacity by itself: seat
// occupancy lives in journey_seats, keyed by (bus, journey date).
type Booking struct {
	ID          int64         `json:"id"`
	Ref         string        `json:"ref"`
	UserID      int64         `json:"userId"`
	BusID       int64         `json:"busId"`
	RouteID     int64         `json:"routeId"`
	JourneyDate string        `json:"journeyDate"` // YYYY-MM-DD
	Seats       []int         `json:"seats"`
	Passengers  []Passenger   `json:"passengers"`
	TotalFare   int64         `json:"totalFare"`
	Status      BookingStatus `json:"status"`
	CreatedAt   time.Time     `json:"createdAt"`
	CancelledAt *time.Time    `json:"cancelledAt,omitempty"`
}

// Passenger is aligned one-to-one with a seat number in its booking.
type Passenger struct {
	SeatNumber int    `json:"seatNumber"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
}
