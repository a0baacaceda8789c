package models

import "time"

// Route is a scheduled journey of a bus between two cities on a date.
type Route struct {
	ID            int64     `json:"id"`
	From          string    `json:"from"`
	To            string    `json:"to"`
	DistanceKM    int       `json:"distanceKm"`
	Duration      string    `json:"duration"`
	DepartureTime string    `json:"departureTime"`
	ArrivalTime   string    `json:"arrivalTime"`
	BaseFare      int64     `json:"baseFare"`
	BusID         int64     `json:"busId"`
	JourneyDate   string    `json:"journeyDate"` // YYYY-MM-DD
	CreatedAt     time.Time `json:"createdAt"`
}

type RouteUpdate struct {
	From          *string `json:"from"`
	To            *string `json:"to"`
	DistanceKM    *int    `json:"distanceKm"`
	Duration      *string `json:"duration"`
	DepartureTime *string `json:"departureTime"`
	ArrivalTime   *string `json:"arrivalTime"`
	BaseFare      *int64  `json:"baseFare"`
}
