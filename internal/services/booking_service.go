package services

import (
	"context"
	"fmt"
	"strings"

	"busbooking/internal/cache"
	"busbooking/internal/domain"
	"busbooking/internal/domain/models"
	"busbooking/internal/inventory"
	"busbooking/internal/repositories"
	"busbooking/internal/utils"
)

// BookingService fronts the seat inventory manager for the HTTP layer:
// it validates the request shape, delegates the atomic reserve/release
// to the manager, and keeps the availability cache coherent.
type BookingService struct {
	Inventory *inventory.Manager
	Repo      repositories.BookingRepo
	Cache     cache.Availability
	RequestID string
}

type CreateBookingRequest struct {
	UserID      int64              `json:"userId"`
	BusID       int64              `json:"busId"`
	RouteID     int64              `json:"routeId"`
	JourneyDate string             `json:"journeyDate"`
	Seats       []int              `json:"seats"`
	Passengers  []models.Passenger `json:"passengers"`
}

func (s BookingService) Create(ctx context.Context, req CreateBookingRequest) (*models.Booking, error) {
	if req.BusID <= 0 {
		return nil, domain.ValidationError{Field: "busId", Msg: "required"}
	}
	if req.RouteID <= 0 {
		return nil, domain.ValidationError{Field: "routeId", Msg: "required"}
	}
	date, err := utils.ParseDate(req.JourneyDate)
	if err != nil {
		return nil, domain.ValidationError{Field: "journeyDate", Msg: "expected YYYY-MM-DD", Err: err}
	}
	for i, p := range req.Passengers {
		if strings.TrimSpace(p.Name) == "" {
			return nil, domain.ValidationError{
				Field: "passengers",
				Msg:   fmt.Sprintf("passenger %d has no name", i+1),
			}
		}
	}

	booking, err := s.Inventory.Reserve(ctx, inventory.ReserveRequest{
		UserID:      req.UserID,
		BusID:       req.BusID,
		RouteID:     req.RouteID,
		JourneyDate: utils.FormatDate(date),
		Seats:       req.Seats,
		Passengers:  req.Passengers,
	})
	if err != nil {
		return nil, err
	}

	s.Cache.Invalidate(ctx, booking.BusID, booking.JourneyDate)
	utils.LogEvent(s.RequestID, "booking", "reserve",
		fmt.Sprintf("booking_id=%d bus_id=%d date=%s seats=%d", booking.ID, booking.BusID, booking.JourneyDate, len(booking.Seats)))
	return booking, nil
}

func (s BookingService) Cancel(ctx context.Context, bookingID int64) (models.Booking, error) {
	booking, err := s.Inventory.Release(ctx, bookingID)
	if err != nil {
		return models.Booking{}, err
	}

	s.Cache.Invalidate(ctx, booking.BusID, booking.JourneyDate)
	utils.LogEvent(s.RequestID, "booking", "cancel",
		fmt.Sprintf("booking_id=%d bus_id=%d date=%s", booking.ID, booking.BusID, booking.JourneyDate))
	return booking, nil
}

// Availability serves free seats, cache first. Cached entries are only
// written from committed state and invalidated on every mutation.
func (s BookingService) Availability(ctx context.Context, busID int64, journeyDate string) ([]int, error) {
	date, err := utils.ParseDate(journeyDate)
	if err != nil {
		return nil, domain.ValidationError{Field: "date", Msg: "expected YYYY-MM-DD", Err: err}
	}
	normalized := utils.FormatDate(date)

	if seats, ok := s.Cache.Get(ctx, busID, normalized); ok {
		return seats, nil
	}

	seats, err := s.Inventory.Availability(ctx, busID, normalized)
	if err != nil {
		return nil, err
	}
	s.Cache.Set(ctx, busID, normalized, seats)
	return seats, nil
}

func (s BookingService) GetByID(ctx context.Context, bookingID int64) (models.Booking, error) {
	return s.Repo.GetBooking(ctx, bookingID)
}

func (s BookingService) ListByUser(ctx context.Context, userID int64) ([]models.Booking, error) {
	return s.Repo.ListByUser(ctx, userID)
}

func (s BookingService) ListAll(ctx context.Context) ([]models.Booking, error) {
	return s.Repo.ListAll(ctx)
}
