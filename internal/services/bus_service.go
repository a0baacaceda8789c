package services

import (
	"context"
	"strings"

	"busbooking/internal/domain"
	"busbooking/internal/domain/models"
	"busbooking/internal/repositories"
	"busbooking/internal/utils"
)

type BusService struct {
	Repo      repositories.BusRepo
	Bookings  repositories.BookingRepo
	RequestID string
}

func (s BusService) List(ctx context.Context) ([]models.Bus, error) {
	return s.Repo.List(ctx)
}

func (s BusService) Get(ctx context.Context, id int64) (models.Bus, error) {
	return s.Repo.GetByID(ctx, id)
}

func (s BusService) Create(ctx context.Context, b *models.Bus) error {
	b.BusNumber = strings.TrimSpace(b.BusNumber)
	b.BusName = strings.TrimSpace(b.BusName)
	b.Type = strings.TrimSpace(b.Type)
	b.OperatorName = strings.TrimSpace(b.OperatorName)

	switch {
	case b.BusNumber == "":
		return domain.ValidationError{Field: "busNumber", Msg: "required"}
	case b.BusName == "":
		return domain.ValidationError{Field: "busName", Msg: "required"}
	case b.Type == "":
		return domain.ValidationError{Field: "type", Msg: "required"}
	case b.OperatorName == "":
		return domain.ValidationError{Field: "operatorName", Msg: "required"}
	case b.TotalSeats <= 0:
		return domain.ValidationError{Field: "totalSeats", Msg: "must be a positive integer"}
	case b.PricePerSeat < 0:
		return domain.ValidationError{Field: "pricePerSeat", Msg: "must not be negative"}
	}

	if err := s.Repo.Create(ctx, b); err != nil {
		return err
	}
	utils.LogEvent(s.RequestID, "bus", "create", "bus_number="+b.BusNumber)
	return nil
}

// Update rejects total_seats changes once any booking references the
// bus: seat claims are validated against that count, so changing it
// under live bookings would corrupt the seat map.
func (s BusService) Update(ctx context.Context, id int64, upd models.BusUpdate) (models.Bus, error) {
	current, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return models.Bus{}, err
	}

	if upd.TotalSeats != nil && *upd.TotalSeats != current.TotalSeats {
		if *upd.TotalSeats <= 0 {
			return models.Bus{}, domain.ValidationError{Field: "totalSeats", Msg: "must be a positive integer"}
		}
		booked, err := s.Bookings.HasBookings(ctx, id)
		if err != nil {
			return models.Bus{}, err
		}
		if booked {
			return models.Bus{}, domain.ConflictError{
				Resource: "bus",
				Msg:      "total seats cannot change once bookings exist",
			}
		}
	}

	if err := s.Repo.Update(ctx, id, upd); err != nil {
		return models.Bus{}, err
	}
	return s.Repo.GetByID(ctx, id)
}

func (s BusService) Delete(ctx context.Context, id int64) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}
	utils.LogEvent(s.RequestID, "bus", "delete", "")
	return nil
}
