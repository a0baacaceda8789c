package inventory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"busbooking/internal/domain"
	"busbooking/internal/domain/models"

	"github.com/google/uuid"
)

// Store is the persistence collaborator. CreateBooking and
// CancelBooking must be atomic units of work: seat claims and the
// booking row both commit or neither does.
type Store interface {
	BusTotalSeats(ctx context.Context, busID int64) (int, error)
	ReservedSeats(ctx context.Context, busID int64, journeyDate string) ([]int, error)
	CreateBooking(ctx context.Context, b *models.Booking) error
	GetBooking(ctx context.Context, bookingID int64) (models.Booking, error)
	CancelBooking(ctx context.Context, bookingID int64) (models.Booking, error)
}

// FareLookup is a read-only collaborator for fare computation.
type FareLookup interface {
	BaseFare(ctx context.Context, routeID int64) (int64, error)
}

const defaultLockWait = 2 * time.Second

// maxAttempts bounds retries on storage contention before surfacing
// BusyError to the caller.
const maxAttempts = 3

// Manager owns seat occupancy per (bus, journey date). All mutation of
// seat state goes through Reserve and Release; both serialize on the
// journey key so check-then-claim is a single critical section.
type Manager struct {
	store    Store
	fares    FareLookup
	locks    *lockTable
	lockWait time.Duration
}

func NewManager(store Store, fares FareLookup, lockWait time.Duration) *Manager {
	if lockWait <= 0 {
		lockWait = defaultLockWait
	}
	return &Manager{
		store:    store,
		fares:    fares,
		locks:    newLockTable(),
		lockWait: lockWait,
	}
}

type ReserveRequest struct {
	UserID      int64
	BusID       int64
	RouteID     int64
	JourneyDate string // YYYY-MM-DD
	Seats       []int
	Passengers  []models.Passenger
}

func journeyKey(busID int64, journeyDate string) string {
	return fmt.Sprintf("%d@%s", busID, journeyDate)
}

// Reserve atomically claims the requested seats for (bus, journey date)
// and records a confirmed booking. On any failure nothing is committed:
// a rejected reservation leaves seat state untouched.
func (m *Manager) Reserve(ctx context.Context, req ReserveRequest) (*models.Booking, error) {
	totalSeats, err := m.store.BusTotalSeats(ctx, req.BusID)
	if err != nil {
		return nil, err
	}

	if err := validateSeats(req.Seats, totalSeats); err != nil {
		return nil, err
	}
	if len(req.Passengers) != len(req.Seats) {
		return nil, domain.ValidationError{
			Field: "passengers",
			Msg:   fmt.Sprintf("expected %d passenger(s) for %d seat(s), got %d", len(req.Seats), len(req.Seats), len(req.Passengers)),
		}
	}

	baseFare, err := m.fares.BaseFare(ctx, req.RouteID)
	if err != nil {
		return nil, err
	}

	key := journeyKey(req.BusID, req.JourneyDate)
	release, err := m.locks.acquire(ctx, key, m.lockWait)
	if err != nil {
		return nil, err
	}
	defer release()

	passengers := make([]models.Passenger, len(req.Passengers))
	copy(passengers, req.Passengers)
	for i := range passengers {
		passengers[i].SeatNumber = req.Seats[i]
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		reserved, err := m.store.ReservedSeats(ctx, req.BusID, req.JourneyDate)
		if err != nil {
			return nil, err
		}
		if conflicts := intersect(req.Seats, reserved); len(conflicts) > 0 {
			return nil, domain.SeatConflictError{Seats: conflicts}
		}

		booking := &models.Booking{
			Ref:         uuid.NewString(),
			UserID:      req.UserID,
			BusID:       req.BusID,
			RouteID:     req.RouteID,
			JourneyDate: req.JourneyDate,
			Seats:       append([]int(nil), req.Seats...),
			Passengers:  passengers,
			TotalFare:   baseFare * int64(len(req.Seats)),
			Status:      models.BookingConfirmed,
			CreatedAt:   time.Now(),
		}

		err = m.store.CreateBooking(ctx, booking)
		if err == nil {
			return booking, nil
		}
		// A conflict here means another writer (possibly another
		// process) committed the seat first; first committer wins.
		if domain.IsSeatConflict(err) {
			return nil, err
		}
		if !domain.IsBusy(err) {
			return nil, err
		}
		lastErr = err
	}
	return nil, domain.BusyError{Key: key, Err: lastErr}
}

// Release cancels a booking exactly once, returning its seats to the
// journey seat map in the same unit of work. Cancelling an already
// cancelled booking fails with AlreadyCancelledError and changes
// nothing.
func (m *Manager) Release(ctx context.Context, bookingID int64) (models.Booking, error) {
	booking, err := m.store.GetBooking(ctx, bookingID)
	if err != nil {
		return models.Booking{}, err
	}

	key := journeyKey(booking.BusID, booking.JourneyDate)
	release, err := m.locks.acquire(ctx, key, m.lockWait)
	if err != nil {
		return models.Booking{}, err
	}
	defer release()

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		cancelled, err := m.store.CancelBooking(ctx, bookingID)
		if err == nil {
			return cancelled, nil
		}
		if !domain.IsBusy(err) {
			return models.Booking{}, err
		}
		lastErr = err
	}
	return models.Booking{}, domain.BusyError{Key: key, Err: lastErr}
}

// Availability returns the free seat numbers for (bus, journey date),
// reflecting committed reservations only.
func (m *Manager) Availability(ctx context.Context, busID int64, journeyDate string) ([]int, error) {
	totalSeats, err := m.store.BusTotalSeats(ctx, busID)
	if err != nil {
		return nil, err
	}
	reserved, err := m.store.ReservedSeats(ctx, busID, journeyDate)
	if err != nil {
		return nil, err
	}

	taken := make(map[int]bool, len(reserved))
	for _, s := range reserved {
		taken[s] = true
	}
	free := make([]int, 0, totalSeats-len(reserved))
	for s := 1; s <= totalSeats; s++ {
		if !taken[s] {
			free = append(free, s)
		}
	}
	return free, nil
}

func validateSeats(seats []int, totalSeats int) error {
	if len(seats) == 0 {
		return domain.ValidationError{Field: "seats", Msg: "at least one seat is required"}
	}
	seen := make(map[int]bool, len(seats))
	for _, s := range seats {
		if s < 1 || s > totalSeats {
			return domain.ValidationError{
				Field: "seats",
				Msg:   fmt.Sprintf("seat %d outside valid range 1..%d", s, totalSeats),
			}
		}
		if seen[s] {
			return domain.ValidationError{
				Field: "seats",
				Msg:   fmt.Sprintf("seat %d requested more than once", s),
			}
		}
		seen[s] = true
	}
	return nil
}

func intersect(requested, reserved []int) []int {
	taken := make(map[int]bool, len(reserved))
	for _, s := range reserved {
		taken[s] = true
	}
	var out []int
	for _, s := range requested {
		if taken[s] {
			out = append(out, s)
		}
	}
	sort.Ints(out)
	return out
}
