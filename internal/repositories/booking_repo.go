package repositories

import (
	"context"
	"database/sql"
	"errors"

	intconfig "busbooking/internal/config"
	"busbooking/internal/domain"
	"busbooking/internal/domain/models"
)

type BookingRepo struct {
	DB *sql.DB
}

func (r BookingRepo) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// BusTotalSeats returns the seat count of a bus, NotFoundError when the
// bus does not exist.
func (r BookingRepo) BusTotalSeats(ctx context.Context, busID int64) (int, error) {
	var total int
	err := r.db().QueryRowContext(ctx,
		`SELECT total_seats FROM buses WHERE id=?`, busID).Scan(&total)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, domain.NotFoundError{Resource: "bus"}
		}
		return 0, domain.InternalError{Err: err}
	}
	return total, nil
}

// ReservedSeats lists committed seat claims for (bus, journey date).
func (r BookingRepo) ReservedSeats(ctx context.Context, busID int64, journeyDate string) ([]int, error) {
	rows, err := r.db().QueryContext(ctx, `
		SELECT seat_number FROM journey_seats
		WHERE bus_id=? AND journey_date=?
		ORDER BY seat_number`, busID, journeyDate)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	defer rows.Close()

	var seats []int
	for rows.Next() {
		var s int
		if err := rows.Scan(&s); err != nil {
			return nil, domain.InternalError{Err: err}
		}
		seats = append(seats, s)
	}
	return seats, rows.Err()
}

// CreateBooking commits the booking row, its seat claims, and its
// passengers as one transaction. The unique key on journey_seats turns
// a racing claim into SeatConflictError; nothing partial survives.
func (r BookingRepo) CreateBooking(ctx context.Context, b *models.Booking) error {
	tx, err := r.db().BeginTx(ctx, nil)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO bookings (booking_ref, user_id, bus_id, route_id, journey_date, total_fare, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		b.Ref, b.UserID, b.BusID, b.RouteID, b.JourneyDate, b.TotalFare, string(b.Status), b.CreatedAt)
	if err != nil {
		return classifyWriteError(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return domain.InternalError{Err: err}
	}
	b.ID = id

	for _, seat := range b.Seats {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO journey_seats (bus_id, journey_date, seat_number, booking_id)
			VALUES (?, ?, ?, ?)`,
			b.BusID, b.JourneyDate, seat, id); err != nil {
			if isDuplicateKey(err) {
				return domain.SeatConflictError{Seats: []int{seat}, Err: err}
			}
			return classifyWriteError(err)
		}
	}

	for _, p := range b.Passengers {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO booking_passengers (booking_id, seat_number, name, email, phone)
			VALUES (?, ?, ?, ?, ?)`,
			id, p.SeatNumber, p.Name, p.Email, p.Phone); err != nil {
			return classifyWriteError(err)
		}
	}

	if err := tx.Commit(); err != nil {
		return classifyWriteError(err)
	}
	return nil
}

// GetBooking loads a booking with its passenger/seat list. Seat numbers
// come from booking_passengers so cancelled bookings keep their history
// even after the journey_seats rows are freed.
func (r BookingRepo) GetBooking(ctx context.Context, bookingID int64) (models.Booking, error) {
	var (
		b           models.Booking
		status      string
		cancelledAt sql.NullTime
	)
	err := r.db().QueryRowContext(ctx, `
		SELECT id, booking_ref, user_id, bus_id, route_id,
		       DATE_FORMAT(journey_date, '%Y-%m-%d'), total_fare, status, created_at, cancelled_at
		FROM bookings WHERE id=?`, bookingID).Scan(
		&b.ID, &b.Ref, &b.UserID, &b.BusID, &b.RouteID,
		&b.JourneyDate, &b.TotalFare, &status, &b.CreatedAt, &cancelledAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Booking{}, domain.NotFoundError{Resource: "booking"}
		}
		return models.Booking{}, domain.InternalError{Err: err}
	}
	b.Status = models.BookingStatus(status)
	if cancelledAt.Valid {
		b.CancelledAt = &cancelledAt.Time
	}

	if err := r.attachPassengers(ctx, &b); err != nil {
		return models.Booking{}, err
	}
	return b, nil
}

// CancelBooking marks the booking cancelled and frees its seats in one
// transaction. The row lock makes the status check-and-set atomic, so a
// second cancel always observes 'cancelled' and fails cleanly.
func (r BookingRepo) CancelBooking(ctx context.Context, bookingID int64) (models.Booking, error) {
	tx, err := r.db().BeginTx(ctx, nil)
	if err != nil {
		return models.Booking{}, domain.InternalError{Err: err}
	}
	defer tx.Rollback()

	var status string
	err = tx.QueryRowContext(ctx,
		`SELECT status FROM bookings WHERE id=? FOR UPDATE`, bookingID).Scan(&status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Booking{}, domain.NotFoundError{Resource: "booking"}
		}
		return models.Booking{}, classifyWriteError(err)
	}
	if models.BookingStatus(status) == models.BookingCancelled {
		return models.Booking{}, domain.AlreadyCancelledError{BookingID: bookingID}
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE bookings SET status='cancelled', cancelled_at=NOW() WHERE id=?`, bookingID); err != nil {
		return models.Booking{}, classifyWriteError(err)
	}
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM journey_seats WHERE booking_id=?`, bookingID); err != nil {
		return models.Booking{}, classifyWriteError(err)
	}

	if err := tx.Commit(); err != nil {
		return models.Booking{}, classifyWriteError(err)
	}

	return r.GetBooking(ctx, bookingID)
}

// ListByUser returns a user's bookings newest first.
func (r BookingRepo) ListByUser(ctx context.Context, userID int64) ([]models.Booking, error) {
	return r.list(ctx, `WHERE user_id=?`, userID)
}

// ListAll returns every booking newest first.
func (r BookingRepo) ListAll(ctx context.Context) ([]models.Booking, error) {
	return r.list(ctx, ``)
}

// HasBookings reports whether any booking (of any status) references
// the bus; used to freeze total_seats after the first sale.
func (r BookingRepo) HasBookings(ctx context.Context, busID int64) (bool, error) {
	var n int
	err := r.db().QueryRowContext(ctx,
		`SELECT COUNT(*) FROM bookings WHERE bus_id=?`, busID).Scan(&n)
	if err != nil {
		return false, domain.InternalError{Err: err}
	}
	return n > 0, nil
}

func (r BookingRepo) list(ctx context.Context, where string, args ...any) ([]models.Booking, error) {
	query := `
		SELECT id, booking_ref, user_id, bus_id, route_id,
		       DATE_FORMAT(journey_date, '%Y-%m-%d'), total_fare, status, created_at, cancelled_at
		FROM bookings ` + where + ` ORDER BY created_at DESC, id DESC`
	rows, err := r.db().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	defer rows.Close()

	out := []models.Booking{}
	for rows.Next() {
		var (
			b           models.Booking
			status      string
			cancelledAt sql.NullTime
		)
		if err := rows.Scan(&b.ID, &b.Ref, &b.UserID, &b.BusID, &b.RouteID,
			&b.JourneyDate, &b.TotalFare, &status, &b.CreatedAt, &cancelledAt); err != nil {
			return nil, domain.InternalError{Err: err}
		}
		b.Status = models.BookingStatus(status)
		if cancelledAt.Valid {
			b.CancelledAt = &cancelledAt.Time
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.InternalError{Err: err}
	}

	for i := range out {
		if err := r.attachPassengers(ctx, &out[i]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (r BookingRepo) attachPassengers(ctx context.Context, b *models.Booking) error {
	rows, err := r.db().QueryContext(ctx, `
		SELECT seat_number, name, email, phone
		FROM booking_passengers WHERE booking_id=? ORDER BY seat_number`, b.ID)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	defer rows.Close()

	b.Seats = b.Seats[:0]
	b.Passengers = b.Passengers[:0]
	for rows.Next() {
		var p models.Passenger
		if err := rows.Scan(&p.SeatNumber, &p.Name, &p.Email, &p.Phone); err != nil {
			return domain.InternalError{Err: err}
		}
		b.Seats = append(b.Seats, p.SeatNumber)
		b.Passengers = append(b.Passengers, p)
	}
	return rows.Err()
}

func classifyWriteError(err error) error {
	if isContention(err) {
		return domain.BusyError{Err: err}
	}
	return domain.InternalError{Err: err}
}
