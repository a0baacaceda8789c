package repositories

import (
	"context"
	"testing"
	"time"

	"busbooking/internal/domain"
	"busbooking/internal/domain/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
)

func bookingColumns() []string {
	return []string{"id", "booking_ref", "user_id", "bus_id", "route_id",
		"journey_date", "total_fare", "status", "created_at", "cancelled_at"}
}

func TestCreateBookingCommitsAllRows(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO bookings").
		WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectExec("INSERT INTO journey_seats").
		WithArgs(int64(1), "2026-09-15", 5, int64(7)).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO journey_seats").
		WithArgs(int64(1), "2026-09-15", 6, int64(7)).
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectExec("INSERT INTO booking_passengers").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO booking_passengers").
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	repo := BookingRepo{DB: db}
	booking := &models.Booking{
		Ref:         "ref-1",
		UserID:      3,
		BusID:       1,
		RouteID:     2,
		JourneyDate: "2026-09-15",
		Seats:       []int{5, 6},
		Passengers: []models.Passenger{
			{SeatNumber: 5, Name: "Alice"},
			{SeatNumber: 6, Name: "Bob"},
		},
		TotalFare: 300000,
		Status:    models.BookingConfirmed,
		CreatedAt: time.Now(),
	}
	if err := repo.CreateBooking(context.Background(), booking); err != nil {
		t.Fatalf("CreateBooking error: %v", err)
	}
	if booking.ID != 7 {
		t.Fatalf("expected booking ID 7, got %d", booking.ID)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateBookingDuplicateSeatRollsBack(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO bookings").
		WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectExec("INSERT INTO journey_seats").
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})
	mock.ExpectRollback()

	repo := BookingRepo{DB: db}
	booking := &models.Booking{
		Ref:         "ref-2",
		UserID:      3,
		BusID:       1,
		RouteID:     2,
		JourneyDate: "2026-09-15",
		Seats:       []int{6},
		Passengers:  []models.Passenger{{SeatNumber: 6, Name: "Alice"}},
		Status:      models.BookingConfirmed,
		CreatedAt:   time.Now(),
	}
	err = repo.CreateBooking(context.Background(), booking)
	if !domain.IsSeatConflict(err) {
		t.Fatalf("expected seat conflict, got %v", err)
	}
	if seats := domain.ConflictSeats(err); len(seats) != 1 || seats[0] != 6 {
		t.Fatalf("expected conflict on seat 6, got %v", seats)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateBookingDeadlockIsBusy(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO bookings").
		WillReturnError(&mysql.MySQLError{Number: 1213, Message: "Deadlock found"})
	mock.ExpectRollback()

	repo := BookingRepo{DB: db}
	booking := &models.Booking{
		Ref:         "ref-3",
		BusID:       1,
		RouteID:     2,
		JourneyDate: "2026-09-15",
		Seats:       []int{1},
		Status:      models.BookingConfirmed,
		CreatedAt:   time.Now(),
	}
	if err := repo.CreateBooking(context.Background(), booking); !domain.IsBusy(err) {
		t.Fatalf("expected busy error, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCancelBookingFreesSeats(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	now := time.Now()
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT status FROM bookings").
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("confirmed"))
	mock.ExpectExec("UPDATE bookings SET status='cancelled'").
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM journey_seats").
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	mock.ExpectQuery("SELECT id, booking_ref").
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows(bookingColumns()).
			AddRow(7, "ref-1", 3, 1, 2, "2026-09-15", 300000, "cancelled", now, now))
	mock.ExpectQuery("SELECT seat_number, name, email, phone").
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"seat_number", "name", "email", "phone"}).
			AddRow(5, "Alice", "", "").
			AddRow(6, "Bob", "", ""))

	repo := BookingRepo{DB: db}
	booking, err := repo.CancelBooking(context.Background(), 7)
	if err != nil {
		t.Fatalf("CancelBooking error: %v", err)
	}
	if booking.Status != models.BookingCancelled {
		t.Fatalf("expected cancelled status, got %s", booking.Status)
	}
	if booking.CancelledAt == nil {
		t.Fatal("expected cancelled_at to be set")
	}
	if len(booking.Seats) != 2 {
		t.Fatalf("expected passenger history to survive cancel, got seats %v", booking.Seats)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCancelBookingAlreadyCancelled(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT status FROM bookings").
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("cancelled"))
	mock.ExpectRollback()

	repo := BookingRepo{DB: db}
	if _, err := repo.CancelBooking(context.Background(), 7); !domain.IsAlreadyCancelled(err) {
		t.Fatalf("expected already-cancelled error, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCancelBookingNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT status FROM bookings").
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"status"}))
	mock.ExpectRollback()

	repo := BookingRepo{DB: db}
	if _, err := repo.CancelBooking(context.Background(), 42); !domain.IsNotFound(err) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestReservedSeatsScansAll(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT seat_number FROM journey_seats").
		WithArgs(int64(1), "2026-09-15").
		WillReturnRows(sqlmock.NewRows([]string{"seat_number"}).AddRow(5).AddRow(6).AddRow(12))

	repo := BookingRepo{DB: db}
	seats, err := repo.ReservedSeats(context.Background(), 1, "2026-09-15")
	if err != nil {
		t.Fatalf("ReservedSeats error: %v", err)
	}
	if len(seats) != 3 || seats[0] != 5 || seats[2] != 12 {
		t.Fatalf("unexpected seats: %v", seats)
	}
}

func TestBusTotalSeatsNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT total_seats FROM buses").
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"total_seats"}))

	repo := BookingRepo{DB: db}
	if _, err := repo.BusTotalSeats(context.Background(), 99); !domain.IsNotFound(err) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}
