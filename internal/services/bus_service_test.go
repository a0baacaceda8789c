package services

import (
	"context"
	"testing"
	"time"

	"busbooking/internal/domain"
	"busbooking/internal/domain/models"
	"busbooking/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
)

func busRow() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "bus_number", "bus_name", "bus_type", "total_seats",
		"amenities", "operator_name", "price_per_seat", "created_at"}).
		AddRow(1, "KA-01", "Express One", "AC Sleeper", 40, "wifi,water", "Roadways", 100000, time.Now())
}

func TestBusUpdateSeatCountFrozenAfterBooking(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM buses WHERE id").
		WithArgs(int64(1)).
		WillReturnRows(busRow())
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM bookings").
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	svc := BusService{
		Repo:     repositories.BusRepo{DB: db},
		Bookings: repositories.BookingRepo{DB: db},
	}

	seats := 50
	_, err = svc.Update(context.Background(), 1, models.BusUpdate{TotalSeats: &seats})
	if !domain.IsConflict(err) {
		t.Fatalf("expected conflict error, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestBusUpdateSeatCountAllowedWithoutBookings(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM buses WHERE id").
		WithArgs(int64(1)).
		WillReturnRows(busRow())
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM bookings").
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec("UPDATE buses SET total_seats").
		WithArgs(50, int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT (.+) FROM buses WHERE id").
		WithArgs(int64(1)).
		WillReturnRows(busRow())

	svc := BusService{
		Repo:     repositories.BusRepo{DB: db},
		Bookings: repositories.BookingRepo{DB: db},
	}

	seats := 50
	if _, err := svc.Update(context.Background(), 1, models.BusUpdate{TotalSeats: &seats}); err != nil {
		t.Fatalf("Update error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestBusCreateValidation(t *testing.T) {
	svc := BusService{}

	err := svc.Create(context.Background(), &models.Bus{BusName: "X", Type: "AC", OperatorName: "Op", TotalSeats: 40})
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error for missing bus number, got %v", err)
	}

	err = svc.Create(context.Background(), &models.Bus{BusNumber: "KA-01", BusName: "X", Type: "AC", OperatorName: "Op", TotalSeats: 0})
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error for zero seats, got %v", err)
	}
}
