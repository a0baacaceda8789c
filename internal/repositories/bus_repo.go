package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	intconfig "busbooking/internal/config"
	"busbooking/internal/domain"
	"busbooking/internal/domain/models"
)

type BusRepo struct {
	DB *sql.DB
}

func (r BusRepo) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const busColumns = `id, bus_number, bus_name, bus_type, total_seats, amenities, operator_name, price_per_seat, created_at`

func (r BusRepo) List(ctx context.Context) ([]models.Bus, error) {
	rows, err := r.db().QueryContext(ctx,
		`SELECT `+busColumns+` FROM buses ORDER BY id`)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	defer rows.Close()

	out := []models.Bus{}
	for rows.Next() {
		b, err := scanBus(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r BusRepo) GetByID(ctx context.Context, id int64) (models.Bus, error) {
	row := r.db().QueryRowContext(ctx,
		`SELECT `+busColumns+` FROM buses WHERE id=?`, id)
	b, err := scanBus(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Bus{}, domain.NotFoundError{Resource: "bus"}
		}
		return models.Bus{}, err
	}
	return b, nil
}

func (r BusRepo) Create(ctx context.Context, b *models.Bus) error {
	res, err := r.db().ExecContext(ctx, `
		INSERT INTO buses (bus_number, bus_name, bus_type, total_seats, amenities, operator_name, price_per_seat)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		b.BusNumber, b.BusName, b.Type, b.TotalSeats, joinAmenities(b.Amenities), b.OperatorName, b.PricePerSeat)
	if err != nil {
		if isDuplicateKey(err) {
			return domain.ConflictError{Resource: "bus", Msg: "bus number already registered", Err: err}
		}
		return domain.InternalError{Err: err}
	}
	b.ID, _ = res.LastInsertId()
	return nil
}

func (r BusRepo) Update(ctx context.Context, id int64, upd models.BusUpdate) error {
	sets := []string{}
	args := []any{}

	if upd.BusName != nil {
		sets = append(sets, "bus_name=?")
		args = append(args, strings.TrimSpace(*upd.BusName))
	}
	if upd.Type != nil {
		sets = append(sets, "bus_type=?")
		args = append(args, strings.TrimSpace(*upd.Type))
	}
	if upd.TotalSeats != nil {
		sets = append(sets, "total_seats=?")
		args = append(args, *upd.TotalSeats)
	}
	if upd.Amenities != nil {
		sets = append(sets, "amenities=?")
		args = append(args, joinAmenities(*upd.Amenities))
	}
	if upd.OperatorName != nil {
		sets = append(sets, "operator_name=?")
		args = append(args, strings.TrimSpace(*upd.OperatorName))
	}
	if upd.PricePerSeat != nil {
		sets = append(sets, "price_per_seat=?")
		args = append(args, *upd.PricePerSeat)
	}
	if len(sets) == 0 {
		return nil
	}
	args = append(args, id)

	res, err := r.db().ExecContext(ctx,
		`UPDATE buses SET `+strings.Join(sets, ",")+` WHERE id=?`, args...)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// Could also be a no-change update; verify existence.
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

func (r BusRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db().ExecContext(ctx, `DELETE FROM buses WHERE id=?`, id)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "bus"}
	}
	return nil
}

type busScanner interface {
	Scan(dest ...any) error
}

func scanBus(row busScanner) (models.Bus, error) {
	var (
		b         models.Bus
		amenities string
	)
	if err := row.Scan(&b.ID, &b.BusNumber, &b.BusName, &b.Type, &b.TotalSeats,
		&amenities, &b.OperatorName, &b.PricePerSeat, &b.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Bus{}, err
		}
		return models.Bus{}, domain.InternalError{Err: err}
	}
	b.Amenities = splitAmenities(amenities)
	return b, nil
}

func joinAmenities(list []string) string {
	clean := make([]string, 0, len(list))
	for _, a := range list {
		a = strings.TrimSpace(a)
		if a != "" {
			clean = append(clean, a)
		}
	}
	return strings.Join(clean, ",")
}

func splitAmenities(raw string) []string {
	out := []string{}
	for _, a := range strings.Split(raw, ",") {
		a = strings.TrimSpace(a)
		if a != "" {
			out = append(out, a)
		}
	}
	return out
}
