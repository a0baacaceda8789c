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

type RouteRepo struct {
	DB *sql.DB
}

func (r RouteRepo) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const routeColumns = `id, from_city, to_city, distance_km, duration, departure_time, arrival_time,
	base_fare, bus_id, DATE_FORMAT(journey_date, '%Y-%m-%d'), created_at`

// Search matches from/to case-insensitively as substrings and filters
// by exact journey date, ordered by departure time.
func (r RouteRepo) Search(ctx context.Context, from, to, journeyDate string) ([]models.Route, error) {
	rows, err := r.db().QueryContext(ctx, `
		SELECT `+routeColumns+` FROM routes
		WHERE LOWER(from_city) LIKE ? AND LOWER(to_city) LIKE ? AND journey_date=?
		ORDER BY departure_time`,
		"%"+strings.ToLower(strings.TrimSpace(from))+"%",
		"%"+strings.ToLower(strings.TrimSpace(to))+"%",
		journeyDate)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	defer rows.Close()

	out := []models.Route{}
	for rows.Next() {
		rt, err := scanRoute(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rt)
	}
	return out, rows.Err()
}

func (r RouteRepo) GetByID(ctx context.Context, id int64) (models.Route, error) {
	row := r.db().QueryRowContext(ctx,
		`SELECT `+routeColumns+` FROM routes WHERE id=?`, id)
	rt, err := scanRoute(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Route{}, domain.NotFoundError{Resource: "route"}
		}
		return models.Route{}, err
	}
	return rt, nil
}

// BaseFare is the read-only fare lookup used for totalFare computation.
func (r RouteRepo) BaseFare(ctx context.Context, routeID int64) (int64, error) {
	var fare int64
	err := r.db().QueryRowContext(ctx,
		`SELECT base_fare FROM routes WHERE id=?`, routeID).Scan(&fare)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, domain.NotFoundError{Resource: "route"}
		}
		return 0, domain.InternalError{Err: err}
	}
	return fare, nil
}

func (r RouteRepo) Create(ctx context.Context, rt *models.Route) error {
	res, err := r.db().ExecContext(ctx, `
		INSERT INTO routes (from_city, to_city, distance_km, duration, departure_time, arrival_time, base_fare, bus_id, journey_date)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rt.From, rt.To, rt.DistanceKM, rt.Duration, rt.DepartureTime, rt.ArrivalTime,
		rt.BaseFare, rt.BusID, rt.JourneyDate)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	rt.ID, _ = res.LastInsertId()
	return nil
}

func (r RouteRepo) Update(ctx context.Context, id int64, upd models.RouteUpdate) error {
	sets := []string{}
	args := []any{}

	if upd.From != nil {
		sets = append(sets, "from_city=?")
		args = append(args, strings.TrimSpace(*upd.From))
	}
	if upd.To != nil {
		sets = append(sets, "to_city=?")
		args = append(args, strings.TrimSpace(*upd.To))
	}
	if upd.DistanceKM != nil {
		sets = append(sets, "distance_km=?")
		args = append(args, *upd.DistanceKM)
	}
	if upd.Duration != nil {
		sets = append(sets, "duration=?")
		args = append(args, strings.TrimSpace(*upd.Duration))
	}
	if upd.DepartureTime != nil {
		sets = append(sets, "departure_time=?")
		args = append(args, strings.TrimSpace(*upd.DepartureTime))
	}
	if upd.ArrivalTime != nil {
		sets = append(sets, "arrival_time=?")
		args = append(args, strings.TrimSpace(*upd.ArrivalTime))
	}
	if upd.BaseFare != nil {
		sets = append(sets, "base_fare=?")
		args = append(args, *upd.BaseFare)
	}
	if len(sets) == 0 {
		return nil
	}
	args = append(args, id)

	res, err := r.db().ExecContext(ctx,
		`UPDATE routes SET `+strings.Join(sets, ",")+` WHERE id=?`, args...)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

func (r RouteRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db().ExecContext(ctx, `DELETE FROM routes WHERE id=?`, id)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "route"}
	}
	return nil
}

func scanRoute(row busScanner) (models.Route, error) {
	var rt models.Route
	if err := row.Scan(&rt.ID, &rt.From, &rt.To, &rt.DistanceKM, &rt.Duration,
		&rt.DepartureTime, &rt.ArrivalTime, &rt.BaseFare, &rt.BusID,
		&rt.JourneyDate, &rt.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Route{}, err
		}
		return models.Route{}, domain.InternalError{Err: err}
	}
	return rt, nil
}
