package services

import (
	"context"
	"strings"

	"busbooking/internal/domain"
	"busbooking/internal/domain/models"
	"busbooking/internal/repositories"
	"busbooking/internal/utils"
)

type RouteService struct {
	Repo      repositories.RouteRepo
	Buses     repositories.BusRepo
	RequestID string
}

// Search requires all three parameters, like the public search form.
func (s RouteService) Search(ctx context.Context, from, to, journeyDate string) ([]models.Route, error) {
	if strings.TrimSpace(from) == "" || strings.TrimSpace(to) == "" {
		return nil, domain.ValidationError{Field: "from/to", Msg: "both are required"}
	}
	date, err := utils.ParseDate(journeyDate)
	if err != nil {
		return nil, domain.ValidationError{Field: "journeyDate", Msg: "expected YYYY-MM-DD", Err: err}
	}
	return s.Repo.Search(ctx, from, to, utils.FormatDate(date))
}

func (s RouteService) Get(ctx context.Context, id int64) (models.Route, error) {
	return s.Repo.GetByID(ctx, id)
}

func (s RouteService) Create(ctx context.Context, rt *models.Route) error {
	rt.From = strings.TrimSpace(rt.From)
	rt.To = strings.TrimSpace(rt.To)

	switch {
	case rt.From == "":
		return domain.ValidationError{Field: "from", Msg: "required"}
	case rt.To == "":
		return domain.ValidationError{Field: "to", Msg: "required"}
	case rt.BaseFare <= 0:
		return domain.ValidationError{Field: "baseFare", Msg: "must be a positive amount"}
	case rt.BusID <= 0:
		return domain.ValidationError{Field: "busId", Msg: "required"}
	}
	date, err := utils.ParseDate(rt.JourneyDate)
	if err != nil {
		return domain.ValidationError{Field: "journeyDate", Msg: "expected YYYY-MM-DD", Err: err}
	}
	rt.JourneyDate = utils.FormatDate(date)

	// The bus must exist before a route can reference it.
	if _, err := s.Buses.GetByID(ctx, rt.BusID); err != nil {
		return err
	}

	if err := s.Repo.Create(ctx, rt); err != nil {
		return err
	}
	utils.LogEvent(s.RequestID, "route", "create", rt.From+" -> "+rt.To)
	return nil
}

func (s RouteService) Update(ctx context.Context, id int64, upd models.RouteUpdate) (models.Route, error) {
	if upd.BaseFare != nil && *upd.BaseFare <= 0 {
		return models.Route{}, domain.ValidationError{Field: "baseFare", Msg: "must be a positive amount"}
	}
	if err := s.Repo.Update(ctx, id, upd); err != nil {
		return models.Route{}, err
	}
	return s.Repo.GetByID(ctx, id)
}

func (s RouteService) Delete(ctx context.Context, id int64) error {
	return s.Repo.Delete(ctx, id)
}
