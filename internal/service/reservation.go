package service

import (
	"context"
	"sort"
	"time"

	"github.com/deppfellow/erestaurant/internal/database"
	"github.com/deppfellow/erestaurant/internal/model"
	"github.com/deppfellow/erestaurant/internal/repository"
	"github.com/deppfellow/erestaurant/internal/validation"
	"github.com/rs/zerolog"
)

// ReservationQuery selects the calendar day of Date.
type ReservationQuery struct {
	Date time.Time `json:"date" validate:"required"`
}

func (q ReservationQuery) Validate() error {
	return validation.Struct(q)
}

type ReservationService struct {
	db     Connector
	repo   repository.ReservationRepository
	logger *zerolog.Logger
}

func NewReservationService(db Connector, repo repository.ReservationRepository, logger *zerolog.Logger) *ReservationService {
	return &ReservationService{db: db, repo: repo, logger: logger}
}

// ReservationsByTime groups the booked reservations of date by the hour
// they start in. Hours come back ascending; within an hour reservations
// keep the order of their reservation date.
func (s *ReservationService) ReservationsByTime(ctx context.Context, date time.Time) ([]model.ReservationCollection, error) {
	query := ReservationQuery{Date: date}

	return execute(ctx, s.logger, "reservation.ReservationsByTime", query, func() ([]model.ReservationCollection, error) {
		var reservations []model.Reservation
		err := s.db.WithConn(ctx, func(q database.Querier) error {
			var err error
			reservations, err = s.repo.ListBooked(ctx, q, date)
			return err
		})
		if err != nil {
			return nil, err
		}

		return groupByHour(reservations), nil
	})
}

func groupByHour(reservations []model.Reservation) []model.ReservationCollection {
	byHour := make(map[int][]model.ReservationSummary)
	for _, r := range reservations {
		hour := r.ReservationDate.Hour()
		byHour[hour] = append(byHour[hour], r.Summary())
	}

	hours := make([]int, 0, len(byHour))
	for hour := range byHour {
		hours = append(hours, hour)
	}
	sort.Ints(hours)

	collections := make([]model.ReservationCollection, 0, len(hours))
	for _, hour := range hours {
		collections = append(collections, model.ReservationCollection{
			Hour:         hour,
			Reservations: byHour[hour],
		})
	}
	return collections
}
