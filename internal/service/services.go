package service

import (
	"github.com/deppfellow/erestaurant/internal/repository"
	"github.com/deppfellow/erestaurant/internal/server"
)

type Services struct {
	Menu        *MenuService
	Report      *ReportService
	Seating     *SeatingService
	Reservation *ReservationService
}

func NewServices(s *server.Server, repos *repository.Repositories) *Services {
	return &Services{
		Menu:        NewMenuService(s.DB, repos.Menu, s.Logger),
		Report:      NewReportService(s.DB, repos.Menu, s.Logger),
		Seating:     NewSeatingService(s.DB, repos.Seating, s.Logger, s.Config.Seating.StrictOccupancy),
		Reservation: NewReservationService(s.DB, repos.Reservation, s.Logger),
	}
}
