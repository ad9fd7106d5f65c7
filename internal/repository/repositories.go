package repository

// Repositories is a container for all repository instances.
type Repositories struct {
	Menu        MenuRepository
	Seating     SeatingRepository
	Reservation ReservationRepository
}

// NewRepositories constructs the PostgreSQL backed repositories.
func NewRepositories() *Repositories {
	return &Repositories{
		Menu:        NewMenuRepository(),
		Seating:     NewSeatingRepository(),
		Reservation: NewReservationRepository(),
	}
}
