package repository

import (
	"context"
	"time"

	"github.com/deppfellow/erestaurant/internal/database"
	"github.com/deppfellow/erestaurant/internal/model"
)

const listBookedSQL = `
SELECT r.reservation_id, r.customer_name, r.reservation_date, r.number_in_party,
       r.contact_phone, r.reservation_status, r.event_code,
       e.description, e.active
FROM reservations r
LEFT JOIN special_events e ON e.event_code = r.event_code
WHERE EXTRACT(YEAR FROM r.reservation_date) = $1
  AND EXTRACT(MONTH FROM r.reservation_date) = $2
  AND EXTRACT(DAY FROM r.reservation_date) = $3
  AND r.reservation_status = $4
ORDER BY r.reservation_date, r.reservation_id`

type reservationRepository struct{}

func NewReservationRepository() ReservationRepository {
	return &reservationRepository{}
}

// ListBooked returns the reservations on date still in booked status,
// with their special event attached when they have one.
func (r *reservationRepository) ListBooked(ctx context.Context, q database.Querier, date time.Time) ([]model.Reservation, error) {
	const op = "repository.ListBooked"

	year, month, day := dateParts(date)

	rows, err := q.Query(ctx, listBookedSQL, year, month, day, string(model.ReservationBooked))
	if err != nil {
		return nil, queryFailed(op, err)
	}
	defer rows.Close()

	reservations := []model.Reservation{}
	for rows.Next() {
		var (
			res              model.Reservation
			status           string
			eventDescription *string
			eventActive      *bool
		)
		if err := rows.Scan(
			&res.ID, &res.CustomerName, &res.ReservationDate, &res.NumberInParty,
			&res.ContactPhone, &status, &res.EventCode,
			&eventDescription, &eventActive,
		); err != nil {
			return nil, scanFailed(op, err)
		}

		res.Status = model.ReservationStatus(status)
		if res.EventCode != nil && eventDescription != nil {
			res.SpecialEvent = &model.SpecialEvent{
				Code:        *res.EventCode,
				Description: *eventDescription,
				Active:      eventActive != nil && *eventActive,
			}
		}
		reservations = append(reservations, res)
	}
	if err := rows.Err(); err != nil {
		return nil, queryFailed(op, err)
	}

	return reservations, nil
}
