package model

import "time"

// ReservationStatus is the one letter status code stored with a reservation.
type ReservationStatus string

const (
	ReservationBooked    ReservationStatus = "B"
	ReservationArrived   ReservationStatus = "A"
	ReservationComplete  ReservationStatus = "C"
	ReservationNoShow    ReservationStatus = "N"
	ReservationCancelled ReservationStatus = "X"
)

// String returns a readable name for logs.
func (s ReservationStatus) String() string {
	switch s {
	case ReservationBooked:
		return "booked"
	case ReservationArrived:
		return "arrived"
	case ReservationComplete:
		return "complete"
	case ReservationNoShow:
		return "no_show"
	case ReservationCancelled:
		return "cancelled"
	default:
		return "unknown(" + string(s) + ")"
	}
}

// SpecialEvent is a row of special_events.
type SpecialEvent struct {
	Code        string `json:"event_code"`
	Description string `json:"description"`
	Active      bool   `json:"active"`
}

// Reservation is a row of reservations with its optional special event.
type Reservation struct {
	ID              int               `json:"reservation_id"`
	CustomerName    string            `json:"customer_name"`
	ReservationDate time.Time         `json:"reservation_date"`
	NumberInParty   int               `json:"number_in_party"`
	ContactPhone    string            `json:"contact_phone"`
	Status          ReservationStatus `json:"reservation_status"`
	EventCode       *string           `json:"event_code,omitempty"`
	SpecialEvent    *SpecialEvent     `json:"special_event,omitempty"`
}

// Summary projects the reservation for display.
func (r Reservation) Summary() ReservationSummary {
	summary := ReservationSummary{
		ID:            r.ID,
		Name:          r.CustomerName,
		Date:          r.ReservationDate,
		NumberInParty: r.NumberInParty,
		Status:        r.Status,
		Contact:       r.ContactPhone,
	}
	if r.SpecialEvent != nil {
		event := r.SpecialEvent.Description
		summary.Event = &event
	}
	return summary
}

// ReservationSummary is the display projection of a reservation.
// Event is nil when no special event is attached.
type ReservationSummary struct {
	ID            int               `json:"reservation_id"`
	Name          string            `json:"name"`
	Date          time.Time         `json:"date"`
	NumberInParty int               `json:"number_in_party"`
	Status        ReservationStatus `json:"status"`
	Event         *string           `json:"event"`
	Contact       string            `json:"contact"`
}

// ReservationCollection holds the reservations starting within one hour of the day.
type ReservationCollection struct {
	Hour         int                  `json:"hour"`
	Reservations []ReservationSummary `json:"reservations"`
}
