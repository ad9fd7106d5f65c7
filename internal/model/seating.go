package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// TimeOfDay is an offset since midnight in [0, 24h).
type TimeOfDay = time.Duration

// Table is a row of tables.
type Table struct {
	ID        int  `json:"table_id"`
	Number    int  `json:"table_number"`
	Capacity  int  `json:"capacity"`
	Smoking   bool `json:"smoking"`
	Available bool `json:"available"`
}

// Waiter is the staff member owning a bill.
type Waiter struct {
	ID        int    `json:"waiter_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// BillItem is one line of a bill.
type BillItem struct {
	ItemID    int             `json:"item_id"`
	Quantity  int             `json:"quantity"`
	SalePrice decimal.Decimal `json:"sale_price"`
}

// ReservationRef is the part of a reservation a bill links back to.
type ReservationRef struct {
	ID           int    `json:"reservation_id"`
	CustomerName string `json:"customer_name"`
}

// Bill is a row of bills with its waiter, reservation link and items.
//
// TableID is set for walk-in bills; reservation bills reach their
// tables through reservation_tables.
type Bill struct {
	ID          int             `json:"bill_id"`
	TableID     *int            `json:"table_id,omitempty"`
	BillDate    time.Time       `json:"bill_date"`
	OrderPaid   *TimeOfDay      `json:"order_paid,omitempty"`
	PaidStatus  bool            `json:"paid_status"`
	Waiter      Waiter          `json:"waiter"`
	Reservation *ReservationRef `json:"reservation,omitempty"`
	Items       []BillItem      `json:"items"`
}

// Total is the sum of quantity × sale price over the bill's items.
func (b Bill) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range b.Items {
		total = total.Add(item.SalePrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}

// TableBill pairs a candidate bill with the table it was reached from.
type TableBill struct {
	TableID int
	Bill    Bill
}

// SeatingSummary is the occupancy of one table at a queried instant.
//
// BillID, BillTotal and Waiter are set only when Taken; ReservationName
// only when the occupying bill belongs to a reservation.
type SeatingSummary struct {
	Table           int              `json:"table"`
	Seating         int              `json:"seating"`
	Taken           bool             `json:"taken"`
	BillID          *int             `json:"bill_id"`
	BillTotal       *decimal.Decimal `json:"bill_total"`
	Waiter          *string          `json:"waiter"`
	ReservationName *string          `json:"reservation_name"`
}
