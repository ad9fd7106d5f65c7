package service

import (
	"context"
	"time"

	"github.com/deppfellow/erestaurant/internal/database"
	"github.com/deppfellow/erestaurant/internal/model"
)

type fakeConnector struct {
	err      error
	acquired int
	released int
}

func (c *fakeConnector) WithConn(_ context.Context, fn func(q database.Querier) error) error {
	if c.err != nil {
		return c.err
	}
	c.acquired++
	defer func() { c.released++ }()
	return fn(nil)
}

// activeAt mirrors the SQL predicate: same calendar day, opened at or
// before tod with seconds floored, and unpaid or paid at or after tod.
func activeAt(b model.Bill, date time.Time, tod model.TimeOfDay) bool {
	if !sameDay(b.BillDate, date) {
		return false
	}
	h, m, sec := b.BillDate.Clock()
	opened := time.Duration(h)*time.Hour + time.Duration(m)*time.Minute + time.Duration(sec)*time.Second
	if opened > tod {
		return false
	}
	return b.OrderPaid == nil || *b.OrderPaid >= tod
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// fakeSeatingRepo answers the seating queries from memory using the same
// activity rule the SQL applies.
type fakeSeatingRepo struct {
	tables            []model.Table
	bills             []model.Bill
	reservationTables map[int][]int
	items             map[int][]model.BillItem

	tablesErr    error
	itemRequests [][]int
}

func (r *fakeSeatingRepo) ListTables(context.Context, database.Querier) ([]model.Table, error) {
	if r.tablesErr != nil {
		return nil, r.tablesErr
	}
	return r.tables, nil
}

func (r *fakeSeatingRepo) ListWalkInBills(_ context.Context, _ database.Querier, date time.Time, tod model.TimeOfDay) ([]model.TableBill, error) {
	var out []model.TableBill
	for _, b := range r.bills {
		if b.TableID != nil && activeAt(b, date, tod) {
			out = append(out, model.TableBill{TableID: *b.TableID, Bill: b})
		}
	}
	return out, nil
}

func (r *fakeSeatingRepo) ListReservationBills(_ context.Context, _ database.Querier, date time.Time, tod model.TimeOfDay) ([]model.TableBill, error) {
	var out []model.TableBill
	for _, b := range r.bills {
		if b.Reservation == nil || !activeAt(b, date, tod) {
			continue
		}
		for _, tableID := range r.reservationTables[b.Reservation.ID] {
			out = append(out, model.TableBill{TableID: tableID, Bill: b})
		}
	}
	return out, nil
}

func (r *fakeSeatingRepo) ListBillItems(_ context.Context, _ database.Querier, billIDs []int) (map[int][]model.BillItem, error) {
	r.itemRequests = append(r.itemRequests, billIDs)
	out := make(map[int][]model.BillItem)
	for _, id := range billIDs {
		if items, ok := r.items[id]; ok {
			out[id] = items
		}
	}
	return out, nil
}

type fakeReservationRepo struct {
	reservations []model.Reservation
}

func (r *fakeReservationRepo) ListBooked(_ context.Context, _ database.Querier, date time.Time) ([]model.Reservation, error) {
	var out []model.Reservation
	for _, res := range r.reservations {
		if res.Status == model.ReservationBooked && sameDay(res.ReservationDate, date) {
			out = append(out, res)
		}
	}
	return out, nil
}

type fakeMenuRepo struct {
	items      []model.Item
	categories []model.Category
	report     []model.CategoryMenuItem
	err        error
}

func (r *fakeMenuRepo) ListItemsWithCategory(context.Context, database.Querier) ([]model.Item, error) {
	return r.items, r.err
}

func (r *fakeMenuRepo) ListCategoriesWithActiveItems(context.Context, database.Querier) ([]model.Category, error) {
	return r.categories, r.err
}

func (r *fakeMenuRepo) ListCategoryMenuItems(context.Context, database.Querier) ([]model.CategoryMenuItem, error) {
	return r.report, r.err
}

func intPtr(v int) *int {
	return &v
}
