package repository

import (
	"context"
	"time"

	"github.com/deppfellow/erestaurant/internal/database"
	"github.com/deppfellow/erestaurant/internal/model"
	"github.com/jackc/pgx/v5/pgtype"
)

const listTablesSQL = `
SELECT table_id, table_number, capacity, smoking, available
FROM tables
ORDER BY table_number`

// billColumns and billJoins are shared by both candidate bill queries so
// their rows scan the same way.
const billColumns = `
       b.bill_id, b.bill_date, b.order_paid, b.paid_status,
       w.waiter_id, w.first_name, w.last_name,
       r.reservation_id, r.customer_name`

const billJoins = `
JOIN waiters w ON w.waiter_id = b.waiter_id
LEFT JOIN reservations r ON r.reservation_id = b.reservation_id`

// activeBillPredicate keeps bills opened on the query date at or before
// the query time and not yet paid at it. Seconds are floored because
// make_time takes whole clock components.
const activeBillPredicate = `
      EXTRACT(YEAR FROM b.bill_date) = $1
  AND EXTRACT(MONTH FROM b.bill_date) = $2
  AND EXTRACT(DAY FROM b.bill_date) = $3
  AND make_time(EXTRACT(HOUR FROM b.bill_date)::int,
                EXTRACT(MINUTE FROM b.bill_date)::int,
                floor(EXTRACT(SECOND FROM b.bill_date))::float8) <= $4
  AND (b.order_paid IS NULL OR b.order_paid >= $4)`

const listWalkInBillsSQL = `
SELECT b.table_id,` + billColumns + `
FROM bills b` + billJoins + `
WHERE b.table_id IS NOT NULL
  AND` + activeBillPredicate + `
ORDER BY b.table_id, b.bill_date, b.bill_id`

const listReservationBillsSQL = `
SELECT rt.table_id,` + billColumns + `
FROM reservation_tables rt
JOIN bills b ON b.reservation_id = rt.reservation_id` + billJoins + `
WHERE` + activeBillPredicate + `
ORDER BY rt.table_id, b.bill_date, b.bill_id`

const listBillItemsSQL = `
SELECT bill_id, item_id, quantity, sale_price
FROM bill_items
WHERE bill_id = ANY($1)
ORDER BY bill_id, item_id`

type seatingRepository struct{}

func NewSeatingRepository() SeatingRepository {
	return &seatingRepository{}
}

func (r *seatingRepository) ListTables(ctx context.Context, q database.Querier) ([]model.Table, error) {
	const op = "repository.ListTables"

	rows, err := q.Query(ctx, listTablesSQL)
	if err != nil {
		return nil, queryFailed(op, err)
	}
	defer rows.Close()

	tables := []model.Table{}
	for rows.Next() {
		var t model.Table
		if err := rows.Scan(&t.ID, &t.Number, &t.Capacity, &t.Smoking, &t.Available); err != nil {
			return nil, scanFailed(op, err)
		}
		tables = append(tables, t)
	}
	if err := rows.Err(); err != nil {
		return nil, queryFailed(op, err)
	}

	return tables, nil
}

// ListWalkInBills returns the bills seated directly at a table that are
// active at tod on date.
func (r *seatingRepository) ListWalkInBills(ctx context.Context, q database.Querier, date time.Time, tod model.TimeOfDay) ([]model.TableBill, error) {
	return r.listBills(ctx, q, "repository.ListWalkInBills", listWalkInBillsSQL, true, date, tod)
}

// ListReservationBills returns the bills of reservations, one entry per
// table the reservation holds, that are active at tod on date.
func (r *seatingRepository) ListReservationBills(ctx context.Context, q database.Querier, date time.Time, tod model.TimeOfDay) ([]model.TableBill, error) {
	return r.listBills(ctx, q, "repository.ListReservationBills", listReservationBillsSQL, false, date, tod)
}

// listBills runs one of the candidate bill queries. Only walk-in rows
// carry the bill's own table_id; a reservation row's table comes from
// reservation_tables and stays on the TableBill.
func (r *seatingRepository) listBills(ctx context.Context, q database.Querier, op, sql string, walkIn bool, date time.Time, tod model.TimeOfDay) ([]model.TableBill, error) {
	year, month, day := dateParts(date)

	rows, err := q.Query(ctx, sql, year, month, day, timeParam(tod))
	if err != nil {
		return nil, queryFailed(op, err)
	}
	defer rows.Close()

	bills := []model.TableBill{}
	for rows.Next() {
		var (
			tb            model.TableBill
			orderPaid     pgtype.Time
			reservationID *int
			customerName  *string
		)
		if err := rows.Scan(
			&tb.TableID,
			&tb.Bill.ID, &tb.Bill.BillDate, &orderPaid, &tb.Bill.PaidStatus,
			&tb.Bill.Waiter.ID, &tb.Bill.Waiter.FirstName, &tb.Bill.Waiter.LastName,
			&reservationID, &customerName,
		); err != nil {
			return nil, scanFailed(op, err)
		}

		if walkIn {
			tableID := tb.TableID
			tb.Bill.TableID = &tableID
		}
		tb.Bill.OrderPaid = timeOfDay(orderPaid)
		if reservationID != nil {
			ref := model.ReservationRef{ID: *reservationID}
			if customerName != nil {
				ref.CustomerName = *customerName
			}
			tb.Bill.Reservation = &ref
		}
		bills = append(bills, tb)
	}
	if err := rows.Err(); err != nil {
		return nil, queryFailed(op, err)
	}

	return bills, nil
}

// ListBillItems prefetches the line items of every bill in billIDs with
// a single query, keyed by bill id.
func (r *seatingRepository) ListBillItems(ctx context.Context, q database.Querier, billIDs []int) (map[int][]model.BillItem, error) {
	const op = "repository.ListBillItems"

	items := make(map[int][]model.BillItem, len(billIDs))
	if len(billIDs) == 0 {
		return items, nil
	}

	rows, err := q.Query(ctx, listBillItemsSQL, billIDs)
	if err != nil {
		return nil, queryFailed(op, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			billID int
			item   model.BillItem
		)
		if err := rows.Scan(&billID, &item.ItemID, &item.Quantity, &item.SalePrice); err != nil {
			return nil, scanFailed(op, err)
		}
		items[billID] = append(items[billID], item)
	}
	if err := rows.Err(); err != nil {
		return nil, queryFailed(op, err)
	}

	return items, nil
}
