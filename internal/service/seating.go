package service

import (
	"context"
	"sort"
	"time"

	"github.com/deppfellow/erestaurant/internal/database"
	"github.com/deppfellow/erestaurant/internal/errs"
	"github.com/deppfellow/erestaurant/internal/model"
	"github.com/deppfellow/erestaurant/internal/repository"
	"github.com/deppfellow/erestaurant/internal/validation"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// SeatingQuery is the instant SeatingByDateTime resolves occupancy for.
// Only the calendar day of Date is used.
type SeatingQuery struct {
	Date      time.Time       `json:"date" validate:"required"`
	TimeOfDay model.TimeOfDay `json:"time_of_day" validate:"gte=0s,lt=24h"`
}

func (q SeatingQuery) Validate() error {
	return validation.Struct(q)
}

type SeatingService struct {
	db     Connector
	repo   repository.SeatingRepository
	logger *zerolog.Logger

	// strict turns a table with several active bills into an error
	// instead of a logged pick.
	strict bool
}

func NewSeatingService(db Connector, repo repository.SeatingRepository, logger *zerolog.Logger, strict bool) *SeatingService {
	return &SeatingService{db: db, repo: repo, logger: logger, strict: strict}
}

// SeatingByDateTime reports, for every table, whether a bill occupies it
// at tod on date and, if so, which one.
//
// A bill occupies a table when it was opened that day at or before tod
// and is unpaid or was paid at or after tod. Bills reach a table either
// directly (walk-ins) or through the tables of their reservation.
func (s *SeatingService) SeatingByDateTime(ctx context.Context, date time.Time, tod model.TimeOfDay) ([]model.SeatingSummary, error) {
	const op = "seating.SeatingByDateTime"

	query := SeatingQuery{Date: date, TimeOfDay: tod}

	return execute(ctx, s.logger, op, query, func() ([]model.SeatingSummary, error) {
		var (
			tables     []model.Table
			candidates []model.TableBill
			items      map[int][]model.BillItem
		)

		err := s.db.WithConn(ctx, func(q database.Querier) error {
			var err error
			if tables, err = s.repo.ListTables(ctx, q); err != nil {
				return err
			}

			walkIns, err := s.repo.ListWalkInBills(ctx, q, date, tod)
			if err != nil {
				return err
			}
			reserved, err := s.repo.ListReservationBills(ctx, q, date, tod)
			if err != nil {
				return err
			}
			candidates = append(walkIns, reserved...)

			items, err = s.repo.ListBillItems(ctx, q, billIDs(candidates))
			return err
		})
		if err != nil {
			return nil, err
		}

		log := requestLogger(ctx, s.logger).With().Str("operation", op).Logger()
		return s.resolve(&log, tables, candidates, items)
	})
}

// resolve merges the candidate bills into one summary per table.
func (s *SeatingService) resolve(
	log *zerolog.Logger,
	tables []model.Table,
	candidates []model.TableBill,
	items map[int][]model.BillItem,
) ([]model.SeatingSummary, error) {
	byTable := unionByTable(candidates, items)

	ordered := make([]model.Table, len(tables))
	copy(ordered, tables)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Number < ordered[j].Number })

	summaries := make([]model.SeatingSummary, 0, len(ordered))
	for _, table := range ordered {
		occupant, err := s.pickOccupant(log, table, byTable[table.ID])
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, summarize(table, occupant))
	}

	return summaries, nil
}

// unionByTable groups candidates per table id with their items
// attached. A bill reached both as a walk-in and through a reservation
// appears once per table.
func unionByTable(candidates []model.TableBill, items map[int][]model.BillItem) map[int][]model.Bill {
	byTable := make(map[int][]model.Bill)
	seen := make(map[[2]int]bool)

	for _, c := range candidates {
		key := [2]int{c.TableID, c.Bill.ID}
		if seen[key] {
			continue
		}
		seen[key] = true

		bill := c.Bill
		bill.Items = items[bill.ID]
		byTable[c.TableID] = append(byTable[c.TableID], bill)
	}

	return byTable
}

// pickOccupant reduces a table's active bills to at most one. Several
// bills are ordered by bill date then id and the first wins, unless the
// service is strict.
func (s *SeatingService) pickOccupant(log *zerolog.Logger, table model.Table, bills []model.Bill) (*model.Bill, error) {
	switch len(bills) {
	case 0:
		return nil, nil
	case 1:
		return &bills[0], nil
	}

	sort.Slice(bills, func(i, j int) bool {
		if !bills[i].BillDate.Equal(bills[j].BillDate) {
			return bills[i].BillDate.Before(bills[j].BillDate)
		}
		return bills[i].ID < bills[j].ID
	})

	ids := make([]int, len(bills))
	for i, b := range bills {
		ids[i] = b.ID
	}

	if s.strict {
		return nil, errs.NewStoreError(errs.KindDataShape, "",
			errors.Errorf("table %d has %d active bills %v", table.Number, len(bills), ids))
	}

	log.Warn().
		Int("table", table.Number).
		Ints("bill_ids", ids).
		Int("chosen_bill_id", bills[0].ID).
		Msg("table has more than one active bill")

	return &bills[0], nil
}

func summarize(table model.Table, occupant *model.Bill) model.SeatingSummary {
	summary := model.SeatingSummary{
		Table:   table.Number,
		Seating: table.Capacity,
		Taken:   occupant != nil,
	}
	if occupant == nil {
		return summary
	}

	billID := occupant.ID
	total := occupant.Total()
	waiter := occupant.Waiter.FirstName

	summary.BillID = &billID
	summary.BillTotal = &total
	summary.Waiter = &waiter

	if occupant.Reservation != nil {
		name := occupant.Reservation.CustomerName
		summary.ReservationName = &name
	}

	return summary
}

// billIDs returns the distinct bill ids of candidates in first-seen order.
func billIDs(candidates []model.TableBill) []int {
	seen := make(map[int]bool, len(candidates))
	ids := make([]int, 0, len(candidates))
	for _, c := range candidates {
		if !seen[c.Bill.ID] {
			seen[c.Bill.ID] = true
			ids = append(ids, c.Bill.ID)
		}
	}
	return ids
}
