// Package repository handles all interactions with the database.
//
// It contains the raw SQL queries and the scanning of their rows into
// model types, abstracting SQL away from the service layer. Every
// method runs against the database.Querier it is handed, so the caller
// decides which connection a group of queries shares.
package repository

import (
	"context"
	"time"

	"github.com/deppfellow/erestaurant/internal/database"
	"github.com/deppfellow/erestaurant/internal/model"
)

// MenuRepository reads items and their categories.
type MenuRepository interface {
	ListItemsWithCategory(ctx context.Context, q database.Querier) ([]model.Item, error)
	ListCategoriesWithActiveItems(ctx context.Context, q database.Querier) ([]model.Category, error)
	ListCategoryMenuItems(ctx context.Context, q database.Querier) ([]model.CategoryMenuItem, error)
}

// SeatingRepository reads tables and the bills occupying them.
type SeatingRepository interface {
	ListTables(ctx context.Context, q database.Querier) ([]model.Table, error)
	ListWalkInBills(ctx context.Context, q database.Querier, date time.Time, tod model.TimeOfDay) ([]model.TableBill, error)
	ListReservationBills(ctx context.Context, q database.Querier, date time.Time, tod model.TimeOfDay) ([]model.TableBill, error)
	ListBillItems(ctx context.Context, q database.Querier, billIDs []int) (map[int][]model.BillItem, error)
}

// ReservationRepository reads reservations.
type ReservationRepository interface {
	ListBooked(ctx context.Context, q database.Querier, date time.Time) ([]model.Reservation, error)
}
