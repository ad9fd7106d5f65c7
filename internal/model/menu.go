// Package model holds the restaurant entities read from the store and
// the read-only result shapes returned by the services.
package model

import "github.com/shopspring/decimal"

// MenuCategory is a row of menu_categories.
type MenuCategory struct {
	ID          int    `json:"menu_category_id"`
	Description string `json:"description"`
}

// Item is a row of items with its category attached by an explicit join.
type Item struct {
	ID           int             `json:"item_id"`
	Description  string          `json:"description"`
	CurrentPrice decimal.Decimal `json:"current_price"`
	CurrentCost  decimal.Decimal `json:"current_cost"`
	Active       bool            `json:"active"`
	Calories     int             `json:"calories"`
	Comment      *string         `json:"comment,omitempty"`
	CategoryID   int             `json:"menu_category_id"`
	Category     *MenuCategory   `json:"category,omitempty"`
}

// MenuItem is the projection of an active item inside a Category.
type MenuItem struct {
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Calories    int             `json:"calories"`
	Comment     *string         `json:"comment,omitempty"`
}

// Category is a menu category with its active items.
// Items is never nil.
type Category struct {
	ID          int        `json:"menu_category_id"`
	Description string     `json:"description"`
	Items       []MenuItem `json:"items"`
}

// CategoryMenuItem is one line of the category/menu item report.
type CategoryMenuItem struct {
	CategoryDescription string          `json:"category_description"`
	ItemDescription     string          `json:"item_description"`
	Price               decimal.Decimal `json:"price"`
	Calories            int             `json:"calories"`
	Comment             *string         `json:"comment,omitempty"`
}
