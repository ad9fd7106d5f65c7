package repository

import (
	"context"

	"github.com/deppfellow/erestaurant/internal/database"
	"github.com/deppfellow/erestaurant/internal/model"
	"github.com/shopspring/decimal"
)

const listItemsWithCategorySQL = `
SELECT i.item_id, i.description, i.current_price, i.current_cost, i.active,
       i.calories, i.comment, i.menu_category_id, c.description
FROM items i
JOIN menu_categories c ON c.menu_category_id = i.menu_category_id
ORDER BY i.item_id`

// Active items only; categories without any still come back as one
// row with NULL item columns.
const listCategoriesWithActiveItemsSQL = `
SELECT c.menu_category_id, c.description,
       i.item_id, i.description, i.current_price, i.calories, i.comment
FROM menu_categories c
LEFT JOIN items i ON i.menu_category_id = c.menu_category_id AND i.active
ORDER BY c.description, c.menu_category_id, i.description, i.item_id`

const listCategoryMenuItemsSQL = `
SELECT c.description, i.description, i.current_price, i.calories, i.comment
FROM items i
JOIN menu_categories c ON c.menu_category_id = i.menu_category_id
ORDER BY c.description, i.description, i.item_id`

type menuRepository struct{}

func NewMenuRepository() MenuRepository {
	return &menuRepository{}
}

func (r *menuRepository) ListItemsWithCategory(ctx context.Context, q database.Querier) ([]model.Item, error) {
	const op = "repository.ListItemsWithCategory"

	rows, err := q.Query(ctx, listItemsWithCategorySQL)
	if err != nil {
		return nil, queryFailed(op, err)
	}
	defer rows.Close()

	items := []model.Item{}
	for rows.Next() {
		var (
			item     model.Item
			category model.MenuCategory
		)
		if err := rows.Scan(
			&item.ID, &item.Description, &item.CurrentPrice, &item.CurrentCost, &item.Active,
			&item.Calories, &item.Comment, &item.CategoryID, &category.Description,
		); err != nil {
			return nil, scanFailed(op, err)
		}
		category.ID = item.CategoryID
		item.Category = &category
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, queryFailed(op, err)
	}

	return items, nil
}

// categoryRow is one row of the categorized menu LEFT JOIN.
type categoryRow struct {
	CategoryID  int
	Category    string
	ItemID      *int
	Description *string
	Price       decimal.NullDecimal
	Calories    *int
	Comment     *string
}

func (r *menuRepository) ListCategoriesWithActiveItems(ctx context.Context, q database.Querier) ([]model.Category, error) {
	const op = "repository.ListCategoriesWithActiveItems"

	rows, err := q.Query(ctx, listCategoriesWithActiveItemsSQL)
	if err != nil {
		return nil, queryFailed(op, err)
	}
	defer rows.Close()

	var result []categoryRow
	for rows.Next() {
		var row categoryRow
		if err := rows.Scan(
			&row.CategoryID, &row.Category,
			&row.ItemID, &row.Description, &row.Price, &row.Calories, &row.Comment,
		); err != nil {
			return nil, scanFailed(op, err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, queryFailed(op, err)
	}

	return foldCategories(result), nil
}

// foldCategories groups consecutive rows of one category. rows must be
// ordered so that each category's rows are adjacent.
func foldCategories(rows []categoryRow) []model.Category {
	categories := []model.Category{}
	for _, row := range rows {
		n := len(categories)
		if n == 0 || categories[n-1].ID != row.CategoryID {
			categories = append(categories, model.Category{
				ID:          row.CategoryID,
				Description: row.Category,
				Items:       []model.MenuItem{},
			})
			n++
		}

		if row.ItemID == nil {
			continue
		}

		item := model.MenuItem{Price: row.Price.Decimal, Comment: row.Comment}
		if row.Description != nil {
			item.Description = *row.Description
		}
		if row.Calories != nil {
			item.Calories = *row.Calories
		}
		categories[n-1].Items = append(categories[n-1].Items, item)
	}
	return categories
}

func (r *menuRepository) ListCategoryMenuItems(ctx context.Context, q database.Querier) ([]model.CategoryMenuItem, error) {
	const op = "repository.ListCategoryMenuItems"

	rows, err := q.Query(ctx, listCategoryMenuItemsSQL)
	if err != nil {
		return nil, queryFailed(op, err)
	}
	defer rows.Close()

	report := []model.CategoryMenuItem{}
	for rows.Next() {
		var line model.CategoryMenuItem
		if err := rows.Scan(
			&line.CategoryDescription, &line.ItemDescription, &line.Price, &line.Calories, &line.Comment,
		); err != nil {
			return nil, scanFailed(op, err)
		}
		report = append(report, line)
	}
	if err := rows.Err(); err != nil {
		return nil, queryFailed(op, err)
	}

	return report, nil
}
