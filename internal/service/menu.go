package service

import (
	"context"

	"github.com/deppfellow/erestaurant/internal/database"
	"github.com/deppfellow/erestaurant/internal/model"
	"github.com/deppfellow/erestaurant/internal/repository"
	"github.com/rs/zerolog"
)

type MenuService struct {
	db     Connector
	repo   repository.MenuRepository
	logger *zerolog.Logger
}

func NewMenuService(db Connector, repo repository.MenuRepository, logger *zerolog.Logger) *MenuService {
	return &MenuService{db: db, repo: repo, logger: logger}
}

// ListMenuItems returns every item, active or not, with its category
// loaded, ordered by item id.
func (s *MenuService) ListMenuItems(ctx context.Context) ([]model.Item, error) {
	return execute(ctx, s.logger, "menu.ListMenuItems", nil, func() ([]model.Item, error) {
		var items []model.Item
		err := s.db.WithConn(ctx, func(q database.Querier) error {
			var err error
			items, err = s.repo.ListItemsWithCategory(ctx, q)
			return err
		})
		return items, err
	})
}

// ListCategorizedMenuItems returns the categories ordered by description,
// each holding only its active items ordered by description. Categories
// with no active item are kept with an empty item list.
func (s *MenuService) ListCategorizedMenuItems(ctx context.Context) ([]model.Category, error) {
	return execute(ctx, s.logger, "menu.ListCategorizedMenuItems", nil, func() ([]model.Category, error) {
		var categories []model.Category
		err := s.db.WithConn(ctx, func(q database.Querier) error {
			var err error
			categories, err = s.repo.ListCategoriesWithActiveItems(ctx, q)
			return err
		})
		return categories, err
	})
}
