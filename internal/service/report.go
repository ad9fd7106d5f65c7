package service

import (
	"context"

	"github.com/deppfellow/erestaurant/internal/database"
	"github.com/deppfellow/erestaurant/internal/model"
	"github.com/deppfellow/erestaurant/internal/repository"
	"github.com/rs/zerolog"
)

type ReportService struct {
	db     Connector
	repo   repository.MenuRepository
	logger *zerolog.Logger
}

func NewReportService(db Connector, repo repository.MenuRepository, logger *zerolog.Logger) *ReportService {
	return &ReportService{db: db, repo: repo, logger: logger}
}

// GetReportCategoryMenuItem lists every item with its category
// description, ordered by category description then item description.
func (s *ReportService) GetReportCategoryMenuItem(ctx context.Context) ([]model.CategoryMenuItem, error) {
	return execute(ctx, s.logger, "report.GetReportCategoryMenuItem", nil, func() ([]model.CategoryMenuItem, error) {
		var report []model.CategoryMenuItem
		err := s.db.WithConn(ctx, func(q database.Querier) error {
			var err error
			report, err = s.repo.ListCategoryMenuItems(ctx, q)
			return err
		})
		return report, err
	})
}
