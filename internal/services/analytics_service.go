package services

import (
	"context"
	"time"

	"github.com/yoockh/folio/internal/models"
	mongorepo "github.com/yoockh/folio/internal/repositories/mongo"
	pgrepo "github.com/yoockh/folio/internal/repositories/postgres"
	"github.com/yoockh/folio/internal/utils"
)

const pageViewRetention = 180 * 24 * time.Hour

type AnalyticsService interface {
	Record(ctx context.Context, v *models.PageView) error
	// Summary counts views per UTC day over the last days (1..365, default 30).
	Summary(ctx context.Context, userID, portfolioID string, days int) (*models.ViewSummary, error)
}

type analyticsService struct {
	portfolios pgrepo.PortfolioRepository
	views      mongorepo.PageViewRepository
	now        func() time.Time
}

func NewAnalyticsService(portfolios pgrepo.PortfolioRepository, views mongorepo.PageViewRepository) AnalyticsService {
	return &analyticsService{portfolios: portfolios, views: views, now: func() time.Time { return time.Now().UTC() }}
}

func (s *analyticsService) Record(ctx context.Context, v *models.PageView) error {
	const op = "AnalyticsService.Record"

	if s.views == nil {
		return utils.E(utils.CodeUnavailable, op, "analytics store is not configured", nil)
	}
	if v == nil || v.PortfolioID == "" {
		return utils.E(utils.CodeInvalidArgument, op, "portfolio_id is required", nil)
	}
	if v.Timestamp.IsZero() {
		v.Timestamp = s.now()
	}
	v.ExpiresAt = v.Timestamp.Add(pageViewRetention)

	if err := s.views.Insert(ctx, v); err != nil {
		return utils.E(utils.CodeInternal, op, "failed to record page view", err)
	}
	return nil
}

func (s *analyticsService) Summary(ctx context.Context, userID, portfolioID string, days int) (*models.ViewSummary, error) {
	const op = "AnalyticsService.Summary"

	if days == 0 {
		days = 30
	}
	if days < 1 || days > 365 {
		return nil, utils.Invalid(op, map[string]string{"days": "Must be between 1 and 365"})
	}
	if _, err := ownedPortfolio(ctx, s.portfolios, op, userID, portfolioID); err != nil {
		return nil, err
	}
	if s.views == nil {
		return nil, utils.E(utils.CodeUnavailable, op, "analytics store is not configured", nil)
	}

	today := s.now().Truncate(24 * time.Hour)
	since := today.AddDate(0, 0, -(days - 1))

	counts, err := s.views.DailyCounts(ctx, portfolioID, since)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to aggregate page views", err)
	}
	byDay := make(map[string]int64, len(counts))
	for _, c := range counts {
		byDay[c.Day] = c.Count
	}

	out := &models.ViewSummary{PortfolioID: portfolioID, Days: days, Daily: make([]models.DailyViews, 0, days)}
	for d := since; !d.After(today); d = d.AddDate(0, 0, 1) {
		day := d.Format("2006-01-02")
		out.Daily = append(out.Daily, models.DailyViews{Day: day, Count: byDay[day]})
		out.Total += byDay[day]
	}
	return out, nil
}
