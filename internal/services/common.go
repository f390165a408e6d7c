package services

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/yoockh/folio/internal/cache"
	"github.com/yoockh/folio/internal/models"
	pgrepo "github.com/yoockh/folio/internal/repositories/postgres"
	"github.com/yoockh/folio/internal/utils"
)

// ownedPortfolio loads a portfolio and hides it from anyone but its owner.
func ownedPortfolio(ctx context.Context, repo pgrepo.PortfolioRepository, op, userID, id string) (*models.Portfolio, error) {
	if userID == "" {
		return nil, utils.E(utils.CodeUnauthorized, op, "unauthorized", nil)
	}
	if id == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "portfolio id is required", nil)
	}

	p, err := repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "portfolio not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to get portfolio", err)
	}
	if p.UserID != userID {
		return nil, utils.E(utils.CodeNotFound, op, "portfolio not found", nil)
	}
	return p, nil
}

// siteInvalidator drops the cached public view of a portfolio.
type siteInvalidator struct {
	cache cache.Cache
	log   *logrus.Logger
}

func (s siteInvalidator) invalidate(ctx context.Context, p *models.Portfolio, extraHosts ...string) {
	if s.cache == nil || p == nil {
		return
	}
	keys := []string{cache.SiteKey(p.ID)}
	for _, h := range append(p.Hosts(), extraHosts...) {
		if h != "" {
			keys = append(keys, cache.HostKey(h))
		}
	}
	if err := s.cache.Del(ctx, keys...); err != nil && s.log != nil {
		s.log.WithError(err).WithField("portfolio_id", p.ID).Warn("site cache invalidation failed")
	}
}

// trimmed returns a trimmed copy of an optional field, leaving nil as nil.
func trimmed(v *string) *string {
	if v == nil {
		return nil
	}
	t := strings.TrimSpace(*v)
	return &t
}
