package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yoockh/folio/internal/cache"
	"github.com/yoockh/folio/internal/models"
	pgrepo "github.com/yoockh/folio/internal/repositories/postgres"
	"github.com/yoockh/folio/internal/utils"
	"golang.org/x/sync/errgroup"
)

type SiteService interface {
	// Lookup resolves a site key (subdomain label or custom host) to the
	// published portfolio with only its visible content.
	Lookup(ctx context.Context, siteKey string) (*models.Site, error)
	Post(ctx context.Context, site *models.Site, slug string) (*models.Blog, error)
}

type siteService struct {
	portfolios pgrepo.PortfolioRepository
	sections   pgrepo.Sections
	blogs      BlogService
	cache      cache.Cache
	ttl        time.Duration
	log        *logrus.Logger
}

func NewSiteService(portfolios pgrepo.PortfolioRepository, sections pgrepo.Sections, blogs BlogService, c cache.Cache, ttl time.Duration, log *logrus.Logger) SiteService {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &siteService{portfolios: portfolios, sections: sections, blogs: blogs, cache: c, ttl: ttl, log: log}
}

func (s *siteService) Lookup(ctx context.Context, siteKey string) (*models.Site, error) {
	const op = "SiteService.Lookup"

	key := strings.ToLower(strings.TrimSpace(siteKey))
	if key == "" {
		return nil, utils.E(utils.CodeNotFound, op, "site not found", nil)
	}

	if site, ok := s.fromCache(ctx, key); ok {
		return site, nil
	}

	var (
		p   *models.Portfolio
		err error
	)
	if strings.Contains(key, ".") {
		p, err = s.portfolios.GetByCustomDomain(ctx, key)
	} else {
		p, err = s.portfolios.GetBySubdomain(ctx, key)
	}
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "site not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to look up site", err)
	}
	if !p.Published {
		return nil, utils.E(utils.CodeNotFound, op, "site not found", nil)
	}

	site, err := s.build(ctx, p)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to load site", err)
	}
	s.toCache(ctx, key, site)
	return site, nil
}

func (s *siteService) fromCache(ctx context.Context, key string) (*models.Site, bool) {
	if s.cache == nil {
		return nil, false
	}
	var id string
	hit, err := s.cache.GetJSON(ctx, cache.HostKey(key), &id)
	if err != nil || !hit {
		return nil, false
	}
	var site models.Site
	hit, err = s.cache.GetJSON(ctx, cache.SiteKey(id), &site)
	if err != nil || !hit {
		return nil, false
	}
	return &site, true
}

func (s *siteService) toCache(ctx context.Context, key string, site *models.Site) {
	if s.cache == nil {
		return
	}
	id := site.Portfolio.ID
	if err := s.cache.SetJSON(ctx, cache.SiteKey(id), site, s.ttl); err != nil {
		s.log.WithError(err).WithField("portfolio_id", id).Warn("failed to cache site")
		return
	}
	_ = s.cache.SetJSON(ctx, cache.HostKey(key), id, s.ttl)
}

func (s *siteService) build(ctx context.Context, p *models.Portfolio) (*models.Site, error) {
	site := &models.Site{Portfolio: p.Public()}
	id := p.ID

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		b, err := s.portfolios.GetBasics(gctx, id)
		switch {
		case errors.Is(err, utils.ErrNotFound):
			return nil
		case err != nil:
			return err
		}
		if b.Visible {
			site.Basics = b
		}
		return nil
	})
	g.Go(func() (err error) { site.Experience, err = s.sections.Experience.List(gctx, id, true); return })
	g.Go(func() (err error) { site.Education, err = s.sections.Education.List(gctx, id, true); return })
	g.Go(func() (err error) { site.Skills, err = s.sections.Skills.List(gctx, id, true); return })
	g.Go(func() (err error) { site.Projects, err = s.sections.Projects.List(gctx, id, true); return })
	g.Go(func() (err error) { site.Hackathons, err = s.sections.Hackathons.List(gctx, id, true); return })
	g.Go(func() (err error) { site.Certifications, err = s.sections.Certifications.List(gctx, id, true); return })
	g.Go(func() (err error) { site.Profiles, err = s.sections.Profiles.List(gctx, id, true); return })
	g.Go(func() (err error) { site.Posts, err = s.blogs.ListPublished(gctx, id); return })
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return site, nil
}

func (s *siteService) Post(ctx context.Context, site *models.Site, slug string) (*models.Blog, error) {
	if site == nil {
		return nil, utils.E(utils.CodeNotFound, "SiteService.Post", "site not found", nil)
	}
	return s.blogs.GetPublished(ctx, site.Portfolio.ID, strings.ToLower(slug))
}
