package services

import (
	"context"
	"errors"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/yoockh/folio/internal/cache"
	"github.com/yoockh/folio/internal/models"
	"github.com/yoockh/folio/internal/providers/dns"
	pgrepo "github.com/yoockh/folio/internal/repositories/postgres"
	"github.com/yoockh/folio/internal/utils"
	"github.com/yoockh/folio/internal/validation"
	"golang.org/x/sync/errgroup"
)

// ReservedSubdomains cannot be claimed by portfolios.
var ReservedSubdomains = []string{"app", "www", "api", "admin", "blog", "mail"}

type CreatePortfolioInput struct {
	Name      string `json:"name" validate:"required,max=80"`
	Subdomain string `json:"subdomain" validate:"required,hostname_label"`
	Template  string `json:"template" validate:"template_name"`
}

type UpdatePortfolioInput struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=80"`
	Subdomain   *string `json:"subdomain" validate:"omitempty,hostname_label"`
	Template    *string `json:"template" validate:"omitempty,template_name"`
	Title       *string `json:"title" validate:"omitempty,max=160"`
	Description *string `json:"description" validate:"omitempty,max=500"`
	Published   *bool   `json:"published"`
}

type PortfolioService interface {
	Create(ctx context.Context, userID string, in CreatePortfolioInput) (*models.Portfolio, error)
	List(ctx context.Context, userID string) ([]models.Portfolio, error)
	Get(ctx context.Context, userID, id string) (*models.Portfolio, error)
	GetFull(ctx context.Context, userID, id string) (*models.PortfolioFull, error)
	Update(ctx context.Context, userID, id string, in UpdatePortfolioInput) (*models.Portfolio, error)
	Delete(ctx context.Context, userID, id string) error
}

type portfolioService struct {
	portfolios pgrepo.PortfolioRepository
	sections   pgrepo.Sections
	orgs       OrganizationService
	subs       SubscriptionService
	dns        dns.Provider
	validate   *validation.Validator
	sites      siteInvalidator
	log        *logrus.Logger
}

func NewPortfolioService(
	portfolios pgrepo.PortfolioRepository,
	sections pgrepo.Sections,
	orgs OrganizationService,
	subs SubscriptionService,
	dnsProvider dns.Provider,
	c cache.Cache,
	v *validation.Validator,
	log *logrus.Logger,
) PortfolioService {
	if dnsProvider == nil {
		dnsProvider = dns.Disabled{}
	}
	return &portfolioService{
		portfolios: portfolios,
		sections:   sections,
		orgs:       orgs,
		subs:       subs,
		dns:        dnsProvider,
		validate:   v,
		sites:      siteInvalidator{cache: c, log: log},
		log:        log,
	}
}

func checkReserved(op, s string) error {
	if slices.Contains(ReservedSubdomains, s) {
		return utils.Invalid(op, map[string]string{"subdomain": "This subdomain is reserved"})
	}
	return nil
}

func (s *portfolioService) Create(ctx context.Context, userID string, in CreatePortfolioInput) (*models.Portfolio, error) {
	const op = "PortfolioService.Create"

	in.Name = strings.TrimSpace(in.Name)
	in.Subdomain = strings.ToLower(strings.TrimSpace(in.Subdomain))
	if err := s.validate.Struct(op, in); err != nil {
		return nil, err
	}
	if err := checkReserved(op, in.Subdomain); err != nil {
		return nil, err
	}

	org, err := s.orgs.EnsureMine(ctx, userID)
	if err != nil {
		return nil, err
	}
	limits, err := s.subs.Limits(ctx, org.ID)
	if err != nil {
		return nil, err
	}
	n, err := s.portfolios.CountByOrganization(ctx, org.ID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to count portfolios", err)
	}
	if n >= int64(limits.Portfolios) {
		return nil, utils.E(utils.CodeLimitExceeded, op, "portfolio limit reached for the current plan", nil)
	}

	if in.Template == "" {
		in.Template = models.TemplateClassic
	}

	now := time.Now().UTC()
	p := &models.Portfolio{
		ID:             uuid.NewString(),
		OrganizationID: org.ID,
		UserID:         userID,
		Name:           in.Name,
		Subdomain:      in.Subdomain,
		Template:       in.Template,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	basics := &models.Basics{PortfolioID: p.ID, Visible: true, UpdatedAt: now}

	if err := s.portfolios.Create(ctx, p, basics); err != nil {
		if errors.Is(err, utils.ErrConflict) {
			return nil, utils.E(utils.CodeConflict, op, "subdomain is already taken", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to create portfolio", err)
	}
	return p, nil
}

func (s *portfolioService) List(ctx context.Context, userID string) ([]models.Portfolio, error) {
	const op = "PortfolioService.List"

	if userID == "" {
		return nil, utils.E(utils.CodeUnauthorized, op, "unauthorized", nil)
	}
	out, err := s.portfolios.ListByUser(ctx, userID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list portfolios", err)
	}
	return out, nil
}

func (s *portfolioService) Get(ctx context.Context, userID, id string) (*models.Portfolio, error) {
	return ownedPortfolio(ctx, s.portfolios, "PortfolioService.Get", userID, id)
}

func (s *portfolioService) GetFull(ctx context.Context, userID, id string) (*models.PortfolioFull, error) {
	const op = "PortfolioService.GetFull"

	p, err := ownedPortfolio(ctx, s.portfolios, op, userID, id)
	if err != nil {
		return nil, err
	}

	full := &models.PortfolioFull{Portfolio: p}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		b, err := s.portfolios.GetBasics(gctx, id)
		if errors.Is(err, utils.ErrNotFound) {
			full.Basics = &models.Basics{PortfolioID: id, Visible: true}
			return nil
		}
		full.Basics = b
		return err
	})
	g.Go(func() (err error) { full.Experience, err = s.sections.Experience.List(gctx, id, false); return })
	g.Go(func() (err error) { full.Education, err = s.sections.Education.List(gctx, id, false); return })
	g.Go(func() (err error) { full.Skills, err = s.sections.Skills.List(gctx, id, false); return })
	g.Go(func() (err error) { full.Projects, err = s.sections.Projects.List(gctx, id, false); return })
	g.Go(func() (err error) { full.Hackathons, err = s.sections.Hackathons.List(gctx, id, false); return })
	g.Go(func() (err error) { full.Certifications, err = s.sections.Certifications.List(gctx, id, false); return })
	g.Go(func() (err error) { full.Profiles, err = s.sections.Profiles.List(gctx, id, false); return })
	if err := g.Wait(); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to load portfolio", err)
	}
	return full, nil
}

func (s *portfolioService) Update(ctx context.Context, userID, id string, in UpdatePortfolioInput) (*models.Portfolio, error) {
	const op = "PortfolioService.Update"

	in.Name, in.Title, in.Description = trimmed(in.Name), trimmed(in.Title), trimmed(in.Description)
	if in.Subdomain != nil {
		sub := strings.ToLower(strings.TrimSpace(*in.Subdomain))
		in.Subdomain = &sub
	}
	if err := s.validate.Struct(op, in); err != nil {
		return nil, err
	}
	p, err := ownedPortfolio(ctx, s.portfolios, op, userID, id)
	if err != nil {
		return nil, err
	}
	oldSubdomain := p.Subdomain

	if in.Name != nil {
		p.Name = *in.Name
	}
	if in.Subdomain != nil {
		if err := checkReserved(op, *in.Subdomain); err != nil {
			return nil, err
		}
		p.Subdomain = *in.Subdomain
	}
	if in.Template != nil {
		p.Template = *in.Template
	}
	if in.Title != nil {
		p.Title = *in.Title
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Published != nil {
		p.Published = *in.Published
	}
	p.UpdatedAt = time.Now().UTC()

	if err := s.portfolios.Update(ctx, p); err != nil {
		if errors.Is(err, utils.ErrConflict) {
			return nil, utils.E(utils.CodeConflict, op, "subdomain is already taken", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to update portfolio", err)
	}
	s.sites.invalidate(ctx, p, oldSubdomain)
	return p, nil
}

func (s *portfolioService) Delete(ctx context.Context, userID, id string) error {
	const op = "PortfolioService.Delete"

	p, err := ownedPortfolio(ctx, s.portfolios, op, userID, id)
	if err != nil {
		return err
	}
	if err := s.portfolios.Delete(ctx, id); err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return utils.E(utils.CodeNotFound, op, "portfolio not found", err)
		}
		return utils.E(utils.CodeInternal, op, "failed to delete portfolio", err)
	}

	if p.CustomDomain != nil && *p.CustomDomain != "" {
		if err := s.dns.RemoveDomain(ctx, *p.CustomDomain); err != nil && !errors.Is(err, dns.ErrDomainNotFound) {
			s.log.WithError(err).WithFields(logrus.Fields{
				"portfolio_id": id,
				"domain":       *p.CustomDomain,
			}).Warn("failed to remove custom domain from provider")
		}
	}
	s.sites.invalidate(ctx, p)
	return nil
}
