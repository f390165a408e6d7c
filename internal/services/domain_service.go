package services

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/yoockh/folio/internal/cache"
	"github.com/yoockh/folio/internal/models"
	"github.com/yoockh/folio/internal/providers/dns"
	pgrepo "github.com/yoockh/folio/internal/repositories/postgres"
	"github.com/yoockh/folio/internal/utils"
	"github.com/yoockh/folio/internal/validation"
)

const DomainVerifyStream = "domains:verify"

// DomainStatusChannel is the pub/sub channel carrying status changes of one domain.
func DomainStatusChannel(domain string) string { return "domain:" + domain + ":status" }

// DomainCheck is the outcome of one status check.
type DomainCheck struct {
	Type         string                   `json:"type"`
	Domain       string                   `json:"domain"`
	Status       models.DomainStatus      `json:"status"`
	Verification []dns.VerificationRecord `json:"verification,omitempty"`
	CheckedAt    time.Time                `json:"checked_at"`
}

type DomainService interface {
	Add(ctx context.Context, userID, portfolioID, domain string) (*DomainCheck, error)
	Remove(ctx context.Context, userID, domain string) error
	Status(ctx context.Context, userID, domain string) (*DomainCheck, error)
	// Verify queues an immediate re-check and returns the current status.
	Verify(ctx context.Context, userID, domain string) (*DomainCheck, error)
	// Authorize fails unless the domain belongs to one of the user's portfolios.
	Authorize(ctx context.Context, userID, domain string) error

	// Check runs the provider state machine, stores and publishes the result.
	Check(ctx context.Context, domain string) (*DomainCheck, error)
	Enqueue(ctx context.Context, domain string) error
	// EnqueueStale queues every custom domain that is not yet valid.
	EnqueueStale(ctx context.Context) (int, error)
}

type domainService struct {
	portfolios pgrepo.PortfolioRepository
	orgs       OrganizationService
	subs       SubscriptionService
	dns        dns.Provider
	redis      *redis.Client
	rootDomain string
	sites      siteInvalidator
	log        *logrus.Logger
}

func NewDomainService(
	portfolios pgrepo.PortfolioRepository,
	orgs OrganizationService,
	subs SubscriptionService,
	provider dns.Provider,
	rdb *redis.Client,
	c cache.Cache,
	rootDomain string,
	log *logrus.Logger,
) DomainService {
	if provider == nil {
		provider = dns.Disabled{}
	}
	return &domainService{
		portfolios: portfolios,
		orgs:       orgs,
		subs:       subs,
		dns:        provider,
		redis:      rdb,
		rootDomain: strings.ToLower(rootDomain),
		sites:      siteInvalidator{cache: c, log: log},
		log:        log,
	}
}

// NormalizeDomain strips scheme, path, port and trailing dot and lower-cases the rest.
func NormalizeDomain(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.TrimPrefix(s, "https://")
	s = strings.TrimPrefix(s, "http://")
	if i := strings.IndexAny(s, "/?#"); i >= 0 {
		s = s[:i]
	}
	if i := strings.LastIndexByte(s, ':'); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSuffix(s, ".")
}

func (s *domainService) providerErr(op string, err error) error {
	switch {
	case errors.Is(err, dns.ErrNotConfigured):
		return utils.E(utils.CodeUnavailable, op, "custom domains are not configured", err)
	case errors.Is(err, dns.ErrDomainTaken):
		return utils.E(utils.CodeConflict, op, "domain is already in use", err)
	default:
		return utils.E(utils.CodeUnavailable, op, "domain provider request failed", err)
	}
}

func (s *domainService) ownedByDomain(ctx context.Context, op, userID, domain string) (*models.Portfolio, error) {
	if userID == "" {
		return nil, utils.E(utils.CodeUnauthorized, op, "unauthorized", nil)
	}
	d := NormalizeDomain(domain)
	if d == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "domain is required", nil)
	}
	p, err := s.portfolios.GetByCustomDomain(ctx, d)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "domain not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to get domain", err)
	}
	if p.UserID != userID {
		return nil, utils.E(utils.CodeNotFound, op, "domain not found", nil)
	}
	return p, nil
}

func (s *domainService) Add(ctx context.Context, userID, portfolioID, domain string) (*DomainCheck, error) {
	const op = "DomainService.Add"

	p, err := ownedPortfolio(ctx, s.portfolios, op, userID, portfolioID)
	if err != nil {
		return nil, err
	}

	limits, err := s.subs.Limits(ctx, p.OrganizationID)
	if err != nil {
		return nil, err
	}
	if !limits.CustomDomain {
		return nil, utils.E(utils.CodeLimitExceeded, op, "custom domains require the pro plan", nil)
	}

	d := NormalizeDomain(domain)
	if !validation.IsHostname(d) {
		return nil, utils.Invalid(op, map[string]string{"domain": "Must be a valid domain name"})
	}
	if s.rootDomain != "" && (d == s.rootDomain || strings.HasSuffix(d, "."+s.rootDomain)) {
		return nil, utils.Invalid(op, map[string]string{"domain": "Use the subdomain setting for addresses under " + s.rootDomain})
	}

	other, err := s.portfolios.GetByCustomDomain(ctx, d)
	switch {
	case err == nil && other.ID != p.ID:
		return nil, utils.E(utils.CodeConflict, op, "domain is already in use", nil)
	case err != nil && !errors.Is(err, utils.ErrNotFound):
		return nil, utils.E(utils.CodeInternal, op, "failed to check domain", err)
	}

	if _, err := s.dns.AddDomain(ctx, d); err != nil {
		return nil, s.providerErr(op, err)
	}

	var old string
	if p.CustomDomain != nil && *p.CustomDomain != d {
		old = *p.CustomDomain
		if err := s.dns.RemoveDomain(ctx, old); err != nil && !errors.Is(err, dns.ErrDomainNotFound) {
			s.log.WithError(err).WithField("domain", old).Warn("failed to remove previous custom domain from provider")
		}
	}

	if err := s.portfolios.SetCustomDomain(ctx, p.ID, &d, models.DomainPending); err != nil {
		if errors.Is(err, utils.ErrConflict) {
			return nil, utils.E(utils.CodeConflict, op, "domain is already in use", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to save domain", err)
	}
	p.CustomDomain = &d
	p.DomainStatus = models.DomainPending
	s.sites.invalidate(ctx, p, old)

	if err := s.Enqueue(ctx, d); err != nil {
		s.log.WithError(err).WithField("domain", d).Warn("failed to enqueue domain verification")
	}

	return &DomainCheck{Type: "domain_status", Domain: d, Status: models.DomainPending, CheckedAt: time.Now().UTC()}, nil
}

func (s *domainService) Remove(ctx context.Context, userID, domain string) error {
	const op = "DomainService.Remove"

	p, err := s.ownedByDomain(ctx, op, userID, domain)
	if err != nil {
		return err
	}
	d := *p.CustomDomain

	if err := s.dns.RemoveDomain(ctx, d); err != nil && !errors.Is(err, dns.ErrDomainNotFound) {
		return s.providerErr(op, err)
	}
	if err := s.portfolios.SetCustomDomain(ctx, p.ID, nil, models.DomainStatusNone); err != nil {
		return utils.E(utils.CodeInternal, op, "failed to clear domain", err)
	}
	s.sites.invalidate(ctx, p)
	return nil
}

func (s *domainService) Status(ctx context.Context, userID, domain string) (*DomainCheck, error) {
	const op = "DomainService.Status"

	p, err := s.ownedByDomain(ctx, op, userID, domain)
	if err != nil {
		return nil, err
	}
	return s.Check(ctx, *p.CustomDomain)
}

func (s *domainService) Verify(ctx context.Context, userID, domain string) (*DomainCheck, error) {
	const op = "DomainService.Verify"

	p, err := s.ownedByDomain(ctx, op, userID, domain)
	if err != nil {
		return nil, err
	}
	if err := s.Enqueue(ctx, *p.CustomDomain); err != nil {
		return nil, utils.E(utils.CodeUnavailable, op, "failed to queue verification", err)
	}
	status := p.DomainStatus
	if status == models.DomainStatusNone {
		status = models.DomainPending
	}
	return &DomainCheck{Type: "domain_status", Domain: *p.CustomDomain, Status: status, CheckedAt: p.UpdatedAt}, nil
}

func (s *domainService) Authorize(ctx context.Context, userID, domain string) error {
	_, err := s.ownedByDomain(ctx, "DomainService.Authorize", userID, domain)
	return err
}

func (s *domainService) Check(ctx context.Context, domain string) (*DomainCheck, error) {
	const op = "DomainService.Check"

	d := NormalizeDomain(domain)
	if d == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "domain is required", nil)
	}

	res, err := s.check(ctx, d)
	if err != nil {
		return nil, s.providerErr(op, err)
	}

	if err := s.portfolios.SetDomainStatus(ctx, d, res.Status); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to save domain status", err)
	}
	s.publish(ctx, res)
	return res, nil
}

func (s *domainService) check(ctx context.Context, d string) (*DomainCheck, error) {
	res := &DomainCheck{Type: "domain_status", Domain: d, CheckedAt: time.Now().UTC()}

	pd, err := s.dns.GetDomain(ctx, d)
	if err != nil {
		if errors.Is(err, dns.ErrDomainNotFound) {
			res.Status = models.DomainNotFound
			return res, nil
		}
		return nil, err
	}

	if !pd.Verified {
		vd, err := s.dns.VerifyDomain(ctx, d)
		switch {
		case err == nil:
			pd = vd
		case errors.Is(err, dns.ErrDomainNotFound):
			res.Status = models.DomainNotFound
			return res, nil
		default:
			// the provider answers an unverifiable domain with an error; keep the lookup result
			s.log.WithError(err).WithField("domain", d).Debug("domain verification attempt failed")
		}
		if !pd.Verified {
			res.Status = models.DomainPending
			res.Verification = pd.Verification
			return res, nil
		}
	}

	cfg, err := s.dns.GetConfig(ctx, d)
	if err != nil {
		return nil, err
	}
	if cfg.Misconfigured {
		res.Status = models.DomainInvalid
	} else {
		res.Status = models.DomainValid
	}
	return res, nil
}

func (s *domainService) publish(ctx context.Context, res *DomainCheck) {
	if s.redis == nil {
		return
	}
	b, err := json.Marshal(res)
	if err != nil {
		return
	}
	if err := s.redis.Publish(ctx, DomainStatusChannel(res.Domain), b).Err(); err != nil {
		s.log.WithError(err).WithField("domain", res.Domain).Warn("failed to publish domain status")
	}
}

func (s *domainService) Enqueue(ctx context.Context, domain string) error {
	if s.redis == nil {
		return errors.New("redis is not configured")
	}
	return s.redis.XAdd(ctx, &redis.XAddArgs{
		Stream: DomainVerifyStream,
		MaxLen: 10000,
		Approx: true,
		Values: map[string]any{
			"domain":  domain,
			"ts_unix": time.Now().UTC().Unix(),
		},
	}).Err()
}

func (s *domainService) EnqueueStale(ctx context.Context) (int, error) {
	const op = "DomainService.EnqueueStale"

	domains, err := s.portfolios.ListUnverifiedDomains(ctx, 0)
	if err != nil {
		return 0, utils.E(utils.CodeInternal, op, "failed to list domains", err)
	}
	n := 0
	for _, d := range domains {
		if err := s.Enqueue(ctx, d); err != nil {
			return n, utils.E(utils.CodeUnavailable, op, "failed to enqueue domain", err)
		}
		n++
	}
	return n, nil
}
