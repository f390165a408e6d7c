package services

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"github.com/yoockh/folio/internal/cache"
	"github.com/yoockh/folio/internal/email"
	"github.com/yoockh/folio/internal/logger"
	"github.com/yoockh/folio/internal/models"
	"github.com/yoockh/folio/internal/providers/dns"
	"github.com/yoockh/folio/internal/providers/payments"
	pgrepo "github.com/yoockh/folio/internal/repositories/postgres"
	"github.com/yoockh/folio/internal/validation"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type testEnv struct {
	db    *gorm.DB
	mr    *miniredis.Miniredis
	redis *redis.Client
	cache cache.Cache
	v     *validation.Validator

	portfolios pgrepo.PortfolioRepository
	sections   pgrepo.Sections
	blogRepo   pgrepo.BlogRepository
	subRepo    pgrepo.SubscriptionRepository

	orgs   OrganizationService
	subs   SubscriptionService
	dns    *fakeDNS
	pay    *fakePayments
	folios PortfolioService
	blogs  BlogService
	sites  SiteService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(
		&models.Organization{}, &models.Subscription{}, &models.Portfolio{}, &models.Basics{},
		&models.Experience{}, &models.Education{}, &models.Skill{}, &models.Project{},
		&models.Hackathon{}, &models.Certification{}, &models.Profile{},
		&models.Blog{}, &models.Upload{},
	))

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	log := logger.Discard()
	e := &testEnv{
		db:         db,
		mr:         mr,
		redis:      rdb,
		cache:      cache.NewRedisCache(rdb),
		v:          validation.New(),
		portfolios: pgrepo.NewPortfolioRepo(db),
		sections:   pgrepo.NewSections(db),
		blogRepo:   pgrepo.NewBlogRepo(db),
		subRepo:    pgrepo.NewSubscriptionRepo(db),
		dns:        newFakeDNS(),
		pay:        &fakePayments{},
	}
	e.orgs = NewOrganizationService(pgrepo.NewOrganizationRepo(db), e.v)
	e.subs = NewSubscriptionService(e.subRepo, e.orgs, e.pay, "https://app.folio.dev", log)
	e.folios = NewPortfolioService(e.portfolios, e.sections, e.orgs, e.subs, e.dns, e.cache, e.v, log)
	e.blogs = NewBlogService(e.blogRepo, e.portfolios, e.cache, e.v)
	e.sites = NewSiteService(e.portfolios, e.sections, e.blogs, e.cache, time.Minute, log)
	return e
}

// makePro puts the user's organization on an active pro subscription.
func (e *testEnv) makePro(t *testing.T, userID string) {
	t.Helper()
	ctx := context.Background()
	org, err := e.orgs.EnsureMine(ctx, userID)
	require.NoError(t, err)
	require.NoError(t, e.subRepo.Upsert(ctx, &models.Subscription{
		ID:             "sub-" + userID,
		OrganizationID: org.ID,
		Plan:           models.PlanPro,
		Status:         models.SubscriptionActive,
		CreatedAt:      time.Now().UTC(),
		UpdatedAt:      time.Now().UTC(),
	}))
}

func (e *testEnv) newPortfolio(t *testing.T, userID, subdomain string) *models.Portfolio {
	t.Helper()
	p, err := e.folios.Create(context.Background(), userID, CreatePortfolioInput{Name: subdomain, Subdomain: subdomain})
	require.NoError(t, err)
	return p
}

type fakeDNS struct {
	mu         sync.Mutex
	domains    map[string]*dns.ProjectDomain
	config     map[string]*dns.DomainConfig
	verifyErr  error
	verifyOnce map[string]bool
	removed    []string
}

func newFakeDNS() *fakeDNS {
	return &fakeDNS{
		domains:    map[string]*dns.ProjectDomain{},
		config:     map[string]*dns.DomainConfig{},
		verifyOnce: map[string]bool{},
	}
}

func (f *fakeDNS) AddDomain(_ context.Context, d string) (*dns.ProjectDomain, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	pd := &dns.ProjectDomain{Name: d, Verification: []dns.VerificationRecord{{Type: "TXT", Domain: "_vercel." + d, Value: "vc=" + d}}}
	f.domains[d] = pd
	return pd, nil
}

func (f *fakeDNS) RemoveDomain(_ context.Context, d string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.removed = append(f.removed, d)
	if _, ok := f.domains[d]; !ok {
		return dns.ErrDomainNotFound
	}
	delete(f.domains, d)
	return nil
}

func (f *fakeDNS) GetDomain(_ context.Context, d string) (*dns.ProjectDomain, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	pd, ok := f.domains[d]
	if !ok {
		return nil, dns.ErrDomainNotFound
	}
	cp := *pd
	return &cp, nil
}

func (f *fakeDNS) VerifyDomain(_ context.Context, d string) (*dns.ProjectDomain, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.verifyErr != nil {
		return nil, f.verifyErr
	}
	pd, ok := f.domains[d]
	if !ok {
		return nil, dns.ErrDomainNotFound
	}
	if f.verifyOnce[d] {
		pd.Verified = true
		pd.Verification = nil
	}
	cp := *pd
	return &cp, nil
}

func (f *fakeDNS) GetConfig(_ context.Context, d string) (*dns.DomainConfig, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if c, ok := f.config[d]; ok {
		return c, nil
	}
	return &dns.DomainConfig{}, nil
}

type fakePayments struct {
	event    *payments.Event
	checkout payments.CheckoutInput
}

func (f *fakePayments) CreateCheckout(_ context.Context, in payments.CheckoutInput) (string, error) {
	f.checkout = in
	return "https://checkout.example/" + in.OrganizationID, nil
}

func (f *fakePayments) ParseWebhook(_ []byte, signature string) (*payments.Event, error) {
	if signature != "ok" {
		return nil, payments.ErrInvalidSignature
	}
	return f.event, nil
}

type fakeSender struct {
	sent []email.ContactMessage
}

func (f *fakeSender) SendContact(_ context.Context, msg email.ContactMessage) error {
	f.sent = append(f.sent, msg)
	return nil
}

type fakeStore struct {
	key, contentType string
	body             []byte
}

func (f *fakeStore) Upload(_ context.Context, key, contentType string, r io.Reader) (string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	f.key, f.contentType, f.body = key, contentType, b
	return "https://cdn.example/" + key, nil
}
