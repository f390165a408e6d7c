package main

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/yoockh/folio/config"
	"github.com/yoockh/folio/internal/api/handlers"
	"github.com/yoockh/folio/internal/api/middleware"
	"github.com/yoockh/folio/internal/api/routes"
	"github.com/yoockh/folio/internal/cache"
	"github.com/yoockh/folio/internal/email"
	"github.com/yoockh/folio/internal/models"
	"github.com/yoockh/folio/internal/providers/dns"
	"github.com/yoockh/folio/internal/providers/llm"
	"github.com/yoockh/folio/internal/providers/payments"
	"github.com/yoockh/folio/internal/render"
	mongorepo "github.com/yoockh/folio/internal/repositories/mongo"
	pgrepo "github.com/yoockh/folio/internal/repositories/postgres"
	"github.com/yoockh/folio/internal/services"
	"github.com/yoockh/folio/internal/storage"
	"github.com/yoockh/folio/internal/validation"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// app holds the infrastructure clients and services shared by serve and worker.
type app struct {
	db    *gorm.DB
	redis *redis.Client
	mongo *mongo.Client
	llm   llm.Provider
	store storage.Store

	cache      cache.Cache
	validator  *validation.Validator
	portfolios pgrepo.PortfolioRepository
	sections   pgrepo.Sections

	orgs    services.OrganizationService
	subs    services.SubscriptionService
	folios  services.PortfolioService
	blogs   services.BlogService
	domains services.DomainService
	sites   services.SiteService
}

func newApp(ctx context.Context, cfg config.Config) (*app, error) {
	db, err := config.InitPostgres(cfg.PostgresURI, log)
	if err != nil {
		return nil, fmt.Errorf("postgres: %w", err)
	}
	log.Info("PostgreSQL connected")

	rdb, err := config.InitRedis(cfg.RedisAddr)
	if err != nil {
		return nil, fmt.Errorf("redis: %w", err)
	}
	log.Info("Redis connected")

	a := &app{db: db, redis: rdb}
	a.cache = cache.NewRedisCache(rdb)
	a.validator = validation.New()
	a.portfolios = pgrepo.NewPortfolioRepo(db)
	a.sections = pgrepo.NewSections(db)

	var dnsProvider dns.Provider = dns.Disabled{}
	if cfg.Vercel.Enabled() {
		dnsProvider = dns.NewVercel(cfg.Vercel.Token, cfg.Vercel.ProjectID, cfg.Vercel.TeamID)
	} else {
		log.Warn("VERCEL_TOKEN/VERCEL_PROJECT_ID not set; custom domains disabled")
	}

	var pay payments.Provider = payments.Disabled{}
	if cfg.Stripe.Enabled() {
		pay = payments.NewStripe(cfg.Stripe.SecretKey, cfg.Stripe.WebhookSecret, cfg.Stripe.ProPriceID)
	} else {
		log.Warn("STRIPE_SECRET_KEY not set; billing disabled")
	}

	if cfg.Vertex.Enabled() {
		g, err := llm.NewVertexGemini(ctx, cfg.Vertex)
		if err != nil {
			log.WithError(err).Warn("vertex init failed; summary suggestions disabled")
		} else {
			a.llm = g
		}
	}

	a.orgs = services.NewOrganizationService(pgrepo.NewOrganizationRepo(db), a.validator)
	a.subs = services.NewSubscriptionService(pgrepo.NewSubscriptionRepo(db), a.orgs, pay, cfg.AppURL, log)
	a.folios = services.NewPortfolioService(a.portfolios, a.sections, a.orgs, a.subs, dnsProvider, a.cache, a.validator, log)
	a.blogs = services.NewBlogService(pgrepo.NewBlogRepo(db), a.portfolios, a.cache, a.validator)
	a.domains = services.NewDomainService(a.portfolios, a.orgs, a.subs, dnsProvider, rdb, a.cache, cfg.RootDomain, log)
	a.sites = services.NewSiteService(a.portfolios, a.sections, a.blogs, a.cache, cfg.SiteCacheTTL, log)
	return a, nil
}

// pageViews connects Mongo when configured; analytics is optional.
func (a *app) pageViews(cfg config.Config) mongorepo.PageViewRepository {
	if cfg.MongoURI == "" {
		log.Warn("MONGO_URI not set; page-view analytics disabled")
		return nil
	}
	client, err := config.InitMongo(cfg.MongoURI)
	if err != nil {
		log.WithError(err).Warn("mongo init failed; page-view analytics disabled")
		return nil
	}
	log.Info("MongoDB connected")
	a.mongo = client

	db := client.Database(cfg.MongoDB)
	if err := config.EnsureMongoIndexes(db); err != nil {
		log.WithError(err).Warn("failed to ensure mongo indexes")
	}
	return mongorepo.NewPageViewRepo(db)
}

func (a *app) objectStore(ctx context.Context, cfg config.Config) storage.Uploader {
	s, err := storage.New(ctx, cfg.Storage)
	if err != nil {
		log.WithError(err).Warn("object storage unavailable; uploads disabled")
		return nil
	}
	a.store = s
	return s
}

func (a *app) mailer(cfg config.Config) email.Sender {
	if !cfg.SMTP.Enabled() {
		log.Warn("SMTP_HOST/MAIL_FROM not set; contact form disabled")
		return email.Disabled{}
	}
	return email.NewSMTPSender(cfg.SMTP)
}

// router builds the gin engine with every route of the API and the tenant sites.
func (a *app) router(ctx context.Context, cfg config.Config) (*gin.Engine, error) {
	renderer, err := render.New()
	if err != nil {
		return nil, fmt.Errorf("templates: %w", err)
	}

	views := a.pageViews(cfg)
	uploader := a.objectStore(ctx, cfg)

	analytics := services.NewAnalyticsService(a.portfolios, views)
	basics := services.NewBasicsService(a.portfolios, a.sections, a.llm, a.cache, a.validator)
	uploads := services.NewUploadService(uploader, pgrepo.NewUploadRepo(a.db))
	contact := services.NewContactService(a.sites, a.cache, a.mailer(cfg), cfg.ContactRateLimit, a.validator)

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	_ = r.SetTrustedProxies(nil)

	routes.RegisterRoutes(r, routes.Deps{
		Log:          log,
		JWT:          middleware.JWTConfig{Secret: cfg.JWTSecret, Issuer: cfg.JWTIssuer, Audience: cfg.JWTAudience},
		RootDomain:   cfg.RootDomain,
		AppSubdomain: cfg.AppSubdomain,

		Organization: handlers.NewOrganizationHandler(a.orgs),
		Portfolio:    handlers.NewPortfolioHandler(a.folios, basics, analytics),
		Sections:     a.sectionRoutes(),
		Blog:         handlers.NewBlogHandler(a.blogs),
		Domain:       handlers.NewDomainHandler(a.domains),
		Upload:       handlers.NewUploadHandler(uploads),
		Contact:      handlers.NewContactHandler(contact),
		Subscription: handlers.NewSubscriptionHandler(a.subs),
		Site:         handlers.NewSiteHandler(a.sites, analytics, renderer, log),
		WS:           handlers.NewWSHandler(a.domains, a.redis, cfg.WSAllowedOrigins),
	})
	return r, nil
}

func (a *app) sectionRoutes() []routes.SectionRoutes {
	s := a.sections
	return []routes.SectionRoutes{
		sectionRoute("experience", a, s.Experience),
		sectionRoute("education", a, s.Education),
		sectionRoute("skills", a, s.Skills),
		sectionRoute("projects", a, s.Projects),
		sectionRoute("hackathons", a, s.Hackathons),
		sectionRoute("certifications", a, s.Certifications),
		sectionRoute("profiles", a, s.Profiles),
	}
}

func sectionRoute[T any, PT interface {
	*T
	models.Section
}](kind string, a *app, items pgrepo.SectionRepository[T, PT]) routes.SectionRoutes {
	svc := services.NewSectionService(kind, a.portfolios, items, a.cache, a.validator)
	return handlers.NewSectionHandler(kind, svc)
}

func (a *app) Close() {
	if a.llm != nil {
		_ = a.llm.Close()
	}
	if a.store != nil {
		_ = a.store.Close()
	}
	if a.mongo != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = a.mongo.Disconnect(ctx)
	}
	if a.redis != nil {
		_ = a.redis.Close()
	}
	if a.db != nil {
		if sqlDB, err := a.db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
}
