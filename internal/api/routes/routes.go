package routes

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/yoockh/folio/internal/api/handlers"
	"github.com/yoockh/folio/internal/api/middleware"
	"github.com/yoockh/folio/internal/utils"
)

// SectionRoutes is implemented by every handlers.SectionHandler instantiation.
type SectionRoutes interface {
	Register(g *gin.RouterGroup)
}

type Deps struct {
	Log *logrus.Logger
	JWT middleware.JWTConfig

	RootDomain   string
	AppSubdomain string

	Organization *handlers.OrganizationHandler
	Portfolio    *handlers.PortfolioHandler
	Sections     []SectionRoutes
	Blog         *handlers.BlogHandler
	Domain       *handlers.DomainHandler
	Upload       *handlers.UploadHandler
	Contact      *handlers.ContactHandler
	Subscription *handlers.SubscriptionHandler
	Site         *handlers.SiteHandler
	WS           *handlers.WSHandler
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	// tenant rewrite must run before anything else sees the path
	r.Use(middleware.Tenant(r, d.RootDomain, d.AppSubdomain))
	r.Use(middleware.RequestLogger(d.Log, "/ping"), gin.Recovery())

	// Health-ish
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	// Public
	r.POST("/api/send-email", d.Contact.Send)
	r.POST("/api/webhooks/stripe", d.Subscription.Webhook)
	r.GET("/api/sites/:site", d.Site.JSON)

	r.GET(middleware.SitesPrefix+":site/", d.Site.Home)
	r.GET(middleware.SitesPrefix+":site/blog", d.Site.BlogIndex)
	r.GET(middleware.SitesPrefix+":site/blog/:slug", d.Site.BlogPost)

	// Protected routes (JWT)
	auth := r.Group("/api")
	auth.Use(middleware.JWTAuth(d.JWT))

	auth.GET("/organizations/me", d.Organization.Me)
	auth.PATCH("/organizations/me", d.Organization.Rename)

	auth.GET("/portfolios", d.Portfolio.List)
	auth.POST("/portfolios", d.Portfolio.Create)

	p := auth.Group("/portfolios/:id")
	p.GET("", d.Portfolio.Get)
	p.PATCH("", d.Portfolio.Update)
	p.DELETE("", d.Portfolio.Delete)
	p.GET("/basics", d.Portfolio.GetBasics)
	p.PUT("/basics", d.Portfolio.PutBasics)
	p.POST("/basics/summary", d.Portfolio.SuggestSummary)
	p.GET("/analytics", d.Portfolio.Analytics)
	for _, s := range d.Sections {
		s.Register(p)
	}

	auth.GET("/blogs", d.Blog.List)
	auth.POST("/blogs", d.Blog.Create)
	auth.GET("/blogs/:id", d.Blog.Get)
	auth.PATCH("/blogs/:id", d.Blog.Update)
	auth.DELETE("/blogs/:id", d.Blog.Delete)

	auth.POST("/domains", d.Domain.Add)
	auth.DELETE("/domains/:domain", d.Domain.Remove)
	auth.GET("/domains/:domain/status", d.Domain.Status)
	auth.POST("/domains/:domain/verify", d.Domain.Verify)

	auth.POST("/file-upload", d.Upload.Upload)

	auth.GET("/subscriptions/me", d.Subscription.Me)
	auth.POST("/subscriptions/checkout", d.Subscription.Checkout)

	admin := auth.Group("/admin", middleware.RequireAdmin())
	admin.GET("/subscriptions", d.Subscription.AdminList)

	// WebSocket
	ws := r.Group("/ws", middleware.JWTAuth(d.JWT))
	ws.GET("/domains/:domain", d.WS.DomainStatusWS)

	r.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, middleware.SitesPrefix) {
			d.Site.NotFound(c)
			return
		}
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error":   gin.H{"code": utils.CodeNotFound, "message": "route not found"},
		})
	})
}
