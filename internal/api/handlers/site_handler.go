package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/yoockh/folio/internal/models"
	"github.com/yoockh/folio/internal/render"
	"github.com/yoockh/folio/internal/services"
	"github.com/yoockh/folio/internal/tenant"
	"github.com/yoockh/folio/internal/utils"
)

const pageViewTimeout = 3 * time.Second

// SiteHandler serves the public portfolio sites, as HTML and as JSON.
type SiteHandler struct {
	sites     services.SiteService
	analytics services.AnalyticsService
	renderer  *render.Renderer
	log       *logrus.Logger
}

func NewSiteHandler(sites services.SiteService, analytics services.AnalyticsService, renderer *render.Renderer, log *logrus.Logger) *SiteHandler {
	return &SiteHandler{sites: sites, analytics: analytics, renderer: renderer, log: log}
}

// basePath is empty when the request arrived on the tenant's own host.
func basePath(c *gin.Context) string {
	if _, ok := tenant.FromContext(c.Request.Context()); ok {
		return ""
	}
	return "/_sites/" + c.Param("site")
}

func (h *SiteHandler) lookup(c *gin.Context) (*models.Site, bool) {
	site, err := h.sites.Lookup(c.Request.Context(), c.Param("site"))
	if err != nil {
		if utils.IsCode(err, utils.CodeNotFound) {
			h.page(c, http.StatusNotFound, render.PageNotFound, &render.PageData{
				Title:   "Not found",
				Message: "There is no portfolio here.",
			})
			return nil, false
		}
		h.log.WithError(err).WithField("site", c.Param("site")).Error("site lookup failed")
		h.page(c, http.StatusInternalServerError, render.PageNotFound, &render.PageData{
			Title:   "Unavailable",
			Message: "This site is temporarily unavailable.",
		})
		return nil, false
	}
	return site, true
}

func (h *SiteHandler) page(c *gin.Context, status int, name string, data *render.PageData) {
	c.Status(status)
	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := h.renderer.Render(c.Writer, name, data); err != nil {
		h.log.WithError(err).WithField("page", name).Error("render failed")
		c.AbortWithStatus(http.StatusInternalServerError)
	}
}

// sitePath is the request path as the visitor sees it on the site.
func sitePath(c *gin.Context) string {
	p := strings.TrimPrefix(c.Request.URL.Path, "/_sites/"+c.Param("site"))
	if p == "" {
		return "/"
	}
	return p
}

func (h *SiteHandler) recordView(c *gin.Context, site *models.Site) {
	if h.analytics == nil {
		return
	}
	v := &models.PageView{
		PortfolioID: site.Portfolio.ID,
		Path:        sitePath(c),
		Referrer:    c.Request.Referer(),
		UserAgent:   c.Request.UserAgent(),
		Timestamp:   time.Now().UTC(),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), pageViewTimeout)
		defer cancel()
		if err := h.analytics.Record(ctx, v); err != nil && !utils.IsCode(err, utils.CodeUnavailable) {
			h.log.WithError(err).WithField("portfolio_id", v.PortfolioID).Warn("failed to record page view")
		}
	}()
}

func (h *SiteHandler) Home(c *gin.Context) {
	site, ok := h.lookup(c)
	if !ok {
		return
	}
	h.recordView(c, site)
	h.page(c, http.StatusOK, site.Portfolio.Template, render.SitePage(site, basePath(c)))
}

func (h *SiteHandler) BlogIndex(c *gin.Context) {
	site, ok := h.lookup(c)
	if !ok {
		return
	}
	h.recordView(c, site)

	data := render.SitePage(site, basePath(c))
	data.Title = "Blog | " + data.Title
	h.page(c, http.StatusOK, render.PageBlogIndex, data)
}

func (h *SiteHandler) BlogPost(c *gin.Context) {
	site, ok := h.lookup(c)
	if !ok {
		return
	}

	post, err := h.sites.Post(c.Request.Context(), site, c.Param("slug"))
	if err != nil {
		if utils.IsCode(err, utils.CodeNotFound) {
			h.page(c, http.StatusNotFound, render.PageNotFound, &render.PageData{
				Title:    "Not found",
				BasePath: basePath(c),
				Site:     site,
				Message:  "This post does not exist.",
			})
			return
		}
		h.log.WithError(err).WithField("site", c.Param("site")).Error("post lookup failed")
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	body, err := h.renderer.Markdown(post.Content)
	if err != nil {
		h.log.WithError(err).WithField("blog_id", post.ID).Error("markdown render failed")
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	h.recordView(c, site)

	data := render.SitePage(site, basePath(c))
	data.Title = post.Title
	if post.Description != "" {
		data.Description = post.Description
	}
	data.Post = post
	data.PostHTML = body
	h.page(c, http.StatusOK, render.PageBlogPost, data)
}

// NotFound answers tenant paths that match no site page.
func (h *SiteHandler) NotFound(c *gin.Context) {
	h.page(c, http.StatusNotFound, render.PageNotFound, &render.PageData{
		Title:   "Not found",
		Message: "This page does not exist.",
	})
}

// JSON returns the public site data for headless clients.
func (h *SiteHandler) JSON(c *gin.Context) {
	site, err := h.sites.Lookup(c.Request.Context(), c.Param("site"))
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, site)
}
