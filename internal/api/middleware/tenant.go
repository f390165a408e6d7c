package middleware

import (
	"net/url"
	"path"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yoockh/folio/internal/tenant"
)

// SitesPrefix is where tenant requests are re-dispatched.
const SitesPrefix = "/_sites/"

// Tenant rewrites requests arriving on a portfolio host (subdomain or custom
// domain) to /_sites/<site-key>/<path> and runs them through engine again.
// /api and /ws requests are served as they are on every host.
func Tenant(engine *gin.Engine, rootDomain, appSubdomain string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, done := tenant.FromContext(c.Request.Context()); done {
			c.Next()
			return
		}

		p := c.Request.URL.Path
		if strings.HasPrefix(p, "/api/") || strings.HasPrefix(p, "/ws/") {
			c.Next()
			return
		}

		site := tenant.Resolve(c.Request.Host, rootDomain, appSubdomain)
		if !site.IsTenant() {
			c.Next()
			return
		}

		rewritten := SitesPrefix + url.PathEscape(site.Key)
		if clean := path.Clean("/" + p); clean != "/" {
			rewritten += clean
		} else {
			rewritten += "/"
		}

		c.Request = c.Request.WithContext(tenant.WithSite(c.Request.Context(), site))
		c.Request.URL.Path = rewritten
		c.Request.URL.RawPath = ""
		engine.HandleContext(c)
		c.Abort()
	}
}
