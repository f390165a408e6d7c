package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yoockh/folio/internal/services"
	"github.com/yoockh/folio/internal/utils"
)

type PortfolioHandler struct {
	portfolios services.PortfolioService
	basics     services.BasicsService
	analytics  services.AnalyticsService
}

func NewPortfolioHandler(portfolios services.PortfolioService, basics services.BasicsService, analytics services.AnalyticsService) *PortfolioHandler {
	return &PortfolioHandler{portfolios: portfolios, basics: basics, analytics: analytics}
}

func (h *PortfolioHandler) List(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	out, err := h.portfolios.List(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, out)
}

func (h *PortfolioHandler) Create(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req services.CreatePortfolioInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "PortfolioHandler.Create", err)
		return
	}

	p, err := h.portfolios.Create(c.Request.Context(), userID, req)
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusCreated, p)
}

// Get returns the portfolio with basics and every section, as the editor needs it.
func (h *PortfolioHandler) Get(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	full, err := h.portfolios.GetFull(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, full)
}

func (h *PortfolioHandler) Update(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req services.UpdatePortfolioInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "PortfolioHandler.Update", err)
		return
	}

	p, err := h.portfolios.Update(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, p)
}

func (h *PortfolioHandler) Delete(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.portfolios.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"id": c.Param("id")})
}

func (h *PortfolioHandler) GetBasics(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	b, err := h.basics.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, b)
}

func (h *PortfolioHandler) PutBasics(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req services.BasicsInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "PortfolioHandler.PutBasics", err)
		return
	}

	b, err := h.basics.Upsert(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, b)
}

func (h *PortfolioHandler) SuggestSummary(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	summary, err := h.basics.SuggestSummary(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"summary": summary})
}

func (h *PortfolioHandler) Analytics(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	days := 0
	if raw := c.Query("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeError(c, utils.Invalid("PortfolioHandler.Analytics", map[string]string{"days": "Must be a number"}))
			return
		}
		days = n
	}

	sum, err := h.analytics.Summary(c.Request.Context(), userID, c.Param("id"), days)
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, sum)
}
