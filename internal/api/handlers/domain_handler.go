package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yoockh/folio/internal/services"
)

type DomainHandler struct {
	svc services.DomainService
}

func NewDomainHandler(svc services.DomainService) *DomainHandler {
	return &DomainHandler{svc: svc}
}

type addDomainRequest struct {
	PortfolioID string `json:"portfolio_id"`
	Domain      string `json:"domain"`
}

func (h *DomainHandler) Add(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req addDomainRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "DomainHandler.Add", err)
		return
	}

	out, err := h.svc.Add(c.Request.Context(), userID, req.PortfolioID, req.Domain)
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusCreated, out)
}

func (h *DomainHandler) Remove(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.svc.Remove(c.Request.Context(), userID, c.Param("domain")); err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"domain": c.Param("domain")})
}

func (h *DomainHandler) Status(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	out, err := h.svc.Status(c.Request.Context(), userID, c.Param("domain"))
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, out)
}

func (h *DomainHandler) Verify(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	out, err := h.svc.Verify(c.Request.Context(), userID, c.Param("domain"))
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusAccepted, out)
}
