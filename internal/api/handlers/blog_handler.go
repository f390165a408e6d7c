package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yoockh/folio/internal/services"
	"github.com/yoockh/folio/internal/utils"
)

type BlogHandler struct {
	svc services.BlogService
}

func NewBlogHandler(svc services.BlogService) *BlogHandler {
	return &BlogHandler{svc: svc}
}

func (h *BlogHandler) List(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	portfolioID := c.Query("portfolio_id")
	if portfolioID == "" {
		writeError(c, utils.Invalid("BlogHandler.List", map[string]string{"portfolio_id": "This field is required"}))
		return
	}

	out, err := h.svc.List(c.Request.Context(), userID, portfolioID)
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, out)
}

func (h *BlogHandler) Create(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req services.CreateBlogInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "BlogHandler.Create", err)
		return
	}

	b, err := h.svc.Create(c.Request.Context(), userID, req)
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusCreated, b)
}

func (h *BlogHandler) Get(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	b, err := h.svc.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, b)
}

func (h *BlogHandler) Update(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req services.UpdateBlogInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "BlogHandler.Update", err)
		return
	}

	b, err := h.svc.Update(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, b)
}

func (h *BlogHandler) Delete(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"id": c.Param("id")})
}
