package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/knowthatperson/knowthatperson/backend/api/internal/answers"
	"github.com/knowthatperson/knowthatperson/backend/api/internal/scenarios"
	"github.com/knowthatperson/knowthatperson/backend/api/internal/shares"
	"github.com/knowthatperson/knowthatperson/backend/api/pkg/logger"
	"github.com/knowthatperson/knowthatperson/backend/api/pkg/middleware"
)

// AdminHandler exposes the moderation endpoints: soft deletes for every
// entity. Deleted records stay in the store but disappear from all reads.
type AdminHandler struct {
	scenarios *scenarios.Service
	shares    *shares.Service
	answers   *answers.Service
}

func NewAdminHandler(sc *scenarios.Service, sh *shares.Service, ans *answers.Service) *AdminHandler {
	return &AdminHandler{scenarios: sc, shares: sh, answers: ans}
}

func (h *AdminHandler) Register(r gin.IRouter, ver middleware.Verifier) {
	grp := r.Group("/admin", middleware.AuthMiddleware(ver))
	grp.DELETE("/scenarios/:id", h.deleteScenario)
	grp.DELETE("/shares/:token", h.deleteShare)
	grp.DELETE("/answers/:id", h.deleteAnswer)
}

func (h *AdminHandler) deleteScenario(c *gin.Context) {
	err := h.scenarios.SoftDelete(c.Request.Context(), c.Param("id"))
	switch {
	case errors.Is(err, scenarios.ErrInvalidID):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid scenario ID"})
	case errors.Is(err, scenarios.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Scenario not found"})
	case err != nil:
		logger.Errorf("delete scenario %s: %v", c.Param("id"), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete scenario"})
	default:
		c.Status(http.StatusNoContent)
	}
}

func (h *AdminHandler) deleteShare(c *gin.Context) {
	err := h.shares.SoftDelete(c.Request.Context(), c.Param("token"))
	switch {
	case errors.Is(err, shares.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Share not found"})
	case err != nil:
		logger.Errorf("delete share: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete share"})
	default:
		c.Status(http.StatusNoContent)
	}
}

func (h *AdminHandler) deleteAnswer(c *gin.Context) {
	err := h.answers.SoftDelete(c.Request.Context(), c.Param("id"))
	switch {
	case errors.Is(err, answers.ErrInvalidID):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid answer ID"})
	case errors.Is(err, answers.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Answer not found"})
	case err != nil:
		logger.Errorf("delete answer %s: %v", c.Param("id"), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete answer"})
	default:
		c.Status(http.StatusNoContent)
	}
}
