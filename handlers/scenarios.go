package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/knowthatperson/knowthatperson/backend/api/internal/scenarios"
	"github.com/knowthatperson/knowthatperson/backend/api/pkg/logger"
)

// ScenarioHandler exposes the scenario browse endpoints.
type ScenarioHandler struct {
	svc *scenarios.Service
}

func NewScenarioHandler(svc *scenarios.Service) *ScenarioHandler {
	return &ScenarioHandler{svc: svc}
}

func (h *ScenarioHandler) Register(r gin.IRouter) {
	r.GET("/scenarios", h.list)
	r.GET("/scenarios/:id", h.get)
}

func (h *ScenarioHandler) list(c *gin.Context) {
	// unparseable values fall back to 0 and get clamped by the service
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	category := c.Query("category")

	items, pagination, err := h.svc.List(c.Request.Context(), page, limit, category)
	if err != nil {
		logger.Errorf("list scenarios: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch scenarios"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"scenarios":  items,
		"pagination": pagination,
	})
}

func (h *ScenarioHandler) get(c *gin.Context) {
	detail, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	switch {
	case errors.Is(err, scenarios.ErrInvalidID):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid scenario ID"})
	case errors.Is(err, scenarios.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Scenario not found"})
	case err != nil:
		logger.Errorf("get scenario %s: %v", c.Param("id"), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch scenario"})
	default:
		c.JSON(http.StatusOK, detail)
	}
}
