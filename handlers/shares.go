package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/knowthatperson/knowthatperson/backend/api/internal/answers"
	"github.com/knowthatperson/knowthatperson/backend/api/internal/scenarios"
	"github.com/knowthatperson/knowthatperson/backend/api/internal/shares"
	"github.com/knowthatperson/knowthatperson/backend/api/internal/validate"
	"github.com/knowthatperson/knowthatperson/backend/api/pkg/logger"
)

// ShareHandler exposes share creation, the shared view and answer submission.
type ShareHandler struct {
	shares  *shares.Service
	answers *answers.Service
}

func NewShareHandler(sh *shares.Service, ans *answers.Service) *ShareHandler {
	return &ShareHandler{shares: sh, answers: ans}
}

func (h *ShareHandler) Register(r gin.IRouter) {
	r.POST("/share", h.create)
	r.GET("/share/:token", h.get)
	r.POST("/share/:token/answers", h.submitAnswer)
}

func (h *ShareHandler) create(c *gin.Context) {
	var req struct {
		ScenarioID string `json:"scenarioId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.ScenarioID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "scenarioId is required"})
		return
	}

	res, err := h.shares.Create(c.Request.Context(), req.ScenarioID)
	switch {
	case errors.Is(err, scenarios.ErrInvalidID):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid scenario ID"})
	case errors.Is(err, scenarios.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Scenario not found"})
	case err != nil:
		logger.Errorf("create share for scenario %s: %v", req.ScenarioID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create share"})
	default:
		c.JSON(http.StatusOK, res)
	}
}

func (h *ShareHandler) get(c *gin.Context) {
	bundle, err := h.shares.GetBundle(c.Request.Context(), c.Param("token"))
	switch {
	case errors.Is(err, shares.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Share not found"})
	case errors.Is(err, scenarios.ErrNotFound), errors.Is(err, scenarios.ErrInvalidID):
		c.JSON(http.StatusNotFound, gin.H{"error": "Scenario not found"})
	case err != nil:
		logger.Errorf("fetch share bundle: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch share"})
	default:
		c.JSON(http.StatusOK, bundle)
	}
}

func (h *ShareHandler) submitAnswer(c *gin.Context) {
	var req struct {
		Name        string `json:"name"`
		Perspective string `json:"perspective"`
		Public      *bool  `json:"public"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	// visibility defaults to public when the field is omitted
	isPublic := true
	if req.Public != nil {
		isPublic = *req.Public
	}

	list, err := h.answers.Submit(c.Request.Context(), c.Param("token"), req.Name, req.Perspective, isPublic)
	var fieldErr *validate.FieldError
	switch {
	case errors.As(err, &fieldErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": fieldErr.Message})
	case errors.Is(err, shares.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Share not found"})
	case err != nil:
		logger.Errorf("submit answer: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add answer"})
	default:
		c.JSON(http.StatusOK, gin.H{"success": true, "answers": list})
	}
}
