package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nichewire/nichewire-backend/internal/common"
	"github.com/nichewire/nichewire-backend/internal/domain"
	"github.com/nichewire/nichewire-backend/internal/service"
)

// AIHandler handles HTTP requests for AI-assisted content generation
type AIHandler struct {
	generator service.AIGenerator
}

// NewAIHandler creates a new AIHandler
func NewAIHandler(generator service.AIGenerator) *AIHandler {
	return &AIHandler{generator: generator}
}

// GeneratePost godoc
// @Summary      Generate a draft blog post
// @Tags         ai
// @Accept       json
// @Produce      json
// @Success      200  {object}  domain.GeneratedPost
// @Failure      400  {object}  common.APIResponse
// @Failure      502  {object}  common.APIResponse
// @Router       /ai/generate [post]
func (h *AIHandler) GeneratePost(c *gin.Context) {
	var req domain.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	generated, err := h.generator.GeneratePost(c.Request.Context(), &req)
	if err != nil {
		common.ErrorResponse(c, http.StatusBadGateway, "Failed to generate content", err)
		return
	}

	c.JSON(http.StatusOK, generated)
}

// GenerateOutline godoc
// @Summary      Generate a post outline
// @Tags         ai
// @Accept       json
// @Produce      json
// @Success      200  {object}  domain.OutlineResponse
// @Failure      400  {object}  common.APIResponse
// @Failure      502  {object}  common.APIResponse
// @Router       /ai/outline [post]
func (h *AIHandler) GenerateOutline(c *gin.Context) {
	var req domain.OutlineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	outline, err := h.generator.GenerateOutline(c.Request.Context(), req.Topic)
	if err != nil {
		common.ErrorResponse(c, http.StatusBadGateway, "Failed to generate outline", err)
		return
	}

	c.JSON(http.StatusOK, outline)
}
