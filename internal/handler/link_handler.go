package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nichewire/nichewire-backend/internal/common"
	"github.com/nichewire/nichewire-backend/internal/domain"
	"github.com/nichewire/nichewire-backend/internal/service"
	"github.com/nichewire/nichewire-backend/pkg/ginutil"
)

// LinkHandler handles HTTP requests for affiliate links
type LinkHandler struct {
	service service.LinkService
}

// NewLinkHandler creates a new LinkHandler
func NewLinkHandler(service service.LinkService) *LinkHandler {
	return &LinkHandler{service: service}
}

// Redirect godoc
// @Summary      Affiliate link redirect
// @Description  Records the visit and redirects to the vendor URL
// @Tags         links
// @Param        linkId  path  string  true  "Link ID"
// @Success      302
// @Failure      404  {object}  map[string]string
// @Router       /links/{linkId} [get]
func (h *LinkHandler) Redirect(c *gin.Context) {
	linkID := c.Param("linkId")

	click := domain.ClickContext{
		Referrer:  ginutil.HeaderOrNil(c, "Referer"),
		UserAgent: ginutil.HeaderOrNil(c, "User-Agent"),
		Country:   ginutil.HeaderOrNil(c, "CF-IPCountry"),
	}

	url, err := h.service.Resolve(c.Request.Context(), linkID, click)
	if err != nil {
		if errors.Is(err, common.ErrLinkNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Link not found"})
			return
		}
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to resolve link", err)
		return
	}

	c.Redirect(http.StatusFound, url)
}

// GetStats godoc
// @Summary      Affiliate link stats
// @Description  Returns the link with the clicks field resolved against the fast counter
// @Tags         links
// @Produce      json
// @Param        linkId  path  string  true  "Link ID"
// @Success      200  {object}  domain.LinkStatsResponse
// @Failure      404  {object}  map[string]string
// @Router       /links/{linkId}/stats [get]
func (h *LinkHandler) GetStats(c *gin.Context) {
	linkID := c.Param("linkId")

	stats, err := h.service.GetStats(c.Request.Context(), linkID)
	if err != nil {
		if errors.Is(err, common.ErrLinkNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Link not found"})
			return
		}
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to fetch stats", err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// CreateLink godoc
// @Summary      Create affiliate link
// @Tags         links
// @Accept       json
// @Produce      json
// @Success      201  {object}  common.APIResponse{data=domain.AffiliateLink}
// @Failure      400  {object}  common.APIResponse
// @Router       /links [post]
func (h *LinkHandler) CreateLink(c *gin.Context) {
	var req domain.CreateLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	link, err := h.service.CreateLink(&req)
	if err != nil {
		if errors.Is(err, common.ErrInvalidURL) || errors.Is(err, common.ErrShortenedURL) {
			common.ErrorResponse(c, http.StatusBadRequest, err.Error(), nil)
			return
		}
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to create link", err)
		return
	}

	common.CreatedResponse(c, link)
}

// ListLinks godoc
// @Summary      List affiliate links
// @Tags         links
// @Produce      json
// @Success      200  {object}  common.APIResponse{data=[]domain.LinkSummary}
// @Router       /links [get]
func (h *LinkHandler) ListLinks(c *gin.Context) {
	links, err := h.service.ListLinks()
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to fetch links", err)
		return
	}

	common.SuccessResponse(c, links, nil)
}

// DeleteLink godoc
// @Summary      Delete affiliate link
// @Tags         links
// @Param        linkId  path  string  true  "Link ID"
// @Success      200  {object}  common.APIResponse
// @Failure      404  {object}  common.APIResponse
// @Router       /links/{linkId} [delete]
func (h *LinkHandler) DeleteLink(c *gin.Context) {
	id := c.Param("linkId")

	if err := h.service.DeleteLink(id); err != nil {
		if errors.Is(err, common.ErrLinkNotFound) {
			common.ErrorResponse(c, http.StatusNotFound, "Link not found", err)
			return
		}
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to delete link", err)
		return
	}

	common.SuccessResponse(c, gin.H{"success": true}, nil)
}
