package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nichewire/nichewire-backend/internal/common"
	"github.com/nichewire/nichewire-backend/internal/domain"
	"github.com/nichewire/nichewire-backend/internal/service"
)

// NewsletterHandler handles HTTP requests for newsletter subscriptions
type NewsletterHandler struct {
	service service.NewsletterService
}

// NewNewsletterHandler creates a new NewsletterHandler
func NewNewsletterHandler(service service.NewsletterService) *NewsletterHandler {
	return &NewsletterHandler{service: service}
}

// Subscribe godoc
// @Summary      Subscribe to the newsletter
// @Tags         newsletter
// @Accept       json
// @Produce      json
// @Success      201  {object}  map[string]string
// @Failure      400  {object}  common.APIResponse
// @Router       /newsletter/subscribe [post]
func (h *NewsletterHandler) Subscribe(c *gin.Context) {
	var req domain.SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	result, err := h.service.Subscribe(c.Request.Context(), req.Email)
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to subscribe", err)
		return
	}

	switch result {
	case service.SubscribeResultAlreadySubscribed:
		c.JSON(http.StatusOK, gin.H{"message": "Already subscribed"})
	case service.SubscribeResultReactivated:
		c.JSON(http.StatusOK, gin.H{"message": "Resubscribed successfully"})
	default:
		c.JSON(http.StatusCreated, gin.H{"message": "Subscribed successfully"})
	}
}

// Unsubscribe godoc
// @Summary      Unsubscribe from the newsletter
// @Tags         newsletter
// @Accept       json
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  common.APIResponse
// @Router       /newsletter/unsubscribe [post]
func (h *NewsletterHandler) Unsubscribe(c *gin.Context) {
	var req domain.UnsubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if err := h.service.Unsubscribe(req.Email); err != nil {
		if errors.Is(err, common.ErrSubscriberNotFound) {
			// Unsubscribing an unknown address is not an error for the caller
			c.JSON(http.StatusOK, gin.H{"message": "Unsubscribed successfully"})
			return
		}
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to unsubscribe", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Unsubscribed successfully"})
}
