package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/nichewire/nichewire-backend/internal/config"
	"github.com/nichewire/nichewire-backend/internal/handler"
	"github.com/nichewire/nichewire-backend/internal/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Setup configures all API routes
func Setup(
	router *gin.Engine,
	postHandler *handler.PostHandler,
	linkHandler *handler.LinkHandler,
	newsletterHandler *handler.NewsletterHandler,
	aiHandler *handler.AIHandler,
	redisClient *redis.Client,
	cfg *config.Config,
) {
	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "ok",
			"environment": cfg.Server.Env,
			"timestamp":   time.Now().UTC().Format(time.RFC3339),
		})
	})

	// Prometheus metrics
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Public read surface
	posts := router.Group("/posts")
	posts.GET("", postHandler.ListPosts)
	posts.GET("/:slug", postHandler.GetPost)

	// Affiliate link redirect + stats (public, side effects in the handler chain)
	links := router.Group("/links", middleware.RateLimit(redisClient, middleware.RedirectRateLimitConfig()))
	links.GET("/:linkId", linkHandler.Redirect)
	links.GET("/:linkId/stats", linkHandler.GetStats)

	// Newsletter
	newsletter := router.Group("/newsletter", middleware.RateLimit(redisClient, middleware.NewsletterRateLimitConfig()))
	newsletter.POST("/subscribe", newsletterHandler.Subscribe)
	newsletter.POST("/unsubscribe", newsletterHandler.Unsubscribe)

	// Admin surface (API key required)
	admin := router.Group("/admin", middleware.APIKeyAuth(cfg.Admin.APIKey))

	adminPosts := admin.Group("/posts")
	adminPosts.POST("", postHandler.CreatePost)
	adminPosts.PUT("/:id", postHandler.UpdatePost)
	adminPosts.DELETE("/:id", postHandler.DeletePost)

	adminLinks := admin.Group("/links")
	adminLinks.GET("", linkHandler.ListLinks)
	adminLinks.POST("", linkHandler.CreateLink)
	adminLinks.DELETE("/:linkId", linkHandler.DeleteLink)

	ai := admin.Group("/ai")
	ai.POST("/generate", aiHandler.GeneratePost)
	ai.POST("/outline", aiHandler.GenerateOutline)

	// Unknown routes
	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	})
}
