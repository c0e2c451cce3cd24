package router

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/windoze95/lookforrecipes/internal/config"
	"github.com/windoze95/lookforrecipes/internal/handlers"
	"github.com/windoze95/lookforrecipes/internal/logger"
	"github.com/windoze95/lookforrecipes/internal/middleware"
	"github.com/windoze95/lookforrecipes/internal/service"
	"go.uber.org/zap"
)

// SetupRouter sets up the Gin router.
func SetupRouter(cfg *config.Config, searchService *service.SearchService, bot handlers.UpdateHandler, log *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowMethods = []string{"GET"}
	r.Use(cors.New(corsConfig))

	// Add request ID middleware for request correlation
	r.Use(logger.RequestIDMiddleware())

	// Ping route for health checks
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	// Recipe search
	searchHandler := handlers.NewSearchHandler(searchService)
	r.GET("/api/recipe", searchHandler.SearchRecipes)

	// Telegram webhook, only served when updates are pushed to us
	if cfg.IsProduction() && bot != nil {
		webhookHandler := handlers.NewWebhookHandler(bot, log)
		r.POST("/webhook/:token", middleware.CheckWebhookToken(cfg.EnvVars.TelegramToken), webhookHandler.ReceiveUpdate)
	}

	return r
}
