package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/windoze95/lookforrecipes/internal/logger"
	"go.uber.org/zap"
)

// UpdateHandler processes Telegram updates in the background.
type UpdateHandler interface {
	Dispatch(ctx context.Context, update tgbotapi.Update)
}

// WebhookHandler receives Telegram updates pushed to the webhook URL.
type WebhookHandler struct {
	Bot    UpdateHandler
	Logger *zap.Logger
}

// NewWebhookHandler creates a new WebhookHandler.
func NewWebhookHandler(bot UpdateHandler, log *zap.Logger) *WebhookHandler {
	return &WebhookHandler{Bot: bot, Logger: logger.OrNop(log)}
}

// ReceiveUpdate handles POST /webhook/:token. Telegram only needs an
// acknowledgement, so the update is processed after the response is sent.
func (h *WebhookHandler) ReceiveUpdate(c *gin.Context) {
	var update tgbotapi.Update
	if err := c.ShouldBindJSON(&update); err != nil {
		logger.FromContext(c, h.Logger).Warn("invalid webhook payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid update"})
		return
	}

	ctx := context.WithoutCancel(c.Request.Context())
	h.Bot.Dispatch(ctx, update)

	c.Status(http.StatusOK)
}
