package service

import (
	"context"

	"github.com/windoze95/lookforrecipes/internal/logger"
	"github.com/windoze95/lookforrecipes/internal/models"
	"go.uber.org/zap"
)

// SendFunc delivers one candidate to a recipient.
type SendFunc func(ctx context.Context, recipient models.Recipient, c models.Candidate) error

// FallbackFunc tells a recipient that nothing could be delivered.
type FallbackFunc func(ctx context.Context, recipient models.Recipient)

// DeliveryService sends candidates to a recipient until one succeeds.
type DeliveryService struct {
	Logger *zap.Logger
}

// NewDeliveryService creates a new DeliveryService.
func NewDeliveryService(log *zap.Logger) *DeliveryService {
	return &DeliveryService{Logger: logger.OrNop(log)}
}

// Deliver tries each candidate once, in order, and stops at the first
// successful send. Send failures are logged and skipped. When no send
// succeeds, including when candidates is empty, fallback runs exactly once.
func (s *DeliveryService) Deliver(ctx context.Context, candidates []models.Candidate, recipient models.Recipient, send SendFunc, fallback FallbackFunc) models.DeliveryOutcome {
	log := s.Logger.With(zap.Int64("recipient", int64(recipient)))

	for i, c := range candidates {
		if err := send(ctx, recipient, c); err != nil {
			log.Error("failed to send candidate",
				zap.Int("attempt", i+1),
				zap.String("clip_url", c.ClipURL),
				zap.Error(err),
			)
			continue
		}
		log.Info("candidate delivered",
			zap.Int("attempt", i+1),
			zap.String("clip_url", c.ClipURL),
		)
		return models.Success
	}

	log.Info("no candidate delivered, sending fallback", zap.Int("attempts", len(candidates)))
	fallback(ctx, recipient)
	return models.Exhausted
}
