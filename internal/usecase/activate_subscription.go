package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/xavierca1/callflex-webhooks/internal/entity"
	"github.com/xavierca1/callflex-webhooks/internal/infra/queue"
)

type ActivateSubscriptionUseCase struct {
	Repo      entity.ClientRepository
	Publisher queue.EventPublisher
	logger    *zap.Logger
}

func NewActivateSubscriptionUseCase(repo entity.ClientRepository, publisher queue.EventPublisher, logger *zap.Logger) *ActivateSubscriptionUseCase {
	if publisher == nil {
		publisher = queue.NoopPublisher{}
	}
	return &ActivateSubscriptionUseCase{
		Repo:      repo,
		Publisher: publisher,
		logger:    logger,
	}
}

// Execute activates every client whose contact email matches the checkout's
// customer email. Other event types and events without an email are
// acknowledged without touching storage.
func (uc *ActivateSubscriptionUseCase) Execute(ctx context.Context, input PaymentEventInput) (*ActivateSubscriptionOutput, error) {
	out := &ActivateSubscriptionOutput{Status: "success"}

	if input.Type != EventCheckoutSessionCompleted {
		uc.logger.Debug("payment event ignored", zap.String("type", input.Type))
		return out, nil
	}
	if input.CustomerEmail == "" {
		uc.logger.Info("checkout completed without customer email, nothing to activate")
		return out, nil
	}

	if uc.Repo == nil {
		return nil, newTechnicalError("storage_unavailable", entity.ErrStorageUnavailable)
	}

	matched, err := uc.Repo.ActivateByEmail(ctx, input.CustomerEmail)
	if err != nil {
		return nil, newTechnicalError("storage_update_failed", err)
	}
	out.Activated = true
	out.Matched = matched

	uc.logger.Info("subscription activated",
		zap.String("contact_email", input.CustomerEmail),
		zap.Int64("matched", matched),
	)

	event := queue.ClientEvent{
		Type:         queue.RoutingKeySubscriptionActivated,
		ContactEmail: input.CustomerEmail,
	}
	if err := uc.Publisher.PublishClientEvent(ctx, event); err != nil {
		uc.logger.Warn("subscription activated but event not published", zap.Error(err))
	}

	return out, nil
}
