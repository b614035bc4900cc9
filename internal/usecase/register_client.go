package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/xavierca1/callflex-webhooks/internal/entity"
	"github.com/xavierca1/callflex-webhooks/internal/infra/queue"
)

type RegisterClientUseCase struct {
	Repo      entity.ClientRepository
	Publisher queue.EventPublisher
	logger    *zap.Logger
}

func NewRegisterClientUseCase(repo entity.ClientRepository, publisher queue.EventPublisher, logger *zap.Logger) *RegisterClientUseCase {
	if publisher == nil {
		publisher = queue.NoopPublisher{}
	}
	return &RegisterClientUseCase{
		Repo:      repo,
		Publisher: publisher,
		logger:    logger,
	}
}

func (uc *RegisterClientUseCase) Execute(ctx context.Context, input RegisterClientInput) (*RegisterClientOutput, error) {
	if len(input.Answers) < MinClientAnswers {
		return nil, &DomainError{
			Code:    "not_enough_answers",
			Message: fmt.Sprintf("Not enough answers in form (got %d, need %d)", len(input.Answers), MinClientAnswers),
		}
	}

	answers, err := decodeAnswers(input.Answers[:MinClientAnswers])
	if err != nil {
		return nil, newTechnicalError("malformed_answers", err)
	}

	values := ExtractAnswers(answers, ClientAnswerFields)
	client := entity.NewTrialClient(values[0], values[1], values[2], values[3])

	if uc.Repo == nil {
		return nil, newTechnicalError("storage_unavailable", entity.ErrStorageUnavailable)
	}

	id, err := uc.Repo.Insert(ctx, client)
	if err != nil {
		return nil, newTechnicalError("storage_insert_failed", err)
	}
	client.ID = id

	uc.logger.Info("client registered",
		zap.String("client_id", id),
		zap.String("business_name", client.BusinessName),
		zap.String("contact_email", client.ContactEmail),
	)

	event := queue.ClientEvent{
		Type:         queue.RoutingKeyClientRegistered,
		ClientID:     id,
		BusinessName: client.BusinessName,
		ContactEmail: client.ContactEmail,
		Niche:        client.ProspectingNiche,
		Location:     client.ProspectingLocation,
	}
	if err := uc.Publisher.PublishClientEvent(ctx, event); err != nil {
		// the row is already written; a lost event only skips the welcome mail
		uc.logger.Warn("client registered but event not published", zap.String("client_id", id), zap.Error(err))
	}

	return &RegisterClientOutput{
		Status:   "success",
		Message:  fmt.Sprintf("Client %s added successfully", client.BusinessName),
		ClientID: id,
	}, nil
}

var errNullAnswer = errors.New("answer is null")

// decodeAnswers rejects null entries instead of decoding them to a zero Answer.
func decodeAnswers(raw []json.RawMessage) ([]Answer, error) {
	answers := make([]Answer, len(raw))
	for i, r := range raw {
		if trimmed := bytes.TrimSpace(r); len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
			return nil, fmt.Errorf("answer %d: %w", i, errNullAnswer)
		}
		if err := json.Unmarshal(r, &answers[i]); err != nil {
			return nil, fmt.Errorf("answer %d: %w", i, err)
		}
	}
	return answers, nil
}
