package usecase

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/xavierca1/callflex-webhooks/internal/entity"
	"github.com/xavierca1/callflex-webhooks/internal/infra/queue"
)

type MockClientRepository struct {
	mock.Mock
}

func (m *MockClientRepository) Insert(ctx context.Context, c *entity.ClientRecord) (string, error) {
	args := m.Called(ctx, c)
	return args.String(0), args.Error(1)
}

func (m *MockClientRepository) ActivateByEmail(ctx context.Context, email string) (int64, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockClientRepository) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) PublishClientEvent(ctx context.Context, event queue.ClientEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}
