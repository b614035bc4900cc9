package handlers

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/xavierca1/callflex-webhooks/internal/usecase"
)

type MockRegisterClientUseCase struct {
	mock.Mock
}

func (m *MockRegisterClientUseCase) Execute(ctx context.Context, input usecase.RegisterClientInput) (*usecase.RegisterClientOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.RegisterClientOutput), args.Error(1)
}

type MockActivateSubscriptionUseCase struct {
	mock.Mock
}

func (m *MockActivateSubscriptionUseCase) Execute(ctx context.Context, input usecase.PaymentEventInput) (*usecase.ActivateSubscriptionOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.ActivateSubscriptionOutput), args.Error(1)
}

type MockPinger struct {
	mock.Mock
}

func (m *MockPinger) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type fakeBroker struct {
	closed bool
}

func (b fakeBroker) IsClosed() bool { return b.closed }
