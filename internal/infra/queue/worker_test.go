package queue

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockWelcomeSender struct {
	mock.Mock
}

func (m *MockWelcomeSender) SendWelcome(to, businessName string) error {
	args := m.Called(to, businessName)
	return args.Error(0)
}

type recordingAck struct {
	acked    bool
	nacked   bool
	requeued bool
}

func (a *recordingAck) Ack(tag uint64, multiple bool) error {
	a.acked = true
	return nil
}

func (a *recordingAck) Nack(tag uint64, multiple, requeue bool) error {
	a.nacked = true
	a.requeued = requeue
	return nil
}

func (a *recordingAck) Reject(tag uint64, requeue bool) error {
	a.nacked = true
	a.requeued = requeue
	return nil
}

type fakeConsumer struct {
	deliveries chan amqp.Delivery
}

func (f *fakeConsumer) Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error) {
	return f.deliveries, nil
}

func delivery(t *testing.T, ack amqp.Acknowledger, event ClientEvent) amqp.Delivery {
	body, err := json.Marshal(event)
	require.NoError(t, err)
	return amqp.Delivery{Acknowledger: ack, Body: body}
}

func TestWorkerSendsWelcomeForRegisteredClient(t *testing.T) {
	sender := new(MockWelcomeSender)
	sender.On("SendWelcome", "owner@acme.com", "Acme").Return(nil)

	w := NewWorker(nil, sender, zap.NewNop())
	ack := &recordingAck{}
	w.handle(delivery(t, ack, ClientEvent{
		ID:           "evt-1",
		Type:         RoutingKeyClientRegistered,
		BusinessName: "Acme",
		ContactEmail: "owner@acme.com",
	}))

	sender.AssertExpectations(t)
	assert.True(t, ack.acked)
	assert.False(t, ack.nacked)
}

func TestWorkerNacksOnSendFailure(t *testing.T) {
	sender := new(MockWelcomeSender)
	sender.On("SendWelcome", mock.Anything, mock.Anything).Return(errors.New("smtp down"))

	w := NewWorker(nil, sender, zap.NewNop())
	ack := &recordingAck{}
	w.handle(delivery(t, ack, ClientEvent{Type: RoutingKeyClientRegistered, ContactEmail: "a@b.com"}))

	assert.True(t, ack.nacked)
	assert.False(t, ack.requeued)
}

func TestWorkerRejectsMalformedPayload(t *testing.T) {
	sender := new(MockWelcomeSender)
	w := NewWorker(nil, sender, zap.NewNop())
	ack := &recordingAck{}

	w.handle(amqp.Delivery{Acknowledger: ack, Body: []byte("{not json")})

	assert.True(t, ack.nacked)
	assert.False(t, ack.requeued)
	sender.AssertNotCalled(t, "SendWelcome", mock.Anything, mock.Anything)
}

func TestWorkerAcksUnrelatedEvents(t *testing.T) {
	sender := new(MockWelcomeSender)
	w := NewWorker(nil, sender, zap.NewNop())
	ack := &recordingAck{}

	w.handle(delivery(t, ack, ClientEvent{Type: RoutingKeySubscriptionActivated, ContactEmail: "a@b.com"}))

	assert.True(t, ack.acked)
	sender.AssertNotCalled(t, "SendWelcome", mock.Anything, mock.Anything)
}

func TestWorkerStartStopsOnContextCancel(t *testing.T) {
	sender := new(MockWelcomeSender)
	sender.On("SendWelcome", "a@b.com", "Biz").Return(nil)

	consumer := &fakeConsumer{deliveries: make(chan amqp.Delivery, 1)}
	ack := &recordingAck{}
	consumer.deliveries <- delivery(t, ack, ClientEvent{Type: RoutingKeyClientRegistered, ContactEmail: "a@b.com", BusinessName: "Biz"})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- NewWorker(consumer, sender, zap.NewNop()).Start(ctx, WelcomeQueue) }()

	assert.Eventually(t, func() bool { return len(consumer.deliveries) == 0 }, time.Second, 10*time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("worker did not stop")
	}
	sender.AssertExpectations(t)
}

func TestWorkerStartReturnsWhenDeliveriesClose(t *testing.T) {
	consumer := &fakeConsumer{deliveries: make(chan amqp.Delivery)}
	close(consumer.deliveries)

	err := NewWorker(consumer, new(MockWelcomeSender), zap.NewNop()).Start(context.Background(), WelcomeQueue)
	assert.Error(t, err)
}
