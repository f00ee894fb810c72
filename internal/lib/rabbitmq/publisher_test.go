package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type ChannelMock struct {
	mock.Mock
}

func (m *ChannelMock) Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	args := m.Called(exchange, key, mandatory, immediate, msg)
	return args.Error(0)
}

func (m *ChannelMock) ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error {
	called := m.Called(name, kind, durable, autoDelete, internal, noWait, args)
	return called.Error(0)
}

func (m *ChannelMock) Close() error {
	return m.Called().Error(0)
}

func TestDeclareExchange(t *testing.T) {
	t.Run("durable topic exchange", func(t *testing.T) {
		ch := new(ChannelMock)
		ch.On("ExchangeDeclare", "storefront", "topic", true, false, false, false, amqp.Table(nil)).Return(nil).Once()

		require.NoError(t, declareExchange(ch, "storefront"))
		ch.AssertExpectations(t)
		ch.AssertNotCalled(t, "Close")
	})

	t.Run("channel closed on declare error", func(t *testing.T) {
		declareErr := &amqp.Error{Code: amqp.PreconditionFailed, Reason: "inequivalent arg 'type'"}
		ch := new(ChannelMock)
		ch.On("ExchangeDeclare", "storefront", "topic", true, false, false, false, amqp.Table(nil)).Return(declareErr).Once()
		ch.On("Close").Return(nil).Once()

		err := declareExchange(ch, "storefront")
		assert.ErrorIs(t, err, declareErr)
		ch.AssertExpectations(t)
	})
}

func TestPublisher_Publish(t *testing.T) {
	type event struct {
		ID    int    `json:"id"`
		Email string `json:"email"`
	}

	t.Run("success publish", func(t *testing.T) {
		ch := new(ChannelMock)
		ch.On("Publish", "storefront", "newsletter.subscribed", false, false, mock.Anything).Return(nil).Once()

		p := NewPublisher(ch, "storefront")
		err := p.Publish(context.Background(), "newsletter.subscribed", event{ID: 1, Email: "a@x.com"})
		require.NoError(t, err)

		msg := ch.Calls[0].Arguments.Get(4).(amqp.Publishing)
		assert.Equal(t, "application/json", msg.ContentType)
		assert.Equal(t, amqp.Persistent, msg.DeliveryMode)

		var got event
		require.NoError(t, json.Unmarshal(msg.Body, &got))
		assert.Equal(t, event{ID: 1, Email: "a@x.com"}, got)
		ch.AssertExpectations(t)
	})

	t.Run("channel error is wrapped", func(t *testing.T) {
		ch := new(ChannelMock)
		ch.On("Publish", mock.Anything, mock.Anything, false, false, mock.Anything).Return(amqp.ErrClosed).Once()

		err := NewPublisher(ch, "storefront").Publish(context.Background(), "user.signed_up", event{})
		assert.ErrorIs(t, err, amqp.ErrClosed)
	})

	t.Run("unmarshalable payload", func(t *testing.T) {
		ch := new(ChannelMock)

		err := NewPublisher(ch, "storefront").Publish(context.Background(), "bad", make(chan int))
		assert.Error(t, err)
		ch.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("canceled context", func(t *testing.T) {
		ch := new(ChannelMock)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := NewPublisher(ch, "storefront").Publish(ctx, "user.signed_up", event{})
		assert.True(t, errors.Is(err, context.Canceled))
	})
}

func TestNoop_Publish(t *testing.T) {
	assert.NoError(t, Noop{}.Publish(context.Background(), "any", nil))
}
