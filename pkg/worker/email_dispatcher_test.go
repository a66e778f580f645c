package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/caremate/caremate-api/internal/model"
	"github.com/caremate/caremate-api/internal/repository/mocks"
	"github.com/caremate/caremate-api/pkg/logger"
	"github.com/caremate/caremate-api/pkg/metrics"
)

type senderMock struct {
	mock.Mock
}

func (m *senderMock) Send(msg *model.EmailMessage) error {
	return m.Called(msg).Error(0)
}

var dispatcherMetrics = metrics.NewMetrics("dispatcher_test")

func newDispatcher(repo *mocks.OutboxRepository, sender *senderMock) *EmailDispatcher {
	return NewEmailDispatcher(repo, sender, EmailDispatcherConfig{
		BatchSize:     10,
		PollInterval:  time.Second,
		RetryAttempts: 3,
		RetryDelay:    time.Millisecond,
	}, logger.NewLogger(nil), dispatcherMetrics)
}

func pendingMessage() *model.EmailMessage {
	return &model.EmailMessage{
		ID:        uuid.New(),
		Recipient: "patient@example.com",
		Subject:   "Booking Update",
		Body:      "Your booking has been accepted",
		Status:    model.OutboxStatusPending,
		CreatedAt: time.Now(),
	}
}

func TestDispatchBatch(t *testing.T) {
	t.Run("delivers pending messages and marks them processed", func(t *testing.T) {
		repo := new(mocks.OutboxRepository)
		sender := new(senderMock)
		d := newDispatcher(repo, sender)

		msg := pendingMessage()
		repo.On("GetPendingWithLock", mock.Anything, 10).Return([]*model.EmailMessage{msg}, nil)
		sender.On("Send", msg).Return(nil)
		repo.On("MarkProcessed", mock.Anything, msg.ID).Return(nil)

		err := d.dispatchBatch(context.Background())

		require.NoError(t, err)
		sender.AssertNumberOfCalls(t, "Send", 1)
		repo.AssertCalled(t, "MarkProcessed", mock.Anything, msg.ID)
	})

	t.Run("marks message failed after exhausting retries", func(t *testing.T) {
		repo := new(mocks.OutboxRepository)
		sender := new(senderMock)
		d := newDispatcher(repo, sender)

		msg := pendingMessage()
		repo.On("GetPendingWithLock", mock.Anything, 10).Return([]*model.EmailMessage{msg}, nil)
		sender.On("Send", msg).Return(errors.New("smtp: connection refused"))
		repo.On("MarkFailed", mock.Anything, msg.ID, 3, "smtp: connection refused").Return(nil)

		err := d.dispatchBatch(context.Background())

		require.NoError(t, err)
		sender.AssertNumberOfCalls(t, "Send", 3)
		repo.AssertCalled(t, "MarkFailed", mock.Anything, msg.ID, 3, "smtp: connection refused")
		repo.AssertNotCalled(t, "MarkProcessed", mock.Anything, msg.ID)
	})

	t.Run("recovers after transient send failure", func(t *testing.T) {
		repo := new(mocks.OutboxRepository)
		sender := new(senderMock)
		d := newDispatcher(repo, sender)

		msg := pendingMessage()
		repo.On("GetPendingWithLock", mock.Anything, 10).Return([]*model.EmailMessage{msg}, nil)
		sender.On("Send", msg).Return(errors.New("smtp: timeout")).Once()
		sender.On("Send", msg).Return(nil)
		repo.On("MarkProcessed", mock.Anything, msg.ID).Return(nil)

		err := d.dispatchBatch(context.Background())

		require.NoError(t, err)
		sender.AssertNumberOfCalls(t, "Send", 2)
		repo.AssertCalled(t, "MarkProcessed", mock.Anything, msg.ID)
		repo.AssertNotCalled(t, "MarkFailed", mock.Anything, msg.ID, mock.Anything, mock.Anything)
	})

	t.Run("propagates outbox query failure", func(t *testing.T) {
		repo := new(mocks.OutboxRepository)
		sender := new(senderMock)
		d := newDispatcher(repo, sender)

		repo.On("GetPendingWithLock", mock.Anything, 10).Return(nil, errors.New("connection reset"))

		err := d.dispatchBatch(context.Background())

		assert.ErrorContains(t, err, "failed to get pending emails")
		sender.AssertNotCalled(t, "Send", mock.Anything)
	})
}

func TestNewEmailDispatcherValidatesConfig(t *testing.T) {
	assert.Panics(t, func() {
		NewEmailDispatcher(new(mocks.OutboxRepository), new(senderMock), EmailDispatcherConfig{
			PollInterval:  time.Second,
			RetryAttempts: 3,
			RetryDelay:    time.Millisecond,
		}, logger.NewLogger(nil), dispatcherMetrics)
	})
}
