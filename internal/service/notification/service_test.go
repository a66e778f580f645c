package notification

import (
	"context"
	"database/sql"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/caremate/caremate-api/internal/model"
	"github.com/caremate/caremate-api/internal/repository/mocks"
	apperrors "github.com/caremate/caremate-api/pkg/errors"
	"github.com/caremate/caremate-api/pkg/logger"
)

func TestMarkRead(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("marks an unread notification", func(t *testing.T) {
		repo := &mocks.NotificationRepository{}
		svc := NewService(repo, nil, logger.NewLogger(nil))

		n := &model.Notification{
			ID:       uuid.New(),
			UserID:   userID,
			UserRole: model.RolePatient,
		}
		repo.On("GetForUser", mock.Anything, n.ID, userID, model.RolePatient).Return(n, nil)
		repo.On("MarkRead", mock.Anything, n.ID, mock.Anything).Return(nil)

		got, err := svc.MarkRead(ctx, n.ID, userID, model.RolePatient)
		require.NoError(t, err)
		assert.True(t, got.IsRead)
		assert.NotNil(t, got.ReadAt)
	})

	t.Run("marking twice is a no-op", func(t *testing.T) {
		repo := &mocks.NotificationRepository{}
		svc := NewService(repo, nil, logger.NewLogger(nil))

		n := &model.Notification{
			ID:       uuid.New(),
			UserID:   userID,
			UserRole: model.RoleNurse,
			IsRead:   true,
		}
		repo.On("GetForUser", mock.Anything, n.ID, userID, model.RoleNurse).Return(n, nil)

		got, err := svc.MarkRead(ctx, n.ID, userID, model.RoleNurse)
		require.NoError(t, err)
		assert.True(t, got.IsRead)
		repo.AssertNotCalled(t, "MarkRead", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("another user's notification reads as not found", func(t *testing.T) {
		repo := &mocks.NotificationRepository{}
		svc := NewService(repo, nil, logger.NewLogger(nil))

		id := uuid.New()
		repo.On("GetForUser", mock.Anything, id, userID, model.RolePatient).Return(nil, sql.ErrNoRows)

		_, err := svc.MarkRead(ctx, id, userID, model.RolePatient)
		require.Error(t, err)
		assert.Equal(t, apperrors.ErrNotFound, apperrors.CodeOf(err))
	})
}

func TestList(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	repo := &mocks.NotificationRepository{}
	svc := NewService(repo, nil, logger.NewLogger(nil))

	repo.On("ListForUser", mock.Anything, userID, model.RolePatient, model.Pagination{Page: 0, Size: 20}).
		Return([]*model.Notification{{ID: uuid.New()}}, 41, nil)

	page, err := svc.List(ctx, userID, model.RolePatient, model.Pagination{})
	require.NoError(t, err)

	assert.Equal(t, 41, page.TotalElements)
	assert.Equal(t, 3, page.TotalPages)
	assert.False(t, page.Last)
}
