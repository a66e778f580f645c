package schedule

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

func TestCreate(t *testing.T) {
	ctx := context.Background()
	nurseID := uuid.New()

	t.Run("creates an active schedule", func(t *testing.T) {
		repo := &mocks.ScheduleRepository{}
		svc := NewService(repo, logger.NewLogger(nil))

		repo.On("ExistsActiveForDay", mock.Anything, nurseID, model.Monday).Return(false, nil)
		repo.On("Create", mock.Anything, mock.Anything).Return(nil)

		got, err := svc.Create(ctx, nurseID, &model.CreateScheduleRequest{
			DayOfWeek: model.Monday,
			StartTime: "09:00",
			EndTime:   "17:00",
		})
		require.NoError(t, err)

		assert.Equal(t, nurseID, got.NurseID)
		assert.Equal(t, model.Monday, got.DayOfWeek)
		assert.True(t, got.IsActive)
	})

	t.Run("rejects malformed times", func(t *testing.T) {
		repo := &mocks.ScheduleRepository{}
		svc := NewService(repo, logger.NewLogger(nil))

		_, err := svc.Create(ctx, nurseID, &model.CreateScheduleRequest{
			DayOfWeek: model.Monday,
			StartTime: "9am",
			EndTime:   "17:00",
		})
		require.Error(t, err)
		assert.Equal(t, apperrors.ErrValidation, apperrors.CodeOf(err))
	})

	t.Run("rejects an empty window", func(t *testing.T) {
		repo := &mocks.ScheduleRepository{}
		svc := NewService(repo, logger.NewLogger(nil))

		_, err := svc.Create(ctx, nurseID, &model.CreateScheduleRequest{
			DayOfWeek: model.Monday,
			StartTime: "17:00",
			EndTime:   "17:00",
		})
		require.Error(t, err)
		assert.Equal(t, apperrors.ErrInvalidState, apperrors.CodeOf(err))
		assert.EqualError(t, err, "Start time must be before end time")
	})

	t.Run("rejects a second schedule for the same day", func(t *testing.T) {
		repo := &mocks.ScheduleRepository{}
		svc := NewService(repo, logger.NewLogger(nil))

		repo.On("ExistsActiveForDay", mock.Anything, nurseID, model.Tuesday).Return(true, nil)

		_, err := svc.Create(ctx, nurseID, &model.CreateScheduleRequest{
			DayOfWeek: model.Tuesday,
			StartTime: "09:00",
			EndTime:   "17:00",
		})
		require.Error(t, err)
		assert.Equal(t, apperrors.ErrConflict, apperrors.CodeOf(err))
		assert.EqualError(t, err, "Schedule already exists for TUESDAY")
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	nurseID := uuid.New()

	t.Run("deletes an owned schedule", func(t *testing.T) {
		repo := &mocks.ScheduleRepository{}
		svc := NewService(repo, logger.NewLogger(nil))

		sched := &model.AvailabilitySchedule{NurseID: nurseID}
		sched.ID = uuid.New()

		repo.On("GetForNurse", mock.Anything, sched.ID, nurseID).Return(sched, nil)
		repo.On("Delete", mock.Anything, sched.ID).Return(nil)

		require.NoError(t, svc.Delete(ctx, sched.ID, nurseID))
		repo.AssertExpectations(t)
	})

	t.Run("foreign schedule reads as not found", func(t *testing.T) {
		repo := &mocks.ScheduleRepository{}
		svc := NewService(repo, logger.NewLogger(nil))

		id := uuid.New()
		repo.On("GetForNurse", mock.Anything, id, nurseID).Return(nil, sql.ErrNoRows)

		err := svc.Delete(ctx, id, nurseID)
		require.Error(t, err)
		assert.Equal(t, apperrors.ErrNotFound, apperrors.CodeOf(err))
	})
}
