package booking

import (
	"context"
	"database/sql"
	"testing"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/caremate/caremate-api/internal/model"
	"github.com/caremate/caremate-api/internal/repository/mocks"
	notificationservice "github.com/caremate/caremate-api/internal/service/notification"
	apperrors "github.com/caremate/caremate-api/pkg/errors"
	"github.com/caremate/caremate-api/pkg/logger"
)

type emailServiceMock struct {
	mock.Mock
}

func (m *emailServiceMock) EnqueueNurseWelcome(ctx context.Context, to, name string) error {
	return m.Called(ctx, to, name).Error(0)
}

func (m *emailServiceMock) EnqueuePatientWelcome(ctx context.Context, to, name string) error {
	return m.Called(ctx, to, name).Error(0)
}

func (m *emailServiceMock) EnqueueFamilyNotification(ctx context.Context, to, patientName string) error {
	return m.Called(ctx, to, patientName).Error(0)
}

func (m *emailServiceMock) EnqueueBookingUpdateTx(ctx context.Context, tx *sqlx.Tx, to, subject, message string) error {
	return m.Called(ctx, tx, to, subject, message).Error(0)
}

type fixture struct {
	svc       *Service
	repo      *mocks.BookingRepository
	nurseRepo *mocks.NurseRepository
	patients  *mocks.PatientRepository
	notifRepo *mocks.NotificationRepository
	emails    *emailServiceMock
}

func newFixture() *fixture {
	f := &fixture{
		repo:      &mocks.BookingRepository{},
		nurseRepo: &mocks.NurseRepository{},
		patients:  &mocks.PatientRepository{},
		notifRepo: &mocks.NotificationRepository{},
		emails:    &emailServiceMock{},
	}
	log := logger.NewLogger(nil)
	notifSvc := notificationservice.NewService(f.notifRepo, nil, log)
	f.svc = NewService(f.repo, f.nurseRepo, f.patients, notifSvc, f.emails, nil, log)
	return f
}

func testNurse() *model.Nurse {
	n := &model.Nurse{
		FullName: "Jane Doe",
		Email:    "jane@example.com",
		Status:   model.NurseAvailable,
	}
	n.ID = uuid.New()
	return n
}

func pendingBooking(nurseID uuid.UUID) *model.Booking {
	b := &model.Booking{
		PatientID: uuid.New(),
		NurseID:   nurseID,
		Status:    model.BookingPending,
	}
	b.ID = uuid.New()
	return b
}

func (f *fixture) expectPatientEmail(b *model.Booking) {
	f.patients.On("Get", mock.Anything, b.PatientID).
		Return(&model.Patient{Email: "patient@example.com"}, nil)
	f.emails.On("EnqueueBookingUpdateTx", mock.Anything, mock.Anything,
		"patient@example.com", mock.Anything, mock.Anything).Return(nil)
}

func TestAccept(t *testing.T) {
	ctx := context.Background()
	nurse := testNurse()

	t.Run("pending booking is accepted", func(t *testing.T) {
		f := newFixture()
		b := pendingBooking(nurse.ID)

		f.repo.On("WithTx", mock.Anything, mock.Anything).Return(nil)
		f.repo.On("GetForUpdate", mock.Anything, mock.Anything, b.ID, nurse.ID).Return(b, nil)
		f.repo.On("UpdateTx", mock.Anything, mock.Anything, b).Return(nil)
		f.nurseRepo.On("UpdateStatusTx", mock.Anything, mock.Anything, nurse.ID, model.NurseOnDuty).Return(nil)
		f.notifRepo.On("CreateTx", mock.Anything, mock.Anything, mock.Anything).Return(nil)
		f.expectPatientEmail(b)

		notes := "bringing equipment"
		got, err := f.svc.Accept(ctx, nurse, b.ID, &model.BookingActionRequest{Notes: &notes})
		require.NoError(t, err)

		assert.Equal(t, model.BookingAccepted, got.Status)
		require.NotNil(t, got.AcceptedAt)
		require.NotNil(t, got.NurseNotes)
		assert.Equal(t, notes, *got.NurseNotes)

		notif := f.notifRepo.Calls[0].Arguments.Get(2).(*model.Notification)
		assert.Equal(t, model.NotificationBookingAccepted, notif.Type)
		assert.Equal(t, "Booking Accepted", notif.Title)
		assert.Equal(t, "Your booking has been accepted by Jane Doe", notif.Message)
		assert.Equal(t, b.PatientID, notif.UserID)
		assert.Equal(t, model.RolePatient, notif.UserRole)
		require.NotNil(t, notif.RelatedEntityID)
		assert.Equal(t, b.ID, *notif.RelatedEntityID)

		f.nurseRepo.AssertExpectations(t)
	})

	t.Run("already accepted booking is rejected with invalid state", func(t *testing.T) {
		f := newFixture()
		b := pendingBooking(nurse.ID)
		b.Status = model.BookingAccepted

		f.repo.On("WithTx", mock.Anything, mock.Anything).Return(nil)
		f.repo.On("GetForUpdate", mock.Anything, mock.Anything, b.ID, nurse.ID).Return(b, nil)

		_, err := f.svc.Accept(ctx, nurse, b.ID, &model.BookingActionRequest{})
		require.Error(t, err)
		assert.Equal(t, apperrors.ErrInvalidState, apperrors.CodeOf(err))
		assert.EqualError(t, err, "Only pending bookings can be accepted")
		f.repo.AssertNotCalled(t, "UpdateTx", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("foreign booking reads as not found", func(t *testing.T) {
		f := newFixture()
		id := uuid.New()

		f.repo.On("WithTx", mock.Anything, mock.Anything).Return(nil)
		f.repo.On("GetForUpdate", mock.Anything, mock.Anything, id, nurse.ID).Return(nil, sql.ErrNoRows)

		_, err := f.svc.Accept(ctx, nurse, id, &model.BookingActionRequest{})
		require.Error(t, err)
		assert.Equal(t, apperrors.ErrNotFound, apperrors.CodeOf(err))
	})
}

func TestReject(t *testing.T) {
	ctx := context.Background()
	nurse := testNurse()

	t.Run("requires a reason", func(t *testing.T) {
		f := newFixture()

		_, err := f.svc.Reject(ctx, nurse, uuid.New(), &model.BookingActionRequest{})
		require.Error(t, err)
		assert.Equal(t, apperrors.ErrValidation, apperrors.CodeOf(err))
	})

	t.Run("pending booking is rejected with reason", func(t *testing.T) {
		f := newFixture()
		b := pendingBooking(nurse.ID)

		f.repo.On("WithTx", mock.Anything, mock.Anything).Return(nil)
		f.repo.On("GetForUpdate", mock.Anything, mock.Anything, b.ID, nurse.ID).Return(b, nil)
		f.repo.On("UpdateTx", mock.Anything, mock.Anything, b).Return(nil)
		f.notifRepo.On("CreateTx", mock.Anything, mock.Anything, mock.Anything).Return(nil)
		f.expectPatientEmail(b)

		got, err := f.svc.Reject(ctx, nurse, b.ID, &model.BookingActionRequest{Reason: "fully booked"})
		require.NoError(t, err)

		assert.Equal(t, model.BookingRejected, got.Status)
		require.NotNil(t, got.RejectedAt)
		require.NotNil(t, got.RejectionReason)
		assert.Equal(t, "fully booked", *got.RejectionReason)

		notif := f.notifRepo.Calls[0].Arguments.Get(2).(*model.Notification)
		assert.Equal(t, "Your booking has been rejected by Jane Doe", notif.Message)

		// Rejection leaves the nurse's status alone.
		f.nurseRepo.AssertNotCalled(t, "UpdateStatusTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("completed booking cannot be rejected", func(t *testing.T) {
		f := newFixture()
		b := pendingBooking(nurse.ID)
		b.Status = model.BookingCompleted

		f.repo.On("WithTx", mock.Anything, mock.Anything).Return(nil)
		f.repo.On("GetForUpdate", mock.Anything, mock.Anything, b.ID, nurse.ID).Return(b, nil)

		_, err := f.svc.Reject(ctx, nurse, b.ID, &model.BookingActionRequest{Reason: "late"})
		require.Error(t, err)
		assert.EqualError(t, err, "Only pending bookings can be rejected")
	})
}

func TestComplete(t *testing.T) {
	ctx := context.Background()
	nurse := testNurse()

	t.Run("last active booking frees the nurse", func(t *testing.T) {
		f := newFixture()
		b := pendingBooking(nurse.ID)
		b.Status = model.BookingAccepted

		f.repo.On("WithTx", mock.Anything, mock.Anything).Return(nil)
		f.repo.On("GetForUpdate", mock.Anything, mock.Anything, b.ID, nurse.ID).Return(b, nil)
		f.repo.On("UpdateTx", mock.Anything, mock.Anything, b).Return(nil)
		f.repo.On("CountActiveTx", mock.Anything, mock.Anything, nurse.ID).Return(0, nil)
		f.nurseRepo.On("UpdateStatusTx", mock.Anything, mock.Anything, nurse.ID, model.NurseAvailable).Return(nil)
		f.notifRepo.On("CreateTx", mock.Anything, mock.Anything, mock.Anything).Return(nil)
		f.expectPatientEmail(b)

		got, err := f.svc.Complete(ctx, nurse, b.ID)
		require.NoError(t, err)

		assert.Equal(t, model.BookingCompleted, got.Status)
		require.NotNil(t, got.CompletedAt)

		notif := f.notifRepo.Calls[0].Arguments.Get(2).(*model.Notification)
		assert.Equal(t, "Your booking with Jane Doe has been completed", notif.Message)
		f.nurseRepo.AssertExpectations(t)
	})

	t.Run("remaining active bookings keep the nurse on duty", func(t *testing.T) {
		f := newFixture()
		b := pendingBooking(nurse.ID)
		b.Status = model.BookingInProgress

		f.repo.On("WithTx", mock.Anything, mock.Anything).Return(nil)
		f.repo.On("GetForUpdate", mock.Anything, mock.Anything, b.ID, nurse.ID).Return(b, nil)
		f.repo.On("UpdateTx", mock.Anything, mock.Anything, b).Return(nil)
		f.repo.On("CountActiveTx", mock.Anything, mock.Anything, nurse.ID).Return(2, nil)
		f.notifRepo.On("CreateTx", mock.Anything, mock.Anything, mock.Anything).Return(nil)
		f.expectPatientEmail(b)

		_, err := f.svc.Complete(ctx, nurse, b.ID)
		require.NoError(t, err)

		f.nurseRepo.AssertNotCalled(t, "UpdateStatusTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("pending booking cannot be completed", func(t *testing.T) {
		f := newFixture()
		b := pendingBooking(nurse.ID)

		f.repo.On("WithTx", mock.Anything, mock.Anything).Return(nil)
		f.repo.On("GetForUpdate", mock.Anything, mock.Anything, b.ID, nurse.ID).Return(b, nil)

		_, err := f.svc.Complete(ctx, nurse, b.ID)
		require.Error(t, err)
		assert.EqualError(t, err, "Only active bookings can be completed")
	})
}

func TestSubmitCareReport(t *testing.T) {
	ctx := context.Background()
	nurse := testNurse()

	f := newFixture()
	b := pendingBooking(nurse.ID)
	b.Status = model.BookingInProgress

	f.repo.On("WithTx", mock.Anything, mock.Anything).Return(nil)
	f.repo.On("GetForUpdate", mock.Anything, mock.Anything, b.ID, nurse.ID).Return(b, nil)
	f.repo.On("UpdateTx", mock.Anything, mock.Anything, b).Return(nil)

	got, err := f.svc.SubmitCareReport(ctx, nurse, b.ID, "patient recovering well")
	require.NoError(t, err)
	require.NotNil(t, got.CareReport)
	assert.Equal(t, "patient recovering well", *got.CareReport)
}

func TestStats(t *testing.T) {
	ctx := context.Background()
	nurseID := uuid.New()
	f := newFixture()

	f.repo.On("CountByNurse", mock.Anything, nurseID).Return(20, nil)
	for status, count := range map[model.BookingStatus]int{
		model.BookingPending:    2,
		model.BookingAccepted:   6,
		model.BookingRejected:   2,
		model.BookingCompleted:  9,
		model.BookingCancelled:  0,
		model.BookingInProgress: 1,
	} {
		f.repo.On("CountByNurseAndStatus", mock.Anything, nurseID, status).Return(count, nil)
	}

	stats, err := f.svc.Stats(ctx, nurseID)
	require.NoError(t, err)

	assert.Equal(t, 20, stats.TotalBookings)
	assert.Equal(t, 1, stats.ActiveBookings)
	assert.InDelta(t, 75.0, stats.AcceptanceRate, 0.001)
	assert.InDelta(t, 60.0, stats.CompletionRate, 0.001)
}

func TestStatsZeroDenominators(t *testing.T) {
	ctx := context.Background()
	nurseID := uuid.New()
	f := newFixture()

	f.repo.On("CountByNurse", mock.Anything, nurseID).Return(0, nil)
	f.repo.On("CountByNurseAndStatus", mock.Anything, nurseID, mock.Anything).Return(0, nil)

	stats, err := f.svc.Stats(ctx, nurseID)
	require.NoError(t, err)

	assert.Zero(t, stats.AcceptanceRate)
	assert.Zero(t, stats.CompletionRate)
}

func TestList(t *testing.T) {
	ctx := context.Background()
	nurseID := uuid.New()

	t.Run("active listing filters on committed statuses", func(t *testing.T) {
		f := newFixture()
		dtos := []*model.BookingDTO{{ID: uuid.New()}}

		f.repo.On("ListForNurse", mock.Anything, nurseID,
			[]model.BookingStatus{model.BookingAccepted, model.BookingInProgress},
			model.Pagination{Size: 10}).Return(dtos, 1, nil)

		page, err := f.svc.ListActive(ctx, nurseID, model.Pagination{})
		require.NoError(t, err)

		assert.Equal(t, 1, page.TotalElements)
		assert.Equal(t, dtos, page.Content)
	})

	t.Run("history listing filters on terminal statuses", func(t *testing.T) {
		f := newFixture()

		f.repo.On("ListForNurse", mock.Anything, nurseID,
			[]model.BookingStatus{model.BookingCompleted, model.BookingRejected, model.BookingCancelled},
			model.Pagination{Size: 10}).Return([]*model.BookingDTO{}, 0, nil)

		page, err := f.svc.ListHistory(ctx, nurseID, model.Pagination{})
		require.NoError(t, err)

		assert.Zero(t, page.TotalElements)
		assert.True(t, page.Last)
	})

	t.Run("unfiltered listing pages all bookings", func(t *testing.T) {
		f := newFixture()

		f.repo.On("ListForNurse", mock.Anything, nurseID,
			[]model.BookingStatus(nil), model.Pagination{Page: 2, Size: 10}).
			Return([]*model.BookingDTO{}, 41, nil)

		page, err := f.svc.List(ctx, nurseID, nil, model.Pagination{Page: 2, Size: 10})
		require.NoError(t, err)

		assert.Equal(t, 41, page.TotalElements)
		assert.Equal(t, 5, page.TotalPages)
		assert.False(t, page.Last)
	})
}
