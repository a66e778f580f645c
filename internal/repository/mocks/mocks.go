// Package mocks provides testify mocks for the repository interfaces.
package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/mock"

	"github.com/caremate/caremate-api/internal/model"
)

type PatientRepository struct {
	mock.Mock
}

func (m *PatientRepository) Create(ctx context.Context, patient *model.Patient) error {
	return m.Called(ctx, patient).Error(0)
}

func (m *PatientRepository) Get(ctx context.Context, id uuid.UUID) (*model.Patient, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Patient), args.Error(1)
}

func (m *PatientRepository) GetByEmail(ctx context.Context, email string) (*model.Patient, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Patient), args.Error(1)
}

func (m *PatientRepository) GetByLogin(ctx context.Context, fullName, mobileNo, email string) (*model.Patient, error) {
	args := m.Called(ctx, fullName, mobileNo, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Patient), args.Error(1)
}

func (m *PatientRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *PatientRepository) ExistsByMobileNo(ctx context.Context, mobileNo string) (bool, error) {
	args := m.Called(ctx, mobileNo)
	return args.Bool(0), args.Error(1)
}

type NurseRepository struct {
	mock.Mock
}

func (m *NurseRepository) Create(ctx context.Context, nurse *model.Nurse) error {
	return m.Called(ctx, nurse).Error(0)
}

func (m *NurseRepository) Get(ctx context.Context, id uuid.UUID) (*model.Nurse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Nurse), args.Error(1)
}

func (m *NurseRepository) GetByEmail(ctx context.Context, email string) (*model.Nurse, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Nurse), args.Error(1)
}

func (m *NurseRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *NurseRepository) ExistsByMobileNo(ctx context.Context, mobileNo string) (bool, error) {
	args := m.Called(ctx, mobileNo)
	return args.Bool(0), args.Error(1)
}

func (m *NurseRepository) Update(ctx context.Context, nurse *model.Nurse) error {
	return m.Called(ctx, nurse).Error(0)
}

func (m *NurseRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.NurseStatus) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *NurseRepository) UpdateStatusTx(ctx context.Context, tx *sqlx.Tx, id uuid.UUID, status model.NurseStatus) error {
	return m.Called(ctx, tx, id, status).Error(0)
}

func (m *NurseRepository) List(ctx context.Context, p model.Pagination) ([]*model.Nurse, int, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*model.Nurse), args.Int(1), args.Error(2)
}

type AdminRepository struct {
	mock.Mock
}

func (m *AdminRepository) Create(ctx context.Context, admin *model.Admin) error {
	return m.Called(ctx, admin).Error(0)
}

func (m *AdminRepository) GetByEmail(ctx context.Context, email string) (*model.Admin, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Admin), args.Error(1)
}

func (m *AdminRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

type BookingRepository struct {
	mock.Mock
}

// WithTx runs fn with a nil transaction; collaborating mocks accept the
// nil *sqlx.Tx as-is.
func (m *BookingRepository) WithTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	args := m.Called(ctx, fn)
	if args.Error(0) != nil {
		return args.Error(0)
	}
	return fn(nil)
}

func (m *BookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	return m.Called(ctx, booking).Error(0)
}

func (m *BookingRepository) GetForNurse(ctx context.Context, id, nurseID uuid.UUID) (*model.Booking, error) {
	args := m.Called(ctx, id, nurseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Booking), args.Error(1)
}

func (m *BookingRepository) GetForUpdate(ctx context.Context, tx *sqlx.Tx, id, nurseID uuid.UUID) (*model.Booking, error) {
	args := m.Called(ctx, tx, id, nurseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Booking), args.Error(1)
}

func (m *BookingRepository) UpdateTx(ctx context.Context, tx *sqlx.Tx, booking *model.Booking) error {
	return m.Called(ctx, tx, booking).Error(0)
}

func (m *BookingRepository) GetDTOForNurse(ctx context.Context, id, nurseID uuid.UUID) (*model.BookingDTO, error) {
	args := m.Called(ctx, id, nurseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.BookingDTO), args.Error(1)
}

func (m *BookingRepository) ListForNurse(ctx context.Context, nurseID uuid.UUID, statuses []model.BookingStatus, p model.Pagination) ([]*model.BookingDTO, int, error) {
	args := m.Called(ctx, nurseID, statuses, p)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*model.BookingDTO), args.Int(1), args.Error(2)
}

func (m *BookingRepository) CountByNurse(ctx context.Context, nurseID uuid.UUID) (int, error) {
	args := m.Called(ctx, nurseID)
	return args.Int(0), args.Error(1)
}

func (m *BookingRepository) CountByNurseAndStatus(ctx context.Context, nurseID uuid.UUID, status model.BookingStatus) (int, error) {
	args := m.Called(ctx, nurseID, status)
	return args.Int(0), args.Error(1)
}

func (m *BookingRepository) CountActiveTx(ctx context.Context, tx *sqlx.Tx, nurseID uuid.UUID) (int, error) {
	args := m.Called(ctx, tx, nurseID)
	return args.Int(0), args.Error(1)
}

func (m *BookingRepository) TotalEarnings(ctx context.Context, nurseID uuid.UUID) (float64, error) {
	args := m.Called(ctx, nurseID)
	return args.Get(0).(float64), args.Error(1)
}

func (m *BookingRepository) EarningsSince(ctx context.Context, nurseID uuid.UUID, since time.Time) (float64, error) {
	args := m.Called(ctx, nurseID, since)
	return args.Get(0).(float64), args.Error(1)
}

func (m *BookingRepository) EarningsInRange(ctx context.Context, nurseID uuid.UUID, start, end time.Time) (float64, error) {
	args := m.Called(ctx, nurseID, start, end)
	return args.Get(0).(float64), args.Error(1)
}

func (m *BookingRepository) CountCompletedSince(ctx context.Context, nurseID uuid.UUID, since time.Time) (int, error) {
	args := m.Called(ctx, nurseID, since)
	return args.Int(0), args.Error(1)
}

func (m *BookingRepository) CountCompletedInRange(ctx context.Context, nurseID uuid.UUID, start, end time.Time) (int, error) {
	args := m.Called(ctx, nurseID, start, end)
	return args.Int(0), args.Error(1)
}

type ScheduleRepository struct {
	mock.Mock
}

func (m *ScheduleRepository) Create(ctx context.Context, schedule *model.AvailabilitySchedule) error {
	return m.Called(ctx, schedule).Error(0)
}

func (m *ScheduleRepository) ExistsActiveForDay(ctx context.Context, nurseID uuid.UUID, day model.DayOfWeek) (bool, error) {
	args := m.Called(ctx, nurseID, day)
	return args.Bool(0), args.Error(1)
}

func (m *ScheduleRepository) ListForNurse(ctx context.Context, nurseID uuid.UUID) ([]*model.AvailabilitySchedule, error) {
	args := m.Called(ctx, nurseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.AvailabilitySchedule), args.Error(1)
}

func (m *ScheduleRepository) GetForNurse(ctx context.Context, id, nurseID uuid.UUID) (*model.AvailabilitySchedule, error) {
	args := m.Called(ctx, id, nurseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AvailabilitySchedule), args.Error(1)
}

func (m *ScheduleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type ReviewRepository struct {
	mock.Mock
}

func (m *ReviewRepository) Create(ctx context.Context, review *model.Review) error {
	return m.Called(ctx, review).Error(0)
}

func (m *ReviewRepository) GetForNurse(ctx context.Context, id, nurseID uuid.UUID) (*model.Review, error) {
	args := m.Called(ctx, id, nurseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Review), args.Error(1)
}

func (m *ReviewRepository) UpdateReply(ctx context.Context, id uuid.UUID, reply string, repliedAt time.Time) error {
	return m.Called(ctx, id, reply, repliedAt).Error(0)
}

func (m *ReviewRepository) ListForNurse(ctx context.Context, nurseID uuid.UUID, p model.Pagination) ([]*model.ReviewDTO, int, error) {
	args := m.Called(ctx, nurseID, p)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*model.ReviewDTO), args.Int(1), args.Error(2)
}

func (m *ReviewRepository) AverageRating(ctx context.Context, nurseID uuid.UUID) (float64, error) {
	args := m.Called(ctx, nurseID)
	return args.Get(0).(float64), args.Error(1)
}

func (m *ReviewRepository) CountByNurse(ctx context.Context, nurseID uuid.UUID) (int, error) {
	args := m.Called(ctx, nurseID)
	return args.Int(0), args.Error(1)
}

func (m *ReviewRepository) CountByNurseAndRating(ctx context.Context, nurseID uuid.UUID, rating int) (int, error) {
	args := m.Called(ctx, nurseID, rating)
	return args.Int(0), args.Error(1)
}

type NotificationRepository struct {
	mock.Mock
}

func (m *NotificationRepository) Create(ctx context.Context, n *model.Notification) error {
	return m.Called(ctx, n).Error(0)
}

func (m *NotificationRepository) CreateTx(ctx context.Context, tx *sqlx.Tx, n *model.Notification) error {
	return m.Called(ctx, tx, n).Error(0)
}

func (m *NotificationRepository) ListForUser(ctx context.Context, userID uuid.UUID, role model.UserRole, p model.Pagination) ([]*model.Notification, int, error) {
	args := m.Called(ctx, userID, role, p)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*model.Notification), args.Int(1), args.Error(2)
}

func (m *NotificationRepository) GetForUser(ctx context.Context, id, userID uuid.UUID, role model.UserRole) (*model.Notification, error) {
	args := m.Called(ctx, id, userID, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Notification), args.Error(1)
}

func (m *NotificationRepository) MarkRead(ctx context.Context, id uuid.UUID, readAt time.Time) error {
	return m.Called(ctx, id, readAt).Error(0)
}

func (m *NotificationRepository) CountUnread(ctx context.Context, userID uuid.UUID, role model.UserRole) (int, error) {
	args := m.Called(ctx, userID, role)
	return args.Int(0), args.Error(1)
}

type OutboxRepository struct {
	mock.Mock
}

func (m *OutboxRepository) Create(ctx context.Context, msg *model.EmailMessage) error {
	return m.Called(ctx, msg).Error(0)
}

func (m *OutboxRepository) CreateTx(ctx context.Context, tx *sqlx.Tx, msg *model.EmailMessage) error {
	return m.Called(ctx, tx, msg).Error(0)
}

func (m *OutboxRepository) GetPendingWithLock(ctx context.Context, limit int) ([]*model.EmailMessage, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.EmailMessage), args.Error(1)
}

func (m *OutboxRepository) MarkProcessed(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *OutboxRepository) MarkFailed(ctx context.Context, id uuid.UUID, attempts int, lastError string) error {
	return m.Called(ctx, id, attempts, lastError).Error(0)
}

func (m *OutboxRepository) DeleteProcessedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}
