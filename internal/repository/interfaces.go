package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/caremate/caremate-api/internal/model"
)

type PatientRepository interface {
	Create(ctx context.Context, patient *model.Patient) error
	Get(ctx context.Context, id uuid.UUID) (*model.Patient, error)
	GetByEmail(ctx context.Context, email string) (*model.Patient, error)
	GetByLogin(ctx context.Context, fullName, mobileNo, email string) (*model.Patient, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByMobileNo(ctx context.Context, mobileNo string) (bool, error)
}

type NurseRepository interface {
	Create(ctx context.Context, nurse *model.Nurse) error
	Get(ctx context.Context, id uuid.UUID) (*model.Nurse, error)
	GetByEmail(ctx context.Context, email string) (*model.Nurse, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByMobileNo(ctx context.Context, mobileNo string) (bool, error)
	Update(ctx context.Context, nurse *model.Nurse) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.NurseStatus) error
	UpdateStatusTx(ctx context.Context, tx *sqlx.Tx, id uuid.UUID, status model.NurseStatus) error
	List(ctx context.Context, p model.Pagination) ([]*model.Nurse, int, error)
}

type AdminRepository interface {
	Create(ctx context.Context, admin *model.Admin) error
	GetByEmail(ctx context.Context, email string) (*model.Admin, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// BookingRepository persists bookings. Lifecycle transitions run inside
// WithTx with GetForUpdate so that the precondition check and the write
// are atomic with respect to concurrent transitions on the same row.
type BookingRepository interface {
	WithTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error
	Create(ctx context.Context, booking *model.Booking) error
	GetForNurse(ctx context.Context, id, nurseID uuid.UUID) (*model.Booking, error)
	GetForUpdate(ctx context.Context, tx *sqlx.Tx, id, nurseID uuid.UUID) (*model.Booking, error)
	UpdateTx(ctx context.Context, tx *sqlx.Tx, booking *model.Booking) error
	GetDTOForNurse(ctx context.Context, id, nurseID uuid.UUID) (*model.BookingDTO, error)
	ListForNurse(ctx context.Context, nurseID uuid.UUID, statuses []model.BookingStatus, p model.Pagination) ([]*model.BookingDTO, int, error)

	CountByNurse(ctx context.Context, nurseID uuid.UUID) (int, error)
	CountByNurseAndStatus(ctx context.Context, nurseID uuid.UUID, status model.BookingStatus) (int, error)
	CountActiveTx(ctx context.Context, tx *sqlx.Tx, nurseID uuid.UUID) (int, error)

	TotalEarnings(ctx context.Context, nurseID uuid.UUID) (float64, error)
	EarningsSince(ctx context.Context, nurseID uuid.UUID, since time.Time) (float64, error)
	EarningsInRange(ctx context.Context, nurseID uuid.UUID, start, end time.Time) (float64, error)
	CountCompletedSince(ctx context.Context, nurseID uuid.UUID, since time.Time) (int, error)
	CountCompletedInRange(ctx context.Context, nurseID uuid.UUID, start, end time.Time) (int, error)
}

type ScheduleRepository interface {
	Create(ctx context.Context, schedule *model.AvailabilitySchedule) error
	ExistsActiveForDay(ctx context.Context, nurseID uuid.UUID, day model.DayOfWeek) (bool, error)
	ListForNurse(ctx context.Context, nurseID uuid.UUID) ([]*model.AvailabilitySchedule, error)
	GetForNurse(ctx context.Context, id, nurseID uuid.UUID) (*model.AvailabilitySchedule, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type ReviewRepository interface {
	Create(ctx context.Context, review *model.Review) error
	GetForNurse(ctx context.Context, id, nurseID uuid.UUID) (*model.Review, error)
	UpdateReply(ctx context.Context, id uuid.UUID, reply string, repliedAt time.Time) error
	ListForNurse(ctx context.Context, nurseID uuid.UUID, p model.Pagination) ([]*model.ReviewDTO, int, error)
	AverageRating(ctx context.Context, nurseID uuid.UUID) (float64, error)
	CountByNurse(ctx context.Context, nurseID uuid.UUID) (int, error)
	CountByNurseAndRating(ctx context.Context, nurseID uuid.UUID, rating int) (int, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, n *model.Notification) error
	CreateTx(ctx context.Context, tx *sqlx.Tx, n *model.Notification) error
	ListForUser(ctx context.Context, userID uuid.UUID, role model.UserRole, p model.Pagination) ([]*model.Notification, int, error)
	GetForUser(ctx context.Context, id, userID uuid.UUID, role model.UserRole) (*model.Notification, error)
	MarkRead(ctx context.Context, id uuid.UUID, readAt time.Time) error
	CountUnread(ctx context.Context, userID uuid.UUID, role model.UserRole) (int, error)
}

// OutboxRepository stores rendered emails awaiting delivery by the
// dispatch worker.
type OutboxRepository interface {
	Create(ctx context.Context, msg *model.EmailMessage) error
	CreateTx(ctx context.Context, tx *sqlx.Tx, msg *model.EmailMessage) error
	GetPendingWithLock(ctx context.Context, limit int) ([]*model.EmailMessage, error)
	MarkProcessed(ctx context.Context, id uuid.UUID) error
	MarkFailed(ctx context.Context, id uuid.UUID, attempts int, lastError string) error
	DeleteProcessedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
