package postgres

import (
	"github.com/jmoiron/sqlx"

	"github.com/caremate/caremate-api/internal/repository"
)

type patientRepository struct {
	BaseRepository
}

type nurseRepository struct {
	BaseRepository
}

type adminRepository struct {
	BaseRepository
}

type bookingRepository struct {
	BaseRepository
}

type scheduleRepository struct {
	BaseRepository
}

type reviewRepository struct {
	BaseRepository
}

type notificationRepository struct {
	BaseRepository
}

type outboxRepository struct {
	BaseRepository
}

func NewPatientRepository(db *sqlx.DB) repository.PatientRepository {
	return &patientRepository{NewBaseRepository(db)}
}

func NewNurseRepository(db *sqlx.DB) repository.NurseRepository {
	return &nurseRepository{NewBaseRepository(db)}
}

func NewAdminRepository(db *sqlx.DB) repository.AdminRepository {
	return &adminRepository{NewBaseRepository(db)}
}

func NewBookingRepository(db *sqlx.DB) repository.BookingRepository {
	return &bookingRepository{NewBaseRepository(db)}
}

func NewScheduleRepository(db *sqlx.DB) repository.ScheduleRepository {
	return &scheduleRepository{NewBaseRepository(db)}
}

func NewReviewRepository(db *sqlx.DB) repository.ReviewRepository {
	return &reviewRepository{NewBaseRepository(db)}
}

func NewNotificationRepository(db *sqlx.DB) repository.NotificationRepository {
	return &notificationRepository{NewBaseRepository(db)}
}

func NewOutboxRepository(db *sqlx.DB) repository.OutboxRepository {
	return &outboxRepository{NewBaseRepository(db)}
}
