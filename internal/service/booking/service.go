package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/caremate/caremate-api/internal/email"
	"github.com/caremate/caremate-api/internal/model"
	"github.com/caremate/caremate-api/internal/repository"
	"github.com/caremate/caremate-api/internal/service/notification"
	apperrors "github.com/caremate/caremate-api/pkg/errors"
	"github.com/caremate/caremate-api/pkg/logger"
	"github.com/caremate/caremate-api/pkg/metrics"
)

const defaultPageSize = 10

type Service struct {
	repo        repository.BookingRepository
	nurseRepo   repository.NurseRepository
	patientRepo repository.PatientRepository
	notifSvc    *notification.Service
	emailSvc    email.Service
	metrics     *metrics.Metrics
	logger      *logger.Logger
}

func NewService(
	repo repository.BookingRepository,
	nurseRepo repository.NurseRepository,
	patientRepo repository.PatientRepository,
	notifSvc *notification.Service,
	emailSvc email.Service,
	metrics *metrics.Metrics,
	logger *logger.Logger,
) *Service {
	return &Service{
		repo:        repo,
		nurseRepo:   nurseRepo,
		patientRepo: patientRepo,
		notifSvc:    notifSvc,
		emailSvc:    emailSvc,
		metrics:     metrics,
		logger:      logger,
	}
}

// Accept transitions a PENDING booking to ACCEPTED and puts the nurse
// on duty. The precondition check and all writes commit as one
// transaction; a concurrent accept on the same booking loses the row
// lock race and fails the precondition.
func (s *Service) Accept(ctx context.Context, nurse *model.Nurse, bookingID uuid.UUID, req *model.BookingActionRequest) (*model.Booking, error) {
	var booking *model.Booking
	var notif *model.Notification

	err := s.repo.WithTx(ctx, func(tx *sqlx.Tx) error {
		b, err := s.lockBooking(ctx, tx, bookingID, nurse.ID)
		if err != nil {
			return err
		}
		if b.Status != model.BookingPending {
			return apperrors.InvalidState("Only pending bookings can be accepted")
		}

		now := time.Now()
		b.Status = model.BookingAccepted
		b.AcceptedAt = &now
		if req.Notes != nil {
			b.NurseNotes = req.Notes
		}
		if err := s.repo.UpdateTx(ctx, tx, b); err != nil {
			return err
		}

		if err := s.nurseRepo.UpdateStatusTx(ctx, tx, nurse.ID, model.NurseOnDuty); err != nil {
			return err
		}

		notif = s.patientNotification(b, model.NotificationBookingAccepted,
			"Booking Accepted",
			fmt.Sprintf("Your booking has been accepted by %s", nurse.FullName))
		if err := s.notifSvc.EmitTx(ctx, tx, notif); err != nil {
			return err
		}
		if err := s.enqueuePatientEmail(ctx, tx, b, "Booking Accepted", notif.Message); err != nil {
			return err
		}

		booking = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.afterTransition(ctx, notif, model.BookingAccepted)
	s.logger.Info("Booking accepted", "booking_id", bookingID.String(), "nurse", nurse.Email)
	return booking, nil
}

// Reject transitions a PENDING booking to REJECTED, recording the
// reason. The nurse's status is unaffected.
func (s *Service) Reject(ctx context.Context, nurse *model.Nurse, bookingID uuid.UUID, req *model.BookingActionRequest) (*model.Booking, error) {
	if req.Reason == "" {
		return nil, apperrors.Validation(map[string]string{"reason": "rejection reason is required"})
	}

	var booking *model.Booking
	var notif *model.Notification

	err := s.repo.WithTx(ctx, func(tx *sqlx.Tx) error {
		b, err := s.lockBooking(ctx, tx, bookingID, nurse.ID)
		if err != nil {
			return err
		}
		if b.Status != model.BookingPending {
			return apperrors.InvalidState("Only pending bookings can be rejected")
		}

		now := time.Now()
		b.Status = model.BookingRejected
		b.RejectedAt = &now
		b.RejectionReason = &req.Reason
		if req.Notes != nil {
			b.NurseNotes = req.Notes
		}
		if err := s.repo.UpdateTx(ctx, tx, b); err != nil {
			return err
		}

		notif = s.patientNotification(b, model.NotificationBookingRejected,
			"Booking Rejected",
			fmt.Sprintf("Your booking has been rejected by %s", nurse.FullName))
		if err := s.notifSvc.EmitTx(ctx, tx, notif); err != nil {
			return err
		}
		if err := s.enqueuePatientEmail(ctx, tx, b, "Booking Rejected", notif.Message); err != nil {
			return err
		}

		booking = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.afterTransition(ctx, notif, model.BookingRejected)
	s.logger.Info("Booking rejected", "booking_id", bookingID.String(), "nurse", nurse.Email)
	return booking, nil
}

// Complete transitions an ACCEPTED or IN_PROGRESS booking to COMPLETED.
// The nurse's status is recomputed from the remaining active bookings
// inside the same transaction: AVAILABLE only when nothing else is
// active.
func (s *Service) Complete(ctx context.Context, nurse *model.Nurse, bookingID uuid.UUID) (*model.Booking, error) {
	var booking *model.Booking
	var notif *model.Notification

	err := s.repo.WithTx(ctx, func(tx *sqlx.Tx) error {
		b, err := s.lockBooking(ctx, tx, bookingID, nurse.ID)
		if err != nil {
			return err
		}
		if b.Status != model.BookingAccepted && b.Status != model.BookingInProgress {
			return apperrors.InvalidState("Only active bookings can be completed")
		}

		now := time.Now()
		b.Status = model.BookingCompleted
		b.CompletedAt = &now
		if err := s.repo.UpdateTx(ctx, tx, b); err != nil {
			return err
		}

		active, err := s.repo.CountActiveTx(ctx, tx, nurse.ID)
		if err != nil {
			return err
		}
		if active == 0 {
			if err := s.nurseRepo.UpdateStatusTx(ctx, tx, nurse.ID, model.NurseAvailable); err != nil {
				return err
			}
		}

		notif = s.patientNotification(b, model.NotificationBookingCompleted,
			"Booking Completed",
			fmt.Sprintf("Your booking with %s has been completed", nurse.FullName))
		if err := s.notifSvc.EmitTx(ctx, tx, notif); err != nil {
			return err
		}
		if err := s.enqueuePatientEmail(ctx, tx, b, "Booking Completed", notif.Message); err != nil {
			return err
		}

		booking = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.afterTransition(ctx, notif, model.BookingCompleted)
	s.logger.Info("Booking completed", "booking_id", bookingID.String(), "nurse", nurse.Email)
	return booking, nil
}

// SubmitCareReport overwrites the care report text. There is no status
// precondition; the lookup is still owner-scoped.
func (s *Service) SubmitCareReport(ctx context.Context, nurse *model.Nurse, bookingID uuid.UUID, report string) (*model.Booking, error) {
	var booking *model.Booking

	err := s.repo.WithTx(ctx, func(tx *sqlx.Tx) error {
		b, err := s.lockBooking(ctx, tx, bookingID, nurse.ID)
		if err != nil {
			return err
		}
		b.CareReport = &report
		if err := s.repo.UpdateTx(ctx, tx, b); err != nil {
			return err
		}
		booking = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Care report submitted", "booking_id", bookingID.String(), "nurse", nurse.Email)
	return booking, nil
}

func (s *Service) Get(ctx context.Context, nurseID, bookingID uuid.UUID) (*model.BookingDTO, error) {
	dto, err := s.repo.GetDTOForNurse(ctx, bookingID, nurseID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("booking")
		}
		return nil, err
	}
	return dto, nil
}

func (s *Service) List(ctx context.Context, nurseID uuid.UUID, statuses []model.BookingStatus, p model.Pagination) (*model.PageResponse, error) {
	p = p.Normalize(defaultPageSize)
	bookings, total, err := s.repo.ListForNurse(ctx, nurseID, statuses, p)
	if err != nil {
		return nil, err
	}
	return model.NewPageResponse(bookings, p, total), nil
}

// ListActive returns bookings the nurse is currently committed to.
func (s *Service) ListActive(ctx context.Context, nurseID uuid.UUID, p model.Pagination) (*model.PageResponse, error) {
	return s.List(ctx, nurseID, model.ActiveBookingStatuses, p)
}

// ListHistory returns bookings that reached a terminal status.
func (s *Service) ListHistory(ctx context.Context, nurseID uuid.UUID, p model.Pagination) (*model.PageResponse, error) {
	return s.List(ctx, nurseID, []model.BookingStatus{
		model.BookingCompleted,
		model.BookingRejected,
		model.BookingCancelled,
	}, p)
}

// Stats aggregates per-status counts plus acceptance and completion
// rates. The completion-rate denominator mixes still-accepted with
// completed bookings; kept for compatibility with existing clients.
func (s *Service) Stats(ctx context.Context, nurseID uuid.UUID) (*model.BookingStats, error) {
	stats := &model.BookingStats{}

	var err error
	if stats.TotalBookings, err = s.repo.CountByNurse(ctx, nurseID); err != nil {
		return nil, err
	}

	counts := []struct {
		status model.BookingStatus
		dst    *int
	}{
		{model.BookingPending, &stats.PendingBookings},
		{model.BookingAccepted, &stats.AcceptedBookings},
		{model.BookingRejected, &stats.RejectedBookings},
		{model.BookingCompleted, &stats.CompletedBookings},
		{model.BookingCancelled, &stats.CancelledBookings},
		{model.BookingInProgress, &stats.ActiveBookings},
	}
	for _, c := range counts {
		if *c.dst, err = s.repo.CountByNurseAndStatus(ctx, nurseID, c.status); err != nil {
			return nil, err
		}
	}

	if requests := stats.AcceptedBookings + stats.RejectedBookings; requests > 0 {
		stats.AcceptanceRate = float64(stats.AcceptedBookings) / float64(requests) * 100
	}
	if accepted := stats.AcceptedBookings + stats.CompletedBookings; accepted > 0 {
		stats.CompletionRate = float64(stats.CompletedBookings) / float64(accepted) * 100
	}

	return stats, nil
}

func (s *Service) lockBooking(ctx context.Context, tx *sqlx.Tx, bookingID, nurseID uuid.UUID) (*model.Booking, error) {
	b, err := s.repo.GetForUpdate(ctx, tx, bookingID, nurseID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("booking")
		}
		return nil, err
	}
	return b, nil
}

func (s *Service) patientNotification(b *model.Booking, typ model.NotificationType, title, message string) *model.Notification {
	related := b.ID
	return &model.Notification{
		UserID:          b.PatientID,
		UserRole:        model.RolePatient,
		Type:            typ,
		Title:           title,
		Message:         message,
		RelatedEntityID: &related,
	}
}

func (s *Service) enqueuePatientEmail(ctx context.Context, tx *sqlx.Tx, b *model.Booking, subject, message string) error {
	patient, err := s.patientRepo.Get(ctx, b.PatientID)
	if err != nil {
		return err
	}
	return s.emailSvc.EnqueueBookingUpdateTx(ctx, tx, patient.Email, subject, message)
}

func (s *Service) afterTransition(ctx context.Context, notif *model.Notification, to model.BookingStatus) {
	if s.metrics != nil {
		s.metrics.BookingTransitions.WithLabelValues(string(to)).Inc()
	}
	s.notifSvc.Publish(ctx, notif)
}
