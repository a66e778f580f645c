package email

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/caremate/caremate-api/internal/model"
	"github.com/caremate/caremate-api/internal/repository"
)

// Service renders emails and enqueues them on the outbox. Delivery is
// handled by the dispatch worker, so callers never block on SMTP.
type Service interface {
	EnqueueNurseWelcome(ctx context.Context, to, name string) error
	EnqueuePatientWelcome(ctx context.Context, to, name string) error
	EnqueueFamilyNotification(ctx context.Context, to, patientName string) error
	EnqueueBookingUpdateTx(ctx context.Context, tx *sqlx.Tx, to, subject, message string) error
}

type service struct {
	outboxRepo repository.OutboxRepository
}

func NewService(outboxRepo repository.OutboxRepository) Service {
	return &service{outboxRepo: outboxRepo}
}

func (s *service) EnqueueNurseWelcome(ctx context.Context, to, name string) error {
	body, err := render(nurseWelcomeTmpl, struct{ Name string }{name})
	if err != nil {
		return err
	}
	return s.outboxRepo.Create(ctx, &model.EmailMessage{
		Recipient: to,
		Subject:   nurseWelcomeSubject,
		Body:      body,
	})
}

func (s *service) EnqueuePatientWelcome(ctx context.Context, to, name string) error {
	body, err := render(patientWelcomeTmpl, struct{ Name string }{name})
	if err != nil {
		return err
	}
	return s.outboxRepo.Create(ctx, &model.EmailMessage{
		Recipient: to,
		Subject:   patientWelcomeSubject,
		Body:      body,
	})
}

func (s *service) EnqueueFamilyNotification(ctx context.Context, to, patientName string) error {
	body, err := render(familyNoticeTmpl, struct{ Name string }{patientName})
	if err != nil {
		return err
	}
	return s.outboxRepo.Create(ctx, &model.EmailMessage{
		Recipient: to,
		Subject:   familyNoticeSubject,
		Body:      body,
	})
}

// EnqueueBookingUpdateTx enqueues a plain booking status email inside
// the caller's transaction so the email commits with the transition.
func (s *service) EnqueueBookingUpdateTx(ctx context.Context, tx *sqlx.Tx, to, subject, message string) error {
	body, err := render(bookingUpdateTmpl, struct{ Message string }{message})
	if err != nil {
		return err
	}
	return s.outboxRepo.CreateTx(ctx, tx, &model.EmailMessage{
		Recipient: to,
		Subject:   subject,
		Body:      body,
	})
}
