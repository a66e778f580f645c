package notification

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/caremate/caremate-api/internal/model"
	"github.com/caremate/caremate-api/internal/repository"
	apperrors "github.com/caremate/caremate-api/pkg/errors"
	"github.com/caremate/caremate-api/pkg/logger"
	"github.com/caremate/caremate-api/pkg/messaging"
)

const (
	// Channel carries notification events for realtime consumers.
	Channel = "notifications"

	defaultPageSize = 20
)

type Service struct {
	repo   repository.NotificationRepository
	broker messaging.Broker
	logger *logger.Logger
}

// NewService builds the notification service. broker may be nil; the
// database row is the source of truth and pub/sub is best effort.
func NewService(repo repository.NotificationRepository, broker messaging.Broker, logger *logger.Logger) *Service {
	return &Service{
		repo:   repo,
		broker: broker,
		logger: logger,
	}
}

func (s *Service) Emit(ctx context.Context, n *model.Notification) error {
	if err := s.repo.Create(ctx, n); err != nil {
		return err
	}
	s.Publish(ctx, n)
	return nil
}

// EmitTx inserts the notification row inside the caller's transaction.
// The caller publishes after commit so subscribers never observe a
// notification that later rolled back.
func (s *Service) EmitTx(ctx context.Context, tx *sqlx.Tx, n *model.Notification) error {
	return s.repo.CreateTx(ctx, tx, n)
}

// Publish fans the notification out over the broker. Failures are
// logged and swallowed.
func (s *Service) Publish(ctx context.Context, n *model.Notification) {
	if s.broker == nil {
		return
	}
	event := model.NotificationEvent{
		NotificationID: n.ID,
		UserID:         n.UserID,
		UserRole:       n.UserRole,
		Type:           n.Type,
		Title:          n.Title,
		CreatedAt:      n.CreatedAt,
	}
	if err := s.broker.Publish(ctx, Channel, event); err != nil {
		s.logger.Error(err, "Failed to publish notification event",
			"notification_id", n.ID.String())
	}
}

func (s *Service) List(ctx context.Context, userID uuid.UUID, role model.UserRole, p model.Pagination) (*model.PageResponse, error) {
	p = p.Normalize(defaultPageSize)
	notifications, total, err := s.repo.ListForUser(ctx, userID, role, p)
	if err != nil {
		return nil, err
	}
	return model.NewPageResponse(notifications, p, total), nil
}

// MarkRead flips the read flag. readAt is set on the first call only;
// marking an already-read notification is a no-op.
func (s *Service) MarkRead(ctx context.Context, id, userID uuid.UUID, role model.UserRole) (*model.Notification, error) {
	n, err := s.repo.GetForUser(ctx, id, userID, role)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("notification")
		}
		return nil, err
	}

	if n.IsRead {
		return n, nil
	}

	now := time.Now()
	if err := s.repo.MarkRead(ctx, n.ID, now); err != nil {
		return nil, err
	}
	n.IsRead = true
	n.ReadAt = &now
	return n, nil
}

func (s *Service) UnreadCount(ctx context.Context, userID uuid.UUID, role model.UserRole) (int, error) {
	return s.repo.CountUnread(ctx, userID, role)
}
