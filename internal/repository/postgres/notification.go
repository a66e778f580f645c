package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/caremate/caremate-api/internal/model"
)

const notificationColumns = `id, user_id, user_role, type, title, message,
	related_entity_id, is_read, read_at, created_at`

const insertNotificationQuery = `
	INSERT INTO notifications (
		id, user_id, user_role, type, title, message,
		related_entity_id, is_read, read_at, created_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
`

func (r *notificationRepository) Create(ctx context.Context, n *model.Notification) error {
	n.ID = uuid.New()
	n.CreatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, insertNotificationQuery,
		n.ID, n.UserID, n.UserRole, n.Type, n.Title, n.Message,
		n.RelatedEntityID, n.IsRead, n.ReadAt, n.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}
	return nil
}

func (r *notificationRepository) CreateTx(ctx context.Context, tx *sqlx.Tx, n *model.Notification) error {
	n.ID = uuid.New()
	n.CreatedAt = time.Now()

	_, err := tx.ExecContext(ctx, insertNotificationQuery,
		n.ID, n.UserID, n.UserRole, n.Type, n.Title, n.Message,
		n.RelatedEntityID, n.IsRead, n.ReadAt, n.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}
	return nil
}

func (r *notificationRepository) ListForUser(ctx context.Context, userID uuid.UUID, role model.UserRole, p model.Pagination) ([]*model.Notification, int, error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND user_role = $2`
	if err := r.db.GetContext(ctx, &total, countQuery, userID, role); err != nil {
		return nil, 0, fmt.Errorf("failed to count notifications: %w", err)
	}

	query := `
		SELECT ` + notificationColumns + `
		FROM notifications
		WHERE user_id = $1 AND user_role = $2
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4
	`
	notifications := []*model.Notification{}
	if err := r.db.SelectContext(ctx, &notifications, query, userID, role, p.Size, p.Offset()); err != nil {
		return nil, 0, fmt.Errorf("failed to list notifications: %w", err)
	}
	return notifications, total, nil
}

func (r *notificationRepository) GetForUser(ctx context.Context, id, userID uuid.UUID, role model.UserRole) (*model.Notification, error) {
	query := `
		SELECT ` + notificationColumns + `
		FROM notifications
		WHERE id = $1 AND user_id = $2 AND user_role = $3
	`
	var n model.Notification
	if err := r.db.GetContext(ctx, &n, query, id, userID, role); err != nil {
		return nil, fmt.Errorf("failed to get notification: %w", err)
	}
	return &n, nil
}

func (r *notificationRepository) MarkRead(ctx context.Context, id uuid.UUID, readAt time.Time) error {
	query := `UPDATE notifications SET is_read = true, read_at = $1 WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, readAt, id)
	if err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("notification not found")
	}
	return nil
}

func (r *notificationRepository) CountUnread(ctx context.Context, userID uuid.UUID, role model.UserRole) (int, error) {
	query := `
		SELECT COUNT(*) FROM notifications
		WHERE user_id = $1 AND user_role = $2 AND is_read = false
	`
	var count int
	if err := r.db.GetContext(ctx, &count, query, userID, role); err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}
	return count, nil
}
