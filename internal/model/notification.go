package model

import (
	"time"

	"github.com/google/uuid"
)

type NotificationType string

const (
	NotificationBookingRequest   NotificationType = "BOOKING_REQUEST"
	NotificationBookingAccepted  NotificationType = "BOOKING_ACCEPTED"
	NotificationBookingRejected  NotificationType = "BOOKING_REJECTED"
	NotificationBookingCompleted NotificationType = "BOOKING_COMPLETED"
	NotificationReviewReceived   NotificationType = "REVIEW_RECEIVED"
	NotificationGeneral          NotificationType = "GENERAL"
)

// Notification is an in-app message for one (user, role) pair, read by
// the recipient through a polling query.
type Notification struct {
	ID              uuid.UUID        `json:"id" db:"id"`
	UserID          uuid.UUID        `json:"user_id" db:"user_id"`
	UserRole        UserRole         `json:"user_role" db:"user_role"`
	Type            NotificationType `json:"type" db:"type"`
	Title           string           `json:"title" db:"title"`
	Message         string           `json:"message" db:"message"`
	RelatedEntityID *uuid.UUID       `json:"related_entity_id" db:"related_entity_id"`
	IsRead          bool             `json:"is_read" db:"is_read"`
	ReadAt          *time.Time       `json:"read_at" db:"read_at"`
	CreatedAt       time.Time        `json:"created_at" db:"created_at"`
}

// NotificationEvent is the payload published to the message broker when
// a notification row is created.
type NotificationEvent struct {
	NotificationID uuid.UUID        `json:"notification_id"`
	UserID         uuid.UUID        `json:"user_id"`
	UserRole       UserRole         `json:"user_role"`
	Type           NotificationType `json:"type"`
	Title          string           `json:"title"`
	CreatedAt      time.Time        `json:"created_at"`
}
