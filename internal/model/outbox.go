package model

import (
	"time"

	"github.com/google/uuid"
)

type OutboxStatus string

const (
	OutboxStatusPending   OutboxStatus = "pending"
	OutboxStatusProcessed OutboxStatus = "processed"
	OutboxStatusFailed    OutboxStatus = "failed"
)

// EmailMessage is a rendered email enqueued inside the transaction that
// triggered it. Delivery happens out-of-band in the dispatch worker;
// failures never reach the triggering operation.
type EmailMessage struct {
	ID          uuid.UUID    `json:"id" db:"id"`
	Recipient   string       `json:"recipient" db:"recipient"`
	Subject     string       `json:"subject" db:"subject"`
	Body        string       `json:"body" db:"body"`
	Status      OutboxStatus `json:"status" db:"status"`
	Attempts    int          `json:"attempts" db:"attempts"`
	LastError   *string      `json:"last_error" db:"last_error"`
	ProcessedAt *time.Time   `json:"processed_at" db:"processed_at"`
	CreatedAt   time.Time    `json:"created_at" db:"created_at"`
}
