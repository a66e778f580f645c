package model

import (
	"time"

	"github.com/google/uuid"
)

// BookingStatus enumerates the booking lifecycle. PENDING is the initial
// state; COMPLETED, REJECTED and CANCELLED are terminal.
type BookingStatus string

const (
	BookingPending    BookingStatus = "PENDING"
	BookingAccepted   BookingStatus = "ACCEPTED"
	BookingRejected   BookingStatus = "REJECTED"
	BookingInProgress BookingStatus = "IN_PROGRESS"
	BookingCompleted  BookingStatus = "COMPLETED"
	BookingCancelled  BookingStatus = "CANCELLED"
)

// ActiveBookingStatuses are the statuses that keep a nurse on duty.
var ActiveBookingStatuses = []BookingStatus{BookingAccepted, BookingInProgress}

type Booking struct {
	Base
	PatientID          uuid.UUID     `json:"patient_id" db:"patient_id"`
	NurseID            uuid.UUID     `json:"nurse_id" db:"nurse_id"`
	StartDate          time.Time     `json:"start_date" db:"start_date"`
	EndDate            time.Time     `json:"end_date" db:"end_date"`
	TotalAmount        float64       `json:"total_amount" db:"total_amount"`
	BaseCharge         float64       `json:"base_charge" db:"base_charge"`
	SubscriptionCharge float64       `json:"subscription_charge" db:"subscription_charge"`
	Status             BookingStatus `json:"status" db:"status"`
	PatientNotes       *string       `json:"patient_notes" db:"patient_notes"`
	NurseNotes         *string       `json:"nurse_notes" db:"nurse_notes"`
	CareReport         *string       `json:"care_report" db:"care_report"`
	AcceptedAt         *time.Time    `json:"accepted_at" db:"accepted_at"`
	RejectedAt         *time.Time    `json:"rejected_at" db:"rejected_at"`
	CompletedAt        *time.Time    `json:"completed_at" db:"completed_at"`
	RejectionReason    *string       `json:"rejection_reason" db:"rejection_reason"`
}

// BookingActionRequest carries the optional notes for accept and the
// mandatory reason for reject.
type BookingActionRequest struct {
	Notes  *string `json:"notes"`
	Reason string  `json:"reason"`
}

type CareReportRequest struct {
	CareReport string `json:"care_report" binding:"required"`
}

// BookingDTO denormalizes the patient and nurse identities for clients.
// It is scanned straight from the joined booking query.
type BookingDTO struct {
	ID                 uuid.UUID     `json:"id" db:"id"`
	PatientID          uuid.UUID     `json:"patient_id" db:"patient_id"`
	PatientName        string        `json:"patient_name" db:"patient_name"`
	PatientEmail       string        `json:"patient_email" db:"patient_email"`
	PatientMobile      string        `json:"patient_mobile" db:"patient_mobile"`
	NurseID            uuid.UUID     `json:"nurse_id" db:"nurse_id"`
	NurseName          string        `json:"nurse_name" db:"nurse_name"`
	NurseEmail         string        `json:"nurse_email" db:"nurse_email"`
	NurseMobile        string        `json:"nurse_mobile" db:"nurse_mobile"`
	StartDate          time.Time     `json:"start_date" db:"start_date"`
	EndDate            time.Time     `json:"end_date" db:"end_date"`
	TotalAmount        float64       `json:"total_amount" db:"total_amount"`
	BaseCharge         float64       `json:"base_charge" db:"base_charge"`
	SubscriptionCharge float64       `json:"subscription_charge" db:"subscription_charge"`
	Status             BookingStatus `json:"status" db:"status"`
	PatientNotes       *string       `json:"patient_notes" db:"patient_notes"`
	NurseNotes         *string       `json:"nurse_notes" db:"nurse_notes"`
	CareReport         *string       `json:"care_report" db:"care_report"`
	AcceptedAt         *time.Time    `json:"accepted_at" db:"accepted_at"`
	RejectedAt         *time.Time    `json:"rejected_at" db:"rejected_at"`
	CompletedAt        *time.Time    `json:"completed_at" db:"completed_at"`
	RejectionReason    *string       `json:"rejection_reason" db:"rejection_reason"`
	CreatedAt          time.Time     `json:"created_at" db:"created_at"`
}

// BookingStats aggregates per-nurse booking counts and rates.
type BookingStats struct {
	TotalBookings     int     `json:"total_bookings"`
	PendingBookings   int     `json:"pending_bookings"`
	AcceptedBookings  int     `json:"accepted_bookings"`
	RejectedBookings  int     `json:"rejected_bookings"`
	CompletedBookings int     `json:"completed_bookings"`
	CancelledBookings int     `json:"cancelled_bookings"`
	ActiveBookings    int     `json:"active_bookings"`
	AcceptanceRate    float64 `json:"acceptance_rate"`
	CompletionRate    float64 `json:"completion_rate"`
}
