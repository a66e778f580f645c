package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/caremate/caremate-api/internal/model"
)

const bookingColumns = `
	id, patient_id, nurse_id, start_date, end_date,
	total_amount, base_charge, subscription_charge, status,
	patient_notes, nurse_notes, care_report,
	accepted_at, rejected_at, completed_at, rejection_reason,
	created_at, updated_at`

const bookingDTOQuery = `
	SELECT b.id, b.patient_id, p.full_name AS patient_name,
		   p.email AS patient_email, p.mobile_no AS patient_mobile,
		   b.nurse_id, n.full_name AS nurse_name,
		   n.email AS nurse_email, n.mobile_no AS nurse_mobile,
		   b.start_date, b.end_date, b.total_amount, b.base_charge,
		   b.subscription_charge, b.status, b.patient_notes, b.nurse_notes,
		   b.care_report, b.accepted_at, b.rejected_at, b.completed_at,
		   b.rejection_reason, b.created_at
	FROM bookings b
	JOIN patients p ON p.id = b.patient_id
	JOIN nurses n ON n.id = b.nurse_id`

func (r *bookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	query := `
		INSERT INTO bookings (` + bookingColumns + `
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
	`
	booking.ID = uuid.New()
	booking.CreatedAt = time.Now()
	booking.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		booking.ID,
		booking.PatientID,
		booking.NurseID,
		booking.StartDate,
		booking.EndDate,
		booking.TotalAmount,
		booking.BaseCharge,
		booking.SubscriptionCharge,
		booking.Status,
		booking.PatientNotes,
		booking.NurseNotes,
		booking.CareReport,
		booking.AcceptedAt,
		booking.RejectedAt,
		booking.CompletedAt,
		booking.RejectionReason,
		booking.CreatedAt,
		booking.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}
	return nil
}

func (r *bookingRepository) GetForNurse(ctx context.Context, id, nurseID uuid.UUID) (*model.Booking, error) {
	query := `SELECT` + bookingColumns + ` FROM bookings WHERE id = $1 AND nurse_id = $2`

	var booking model.Booking
	if err := r.db.GetContext(ctx, &booking, query, id, nurseID); err != nil {
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	return &booking, nil
}

// GetForUpdate locks the booking row for the duration of the enclosing
// transaction. The lookup is scoped to the owning nurse so a foreign
// booking id reads the same as a missing one.
func (r *bookingRepository) GetForUpdate(ctx context.Context, tx *sqlx.Tx, id, nurseID uuid.UUID) (*model.Booking, error) {
	query := `SELECT` + bookingColumns + ` FROM bookings WHERE id = $1 AND nurse_id = $2 FOR UPDATE`

	var booking model.Booking
	if err := tx.GetContext(ctx, &booking, query, id, nurseID); err != nil {
		return nil, fmt.Errorf("failed to lock booking: %w", err)
	}
	return &booking, nil
}

func (r *bookingRepository) UpdateTx(ctx context.Context, tx *sqlx.Tx, booking *model.Booking) error {
	query := `
		UPDATE bookings
		SET status = $1, nurse_notes = $2, care_report = $3,
			accepted_at = $4, rejected_at = $5, completed_at = $6,
			rejection_reason = $7, updated_at = $8
		WHERE id = $9
	`
	booking.UpdatedAt = time.Now()

	result, err := tx.ExecContext(ctx, query,
		booking.Status,
		booking.NurseNotes,
		booking.CareReport,
		booking.AcceptedAt,
		booking.RejectedAt,
		booking.CompletedAt,
		booking.RejectionReason,
		booking.UpdatedAt,
		booking.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update booking: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("booking not found")
	}
	return nil
}

func (r *bookingRepository) GetDTOForNurse(ctx context.Context, id, nurseID uuid.UUID) (*model.BookingDTO, error) {
	query := bookingDTOQuery + ` WHERE b.id = $1 AND b.nurse_id = $2`

	var dto model.BookingDTO
	if err := r.db.GetContext(ctx, &dto, query, id, nurseID); err != nil {
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	return &dto, nil
}

func (r *bookingRepository) ListForNurse(ctx context.Context, nurseID uuid.UUID, statuses []model.BookingStatus, p model.Pagination) ([]*model.BookingDTO, int, error) {
	countQuery := `SELECT COUNT(*) FROM bookings WHERE nurse_id = $1`
	query := bookingDTOQuery + ` WHERE b.nurse_id = $1`
	args := []interface{}{nurseID}

	if len(statuses) > 0 {
		countQuery += ` AND status = ANY($2)`
		query += ` AND b.status = ANY($2)`
		args = append(args, statusArray(statuses))
	}

	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to count bookings: %w", err)
	}

	query += fmt.Sprintf(" ORDER BY b.created_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, p.Size, p.Offset())

	bookings := []*model.BookingDTO{}
	if err := r.db.SelectContext(ctx, &bookings, query, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to list bookings: %w", err)
	}
	return bookings, total, nil
}

func statusArray(statuses []model.BookingStatus) pq.StringArray {
	arr := make(pq.StringArray, len(statuses))
	for i, s := range statuses {
		arr[i] = string(s)
	}
	return arr
}

func (r *bookingRepository) CountByNurse(ctx context.Context, nurseID uuid.UUID) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM bookings WHERE nurse_id = $1`, nurseID)
	if err != nil {
		return 0, fmt.Errorf("failed to count bookings: %w", err)
	}
	return count, nil
}

func (r *bookingRepository) CountByNurseAndStatus(ctx context.Context, nurseID uuid.UUID, status model.BookingStatus) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM bookings WHERE nurse_id = $1 AND status = $2`, nurseID, status)
	if err != nil {
		return 0, fmt.Errorf("failed to count bookings by status: %w", err)
	}
	return count, nil
}

// CountActiveTx counts the nurse's ACCEPTED/IN_PROGRESS bookings inside
// the transition transaction, so the derived nurse status observes the
// row just written.
func (r *bookingRepository) CountActiveTx(ctx context.Context, tx *sqlx.Tx, nurseID uuid.UUID) (int, error) {
	var count int
	err := tx.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM bookings WHERE nurse_id = $1 AND status IN ('ACCEPTED', 'IN_PROGRESS')`, nurseID)
	if err != nil {
		return 0, fmt.Errorf("failed to count active bookings: %w", err)
	}
	return count, nil
}

func (r *bookingRepository) TotalEarnings(ctx context.Context, nurseID uuid.UUID) (float64, error) {
	var total float64
	err := r.db.GetContext(ctx, &total,
		`SELECT COALESCE(SUM(total_amount), 0) FROM bookings WHERE nurse_id = $1 AND status = 'COMPLETED'`,
		nurseID)
	if err != nil {
		return 0, fmt.Errorf("failed to sum earnings: %w", err)
	}
	return total, nil
}

func (r *bookingRepository) EarningsSince(ctx context.Context, nurseID uuid.UUID, since time.Time) (float64, error) {
	var total float64
	err := r.db.GetContext(ctx, &total,
		`SELECT COALESCE(SUM(total_amount), 0) FROM bookings
		 WHERE nurse_id = $1 AND status = 'COMPLETED' AND completed_at >= $2`,
		nurseID, since)
	if err != nil {
		return 0, fmt.Errorf("failed to sum earnings since: %w", err)
	}
	return total, nil
}

func (r *bookingRepository) EarningsInRange(ctx context.Context, nurseID uuid.UUID, start, end time.Time) (float64, error) {
	var total float64
	err := r.db.GetContext(ctx, &total,
		`SELECT COALESCE(SUM(total_amount), 0) FROM bookings
		 WHERE nurse_id = $1 AND status = 'COMPLETED' AND completed_at BETWEEN $2 AND $3`,
		nurseID, start, end)
	if err != nil {
		return 0, fmt.Errorf("failed to sum earnings in range: %w", err)
	}
	return total, nil
}

func (r *bookingRepository) CountCompletedSince(ctx context.Context, nurseID uuid.UUID, since time.Time) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM bookings
		 WHERE nurse_id = $1 AND status = 'COMPLETED' AND completed_at >= $2`,
		nurseID, since)
	if err != nil {
		return 0, fmt.Errorf("failed to count completed since: %w", err)
	}
	return count, nil
}

func (r *bookingRepository) CountCompletedInRange(ctx context.Context, nurseID uuid.UUID, start, end time.Time) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM bookings
		 WHERE nurse_id = $1 AND status = 'COMPLETED' AND completed_at BETWEEN $2 AND $3`,
		nurseID, start, end)
	if err != nil {
		return 0, fmt.Errorf("failed to count completed in range: %w", err)
	}
	return count, nil
}
