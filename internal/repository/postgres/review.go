package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/caremate/caremate-api/internal/model"
	apperrors "github.com/caremate/caremate-api/pkg/errors"
)

const reviewDTOQuery = `
	SELECT r.id, r.booking_id, r.patient_id, p.full_name AS patient_name,
		   r.nurse_id, n.full_name AS nurse_name, r.rating, r.comment,
		   r.nurse_reply, r.replied_at, r.created_at
	FROM reviews r
	JOIN patients p ON p.id = r.patient_id
	JOIN nurses n ON n.id = r.nurse_id
`

func (r *reviewRepository) Create(ctx context.Context, review *model.Review) error {
	query := `
		INSERT INTO reviews (
			id, booking_id, patient_id, nurse_id, rating, comment,
			nurse_reply, replied_at, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	review.ID = uuid.New()
	review.CreatedAt = time.Now()
	review.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		review.ID,
		review.BookingID,
		review.PatientID,
		review.NurseID,
		review.Rating,
		review.Comment,
		review.NurseReply,
		review.RepliedAt,
		review.CreatedAt,
		review.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.Conflict("review already exists for this booking")
		}
		return fmt.Errorf("failed to create review: %w", err)
	}
	return nil
}

func (r *reviewRepository) GetForNurse(ctx context.Context, id, nurseID uuid.UUID) (*model.Review, error) {
	query := `
		SELECT id, booking_id, patient_id, nurse_id, rating, comment,
			   nurse_reply, replied_at, created_at, updated_at
		FROM reviews
		WHERE id = $1 AND nurse_id = $2
	`
	var review model.Review
	if err := r.db.GetContext(ctx, &review, query, id, nurseID); err != nil {
		return nil, fmt.Errorf("failed to get review: %w", err)
	}
	return &review, nil
}

func (r *reviewRepository) UpdateReply(ctx context.Context, id uuid.UUID, reply string, repliedAt time.Time) error {
	query := `
		UPDATE reviews
		SET nurse_reply = $1, replied_at = $2, updated_at = $3
		WHERE id = $4
	`
	result, err := r.db.ExecContext(ctx, query, reply, repliedAt, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to update review reply: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("review not found")
	}
	return nil
}

func (r *reviewRepository) ListForNurse(ctx context.Context, nurseID uuid.UUID, p model.Pagination) ([]*model.ReviewDTO, int, error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM reviews WHERE nurse_id = $1`
	if err := r.db.GetContext(ctx, &total, countQuery, nurseID); err != nil {
		return nil, 0, fmt.Errorf("failed to count reviews: %w", err)
	}

	query := reviewDTOQuery + `
		WHERE r.nurse_id = $1
		ORDER BY r.created_at DESC
		LIMIT $2 OFFSET $3
	`
	reviews := []*model.ReviewDTO{}
	if err := r.db.SelectContext(ctx, &reviews, query, nurseID, p.Size, p.Offset()); err != nil {
		return nil, 0, fmt.Errorf("failed to list reviews: %w", err)
	}
	return reviews, total, nil
}

func (r *reviewRepository) AverageRating(ctx context.Context, nurseID uuid.UUID) (float64, error) {
	query := `SELECT COALESCE(AVG(rating), 0) FROM reviews WHERE nurse_id = $1`
	var avg float64
	if err := r.db.GetContext(ctx, &avg, query, nurseID); err != nil {
		return 0, fmt.Errorf("failed to get average rating: %w", err)
	}
	return avg, nil
}

func (r *reviewRepository) CountByNurse(ctx context.Context, nurseID uuid.UUID) (int, error) {
	query := `SELECT COUNT(*) FROM reviews WHERE nurse_id = $1`
	var count int
	if err := r.db.GetContext(ctx, &count, query, nurseID); err != nil {
		return 0, fmt.Errorf("failed to count reviews: %w", err)
	}
	return count, nil
}

func (r *reviewRepository) CountByNurseAndRating(ctx context.Context, nurseID uuid.UUID, rating int) (int, error) {
	query := `SELECT COUNT(*) FROM reviews WHERE nurse_id = $1 AND rating = $2`
	var count int
	if err := r.db.GetContext(ctx, &count, query, nurseID, rating); err != nil {
		return 0, fmt.Errorf("failed to count reviews by rating: %w", err)
	}
	return count, nil
}
