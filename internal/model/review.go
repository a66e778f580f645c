package model

import (
	"time"

	"github.com/google/uuid"
)

// Review is patient feedback for one completed booking; at most one per
// booking. The nurse may append one reply, overwritable.
type Review struct {
	Base
	BookingID  uuid.UUID  `json:"booking_id" db:"booking_id"`
	PatientID  uuid.UUID  `json:"patient_id" db:"patient_id"`
	NurseID    uuid.UUID  `json:"nurse_id" db:"nurse_id"`
	Rating     int        `json:"rating" db:"rating"`
	Comment    *string    `json:"comment" db:"comment"`
	NurseReply *string    `json:"nurse_reply" db:"nurse_reply"`
	RepliedAt  *time.Time `json:"replied_at" db:"replied_at"`
}

type ReviewReplyRequest struct {
	Reply string `json:"reply" binding:"required,max=1000"`
}

type ReviewDTO struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	BookingID   uuid.UUID  `json:"booking_id" db:"booking_id"`
	PatientID   uuid.UUID  `json:"patient_id" db:"patient_id"`
	PatientName string     `json:"patient_name" db:"patient_name"`
	NurseID     uuid.UUID  `json:"nurse_id" db:"nurse_id"`
	NurseName   string     `json:"nurse_name" db:"nurse_name"`
	Rating      int        `json:"rating" db:"rating"`
	Comment     *string    `json:"comment" db:"comment"`
	NurseReply  *string    `json:"nurse_reply" db:"nurse_reply"`
	RepliedAt   *time.Time `json:"replied_at" db:"replied_at"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
}

// ReviewStats summarizes a nurse's ratings.
type ReviewStats struct {
	AverageRating  float64 `json:"average_rating"`
	TotalReviews   int     `json:"total_reviews"`
	FiveStarCount  int     `json:"five_star_count"`
	FourStarCount  int     `json:"four_star_count"`
	ThreeStarCount int     `json:"three_star_count"`
	TwoStarCount   int     `json:"two_star_count"`
	OneStarCount   int     `json:"one_star_count"`
}
