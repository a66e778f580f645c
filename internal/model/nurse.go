package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// NurseStatus tracks whether a nurse can take new bookings.
type NurseStatus string

const (
	NurseAvailable NurseStatus = "AVAILABLE"
	NurseOnDuty    NurseStatus = "ON_DUTY"
	NurseOffDuty   NurseStatus = "OFF_DUTY"
)

func (s NurseStatus) Valid() bool {
	switch s {
	case NurseAvailable, NurseOnDuty, NurseOffDuty:
		return true
	}
	return false
}

type Nurse struct {
	Base
	FullName                 string         `json:"full_name" db:"full_name"`
	MobileNo                 string         `json:"mobile_no" db:"mobile_no"`
	Email                    string         `json:"email" db:"email"`
	PasswordHash             string         `json:"-" db:"password_hash"`
	ProfileImage1            string         `json:"profile_image_1" db:"profile_image_1"`
	ProfileImage2            string         `json:"profile_image_2" db:"profile_image_2"`
	EducationalQualification string         `json:"educational_qualification" db:"educational_qualification"`
	YearsOfExperience        int            `json:"years_of_experience" db:"years_of_experience"`
	Age                      int            `json:"age" db:"age"`
	Specializations          pq.StringArray `json:"specializations" db:"specializations"`
	Status                   NurseStatus    `json:"status" db:"status"`
	Role                     UserRole       `json:"role" db:"role"`
	IsActive                 bool           `json:"is_active" db:"is_active"`
}

type NurseRegistrationRequest struct {
	FullName                 string   `form:"full_name" binding:"required"`
	MobileNo                 string   `form:"mobile_no" binding:"required"`
	Email                    string   `form:"email" binding:"required,email"`
	Password                 string   `form:"password" binding:"required,min=8"`
	EducationalQualification string   `form:"educational_qualification" binding:"required"`
	YearsOfExperience        int      `form:"years_of_experience" binding:"required,gte=0"`
	Age                      int      `form:"age" binding:"required,gte=18"`
	Specializations          []string `form:"specializations" binding:"required,min=1,dive,patientcategory"`
}

// NurseUpdateRequest applies partial profile updates; nil fields are
// left untouched.
type NurseUpdateRequest struct {
	EducationalQualification *string  `json:"educational_qualification"`
	YearsOfExperience        *int     `json:"years_of_experience" binding:"omitempty,gte=0"`
	Age                      *int     `json:"age" binding:"omitempty,gte=18"`
	Specializations          []string `json:"specializations" binding:"omitempty,min=1,dive,patientcategory"`
}

type NurseStatusUpdateRequest struct {
	Status NurseStatus `json:"status" binding:"required,nursestatus"`
}

type NurseDTO struct {
	ID                       uuid.UUID   `json:"id"`
	FullName                 string      `json:"full_name"`
	MobileNo                 string      `json:"mobile_no"`
	Email                    string      `json:"email"`
	ProfileImage1            string      `json:"profile_image_1"`
	ProfileImage2            string      `json:"profile_image_2"`
	EducationalQualification string      `json:"educational_qualification"`
	YearsOfExperience        int         `json:"years_of_experience"`
	Age                      int         `json:"age"`
	Specializations          []string    `json:"specializations"`
	Status                   NurseStatus `json:"status"`
	IsActive                 bool        `json:"is_active"`
	Rating                   float64     `json:"rating"`
	TotalReviews             int         `json:"total_reviews"`
	CreatedAt                time.Time   `json:"created_at"`
}

func (n *Nurse) ToDTO() *NurseDTO {
	return &NurseDTO{
		ID:                       n.ID,
		FullName:                 n.FullName,
		MobileNo:                 n.MobileNo,
		Email:                    n.Email,
		ProfileImage1:            n.ProfileImage1,
		ProfileImage2:            n.ProfileImage2,
		EducationalQualification: n.EducationalQualification,
		YearsOfExperience:        n.YearsOfExperience,
		Age:                      n.Age,
		Specializations:          n.Specializations,
		Status:                   n.Status,
		IsActive:                 n.IsActive,
		CreatedAt:                n.CreatedAt,
	}
}
