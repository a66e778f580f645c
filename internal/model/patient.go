package model

import (
	"time"

	"github.com/google/uuid"
)

// PatientCategory is the care category a patient is admitted under. Each
// category carries a fixed base daily charge.
type PatientCategory string

const (
	CategoryFullBedRest         PatientCategory = "FULL_BED_REST"
	CategoryPartialBedRest      PatientCategory = "PARTIAL_BED_REST"
	CategoryWheelchairDependent PatientCategory = "WHEELCHAIR_DEPENDENT"
	CategoryMentalPatient       PatientCategory = "MENTAL_PATIENT"
	CategoryCriticalPatient     PatientCategory = "CRITICAL_PATIENT"
)

var patientCategories = map[PatientCategory]struct {
	displayName string
	baseCharge  float64
}{
	CategoryFullBedRest:         {"Full Bed Rest Patient", 3000},
	CategoryPartialBedRest:      {"Partial Bed Rest Patient", 2500},
	CategoryWheelchairDependent: {"Wheelchair Dependent Patient", 2800},
	CategoryMentalPatient:       {"Mental Patient", 3500},
	CategoryCriticalPatient:     {"Critical Patient", 4500},
}

func (c PatientCategory) Valid() bool {
	_, ok := patientCategories[c]
	return ok
}

func (c PatientCategory) DisplayName() string {
	return patientCategories[c].displayName
}

func (c PatientCategory) BaseCharge() float64 {
	return patientCategories[c].baseCharge
}

type Patient struct {
	Base
	FullName             string          `json:"full_name" db:"full_name"`
	MobileNo             string          `json:"mobile_no" db:"mobile_no"`
	Email                string          `json:"email" db:"email"`
	HospitalReportImage  string          `json:"hospital_report_image" db:"hospital_report_image"`
	Age                  int             `json:"age" db:"age"`
	Category             PatientCategory `json:"category" db:"category"`
	FamilyMobileNo       string          `json:"family_mobile_no" db:"family_mobile_no"`
	FamilyEmail          string          `json:"family_email" db:"family_email"`
	Role                 UserRole        `json:"role" db:"role"`
	IsActive             bool            `json:"is_active" db:"is_active"`
}

type PatientRegistrationRequest struct {
	FullName       string          `form:"full_name" binding:"required"`
	MobileNo       string          `form:"mobile_no" binding:"required"`
	Email          string          `form:"email" binding:"required,email"`
	Age            int             `form:"age" binding:"required,gt=0"`
	Category       PatientCategory `form:"category" binding:"required,patientcategory"`
	FamilyMobileNo string          `form:"family_mobile_no" binding:"required"`
	FamilyEmail    string          `form:"family_email" binding:"required,email"`
}

type PatientDTO struct {
	ID                  uuid.UUID       `json:"id"`
	FullName            string          `json:"full_name"`
	MobileNo            string          `json:"mobile_no"`
	Email               string          `json:"email"`
	HospitalReportImage string          `json:"hospital_report_image"`
	Age                 int             `json:"age"`
	Category            PatientCategory `json:"category"`
	CategoryDisplayName string          `json:"category_display_name"`
	BaseCharge          float64         `json:"base_charge"`
	FamilyMobileNo      string          `json:"family_mobile_no"`
	FamilyEmail         string          `json:"family_email"`
	IsActive            bool            `json:"is_active"`
	CreatedAt           time.Time       `json:"created_at"`
}

func (p *Patient) ToDTO() *PatientDTO {
	return &PatientDTO{
		ID:                  p.ID,
		FullName:            p.FullName,
		MobileNo:            p.MobileNo,
		Email:               p.Email,
		HospitalReportImage: p.HospitalReportImage,
		Age:                 p.Age,
		Category:            p.Category,
		CategoryDisplayName: p.Category.DisplayName(),
		BaseCharge:          p.Category.BaseCharge(),
		FamilyMobileNo:      p.FamilyMobileNo,
		FamilyEmail:         p.FamilyEmail,
		IsActive:            p.IsActive,
		CreatedAt:           p.CreatedAt,
	}
}
