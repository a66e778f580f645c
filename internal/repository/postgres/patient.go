package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/caremate/caremate-api/pkg/errors"

	"github.com/caremate/caremate-api/internal/model"
)

func (r *patientRepository) Create(ctx context.Context, patient *model.Patient) error {
	query := `
		INSERT INTO patients (
			id, full_name, mobile_no, email, hospital_report_image,
			age, category, family_mobile_no, family_email,
			role, is_active, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	patient.ID = uuid.New()
	patient.CreatedAt = time.Now()
	patient.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		patient.ID,
		patient.FullName,
		patient.MobileNo,
		patient.Email,
		patient.HospitalReportImage,
		patient.Age,
		patient.Category,
		patient.FamilyMobileNo,
		patient.FamilyEmail,
		patient.Role,
		patient.IsActive,
		patient.CreatedAt,
		patient.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.Conflict("email or mobile number already registered")
		}
		return fmt.Errorf("failed to create patient: %w", err)
	}
	return nil
}

func (r *patientRepository) Get(ctx context.Context, id uuid.UUID) (*model.Patient, error) {
	query := `
		SELECT id, full_name, mobile_no, email, hospital_report_image,
			   age, category, family_mobile_no, family_email,
			   role, is_active, created_at, updated_at
		FROM patients
		WHERE id = $1
	`

	var patient model.Patient
	if err := r.db.GetContext(ctx, &patient, query, id); err != nil {
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}
	return &patient, nil
}

func (r *patientRepository) GetByEmail(ctx context.Context, email string) (*model.Patient, error) {
	query := `
		SELECT id, full_name, mobile_no, email, hospital_report_image,
			   age, category, family_mobile_no, family_email,
			   role, is_active, created_at, updated_at
		FROM patients
		WHERE email = $1
	`

	var patient model.Patient
	if err := r.db.GetContext(ctx, &patient, query, email); err != nil {
		return nil, fmt.Errorf("failed to get patient by email: %w", err)
	}
	return &patient, nil
}

func (r *patientRepository) GetByLogin(ctx context.Context, fullName, mobileNo, email string) (*model.Patient, error) {
	query := `
		SELECT id, full_name, mobile_no, email, hospital_report_image,
			   age, category, family_mobile_no, family_email,
			   role, is_active, created_at, updated_at
		FROM patients
		WHERE full_name = $1 AND mobile_no = $2 AND email = $3
	`

	var patient model.Patient
	if err := r.db.GetContext(ctx, &patient, query, fullName, mobileNo, email); err != nil {
		return nil, fmt.Errorf("failed to get patient by login: %w", err)
	}
	return &patient, nil
}

func (r *patientRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM patients WHERE email = $1)`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, email); err != nil {
		return false, fmt.Errorf("failed to check patient email: %w", err)
	}
	return exists, nil
}

func (r *patientRepository) ExistsByMobileNo(ctx context.Context, mobileNo string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM patients WHERE mobile_no = $1)`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, mobileNo); err != nil {
		return false, fmt.Errorf("failed to check patient mobile: %w", err)
	}
	return exists, nil
}
