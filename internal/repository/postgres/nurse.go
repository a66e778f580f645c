package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	apperrors "github.com/caremate/caremate-api/pkg/errors"

	"github.com/caremate/caremate-api/internal/model"
)

const nurseColumns = `
	id, full_name, mobile_no, email, password_hash,
	profile_image_1, profile_image_2, educational_qualification,
	years_of_experience, age, specializations, status,
	role, is_active, created_at, updated_at`

func (r *nurseRepository) Create(ctx context.Context, nurse *model.Nurse) error {
	query := `
		INSERT INTO nurses (
			id, full_name, mobile_no, email, password_hash,
			profile_image_1, profile_image_2, educational_qualification,
			years_of_experience, age, specializations, status,
			role, is_active, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`
	nurse.ID = uuid.New()
	nurse.CreatedAt = time.Now()
	nurse.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		nurse.ID,
		nurse.FullName,
		nurse.MobileNo,
		nurse.Email,
		nurse.PasswordHash,
		nurse.ProfileImage1,
		nurse.ProfileImage2,
		nurse.EducationalQualification,
		nurse.YearsOfExperience,
		nurse.Age,
		nurse.Specializations,
		nurse.Status,
		nurse.Role,
		nurse.IsActive,
		nurse.CreatedAt,
		nurse.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.Conflict("email or mobile number already registered")
		}
		return fmt.Errorf("failed to create nurse: %w", err)
	}
	return nil
}

func (r *nurseRepository) Get(ctx context.Context, id uuid.UUID) (*model.Nurse, error) {
	query := `SELECT` + nurseColumns + ` FROM nurses WHERE id = $1`

	var nurse model.Nurse
	if err := r.db.GetContext(ctx, &nurse, query, id); err != nil {
		return nil, fmt.Errorf("failed to get nurse: %w", err)
	}
	return &nurse, nil
}

func (r *nurseRepository) GetByEmail(ctx context.Context, email string) (*model.Nurse, error) {
	query := `SELECT` + nurseColumns + ` FROM nurses WHERE email = $1`

	var nurse model.Nurse
	if err := r.db.GetContext(ctx, &nurse, query, email); err != nil {
		return nil, fmt.Errorf("failed to get nurse by email: %w", err)
	}
	return &nurse, nil
}

func (r *nurseRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM nurses WHERE email = $1)`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, email); err != nil {
		return false, fmt.Errorf("failed to check nurse email: %w", err)
	}
	return exists, nil
}

func (r *nurseRepository) ExistsByMobileNo(ctx context.Context, mobileNo string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM nurses WHERE mobile_no = $1)`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, mobileNo); err != nil {
		return false, fmt.Errorf("failed to check nurse mobile: %w", err)
	}
	return exists, nil
}

func (r *nurseRepository) Update(ctx context.Context, nurse *model.Nurse) error {
	query := `
		UPDATE nurses
		SET educational_qualification = $1, years_of_experience = $2,
			age = $3, specializations = $4, profile_image_1 = $5,
			profile_image_2 = $6, status = $7, updated_at = $8
		WHERE id = $9
	`
	nurse.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		nurse.EducationalQualification,
		nurse.YearsOfExperience,
		nurse.Age,
		nurse.Specializations,
		nurse.ProfileImage1,
		nurse.ProfileImage2,
		nurse.Status,
		nurse.UpdatedAt,
		nurse.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update nurse: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("nurse")
	}
	return nil
}

func (r *nurseRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.NurseStatus) error {
	query := `UPDATE nurses SET status = $1, updated_at = $2 WHERE id = $3`

	result, err := r.db.ExecContext(ctx, query, status, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to update nurse status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("nurse")
	}
	return nil
}

func (r *nurseRepository) UpdateStatusTx(ctx context.Context, tx *sqlx.Tx, id uuid.UUID, status model.NurseStatus) error {
	query := `UPDATE nurses SET status = $1, updated_at = $2 WHERE id = $3`

	if _, err := tx.ExecContext(ctx, query, status, time.Now(), id); err != nil {
		return fmt.Errorf("failed to update nurse status: %w", err)
	}
	return nil
}

func (r *nurseRepository) List(ctx context.Context, p model.Pagination) ([]*model.Nurse, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM nurses`); err != nil {
		return nil, 0, fmt.Errorf("failed to count nurses: %w", err)
	}

	query := `SELECT` + nurseColumns + `
		FROM nurses
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`

	nurses := []*model.Nurse{}
	if err := r.db.SelectContext(ctx, &nurses, query, p.Size, p.Offset()); err != nil {
		return nil, 0, fmt.Errorf("failed to list nurses: %w", err)
	}
	return nurses, total, nil
}
