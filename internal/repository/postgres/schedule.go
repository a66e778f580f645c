package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/caremate/caremate-api/internal/model"
)

func (r *scheduleRepository) Create(ctx context.Context, schedule *model.AvailabilitySchedule) error {
	query := `
		INSERT INTO availability_schedules (
			id, nurse_id, day_of_week, start_time, end_time,
			is_active, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	schedule.ID = uuid.New()
	schedule.CreatedAt = time.Now()
	schedule.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		schedule.ID,
		schedule.NurseID,
		schedule.DayOfWeek,
		schedule.StartTime,
		schedule.EndTime,
		schedule.IsActive,
		schedule.CreatedAt,
		schedule.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create schedule: %w", err)
	}
	return nil
}

func (r *scheduleRepository) ExistsActiveForDay(ctx context.Context, nurseID uuid.UUID, day model.DayOfWeek) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM availability_schedules
			WHERE nurse_id = $1 AND day_of_week = $2 AND is_active = true
		)
	`
	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, nurseID, day); err != nil {
		return false, fmt.Errorf("failed to check schedule: %w", err)
	}
	return exists, nil
}

func (r *scheduleRepository) ListForNurse(ctx context.Context, nurseID uuid.UUID) ([]*model.AvailabilitySchedule, error) {
	query := `
		SELECT id, nurse_id, day_of_week, start_time, end_time,
			   is_active, created_at, updated_at
		FROM availability_schedules
		WHERE nurse_id = $1
		ORDER BY created_at ASC
	`
	schedules := []*model.AvailabilitySchedule{}
	if err := r.db.SelectContext(ctx, &schedules, query, nurseID); err != nil {
		return nil, fmt.Errorf("failed to list schedules: %w", err)
	}
	return schedules, nil
}

func (r *scheduleRepository) GetForNurse(ctx context.Context, id, nurseID uuid.UUID) (*model.AvailabilitySchedule, error) {
	query := `
		SELECT id, nurse_id, day_of_week, start_time, end_time,
			   is_active, created_at, updated_at
		FROM availability_schedules
		WHERE id = $1 AND nurse_id = $2
	`
	var schedule model.AvailabilitySchedule
	if err := r.db.GetContext(ctx, &schedule, query, id, nurseID); err != nil {
		return nil, fmt.Errorf("failed to get schedule: %w", err)
	}
	return &schedule, nil
}

func (r *scheduleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM availability_schedules WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete schedule: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("schedule not found")
	}
	return nil
}
