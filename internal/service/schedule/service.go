package schedule

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/caremate/caremate-api/internal/model"
	"github.com/caremate/caremate-api/internal/repository"
	apperrors "github.com/caremate/caremate-api/pkg/errors"
	"github.com/caremate/caremate-api/pkg/logger"
)

// timeLayout is the wire format for schedule start/end times.
const timeLayout = "15:04"

type Service struct {
	repo   repository.ScheduleRepository
	logger *logger.Logger
}

func NewService(repo repository.ScheduleRepository, logger *logger.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Create adds a schedule for the nurse. At most one active schedule per
// day is allowed, and the window must be non-empty.
func (s *Service) Create(ctx context.Context, nurseID uuid.UUID, req *model.CreateScheduleRequest) (*model.AvailabilitySchedule, error) {
	start, err := time.Parse(timeLayout, req.StartTime)
	if err != nil {
		return nil, apperrors.Validation(map[string]string{"start_time": "must be in HH:MM format"})
	}
	end, err := time.Parse(timeLayout, req.EndTime)
	if err != nil {
		return nil, apperrors.Validation(map[string]string{"end_time": "must be in HH:MM format"})
	}
	if !start.Before(end) {
		return nil, apperrors.InvalidState("Start time must be before end time")
	}

	exists, err := s.repo.ExistsActiveForDay(ctx, nurseID, req.DayOfWeek)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.Conflict(fmt.Sprintf("Schedule already exists for %s", req.DayOfWeek))
	}

	schedule := &model.AvailabilitySchedule{
		NurseID:   nurseID,
		DayOfWeek: req.DayOfWeek,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		IsActive:  true,
	}
	if err := s.repo.Create(ctx, schedule); err != nil {
		return nil, err
	}

	s.logger.Info("Schedule created", "nurse_id", nurseID.String(), "day", string(req.DayOfWeek))
	return schedule, nil
}

func (s *Service) List(ctx context.Context, nurseID uuid.UUID) ([]*model.AvailabilitySchedule, error) {
	return s.repo.ListForNurse(ctx, nurseID)
}

func (s *Service) Delete(ctx context.Context, id, nurseID uuid.UUID) error {
	schedule, err := s.repo.GetForNurse(ctx, id, nurseID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperrors.NotFound("schedule")
		}
		return err
	}

	if err := s.repo.Delete(ctx, schedule.ID); err != nil {
		return err
	}

	s.logger.Info("Schedule deleted", "nurse_id", nurseID.String(), "schedule_id", id.String())
	return nil
}
