package review

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/caremate/caremate-api/internal/model"
	"github.com/caremate/caremate-api/internal/repository"
	apperrors "github.com/caremate/caremate-api/pkg/errors"
	"github.com/caremate/caremate-api/pkg/logger"
)

const defaultPageSize = 10

type Service struct {
	repo   repository.ReviewRepository
	logger *logger.Logger
}

func NewService(repo repository.ReviewRepository, logger *logger.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (s *Service) List(ctx context.Context, nurseID uuid.UUID, p model.Pagination) (*model.PageResponse, error) {
	p = p.Normalize(defaultPageSize)
	reviews, total, err := s.repo.ListForNurse(ctx, nurseID, p)
	if err != nil {
		return nil, err
	}
	return model.NewPageResponse(reviews, p, total), nil
}

func (s *Service) Stats(ctx context.Context, nurseID uuid.UUID) (*model.ReviewStats, error) {
	stats := &model.ReviewStats{}

	var err error
	if stats.AverageRating, err = s.repo.AverageRating(ctx, nurseID); err != nil {
		return nil, err
	}
	if stats.TotalReviews, err = s.repo.CountByNurse(ctx, nurseID); err != nil {
		return nil, err
	}

	counts := []struct {
		rating int
		dst    *int
	}{
		{5, &stats.FiveStarCount},
		{4, &stats.FourStarCount},
		{3, &stats.ThreeStarCount},
		{2, &stats.TwoStarCount},
		{1, &stats.OneStarCount},
	}
	for _, c := range counts {
		if *c.dst, err = s.repo.CountByNurseAndRating(ctx, nurseID, c.rating); err != nil {
			return nil, err
		}
	}

	return stats, nil
}

// Reply sets the nurse's reply on a review. A second call overwrites
// the first and moves repliedAt forward.
func (s *Service) Reply(ctx context.Context, nurseID, reviewID uuid.UUID, reply string) (*model.Review, error) {
	review, err := s.repo.GetForNurse(ctx, reviewID, nurseID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("review")
		}
		return nil, err
	}

	now := time.Now()
	if err := s.repo.UpdateReply(ctx, review.ID, reply, now); err != nil {
		return nil, err
	}
	review.NurseReply = &reply
	review.RepliedAt = &now

	s.logger.Info("Review reply submitted", "review_id", reviewID.String(), "nurse_id", nurseID.String())
	return review, nil
}
