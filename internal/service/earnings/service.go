package earnings

import (
	"context"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"

	"github.com/caremate/caremate-api/internal/model"
	"github.com/caremate/caremate-api/internal/repository"
	"github.com/caremate/caremate-api/pkg/logger"
)

const (
	cacheTTL       = 30 * time.Second
	cacheCleanup   = time.Minute
	trailingMonths = 12
)

// Service computes earnings aggregates from completed bookings. Results
// are cached per nurse for a short TTL since the dashboard polls them.
type Service struct {
	repo       repository.BookingRepository
	reviewRepo repository.ReviewRepository
	notifRepo  repository.NotificationRepository
	cache      *gocache.Cache
	logger     *logger.Logger
	now        func() time.Time
}

func NewService(
	repo repository.BookingRepository,
	reviewRepo repository.ReviewRepository,
	notifRepo repository.NotificationRepository,
	logger *logger.Logger,
) *Service {
	return &Service{
		repo:       repo,
		reviewRepo: reviewRepo,
		notifRepo:  notifRepo,
		cache:      gocache.New(cacheTTL, cacheCleanup),
		logger:     logger,
		now:        time.Now,
	}
}

// Get returns total/monthly/weekly/daily earnings. Monthly counts from
// the first of the calendar month, weekly from seven days ago, daily
// from midnight.
func (s *Service) Get(ctx context.Context, nurseID uuid.UUID) (*model.Earnings, error) {
	key := "earnings:" + nurseID.String()
	if cached, ok := s.cache.Get(key); ok {
		return cached.(*model.Earnings), nil
	}

	now := s.now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	startOfWeek := now.AddDate(0, 0, -7)

	earnings := &model.Earnings{}
	var err error

	if earnings.TotalEarnings, err = s.repo.TotalEarnings(ctx, nurseID); err != nil {
		return nil, err
	}
	if earnings.MonthlyEarnings, err = s.repo.EarningsSince(ctx, nurseID, startOfMonth); err != nil {
		return nil, err
	}
	if earnings.WeeklyEarnings, err = s.repo.EarningsSince(ctx, nurseID, startOfWeek); err != nil {
		return nil, err
	}
	if earnings.DailyEarnings, err = s.repo.EarningsSince(ctx, nurseID, startOfDay); err != nil {
		return nil, err
	}
	if earnings.TotalCompletedBookings, err = s.repo.CountByNurseAndStatus(ctx, nurseID, model.BookingCompleted); err != nil {
		return nil, err
	}
	if earnings.MonthlyCompletedBookings, err = s.repo.CountCompletedSince(ctx, nurseID, startOfMonth); err != nil {
		return nil, err
	}

	if earnings.TotalCompletedBookings > 0 {
		earnings.AverageBookingValue = roundHalfUp(
			earnings.TotalEarnings/float64(earnings.TotalCompletedBookings), 2)
	}

	s.cache.Set(key, earnings, gocache.DefaultExpiration)
	return earnings, nil
}

// Monthly returns the trailing 12 calendar months, oldest first, ending
// with the current month. Empty months report zero.
func (s *Service) Monthly(ctx context.Context, nurseID uuid.UUID) ([]model.MonthlyEarnings, error) {
	key := "monthly:" + nurseID.String()
	if cached, ok := s.cache.Get(key); ok {
		return cached.([]model.MonthlyEarnings), nil
	}

	now := s.now()
	breakdown := make([]model.MonthlyEarnings, 0, trailingMonths)

	for i := trailingMonths - 1; i >= 0; i-- {
		monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -i, 0)
		monthEnd := monthStart.AddDate(0, 1, 0).Add(-time.Second)

		amount, err := s.repo.EarningsInRange(ctx, nurseID, monthStart, monthEnd)
		if err != nil {
			return nil, err
		}
		count, err := s.repo.CountCompletedInRange(ctx, nurseID, monthStart, monthEnd)
		if err != nil {
			return nil, err
		}

		breakdown = append(breakdown, model.MonthlyEarnings{
			Month:             monthLabel(monthStart),
			Year:              monthStart.Year(),
			MonthNumber:       int(monthStart.Month()),
			Earnings:          amount,
			BookingsCompleted: count,
		})
	}

	s.cache.Set(key, breakdown, gocache.DefaultExpiration)
	return breakdown, nil
}

// Breakdown pairs the 12-month view with the highest-earning month.
// Ties keep the oldest month (strict greater-than comparison).
func (s *Service) Breakdown(ctx context.Context, nurseID uuid.UUID) (*model.EarningsBreakdown, error) {
	monthly, err := s.Monthly(ctx, nurseID)
	if err != nil {
		return nil, err
	}

	total, err := s.repo.TotalEarnings(ctx, nurseID)
	if err != nil {
		return nil, err
	}

	breakdown := &model.EarningsBreakdown{
		TotalEarnings:    total,
		MonthlyBreakdown: monthly,
	}
	for _, m := range monthly {
		if m.Earnings > breakdown.HighestMonthEarnings {
			breakdown.HighestMonthEarnings = m.Earnings
			breakdown.HighestEarningMonth = m.Month
		}
	}
	if breakdown.HighestEarningMonth == "" && len(monthly) > 0 {
		breakdown.HighestEarningMonth = monthly[0].Month
	}

	return breakdown, nil
}

// Dashboard assembles the nurse home-screen aggregate.
func (s *Service) Dashboard(ctx context.Context, nurseID uuid.UUID) (*model.NurseDashboard, error) {
	key := "dashboard:" + nurseID.String()
	if cached, ok := s.cache.Get(key); ok {
		return cached.(*model.NurseDashboard), nil
	}

	now := s.now()
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	dashboard := &model.NurseDashboard{}
	var err error

	if dashboard.TotalBookings, err = s.repo.CountByNurse(ctx, nurseID); err != nil {
		return nil, err
	}
	if dashboard.ActiveBookings, err = s.repo.CountByNurseAndStatus(ctx, nurseID, model.BookingInProgress); err != nil {
		return nil, err
	}
	if dashboard.CompletedBookings, err = s.repo.CountByNurseAndStatus(ctx, nurseID, model.BookingCompleted); err != nil {
		return nil, err
	}
	if dashboard.PendingBookings, err = s.repo.CountByNurseAndStatus(ctx, nurseID, model.BookingPending); err != nil {
		return nil, err
	}
	if dashboard.TotalEarnings, err = s.repo.TotalEarnings(ctx, nurseID); err != nil {
		return nil, err
	}
	if dashboard.MonthlyEarnings, err = s.repo.EarningsSince(ctx, nurseID, startOfMonth); err != nil {
		return nil, err
	}
	if dashboard.AverageRating, err = s.reviewRepo.AverageRating(ctx, nurseID); err != nil {
		return nil, err
	}
	if dashboard.TotalReviews, err = s.reviewRepo.CountByNurse(ctx, nurseID); err != nil {
		return nil, err
	}
	if dashboard.UnreadNotifications, err = s.notifRepo.CountUnread(ctx, nurseID, model.RoleNurse); err != nil {
		return nil, err
	}

	s.cache.Set(key, dashboard, gocache.DefaultExpiration)
	return dashboard, nil
}

// monthLabel renders e.g. "JANUARY 2026".
func monthLabel(t time.Time) string {
	return strings.ToUpper(t.Month().String()) + " " + strconv.Itoa(t.Year())
}

func roundHalfUp(v float64, places int) float64 {
	factor := math.Pow(10, float64(places))
	return math.Floor(v*factor+0.5) / factor
}
