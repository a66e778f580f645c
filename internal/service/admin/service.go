package admin

import (
	"context"
	"database/sql"
	"errors"

	"github.com/caremate/caremate-api/internal/config"
	"github.com/caremate/caremate-api/internal/model"
	"github.com/caremate/caremate-api/internal/repository"
	"github.com/caremate/caremate-api/pkg/auth"
	apperrors "github.com/caremate/caremate-api/pkg/errors"
	"github.com/caremate/caremate-api/pkg/logger"
	"github.com/caremate/caremate-api/pkg/security"
)

type Service struct {
	repo   repository.AdminRepository
	jwtSvc auth.JWTService
	hasher security.PasswordHasher
	logger *logger.Logger
}

func NewService(
	repo repository.AdminRepository,
	jwtSvc auth.JWTService,
	hasher security.PasswordHasher,
	logger *logger.Logger,
) *Service {
	return &Service{
		repo:   repo,
		jwtSvc: jwtSvc,
		hasher: hasher,
		logger: logger,
	}
}

// EnsureAdmins provisions the configured admin accounts at startup.
// Existing accounts are left untouched, so the call is idempotent.
func (s *Service) EnsureAdmins(ctx context.Context, seeds []config.AdminSeed) error {
	for _, seed := range seeds {
		exists, err := s.repo.ExistsByEmail(ctx, seed.Email)
		if err != nil {
			return err
		}
		if exists {
			continue
		}

		hash, err := s.hasher.Hash(seed.Password)
		if err != nil {
			return err
		}

		admin := &model.Admin{
			Email:        seed.Email,
			PasswordHash: hash,
			Role:         model.RoleAdmin,
			IsActive:     true,
		}
		if err := s.repo.Create(ctx, admin); err != nil {
			return err
		}
		s.logger.Info("Admin provisioned", "email", seed.Email)
	}
	return nil
}

func (s *Service) Login(ctx context.Context, req *model.AdminLoginRequest) (*model.AuthResponse, error) {
	admin, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.Unauthorized("Invalid email or password")
		}
		return nil, err
	}

	if !admin.IsActive {
		return nil, apperrors.Unauthorized("Admin account is deactivated")
	}

	if err := s.hasher.Compare(admin.PasswordHash, req.Password); err != nil {
		return nil, apperrors.Unauthorized("Invalid email or password")
	}

	token, err := s.jwtSvc.GenerateToken(admin.Email, model.RoleAdmin)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Admin logged in", "email", admin.Email)

	return &model.AuthResponse{
		Token:   token,
		Role:    model.RoleAdmin,
		Email:   admin.Email,
		Message: "Admin login successful",
	}, nil
}
