package admin

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/caremate/caremate-api/internal/config"
	"github.com/caremate/caremate-api/internal/model"
	"github.com/caremate/caremate-api/internal/repository/mocks"
	"github.com/caremate/caremate-api/pkg/auth"
	apperrors "github.com/caremate/caremate-api/pkg/errors"
	"github.com/caremate/caremate-api/pkg/logger"
	"github.com/caremate/caremate-api/pkg/security"
)

func newService(repo *mocks.AdminRepository) (*Service, security.PasswordHasher) {
	hasher := security.NewBcryptHasher(bcrypt.MinCost)
	jwtSvc := auth.NewJWTService("test-secret", time.Hour)
	return NewService(repo, jwtSvc, hasher, logger.NewLogger(nil)), hasher
}

func TestEnsureAdmins(t *testing.T) {
	seeds := []config.AdminSeed{
		{Email: "ops@caremate.com", Password: "super-secret-1"},
		{Email: "support@caremate.com", Password: "super-secret-2"},
	}

	t.Run("provisions missing accounts", func(t *testing.T) {
		repo := new(mocks.AdminRepository)
		svc, hasher := newService(repo)

		repo.On("ExistsByEmail", mock.Anything, "ops@caremate.com").Return(false, nil)
		repo.On("ExistsByEmail", mock.Anything, "support@caremate.com").Return(false, nil)
		repo.On("Create", mock.Anything, mock.Anything).Return(nil)

		err := svc.EnsureAdmins(context.Background(), seeds)

		require.NoError(t, err)
		repo.AssertNumberOfCalls(t, "Create", 2)

		created := repo.Calls[1].Arguments.Get(1).(*model.Admin)
		assert.Equal(t, "ops@caremate.com", created.Email)
		assert.Equal(t, model.RoleAdmin, created.Role)
		assert.True(t, created.IsActive)
		assert.NoError(t, hasher.Compare(created.PasswordHash, "super-secret-1"))
	})

	t.Run("skips existing accounts", func(t *testing.T) {
		repo := new(mocks.AdminRepository)
		svc, _ := newService(repo)

		repo.On("ExistsByEmail", mock.Anything, mock.Anything).Return(true, nil)

		err := svc.EnsureAdmins(context.Background(), seeds)

		require.NoError(t, err)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestLogin(t *testing.T) {
	hasher := security.NewBcryptHasher(bcrypt.MinCost)
	hash, err := hasher.Hash("super-secret-1")
	require.NoError(t, err)

	admin := &model.Admin{
		Email:        "ops@caremate.com",
		PasswordHash: hash,
		Role:         model.RoleAdmin,
		IsActive:     true,
	}

	t.Run("returns token for valid credentials", func(t *testing.T) {
		repo := new(mocks.AdminRepository)
		svc, _ := newService(repo)

		repo.On("GetByEmail", mock.Anything, "ops@caremate.com").Return(admin, nil)

		resp, err := svc.Login(context.Background(), &model.AdminLoginRequest{
			Email:    "ops@caremate.com",
			Password: "super-secret-1",
		})

		require.NoError(t, err)
		assert.NotEmpty(t, resp.Token)
		assert.Equal(t, model.RoleAdmin, resp.Role)
		assert.Equal(t, "Admin login successful", resp.Message)
	})

	t.Run("rejects wrong password", func(t *testing.T) {
		repo := new(mocks.AdminRepository)
		svc, _ := newService(repo)

		repo.On("GetByEmail", mock.Anything, "ops@caremate.com").Return(admin, nil)

		_, err := svc.Login(context.Background(), &model.AdminLoginRequest{
			Email:    "ops@caremate.com",
			Password: "wrong-password",
		})

		assert.Equal(t, apperrors.ErrUnauthorized, apperrors.CodeOf(err))
		assert.EqualError(t, err, "Invalid email or password")
	})

	t.Run("rejects unknown email with the same message", func(t *testing.T) {
		repo := new(mocks.AdminRepository)
		svc, _ := newService(repo)

		repo.On("GetByEmail", mock.Anything, "nobody@caremate.com").Return(nil, sql.ErrNoRows)

		_, err := svc.Login(context.Background(), &model.AdminLoginRequest{
			Email:    "nobody@caremate.com",
			Password: "super-secret-1",
		})

		assert.Equal(t, apperrors.ErrUnauthorized, apperrors.CodeOf(err))
		assert.EqualError(t, err, "Invalid email or password")
	})

	t.Run("rejects deactivated account", func(t *testing.T) {
		repo := new(mocks.AdminRepository)
		svc, _ := newService(repo)

		inactive := *admin
		inactive.IsActive = false
		repo.On("GetByEmail", mock.Anything, "ops@caremate.com").Return(&inactive, nil)

		_, err := svc.Login(context.Background(), &model.AdminLoginRequest{
			Email:    "ops@caremate.com",
			Password: "super-secret-1",
		})

		assert.EqualError(t, err, "Admin account is deactivated")
	})
}
