package nurse

import (
	"context"
	"database/sql"
	"mime/multipart"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/caremate/caremate-api/internal/model"
	"github.com/caremate/caremate-api/internal/repository/mocks"
	apperrors "github.com/caremate/caremate-api/pkg/errors"
	"github.com/caremate/caremate-api/pkg/logger"
	"github.com/caremate/caremate-api/pkg/security"
)

type emailServiceMock struct {
	mock.Mock
}

func (m *emailServiceMock) EnqueueNurseWelcome(ctx context.Context, to, name string) error {
	return m.Called(ctx, to, name).Error(0)
}

func (m *emailServiceMock) EnqueuePatientWelcome(ctx context.Context, to, name string) error {
	return m.Called(ctx, to, name).Error(0)
}

func (m *emailServiceMock) EnqueueFamilyNotification(ctx context.Context, to, patientName string) error {
	return m.Called(ctx, to, patientName).Error(0)
}

func (m *emailServiceMock) EnqueueBookingUpdateTx(ctx context.Context, tx *sqlx.Tx, to, subject, message string) error {
	return m.Called(ctx, tx, to, subject, message).Error(0)
}

type fileStoreMock struct {
	mock.Mock
}

func (m *fileStoreMock) Save(file *multipart.FileHeader, subdir string) (string, error) {
	args := m.Called(file, subdir)
	return args.String(0), args.Error(1)
}

func (m *fileStoreMock) Delete(path string) error {
	return m.Called(path).Error(0)
}

type jwtStub struct{}

func (jwtStub) GenerateToken(email string, role model.UserRole) (string, error) {
	return "token-" + email, nil
}

func (jwtStub) ValidateToken(token string) (*model.TokenClaims, error) {
	return nil, nil
}

type fixture struct {
	svc     *Service
	repo    *mocks.NurseRepository
	reviews *mocks.ReviewRepository
	store   *fileStoreMock
	emails  *emailServiceMock
	hasher  security.PasswordHasher
}

func newFixture() *fixture {
	f := &fixture{
		repo:    &mocks.NurseRepository{},
		reviews: &mocks.ReviewRepository{},
		store:   &fileStoreMock{},
		emails:  &emailServiceMock{},
		hasher:  security.NewBcryptHasher(bcrypt.MinCost),
	}
	f.svc = NewService(f.repo, f.reviews, f.store, f.emails, jwtStub{}, f.hasher, logger.NewLogger(nil))
	return f
}

func TestRegister(t *testing.T) {
	ctx := context.Background()
	req := &model.NurseRegistrationRequest{
		FullName:                 "Jane Doe",
		MobileNo:                 "9876543210",
		Email:                    "jane@example.com",
		Password:                 "strongpass",
		EducationalQualification: "BSc Nursing",
		YearsOfExperience:        5,
		Age:                      30,
		Specializations:          []string{string(model.CategoryFullBedRest)},
	}

	t.Run("creates an available nurse and enqueues the welcome email", func(t *testing.T) {
		f := newFixture()
		f.repo.On("ExistsByEmail", mock.Anything, req.Email).Return(false, nil)
		f.repo.On("ExistsByMobileNo", mock.Anything, req.MobileNo).Return(false, nil)
		f.repo.On("Create", mock.Anything, mock.Anything).Return(nil)
		f.emails.On("EnqueueNurseWelcome", mock.Anything, req.Email, req.FullName).Return(nil)

		resp, err := f.svc.Register(ctx, req, nil, nil)
		require.NoError(t, err)

		assert.Equal(t, "Nurse registration successful. Welcome email sent!", resp.Message)
		assert.Equal(t, model.RoleNurse, resp.Role)

		created := f.repo.Calls[2].Arguments.Get(1).(*model.Nurse)
		assert.Equal(t, model.NurseAvailable, created.Status)
		assert.True(t, created.IsActive)
		assert.NotEqual(t, req.Password, created.PasswordHash)
		require.NoError(t, f.hasher.Compare(created.PasswordHash, req.Password))
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		f := newFixture()
		f.repo.On("ExistsByEmail", mock.Anything, req.Email).Return(true, nil)

		_, err := f.svc.Register(ctx, req, nil, nil)
		require.Error(t, err)
		assert.Equal(t, apperrors.ErrConflict, apperrors.CodeOf(err))
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	activeNurse := func(f *fixture) *model.Nurse {
		hash, err := f.hasher.Hash("strongpass")
		if err != nil {
			panic(err)
		}
		return &model.Nurse{Email: "jane@example.com", PasswordHash: hash, IsActive: true}
	}

	t.Run("valid credentials log in", func(t *testing.T) {
		f := newFixture()
		f.repo.On("GetByEmail", mock.Anything, "jane@example.com").Return(activeNurse(f), nil)

		resp, err := f.svc.Login(ctx, &model.NurseLoginRequest{Email: "jane@example.com", Password: "strongpass"})
		require.NoError(t, err)
		assert.Equal(t, "Login successful", resp.Message)
		assert.Equal(t, "token-jane@example.com", resp.Token)
	})

	t.Run("wrong password is unauthorized", func(t *testing.T) {
		f := newFixture()
		f.repo.On("GetByEmail", mock.Anything, "jane@example.com").Return(activeNurse(f), nil)

		_, err := f.svc.Login(ctx, &model.NurseLoginRequest{Email: "jane@example.com", Password: "wrongpass!"})
		require.Error(t, err)
		assert.EqualError(t, err, "Invalid email or password")
	})

	t.Run("unknown email is unauthorized", func(t *testing.T) {
		f := newFixture()
		f.repo.On("GetByEmail", mock.Anything, "ghost@example.com").Return(nil, sql.ErrNoRows)

		_, err := f.svc.Login(ctx, &model.NurseLoginRequest{Email: "ghost@example.com", Password: "whatever1"})
		require.Error(t, err)
		assert.EqualError(t, err, "Invalid email or password")
	})

	t.Run("deactivated nurse cannot log in", func(t *testing.T) {
		f := newFixture()
		n := activeNurse(f)
		n.IsActive = false
		f.repo.On("GetByEmail", mock.Anything, "jane@example.com").Return(n, nil)

		_, err := f.svc.Login(ctx, &model.NurseLoginRequest{Email: "jane@example.com", Password: "strongpass"})
		require.Error(t, err)
		assert.Equal(t, apperrors.ErrUnauthorized, apperrors.CodeOf(err))
	})
}

func TestUpdateProfile(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	nurse := &model.Nurse{
		Email:                    "jane@example.com",
		EducationalQualification: "BSc Nursing",
		YearsOfExperience:        5,
		Age:                      30,
		Specializations:          []string{string(model.CategoryFullBedRest)},
	}
	f.repo.On("GetByEmail", mock.Anything, nurse.Email).Return(nurse, nil)
	f.repo.On("Update", mock.Anything, nurse).Return(nil)
	f.reviews.On("AverageRating", mock.Anything, mock.Anything).Return(4.0, nil)
	f.reviews.On("CountByNurse", mock.Anything, mock.Anything).Return(2, nil)

	years := 8
	dto, err := f.svc.UpdateProfile(ctx, nurse.Email, &model.NurseUpdateRequest{YearsOfExperience: &years})
	require.NoError(t, err)

	assert.Equal(t, 8, dto.YearsOfExperience)
	// Untouched fields keep their stored values.
	assert.Equal(t, "BSc Nursing", dto.EducationalQualification)
	assert.Equal(t, 30, dto.Age)
	assert.Equal(t, 4.0, dto.Rating)
	assert.Equal(t, 2, dto.TotalReviews)
}

func TestUpdateProfileImage(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects slots other than 1 and 2", func(t *testing.T) {
		f := newFixture()

		_, err := f.svc.UpdateProfileImage(ctx, "jane@example.com", &multipart.FileHeader{}, 3)
		require.Error(t, err)
		assert.Equal(t, apperrors.ErrValidation, apperrors.CodeOf(err))
	})

	t.Run("replaces slot 1 and deletes the old file", func(t *testing.T) {
		f := newFixture()
		nurse := &model.Nurse{Email: "jane@example.com", ProfileImage1: "nurses/profiles/old.png"}

		f.repo.On("GetByEmail", mock.Anything, nurse.Email).Return(nurse, nil)
		f.store.On("Save", mock.Anything, "nurses/profiles").Return("nurses/profiles/new.png", nil)
		f.repo.On("Update", mock.Anything, nurse).Return(nil)
		f.store.On("Delete", "nurses/profiles/old.png").Return(nil)
		f.reviews.On("AverageRating", mock.Anything, mock.Anything).Return(0.0, nil)
		f.reviews.On("CountByNurse", mock.Anything, mock.Anything).Return(0, nil)

		dto, err := f.svc.UpdateProfileImage(ctx, nurse.Email, &multipart.FileHeader{}, 1)
		require.NoError(t, err)

		assert.Equal(t, "nurses/profiles/new.png", dto.ProfileImage1)
		f.store.AssertExpectations(t)
	})
}
