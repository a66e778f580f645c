package patient

import (
	"context"
	"database/sql"
	"mime/multipart"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/caremate/caremate-api/internal/model"
	"github.com/caremate/caremate-api/internal/repository/mocks"
	apperrors "github.com/caremate/caremate-api/pkg/errors"
	"github.com/caremate/caremate-api/pkg/logger"
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

func registrationRequest() *model.PatientRegistrationRequest {
	return &model.PatientRegistrationRequest{
		FullName:       "John Smith",
		MobileNo:       "9876543210",
		Email:          "john@example.com",
		Age:            65,
		Category:       model.CategoryFullBedRest,
		FamilyMobileNo: "9123456780",
		FamilyEmail:    "family@example.com",
	}
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("creates the patient and enqueues both emails", func(t *testing.T) {
		repo := &mocks.PatientRepository{}
		emails := &emailServiceMock{}
		svc := NewService(repo, &fileStoreMock{}, emails, jwtStub{}, logger.NewLogger(nil))

		repo.On("ExistsByEmail", mock.Anything, "john@example.com").Return(false, nil)
		repo.On("ExistsByMobileNo", mock.Anything, "9876543210").Return(false, nil)
		repo.On("Create", mock.Anything, mock.Anything).Return(nil)
		emails.On("EnqueuePatientWelcome", mock.Anything, "john@example.com", "John Smith").Return(nil)
		emails.On("EnqueueFamilyNotification", mock.Anything, "family@example.com", "John Smith").Return(nil)

		resp, err := svc.Register(ctx, registrationRequest(), nil)
		require.NoError(t, err)

		assert.Equal(t, "token-john@example.com", resp.Token)
		assert.Equal(t, model.RolePatient, resp.Role)
		assert.Equal(t, "Patient registration successful. Welcome emails sent!", resp.Message)

		created := repo.Calls[2].Arguments.Get(1).(*model.Patient)
		assert.Equal(t, model.RolePatient, created.Role)
		assert.True(t, created.IsActive)
		emails.AssertExpectations(t)
	})

	t.Run("duplicate email conflicts before any write", func(t *testing.T) {
		repo := &mocks.PatientRepository{}
		emails := &emailServiceMock{}
		svc := NewService(repo, &fileStoreMock{}, emails, jwtStub{}, logger.NewLogger(nil))

		repo.On("ExistsByEmail", mock.Anything, "john@example.com").Return(true, nil)

		_, err := svc.Register(ctx, registrationRequest(), nil)
		require.Error(t, err)
		assert.Equal(t, apperrors.ErrConflict, apperrors.CodeOf(err))
		assert.EqualError(t, err, "Email already registered")
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		emails.AssertNotCalled(t, "EnqueuePatientWelcome", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("duplicate mobile number conflicts", func(t *testing.T) {
		repo := &mocks.PatientRepository{}
		svc := NewService(repo, &fileStoreMock{}, &emailServiceMock{}, jwtStub{}, logger.NewLogger(nil))

		repo.On("ExistsByEmail", mock.Anything, "john@example.com").Return(false, nil)
		repo.On("ExistsByMobileNo", mock.Anything, "9876543210").Return(true, nil)

		_, err := svc.Register(ctx, registrationRequest(), nil)
		require.Error(t, err)
		assert.EqualError(t, err, "Mobile number already registered")
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("matches name, mobile and email", func(t *testing.T) {
		repo := &mocks.PatientRepository{}
		svc := NewService(repo, &fileStoreMock{}, &emailServiceMock{}, jwtStub{}, logger.NewLogger(nil))

		p := &model.Patient{FullName: "John Smith", Email: "john@example.com", IsActive: true}
		repo.On("GetByLogin", mock.Anything, "John Smith", "9876543210", "john@example.com").Return(p, nil)

		resp, err := svc.Login(ctx, &model.PatientLoginRequest{
			FullName: "John Smith",
			MobileNo: "9876543210",
			Email:    "john@example.com",
		})
		require.NoError(t, err)
		assert.Equal(t, "Login successful", resp.Message)
	})

	t.Run("wrong details are unauthorized", func(t *testing.T) {
		repo := &mocks.PatientRepository{}
		svc := NewService(repo, &fileStoreMock{}, &emailServiceMock{}, jwtStub{}, logger.NewLogger(nil))

		repo.On("GetByLogin", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil, sql.ErrNoRows)

		_, err := svc.Login(ctx, &model.PatientLoginRequest{
			FullName: "Jane",
			MobileNo: "0",
			Email:    "jane@example.com",
		})
		require.Error(t, err)
		assert.Equal(t, apperrors.ErrUnauthorized, apperrors.CodeOf(err))
		assert.EqualError(t, err, "Invalid credentials. Please check your details.")
	})

	t.Run("deactivated account is rejected", func(t *testing.T) {
		repo := &mocks.PatientRepository{}
		svc := NewService(repo, &fileStoreMock{}, &emailServiceMock{}, jwtStub{}, logger.NewLogger(nil))

		p := &model.Patient{Email: "john@example.com", IsActive: false}
		repo.On("GetByLogin", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(p, nil)

		_, err := svc.Login(ctx, &model.PatientLoginRequest{
			FullName: "John Smith",
			MobileNo: "9876543210",
			Email:    "john@example.com",
		})
		require.Error(t, err)
		assert.EqualError(t, err, "Your account has been deactivated. Please contact admin.")
	})
}
