package patient

import (
	"context"
	"database/sql"
	"errors"
	"mime/multipart"

	"github.com/caremate/caremate-api/internal/email"
	"github.com/caremate/caremate-api/internal/model"
	"github.com/caremate/caremate-api/internal/repository"
	"github.com/caremate/caremate-api/pkg/auth"
	apperrors "github.com/caremate/caremate-api/pkg/errors"
	"github.com/caremate/caremate-api/pkg/logger"
	"github.com/caremate/caremate-api/pkg/storage"
)

const reportsDir = "patients/reports"

type Service struct {
	repo     repository.PatientRepository
	store    storage.FileStore
	emailSvc email.Service
	jwtSvc   auth.JWTService
	logger   *logger.Logger
}

func NewService(
	repo repository.PatientRepository,
	store storage.FileStore,
	emailSvc email.Service,
	jwtSvc auth.JWTService,
	logger *logger.Logger,
) *Service {
	return &Service{
		repo:     repo,
		store:    store,
		emailSvc: emailSvc,
		jwtSvc:   jwtSvc,
		logger:   logger,
	}
}

// Register creates the patient, stores the hospital report and enqueues
// the welcome and family emails. Duplicate email or mobile fails with
// Conflict before anything is written.
func (s *Service) Register(ctx context.Context, req *model.PatientRegistrationRequest, report *multipart.FileHeader) (*model.AuthResponse, error) {
	exists, err := s.repo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.Conflict("Email already registered")
	}

	exists, err = s.repo.ExistsByMobileNo(ctx, req.MobileNo)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.Conflict("Mobile number already registered")
	}

	var reportPath string
	if report != nil {
		reportPath, err = s.store.Save(report, reportsDir)
		if err != nil {
			return nil, err
		}
	}

	patient := &model.Patient{
		FullName:            req.FullName,
		MobileNo:            req.MobileNo,
		Email:               req.Email,
		HospitalReportImage: reportPath,
		Age:                 req.Age,
		Category:            req.Category,
		FamilyMobileNo:      req.FamilyMobileNo,
		FamilyEmail:         req.FamilyEmail,
		Role:                model.RolePatient,
		IsActive:            true,
	}
	if err := s.repo.Create(ctx, patient); err != nil {
		return nil, err
	}

	if err := s.emailSvc.EnqueuePatientWelcome(ctx, patient.Email, patient.FullName); err != nil {
		s.logger.Error(err, "Failed to enqueue patient welcome email", "email", patient.Email)
	}
	if err := s.emailSvc.EnqueueFamilyNotification(ctx, patient.FamilyEmail, patient.FullName); err != nil {
		s.logger.Error(err, "Failed to enqueue family notification email", "email", patient.FamilyEmail)
	}

	token, err := s.jwtSvc.GenerateToken(patient.Email, model.RolePatient)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Patient registered", "email", patient.Email)

	return &model.AuthResponse{
		Token:   token,
		Role:    model.RolePatient,
		Email:   patient.Email,
		Message: "Patient registration successful. Welcome emails sent!",
	}, nil
}

// Login matches the registered full name, mobile number and email.
// Patients carry no password.
func (s *Service) Login(ctx context.Context, req *model.PatientLoginRequest) (*model.AuthResponse, error) {
	patient, err := s.repo.GetByLogin(ctx, req.FullName, req.MobileNo, req.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.Unauthorized("Invalid credentials. Please check your details.")
		}
		return nil, err
	}

	if !patient.IsActive {
		return nil, apperrors.Unauthorized("Your account has been deactivated. Please contact admin.")
	}

	token, err := s.jwtSvc.GenerateToken(patient.Email, model.RolePatient)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Patient logged in", "email", patient.Email)

	return &model.AuthResponse{
		Token:   token,
		Role:    model.RolePatient,
		Email:   patient.Email,
		Message: "Login successful",
	}, nil
}

func (s *Service) GetByEmail(ctx context.Context, email string) (*model.Patient, error) {
	patient, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("patient")
		}
		return nil, err
	}
	return patient, nil
}
