package nurse

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
	"github.com/caremate/caremate-api/pkg/security"
	"github.com/caremate/caremate-api/pkg/storage"
)

const profilesDir = "nurses/profiles"

type Service struct {
	repo       repository.NurseRepository
	reviewRepo repository.ReviewRepository
	store      storage.FileStore
	emailSvc   email.Service
	jwtSvc     auth.JWTService
	hasher     security.PasswordHasher
	logger     *logger.Logger
}

func NewService(
	repo repository.NurseRepository,
	reviewRepo repository.ReviewRepository,
	store storage.FileStore,
	emailSvc email.Service,
	jwtSvc auth.JWTService,
	hasher security.PasswordHasher,
	logger *logger.Logger,
) *Service {
	return &Service{
		repo:       repo,
		reviewRepo: reviewRepo,
		store:      store,
		emailSvc:   emailSvc,
		jwtSvc:     jwtSvc,
		hasher:     hasher,
		logger:     logger,
	}
}

func (s *Service) Register(ctx context.Context, req *model.NurseRegistrationRequest, image1, image2 *multipart.FileHeader) (*model.AuthResponse, error) {
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

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	var img1Path, img2Path string
	if image1 != nil {
		if img1Path, err = s.store.Save(image1, profilesDir); err != nil {
			return nil, err
		}
	}
	if image2 != nil {
		if img2Path, err = s.store.Save(image2, profilesDir); err != nil {
			return nil, err
		}
	}

	nurse := &model.Nurse{
		FullName:                 req.FullName,
		MobileNo:                 req.MobileNo,
		Email:                    req.Email,
		PasswordHash:             hash,
		ProfileImage1:            img1Path,
		ProfileImage2:            img2Path,
		EducationalQualification: req.EducationalQualification,
		YearsOfExperience:        req.YearsOfExperience,
		Age:                      req.Age,
		Specializations:          req.Specializations,
		Status:                   model.NurseAvailable,
		Role:                     model.RoleNurse,
		IsActive:                 true,
	}
	if err := s.repo.Create(ctx, nurse); err != nil {
		return nil, err
	}

	if err := s.emailSvc.EnqueueNurseWelcome(ctx, nurse.Email, nurse.FullName); err != nil {
		s.logger.Error(err, "Failed to enqueue nurse welcome email", "email", nurse.Email)
	}

	token, err := s.jwtSvc.GenerateToken(nurse.Email, model.RoleNurse)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Nurse registered", "email", nurse.Email)

	return &model.AuthResponse{
		Token:   token,
		Role:    model.RoleNurse,
		Email:   nurse.Email,
		Message: "Nurse registration successful. Welcome email sent!",
	}, nil
}

func (s *Service) Login(ctx context.Context, req *model.NurseLoginRequest) (*model.AuthResponse, error) {
	nurse, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.Unauthorized("Invalid email or password")
		}
		return nil, err
	}

	if !nurse.IsActive {
		return nil, apperrors.Unauthorized("Your account has been deactivated. Please contact admin.")
	}

	if err := s.hasher.Compare(nurse.PasswordHash, req.Password); err != nil {
		return nil, apperrors.Unauthorized("Invalid email or password")
	}

	token, err := s.jwtSvc.GenerateToken(nurse.Email, model.RoleNurse)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Nurse logged in", "email", nurse.Email)

	return &model.AuthResponse{
		Token:   token,
		Role:    model.RoleNurse,
		Email:   nurse.Email,
		Message: "Login successful",
	}, nil
}

func (s *Service) GetByEmail(ctx context.Context, email string) (*model.Nurse, error) {
	nurse, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("nurse")
		}
		return nil, err
	}
	return nurse, nil
}

func (s *Service) GetProfile(ctx context.Context, email string) (*model.NurseDTO, error) {
	nurse, err := s.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	return s.toDTO(ctx, nurse)
}

// UpdateProfile applies a partial update; nil request fields keep their
// stored value.
func (s *Service) UpdateProfile(ctx context.Context, email string, req *model.NurseUpdateRequest) (*model.NurseDTO, error) {
	nurse, err := s.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if req.EducationalQualification != nil {
		nurse.EducationalQualification = *req.EducationalQualification
	}
	if req.YearsOfExperience != nil {
		nurse.YearsOfExperience = *req.YearsOfExperience
	}
	if req.Age != nil {
		nurse.Age = *req.Age
	}
	if len(req.Specializations) > 0 {
		nurse.Specializations = req.Specializations
	}

	if err := s.repo.Update(ctx, nurse); err != nil {
		return nil, err
	}

	s.logger.Info("Nurse profile updated", "email", email)
	return s.toDTO(ctx, nurse)
}

func (s *Service) UpdateStatus(ctx context.Context, email string, status model.NurseStatus) (*model.NurseDTO, error) {
	nurse, err := s.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateStatus(ctx, nurse.ID, status); err != nil {
		return nil, err
	}
	nurse.Status = status

	s.logger.Info("Nurse status updated", "email", email, "status", string(status))
	return s.toDTO(ctx, nurse)
}

// UpdateProfileImage replaces one of the two profile images and removes
// the previous file. slot must be 1 or 2.
func (s *Service) UpdateProfileImage(ctx context.Context, email string, image *multipart.FileHeader, slot int) (*model.NurseDTO, error) {
	if slot != 1 && slot != 2 {
		return nil, apperrors.Validation(map[string]string{"slot": "Invalid image number. Use 1 or 2."})
	}

	nurse, err := s.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	newPath, err := s.store.Save(image, profilesDir)
	if err != nil {
		return nil, err
	}

	var oldPath string
	if slot == 1 {
		oldPath = nurse.ProfileImage1
		nurse.ProfileImage1 = newPath
	} else {
		oldPath = nurse.ProfileImage2
		nurse.ProfileImage2 = newPath
	}

	if err := s.repo.Update(ctx, nurse); err != nil {
		return nil, err
	}

	if oldPath != "" {
		if err := s.store.Delete(oldPath); err != nil {
			s.logger.Error(err, "Failed to delete old profile image", "path", oldPath)
		}
	}

	s.logger.Info("Nurse profile image updated", "email", email, "slot", slot)
	return s.toDTO(ctx, nurse)
}

// List returns a page of nurse profiles for the admin surface.
func (s *Service) List(ctx context.Context, p model.Pagination) (*model.PageResponse, error) {
	p = p.Normalize(10)
	nurses, total, err := s.repo.List(ctx, p)
	if err != nil {
		return nil, err
	}

	dtos := make([]*model.NurseDTO, 0, len(nurses))
	for _, n := range nurses {
		dto, err := s.toDTO(ctx, n)
		if err != nil {
			return nil, err
		}
		dtos = append(dtos, dto)
	}
	return model.NewPageResponse(dtos, p, total), nil
}

func (s *Service) toDTO(ctx context.Context, nurse *model.Nurse) (*model.NurseDTO, error) {
	dto := nurse.ToDTO()

	rating, err := s.reviewRepo.AverageRating(ctx, nurse.ID)
	if err != nil {
		return nil, err
	}
	total, err := s.reviewRepo.CountByNurse(ctx, nurse.ID)
	if err != nil {
		return nil, err
	}

	dto.Rating = rating
	dto.TotalReviews = total
	return dto, nil
}
