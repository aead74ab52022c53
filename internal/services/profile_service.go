package services

import (
	"context"
	"log/slog"

	"github.com/SAP-F-2025/accounts-service/internal/models"
	"github.com/SAP-F-2025/accounts-service/internal/repositories"
	"github.com/SAP-F-2025/accounts-service/internal/validator"
)

type profileService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
}

func NewProfileService(repo repositories.Repository, logger *slog.Logger, validator *validator.Validator) ProfileService {
	return &profileService{repo: repo, logger: logger, validator: validator}
}

// ===== READS =====

func (s *profileService) GetTeacher(ctx context.Context, userID uint) (*models.TeacherProfile, error) {
	return s.repo.Profile().Teacher(ctx, userID)
}

func (s *profileService) GetStudent(ctx context.Context, userID uint) (*models.StudentProfile, error) {
	return s.repo.Profile().Student(ctx, userID)
}

func (s *profileService) GetGuardian(ctx context.Context, userID uint) (*models.GuardianProfile, error) {
	return s.repo.Profile().Guardian(ctx, userID)
}

func (s *profileService) GetCommittee(ctx context.Context, userID uint) (*models.CommitteeProfile, error) {
	return s.repo.Profile().Committee(ctx, userID)
}

func (s *profileService) GetStaff(ctx context.Context, userID uint) (*models.StaffProfile, error) {
	return s.repo.Profile().Staff(ctx, userID)
}

// ===== FIELD UPDATES =====

func (s *profileService) UpdateTeacher(ctx context.Context, userID uint, req *UpdateTeacherProfileRequest) (*models.TeacherProfile, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}
	profile, err := s.repo.Profile().Teacher(ctx, userID)
	if err != nil {
		return nil, err
	}
	if req.Designation != nil {
		profile.Designation = req.Designation
	}
	if err := s.repo.Profile().SaveTeacher(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func (s *profileService) UpdateStudent(ctx context.Context, userID uint, req *UpdateStudentProfileRequest) (*models.StudentProfile, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}
	profile, err := s.repo.Profile().Student(ctx, userID)
	if err != nil {
		return nil, err
	}
	if req.Level != nil {
		profile.Level = req.Level
	}
	if err := s.repo.Profile().SaveStudent(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func (s *profileService) UpdateGuardian(ctx context.Context, userID uint, req *UpdateGuardianProfileRequest) (*models.GuardianProfile, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}
	profile, err := s.repo.Profile().Guardian(ctx, userID)
	if err != nil {
		return nil, err
	}
	if req.Occupation != nil {
		profile.Occupation = req.Occupation
	}
	if err := s.repo.Profile().SaveGuardian(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func (s *profileService) UpdateCommittee(ctx context.Context, userID uint, req *UpdateCommitteeProfileRequest) (*models.CommitteeProfile, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}
	profile, err := s.repo.Profile().Committee(ctx, userID)
	if err != nil {
		return nil, err
	}
	if req.Designation != nil {
		profile.Designation = req.Designation
	}
	if err := s.repo.Profile().SaveCommittee(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func (s *profileService) UpdateStaff(ctx context.Context, userID uint, req *UpdateStaffProfileRequest) (*models.StaffProfile, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}
	profile, err := s.repo.Profile().Staff(ctx, userID)
	if err != nil {
		return nil, err
	}
	if req.Designation != nil {
		profile.Designation = req.Designation
	}
	if err := s.repo.Profile().SaveStaff(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}
