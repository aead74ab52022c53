package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/SAP-F-2025/accounts-service/internal/models"
	"github.com/SAP-F-2025/accounts-service/internal/repositories"
)

type profileRepository struct {
	db *gorm.DB
}

func NewProfilePostgreSQL(db *gorm.DB) repositories.ProfileRepository {
	return &profileRepository{db: db}
}

// blankProfile returns a zero profile value for the given type with only
// the owning user set. Extend this switch together with models.AllUserTypes.
func blankProfile(userType models.UserType, userID uint) (any, error) {
	switch userType {
	case models.TypeTeacher:
		return &models.TeacherProfile{UserID: userID}, nil
	case models.TypeStudent:
		return &models.StudentProfile{UserID: userID}, nil
	case models.TypeGuardian:
		return &models.GuardianProfile{UserID: userID}, nil
	case models.TypeCommittee:
		return &models.CommitteeProfile{UserID: userID}, nil
	case models.TypeStaff:
		return &models.StaffProfile{UserID: userID}, nil
	default:
		return nil, fmt.Errorf("no profile model for user type %q", userType)
	}
}

// ===== RECONCILER SURFACE =====

func (r *profileRepository) CreateForType(ctx context.Context, userType models.UserType, userID uint) error {
	row, err := blankProfile(userType, userID)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Omit("User").Create(row).Error; err != nil {
		return translateDBError(err, fmt.Sprintf("create %s profile", userType), repositories.ErrProfileNotFound)
	}
	return nil
}

// EnsureForType is an idempotent upsert keyed by the owning user: the
// one-to-one uniqueness on user_id absorbs a pre-existing row.
func (r *profileRepository) EnsureForType(ctx context.Context, userType models.UserType, userID uint) error {
	row, err := blankProfile(userType, userID)
	if err != nil {
		return err
	}
	err = r.db.WithContext(ctx).
		Omit("User").
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoNothing: true,
		}).
		Create(row).Error
	if err != nil {
		return translateDBError(err, fmt.Sprintf("ensure %s profile", userType), repositories.ErrProfileNotFound)
	}
	return nil
}

func (r *profileRepository) ExistsForType(ctx context.Context, userType models.UserType, userID uint) (bool, error) {
	row, err := blankProfile(userType, 0)
	if err != nil {
		return false, err
	}
	var count int64
	err = r.db.WithContext(ctx).
		Model(row).
		Where("user_id = ?", userID).
		Count(&count).Error
	if err != nil {
		return false, translateDBError(err, fmt.Sprintf("count %s profile", userType), repositories.ErrProfileNotFound)
	}
	return count > 0, nil
}

// ===== TYPED ACCESSORS =====

func (r *profileRepository) Teacher(ctx context.Context, userID uint) (*models.TeacherProfile, error) {
	var profile models.TeacherProfile
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil, translateDBError(err, "get teacher profile", repositories.ErrProfileNotFound)
	}
	return &profile, nil
}

func (r *profileRepository) Student(ctx context.Context, userID uint) (*models.StudentProfile, error) {
	var profile models.StudentProfile
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil, translateDBError(err, "get student profile", repositories.ErrProfileNotFound)
	}
	return &profile, nil
}

func (r *profileRepository) Guardian(ctx context.Context, userID uint) (*models.GuardianProfile, error) {
	var profile models.GuardianProfile
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil, translateDBError(err, "get guardian profile", repositories.ErrProfileNotFound)
	}
	return &profile, nil
}

func (r *profileRepository) Committee(ctx context.Context, userID uint) (*models.CommitteeProfile, error) {
	var profile models.CommitteeProfile
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil, translateDBError(err, "get committee profile", repositories.ErrProfileNotFound)
	}
	return &profile, nil
}

func (r *profileRepository) Staff(ctx context.Context, userID uint) (*models.StaffProfile, error) {
	var profile models.StaffProfile
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil, translateDBError(err, "get staff profile", repositories.ErrProfileNotFound)
	}
	return &profile, nil
}

// ===== FIELD UPDATES =====

func (r *profileRepository) SaveTeacher(ctx context.Context, profile *models.TeacherProfile) error {
	err := r.db.WithContext(ctx).Omit("User").Save(profile).Error
	return translateDBError(err, "save teacher profile", repositories.ErrProfileNotFound)
}

func (r *profileRepository) SaveStudent(ctx context.Context, profile *models.StudentProfile) error {
	err := r.db.WithContext(ctx).Omit("User").Save(profile).Error
	return translateDBError(err, "save student profile", repositories.ErrProfileNotFound)
}

func (r *profileRepository) SaveGuardian(ctx context.Context, profile *models.GuardianProfile) error {
	err := r.db.WithContext(ctx).Omit("User").Save(profile).Error
	return translateDBError(err, "save guardian profile", repositories.ErrProfileNotFound)
}

func (r *profileRepository) SaveCommittee(ctx context.Context, profile *models.CommitteeProfile) error {
	err := r.db.WithContext(ctx).Omit("User").Save(profile).Error
	return translateDBError(err, "save committee profile", repositories.ErrProfileNotFound)
}

func (r *profileRepository) SaveStaff(ctx context.Context, profile *models.StaffProfile) error {
	err := r.db.WithContext(ctx).Omit("User").Save(profile).Error
	return translateDBError(err, "save staff profile", repositories.ErrProfileNotFound)
}
