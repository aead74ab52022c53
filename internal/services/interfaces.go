package services

import (
	"context"
	"errors"

	"github.com/SAP-F-2025/accounts-service/internal/auth"
	"github.com/SAP-F-2025/accounts-service/internal/models"
	"github.com/SAP-F-2025/accounts-service/internal/repositories"
	"github.com/SAP-F-2025/accounts-service/internal/validator"
)

// ===== REQUEST/RESPONSE DTOs =====

// Use business validator types
type CreateUserRequest = validator.CreateUserRequest
type UpdateUserRequest = validator.UpdateUserRequest
type UpdateTypesRequest = validator.UpdateTypesRequest
type SetPasswordRequest = validator.SetPasswordRequest

type UpdateTeacherProfileRequest = validator.UpdateTeacherProfileRequest
type UpdateStudentProfileRequest = validator.UpdateStudentProfileRequest
type UpdateGuardianProfileRequest = validator.UpdateGuardianProfileRequest
type UpdateCommitteeProfileRequest = validator.UpdateCommitteeProfileRequest
type UpdateStaffProfileRequest = validator.UpdateStaffProfileRequest

type UserListResponse struct {
	Users []*models.User `json:"users"`
	Total int64          `json:"total"`
	Page  int            `json:"page"`
	Size  int            `json:"size"`
}

// ImportSummary reports the outcome of a directory import.
type ImportSummary struct {
	Fetched int `json:"fetched"`
	Created int `json:"created"`
	Skipped int `json:"skipped"`
}

// ===== SERVICE ERRORS =====

var (
	ErrUsernameRequired  = errors.New("the given username must be set")
	ErrSuperuserNotStaff = errors.New("superuser must have is_staff=true")
	ErrSuperuserRequired = errors.New("superuser must have is_superuser=true")
	ErrNoEmailAddress    = errors.New("user has no email address")
)

// ===== SERVICE INTERFACES =====

// UserService is the account factory and admin surface over user records.
type UserService interface {
	// Create makes a regular account; staff/superuser flags default to
	// false. An empty username is a validation failure.
	Create(ctx context.Context, req *CreateUserRequest) (*models.User, error)

	// CreateSuperuser makes a privileged account; both flags default to
	// true and an explicit false for either aborts before any write.
	CreateSuperuser(ctx context.Context, req *CreateUserRequest) (*models.User, error)

	Get(ctx context.Context, id uint) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	List(ctx context.Context, filters repositories.UserFilters) (*UserListResponse, error)

	Update(ctx context.Context, id uint, req *UpdateUserRequest) (*models.User, error)
	UpdateTypes(ctx context.Context, id uint, req *UpdateTypesRequest) (*models.User, error)
	SetPassword(ctx context.Context, id uint, req *SetPasswordRequest) error
	Delete(ctx context.Context, id uint) error

	// WithPerm resolves a permission backend and returns the users
	// holding the given permission.
	WithPerm(ctx context.Context, perm string, opts auth.WithPermOptions) ([]*models.User, error)

	// ImportFromDirectory creates accounts for directory users that do
	// not exist locally yet.
	ImportFromDirectory(ctx context.Context, dir ExternalDirectory) (*ImportSummary, error)
}

// ProfileService reads and updates the per-type profile records. Rows are
// created by the type-change reconciler, never here.
type ProfileService interface {
	GetTeacher(ctx context.Context, userID uint) (*models.TeacherProfile, error)
	GetStudent(ctx context.Context, userID uint) (*models.StudentProfile, error)
	GetGuardian(ctx context.Context, userID uint) (*models.GuardianProfile, error)
	GetCommittee(ctx context.Context, userID uint) (*models.CommitteeProfile, error)
	GetStaff(ctx context.Context, userID uint) (*models.StaffProfile, error)

	UpdateTeacher(ctx context.Context, userID uint, req *UpdateTeacherProfileRequest) (*models.TeacherProfile, error)
	UpdateStudent(ctx context.Context, userID uint, req *UpdateStudentProfileRequest) (*models.StudentProfile, error)
	UpdateGuardian(ctx context.Context, userID uint, req *UpdateGuardianProfileRequest) (*models.GuardianProfile, error)
	UpdateCommittee(ctx context.Context, userID uint, req *UpdateCommitteeProfileRequest) (*models.CommitteeProfile, error)
	UpdateStaff(ctx context.Context, userID uint, req *UpdateStaffProfileRequest) (*models.StaffProfile, error)
}

// ExternalDirectory is an import source of user records (i.e. a Casdoor
// organization).
type ExternalDirectory interface {
	FetchUsers(ctx context.Context) ([]*models.User, error)
}

// NotificationService forwards user notifications to the external mail
// facility via the event bus.
type NotificationService interface {
	EmailUser(ctx context.Context, userID uint, subject, message, from string) error
}

// ExportService produces admin roster exports.
type ExportService interface {
	// ExportRoster renders an xlsx roster of users, optionally scoped to
	// one user type.
	ExportRoster(ctx context.Context, userType *models.UserType) ([]byte, error)
}

// ServiceManager wires and owns the service instances.
type ServiceManager interface {
	User() UserService
	Profile() ProfileService
	Notification() NotificationService
	Export() ExportService
	Backends() *auth.Registry

	Initialize(ctx context.Context) error
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
