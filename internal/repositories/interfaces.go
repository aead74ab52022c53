package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/SAP-F-2025/accounts-service/internal/models"
)

// ===== SHARED FILTER STRUCTS =====

// UserFilters defines the filter/search surface consumed by the admin
// layer: the type set is filterable and the name fields are searchable.
type UserFilters struct {
	Query       string            `json:"query"` // matches username, email, first or last name
	Types       []models.UserType `json:"types"` // users carrying every listed type
	IsActive    *bool             `json:"is_active"`
	IsStaff     *bool             `json:"is_staff"`
	IsSuperuser *bool             `json:"is_superuser"`
	JoinedFrom  *time.Time        `json:"joined_from"`
	JoinedTo    *time.Time        `json:"joined_to"`
	Limit       int               `json:"limit"`
	Offset      int               `json:"offset"`
	SortBy      string            `json:"sort_by"`    // "username", "date_joined", "modified"
	SortOrder   string            `json:"sort_order"` // "asc", "desc"
}

// ===== SENTINEL ERRORS =====

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrProfileNotFound = errors.New("profile not found")
	ErrDuplicateUser   = errors.New("a user with that username already exists")
)

// UserRepository owns persistence of user records. Create and Update run
// the type-change reconciler inside the same transaction as the write, so
// profile rows are consistent with the saved type set on return.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	// UpdateTypes replaces the user's type set and returns the saved user
	// together with the type set the write replaced, snapshotted in the
	// same transaction as the save.
	UpdateTypes(ctx context.Context, id uint, types []models.UserType) (*models.User, []models.UserType, error)
	Delete(ctx context.Context, id uint) error

	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	List(ctx context.Context, filters UserFilters) ([]*models.User, int64, error)

	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	HasType(ctx context.Context, id uint, userType models.UserType) (bool, error)
}

// ProfileRepository manages the per-type one-to-one profile rows. Creation
// is owned by the reconciler; callers only read and update field values.
type ProfileRepository interface {
	// Reconciler surface, keyed by user type.
	CreateForType(ctx context.Context, userType models.UserType, userID uint) error
	EnsureForType(ctx context.Context, userType models.UserType, userID uint) error
	ExistsForType(ctx context.Context, userType models.UserType, userID uint) (bool, error)

	// Typed accessors for the role views.
	Teacher(ctx context.Context, userID uint) (*models.TeacherProfile, error)
	Student(ctx context.Context, userID uint) (*models.StudentProfile, error)
	Guardian(ctx context.Context, userID uint) (*models.GuardianProfile, error)
	Committee(ctx context.Context, userID uint) (*models.CommitteeProfile, error)
	Staff(ctx context.Context, userID uint) (*models.StaffProfile, error)

	// Field updates on existing rows.
	SaveTeacher(ctx context.Context, profile *models.TeacherProfile) error
	SaveStudent(ctx context.Context, profile *models.StudentProfile) error
	SaveGuardian(ctx context.Context, profile *models.GuardianProfile) error
	SaveCommittee(ctx context.Context, profile *models.CommitteeProfile) error
	SaveStaff(ctx context.Context, profile *models.StaffProfile) error
}

// RoleViewRepository is a read-mostly projection of the user table scoped
// to one user type. The view carries its type as a value; it never aliases
// the per-user persisted set.
type RoleViewRepository interface {
	// UserType returns the capability tag of this view.
	UserType() models.UserType

	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	List(ctx context.Context, filters UserFilters) ([]*models.User, int64, error)
	Count(ctx context.Context) (int64, error)

	// Create persists a new user through the view, tagging the view's type
	// into the type set first so the save cannot silently drop it.
	Create(ctx context.Context, user *models.User) error
}
