package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/accounts-service/internal/models"
	"github.com/SAP-F-2025/accounts-service/internal/repositories"
)

// roleView projects the user table down to accounts carrying one user
// type. The type is a capability tag held by the view value; reads filter
// by it and Create tags it into the saved set. The view never mutates or
// shadows the per-user persisted set by itself.
type roleView struct {
	db       *gorm.DB
	users    repositories.UserRepository
	userType models.UserType
}

func NewRoleViewPostgreSQL(db *gorm.DB, users repositories.UserRepository, userType models.UserType) repositories.RoleViewRepository {
	return &roleView{db: db, users: users, userType: userType}
}

func (v *roleView) UserType() models.UserType {
	return v.userType
}

// scoped returns the base query restricted to the view's type.
func (v *roleView) scoped(ctx context.Context) (*gorm.DB, error) {
	arg, err := typesContains([]models.UserType{v.userType})
	if err != nil {
		return nil, err
	}
	return v.db.WithContext(ctx).Model(&models.User{}).Where("types @> ?", arg), nil
}

func (v *roleView) GetByID(ctx context.Context, id uint) (*models.User, error) {
	query, err := v.scoped(ctx)
	if err != nil {
		return nil, err
	}
	var user models.User
	if err := query.Where("id = ?", id).First(&user).Error; err != nil {
		return nil, translateDBError(err, "get "+string(v.userType)+" by id", repositories.ErrUserNotFound)
	}
	return &user, nil
}

func (v *roleView) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	query, err := v.scoped(ctx)
	if err != nil {
		return nil, err
	}
	var user models.User
	if err := query.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, translateDBError(err, "get "+string(v.userType)+" by username", repositories.ErrUserNotFound)
	}
	return &user, nil
}

func (v *roleView) List(ctx context.Context, filters repositories.UserFilters) ([]*models.User, int64, error) {
	// Fold the view's type into the caller's filter set; List handles the
	// containment query.
	filters.Types = models.EnsureType(filters.Types, v.userType)
	return v.users.List(ctx, filters)
}

func (v *roleView) Count(ctx context.Context) (int64, error) {
	query, err := v.scoped(ctx)
	if err != nil {
		return 0, err
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, translateDBError(err, "count "+string(v.userType)+" users", repositories.ErrUserNotFound)
	}
	return count, nil
}

// Create tags the view's type into the type set and delegates to the base
// repository, so the reconciler fires exactly once and sees the tag.
func (v *roleView) Create(ctx context.Context, user *models.User) error {
	user.Types = models.EnsureType(user.Types, v.userType)
	return v.users.Create(ctx, user)
}
