package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/SAP-F-2025/accounts-service/internal/cache"
	"github.com/SAP-F-2025/accounts-service/internal/models"
	"github.com/SAP-F-2025/accounts-service/internal/repositories"
)

type userRepository struct {
	db         *gorm.DB
	cache      *cache.CacheHelper
	caches     *cache.CacheManager
	reconciler *repositories.ProfileReconciler
	logger     *slog.Logger
}

func NewUserPostgreSQL(db *gorm.DB, cacheManager *cache.CacheManager, reconciler *repositories.ProfileReconciler, logger *slog.Logger) repositories.UserRepository {
	return &userRepository{
		db:         db,
		cache:      cacheManager.User,
		caches:     cacheManager,
		reconciler: reconciler,
		logger:     logger,
	}
}

// ===== WRITE OPERATIONS =====

// Create persists a new user and, in the same transaction, creates the
// profile rows for every type present in the normalized type set.
func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return translateDBError(err, "create user", repositories.ErrUserNotFound)
		}
		return r.reconciler.UserSaved(ctx, NewProfilePostgreSQL(tx), user, nil, true)
	})
	if err != nil {
		return err
	}
	r.invalidate(ctx, user)
	return nil
}

// Update saves an existing user. The pre-save type set is snapshotted from
// the stored row inside the transaction, so the reconciler sees exactly
// the change this save applies.
func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	if user.ID == 0 {
		return repositories.ErrUserNotFound
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.User
		if err := tx.Select("id", "types", "username").First(&existing, user.ID).Error; err != nil {
			return translateDBError(err, "load user for update", repositories.ErrUserNotFound)
		}
		previous := models.NormalizeTypes(existing.Types)

		if err := tx.Save(user).Error; err != nil {
			return translateDBError(err, "update user", repositories.ErrUserNotFound)
		}
		return r.reconciler.UserSaved(ctx, NewProfilePostgreSQL(tx), user, previous, false)
	})
	if err != nil {
		return err
	}
	r.invalidate(ctx, user)
	return nil
}

// UpdateTypes replaces a user's type set. The stored row is loaded and the
// previous set snapshotted inside the transaction that saves the change, so
// the returned previous set is exactly what this write replaced even when
// other writers race, and callers can build change notifications from it.
func (r *userRepository) UpdateTypes(ctx context.Context, id uint, types []models.UserType) (*models.User, []models.UserType, error) {
	var user models.User
	var previous []models.UserType
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&user, id).Error; err != nil {
			return translateDBError(err, "load user for type update", repositories.ErrUserNotFound)
		}
		previous = models.NormalizeTypes(user.Types)
		user.Types = datatypes.NewJSONSlice(models.NormalizeTypes(types))

		if err := tx.Save(&user).Error; err != nil {
			return translateDBError(err, "update user types", repositories.ErrUserNotFound)
		}
		return r.reconciler.UserSaved(ctx, NewProfilePostgreSQL(tx), &user, previous, false)
	})
	if err != nil {
		return nil, nil, err
	}
	r.invalidate(ctx, &user)
	return &user, previous, nil
}

// Delete removes a user row; profile rows go with it via the cascading
// foreign keys.
func (r *userRepository) Delete(ctx context.Context, id uint) error {
	user, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Delete(&models.User{}, id)
	if result.Error != nil {
		return translateDBError(result.Error, "delete user", repositories.ErrUserNotFound)
	}
	if result.RowsAffected == 0 {
		return repositories.ErrUserNotFound
	}
	r.invalidate(ctx, user)
	return nil
}

// ===== READ OPERATIONS =====

// userCacheEntry is the cached projection of a user. The model hides
// PasswordHash from JSON (`json:"-"`), so caching the model directly would
// return users with an empty hash and a later Save would wipe the stored
// credential. The entry carries the hash under an explicit name instead.
type userCacheEntry struct {
	User         models.User `json:"user"`
	PasswordHash string      `json:"password_hash"`
}

func (r *userRepository) cachePut(ctx context.Context, key string, user *models.User) {
	entry := userCacheEntry{User: *user, PasswordHash: user.PasswordHash}
	if err := r.cache.Set(ctx, key, &entry, cache.UserCacheConfig.TTL); err != nil {
		r.logger.Debug("user cache set failed", "key", key, "error", err)
	}
}

func (r *userRepository) cacheLookup(ctx context.Context, key string) (*models.User, bool) {
	var entry userCacheEntry
	if err := r.cache.Get(ctx, key, &entry); err != nil {
		return nil, false
	}
	user := entry.User
	user.PasswordHash = entry.PasswordHash
	return &user, true
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	cacheKey := fmt.Sprintf("id:%d", id)
	if cached, ok := r.cacheLookup(ctx, cacheKey); ok {
		return cached, nil
	}

	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, translateDBError(err, "get user by id", repositories.ErrUserNotFound)
	}

	r.cachePut(ctx, cacheKey, &user)
	return &user, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	cacheKey := "username:" + username
	if cached, ok := r.cacheLookup(ctx, cacheKey); ok {
		return cached, nil
	}

	var user models.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, translateDBError(err, "get user by username", repositories.ErrUserNotFound)
	}

	r.cachePut(ctx, cacheKey, &user)
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Where("email = ?", models.NormalizeEmail(email)).
		First(&user).Error
	if err != nil {
		return nil, translateDBError(err, "get user by email", repositories.ErrUserNotFound)
	}
	return &user, nil
}

func (r *userRepository) List(ctx context.Context, filters repositories.UserFilters) ([]*models.User, int64, error) {
	var users []*models.User
	var total int64

	query := r.db.WithContext(ctx).Model(&models.User{})
	query, err := applyUserFilters(query, filters)
	if err != nil {
		return nil, 0, err
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, translateDBError(err, "count users", repositories.ErrUserNotFound)
	}

	query = applyPaginationAndSort(query, filters)
	if err := query.Find(&users).Error; err != nil {
		return nil, 0, translateDBError(err, "list users", repositories.ErrUserNotFound)
	}
	return users, total, nil
}

func (r *userRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := r.caches.Exists.CacheOrExecute(ctx, "username:"+username, &exists, cache.ExistsCacheConfig.TTL, func() (interface{}, error) {
		var count int64
		err := r.db.WithContext(ctx).
			Model(&models.User{}).
			Where("username = ?", username).
			Count(&count).Error
		if err != nil {
			return nil, translateDBError(err, "check username exists", repositories.ErrUserNotFound)
		}
		return count > 0, nil
	})
	return exists, err
}

func (r *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("email = ?", models.NormalizeEmail(email)).
		Count(&count).Error
	if err != nil {
		return false, translateDBError(err, "check email exists", repositories.ErrUserNotFound)
	}
	return count > 0, nil
}

func (r *userRepository) HasType(ctx context.Context, id uint, userType models.UserType) (bool, error) {
	arg, err := typesContains([]models.UserType{userType})
	if err != nil {
		return false, err
	}
	var count int64
	err = r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ? AND types @> ?", id, arg).
		Count(&count).Error
	if err != nil {
		return false, translateDBError(err, "check user type", repositories.ErrUserNotFound)
	}
	return count > 0, nil
}

// invalidate drops the cached copies of a user, and any roster pages that
// may contain it, after a write.
func (r *userRepository) invalidate(ctx context.Context, user *models.User) {
	if err := r.caches.InvalidateUser(ctx, user.ID, user.Username); err != nil {
		r.logger.Debug("user cache invalidation failed", "user_id", user.ID, "error", err)
	}
}
