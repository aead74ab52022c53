package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/SAP-F-2025/accounts-service/internal/cache"
	"github.com/SAP-F-2025/accounts-service/internal/models"
	"github.com/SAP-F-2025/accounts-service/internal/repositories"
)

// PostgreSQLRepository implements the main Repository interface
type PostgreSQLRepository struct {
	db           *gorm.DB
	redisClient  *redis.Client
	cacheManager *cache.CacheManager
	reconciler   *repositories.ProfileReconciler
	logger       *slog.Logger

	// Repository instances
	user    repositories.UserRepository
	profile repositories.ProfileRepository
	views   map[models.UserType]repositories.RoleViewRepository
}

// RepositoryConfig holds configuration for repository initialization
type RepositoryConfig struct {
	DB          *gorm.DB
	RedisClient *redis.Client
	Logger      *slog.Logger
}

// NewPostgreSQLRepository creates a new repository manager with all sub-repositories
func NewPostgreSQLRepository(config RepositoryConfig) repositories.Repository {
	cacheManager := cache.NewCacheManager(config.RedisClient)
	reconciler := repositories.NewProfileReconciler(config.Logger)

	repo := &PostgreSQLRepository{
		db:           config.DB,
		redisClient:  config.RedisClient,
		cacheManager: cacheManager,
		reconciler:   reconciler,
		logger:       config.Logger,
	}
	repo.initialize(config.DB)
	return repo
}

func (r *PostgreSQLRepository) initialize(db *gorm.DB) {
	r.user = NewUserPostgreSQL(db, r.cacheManager, r.reconciler, r.logger)
	r.profile = NewProfilePostgreSQL(db)

	r.views = make(map[models.UserType]repositories.RoleViewRepository, len(models.AllUserTypes()))
	for _, t := range models.AllUserTypes() {
		r.views[t] = NewRoleViewPostgreSQL(db, r.user, t)
	}
}

// User returns the user repository
func (r *PostgreSQLRepository) User() repositories.UserRepository {
	return r.user
}

// Profile returns the profile repository
func (r *PostgreSQLRepository) Profile() repositories.ProfileRepository {
	return r.profile
}

// Teachers returns the teacher-filtered view of the user table
func (r *PostgreSQLRepository) Teachers() repositories.RoleViewRepository {
	return r.views[models.TypeTeacher]
}

// Students returns the student-filtered view of the user table
func (r *PostgreSQLRepository) Students() repositories.RoleViewRepository {
	return r.views[models.TypeStudent]
}

// Guardians returns the guardian-filtered view of the user table
func (r *PostgreSQLRepository) Guardians() repositories.RoleViewRepository {
	return r.views[models.TypeGuardian]
}

// Committees returns the committee-filtered view of the user table
func (r *PostgreSQLRepository) Committees() repositories.RoleViewRepository {
	return r.views[models.TypeCommittee]
}

// Staff returns the staff-filtered view of the user table
func (r *PostgreSQLRepository) Staff() repositories.RoleViewRepository {
	return r.views[models.TypeStaff]
}

// WithTransaction executes a function within a database transaction
func (r *PostgreSQLRepository) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := &PostgreSQLRepository{
			db:           tx,
			redisClient:  r.redisClient,
			cacheManager: r.cacheManager,
			reconciler:   r.reconciler,
			logger:       r.logger,
		}
		txRepo.initialize(tx)
		return fn(txRepo)
	})
}

// Ping checks the health of database and cache connections
func (r *PostgreSQLRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}

	if r.redisClient != nil {
		if err := r.cacheManager.HealthCheck(ctx); err != nil {
			return fmt.Errorf("cache ping failed: %w", err)
		}
	}
	return nil
}

// Close closes all connections
func (r *PostgreSQLRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}

	if r.redisClient != nil {
		if err := r.redisClient.Close(); err != nil {
			return fmt.Errorf("failed to close Redis: %w", err)
		}
	}
	return nil
}

// RepositoryManager implements the RepositoryManager interface
type RepositoryManager struct {
	config RepositoryConfig
	repo   repositories.Repository
}

// NewRepositoryManager creates a new repository manager
func NewRepositoryManager(config RepositoryConfig) repositories.RepositoryManager {
	return &RepositoryManager{config: config}
}

// Initialize initializes all repositories and connections
func (rm *RepositoryManager) Initialize() error {
	if rm.config.DB == nil {
		return fmt.Errorf("database connection is required")
	}

	sqlDB, err := rm.config.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}

	if rm.config.RedisClient != nil {
		if _, err := rm.config.RedisClient.Ping(ctx).Result(); err != nil {
			return fmt.Errorf("Redis connection failed: %w", err)
		}
	}

	rm.repo = NewPostgreSQLRepository(rm.config)
	return nil
}

// GetRepository returns the repository instance
func (rm *RepositoryManager) GetRepository() repositories.Repository {
	return rm.repo
}

// HealthCheck checks the health of all repository connections
func (rm *RepositoryManager) HealthCheck(ctx context.Context) error {
	if rm.repo == nil {
		return fmt.Errorf("repository not initialized")
	}
	return rm.repo.Ping(ctx)
}

// Shutdown gracefully shuts down all repository connections
func (rm *RepositoryManager) Shutdown(ctx context.Context) error {
	if rm.repo == nil {
		return nil
	}
	return rm.repo.Close()
}
