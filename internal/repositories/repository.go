package repositories

import "context"

// Repository aggregates all account repository interfaces.
type Repository interface {
	// User domain (accounts service is the owner of user data)
	User() UserRepository

	// Per-type one-to-one profile records
	Profile() ProfileRepository

	// Role-filtered views over the user table
	Teachers() RoleViewRepository
	Students() RoleViewRepository
	Guardians() RoleViewRepository
	Committees() RoleViewRepository
	Staff() RoleViewRepository

	// Transaction support
	WithTransaction(ctx context.Context, fn func(Repository) error) error

	// Health check
	Ping(ctx context.Context) error

	// Close connections
	Close() error
}

// RepositoryManager interface for managing repository lifecycle
type RepositoryManager interface {
	// Initialize repositories with database connections
	Initialize() error

	// Get repository instance
	GetRepository() Repository

	// Health check for all repositories
	HealthCheck(ctx context.Context) error

	// Graceful shutdown
	Shutdown(ctx context.Context) error
}
