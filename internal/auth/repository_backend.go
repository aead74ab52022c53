package auth

import (
	"context"
	"fmt"

	"github.com/SAP-F-2025/accounts-service/internal/models"
	"github.com/SAP-F-2025/accounts-service/internal/repositories"
)

// RepositoryBackend answers permission lookups from the accounts store
// itself. Permissions are role codes: WithPerm("TEACHER") returns the
// users carrying the teacher type.
type RepositoryBackend struct {
	repo repositories.Repository
}

func NewRepositoryBackend(repo repositories.Repository) *RepositoryBackend {
	return &RepositoryBackend{repo: repo}
}

func (b *RepositoryBackend) WithPerm(ctx context.Context, perm string, opts WithPermOptions) ([]*models.User, error) {
	userType, err := models.ParseUserType(perm)
	if err != nil {
		return nil, fmt.Errorf("permission must be a role code: %w", err)
	}

	filters := repositories.UserFilters{Types: []models.UserType{userType}}
	if opts.ActiveOnly {
		active := true
		filters.IsActive = &active
	}

	users, _, err := b.repo.User().List(ctx, filters)
	if err != nil {
		return nil, err
	}

	if !opts.IncludeSuperusers {
		return users, nil
	}

	// Fold in superusers that do not carry the role themselves.
	superuser := true
	superFilters := repositories.UserFilters{IsSuperuser: &superuser}
	if opts.ActiveOnly {
		superFilters.IsActive = filters.IsActive
	}
	supers, _, err := b.repo.User().List(ctx, superFilters)
	if err != nil {
		return nil, err
	}

	seen := make(map[uint]bool, len(users))
	for _, u := range users {
		seen[u.ID] = true
	}
	for _, u := range supers {
		if !seen[u.ID] {
			users = append(users, u)
		}
	}
	return users, nil
}
