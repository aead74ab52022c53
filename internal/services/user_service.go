package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SAP-F-2025/accounts-service/internal/auth"
	"github.com/SAP-F-2025/accounts-service/internal/events"
	"github.com/SAP-F-2025/accounts-service/internal/models"
	"github.com/SAP-F-2025/accounts-service/internal/repositories"
	"github.com/SAP-F-2025/accounts-service/internal/validator"
)

type userService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
	publisher events.EventPublisher
	backends  *auth.Registry
}

func NewUserService(repo repositories.Repository, logger *slog.Logger, validator *validator.Validator, publisher events.EventPublisher, backends *auth.Registry) UserService {
	return &userService{
		repo:      repo,
		logger:    logger,
		validator: validator,
		publisher: publisher,
		backends:  backends,
	}
}

// ===== ACCOUNT FACTORY =====

func (s *userService) Create(ctx context.Context, req *CreateUserRequest) (*models.User, error) {
	return s.create(ctx, req, false)
}

func (s *userService) CreateSuperuser(ctx context.Context, req *CreateUserRequest) (*models.User, error) {
	return s.create(ctx, req, true)
}

func (s *userService) create(ctx context.Context, req *CreateUserRequest, superuser bool) (*models.User, error) {
	if strings.TrimSpace(req.Username) == "" {
		return nil, ErrUsernameRequired
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}

	isStaff, isSuperuser := superuser, superuser
	if req.IsStaff != nil {
		isStaff = *req.IsStaff
	}
	if req.IsSuperuser != nil {
		isSuperuser = *req.IsSuperuser
	}
	// Privileged creation refuses inconsistent flags before any write.
	if superuser {
		if !isStaff {
			return nil, ErrSuperuserNotStaff
		}
		if !isSuperuser {
			return nil, ErrSuperuserRequired
		}
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	user := &models.User{
		Username:    models.NormalizeUsername(req.Username),
		Email:       models.NormalizeEmail(req.Email),
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		IsStaff:     isStaff,
		IsSuperuser: isSuperuser,
		IsActive:    isActive,
		Types:       parseTypes(req.Types),
	}
	if req.Password != "" {
		if err := user.SetPassword(req.Password); err != nil {
			return nil, err
		}
	}

	if err := s.repo.User().Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user created",
		"user_id", user.ID, "username", user.Username,
		"types", user.Types, "superuser", isSuperuser)

	s.publish(ctx, events.NewEvent(events.EventUserCreated, events.UserCreatedEvent{
		UserID:   user.ID,
		Username: user.Username,
		Types:    typesToStrings(user.Types),
	}))
	return user, nil
}

// ===== READS =====

func (s *userService) Get(ctx context.Context, id uint) (*models.User, error) {
	return s.repo.User().GetByID(ctx, id)
}

func (s *userService) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.repo.User().GetByUsername(ctx, username)
}

func (s *userService) List(ctx context.Context, filters repositories.UserFilters) (*UserListResponse, error) {
	users, total, err := s.repo.User().List(ctx, filters)
	if err != nil {
		return nil, err
	}

	size := filters.Limit
	if size <= 0 {
		size = len(users)
	}
	page := 1
	if size > 0 {
		page = filters.Offset/size + 1
	}
	return &UserListResponse{Users: users, Total: total, Page: page, Size: size}, nil
}

// ===== UPDATES =====

func (s *userService) Update(ctx context.Context, id uint, req *UpdateUserRequest) (*models.User, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}

	user, err := s.repo.User().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Email != nil {
		user.Email = models.NormalizeEmail(*req.Email)
	}
	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.IsStaff != nil {
		user.IsStaff = *req.IsStaff
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}

	if err := s.repo.User().Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateTypes replaces the user's type set. The repository reconciles
// profile rows against the stored snapshot within the write transaction and
// returns that snapshot, so the change notification reports what the write
// actually replaced rather than a possibly stale earlier read.
func (s *userService) UpdateTypes(ctx context.Context, id uint, req *UpdateTypesRequest) (*models.User, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}

	user, previous, err := s.repo.User().UpdateTypes(ctx, id, parseTypes(req.Types))
	if err != nil {
		return nil, err
	}

	s.logger.Info("user types updated",
		"user_id", user.ID, "previous", previous, "current", user.Types)

	s.publish(ctx, events.NewEvent(events.EventTypesChanged, events.TypesChangedEvent{
		UserID:   user.ID,
		Username: user.Username,
		Previous: typesToStrings(previous),
		Current:  typesToStrings(user.Types),
	}))
	return user, nil
}

func (s *userService) SetPassword(ctx context.Context, id uint, req *SetPasswordRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return err
	}

	user, err := s.repo.User().GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := user.SetPassword(req.Password); err != nil {
		return err
	}
	return s.repo.User().Update(ctx, user)
}

func (s *userService) Delete(ctx context.Context, id uint) error {
	return s.repo.User().Delete(ctx, id)
}

// ===== PERMISSION LOOKUP =====

func (s *userService) WithPerm(ctx context.Context, perm string, opts auth.WithPermOptions) ([]*models.User, error) {
	return s.backends.WithPerm(ctx, perm, opts)
}

// ===== DIRECTORY IMPORT =====

func (s *userService) ImportFromDirectory(ctx context.Context, dir ExternalDirectory) (*ImportSummary, error) {
	fetched, err := dir.FetchUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("directory fetch failed: %w", err)
	}

	summary := &ImportSummary{Fetched: len(fetched)}
	for _, user := range fetched {
		if user.Username == "" {
			summary.Skipped++
			continue
		}
		exists, err := s.repo.User().ExistsByUsername(ctx, user.Username)
		if err != nil {
			return summary, err
		}
		if exists {
			summary.Skipped++
			continue
		}
		if err := s.repo.User().Create(ctx, user); err != nil {
			return summary, fmt.Errorf("import user %q: %w", user.Username, err)
		}
		summary.Created++

		s.publish(ctx, events.NewEvent(events.EventUserCreated, events.UserCreatedEvent{
			UserID:   user.ID,
			Username: user.Username,
			Types:    typesToStrings(user.Types),
		}))
	}

	s.logger.Info("directory import finished",
		"fetched", summary.Fetched, "created", summary.Created, "skipped", summary.Skipped)
	return summary, nil
}

// ===== HELPERS =====

func (s *userService) publish(ctx context.Context, event events.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		// Event delivery is best-effort; the write already committed.
		s.logger.Error("failed to publish event", "type", event.Type, "error", err)
	}
}

// parseTypes maps role code strings to user types, dropping anything
// unrecognized, and normalizes the result.
func parseTypes(codes []string) []models.UserType {
	types := make([]models.UserType, 0, len(codes))
	for _, code := range codes {
		if t, err := models.ParseUserType(code); err == nil {
			types = append(types, t)
		}
	}
	return models.NormalizeTypes(types)
}

func typesToStrings(types []models.UserType) []string {
	out := make([]string, len(types))
	for i, t := range types {
		out[i] = string(t)
	}
	return out
}
