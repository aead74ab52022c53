package repositories

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SAP-F-2025/accounts-service/internal/models"
)

// ProfileReconciler keeps per-type profile rows consistent with a user's
// type set. The data-access layer invokes it after every successful user
// write, inside the same transaction, exactly once per save regardless of
// whether the save went through the base repository or a role view.
type ProfileReconciler struct {
	logger *slog.Logger
}

func NewProfileReconciler(logger *slog.Logger) *ProfileReconciler {
	return &ProfileReconciler{logger: logger}
}

// UserSaved reconciles profile rows for a just-saved user. previous is the
// pre-save type set snapshot (ignored when created is true). The user's
// Types field holds the post-save, already normalized value.
//
// Processing order across types does not matter: each type maps to its own
// table, so the per-type operations commute.
func (r *ProfileReconciler) UserSaved(ctx context.Context, profiles ProfileRepository, user *models.User, previous []models.UserType, created bool) error {
	if user == nil {
		return nil
	}

	if created {
		// First save: no profile row can exist yet, create unconditionally.
		for _, t := range user.Types {
			if err := profiles.CreateForType(ctx, t, user.ID); err != nil {
				return fmt.Errorf("create %s profile for user %d: %w", t, user.ID, err)
			}
		}
		if len(user.Types) > 0 {
			r.logger.Info("created profile rows for new user",
				"user_id", user.ID, "types", user.Types)
		}
		return nil
	}

	added, removed := models.DiffTypes(previous, user.Types)
	if len(added) == 0 && len(removed) == 0 {
		return nil
	}

	for _, t := range added {
		// Upsert: a row may survive from an earlier removal of the same
		// type, so tolerate an existing one.
		if err := profiles.EnsureForType(ctx, t, user.ID); err != nil {
			return fmt.Errorf("ensure %s profile for user %d: %w", t, user.ID, err)
		}
	}

	for _, t := range removed {
		exists, err := profiles.ExistsForType(ctx, t, user.ID)
		if err != nil {
			return fmt.Errorf("look up %s profile for user %d: %w", t, user.ID, err)
		}
		if !exists {
			continue
		}
		// Row is intentionally left in place. Extension point for removal
		// handling, i.e. marking the profile inactive.
		r.logger.Debug("type removed, keeping profile row",
			"user_id", user.ID, "type", t)
	}

	r.logger.Info("reconciled profile rows",
		"user_id", user.ID, "added", added, "removed", removed)
	return nil
}
