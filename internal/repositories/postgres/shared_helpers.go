package postgres

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/SAP-F-2025/accounts-service/internal/models"
	"github.com/SAP-F-2025/accounts-service/internal/repositories"
)

// typesContains builds the jsonb containment argument for "user carries
// every listed type".
func typesContains(types []models.UserType) (datatypes.JSON, error) {
	b, err := json.Marshal(types)
	if err != nil {
		return nil, fmt.Errorf("marshal type filter: %w", err)
	}
	return datatypes.JSON(b), nil
}

// applyUserFilters applies the shared user filter set to a query.
func applyUserFilters(query *gorm.DB, filters repositories.UserFilters) (*gorm.DB, error) {
	if filters.Query != "" {
		like := "%" + strings.ToLower(filters.Query) + "%"
		query = query.Where(
			"LOWER(username) LIKE ? OR LOWER(email) LIKE ? OR LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ?",
			like, like, like, like)
	}
	if len(filters.Types) > 0 {
		arg, err := typesContains(models.NormalizeTypes(filters.Types))
		if err != nil {
			return nil, err
		}
		query = query.Where("types @> ?", arg)
	}
	if filters.IsActive != nil {
		query = query.Where("is_active = ?", *filters.IsActive)
	}
	if filters.IsStaff != nil {
		query = query.Where("is_staff = ?", *filters.IsStaff)
	}
	if filters.IsSuperuser != nil {
		query = query.Where("is_superuser = ?", *filters.IsSuperuser)
	}
	if filters.JoinedFrom != nil {
		query = query.Where("date_joined >= ?", *filters.JoinedFrom)
	}
	if filters.JoinedTo != nil {
		query = query.Where("date_joined <= ?", *filters.JoinedTo)
	}
	return query, nil
}

// applyPaginationAndSort applies pagination and sorting with a whitelist of
// sortable columns.
func applyPaginationAndSort(query *gorm.DB, filters repositories.UserFilters) *gorm.DB {
	allowedSortColumns := map[string]string{
		"username":    "username",
		"email":       "email",
		"date_joined": "date_joined",
		"modified":    "updated_at",
		"created_at":  "created_at",
	}

	column, ok := allowedSortColumns[filters.SortBy]
	if !ok {
		column = "username"
	}
	order := "ASC"
	if strings.EqualFold(filters.SortOrder, "desc") {
		order = "DESC"
	}
	query = query.Order(fmt.Sprintf("%s %s", column, order))

	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}
	if filters.Offset > 0 {
		query = query.Offset(filters.Offset)
	}
	return query
}

// translateDBError maps gorm errors to the repository sentinels, wrapping
// anything else with the failing operation.
func translateDBError(err error, op string, notFound error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return notFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return repositories.ErrDuplicateUser
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
