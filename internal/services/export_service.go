package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/SAP-F-2025/accounts-service/internal/models"
	"github.com/SAP-F-2025/accounts-service/internal/repositories"
)

type exportService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

func NewExportService(repo repositories.Repository, logger *slog.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

var rosterHeaders = []string{"ID", "Username", "Full Name", "Email", "Types", "Active", "Staff", "Date Joined"}

// ExportRoster renders the user roster as an xlsx workbook. When
// userType is non-nil only users holding that type are included.
func (s *exportService) ExportRoster(ctx context.Context, userType *models.UserType) ([]byte, error) {
	filters := repositories.UserFilters{SortBy: "username", SortOrder: "asc"}
	if userType != nil {
		filters.Types = []models.UserType{*userType}
	}

	users, total, err := s.repo.User().List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("load roster: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Roster"
	f.SetSheetName("Sheet1", sheet)

	for col, header := range rosterHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, fmt.Errorf("write header: %w", err)
		}
	}

	for row, user := range users {
		values := []any{
			user.ID,
			user.Username,
			user.FullName(),
			user.Email,
			strings.Join(typesToStrings(user.Types), ","),
			user.IsActive,
			user.IsStaff,
			user.DateJoined.Format("2006-01-02 15:04:05"),
		}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, fmt.Errorf("write row %d: %w", row+2, err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("render workbook: %w", err)
	}

	s.logger.Info("roster exported", "users", total, "scoped", userType != nil)
	return buf.Bytes(), nil
}
