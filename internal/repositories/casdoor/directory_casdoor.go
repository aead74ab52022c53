// Package casdoor adapts a Casdoor organization as an external account
// directory. The accounts service owns user data; the directory is only an
// import source for bootstrapping accounts from an existing IdP.
package casdoor

import (
	"context"
	"fmt"
	"time"

	"github.com/casdoor/casdoor-go-sdk/casdoorsdk"

	"github.com/SAP-F-2025/accounts-service/internal/models"
)

// CasdoorConfig holds the configuration for Casdoor connection
type CasdoorConfig struct {
	Endpoint         string
	ClientID         string
	ClientSecret     string
	Certificate      string
	OrganizationName string
	ApplicationName  string
}

// Enabled reports whether the adapter has enough configuration to run.
func (c CasdoorConfig) Enabled() bool {
	return c.Endpoint != "" && c.ClientID != ""
}

type Directory struct {
	client *casdoorsdk.Client
	config CasdoorConfig
}

func NewDirectory(config CasdoorConfig) *Directory {
	client := casdoorsdk.NewClient(
		config.Endpoint,
		config.ClientID,
		config.ClientSecret,
		config.Certificate,
		config.OrganizationName,
		config.ApplicationName,
	)
	return &Directory{client: client, config: config}
}

// FetchUsers lists the organization's users mapped into account records.
// Passwords are not imported; accounts arrive with no usable password.
func (d *Directory) FetchUsers(ctx context.Context) ([]*models.User, error) {
	casdoorUsers, err := d.client.GetUsers()
	if err != nil {
		return nil, fmt.Errorf("fetch users from casdoor: %w", err)
	}

	users := make([]*models.User, 0, len(casdoorUsers))
	for _, cu := range casdoorUsers {
		if cu == nil || cu.Name == "" {
			continue
		}
		users = append(users, d.mapUser(cu))
	}
	return users, nil
}

func (d *Directory) mapUser(cu *casdoorsdk.User) *models.User {
	user := &models.User{
		Username:  models.NormalizeUsername(cu.Name),
		Email:     models.NormalizeEmail(cu.Email),
		FirstName: cu.FirstName,
		LastName:  cu.LastName,
		IsActive:  !cu.IsForbidden && !cu.IsDeleted,
		IsStaff:   cu.IsAdmin,
		Types:     mapTypes(cu),
	}
	if user.FirstName == "" && cu.DisplayName != "" {
		user.FirstName = cu.DisplayName
	}
	if cu.CreatedTime != "" {
		if joined, err := time.Parse(time.RFC3339, cu.CreatedTime); err == nil {
			user.DateJoined = joined
		}
	}
	return user
}

// mapTypes derives the type set from the Casdoor tag and group names;
// anything that is not a recognized role code is skipped.
func mapTypes(cu *casdoorsdk.User) []models.UserType {
	var types []models.UserType
	if t, err := models.ParseUserType(cu.Tag); err == nil {
		types = append(types, t)
	}
	for _, group := range cu.Groups {
		if t, err := models.ParseUserType(group); err == nil {
			types = append(types, t)
		}
	}
	return models.NormalizeTypes(types)
}
