package validator

// CreateUserRequest represents the request structure for creating users
type CreateUserRequest struct {
	Username  string   `json:"username" validate:"required,username,max=150"`
	Email     string   `json:"email" validate:"omitempty,email,max=254"`
	Password  string   `json:"password" validate:"omitempty,min=8,max=128"`
	FirstName string   `json:"first_name" validate:"omitempty,max=150"`
	LastName  string   `json:"last_name" validate:"omitempty,max=150"`
	Types     []string `json:"types" validate:"omitempty,dive,usertype"`

	// Flags default to false for regular users; CreateSuperuser defaults
	// both to true and rejects explicit false values.
	IsStaff     *bool `json:"is_staff"`
	IsSuperuser *bool `json:"is_superuser"`
	IsActive    *bool `json:"is_active"`
}

// UpdateUserRequest represents partial field updates to a user
type UpdateUserRequest struct {
	Email     *string `json:"email" validate:"omitempty,email,max=254"`
	FirstName *string `json:"first_name" validate:"omitempty,max=150"`
	LastName  *string `json:"last_name" validate:"omitempty,max=150"`
	IsStaff   *bool   `json:"is_staff"`
	IsActive  *bool   `json:"is_active"`
}

// UpdateTypesRequest replaces a user's type set; the stored value is the
// normalized form of Types.
type UpdateTypesRequest struct {
	Types []string `json:"types" validate:"required,dive,usertype"`
}

// SetPasswordRequest carries a new password for an existing user
type SetPasswordRequest struct {
	Password string `json:"password" validate:"required,min=8,max=128"`
}

// UpdateTeacherProfileRequest updates the teacher side record
type UpdateTeacherProfileRequest struct {
	Designation *string `json:"designation" validate:"omitempty,max=20"`
}

// UpdateStudentProfileRequest updates the student side record
type UpdateStudentProfileRequest struct {
	Level *string `json:"level" validate:"omitempty,max=20"`
}

// UpdateGuardianProfileRequest updates the guardian side record
type UpdateGuardianProfileRequest struct {
	Occupation *string `json:"occupation" validate:"omitempty,max=50"`
}

// UpdateCommitteeProfileRequest updates the committee side record
type UpdateCommitteeProfileRequest struct {
	Designation *string `json:"designation" validate:"omitempty,max=20"`
}

// UpdateStaffProfileRequest updates the staff side record
type UpdateStaffProfileRequest struct {
	Designation *string `json:"designation" validate:"omitempty,max=20"`
}
