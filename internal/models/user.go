package models

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/text/unicode/norm"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// UserType identifies one capacity a user account can act in. A single
// account may carry several types at once; each type has a corresponding
// one-to-one profile model (TeacherProfile, StudentProfile, ...).
//
// NOTE: when adding a type, also add its profile model and extend the
// profile repository's role switch; the three live in lockstep.
type UserType string

const (
	TypeTeacher   UserType = "TEACHER"
	TypeStudent   UserType = "STUDENT"
	TypeGuardian  UserType = "GUARDIAN"
	TypeCommittee UserType = "COMMITTEE"
	TypeStaff     UserType = "STAFF"
)

// AllUserTypes returns the closed set of recognized user types.
func AllUserTypes() []UserType {
	return []UserType{TypeTeacher, TypeStudent, TypeGuardian, TypeCommittee, TypeStaff}
}

// Label returns the display label for the type.
func (t UserType) Label() string {
	switch t {
	case TypeTeacher:
		return "Teacher"
	case TypeStudent:
		return "Student"
	case TypeGuardian:
		return "Guardian"
	case TypeCommittee:
		return "Committee"
	case TypeStaff:
		return "Staff"
	}
	return string(t)
}

// Valid reports whether t is one of the recognized user types.
func (t UserType) Valid() bool {
	switch t {
	case TypeTeacher, TypeStudent, TypeGuardian, TypeCommittee, TypeStaff:
		return true
	}
	return false
}

// ParseUserType parses a role code string into a UserType.
func ParseUserType(s string) (UserType, error) {
	t := UserType(strings.ToUpper(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("unknown user type %q", s)
	}
	return t, nil
}

// NormalizeTypes returns the canonical form of a type set: unrecognized
// codes dropped, duplicates removed, sorted by code. The result is never
// nil. Normalization is idempotent.
func NormalizeTypes(types []UserType) []UserType {
	out := make([]UserType, 0, len(types))
	for _, t := range types {
		if t.Valid() && !slices.Contains(out, t) {
			out = append(out, t)
		}
	}
	slices.Sort(out)
	return out
}

// DiffTypes compares two type sets and returns the types present only in
// current (added) and only in previous (removed). Both inputs are treated
// as sets; outputs are sorted.
func DiffTypes(previous, current []UserType) (added, removed []UserType) {
	added = make([]UserType, 0)
	removed = make([]UserType, 0)
	for _, t := range current {
		if !slices.Contains(previous, t) && !slices.Contains(added, t) {
			added = append(added, t)
		}
	}
	for _, t := range previous {
		if !slices.Contains(current, t) && !slices.Contains(removed, t) {
			removed = append(removed, t)
		}
	}
	slices.Sort(added)
	slices.Sort(removed)
	return added, removed
}

// EnsureType returns types with t added if missing, in normalized form.
func EnsureType(types []UserType, t UserType) []UserType {
	if slices.Contains(types, t) {
		return NormalizeTypes(types)
	}
	return NormalizeTypes(append(slices.Clone(types), t))
}

// usernameRegex allows unicode letters, digits and @/./+/-/_ only.
var usernameRegex = regexp.MustCompile(`^[\p{L}\p{N}_.@+-]+$`)

// ValidUsername reports whether username matches the allowed format.
func ValidUsername(username string) bool {
	return username != "" && usernameRegex.MatchString(username)
}

// NormalizeUsername applies unicode NFKC normalization to a username.
func NormalizeUsername(username string) string {
	return norm.NFKC.String(strings.TrimSpace(username))
}

// NormalizeEmail lowercases the domain part of an email address.
func NormalizeEmail(email string) string {
	email = strings.TrimSpace(email)
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return email
	}
	return email[:at] + "@" + strings.ToLower(email[at+1:])
}

type User struct {
	ID           uint   `json:"id" gorm:"primaryKey"`
	Username     string `json:"username" gorm:"uniqueIndex;not null;size:150" validate:"required,username"`
	FirstName    string `json:"first_name" gorm:"size:150"`
	LastName     string `json:"last_name" gorm:"size:150"`
	Email        string `json:"email" gorm:"index;size:254" validate:"omitempty,email"`
	PasswordHash string `json:"-" gorm:"not null;size:128"`

	IsStaff     bool `json:"is_staff" gorm:"not null;default:false"`
	IsSuperuser bool `json:"is_superuser" gorm:"not null;default:false"`
	IsActive    bool `json:"is_active" gorm:"not null;default:true"`

	// Types is the account's set of user types, stored as a jsonb array.
	// It is renormalized on every save (see BeforeSave) so the reconciler
	// always observes the canonical value.
	Types datatypes.JSONSlice[UserType] `json:"types" gorm:"type:jsonb" validate:"omitempty,dive,usertype"`

	DateJoined time.Time `json:"date_joined" gorm:"not null"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"modified"`
}

func (User) TableName() string {
	return "users"
}

// BeforeCreate sets the join timestamp when not provided by the caller.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.DateJoined.IsZero() {
		u.DateJoined = time.Now()
	}
	return nil
}

// BeforeSave normalizes the type set before any persistence, direct or via
// a role view, so change detection downstream compares canonical values.
func (u *User) BeforeSave(tx *gorm.DB) error {
	u.Types = datatypes.NewJSONSlice(NormalizeTypes(u.Types))
	u.Email = NormalizeEmail(u.Email)
	return nil
}

// HasType reports whether the account carries the given user type.
func (u *User) HasType(t UserType) bool {
	return slices.Contains(u.Types, t)
}

// FullName returns the first name plus the last name, space separated.
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// ShortName returns the short name for the user.
func (u *User) ShortName() string {
	return u.FirstName
}

// SetPassword hashes the given plain-text password into PasswordHash.
func (u *User) SetPassword(password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	u.PasswordHash = string(hash)
	return nil
}

// CheckPassword reports whether the given plain-text password matches the
// stored hash.
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}
