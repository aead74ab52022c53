package models

import (
	"time"
)

// Profile models are the one-to-one side records per user type. Rows are
// created by the type-change reconciler when the matching type first
// appears in User.Types, never by direct caller action. A row is kept even
// after the type is removed from the set; removal handling is an open
// extension point.

type TeacherProfile struct {
	ID          uint    `json:"id" gorm:"primaryKey"`
	UserID      uint    `json:"user_id" gorm:"uniqueIndex;not null"`
	User        User    `json:"-" gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Designation *string `json:"designation" gorm:"size:20"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"modified"`
}

func (TeacherProfile) TableName() string {
	return "teacher_profiles"
}

type StudentProfile struct {
	ID     uint    `json:"id" gorm:"primaryKey"`
	UserID uint    `json:"user_id" gorm:"uniqueIndex;not null"`
	User   User    `json:"-" gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Level  *string `json:"level" gorm:"size:20"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"modified"`
}

func (StudentProfile) TableName() string {
	return "student_profiles"
}

type GuardianProfile struct {
	ID         uint    `json:"id" gorm:"primaryKey"`
	UserID     uint    `json:"user_id" gorm:"uniqueIndex;not null"`
	User       User    `json:"-" gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Occupation *string `json:"occupation" gorm:"size:50"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"modified"`
}

func (GuardianProfile) TableName() string {
	return "guardian_profiles"
}

type CommitteeProfile struct {
	ID          uint    `json:"id" gorm:"primaryKey"`
	UserID      uint    `json:"user_id" gorm:"uniqueIndex;not null"`
	User        User    `json:"-" gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Designation *string `json:"designation" gorm:"size:20"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"modified"`
}

func (CommitteeProfile) TableName() string {
	return "committee_profiles"
}

type StaffProfile struct {
	ID          uint    `json:"id" gorm:"primaryKey"`
	UserID      uint    `json:"user_id" gorm:"uniqueIndex;not null"`
	User        User    `json:"-" gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Designation *string `json:"designation" gorm:"size:20"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"modified"`
}

func (StaffProfile) TableName() string {
	return "staff_profiles"
}
