package models

import (
	"slices"
	"testing"
)

func TestNormalizeTypes(t *testing.T) {
	tests := []struct {
		name  string
		input []UserType
		want  []UserType
	}{
		{name: "nil", input: nil, want: []UserType{}},
		{name: "empty", input: []UserType{}, want: []UserType{}},
		{
			name:  "drops unrecognized codes",
			input: []UserType{TypeTeacher, UserType("BOGUS")},
			want:  []UserType{TypeTeacher},
		},
		{
			name:  "dedupes and sorts",
			input: []UserType{TypeStudent, TypeStudent, TypeTeacher},
			want:  []UserType{TypeStudent, TypeTeacher},
		},
		{
			name:  "sorts by code",
			input: []UserType{TypeTeacher, TypeCommittee, TypeGuardian},
			want:  []UserType{TypeCommittee, TypeGuardian, TypeTeacher},
		},
		{
			name:  "full set",
			input: []UserType{TypeStaff, TypeTeacher, TypeStudent, TypeGuardian, TypeCommittee},
			want:  []UserType{TypeCommittee, TypeGuardian, TypeStaff, TypeStudent, TypeTeacher},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeTypes(tt.input)
			if !slices.Equal(got, tt.want) {
				t.Errorf("NormalizeTypes(%v) = %v, want %v", tt.input, got, tt.want)
			}
			// normalization must be idempotent
			again := NormalizeTypes(got)
			if !slices.Equal(again, got) {
				t.Errorf("NormalizeTypes not idempotent: %v != %v", again, got)
			}
		})
	}
}

func TestDiffTypes(t *testing.T) {
	tests := []struct {
		name        string
		previous    []UserType
		current     []UserType
		wantAdded   []UserType
		wantRemoved []UserType
	}{
		{
			name:        "no change",
			previous:    []UserType{TypeTeacher},
			current:     []UserType{TypeTeacher},
			wantAdded:   []UserType{},
			wantRemoved: []UserType{},
		},
		{
			name:        "type added",
			previous:    []UserType{TypeTeacher},
			current:     []UserType{TypeGuardian, TypeTeacher},
			wantAdded:   []UserType{TypeGuardian},
			wantRemoved: []UserType{},
		},
		{
			name:        "type removed",
			previous:    []UserType{TypeStudent, TypeTeacher},
			current:     []UserType{TypeStudent},
			wantAdded:   []UserType{},
			wantRemoved: []UserType{TypeTeacher},
		},
		{
			name:        "swap",
			previous:    []UserType{TypeStaff},
			current:     []UserType{TypeCommittee},
			wantAdded:   []UserType{TypeCommittee},
			wantRemoved: []UserType{TypeStaff},
		},
		{
			name:        "from empty",
			previous:    nil,
			current:     []UserType{TypeStudent, TypeTeacher},
			wantAdded:   []UserType{TypeStudent, TypeTeacher},
			wantRemoved: []UserType{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			added, removed := DiffTypes(tt.previous, tt.current)
			if !slices.Equal(added, tt.wantAdded) {
				t.Errorf("added = %v, want %v", added, tt.wantAdded)
			}
			if !slices.Equal(removed, tt.wantRemoved) {
				t.Errorf("removed = %v, want %v", removed, tt.wantRemoved)
			}
		})
	}
}

func TestEnsureType(t *testing.T) {
	got := EnsureType([]UserType{TypeTeacher}, TypeStudent)
	if !slices.Equal(got, []UserType{TypeStudent, TypeTeacher}) {
		t.Errorf("EnsureType = %v, want [STUDENT TEACHER]", got)
	}

	// already present: unchanged beyond normalization
	got = EnsureType([]UserType{TypeTeacher, TypeStudent}, TypeStudent)
	if !slices.Equal(got, []UserType{TypeStudent, TypeTeacher}) {
		t.Errorf("EnsureType = %v, want [STUDENT TEACHER]", got)
	}
}

func TestParseUserType(t *testing.T) {
	if got, err := ParseUserType("teacher"); err != nil || got != TypeTeacher {
		t.Errorf("ParseUserType(teacher) = %v, %v", got, err)
	}
	if got, err := ParseUserType(" STAFF "); err != nil || got != TypeStaff {
		t.Errorf("ParseUserType( STAFF ) = %v, %v", got, err)
	}
	if _, err := ParseUserType("BOGUS"); err == nil {
		t.Error("ParseUserType(BOGUS) should fail")
	}
}

func TestValidUsername(t *testing.T) {
	valid := []string{"alice", "alice.bob", "alice@school", "al+ice", "ali-ce", "ali_ce", "Ålice42", "学生一号"}
	for _, u := range valid {
		if !ValidUsername(u) {
			t.Errorf("ValidUsername(%q) = false, want true", u)
		}
	}
	invalid := []string{"", "alice bob", "alice!", "ali#ce", "a/b"}
	for _, u := range invalid {
		if ValidUsername(u) {
			t.Errorf("ValidUsername(%q) = true, want false", u)
		}
	}
}

func TestNormalizeEmail(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Alice@EXAMPLE.Com", "Alice@example.com"},
		{"alice@example.com", "alice@example.com"},
		{"no-at-sign", "no-at-sign"},
		{"", ""},
		{" alice@School.EDU ", "alice@school.edu"},
	}
	for _, tt := range tests {
		if got := NormalizeEmail(tt.in); got != tt.want {
			t.Errorf("NormalizeEmail(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestUserBeforeSaveNormalizes(t *testing.T) {
	u := &User{
		Username: "alice",
		Email:    "alice@EXAMPLE.com",
		Types:    []UserType{TypeTeacher, TypeTeacher, UserType("BOGUS"), TypeCommittee},
	}
	if err := u.BeforeSave(nil); err != nil {
		t.Fatalf("BeforeSave failed: %v", err)
	}
	if !slices.Equal([]UserType(u.Types), []UserType{TypeCommittee, TypeTeacher}) {
		t.Errorf("Types = %v, want [COMMITTEE TEACHER]", u.Types)
	}
	if u.Email != "alice@example.com" {
		t.Errorf("Email = %q, want alice@example.com", u.Email)
	}
}

func TestUserPassword(t *testing.T) {
	u := &User{Username: "alice"}
	if err := u.SetPassword("s3cret-pass"); err != nil {
		t.Fatalf("SetPassword failed: %v", err)
	}
	if u.PasswordHash == "" || u.PasswordHash == "s3cret-pass" {
		t.Error("password was not hashed")
	}
	if !u.CheckPassword("s3cret-pass") {
		t.Error("CheckPassword rejected the correct password")
	}
	if u.CheckPassword("wrong") {
		t.Error("CheckPassword accepted a wrong password")
	}
}

func TestUserFullName(t *testing.T) {
	u := &User{FirstName: "Alice", LastName: "Rahman"}
	if got := u.FullName(); got != "Alice Rahman" {
		t.Errorf("FullName = %q", got)
	}
	u = &User{FirstName: "Alice"}
	if got := u.FullName(); got != "Alice" {
		t.Errorf("FullName = %q", got)
	}
}
