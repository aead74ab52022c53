package repositories

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/SAP-F-2025/accounts-service/internal/models"
)

// fakeProfileRepository tracks profile rows per (type, user) in memory and
// records every call so tests can assert on reconciler behavior.
type fakeProfileRepository struct {
	rows    map[string]bool
	creates []string
	ensures []string
	lookups []string
	deletes []string
}

func newFakeProfileRepository() *fakeProfileRepository {
	return &fakeProfileRepository{rows: make(map[string]bool)}
}

func key(t models.UserType, userID uint) string {
	return fmt.Sprintf("%s/%d", t, userID)
}

func (f *fakeProfileRepository) CreateForType(ctx context.Context, t models.UserType, userID uint) error {
	k := key(t, userID)
	if f.rows[k] {
		return fmt.Errorf("duplicate profile row %s", k)
	}
	f.rows[k] = true
	f.creates = append(f.creates, k)
	return nil
}

func (f *fakeProfileRepository) EnsureForType(ctx context.Context, t models.UserType, userID uint) error {
	k := key(t, userID)
	f.rows[k] = true
	f.ensures = append(f.ensures, k)
	return nil
}

func (f *fakeProfileRepository) ExistsForType(ctx context.Context, t models.UserType, userID uint) (bool, error) {
	k := key(t, userID)
	f.lookups = append(f.lookups, k)
	return f.rows[k], nil
}

func (f *fakeProfileRepository) Teacher(ctx context.Context, userID uint) (*models.TeacherProfile, error) {
	if !f.rows[key(models.TypeTeacher, userID)] {
		return nil, ErrProfileNotFound
	}
	return &models.TeacherProfile{UserID: userID}, nil
}

func (f *fakeProfileRepository) Student(ctx context.Context, userID uint) (*models.StudentProfile, error) {
	if !f.rows[key(models.TypeStudent, userID)] {
		return nil, ErrProfileNotFound
	}
	return &models.StudentProfile{UserID: userID}, nil
}

func (f *fakeProfileRepository) Guardian(ctx context.Context, userID uint) (*models.GuardianProfile, error) {
	if !f.rows[key(models.TypeGuardian, userID)] {
		return nil, ErrProfileNotFound
	}
	return &models.GuardianProfile{UserID: userID}, nil
}

func (f *fakeProfileRepository) Committee(ctx context.Context, userID uint) (*models.CommitteeProfile, error) {
	if !f.rows[key(models.TypeCommittee, userID)] {
		return nil, ErrProfileNotFound
	}
	return &models.CommitteeProfile{UserID: userID}, nil
}

func (f *fakeProfileRepository) Staff(ctx context.Context, userID uint) (*models.StaffProfile, error) {
	if !f.rows[key(models.TypeStaff, userID)] {
		return nil, ErrProfileNotFound
	}
	return &models.StaffProfile{UserID: userID}, nil
}

func (f *fakeProfileRepository) SaveTeacher(ctx context.Context, p *models.TeacherProfile) error {
	return nil
}
func (f *fakeProfileRepository) SaveStudent(ctx context.Context, p *models.StudentProfile) error {
	return nil
}
func (f *fakeProfileRepository) SaveGuardian(ctx context.Context, p *models.GuardianProfile) error {
	return nil
}
func (f *fakeProfileRepository) SaveCommittee(ctx context.Context, p *models.CommitteeProfile) error {
	return nil
}
func (f *fakeProfileRepository) SaveStaff(ctx context.Context, p *models.StaffProfile) error {
	return nil
}

func testReconciler() *ProfileReconciler {
	return NewProfileReconciler(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestReconcilerCreate(t *testing.T) {
	ctx := context.Background()
	rec := testReconciler()

	t.Run("creates one row per type present", func(t *testing.T) {
		profiles := newFakeProfileRepository()
		user := &models.User{ID: 1, Types: []models.UserType{models.TypeStudent, models.TypeTeacher}}

		if err := rec.UserSaved(ctx, profiles, user, nil, true); err != nil {
			t.Fatalf("UserSaved failed: %v", err)
		}
		if len(profiles.rows) != 2 {
			t.Fatalf("expected 2 profile rows, got %d", len(profiles.rows))
		}
		for _, typ := range user.Types {
			if !profiles.rows[key(typ, 1)] {
				t.Errorf("missing %s profile row", typ)
			}
		}
	})

	t.Run("empty type set creates nothing", func(t *testing.T) {
		profiles := newFakeProfileRepository()
		user := &models.User{ID: 2}

		if err := rec.UserSaved(ctx, profiles, user, nil, true); err != nil {
			t.Fatalf("UserSaved failed: %v", err)
		}
		if len(profiles.rows) != 0 {
			t.Errorf("expected no profile rows, got %d", len(profiles.rows))
		}
	})
}

func TestReconcilerUpdate(t *testing.T) {
	ctx := context.Background()
	rec := testReconciler()

	t.Run("added type creates exactly one new row", func(t *testing.T) {
		profiles := newFakeProfileRepository()
		_ = profiles.CreateForType(ctx, models.TypeTeacher, 1)

		user := &models.User{ID: 1, Types: []models.UserType{models.TypeGuardian, models.TypeTeacher}}
		prev := []models.UserType{models.TypeTeacher}

		if err := rec.UserSaved(ctx, profiles, user, prev, false); err != nil {
			t.Fatalf("UserSaved failed: %v", err)
		}
		if len(profiles.rows) != 2 {
			t.Fatalf("expected 2 rows, got %d", len(profiles.rows))
		}
		if len(profiles.ensures) != 1 || profiles.ensures[0] != key(models.TypeGuardian, 1) {
			t.Errorf("ensures = %v, want exactly one guardian upsert", profiles.ensures)
		}
	})

	t.Run("re-saving the same snapshot is a no-op", func(t *testing.T) {
		profiles := newFakeProfileRepository()
		_ = profiles.CreateForType(ctx, models.TypeTeacher, 1)

		user := &models.User{ID: 1, Types: []models.UserType{models.TypeTeacher}}
		prev := []models.UserType{models.TypeTeacher}

		if err := rec.UserSaved(ctx, profiles, user, prev, false); err != nil {
			t.Fatalf("UserSaved failed: %v", err)
		}
		if len(profiles.ensures) != 0 || len(profiles.creates) != 1 {
			t.Errorf("unexpected writes: creates=%v ensures=%v", profiles.creates, profiles.ensures)
		}
	})

	t.Run("re-adding a type tolerates the surviving row", func(t *testing.T) {
		profiles := newFakeProfileRepository()
		_ = profiles.CreateForType(ctx, models.TypeTeacher, 1)

		// TEACHER was removed earlier, its row kept, now re-added.
		user := &models.User{ID: 1, Types: []models.UserType{models.TypeStudent, models.TypeTeacher}}
		prev := []models.UserType{models.TypeStudent}

		if err := rec.UserSaved(ctx, profiles, user, prev, false); err != nil {
			t.Fatalf("UserSaved failed: %v", err)
		}
		if len(profiles.rows) != 1 {
			t.Errorf("expected the surviving row only, got %d rows", len(profiles.rows))
		}
	})

	t.Run("removed type leaves its row untouched", func(t *testing.T) {
		profiles := newFakeProfileRepository()
		_ = profiles.CreateForType(ctx, models.TypeTeacher, 1)
		_ = profiles.CreateForType(ctx, models.TypeStudent, 1)

		user := &models.User{ID: 1, Types: []models.UserType{models.TypeStudent}}
		prev := []models.UserType{models.TypeStudent, models.TypeTeacher}

		if err := rec.UserSaved(ctx, profiles, user, prev, false); err != nil {
			t.Fatalf("UserSaved failed: %v", err)
		}
		if !profiles.rows[key(models.TypeTeacher, 1)] {
			t.Error("teacher profile row was removed, expected it kept")
		}
		if len(profiles.deletes) != 0 {
			t.Errorf("unexpected deletes: %v", profiles.deletes)
		}
	})

	t.Run("removed type with no row is ignored", func(t *testing.T) {
		profiles := newFakeProfileRepository()

		user := &models.User{ID: 1, Types: []models.UserType{}}
		prev := []models.UserType{models.TypeCommittee}

		if err := rec.UserSaved(ctx, profiles, user, prev, false); err != nil {
			t.Fatalf("UserSaved failed: %v", err)
		}
		if len(profiles.lookups) != 1 {
			t.Errorf("lookups = %v, want one committee lookup", profiles.lookups)
		}
	})
}
