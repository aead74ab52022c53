package postgres

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/datatypes"

	"github.com/SAP-F-2025/accounts-service/internal/cache"
	"github.com/SAP-F-2025/accounts-service/internal/models"
)

func cachedUserRepository(t *testing.T) *userRepository {
	t.Helper()
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { client.Close() })

	caches := cache.NewCacheManager(client)
	return &userRepository{
		cache:  caches.User,
		caches: caches,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func TestUserCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	r := cachedUserRepository(t)

	user := &models.User{
		ID:       7,
		Username: "alice",
		Email:    "alice@example.com",
		Types:    datatypes.NewJSONSlice([]models.UserType{models.TypeTeacher}),
	}
	if err := user.SetPassword("s3cret-pass"); err != nil {
		t.Fatalf("SetPassword failed: %v", err)
	}
	r.cachePut(ctx, "id:7", user)

	cached, ok := r.cacheLookup(ctx, "id:7")
	if !ok {
		t.Fatal("expected a cache hit")
	}

	t.Run("KeepsPasswordHash", func(t *testing.T) {
		// PasswordHash is excluded from the model's JSON form, so a cached
		// user that loses it would wipe the credential on the next Save.
		if cached.PasswordHash == "" {
			t.Fatal("cached user lost its password hash")
		}
		if !cached.CheckPassword("s3cret-pass") {
			t.Error("CheckPassword failed against the cached hash")
		}
	})

	t.Run("KeepsFields", func(t *testing.T) {
		if cached.Username != "alice" {
			t.Errorf("expected username alice, got %q", cached.Username)
		}
		if cached.Email != "alice@example.com" {
			t.Errorf("expected email alice@example.com, got %q", cached.Email)
		}
		if len(cached.Types) != 1 || cached.Types[0] != models.TypeTeacher {
			t.Errorf("expected types [TEACHER], got %v", cached.Types)
		}
	})

	t.Run("MissReturnsNotOK", func(t *testing.T) {
		if _, ok := r.cacheLookup(ctx, "id:999"); ok {
			t.Error("expected a cache miss for an unknown key")
		}
	})
}
