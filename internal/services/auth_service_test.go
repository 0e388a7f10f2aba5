package services

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eems-edu/exam-marking-service/internal/models"
	"github.com/eems-edu/exam-marking-service/internal/store"
	"github.com/eems-edu/exam-marking-service/internal/utils"
	"github.com/eems-edu/exam-marking-service/internal/validator"
)

func newAuthFixture(t *testing.T) (AuthService, *store.Store) {
	t.Helper()
	logger := utils.NewDevelopmentLogger()
	st := store.Open(filepath.Join(t.TempDir(), "data.json"), logger)
	SeedDefaultUsers(st, logger)
	auth := NewAuthService(st, validator.New(), logger, "test-secret", time.Hour)
	return auth, st
}

func TestAuthService_Login(t *testing.T) {
	auth, _ := newAuthFixture(t)
	ctx := context.Background()

	t.Run("seeded admin can log in", func(t *testing.T) {
		user, token, err := auth.Login(ctx, "admin@test.com", "admin123")
		require.NoError(t, err)
		assert.Equal(t, models.RoleAdmin, user.Role)
		assert.NotEmpty(t, token)

		claims, err := auth.VerifyToken(token)
		require.NoError(t, err)
		assert.Equal(t, "admin@test.com", claims.Email)
		assert.Equal(t, models.RoleAdmin, claims.Role)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, _, err := auth.Login(ctx, "admin@test.com", "nope")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email gets the same error", func(t *testing.T) {
		_, _, err := auth.Login(ctx, "ghost@test.com", "admin123")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestAuthService_VerifyToken(t *testing.T) {
	auth, _ := newAuthFixture(t)

	t.Run("garbage token", func(t *testing.T) {
		_, err := auth.VerifyToken("not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("token signed with another secret", func(t *testing.T) {
		logger := utils.NewDevelopmentLogger()
		st := store.Open(filepath.Join(t.TempDir(), "data.json"), logger)
		SeedDefaultUsers(st, logger)
		other := NewAuthService(st, validator.New(), logger, "other-secret", time.Hour)

		_, token, err := other.Login(context.Background(), "admin@test.com", "admin123")
		require.NoError(t, err)

		_, err = auth.VerifyToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired token", func(t *testing.T) {
		logger := utils.NewDevelopmentLogger()
		st := store.Open(filepath.Join(t.TempDir(), "data.json"), logger)
		SeedDefaultUsers(st, logger)
		shortLived := NewAuthService(st, validator.New(), logger, "test-secret", -time.Minute)

		_, token, err := shortLived.Login(context.Background(), "admin@test.com", "admin123")
		require.NoError(t, err)

		_, err = auth.VerifyToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestAuthService_Register(t *testing.T) {
	auth, st := newAuthFixture(t)
	ctx := context.Background()

	t.Run("defaults to student role", func(t *testing.T) {
		user, err := auth.Register(ctx, RegisterRequest{
			Email:    "new@test.com",
			Password: "secret123",
		})
		require.NoError(t, err)
		assert.Equal(t, models.RoleStudent, user.Role)

		stored, ok := st.FindUserByEmail("new@test.com")
		require.True(t, ok)
		assert.True(t, CheckPasswordHash("secret123", stored.PasswordHash))
	})

	t.Run("duplicate email", func(t *testing.T) {
		_, err := auth.Register(ctx, RegisterRequest{
			Email:    "new@test.com",
			Password: "secret456",
		})
		assert.ErrorIs(t, err, ErrDuplicateEmail)
	})

	t.Run("short password fails validation", func(t *testing.T) {
		_, err := auth.Register(ctx, RegisterRequest{
			Email:    "short@test.com",
			Password: "abc",
		})
		assert.Error(t, err)
	})
}

func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := HashPassword("hunter2")
	require.NoError(t, err)

	assert.True(t, CheckPasswordHash("hunter2", hash))
	assert.False(t, CheckPasswordHash("hunter3", hash))
}
