package service

import (
	"context"
	"io"
	"testing"

	"stayhaven/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterUser(t *testing.T) {
	ctx := context.Background()
	logger := zerolog.New(io.Discard)

	t.Run("NormalizesEmail", func(t *testing.T) {
		repo := new(mockRepo)
		svc := NewUserService(repo, &logger)

		user := &models.User{Email: "  Ana@Example.COM ", Username: "ana", Role: models.RoleHost}
		repo.On("CreateOrUpdateUser", ctx, user).Return(nil)

		err := svc.RegisterUser(ctx, user)
		require.NoError(t, err)
		assert.Equal(t, "ana@example.com", user.Email)
		assert.Equal(t, models.RoleHost, user.Role)
	})

	t.Run("UnknownRoleFallsBackToGuest", func(t *testing.T) {
		repo := new(mockRepo)
		svc := NewUserService(repo, &logger)

		user := &models.User{Email: "bob@example.com", Role: "superuser"}
		repo.On("CreateOrUpdateUser", ctx, user).Return(nil)

		err := svc.RegisterUser(ctx, user)
		require.NoError(t, err)
		assert.Equal(t, models.RoleGuest, user.Role)
	})

	t.Run("EmptyEmailRejected", func(t *testing.T) {
		repo := new(mockRepo)
		svc := NewUserService(repo, &logger)

		err := svc.RegisterUser(ctx, &models.User{Email: "   "})
		assert.Error(t, err)
	})
}

func TestGetUserByEmail(t *testing.T) {
	ctx := context.Background()
	logger := zerolog.New(io.Discard)

	repo := new(mockRepo)
	svc := NewUserService(repo, &logger)

	want := &models.User{ID: 1, Email: "ana@example.com"}
	repo.On("GetUserByEmail", ctx, "ana@example.com").Return(want, nil)

	got, err := svc.GetUserByEmail(ctx, " Ana@Example.com ")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
