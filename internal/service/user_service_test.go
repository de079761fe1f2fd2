package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"taskmanager/internal/model"
)

func TestUserService_GetUser(t *testing.T) {
	repo := new(MockUserRepository)
	repo.On("FindByID", mock.Anything, uint(1)).Return(&model.User{ID: 1, Email: "a@example.com"}, nil)
	repo.On("FindByID", mock.Anything, uint(2)).Return(nil, gorm.ErrRecordNotFound)
	svc := NewUserService(repo)

	user, err := svc.GetUser(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "a@example.com", user.Email)

	_, err = svc.GetUser(context.Background(), 2)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserService_GrantAdmin(t *testing.T) {
	t.Run("promotes user", func(t *testing.T) {
		user := &model.User{ID: 1, Email: "a@example.com"}
		repo := new(MockUserRepository)
		repo.On("FindByEmail", mock.Anything, "a@example.com").Return(user, nil)
		repo.On("Update", mock.Anything, user).Return(nil)

		got, err := NewUserService(repo).GrantAdmin(context.Background(), "a@EXAMPLE.com")

		require.NoError(t, err)
		assert.True(t, got.IsAdmin)
		repo.AssertExpectations(t)
	})

	t.Run("already admin", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("FindByEmail", mock.Anything, "a@example.com").Return(&model.User{ID: 1, IsAdmin: true}, nil)

		_, err := NewUserService(repo).GrantAdmin(context.Background(), "a@example.com")

		require.NoError(t, err)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("unknown email", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("FindByEmail", mock.Anything, "x@example.com").Return(nil, gorm.ErrRecordNotFound)

		_, err := NewUserService(repo).GrantAdmin(context.Background(), "x@example.com")

		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}
