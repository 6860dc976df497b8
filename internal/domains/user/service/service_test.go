package service_test

import (
	"context"
	"errors"
	"stay/config"
	mockOtel "stay/infras/otel/mocks"
	"stay/internal/domains/user/mocks"
	"stay/internal/domains/user/model"
	"stay/internal/domains/user/model/dto"
	"stay/internal/domains/user/service"
	gDto "stay/shared/dto"
	"stay/shared/failure"
	"stay/shared/password"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
)

const userID = "5d0c7d4e-2b7a-4c1e-9d7e-3a4b5c6d7e8f"

func cheapHash(value string) (string, error) {
	return password.HashWithCost(value, bcrypt.MinCost)
}

func TestUserService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockUser(ctrl)
	svc := service.NewWithHasher(repo, &config.Config{}, mockOtel.NewOtel(), cheapHash)

	var stored model.User

	repo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, mod model.User) error {
		stored = mod

		return nil
	})

	res, err := svc.Create(context.Background(), dto.CreateUserRequest{
		Username: "maria",
		Email:    "maria@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	assert.Equal(t, "maria", res.Username)
	assert.Equal(t, stored.ID, res.ID)
	assert.NotEqual(t, "password123", stored.Password)
	assert.NoError(t, password.Verify("password123", stored.Password))
	assert.Equal(t, "maria", stored.String())
}

func TestUserService_Create_Invalid(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := service.NewWithHasher(mocks.NewMockUser(ctrl), &config.Config{}, mockOtel.NewOtel(), cheapHash)

	tests := []struct {
		name string
		req  dto.CreateUserRequest
	}{
		{name: "missing username", req: dto.CreateUserRequest{Password: "password123"}},
		{name: "short password", req: dto.CreateUserRequest{Username: "maria", Password: "short"}},
		{name: "bad email", req: dto.CreateUserRequest{Username: "maria", Email: "maria", Password: "password123"}},
		{name: "caller supplied id", req: dto.CreateUserRequest{ID: userID, Username: "maria", Password: "password123"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tt.req)
			assert.True(t, failure.IsBadRequest(err))
		})
	}
}

func TestUserService_Create_DuplicateUsername(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockUser(ctrl)
	svc := service.NewWithHasher(repo, &config.Config{}, mockOtel.NewOtel(), cheapHash)

	repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(failure.Conflict("user already exists (users_username_key)"))

	_, err := svc.Create(context.Background(), dto.CreateUserRequest{Username: "maria", Password: "password123"})
	assert.True(t, failure.IsConflict(err))
}

func TestUserService_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockUser(ctrl)
	svc := service.New(repo, &config.Config{}, mockOtel.NewOtel())

	repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.User{ID: userID, Username: "maria"}, nil)
	repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.User{}, nil)

	res, err := svc.Get(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, "maria", res.Username)

	_, err = svc.Get(context.Background(), userID)
	assert.True(t, failure.IsNotFound(err))
}

func TestUserService_GetAll(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockUser(ctrl)
	svc := service.New(repo, &config.Config{}, mockOtel.NewOtel())
	superuser := false

	repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(1, nil)
	repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]model.User, error) {
			where, _ := filter.GetWhereClause()
			assert.Equal(t, "(users.is_superuser = :is_superuser)", where)

			return []model.User{{ID: userID, Username: "maria"}}, nil
		})

	res, err := svc.GetAll(context.Background(), gDto.QueryParams{}, dto.UserFilter{IsSuperuser: &superuser})
	require.NoError(t, err)
	require.Len(t, res.Users, 1)
	assert.Equal(t, 1, res.TotalPage)
}

func TestUserService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockUser(ctrl)
	svc := service.New(repo, &config.Config{}, mockOtel.NewOtel())

	repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(int64(1), nil)
	assert.NoError(t, svc.Delete(context.Background(), userID))

	repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(int64(0), nil)
	assert.True(t, failure.IsNotFound(svc.Delete(context.Background(), userID)))

	repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(int64(0), errors.New("connection refused"))
	assert.Error(t, svc.Delete(context.Background(), userID))

	assert.True(t, failure.IsBadRequest(svc.Delete(context.Background(), "maria")))
}
