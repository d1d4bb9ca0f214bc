package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"hotel/config"
	"hotel/infras/otel/mocks"
	blogMocks "hotel/internal/domains/blog/mocks"
	bookingMocks "hotel/internal/domains/booking/mocks"
	userMocks "hotel/internal/domains/user/mocks"
	"hotel/internal/domains/user/model"
	"hotel/internal/domains/user/model/dto"
	"hotel/internal/domains/user/service"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	"hotel/shared/identity"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	repo     *userMocks.MockUser
	bookings *bookingMocks.MockBooking
	blogs    *blogMocks.MockBlog
	svc      service.User
}

func newFixture(t *testing.T) fixture {
	ctrl := gomock.NewController(t)

	f := fixture{
		repo:     userMocks.NewMockUser(ctrl),
		bookings: bookingMocks.NewMockBooking(ctrl),
		blogs:    blogMocks.NewMockBlog(ctrl),
	}
	f.svc = service.New(f.repo, f.bookings, f.blogs, &config.Config{}, mocks.NewOtel())

	return f
}

func adminContext() context.Context {
	return identity.WithIdentity(context.Background(), identity.Identity{UserID: "admin-1", Role: constant.RoleAdmin})
}

func TestUserService_Create(t *testing.T) {
	f := newFixture(t)

	req := dto.CreateUserRequest{
		Username: "frontdesk",
		Email:    "frontdesk@example.com",
		Password: "secret-pass",
		Role:     constant.RoleManager,
	}

	tests := []struct {
		name      string
		setupMock func()
		wantCode  int
	}{
		{
			name: "successful create",
			setupMock: func() {
				f.repo.EXPECT().Taken(gomock.Any(), gomock.Any(), gomock.Any(), "").Return(false, nil).Times(2)
				f.repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, user model.User) error {
						assert.Equal(t, "admin-1", user.CreatedBy)
						assert.True(t, user.Active)
						assert.NotEqual(t, req.Password, user.PasswordHash)

						return nil
					})
			},
		},
		{
			name: "duplicate username",
			setupMock: func() {
				f.repo.EXPECT().Taken(gomock.Any(), model.FieldUsername, req.Username, "").Return(true, nil)
			},
			wantCode: http.StatusConflict,
		},
		{
			name: "duplicate email",
			setupMock: func() {
				f.repo.EXPECT().Taken(gomock.Any(), model.FieldUsername, req.Username, "").Return(false, nil)
				f.repo.EXPECT().Taken(gomock.Any(), model.FieldEmail, req.Email, "").Return(true, nil)
			},
			wantCode: http.StatusConflict,
		},
		{
			name: "insert error",
			setupMock: func() {
				f.repo.EXPECT().Taken(gomock.Any(), gomock.Any(), gomock.Any(), "").Return(false, nil).Times(2)
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("insert error"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := f.svc.Create(adminContext(), req)

			if tt.wantCode == 0 {
				assert.NoError(t, err)
				assert.Equal(t, req.Username, res.Username)
			} else {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			}
		})
	}
}

func TestUserService_Update(t *testing.T) {
	f := newFixture(t)
	existing := model.User{ID: "user-1", Username: "guest01", Email: "guest01@example.com", Role: constant.RoleClient}

	tests := []struct {
		name      string
		req       dto.UpdateUserRequest
		setupMock func()
		wantCode  int
	}{
		{
			name:      "empty request",
			req:       dto.UpdateUserRequest{},
			setupMock: func() {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "not found",
			req:  dto.UpdateUserRequest{FullName: "Guest"},
			setupMock: func() {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.User{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "email taken by another user",
			req:  dto.UpdateUserRequest{Email: "taken@example.com"},
			setupMock: func() {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(existing, nil)
				f.repo.EXPECT().Taken(gomock.Any(), model.FieldEmail, "taken@example.com", existing.ID).Return(true, nil)
			},
			wantCode: http.StatusConflict,
		},
		{
			name: "password reset is hashed",
			req:  dto.UpdateUserRequest{Password: "brand-new-pass"},
			setupMock: func() {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(existing, nil)
				f.repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
						hash, ok := fields[model.FieldPasswordHash].(string)
						assert.True(t, ok)
						assert.NotEqual(t, "brand-new-pass", hash)

						return nil
					})
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := f.svc.Update(adminContext(), tt.req, existing.ID)

			if tt.wantCode == 0 {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			}
		})
	}
}

func TestUserService_Delete(t *testing.T) {
	f := newFixture(t)
	existing := model.User{ID: "user-1", Username: "guest01"}

	tests := []struct {
		name      string
		id        string
		setupMock func()
		wantCode  int
	}{
		{
			name:      "cannot delete yourself",
			id:        "admin-1",
			setupMock: func() {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "owns bookings",
			id:   existing.ID,
			setupMock: func() {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(existing, nil)
				f.bookings.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
			},
			wantCode: http.StatusConflict,
		},
		{
			name: "authors blogs",
			id:   existing.ID,
			setupMock: func() {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(existing, nil)
				f.bookings.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				f.blogs.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
			},
			wantCode: http.StatusConflict,
		},
		{
			name: "successful delete",
			id:   existing.ID,
			setupMock: func() {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(existing, nil)
				f.bookings.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				f.blogs.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := f.svc.Delete(adminContext(), tt.id)

			if tt.wantCode == 0 {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			}
		})
	}
}

func TestUserService_UpdateProfile(t *testing.T) {
	f := newFixture(t)
	ctx := identity.WithIdentity(context.Background(), identity.Identity{UserID: "user-1", Role: constant.RoleClient})

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.User{ID: "user-1"}, nil)
	f.repo.EXPECT().Taken(gomock.Any(), model.FieldEmail, "new@example.com", "user-1").Return(false, nil)
	f.repo.EXPECT().
		Update(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
			assert.Equal(t, "new@example.com", fields[model.FieldEmail])
			assert.Equal(t, "user-1", fields[constant.FieldModifiedBy])

			return nil
		})

	err := f.svc.UpdateProfile(ctx, dto.UpdateProfileRequest{Email: "new@example.com", DateOfBirth: "1990-04-01"})

	assert.NoError(t, err)
}
