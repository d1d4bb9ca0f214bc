package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"hotel/config"
	"hotel/infras/jwt"
	jwtMocks "hotel/infras/jwt/mocks"
	"hotel/infras/mail"
	mailMocks "hotel/infras/mail/mocks"
	"hotel/infras/otel/mocks"
	"hotel/internal/domains/auth/model/dto"
	"hotel/internal/domains/auth/service"
	userMocks "hotel/internal/domains/user/mocks"
	userModel "hotel/internal/domains/user/model"
	"hotel/shared/constant"
	"hotel/shared/failure"
	"hotel/shared/identity"
	gModel "hotel/shared/model"
	"hotel/shared/timezone"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

// passwordHash is the bcrypt hash of "password".
const passwordHash = "$2a$10$92IXUNpkjO0rOQ5byMi.Ye4oKoEa3Ro9llC/.og/at2.uheWG/igi"

func newUser(role string) userModel.User {
	return userModel.User{
		ID:           "user-id-123",
		Username:     "guest01",
		Email:        "test@example.com",
		PasswordHash: passwordHash,
		Role:         role,
		FullName:     "Test User",
		Active:       true,
		Metadata:     gModel.NewMetadata(constant.ContextSystem, timezone.Now()),
	}
}

func TestAuthService_Register(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUserRepo := userMocks.NewMockUser(ctrl)
	svc := service.New(mockUserRepo, &config.Config{}, mocks.NewOtel(), jwtMocks.NewMockJWT(ctrl), mailMocks.NewMockMailer(ctrl))

	req := dto.RegisterRequest{
		Username:        "guest01",
		Email:           "guest01@example.com",
		Password:        "secret-pass",
		ConfirmPassword: "secret-pass",
	}

	tests := []struct {
		name      string
		setupMock func()
		wantCode  int
	}{
		{
			name: "successful register",
			setupMock: func() {
				mockUserRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				mockUserRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, user userModel.User) error {
						assert.Equal(t, constant.RoleClient, user.Role)
						assert.NotEqual(t, req.Password, user.PasswordHash)

						return nil
					})
			},
		},
		{
			name: "duplicate username or email",
			setupMock: func() {
				mockUserRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
			},
			wantCode: http.StatusConflict,
		},
		{
			name: "insert error",
			setupMock: func() {
				mockUserRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				mockUserRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("insert error"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := svc.Register(context.Background(), req)

			if tt.wantCode == 0 {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			}
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUserRepo := userMocks.NewMockUser(ctrl)
	mockJWT := jwtMocks.NewMockJWT(ctrl)

	svc := service.New(mockUserRepo, &config.Config{}, mocks.NewOtel(), mockJWT, mailMocks.NewMockMailer(ctrl))

	client := newUser(constant.RoleClient)
	tokens := &jwt.TokenPair{AccessToken: "access-token", RefreshToken: "refresh-token", TokenType: "Bearer"}

	tests := []struct {
		name      string
		req       dto.LoginRequest
		setupMock func()
		wantErr   error
		wantCode  int
	}{
		{
			name: "successful login",
			req:  dto.LoginRequest{Username: "guest01", Password: "password"},
			setupMock: func() {
				mockUserRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(client, nil)
				mockJWT.EXPECT().GenerateTokenPair(gomock.Any(), client.ID, client.Email, client.Role).Return(tokens, nil)
				mockUserRepo.EXPECT().TouchLogin(gomock.Any(), client.ID, gomock.Any()).Return(nil)
			},
		},
		{
			name: "last login failure does not block sign in",
			req:  dto.LoginRequest{Username: "guest01", Password: "password"},
			setupMock: func() {
				mockUserRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(client, nil)
				mockJWT.EXPECT().GenerateTokenPair(gomock.Any(), client.ID, client.Email, client.Role).Return(tokens, nil)
				mockUserRepo.EXPECT().TouchLogin(gomock.Any(), client.ID, gomock.Any()).Return(errors.New("update error"))
			},
		},
		{
			name: "unknown username",
			req:  dto.LoginRequest{Username: "nobody", Password: "password"},
			setupMock: func() {
				mockUserRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{}, nil)
			},
			wantErr: failure.InvalidCredentials,
		},
		{
			name: "wrong password",
			req:  dto.LoginRequest{Username: "guest01", Password: "wrong-password"},
			setupMock: func() {
				mockUserRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(client, nil)
			},
			wantErr: failure.InvalidCredentials,
		},
		{
			name: "staff account on the guest portal",
			req:  dto.LoginRequest{Username: "guest01", Password: "password"},
			setupMock: func() {
				mockUserRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(newUser(constant.RoleAdmin), nil)
			},
			wantErr: failure.InvalidCredentials,
		},
		{
			name: "inactive user",
			req:  dto.LoginRequest{Username: "guest01", Password: "password"},
			setupMock: func() {
				inactive := client
				inactive.Active = false

				mockUserRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(inactive, nil)
			},
			wantCode: http.StatusForbidden,
		},
		{
			name: "token generation error",
			req:  dto.LoginRequest{Username: "guest01", Password: "password"},
			setupMock: func() {
				mockUserRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(client, nil)
				mockJWT.EXPECT().GenerateTokenPair(gomock.Any(), client.ID, client.Email, client.Role).Return(nil, errors.New("token generation failed"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			result, err := svc.Login(context.Background(), tt.req)

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.wantCode != 0:
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			default:
				assert.NoError(t, err)
				assert.Equal(t, "access-token", result.AccessToken)
				assert.Equal(t, client.Username, result.Username)
			}
		})
	}
}

func TestAuthService_AdminLogin(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUserRepo := userMocks.NewMockUser(ctrl)
	mockJWT := jwtMocks.NewMockJWT(ctrl)

	svc := service.New(mockUserRepo, &config.Config{}, mocks.NewOtel(), mockJWT, mailMocks.NewMockMailer(ctrl))

	t.Run("manager can sign in", func(t *testing.T) {
		manager := newUser(constant.RoleManager)

		mockUserRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(manager, nil)
		mockJWT.EXPECT().GenerateTokenPair(gomock.Any(), manager.ID, manager.Email, manager.Role).Return(&jwt.TokenPair{AccessToken: "a", RefreshToken: "r"}, nil)
		mockUserRepo.EXPECT().TouchLogin(gomock.Any(), manager.ID, gomock.Any()).Return(nil)

		res, err := svc.AdminLogin(context.Background(), dto.LoginRequest{Username: "guest01", Password: "password"})

		assert.NoError(t, err)
		assert.Equal(t, constant.RoleManager, res.Role)
	})

	t.Run("client is rejected with the generic message", func(t *testing.T) {
		mockUserRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(newUser(constant.RoleClient), nil)

		_, err := svc.AdminLogin(context.Background(), dto.LoginRequest{Username: "guest01", Password: "password"})

		assert.ErrorIs(t, err, failure.InvalidCredentials)
		assert.Equal(t, "invalid username or password", err.Error())
	})
}

func TestAuthService_RefreshToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUserRepo := userMocks.NewMockUser(ctrl)
	mockJWT := jwtMocks.NewMockJWT(ctrl)

	svc := service.New(mockUserRepo, &config.Config{}, mocks.NewOtel(), mockJWT, mailMocks.NewMockMailer(ctrl))

	client := newUser(constant.RoleClient)
	claims := &jwt.Claims{UserID: client.ID, Email: client.Email, Role: client.Role, Type: jwt.RefreshToken}

	tests := []struct {
		name      string
		req       dto.RefreshTokenRequest
		setupMock func()
		wantErr   bool
	}{
		{
			name: "successful token refresh",
			req:  dto.RefreshTokenRequest{RefreshToken: "valid-refresh-token"},
			setupMock: func() {
				mockJWT.EXPECT().ValidateToken(gomock.Any(), "valid-refresh-token", jwt.RefreshToken).Return(claims, nil)
				mockUserRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(client, nil)
				mockJWT.EXPECT().
					GenerateTokenPair(gomock.Any(), client.ID, client.Email, client.Role).
					Return(&jwt.TokenPair{AccessToken: "new-access-token", RefreshToken: "new-refresh-token"}, nil)
			},
		},
		{
			name: "invalid refresh token",
			req:  dto.RefreshTokenRequest{RefreshToken: "invalid-refresh-token"},
			setupMock: func() {
				mockJWT.EXPECT().ValidateToken(gomock.Any(), "invalid-refresh-token", jwt.RefreshToken).Return(nil, jwt.ErrInvalidToken)
			},
			wantErr: true,
		},
		{
			name: "account deactivated since the token was issued",
			req:  dto.RefreshTokenRequest{RefreshToken: "valid-refresh-token"},
			setupMock: func() {
				inactive := client
				inactive.Active = false

				mockJWT.EXPECT().ValidateToken(gomock.Any(), "valid-refresh-token", jwt.RefreshToken).Return(claims, nil)
				mockUserRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(inactive, nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			result, err := svc.RefreshToken(context.Background(), tt.req)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))
			} else {
				assert.NoError(t, err)
				assert.Equal(t, "new-access-token", result.AccessToken)
				assert.Equal(t, "new-refresh-token", result.RefreshToken)
			}
		})
	}
}

func TestAuthService_ChangePassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUserRepo := userMocks.NewMockUser(ctrl)
	svc := service.New(mockUserRepo, &config.Config{}, mocks.NewOtel(), jwtMocks.NewMockJWT(ctrl), mailMocks.NewMockMailer(ctrl))

	client := newUser(constant.RoleClient)

	tests := []struct {
		name      string
		req       dto.ChangePasswordRequest
		setupMock func()
		wantErr   bool
	}{
		{
			name: "successful password change",
			req:  dto.ChangePasswordRequest{CurrentPassword: "password", NewPassword: "newpassword123", ConfirmPassword: "newpassword123"},
			setupMock: func() {
				mockUserRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(client, nil)
				mockUserRepo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name: "user not found",
			req:  dto.ChangePasswordRequest{CurrentPassword: "password", NewPassword: "newpassword123"},
			setupMock: func() {
				mockUserRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{}, nil)
			},
			wantErr: true,
		},
		{
			name: "wrong current password",
			req:  dto.ChangePasswordRequest{CurrentPassword: "wrongpassword", NewPassword: "newpassword123"},
			setupMock: func() {
				mockUserRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(client, nil)
			},
			wantErr: true,
		},
		{
			name: "update password error",
			req:  dto.ChangePasswordRequest{CurrentPassword: "password", NewPassword: "newpassword123"},
			setupMock: func() {
				mockUserRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(client, nil)
				mockUserRepo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("update error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := identity.WithIdentity(context.Background(), identity.Identity{UserID: client.ID, Role: client.Role})
			err := svc.ChangePassword(ctx, tt.req)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAuthService_ForgotPassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUserRepo := userMocks.NewMockUser(ctrl)
	mockMailer := mailMocks.NewMockMailer(ctrl)

	cfg := &config.Config{}
	cfg.Mail.FromName = "Rolax Hotel"

	svc := service.New(mockUserRepo, cfg, mocks.NewOtel(), jwtMocks.NewMockJWT(ctrl), mockMailer)

	client := newUser(constant.RoleClient)

	tests := []struct {
		name      string
		setupMock func()
	}{
		{
			name: "known email gets a new password",
			setupMock: func() {
				mockUserRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(client, nil)
				mockUserRepo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				mockMailer.EXPECT().
					Send(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, m mail.Mail) error {
						assert.Equal(t, client.Email, m.To)
						assert.Contains(t, m.Body, "Test User")

						return nil
					})
			},
		},
		{
			name: "unknown email answers the same way",
			setupMock: func() {
				mockUserRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{}, nil)
			},
		},
		{
			name: "mail failure is not reported",
			setupMock: func() {
				mockUserRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(client, nil)
				mockUserRepo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				mockMailer.EXPECT().Send(gomock.Any(), gomock.Any()).Return(errors.New("smtp down"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := svc.ForgotPassword(context.Background(), dto.ForgotPasswordRequest{Email: client.Email})

			assert.NoError(t, err)
		})
	}
}
