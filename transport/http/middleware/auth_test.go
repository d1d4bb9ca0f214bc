package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"hotel/config"
	"hotel/infras/jwt"
	jwtMocks "hotel/infras/jwt/mocks"
	"hotel/infras/otel/mocks"
	"hotel/permissions"
	"hotel/shared/constant"
	"hotel/shared/identity"
	"hotel/transport/http/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func newRouter(jwtService jwt.JWT) (http.Handler, *string) {
	cfg := &config.Config{}
	cfg.App.APIKey = "internal-key"

	authRole := middleware.NewAuthRoleMiddleware(jwtService, mocks.NewOtel(), permissions.Get(), cfg)

	var seenActor string

	ok := func(w http.ResponseWriter, r *http.Request) {
		seenActor = identity.FromContext(r.Context()).Actor()

		w.WriteHeader(http.StatusOK)
	}

	router := chi.NewRouter()
	router.Route("/v1", func(routerGroup chi.Router) {
		routerGroup.Use(authRole.APIKey, authRole.Auth, authRole.RBAC)

		routerGroup.Get("/public/rooms", ok)
		routerGroup.Route("/rooms", func(rooms chi.Router) {
			rooms.Get("/", ok)
		})
		routerGroup.Patch("/bookings/{id}/status", ok)
	})

	return router, &seenActor
}

func TestAuthRole(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		target     string
		headers    map[string]string
		setupMock  func(jwtService *jwtMocks.MockJWT)
		wantCode   int
		wantCaller string
	}{
		{
			name:       "public route without token",
			method:     http.MethodGet,
			target:     "/v1/public/rooms",
			setupMock:  func(_ *jwtMocks.MockJWT) {},
			wantCode:   http.StatusOK,
			wantCaller: constant.ContextGuest,
		},
		{
			name:      "unknown route is left to the router",
			method:    http.MethodGet,
			target:    "/v1/nowhere",
			setupMock: func(_ *jwtMocks.MockJWT) {},
			wantCode:  http.StatusNotFound,
		},
		{
			name:      "missing token",
			method:    http.MethodGet,
			target:    "/v1/rooms",
			setupMock: func(_ *jwtMocks.MockJWT) {},
			wantCode:  http.StatusUnauthorized,
		},
		{
			name:    "expired token",
			method:  http.MethodGet,
			target:  "/v1/rooms",
			headers: map[string]string{constant.RequestHeaderAuthorization: "Bearer old"},
			setupMock: func(jwtService *jwtMocks.MockJWT) {
				jwtService.EXPECT().ValidateToken(gomock.Any(), "old", jwt.AccessToken).Return(nil, jwt.ErrExpiredToken)
			},
			wantCode: http.StatusUnauthorized,
		},
		{
			name:    "claims without role",
			method:  http.MethodGet,
			target:  "/v1/rooms",
			headers: map[string]string{constant.RequestHeaderAuthorization: "Bearer token"},
			setupMock: func(jwtService *jwtMocks.MockJWT) {
				jwtService.EXPECT().ValidateToken(gomock.Any(), "token", jwt.AccessToken).Return(&jwt.Claims{UserID: "u-1"}, nil)
			},
			wantCode: http.StatusUnauthorized,
		},
		{
			name:    "client on a staff route",
			method:  http.MethodGet,
			target:  "/v1/rooms",
			headers: map[string]string{constant.RequestHeaderAuthorization: "Bearer token"},
			setupMock: func(jwtService *jwtMocks.MockJWT) {
				jwtService.EXPECT().ValidateToken(gomock.Any(), "token", jwt.AccessToken).Return(&jwt.Claims{UserID: "u-1", Role: constant.RoleClient}, nil)
			},
			wantCode: http.StatusForbidden,
		},
		{
			name:    "manager on a staff route",
			method:  http.MethodGet,
			target:  "/v1/rooms",
			headers: map[string]string{constant.RequestHeaderAuthorization: "Bearer token"},
			setupMock: func(jwtService *jwtMocks.MockJWT) {
				jwtService.EXPECT().ValidateToken(gomock.Any(), "token", jwt.AccessToken).Return(&jwt.Claims{UserID: "m-1", Role: constant.RoleManager}, nil)
			},
			wantCode:   http.StatusOK,
			wantCaller: "m-1",
		},
		{
			name:    "manager on an admin only route",
			method:  http.MethodPatch,
			target:  "/v1/bookings/b-1/status",
			headers: map[string]string{constant.RequestHeaderAuthorization: "Bearer token"},
			setupMock: func(jwtService *jwtMocks.MockJWT) {
				jwtService.EXPECT().ValidateToken(gomock.Any(), "token", jwt.AccessToken).Return(&jwt.Claims{UserID: "m-1", Role: constant.RoleManager}, nil)
			},
			wantCode: http.StatusForbidden,
		},
		{
			name:       "internal api key",
			method:     http.MethodPatch,
			target:     "/v1/bookings/b-1/status",
			headers:    map[string]string{constant.RequestHeaderAPIKey: "internal-key"},
			setupMock:  func(_ *jwtMocks.MockJWT) {},
			wantCode:   http.StatusOK,
			wantCaller: constant.ContextSystem,
		},
		{
			name:      "wrong api key",
			method:    http.MethodGet,
			target:    "/v1/public/rooms",
			headers:   map[string]string{constant.RequestHeaderAPIKey: "guess"},
			setupMock: func(_ *jwtMocks.MockJWT) {},
			wantCode:  http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			jwtService := jwtMocks.NewMockJWT(ctrl)
			tt.setupMock(jwtService)

			router, seenActor := newRouter(jwtService)

			req := httptest.NewRequest(tt.method, tt.target, nil)
			for key, value := range tt.headers {
				req.Header.Set(key, value)
			}

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)

			if tt.wantCaller != "" {
				assert.Equal(t, tt.wantCaller, *seenActor)
			}
		})
	}
}

func TestAuthRole_InvalidHeaderFormat(t *testing.T) {
	ctrl := gomock.NewController(t)
	router, _ := newRouter(jwtMocks.NewMockJWT(ctrl))

	req := httptest.NewRequest(http.MethodGet, "/v1/rooms", nil)
	req.Header.Set(constant.RequestHeaderAuthorization, "Token abc")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
