package jwt_test

import (
	"context"
	"testing"
	"time"

	"hotel/config"
	"hotel/infras/jwt"
	"hotel/infras/otel/mocks"

	jwtLib "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
)

func newConfig() *config.Config {
	cfg := &config.Config{}
	cfg.App.Name = "rolax"
	cfg.JWT.AccessSecret = "access-secret"
	cfg.JWT.RefreshSecret = "refresh-secret"
	cfg.JWT.AccessExpireMin = 15
	cfg.JWT.RefreshExpireMin = 60 * 24

	return cfg
}

func TestService_GenerateAndValidate(t *testing.T) {
	service := jwt.New(newConfig(), mocks.NewOtel())

	pair, err := service.GenerateTokenPair(context.Background(), "user-1", "lan@example.com", "client")

	assert.NoError(t, err)
	assert.Equal(t, "Bearer", pair.TokenType)
	assert.Equal(t, int64(15*60), pair.ExpiresIn)
	assert.NotEqual(t, pair.AccessToken, pair.RefreshToken)

	access, err := service.ValidateToken(context.Background(), pair.AccessToken, jwt.AccessToken)

	assert.NoError(t, err)
	assert.Equal(t, "user-1", access.UserID)
	assert.Equal(t, "lan@example.com", access.Email)
	assert.Equal(t, "client", access.Role)
	assert.Equal(t, jwt.AccessToken, access.Type)
	assert.Equal(t, access.TokenID, access.ID)
	assert.Equal(t, "rolax", access.Issuer)

	refresh, err := service.ValidateToken(context.Background(), pair.RefreshToken, jwt.RefreshToken)

	assert.NoError(t, err)
	assert.Equal(t, jwt.RefreshToken, refresh.Type)
	assert.NotEqual(t, access.TokenID, refresh.TokenID)
}

func TestService_ValidateToken_Rejects(t *testing.T) {
	cfg := newConfig()
	service := jwt.New(cfg, mocks.NewOtel())

	pair, err := service.GenerateTokenPair(context.Background(), "user-1", "lan@example.com", "client")
	assert.NoError(t, err)

	sameSecrets := newConfig()
	sameSecrets.JWT.RefreshSecret = sameSecrets.JWT.AccessSecret
	sameSecretService := jwt.New(sameSecrets, mocks.NewOtel())
	sameSecretPair, err := sameSecretService.GenerateTokenPair(context.Background(), "user-1", "lan@example.com", "client")
	assert.NoError(t, err)

	expiredConfig := newConfig()
	expiredConfig.JWT.AccessExpireMin = -5
	expiredPair, err := jwt.New(expiredConfig, mocks.NewOtel()).GenerateTokenPair(context.Background(), "user-1", "lan@example.com", "client")
	assert.NoError(t, err)

	otherIssuer := newConfig()
	otherIssuer.App.Name = "another-hotel"
	foreignPair, err := jwt.New(otherIssuer, mocks.NewOtel()).GenerateTokenPair(context.Background(), "user-1", "lan@example.com", "admin")
	assert.NoError(t, err)

	hs512, err := jwtLib.NewWithClaims(jwtLib.SigningMethodHS512, jwt.Claims{
		UserID: "user-1",
		Type:   jwt.AccessToken,
		RegisteredClaims: jwtLib.RegisteredClaims{
			Issuer:    "rolax",
			ExpiresAt: jwtLib.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte(cfg.JWT.AccessSecret))
	assert.NoError(t, err)

	tests := []struct {
		name      string
		service   jwt.JWT
		token     string
		tokenType jwt.TokenType
		wantErr   error
	}{
		{name: "refresh token used as access", service: service, token: pair.RefreshToken, tokenType: jwt.AccessToken, wantErr: jwt.ErrInvalidToken},
		{name: "type claim mismatch", service: sameSecretService, token: sameSecretPair.RefreshToken, tokenType: jwt.AccessToken, wantErr: jwt.ErrInvalidClaim},
		{name: "expired", service: service, token: expiredPair.AccessToken, tokenType: jwt.AccessToken, wantErr: jwt.ErrExpiredToken},
		{name: "tampered", service: service, token: pair.AccessToken + "x", tokenType: jwt.AccessToken, wantErr: jwt.ErrInvalidToken},
		{name: "other issuer", service: service, token: foreignPair.AccessToken, tokenType: jwt.AccessToken, wantErr: jwt.ErrInvalidToken},
		{name: "unexpected algorithm", service: service, token: hs512, tokenType: jwt.AccessToken, wantErr: jwt.ErrInvalidToken},
		{name: "garbage", service: service, token: "not-a-token", tokenType: jwt.AccessToken, wantErr: jwt.ErrInvalidToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := tt.service.ValidateToken(context.Background(), tt.token, tt.tokenType)

			assert.Nil(t, claims)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestService_ValidateToken_UnknownType(t *testing.T) {
	service := jwt.New(newConfig(), mocks.NewOtel())

	_, err := service.ValidateToken(context.Background(), "token", jwt.TokenType("api"))

	assert.Error(t, err)
}

func TestExtractTokenFromHeader(t *testing.T) {
	tests := []struct {
		header  string
		want    string
		wantErr error
	}{
		{header: "Bearer abc.def.ghi", want: "abc.def.ghi"},
		{header: "Bearer   abc ", want: "abc"},
		{header: "", wantErr: jwt.ErrMissingHeader},
		{header: "Basic dXNlcjpwYXNz", wantErr: jwt.ErrMalformedBearer},
		{header: "Bearer ", wantErr: jwt.ErrMalformedBearer},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			got, err := jwt.ExtractTokenFromHeader(tt.header)

			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, tt.want, got)
		})
	}
}
