package router_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"hotel/config"
	"hotel/infras/jwt"
	"hotel/infras/otel/mocks"
	"hotel/permissions"
	"hotel/transport/http/middleware"
	"hotel/transport/http/router"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
)

func newMux(cfg *config.Config) http.Handler {
	ot := mocks.NewOtel()

	r := router.New(
		router.DomainHandlers{},
		middleware.NewAppMiddleware(ot, cfg, nil),
		middleware.NewAuthRoleMiddleware(jwt.New(cfg, ot), ot, permissions.Get(), cfg),
		cfg,
	)

	mux := chi.NewRouter()
	r.SetupRoutes(mux)

	return mux
}

func TestRouter_SwaggerDocs(t *testing.T) {
	tests := []struct {
		name     string
		enable   bool
		wantCode int
	}{
		{name: "enabled", enable: true, wantCode: http.StatusOK},
		{name: "disabled", wantCode: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{}
			cfg.App.Name = "Rolax"
			cfg.App.Docs = tt.enable
			cfg.App.RequestTimeoutSeconds = 5

			rec := httptest.NewRecorder()
			newMux(cfg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil))

			assert.Equal(t, tt.wantCode, rec.Code)

			if tt.enable {
				assert.Contains(t, rec.Body.String(), `"title": "Rolax API"`)
			}
		})
	}
}

func TestRouter_UnknownPathIsNotFound(t *testing.T) {
	cfg := &config.Config{}
	cfg.App.RequestTimeoutSeconds = 5

	rec := httptest.NewRecorder()
	newMux(cfg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/nowhere", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
