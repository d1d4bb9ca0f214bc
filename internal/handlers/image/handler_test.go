package image_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"hotel/infras/otel/mocks"
	"hotel/infras/s3"
	s3Mocks "hotel/infras/s3/mocks"
	"hotel/internal/handlers/image"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestHandler_GetImage(t *testing.T) {
	tests := []struct {
		name            string
		target          string
		setupMock       func(storage *s3Mocks.MockS3)
		wantCode        int
		wantContentType string
		wantBody        string
	}{
		{
			name:   "content type from extension",
			target: "/images/rooms/sea-view.PNG",
			setupMock: func(storage *s3Mocks.MockS3) {
				storage.EXPECT().GetFile(gomock.Any(), "", "rooms", "sea-view.PNG").Return(s3.Object{Body: []byte("png"), ContentType: "binary/octet-stream"}, nil)
			},
			wantCode:        http.StatusOK,
			wantContentType: "image/png",
			wantBody:        "png",
		},
		{
			name:   "unknown extension falls back to stored type",
			target: "/images/blogs/cover.avif",
			setupMock: func(storage *s3Mocks.MockS3) {
				storage.EXPECT().GetFile(gomock.Any(), "", "blogs", "cover.avif").Return(s3.Object{Body: []byte("avif"), ContentType: "image/avif"}, nil)
			},
			wantCode:        http.StatusOK,
			wantContentType: "image/avif",
			wantBody:        "avif",
		},
		{
			name:   "unknown extension without stored type",
			target: "/images/blogs/cover.bin",
			setupMock: func(storage *s3Mocks.MockS3) {
				storage.EXPECT().GetFile(gomock.Any(), "", "blogs", "cover.bin").Return(s3.Object{Body: []byte("raw")}, nil)
			},
			wantCode:        http.StatusOK,
			wantContentType: "application/octet-stream",
			wantBody:        "raw",
		},
		{
			name:      "unknown directory",
			target:    "/images/secrets/key.png",
			setupMock: func(_ *s3Mocks.MockS3) {},
			wantCode:  http.StatusNotFound,
		},
		{
			name:   "missing object",
			target: "/images/rooms/gone.jpg",
			setupMock: func(storage *s3Mocks.MockS3) {
				storage.EXPECT().GetFile(gomock.Any(), "", "rooms", "gone.jpg").Return(s3.Object{}, s3.ErrObjectNotFound)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name:   "storage failure",
			target: "/images/rooms/a.jpg",
			setupMock: func(storage *s3Mocks.MockS3) {
				storage.EXPECT().GetFile(gomock.Any(), "", "rooms", "a.jpg").Return(s3.Object{}, errors.New("timeout"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			storage := s3Mocks.NewMockS3(ctrl)
			tt.setupMock(storage)

			handler := image.New(storage, mocks.NewOtel())
			router := chi.NewRouter()
			handler.Router(router)

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.target, nil))

			assert.Equal(t, tt.wantCode, rec.Code)

			if tt.wantCode == http.StatusOK {
				assert.Equal(t, tt.wantContentType, rec.Header().Get("Content-Type"))
				assert.Equal(t, tt.wantBody, rec.Body.String())
			}
		})
	}
}
