package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"hotel/config"
	"hotel/infras/otel/mocks"
	hotelServiceMocks "hotel/internal/domains/hotelservice/mocks"
	serviceTypeMocks "hotel/internal/domains/servicetype/mocks"
	"hotel/internal/domains/servicetype/model"
	"hotel/internal/domains/servicetype/model/dto"
	"hotel/internal/domains/servicetype/service"
	cacheMocks "hotel/shared/cache/mocks"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	"hotel/shared/identity"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func newService(t *testing.T) (*serviceTypeMocks.MockServiceType, *hotelServiceMocks.MockService, service.ServiceType) {
	ctrl := gomock.NewController(t)

	repo := serviceTypeMocks.NewMockServiceType(ctrl)
	services := hotelServiceMocks.NewMockService(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return repo, services, service.New(repo, services, &config.Config{}, mockCache, mocks.NewOtel())
}

func TestServiceTypeService_Create(t *testing.T) {
	repo, _, svc := newService(t)

	ctx := identity.WithIdentity(context.Background(), identity.Identity{UserID: "admin-1", Role: constant.RoleAdmin})

	repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
	repo.EXPECT().
		Insert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, serviceType model.ServiceType) error {
			assert.Equal(t, "Spa", serviceType.Name)
			assert.Equal(t, "admin-1", serviceType.ModifiedBy)

			return nil
		})

	res, err := svc.Create(ctx, dto.CreateServiceTypeRequest{Name: "Spa"})

	time.Sleep(10 * time.Millisecond)

	assert.NoError(t, err)
	assert.NotEmpty(t, res.ID)
}

func TestServiceTypeService_Update(t *testing.T) {
	repo, _, svc := newService(t)

	tests := []struct {
		name      string
		setupMock func()
		wantCode  int
	}{
		{
			name: "not found",
			setupMock: func() {
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "name already used",
			setupMock: func() {
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil).Times(2)
			},
			wantCode: http.StatusConflict,
		},
		{
			name: "successful rename",
			setupMock: func() {
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Equal(t, "Laundry", fields[model.FieldName])

						return nil
					})
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := svc.Update(context.Background(), dto.UpdateServiceTypeRequest{Name: "Laundry"}, "st-1")

			time.Sleep(10 * time.Millisecond)

			if tt.wantCode == 0 {
				assert.NoError(t, err)
			} else {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			}
		})
	}
}

func TestServiceTypeService_Delete(t *testing.T) {
	repo, services, svc := newService(t)

	tests := []struct {
		name      string
		setupMock func()
		wantCode  int
	}{
		{
			name: "still referenced by services",
			setupMock: func() {
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				services.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
			},
			wantCode: http.StatusConflict,
		},
		{
			name: "repository error",
			setupMock: func() {
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				services.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(errors.New("delete error"))
			},
			wantCode: http.StatusInternalServerError,
		},
		{
			name: "successful delete",
			setupMock: func() {
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				services.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := svc.Delete(context.Background(), "st-1")

			time.Sleep(10 * time.Millisecond)

			if tt.wantCode == 0 {
				assert.NoError(t, err)
			} else {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			}
		})
	}
}
