package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"hotel/infras/otel/mocks"
	bookingMocks "hotel/internal/domains/booking/mocks"
	bookingModel "hotel/internal/domains/booking/model"
	"hotel/internal/domains/dashboard/model/dto"
	"hotel/internal/domains/dashboard/service"
	roomMocks "hotel/internal/domains/room/mocks"
	userMocks "hotel/internal/domains/user/mocks"
	userModel "hotel/internal/domains/user/model"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestDashboardService_Summary(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(rooms *roomMocks.MockRoom, bookings *bookingMocks.MockBooking, users *userMocks.MockUser)
		want      dto.SummaryResponse
		wantCode  int
	}{
		{
			name: "success",
			setupMock: func(rooms *roomMocks.MockRoom, bookings *bookingMocks.MockBooking, users *userMocks.MockUser) {
				rooms.EXPECT().Count(gomock.Any(), gomock.Any()).Return(24, nil)
				gomock.InOrder(
					bookings.EXPECT().
						Count(gomock.Any(), gomock.Any()).
						DoAndReturn(func(_ context.Context, filter gDto.FilterGroup) (int, error) {
							assert.Empty(t, filter.Filters)

							return 130, nil
						}),
					bookings.EXPECT().
						Count(gomock.Any(), gomock.Any()).
						DoAndReturn(func(_ context.Context, filter gDto.FilterGroup) (int, error) {
							_, args := filter.GetWhereClause()
							assert.Equal(t, bookingModel.StatusPending, args[bookingModel.FieldStatus])

							return 7, nil
						}),
				)
				users.EXPECT().
					Count(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, filter gDto.FilterGroup) (int, error) {
						_, args := filter.GetWhereClause()
						assert.Equal(t, constant.RoleClient, args[userModel.FieldRole])

						return 58, nil
					})
			},
			want: dto.SummaryResponse{TotalRooms: 24, TotalBookings: 130, TotalClients: 58, PendingBookings: 7},
		},
		{
			name: "count failure",
			setupMock: func(rooms *roomMocks.MockRoom, _ *bookingMocks.MockBooking, _ *userMocks.MockUser) {
				rooms.EXPECT().Count(gomock.Any(), gomock.Any()).Return(0, errors.New("db error"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)

			rooms := roomMocks.NewMockRoom(ctrl)
			bookings := bookingMocks.NewMockBooking(ctrl)
			users := userMocks.NewMockUser(ctrl)
			tt.setupMock(rooms, bookings, users)

			res, err := service.New(rooms, bookings, users, mocks.NewOtel()).Summary(context.Background())

			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.want, res)
		})
	}
}
