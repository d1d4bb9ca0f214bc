package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"hotel/config"
	"hotel/infras/mail"
	mailMocks "hotel/infras/mail/mocks"
	"hotel/infras/otel/mocks"
	bookingMocks "hotel/internal/domains/booking/mocks"
	"hotel/internal/domains/booking/model"
	"hotel/internal/domains/booking/model/dto"
	"hotel/internal/domains/booking/service"
	hotelServiceMocks "hotel/internal/domains/hotelservice/mocks"
	hotelServiceModel "hotel/internal/domains/hotelservice/model"
	roomMocks "hotel/internal/domains/room/mocks"
	roomModel "hotel/internal/domains/room/model"
	userMocks "hotel/internal/domains/user/mocks"
	userModel "hotel/internal/domains/user/model"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	eventMocks "hotel/shared/event/mocks"
	"hotel/shared/failure"
	"hotel/shared/identity"
	"hotel/shared/timezone"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

const (
	roomID    = "8a3c7b1e-2f4d-4c5a-9e6b-1d2f3a4b5c6d"
	serviceID = "1b2c3d4e-5f60-4a7b-8c9d-0e1f2a3b4c5d"
	clientID  = "client-1"
)

type fixture struct {
	repo      *bookingMocks.MockBooking
	rooms     *roomMocks.MockRoom
	services  *hotelServiceMocks.MockService
	users     *userMocks.MockUser
	mailer    *mailMocks.MockMailer
	publisher *eventMocks.MockPublisher
	svc       service.Booking
}

func newFixture(t *testing.T) fixture {
	ctrl := gomock.NewController(t)

	cfg := &config.Config{}
	cfg.Kafka.Topics.BookingEvents = "hotel.booking.events"
	cfg.Mail.FromName = "Rolax Hotel"

	f := fixture{
		repo:      bookingMocks.NewMockBooking(ctrl),
		rooms:     roomMocks.NewMockRoom(ctrl),
		services:  hotelServiceMocks.NewMockService(ctrl),
		users:     userMocks.NewMockUser(ctrl),
		mailer:    mailMocks.NewMockMailer(ctrl),
		publisher: eventMocks.NewMockPublisher(ctrl),
	}
	f.svc = service.New(f.repo, f.rooms, f.services, f.users, f.mailer, f.publisher, cfg, mocks.NewOtel())

	return f
}

func (f fixture) expectTx() *gomock.Call {
	return f.repo.EXPECT().
		WithTx(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, fn func(*sqlx.Tx) error) error {
			return fn(nil)
		})
}

func clientContext() context.Context {
	return identity.WithIdentity(context.Background(), identity.Identity{UserID: clientID, Role: constant.RoleClient})
}

func adminContext() context.Context {
	return identity.WithIdentity(context.Background(), identity.Identity{UserID: "admin-1", Role: constant.RoleAdmin})
}

func day(offset int) string {
	return timezone.Today().AddDate(0, 0, offset).Format(constant.DateOnlyFormat)
}

func room() roomModel.Room {
	return roomModel.Room{
		ID:            roomID,
		Code:          "R123",
		Name:          "Deluxe 123",
		PricePerNight: decimal.RequireFromString("1000000"),
		Status:        roomModel.StatusAvailable,
		Active:        true,
	}
}

func breakfast() hotelServiceModel.Service {
	return hotelServiceModel.Service{
		ID:        serviceID,
		Name:      "Breakfast",
		Unit:      "set",
		UnitPrice: decimal.RequireFromString("100000"),
		Active:    true,
	}
}

func createRequest() dto.CreateBookingRequest {
	return dto.CreateBookingRequest{
		QuoteRequest: dto.QuoteRequest{
			RoomID:     roomID,
			CheckIn:    day(1),
			CheckOut:   day(3),
			ServiceIDs: []string{serviceID},
		},
		GuestName:  "Lan Nguyen",
		GuestPhone: "0901234567",
		GuestEmail: "lan@example.com",
	}
}

func TestBookingService_Quote(t *testing.T) {
	tests := []struct {
		name      string
		req       dto.QuoteRequest
		setupMock func(f fixture)
		wantCode  int
		wantTotal string
	}{
		{
			name: "room with one service",
			req:  dto.QuoteRequest{RoomID: roomID, CheckIn: day(1), CheckOut: day(3), ServiceIDs: []string{serviceID}},
			setupMock: func(f fixture) {
				f.rooms.EXPECT().Get(gomock.Any(), gomock.Any()).Return(room(), nil)
				f.services.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]hotelServiceModel.Service{breakfast()}, nil)
			},
			wantTotal: "2310000",
		},
		{
			name:      "check-out before check-in",
			req:       dto.QuoteRequest{RoomID: roomID, CheckIn: day(3), CheckOut: day(1)},
			setupMock: func(fixture) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name:      "check-in in the past",
			req:       dto.QuoteRequest{RoomID: roomID, CheckIn: day(-1), CheckOut: day(1)},
			setupMock: func(fixture) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "unknown room",
			req:  dto.QuoteRequest{RoomID: roomID, CheckIn: day(1), CheckOut: day(2)},
			setupMock: func(f fixture) {
				f.rooms.EXPECT().Get(gomock.Any(), gomock.Any()).Return(roomModel.Room{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "room under maintenance",
			req:  dto.QuoteRequest{RoomID: roomID, CheckIn: day(1), CheckOut: day(2)},
			setupMock: func(f fixture) {
				maintained := room()
				maintained.Status = roomModel.StatusMaintenance
				f.rooms.EXPECT().Get(gomock.Any(), gomock.Any()).Return(maintained, nil)
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "inactive service selected",
			req:  dto.QuoteRequest{RoomID: roomID, CheckIn: day(1), CheckOut: day(2), ServiceIDs: []string{serviceID}},
			setupMock: func(f fixture) {
				f.rooms.EXPECT().Get(gomock.Any(), gomock.Any()).Return(room(), nil)
				f.services.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
			},
			wantCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.Quote(context.Background(), tt.req)

			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, 2, res.Nights)
			assert.True(t, res.RoomSubtotal.Equal(decimal.RequireFromString("2000000")))
			assert.True(t, res.Subtotal.Equal(decimal.RequireFromString("2100000")))
			assert.True(t, res.VAT.Equal(decimal.RequireFromString("210000")))
			assert.True(t, res.Total.Equal(decimal.RequireFromString(tt.wantTotal)))
			assert.Len(t, res.Services, 1)
		})
	}
}

func TestBookingService_Create(t *testing.T) {
	activeClient := userModel.User{ID: clientID, Active: true}

	t.Run("successful booking", func(t *testing.T) {
		f := newFixture(t)

		f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(activeClient, nil)
		f.rooms.EXPECT().Get(gomock.Any(), gomock.Any()).Return(room(), nil)
		f.services.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]hotelServiceModel.Service{breakfast()}, nil)
		f.expectTx()
		f.rooms.EXPECT().LockTx(gomock.Any(), gomock.Any(), roomID).Return(room(), nil)
		f.repo.EXPECT().HasConflictTx(gomock.Any(), gomock.Any(), roomID, gomock.Any()).Return(false, nil)
		f.repo.EXPECT().
			InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, booking model.Booking) error {
				assert.Equal(t, model.StatusPending, booking.Status)
				assert.Equal(t, clientID, booking.UserID)
				assert.Equal(t, 2, booking.Nights)
				assert.True(t, booking.Total.Equal(decimal.RequireFromString("2310000")))
				assert.Len(t, booking.Code, 20)

				return nil
			})
		f.repo.EXPECT().
			InsertDetailTx(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, detail model.Detail) error {
				assert.Equal(t, roomID, detail.RoomID)
				assert.True(t, detail.PricePerNight.Equal(decimal.RequireFromString("1000000")))

				return nil
			})
		f.repo.EXPECT().
			InsertServiceLinesTx(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, lines []model.ServiceLine) error {
				assert.Len(t, lines, 1)
				assert.Equal(t, 1, lines[0].Quantity)
				assert.True(t, lines[0].TotalPrice.Equal(decimal.RequireFromString("100000")))

				return nil
			})
		f.publisher.EXPECT().Publish(gomock.Any(), "hotel.booking.events", gomock.Any()).Return(nil)

		res, err := f.svc.Create(clientContext(), createRequest())

		assert.NoError(t, err)
		assert.Equal(t, model.StatusPending.String(), res.Status)
		assert.Len(t, res.Rooms, 1)
		assert.Len(t, res.Services, 1)
	})

	t.Run("overlapping booking is rejected", func(t *testing.T) {
		f := newFixture(t)

		req := createRequest()
		req.ServiceIDs = nil

		f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(activeClient, nil)
		f.rooms.EXPECT().Get(gomock.Any(), gomock.Any()).Return(room(), nil)
		f.expectTx()
		f.rooms.EXPECT().LockTx(gomock.Any(), gomock.Any(), roomID).Return(room(), nil)
		f.repo.EXPECT().HasConflictTx(gomock.Any(), gomock.Any(), roomID, gomock.Any()).Return(true, nil)

		_, err := f.svc.Create(clientContext(), req)

		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("room locked under maintenance meanwhile", func(t *testing.T) {
		f := newFixture(t)

		req := createRequest()
		req.ServiceIDs = nil

		locked := room()
		locked.Status = roomModel.StatusMaintenance

		f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(activeClient, nil)
		f.rooms.EXPECT().Get(gomock.Any(), gomock.Any()).Return(room(), nil)
		f.expectTx()
		f.rooms.EXPECT().LockTx(gomock.Any(), gomock.Any(), roomID).Return(locked, nil)

		_, err := f.svc.Create(clientContext(), req)

		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("code collision is retried", func(t *testing.T) {
		f := newFixture(t)

		req := createRequest()
		req.ServiceIDs = nil

		f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(activeClient, nil)
		f.rooms.EXPECT().Get(gomock.Any(), gomock.Any()).Return(room(), nil)
		f.expectTx().Times(2)
		f.rooms.EXPECT().LockTx(gomock.Any(), gomock.Any(), roomID).Return(room(), nil).Times(2)
		f.repo.EXPECT().HasConflictTx(gomock.Any(), gomock.Any(), roomID, gomock.Any()).Return(false, nil).Times(2)
		gomock.InOrder(
			f.repo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(&pq.Error{Code: constant.PqErrorCodeUniqueViolation}),
			f.repo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil),
		)
		f.repo.EXPECT().InsertDetailTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		f.repo.EXPECT().InsertServiceLinesTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("broker down"))

		_, err := f.svc.Create(clientContext(), req)

		assert.NoError(t, err)
	})

	t.Run("guest must sign in", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.Create(context.Background(), createRequest())

		assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))
	})

	t.Run("inactive account", func(t *testing.T) {
		f := newFixture(t)

		f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{ID: clientID, Active: false}, nil)

		_, err := f.svc.Create(clientContext(), createRequest())

		assert.Equal(t, http.StatusForbidden, failure.GetCode(err))
	})

	t.Run("insert failure", func(t *testing.T) {
		f := newFixture(t)

		req := createRequest()
		req.ServiceIDs = nil

		f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(activeClient, nil)
		f.rooms.EXPECT().Get(gomock.Any(), gomock.Any()).Return(room(), nil)
		f.expectTx()
		f.rooms.EXPECT().LockTx(gomock.Any(), gomock.Any(), roomID).Return(room(), nil)
		f.repo.EXPECT().HasConflictTx(gomock.Any(), gomock.Any(), roomID, gomock.Any()).Return(false, nil)
		f.repo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("connection reset"))

		_, err := f.svc.Create(clientContext(), req)

		assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))
	})
}

func TestBookingService_Cancel(t *testing.T) {
	tests := []struct {
		name      string
		status    model.Status
		wantCode  int
		wantWrite bool
	}{
		{name: "pending booking is cancelled", status: model.StatusPending, wantWrite: true},
		{name: "confirmed booking is cancelled", status: model.StatusConfirmed, wantWrite: true},
		{name: "completed booking cannot be cancelled", status: model.StatusCompleted, wantCode: http.StatusBadRequest},
		{name: "cancelled booking cannot be cancelled again", status: model.StatusCancelled, wantCode: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			booking := model.Booking{ID: "b-1", Code: "BK1", UserID: clientID, Status: tt.status}

			f.repo.EXPECT().
				Get(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, filter gDto.FilterGroup, _ ...string) (model.Booking, error) {
					_, args := filter.GetWhereClause()
					assert.Equal(t, clientID, args["owner_id"])

					return booking, nil
				})
			f.expectTx()
			f.repo.EXPECT().LockTx(gomock.Any(), gomock.Any(), "b-1").Return(booking, nil)

			if tt.wantWrite {
				f.repo.EXPECT().
					UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ *sqlx.Tx, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Equal(t, model.StatusCancelled, fields[model.FieldStatus])
						assert.Equal(t, clientID, fields[constant.FieldModifiedBy])

						return nil
					})
				f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
			}

			err := f.svc.Cancel(clientContext(), "b-1")

			if tt.wantCode == 0 {
				assert.NoError(t, err)
			} else {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			}
		})
	}
}

func TestBookingService_Cancel_NotOwned(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{}, nil)

	err := f.svc.Cancel(clientContext(), "b-2")

	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}

func TestBookingService_UpdateStatus(t *testing.T) {
	booking := model.Booking{
		ID:         "b-1",
		Code:       "BK20240601093000A1B2",
		GuestName:  "Lan Nguyen",
		GuestEmail: "lan@example.com",
		Status:     model.StatusPending,
	}

	tests := []struct {
		name        string
		status      string
		mailErr     error
		wantCode    int
		wantMessage string
	}{
		{name: "confirm and mail", status: "Confirmed", wantMessage: "booking status updated"},
		{name: "confirm with failing mail keeps the change", status: "Confirmed", mailErr: errors.New("smtp down"), wantMessage: "booking status updated, but the confirmation email could not be sent"},
		{name: "confirm without mail settings", status: "Confirmed", mailErr: mail.ErrMailDisabled, wantMessage: "booking status updated, but outgoing mail is not configured"},
		{name: "complete", status: "Completed", wantMessage: "booking status updated"},
		{name: "back to pending is rejected", status: "Pending", wantCode: http.StatusBadRequest},
		{name: "unknown status", status: "Lost", wantCode: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			if tt.status != "Lost" {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking, nil)
				f.expectTx()
				f.repo.EXPECT().LockTx(gomock.Any(), gomock.Any(), booking.ID).Return(booking, nil)
			}

			if tt.wantCode == 0 {
				f.repo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
			}

			if tt.status == "Confirmed" {
				f.repo.EXPECT().GetDetails(gomock.Any(), booking.ID).Return([]model.Detail{{RoomCode: "R123", RoomName: "Deluxe 123"}}, nil)
				f.repo.EXPECT().GetServiceLines(gomock.Any(), booking.ID).Return(nil, nil)
				f.mailer.EXPECT().
					Send(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, msg mail.Mail) error {
						assert.Equal(t, "lan@example.com", msg.To)
						assert.Contains(t, msg.Subject, "Lan Nguyen")
						assert.Contains(t, msg.Body, booking.Code)

						return tt.mailErr
					})
			}

			res, err := f.svc.UpdateStatus(adminContext(), dto.UpdateStatusRequest{Status: tt.status}, booking.ID)

			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.status, res.Status)
			assert.Equal(t, tt.wantMessage, res.Message)
		})
	}
}

func TestBookingService_ListOwn(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(1, nil)
	f.repo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, params gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]model.Booking, error) {
			assert.Equal(t, "bookings.booking_date", params.SortBy)
			assert.Equal(t, "DESC", params.SortDir)

			_, args := filter.GetWhereClause()
			assert.Equal(t, clientID, args["owner_id"])

			return []model.Booking{{ID: "b-1", UserID: clientID, Status: model.StatusPending}}, nil
		})

	res, err := f.svc.ListOwn(clientContext(), gDto.QueryParams{Page: 1, Limit: 10}, gDto.FilterGroup{})

	assert.NoError(t, err)
	assert.Equal(t, 1, res.TotalData)
	assert.Len(t, res.Bookings, 1)
}

func TestBookingService_Get(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{ID: "b-1", Status: model.StatusConfirmed}, nil)
	f.repo.EXPECT().GetDetails(gomock.Any(), "b-1").Return([]model.Detail{{RoomID: roomID}}, nil)
	f.repo.EXPECT().GetServiceLines(gomock.Any(), "b-1").Return([]model.ServiceLine{{ServiceID: serviceID, Quantity: 1}}, nil)

	res, err := f.svc.Get(adminContext(), "b-1")

	assert.NoError(t, err)
	assert.Equal(t, roomID, res.Rooms[0].RoomID)
	assert.Equal(t, serviceID, res.Services[0].ServiceID)
}

func TestBookingService_Delete(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{}, nil)

		err := f.svc.Delete(adminContext(), "b-1")

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("deleted", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{ID: "b-1", Status: model.StatusCancelled}, nil)
		f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)
		f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		err := f.svc.Delete(adminContext(), "b-1")

		assert.NoError(t, err)
	})
}
