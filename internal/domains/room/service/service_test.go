package service_test

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"testing"

	"hotel/config"
	"hotel/infras/otel/mocks"
	s3Mocks "hotel/infras/s3/mocks"
	bookingMocks "hotel/internal/domains/booking/mocks"
	bookingModel "hotel/internal/domains/booking/model"
	roomMocks "hotel/internal/domains/room/mocks"
	"hotel/internal/domains/room/model"
	"hotel/internal/domains/room/model/dto"
	"hotel/internal/domains/room/service"
	roomTypeMocks "hotel/internal/domains/roomtype/mocks"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	eventMocks "hotel/shared/event/mocks"
	"hotel/shared/failure"
	"hotel/shared/identity"
	"hotel/shared/timezone"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	repo      *roomMocks.MockRoom
	roomTypes *roomTypeMocks.MockRoomType
	bookings  *bookingMocks.MockBooking
	publisher *eventMocks.MockPublisher
	s3        *s3Mocks.MockS3
	cfg       *config.Config
	svc       service.Room
}

func newFixture(t *testing.T) fixture {
	ctrl := gomock.NewController(t)

	cfg := &config.Config{}
	cfg.External.S3.BucketName = "hotel"
	cfg.Booking.PublicPageSize = 9
	cfg.Kafka.Topics.RoomEvents = "hotel.room.events"
	cfg.Kafka.Topics.BookingEvents = "hotel.booking.events"

	f := fixture{
		repo:      roomMocks.NewMockRoom(ctrl),
		roomTypes: roomTypeMocks.NewMockRoomType(ctrl),
		bookings:  bookingMocks.NewMockBooking(ctrl),
		publisher: eventMocks.NewMockPublisher(ctrl),
		s3:        s3Mocks.NewMockS3(ctrl),
		cfg:       cfg,
	}
	f.svc = service.New(f.repo, f.roomTypes, f.bookings, f.publisher, cfg, mocks.NewOtel(), f.s3)

	return f
}

func (f fixture) expectTx() {
	f.repo.EXPECT().
		WithTx(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, fn func(*sqlx.Tx) error) error {
			return fn(nil)
		})
}

type memoryFile struct {
	*bytes.Reader
}

func (memoryFile) Close() error {
	return nil
}

func imageUpload(name string) (multipart.File, *multipart.FileHeader) {
	header := &multipart.FileHeader{
		Filename: name,
		Header:   textproto.MIMEHeader{constant.RequestHeaderContentType: []string{"image/jpeg"}},
		Size:     3,
	}

	return memoryFile{bytes.NewReader([]byte("jpg"))}, header
}

func day(offset int) string {
	return timezone.Today().AddDate(0, 0, offset).Format(constant.DateOnlyFormat)
}

func stay(roomID, bookingID string, checkIn, checkOut int) bookingModel.Stay {
	today := timezone.Today()

	return bookingModel.Stay{
		BookingID: bookingID,
		RoomID:    roomID,
		Code:      "BK-" + bookingID,
		CheckIn:   today.AddDate(0, 0, checkIn),
		CheckOut:  today.AddDate(0, 0, checkOut),
		Status:    bookingModel.StatusConfirmed,
	}
}

func staffContext() context.Context {
	return identity.WithIdentity(context.Background(), identity.Identity{UserID: "manager-1", Role: constant.RoleManager})
}

func TestRoomService_Create(t *testing.T) {
	f := newFixture(t)

	file, header := imageUpload("Deluxe.JPG")
	req := dto.CreateRoomRequest{
		Code:          "R123",
		Name:          "Deluxe 123",
		RoomTypeID:    "6f1c2d1e-7b55-4f7a-9a43-0c6b8c1f2a10",
		PricePerNight: "1000000",
		MaxPeople:     2,
		Image:         header,
		ImageFile:     file,
	}

	tests := []struct {
		name      string
		setupMock func()
		wantCode  int
	}{
		{
			name: "unknown room type",
			setupMock: func() {
				f.roomTypes.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "duplicate code",
			setupMock: func() {
				f.roomTypes.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
			},
			wantCode: http.StatusConflict,
		},
		{
			name: "insert failure removes uploaded image",
			setupMock: func() {
				f.roomTypes.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

				var uploaded string

				f.s3.EXPECT().
					UploadFile(gomock.Any(), "hotel", constant.ImageDirectoryRoom, gomock.Any(), header, gomock.Any()).
					DoAndReturn(func(_ context.Context, _, _ string, _ multipart.File, _ *multipart.FileHeader, name string) (string, error) {
						uploaded = name

						return "/v1/images/rooms/" + name, nil
					})
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("insert error"))
				f.s3.EXPECT().
					DeleteFile(gomock.Any(), "hotel", constant.ImageDirectoryRoom, gomock.Any()).
					DoAndReturn(func(_ context.Context, _, _, name string) error {
						assert.Equal(t, uploaded, name)
						assert.Contains(t, name, ".jpg")

						return nil
					})
			},
			wantCode: http.StatusInternalServerError,
		},
		{
			name: "successful create",
			setupMock: func() {
				f.roomTypes.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				f.s3.EXPECT().
					UploadFile(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return("/v1/images/rooms/new.jpg", nil)
				f.repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, room model.Room) error {
						assert.Equal(t, model.StatusAvailable, room.Status)
						assert.True(t, room.Active)
						assert.True(t, room.PricePerNight.Equal(decimal.RequireFromString("1000000")))
						assert.Equal(t, "/v1/images/rooms/new.jpg", room.ImageURL)
						assert.Equal(t, "manager-1", room.CreatedBy)

						return nil
					})
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := f.svc.Create(staffContext(), req)

			if tt.wantCode == 0 {
				assert.NoError(t, err)
				assert.Equal(t, "R123", res.Code)
			} else {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			}
		})
	}
}

func TestRoomService_Update_ReplacesImage(t *testing.T) {
	f := newFixture(t)

	file, header := imageUpload("new.png")
	current := model.Room{ID: "room-1", Code: "R123", Status: model.StatusMaintenance, Active: true, ImageURL: "/v1/images/rooms/old.jpg"}

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(current, nil)
	f.s3.EXPECT().
		UploadFile(gomock.Any(), gomock.Any(), constant.ImageDirectoryRoom, gomock.Any(), gomock.Any(), gomock.Any()).
		Return("/v1/images/rooms/new.png", nil)
	f.repo.EXPECT().
		Update(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
			assert.Equal(t, "/v1/images/rooms/new.png", fields[model.FieldImageURL])
			assert.Equal(t, model.StatusAvailable.String(), fields[model.FieldStatus])

			return nil
		})
	f.s3.EXPECT().GetObjectNameFromURL("hotel", current.ImageURL).Return("old.jpg")
	f.s3.EXPECT().DeleteFile(gomock.Any(), "hotel", constant.ImageDirectoryRoom, "old.jpg").Return(nil)
	f.publisher.EXPECT().Publish(gomock.Any(), "hotel.room.events", gomock.Any()).Return(nil)

	err := f.svc.Update(staffContext(), dto.UpdateRoomRequest{Status: model.StatusAvailable.String(), Image: header, ImageFile: file}, "room-1")

	assert.NoError(t, err)
}

func TestRoomService_Delete(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name      string
		setupMock func()
		wantCode  int
	}{
		{
			name: "not found",
			setupMock: func() {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Room{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "referenced by bookings",
			setupMock: func() {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Room{ID: "room-1"}, nil)
				f.bookings.EXPECT().ExistDetail(gomock.Any(), gomock.Any()).Return(true, nil)
			},
			wantCode: http.StatusConflict,
		},
		{
			name: "successful delete",
			setupMock: func() {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Room{ID: "room-1"}, nil)
				f.bookings.EXPECT().ExistDetail(gomock.Any(), gomock.Any()).Return(false, nil)
				f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := f.svc.Delete(staffContext(), "room-1")

			if tt.wantCode == 0 {
				assert.NoError(t, err)
			} else {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			}
		})
	}
}

func TestRoomService_Reconcile(t *testing.T) {
	room := model.Room{ID: "room-1", Code: "R123", Status: model.StatusAvailable, Active: true}

	t.Run("checked out stay puts room under maintenance", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(room, nil)
		f.bookings.EXPECT().
			GetStays(gomock.Any(), gomock.Any()).
			Return([]bookingModel.Stay{stay(room.ID, "b-1", -3, -1)}, nil)
		f.expectTx()
		f.repo.EXPECT().LockTx(gomock.Any(), gomock.Any(), room.ID).Return(room, nil)
		f.repo.EXPECT().
			UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, model.StatusMaintenance, fields[model.FieldStatus])
				assert.Equal(t, constant.ContextSystem, fields[constant.FieldModifiedBy])

				return nil
			})
		f.bookings.EXPECT().
			UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, fields map[string]any, filter gDto.FilterGroup) error {
				assert.Equal(t, bookingModel.StatusCompleted, fields[bookingModel.FieldStatus])

				_, args := filter.GetWhereClause()
				assert.Equal(t, "b-1", args["id_0"])
				assert.Equal(t, bookingModel.StatusConfirmed, args["current_status"])

				return nil
			})
		f.publisher.EXPECT().Publish(gomock.Any(), "hotel.room.events", gomock.Any()).Return(nil)
		f.publisher.EXPECT().Publish(gomock.Any(), "hotel.booking.events", gomock.Any()).Return(errors.New("broker down"))

		res, err := f.svc.Reconcile(staffContext(), room.ID)

		assert.NoError(t, err)
		assert.True(t, res.Changed)
		assert.Equal(t, model.StatusMaintenance.String(), res.Status)
		assert.Equal(t, []string{"BK-b-1"}, res.CompletedCodes)
	})

	t.Run("current stay keeps room occupied without writes", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(room, nil)
		f.bookings.EXPECT().
			GetStays(gomock.Any(), gomock.Any()).
			Return([]bookingModel.Stay{stay(room.ID, "b-2", -1, 1)}, nil)

		res, err := f.svc.Reconcile(staffContext(), room.ID)

		assert.NoError(t, err)
		assert.False(t, res.Changed)
		assert.Equal(t, model.StatusOccupied.String(), res.Status)
	})

	t.Run("room reconciled concurrently is left alone", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(room, nil)
		f.bookings.EXPECT().
			GetStays(gomock.Any(), gomock.Any()).
			Return([]bookingModel.Stay{stay(room.ID, "b-1", -3, -1)}, nil)
		f.expectTx()
		f.repo.EXPECT().
			LockTx(gomock.Any(), gomock.Any(), room.ID).
			Return(model.Room{ID: room.ID, Status: model.StatusMaintenance, Active: true}, nil)

		res, err := f.svc.Reconcile(staffContext(), room.ID)

		assert.NoError(t, err)
		assert.False(t, res.Changed)
		assert.Equal(t, model.StatusMaintenance.String(), res.Status)
	})

	t.Run("transaction error", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(room, nil)
		f.bookings.EXPECT().
			GetStays(gomock.Any(), gomock.Any()).
			Return([]bookingModel.Stay{stay(room.ID, "b-1", -3, -1)}, nil)
		f.expectTx()
		f.repo.EXPECT().LockTx(gomock.Any(), gomock.Any(), room.ID).Return(room, nil)
		f.repo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("update error"))

		_, err := f.svc.Reconcile(staffContext(), room.ID)

		assert.Error(t, err)
	})
}

func TestRoomService_ReconcileAll(t *testing.T) {
	f := newFixture(t)

	rooms := []model.Room{
		{ID: "room-1", Code: "R1", Status: model.StatusAvailable, Active: true},
		{ID: "room-2", Code: "R2", Status: model.StatusAvailable, Active: true},
	}

	f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(rooms, nil)
	f.bookings.EXPECT().
		GetStays(gomock.Any(), gomock.Any()).
		Return([]bookingModel.Stay{stay("room-1", "b-1", -2, 0), stay("room-2", "b-2", 2, 4)}, nil)
	f.expectTx()
	f.repo.EXPECT().LockTx(gomock.Any(), gomock.Any(), "room-1").Return(rooms[0], nil)
	f.repo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	f.bookings.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(2)

	res, err := f.svc.ReconcileAll(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, 2, res.Checked)
	assert.Len(t, res.Changed, 1)
	assert.Equal(t, "room-1", res.Changed[0].RoomID)
}

func TestRoomService_GetAll(t *testing.T) {
	f := newFixture(t)

	rooms := []model.Room{
		{ID: "room-1", Code: "R1", Status: model.StatusAvailable, Active: true},
		{ID: "room-2", Code: "R2", Status: model.StatusAvailable, Active: false},
	}
	window := dto.Window{CheckIn: day(1), CheckOut: day(3)}

	f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(2, nil)
	f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(rooms, nil)
	f.bookings.EXPECT().
		GetStays(gomock.Any(), gomock.Any()).
		Return([]bookingModel.Stay{stay("room-1", "b-1", 2, 4)}, nil)
	f.bookings.EXPECT().
		GetStays(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, filter gDto.FilterGroup) ([]bookingModel.Stay, error) {
			where, _ := filter.GetWhereClause()
			assert.Contains(t, where, "bookings.check_in < :window_check_out")
			assert.Contains(t, where, "bookings.check_out > :window_check_in")

			return []bookingModel.Stay{stay("room-1", "b-1", 2, 4)}, nil
		})

	res, err := f.svc.GetAll(staffContext(), gDto.QueryParams{Page: 1, Limit: 10}, gDto.FilterGroup{}, window)

	assert.NoError(t, err)
	assert.Equal(t, 2, res.TotalData)
	assert.Equal(t, model.StatusReserved.String(), res.Rooms[0].Status)
	assert.Equal(t, model.StatusAvailable.String(), res.Rooms[0].StoredStatus)
	assert.Len(t, res.Rooms[0].Bookings, 1)
	assert.False(t, *res.Rooms[0].FreeInWindow)
	assert.Equal(t, model.StatusUnavailable.String(), res.Rooms[1].Status)
	assert.Empty(t, res.Rooms[1].Bookings)
	assert.True(t, *res.Rooms[1].FreeInWindow)
}

func TestRoomService_GetAll_InvalidWindow(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.GetAll(staffContext(), gDto.QueryParams{}, gDto.FilterGroup{}, dto.Window{CheckIn: day(3), CheckOut: day(3)})

	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
}

func TestRoomService_Search(t *testing.T) {
	f := newFixture(t)

	req := dto.SearchRoomsRequest{
		Search:   "deluxe",
		MinPrice: "500000",
		CheckIn:  day(1),
		CheckOut: day(3),
	}

	f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(10, nil)
	f.repo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, params gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]model.Room, error) {
			assert.Equal(t, 1, params.Page)
			assert.Equal(t, 9, params.Limit)
			assert.Equal(t, "rooms.price_per_night", params.SortBy)
			assert.Equal(t, gDto.SortDirAsc, params.SortDir)

			where, args := filter.GetWhereClause()
			assert.Contains(t, where, "NOT EXISTS")
			assert.Contains(t, where, "rooms.price_per_night >= :min_price")
			assert.Equal(t, model.StatusAvailable, args[model.FieldStatus])
			assert.Equal(t, bookingModel.StatusCancelled, args["cancelled_status"])

			return []model.Room{{ID: "room-1", Code: "R1"}}, nil
		})

	res, err := f.svc.Search(context.Background(), req)

	assert.NoError(t, err)
	assert.Equal(t, 10, res.TotalData)
	assert.Equal(t, 2, res.TotalPage)
}

func TestRoomService_Search_PastCheckIn(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Search(context.Background(), dto.SearchRoomsRequest{CheckIn: day(-1), CheckOut: day(1)})

	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
}

func TestRoomService_GetPublic(t *testing.T) {
	tests := []struct {
		name      string
		room      model.Room
		stays     []bookingModel.Stay
		callStays bool
		wantCode  int
	}{
		{
			name:     "inactive room is hidden",
			room:     model.Room{ID: "room-1", Status: model.StatusAvailable, Active: false},
			wantCode: http.StatusNotFound,
		},
		{
			name:     "room under maintenance is hidden",
			room:     model.Room{ID: "room-1", Status: model.StatusMaintenance, Active: true},
			wantCode: http.StatusNotFound,
		},
		{
			name:      "bookable room",
			room:      model.Room{ID: "room-1", Status: model.StatusAvailable, Active: true},
			stays:     []bookingModel.Stay{stay("room-1", "b-1", 5, 7)},
			callStays: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(tt.room, nil)

			if tt.callStays {
				f.bookings.EXPECT().GetStays(gomock.Any(), gomock.Any()).Return(tt.stays, nil)
			}

			res, err := f.svc.GetPublic(context.Background(), tt.room.ID)

			if tt.wantCode == 0 {
				assert.NoError(t, err)
				assert.Equal(t, tt.room.ID, res.ID)
			} else {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			}
		})
	}
}
