package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"mime/multipart"
	"time"

	"hotel/config"
	"hotel/infras/otel"
	"hotel/infras/s3"
	bookingModel "hotel/internal/domains/booking/model"
	bookingRepo "hotel/internal/domains/booking/repository"
	"hotel/internal/domains/room/model"
	"hotel/internal/domains/room/model/dto"
	"hotel/internal/domains/room/repository"
	roomTypeModel "hotel/internal/domains/roomtype/model"
	roomTypeRepo "hotel/internal/domains/roomtype/repository"
	"hotel/shared"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/event"
	"hotel/shared/failure"
	"hotel/shared/identity"
	"hotel/shared/timezone"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

const publicSortColumn = "rooms.price_per_night"

type Room interface {
	Create(ctx context.Context, req dto.CreateRoomRequest) (dto.RoomResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup, window dto.Window) (dto.GetAdminRoomsResponse, error)
	Get(ctx context.Context, id string) (dto.AdminRoomResponse, error)
	Update(ctx context.Context, req dto.UpdateRoomRequest, id string) error
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, req dto.SearchRoomsRequest) (dto.GetRoomsResponse, error)
	GetPublic(ctx context.Context, id string) (dto.RoomResponse, error)
	Reconcile(ctx context.Context, id string) (dto.ReconcileResponse, error)
	ReconcileAll(ctx context.Context) (dto.ReconcileSummary, error)
}

type serviceImpl struct {
	repo         repository.Room
	roomTypeRepo roomTypeRepo.RoomType
	bookingRepo  bookingRepo.Booking
	publisher    event.Publisher
	cfg          *config.Config
	otel         otel.Otel
	s3           s3.S3
	now          func() time.Time
}

func New(
	repo repository.Room,
	roomTypeRepo roomTypeRepo.RoomType,
	bookingRepo bookingRepo.Booking,
	publisher event.Publisher,
	cfg *config.Config,
	otel otel.Otel,
	s3 s3.S3,
) Room {
	return &serviceImpl{
		repo:         repo,
		roomTypeRepo: roomTypeRepo,
		bookingRepo:  bookingRepo,
		publisher:    publisher,
		cfg:          cfg,
		otel:         otel,
		s3:           s3,
		now:          timezone.Now,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateRoomRequest) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = s.ensureRoomType(ctx, req.RoomTypeID); err != nil {
		return res, err
	}

	if err = s.ensureUniqueCode(ctx, req.Code, constant.Empty); err != nil {
		return res, err
	}

	imageURL, objectName, err := s.uploadImage(ctx, req.ImageFile, req.Image)
	if err != nil {
		return res, err
	}

	room := req.ToModel(identity.FromContext(ctx).Actor(), imageURL)

	if err = s.repo.Insert(ctx, room); err != nil {
		s.deleteObject(ctx, objectName)

		if shared.IsUniqueViolation(err) {
			return res, failure.Conflict("room code is already in use") // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to create room")

		return res, fmt.Errorf("failed to create room: %w", err)
	}

	res.FromModel(room)

	return res, nil
}

// GetAll lists rooms with their derived status. Rooms that need turnover are
// reconciled before they are returned. With a window, each room also lists
// the bookings that overlap it and whether it is free for the whole window.
func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup, window dto.Window) (res dto.GetAdminRoomsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	var period bookingModel.Period

	if window.IsSet() {
		period, err = bookingModel.ParsePeriod(window.CheckIn, window.CheckOut)
		if err != nil {
			return res, failure.BadRequest(err) // nolint:wrapcheck
		}
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count rooms")

		return res, fmt.Errorf("failed to count rooms: %w", err)
	}

	rooms, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get rooms")

		return res, fmt.Errorf("failed to get rooms: %w", err)
	}

	ids := make([]string, len(rooms))
	for i, room := range rooms {
		ids[i] = room.ID
	}

	confirmed, err := s.confirmedStays(ctx, ids...)
	if err != nil {
		return res, err
	}

	var windowStays map[string][]bookingModel.Stay

	if window.IsSet() && len(ids) > 0 {
		windowStays, err = s.windowStays(ctx, period, ids)
		if err != nil {
			return res, err
		}
	}

	today := s.now()

	res.TotalData = total
	res.TotalPage = shared.CalculateTotalPage(total, req.Limit)
	res.Rooms = make([]dto.AdminRoomResponse, len(rooms))

	for i, room := range rooms {
		derivation, err := s.reconcile(ctx, room, confirmed[room.ID], today)
		if err != nil {
			return res, err
		}

		if derivation.RequiresTurnover() {
			room.Status = model.StatusMaintenance
		}

		res.Rooms[i].FromModel(room, derivation.Status, windowStays[room.ID])

		if window.IsSet() {
			free := !bookingModel.Conflicts(windowStays[room.ID], period)
			res.Rooms[i].FreeInWindow = &free
		}
	}

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.AdminRoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	room, err := s.get(ctx, id)
	if err != nil {
		return res, err
	}

	stays, err := s.confirmedStays(ctx, room.ID)
	if err != nil {
		return res, err
	}

	derivation, err := s.reconcile(ctx, room, stays[room.ID], s.now())
	if err != nil {
		return res, err
	}

	if derivation.RequiresTurnover() {
		room.Status = model.StatusMaintenance
	}

	res.FromModel(room, derivation.Status, stays[room.ID])

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateRoomRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req.IsEmpty() {
		return failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	current, err := s.get(ctx, id)
	if err != nil {
		return err
	}

	if req.RoomTypeID != constant.Empty {
		if err = s.ensureRoomType(ctx, req.RoomTypeID); err != nil {
			return err
		}
	}

	if req.Code != constant.Empty {
		if err = s.ensureUniqueCode(ctx, req.Code, id); err != nil {
			return err
		}
	}

	imageURL, objectName, err := s.uploadImage(ctx, req.ImageFile, req.Image)
	if err != nil {
		return err
	}

	fields := req.Fields(identity.FromContext(ctx).Actor())
	if imageURL != constant.Empty {
		fields[model.FieldImageURL] = imageURL
	}

	if err = s.repo.Update(ctx, fields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		s.deleteObject(ctx, objectName)

		if shared.IsUniqueViolation(err) {
			return failure.Conflict("room code is already in use") // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to update room")

		return fmt.Errorf("failed to update room: %w", err)
	}

	if imageURL != constant.Empty && current.ImageURL != constant.Empty {
		s.deleteObject(ctx, s.s3.GetObjectNameFromURL(s.cfg.External.S3.BucketName, current.ImageURL))
	}

	if req.Status != constant.Empty && model.Status(req.Status) != current.Status {
		s.publishStatusChange(ctx, current.ID, current.Status, model.Status(req.Status), "updated by staff")
	}

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	room, err := s.get(ctx, id)
	if err != nil {
		return err
	}

	booked, err := s.bookingRepo.ExistDetail(ctx, shared.FilterByValue(bookingModel.FieldRoomID, id, bookingModel.DetailTableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check room bookings")

		return fmt.Errorf("failed to check room bookings: %w", err)
	}

	if booked {
		return failure.Conflict("room is referenced by bookings") // nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		if shared.IsForeignKeyViolation(err) {
			return failure.Conflict("room is referenced by bookings") // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to delete room")

		return fmt.Errorf("failed to delete room: %w", err)
	}

	if room.ImageURL != constant.Empty {
		s.deleteObject(ctx, s.s3.GetObjectNameFromURL(s.cfg.External.S3.BucketName, room.ImageURL))
	}

	return nil
}

// Search lists bookable rooms for guests, cheapest first.
func (s *serviceImpl) Search(ctx context.Context, req dto.SearchRoomsRequest) (res dto.GetRoomsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.Search")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter, err := searchFilter(req, s.now())
	if err != nil {
		return res, err
	}

	params := gDto.QueryParams{
		Page:    max(req.Page, constant.DefaultValuePage),
		Limit:   s.cfg.Booking.PublicPageSize,
		SortBy:  publicSortColumn,
		SortDir: gDto.SortDirAsc,
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count available rooms")

		return res, fmt.Errorf("failed to count available rooms: %w", err)
	}

	rooms, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to search rooms")

		return res, fmt.Errorf("failed to search rooms: %w", err)
	}

	res.FromModels(rooms, total, params.Limit)

	return res, nil
}

func (s *serviceImpl) GetPublic(ctx context.Context, id string) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.GetPublic")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	room, err := s.get(ctx, id)
	if err != nil {
		return res, err
	}

	if !room.IsBookable() {
		return res, failure.NotFound("room not found") // nolint:wrapcheck
	}

	stays, err := s.confirmedStays(ctx, room.ID)
	if err != nil {
		return res, err
	}

	derivation, err := s.reconcile(ctx, room, stays[room.ID], s.now())
	if err != nil {
		return res, err
	}

	if derivation.RequiresTurnover() {
		return res, failure.NotFound("room not found") // nolint:wrapcheck
	}

	res.FromModel(room)

	return res, nil
}

func (s *serviceImpl) Reconcile(ctx context.Context, id string) (res dto.ReconcileResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.Reconcile")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	room, err := s.get(ctx, id)
	if err != nil {
		return res, err
	}

	stays, err := s.confirmedStays(ctx, room.ID)
	if err != nil {
		return res, err
	}

	derivation, err := s.reconcile(ctx, room, stays[room.ID], s.now())
	if err != nil {
		return res, err
	}

	return reconcileResponse(room.ID, derivation), nil
}

// ReconcileAll reconciles every active room that is not already under maintenance.
func (s *serviceImpl) ReconcileAll(ctx context.Context) (res dto.ReconcileSummary, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.ReconcileAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := shared.FilterByValue(model.FieldActive, true, model.TableName)
	filter.Add(gDto.Filter{
		Field:    model.FieldStatus,
		Value:    model.StatusMaintenance,
		Operator: gDto.FilterOperatorNotEq,
		Table:    model.TableName,
	})

	rooms, err := s.repo.GetAll(ctx, gDto.QueryParams{}, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get rooms to reconcile")

		return res, fmt.Errorf("failed to get rooms to reconcile: %w", err)
	}

	res.Checked = len(rooms)
	res.Changed = []dto.ReconcileResponse{}

	if len(rooms) == 0 {
		return res, nil
	}

	ids := make([]string, len(rooms))
	for i, room := range rooms {
		ids[i] = room.ID
	}

	stays, err := s.confirmedStays(ctx, ids...)
	if err != nil {
		return res, err
	}

	today := s.now()

	for _, room := range rooms {
		derivation, err := s.reconcile(ctx, room, stays[room.ID], today)
		if err != nil {
			return res, err
		}

		if derivation.RequiresTurnover() {
			res.Changed = append(res.Changed, reconcileResponse(room.ID, derivation))
		}
	}

	return res, nil
}

// reconcile derives the status of room and, when a confirmed stay has ended,
// puts the room under maintenance and completes those stays in one transaction.
func (s *serviceImpl) reconcile(ctx context.Context, room model.Room, stays []bookingModel.Stay, today time.Time) (model.Derivation, error) {
	derivation := model.DeriveStatus(room, stays, today)
	if !derivation.RequiresTurnover() {
		return derivation, nil
	}

	bookingIDs := make([]string, len(derivation.Ended))
	for i, stay := range derivation.Ended {
		bookingIDs[i] = stay.BookingID
	}

	var flipped bool

	err := s.repo.WithTx(ctx, func(sqltx *sqlx.Tx) error {
		locked, err := s.repo.LockTx(ctx, sqltx, room.ID)
		if err != nil {
			return fmt.Errorf("failed to lock room: %w", err)
		}

		// someone else reconciled or deactivated the room meanwhile
		if !locked.Active || locked.Status == model.StatusMaintenance {
			return nil
		}

		now := s.now()

		roomFields := map[string]any{
			model.FieldStatus:        model.StatusMaintenance,
			constant.FieldModifiedAt: now,
			constant.FieldModifiedBy: constant.ContextSystem,
		}

		if err = s.repo.UpdateTx(ctx, sqltx, roomFields, shared.FilterByID(room.ID, model.FieldID, model.TableName)); err != nil {
			return fmt.Errorf("failed to put room under maintenance: %w", err)
		}

		filter := gDto.FilterGroup{}
		filter.Add(
			gDto.Filter{
				Field:    bookingModel.FieldID,
				Value:    bookingIDs,
				Operator: gDto.FilterOperatorIn,
				Table:    bookingModel.TableName,
			},
			gDto.Filter{
				ArgName:  "current_status",
				Field:    bookingModel.FieldStatus,
				Value:    bookingModel.StatusConfirmed,
				Operator: gDto.FilterOperatorEq,
				Table:    bookingModel.TableName,
			},
		)

		bookingFields := map[string]any{
			bookingModel.FieldStatus: bookingModel.StatusCompleted,
			constant.FieldModifiedAt: now,
			constant.FieldModifiedBy: constant.ContextSystem,
		}

		if err = s.bookingRepo.UpdateTx(ctx, sqltx, bookingFields, filter); err != nil {
			return fmt.Errorf("failed to complete ended bookings: %w", err)
		}

		flipped = true

		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("room_id", room.ID).Msg("failed to reconcile room status")

		return derivation, fmt.Errorf("failed to reconcile room status: %w", err)
	}

	if !flipped {
		return model.Derivation{Status: model.StatusMaintenance}, nil
	}

	log.Info().
		Str("room_id", room.ID).
		Str("room_code", room.Code).
		Strs("completed_bookings", bookingIDs).
		Msg("room checked out, put under maintenance")

	s.publishStatusChange(ctx, room.ID, room.Status, model.StatusMaintenance, "guest checked out")
	s.publishCompleted(ctx, derivation.Ended)

	return derivation, nil
}

// confirmedStays returns confirmed stays keyed by room id.
func (s *serviceImpl) confirmedStays(ctx context.Context, roomIDs ...string) (map[string][]bookingModel.Stay, error) {
	grouped := map[string][]bookingModel.Stay{}

	if len(roomIDs) == 0 {
		return grouped, nil
	}

	filter := gDto.FilterGroup{}
	filter.Add(
		gDto.Filter{
			Field:    bookingModel.FieldRoomID,
			Value:    roomIDs,
			Operator: gDto.FilterOperatorIn,
			Table:    bookingModel.DetailTableName,
		},
		gDto.Filter{
			Field:    bookingModel.FieldStatus,
			Value:    bookingModel.StatusConfirmed,
			Operator: gDto.FilterOperatorEq,
			Table:    bookingModel.TableName,
		},
	)

	stays, err := s.bookingRepo.GetStays(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get confirmed stays")

		return nil, fmt.Errorf("failed to get confirmed stays: %w", err)
	}

	for _, stay := range stays {
		grouped[stay.RoomID] = append(grouped[stay.RoomID], stay)
	}

	return grouped, nil
}

// windowStays returns the non-cancelled stays overlapping period keyed by room id.
func (s *serviceImpl) windowStays(ctx context.Context, period bookingModel.Period, roomIDs []string) (map[string][]bookingModel.Stay, error) {
	filter := gDto.FilterGroup{}
	filter.Add(
		gDto.Filter{
			Field:    bookingModel.FieldRoomID,
			Value:    roomIDs,
			Operator: gDto.FilterOperatorIn,
			Table:    bookingModel.DetailTableName,
		},
		gDto.Filter{
			Field:    bookingModel.FieldStatus,
			Value:    bookingModel.StatusCancelled,
			Operator: gDto.FilterOperatorNotEq,
			Table:    bookingModel.TableName,
		},
		gDto.Filter{
			ArgName:  "window_check_out",
			Field:    bookingModel.FieldCheckIn,
			Value:    period.CheckOut,
			Operator: gDto.FilterOperatorLess,
			Table:    bookingModel.TableName,
		},
		gDto.Filter{
			ArgName:  "window_check_in",
			Field:    bookingModel.FieldCheckOut,
			Value:    period.CheckIn,
			Operator: gDto.FilterOperatorGreater,
			Table:    bookingModel.TableName,
		},
	)

	stays, err := s.bookingRepo.GetStays(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get stays in window")

		return nil, fmt.Errorf("failed to get stays in window: %w", err)
	}

	grouped := map[string][]bookingModel.Stay{}
	for _, stay := range stays {
		grouped[stay.RoomID] = append(grouped[stay.RoomID], stay)
	}

	return grouped, nil
}

func (s *serviceImpl) get(ctx context.Context, id string) (model.Room, error) {
	room, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room")

		return room, fmt.Errorf("failed to get room: %w", err)
	}

	if room.ID == constant.Empty {
		return room, failure.NotFound("room not found") // nolint:wrapcheck
	}

	return room, nil
}

func (s *serviceImpl) ensureRoomType(ctx context.Context, id string) error {
	exist, err := s.roomTypeRepo.Exist(ctx, shared.FilterByID(id, roomTypeModel.FieldID, roomTypeModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check room type")

		return fmt.Errorf("failed to check room type: %w", err)
	}

	if !exist {
		return failure.BadRequestFromString("room type does not exist") // nolint:wrapcheck
	}

	return nil
}

func (s *serviceImpl) ensureUniqueCode(ctx context.Context, code, excludeID string) error {
	filter := shared.FilterByValue(model.FieldCode, code, model.TableName)

	if excludeID != constant.Empty {
		filter.Add(gDto.Filter{
			ArgName:  "exclude_id",
			Field:    model.FieldID,
			Value:    excludeID,
			Operator: gDto.FilterOperatorNotEq,
			Table:    model.TableName,
		})
	}

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check room code")

		return fmt.Errorf("failed to check room code: %w", err)
	}

	if exist {
		return failure.Conflict("room code is already in use") // nolint:wrapcheck
	}

	return nil
}

func (s *serviceImpl) publishStatusChange(ctx context.Context, roomID string, from, to model.Status, reason string) {
	evt := event.New(constant.EventRoomStatusChanged, model.EntityName, roomID, identity.FromContext(ctx).Actor(), map[string]any{
		"from":   from.String(),
		"to":     to.String(),
		"reason": reason,
	})

	if err := s.publisher.Publish(ctx, s.cfg.Kafka.Topics.RoomEvents, evt); err != nil {
		log.Warn().Err(err).Str("room_id", roomID).Msg("failed to publish room status change")
	}
}

func (s *serviceImpl) publishCompleted(ctx context.Context, stays []bookingModel.Stay) {
	events := make([]event.Event, len(stays))
	for i, stay := range stays {
		events[i] = event.New(constant.EventBookingStatusChanged, bookingModel.EntityName, stay.BookingID, constant.ContextSystem, map[string]any{
			"code": stay.Code,
			"from": bookingModel.StatusConfirmed.String(),
			"to":   bookingModel.StatusCompleted.String(),
		})
	}

	if err := s.publisher.Publish(ctx, s.cfg.Kafka.Topics.BookingEvents, events...); err != nil {
		log.Warn().Err(err).Msg("failed to publish completed bookings")
	}
}

// uploadImage stores file under the rooms directory. It returns empty values when no image was sent.
func (s *serviceImpl) uploadImage(ctx context.Context, file multipart.File, header *multipart.FileHeader) (url, objectName string, err error) {
	if header == nil || file == nil {
		return constant.Empty, constant.Empty, nil
	}

	objectName = shared.NewObjectName(header.Filename)

	url, err = s.s3.UploadFile(ctx, s.cfg.External.S3.BucketName, constant.ImageDirectoryRoom, file, header, objectName)
	if err != nil {
		log.Error().Err(err).Msg("failed to upload room image")

		return constant.Empty, constant.Empty, fmt.Errorf("failed to upload room image: %w", err)
	}

	return url, objectName, nil
}

func (s *serviceImpl) deleteObject(ctx context.Context, objectName string) {
	if objectName == constant.Empty {
		return
	}

	if err := s.s3.DeleteFile(ctx, s.cfg.External.S3.BucketName, constant.ImageDirectoryRoom, objectName); err != nil {
		log.Warn().Err(err).Str("object", objectName).Msg("failed to delete room image")
	}
}

func reconcileResponse(roomID string, derivation model.Derivation) dto.ReconcileResponse {
	res := dto.ReconcileResponse{
		RoomID:  roomID,
		Status:  derivation.Status.String(),
		Changed: derivation.RequiresTurnover(),
	}

	for _, stay := range derivation.Ended {
		res.CompletedCodes = append(res.CompletedCodes, stay.Code)
	}

	return res
}

func searchFilter(req dto.SearchRoomsRequest, now time.Time) (gDto.FilterGroup, error) {
	filter := shared.FilterByValue(model.FieldActive, true, model.TableName)
	filter.Add(gDto.Filter{
		Field:    model.FieldStatus,
		Value:    model.StatusAvailable,
		Operator: gDto.FilterOperatorEq,
		Table:    model.TableName,
	})

	if req.Search != constant.Empty {
		filter.Add(gDto.FilterGroup{
			Operator: gDto.FilterGroupOperatorOr,
			Filters: []any{
				gDto.Filter{ArgName: "search_code", Field: model.FieldCode, Value: req.Search, Operator: gDto.FilterOperatorLike, Table: model.TableName},
				gDto.Filter{ArgName: "search_name", Field: model.FieldName, Value: req.Search, Operator: gDto.FilterOperatorLike, Table: model.TableName},
				gDto.Filter{ArgName: "search_description", Field: model.FieldDescription, Value: req.Search, Operator: gDto.FilterOperatorLike, Table: model.TableName},
			},
		})
	}

	if req.RoomTypeID != constant.Empty {
		filter.Add(gDto.Filter{Field: model.FieldRoomTypeID, Value: req.RoomTypeID, Operator: gDto.FilterOperatorEq, Table: model.TableName})
	}

	if price, err := decimal.NewFromString(req.MinPrice); err == nil {
		filter.Add(gDto.Filter{ArgName: "min_price", Field: model.FieldPricePerNight, Value: price, Operator: gDto.FilterOperatorGreaterEq, Table: model.TableName})
	}

	if price, err := decimal.NewFromString(req.MaxPrice); err == nil {
		filter.Add(gDto.Filter{ArgName: "max_price", Field: model.FieldPricePerNight, Value: price, Operator: gDto.FilterOperatorLessEq, Table: model.TableName})
	}

	if req.CheckIn != constant.Empty && req.CheckOut != constant.Empty {
		period, err := bookingModel.ParsePeriod(req.CheckIn, req.CheckOut)
		if err != nil {
			return filter, failure.BadRequest(err) // nolint:wrapcheck
		}

		if period.CheckIn.Before(timezone.DateOf(now)) {
			return filter, failure.BadRequestFromString("check-in date cannot be in the past") // nolint:wrapcheck
		}

		filter.Add(bookingRepo.AvailabilityFilter(period))
	}

	return filter, nil
}
