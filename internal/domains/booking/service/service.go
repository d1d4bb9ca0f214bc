package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hotel/config"
	"hotel/infras/mail"
	"hotel/infras/otel"
	"hotel/internal/domains/booking/model"
	"hotel/internal/domains/booking/model/dto"
	"hotel/internal/domains/booking/repository"
	hotelServiceModel "hotel/internal/domains/hotelservice/model"
	hotelServiceRepo "hotel/internal/domains/hotelservice/repository"
	roomModel "hotel/internal/domains/room/model"
	roomRepo "hotel/internal/domains/room/repository"
	userModel "hotel/internal/domains/user/model"
	userRepo "hotel/internal/domains/user/repository"
	"hotel/shared"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/event"
	"hotel/shared/failure"
	"hotel/shared/identity"
	"hotel/shared/timezone"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

const (
	defaultSortBy = "bookings.booking_date"

	messageStatusUpdated  = "booking status updated"
	messageMailNotSent    = "booking status updated, but the confirmation email could not be sent"
	messageMailNotEnabled = "booking status updated, but outgoing mail is not configured"
)

var errCodeTaken = errors.New("booking code is already taken")

type Booking interface {
	Quote(ctx context.Context, req dto.QuoteRequest) (dto.QuoteResponse, error)
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	ListOwn(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	GetOwn(ctx context.Context, id string) (dto.BookingResponse, error)
	Cancel(ctx context.Context, id string) error
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	UpdateStatus(ctx context.Context, req dto.UpdateStatusRequest, id string) (dto.UpdateStatusResponse, error)
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo        repository.Booking
	roomRepo    roomRepo.Room
	serviceRepo hotelServiceRepo.Service
	userRepo    userRepo.User
	mailer      mail.Mailer
	publisher   event.Publisher
	cfg         *config.Config
	otel        otel.Otel
	now         func() time.Time
}

func New(
	repo repository.Booking,
	roomRepo roomRepo.Room,
	serviceRepo hotelServiceRepo.Service,
	userRepo userRepo.User,
	mailer mail.Mailer,
	publisher event.Publisher,
	cfg *config.Config,
	otel otel.Otel,
) Booking {
	return &serviceImpl{
		repo:        repo,
		roomRepo:    roomRepo,
		serviceRepo: serviceRepo,
		userRepo:    userRepo,
		mailer:      mailer,
		publisher:   publisher,
		cfg:         cfg,
		otel:        otel,
		now:         timezone.Now,
	}
}

// stay is a priced, not yet persisted booking request.
type stay struct {
	room     roomModel.Room
	period   model.Period
	services []hotelServiceModel.Service
	quote    model.Quote
}

func (s *serviceImpl) Quote(ctx context.Context, req dto.QuoteRequest) (res dto.QuoteResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Quote")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	priced, err := s.price(ctx, req)
	if err != nil {
		return res, err
	}

	res.FromModel(priced.room.ID, priced.room.Code, priced.period, priced.quote, dto.ServiceLines(constant.Empty, priced.services))

	return res, nil
}

// Create books a room for the current client. The room row is locked while
// the conflict check and inserts run so two overlapping requests cannot both commit.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	id := identity.FromContext(ctx)

	if err = s.ensureActiveUser(ctx, id.UserID); err != nil {
		return res, err
	}

	priced, err := s.price(ctx, req.QuoteRequest)
	if err != nil {
		return res, err
	}

	now := s.now()
	booking := req.ToModel(id.UserID, id.Actor(), priced.period, priced.quote, now)
	detail := model.Detail{
		ID:            uuid.NewString(),
		BookingID:     booking.ID,
		RoomID:        priced.room.ID,
		RoomCode:      priced.room.Code,
		RoomName:      priced.room.Name,
		RoomTypeName:  priced.room.RoomTypeName,
		PricePerNight: priced.room.PricePerNight,
	}
	lines := dto.ServiceLines(booking.ID, priced.services)

	for attempt := 1; attempt <= model.MaxCodeAttempts; attempt++ {
		booking.Code = model.NewCode(now)

		err = s.repo.WithTx(ctx, func(sqltx *sqlx.Tx) error {
			return s.insert(ctx, sqltx, booking, detail, lines)
		})
		if !errors.Is(err, errCodeTaken) {
			break
		}

		log.Warn().Int("attempt", attempt).Str("code", booking.Code).Msg("booking code collision, retrying")
	}

	if err != nil {
		if isFailure(err) {
			return res, err
		}

		log.Error().Err(err).Msg("failed to create booking")

		return res, fmt.Errorf("failed to create booking: %w", err)
	}

	log.Info().Str("booking_id", booking.ID).Str("code", booking.Code).Str("room_id", priced.room.ID).Msg("booking created")

	s.publish(ctx, event.New(constant.EventBookingCreated, model.EntityName, booking.ID, id.Actor(), map[string]any{
		"code":      booking.Code,
		"room_id":   priced.room.ID,
		"check_in":  booking.CheckIn.Format(constant.DateOnlyFormat),
		"check_out": booking.CheckOut.Format(constant.DateOnlyFormat),
		"total":     booking.Total.String(),
	}))

	res.FromModel(booking)
	res.WithLines([]model.Detail{detail}, lines)

	return res, nil
}

func (s *serviceImpl) insert(ctx context.Context, sqltx *sqlx.Tx, booking model.Booking, detail model.Detail, lines []model.ServiceLine) error {
	room, err := s.roomRepo.LockTx(ctx, sqltx, detail.RoomID)
	if err != nil {
		return fmt.Errorf("failed to lock room: %w", err)
	}

	if room.ID == constant.Empty {
		return failure.NotFound("room not found") // nolint:wrapcheck
	}

	if !room.IsBookable() {
		return failure.BadRequestFromString("room is not available for booking") // nolint:wrapcheck
	}

	conflict, err := s.repo.HasConflictTx(ctx, sqltx, room.ID, booking.Period())
	if err != nil {
		return fmt.Errorf("failed to check booking conflict: %w", err)
	}

	if conflict {
		return failure.Conflict("room is already booked for the selected dates") // nolint:wrapcheck
	}

	if err = s.repo.InsertTx(ctx, sqltx, booking); err != nil {
		if shared.IsUniqueViolation(err) {
			return errCodeTaken
		}

		return fmt.Errorf("failed to insert booking: %w", err)
	}

	if err = s.repo.InsertDetailTx(ctx, sqltx, detail); err != nil {
		return fmt.Errorf("failed to insert booking detail: %w", err)
	}

	if err = s.repo.InsertServiceLinesTx(ctx, sqltx, lines); err != nil {
		return fmt.Errorf("failed to insert booking services: %w", err)
	}

	return nil
}

func (s *serviceImpl) ListOwn(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.ListOwn")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter.Add(gDto.Filter{
		ArgName:  "owner_id",
		Field:    model.FieldUserID,
		Value:    identity.FromContext(ctx).UserID,
		Operator: gDto.FilterOperatorEq,
		Table:    model.TableName,
	})

	return s.list(ctx, req, filter)
}

func (s *serviceImpl) GetOwn(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.GetOwn")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	booking, err := s.get(ctx, ownedBy(id, identity.FromContext(ctx).UserID))
	if err != nil {
		return res, err
	}

	return s.withLines(ctx, booking)
}

// Cancel lets a client cancel their own booking while it is Pending or Confirmed.
func (s *serviceImpl) Cancel(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Cancel")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	current := identity.FromContext(ctx)

	booking, err := s.get(ctx, ownedBy(id, current.UserID))
	if err != nil {
		return err
	}

	previous, err := s.transition(ctx, booking.ID, model.StatusCancelled, current.Actor())
	if err != nil {
		return err
	}

	s.publishStatusChange(ctx, booking, previous, model.StatusCancelled, current.Actor())

	return nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	return s.list(ctx, req, filter)
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	booking, err := s.get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		return res, err
	}

	return s.withLines(ctx, booking)
}

// UpdateStatus moves a booking along its lifecycle. Confirming mails the
// guest; a failed mail is reported in the message and never undoes the change.
func (s *serviceImpl) UpdateStatus(ctx context.Context, req dto.UpdateStatusRequest, id string) (res dto.UpdateStatusResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.UpdateStatus")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	next := model.Status(req.Status)
	if !next.IsValid() {
		return res, failure.BadRequestFromString("unknown booking status") // nolint:wrapcheck
	}

	booking, err := s.get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		return res, err
	}

	actor := identity.FromContext(ctx).Actor()

	previous, err := s.transition(ctx, booking.ID, next, actor)
	if err != nil {
		return res, err
	}

	s.publishStatusChange(ctx, booking, previous, next, actor)

	res = dto.UpdateStatusResponse{
		ID:      booking.ID,
		Code:    booking.Code,
		Status:  next.String(),
		Message: messageStatusUpdated,
	}

	if next == model.StatusConfirmed {
		booking.Status = next
		res.Message = s.sendConfirmation(ctx, booking)
	}

	return res, nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	booking, err := s.get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		return err
	}

	if err = s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to delete booking")

		return fmt.Errorf("failed to delete booking: %w", err)
	}

	s.publish(ctx, event.New(constant.EventBookingDeleted, model.EntityName, booking.ID, identity.FromContext(ctx).Actor(), map[string]any{
		"code":   booking.Code,
		"status": booking.Status.String(),
	}))

	return nil
}

// price validates a stay request and computes its totals.
func (s *serviceImpl) price(ctx context.Context, req dto.QuoteRequest) (res stay, err error) {
	res.period, err = model.ParsePeriod(req.CheckIn, req.CheckOut)
	if err != nil {
		return res, failure.BadRequest(err) // nolint:wrapcheck
	}

	if res.period.CheckIn.Before(timezone.DateOf(s.now())) {
		return res, failure.BadRequestFromString("check-in date cannot be in the past") // nolint:wrapcheck
	}

	res.room, err = s.roomRepo.Get(ctx, shared.FilterByID(req.RoomID, roomModel.FieldID, roomModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room")

		return res, fmt.Errorf("failed to get room: %w", err)
	}

	if res.room.ID == constant.Empty {
		return res, failure.NotFound("room not found") // nolint:wrapcheck
	}

	if !res.room.IsBookable() {
		return res, failure.BadRequestFromString("room is not available for booking") // nolint:wrapcheck
	}

	res.services, err = s.activeServices(ctx, req.ServiceIDs)
	if err != nil {
		return res, err
	}

	servicePrices := make([]decimal.Decimal, len(res.services))
	for i, service := range res.services {
		servicePrices[i] = service.UnitPrice
	}

	res.quote, err = model.CalculateQuote(res.room.PricePerNight, res.period, servicePrices...)
	if err != nil {
		return res, failure.BadRequest(err) // nolint:wrapcheck
	}

	return res, nil
}

func (s *serviceImpl) activeServices(ctx context.Context, ids []string) ([]hotelServiceModel.Service, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	filter := gDto.FilterGroup{}
	filter.Add(
		gDto.Filter{
			Field:    hotelServiceModel.FieldID,
			Value:    ids,
			Operator: gDto.FilterOperatorIn,
			Table:    hotelServiceModel.TableName,
		},
		gDto.Filter{
			Field:    hotelServiceModel.FieldActive,
			Value:    true,
			Operator: gDto.FilterOperatorEq,
			Table:    hotelServiceModel.TableName,
		},
	)

	params := gDto.QueryParams{SortBy: hotelServiceModel.TableName + "." + hotelServiceModel.FieldName, SortDir: gDto.SortDirAsc}

	services, err := s.serviceRepo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get selected services")

		return nil, fmt.Errorf("failed to get selected services: %w", err)
	}

	if len(services) != len(ids) {
		return nil, failure.BadRequestFromString("one or more selected services are not available") // nolint:wrapcheck
	}

	return services, nil
}

func (s *serviceImpl) ensureActiveUser(ctx context.Context, id string) error {
	if id == constant.Empty {
		return failure.Unauthorized("sign in to book a room") // nolint:wrapcheck
	}

	user, err := s.userRepo.Get(ctx, shared.FilterByID(id, userModel.FieldID, userModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == constant.Empty || !user.Active {
		return failure.Forbidden("account is not active") // nolint:wrapcheck
	}

	return nil
}

// transition locks the booking and applies next when its lifecycle allows it.
// It returns the status the booking had before.
func (s *serviceImpl) transition(ctx context.Context, id string, next model.Status, actor string) (model.Status, error) {
	var previous model.Status

	err := s.repo.WithTx(ctx, func(sqltx *sqlx.Tx) error {
		locked, err := s.repo.LockTx(ctx, sqltx, id)
		if err != nil {
			return fmt.Errorf("failed to lock booking: %w", err)
		}

		if locked.ID == constant.Empty {
			return failure.NotFound("booking not found") // nolint:wrapcheck
		}

		if !locked.Status.CanTransitionTo(next) {
			return failure.BadRequestFromString(fmt.Sprintf("booking with status %s cannot be changed to %s", locked.Status, next)) // nolint:wrapcheck
		}

		previous = locked.Status

		fields := map[string]any{
			model.FieldStatus:        next,
			constant.FieldModifiedAt: s.now(),
			constant.FieldModifiedBy: actor,
		}

		if err = s.repo.UpdateTx(ctx, sqltx, fields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
			return fmt.Errorf("failed to update booking status: %w", err)
		}

		return nil
	})
	if err != nil {
		if isFailure(err) {
			return previous, err
		}

		log.Error().Err(err).Str("booking_id", id).Msg("failed to change booking status")

		return previous, fmt.Errorf("failed to change booking status: %w", err)
	}

	log.Info().Str("booking_id", id).Str("from", previous.String()).Str("to", next.String()).Str("actor", actor).Msg("booking status changed")

	return previous, nil
}

func (s *serviceImpl) list(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	if req.SortBy == constant.Empty {
		req.SortBy = defaultSortBy
		req.SortDir = constant.DefaultValueSortDir
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	bookings, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(bookings, total, req.Limit)

	return res, nil
}

func (s *serviceImpl) get(ctx context.Context, filter gDto.FilterGroup) (model.Booking, error) {
	booking, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return booking, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return booking, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	return booking, nil
}

func (s *serviceImpl) lines(ctx context.Context, bookingID string) ([]model.Detail, []model.ServiceLine, error) {
	details, err := s.repo.GetDetails(ctx, bookingID)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking details")

		return nil, nil, fmt.Errorf("failed to get booking details: %w", err)
	}

	services, err := s.repo.GetServiceLines(ctx, bookingID)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking services")

		return nil, nil, fmt.Errorf("failed to get booking services: %w", err)
	}

	return details, services, nil
}

func (s *serviceImpl) withLines(ctx context.Context, booking model.Booking) (res dto.BookingResponse, err error) {
	details, services, err := s.lines(ctx, booking.ID)
	if err != nil {
		return res, err
	}

	res.FromModel(booking)
	res.WithLines(details, services)

	return res, nil
}

// sendConfirmation mails the confirmation and returns the message for the caller.
func (s *serviceImpl) sendConfirmation(ctx context.Context, booking model.Booking) string {
	recipient := booking.Recipient()
	if recipient == constant.Empty {
		log.Warn().Str("booking_id", booking.ID).Msg("booking has no email to confirm to")

		return messageMailNotSent
	}

	details, services, err := s.lines(ctx, booking.ID)
	if err != nil {
		log.Warn().Err(err).Str("booking_id", booking.ID).Msg("failed to load booking for confirmation email")

		return messageMailNotSent
	}

	err = s.mailer.Send(ctx, confirmationMail(s.cfg.Mail.FromName, recipient, booking, details, services))

	switch {
	case err == nil:
		return messageStatusUpdated
	case errors.Is(err, mail.ErrMailDisabled):
		log.Warn().Str("booking_id", booking.ID).Msg("mail is disabled, confirmation email was not sent")

		return messageMailNotEnabled
	default:
		log.Warn().Err(err).Str("booking_id", booking.ID).Msg("failed to send confirmation email")

		return messageMailNotSent
	}
}

func (s *serviceImpl) publishStatusChange(ctx context.Context, booking model.Booking, from, to model.Status, actor string) {
	s.publish(ctx, event.New(constant.EventBookingStatusChanged, model.EntityName, booking.ID, actor, map[string]any{
		"code": booking.Code,
		"from": from.String(),
		"to":   to.String(),
	}))
}

func (s *serviceImpl) publish(ctx context.Context, evt event.Event) {
	if err := s.publisher.Publish(ctx, s.cfg.Kafka.Topics.BookingEvents, evt); err != nil {
		log.Warn().Err(err).Str("booking_id", evt.EntityID).Str("type", evt.Type).Msg("failed to publish booking event")
	}
}

func isFailure(err error) bool {
	var fail *failure.Failure

	return errors.As(err, &fail)
}

func ownedBy(id, userID string) gDto.FilterGroup {
	filter := shared.FilterByID(id, model.FieldID, model.TableName)
	filter.Add(gDto.Filter{
		ArgName:  "owner_id",
		Field:    model.FieldUserID,
		Value:    userID,
		Operator: gDto.FilterOperatorEq,
		Table:    model.TableName,
	})

	return filter
}
