package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"

	"hotel/infras/otel"
	"hotel/infras/postgres"
	"hotel/internal/domains/booking/model"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/logger"
	gRepo "hotel/shared/repository"

	"github.com/jmoiron/sqlx"
)

// overlapCondition matches bookings of a room that still hold it and overlap
// the half-open range [:window_check_in, :window_check_out).
const overlapCondition = `EXISTS (
	SELECT 1 FROM booking_details
	JOIN bookings ON bookings.id = booking_details.booking_id
	WHERE booking_details.room_id = %s
	AND bookings.status <> :cancelled_status
	AND bookings.check_in < :window_check_out
	AND bookings.check_out > :window_check_in)`

type Booking interface {
	InsertTx(ctx context.Context, sqltx *sqlx.Tx, booking model.Booking) error
	InsertDetailTx(ctx context.Context, sqltx *sqlx.Tx, detail model.Detail) error
	InsertServiceLinesTx(ctx context.Context, sqltx *sqlx.Tx, lines []model.ServiceLine) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Booking, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	UpdateTx(ctx context.Context, sqltx *sqlx.Tx, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	GetDetails(ctx context.Context, bookingID string) ([]model.Detail, error)
	GetServiceLines(ctx context.Context, bookingID string) ([]model.ServiceLine, error)
	ExistDetail(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	ExistServiceLine(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	GetStays(ctx context.Context, filter gDto.FilterGroup) ([]model.Stay, error)
	HasConflictTx(ctx context.Context, sqltx *sqlx.Tx, roomID string, period model.Period) (bool, error)
	// LockTx reads the booking with a row lock held until sqltx ends.
	LockTx(ctx context.Context, sqltx *sqlx.Tx, id string) (model.Booking, error)
	WithTx(ctx context.Context, fn func(sqltx *sqlx.Tx) error) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
	details  gRepo.Repository[model.Detail]
	services gRepo.Repository[model.ServiceLine]
	stays    gRepo.Repository[model.Stay]
	otel     otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
		details:    gRepo.NewRepository[model.Detail](model.DetailEntityName, model.DetailTableName, model.FieldID, db, otel),
		services:   gRepo.NewRepository[model.ServiceLine](model.ServiceEntityName, model.ServiceLineTableName, model.FieldID, db, otel),
		stays:      gRepo.NewRepository[model.Stay](model.DetailEntityName, model.DetailTableName, model.FieldID, db, otel),
		otel:       otel,
	}
}

// AvailabilityFilter keeps rows of the rooms table that have no conflicting booking in period.
func AvailabilityFilter(period model.Period) gDto.Filter {
	return gDto.Filter{
		Operator: gDto.FilterPlainQuery,
		Value:    "NOT " + fmt.Sprintf(overlapCondition, "rooms.id"),
		Args:     overlapArgs(period),
	}
}

func overlapArgs(period model.Period) map[string]any {
	return map[string]any{
		"cancelled_status": model.StatusCancelled,
		"window_check_in":  period.CheckIn,
		"window_check_out": period.CheckOut,
	}
}

func (r *repositoryImpl) InsertDetailTx(ctx context.Context, sqltx *sqlx.Tx, detail model.Detail) error {
	return r.details.InsertTx(ctx, sqltx, detail) //nolint:wrapcheck
}

func (r *repositoryImpl) InsertServiceLinesTx(ctx context.Context, sqltx *sqlx.Tx, lines []model.ServiceLine) error {
	if len(lines) == 0 {
		return nil
	}

	return r.services.InsertBulkTx(ctx, sqltx, lines) //nolint:wrapcheck
}

func (r *repositoryImpl) GetDetails(ctx context.Context, bookingID string) ([]model.Detail, error) {
	filter := gDto.FilterGroup{}
	filter.Add(gDto.Filter{
		Field:    model.FieldBookingID,
		Value:    bookingID,
		Operator: gDto.FilterOperatorEq,
		Table:    model.DetailTableName,
	})

	return r.details.GetAll(ctx, gDto.QueryParams{}, filter) //nolint:wrapcheck
}

func (r *repositoryImpl) GetServiceLines(ctx context.Context, bookingID string) ([]model.ServiceLine, error) {
	filter := gDto.FilterGroup{}
	filter.Add(gDto.Filter{
		Field:    model.FieldBookingID,
		Value:    bookingID,
		Operator: gDto.FilterOperatorEq,
		Table:    model.ServiceLineTableName,
	})

	params := gDto.QueryParams{SortBy: "services.name", SortDir: gDto.SortDirAsc}

	return r.services.GetAll(ctx, params, filter) //nolint:wrapcheck
}

func (r *repositoryImpl) ExistDetail(ctx context.Context, filter gDto.FilterGroup) (bool, error) {
	return r.details.Exist(ctx, filter) //nolint:wrapcheck
}

func (r *repositoryImpl) ExistServiceLine(ctx context.Context, filter gDto.FilterGroup) (bool, error) {
	return r.services.Exist(ctx, filter) //nolint:wrapcheck
}

func (r *repositoryImpl) GetStays(ctx context.Context, filter gDto.FilterGroup) ([]model.Stay, error) {
	params := gDto.QueryParams{SortBy: "bookings.check_in", SortDir: gDto.SortDirAsc}

	return r.stays.GetAll(ctx, params, filter) //nolint:wrapcheck
}

func (r *repositoryImpl) LockTx(ctx context.Context, sqltx *sqlx.Tx, id string) (model.Booking, error) {
	filter := gDto.FilterGroup{}
	filter.Add(gDto.Filter{
		Field:    model.FieldID,
		Value:    id,
		Operator: gDto.FilterOperatorEq,
		Table:    model.TableName,
	})

	bookings, err := r.GetAllTx(ctx, sqltx, filter, true)
	if err != nil || len(bookings) == 0 {
		return model.Booking{}, err //nolint:wrapcheck
	}

	return bookings[0], nil
}

func (r *repositoryImpl) HasConflictTx(ctx context.Context, sqltx *sqlx.Tx, roomID string, period model.Period) (bool, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.HasConflictTx")
	defer scope.End()

	query := "SELECT " + fmt.Sprintf(overlapCondition, ":room_id")
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	args := overlapArgs(period)
	args["room_id"] = roomID

	prepare, err := sqltx.PrepareNamedContext(ctx, query)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return false, fmt.Errorf("failed to prepare conflict check: %w", err)
	}
	defer prepare.Close()

	var conflict bool
	if err = prepare.GetContext(ctx, &conflict, args); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return false, fmt.Errorf("failed to check booking conflict: %w", err)
	}

	return conflict, nil
}
