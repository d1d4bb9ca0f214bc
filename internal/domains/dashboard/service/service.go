package service

import (
	"context"
	"fmt"

	"hotel/infras/otel"
	bookingModel "hotel/internal/domains/booking/model"
	bookingRepo "hotel/internal/domains/booking/repository"
	"hotel/internal/domains/dashboard/model/dto"
	roomRepo "hotel/internal/domains/room/repository"
	userModel "hotel/internal/domains/user/model"
	userRepo "hotel/internal/domains/user/repository"
	"hotel/shared"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"

	"github.com/rs/zerolog/log"
)

type Dashboard interface {
	Summary(ctx context.Context) (dto.SummaryResponse, error)
}

type serviceImpl struct {
	roomRepo    roomRepo.Room
	bookingRepo bookingRepo.Booking
	userRepo    userRepo.User
	otel        otel.Otel
}

func New(roomRepo roomRepo.Room, bookingRepo bookingRepo.Booking, userRepo userRepo.User, otel otel.Otel) Dashboard {
	return &serviceImpl{
		roomRepo:    roomRepo,
		bookingRepo: bookingRepo,
		userRepo:    userRepo,
		otel:        otel,
	}
}

func (s *serviceImpl) Summary(ctx context.Context) (res dto.SummaryResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".dashboard.Summary")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	counts := []struct {
		name  string
		count func(ctx context.Context, filter gDto.FilterGroup) (int, error)
		scope gDto.FilterGroup
		dest  *int
	}{
		{name: "rooms", count: s.roomRepo.Count, dest: &res.TotalRooms},
		{name: "bookings", count: s.bookingRepo.Count, dest: &res.TotalBookings},
		{
			name:  "clients",
			count: s.userRepo.Count,
			scope: shared.FilterByValue(userModel.FieldRole, constant.RoleClient, userModel.TableName),
			dest:  &res.TotalClients,
		},
		{
			name:  "pending bookings",
			count: s.bookingRepo.Count,
			scope: shared.FilterByValue(bookingModel.FieldStatus, bookingModel.StatusPending, bookingModel.TableName),
			dest:  &res.PendingBookings,
		},
	}

	for _, c := range counts {
		if *c.dest, err = c.count(ctx, c.scope); err != nil {
			log.Error().Err(err).Msgf("failed to count %s", c.name)

			return res, fmt.Errorf("failed to count %s: %w", c.name, err)
		}
	}

	return res, nil
}
