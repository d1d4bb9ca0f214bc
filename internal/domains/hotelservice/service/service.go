package service

import (
	"context"
	"fmt"

	"hotel/config"
	"hotel/infras/otel"
	bookingModel "hotel/internal/domains/booking/model"
	bookingRepo "hotel/internal/domains/booking/repository"
	"hotel/internal/domains/hotelservice/model"
	"hotel/internal/domains/hotelservice/model/dto"
	"hotel/internal/domains/hotelservice/repository"
	serviceTypeModel "hotel/internal/domains/servicetype/model"
	serviceTypeRepo "hotel/internal/domains/servicetype/repository"
	"hotel/shared"
	"hotel/shared/cache"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	"hotel/shared/identity"

	"github.com/rs/zerolog/log"
)

const (
	cachePrefix       = "hotelservice"
	cacheGetService   = "hotelservice:get"
	cacheActiveOffers = "hotelservice:active"

	// type name first, then service name
	activeSortColumns = "service_types.name ASC, services.name"
)

type Service interface {
	Create(ctx context.Context, req dto.CreateServiceRequest) (dto.ServiceResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetServicesResponse, error)
	GetActive(ctx context.Context) (dto.GetServicesResponse, error)
	Get(ctx context.Context, id string) (dto.ServiceResponse, error)
	Update(ctx context.Context, req dto.UpdateServiceRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo            repository.Service
	serviceTypeRepo serviceTypeRepo.ServiceType
	bookingRepo     bookingRepo.Booking
	cfg             *config.Config
	cache           cache.RedisCache
	otel            otel.Otel
}

func New(
	repo repository.Service,
	serviceTypeRepo serviceTypeRepo.ServiceType,
	bookingRepo bookingRepo.Booking,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Service {
	return &serviceImpl{
		repo:            repo,
		serviceTypeRepo: serviceTypeRepo,
		bookingRepo:     bookingRepo,
		cfg:             cfg,
		cache:           cache,
		otel:            otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateServiceRequest) (res dto.ServiceResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".hotelservice.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = s.ensureServiceType(ctx, req.ServiceTypeID); err != nil {
		return res, err
	}

	if err = s.ensureUniqueName(ctx, req.Name, constant.Empty); err != nil {
		return res, err
	}

	service := req.ToModel(identity.FromContext(ctx).Actor())

	if err = s.repo.Insert(ctx, service); err != nil {
		if shared.IsUniqueViolation(err) {
			return res, failure.Conflict("service name is already in use") // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to create service")

		return res, fmt.Errorf("failed to create service: %w", err)
	}

	s.invalidate(ctx)

	res.FromModel(service)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetServicesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".hotelservice.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count services")

		return res, fmt.Errorf("failed to count services: %w", err)
	}

	services, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get services")

		return res, fmt.Errorf("failed to get services: %w", err)
	}

	res.FromModels(services, total, req.Limit)

	return res, nil
}

// GetActive lists every active service for the booking form.
func (s *serviceImpl) GetActive(ctx context.Context) (res dto.GetServicesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".hotelservice.GetActive")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = s.cache.Get(ctx, cacheActiveOffers, &res); err == nil {
		return res, nil
	}

	params := gDto.QueryParams{SortBy: activeSortColumns, SortDir: gDto.SortDirAsc}

	services, err := s.repo.GetAll(ctx, params, shared.FilterByValue(model.FieldActive, true, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get active services")

		return res, fmt.Errorf("failed to get active services: %w", err)
	}

	res.FromModels(services, len(services), len(services))

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheActiveOffers, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save active services to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.ServiceResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".hotelservice.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetService, id)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	service, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get service")

		return res, fmt.Errorf("failed to get service: %w", err)
	}

	if service.ID == constant.Empty {
		return res, failure.NotFound("service not found") // nolint:wrapcheck
	}

	res.FromModel(service)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save service to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateServiceRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".hotelservice.Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req.IsEmpty() {
		return failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if service exists")

		return fmt.Errorf("failed to check if service exists: %w", err)
	}

	if !exist {
		return failure.NotFound("service not found") // nolint:wrapcheck
	}

	if req.ServiceTypeID != constant.Empty {
		if err = s.ensureServiceType(ctx, req.ServiceTypeID); err != nil {
			return err
		}
	}

	if req.Name != constant.Empty {
		if err = s.ensureUniqueName(ctx, req.Name, id); err != nil {
			return err
		}
	}

	if err = s.repo.Update(ctx, req.Fields(identity.FromContext(ctx).Actor()), filter); err != nil {
		if shared.IsUniqueViolation(err) {
			return failure.Conflict("service name is already in use") // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to update service")

		return fmt.Errorf("failed to update service: %w", err)
	}

	s.invalidate(ctx)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".hotelservice.Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if service exists")

		return fmt.Errorf("failed to check if service exists: %w", err)
	}

	if !exist {
		return failure.NotFound("service not found") // nolint:wrapcheck
	}

	ordered, err := s.bookingRepo.ExistServiceLine(ctx, shared.FilterByValue(bookingModel.FieldServiceID, id, bookingModel.ServiceLineTableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check booked services")

		return fmt.Errorf("failed to check booked services: %w", err)
	}

	if ordered {
		return failure.Conflict("service is referenced by bookings") // nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		if shared.IsForeignKeyViolation(err) {
			return failure.Conflict("service is referenced by bookings") // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to delete service")

		return fmt.Errorf("failed to delete service: %w", err)
	}

	s.invalidate(ctx)

	return nil
}

func (s *serviceImpl) ensureServiceType(ctx context.Context, id string) error {
	exist, err := s.serviceTypeRepo.Exist(ctx, shared.FilterByID(id, serviceTypeModel.FieldID, serviceTypeModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check service type")

		return fmt.Errorf("failed to check service type: %w", err)
	}

	if !exist {
		return failure.BadRequestFromString("service type does not exist") // nolint:wrapcheck
	}

	return nil
}

func (s *serviceImpl) ensureUniqueName(ctx context.Context, name, excludeID string) error {
	filter := shared.FilterByValue(model.FieldName, name, model.TableName)

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
		log.Error().Err(err).Msg("failed to check service name")

		return fmt.Errorf("failed to check service name: %w", err)
	}

	if exist {
		return failure.Conflict("service name is already in use") // nolint:wrapcheck
	}

	return nil
}

func (s *serviceImpl) invalidate(ctx context.Context) {
	go shared.InvalidateCaches(context.WithoutCancel(ctx), s.cache, cachePrefix)
}
