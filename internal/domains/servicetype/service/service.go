package service

import (
	"context"
	"fmt"

	"hotel/config"
	"hotel/infras/otel"
	hotelServiceModel "hotel/internal/domains/hotelservice/model"
	hotelServiceRepo "hotel/internal/domains/hotelservice/repository"
	"hotel/internal/domains/servicetype/model"
	"hotel/internal/domains/servicetype/model/dto"
	"hotel/internal/domains/servicetype/repository"
	"hotel/shared"
	"hotel/shared/cache"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	"hotel/shared/identity"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetServiceType    = "servicetype:get"
	cacheGetAllServiceType = "servicetype:get_all"
	cacheCountServiceType  = "servicetype:count"
)

type ServiceType interface {
	Create(ctx context.Context, req dto.CreateServiceTypeRequest) (dto.ServiceTypeResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetServiceTypesResponse, error)
	Get(ctx context.Context, id string) (dto.ServiceTypeResponse, error)
	Update(ctx context.Context, req dto.UpdateServiceTypeRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo        repository.ServiceType
	serviceRepo hotelServiceRepo.Service
	cfg         *config.Config
	cache       cache.RedisCache
	otel        otel.Otel
}

func New(repo repository.ServiceType, serviceRepo hotelServiceRepo.Service, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) ServiceType {
	return &serviceImpl{
		repo:        repo,
		serviceRepo: serviceRepo,
		cfg:         cfg,
		cache:       cache,
		otel:        otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateServiceTypeRequest) (res dto.ServiceTypeResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".servicetype.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = s.ensureUniqueName(ctx, req.Name, constant.Empty); err != nil {
		return res, err
	}

	serviceType := req.ToModel(identity.FromContext(ctx).Actor())

	if err = s.repo.Insert(ctx, serviceType); err != nil {
		if shared.IsUniqueViolation(err) {
			return res, failure.Conflict("service type name is already in use") // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to create service type")

		return res, fmt.Errorf("failed to create service type: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllServiceType)
		shared.InvalidateCaches(c, s.cache, cacheCountServiceType)
	}()

	res.FromModel(serviceType)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetServiceTypesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".servicetype.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllServiceType, req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for service types")

		return res, nil
	}

	total, err := s.count(ctx, req, filter)
	if err != nil {
		return res, err
	}

	serviceTypes, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get service types")

		return res, fmt.Errorf("failed to get service types: %w", err)
	}

	res.FromModels(serviceTypes, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save service types to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.ServiceTypeResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".servicetype.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetServiceType, id)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for service type")

		return res, nil
	}

	serviceType, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get service type")

		return res, fmt.Errorf("failed to get service type: %w", err)
	}

	if serviceType.ID == constant.Empty {
		return res, failure.NotFound("service type not found") // nolint:wrapcheck
	}

	res.FromModel(serviceType)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save service type to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateServiceTypeRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".servicetype.Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	if err = s.ensureExists(ctx, filter); err != nil {
		return err
	}

	if err = s.ensureUniqueName(ctx, req.Name, id); err != nil {
		return err
	}

	if err = s.repo.Update(ctx, shared.TransformFields(req, identity.FromContext(ctx).Actor()), filter); err != nil {
		if shared.IsUniqueViolation(err) {
			return failure.Conflict("service type name is already in use") // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to update service type")

		return fmt.Errorf("failed to update service type: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".servicetype.Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	if err = s.ensureExists(ctx, filter); err != nil {
		return err
	}

	inUse, err := s.serviceRepo.Exist(ctx, shared.FilterByValue(hotelServiceModel.FieldServiceTypeID, id, hotelServiceModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check services of service type")

		return fmt.Errorf("failed to check services of service type: %w", err)
	}

	if inUse {
		return failure.Conflict("service type is still used by services") // nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		if shared.IsForeignKeyViolation(err) {
			return failure.Conflict("service type is still used by services") // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to delete service type")

		return fmt.Errorf("failed to delete service type: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (total int, err error) {
	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountServiceType, req, filter)

	if err = s.cache.Get(ctx, cacheKey, &total); err == nil {
		return total, nil
	}

	total, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count service types")

		return total, fmt.Errorf("failed to count service types: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, total, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save service type count to cache")
		}
	}()

	return total, nil
}

func (s *serviceImpl) ensureExists(ctx context.Context, filter gDto.FilterGroup) error {
	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if service type exists")

		return fmt.Errorf("failed to check if service type exists: %w", err)
	}

	if !exist {
		return failure.NotFound("service type not found") // nolint:wrapcheck
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
		log.Error().Err(err).Msg("failed to check service type name")

		return fmt.Errorf("failed to check service type name: %w", err)
	}

	if exist {
		return failure.Conflict("service type name is already in use") // nolint:wrapcheck
	}

	return nil
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetServiceType, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete service type cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllServiceType)
		shared.InvalidateCaches(c, s.cache, cacheCountServiceType)
	}()
}
