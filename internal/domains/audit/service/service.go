package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"hotel/infras/otel"
	"hotel/internal/domains/audit/model"
	"hotel/internal/domains/audit/model/dto"
	"hotel/internal/domains/audit/repository"
	"hotel/shared"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/event"
	"hotel/shared/failure"
	"hotel/shared/timezone"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type Audit interface {
	Record(ctx context.Context, topic string, payload []byte) error
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetLogsResponse, error)
}

type serviceImpl struct {
	repo repository.Log
	otel otel.Otel
	now  func() time.Time
}

func New(repo repository.Log, otel otel.Otel) Audit {
	return &serviceImpl{
		repo: repo,
		otel: otel,
		now:  timezone.Now,
	}
}

// Record stores one published event. Redelivered events are ignored and
// malformed payloads are rejected with a bad request failure.
func (s *serviceImpl) Record(ctx context.Context, topic string, payload []byte) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".audit.Record")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	var evt event.Event
	if err = json.Unmarshal(payload, &evt); err != nil {
		return failure.BadRequest(err) // nolint:wrapcheck
	}

	if evt.ID == constant.Empty || evt.Type == constant.Empty {
		return failure.BadRequestFromString("event id and type are required") // nolint:wrapcheck
	}

	exist, err := s.repo.Exist(ctx, shared.FilterByValue(model.FieldEventID, evt.ID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check audit log")

		return fmt.Errorf("failed to check audit log: %w", err)
	}

	if exist {
		log.Debug().Str("event_id", evt.ID).Msg("audit log already recorded")

		return nil
	}

	entry := model.Log{
		ID:         uuid.NewString(),
		EventID:    evt.ID,
		Topic:      topic,
		EventType:  evt.Type,
		EntityType: evt.EntityType,
		EntityID:   evt.EntityID,
		Actor:      evt.Actor,
		Payload:    string(payload),
		OccurredAt: evt.OccurredAt,
		CreatedAt:  s.now(),
	}

	if err = s.repo.Insert(ctx, entry); err != nil {
		if shared.IsUniqueViolation(err) {
			return nil
		}

		log.Error().Err(err).Msg("failed to save audit log")

		return fmt.Errorf("failed to save audit log: %w", err)
	}

	return nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetLogsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".audit.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req.SortBy == constant.Empty {
		req.SortBy = model.TableName + "." + model.FieldOccurredAt
		req.SortDir = constant.DefaultValueSortDir
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count audit logs")

		return res, fmt.Errorf("failed to count audit logs: %w", err)
	}

	logs, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get audit logs")

		return res, fmt.Errorf("failed to get audit logs: %w", err)
	}

	res.FromModels(logs, total, req.Limit)

	return res, nil
}
