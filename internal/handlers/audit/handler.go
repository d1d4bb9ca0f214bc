package audit

import (
	"net/http"

	"hotel/infras/otel"
	"hotel/internal/domains/audit/model"
	"hotel/internal/domains/audit/service"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/transport/http/request"
	"hotel/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

var sortColumns = map[string]string{
	model.FieldOccurredAt: "audit_logs.occurred_at",
	model.FieldEventType:  "audit_logs.event_type",
}

type Handler struct {
	service service.Audit
	otel    otel.Otel
}

func New(service service.Audit, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Get("/audit-logs", handler.GetLogs)
}

// GetLogs lists recorded domain events.
// @Summary Get audit logs
// @Tags Audit
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param event_type query string false "Filter by event type"
// @Param entity_type query string false "Filter by entity type"
// @Param entity_id query string false "Filter by entity ID"
// @Param from query string false "Occurred on or after (YYYY-MM-DD)"
// @Param to query string false "Occurred on or before (YYYY-MM-DD)"
// @Success 200 {object} response.Data[dto.GetLogsResponse]
// @Failure 500 {object} response.Error
// @Router /v1/audit-logs [get]
// @Security BearerAuth
func (handler *Handler) GetLogs(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetLogs")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)
	queryParams.RestrictSort(sortColumns, "audit_logs.occurred_at")

	filter := request.NewFilters(r, model.TableName).
		Equal(model.FieldEventType, model.FieldEntityType, model.FieldEntityID).
		Range(model.FieldOccurredAt).
		Group()

	logs, err := handler.service.GetAll(ctx, queryParams, filter)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get audit logs")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, logs)
}
