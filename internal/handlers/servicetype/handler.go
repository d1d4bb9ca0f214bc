package servicetype

import (
	"net/http"

	"hotel/infras/otel"
	"hotel/internal/domains/servicetype/model"
	"hotel/internal/domains/servicetype/model/dto"
	"hotel/internal/domains/servicetype/service"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/validator"
	"hotel/transport/http/request"
	"hotel/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

var sortColumns = map[string]string{
	model.FieldName:         "service_types.name",
	constant.FieldCreatedAt: "service_types.created_at",
}

type Handler struct {
	service service.ServiceType
	otel    otel.Otel
}

func New(service service.ServiceType, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/service-types", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateServiceType)
		routerGroup.Get("/", handler.GetServiceTypes)
		routerGroup.Get("/{id}", handler.GetServiceTypeByID)
		routerGroup.Patch("/{id}", handler.UpdateServiceType)
		routerGroup.Delete("/{id}", handler.DeleteServiceType)
	})
}

// CreateServiceType handles the creation of a new service type.
// @Summary Create a service type
// @Tags ServiceType
// @Accept json
// @Produce json
// @Param request body dto.CreateServiceTypeRequest true "Create Service Type Request"
// @Success 201 {object} response.Data[dto.ServiceTypeResponse]
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/service-types [post]
// @Security BearerAuth
func (handler *Handler) CreateServiceType(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateServiceType")
	defer scope.End()

	req := dto.CreateServiceTypeRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create service type")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusCreated, res)
}

// GetServiceTypes lists service types.
// @Summary Get all service types
// @Tags ServiceType
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param search query string false "Search by name"
// @Success 200 {object} response.Data[dto.GetServiceTypesResponse]
// @Failure 500 {object} response.Error
// @Router /v1/service-types [get]
// @Security BearerAuth
func (handler *Handler) GetServiceTypes(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetServiceTypes")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)
	queryParams.RestrictSort(sortColumns, "service_types.created_at")

	filter := request.NewFilters(r, model.TableName).
		Search(model.FieldName).
		Group()

	serviceTypes, err := handler.service.GetAll(ctx, queryParams, filter)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get service types")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, serviceTypes)
}

// GetServiceTypeByID returns a service type.
// @Summary Get a service type by ID
// @Tags ServiceType
// @Produce json
// @Param id path string true "Service type ID"
// @Success 200 {object} response.Data[dto.ServiceTypeResponse]
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/service-types/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetServiceTypeByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetServiceTypeByID")
	defer scope.End()

	serviceType, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get service type by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, serviceType)
}

// UpdateServiceType edits a service type.
// @Summary Update a service type
// @Tags ServiceType
// @Accept json
// @Produce json
// @Param id path string true "Service type ID"
// @Param request body dto.UpdateServiceTypeRequest true "Update Service Type Request"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/service-types/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateServiceType(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateServiceType")
	defer scope.End()

	req := dto.UpdateServiceTypeRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update service type")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Service type updated successfully")
}

// DeleteServiceType removes a service type no service uses.
// @Summary Delete a service type
// @Tags ServiceType
// @Produce json
// @Param id path string true "Service type ID"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/service-types/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteServiceType(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteServiceType")
	defer scope.End()

	if err := handler.service.Delete(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete service type")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Service type deleted successfully")
}
