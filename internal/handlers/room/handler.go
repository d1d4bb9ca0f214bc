package room

import (
	"net/http"

	"hotel/infras/otel"
	"hotel/internal/domains/room/model"
	"hotel/internal/domains/room/model/dto"
	"hotel/internal/domains/room/service"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/validator"
	"hotel/transport/http/request"
	"hotel/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const (
	formCode          = "code"
	formName          = "name"
	formRoomTypeID    = "room_type_id"
	formPricePerNight = "price_per_night"
	formMaxPeople     = "max_people"
	formStatus        = "status"
	formDescription   = "description"
	formActive        = "active"

	queryCheckIn  = "check_in"
	queryCheckOut = "check_out"
	queryMinPrice = "min_price"
	queryMaxPrice = "max_price"
)

var sortColumns = map[string]string{
	model.FieldCode:          "rooms.code",
	model.FieldName:          "rooms.name",
	model.FieldPricePerNight: "rooms.price_per_night",
	model.FieldStatus:        "rooms.status",
	constant.FieldCreatedAt:  "rooms.created_at",
}

type Handler struct {
	service service.Room
	otel    otel.Otel
}

func New(service service.Room, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/rooms", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateRoom)
		routerGroup.Get("/", handler.GetRooms)
		routerGroup.Post("/reconcile", handler.ReconcileRooms)
		routerGroup.Get("/{id}", handler.GetRoomByID)
		routerGroup.Patch("/{id}", handler.UpdateRoom)
		routerGroup.Delete("/{id}", handler.DeleteRoom)
		routerGroup.Post("/{id}/reconcile", handler.ReconcileRoom)
	})

	router.Route("/public/rooms", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.SearchRooms)
		routerGroup.Get("/{id}", handler.GetPublicRoom)
	})
}

// CreateRoom handles the creation of a new room.
// @Summary Create a new room
// @Tags Room
// @Accept multipart/form-data
// @Produce json
// @Param code formData string true "Room code"
// @Param name formData string true "Room name"
// @Param room_type_id formData string true "Room type ID"
// @Param price_per_night formData string true "Price per night"
// @Param max_people formData integer true "Maximum guests"
// @Param status formData string false "Available or Under maintenance"
// @Param description formData string false "Description"
// @Param active formData boolean false "Active flag"
// @Param image formData file false "Room image"
// @Success 201 {object} response.Data[dto.RoomResponse]
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rooms [post]
// @Security BearerAuth
func (handler *Handler) CreateRoom(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateRoom")
	defer scope.End()

	if err := request.ParseMultipart(r); err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	file, header, err := request.FormFile(r, constant.FormImage)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	if file != nil {
		defer file.Close()
	}

	req := dto.CreateRoomRequest{
		Code:          r.FormValue(formCode),
		Name:          r.FormValue(formName),
		RoomTypeID:    r.FormValue(formRoomTypeID),
		PricePerNight: r.FormValue(formPricePerNight),
		MaxPeople:     request.FormInt(r, formMaxPeople),
		Status:        r.FormValue(formStatus),
		Description:   r.FormValue(formDescription),
		Active:        request.FormBool(r, formActive),
		Image:         header,
		ImageFile:     file,
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create room")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Room created successfully")

	response.WithJSON(w, http.StatusCreated, res)
}

// GetRooms lists rooms with their derived status.
// @Summary Get all rooms
// @Description Rooms that need turnover are reconciled before they are returned. With check_in and check_out each room lists its overlapping bookings.
// @Tags Room
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param search query string false "Search code or name"
// @Param room_type_id query string false "Filter by room type"
// @Param status query string false "Filter by static status"
// @Param active query boolean false "Filter by active flag"
// @Param check_in query string false "Window start (YYYY-MM-DD)"
// @Param check_out query string false "Window end (YYYY-MM-DD)"
// @Success 200 {object} response.Data[dto.GetAdminRoomsResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rooms [get]
// @Security BearerAuth
func (handler *Handler) GetRooms(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRooms")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)
	queryParams.RestrictSort(sortColumns, "rooms.created_at")

	window := dto.Window{
		CheckIn:  r.URL.Query().Get(queryCheckIn),
		CheckOut: r.URL.Query().Get(queryCheckOut),
	}

	if err := validator.ValidateStruct(&window); err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	filter := request.NewFilters(r, model.TableName).
		Search(model.FieldCode, model.FieldName).
		Equal(model.FieldRoomTypeID, model.FieldStatus).
		Bool(model.FieldActive).
		Group()

	rooms, err := handler.service.GetAll(ctx, queryParams, filter, window)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get rooms")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, rooms)
}

// GetRoomByID returns a room with its derived status.
// @Summary Get a room by ID
// @Tags Room
// @Produce json
// @Param id path string true "Room ID"
// @Success 200 {object} response.Data[dto.AdminRoomResponse]
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rooms/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetRoomByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRoomByID")
	defer scope.End()

	room, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get room by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, room)
}

// UpdateRoom edits a room. Setting status to Available clears a turnover.
// @Summary Update a room
// @Tags Room
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Room ID"
// @Param code formData string false "Room code"
// @Param name formData string false "Room name"
// @Param room_type_id formData string false "Room type ID"
// @Param price_per_night formData string false "Price per night"
// @Param max_people formData integer false "Maximum guests"
// @Param status formData string false "Available or Under maintenance"
// @Param description formData string false "Description"
// @Param active formData boolean false "Active flag"
// @Param image formData file false "Room image"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rooms/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateRoom(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateRoom")
	defer scope.End()

	if err := request.ParseMultipart(r); err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	file, header, err := request.FormFile(r, constant.FormImage)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	if file != nil {
		defer file.Close()
	}

	req := dto.UpdateRoomRequest{
		Code:          r.FormValue(formCode),
		Name:          r.FormValue(formName),
		RoomTypeID:    r.FormValue(formRoomTypeID),
		PricePerNight: r.FormValue(formPricePerNight),
		MaxPeople:     request.FormInt(r, formMaxPeople),
		Status:        r.FormValue(formStatus),
		Description:   r.FormValue(formDescription),
		Active:        request.FormBool(r, formActive),
		Image:         header,
		ImageFile:     file,
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update room")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Room updated successfully")
}

// DeleteRoom removes a room that no booking references.
// @Summary Delete a room
// @Tags Room
// @Produce json
// @Param id path string true "Room ID"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rooms/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteRoom(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteRoom")
	defer scope.End()

	if err := handler.service.Delete(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete room")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Room deleted successfully")
}

// ReconcileRoom recomputes the status of one room and persists a turnover.
// @Summary Reconcile a room status
// @Tags Room
// @Produce json
// @Param id path string true "Room ID"
// @Success 200 {object} response.Data[dto.ReconcileResponse]
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rooms/{id}/reconcile [post]
// @Security BearerAuth
func (handler *Handler) ReconcileRoom(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ReconcileRoom")
	defer scope.End()

	res, err := handler.service.Reconcile(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to reconcile room")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// ReconcileRooms runs the reconcile command over every active room.
// @Summary Reconcile all room statuses
// @Tags Room
// @Produce json
// @Success 200 {object} response.Data[dto.ReconcileSummary]
// @Failure 500 {object} response.Error
// @Router /v1/rooms/reconcile [post]
// @Security BearerAuth
func (handler *Handler) ReconcileRooms(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ReconcileRooms")
	defer scope.End()

	res, err := handler.service.ReconcileAll(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to reconcile rooms")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// SearchRooms searches the bookable catalogue.
// @Summary Search bookable rooms
// @Description Only active rooms with status Available are listed, cheapest first. A check_in and check_out pair excludes rooms booked for those dates.
// @Tags Public
// @Produce json
// @Param search query string false "Search code, name or description"
// @Param room_type_id query string false "Filter by room type"
// @Param min_price query string false "Minimum price per night"
// @Param max_price query string false "Maximum price per night"
// @Param check_in query string false "Check-in (YYYY-MM-DD)"
// @Param check_out query string false "Check-out (YYYY-MM-DD)"
// @Param page query integer false "Page"
// @Success 200 {object} response.Data[dto.GetRoomsResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/public/rooms [get]
func (handler *Handler) SearchRooms(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SearchRooms")
	defer scope.End()

	query := r.URL.Query()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	req := dto.SearchRoomsRequest{
		Search:     query.Get(constant.RequestParamSearch),
		RoomTypeID: query.Get(model.FieldRoomTypeID),
		MinPrice:   query.Get(queryMinPrice),
		MaxPrice:   query.Get(queryMaxPrice),
		CheckIn:    query.Get(queryCheckIn),
		CheckOut:   query.Get(queryCheckOut),
		Page:       queryParams.Page,
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	rooms, err := handler.service.Search(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to search rooms")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, rooms)
}

// GetPublicRoom returns a bookable room.
// @Summary Get a bookable room
// @Tags Public
// @Produce json
// @Param id path string true "Room ID"
// @Success 200 {object} response.Data[dto.RoomResponse]
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/public/rooms/{id} [get]
func (handler *Handler) GetPublicRoom(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPublicRoom")
	defer scope.End()

	room, err := handler.service.GetPublic(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get public room")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, room)
}
